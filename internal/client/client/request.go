package client

import (
	"context"
	"net/http"
	"strings"
)

// API paths, relative to the configured base URL.
const (
	PathLogin       = "/auth/login/"
	PathRefresh     = "/auth/refresh/"
	PathLogout      = "/auth/logout/"
	PathMe          = "/auth/me/"
	PathUsers       = "/users/"
	PathCharities   = "/charities/"
	PathFundraisers = "/fundraisers/"
	PathDonations   = "/donations/"
)

// Redirect targets.
const (
	LoginEntryPoint = "/auth/"
	RootEntryPoint  = "/"
)

// Request describes one API call. It is kept unchanged for a replay; only
// the credential is re-attached.
type Request struct {
	Method string
	Path   string
	// Body is JSON-encoded when non-nil.
	Body   any
	Header http.Header
}

// Navigator moves the user to another entry point of the application.
type Navigator interface {
	Redirect(ctx context.Context, target string)
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(ctx context.Context, target string)

func (f NavigatorFunc) Redirect(ctx context.Context, target string) { f(ctx, target) }

type nopNavigator struct{}

func (nopNavigator) Redirect(context.Context, string) {}

// samePath compares API paths ignoring the query and surrounding slashes.
func samePath(a, b string) bool {
	if i := strings.IndexByte(a, '?'); i >= 0 {
		a = a[:i]
	}
	return strings.Trim(a, "/") == strings.Trim(b, "/")
}
