package cli

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/dmitrijs2005/donatello/internal/client/client"
	"github.com/dmitrijs2005/donatello/internal/client/models"
	"github.com/dmitrijs2005/donatello/internal/validation"
)

// promptSecret is replaced in tests that log in.
var promptSecret = readSecret

func (a *App) prompt(label string) (string, error) {
	return readField(a.reader, label, a.out)
}

// report prints a user-facing description of err and returns it unchanged.
// Session expiry is not repeated because the redirect already printed a
// notice.
func (a *App) report(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}
	a.logger.Debug(ctx, "command failed", "error", err)

	var (
		apiErr *client.APIError
		fe     validation.FieldErrors
	)
	switch {
	case errors.Is(err, client.ErrSessionExpired):
	case errors.As(err, &fe):
		fmt.Fprintln(a.out, "Please fix the following:")
		fields := make([]string, 0, len(fe))
		for f := range fe {
			fields = append(fields, f)
		}
		sort.Strings(fields)
		for _, f := range fields {
			fmt.Fprintf(a.out, "  - %s: %s\n", f, strings.Join(fe[f], ", "))
		}
	case errors.As(err, &apiErr):
		if len(apiErr.Details) == 0 {
			fmt.Fprintf(a.out, "Request failed (HTTP %d)\n", apiErr.Status)
			break
		}
		for _, d := range apiErr.Details {
			fmt.Fprintln(a.out, "Error:", d.Detail)
		}
	case errors.Is(err, client.ErrUnavailable):
		fmt.Fprintln(a.out, "Server unavailable, try again later.")
	case errors.Is(err, client.ErrNotAuthenticated):
		fmt.Fprintln(a.out, "Please log in first.")
	default:
		fmt.Fprintln(a.out, "Error:", err)
	}
	return err
}

// Register prompts for the account fields and creates a new user.
func (a *App) Register(ctx context.Context) error {
	var in models.RegistrationRequest
	fields := []struct {
		prompt string
		dst    *string
	}{
		{"Enter username", &in.Username},
		{"Enter first name", &in.FirstName},
		{"Enter last name", &in.LastName},
		{"Enter email", &in.Email},
		{"Enter phone number (optional)", &in.PhoneNumber},
	}
	for _, f := range fields {
		v, err := a.prompt(f.prompt)
		if err != nil {
			return err
		}
		*f.dst = v
	}

	password, err := promptSecret(a.out)
	if err != nil {
		return err
	}
	defer clear(password)
	in.Password = string(password)

	user, err := a.auth.Register(ctx, in)
	if err != nil {
		return a.report(ctx, err)
	}

	fmt.Fprintf(a.out, "Registered %s. You can log in now.\n", user.Username)
	return nil
}

// Login prompts for credentials and opens a session.
func (a *App) Login(ctx context.Context) error {
	userName, err := a.prompt("Username")
	if err != nil {
		return err
	}

	password, err := promptSecret(a.out)
	if err != nil {
		return err
	}
	defer clear(password)

	if err := a.auth.Login(ctx, userName, string(password)); err != nil {
		a.logger.Info(ctx, "login unsuccessful", "username", userName)
		return a.report(ctx, err)
	}

	a.userName = strings.TrimSpace(userName)
	a.logger.Info(ctx, "login successful", "username", a.userName)
	return nil
}

// Logout ends the session. The local session is cleared even when the
// server call fails; the failure is still reported.
func (a *App) Logout(ctx context.Context) error {
	err := a.auth.Logout(ctx)
	a.userName = ""
	return a.report(ctx, err)
}

// Ping reports whether the server answers at all.
func (a *App) Ping(ctx context.Context) error {
	if err := a.auth.Ping(ctx); err != nil {
		return a.report(ctx, err)
	}
	fmt.Fprintln(a.out, "Server is reachable.")
	return nil
}
