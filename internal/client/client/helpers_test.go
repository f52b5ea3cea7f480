package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/donatello/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/donatello/internal/client/session"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

const apiPrefix = "/api/v1"

/*************
 * Fake API server
 *************/

type fakeAPI struct {
	mu       sync.Mutex
	handlers map[string]http.HandlerFunc
	hits     map[string]int
	// last request seen per route
	last map[string]*http.Request
}

func newFakeAPI(t *testing.T) (*fakeAPI, *httptest.Server) {
	t.Helper()
	f := &fakeAPI{
		handlers: map[string]http.HandlerFunc{},
		hits:     map[string]int{},
		last:     map[string]*http.Request{},
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Method + " " + strings.TrimPrefix(r.URL.Path, apiPrefix)
		f.mu.Lock()
		f.hits[key]++
		f.last[key] = r
		h := f.handlers[key]
		f.mu.Unlock()
		if h == nil {
			writeJSON(w, http.StatusNotFound, map[string]any{"errors": []map[string]string{{"detail": "Not found"}}})
			return
		}
		h(w, r)
	}))
	t.Cleanup(srv.Close)
	return f, srv
}

func (f *fakeAPI) handle(method, path string, h http.HandlerFunc) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.handlers[method+" "+path] = h
}

func (f *fakeAPI) count(method, path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hits[method+" "+path]
}

func (f *fakeAPI) lastRequest(method, path string) *http.Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.last[method+" "+path]
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func data(v any) map[string]any { return map[string]any{"data": v} }

func expiredBody() map[string]any {
	return map[string]any{"errors": []map[string]string{{"detail": "Signature has expired", "code": "token_not_valid"}}}
}

// bearerGate answers 401 unless the request carries want.
func bearerGate(want string, ok http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+want {
			writeJSON(w, http.StatusUnauthorized, expiredBody())
			return
		}
		ok(w, r)
	}
}

func tokens(access, refresh string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, data(map[string]string{"access_token": access, "refresh_token": refresh}))
	}
}

/*************
 * Fake navigator
 *************/

type fakeNavigator struct {
	mu      sync.Mutex
	targets []string
}

func (n *fakeNavigator) Redirect(_ context.Context, target string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.targets = append(n.targets, target)
}

func (n *fakeNavigator) got() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.targets...)
}

/*************
 * Setup
 *************/

type harness struct {
	api    *fakeAPI
	client *HTTPClient
	sess   *session.Session
	nav    *fakeNavigator
}

func newHarness(t *testing.T, mutate ...func(*Options)) *harness {
	t.Helper()
	api, srv := newFakeAPI(t)

	repo, err := metadata.NewMemRepository()
	require.NoError(t, err)
	sess := session.New(repo, nil)

	nav := &fakeNavigator{}
	opts := Options{BaseURL: srv.URL + apiPrefix + "/", Navigator: nav, Timeout: 2 * time.Second}
	for _, m := range mutate {
		m(&opts)
	}

	c, err := New(sess, opts)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	return &harness{api: api, client: c, sess: sess, nav: nav}
}

func (h *harness) login(t *testing.T, access, refresh string) {
	t.Helper()
	require.NoError(t, h.sess.Establish(context.Background(), &oauth2.Token{AccessToken: access, RefreshToken: refresh}, ""))
}

func makeJWT(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("k"))
	require.NoError(t, err)
	return s
}
