package devapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/donatello/internal/logging"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Cookie names accepted in place of the Authorization header and the
// refresh body.
const (
	AccessTokenCookie  = "access_token_cookie"
	RefreshTokenCookie = "refresh_token_cookie"
)

type ctxKey struct{}

type Server struct {
	cfg    *Config
	logger logging.Logger
	store  *Store
	tokens *Issuer
	router chi.Router
}

type Option func(*serverOptions)

type serverOptions struct {
	now func() time.Time
}

// WithClock makes token issuing, verification and timestamps use now.
func WithClock(now func() time.Time) Option {
	return func(o *serverOptions) { o.now = now }
}

func New(cfg *Config, logger logging.Logger, opts ...Option) (*Server, error) {
	o := serverOptions{now: time.Now}
	for _, fn := range opts {
		fn(&o)
	}
	if logger == nil {
		logger = logging.Nop()
	}
	if cfg.JWTSecret == "" {
		return nil, errors.New("devapi: empty JWT secret")
	}

	store, err := NewStore(o.now)
	if err != nil {
		return nil, err
	}

	s := &Server{
		cfg:    cfg,
		logger: logger,
		store:  store,
		tokens: NewIssuer([]byte(cfg.JWTSecret), cfg.AccessTTL, cfg.RefreshTTL, o.now),
	}
	if cfg.Seed {
		if err := Seed(store); err != nil {
			return nil, fmt.Errorf("seed: %w", err)
		}
	}
	s.router = s.routes()
	return s, nil
}

func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) Store() *Store { return s.store }

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeErrors(w, http.StatusNotFound, errNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeErrors(w, http.StatusMethodNotAllowed, errMethodNotAllowed)
	})

	r.Route(s.cfg.BasePath, func(r chi.Router) {
		r.Post("/auth/login/", s.handleLogin)
		r.Post("/auth/refresh/", s.handleRefresh)
		r.Post("/auth/logout/", s.handleLogout)
		r.Post("/users/", s.handleRegister)
		r.Get("/charities/", s.handleListCharities)
		r.Get("/charities/{id}", s.handleGetCharity)
		r.Get("/fundraisers/", s.handleListFundraisers)

		r.Group(func(r chi.Router) {
			r.Use(s.requireAuth)
			r.Get("/auth/me/", s.handleMe)
			r.Get("/users/{id}", s.handleGetUser)
			r.Put("/users/{id}", s.handleUpdateUser)
			r.Post("/charities/", s.handleCreateCharity)
			r.Post("/donations/", s.handleDonate)
			r.Get("/donations/", s.handleListDonations)
		})
	})
	return r
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Info(r.Context(), "request",
			"request_id", r.Header.Get("X-Request-ID"),
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
		)
	})
}

// requireAuth accepts an access token from "Authorization: <scheme> <token>"
// or the access token cookie.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := bearer(r)
		if raw == "" {
			writeErrors(w, http.StatusUnauthorized, errNotAuthenticated)
			return
		}

		claims, err := s.tokens.Verify(raw, TokenAccess)
		switch {
		case errors.Is(err, ErrTokenExpired):
			writeErrors(w, s.cfg.ExpiredStatus, errTokenExpired)
			return
		case err != nil:
			writeErrors(w, http.StatusUnauthorized, errTokenNotValid)
			return
		}

		ctx := context.WithValue(r.Context(), ctxKey{}, claims.UserData.ID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func bearer(r *http.Request) string {
	if h := r.Header.Get("Authorization"); h != "" {
		if _, tok, ok := strings.Cut(h, " "); ok {
			return strings.TrimSpace(tok)
		}
		return ""
	}
	if c, err := r.Cookie(AccessTokenCookie); err == nil {
		return c.Value
	}
	return ""
}

func userIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.ListenAddr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info(ctx, "devapi listening", "addr", s.cfg.ListenAddr, "base_path", s.cfg.BasePath)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	s.logger.Info(ctx, "devapi stopped")
	return nil
}
