package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/donatello/internal/client/models"
	"github.com/dmitrijs2005/donatello/internal/client/session"
	"github.com/dmitrijs2005/donatello/internal/logging"
	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/sync/singleflight"
)

type CredentialMode string

const (
	CredentialHeader CredentialMode = "header"
	CredentialCookie CredentialMode = "cookie"
)

const (
	AccessTokenCookie  = "access_token_cookie"
	RefreshTokenCookie = "refresh_token_cookie"
	RequestIDHeader    = "X-Request-ID"

	DefaultTimeout    = 5 * time.Second
	DefaultAuthScheme = "Bearer"

	maxBodySize = 10 << 20
)

type Options struct {
	BaseURL        string
	Timeout        time.Duration
	CredentialMode CredentialMode
	AuthScheme     string

	// HTTPClient overrides the transport; Timeout is ignored when set.
	HTTPClient *http.Client
	Navigator  Navigator
	Logger     logging.Logger
	// Now is used to check refresh token expiry.
	Now func() time.Time
}

// HTTPClient talks JSON to the API on behalf of a Session. Expired sessions
// are refreshed once and the failed request is replayed once.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	session *session.Session
	nav     Navigator
	log     logging.Logger
	mode    CredentialMode
	scheme  string
	now     func() time.Time

	refreshes singleflight.Group
}

var _ Client = (*HTTPClient)(nil)

func New(sess *session.Session, opts Options) (*HTTPClient, error) {
	if sess == nil {
		return nil, errors.New("client: nil session")
	}
	if opts.BaseURL == "" {
		return nil, errors.New("client: empty base URL")
	}

	c := &HTTPClient{
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		http:    opts.HTTPClient,
		session: sess,
		nav:     opts.Navigator,
		log:     opts.Logger,
		mode:    opts.CredentialMode,
		scheme:  opts.AuthScheme,
		now:     opts.Now,
	}

	if c.http == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		c.http = &http.Client{Timeout: timeout}
	}
	if c.nav == nil {
		c.nav = nopNavigator{}
	}
	if c.log == nil {
		c.log = logging.Nop()
	}
	switch c.mode {
	case "":
		c.mode = CredentialHeader
	case CredentialHeader, CredentialCookie:
	default:
		return nil, fmt.Errorf("client: unknown credential mode %q", c.mode)
	}
	if c.scheme == "" {
		c.scheme = DefaultAuthScheme
	}
	if c.now == nil {
		c.now = time.Now
	}
	return c, nil
}

// Session returns the session the client acts for.
func (c *HTTPClient) Session() *session.Session { return c.session }

func (c *HTTPClient) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

// Do sends req and returns the parsed envelope of a 2xx response.
//
// Login responses are never intercepted. Logout always clears the session
// and redirects to the root entry point. Any other request failing with an
// expired session triggers one refresh and, when it succeeds, one replay
// whose outcome is returned as is.
func (c *HTTPClient) Do(ctx context.Context, req *Request) (*Envelope, error) {
	body, err := encodeBody(req.Body)
	if err != nil {
		return nil, err
	}

	switch {
	case samePath(req.Path, PathLogin):
		return c.send(ctx, req, body, nil)
	case samePath(req.Path, PathLogout):
		return c.logout(ctx, req, body)
	}

	tok, gen := c.session.Current()
	env, err := c.send(ctx, req, body, tok)
	if err == nil || !isSessionExpiry(err) {
		return env, err
	}

	if samePath(req.Path, PathRefresh) {
		c.expire(ctx, "refresh rejected")
		return nil, fmt.Errorf("%w: %w", ErrSessionExpired, err)
	}

	if rerr := c.refresh(ctx, gen); rerr != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: %w", ErrSessionExpired, err)
	}

	tok, _ = c.session.Current()
	c.log.Info(ctx, "replaying request", "method", req.Method, "path", req.Path)
	return c.send(ctx, req, body, tok)
}

// Refresh renews the session explicitly.
func (c *HTTPClient) Refresh(ctx context.Context) error {
	return c.refresh(ctx, c.session.Generation())
}

// refresh renews a credential that failed at generation failedGen. Callers
// that failed with an already replaced credential return at once; callers
// racing an in-flight refresh share its result.
func (c *HTTPClient) refresh(ctx context.Context, failedGen uint64) error {
	if err := c.superseded(failedGen); err != nil || c.session.Generation() != failedGen {
		return err
	}

	// The refresh outlives a single caller's cancellation; it is bounded by
	// the HTTP timeout instead.
	shared := context.WithoutCancel(ctx)
	ch := c.refreshes.DoChan("refresh", func() (any, error) {
		if c.session.Generation() != failedGen {
			return nil, c.superseded(failedGen)
		}
		return nil, c.doRefresh(shared)
	})

	select {
	case res := <-ch:
		return res.Err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// superseded reports ErrSessionExpired when the session moved on from
// failedGen by being dropped.
func (c *HTTPClient) superseded(failedGen uint64) error {
	if c.session.Generation() != failedGen && c.session.State() == session.Anonymous {
		return ErrSessionExpired
	}
	return nil
}

func (c *HTTPClient) doRefresh(ctx context.Context) error {
	tok := c.session.Token()
	switch {
	case tok == nil || tok.RefreshToken == "":
		c.expire(ctx, "refresh token not available")
		return ErrSessionExpired
	case c.refreshTokenExpired(tok.RefreshToken):
		c.expire(ctx, "refresh token expired")
		return ErrSessionExpired
	}

	if err := c.session.BeginRefresh(); err != nil {
		c.expire(ctx, "refresh not possible")
		return err
	}
	c.log.Info(ctx, "refreshing session")

	req := &Request{Method: http.MethodPost, Path: PathRefresh, Body: models.RefreshRequest{Refresh: tok.RefreshToken}}
	body, err := encodeBody(req.Body)
	if err != nil {
		return c.failRefresh(ctx, err)
	}

	env, err := c.send(ctx, req, body, tok)
	if err != nil {
		return c.failRefresh(ctx, err)
	}

	pair, err := DecodeData[models.TokenPair](env)
	if err == nil && pair.AccessToken == "" {
		err = &MalformedEnvelopeError{Status: env.StatusCode, Method: req.Method, Path: req.Path, Err: errors.New("empty access_token")}
	}
	if err != nil {
		return c.failRefresh(ctx, err)
	}

	if err := c.session.CompleteRefresh(ctx, &oauth2.Token{AccessToken: pair.AccessToken, RefreshToken: pair.RefreshToken}); err != nil {
		return c.failRefresh(ctx, err)
	}
	c.log.Info(ctx, "session refreshed", "user_id", c.session.UserID())
	return nil
}

func (c *HTTPClient) failRefresh(ctx context.Context, cause error) error {
	c.log.Warn(ctx, "refresh failed", "error", cause)
	if err := c.session.FailRefresh(ctx); err != nil {
		c.log.Error(ctx, "failed to drop session", "error", err)
	}
	c.redirect(ctx, LoginEntryPoint)
	return cause
}

// expire drops the session and sends the user to the login entry point.
func (c *HTTPClient) expire(ctx context.Context, reason string) {
	c.log.Warn(ctx, "session expired", "reason", reason)
	if err := c.session.Clear(ctx); err != nil {
		c.log.Error(ctx, "failed to drop session", "error", err)
	}
	c.redirect(ctx, LoginEntryPoint)
}

func (c *HTTPClient) logout(ctx context.Context, req *Request, body []byte) (*Envelope, error) {
	env, err := c.send(ctx, req, body, c.session.Token())
	if err != nil {
		c.log.Warn(ctx, "logout failed on server", "error", err)
	}
	if cerr := c.session.Clear(ctx); cerr != nil {
		c.log.Error(ctx, "failed to drop session", "error", cerr)
	}
	c.redirect(ctx, RootEntryPoint)
	return env, err
}

func (c *HTTPClient) redirect(ctx context.Context, target string) {
	c.log.Info(ctx, "redirecting", "target", target)
	c.nav.Redirect(ctx, target)
}

func (c *HTTPClient) refreshTokenExpired(refresh string) bool {
	exp, ok := session.ExpiryFromToken(refresh)
	return ok && !exp.After(c.now())
}

// send performs a single HTTP exchange. It never refreshes or retries.
func (c *HTTPClient) send(ctx context.Context, req *Request, body []byte, tok *oauth2.Token) (*Envelope, error) {
	var rd io.Reader
	if body != nil {
		rd = bytes.NewReader(body)
	}

	hr, err := http.NewRequestWithContext(ctx, req.Method, c.url(req.Path), rd)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	for k, vs := range req.Header {
		for _, v := range vs {
			hr.Header.Add(k, v)
		}
	}
	requestID := uuid.NewString()
	hr.Header.Set(RequestIDHeader, requestID)
	hr.Header.Set("Accept", "application/json")
	if body != nil {
		hr.Header.Set("Content-Type", "application/json")
	}
	c.attachCredential(hr, req.Path, tok)

	log := c.log.With("request_id", requestID, "method", req.Method, "path", req.Path)

	resp, err := c.http.Do(hr)
	if err != nil {
		log.Warn(ctx, "request failed", "error", err)
		return nil, fmt.Errorf("%s %s: %w: %w", req.Method, req.Path, ErrUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("%s %s: read body: %w: %w", req.Method, req.Path, ErrUnavailable, err)
	}

	log.Debug(ctx, "response", "status", resp.StatusCode)
	return decodeEnvelope(req.Method, req.Path, resp.StatusCode, raw)
}

func (c *HTTPClient) attachCredential(hr *http.Request, path string, tok *oauth2.Token) {
	if tok == nil || tok.AccessToken == "" {
		return
	}
	switch c.mode {
	case CredentialCookie:
		hr.AddCookie(&http.Cookie{Name: AccessTokenCookie, Value: tok.AccessToken})
		if tok.RefreshToken != "" && samePath(path, PathRefresh) {
			hr.AddCookie(&http.Cookie{Name: RefreshTokenCookie, Value: tok.RefreshToken})
		}
	default:
		hr.Header.Set("Authorization", c.scheme+" "+tok.AccessToken)
	}
}

func (c *HTTPClient) url(path string) string {
	return c.baseURL + "/" + strings.TrimLeft(path, "/")
}

func encodeBody(v any) ([]byte, error) {
	if v == nil {
		return nil, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode request body: %w", err)
	}
	return b, nil
}
