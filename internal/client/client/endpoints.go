package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/dmitrijs2005/donatello/internal/client/models"
	"golang.org/x/oauth2"
)

// Login exchanges credentials for a session. A rejected login leaves the
// session untouched.
func (c *HTTPClient) Login(ctx context.Context, username, password string) error {
	env, err := c.Do(ctx, &Request{
		Method: http.MethodPost,
		Path:   PathLogin,
		Body:   models.Credentials{Username: username, Password: password},
	})
	if err != nil {
		return err
	}

	pair, err := DecodeData[models.TokenPair](env)
	if err != nil {
		return err
	}
	if pair.AccessToken == "" {
		return fmt.Errorf("%w: login: empty access_token", ErrMalformedEnvelope)
	}

	if err := c.session.Establish(ctx, &oauth2.Token{AccessToken: pair.AccessToken, RefreshToken: pair.RefreshToken}, ""); err != nil {
		return fmt.Errorf("store session: %w", err)
	}
	if c.session.UserID() == "" {
		c.lookupUserID(ctx)
	}
	c.log.Info(ctx, "logged in", "user_id", c.session.UserID())
	return nil
}

// lookupUserID asks /auth/me/ for the id when the access token is opaque.
// The login stands even if the lookup fails; profile calls retry it.
func (c *HTTPClient) lookupUserID(ctx context.Context) {
	u, err := c.Me(ctx)
	if err != nil || u == nil || u.ID == "" {
		c.log.Warn(ctx, "user id lookup failed", "error", err)
		return
	}
	if err := c.session.SetUserID(ctx, u.ID); err != nil {
		c.log.Warn(ctx, "store user id", "error", err)
	}
}

// Logout ends the session on the server. The local session is dropped
// whatever the server answers.
func (c *HTTPClient) Logout(ctx context.Context) error {
	_, err := c.Do(ctx, &Request{Method: http.MethodPost, Path: PathLogout})
	return err
}

func (c *HTTPClient) Me(ctx context.Context) (*models.User, error) {
	return call[*models.User](ctx, c, http.MethodGet, PathMe, nil)
}

// Ping reports whether the API answers at all. Any HTTP response counts.
func (c *HTTPClient) Ping(ctx context.Context) error {
	_, err := c.send(ctx, &Request{Method: http.MethodGet, Path: PathMe}, nil, c.session.Token())
	if errors.Is(err, ErrUnavailable) {
		return err
	}
	return nil
}

func (c *HTTPClient) Register(ctx context.Context, in models.RegistrationRequest) (*models.User, error) {
	return call[*models.User](ctx, c, http.MethodPost, PathUsers, in)
}

func (c *HTTPClient) GetUser(ctx context.Context, id string) (*models.User, error) {
	return call[*models.User](ctx, c, http.MethodGet, PathUsers+url.PathEscape(id), nil)
}

func (c *HTTPClient) UpdateUser(ctx context.Context, id string, in models.ProfileUpdate) (*models.User, error) {
	return call[*models.User](ctx, c, http.MethodPut, PathUsers+url.PathEscape(id), in)
}

func (c *HTTPClient) ListCharities(ctx context.Context) ([]models.Charity, error) {
	return call[[]models.Charity](ctx, c, http.MethodGet, PathCharities, nil)
}

func (c *HTTPClient) GetCharity(ctx context.Context, id string) (*models.Charity, error) {
	return call[*models.Charity](ctx, c, http.MethodGet, PathCharities+url.PathEscape(id), nil)
}

func (c *HTTPClient) CreateCharity(ctx context.Context, in models.CharityInput) (*models.Charity, error) {
	return call[*models.Charity](ctx, c, http.MethodPost, PathCharities, in)
}

func (c *HTTPClient) ListPosts(ctx context.Context) ([]models.Post, error) {
	return call[[]models.Post](ctx, c, http.MethodGet, PathFundraisers, nil)
}

func (c *HTTPClient) Donate(ctx context.Context, in models.DonationInput) (*models.Donation, error) {
	return call[*models.Donation](ctx, c, http.MethodPost, PathDonations, in)
}

func (c *HTTPClient) ListDonations(ctx context.Context) ([]models.Donation, error) {
	return call[[]models.Donation](ctx, c, http.MethodGet, PathDonations, nil)
}

func call[T any](ctx context.Context, c *HTTPClient, method, path string, body any) (T, error) {
	env, err := c.Do(ctx, &Request{Method: method, Path: path, Body: body})
	if err != nil {
		var zero T
		return zero, err
	}
	return DecodeData[T](env)
}
