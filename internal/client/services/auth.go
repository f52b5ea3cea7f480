// Package services contains the application services behind the CLI:
// authentication, profile, charities and posts. They validate input before
// any request is made and leave session handling to the client.
package services

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/donatello/internal/client/client"
	"github.com/dmitrijs2005/donatello/internal/client/models"
	"github.com/dmitrijs2005/donatello/internal/client/session"
	"github.com/dmitrijs2005/donatello/internal/validation"
)

// SessionView is the read side of the session the services act for.
// *session.Session satisfies it.
type SessionView interface {
	State() session.State
	UserID() string
}

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - Login: exchange credentials for a session.
//   - Logout: end the session; the local session is dropped even on error.
//   - Register: validate and create a new account.
//   - IsAuthenticated: probe /auth/me/; any error means false.
//   - Ping: check server liveness.
//   - Close: release underlying client resources.
type AuthService interface {
	Login(ctx context.Context, username, password string) error
	Logout(ctx context.Context) error
	Register(ctx context.Context, in models.RegistrationRequest) (*models.User, error)
	IsAuthenticated(ctx context.Context) bool
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

type authService struct {
	client client.Client
	users  SessionView
}

func NewAuthService(client client.Client, users SessionView) AuthService {
	return &authService{client: client, users: users}
}

func (a *authService) Login(ctx context.Context, username, password string) error {
	fe := validation.FieldErrors{}
	fe.Check("username", username, validation.ValidateRequired)
	fe.Check("password", password, validation.ValidateRequired)
	if err := fe.Err(); err != nil {
		return err
	}
	return a.client.Login(ctx, strings.TrimSpace(username), password)
}

func (a *authService) Logout(ctx context.Context) error {
	return a.client.Logout(ctx)
}

// Register validates the form the same way the signup page does and
// creates the account.
func (a *authService) Register(ctx context.Context, in models.RegistrationRequest) (*models.User, error) {
	fe := validation.FieldErrors{}
	fe.Check("username", in.Username, validation.ValidateName)
	fe.Check("first_name", in.FirstName, validation.ValidateName)
	fe.Check("last_name", in.LastName, validation.ValidateName)
	fe.Check("email", in.Email, validation.ValidateEmail)
	if in.PhoneNumber != "" {
		fe.Check("phone_number", in.PhoneNumber, validation.ValidatePhoneNumber)
	}
	fe.Check("password", in.Password, validation.ValidateRequired)
	if err := fe.Err(); err != nil {
		return nil, err
	}

	return a.client.Register(ctx, in)
}

func (a *authService) IsAuthenticated(ctx context.Context) bool {
	if a.users.State() == session.Anonymous {
		return false
	}
	_, err := a.client.Me(ctx)
	return err == nil
}

func (a *authService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}

func (a *authService) Close(ctx context.Context) error {
	return a.client.Close()
}
