package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/donatello/internal/client/avatar"
	"github.com/dmitrijs2005/donatello/internal/client/client"
	"github.com/dmitrijs2005/donatello/internal/client/models"
	"github.com/dmitrijs2005/donatello/internal/client/session"
	"github.com/dmitrijs2005/donatello/internal/validation"
)

type ProfileService interface {
	Get(ctx context.Context) (*models.User, error)
	Update(ctx context.Context, in models.ProfileUpdate) (*models.User, error)
	UploadAvatar(ctx context.Context, image []byte) (string, error)
	AvatarURL(ctx context.Context) (string, error)
	DeleteAvatar(ctx context.Context) error
}

type profileService struct {
	client  client.Client
	users   SessionView
	avatars avatar.Store
}

// NewProfileService builds the profile service. avatars may be nil when no
// bucket is configured; avatar operations then fail with ErrAvatarsDisabled.
func NewProfileService(client client.Client, users SessionView, avatars avatar.Store) ProfileService {
	return &profileService{client: client, users: users, avatars: avatars}
}

// userID returns the stored id, falling back to /auth/me/ for sessions
// whose token does not name the user.
func (p *profileService) userID(ctx context.Context) (string, error) {
	if id := p.users.UserID(); id != "" {
		return id, nil
	}
	if p.users.State() == session.Anonymous {
		return "", client.ErrNotAuthenticated
	}

	me, err := p.client.Me(ctx)
	if err != nil {
		return "", err
	}
	if me == nil || me.ID == "" {
		return "", client.ErrNotAuthenticated
	}
	return me.ID, nil
}

func (p *profileService) Get(ctx context.Context) (*models.User, error) {
	id, err := p.userID(ctx)
	if err != nil {
		return nil, err
	}
	return p.client.GetUser(ctx, id)
}

// Update validates only the fields being changed.
func (p *profileService) Update(ctx context.Context, in models.ProfileUpdate) (*models.User, error) {
	id, err := p.userID(ctx)
	if err != nil {
		return nil, err
	}

	fe := validation.FieldErrors{}
	checkIfSet := func(field, v string, fn func(string) []string) {
		if v != "" {
			fe.Check(field, v, fn)
		}
	}
	checkIfSet("username", in.Username, validation.ValidateName)
	checkIfSet("first_name", in.FirstName, validation.ValidateName)
	checkIfSet("last_name", in.LastName, validation.ValidateName)
	checkIfSet("email", in.Email, validation.ValidateEmail)
	checkIfSet("phone_number", in.PhoneNumber, validation.ValidatePhoneNumber)
	if err := fe.Err(); err != nil {
		return nil, err
	}

	return p.client.UpdateUser(ctx, id, in)
}

// UploadAvatar stores the image and points the profile's photo at it.
func (p *profileService) UploadAvatar(ctx context.Context, image []byte) (string, error) {
	id, err := p.userID(ctx)
	if err != nil {
		return "", err
	}
	if p.avatars == nil {
		return "", ErrAvatarsDisabled
	}

	key, err := p.avatars.Upload(ctx, id, image)
	if err != nil {
		return "", err
	}
	if _, err := p.client.UpdateUser(ctx, id, models.ProfileUpdate{Photo: key}); err != nil {
		return "", fmt.Errorf("link avatar to profile: %w", err)
	}
	return key, nil
}

func (p *profileService) AvatarURL(ctx context.Context) (string, error) {
	id, err := p.userID(ctx)
	if err != nil {
		return "", err
	}
	if p.avatars == nil {
		return "", ErrAvatarsDisabled
	}
	return p.avatars.URL(ctx, id)
}

func (p *profileService) DeleteAvatar(ctx context.Context) error {
	id, err := p.userID(ctx)
	if err != nil {
		return err
	}
	if p.avatars == nil {
		return ErrAvatarsDisabled
	}
	return p.avatars.Delete(ctx, id)
}
