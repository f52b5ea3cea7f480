package client

import (
	"context"

	"github.com/dmitrijs2005/donatello/internal/client/models"
)

// Client is the typed DONATello API.
type Client interface {
	Close() error
	Do(ctx context.Context, req *Request) (*Envelope, error)

	Login(ctx context.Context, username, password string) error
	Refresh(ctx context.Context) error
	Logout(ctx context.Context) error
	Me(ctx context.Context) (*models.User, error)
	Ping(ctx context.Context) error

	Register(ctx context.Context, in models.RegistrationRequest) (*models.User, error)
	GetUser(ctx context.Context, id string) (*models.User, error)
	UpdateUser(ctx context.Context, id string, in models.ProfileUpdate) (*models.User, error)

	ListCharities(ctx context.Context) ([]models.Charity, error)
	GetCharity(ctx context.Context, id string) (*models.Charity, error)
	CreateCharity(ctx context.Context, in models.CharityInput) (*models.Charity, error)

	ListPosts(ctx context.Context) ([]models.Post, error)
	Donate(ctx context.Context, in models.DonationInput) (*models.Donation, error)
	ListDonations(ctx context.Context) ([]models.Donation, error)
}
