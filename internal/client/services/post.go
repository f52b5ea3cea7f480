package services

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/donatello/internal/client/client"
	"github.com/dmitrijs2005/donatello/internal/client/models"
)

type PostService interface {
	List(ctx context.Context) ([]models.Post, error)
	Donate(ctx context.Context, postID string, amount float64) (*models.Donation, error)
	Donations(ctx context.Context) ([]models.Donation, error)
}

type postService struct {
	client client.Client
}

func NewPostService(client client.Client) PostService {
	return &postService{client: client}
}

func (s *postService) List(ctx context.Context) ([]models.Post, error) {
	return s.client.ListPosts(ctx)
}

func (s *postService) Donate(ctx context.Context, postID string, amount float64) (*models.Donation, error) {
	if postID == "" {
		return nil, errors.New("post id is required")
	}
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	return s.client.Donate(ctx, models.DonationInput{FundraiseID: postID, Amount: amount})
}

func (s *postService) Donations(ctx context.Context) ([]models.Donation, error) {
	return s.client.ListDonations(ctx)
}
