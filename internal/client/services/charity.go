package services

import (
	"context"

	"github.com/dmitrijs2005/donatello/internal/client/client"
	"github.com/dmitrijs2005/donatello/internal/client/models"
	"github.com/dmitrijs2005/donatello/internal/validation"
)

type CharityService interface {
	List(ctx context.Context) ([]models.Charity, error)
	Get(ctx context.Context, id string) (*models.Charity, error)
	Create(ctx context.Context, in models.CharityInput) (*models.Charity, error)
}

type charityService struct {
	client client.Client
}

func NewCharityService(client client.Client) CharityService {
	return &charityService{client: client}
}

func (s *charityService) List(ctx context.Context) ([]models.Charity, error) {
	return s.client.ListCharities(ctx)
}

func (s *charityService) Get(ctx context.Context, id string) (*models.Charity, error) {
	return s.client.GetCharity(ctx, id)
}

func (s *charityService) Create(ctx context.Context, in models.CharityInput) (*models.Charity, error) {
	fe := validation.FieldErrors{}
	fe.Check("title", in.Title, validation.ValidateName)
	fe.Check("description", in.Description, validation.ValidateRequired)
	fe.Check("phone_number", in.PhoneNumber, validation.ValidatePhoneNumber)
	fe.Check("organisation_email", in.OrganisationEmail, validation.ValidateEmail)
	if err := fe.Err(); err != nil {
		return nil, err
	}
	return s.client.CreateCharity(ctx, in)
}
