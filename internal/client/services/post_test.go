package services

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/donatello/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostService(t *testing.T) {
	fc := &fakeClient{
		Posts:       []models.Post{{ID: "p1", Title: "Water"}},
		DonationRet: &models.Donation{ID: "d1", Amount: 10},
	}
	svc := NewPostService(fc)
	ctx := context.Background()

	posts, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Water", posts[0].Title)

	d, err := svc.Donate(ctx, "p1", 10)
	require.NoError(t, err)
	assert.Equal(t, "d1", d.ID)
	assert.Equal(t, models.DonationInput{FundraiseID: "p1", Amount: 10}, fc.LastDonationIn)

	_, err = svc.Donations(ctx)
	require.NoError(t, err)
}

func TestPostService_DonateValidation(t *testing.T) {
	fc := &fakeClient{}
	svc := NewPostService(fc)

	_, err := svc.Donate(context.Background(), "p1", 0)
	require.ErrorIs(t, err, ErrInvalidAmount)
	_, err = svc.Donate(context.Background(), "", 5)
	require.Error(t, err)
	assert.Empty(t, fc.Calls)
}
