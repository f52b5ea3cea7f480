package devapi

import (
	"time"

	"github.com/dmitrijs2005/donatello/internal/client/models"
)

// Seed adds a demo charity with two fundraisers.
func Seed(s *Store) error {
	c, err := s.CreateCharity(models.CharityInput{
		Title:             "Paws & Claws Shelter",
		Description:       "Food, vets and warm beds for stray animals.",
		PhoneNumber:       "+380501234567",
		OrganisationEmail: "hello@pawsandclaws.org",
	})
	if err != nil {
		return err
	}

	end := s.now().Add(30 * 24 * time.Hour).UTC().Truncate(time.Second)
	for _, p := range []models.Post{
		{Title: "Winter kennels", Description: "Insulated kennels for 40 dogs.", Goal: 2500, EndingAt: &end, CharityID: c.ID},
		{Title: "Vet bills", Description: "Vaccinations and surgeries.", Goal: 1200, CharityID: c.ID},
	} {
		if _, err := s.CreateFundraiser(p); err != nil {
			return err
		}
	}
	return nil
}
