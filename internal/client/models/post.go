package models

import "time"

// Post is a fundraiser as listed by /fundraisers/.
type Post struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Goal        float64    `json:"goal"`
	EndingAt    *time.Time `json:"ending_at,omitempty"`
	CharityID   string     `json:"charity_id,omitempty"`
}

// DonationInput is the body of POST /donations/.
type DonationInput struct {
	FundraiseID string  `json:"fundraise_id"`
	Amount      float64 `json:"amount"`
}

type Donation struct {
	ID          string    `json:"id"`
	FundraiseID string    `json:"fundraise_id"`
	UserID      string    `json:"user_id,omitempty"`
	Amount      float64   `json:"amount"`
	CreatedAt   time.Time `json:"created_at"`
}
