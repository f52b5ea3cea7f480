package models

type Charity struct {
	ID                string `json:"id"`
	Title             string `json:"title"`
	Description       string `json:"description"`
	PhoneNumber       string `json:"phone_number"`
	OrganisationEmail string `json:"organisation_email"`
}

// CharityInput is the body of POST /charities/.
type CharityInput struct {
	Title             string `json:"title"`
	Description       string `json:"description"`
	PhoneNumber       string `json:"phone_number"`
	OrganisationEmail string `json:"organisation_email"`
}
