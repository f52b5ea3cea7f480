package models

// Credentials is the login request body.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// TokenPair is returned by login and refresh. RefreshToken may be empty
// when the server keeps the previous one valid.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
}

// RefreshRequest is the refresh request body.
type RefreshRequest struct {
	Refresh string `json:"refresh"`
}
