package session

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the subset of the backend's JWT payload the client reads.
type Claims struct {
	jwt.RegisteredClaims
	Type     string   `json:"type,omitempty"`
	UserData UserData `json:"user_data"`
}

type UserData struct {
	ID any `json:"id"`
}

// ParseClaims decodes a JWT without verifying its signature. The client
// never holds the signing key; the server remains the authority.
func ParseClaims(token string) (*Claims, error) {
	claims := &Claims{}
	p := jwt.NewParser(jwt.WithJSONNumber())
	if _, _, err := p.ParseUnverified(token, claims); err != nil {
		return nil, err
	}
	return claims, nil
}

// UserIDFromToken returns user_data.id from an access token, or "" when the
// token is opaque or carries no id.
func UserIDFromToken(token string) string {
	c, err := ParseClaims(token)
	if err != nil || c.UserData.ID == nil {
		return ""
	}
	return fmt.Sprint(c.UserData.ID)
}

// ExpiryFromToken returns the exp claim. ok is false for opaque tokens and
// tokens without exp.
func ExpiryFromToken(token string) (exp time.Time, ok bool) {
	c, err := ParseClaims(token)
	if err != nil || c.ExpiresAt == nil {
		return time.Time{}, false
	}
	return c.ExpiresAt.Time, true
}
