package devapi

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Token types carried in the "type" claim.
const (
	TokenAccess  = "access"
	TokenRefresh = "refresh"
)

var (
	ErrTokenExpired   = errors.New("token expired")
	ErrTokenInvalid   = errors.New("token invalid")
	ErrWrongTokenType = errors.New("wrong token type")
	ErrTokenRevoked   = errors.New("token revoked")
)

type userData struct {
	ID string `json:"id"`
}

type tokenClaims struct {
	jwt.RegisteredClaims
	Type     string   `json:"type"`
	UserData userData `json:"user_data"`
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
}

// Issuer signs and verifies HS256 tokens. Revoked refresh tokens are
// remembered by jti until restart.
type Issuer struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time

	mu      sync.Mutex
	revoked map[string]struct{}
}

func NewIssuer(secret []byte, accessTTL, refreshTTL time.Duration, now func() time.Time) *Issuer {
	if now == nil {
		now = time.Now
	}
	return &Issuer{
		secret:     secret,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        now,
		revoked:    make(map[string]struct{}),
	}
}

// Issue returns a fresh access/refresh pair for userID.
func (i *Issuer) Issue(userID string) (TokenPair, error) {
	access, err := i.sign(userID, TokenAccess, i.accessTTL)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, err := i.sign(userID, TokenRefresh, i.refreshTTL)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func (i *Issuer) sign(userID, typ string, ttl time.Duration) (string, error) {
	now := i.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Type:     typ,
		UserData: userData{ID: userID},
	})

	s, err := token.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("sign %s token: %w", typ, err)
	}
	return s, nil
}

// Verify checks signature, expiry and type, returning the parsed claims.
func (i *Issuer) Verify(tokenString, wantType string) (*tokenClaims, error) {
	claims := &tokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return i.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(i.now))
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, ErrTokenExpired
	case err != nil:
		return nil, fmt.Errorf("%w: %w", ErrTokenInvalid, err)
	case !token.Valid:
		return nil, ErrTokenInvalid
	}

	if claims.Type != wantType {
		return nil, ErrWrongTokenType
	}
	if wantType == TokenRefresh && i.isRevoked(claims.ID) {
		return nil, ErrTokenRevoked
	}
	return claims, nil
}

// Revoke blocks a refresh token. Unparseable tokens are ignored.
func (i *Issuer) Revoke(refreshToken string) {
	claims, err := i.Verify(refreshToken, TokenRefresh)
	if err != nil {
		return
	}
	i.mu.Lock()
	defer i.mu.Unlock()
	i.revoked[claims.ID] = struct{}{}
}

func (i *Issuer) isRevoked(jti string) bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	_, ok := i.revoked[jti]
	return ok
}
