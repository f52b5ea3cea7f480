package devapi

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/donatello/internal/client/models"
	"golang.org/x/crypto/bcrypt"
)

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	in, ok := decodeBody[models.Credentials](r)
	if !ok {
		writeErrors(w, http.StatusBadRequest, errMalformedBody)
		return
	}

	u, err := s.store.UserByUsername(in.Username)
	if errors.Is(err, ErrNotFound) {
		writeErrors(w, http.StatusUnauthorized, errNoActiveAccount)
		return
	}
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	if bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(in.Password)) != nil {
		writeErrors(w, http.StatusUnauthorized, errNoActiveAccount)
		return
	}

	pair, err := s.tokens.Issue(u.ID)
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, pair)
}

// handleRefresh takes the refresh token from the body or the refresh
// cookie. The old refresh token is revoked when a new one is issued.
func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	raw := ""
	if in, ok := decodeBody[models.RefreshRequest](r); ok {
		raw = in.Refresh
	}
	if raw == "" {
		if c, err := r.Cookie(RefreshTokenCookie); err == nil {
			raw = c.Value
		}
	}
	if raw == "" {
		writeErrors(w, http.StatusUnauthorized, errRefreshInvalid)
		return
	}

	claims, err := s.tokens.Verify(raw, TokenRefresh)
	if err != nil {
		writeErrors(w, http.StatusUnauthorized, errRefreshInvalid)
		return
	}

	pair, err := s.tokens.Issue(claims.UserData.ID)
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	if s.cfg.RotateRefresh {
		s.tokens.Revoke(raw)
	} else {
		pair.RefreshToken = ""
	}
	writeData(w, http.StatusOK, pair)
}

// handleLogout always succeeds. A refresh token sent in the body or cookie
// is revoked.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if in, ok := decodeBody[models.RefreshRequest](r); ok && in.Refresh != "" {
		s.tokens.Revoke(in.Refresh)
	}
	if c, err := r.Cookie(RefreshTokenCookie); err == nil {
		s.tokens.Revoke(c.Value)
	}
	http.SetCookie(w, &http.Cookie{Name: AccessTokenCookie, Path: "/", MaxAge: -1})
	http.SetCookie(w, &http.Cookie{Name: RefreshTokenCookie, Path: "/", MaxAge: -1})
	writeData(w, http.StatusOK, map[string]string{})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	u, err := s.store.UserByID(userIDFrom(r.Context()))
	if errors.Is(err, ErrNotFound) {
		writeErrors(w, http.StatusUnauthorized, errTokenNotValid)
		return
	}
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, u.User)
}

func (s *Server) internalError(w http.ResponseWriter, r *http.Request, err error) {
	s.logger.Error(r.Context(), "handler failed", "path", r.URL.Path, "error", err)
	writeErrors(w, http.StatusInternalServerError, errInternal)
}
