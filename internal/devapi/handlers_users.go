package devapi

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/donatello/internal/client/models"
	"github.com/dmitrijs2005/donatello/internal/validation"
	"github.com/go-chi/chi/v5"
	"golang.org/x/crypto/bcrypt"
)

var (
	errUsernameTaken = errorItem{Detail: "A user with that username already exists.", Code: "unique"}
	errEmailTaken    = errorItem{Detail: "user with this email already exists.", Code: "unique"}
)

// fieldErrors turns validation output into envelope items, one per message.
func fieldErrors(fe validation.FieldErrors) []errorItem {
	var out []errorItem
	for _, field := range sortedKeys(fe) {
		for _, msg := range fe[field] {
			out = append(out, errorItem{Detail: field + ": " + msg, Code: "invalid"})
		}
	}
	return out
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	in, ok := decodeBody[models.RegistrationRequest](r)
	if !ok {
		writeErrors(w, http.StatusBadRequest, errMalformedBody)
		return
	}

	fe := validation.FieldErrors{}
	fe.Check("username", in.Username, validation.ValidateName)
	fe.Check("first_name", in.FirstName, validation.ValidateName)
	fe.Check("last_name", in.LastName, validation.ValidateName)
	fe.Check("email", in.Email, validation.ValidateEmail)
	fe.Check("password", in.Password, validation.ValidateRequired)
	if in.PhoneNumber != "" {
		fe.Check("phone_number", in.PhoneNumber, validation.ValidatePhoneNumber)
	}
	if len(fe) > 0 {
		writeErrors(w, http.StatusBadRequest, fieldErrors(fe)...)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cfg.BcryptCost)
	if err != nil {
		s.internalError(w, r, err)
		return
	}

	u, err := s.store.CreateUser(models.User{
		Username:    in.Username,
		FirstName:   in.FirstName,
		LastName:    in.LastName,
		Email:       in.Email,
		PhoneNumber: in.PhoneNumber,
	}, hash)
	if s.writeUserConflict(w, r, err) {
		return
	}
	writeData(w, http.StatusCreated, u)
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	u, err := s.store.UserByID(chi.URLParam(r, "id"))
	if errors.Is(err, ErrNotFound) {
		writeErrors(w, http.StatusNotFound, errNotFound)
		return
	}
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, u.User)
}

// handleUpdateUser lets a user edit only their own account.
func (s *Server) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id != userIDFrom(r.Context()) {
		writeErrors(w, http.StatusForbidden, errPermissionDenied)
		return
	}

	in, ok := decodeBody[models.ProfileUpdate](r)
	if !ok {
		writeErrors(w, http.StatusBadRequest, errMalformedBody)
		return
	}

	fe := validation.FieldErrors{}
	checkIfSet := func(field, v string, fn func(string) []string) {
		if v != "" {
			fe.Check(field, v, fn)
		}
	}
	checkIfSet("username", in.Username, validation.ValidateName)
	checkIfSet("first_name", in.FirstName, validation.ValidateName)
	checkIfSet("last_name", in.LastName, validation.ValidateName)
	checkIfSet("email", in.Email, validation.ValidateEmail)
	checkIfSet("phone_number", in.PhoneNumber, validation.ValidatePhoneNumber)
	if len(fe) > 0 {
		writeErrors(w, http.StatusBadRequest, fieldErrors(fe)...)
		return
	}

	var hash []byte
	if in.Password != "" {
		h, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cfg.BcryptCost)
		if err != nil {
			s.internalError(w, r, err)
			return
		}
		hash = h
	}

	u, err := s.store.UpdateUser(id, in, hash)
	if errors.Is(err, ErrNotFound) {
		writeErrors(w, http.StatusNotFound, errNotFound)
		return
	}
	if s.writeUserConflict(w, r, err) {
		return
	}
	writeData(w, http.StatusOK, u)
}

// writeUserConflict writes the response for a failed user write and
// reports whether it did.
func (s *Server) writeUserConflict(w http.ResponseWriter, r *http.Request, err error) bool {
	switch {
	case err == nil:
		return false
	case errors.Is(err, ErrUsernameTaken):
		writeErrors(w, http.StatusBadRequest, errUsernameTaken)
	case errors.Is(err, ErrEmailTaken):
		writeErrors(w, http.StatusBadRequest, errEmailTaken)
	default:
		s.internalError(w, r, err)
	}
	return true
}
