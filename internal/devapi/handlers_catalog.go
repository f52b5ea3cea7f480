package devapi

import (
	"errors"
	"net/http"
	"sort"
	"strings"

	"github.com/dmitrijs2005/donatello/internal/client/models"
	"github.com/dmitrijs2005/donatello/internal/validation"
	"github.com/go-chi/chi/v5"
)

var (
	errAmountNotPositive = errorItem{Detail: "amount: Ensure this value is greater than 0.", Code: "min_value"}
	errUnknownFundraiser = errorItem{Detail: "fundraise_id: Invalid pk - object does not exist.", Code: "does_not_exist"}
)

func (s *Server) handleListCharities(w http.ResponseWriter, r *http.Request) {
	list, err := s.store.Charities()
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	sort.Slice(list, func(i, j int) bool { return strings.ToLower(list[i].Title) < strings.ToLower(list[j].Title) })
	writeData(w, http.StatusOK, list)
}

func (s *Server) handleGetCharity(w http.ResponseWriter, r *http.Request) {
	c, err := s.store.Charity(chi.URLParam(r, "id"))
	if errors.Is(err, ErrNotFound) {
		writeErrors(w, http.StatusNotFound, errNotFound)
		return
	}
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, c)
}

func (s *Server) handleCreateCharity(w http.ResponseWriter, r *http.Request) {
	in, ok := decodeBody[models.CharityInput](r)
	if !ok {
		writeErrors(w, http.StatusBadRequest, errMalformedBody)
		return
	}

	fe := validation.FieldErrors{}
	fe.Check("title", in.Title, validation.ValidateName)
	fe.Check("description", in.Description, validation.ValidateRequired)
	fe.Check("phone_number", in.PhoneNumber, validation.ValidatePhoneNumber)
	fe.Check("organisation_email", in.OrganisationEmail, validation.ValidateEmail)
	if len(fe) > 0 {
		writeErrors(w, http.StatusBadRequest, fieldErrors(fe)...)
		return
	}

	c, err := s.store.CreateCharity(in)
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	writeData(w, http.StatusCreated, c)
}

func (s *Server) handleListFundraisers(w http.ResponseWriter, r *http.Request) {
	list, err := s.store.Fundraisers()
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Title < list[j].Title })
	writeData(w, http.StatusOK, list)
}

func (s *Server) handleDonate(w http.ResponseWriter, r *http.Request) {
	in, ok := decodeBody[models.DonationInput](r)
	if !ok {
		writeErrors(w, http.StatusBadRequest, errMalformedBody)
		return
	}
	if in.Amount <= 0 {
		writeErrors(w, http.StatusBadRequest, errAmountNotPositive)
		return
	}

	d, err := s.store.Donate(userIDFrom(r.Context()), in)
	if errors.Is(err, ErrNotFound) {
		writeErrors(w, http.StatusBadRequest, errUnknownFundraiser)
		return
	}
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	writeData(w, http.StatusCreated, d)
}

func (s *Server) handleListDonations(w http.ResponseWriter, r *http.Request) {
	list, err := s.store.DonationsByUser(userIDFrom(r.Context()))
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.Before(list[j].CreatedAt) })
	writeData(w, http.StatusOK, list)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
