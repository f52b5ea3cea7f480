package devapi

import (
	"encoding/json"
	"net/http"
)

type errorItem struct {
	Detail string `json:"detail"`
	Code   string `json:"code"`
}

var (
	errNotAuthenticated = errorItem{Detail: "Authentication credentials were not provided.", Code: "not_authenticated"}
	errTokenExpired     = errorItem{Detail: "Signature has expired", Code: "token_not_valid"}
	errTokenNotValid    = errorItem{Detail: "Given token not valid for any token type", Code: "token_not_valid"}
	errRefreshInvalid   = errorItem{Detail: "Token is invalid or expired", Code: "token_not_valid"}
	errNoActiveAccount  = errorItem{Detail: "No active account found with the given credentials", Code: "no_active_account"}
	errPermissionDenied = errorItem{Detail: "You do not have permission to perform this action.", Code: "permission_denied"}
	errNotFound         = errorItem{Detail: "Not found.", Code: "not_found"}
	errMethodNotAllowed = errorItem{Detail: "Method not allowed.", Code: "method_not_allowed"}
	errMalformedBody    = errorItem{Detail: "JSON parse error.", Code: "parse_error"}
	errInternal         = errorItem{Detail: "A server error occurred.", Code: "error"}
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeData(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, map[string]any{"data": data})
}

func writeErrors(w http.ResponseWriter, status int, errs ...errorItem) {
	if errs == nil {
		errs = []errorItem{}
	}
	writeJSON(w, status, map[string]any{"errors": errs})
}

func decodeBody[T any](r *http.Request) (T, bool) {
	var v T
	if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
		return v, false
	}
	return v, true
}
