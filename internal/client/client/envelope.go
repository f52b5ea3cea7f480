package client

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Envelope is the uniform response wrapper: {"data": ..., "errors": [...]}.
type Envelope struct {
	StatusCode int             `json:"status_code,omitempty"`
	Data       json.RawMessage `json:"data,omitempty"`
	Errors     []ErrorDetail   `json:"errors,omitempty"`
}

type ErrorDetail struct {
	Detail string `json:"detail,omitempty"`
	Code   string `json:"code,omitempty"`
}

// legacyDetail is one item of the older {"detail": [{"msg": ...}]} body.
type legacyDetail struct {
	Msg  string `json:"msg"`
	Type string `json:"type,omitempty"`
}

// APIError is a non-2xx response with a recognised error body.
type APIError struct {
	Status  int
	Method  string
	Path    string
	Details []ErrorDetail
	// Legacy is set when Details were normalised from the {"detail": [...]} shape.
	Legacy bool
}

func (e *APIError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s: %d %s", e.Method, e.Path, e.Status, http.StatusText(e.Status))
	for i, d := range e.Details {
		if i == 0 {
			b.WriteString(": ")
		} else {
			b.WriteString("; ")
		}
		switch {
		case d.Detail != "" && d.Code != "":
			fmt.Fprintf(&b, "%s (%s)", d.Detail, d.Code)
		case d.Detail != "":
			b.WriteString(d.Detail)
		default:
			b.WriteString(d.Code)
		}
	}
	return b.String()
}

func (e *APIError) Unwrap() error {
	switch e.Status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrUnauthorized
	}
	return nil
}

// HasDetail reports whether any detail contains substr, ignoring case.
func (e *APIError) HasDetail(substr string) bool {
	substr = strings.ToLower(substr)
	for _, d := range e.Details {
		if strings.Contains(strings.ToLower(d.Detail), substr) {
			return true
		}
	}
	return false
}

// MalformedEnvelopeError is returned when a body matches neither envelope
// shape. errors.Is(err, ErrMalformedEnvelope) holds.
type MalformedEnvelopeError struct {
	Status int
	Method string
	Path   string
	Err    error
}

func (e *MalformedEnvelopeError) Error() string {
	msg := fmt.Sprintf("%s %s: %d: %s", e.Method, e.Path, e.Status, ErrMalformedEnvelope)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *MalformedEnvelopeError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrMalformedEnvelope}
	}
	return []error{ErrMalformedEnvelope, e.Err}
}

// decodeEnvelope turns a response into an Envelope or an error. Success
// bodies must be empty or an object carrying "data". Error bodies must be
// empty, canonical {"errors": [...]} or legacy {"detail": [{"msg": ...}]}.
func decodeEnvelope(method, path string, status int, body []byte) (*Envelope, error) {
	malformed := func(err error) error {
		return &MalformedEnvelopeError{Status: status, Method: method, Path: path, Err: err}
	}

	body = bytes.TrimSpace(body)
	ok := status >= 200 && status < 300

	if len(body) == 0 {
		if ok {
			return &Envelope{StatusCode: status}, nil
		}
		return nil, &APIError{Status: status, Method: method, Path: path}
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, malformed(err)
	}

	if ok {
		if _, has := fields["data"]; !has {
			return nil, malformed(errors.New(`missing "data"`))
		}
		env := &Envelope{}
		if err := json.Unmarshal(body, env); err != nil {
			return nil, malformed(err)
		}
		env.StatusCode = status
		return env, nil
	}

	if raw, has := fields["errors"]; has {
		var details []ErrorDetail
		if err := json.Unmarshal(raw, &details); err != nil {
			return nil, malformed(err)
		}
		return nil, &APIError{Status: status, Method: method, Path: path, Details: details}
	}

	if raw, has := fields["detail"]; has {
		var items []legacyDetail
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, malformed(err)
		}
		details := make([]ErrorDetail, 0, len(items))
		for _, it := range items {
			details = append(details, ErrorDetail{Detail: it.Msg, Code: it.Type})
		}
		return nil, &APIError{Status: status, Method: method, Path: path, Details: details, Legacy: true}
	}

	return nil, malformed(errors.New("unrecognised error body"))
}

// DecodeData unmarshals env.Data into T. A missing or null payload yields
// the zero value.
func DecodeData[T any](env *Envelope) (T, error) {
	var v T
	if env == nil || len(env.Data) == 0 || bytes.Equal(env.Data, []byte("null")) {
		return v, nil
	}
	if err := json.Unmarshal(env.Data, &v); err != nil {
		return v, fmt.Errorf("%w: data: %w", ErrMalformedEnvelope, err)
	}
	return v, nil
}

// expiredSignature is the detail the backend uses for an expired token.
const expiredSignature = "signature has expired"

// isSessionExpiry reports whether err signals an expired session: any 401,
// or a 422 whose canonical envelope says the signature has expired.
func isSessionExpiry(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		switch apiErr.Status {
		case http.StatusUnauthorized:
			return true
		case http.StatusUnprocessableEntity:
			return !apiErr.Legacy && apiErr.HasDetail(expiredSignature)
		}
		return false
	}

	var mErr *MalformedEnvelopeError
	if errors.As(err, &mErr) {
		return mErr.Status == http.StatusUnauthorized
	}
	return false
}
