// Package validation checks form input before it is sent to the API.
package validation

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"
)

const (
	MsgNameLength  = "2-64 characters required"
	MsgEmailFormat = "Wrong email format"
	MsgPhoneFormat = "Wrong phone number format"
	MsgRequired    = "This field is required"
)

var (
	emailRe = regexp.MustCompile(`(?i)^(([^<>()\[\]\.,;:\s@"]+(\.[^<>()\[\]\.,;:\s@"]+)*)|(".+"))@(([^<>()\[\]\.,;:\s@"]+\.)+[^<>()\[\]\.,;:\s@"]{2,})$`)
	phoneRe = regexp.MustCompile(`^[+]?[(]?[0-9]{3}[)]?[-. ]?[0-9]{3}[-. ]?[0-9]{4,6}$`)
)

// ValidateName accepts 2 to 64 characters.
func ValidateName(name string) []string {
	if n := utf8.RuneCountInString(name); n < 2 || n > 64 {
		return []string{MsgNameLength}
	}
	return nil
}

func ValidateEmail(email string) []string {
	if !emailRe.MatchString(email) {
		return []string{MsgEmailFormat}
	}
	return nil
}

// ValidatePhoneNumber accepts forms like +380501234567, (050) 123-4567 or
// 050.123.45678.
func ValidatePhoneNumber(phone string) []string {
	if !phoneRe.MatchString(phone) {
		return []string{MsgPhoneFormat}
	}
	return nil
}

func ValidateRequired(v string) []string {
	if strings.TrimSpace(v) == "" {
		return []string{MsgRequired}
	}
	return nil
}

// FieldErrors maps a field name to its messages.
type FieldErrors map[string][]string

// Check runs validators against value and records their messages.
func (fe FieldErrors) Check(field, value string, validators ...func(string) []string) {
	for _, v := range validators {
		if msgs := v(value); len(msgs) > 0 {
			fe[field] = append(fe[field], msgs...)
		}
	}
}

// Err returns fe as an error, or nil when there is nothing to report.
func (fe FieldErrors) Err() error {
	if len(fe) == 0 {
		return nil
	}
	return fe
}

func (fe FieldErrors) Error() string {
	fields := make([]string, 0, len(fe))
	for f := range fe {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+strings.Join(fe[f], ", "))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}
