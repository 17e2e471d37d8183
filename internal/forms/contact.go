// Package forms validates user input before anything is sent to the API.
package forms

import (
	"errors"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/Zachkp/portfolio/internal/api"
)

// Contact form fields, in display order.
const (
	FieldName    = "name"
	FieldEmail   = "email"
	FieldSubject = "subject"
	FieldMessage = "message"
)

var fieldOrder = []string{FieldName, FieldEmail, FieldSubject, FieldMessage}

var emailPattern = regexp.MustCompile(`(?i)^[A-Z0-9._%+-]+@[A-Z0-9.-]+\.[A-Z]{2,}$`)

// ValidationErrors maps a field to its first violated rule.
type ValidationErrors map[string]string

func (v ValidationErrors) Error() string {
	msgs := make([]string, 0, len(v))
	for _, f := range fieldOrder {
		if m, ok := v[f]; ok {
			msgs = append(msgs, m)
		}
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// Err returns v as an error, or nil when there are no violations.
func (v ValidationErrors) Err() error {
	if len(v) == 0 {
		return nil
	}
	return v
}

// IsValidationError reports whether err carries field violations.
func IsValidationError(err error) bool {
	var v ValidationErrors
	return errors.As(err, &v)
}

type rule struct {
	field    string
	value    string
	required string
	min      int
	short    string
}

// ValidateContact trims msg in place and checks every field. The result is
// empty when the message may be sent.
func ValidateContact(msg *api.ContactMessage) ValidationErrors {
	msg.Name = strings.TrimSpace(msg.Name)
	msg.Email = strings.TrimSpace(msg.Email)
	msg.Subject = strings.TrimSpace(msg.Subject)
	msg.Message = strings.TrimSpace(msg.Message)

	errs := ValidationErrors{}
	rules := []rule{
		{FieldName, msg.Name, "Name is required", 2, "Name should be at least 2 characters"},
		{FieldEmail, msg.Email, "Email is required", 0, ""},
		{FieldSubject, msg.Subject, "Subject is required", 3, "Subject should be at least 3 characters"},
		{FieldMessage, msg.Message, "Message is required", 10, "Message should be at least 10 characters"},
	}
	for _, r := range rules {
		switch {
		case r.value == "":
			errs[r.field] = r.required
		case utf8.RuneCountInString(r.value) < r.min:
			errs[r.field] = r.short
		}
	}
	if _, ok := errs[FieldEmail]; !ok && !emailPattern.MatchString(msg.Email) {
		errs[FieldEmail] = "Invalid email address"
	}
	return errs
}
