package usecase

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/xcarvalho/leadtrack/internal/entity"
)

// emailPattern is stricter than validator's built-in email tag: it demands a
// plain local@domain.tld shape with an alphabetic TLD.
var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// LeadEmailValidator backs the custom "leademail" tag.
var LeadEmailValidator = func(fl validator.FieldLevel) bool {
	return emailPattern.MatchString(fl.Field().String())
}

const (
	msgRequired     = "is required"
	msgTooLong      = "is too long"
	msgInvalidEmail = "must be in format name@company.com"
	msgBadStatus    = "must be one of not_contacted, contacted, responded"
)

var customMessages = map[string]string{
	"LeadInput.CompanyName.required": msgRequired,
	"LeadInput.CompanyName.max":      msgTooLong,
	"LeadInput.ContactName.required": msgRequired,
	"LeadInput.ContactName.max":      msgTooLong,
	"LeadInput.Title.required":       msgRequired,
	"LeadInput.Title.max":            msgTooLong,
	"LeadInput.Email.required":       msgRequired,
	"LeadInput.Email.max":            msgTooLong,
	"LeadInput.Email.leademail":      msgInvalidEmail,
	"LeadInput.LinkedinURL.max":      msgTooLong,
	"LeadInput.Status.oneof":         msgBadStatus,
	"LeadInput.Notes.max":            msgTooLong,
}

var fieldNames = map[string]string{
	"CompanyName": "company_name",
	"ContactName": "contact_name",
	"Title":       "title",
	"Email":       "email",
	"LinkedinURL": "linkedin_url",
	"Status":      "status",
	"Notes":       "notes",
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation("leademail", LeadEmailValidator); err != nil {
		panic(err)
	}
	return v
}

// ValidateLeadInput runs struct validation and maps the raw validator output
// to field/message pairs the API can return as-is. A nil result means valid.
func ValidateLeadInput(input LeadInput) ValidationErrors {
	err := validate.Struct(input)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return ValidationErrors{{Field: "input", Message: err.Error()}}
	}

	var out ValidationErrors
	for _, e := range verrs {
		field := e.Field()
		if name, ok := fieldNames[field]; ok {
			field = name
		}
		msg := field + " is invalid"
		if m, ok := customMessages[e.StructNamespace()+"."+e.Tag()]; ok {
			msg = m
		}
		out = append(out, ValidationError{Field: field, Message: msg})
	}
	return out
}

// normalizeInput applies the canonical forms the store persists: lowercased
// email, trimmed https-prefixed linkedin URL, defaulted status, de-duplicated
// tags in first-seen order.
func normalizeInput(input LeadInput) LeadInput {
	input.CompanyName = strings.TrimSpace(input.CompanyName)
	input.ContactName = strings.TrimSpace(input.ContactName)
	input.Title = strings.TrimSpace(input.Title)
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	input.LinkedinURL = normalizeLinkedinURL(input.LinkedinURL)
	if input.Status == "" {
		input.Status = entity.StatusNotContacted
	}
	input.Tags = dedupeTags(input.Tags)
	return input
}

func normalizeLinkedinURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		return "https://" + raw
	}
	return raw
}

func dedupeTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
