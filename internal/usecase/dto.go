package usecase

import (
	"context"

	"github.com/xcarvalho/leadtrack/internal/entity"
)

// LeadInput carries the caller-editable fields of a lead. Updates replace
// the whole set, mirroring the form the UI submits.
type LeadInput struct {
	CompanyName string            `json:"company_name" validate:"required,max=200"`
	ContactName string            `json:"contact_name" validate:"required,max=200"`
	Title       string            `json:"title" validate:"required,max=200"`
	Email       string            `json:"email" validate:"required,max=200,leademail"`
	LinkedinURL string            `json:"linkedin_url" validate:"omitempty,max=500"`
	Status      entity.LeadStatus `json:"status" validate:"omitempty,oneof=not_contacted contacted responded"`
	Notes       string            `json:"notes" validate:"omitempty,max=2000"`
	Tags        []string          `json:"tags"`
}

// LeadOutput pairs a lead with an advisory warning. Warning is set when
// another lead already uses the same email; the operation still succeeds.
type LeadOutput struct {
	Lead    *entity.Lead `json:"lead"`
	Warning string       `json:"warning,omitempty"`
}

type CompanyCount struct {
	Company string `json:"company"`
	Count   int    `json:"count"`
}

type Stats struct {
	Total        int                       `json:"total"`
	ByStatus     map[entity.LeadStatus]int `json:"by_status"`
	TopCompanies []CompanyCount            `json:"top_companies"`
}

type TagCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// LeadRepository is the persistence contract for the whole collection.
// Save must replace the stored document atomically.
type LeadRepository interface {
	Load(ctx context.Context) ([]*entity.Lead, error)
	Save(ctx context.Context, leads []*entity.Lead) error
}
