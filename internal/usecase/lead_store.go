package usecase

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/xcarvalho/leadtrack/internal/entity"
)

// LeadStore owns the authoritative in-memory collection and is the sole
// writer of the persisted document. Every mutation runs under one mutex as
// a load-modify-save sequence; the in-memory state is only swapped after
// Save succeeds, so a failed write leaves nothing half-committed.
type LeadStore struct {
	mu    sync.Mutex
	repo  LeadRepository
	leads []*entity.Lead
	index map[string]int
	now   func() time.Time
}

// NewLeadStore loads the collection once at startup. A corrupt document
// surfaces here and the caller must refuse to proceed rather than risk
// overwriting recoverable data.
func NewLeadStore(ctx context.Context, repo LeadRepository) (*LeadStore, error) {
	leads, err := repo.Load(ctx)
	if err != nil {
		return nil, err
	}

	s := &LeadStore{
		repo: repo,
		now:  time.Now,
	}
	s.commit(leads)
	return s, nil
}

// Create validates the input, generates the identity fields and persists the
// new lead with its initial history entry. A duplicate email is advisory
// only: creation proceeds and the warning rides along in the output.
func (s *LeadStore) Create(ctx context.Context, input LeadInput) (*LeadOutput, error) {
	input = normalizeInput(input)
	if verrs := ValidateLeadInput(input); len(verrs) > 0 {
		return nil, verrs
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	warning := s.duplicateWarning(input.Email, "")

	now := s.now()
	lead := &entity.Lead{
		ID:              uuid.New().String(),
		CompanyName:     input.CompanyName,
		ContactName:     input.ContactName,
		Title:           input.Title,
		Email:           input.Email,
		LinkedinURL:     input.LinkedinURL,
		DateAdded:       now,
		Status:          input.Status,
		Notes:           input.Notes,
		Tags:            input.Tags,
		ActivityHistory: []entity.Activity{NewCreationActivity(input.ContactName, now)},
	}

	next := append(slices.Clone(s.leads), lead)
	if err := s.repo.Save(ctx, next); err != nil {
		return nil, err
	}
	s.commit(next)

	return &LeadOutput{Lead: lead, Warning: warning}, nil
}

// Get returns the lead or a NotFoundError.
func (s *LeadStore) Get(id string) (*entity.Lead, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pos, ok := s.index[id]
	if !ok {
		return nil, &NotFoundError{ID: id}
	}
	return s.leads[pos], nil
}

// List returns leads in insertion order. A non-empty search keeps only
// leads whose company, contact or email contains the query,
// case-insensitively.
func (s *LeadStore) List(search string) []*entity.Lead {
	s.mu.Lock()
	defer s.mu.Unlock()

	if search == "" {
		return slices.Clone(s.leads)
	}

	query := strings.ToLower(search)
	var out []*entity.Lead
	for _, l := range s.leads {
		if strings.Contains(strings.ToLower(l.CompanyName), query) ||
			strings.Contains(strings.ToLower(l.ContactName), query) ||
			strings.Contains(strings.ToLower(l.Email), query) {
			out = append(out, l)
		}
	}
	return out
}

// Update replaces the editable fields, appends one history entry per
// tracked change and persists before the new state becomes visible. A
// status transition into a contacted-class value stamps LastContacted.
func (s *LeadStore) Update(ctx context.Context, id string, input LeadInput) (*LeadOutput, error) {
	input = normalizeInput(input)
	if verrs := ValidateLeadInput(input); len(verrs) > 0 {
		return nil, verrs
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	pos, ok := s.index[id]
	if !ok {
		return nil, &NotFoundError{ID: id}
	}
	old := s.leads[pos]

	warning := s.duplicateWarning(input.Email, id)

	now := clampToHistory(old.ActivityHistory, s.now())
	entries := DiffActivities(old, input, now)

	staged := old.Clone()
	staged.CompanyName = input.CompanyName
	staged.ContactName = input.ContactName
	staged.Title = input.Title
	staged.Email = input.Email
	staged.LinkedinURL = input.LinkedinURL
	staged.Status = input.Status
	staged.Notes = input.Notes
	staged.Tags = input.Tags
	staged.ActivityHistory = append(staged.ActivityHistory, entries...)

	if input.Status != old.Status && input.Status.Contacted() {
		t := now
		staged.LastContacted = &t
	}

	next := slices.Clone(s.leads)
	next[pos] = staged
	if err := s.repo.Save(ctx, next); err != nil {
		return nil, err
	}
	s.commit(next)

	return &LeadOutput{Lead: staged, Warning: warning}, nil
}

// Delete removes the lead and its whole history. Irreversible.
func (s *LeadStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	pos, ok := s.index[id]
	if !ok {
		return &NotFoundError{ID: id}
	}

	next := slices.Clone(s.leads)
	next = slices.Delete(next, pos, pos+1)
	if err := s.repo.Save(ctx, next); err != nil {
		return err
	}
	s.commit(next)
	return nil
}

// commit swaps the in-memory view and rebuilds the id index. Callers hold
// the mutex (or are constructing the store).
func (s *LeadStore) commit(leads []*entity.Lead) {
	index := make(map[string]int, len(leads))
	for i, l := range leads {
		index[l.ID] = i
	}
	s.leads = leads
	s.index = index
}

func (s *LeadStore) duplicateWarning(email, excludeID string) string {
	for _, l := range s.leads {
		if l.ID != excludeID && strings.EqualFold(l.Email, email) {
			return fmt.Sprintf("a lead with email %s already exists", email)
		}
	}
	return ""
}
