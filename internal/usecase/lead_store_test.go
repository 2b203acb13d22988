package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/xcarvalho/leadtrack/internal/entity"
)

// MockLeadRepository
type MockLeadRepository struct {
	mock.Mock
}

func (m *MockLeadRepository) Load(ctx context.Context) ([]*entity.Lead, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Lead), args.Error(1)
}

func (m *MockLeadRepository) Save(ctx context.Context, leads []*entity.Lead) error {
	args := m.Called(ctx, leads)
	return args.Error(0)
}

func newTestStore(t *testing.T) (*LeadStore, *MockLeadRepository) {
	t.Helper()
	repo := new(MockLeadRepository)
	repo.On("Load", mock.Anything).Return(nil, nil)
	repo.On("Save", mock.Anything, mock.Anything).Return(nil)

	store, err := NewLeadStore(context.Background(), repo)
	assert.NoError(t, err)
	return store, repo
}

func sampleInput() LeadInput {
	return LeadInput{
		CompanyName: "TechCorp",
		ContactName: "John Smith",
		Title:       "CTO",
		Email:       "john@techcorp.com",
	}
}

func TestCreateThenGet(t *testing.T) {
	store, _ := newTestStore(t)

	out, err := store.Create(context.Background(), sampleInput())
	assert.NoError(t, err)
	assert.Empty(t, out.Warning)
	assert.NotEmpty(t, out.Lead.ID)
	assert.False(t, out.Lead.DateAdded.IsZero())
	assert.Equal(t, entity.StatusNotContacted, out.Lead.Status)

	got, err := store.Get(out.Lead.ID)
	assert.NoError(t, err)
	assert.Len(t, got.ActivityHistory, 1)
	assert.Equal(t, entity.ActivityCreated, got.ActivityHistory[0].Type)
	assert.Equal(t, "Lead created for John Smith", got.ActivityHistory[0].Description)
}

func TestCreateValidation(t *testing.T) {
	store, _ := newTestStore(t)

	tests := []struct {
		name   string
		mutate func(*LeadInput)
		field  string
	}{
		{"missing company", func(in *LeadInput) { in.CompanyName = "" }, "company_name"},
		{"missing contact", func(in *LeadInput) { in.ContactName = "" }, "contact_name"},
		{"missing title", func(in *LeadInput) { in.Title = "" }, "title"},
		{"missing email", func(in *LeadInput) { in.Email = "" }, "email"},
		{"malformed email", func(in *LeadInput) { in.Email = "not-an-email" }, "email"},
		{"email without tld", func(in *LeadInput) { in.Email = "john@techcorp" }, "email"},
		{"bad status", func(in *LeadInput) { in.Status = "archived" }, "status"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			input := sampleInput()
			tc.mutate(&input)

			_, err := store.Create(context.Background(), input)
			assert.Error(t, err)
			assert.True(t, IsValidationError(err))

			var verrs ValidationErrors
			assert.True(t, errors.As(err, &verrs))
			assert.Equal(t, tc.field, verrs[0].Field)
		})
	}
}

func TestCreateNormalizes(t *testing.T) {
	store, _ := newTestStore(t)

	input := sampleInput()
	input.Email = "John@TechCorp.COM"
	input.LinkedinURL = "linkedin.com/in/johnsmith"
	input.Tags = []string{"Hot Lead", "Hot Lead", "Technical", " "}

	out, err := store.Create(context.Background(), input)
	assert.NoError(t, err)
	assert.Equal(t, "john@techcorp.com", out.Lead.Email)
	assert.Equal(t, "https://linkedin.com/in/johnsmith", out.Lead.LinkedinURL)
	assert.Equal(t, []string{"Hot Lead", "Technical"}, out.Lead.Tags)
}

func TestDuplicateEmailWarnsButCreates(t *testing.T) {
	store, _ := newTestStore(t)

	first, err := store.Create(context.Background(), sampleInput())
	assert.NoError(t, err)
	assert.Empty(t, first.Warning)

	second := sampleInput()
	second.ContactName = "Jane Smith"
	second.Email = "JOHN@techcorp.com" // detection is case-insensitive

	out, err := store.Create(context.Background(), second)
	assert.NoError(t, err)
	assert.NotEmpty(t, out.Warning)
	assert.NotEqual(t, first.Lead.ID, out.Lead.ID)
	assert.Len(t, store.List(""), 2)
}

func TestUpdateStatusChange(t *testing.T) {
	store, _ := newTestStore(t)

	created, err := store.Create(context.Background(), sampleInput())
	assert.NoError(t, err)

	input := sampleInput()
	input.Status = entity.StatusContacted

	out, err := store.Update(context.Background(), created.Lead.ID, input)
	assert.NoError(t, err)
	assert.Equal(t, entity.StatusContacted, out.Lead.Status)
	assert.NotNil(t, out.Lead.LastContacted)

	history := out.Lead.ActivityHistory
	assert.Len(t, history, 2)
	last := history[1]
	assert.Equal(t, entity.ActivityStatusChanged, last.Type)
	assert.Equal(t, "Status changed from not_contacted to contacted", last.Description)
	assert.Equal(t, "not_contacted", last.Details.Old)
	assert.Equal(t, "contacted", last.Details.New)
	assert.Equal(t, *out.Lead.LastContacted, last.Timestamp)
}

func TestUpdateTagDiff(t *testing.T) {
	store, _ := newTestStore(t)

	input := sampleInput()
	input.Tags = []string{"Hot Lead", "Technical"}
	created, err := store.Create(context.Background(), input)
	assert.NoError(t, err)

	input.Tags = []string{"Technical", "Enterprise", "Q3"}
	out, err := store.Update(context.Background(), created.Lead.ID, input)
	assert.NoError(t, err)
	assert.Equal(t, []string{"Technical", "Enterprise", "Q3"}, out.Lead.Tags)

	// 1 created + 2 tag_added + 1 tag_removed
	history := out.Lead.ActivityHistory
	assert.Len(t, history, 4)

	var added, removed int
	for _, a := range history[1:] {
		switch a.Type {
		case entity.ActivityTagAdded:
			added++
		case entity.ActivityTagRemoved:
			removed++
		}
	}
	assert.Equal(t, 2, added)
	assert.Equal(t, 1, removed)
}

func TestUpdateUntrackedFieldsAppendsGenericEntry(t *testing.T) {
	store, _ := newTestStore(t)

	created, err := store.Create(context.Background(), sampleInput())
	assert.NoError(t, err)

	input := sampleInput()
	input.Title = "CEO"

	out, err := store.Update(context.Background(), created.Lead.ID, input)
	assert.NoError(t, err)
	assert.Equal(t, "CEO", out.Lead.Title)

	history := out.Lead.ActivityHistory
	assert.Len(t, history, 2)
	assert.Equal(t, entity.ActivityUpdated, history[1].Type)
	assert.Equal(t, "Lead information updated", history[1].Description)
}

func TestUpdateNotesAppendsEntry(t *testing.T) {
	store, _ := newTestStore(t)

	created, err := store.Create(context.Background(), sampleInput())
	assert.NoError(t, err)

	input := sampleInput()
	input.Notes = "Spoke at the conference, wants a demo."

	out, err := store.Update(context.Background(), created.Lead.ID, input)
	assert.NoError(t, err)

	history := out.Lead.ActivityHistory
	assert.Len(t, history, 2)
	assert.Equal(t, entity.ActivityNoteUpdated, history[1].Type)
	assert.Equal(t, input.Notes, history[1].Details.Note)
}

func TestUpdateDuplicateWarningExcludesSelf(t *testing.T) {
	store, _ := newTestStore(t)

	created, err := store.Create(context.Background(), sampleInput())
	assert.NoError(t, err)

	other := sampleInput()
	other.Email = "jane@techcorp.com"
	_, err = store.Create(context.Background(), other)
	assert.NoError(t, err)

	// Keeping its own email must not warn.
	out, err := store.Update(context.Background(), created.Lead.ID, sampleInput())
	assert.NoError(t, err)
	assert.Empty(t, out.Warning)

	// Taking the other lead's email must.
	taken := sampleInput()
	taken.Email = "jane@techcorp.com"
	out, err = store.Update(context.Background(), created.Lead.ID, taken)
	assert.NoError(t, err)
	assert.NotEmpty(t, out.Warning)
}

func TestUpdateNotFound(t *testing.T) {
	store, _ := newTestStore(t)

	_, err := store.Update(context.Background(), "missing", sampleInput())
	assert.True(t, IsNotFound(err))
}

func TestDelete(t *testing.T) {
	store, _ := newTestStore(t)

	created, err := store.Create(context.Background(), sampleInput())
	assert.NoError(t, err)

	assert.NoError(t, store.Delete(context.Background(), created.Lead.ID))

	_, err = store.Get(created.Lead.ID)
	assert.True(t, IsNotFound(err))
	assert.Empty(t, store.List(""))
	assert.Equal(t, 0, store.Stats().Total)

	assert.True(t, IsNotFound(store.Delete(context.Background(), created.Lead.ID)))
}

func TestListSearch(t *testing.T) {
	store, _ := newTestStore(t)

	a := sampleInput()
	_, err := store.Create(context.Background(), a)
	assert.NoError(t, err)

	b := LeadInput{
		CompanyName: "DataWorks",
		ContactName: "Alice Liu",
		Title:       "VP Engineering",
		Email:       "alice@dataworks.io",
	}
	_, err = store.Create(context.Background(), b)
	assert.NoError(t, err)

	assert.Len(t, store.List(""), 2)
	assert.Len(t, store.List("techcorp"), 1)
	assert.Len(t, store.List("ALICE"), 1)
	assert.Len(t, store.List("works"), 1)
	assert.Len(t, store.List("nobody"), 0)
}

func TestSaveFailureDoesNotCommit(t *testing.T) {
	repo := new(MockLeadRepository)
	repo.On("Load", mock.Anything).Return(nil, nil)
	repo.On("Save", mock.Anything, mock.Anything).Return(errors.New("disk full"))

	store, err := NewLeadStore(context.Background(), repo)
	assert.NoError(t, err)

	_, err = store.Create(context.Background(), sampleInput())
	assert.EqualError(t, err, "disk full")
	assert.Empty(t, store.List(""))
	assert.Equal(t, 0, store.Stats().Total)
}

func TestUpdateSaveFailureKeepsOldState(t *testing.T) {
	repo := new(MockLeadRepository)
	repo.On("Load", mock.Anything).Return(nil, nil)
	repo.On("Save", mock.Anything, mock.Anything).Return(nil).Once()
	repo.On("Save", mock.Anything, mock.Anything).Return(errors.New("disk full"))

	store, err := NewLeadStore(context.Background(), repo)
	assert.NoError(t, err)

	created, err := store.Create(context.Background(), sampleInput())
	assert.NoError(t, err)

	input := sampleInput()
	input.Status = entity.StatusContacted
	_, err = store.Update(context.Background(), created.Lead.ID, input)
	assert.EqualError(t, err, "disk full")

	got, err := store.Get(created.Lead.ID)
	assert.NoError(t, err)
	assert.Equal(t, entity.StatusNotContacted, got.Status)
	assert.Len(t, got.ActivityHistory, 1)
}

func TestLoadErrorPropagates(t *testing.T) {
	repo := new(MockLeadRepository)
	repo.On("Load", mock.Anything).Return(nil, errors.New("corrupt"))

	_, err := NewLeadStore(context.Background(), repo)
	assert.EqualError(t, err, "corrupt")
}

func TestTimestampsNeverGoBackwards(t *testing.T) {
	store, _ := newTestStore(t)

	created, err := store.Create(context.Background(), sampleInput())
	assert.NoError(t, err)
	createdAt := created.Lead.ActivityHistory[0].Timestamp

	// Simulate a wall clock that stepped backwards.
	store.now = func() time.Time { return createdAt.Add(-time.Hour) }

	input := sampleInput()
	input.Status = entity.StatusContacted
	out, err := store.Update(context.Background(), created.Lead.ID, input)
	assert.NoError(t, err)

	history := out.Lead.ActivityHistory
	assert.Len(t, history, 2)
	assert.False(t, history[1].Timestamp.Before(history[0].Timestamp))
}
