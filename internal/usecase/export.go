package usecase

import (
	"iter"
	"strings"

	"github.com/xcarvalho/leadtrack/internal/entity"
)

// ExportColumns is the fixed CSV column order. Activity history is not
// exported.
var ExportColumns = []string{
	"id",
	"company_name",
	"contact_name",
	"title",
	"email",
	"linkedin_url",
	"date_added",
	"last_contacted",
	"status",
	"notes",
	"tags",
}

// TagSeparator joins tags inside the single tags column; kept distinct from
// the CSV field separator.
const TagSeparator = ";"

const exportTimeLayout = "2006-01-02 15:04:05"

// ExportRows yields one flat row per lead in store order. The sequence is
// built over a snapshot taken when ExportRows is called, so it can be
// iterated more than once and is not affected by later mutations.
func (s *LeadStore) ExportRows() iter.Seq[[]string] {
	s.mu.Lock()
	snapshot := make([]*entity.Lead, len(s.leads))
	copy(snapshot, s.leads)
	s.mu.Unlock()

	return func(yield func([]string) bool) {
		for _, l := range snapshot {
			if !yield(exportRow(l)) {
				return
			}
		}
	}
}

func exportRow(l *entity.Lead) []string {
	lastContacted := ""
	if l.LastContacted != nil {
		lastContacted = l.LastContacted.Format(exportTimeLayout)
	}
	return []string{
		l.ID,
		l.CompanyName,
		l.ContactName,
		l.Title,
		l.Email,
		l.LinkedinURL,
		l.DateAdded.Format(exportTimeLayout),
		lastContacted,
		string(l.Status),
		l.Notes,
		strings.Join(l.Tags, TagSeparator),
	}
}
