package usecase

import (
	"fmt"
	"time"

	"github.com/xcarvalho/leadtrack/internal/entity"
)

const notePreviewLen = 100

// NewCreationActivity builds the mandatory first history entry; the store
// appends it atomically with the lead itself.
func NewCreationActivity(contactName string, now time.Time) entity.Activity {
	return entity.Activity{
		Timestamp:   now,
		Type:        entity.ActivityCreated,
		Description: "Lead created for " + contactName,
	}
}

// DiffActivities compares the stored lead against incoming fields and
// returns the history entries the change implies. It never mutates either
// side. When no tracked field (status, notes, tags) changed, a single
// generic entry is returned so every update leaves a trace.
func DiffActivities(old *entity.Lead, input LeadInput, now time.Time) []entity.Activity {
	var entries []entity.Activity

	if input.Status != old.Status {
		entries = append(entries, entity.Activity{
			Timestamp:   now,
			Type:        entity.ActivityStatusChanged,
			Description: fmt.Sprintf("Status changed from %s to %s", old.Status, input.Status),
			Details:     &entity.ActivityDetails{Old: string(old.Status), New: string(input.Status)},
		})
	}

	if input.Notes != "" && input.Notes != old.Notes {
		entries = append(entries, entity.Activity{
			Timestamp:   now,
			Type:        entity.ActivityNoteUpdated,
			Description: "Note updated",
			Details:     &entity.ActivityDetails{Note: notePreview(input.Notes)},
		})
	}

	// Tags diff with set semantics, reported in a stable order: additions
	// follow the incoming tag order, removals the stored order.
	oldSet := tagSet(old.Tags)
	newSet := tagSet(input.Tags)
	for _, tag := range input.Tags {
		if _, ok := oldSet[tag]; !ok {
			entries = append(entries, entity.Activity{
				Timestamp:   now,
				Type:        entity.ActivityTagAdded,
				Description: "Tag added: " + tag,
			})
		}
	}
	for _, tag := range old.Tags {
		if _, ok := newSet[tag]; !ok {
			entries = append(entries, entity.Activity{
				Timestamp:   now,
				Type:        entity.ActivityTagRemoved,
				Description: "Tag removed: " + tag,
			})
		}
	}

	if len(entries) == 0 {
		entries = append(entries, entity.Activity{
			Timestamp:   now,
			Type:        entity.ActivityUpdated,
			Description: "Lead information updated",
		})
	}

	return entries
}

// clampToHistory keeps appended timestamps non-decreasing even if the wall
// clock stepped backwards since the last entry was written.
func clampToHistory(history []entity.Activity, now time.Time) time.Time {
	if len(history) == 0 {
		return now
	}
	if last := history[len(history)-1].Timestamp; now.Before(last) {
		return last
	}
	return now
}

func notePreview(notes string) string {
	if len(notes) > notePreviewLen {
		return notes[:notePreviewLen]
	}
	return notes
}

func tagSet(tags []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		set[t] = struct{}{}
	}
	return set
}
