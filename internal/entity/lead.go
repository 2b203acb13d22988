package entity

import (
	"time"
	// IMPORTANT: no usecase or infra imports here.
)

type LeadStatus string

const (
	StatusNotContacted LeadStatus = "not_contacted"
	StatusContacted    LeadStatus = "contacted"
	StatusResponded    LeadStatus = "responded"
)

// AllLeadStatuses is the closed set of statuses, in lifecycle order.
var AllLeadStatuses = []LeadStatus{StatusNotContacted, StatusContacted, StatusResponded}

func (s LeadStatus) Valid() bool {
	switch s {
	case StatusNotContacted, StatusContacted, StatusResponded:
		return true
	}
	return false
}

// Contacted reports whether the status counts as having reached the lead,
// which is what drives the last_contacted timestamp.
func (s LeadStatus) Contacted() bool {
	return s == StatusContacted || s == StatusResponded
}

type ActivityType string

const (
	ActivityCreated       ActivityType = "created"
	ActivityUpdated       ActivityType = "updated"
	ActivityStatusChanged ActivityType = "status_changed"
	ActivityNoteUpdated   ActivityType = "note_updated"
	ActivityTagAdded      ActivityType = "tag_added"
	ActivityTagRemoved    ActivityType = "tag_removed"
)

// ActivityDetails is the optional structured payload on a history entry.
// Old/New carry status transitions, Note carries a preview of a new note.
type ActivityDetails struct {
	Old  string `json:"old,omitempty"`
	New  string `json:"new,omitempty"`
	Note string `json:"note,omitempty"`
}

// Activity is one immutable history record attached to a lead.
type Activity struct {
	Timestamp   time.Time        `json:"timestamp"`
	Type        ActivityType     `json:"type"`
	Description string           `json:"description"`
	Details     *ActivityDetails `json:"details,omitempty"`
}

// Lead is a tracked sales contact. ID and DateAdded are set by the store at
// creation and never change; ActivityHistory is append-only.
type Lead struct {
	ID              string     `json:"id"`
	CompanyName     string     `json:"company_name"`
	ContactName     string     `json:"contact_name"`
	Title           string     `json:"title"`
	Email           string     `json:"email"`
	LinkedinURL     string     `json:"linkedin_url,omitempty"`
	DateAdded       time.Time  `json:"date_added"`
	LastContacted   *time.Time `json:"last_contacted,omitempty"`
	Status          LeadStatus `json:"status"`
	Notes           string     `json:"notes,omitempty"`
	Tags            []string   `json:"tags"`
	ActivityHistory []Activity `json:"activity_history"`
}

// HasTag does a case-sensitive lookup; tags keep user insertion order.
func (l *Lead) HasTag(tag string) bool {
	for _, t := range l.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Clone returns a deep copy so callers can stage changes without touching
// the stored value until persistence succeeds.
func (l *Lead) Clone() *Lead {
	c := *l
	c.Tags = append([]string(nil), l.Tags...)
	c.ActivityHistory = append([]Activity(nil), l.ActivityHistory...)
	return &c
}
