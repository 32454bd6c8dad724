package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Record types. The type is the record's categorization axis and never
// changes meaning: Red-Flag reports corruption, Intervention requests
// public works.
const (
	TypeRedFlag      = "Red-Flag"
	TypeIntervention = "Intervention"
)

// Record statuses. A record starts pending; resolved and rejected are
// terminal.
const (
	StatusPending            = "pending"
	StatusUnderInvestigation = "under investigation"
	StatusResolved           = "resolved"
	StatusRejected           = "rejected"
)

// Record is a citizen report. Title is stored normalized (trimmed,
// lowercased) and must belong to the category whitelist for its type.
type Record struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Type        string         `gorm:"size:20;not null" json:"type"`
	Title       string         `gorm:"size:100;not null" json:"title"`
	Description string         `gorm:"type:text;not null" json:"description"`
	Status      string         `gorm:"size:30;not null;default:'pending'" json:"status"`
	Latitude    *float64       `json:"latitude"`
	Longitude   *float64       `json:"longitude"`
	Images      datatypes.JSON `json:"images"`
	UserID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`

	User          User           `gorm:"foreignKey:UserID" json:"-"`
	Notifications []Notification `gorm:"foreignKey:RecordID;constraint:OnDelete:CASCADE" json:"-"`
}

// Editable reports whether the owning user may still mutate content
// fields (title, description, type, geodata, images) or delete the
// record. Any status past pending locks the record for its owner.
func (r *Record) Editable() bool {
	return r.Status == StatusPending
}

// ValidStatus reports whether s is a known record status.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusUnderInvestigation, StatusResolved, StatusRejected:
		return true
	}
	return false
}

// statusTransitions is the forward-only lifecycle graph. Terminal states
// (resolved, rejected) have no outgoing edges; reopening is not supported.
var statusTransitions = map[string][]string{
	StatusPending:            {StatusUnderInvestigation, StatusResolved, StatusRejected},
	StatusUnderInvestigation: {StatusResolved, StatusRejected},
	StatusResolved:           {},
	StatusRejected:           {},
}

// CanTransition reports whether a record may move from one status to
// another. Same-status "transitions" are not covered here; callers treat
// old == new as a no-op.
func CanTransition(from, to string) bool {
	for _, next := range statusTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
