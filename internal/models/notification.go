package models

import (
	"time"

	"github.com/google/uuid"
)

// Notification is an immutable status-change message for a user. The
// record link is optional so user-level notices not tied to a report can
// share the table.
type Notification struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Message    string     `gorm:"type:text;not null" json:"message"`
	ApprovedAt time.Time  `gorm:"not null" json:"approved_at"`
	ResolvedAt *time.Time `json:"resolved_at"`
	UserID     uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	RecordID   *uuid.UUID `gorm:"type:uuid;index" json:"record_id"`

	User   User    `gorm:"foreignKey:UserID" json:"-"`
	Record *Record `gorm:"foreignKey:RecordID" json:"-"`
}
