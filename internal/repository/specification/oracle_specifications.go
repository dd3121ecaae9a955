package specification

import (
	"time"

	"gorm.io/gorm"
)

// NotArchived hides sessions the user archived from the picker.
// Sessions are never hard-deleted.
type NotArchived struct{}

func (s NotArchived) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("archived = ?", false)
}

// CreatedBefore selects sessions older than a cutoff, used to collect the
// conversation history that falls outside the FREE memory window.
type CreatedBefore struct {
	Time time.Time
}

func (s CreatedBefore) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("created_at < ?", s.Time)
}
