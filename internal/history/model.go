package history

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SearchRecord is one persisted weather lookup. Records are created and
// deleted, never updated.
type SearchRecord struct {
	ID   string    `gorm:"primaryKey;size:36" json:"_id"`
	City string    `gorm:"index:idx_search_records_city" json:"city"`
	Date time.Time `gorm:"index:idx_search_records_date" json:"date"`
}

// BeforeCreate assigns the identifier and defaults the timestamp.
func (r *SearchRecord) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.Date.IsZero() {
		r.Date = time.Now().UTC()
	}
	return nil
}
