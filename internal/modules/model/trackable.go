package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Trackable holds the audit fields shared by every entity.
type Trackable struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	CreatedByID uuid.UUID  `gorm:"type:uuid;not null;index" json:"created_by"`
	UpdatedByID *uuid.UUID `gorm:"type:uuid" json:"updated_by"`
}

// Touch records actor as the last writer. The creator is only set once.
func (t *Trackable) Touch(actor uuid.UUID) {
	if t.CreatedByID == uuid.Nil {
		t.CreatedByID = actor
	}
	t.UpdatedByID = &actor
}

func (t *Trackable) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
