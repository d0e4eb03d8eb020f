package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Alternative is a community-submitted substitute for a mainstream
// product. It stays invisible to the public listing until an admin
// flips Approved; Upvotes holds the denormalized net vote score and is
// only ever written by the vote service.
type Alternative struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	Title       string    `gorm:"not null" json:"title"`
	Replaces    string    `gorm:"not null" json:"replaces"`
	Description string    `gorm:"type:text;not null" json:"description"`
	Reasons     string    `gorm:"type:text;not null" json:"reasons"`
	Benefits    string    `gorm:"type:text;not null" json:"benefits"`
	Website     string    `json:"website"` // optional
	Category    string    `gorm:"not null;index" json:"category"`
	Upvotes     int       `gorm:"default:0" json:"upvotes"`
	Approved    bool      `gorm:"default:false;index" json:"approved"`
	SubmitterID string    `gorm:"size:36;not null;index" json:"submitterId"`
	Submitter   User      `gorm:"foreignKey:SubmitterID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	Comments []Comment `gorm:"foreignKey:AlternativeID" json:"-"`
}

func (a *Alternative) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
