package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Comment struct {
	ID            string    `gorm:"primaryKey;size:36" json:"id"`
	Content       string    `gorm:"type:text;not null" json:"content"`
	UserID        string    `gorm:"size:36;not null;index" json:"userId"`
	User          User      `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	AlternativeID string    `gorm:"size:36;not null;index" json:"alternativeId"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
