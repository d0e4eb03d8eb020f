package services

import (
	"errors"
	"fmt"

	"freeworldfirst/internal/models"

	"gorm.io/gorm"
)

type CommentService struct {
	db *gorm.DB
}

func NewCommentService(gdb *gorm.DB) *CommentService {
	return &CommentService{db: gdb}
}

// Create attaches a comment to an existing alternative.
func (s *CommentService) Create(alternativeID, userID, content string) (*models.Comment, error) {
	var count int64
	if err := s.db.Model(&models.Alternative{}).Where("id = ?", alternativeID).Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, fmt.Errorf("alternative %s: %w", alternativeID, ErrNotFound)
	}

	comment := models.Comment{
		Content:       content,
		UserID:        userID,
		AlternativeID: alternativeID,
	}
	if err := s.db.Create(&comment).Error; err != nil {
		return nil, err
	}

	if err := s.db.Preload("User").First(&comment, "id = ?", comment.ID).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// Delete removes a comment on behalf of its author or an admin.
func (s *CommentService) Delete(id, actorID string, actorIsAdmin bool) error {
	var comment models.Comment
	if err := s.db.First(&comment, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("comment %s: %w", id, ErrNotFound)
		}
		return err
	}

	if !actorIsAdmin && comment.UserID != actorID {
		return fmt.Errorf("not allowed to delete this comment: %w", ErrForbidden)
	}

	return s.db.Delete(&comment).Error
}
