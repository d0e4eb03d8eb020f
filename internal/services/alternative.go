package services

import (
	"errors"
	"fmt"

	"freeworldfirst/internal/models"

	"gorm.io/gorm"
)

// AlternativeService owns the moderation workflow: alternatives enter
// pending, become publicly visible only through Approve, and are
// mutated only by their submitter or an admin. Rejection is modeled as
// deletion; there is no rejected state.
type AlternativeService struct {
	db *gorm.DB
}

func NewAlternativeService(gdb *gorm.DB) *AlternativeService {
	return &AlternativeService{db: gdb}
}

type CreateAlternativeInput struct {
	Title       string
	Replaces    string
	Description string
	Reasons     string
	Benefits    string
	Website     string
	Category    string
}

// UpdateAlternativeInput carries a partial update; nil fields are left
// untouched. Approved and Upvotes are deliberately absent — they are
// written only by Approve and the vote service.
type UpdateAlternativeInput struct {
	Title       *string
	Replaces    *string
	Description *string
	Reasons     *string
	Benefits    *string
	Website     *string
	Category    *string
}

// Create stores a new alternative in the pending state.
func (s *AlternativeService) Create(submitterID string, in CreateAlternativeInput) (*models.Alternative, error) {
	alt := models.Alternative{
		Title:       in.Title,
		Replaces:    in.Replaces,
		Description: in.Description,
		Reasons:     in.Reasons,
		Benefits:    in.Benefits,
		Website:     in.Website,
		Category:    in.Category,
		SubmitterID: submitterID,
	}
	if err := s.db.Create(&alt).Error; err != nil {
		return nil, err
	}
	return &alt, nil
}

// ListApproved returns the public listing: approved entries only,
// optionally filtered by category, best score first.
func (s *AlternativeService) ListApproved(category string) ([]models.Alternative, error) {
	query := s.db.Preload("Submitter").Where("approved = ?", true)
	if category != "" {
		query = query.Where("category = ?", category)
	}

	var alts []models.Alternative
	if err := query.Order("upvotes DESC").Find(&alts).Error; err != nil {
		return nil, err
	}
	return alts, nil
}

// ListPending returns the moderation queue, newest first.
func (s *AlternativeService) ListPending() ([]models.Alternative, error) {
	var alts []models.Alternative
	err := s.db.Preload("Submitter").
		Where("approved = ?", false).
		Order("created_at DESC").
		Find(&alts).Error
	if err != nil {
		return nil, err
	}
	return alts, nil
}

// Get loads a single alternative with its submitter and comments
// (newest first, each with its author).
func (s *AlternativeService) Get(id string) (*models.Alternative, error) {
	var alt models.Alternative
	err := s.db.Preload("Submitter").
		Preload("Comments", func(gdb *gorm.DB) *gorm.DB {
			return gdb.Order("comments.created_at DESC")
		}).
		Preload("Comments.User").
		First(&alt, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("alternative %s: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return &alt, nil
}

// Categories lists the distinct categories of approved alternatives.
func (s *AlternativeService) Categories() ([]string, error) {
	var categories []string
	err := s.db.Model(&models.Alternative{}).
		Where("approved = ?", true).
		Distinct("category").
		Order("category ASC").
		Pluck("category", &categories).Error
	if err != nil {
		return nil, err
	}
	return categories, nil
}

// authorizeMutation gates update/delete to the submitter or an admin.
// Callers must have resolved the entry first: existence is checked
// before authorization, so a missing id yields NotFound rather than
// Forbidden regardless of who asks.
func (s *AlternativeService) authorizeMutation(alt *models.Alternative, actorID string, actorIsAdmin bool) error {
	if actorIsAdmin {
		return nil
	}
	if alt.SubmitterID != actorID {
		return fmt.Errorf("not allowed to modify this alternative: %w", ErrForbidden)
	}
	return nil
}

// Update applies a partial update on behalf of the submitter or an
// admin.
func (s *AlternativeService) Update(id, actorID string, actorIsAdmin bool, in UpdateAlternativeInput) (*models.Alternative, error) {
	alt, err := s.find(id)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeMutation(alt, actorID, actorIsAdmin); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if in.Title != nil {
		updates["title"] = *in.Title
	}
	if in.Replaces != nil {
		updates["replaces"] = *in.Replaces
	}
	if in.Description != nil {
		updates["description"] = *in.Description
	}
	if in.Reasons != nil {
		updates["reasons"] = *in.Reasons
	}
	if in.Benefits != nil {
		updates["benefits"] = *in.Benefits
	}
	if in.Website != nil {
		updates["website"] = *in.Website
	}
	if in.Category != nil {
		updates["category"] = *in.Category
	}

	if len(updates) > 0 {
		if err := s.db.Model(alt).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return s.find(id)
}

// Delete removes an alternative together with its comments and votes.
// Dependent rows go first; the storage layer is not assumed to cascade.
func (s *AlternativeService) Delete(id, actorID string, actorIsAdmin bool) error {
	alt, err := s.find(id)
	if err != nil {
		return err
	}
	if err := s.authorizeMutation(alt, actorID, actorIsAdmin); err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("alternative_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("alternative_id = ?", id).Delete(&models.Vote{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Alternative{}, "id = ?", id).Error
	})
}

// Approve moves an alternative to the approved state. Approving an
// already-approved entry succeeds and changes nothing; the flag never
// goes back to false.
func (s *AlternativeService) Approve(id string) (*models.Alternative, error) {
	alt, err := s.find(id)
	if err != nil {
		return nil, err
	}

	if !alt.Approved {
		if err := s.db.Model(alt).Update("approved", true).Error; err != nil {
			return nil, err
		}
		alt.Approved = true
	}
	return alt, nil
}

func (s *AlternativeService) find(id string) (*models.Alternative, error) {
	var alt models.Alternative
	if err := s.db.First(&alt, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("alternative %s: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return &alt, nil
}
