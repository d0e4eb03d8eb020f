package services

import (
	"errors"
	"fmt"

	"freeworldfirst/internal/models"

	"gorm.io/gorm"
)

// VoteService maintains the invariant that an alternative's stored
// score equals upvote rows minus downvote rows. The score is always
// rederived by counting, never incremented, so concurrent voters on
// the same entry converge on the correct value once the last recount
// lands.
type VoteService struct {
	db *gorm.DB
}

func NewVoteService(gdb *gorm.DB) *VoteService {
	return &VoteService{db: gdb}
}

// Apply toggles a user's vote on an alternative:
//   - no existing vote: a new row of the given type is inserted
//   - existing vote of the same type: the row is deleted (retraction)
//   - existing vote of the other type: the row switches type in place
//
// The recount afterwards makes repeating the same request a net no-op
// on the second call.
func (s *VoteService) Apply(alternativeID, userID, voteType string) (*models.Alternative, error) {
	if voteType != models.VoteUp && voteType != models.VoteDown {
		return nil, fmt.Errorf("%q: %w", voteType, ErrInvalidVote)
	}

	var alt models.Alternative
	if err := s.db.First(&alt, "id = ?", alternativeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("alternative %s: %w", alternativeID, ErrNotFound)
		}
		return nil, err
	}

	var existing models.Vote
	err := s.db.Where("user_id = ? AND alternative_id = ?", userID, alternativeID).
		First(&existing).Error
	switch {
	case err == nil && existing.Type == voteType:
		if err := s.db.Delete(&existing).Error; err != nil {
			return nil, err
		}
	case err == nil:
		if err := s.db.Model(&existing).Update("type", voteType).Error; err != nil {
			return nil, err
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		vote := models.Vote{
			UserID:        userID,
			AlternativeID: alternativeID,
			Type:          voteType,
		}
		if err := s.db.Create(&vote).Error; err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	score, err := s.recount(alternativeID)
	if err != nil {
		return nil, err
	}
	if err := s.db.Model(&alt).Update("upvotes", score).Error; err != nil {
		return nil, err
	}

	alt.Upvotes = score
	return &alt, nil
}

// recount derives the net score from the vote rows themselves.
func (s *VoteService) recount(alternativeID string) (int, error) {
	var upvotes, downvotes int64
	err := s.db.Model(&models.Vote{}).
		Where("alternative_id = ? AND type = ?", alternativeID, models.VoteUp).
		Count(&upvotes).Error
	if err != nil {
		return 0, err
	}
	err = s.db.Model(&models.Vote{}).
		Where("alternative_id = ? AND type = ?", alternativeID, models.VoteDown).
		Count(&downvotes).Error
	if err != nil {
		return 0, err
	}
	return int(upvotes - downvotes), nil
}
