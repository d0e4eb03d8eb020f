package services

import (
	"errors"
	"testing"
	"time"

	"freeworldfirst/internal/models"

	"gorm.io/gorm"
)

// checkScoreInvariant verifies that the stored score equals the net
// count derived from the vote rows.
func checkScoreInvariant(t *testing.T, gdb *gorm.DB, alternativeID string) {
	t.Helper()

	var alt models.Alternative
	if err := gdb.First(&alt, "id = ?", alternativeID).Error; err != nil {
		t.Fatalf("Failed to reload alternative: %v", err)
	}

	var up, down int64
	gdb.Model(&models.Vote{}).Where("alternative_id = ? AND type = ?", alternativeID, models.VoteUp).Count(&up)
	gdb.Model(&models.Vote{}).Where("alternative_id = ? AND type = ?", alternativeID, models.VoteDown).Count(&down)

	if alt.Upvotes != int(up-down) {
		t.Errorf("Stored score %d does not match derived score %d", alt.Upvotes, up-down)
	}
}

func voteCount(t *testing.T, gdb *gorm.DB, userID, alternativeID string) int64 {
	t.Helper()
	var count int64
	gdb.Model(&models.Vote{}).
		Where("user_id = ? AND alternative_id = ?", userID, alternativeID).
		Count(&count)
	return count
}

func TestApplyVoteCreatesAndScores(t *testing.T) {
	gdb := newTestDB(t)
	svc := NewVoteService(gdb)

	submitter := createTestUser(t, gdb, "submitter", false)
	voter := createTestUser(t, gdb, "voter", false)
	alt := createTestAlternative(t, gdb, submitter.ID, time.Now())

	updated, err := svc.Apply(alt.ID, voter.ID, models.VoteUp)
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if updated.Upvotes != 1 {
		t.Errorf("Expected score 1, got %d", updated.Upvotes)
	}
	checkScoreInvariant(t, gdb, alt.ID)
}

func TestApplyVoteSameKindRetracts(t *testing.T) {
	gdb := newTestDB(t)
	svc := NewVoteService(gdb)

	submitter := createTestUser(t, gdb, "submitter", false)
	voter := createTestUser(t, gdb, "voter", false)
	alt := createTestAlternative(t, gdb, submitter.ID, time.Now())

	if _, err := svc.Apply(alt.ID, voter.ID, models.VoteUp); err != nil {
		t.Fatalf("First upvote failed: %v", err)
	}
	updated, err := svc.Apply(alt.ID, voter.ID, models.VoteUp)
	if err != nil {
		t.Fatalf("Second upvote failed: %v", err)
	}

	if updated.Upvotes != 0 {
		t.Errorf("Expected score 0 after retraction, got %d", updated.Upvotes)
	}
	if n := voteCount(t, gdb, voter.ID, alt.ID); n != 0 {
		t.Errorf("Expected no vote row after retraction, got %d", n)
	}
	checkScoreInvariant(t, gdb, alt.ID)
}

func TestApplyVoteOppositeKindSwitches(t *testing.T) {
	gdb := newTestDB(t)
	svc := NewVoteService(gdb)

	submitter := createTestUser(t, gdb, "submitter", false)
	voter := createTestUser(t, gdb, "voter", false)
	alt := createTestAlternative(t, gdb, submitter.ID, time.Now())

	if _, err := svc.Apply(alt.ID, voter.ID, models.VoteUp); err != nil {
		t.Fatalf("Upvote failed: %v", err)
	}
	updated, err := svc.Apply(alt.ID, voter.ID, models.VoteDown)
	if err != nil {
		t.Fatalf("Downvote failed: %v", err)
	}

	if updated.Upvotes != -1 {
		t.Errorf("Expected score -1 after switch, got %d", updated.Upvotes)
	}
	if n := voteCount(t, gdb, voter.ID, alt.ID); n != 1 {
		t.Errorf("Expected exactly one vote row after switch, got %d", n)
	}

	var vote models.Vote
	if err := gdb.Where("user_id = ? AND alternative_id = ?", voter.ID, alt.ID).First(&vote).Error; err != nil {
		t.Fatalf("Failed to load vote: %v", err)
	}
	if vote.Type != models.VoteDown {
		t.Errorf("Expected vote type %s, got %s", models.VoteDown, vote.Type)
	}
	checkScoreInvariant(t, gdb, alt.ID)
}

// TestVoteLifecycleScenario replays the full moderation + voting
// sequence: submit, approve, toggle votes by two users.
func TestVoteLifecycleScenario(t *testing.T) {
	gdb := newTestDB(t)
	votes := NewVoteService(gdb)
	alternatives := NewAlternativeService(gdb)

	submitter := createTestUser(t, gdb, "u", false)
	voterV := createTestUser(t, gdb, "v", false)
	voterW := createTestUser(t, gdb, "w", false)
	alt := createTestAlternative(t, gdb, submitter.ID, time.Now())

	if alt.Approved {
		t.Fatal("New alternative must start unapproved")
	}
	if alt.Upvotes != 0 {
		t.Fatalf("New alternative must start at score 0, got %d", alt.Upvotes)
	}

	approved, err := alternatives.Approve(alt.ID)
	if err != nil {
		t.Fatalf("Approve failed: %v", err)
	}
	if !approved.Approved {
		t.Fatal("Approve did not set the flag")
	}

	steps := []struct {
		user  string
		kind  string
		score int
	}{
		{voterV.ID, models.VoteUp, 1},    // V upvotes
		{voterV.ID, models.VoteUp, 0},    // V retracts
		{voterW.ID, models.VoteDown, -1}, // W downvotes
		{voterV.ID, models.VoteUp, 0},    // V upvotes again: -1 + 1
	}
	for i, step := range steps {
		updated, err := votes.Apply(alt.ID, step.user, step.kind)
		if err != nil {
			t.Fatalf("Step %d failed: %v", i, err)
		}
		if updated.Upvotes != step.score {
			t.Errorf("Step %d: expected score %d, got %d", i, step.score, updated.Upvotes)
		}
		checkScoreInvariant(t, gdb, alt.ID)
	}

	// Voting never touches the approval flag.
	var final models.Alternative
	gdb.First(&final, "id = ?", alt.ID)
	if !final.Approved {
		t.Error("Approved flag must stay true across votes")
	}
}

func TestApplyVoteUnknownAlternative(t *testing.T) {
	gdb := newTestDB(t)
	svc := NewVoteService(gdb)
	voter := createTestUser(t, gdb, "voter", false)

	_, err := svc.Apply("does-not-exist", voter.ID, models.VoteUp)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestApplyVoteInvalidKind(t *testing.T) {
	gdb := newTestDB(t)
	svc := NewVoteService(gdb)

	submitter := createTestUser(t, gdb, "submitter", false)
	voter := createTestUser(t, gdb, "voter", false)
	alt := createTestAlternative(t, gdb, submitter.ID, time.Now())

	_, err := svc.Apply(alt.ID, voter.ID, "sideways")
	if !errors.Is(err, ErrInvalidVote) {
		t.Errorf("Expected ErrInvalidVote, got %v", err)
	}
	if n := voteCount(t, gdb, voter.ID, alt.ID); n != 0 {
		t.Errorf("Invalid vote must not create a row, got %d", n)
	}
}

func TestApplyVoteOnlyTouchesTargetEntry(t *testing.T) {
	gdb := newTestDB(t)
	svc := NewVoteService(gdb)

	submitter := createTestUser(t, gdb, "submitter", false)
	voter := createTestUser(t, gdb, "voter", false)
	altA := createTestAlternative(t, gdb, submitter.ID, time.Now())
	altB := createTestAlternative(t, gdb, submitter.ID, time.Now())

	if _, err := svc.Apply(altA.ID, voter.ID, models.VoteUp); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	var other models.Alternative
	gdb.First(&other, "id = ?", altB.ID)
	if other.Upvotes != 0 {
		t.Errorf("Vote on A changed score of B: %d", other.Upvotes)
	}
}
