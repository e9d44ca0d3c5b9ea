package reorder

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/talentflow/talentflow/internal/models"
)

// StageMove is the computed result of moving a candidate between pipeline
// buckets: the stage update plus the timeline event recording it.
type StageMove struct {
	CandidateID string
	NewStage    models.Stage
	Event       models.TimelineEvent
}

// BetweenBuckets computes the update for moving a candidate from one stage
// bucket to another. Candidates carry no intra-bucket order, so a move is a
// stage field update plus one stage_change event. A same-stage move returns
// (nil, nil): no update and no spurious timeline entry, regardless of which
// wire path triggered it.
func BetweenBuckets(c *models.Candidate, from, to models.Stage, actor string) (*StageMove, error) {
	if c == nil {
		return nil, fmt.Errorf("move: %w", ErrItemNotFound)
	}
	if !from.Valid() || !to.Valid() {
		return nil, fmt.Errorf("move %q: invalid stage transition %q -> %q", c.ID, from, to)
	}
	if from == to {
		return nil, nil
	}

	return &StageMove{
		CandidateID: c.ID,
		NewStage:    to,
		Event: models.TimelineEvent{
			ID:          uuid.NewString(),
			CandidateID: c.ID,
			Type:        models.EventStageChange,
			FromStage:   from,
			ToStage:     to,
			CreatedAt:   time.Now().UTC().UnixMilli(),
			CreatedBy:   actor,
		},
	}, nil
}
