package reorder

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talentflow/talentflow/internal/models"
)

func list(ids ...string) []Item {
	items := make([]Item, len(ids))
	for i, id := range ids {
		items[i] = Item{ID: id, Order: i}
	}
	return items
}

// apply returns the list after patching, re-sorted by order.
func apply(items []Item, patches []Patch) []Item {
	out := make([]Item, len(items))
	copy(out, items)
	for _, p := range patches {
		for i := range out {
			if out[i].ID == p.ID {
				out[i].Order = p.Order
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out
}

func TestWithinListMoveToFront(t *testing.T) {
	items := list("A", "B", "C")

	patches, err := WithinList(items, "C", 2, 0)
	require.NoError(t, err)
	assert.Equal(t, []Patch{{ID: "A", Order: 1}, {ID: "B", Order: 2}, {ID: "C", Order: 0}}, patches)
}

func TestWithinListMoveDown(t *testing.T) {
	items := list("A", "B", "C", "D")

	patches, err := WithinList(items, "A", 0, 2)
	require.NoError(t, err)
	// D is outside the affected range and must be omitted.
	assert.Equal(t, []Patch{{ID: "A", Order: 2}, {ID: "B", Order: 0}, {ID: "C", Order: 1}}, patches)
}

func TestWithinListNoOp(t *testing.T) {
	items := list("A", "B", "C")

	for k := range items {
		patches, err := WithinList(items, items[k].ID, k, k)
		require.NoError(t, err)
		assert.Empty(t, patches)
	}
}

func TestWithinListUnknownID(t *testing.T) {
	_, err := WithinList(list("A", "B"), "Z", 0, 1)
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestWithinListOutOfRange(t *testing.T) {
	items := list("A", "B")

	_, err := WithinList(items, "A", 0, 2)
	assert.Error(t, err)

	_, err = WithinList(items, "A", -1, 1)
	assert.Error(t, err)
}

func TestWithinListStaleFromPosition(t *testing.T) {
	_, err := WithinList(list("A", "B", "C"), "C", 1, 0)
	assert.Error(t, err)
}

func TestWithinListDensityInvariant(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for _, n := range []int{1, 2, 5, 12} {
		ids := make([]string, n)
		for i := range ids {
			ids[i] = string(rune('a' + i))
		}
		items := list(ids...)

		for i := 0; i < 50; i++ {
			from := rng.Intn(n)
			to := rng.Intn(n)
			patches, err := WithinList(items, items[from].ID, from, to)
			require.NoError(t, err)
			items = apply(items, patches)

			for i, it := range items {
				assert.Equal(t, i, it.Order, "n=%d: order values must stay dense", n)
			}
		}
	}
}

func TestWithinListRoundTrip(t *testing.T) {
	orig := list("A", "B", "C", "D", "E")

	patches, err := WithinList(orig, "B", 1, 4)
	require.NoError(t, err)
	moved := apply(orig, patches)

	patches, err = WithinList(moved, "B", 4, 1)
	require.NoError(t, err)
	back := apply(moved, patches)

	assert.Equal(t, orig, back)
}

func TestReindexAfterDelete(t *testing.T) {
	// B deleted from a 4-item list: a gap at order 1.
	items := []Item{{ID: "A", Order: 0}, {ID: "C", Order: 2}, {ID: "D", Order: 3}}

	patches := Reindex(items)
	assert.Equal(t, []Patch{{ID: "C", Order: 1}, {ID: "D", Order: 2}}, patches)

	assert.Empty(t, Reindex(apply(items, patches)))
}

func TestBetweenBuckets(t *testing.T) {
	c := &models.Candidate{ID: "candidate-1", Stage: models.StageApplied}

	move, err := BetweenBuckets(c, models.StageApplied, models.StageTech, "HR Team")
	require.NoError(t, err)
	require.NotNil(t, move)

	assert.Equal(t, "candidate-1", move.CandidateID)
	assert.Equal(t, models.StageTech, move.NewStage)
	assert.Equal(t, models.EventStageChange, move.Event.Type)
	assert.Equal(t, models.StageApplied, move.Event.FromStage)
	assert.Equal(t, models.StageTech, move.Event.ToStage)
	assert.Equal(t, "HR Team", move.Event.CreatedBy)
	assert.NotEmpty(t, move.Event.ID)
}

func TestBetweenBucketsSameStageNoOp(t *testing.T) {
	c := &models.Candidate{ID: "candidate-1", Stage: models.StageScreen}

	move, err := BetweenBuckets(c, models.StageScreen, models.StageScreen, "HR Team")
	require.NoError(t, err)
	assert.Nil(t, move, "same-stage move must not produce an update or event")
}

func TestBetweenBucketsInvalidStage(t *testing.T) {
	c := &models.Candidate{ID: "candidate-1", Stage: models.StageApplied}

	_, err := BetweenBuckets(c, models.StageApplied, models.Stage("limbo"), "HR Team")
	assert.Error(t, err)

	_, err = BetweenBuckets(nil, models.StageApplied, models.StageTech, "HR Team")
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestSnapshotRestore(t *testing.T) {
	items := list("A", "B", "C")
	snap := Capture(items)

	patches, err := WithinList(items, "A", 0, 2)
	require.NoError(t, err)
	moved := apply(items, patches)

	restored := apply(moved, snap.Patches())
	assert.Equal(t, items, restored)
}
