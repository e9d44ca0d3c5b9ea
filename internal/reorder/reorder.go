// Package reorder computes the minimal update sets that move one item within
// or between ordered collections while preserving the density invariant:
// order values of a list are always exactly {0, 1, ..., n-1}.
package reorder

import (
	"errors"
	"fmt"
)

// ErrItemNotFound indicates the moved id is absent from the input list. This
// is a data-integrity error: the caller must abort the move, not guess.
var ErrItemNotFound = errors.New("item not found")

// Item is the ordered-list view of a record: its id and current position.
type Item struct {
	ID    string
	Order int
}

// Patch assigns a new order to one item. A move produces patches only for
// items whose position actually changed.
type Patch struct {
	ID    string `json:"id"`
	Order int    `json:"order"`
}

// WithinList moves the item with the given id from position from to position
// to and returns the patch set restoring a dense ordering. Items outside the
// [min(from,to), max(from,to)] range are unaffected and omitted. A same-
// position move returns an empty patch set.
//
// The input must be sorted by Order ascending with dense zero-based values.
func WithinList(items []Item, id string, from, to int) ([]Patch, error) {
	n := len(items)
	if from < 0 || from >= n || to < 0 || to >= n {
		return nil, fmt.Errorf("reorder: position out of range (from=%d to=%d len=%d)", from, to, n)
	}

	var moved *Item
	for i := range items {
		if items[i].ID == id {
			moved = &items[i]
			break
		}
	}
	if moved == nil {
		return nil, fmt.Errorf("reorder %q: %w", id, ErrItemNotFound)
	}
	if moved.Order != from {
		return nil, fmt.Errorf("reorder %q: order %d does not match from position %d", id, moved.Order, from)
	}
	if from == to {
		return nil, nil
	}

	// Arithmetic shift: the moved item lands on to; everything strictly
	// between shifts one slot toward the vacated position.
	patches := make([]Patch, 0, abs(to-from)+1)
	for _, it := range items {
		switch {
		case it.ID == id:
			patches = append(patches, Patch{ID: it.ID, Order: to})
		case from < to && it.Order > from && it.Order <= to:
			patches = append(patches, Patch{ID: it.ID, Order: it.Order - 1})
		case from > to && it.Order >= to && it.Order < from:
			patches = append(patches, Patch{ID: it.ID, Order: it.Order + 1})
		}
	}

	return patches, nil
}

// Reindex returns the patches that compact a list back to dense zero-based
// order values, e.g. after a deletion left a gap. The input must be sorted by
// Order ascending; items already at their positional index are omitted.
func Reindex(items []Item) []Patch {
	var patches []Patch
	for i, it := range items {
		if it.Order != i {
			patches = append(patches, Patch{ID: it.ID, Order: i})
		}
	}
	return patches
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
