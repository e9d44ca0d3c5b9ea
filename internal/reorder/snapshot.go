package reorder

// Snapshot captures the order of every item in a list before an optimistic
// move so a rejected persistence call can restore the pre-move state.
type Snapshot map[string]int

// Capture records the current order of every item.
func Capture(items []Item) Snapshot {
	s := make(Snapshot, len(items))
	for _, it := range items {
		s[it.ID] = it.Order
	}
	return s
}

// Patches returns the updates that restore the captured ordering.
func (s Snapshot) Patches() []Patch {
	patches := make([]Patch, 0, len(s))
	for id, order := range s {
		patches = append(patches, Patch{ID: id, Order: order})
	}
	return patches
}
