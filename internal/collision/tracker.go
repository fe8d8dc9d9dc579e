package collision

import (
	"github.com/arloliu/anvil/errs"
	"github.com/arloliu/anvil/internal/hash"
)

// Tracker remembers identifiers by their 64-bit hash and detects hash collisions.
//
// Lookups go through the hash first; the identifiers stored under a hash are compared
// only when the hash is already known, so two distinct ids that happen to share a hash
// are both tracked and the collision is recorded.
type Tracker struct {
	ids          map[uint64][]string // hash → ids seen with that hash
	order        []string            // ids in the order they were first tracked
	hasCollision bool
}

// NewTracker creates a new tracker.
func NewTracker() *Tracker {
	return &Tracker{
		ids:   make(map[uint64][]string),
		order: make([]string, 0),
	}
}

// Track records id and reports whether it was seen for the first time.
//
// Returns:
//   - bool: true if id is new
//   - error: errs.ErrEmptyID if id is empty
func (t *Tracker) Track(id string) (bool, error) {
	return t.TrackHash(id, hash.ID(id))
}

// TrackHash is Track with a precomputed hash.
func (t *Tracker) TrackHash(id string, h uint64) (bool, error) {
	if id == "" {
		return false, errs.ErrEmptyID
	}

	existing, known := t.ids[h]
	for _, e := range existing {
		if e == id {
			return false, nil
		}
	}
	if known {
		// different id, same hash
		t.hasCollision = true
	}

	t.ids[h] = append(existing, id)
	t.order = append(t.order, id)

	return true, nil
}

// HasCollision returns true if two different ids shared a hash.
func (t *Tracker) HasCollision() bool {
	return t.hasCollision
}

// IDs returns the tracked ids in first-seen order.
func (t *Tracker) IDs() []string {
	return t.order
}

// Count returns the number of distinct ids tracked.
func (t *Tracker) Count() int {
	return len(t.order)
}

// Reset clears all tracked ids and the collision state.
func (t *Tracker) Reset() {
	clear(t.ids)
	t.order = t.order[:0]
	t.hasCollision = false
}
