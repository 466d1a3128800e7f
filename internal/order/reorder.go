package order

import "github.com/spolify/spolify/internal/models"

// ReorderState is the drag interaction state inside a reorder session.
type ReorderState int

const (
	Viewing  ReorderState = iota // songs shown in last-resolved order
	Dragging                     // one item grabbed, following the pointer
)

// Reorder is the explicit ordered list a reorder session edits. The visual
// list is a pure projection of Items; drag handlers mutate this list and the
// view re-renders from it, so order is never read back out of the display.
//
// The resolution the session opened with is kept as the rollback snapshot:
// Cancel restores it without re-fetching.
type Reorder struct {
	snapshot []models.SongWithAlbum
	current  []models.SongWithAlbum
	grabbed  int
}

// NewReorder starts a session over a resolved display order.
func NewReorder(resolved []models.SongWithAlbum) *Reorder {
	snapshot := make([]models.SongWithAlbum, len(resolved))
	copy(snapshot, resolved)
	current := make([]models.SongWithAlbum, len(resolved))
	copy(current, resolved)
	return &Reorder{snapshot: snapshot, current: current, grabbed: -1}
}

// State returns Viewing or Dragging.
func (r *Reorder) State() ReorderState {
	if r.grabbed >= 0 {
		return Dragging
	}
	return Viewing
}

// Items returns the current order for rendering.
func (r *Reorder) Items() []models.SongWithAlbum {
	items := make([]models.SongWithAlbum, len(r.current))
	copy(items, r.current)
	return items
}

// Grabbed returns the index of the grabbed item, or -1 when none is.
func (r *Reorder) Grabbed() int { return r.grabbed }

// Grab takes hold of the item at index, entering the Dragging state.
func (r *Reorder) Grab(index int) bool {
	if index < 0 || index >= len(r.current) {
		return false
	}
	r.grabbed = index
	return true
}

// MoveTo reinserts the grabbed item relative to the target index: before the
// target when the pointer sits above its midpoint, after it otherwise. The
// grabbed item stays grabbed at its new index.
func (r *Reorder) MoveTo(target int, aboveMidpoint bool) bool {
	if r.grabbed < 0 || target < 0 || target >= len(r.current) {
		return false
	}
	if target == r.grabbed {
		return true
	}

	item := r.current[r.grabbed]
	rest := append(r.current[:r.grabbed:r.grabbed], r.current[r.grabbed+1:]...)

	// Removing the grabbed item shifts targets after it one slot left.
	insert := target
	if r.grabbed < target {
		insert--
	}
	if !aboveMidpoint {
		insert++
	}
	if insert < 0 {
		insert = 0
	}
	if insert > len(rest) {
		insert = len(rest)
	}

	r.current = make([]models.SongWithAlbum, 0, len(rest)+1)
	r.current = append(r.current, rest[:insert]...)
	r.current = append(r.current, item)
	r.current = append(r.current, rest[insert:]...)
	r.grabbed = insert
	return true
}

// MoveUp swaps the grabbed item one slot toward the front.
func (r *Reorder) MoveUp() bool {
	if r.grabbed <= 0 {
		return false
	}
	return r.MoveTo(r.grabbed-1, true)
}

// MoveDown swaps the grabbed item one slot toward the back.
func (r *Reorder) MoveDown() bool {
	if r.grabbed < 0 || r.grabbed >= len(r.current)-1 {
		return false
	}
	return r.MoveTo(r.grabbed+1, false)
}

// Drop releases the grabbed item, returning to Viewing with the moves kept.
func (r *Reorder) Drop() {
	r.grabbed = -1
}

// Cancel discards all moves, restoring the order the session opened with.
func (r *Reorder) Cancel() {
	r.current = make([]models.SongWithAlbum, len(r.snapshot))
	copy(r.current, r.snapshot)
	r.grabbed = -1
}

// Payload returns the ID sequence to persist for the current order.
func (r *Reorder) Payload() []int64 {
	return SavePayload(r.current)
}

// Commit replaces the rollback snapshot with the current order, called after
// the backend confirms a save. On save failure the snapshot stays, the
// attempted order stays displayed, and the user can retry without redoing
// the drag.
func (r *Reorder) Commit() {
	r.snapshot = make([]models.SongWithAlbum, len(r.current))
	copy(r.snapshot, r.current)
}
