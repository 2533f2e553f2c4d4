package pixfill

import "errors"

// DefaultUndoLimit is the number of snapshots kept by the paint history.
const DefaultUndoLimit = 4

// ErrNothingToUndo is returned when the history holds no snapshot.
var ErrNothingToUndo = errors.New("no undo's available")

// History is a bounded stack of canvas snapshots. When the stack is full
// the oldest snapshot is dropped to make room for the new one.
type History struct {
	limit     int
	snapshots []*Buffer
}

// NewHistory returns a history keeping at most limit snapshots.
// A non-positive limit selects DefaultUndoLimit.
func NewHistory(limit int) *History {
	if limit <= 0 {
		limit = DefaultUndoLimit
	}
	return &History{limit: limit}
}

// Push stores a snapshot.
func (h *History) Push(b *Buffer) {
	if len(h.snapshots) == h.limit {
		h.snapshots[0] = nil
		h.snapshots = h.snapshots[1:]
	}
	h.snapshots = append(h.snapshots, b)
}

// Undo removes and returns the most recent snapshot.
func (h *History) Undo() (*Buffer, error) {
	n := len(h.snapshots)
	if n == 0 {
		return nil, ErrNothingToUndo
	}
	b := h.snapshots[n-1]
	h.snapshots[n-1] = nil
	h.snapshots = h.snapshots[:n-1]
	return b, nil
}

// Len returns the number of stored snapshots.
func (h *History) Len() int {
	return len(h.snapshots)
}

// Limit returns the maximum number of stored snapshots.
func (h *History) Limit() int {
	return h.limit
}
