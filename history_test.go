package pixfill

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHistory_UndoOrder(t *testing.T) {
	assert := assert.New(t)
	h := NewHistory(0)
	assert.Equal(DefaultUndoLimit, h.Limit())

	_, err := h.Undo()
	assert.ErrorIs(err, ErrNothingToUndo)

	for i := 0; i < 6; i++ {
		b := NewBuffer(1, 1)
		b.Set(image.Pt(0, 0), NewColor(uint8(i), 0, 0, 255))
		h.Push(b)
	}
	assert.Equal(DefaultUndoLimit, h.Len())

	// The two oldest snapshots were dropped.
	for i := 5; i >= 2; i-- {
		b, err := h.Undo()
		assert.NoError(err)
		assert.Equal(NewColor(uint8(i), 0, 0, 255), b.Get(image.Pt(0, 0)))
	}
	_, err = h.Undo()
	assert.ErrorIs(err, ErrNothingToUndo)
	assert.Equal(0, h.Len())
}

func TestHistory_CustomLimit(t *testing.T) {
	h := NewHistory(1)
	first, second := NewBuffer(1, 1), NewBuffer(2, 2)
	h.Push(first)
	h.Push(second)

	b, err := h.Undo()
	assert.NoError(t, err)
	assert.Same(t, second, b)
	assert.Equal(t, 0, h.Len())
}
