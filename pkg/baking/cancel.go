package baking

import "sync/atomic"

// Cancel is a cooperative cancellation flag. Bakes check it before each
// face, so a face that has started always finishes.
type Cancel struct {
	canceled atomic.Bool
}

// NewCancel returns a flag that is not set
func NewCancel() *Cancel {
	return &Cancel{}
}

// Cancel sets the flag
func (c *Cancel) Cancel() {
	c.canceled.Store(true)
}

// IsCanceled reports whether Cancel was called. A nil flag is never set.
func (c *Cancel) IsCanceled() bool {
	return c != nil && c.canceled.Load()
}
