package cart

import (
	"time"

	"github.com/shopspring/decimal"
)

// DisplayRef identifies the single live message representing a user's
// cart or prompt. It is bookkeeping only; the underlying message is
// owned by the platform.
type DisplayRef struct {
	ChannelID string
	MessageID string
}

// IsZero reports whether the reference points at nothing.
func (r DisplayRef) IsZero() bool {
	return r.ChannelID == "" && r.MessageID == ""
}

// LineItem is one catalog item plus chosen quantity within a cart.
// UnitPrice is copied at add time; later catalog changes do not touch
// open carts.
type LineItem struct {
	Name      string
	UnitPrice decimal.Decimal
	Quantity  int
}

// Total returns the line total (unit price × quantity).
func (l LineItem) Total() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// cart is the store-internal mutable record. Lines keep insertion
// order so the display lists items in the order they were added.
type cart struct {
	userID    string
	lines     []LineItem
	display   DisplayRef
	updatedAt time.Time
}

func (c *cart) lineIndex(name string) int {
	for i := range c.lines {
		if c.lines[i].Name == name {
			return i
		}
	}
	return -1
}

// Snapshot is an immutable copy of a cart handed to callers outside
// the store's lock.
type Snapshot struct {
	UserID    string
	Lines     []LineItem
	Total     decimal.Decimal
	Display   DisplayRef
	UpdatedAt time.Time
}

// IsEmpty reports whether the snapshot has no lines.
func (s Snapshot) IsEmpty() bool {
	return len(s.Lines) == 0
}
