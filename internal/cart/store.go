package cart

import (
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// Store owns every open cart, keyed by user ID. All mutation happens
// under the store's lock so a burst of button presses for the same
// user cannot interleave a read-modify-write.
type Store struct {
	mu          sync.Mutex
	carts       map[string]*cart
	maxQuantity int
	now         func() time.Time
}

// NewStore builds an empty cart store. maxQuantity caps SetQuantity
// and increments; values below 1 fall back to 99.
func NewStore(maxQuantity int) *Store {
	if maxQuantity < 1 {
		maxQuantity = 99
	}
	return &Store{
		carts:       make(map[string]*cart),
		maxQuantity: maxQuantity,
		now:         time.Now,
	}
}

func (s *Store) getOrCreate(userID string) *cart {
	if existing, ok := s.carts[userID]; ok {
		return existing
	}
	created := &cart{userID: userID, updatedAt: s.now()}
	s.carts[userID] = created
	return created
}

func (s *Store) touch(c *cart) {
	c.updatedAt = s.now()
}

// AddItem adds one unit of the named item, creating the cart and the
// line as needed. The unit price is captured on first add.
func (s *Store) AddItem(userID, name string, unitPrice decimal.Decimal) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.getOrCreate(userID)
	if i := c.lineIndex(name); i >= 0 {
		if c.lines[i].Quantity < s.maxQuantity {
			c.lines[i].Quantity++
		}
	} else {
		c.lines = append(c.lines, LineItem{Name: name, UnitPrice: unitPrice, Quantity: 1})
	}
	s.touch(c)
}

// IncrementItem bumps an existing line by one. Missing carts or lines
// are a no-op; stale controls must never error.
func (s *Store) IncrementItem(userID, name string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.carts[userID]
	if !ok {
		return
	}
	if i := c.lineIndex(name); i >= 0 {
		if c.lines[i].Quantity < s.maxQuantity {
			c.lines[i].Quantity++
		}
		s.touch(c)
	}
}

// DecrementItem lowers a line by one and removes it when the quantity
// reaches zero. Missing carts or lines are a no-op.
func (s *Store) DecrementItem(userID, name string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.carts[userID]
	if !ok {
		return
	}
	i := c.lineIndex(name)
	if i < 0 {
		return
	}
	c.lines[i].Quantity--
	if c.lines[i].Quantity < 1 {
		c.lines = append(c.lines[:i], c.lines[i+1:]...)
	}
	s.touch(c)
}

// RemoveItem drops a line unconditionally. Idempotent.
func (s *Store) RemoveItem(userID, name string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.carts[userID]
	if !ok {
		return
	}
	if i := c.lineIndex(name); i >= 0 {
		c.lines = append(c.lines[:i], c.lines[i+1:]...)
		s.touch(c)
	}
}

// SetQuantity sets a line's quantity, silently clamping into
// [1, maxQuantity]. Missing carts or lines are a no-op.
func (s *Store) SetQuantity(userID, name string, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.carts[userID]
	if !ok {
		return
	}
	i := c.lineIndex(name)
	if i < 0 {
		return
	}
	if quantity < 1 {
		quantity = 1
	}
	if quantity > s.maxQuantity {
		quantity = s.maxQuantity
	}
	c.lines[i].Quantity = quantity
	s.touch(c)
}

// Total sums unit price × quantity across the cart. Absent or empty
// carts total zero.
func (s *Store) Total(userID string) decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.carts[userID]
	if !ok {
		return decimal.Zero
	}
	return cartTotal(c)
}

// IsEmpty reports whether the user has no lines in their cart.
func (s *Store) IsEmpty(userID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.carts[userID]
	return !ok || len(c.lines) == 0
}

// Delete removes the user's cart entirely. Idempotent.
func (s *Store) Delete(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, userID)
}

// Snapshot returns a copy of the user's cart, or ok=false if absent.
func (s *Store) Snapshot(userID string) (Snapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.carts[userID]
	if !ok {
		return Snapshot{}, false
	}
	return snapshotOf(c), true
}

// SetDisplay records the live display message for the user's cart.
// No-op if the cart is gone (e.g. evicted while a send was in flight).
func (s *Store) SetDisplay(userID string, ref DisplayRef) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c, ok := s.carts[userID]; ok {
		c.display = ref
	}
}

// ClearDisplay forgets the live display without touching the lines.
func (s *Store) ClearDisplay(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c, ok := s.carts[userID]; ok {
		c.display = DisplayRef{}
	}
}

// Evict removes every cart idle since before the cutoff and returns
// snapshots so the caller can delete any live displays.
func (s *Store) Evict(cutoff time.Time) []Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	var evicted []Snapshot
	for userID, c := range s.carts {
		if c.updatedAt.Before(cutoff) {
			evicted = append(evicted, snapshotOf(c))
			delete(s.carts, userID)
		}
	}
	return evicted
}

func cartTotal(c *cart) decimal.Decimal {
	total := decimal.Zero
	for _, line := range c.lines {
		total = total.Add(line.Total())
	}
	return total
}

func snapshotOf(c *cart) Snapshot {
	lines := make([]LineItem, len(c.lines))
	copy(lines, c.lines)
	return Snapshot{
		UserID:    c.userID,
		Lines:     lines,
		Total:     cartTotal(c),
		Display:   c.display,
		UpdatedAt: c.updatedAt,
	}
}
