package cart

import (
	"sync"

	"katalog/internal/models"
)

// Command is the closed set of cart mutations. Every mutation goes through
// Store.Dispatch; no other code touches the line items directly.
type Command interface {
	isCommand()
}

// AddItem appends a new line item, or merges quantities when a line item for
// the same product already exists (the stored price snapshot is kept).
type AddItem struct {
	ProductID string
	Name      string
	Price     float64
	Quantity  int
}

// UpdateQuantity sets the quantity on the matching line item. A quantity
// below 1 removes the line item instead, so the store can never hold a
// zero or negative quantity regardless of caller discipline.
type UpdateQuantity struct {
	ProductID string
	Quantity  int
}

// RemoveItem deletes the matching line item. Removing an absent product is a
// no-op.
type RemoveItem struct {
	ProductID string
}

// ClearCart resets the cart to an empty sequence.
type ClearCart struct{}

func (AddItem) isCommand()        {}
func (UpdateQuantity) isCommand() {}
func (RemoveItem) isCommand()     {}
func (ClearCart) isCommand()      {}

// Store holds the session cart: an ordered list of line items, at most one
// per product ID, insertion order preserved. All commands are total; none
// can fail.
type Store struct {
	mu    sync.RWMutex
	items []models.CartItem
}

// NewStore creates an empty cart store.
func NewStore() *Store {
	return &Store{}
}

// Dispatch applies a command and returns a snapshot of the resulting items.
func (s *Store) Dispatch(cmd Command) []models.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch c := cmd.(type) {
	case AddItem:
		s.addItem(c)
	case UpdateQuantity:
		s.updateQuantity(c)
	case RemoveItem:
		s.removeItem(c.ProductID)
	case ClearCart:
		s.items = nil
	}

	return s.snapshot()
}

func (s *Store) addItem(c AddItem) {
	for i := range s.items {
		if s.items[i].ProductID == c.ProductID {
			s.items[i].Quantity += c.Quantity
			return
		}
	}
	s.items = append(s.items, models.CartItem{
		ProductID: c.ProductID,
		Name:      c.Name,
		Price:     c.Price,
		Quantity:  c.Quantity,
	})
}

func (s *Store) updateQuantity(c UpdateQuantity) {
	if c.Quantity < 1 {
		s.removeItem(c.ProductID)
		return
	}
	for i := range s.items {
		if s.items[i].ProductID == c.ProductID {
			s.items[i].Quantity = c.Quantity
			return
		}
	}
}

func (s *Store) removeItem(productID string) {
	for i := range s.items {
		if s.items[i].ProductID == productID {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return
		}
	}
}

// Items returns a copy of the current line items in insertion order.
func (s *Store) Items() []models.CartItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot()
}

// Total recomputes the cart total from the line items. It is derived on
// demand and never stored, so it cannot drift from the items.
func (s *Store) Total() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var total float64
	for _, item := range s.items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}

// snapshot copies the items. Callers must hold s.mu.
func (s *Store) snapshot() []models.CartItem {
	out := make([]models.CartItem, len(s.items))
	copy(out, s.items)
	return out
}
