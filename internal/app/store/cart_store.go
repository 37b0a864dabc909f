package store

import (
	"sync"

	"github.com/hjyoon/storefront-backend/internal/app/model"
	"github.com/hjyoon/storefront-backend/pkg/logger"
)

// Observer receives a cart snapshot after every mutation of that session's
// cart. Observers run synchronously in the mutating call, in subscription
// order, after the store lock is released.
type Observer func(sessionID string, cart model.Cart)

// CartStore is the single source of truth for session carts. All mutations
// are serialized behind one mutex so each mutation reads the latest prior
// state: one state transition per logical update, never a stale snapshot.
type CartStore struct {
	mu    sync.Mutex
	carts map[string][]model.CartItem

	obsMu     sync.RWMutex
	observers []Observer
}

// NewCartStore creates an empty cart store.
func NewCartStore() *CartStore {
	return &CartStore{
		carts: make(map[string][]model.CartItem),
	}
}

// Subscribe registers an observer for all cart mutations.
func (s *CartStore) Subscribe(obs Observer) {
	s.obsMu.Lock()
	s.observers = append(s.observers, obs)
	s.obsMu.Unlock()
}

// Add appends a new item with the given quantity, or increments the existing
// item's quantity when the product is already in the cart. Insertion order is
// preserved; quantity updates never re-sort. A quantity below 1 counts as 1.
func (s *CartStore) Add(sessionID string, product model.Product, quantity int) model.Cart {
	if quantity < 1 {
		quantity = 1
	}

	s.mu.Lock()
	items := s.carts[sessionID]
	found := false
	for i := range items {
		if items[i].ProductID == product.ID {
			items[i].Quantity += quantity
			found = true
			break
		}
	}
	if !found {
		items = append(items, model.NewCartItem(product, quantity))
	}
	s.carts[sessionID] = items
	cart := s.snapshotLocked(sessionID)
	s.mu.Unlock()

	logger.Debug("Cart item added", map[string]interface{}{
		"session_id": sessionID,
		"product_id": product.ID,
		"quantity":   quantity,
	})
	s.notify(sessionID, cart)
	return cart
}

// Remove deletes the item with the given product id. Removing an absent item
// is a no-op, not an error.
func (s *CartStore) Remove(sessionID string, productID int) model.Cart {
	s.mu.Lock()
	items := s.carts[sessionID]
	for i := range items {
		if items[i].ProductID == productID {
			s.carts[sessionID] = append(items[:i], items[i+1:]...)
			break
		}
	}
	cart := s.snapshotLocked(sessionID)
	s.mu.Unlock()

	s.notify(sessionID, cart)
	return cart
}

// UpdateQuantity sets the quantity of the matching item. The store enforces
// the quantity floor: a value below 1 removes the item instead of retaining
// it at zero. Unknown product ids are a no-op.
func (s *CartStore) UpdateQuantity(sessionID string, productID, quantity int) model.Cart {
	s.mu.Lock()
	items := s.carts[sessionID]
	for i := range items {
		if items[i].ProductID != productID {
			continue
		}
		if quantity < 1 {
			s.carts[sessionID] = append(items[:i], items[i+1:]...)
		} else {
			items[i].Quantity = quantity
		}
		break
	}
	cart := s.snapshotLocked(sessionID)
	s.mu.Unlock()

	s.notify(sessionID, cart)
	return cart
}

// Clear replaces the session's items with an empty sequence.
func (s *CartStore) Clear(sessionID string) model.Cart {
	s.mu.Lock()
	delete(s.carts, sessionID)
	cart := s.snapshotLocked(sessionID)
	s.mu.Unlock()

	logger.Debug("Cart cleared", map[string]interface{}{
		"session_id": sessionID,
	})
	s.notify(sessionID, cart)
	return cart
}

// Get returns an ordered snapshot of the session's cart.
func (s *CartStore) Get(sessionID string) model.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked(sessionID)
}

// Count returns the sum of quantities across the session's items.
func (s *CartStore) Count(sessionID string) int {
	return s.Get(sessionID).Count()
}

// Total returns the sum of price * quantity across the session's items,
// recomputed fresh on every call.
func (s *CartStore) Total(sessionID string) float64 {
	return s.Get(sessionID).Total()
}

func (s *CartStore) snapshotLocked(sessionID string) model.Cart {
	items := s.carts[sessionID]
	snapshot := make([]model.CartItem, len(items))
	copy(snapshot, items)
	return model.Cart{SessionID: sessionID, Items: snapshot}
}

func (s *CartStore) notify(sessionID string, cart model.Cart) {
	s.obsMu.RLock()
	observers := s.observers
	s.obsMu.RUnlock()
	for _, obs := range observers {
		obs(sessionID, cart)
	}
}
