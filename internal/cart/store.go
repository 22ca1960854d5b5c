package cart

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/Ahmedmamdouh007/lala-store/internal/api"
	"github.com/Ahmedmamdouh007/lala-store/internal/domain"
	"github.com/Ahmedmamdouh007/lala-store/internal/notify"
)

// Backend is the slice of the API client the store needs.
type Backend interface {
	CartItems(ctx context.Context, userID int64) ([]domain.CartLineItem, error)
	AddToCart(ctx context.Context, req api.AddToCartRequest) error
	RemoveFromCart(ctx context.Context, cartItemID int64) error
	UpdateCartItem(ctx context.Context, req api.UpdateCartItemRequest) error
}

// Store owns the session's cart line items and shipping selections. Every
// mutation round-trips through the backend and ends with a full reload, so
// the local list never diverges from the server's authoritative view.
// Construct one per session and pass it by reference; consumers never reach
// for an ambient instance.
type Store struct {
	api    Backend
	notes  *notify.Notifier
	log    *zap.Logger
	userID int64

	mu       sync.Mutex
	items    []domain.CartLineItem
	shipping domain.ShippingInfo
	busy     bool
	subs     []func()
}

func NewStore(backend Backend, notes *notify.Notifier, log *zap.Logger, userID int64) *Store {
	return &Store{
		api:    backend,
		notes:  notes,
		log:    log,
		userID: userID,
	}
}

// Load refreshes the local list from the server. A failed load is a soft
// refresh: the previous list stays and no user-facing error is raised.
func (s *Store) Load(ctx context.Context) {
	items, err := s.api.CartItems(ctx, s.userID)
	if err != nil {
		s.log.Warn("cart load failed, keeping previous items", zap.Error(err))
		return
	}

	s.mu.Lock()
	s.items = items
	subs := s.snapshotSubs()
	s.mu.Unlock()

	for _, fn := range subs {
		fn()
	}
}

// AddItem posts a new line item, then reloads. The outcome is the boolean;
// failures surface through the notifier, never as an error to the caller.
func (s *Store) AddItem(ctx context.Context, productID int64, quantity int, size string) bool {
	if quantity < 1 {
		quantity = 1
	}
	return s.mutate(ctx, "Added to cart", "Could not add to cart.", func(ctx context.Context) error {
		return s.api.AddToCart(ctx, api.AddToCartRequest{
			UserID:    s.userID,
			ProductID: productID,
			Quantity:  quantity,
			Size:      size,
		})
	})
}

func (s *Store) RemoveItem(ctx context.Context, cartItemID int64) bool {
	return s.mutate(ctx, "Removed from cart", "Could not remove item.", func(ctx context.Context) error {
		return s.api.RemoveFromCart(ctx, cartItemID)
	})
}

// UpdateQuantity sets a line item's quantity. Callers at the interaction
// boundary must redirect non-positive quantities to RemoveItem; see
// ChangeQuantity.
func (s *Store) UpdateQuantity(ctx context.Context, cartItemID int64, quantity int) bool {
	return s.mutate(ctx, "Cart updated", "Could not update cart.", func(ctx context.Context) error {
		return s.api.UpdateCartItem(ctx, api.UpdateCartItemRequest{
			CartItemID: cartItemID,
			Quantity:   quantity,
		})
	})
}

// ChangeQuantity is the interaction-boundary guard: a change to zero or
// below removes the item instead of storing a non-positive quantity.
func (s *Store) ChangeQuantity(ctx context.Context, cartItemID int64, quantity int) bool {
	if quantity <= 0 {
		return s.RemoveItem(ctx, cartItemID)
	}
	return s.UpdateQuantity(ctx, cartItemID, quantity)
}

// mutate runs one remote mutation under the in-flight guard. A second
// mutation while one is running is rejected, not queued, mirroring the
// disabled controls in the storefront.
func (s *Store) mutate(ctx context.Context, successMsg, failMsg string, op func(context.Context) error) bool {
	s.mu.Lock()
	if s.busy {
		s.mu.Unlock()
		s.notes.Error("Another cart update is in progress.")
		return false
	}
	s.busy = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.busy = false
		s.mu.Unlock()
	}()

	if err := op(ctx); err != nil {
		s.log.Warn("cart mutation failed", zap.Error(err))
		s.notes.Error(api.UserMessage(err, failMsg))
		return false
	}

	s.Load(ctx)
	s.notes.Success(successMsg)
	return true
}

// Items returns a copy; the store keeps ownership of the backing list.
func (s *Store) Items() []domain.CartLineItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.CartLineItem, len(s.items))
	copy(out, s.items)
	return out
}

// Total is Σ(price × quantity), recomputed on every call. Missing fields
// from partial server payloads default to price 0 and quantity 1.
func (s *Store) Total() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := decimal.Zero
	for _, item := range s.items {
		qty := item.Quantity
		if qty == 0 {
			qty = 1
		}
		total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(qty))))
	}
	return total
}

// ItemCount is Σ(quantity) with the same defensive defaulting as Total.
func (s *Store) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, item := range s.items {
		qty := item.Quantity
		if qty == 0 {
			qty = 1
		}
		count += qty
	}
	return count
}

func (s *Store) IsEmpty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items) == 0
}

func (s *Store) UserID() int64 { return s.userID }

func (s *Store) Shipping() domain.ShippingInfo {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.shipping
}

func (s *Store) SetShipping(info domain.ShippingInfo) {
	s.mu.Lock()
	s.shipping = info
	subs := s.snapshotSubs()
	s.mu.Unlock()

	for _, fn := range subs {
		fn()
	}
}

// Subscribe registers a change callback fired after every applied reload or
// shipping update. Callbacks run on the mutating goroutine.
func (s *Store) Subscribe(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}

func (s *Store) snapshotSubs() []func() {
	subs := make([]func(), len(s.subs))
	copy(subs, s.subs)
	return subs
}
