// Package checkout composes the cart store and the payment orchestrator
// into the end-to-end order flow: validate → (card: await confirmation) →
// submit → clear.
package checkout

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Ahmedmamdouh007/lala-store/internal/api"
	"github.com/Ahmedmamdouh007/lala-store/internal/cart"
	"github.com/Ahmedmamdouh007/lala-store/internal/domain"
	"github.com/Ahmedmamdouh007/lala-store/internal/notify"
	"github.com/Ahmedmamdouh007/lala-store/internal/payment"
)

// OrderCreator is the slice of the API client the sequencer needs.
type OrderCreator interface {
	CreateOrder(ctx context.Context, req api.CreateOrderRequest) error
}

// OrchestratorFactory builds a fresh payment orchestrator per attempt, so
// no payment state survives across checkouts.
type OrchestratorFactory func() *payment.Orchestrator

// Input is everything the user entered for one attempt. Card is the opaque
// provider handle from the capture widget; it is only relayed, never read.
type Input struct {
	ShippingAddress string
	CustomerName    string
	Phone           string
	Method          domain.PaymentMethod
	Card            payment.CardHandle
}

type Sequencer struct {
	cart            *cart.Store
	orders          OrderCreator
	newOrchestrator OrchestratorFactory
	notes           *notify.Notifier
	log             *zap.Logger
	currency        string
	navigate        func()
	navigateDelay   time.Duration

	mu    sync.Mutex
	state domain.CheckoutState
}

func NewSequencer(
	store *cart.Store,
	orders OrderCreator,
	factory OrchestratorFactory,
	notes *notify.Notifier,
	log *zap.Logger,
	currency string,
	navigate func(),
	navigateDelay time.Duration,
) *Sequencer {
	return &Sequencer{
		cart:            store,
		orders:          orders,
		newOrchestrator: factory,
		notes:           notes,
		log:             log,
		currency:        currency,
		navigate:        navigate,
		navigateDelay:   navigateDelay,
		state:           domain.CheckoutStateIdle,
	}
}

func (s *Sequencer) State() domain.CheckoutState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// CardAvailable reports whether the card path may be offered for this
// session. When the provider is unconfigured the storefront degrades to the
// non-card methods.
func (s *Sequencer) CardAvailable(ctx context.Context) bool {
	return s.newOrchestrator().Available(ctx)
}

// Checkout runs one attempt. Failures are reported through the notifier and
// return false with the cart and entered shipping data intact; only a
// submitted order returns true. A second call while one attempt is running
// is rejected.
func (s *Sequencer) Checkout(ctx context.Context, in Input) bool {
	s.mu.Lock()
	if s.state != domain.CheckoutStateIdle {
		s.mu.Unlock()
		s.notes.Error("Checkout is already in progress.")
		return false
	}
	s.state = domain.CheckoutStateValidating
	s.mu.Unlock()

	// Keep the entered data for the session, failure or not.
	s.cart.SetShipping(domain.ShippingInfo{
		CustomerName: in.CustomerName,
		Phone:        in.Phone,
		Method:       in.Method,
	})

	if msg := s.validate(in); msg != "" {
		s.notes.Error(msg)
		s.toIdle()
		return false
	}

	var intentID string
	if in.Method.RequiresCard() {
		s.setState(domain.CheckoutStateAwaitingPayment)

		id, ok := s.awaitPayment(ctx, in.Card)
		if !ok {
			s.toIdle()
			return false
		}
		intentID = id
	}

	return s.submit(ctx, in, intentID)
}

// validate checks the attempt before any network call is made.
func (s *Sequencer) validate(in Input) string {
	if strings.TrimSpace(in.ShippingAddress) == "" {
		return "Please enter a shipping address."
	}
	if s.cart.IsEmpty() {
		return "Your cart is empty."
	}
	if in.Method == domain.PaymentMethodUnset {
		return "Please select a payment method."
	}
	return ""
}

// awaitPayment drives a fresh orchestrator to a settled state and returns
// the intent id. Submission only ever proceeds from confirmed; declined and
// errored stop the attempt here.
func (s *Sequencer) awaitPayment(ctx context.Context, card payment.CardHandle) (string, bool) {
	orchestrator := s.newOrchestrator()

	if !orchestrator.Available(ctx) {
		s.notes.Error("Card payments are not available. Please choose another method.")
		return "", false
	}

	if err := orchestrator.CreateIntent(ctx, s.cart.Total(), s.currency); err != nil {
		s.log.Warn("payment intent creation failed", zap.Error(err))
		s.notes.Error(orchestrator.FailureMessage())
		return "", false
	}

	if err := orchestrator.ConfirmCard(ctx, card); err != nil {
		s.log.Warn("card confirmation failed",
			zap.String("state", orchestrator.State().String()),
			zap.Error(err))
		s.notes.Error(orchestrator.FailureMessage())
		return "", false
	}

	if orchestrator.State() != domain.PaymentStateConfirmed {
		s.notes.Error("Payment was not completed")
		return "", false
	}
	return orchestrator.IntentID(), true
}

// submit places exactly one order-creation call. On success the server has
// already cleared the cart; the reload picks that up, and navigation runs
// after a short delay so the success toast is seen.
func (s *Sequencer) submit(ctx context.Context, in Input, intentID string) bool {
	s.setState(domain.CheckoutStateSubmitting)

	err := s.orders.CreateOrder(ctx, api.CreateOrderRequest{
		UserID:          s.cart.UserID(),
		ShippingAddress: in.ShippingAddress,
		CustomerName:    in.CustomerName,
		Phone:           in.Phone,
		PaymentMethod:   in.Method.String(),
		PaymentIntentID: intentID,
	})
	if err != nil {
		s.log.Warn("order submission failed", zap.Error(err))
		s.notes.Error(api.UserMessage(err, "Failed to place order. Please try again."))
		s.toIdle()
		return false
	}

	s.notes.Success("Order placed successfully!")
	s.cart.Load(ctx)
	s.setState(domain.CheckoutStateSucceeded)

	if s.navigate != nil {
		time.AfterFunc(s.navigateDelay, s.navigate)
	}

	// Ready for the next session interaction.
	s.mu.Lock()
	s.state = domain.CheckoutStateIdle
	s.mu.Unlock()
	return true
}

func (s *Sequencer) setState(next domain.CheckoutState) {
	s.mu.Lock()
	if !s.state.CanTransitionTo(next) {
		s.log.Error("illegal checkout transition",
			zap.String("from", s.state.String()),
			zap.String("to", next.String()))
	}
	s.state = next
	s.mu.Unlock()
}

func (s *Sequencer) toIdle() {
	s.mu.Lock()
	s.state = domain.CheckoutStateIdle
	s.mu.Unlock()
}
