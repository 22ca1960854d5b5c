// Package payment drives one payment-intent lifecycle per checkout attempt.
// Raw card data never enters this package: collection and transmission stay
// inside the provider's own capture component, which hands back an opaque
// CardHandle this orchestrator merely relays.
package payment

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/Ahmedmamdouh007/lala-store/internal/api"
	"github.com/Ahmedmamdouh007/lala-store/internal/domain"
)

var (
	ErrUnavailable       = errors.New("card payments are not configured")
	ErrIllegalTransition = errors.New("illegal payment state transition")
)

// CardHandle is the provider-issued reference to card data collected by the
// embedded capture component. It is the only card-shaped value this system
// ever holds.
type CardHandle string

// ConfirmResult is the provider's answer to a confirmation call.
type ConfirmResult struct {
	IntentID string
	Status   domain.PaymentIntentStatus
}

// ProviderError is a decline or rejection the provider explained itself.
// Its message reaches the user verbatim, never rewritten into a generic
// order failure.
type ProviderError struct {
	Message string
}

func (e *ProviderError) Error() string { return e.Message }

// CardConfirmer is the capability boundary to the provider's client-side
// confirmation API. Implementations talk to the provider directly; the
// store backend is never on that path.
type CardConfirmer interface {
	Confirm(ctx context.Context, clientSecret string, card CardHandle) (*ConfirmResult, error)
}

// Gateway is the slice of the API client the orchestrator needs.
type Gateway interface {
	StripeConfig(ctx context.Context) (string, error)
	CreatePaymentIntent(ctx context.Context, amountCents int64, currency string) (string, error)
}

// Orchestrator is built fresh for every checkout attempt; no state crosses
// attempts.
type Orchestrator struct {
	api       Gateway
	confirmer CardConfirmer
	log       *zap.Logger

	mu           sync.Mutex
	state        domain.PaymentState
	clientSecret string
	intentID     string
	failure      string
}

func NewOrchestrator(gateway Gateway, confirmer CardConfirmer, log *zap.Logger) *Orchestrator {
	return &Orchestrator{
		api:       gateway,
		confirmer: confirmer,
		log:       log,
		state:     domain.PaymentStateIdle,
	}
}

// Available reports whether the card path may be offered at all. A missing
// key, a key without the provider prefix, or a placeholder left in the
// config all disable it up front.
func (o *Orchestrator) Available(ctx context.Context) bool {
	key, err := o.api.StripeConfig(ctx)
	if err != nil {
		o.log.Warn("provider config lookup failed", zap.Error(err))
		return false
	}
	return UsableKey(key)
}

// UsableKey checks a publishable key for the provider prefix and the
// placeholder marker shipped in example configs.
func UsableKey(key string) bool {
	return key != "" && strings.HasPrefix(key, "pk_") && !strings.Contains(key, "YOUR_")
}

// CreateIntent requests a payment intent for the cart total. The amount on
// the wire is always max(minimum, round(total*100)) minor units.
func (o *Orchestrator) CreateIntent(ctx context.Context, total decimal.Decimal, currency string) error {
	if err := o.transition(domain.PaymentStateCreatingIntent); err != nil {
		return err
	}

	secret, err := o.api.CreatePaymentIntent(ctx, domain.MinorUnits(total), currency)
	if err != nil {
		o.fail(domain.PaymentStateErrored, api.UserMessage(err, "Could not create payment session"))
		return err
	}
	if strings.TrimSpace(secret) == "" {
		o.fail(domain.PaymentStateErrored, "Could not create payment session")
		return errors.New("payment intent response missing client secret")
	}

	o.mu.Lock()
	o.clientSecret = secret
	o.state = domain.PaymentStateAwaitingCard
	o.mu.Unlock()
	return nil
}

// ConfirmCard relays the client secret and card handle to the provider and
// settles the attempt: succeeded confirms, a provider-explained error
// declines, anything else errors out.
func (o *Orchestrator) ConfirmCard(ctx context.Context, card CardHandle) error {
	o.mu.Lock()
	if o.state != domain.PaymentStateAwaitingCard {
		o.mu.Unlock()
		return ErrIllegalTransition
	}
	secret := o.clientSecret
	o.mu.Unlock()

	result, err := o.confirmer.Confirm(ctx, secret, card)
	if err != nil {
		var provider *ProviderError
		if errors.As(err, &provider) {
			o.fail(domain.PaymentStateDeclined, provider.Message)
		} else {
			o.fail(domain.PaymentStateErrored, "Payment failed")
		}
		return err
	}

	if result.Status != domain.IntentStatusSucceeded {
		o.log.Warn("payment intent not settled", zap.String("status", string(result.Status)))
		o.fail(domain.PaymentStateErrored, "Payment was not completed")
		return errors.New("payment was not completed")
	}

	o.mu.Lock()
	o.state = domain.PaymentStateConfirmed
	o.intentID = result.IntentID
	o.mu.Unlock()
	return nil
}

func (o *Orchestrator) State() domain.PaymentState {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// IntentID is only set once the state is confirmed.
func (o *Orchestrator) IntentID() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.intentID
}

// FailureMessage is the user-facing text for a declined or errored attempt.
func (o *Orchestrator) FailureMessage() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.failure
}

func (o *Orchestrator) transition(next domain.PaymentState) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if !o.state.CanTransitionTo(next) {
		return ErrIllegalTransition
	}
	o.state = next
	return nil
}

func (o *Orchestrator) fail(state domain.PaymentState, message string) {
	o.mu.Lock()
	o.state = state
	o.failure = message
	o.clientSecret = ""
	o.mu.Unlock()
}
