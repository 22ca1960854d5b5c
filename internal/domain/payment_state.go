package domain

type PaymentState string

const (
	PaymentStateIdle           PaymentState = "IDLE"
	PaymentStateCreatingIntent PaymentState = "CREATING_INTENT"
	PaymentStateAwaitingCard   PaymentState = "AWAITING_CARD_CONFIRMATION"
	PaymentStateConfirmed      PaymentState = "CONFIRMED"
	PaymentStateDeclined       PaymentState = "DECLINED"
	PaymentStateErrored        PaymentState = "ERRORED"
)

var paymentTransitions = map[PaymentState][]PaymentState{
	PaymentStateIdle:           {PaymentStateCreatingIntent},
	PaymentStateCreatingIntent: {PaymentStateAwaitingCard, PaymentStateErrored},
	PaymentStateAwaitingCard:   {PaymentStateConfirmed, PaymentStateDeclined, PaymentStateErrored},
}

func (s PaymentState) CanTransitionTo(next PaymentState) bool {
	for _, allowed := range paymentTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (s PaymentState) IsTerminal() bool {
	return s == PaymentStateConfirmed || s == PaymentStateDeclined || s == PaymentStateErrored
}

// String representation (for logging)
func (s PaymentState) String() string {
	return string(s)
}

// PaymentIntentStatus is the status the provider reports for an intent.
type PaymentIntentStatus string

const (
	IntentStatusRequiresConfirmation PaymentIntentStatus = "requires_confirmation"
	IntentStatusSucceeded            PaymentIntentStatus = "succeeded"
	IntentStatusFailed               PaymentIntentStatus = "failed"
)

// PaymentIntent is held for the lifetime of one checkout attempt only.
type PaymentIntent struct {
	ID           string
	ClientSecret string
	Status       PaymentIntentStatus
}
