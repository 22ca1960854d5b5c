package domain

type CheckoutState string

const (
	CheckoutStateIdle            CheckoutState = "IDLE"
	CheckoutStateValidating      CheckoutState = "VALIDATING"
	CheckoutStateAwaitingPayment CheckoutState = "AWAITING_PAYMENT"
	CheckoutStateSubmitting      CheckoutState = "SUBMITTING"
	CheckoutStateSucceeded       CheckoutState = "SUCCEEDED"
	CheckoutStateFailed          CheckoutState = "FAILED"
)

var checkoutTransitions = map[CheckoutState][]CheckoutState{
	CheckoutStateIdle:            {CheckoutStateValidating},
	CheckoutStateValidating:      {CheckoutStateIdle, CheckoutStateAwaitingPayment, CheckoutStateSubmitting},
	CheckoutStateAwaitingPayment: {CheckoutStateIdle, CheckoutStateSubmitting},
	CheckoutStateSubmitting:      {CheckoutStateSucceeded, CheckoutStateIdle},
	CheckoutStateFailed:          {CheckoutStateIdle},
}

func (s CheckoutState) CanTransitionTo(next CheckoutState) bool {
	for _, allowed := range checkoutTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (s CheckoutState) IsTerminal() bool {
	return s == CheckoutStateSucceeded
}

// String representation (for logging)
func (s CheckoutState) String() string {
	return string(s)
}
