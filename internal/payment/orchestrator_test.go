package payment

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Ahmedmamdouh007/lala-store/internal/domain"
)

type mockGateway struct {
	key       string
	keyErr    error
	secret    string
	secretErr error

	amountCents int64
	currency    string
}

func (m *mockGateway) StripeConfig(context.Context) (string, error) {
	return m.key, m.keyErr
}

func (m *mockGateway) CreatePaymentIntent(_ context.Context, amountCents int64, currency string) (string, error) {
	m.amountCents = amountCents
	m.currency = currency
	return m.secret, m.secretErr
}

type mockConfirmer struct {
	result *ConfirmResult
	err    error

	gotSecret string
	gotCard   CardHandle
}

func (m *mockConfirmer) Confirm(_ context.Context, clientSecret string, card CardHandle) (*ConfirmResult, error) {
	m.gotSecret = clientSecret
	m.gotCard = card
	return m.result, m.err
}

func newOrchestrator(gateway Gateway, confirmer CardConfirmer) *Orchestrator {
	return NewOrchestrator(gateway, confirmer, zap.NewNop())
}

func TestAvailable_KeyValidation(t *testing.T) {
	cases := []struct {
		name string
		key  string
		err  error
		want bool
	}{
		{name: "real key", key: "pk_test_abc123", want: true},
		{name: "empty key", key: "", want: false},
		{name: "placeholder key", key: "pk_test_YOUR_KEY_HERE", want: false},
		{name: "wrong prefix", key: "sk_test_abc123", want: false},
		{name: "lookup fails", err: errors.New("down"), want: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			o := newOrchestrator(&mockGateway{key: tc.key, keyErr: tc.err}, &mockConfirmer{})
			assert.Equal(t, tc.want, o.Available(context.Background()))
		})
	}
}

func TestCreateIntent_SendsMinorUnits(t *testing.T) {
	cases := []struct {
		total string
		want  int64
	}{
		{total: "0.30", want: 50},   // clamped to the provider minimum
		{total: "12.50", want: 1250},
		{total: "19.99", want: 1999},
	}

	for _, tc := range cases {
		gateway := &mockGateway{secret: "pi_1_secret_2"}
		o := newOrchestrator(gateway, &mockConfirmer{})

		total, err := decimal.NewFromString(tc.total)
		require.NoError(t, err)
		require.NoError(t, o.CreateIntent(context.Background(), total, "usd"))

		assert.Equal(t, tc.want, gateway.amountCents, "total %s", tc.total)
		assert.Equal(t, "usd", gateway.currency)
		assert.Equal(t, domain.PaymentStateAwaitingCard, o.State())
	}
}

func TestCreateIntent_MissingSecretErrors(t *testing.T) {
	o := newOrchestrator(&mockGateway{secret: ""}, &mockConfirmer{})

	err := o.CreateIntent(context.Background(), decimal.NewFromInt(10), "usd")

	assert.Error(t, err)
	assert.Equal(t, domain.PaymentStateErrored, o.State())
	assert.NotEmpty(t, o.FailureMessage())
}

func TestCreateIntent_BackendFailureErrors(t *testing.T) {
	o := newOrchestrator(&mockGateway{secretErr: errors.New("down")}, &mockConfirmer{})

	err := o.CreateIntent(context.Background(), decimal.NewFromInt(10), "usd")

	assert.Error(t, err)
	assert.Equal(t, domain.PaymentStateErrored, o.State())
}

func TestConfirmCard_Succeeded(t *testing.T) {
	confirmer := &mockConfirmer{result: &ConfirmResult{
		IntentID: "pi_1",
		Status:   domain.IntentStatusSucceeded,
	}}
	o := newOrchestrator(&mockGateway{secret: "pi_1_secret_2"}, confirmer)

	require.NoError(t, o.CreateIntent(context.Background(), decimal.NewFromInt(10), "usd"))
	require.NoError(t, o.ConfirmCard(context.Background(), CardHandle("pm_abc")))

	assert.Equal(t, domain.PaymentStateConfirmed, o.State())
	assert.Equal(t, "pi_1", o.IntentID())
	assert.Equal(t, "pi_1_secret_2", confirmer.gotSecret)
	assert.Equal(t, CardHandle("pm_abc"), confirmer.gotCard)
}

func TestConfirmCard_ProviderDeclineKeepsProviderMessage(t *testing.T) {
	confirmer := &mockConfirmer{err: &ProviderError{Message: "Your card was declined."}}
	o := newOrchestrator(&mockGateway{secret: "pi_1_secret_2"}, confirmer)

	require.NoError(t, o.CreateIntent(context.Background(), decimal.NewFromInt(10), "usd"))
	err := o.ConfirmCard(context.Background(), CardHandle("pm_abc"))

	assert.Error(t, err)
	assert.Equal(t, domain.PaymentStateDeclined, o.State())
	assert.Equal(t, "Your card was declined.", o.FailureMessage())
	assert.Empty(t, o.IntentID())
}

func TestConfirmCard_PendingStatusErrors(t *testing.T) {
	confirmer := &mockConfirmer{result: &ConfirmResult{
		IntentID: "pi_1",
		Status:   domain.IntentStatusRequiresConfirmation,
	}}
	o := newOrchestrator(&mockGateway{secret: "pi_1_secret_2"}, confirmer)

	require.NoError(t, o.CreateIntent(context.Background(), decimal.NewFromInt(10), "usd"))
	err := o.ConfirmCard(context.Background(), CardHandle("pm_abc"))

	assert.Error(t, err)
	assert.Equal(t, domain.PaymentStateErrored, o.State())
	assert.Equal(t, "Payment was not completed", o.FailureMessage())
}

func TestConfirmCard_BeforeIntentIsIllegal(t *testing.T) {
	o := newOrchestrator(&mockGateway{}, &mockConfirmer{})

	err := o.ConfirmCard(context.Background(), CardHandle("pm_abc"))

	assert.ErrorIs(t, err, ErrIllegalTransition)
	assert.Equal(t, domain.PaymentStateIdle, o.State())
}

func TestIntentIDFromSecret(t *testing.T) {
	id, err := intentIDFromSecret("pi_3abc_secret_xyz")
	require.NoError(t, err)
	assert.Equal(t, "pi_3abc", id)

	_, err = intentIDFromSecret("garbage")
	assert.Error(t, err)
}
