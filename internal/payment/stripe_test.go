package payment

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ahmedmamdouh007/lala-store/internal/domain"
)

func newTestConfirmer(t *testing.T, handler http.HandlerFunc) *StripeConfirmer {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := NewStripeConfirmer("pk_test_abc", time.Second)
	c.baseURL = srv.URL
	return c
}

func TestStripeConfirm_Succeeded(t *testing.T) {
	var gotPath, gotMethod string
	c := newTestConfirmer(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, r.ParseForm())
		gotMethod = r.Form.Get("payment_method")
		w.Write([]byte(`{"id":"pi_3abc","status":"succeeded"}`))
	})

	result, err := c.Confirm(context.Background(), "pi_3abc_secret_xyz", CardHandle("pm_card"))

	require.NoError(t, err)
	assert.Equal(t, "pi_3abc", result.IntentID)
	assert.Equal(t, domain.IntentStatusSucceeded, result.Status)
	assert.Equal(t, "/payment_intents/pi_3abc/confirm", gotPath)
	assert.Equal(t, "pm_card", gotMethod)
}

func TestStripeConfirm_DeclineBecomesProviderError(t *testing.T) {
	c := newTestConfirmer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		w.Write([]byte(`{"error":{"message":"Your card has insufficient funds."}}`))
	})

	_, err := c.Confirm(context.Background(), "pi_1_secret_2", CardHandle("pm_card"))

	var provider *ProviderError
	require.ErrorAs(t, err, &provider)
	assert.Equal(t, "Your card has insufficient funds.", provider.Message)
}

func TestStripeConfirm_MalformedSecret(t *testing.T) {
	c := NewStripeConfirmer("pk_test_abc", time.Second)

	_, err := c.Confirm(context.Background(), "not-a-secret", CardHandle("pm_card"))

	assert.Error(t, err)
}
