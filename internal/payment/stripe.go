package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Ahmedmamdouh007/lala-store/internal/domain"
)

const stripeAPIBase = "https://api.stripe.com/v1"

// StripeConfirmer calls the provider's client-side confirmation API with the
// publishable key, the way the embedded capture widget does. Only the client
// secret and the provider-issued payment-method handle go over this call;
// the store backend is never involved.
type StripeConfirmer struct {
	http           *http.Client
	baseURL        string
	publishableKey string
}

func NewStripeConfirmer(publishableKey string, timeout time.Duration) *StripeConfirmer {
	return &StripeConfirmer{
		http:           &http.Client{Timeout: timeout},
		baseURL:        stripeAPIBase,
		publishableKey: publishableKey,
	}
}

type stripeIntentResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Error  *struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (s *StripeConfirmer) Confirm(ctx context.Context, clientSecret string, card CardHandle) (*ConfirmResult, error) {
	intentID, err := intentIDFromSecret(clientSecret)
	if err != nil {
		return nil, err
	}

	form := url.Values{}
	form.Set("client_secret", clientSecret)
	form.Set("payment_method", string(card))

	endpoint := fmt.Sprintf("%s/payment_intents/%s/confirm", s.baseURL, intentID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("build confirm request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(s.publishableKey, "")

	resp, err := s.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("confirm request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read confirm response: %w", err)
	}

	var out stripeIntentResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode confirm response: %w", err)
	}

	if out.Error != nil && out.Error.Message != "" {
		return nil, &ProviderError{Message: out.Error.Message}
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("confirm failed with status %d", resp.StatusCode)
	}

	return &ConfirmResult{
		IntentID: out.ID,
		Status:   domain.PaymentIntentStatus(out.Status),
	}, nil
}

// intentIDFromSecret extracts the intent id from a "pi_..._secret_..."
// client secret.
func intentIDFromSecret(clientSecret string) (string, error) {
	id, _, found := strings.Cut(clientSecret, "_secret_")
	if !found || id == "" {
		return "", fmt.Errorf("malformed client secret")
	}
	return id, nil
}
