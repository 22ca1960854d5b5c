package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"github.com/Ahmedmamdouh007/lala-store/internal/domain"
)

// Client is the typed HTTP client for the store backend. Every response uses
// the {success, data?, message?} envelope except the provider config lookup.
type Client struct {
	http    *http.Client
	baseURL string
	log     *zap.Logger
}

func New(baseURL string, timeout time.Duration, log *zap.Logger) *Client {
	return &Client{
		http: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		baseURL: strings.TrimRight(baseURL, "/"),
		log:     log,
	}
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

// do performs one request and decodes the envelope's data field into out.
// A success envelope with null data leaves out untouched, which callers
// treat as an empty result rather than an error.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnreachable, err)
	}

	var env envelope
	if decodeErr := json.Unmarshal(raw, &env); decodeErr != nil {
		if resp.StatusCode >= 400 {
			return &ServerError{StatusCode: resp.StatusCode}
		}
		return fmt.Errorf("decode response: %w", decodeErr)
	}

	if resp.StatusCode >= 400 || !env.Success {
		c.log.Warn("backend rejected request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.String("message", env.Message))
		return &ServerError{StatusCode: resp.StatusCode, Message: env.Message}
	}

	if out != nil && len(env.Data) > 0 && string(env.Data) != "null" {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("decode response data: %w", err)
		}
	}
	return nil
}

// Home

func (c *Client) FeaturedProducts(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	if err := c.do(ctx, http.MethodGet, "/home/featured", nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (c *Client) Categories(ctx context.Context) ([]domain.Category, error) {
	var categories []domain.Category
	if err := c.do(ctx, http.MethodGet, "/home/categories", nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// Products

func (c *Client) AllProducts(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	if err := c.do(ctx, http.MethodGet, "/products", nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (c *Client) ProductsByGender(ctx context.Context, gender domain.Gender) ([]domain.Product, error) {
	var products []domain.Product
	if err := c.do(ctx, http.MethodGet, "/products/"+string(gender), nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (c *Client) ProductByID(ctx context.Context, id int64) (*domain.Product, error) {
	var product domain.Product
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/products/details/%d", id), nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// Cart

type AddToCartRequest struct {
	UserID    int64  `json:"user_id"`
	ProductID int64  `json:"product_id"`
	Quantity  int    `json:"quantity"`
	Size      string `json:"size,omitempty"`
}

type UpdateCartItemRequest struct {
	CartItemID int64 `json:"cart_item_id"`
	Quantity   int   `json:"quantity"`
}

func (c *Client) CartItems(ctx context.Context, userID int64) ([]domain.CartLineItem, error) {
	var items []domain.CartLineItem
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/cart/%d", userID), nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *Client) AddToCart(ctx context.Context, req AddToCartRequest) error {
	return c.do(ctx, http.MethodPost, "/cart/add", req, nil)
}

func (c *Client) RemoveFromCart(ctx context.Context, cartItemID int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/cart/remove/%d", cartItemID), nil, nil)
}

func (c *Client) UpdateCartItem(ctx context.Context, req UpdateCartItemRequest) error {
	return c.do(ctx, http.MethodPut, "/cart/update", req, nil)
}

// Orders

type CreateOrderRequest struct {
	UserID          int64  `json:"user_id"`
	ShippingAddress string `json:"shipping_address"`
	CustomerName    string `json:"customer_name"`
	Phone           string `json:"phone"`
	PaymentMethod   string `json:"payment_method"`
	PaymentIntentID string `json:"payment_intent_id,omitempty"`
}

type OrderSummary struct {
	ID              int64       `json:"id"`
	TotalAmount     json.Number `json:"total_amount"`
	Status          string      `json:"status"`
	ShippingAddress string      `json:"shipping_address"`
	PaymentMethod   string      `json:"payment_method"`
	CreatedAt       string      `json:"created_at"`
}

func (c *Client) CreateOrder(ctx context.Context, req CreateOrderRequest) error {
	return c.do(ctx, http.MethodPost, "/orders/create", req, nil)
}

func (c *Client) UserOrders(ctx context.Context, userID int64) ([]OrderSummary, error) {
	var orders []OrderSummary
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/orders/user/%d", userID), nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// Payments

type stripeConfigResponse struct {
	PublishableKey string `json:"publishableKey"`
}

// StripeConfig returns the provider publishable key. The endpoint replies
// with a bare {publishableKey} object, not the usual envelope.
func (c *Client) StripeConfig(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/stripe-config", nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return "", &ServerError{StatusCode: resp.StatusCode}
	}

	var cfg stripeConfigResponse
	if err := json.NewDecoder(resp.Body).Decode(&cfg); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	return cfg.PublishableKey, nil
}

type createIntentRequest struct {
	AmountCents int64  `json:"amount_cents"`
	Currency    string `json:"currency"`
}

type createIntentResponse struct {
	Success      bool   `json:"success"`
	ClientSecret string `json:"client_secret"`
	Message      string `json:"message"`
}

func (c *Client) CreatePaymentIntent(ctx context.Context, amountCents int64, currency string) (string, error) {
	body, err := json.Marshal(createIntentRequest{AmountCents: amountCents, Currency: currency})
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/create-payment-intent", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer resp.Body.Close()

	var out createIntentResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if resp.StatusCode >= 400 || !out.Success {
		return "", &ServerError{StatusCode: resp.StatusCode, Message: out.Message}
	}
	return out.ClientSecret, nil
}
