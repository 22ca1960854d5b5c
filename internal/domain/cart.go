package domain

import "github.com/shopspring/decimal"

// CartLineItem mirrors the server's cart row. The id is assigned server-side;
// the display fields are denormalized copies captured at add-time.
type CartLineItem struct {
	ID          int64           `json:"id"`
	ProductID   int64           `json:"product_id"`
	ProductName string          `json:"product_name"`
	ImageURL    string          `json:"image_url"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	Size        string          `json:"size,omitempty"`
}

type PaymentMethod string

const (
	PaymentMethodUnset          PaymentMethod = ""
	PaymentMethodCard           PaymentMethod = "card"
	PaymentMethodVisa           PaymentMethod = "visa"
	PaymentMethodCashOnDelivery PaymentMethod = "cod"
	PaymentMethodPaypal         PaymentMethod = "paypal"
	PaymentMethodBankTransfer   PaymentMethod = "bank_transfer"
)

// RequiresCard reports whether the method is settled through the card
// provider rather than at delivery or by transfer.
func (m PaymentMethod) RequiresCard() bool {
	return m == PaymentMethodCard || m == PaymentMethodVisa
}

func (m PaymentMethod) String() string {
	return string(m)
}

// ShippingInfo lives only for the session; it is never persisted.
type ShippingInfo struct {
	CustomerName string
	Phone        string
	Method       PaymentMethod
}
