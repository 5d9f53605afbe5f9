package dto

import "time"

// CreateOrderRequest starts a checkout. When PlanID is set the amount is
// taken from the plan's monthly fee and the Amount field is ignored.
type CreateOrderRequest struct {
	ChildID    string  `json:"child_id" binding:"required"`
	PayerEmail string  `json:"payer_email" binding:"required,email"`
	Amount     float64 `json:"amount"`
	PlanID     string  `json:"plan_id"`
}

// CheckoutResponse carries everything the client needs to launch the
// redirect checkout. Amount is the normalized two-decimal string the
// checksum was computed over.
type CheckoutResponse struct {
	MerchantID string `json:"merchant_id"`
	OrderID    string `json:"order_id"`
	Amount     string `json:"amount"`
	Currency   string `json:"currency"`
	Checksum   string `json:"hash"`

	CheckoutURL string `json:"checkout_url"`
	ReturnURL   string `json:"return_url"`
	CancelURL   string `json:"cancel_url"`
	NotifyURL   string `json:"notify_url"`

	// Static buyer fields required by the redirect flow.
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Items     string `json:"items"`
}

// GatewayNotification is the asynchronous server-to-server callback from
// the gateway. Fields are deliberately not marked required: a payload with
// missing fields must verify as tampered, not fail binding.
type GatewayNotification struct {
	MerchantID string `json:"merchant_id" form:"merchant_id"`
	OrderID    string `json:"order_id" form:"order_id"`
	Amount     string `json:"payment_amount" form:"payment_amount"`
	Currency   string `json:"payment_currency" form:"payment_currency"`
	StatusCode string `json:"status_code" form:"status_code"`
	Checksum   string `json:"checksum" form:"checksum"`
}

type OrderStatusResponse struct {
	OrderID    string     `json:"order_id"`
	ChildID    string     `json:"child_id"`
	PayerEmail string     `json:"payer_email"`
	Amount     string     `json:"amount"`
	Currency   string     `json:"currency"`
	Status     string     `json:"status"`
	CreatedAt  time.Time  `json:"created_at"`
	PaidAt     *time.Time `json:"paid_at,omitempty"`
}
