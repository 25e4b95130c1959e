package model

import "time"

type SessionStatus string

const (
	SessionOpen     SessionStatus = "open"
	SessionComplete SessionStatus = "complete"
	SessionExpired  SessionStatus = "expired"
)

type CheckoutSession struct {
	SessionID       string        `json:"sessionId"`
	OrderID         string        `json:"orderId"`
	Tier            string        `json:"tier"`
	Label           string        `json:"label"`
	AmountCents     int64         `json:"amountCents"`
	Currency        string        `json:"currency"`
	Status          SessionStatus `json:"status"`
	PaymentIntentID string        `json:"paymentIntentId,omitempty"`
	CreatedAt       time.Time     `json:"createdAt"`
}

// PricingTier is one row of the fixed tier price table.
type PricingTier struct {
	Tier        string `json:"tier"`
	Label       string `json:"label"`
	AmountCents int64  `json:"amountCents"`
	Currency    string `json:"currency"`
}

// CompletedCheckout is what a successful completion hands back.
type CompletedCheckout struct {
	SessionID       string `json:"sessionId"`
	OrderID         string `json:"orderId"`
	Tier            string `json:"tier"`
	AmountCents     int64  `json:"amountCents"`
	Currency        string `json:"currency"`
	PaymentIntentID string `json:"paymentIntentId"`
}
