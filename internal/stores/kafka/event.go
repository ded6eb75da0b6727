package kafka

import "time"

const TopicOrderPaid = `song-orders.order-paid`

// OrderPaidEvent is produced once per confirmed payment so downstream
// consumers (production queue, analytics) can react without polling Stripe.
type OrderPaidEvent struct {
	SessionID     string    `json:"session_id"`
	Plan          string    `json:"plan"`
	AmountTotal   int64     `json:"amount_total"` // cents
	CustomerEmail string    `json:"customer_email"`
	Urgent        bool      `json:"urgent"`
	Video         bool      `json:"video"`
	CreatedAt     time.Time `json:"created_at"`
}
