package models

import "time"

// OrderCreatedEvent is published to Kafka after an order commits.
type OrderCreatedEvent struct {
	EventType       string    `json:"event_type"`
	OrderID         string    `json:"order_id"`
	OrderNumber     string    `json:"order_number"`
	UserID          string    `json:"user_id"`
	ProductID       string    `json:"product_id"`
	Quantity        int       `json:"quantity"`
	LocationID      string    `json:"location_id"`
	FinalTotalPaise int64     `json:"final_total_paise"`
	PaymentMethod   string    `json:"payment_method"`
	Timestamp       time.Time `json:"timestamp"`
}

// OrderConfirmation is the structured summary handed to the notification
// sender. Delivery is best-effort; the order is durable regardless.
type OrderConfirmation struct {
	EventType       string    `json:"event_type"`
	OrderID         string    `json:"order_id"`
	OrderNumber     string    `json:"order_number"`
	RecipientEmail  string    `json:"recipient_email"`
	RecipientName   string    `json:"recipient_name"`
	ProductTitle    string    `json:"product_title"`
	Quantity        int       `json:"quantity"`
	FinalTotalPaise int64     `json:"final_total_paise"`
	FinalTotal      string    `json:"final_total_rupees"`
	Timestamp       time.Time `json:"timestamp"`
}
