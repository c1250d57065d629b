package orders

import (
	"time"

	"github.com/grocymate/core/internal/cart"
)

type StatusChange struct {
	Status Status    `json:"status"`
	At     time.Time `json:"at"`
}

// Order is immutable once confirmed, except for Status/StatusHistory/
// LastUpdated which only the state machine touches.
type Order struct {
	OrderID         string         `json:"order_id"`
	CustomerEmail   string         `json:"customer_email"`
	CustomerName    string         `json:"customer_name,omitempty"`
	Items           []cart.Line    `json:"items"`
	Subtotal        int            `json:"subtotal"`
	DeliveryCharge  int            `json:"delivery_charge"`
	Discount        int            `json:"discount"`
	Total           int            `json:"total"`
	Status          Status         `json:"status"`
	StatusHistory   []StatusChange `json:"status_history,omitempty"`
	Timestamp       time.Time      `json:"timestamp"`
	LastUpdated     time.Time      `json:"last_updated,omitempty"`
	DeliveryAddress string         `json:"delivery_address"`
}

// HistoryEntry is one row of the derived chronological index in
// orders/history.json.
type HistoryEntry struct {
	OrderID   string    `json:"order_id"`
	Timestamp time.Time `json:"timestamp"`
	Status    Status    `json:"status"`
	Total     int       `json:"total"`
}
