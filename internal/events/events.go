package events

import (
	"time"
)

// SaleCompletedEvent is published after a sale commits, for downstream
// consumers (reporting, receipt printing).
type SaleCompletedEvent struct {
	EventID       string     `json:"event_id"`
	SaleID        string     `json:"sale_id"`
	BusinessID    string     `json:"business_id"`
	EmployeeID    string     `json:"employee_id,omitempty"`
	TotalAmount   float64    `json:"total_amount"`
	PaymentMethod string     `json:"payment_method"`
	TicketCode    string     `json:"ticket_code,omitempty"`
	Items         []SaleLine `json:"items"`
	Timestamp     time.Time  `json:"timestamp"`
}

type SaleLine struct {
	ProductID   string  `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
}
