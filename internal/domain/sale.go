package domain

import (
	"time"
)

type PaymentMethod string

const (
	PaymentCash        PaymentMethod = "CASH"
	PaymentMobileMoney PaymentMethod = "MOBILE_MONEY"
	PaymentCard        PaymentMethod = "CARD"
	PaymentCredit      PaymentMethod = "CREDIT"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCash, PaymentMobileMoney, PaymentCard, PaymentCredit:
		return true
	}
	return false
}

// SaleItem carries the unit price captured during order validation, not a
// live reference to the product's current price.
type SaleItem struct {
	SaleItemID  string  `dynamodbav:"sale_item_id" json:"sale_item_id"`
	ProductID   string  `dynamodbav:"product_id"   json:"product_id"`
	ProductName string  `dynamodbav:"product_name" json:"product_name"`
	Quantity    int     `dynamodbav:"quantity"     json:"quantity"`
	UnitPrice   float64 `dynamodbav:"unit_price"   json:"unit_price"`
}

// Sale is immutable once committed. Items are embedded and only ever written
// as part of the sale's own commit. CreatedTS duplicates CreatedAt as epoch
// milliseconds for the business/created range index.
type Sale struct {
	SaleID        string        `dynamodbav:"sale_id"        json:"sale_id"`
	BusinessID    string        `dynamodbav:"business_id"    json:"business_id"`
	EmployeeID    string        `dynamodbav:"employee_id"    json:"employee_id,omitempty"`
	EmployeeName  string        `dynamodbav:"employee_name"  json:"employee_name,omitempty"`
	TotalAmount   float64       `dynamodbav:"total_amount"   json:"total_amount"`
	PaymentMethod PaymentMethod `dynamodbav:"payment_method" json:"payment_method"`
	TicketCode    string        `dynamodbav:"ticket_code"    json:"ticket_code,omitempty"`
	Items         []SaleItem    `dynamodbav:"items"          json:"items"`
	CreatedAt     time.Time     `dynamodbav:"created_at"     json:"created_at"`
	CreatedTS     int64         `dynamodbav:"created_ts"     json:"-"`
}

type SaleItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity"   binding:"required,min=1"`
}

type CreateSaleRequest struct {
	Items         []SaleItemRequest `json:"items"          binding:"required,min=1,dive"`
	PaymentMethod PaymentMethod     `json:"payment_method" binding:"required,oneof=CASH MOBILE_MONEY CARD CREDIT"`
	EmployeeID    string            `json:"employee_id"`
}

// StockDecrement is one guarded stock mutation inside a sale commit.
type StockDecrement struct {
	ProductID string
	Quantity  int
}
