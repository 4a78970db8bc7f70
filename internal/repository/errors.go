package repository

import (
	"errors"
	"fmt"
)

var (
	ErrBusinessNotFound  = errors.New("business not found")
	ErrUserNotFound      = errors.New("user not found")
	ErrEmployeeNotFound  = errors.New("employee not found")
	ErrProductNotFound   = errors.New("product not found")
	ErrSaleNotFound      = errors.New("sale not found")
	ErrInsufficientStock = errors.New("insufficient stock")
)

// StockConflictError reports which product's stock guard failed inside a
// transactional commit. It unwraps to ErrInsufficientStock.
type StockConflictError struct {
	ProductID string
}

func (e *StockConflictError) Error() string {
	return fmt.Sprintf("insufficient stock for product %s", e.ProductID)
}

func (e *StockConflictError) Unwrap() error {
	return ErrInsufficientStock
}
