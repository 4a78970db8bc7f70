package domain

import (
	"time"
)

type ProductKind string

const (
	ProductKindGeneric         ProductKind = "GENERIC"
	ProductKindDrycleanArticle ProductKind = "DRYCLEAN_ARTICLE"
)

// Product stock is never allowed below zero; every mutation goes through a
// conditional update that enforces it.
type Product struct {
	ProductID         string      `dynamodbav:"product_id"         json:"product_id"`
	BusinessID        string      `dynamodbav:"business_id"        json:"business_id"`
	Name              string      `dynamodbav:"name"               json:"name"`
	Price             float64     `dynamodbav:"price"              json:"price"`
	Stock             int         `dynamodbav:"stock"              json:"stock"`
	Category          string      `dynamodbav:"category"           json:"category,omitempty"`
	Kind              ProductKind `dynamodbav:"kind"               json:"kind"`
	ProcessingType    string      `dynamodbav:"processing_type"    json:"processing_type,omitempty"`
	ProcessingMinutes int         `dynamodbav:"processing_minutes" json:"processing_minutes,omitempty"`
	CreatedAt         time.Time   `dynamodbav:"created_at"         json:"created_at"`
	UpdatedAt         time.Time   `dynamodbav:"updated_at"         json:"updated_at"`
}

type CreateProductRequest struct {
	Name              string      `json:"name"               binding:"required"`
	Price             float64     `json:"price"              binding:"min=0"`
	Stock             int         `json:"stock"              binding:"min=0"`
	Category          string      `json:"category"`
	Kind              ProductKind `json:"kind"               binding:"required,oneof=GENERIC DRYCLEAN_ARTICLE"`
	ProcessingType    string      `json:"processing_type"`
	ProcessingMinutes int         `json:"processing_minutes" binding:"min=0"`
}

type UpdateProductRequest struct {
	Name              *string  `json:"name"`
	Price             *float64 `json:"price"`
	Category          *string  `json:"category"`
	ProcessingType    *string  `json:"processing_type"`
	ProcessingMinutes *int     `json:"processing_minutes"`
}

// AdjustStockRequest moves stock by a signed quantity (restock or manual
// correction). Negative adjustments are rejected when they would drive stock
// below zero.
type AdjustStockRequest struct {
	Quantity int    `json:"quantity" binding:"required"`
	Reason   string `json:"reason"`
}
