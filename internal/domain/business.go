package domain

import (
	"time"
)

type BusinessType string

const (
	BusinessTypeStore    BusinessType = "STORE"
	BusinessTypeDryclean BusinessType = "DRYCLEAN"
)

func (t BusinessType) Valid() bool {
	return t == BusinessTypeStore || t == BusinessTypeDryclean
}

// Business type is fixed at registration and never changes afterwards.
type Business struct {
	BusinessID string       `dynamodbav:"business_id" json:"business_id"`
	Name       string       `dynamodbav:"name"        json:"name"`
	Type       BusinessType `dynamodbav:"type"        json:"type"`
	OwnerID    string       `dynamodbav:"owner_id"    json:"owner_id"`
	CreatedAt  time.Time    `dynamodbav:"created_at"  json:"created_at"`
}
