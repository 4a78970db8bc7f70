package domain

import (
	"time"
)

type Employee struct {
	EmployeeID   string    `dynamodbav:"employee_id"   json:"employee_id"`
	BusinessID   string    `dynamodbav:"business_id"   json:"business_id"`
	Name         string    `dynamodbav:"name"          json:"name"`
	Email        string    `dynamodbav:"email"         json:"email"`
	PasswordHash string    `dynamodbav:"password_hash" json:"-"`
	Role         string    `dynamodbav:"role"          json:"role"`
	CreatedAt    time.Time `dynamodbav:"created_at"    json:"created_at"`
}

type CreateEmployeeRequest struct {
	Name     string `json:"name"     binding:"required"`
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role"     binding:"required,oneof=CASHIER MANAGER"`
}
