package domain

import (
	"time"
)

const (
	RoleOwner   = "OWNER"
	RoleCashier = "CASHIER"
	RoleManager = "MANAGER"
)

// User is a business owner account. Employees live in their own table; both
// satisfy the same credential-holder lookup at login time.
type User struct {
	UserID       string    `dynamodbav:"user_id"       json:"user_id"`
	Email        string    `dynamodbav:"email"         json:"email"`
	PasswordHash string    `dynamodbav:"password_hash" json:"-"`
	Role         string    `dynamodbav:"role"          json:"role"`
	BusinessID   string    `dynamodbav:"business_id"   json:"business_id"`
	CreatedAt    time.Time `dynamodbav:"created_at"    json:"created_at"`
}

type RegisterRequest struct {
	Email        string       `json:"email"         binding:"required,email"`
	Password     string       `json:"password"      binding:"required,min=6"`
	BusinessName string       `json:"business_name" binding:"required"`
	BusinessType BusinessType `json:"business_type" binding:"required,oneof=STORE DRYCLEAN"`
}

type LoginRequest struct {
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Principal is the authenticated identity resolved at login, either an owner
// or an employee.
type Principal struct {
	Subject    string `json:"subject"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	BusinessID string `json:"business_id"`
}

type AuthResponse struct {
	AccessToken string    `json:"access_token"`
	Principal   Principal `json:"user"`
	Business    *Business `json:"business,omitempty"`
}
