package service

import (
	"context"
	"time"

	"github.com/Bentshims/Fastmoney/internal/domain"
	"github.com/Bentshims/Fastmoney/internal/events"
)

// Store interfaces cover exactly what the services consume from the
// repositories; tests substitute in-memory fakes.

type ProductStore interface {
	CreateProduct(ctx context.Context, product *domain.Product) error
	GetProduct(ctx context.Context, businessID, productID string) (*domain.Product, error)
	ListProducts(ctx context.Context, businessID string) ([]domain.Product, error)
	GetProductsByIDs(ctx context.Context, businessID string, ids []string) (map[string]domain.Product, error)
	UpdateProduct(ctx context.Context, product *domain.Product) error
	DeleteProduct(ctx context.Context, businessID, productID string) error
	AdjustStock(ctx context.Context, businessID, productID string, delta int) (*domain.Product, error)
}

type SaleStore interface {
	CreateSale(ctx context.Context, sale *domain.Sale, decrements []domain.StockDecrement) error
	GetSale(ctx context.Context, businessID, saleID string) (*domain.Sale, error)
	ListSales(ctx context.Context, businessID string, since, until *time.Time) ([]domain.Sale, error)
}

type BusinessStore interface {
	CreateBusiness(ctx context.Context, business *domain.Business) error
	GetBusiness(ctx context.Context, businessID string) (*domain.Business, error)
}

type UserStore interface {
	CreateUser(ctx context.Context, user *domain.User) error
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
}

type EmployeeStore interface {
	CreateEmployee(ctx context.Context, employee *domain.Employee) error
	GetEmployee(ctx context.Context, businessID, employeeID string) (*domain.Employee, error)
	GetEmployeeByEmail(ctx context.Context, email string) (*domain.Employee, error)
	ListEmployees(ctx context.Context, businessID string) ([]domain.Employee, error)
	DeleteEmployee(ctx context.Context, businessID, employeeID string) error
}

// SalePublisher emits sale-completed events after a successful commit.
type SalePublisher interface {
	PublishSaleCompleted(event events.SaleCompletedEvent) error
}
