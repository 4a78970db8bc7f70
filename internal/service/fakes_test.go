package service

import (
	"context"
	"sync"
	"time"

	"github.com/Bentshims/Fastmoney/internal/domain"
	"github.com/Bentshims/Fastmoney/internal/events"
	"github.com/Bentshims/Fastmoney/internal/repository"
)

// In-memory fakes mirroring the repository semantics, including the guarded
// all-or-nothing sale commit.

type fakeProductStore struct {
	mu       sync.Mutex
	products map[string]domain.Product
}

func newFakeProductStore() *fakeProductStore {
	return &fakeProductStore{products: make(map[string]domain.Product)}
}

func (f *fakeProductStore) CreateProduct(_ context.Context, product *domain.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.products[product.ProductID] = *product
	return nil
}

func (f *fakeProductStore) GetProduct(_ context.Context, businessID, productID string) (*domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	product, ok := f.products[productID]
	if !ok || product.BusinessID != businessID {
		return nil, repository.ErrProductNotFound
	}
	cp := product
	return &cp, nil
}

func (f *fakeProductStore) ListProducts(_ context.Context, businessID string) ([]domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Product
	for _, p := range f.products {
		if p.BusinessID == businessID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeProductStore) GetProductsByIDs(_ context.Context, businessID string, ids []string) (map[string]domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	found := make(map[string]domain.Product)
	for _, id := range ids {
		if p, ok := f.products[id]; ok && p.BusinessID == businessID {
			found[id] = p
		}
	}
	return found, nil
}

func (f *fakeProductStore) UpdateProduct(_ context.Context, product *domain.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	existing, ok := f.products[product.ProductID]
	if !ok || existing.BusinessID != product.BusinessID {
		return repository.ErrProductNotFound
	}
	f.products[product.ProductID] = *product
	return nil
}

func (f *fakeProductStore) DeleteProduct(_ context.Context, businessID, productID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	existing, ok := f.products[productID]
	if !ok || existing.BusinessID != businessID {
		return repository.ErrProductNotFound
	}
	delete(f.products, productID)
	return nil
}

func (f *fakeProductStore) AdjustStock(_ context.Context, businessID, productID string, delta int) (*domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	product, ok := f.products[productID]
	if !ok || product.BusinessID != businessID {
		return nil, repository.ErrProductNotFound
	}
	if product.Stock+delta < 0 {
		return nil, repository.ErrInsufficientStock
	}
	product.Stock += delta
	f.products[productID] = product
	cp := product
	return &cp, nil
}

func (f *fakeProductStore) stock(productID string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.products[productID].Stock
}

type fakeSaleStore struct {
	productStore *fakeProductStore
	mu           sync.Mutex
	sales        map[string]domain.Sale
}

func newFakeSaleStore(products *fakeProductStore) *fakeSaleStore {
	return &fakeSaleStore{productStore: products, sales: make(map[string]domain.Sale)}
}

// CreateSale checks every stock guard before applying anything, matching the
// transactional commit: either all decrements and the sale land, or none do.
func (f *fakeSaleStore) CreateSale(_ context.Context, sale *domain.Sale, decrements []domain.StockDecrement) error {
	f.productStore.mu.Lock()
	defer f.productStore.mu.Unlock()

	for _, dec := range decrements {
		product, ok := f.productStore.products[dec.ProductID]
		if !ok || product.BusinessID != sale.BusinessID || product.Stock < dec.Quantity {
			return &repository.StockConflictError{ProductID: dec.ProductID}
		}
	}
	for _, dec := range decrements {
		product := f.productStore.products[dec.ProductID]
		product.Stock -= dec.Quantity
		f.productStore.products[dec.ProductID] = product
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.sales[sale.SaleID] = *sale
	return nil
}

func (f *fakeSaleStore) GetSale(_ context.Context, businessID, saleID string) (*domain.Sale, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	sale, ok := f.sales[saleID]
	if !ok || sale.BusinessID != businessID {
		return nil, repository.ErrSaleNotFound
	}
	cp := sale
	return &cp, nil
}

func (f *fakeSaleStore) ListSales(_ context.Context, businessID string, since, until *time.Time) ([]domain.Sale, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Sale
	for _, sale := range f.sales {
		if sale.BusinessID != businessID {
			continue
		}
		if since != nil && sale.CreatedAt.Before(*since) {
			continue
		}
		if until != nil && !sale.CreatedAt.Before(*until) {
			continue
		}
		out = append(out, sale)
	}
	return out, nil
}

type fakeBusinessStore struct {
	mu         sync.Mutex
	businesses map[string]domain.Business
}

func newFakeBusinessStore() *fakeBusinessStore {
	return &fakeBusinessStore{businesses: make(map[string]domain.Business)}
}

func (f *fakeBusinessStore) CreateBusiness(_ context.Context, business *domain.Business) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.businesses[business.BusinessID] = *business
	return nil
}

func (f *fakeBusinessStore) GetBusiness(_ context.Context, businessID string) (*domain.Business, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	business, ok := f.businesses[businessID]
	if !ok {
		return nil, repository.ErrBusinessNotFound
	}
	cp := business
	return &cp, nil
}

type fakeUserStore struct {
	mu    sync.Mutex
	users map[string]domain.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[string]domain.User)}
}

func (f *fakeUserStore) CreateUser(_ context.Context, user *domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users[user.UserID] = *user
	return nil
}

func (f *fakeUserStore) GetUserByEmail(_ context.Context, email string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.users {
		if user.Email == email {
			cp := user
			return &cp, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

type fakeEmployeeStore struct {
	mu        sync.Mutex
	employees map[string]domain.Employee
}

func newFakeEmployeeStore() *fakeEmployeeStore {
	return &fakeEmployeeStore{employees: make(map[string]domain.Employee)}
}

func (f *fakeEmployeeStore) CreateEmployee(_ context.Context, employee *domain.Employee) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.employees[employee.EmployeeID] = *employee
	return nil
}

func (f *fakeEmployeeStore) GetEmployee(_ context.Context, businessID, employeeID string) (*domain.Employee, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	employee, ok := f.employees[employeeID]
	if !ok || employee.BusinessID != businessID {
		return nil, repository.ErrEmployeeNotFound
	}
	cp := employee
	return &cp, nil
}

func (f *fakeEmployeeStore) GetEmployeeByEmail(_ context.Context, email string) (*domain.Employee, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, employee := range f.employees {
		if employee.Email == email {
			cp := employee
			return &cp, nil
		}
	}
	return nil, repository.ErrEmployeeNotFound
}

func (f *fakeEmployeeStore) ListEmployees(_ context.Context, businessID string) ([]domain.Employee, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Employee
	for _, employee := range f.employees {
		if employee.BusinessID == businessID {
			out = append(out, employee)
		}
	}
	return out, nil
}

func (f *fakeEmployeeStore) DeleteEmployee(_ context.Context, businessID, employeeID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	employee, ok := f.employees[employeeID]
	if !ok || employee.BusinessID != businessID {
		return repository.ErrEmployeeNotFound
	}
	delete(f.employees, employeeID)
	return nil
}

type capturePublisher struct {
	mu     sync.Mutex
	events []events.SaleCompletedEvent
}

func (p *capturePublisher) PublishSaleCompleted(event events.SaleCompletedEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}
