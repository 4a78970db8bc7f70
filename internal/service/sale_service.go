package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Bentshims/Fastmoney/internal/domain"
	"github.com/Bentshims/Fastmoney/internal/events"
	"github.com/Bentshims/Fastmoney/internal/repository"
)

var (
	ErrInvalidOrder = errors.New("invalid order")
	ErrSaleNotFound = errors.New("sale not found")
)

// StockError names the product whose stock could not cover the requested
// quantity. It unwraps to ErrInsufficientStock.
type StockError struct {
	ProductID   string
	ProductName string
	Available   int
	Requested   int
}

func (e *StockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %s: available %d, requested %d",
		e.ProductName, e.Available, e.Requested)
}

func (e *StockError) Unwrap() error {
	return ErrInsufficientStock
}

type SaleService struct {
	saleRepo     SaleStore
	productRepo  ProductStore
	businessRepo BusinessStore
	employeeRepo EmployeeStore
	publisher    SalePublisher
	logger       *zap.Logger
}

func NewSaleService(
	saleRepo SaleStore,
	productRepo ProductStore,
	businessRepo BusinessStore,
	employeeRepo EmployeeStore,
	publisher SalePublisher,
	logger *zap.Logger,
) *SaleService {
	return &SaleService{
		saleRepo:     saleRepo,
		productRepo:  productRepo,
		businessRepo: businessRepo,
		employeeRepo: employeeRepo,
		publisher:    publisher,
		logger:       logger,
	}
}

// CreateSale validates the order against live inventory, freezes unit prices,
// assigns a ticket code for dryclean businesses, and commits stock decrements
// together with the sale record as one all-or-nothing unit. No store mutation
// happens before the commit; a failed commit leaves nothing applied.
func (s *SaleService) CreateSale(ctx context.Context, businessID string, req domain.CreateSaleRequest) (*domain.Sale, error) {
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("%w: at least one item is required", ErrInvalidOrder)
	}
	if !req.PaymentMethod.Valid() {
		return nil, fmt.Errorf("%w: unknown payment method %q", ErrInvalidOrder, req.PaymentMethod)
	}
	for _, item := range req.Items {
		if item.Quantity <= 0 {
			return nil, fmt.Errorf("%w: quantity must be positive for product %s", ErrInvalidOrder, item.ProductID)
		}
	}

	ids := make([]string, 0, len(req.Items))
	distinct := make(map[string]struct{}, len(req.Items))
	for _, item := range req.Items {
		if _, ok := distinct[item.ProductID]; !ok {
			distinct[item.ProductID] = struct{}{}
			ids = append(ids, item.ProductID)
		}
	}

	products, err := s.productRepo.GetProductsByIDs(ctx, businessID, ids)
	if err != nil {
		return nil, err
	}
	if len(products) != len(ids) {
		return nil, ErrProductNotFound
	}

	var employeeName string
	if req.EmployeeID != "" {
		employee, err := s.employeeRepo.GetEmployee(ctx, businessID, req.EmployeeID)
		if err != nil {
			if errors.Is(err, repository.ErrEmployeeNotFound) {
				return nil, ErrEmployeeNotFound
			}
			return nil, err
		}
		employeeName = employee.Name
	}

	// Stock is checked in caller order, with quantities for the same product
	// accumulated so a duplicated line cannot slip past the guard. The commit
	// re-checks the same guard at write time.
	requested := make(map[string]int, len(ids))
	totalAmount := 0.0
	saleItems := make([]domain.SaleItem, 0, len(req.Items))
	for _, item := range req.Items {
		product := products[item.ProductID]
		requested[item.ProductID] += item.Quantity
		if product.Stock < requested[item.ProductID] {
			return nil, &StockError{
				ProductID:   product.ProductID,
				ProductName: product.Name,
				Available:   product.Stock,
				Requested:   requested[item.ProductID],
			}
		}

		totalAmount += product.Price * float64(item.Quantity)
		saleItems = append(saleItems, domain.SaleItem{
			SaleItemID:  uuid.New().String(),
			ProductID:   product.ProductID,
			ProductName: product.Name,
			Quantity:    item.Quantity,
			UnitPrice:   product.Price,
		})
	}

	business, err := s.businessRepo.GetBusiness(ctx, businessID)
	if err != nil {
		if errors.Is(err, repository.ErrBusinessNotFound) {
			return nil, ErrBusinessNotFound
		}
		return nil, err
	}

	var ticketCode string
	if business.Type == domain.BusinessTypeDryclean {
		ticketCode = newTicketCode()
	}

	now := time.Now()
	sale := &domain.Sale{
		SaleID:        uuid.New().String(),
		BusinessID:    businessID,
		EmployeeID:    req.EmployeeID,
		EmployeeName:  employeeName,
		TotalAmount:   totalAmount,
		PaymentMethod: req.PaymentMethod,
		TicketCode:    ticketCode,
		Items:         saleItems,
		CreatedAt:     now,
		CreatedTS:     now.UnixMilli(),
	}

	decrements := make([]domain.StockDecrement, 0, len(ids))
	for _, id := range ids {
		decrements = append(decrements, domain.StockDecrement{
			ProductID: id,
			Quantity:  requested[id],
		})
	}

	if err := s.saleRepo.CreateSale(ctx, sale, decrements); err != nil {
		var conflict *repository.StockConflictError
		if errors.As(err, &conflict) {
			// A concurrent sale won the race between validation and commit.
			product := products[conflict.ProductID]
			s.logger.Warn("Sale commit lost stock race",
				zap.String("business_id", businessID),
				zap.String("product_id", conflict.ProductID))
			return nil, &StockError{
				ProductID:   conflict.ProductID,
				ProductName: product.Name,
				Available:   product.Stock,
				Requested:   requested[conflict.ProductID],
			}
		}
		s.logger.Error("Failed to commit sale",
			zap.String("business_id", businessID),
			zap.Error(err))
		return nil, err
	}

	s.logger.Info("Sale created successfully",
		zap.String("sale_id", sale.SaleID),
		zap.String("business_id", businessID),
		zap.Float64("total_amount", totalAmount),
		zap.Int("items", len(saleItems)),
		zap.String("ticket_code", ticketCode))

	s.publishSaleCompleted(sale)

	return sale, nil
}

// publishSaleCompleted is best effort; a broker failure never fails the sale.
func (s *SaleService) publishSaleCompleted(sale *domain.Sale) {
	if s.publisher == nil {
		return
	}

	lines := make([]events.SaleLine, 0, len(sale.Items))
	for _, item := range sale.Items {
		lines = append(lines, events.SaleLine{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
		})
	}

	event := events.SaleCompletedEvent{
		EventID:       uuid.New().String(),
		SaleID:        sale.SaleID,
		BusinessID:    sale.BusinessID,
		EmployeeID:    sale.EmployeeID,
		TotalAmount:   sale.TotalAmount,
		PaymentMethod: string(sale.PaymentMethod),
		TicketCode:    sale.TicketCode,
		Items:         lines,
		Timestamp:     sale.CreatedAt,
	}

	if err := s.publisher.PublishSaleCompleted(event); err != nil {
		s.logger.Warn("Failed to publish sale completed event",
			zap.String("sale_id", sale.SaleID),
			zap.Error(err))
	}
}

func (s *SaleService) GetSale(ctx context.Context, businessID, saleID string) (*domain.Sale, error) {
	sale, err := s.saleRepo.GetSale(ctx, businessID, saleID)
	if err != nil {
		if errors.Is(err, repository.ErrSaleNotFound) {
			return nil, ErrSaleNotFound
		}
		return nil, err
	}
	return sale, nil
}

// ListSales returns the business's sales newest first, optionally restricted
// to a date window anchored at local midnight.
func (s *SaleService) ListSales(ctx context.Context, businessID, window string) ([]domain.Sale, error) {
	since, until, err := windowBounds(time.Now(), window)
	if err != nil {
		return nil, err
	}
	return s.saleRepo.ListSales(ctx, businessID, since, until)
}

// windowBounds maps a date-window keyword to [since, until) bounds. today:
// from start of the current day. yesterday: the previous calendar day.
// last7days: from start of the day seven days ago, no upper bound.
func windowBounds(now time.Time, window string) (since, until *time.Time, err error) {
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	switch window {
	case "", "all":
		return nil, nil, nil
	case "today":
		return &startOfDay, nil, nil
	case "yesterday":
		start := startOfDay.AddDate(0, 0, -1)
		return &start, &startOfDay, nil
	case "last7days":
		start := startOfDay.AddDate(0, 0, -7)
		return &start, nil, nil
	default:
		return nil, nil, fmt.Errorf("%w: unknown date filter %q", ErrInvalidOrder, window)
	}
}
