package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Bentshims/Fastmoney/internal/domain"
	"github.com/Bentshims/Fastmoney/internal/repository"
)

var (
	ErrProductNotFound   = errors.New("product not found")
	ErrBusinessNotFound  = errors.New("business not found")
	ErrEmployeeNotFound  = errors.New("employee not found")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrInvalidProduct    = errors.New("invalid product")
)

type ProductService struct {
	productRepo ProductStore
	logger      *zap.Logger
}

func NewProductService(productRepo ProductStore, logger *zap.Logger) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		logger:      logger,
	}
}

func (s *ProductService) CreateProduct(ctx context.Context, businessID string, req domain.CreateProductRequest) (*domain.Product, error) {
	if req.Price < 0 {
		return nil, fmt.Errorf("%w: price must not be negative", ErrInvalidProduct)
	}
	if req.Stock < 0 {
		return nil, fmt.Errorf("%w: stock must not be negative", ErrInvalidProduct)
	}
	if req.Kind == domain.ProductKindDrycleanArticle {
		if req.ProcessingType == "" || req.ProcessingMinutes <= 0 {
			return nil, fmt.Errorf("%w: dryclean articles require processing type and duration", ErrInvalidProduct)
		}
	}

	now := time.Now()
	product := &domain.Product{
		ProductID:         uuid.New().String(),
		BusinessID:        businessID,
		Name:              req.Name,
		Price:             req.Price,
		Stock:             req.Stock,
		Category:          req.Category,
		Kind:              req.Kind,
		ProcessingType:    req.ProcessingType,
		ProcessingMinutes: req.ProcessingMinutes,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := s.productRepo.CreateProduct(ctx, product); err != nil {
		s.logger.Error("Failed to save product",
			zap.String("product_id", product.ProductID),
			zap.Error(err))
		return nil, err
	}

	s.logger.Info("Product created successfully",
		zap.String("product_id", product.ProductID),
		zap.String("business_id", businessID),
		zap.Int("initial_stock", product.Stock))

	return product, nil
}

func (s *ProductService) GetProduct(ctx context.Context, businessID, productID string) (*domain.Product, error) {
	product, err := s.productRepo.GetProduct(ctx, businessID, productID)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return product, nil
}

func (s *ProductService) ListProducts(ctx context.Context, businessID string) ([]domain.Product, error) {
	return s.productRepo.ListProducts(ctx, businessID)
}

func (s *ProductService) UpdateProduct(ctx context.Context, businessID, productID string, req domain.UpdateProductRequest) (*domain.Product, error) {
	product, err := s.GetProduct(ctx, businessID, productID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Price != nil {
		if *req.Price < 0 {
			return nil, fmt.Errorf("%w: price must not be negative", ErrInvalidProduct)
		}
		product.Price = *req.Price
	}
	if req.Category != nil {
		product.Category = *req.Category
	}
	if req.ProcessingType != nil {
		product.ProcessingType = *req.ProcessingType
	}
	if req.ProcessingMinutes != nil {
		product.ProcessingMinutes = *req.ProcessingMinutes
	}

	if err := s.productRepo.UpdateProduct(ctx, product); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	return product, nil
}

func (s *ProductService) DeleteProduct(ctx context.Context, businessID, productID string) error {
	if err := s.productRepo.DeleteProduct(ctx, businessID, productID); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return ErrProductNotFound
		}
		return err
	}

	s.logger.Info("Product deleted",
		zap.String("product_id", productID),
		zap.String("business_id", businessID))

	return nil
}

// AdjustStock applies a signed manual stock correction. The repository guard
// rejects adjustments that would drive stock below zero.
func (s *ProductService) AdjustStock(ctx context.Context, businessID, productID string, req domain.AdjustStockRequest) (*domain.Product, error) {
	product, err := s.productRepo.AdjustStock(ctx, businessID, productID, req.Quantity)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		if errors.Is(err, repository.ErrInsufficientStock) {
			return nil, ErrInsufficientStock
		}
		return nil, err
	}

	s.logger.Info("Stock adjusted",
		zap.String("product_id", productID),
		zap.String("business_id", businessID),
		zap.Int("delta", req.Quantity),
		zap.Int("new_stock", product.Stock),
		zap.String("reason", req.Reason))

	return product, nil
}
