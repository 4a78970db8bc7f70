package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Bentshims/Fastmoney/internal/domain"
)

func newProductFixture() (*ProductService, *fakeProductStore) {
	products := newFakeProductStore()
	return NewProductService(products, zap.NewNop()), products
}

func TestCreateProductValidation(t *testing.T) {
	svc, _ := newProductFixture()

	tests := []struct {
		name    string
		req     domain.CreateProductRequest
		wantErr error
	}{
		{
			name: "generic product ok",
			req: domain.CreateProductRequest{
				Name:  "Rice 1kg",
				Price: 2.50,
				Stock: 40,
				Kind:  domain.ProductKindGeneric,
			},
		},
		{
			name: "dryclean article with processing ok",
			req: domain.CreateProductRequest{
				Name:              "Suit jacket",
				Price:             12.00,
				Kind:              domain.ProductKindDrycleanArticle,
				ProcessingType:    "DRY",
				ProcessingMinutes: 90,
			},
		},
		{
			name: "dryclean article missing processing type",
			req: domain.CreateProductRequest{
				Name:              "Shirt",
				Price:             4.00,
				Kind:              domain.ProductKindDrycleanArticle,
				ProcessingMinutes: 30,
			},
			wantErr: ErrInvalidProduct,
		},
		{
			name: "dryclean article missing processing duration",
			req: domain.CreateProductRequest{
				Name:           "Shirt",
				Price:          4.00,
				Kind:           domain.ProductKindDrycleanArticle,
				ProcessingType: "STEAM",
			},
			wantErr: ErrInvalidProduct,
		},
		{
			name: "negative price",
			req: domain.CreateProductRequest{
				Name:  "Broken",
				Price: -1,
				Kind:  domain.ProductKindGeneric,
			},
			wantErr: ErrInvalidProduct,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			product, err := svc.CreateProduct(context.Background(), "biz-1", tc.req)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, product.ProductID)
			assert.Equal(t, "biz-1", product.BusinessID)
		})
	}
}

func TestAdjustStockNeverBelowZero(t *testing.T) {
	svc, products := newProductFixture()
	require.NoError(t, products.CreateProduct(context.Background(), &domain.Product{
		ProductID:  "p1",
		BusinessID: "biz-1",
		Name:       "Soap",
		Price:      1.00,
		Stock:      3,
	}))

	product, err := svc.AdjustStock(context.Background(), "biz-1", "p1", domain.AdjustStockRequest{Quantity: -2, Reason: "damage"})
	require.NoError(t, err)
	assert.Equal(t, 1, product.Stock)

	_, err = svc.AdjustStock(context.Background(), "biz-1", "p1", domain.AdjustStockRequest{Quantity: -2})
	assert.ErrorIs(t, err, ErrInsufficientStock)
	assert.Equal(t, 1, products.stock("p1"))

	product, err = svc.AdjustStock(context.Background(), "biz-1", "p1", domain.AdjustStockRequest{Quantity: 10, Reason: "restock"})
	require.NoError(t, err)
	assert.Equal(t, 11, product.Stock)
}

func TestProductTenantScoping(t *testing.T) {
	svc, products := newProductFixture()
	require.NoError(t, products.CreateProduct(context.Background(), &domain.Product{
		ProductID:  "p1",
		BusinessID: "biz-1",
		Name:       "Soap",
	}))

	_, err := svc.GetProduct(context.Background(), "biz-2", "p1")
	assert.ErrorIs(t, err, ErrProductNotFound)

	err = svc.DeleteProduct(context.Background(), "biz-2", "p1")
	assert.ErrorIs(t, err, ErrProductNotFound)

	_, err = svc.AdjustStock(context.Background(), "biz-2", "p1", domain.AdjustStockRequest{Quantity: 1})
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestUpdateProductAppliesPartialChanges(t *testing.T) {
	svc, products := newProductFixture()
	require.NoError(t, products.CreateProduct(context.Background(), &domain.Product{
		ProductID:  "p1",
		BusinessID: "biz-1",
		Name:       "Soap",
		Price:      1.00,
		Category:   "hygiene",
	}))

	newPrice := 1.25
	updated, err := svc.UpdateProduct(context.Background(), "biz-1", "p1", domain.UpdateProductRequest{Price: &newPrice})
	require.NoError(t, err)
	assert.Equal(t, 1.25, updated.Price)
	assert.Equal(t, "Soap", updated.Name)
	assert.Equal(t, "hygiene", updated.Category)

	bad := -3.0
	_, err = svc.UpdateProduct(context.Background(), "biz-1", "p1", domain.UpdateProductRequest{Price: &bad})
	assert.ErrorIs(t, err, ErrInvalidProduct)
}
