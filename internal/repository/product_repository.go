package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/Bentshims/Fastmoney/internal/domain"
)

type ProductRepository struct {
	client        *dynamodb.Client
	tableName     string
	businessIndex string
}

func NewProductRepository(client *dynamodb.Client, tableName, businessIndex string) *ProductRepository {
	return &ProductRepository{
		client:        client,
		tableName:     tableName,
		businessIndex: businessIndex,
	}
}

func (r *ProductRepository) CreateProduct(ctx context.Context, product *domain.Product) error {
	av, err := attributevalue.MarshalMap(product)
	if err != nil {
		return fmt.Errorf("failed to marshal product: %w", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(product_id)"),
	})
	if err != nil {
		return fmt.Errorf("failed to put item: %w", err)
	}

	return nil
}

// GetProduct is tenant-scoped: an item owned by another business reads as
// not found.
func (r *ProductRepository) GetProduct(ctx context.Context, businessID, productID string) (*domain.Product, error) {
	result, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"product_id": &types.AttributeValueMemberS{Value: productID},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get item: %w", err)
	}

	if result.Item == nil {
		return nil, ErrProductNotFound
	}

	var product domain.Product
	if err := attributevalue.UnmarshalMap(result.Item, &product); err != nil {
		return nil, fmt.Errorf("failed to unmarshal product: %w", err)
	}

	if product.BusinessID != businessID {
		return nil, ErrProductNotFound
	}

	return &product, nil
}

func (r *ProductRepository) ListProducts(ctx context.Context, businessID string) ([]domain.Product, error) {
	keyCond := expression.Key("business_id").Equal(expression.Value(businessID))
	expr, err := expression.NewBuilder().WithKeyCondition(keyCond).Build()
	if err != nil {
		return nil, err
	}

	result, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		IndexName:                 aws.String(r.businessIndex),
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}

	products := make([]domain.Product, 0, len(result.Items))
	if err := attributevalue.UnmarshalListOfMaps(result.Items, &products); err != nil {
		return nil, fmt.Errorf("failed to unmarshal products: %w", err)
	}

	return products, nil
}

// GetProductsByIDs resolves a batch of product ids and keeps only those owned
// by the business. Callers detect missing or cross-tenant ids by comparing
// the returned map against their request. Order sizes stay far below the
// BatchGetItem limit of 100 keys.
func (r *ProductRepository) GetProductsByIDs(ctx context.Context, businessID string, ids []string) (map[string]domain.Product, error) {
	found := make(map[string]domain.Product, len(ids))
	if len(ids) == 0 {
		return found, nil
	}

	seen := make(map[string]struct{}, len(ids))
	keys := make([]map[string]types.AttributeValue, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		keys = append(keys, map[string]types.AttributeValue{
			"product_id": &types.AttributeValueMemberS{Value: id},
		})
	}

	result, err := r.client.BatchGetItem(ctx, &dynamodb.BatchGetItemInput{
		RequestItems: map[string]types.KeysAndAttributes{
			r.tableName: {Keys: keys},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to batch get products: %w", err)
	}

	for _, item := range result.Responses[r.tableName] {
		var product domain.Product
		if err := attributevalue.UnmarshalMap(item, &product); err != nil {
			return nil, fmt.Errorf("failed to unmarshal product: %w", err)
		}
		if product.BusinessID == businessID {
			found[product.ProductID] = product
		}
	}

	return found, nil
}

func (r *ProductRepository) UpdateProduct(ctx context.Context, product *domain.Product) error {
	product.UpdatedAt = time.Now()

	av, err := attributevalue.MarshalMap(product)
	if err != nil {
		return fmt.Errorf("failed to marshal product: %w", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("business_id = :b"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":b": &types.AttributeValueMemberS{Value: product.BusinessID},
		},
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return ErrProductNotFound
		}
		return fmt.Errorf("failed to update product: %w", err)
	}

	return nil
}

func (r *ProductRepository) DeleteProduct(ctx context.Context, businessID, productID string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"product_id": &types.AttributeValueMemberS{Value: productID},
		},
		ConditionExpression: aws.String("business_id = :b"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":b": &types.AttributeValueMemberS{Value: businessID},
		},
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return ErrProductNotFound
		}
		return fmt.Errorf("failed to delete product: %w", err)
	}

	return nil
}

// AdjustStock applies a signed stock delta. Negative deltas only succeed when
// the condition holds at write time, so stock can never go below zero even
// under concurrent adjustments.
func (r *ProductRepository) AdjustStock(ctx context.Context, businessID, productID string, delta int) (*domain.Product, error) {
	if _, err := r.GetProduct(ctx, businessID, productID); err != nil {
		return nil, err
	}

	update := expression.Set(
		expression.Name("stock"),
		expression.Plus(expression.Name("stock"), expression.Value(delta)),
	).Set(
		expression.Name("updated_at"),
		expression.Value(time.Now()),
	)

	condition := expression.Equal(expression.Name("business_id"), expression.Value(businessID))
	if delta < 0 {
		condition = condition.And(expression.GreaterThanEqual(
			expression.Name("stock"),
			expression.Value(-delta),
		))
	}

	expr, err := expression.NewBuilder().
		WithUpdate(update).
		WithCondition(condition).
		Build()
	if err != nil {
		return nil, err
	}

	result, err := r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"product_id": &types.AttributeValueMemberS{Value: productID},
		},
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		UpdateExpression:          expr.Update(),
		ConditionExpression:       expr.Condition(),
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return nil, ErrInsufficientStock
		}
		return nil, fmt.Errorf("failed to adjust stock: %w", err)
	}

	var updated domain.Product
	if err := attributevalue.UnmarshalMap(result.Attributes, &updated); err != nil {
		return nil, fmt.Errorf("failed to unmarshal product: %w", err)
	}

	return &updated, nil
}
