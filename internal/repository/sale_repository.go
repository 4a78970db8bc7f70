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

const conditionalCheckFailed = "ConditionalCheckFailed"

type SaleRepository struct {
	client           *dynamodb.Client
	tableName        string
	productTableName string
	businessIndex    string
}

func NewSaleRepository(client *dynamodb.Client, tableName, productTableName, businessIndex string) *SaleRepository {
	return &SaleRepository{
		client:           client,
		tableName:        tableName,
		productTableName: productTableName,
		businessIndex:    businessIndex,
	}
}

// CreateSale commits the sale record and all stock decrements as one
// TransactWriteItems call. Each decrement is guarded by a stock >= quantity
// condition evaluated at write time, so a concurrent sale that would drive
// stock negative cancels the whole transaction and nothing is applied.
func (r *SaleRepository) CreateSale(ctx context.Context, sale *domain.Sale, decrements []domain.StockDecrement) error {
	items := make([]types.TransactWriteItem, 0, len(decrements)+1)

	for _, dec := range decrements {
		update := expression.Set(
			expression.Name("stock"),
			expression.Minus(expression.Name("stock"), expression.Value(dec.Quantity)),
		).Set(
			expression.Name("updated_at"),
			expression.Value(time.Now()),
		)

		condition := expression.Equal(
			expression.Name("business_id"),
			expression.Value(sale.BusinessID),
		).And(expression.GreaterThanEqual(
			expression.Name("stock"),
			expression.Value(dec.Quantity),
		))

		expr, err := expression.NewBuilder().
			WithUpdate(update).
			WithCondition(condition).
			Build()
		if err != nil {
			return err
		}

		items = append(items, types.TransactWriteItem{
			Update: &types.Update{
				TableName: aws.String(r.productTableName),
				Key: map[string]types.AttributeValue{
					"product_id": &types.AttributeValueMemberS{Value: dec.ProductID},
				},
				ExpressionAttributeNames:  expr.Names(),
				ExpressionAttributeValues: expr.Values(),
				UpdateExpression:          expr.Update(),
				ConditionExpression:       expr.Condition(),
			},
		})
	}

	av, err := attributevalue.MarshalMap(sale)
	if err != nil {
		return fmt.Errorf("failed to marshal sale: %w", err)
	}

	items = append(items, types.TransactWriteItem{
		Put: &types.Put{
			TableName:           aws.String(r.tableName),
			Item:                av,
			ConditionExpression: aws.String("attribute_not_exists(sale_id)"),
		},
	})

	_, err = r.client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: items,
	})
	if err != nil {
		var canceled *types.TransactionCanceledException
		if errors.As(err, &canceled) {
			// Cancellation reasons line up with the transact item order, so
			// the first failed guard names the offending product.
			for i, reason := range canceled.CancellationReasons {
				if reason.Code != nil && *reason.Code == conditionalCheckFailed && i < len(decrements) {
					return &StockConflictError{ProductID: decrements[i].ProductID}
				}
			}
		}
		return fmt.Errorf("failed to commit sale: %w", err)
	}

	return nil
}

func (r *SaleRepository) GetSale(ctx context.Context, businessID, saleID string) (*domain.Sale, error) {
	result, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"sale_id": &types.AttributeValueMemberS{Value: saleID},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get sale: %w", err)
	}

	if result.Item == nil {
		return nil, ErrSaleNotFound
	}

	var sale domain.Sale
	if err := attributevalue.UnmarshalMap(result.Item, &sale); err != nil {
		return nil, fmt.Errorf("failed to unmarshal sale: %w", err)
	}

	if sale.BusinessID != businessID {
		return nil, ErrSaleNotFound
	}

	return &sale, nil
}

// ListSales queries the business/created index newest first. since is an
// inclusive lower bound, until an exclusive upper bound; either may be nil.
func (r *SaleRepository) ListSales(ctx context.Context, businessID string, since, until *time.Time) ([]domain.Sale, error) {
	keyCond := expression.Key("business_id").Equal(expression.Value(businessID))

	switch {
	case since != nil && until != nil:
		// Key conditions only offer an inclusive BETWEEN, so back the upper
		// bound off by a millisecond (created_ts has millisecond precision).
		keyCond = keyCond.And(expression.Key("created_ts").Between(
			expression.Value(since.UnixMilli()),
			expression.Value(until.UnixMilli()-1),
		))
	case since != nil:
		keyCond = keyCond.And(expression.Key("created_ts").GreaterThanEqual(
			expression.Value(since.UnixMilli()),
		))
	case until != nil:
		keyCond = keyCond.And(expression.Key("created_ts").LessThan(
			expression.Value(until.UnixMilli()),
		))
	}

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
		ScanIndexForward:          aws.Bool(false),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query sales: %w", err)
	}

	sales := make([]domain.Sale, 0, len(result.Items))
	if err := attributevalue.UnmarshalListOfMaps(result.Items, &sales); err != nil {
		return nil, fmt.Errorf("failed to unmarshal sales: %w", err)
	}

	return sales, nil
}
