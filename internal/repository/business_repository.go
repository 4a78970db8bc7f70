package repository

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/Bentshims/Fastmoney/internal/domain"
)

type BusinessRepository struct {
	client    *dynamodb.Client
	tableName string
}

func NewBusinessRepository(client *dynamodb.Client, tableName string) *BusinessRepository {
	return &BusinessRepository{
		client:    client,
		tableName: tableName,
	}
}

func (r *BusinessRepository) CreateBusiness(ctx context.Context, business *domain.Business) error {
	av, err := attributevalue.MarshalMap(business)
	if err != nil {
		return fmt.Errorf("failed to marshal business: %w", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(business_id)"),
	})
	if err != nil {
		return fmt.Errorf("failed to put business: %w", err)
	}

	return nil
}

func (r *BusinessRepository) GetBusiness(ctx context.Context, businessID string) (*domain.Business, error) {
	result, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"business_id": &types.AttributeValueMemberS{Value: businessID},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get business: %w", err)
	}

	if result.Item == nil {
		return nil, ErrBusinessNotFound
	}

	var business domain.Business
	if err := attributevalue.UnmarshalMap(result.Item, &business); err != nil {
		return nil, fmt.Errorf("failed to unmarshal business: %w", err)
	}

	return &business, nil
}
