package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/Bentshims/Fastmoney/internal/domain"
)

type EmployeeRepository struct {
	client        *dynamodb.Client
	tableName     string
	emailIndex    string
	businessIndex string
}

func NewEmployeeRepository(client *dynamodb.Client, tableName, emailIndex, businessIndex string) *EmployeeRepository {
	return &EmployeeRepository{
		client:        client,
		tableName:     tableName,
		emailIndex:    emailIndex,
		businessIndex: businessIndex,
	}
}

func (r *EmployeeRepository) CreateEmployee(ctx context.Context, employee *domain.Employee) error {
	av, err := attributevalue.MarshalMap(employee)
	if err != nil {
		return fmt.Errorf("failed to marshal employee: %w", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(employee_id)"),
	})
	if err != nil {
		return fmt.Errorf("failed to put employee: %w", err)
	}

	return nil
}

func (r *EmployeeRepository) GetEmployee(ctx context.Context, businessID, employeeID string) (*domain.Employee, error) {
	result, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"employee_id": &types.AttributeValueMemberS{Value: employeeID},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get employee: %w", err)
	}

	if result.Item == nil {
		return nil, ErrEmployeeNotFound
	}

	var employee domain.Employee
	if err := attributevalue.UnmarshalMap(result.Item, &employee); err != nil {
		return nil, fmt.Errorf("failed to unmarshal employee: %w", err)
	}

	if employee.BusinessID != businessID {
		return nil, ErrEmployeeNotFound
	}

	return &employee, nil
}

func (r *EmployeeRepository) GetEmployeeByEmail(ctx context.Context, email string) (*domain.Employee, error) {
	keyCond := expression.Key("email").Equal(expression.Value(email))
	expr, err := expression.NewBuilder().WithKeyCondition(keyCond).Build()
	if err != nil {
		return nil, err
	}

	result, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		IndexName:                 aws.String(r.emailIndex),
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		Limit:                     aws.Int32(1),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query employee by email: %w", err)
	}

	if len(result.Items) == 0 {
		return nil, ErrEmployeeNotFound
	}

	var employee domain.Employee
	if err := attributevalue.UnmarshalMap(result.Items[0], &employee); err != nil {
		return nil, fmt.Errorf("failed to unmarshal employee: %w", err)
	}

	return &employee, nil
}

func (r *EmployeeRepository) ListEmployees(ctx context.Context, businessID string) ([]domain.Employee, error) {
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
		return nil, fmt.Errorf("failed to query employees: %w", err)
	}

	employees := make([]domain.Employee, 0, len(result.Items))
	if err := attributevalue.UnmarshalListOfMaps(result.Items, &employees); err != nil {
		return nil, fmt.Errorf("failed to unmarshal employees: %w", err)
	}

	return employees, nil
}

func (r *EmployeeRepository) DeleteEmployee(ctx context.Context, businessID, employeeID string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"employee_id": &types.AttributeValueMemberS{Value: employeeID},
		},
		ConditionExpression: aws.String("business_id = :b"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":b": &types.AttributeValueMemberS{Value: businessID},
		},
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return ErrEmployeeNotFound
		}
		return fmt.Errorf("failed to delete employee: %w", err)
	}

	return nil
}
