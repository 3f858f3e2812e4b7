package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"gamevault_server/apperrors"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// DynamoAPI is the slice of the DynamoDB client the store layer uses.
// Tests substitute a fake for pagination and conditional-write paths.
type DynamoAPI interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
}

// DynamoService wraps the raw client with the conditional-write and
// marshaling conventions every entity store shares
type DynamoService struct {
	Client DynamoAPI
}

// InitializeDynamoDBClient initializes the DynamoDB client
func InitializeDynamoDBClient(region string) *dynamodb.Client {
	cfg, err := config.LoadDefaultConfig(context.TODO(), config.WithRegion(region))
	if err != nil {
		log.Fatalf("Failed to load AWS config: %v", err)
	}
	return dynamodb.NewFromConfig(cfg)
}

// ItemKey builds the composite primary key attribute map
func ItemKey(partitionKey, sortKey string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"partitionKey": &types.AttributeValueMemberS{Value: partitionKey},
		"sortKey":      &types.AttributeValueMemberS{Value: sortKey},
	}
}

// PutItem writes an item unconditionally. Used for append-only records
// (price snapshots) where overwrite semantics are acceptable.
func (ds *DynamoService) PutItem(ctx context.Context, tableName string, item interface{}) error {
	marshaled, err := attributevalue.MarshalMap(item)
	if err != nil {
		return fmt.Errorf("failed to marshal item: %w", err)
	}

	_, err = ds.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: &tableName,
		Item:      marshaled,
	})
	if err != nil {
		return storeError(fmt.Errorf("failed to put item in table '%s': %w", tableName, err))
	}
	return nil
}

// PutItemIfNotExists writes an item with proof of non-existence on the
// composite key. A conditional-check failure surfaces as AlreadyExists.
func (ds *DynamoService) PutItemIfNotExists(ctx context.Context, tableName string, item interface{}) error {
	marshaled, err := attributevalue.MarshalMap(item)
	if err != nil {
		return fmt.Errorf("failed to marshal item: %w", err)
	}

	cond := expression.AttributeNotExists(expression.Name("partitionKey")).
		And(expression.AttributeNotExists(expression.Name("sortKey")))
	expr, err := expression.NewBuilder().WithCondition(cond).Build()
	if err != nil {
		return fmt.Errorf("failed to build condition expression: %w", err)
	}

	_, err = ds.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:                 &tableName,
		Item:                      marshaled,
		ConditionExpression:       expr.Condition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		return translateConditionalError(err, apperrors.ErrAlreadyExists)
	}
	return nil
}

// GetItem retrieves an item by composite key; a missing item is NotFound
func (ds *DynamoService) GetItem(ctx context.Context, tableName string, key map[string]types.AttributeValue) (map[string]types.AttributeValue, error) {
	output, err := ds.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: &tableName,
		Key:       key,
	})
	if err != nil {
		return nil, storeError(fmt.Errorf("failed to get item from table '%s': %w", tableName, err))
	}

	if output.Item == nil {
		return nil, apperrors.ErrNotFound
	}

	return output.Item, nil
}

// UpdateItemIfExists applies a partial update with proof of existence
// on the composite key and returns the full post-update item. A
// conditional-check failure surfaces as NotFound.
func (ds *DynamoService) UpdateItemIfExists(
	ctx context.Context,
	tableName string,
	key map[string]types.AttributeValue,
	update expression.UpdateBuilder,
) (map[string]types.AttributeValue, error) {
	cond := expression.AttributeExists(expression.Name("partitionKey")).
		And(expression.AttributeExists(expression.Name("sortKey")))
	expr, err := expression.NewBuilder().WithCondition(cond).WithUpdate(update).Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build update expression: %w", err)
	}

	output, err := ds.Client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 &tableName,
		Key:                       key,
		UpdateExpression:          expr.Update(),
		ConditionExpression:       expr.Condition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		return nil, translateConditionalError(err, apperrors.ErrNotFound)
	}
	return output.Attributes, nil
}

// DeleteItemIfExists removes an item with proof of existence and
// returns the prior value. A conditional-check failure surfaces as
// NotFound.
func (ds *DynamoService) DeleteItemIfExists(ctx context.Context, tableName string, key map[string]types.AttributeValue) (map[string]types.AttributeValue, error) {
	cond := expression.AttributeExists(expression.Name("partitionKey")).
		And(expression.AttributeExists(expression.Name("sortKey")))
	expr, err := expression.NewBuilder().WithCondition(cond).Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build condition expression: %w", err)
	}

	output, err := ds.Client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:                 &tableName,
		Key:                       key,
		ConditionExpression:       expr.Condition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		ReturnValues:              types.ReturnValueAllOld,
	})
	if err != nil {
		return nil, translateConditionalError(err, apperrors.ErrNotFound)
	}
	return output.Attributes, nil
}

// translateConditionalError maps a conditional-check failure onto the
// domain error the caller expects (AlreadyExists for creates, NotFound
// for modify/delete) and everything else onto StoreUnavailable, so
// callers never branch on SDK error types.
func translateConditionalError(err error, onConditionFail error) error {
	var ccf *types.ConditionalCheckFailedException
	if errors.As(err, &ccf) {
		return onConditionFail
	}
	return storeError(err)
}

func storeError(err error) error {
	return fmt.Errorf("%w: %v", apperrors.ErrStoreUnavailable, err)
}
