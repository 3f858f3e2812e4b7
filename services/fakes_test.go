package services

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

// fakeDynamoAPI substitutes the DynamoDB client in store tests. Only
// the function fields a test sets are exercised.
type fakeDynamoAPI struct {
	putFn    func(ctx context.Context, params *dynamodb.PutItemInput) (*dynamodb.PutItemOutput, error)
	getFn    func(ctx context.Context, params *dynamodb.GetItemInput) (*dynamodb.GetItemOutput, error)
	queryFn  func(ctx context.Context, params *dynamodb.QueryInput) (*dynamodb.QueryOutput, error)
	updateFn func(ctx context.Context, params *dynamodb.UpdateItemInput) (*dynamodb.UpdateItemOutput, error)
	deleteFn func(ctx context.Context, params *dynamodb.DeleteItemInput) (*dynamodb.DeleteItemOutput, error)
}

func (f *fakeDynamoAPI) PutItem(ctx context.Context, params *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	if f.putFn == nil {
		return &dynamodb.PutItemOutput{}, nil
	}
	return f.putFn(ctx, params)
}

func (f *fakeDynamoAPI) GetItem(ctx context.Context, params *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	if f.getFn == nil {
		return &dynamodb.GetItemOutput{}, nil
	}
	return f.getFn(ctx, params)
}

func (f *fakeDynamoAPI) Query(ctx context.Context, params *dynamodb.QueryInput, _ ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	if f.queryFn == nil {
		return &dynamodb.QueryOutput{}, nil
	}
	return f.queryFn(ctx, params)
}

func (f *fakeDynamoAPI) UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error) {
	if f.updateFn == nil {
		return &dynamodb.UpdateItemOutput{}, nil
	}
	return f.updateFn(ctx, params)
}

func (f *fakeDynamoAPI) DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error) {
	if f.deleteFn == nil {
		return &dynamodb.DeleteItemOutput{}, nil
	}
	return f.deleteFn(ctx, params)
}
