package services

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// QueryAllPages drains a paged query into the complete logical result
// set, threading LastEvaluatedKey forward as ExclusiveStartKey until
// the store reports no further pages. The loop is iterative since
// result sets are unbounded in principle. No internal retries: a
// transient store failure surfaces to the caller, whose policy it is.
func (ds *DynamoService) QueryAllPages(ctx context.Context, input *dynamodb.QueryInput) ([]map[string]types.AttributeValue, error) {
	items := make([]map[string]types.AttributeValue, 0)

	var startKey map[string]types.AttributeValue
	for {
		input.ExclusiveStartKey = startKey

		output, err := ds.Client.Query(ctx, input)
		if err != nil {
			return nil, storeError(fmt.Errorf("failed to query table: %w", err))
		}

		items = append(items, output.Items...)

		if output.LastEvaluatedKey == nil {
			return items, nil
		}
		startKey = output.LastEvaluatedKey
	}
}

// QueryAllPagesInto drains a paged query and unmarshals every item into
// out, which must be a pointer to a slice of structs
func (ds *DynamoService) QueryAllPagesInto(ctx context.Context, input *dynamodb.QueryInput, out interface{}) error {
	items, err := ds.QueryAllPages(ctx, input)
	if err != nil {
		return err
	}
	if err := attributevalue.UnmarshalListOfMaps(items, out); err != nil {
		return fmt.Errorf("failed to unmarshal query result: %w", err)
	}
	return nil
}
