package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"gamevault_server/apperrors"
	"gamevault_server/models"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
)

// PriceSnapshotService appends price observations. Snapshots are never
// modified in place; a fresh scrape appends a new record and the
// greatest LastChecked wins.
type PriceSnapshotService struct {
	Dynamo        *DynamoService
	RetentionDays int
}

// AppendSnapshot records one scrape result for a game. Overwrite
// semantics are fine here: the timestamp is part of the sort key, so
// two writes only collide when they are the same observation.
func (ss *PriceSnapshotService) AppendSnapshot(ctx context.Context, gameID string, stats models.PriceStats) (*models.PriceSnapshot, error) {
	retention := ss.RetentionDays
	if retention <= 0 {
		retention = 30
	}

	snapshot := models.PriceSnapshot{
		ItemID:              uuid.NewString(),
		GameID:              gameID,
		PriceStats:          stats,
		ExpirationTimestamp: time.Now().AddDate(0, 0, retention).Unix(),
	}
	snapshot = snapshot.WithKeys()

	if err := ss.Dynamo.PutItem(ctx, models.GameCollectionsTable, snapshot); err != nil {
		return nil, err
	}
	log.Printf("Price snapshot appended for game %s (%s) at %s", gameID, stats.DesiredCondition, stats.LastChecked)
	return &snapshot, nil
}

// GetLatestSnapshot returns the most recent snapshot for a game at one
// condition grade, or NotFound when none has been recorded
func (ss *PriceSnapshotService) GetLatestSnapshot(ctx context.Context, gameID, condition string) (*models.PriceSnapshot, error) {
	pk, _, _ := models.BuildPriceSnapshotKey(gameID, condition, "-")
	skPrefix := models.PriceSnapshotPrefix(gameID, condition)

	input := &dynamodb.QueryInput{
		TableName:              aws.String(models.GameCollectionsTable),
		KeyConditionExpression: aws.String("partitionKey = :pk AND begins_with(sortKey, :prefix)"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk":     &types.AttributeValueMemberS{Value: pk},
			":prefix": &types.AttributeValueMemberS{Value: skPrefix},
		},
		ScanIndexForward: aws.Bool(false),
		Limit:            aws.Int32(1),
	}

	output, err := ss.Dynamo.Client.Query(ctx, input)
	if err != nil {
		return nil, storeError(fmt.Errorf("failed to query snapshots for game %s: %w", gameID, err))
	}
	if len(output.Items) == 0 {
		return nil, fmt.Errorf("no snapshot for game %s at %s: %w", gameID, condition, apperrors.ErrNotFound)
	}

	var snapshot models.PriceSnapshot
	if err := attributevalue.UnmarshalMap(output.Items[0], &snapshot); err != nil {
		return nil, err
	}
	return &snapshot, nil
}
