package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"gamevault_server/apperrors"
	"gamevault_server/models"
	"gamevault_server/utils"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
)

// PriceMonitorService handles the PriceMonitor lifecycle and the
// "all monitors for a game" fan-out the notification sweep relies on
type PriceMonitorService struct {
	Dynamo             *DynamoService
	Games              *GameService
	Marketplace        *MarketplaceService
	Snapshots          *PriceSnapshotService
	MarketplaceRetries int
}

// CreateMonitor writes a new price monitor. The referenced game must
// exist in the same collection, and a fresh price observation is
// recorded before the monitor itself is written.
func (pms *PriceMonitorService) CreateMonitor(ctx context.Context, monitor models.PriceMonitor) (*models.PriceMonitor, error) {
	if !models.ValidCondition(monitor.DesiredCondition) {
		return nil, fmt.Errorf("invalid desired condition %q", monitor.DesiredCondition)
	}

	game, err := pms.Games.GetGame(ctx, monitor.UserID, monitor.CollectionID, monitor.GameID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("game %s not found in collection %s: %w", monitor.GameID, monitor.CollectionID, apperrors.ErrNotFound)
		}
		return nil, err
	}

	if monitor.PriceMonitorID == "" {
		monitor.PriceMonitorID = uuid.NewString()
	}
	if monitor.ItemID == "" {
		monitor.ItemID = uuid.NewString()
	}
	if monitor.Email == "" {
		monitor.Email = game.Email
	}

	if _, err := pms.refreshPriceData(ctx, game.GameName, game.Console, monitor); err != nil {
		return nil, err
	}

	monitor = monitor.WithKeys()
	if err := pms.Dynamo.PutItemIfNotExists(ctx, models.GameCollectionsTable, monitor); err != nil {
		return nil, err
	}

	// Record the monitor id on the game. Best effort: the monitor is
	// the source of truth and the sweep does not read this list.
	if err := pms.appendMonitorID(ctx, monitor); err != nil {
		log.Printf("Failed to record monitor %s on game %s: %v", monitor.PriceMonitorID, monitor.GameID, err)
	}

	log.Printf("Price monitor created: %s for game %s (%s < %.2f)", monitor.PriceMonitorID, monitor.GameID, monitor.DesiredCondition, monitor.DesiredPrice)
	return &monitor, nil
}

// GetMonitor retrieves one price monitor by its composite key
func (pms *PriceMonitorService) GetMonitor(ctx context.Context, userID, collectionID, gameID, priceMonitorID string) (*models.PriceMonitor, error) {
	pk, sk, _ := models.BuildPriceMonitorKey(userID, collectionID, gameID, priceMonitorID)

	item, err := pms.Dynamo.GetItem(ctx, models.GameCollectionsTable, ItemKey(pk, sk))
	if err != nil {
		return nil, err
	}

	var monitor models.PriceMonitor
	if err := attributevalue.UnmarshalMap(item, &monitor); err != nil {
		return nil, err
	}
	return &monitor, nil
}

// ModifyMonitor updates the desired condition and/or price, the only
// updatable fields, and refreshes price data for the new target
func (pms *PriceMonitorService) ModifyMonitor(ctx context.Context, userID, collectionID, gameID, priceMonitorID string, upd models.PriceMonitorUpdate) (*models.PriceMonitor, error) {
	if upd.Empty() {
		return nil, fmt.Errorf("no updatable fields in request")
	}

	current, err := pms.GetMonitor(ctx, userID, collectionID, gameID, priceMonitorID)
	if err != nil {
		return nil, err
	}

	update := expression.UpdateBuilder{}
	if upd.DesiredCondition != nil {
		if !models.ValidCondition(*upd.DesiredCondition) {
			return nil, fmt.Errorf("invalid desired condition %q", *upd.DesiredCondition)
		}
		update = update.Set(expression.Name("desiredCondition"), expression.Value(*upd.DesiredCondition))
		current.DesiredCondition = *upd.DesiredCondition
	}
	if upd.DesiredPrice != nil {
		update = update.Set(expression.Name("desiredPrice"), expression.Value(*upd.DesiredPrice))
		current.DesiredPrice = *upd.DesiredPrice
	}

	// The monitor's game may have been deleted since creation. An
	// orphaned monitor has no search terms to scrape with and the sweep
	// never reaches it, so the refresh is skipped rather than queried
	// with a meaningless name.
	game, err := pms.Games.GetGame(ctx, userID, collectionID, gameID)
	switch {
	case err == nil:
		if _, err := pms.refreshPriceData(ctx, game.GameName, game.Console, *current); err != nil {
			return nil, err
		}
	case errors.Is(err, apperrors.ErrNotFound):
		log.Printf("Skipping price refresh for monitor %s: game %s no longer exists", priceMonitorID, gameID)
	default:
		return nil, err
	}

	pk, sk, _ := models.BuildPriceMonitorKey(userID, collectionID, gameID, priceMonitorID)
	updated, err := pms.Dynamo.UpdateItemIfExists(ctx, models.GameCollectionsTable, ItemKey(pk, sk), update)
	if err != nil {
		return nil, err
	}

	var monitor models.PriceMonitor
	if err := attributevalue.UnmarshalMap(updated, &monitor); err != nil {
		return nil, err
	}
	return &monitor, nil
}

// DeleteMonitor removes a price monitor and returns the prior value
func (pms *PriceMonitorService) DeleteMonitor(ctx context.Context, userID, collectionID, gameID, priceMonitorID string) (*models.PriceMonitor, error) {
	pk, sk, _ := models.BuildPriceMonitorKey(userID, collectionID, gameID, priceMonitorID)

	prior, err := pms.Dynamo.DeleteItemIfExists(ctx, models.GameCollectionsTable, ItemKey(pk, sk))
	if err != nil {
		return nil, err
	}

	var monitor models.PriceMonitor
	if err := attributevalue.UnmarshalMap(prior, &monitor); err != nil {
		return nil, err
	}
	return &monitor, nil
}

// ListForGame returns every price monitor watching one game,
// independent of user or collection, via the itemType index. The
// bracketed game segment makes the contains() filter exact: a game id
// can never be a substring of a different bracketed id.
func (pms *PriceMonitorService) ListForGame(ctx context.Context, gameID string) ([]models.PriceMonitor, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(models.GameCollectionsTable),
		IndexName:              aws.String(models.ItemTypeIndex),
		KeyConditionExpression: aws.String("itemType = :itemType"),
		FilterExpression:       aws.String("contains(sortKey, :gameSegment)"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":itemType":    &types.AttributeValueMemberS{Value: models.ItemTypePriceMonitor},
			":gameSegment": &types.AttributeValueMemberS{Value: models.GameSegment(gameID)},
		},
	}

	monitors := make([]models.PriceMonitor, 0)
	if err := pms.Dynamo.QueryAllPagesInto(ctx, input, &monitors); err != nil {
		return nil, err
	}
	return monitors, nil
}

func (pms *PriceMonitorService) refreshPriceData(ctx context.Context, gameName, console string, monitor models.PriceMonitor) (*models.PriceStats, error) {
	var consoleFilter *string
	if console != "" {
		consoleFilter = &console
	}

	var stats *models.PriceStats
	err := utils.WithRetries(pms.MarketplaceRetries, time.Second, apperrors.IsMarketplaceUnavailable, func() error {
		var fetchErr error
		stats, fetchErr = pms.Marketplace.FetchPriceStats(ctx, gameName, consoleFilter, monitor.DesiredCondition, monitor.DesiredPrice)
		return fetchErr
	})
	if err != nil {
		return nil, err
	}

	if _, err := pms.Snapshots.AppendSnapshot(ctx, monitor.GameID, *stats); err != nil {
		return nil, err
	}
	return stats, nil
}

// appendMonitorID adds the monitor's id to its game's priceMonitorIds list
func (pms *PriceMonitorService) appendMonitorID(ctx context.Context, monitor models.PriceMonitor) error {
	pk, sk, _ := models.BuildCollectionItemKey(monitor.UserID, monitor.CollectionID, monitor.GameID, "")

	update := expression.Set(
		expression.Name("priceMonitorIds"),
		expression.ListAppend(
			expression.IfNotExists(expression.Name("priceMonitorIds"), expression.Value([]string{})),
			expression.Value([]string{monitor.PriceMonitorID}),
		),
	)

	_, err := pms.Dynamo.UpdateItemIfExists(ctx, models.GameCollectionsTable, ItemKey(pk, sk), update)
	return err
}
