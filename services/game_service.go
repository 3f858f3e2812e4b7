package services

import (
	"context"
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

// GameService handles the Game entity lifecycle. A game carrying a
// price target is never persisted without fresh price data: Create and
// Modify scrape the marketplace and append a snapshot before the
// conditional write completes.
type GameService struct {
	Dynamo      *DynamoService
	Marketplace *MarketplaceService
	Snapshots   *PriceSnapshotService
	// MarketplaceRetries bounds the backoff retries around a scrape
	MarketplaceRetries int
}

// CreateGame writes a new game into a collection
func (gs *GameService) CreateGame(ctx context.Context, game models.Game) (*models.Game, error) {
	if game.CollectionType == "" {
		return nil, fmt.Errorf("collectionType is required")
	}
	if game.DesiredPrice != nil && game.DesiredCondition == "" {
		return nil, fmt.Errorf("desiredPrice requires a desired condition")
	}
	if game.GameID == "" {
		game.GameID = uuid.NewString()
	}
	if game.ItemID == "" {
		game.ItemID = uuid.NewString()
	}

	if game.Tracked() {
		if !models.ValidCondition(game.DesiredCondition) {
			return nil, fmt.Errorf("invalid desired condition %q", game.DesiredCondition)
		}
		stats, err := gs.refreshPriceData(ctx, &game)
		if err != nil {
			return nil, err
		}
		game.PriceData = stats
	}

	game = game.WithKeys()
	if err := gs.Dynamo.PutItemIfNotExists(ctx, models.GameCollectionsTable, game); err != nil {
		return nil, err
	}
	log.Printf("Game created: %s (%s) in collection %s", game.GameID, game.GameName, game.CollectionID)
	return &game, nil
}

// GetGame retrieves one game by its composite key
func (gs *GameService) GetGame(ctx context.Context, userID, collectionID, gameID string) (*models.Game, error) {
	pk, sk, _ := models.BuildCollectionItemKey(userID, collectionID, gameID, "")

	item, err := gs.Dynamo.GetItem(ctx, models.GameCollectionsTable, ItemKey(pk, sk))
	if err != nil {
		return nil, err
	}
	return unmarshalGame(item)
}

// ModifyGame applies a whitelisted partial update. When the resulting
// game carries a price target and the update touches any field the
// scrape depends on, price data is refreshed first and written
// alongside the other fields.
func (gs *GameService) ModifyGame(ctx context.Context, userID, collectionID, gameID string, upd models.GameUpdate) (*models.Game, error) {
	if upd.Empty() {
		return nil, fmt.Errorf("no updatable fields in request")
	}

	// Load the current record so the scrape has a game name and a
	// condition to work with, and so a missing game fails fast
	current, err := gs.GetGame(ctx, userID, collectionID, gameID)
	if err != nil {
		return nil, err
	}

	update := expression.UpdateBuilder{}
	set := func(name string, value interface{}) {
		update = update.Set(expression.Name(name), expression.Value(value))
	}

	if upd.GameName != nil {
		set("gameName", *upd.GameName)
		current.GameName = *upd.GameName
	}
	if upd.YearReleased != nil {
		set("yearReleased", *upd.YearReleased)
	}
	if upd.Genre != nil {
		set("genre", *upd.Genre)
	}
	if upd.Console != nil {
		set("console", *upd.Console)
		current.Console = *upd.Console
	}
	if upd.Developer != nil {
		set("developer", *upd.Developer)
	}
	if upd.CoverImageURL != nil {
		set("coverImageUrl", *upd.CoverImageURL)
	}
	if upd.DesiredCondition != nil {
		if !models.ValidCondition(*upd.DesiredCondition) {
			return nil, fmt.Errorf("invalid desired condition %q", *upd.DesiredCondition)
		}
		set("desiredCondition", *upd.DesiredCondition)
		current.DesiredCondition = *upd.DesiredCondition
	}
	if upd.DesiredPrice != nil {
		set("desiredPrice", *upd.DesiredPrice)
		current.DesiredPrice = upd.DesiredPrice
	}

	if upd.DesiredPrice != nil && !current.Tracked() {
		return nil, fmt.Errorf("desiredPrice requires a desired condition")
	}

	// Any field feeding the scrape (price target, condition, or the
	// search terms) invalidates the stored price data of a tracked game
	touchedTarget := upd.DesiredPrice != nil || upd.DesiredCondition != nil ||
		upd.GameName != nil || upd.Console != nil
	if touchedTarget && current.Tracked() {
		stats, err := gs.refreshPriceData(ctx, current)
		if err != nil {
			return nil, err
		}
		set("priceData", stats)
	}

	pk, sk, _ := models.BuildCollectionItemKey(userID, collectionID, gameID, "")
	updated, err := gs.Dynamo.UpdateItemIfExists(ctx, models.GameCollectionsTable, ItemKey(pk, sk), update)
	if err != nil {
		return nil, err
	}
	return unmarshalGame(updated)
}

// DeleteGame removes a game and returns the prior value. Price
// monitors attached to the game are deliberately orphaned, not
// cascaded; the notification sweep skips them.
func (gs *GameService) DeleteGame(ctx context.Context, userID, collectionID, gameID string) (*models.Game, error) {
	pk, sk, _ := models.BuildCollectionItemKey(userID, collectionID, gameID, "")

	prior, err := gs.Dynamo.DeleteItemIfExists(ctx, models.GameCollectionsTable, ItemKey(pk, sk))
	if err != nil {
		return nil, err
	}
	return unmarshalGame(prior)
}

// ListGamesInCollection returns every game in one collection via the
// sort-key prefix, drained across pages
func (gs *GameService) ListGamesInCollection(ctx context.Context, userID, collectionID string) ([]models.Game, error) {
	pk, _ := models.BuildUserKey(userID)
	prefix := models.CollectionPrefix(collectionID) + "#[" + models.TagGame + "]#"

	// The game prefix also matches price monitors nested under a game,
	// so the discriminator narrows it to collection items
	input := &dynamodb.QueryInput{
		TableName:              aws.String(models.GameCollectionsTable),
		KeyConditionExpression: aws.String("partitionKey = :pk AND begins_with(sortKey, :prefix)"),
		FilterExpression:       aws.String("begins_with(itemType, :itemType)"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk":       &types.AttributeValueMemberS{Value: pk},
			":prefix":   &types.AttributeValueMemberS{Value: prefix},
			":itemType": &types.AttributeValueMemberS{Value: "CollectionItem#"},
		},
	}

	items, err := gs.Dynamo.QueryAllPages(ctx, input)
	if err != nil {
		return nil, err
	}
	return unmarshalGames(items)
}

// ListAllItemsOfCollectionType returns every game item of one
// collection type across all users, via the itemType index. The
// notification sweep uses this for its wishlist fan-out.
func (gs *GameService) ListAllItemsOfCollectionType(ctx context.Context, collectionType string) ([]models.Game, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(models.GameCollectionsTable),
		IndexName:              aws.String(models.ItemTypeIndex),
		KeyConditionExpression: aws.String("itemType = :itemType"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":itemType": &types.AttributeValueMemberS{Value: models.CollectionItemType(collectionType)},
		},
	}

	items, err := gs.Dynamo.QueryAllPages(ctx, input)
	if err != nil {
		return nil, err
	}
	return unmarshalGames(items)
}

// GetLatestPrice returns the most recent recorded price observation
// for a game at one condition grade, without touching the marketplace
func (gs *GameService) GetLatestPrice(ctx context.Context, gameID, condition string) (*models.PriceSnapshot, error) {
	if !models.ValidCondition(condition) {
		return nil, fmt.Errorf("invalid desired condition %q", condition)
	}
	return gs.Snapshots.GetLatestSnapshot(ctx, gameID, condition)
}

// refreshPriceData scrapes the marketplace for the game's price target,
// retrying transient failures a bounded number of times, and appends
// the observation as a snapshot
func (gs *GameService) refreshPriceData(ctx context.Context, game *models.Game) (*models.PriceStats, error) {
	var consoleFilter *string
	if game.Console != "" {
		consoleFilter = &game.Console
	}

	var stats *models.PriceStats
	err := utils.WithRetries(gs.MarketplaceRetries, time.Second, apperrors.IsMarketplaceUnavailable, func() error {
		var fetchErr error
		stats, fetchErr = gs.Marketplace.FetchPriceStats(ctx, game.GameName, consoleFilter, game.DesiredCondition, *game.DesiredPrice)
		return fetchErr
	})
	if err != nil {
		return nil, err
	}

	if _, err := gs.Snapshots.AppendSnapshot(ctx, game.GameID, *stats); err != nil {
		return nil, err
	}
	return stats, nil
}

// unmarshalGame decodes a stored item and re-derives the collection
// type from the discriminator
func unmarshalGame(item map[string]types.AttributeValue) (*models.Game, error) {
	var game models.Game
	if err := attributevalue.UnmarshalMap(item, &game); err != nil {
		return nil, err
	}
	if game.ItemType != "" {
		collectionType, err := models.CollectionTypeFromItemType(game.ItemType)
		if err != nil {
			return nil, err
		}
		game.CollectionType = collectionType
	}
	return &game, nil
}

func unmarshalGames(items []map[string]types.AttributeValue) ([]models.Game, error) {
	games := make([]models.Game, 0, len(items))
	for _, item := range items {
		game, err := unmarshalGame(item)
		if err != nil {
			return nil, err
		}
		games = append(games, *game)
	}
	return games, nil
}
