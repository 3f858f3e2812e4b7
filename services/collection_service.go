package services

import (
	"context"
	"fmt"
	"log"

	"gamevault_server/models"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
)

// CollectionService handles the Collection metadata lifecycle
type CollectionService struct {
	Dynamo *DynamoService
}

// CreateCollection writes a new collection for a user
func (cs *CollectionService) CreateCollection(ctx context.Context, collection models.Collection) (*models.Collection, error) {
	if collection.CollectionID == "" {
		collection.CollectionID = uuid.NewString()
	}
	if collection.ItemID == "" {
		collection.ItemID = uuid.NewString()
	}
	if collection.CollectionType == "" {
		collection.CollectionType = models.CollectionTypeOwned
	}
	collection = collection.WithKeys()

	if err := cs.Dynamo.PutItemIfNotExists(ctx, models.GameCollectionsTable, collection); err != nil {
		return nil, err
	}
	log.Printf("Collection created: %s (%s) for user %s", collection.CollectionID, collection.CollectionType, collection.UserID)
	return &collection, nil
}

// GetCollection retrieves one collection's metadata
func (cs *CollectionService) GetCollection(ctx context.Context, userID, collectionID string) (*models.Collection, error) {
	pk, sk := models.BuildCollectionKey(userID, collectionID)

	item, err := cs.Dynamo.GetItem(ctx, models.GameCollectionsTable, ItemKey(pk, sk))
	if err != nil {
		return nil, err
	}

	var collection models.Collection
	if err := attributevalue.UnmarshalMap(item, &collection); err != nil {
		return nil, err
	}
	return &collection, nil
}

// ModifyCollection updates the collection's logical type, the only
// updatable field; the key is never touched
func (cs *CollectionService) ModifyCollection(ctx context.Context, userID, collectionID, collectionType string) (*models.Collection, error) {
	pk, sk := models.BuildCollectionKey(userID, collectionID)

	update := expression.Set(expression.Name("collectionType"), expression.Value(collectionType))

	updated, err := cs.Dynamo.UpdateItemIfExists(ctx, models.GameCollectionsTable, ItemKey(pk, sk), update)
	if err != nil {
		return nil, err
	}

	var collection models.Collection
	if err := attributevalue.UnmarshalMap(updated, &collection); err != nil {
		return nil, err
	}
	return &collection, nil
}

// DeleteCollection removes a collection's metadata record and returns
// the prior value. Items inside the collection are not cascaded.
func (cs *CollectionService) DeleteCollection(ctx context.Context, userID, collectionID string) (*models.Collection, error) {
	pk, sk := models.BuildCollectionKey(userID, collectionID)

	prior, err := cs.Dynamo.DeleteItemIfExists(ctx, models.GameCollectionsTable, ItemKey(pk, sk))
	if err != nil {
		return nil, err
	}

	var collection models.Collection
	if err := attributevalue.UnmarshalMap(prior, &collection); err != nil {
		return nil, err
	}
	return &collection, nil
}

// ListCollectionsForUser returns every collection a user owns, drained
// across pages
func (cs *CollectionService) ListCollectionsForUser(ctx context.Context, userID string) ([]models.Collection, error) {
	pk, _ := models.BuildUserKey(userID)

	// The collection prefix also matches every item inside a
	// collection, so the discriminator narrows it to metadata records
	input := &dynamodb.QueryInput{
		TableName:              aws.String(models.GameCollectionsTable),
		KeyConditionExpression: aws.String("partitionKey = :pk AND begins_with(sortKey, :prefix)"),
		FilterExpression:       aws.String("itemType = :itemType"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk":       &types.AttributeValueMemberS{Value: pk},
			":prefix":   &types.AttributeValueMemberS{Value: fmt.Sprintf("[%s]#", models.TagCollection)},
			":itemType": &types.AttributeValueMemberS{Value: models.ItemTypeCollectionMeta},
		},
	}

	collections := make([]models.Collection, 0)
	if err := cs.Dynamo.QueryAllPagesInto(ctx, input, &collections); err != nil {
		return nil, err
	}
	return collections, nil
}
