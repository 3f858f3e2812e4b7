package services

import (
	"context"
	"log"

	"gamevault_server/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/google/uuid"
)

// UserService handles the User entity lifecycle
type UserService struct {
	Dynamo *DynamoService
}

// CreateUser writes a new user; the composite key must not exist yet
func (us *UserService) CreateUser(ctx context.Context, user models.User) (*models.User, error) {
	if user.ItemID == "" {
		user.ItemID = uuid.NewString()
	}
	user = user.WithKeys()

	if err := us.Dynamo.PutItemIfNotExists(ctx, models.GameCollectionsTable, user); err != nil {
		return nil, err
	}
	log.Printf("User created: %s", user.UserID)
	return &user, nil
}

// GetUser retrieves a user by id
func (us *UserService) GetUser(ctx context.Context, userID string) (*models.User, error) {
	pk, sk := models.BuildUserKey(userID)

	item, err := us.Dynamo.GetItem(ctx, models.GameCollectionsTable, ItemKey(pk, sk))
	if err != nil {
		return nil, err
	}

	var user models.User
	if err := attributevalue.UnmarshalMap(item, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// DeleteUser removes a user record and returns the prior value
func (us *UserService) DeleteUser(ctx context.Context, userID string) (*models.User, error) {
	pk, sk := models.BuildUserKey(userID)

	prior, err := us.Dynamo.DeleteItemIfExists(ctx, models.GameCollectionsTable, ItemKey(pk, sk))
	if err != nil {
		return nil, err
	}

	var user models.User
	if err := attributevalue.UnmarshalMap(prior, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
