package models

// Game is one entry in a user's collection. Optional cataloguing fields
// come straight from the client; DesiredCondition/DesiredPrice mark the
// game as price-tracked, and a tracked game always carries PriceData.
type Game struct {
	PartitionKey string `json:"-" dynamodbav:"partitionKey"`
	SortKey      string `json:"-" dynamodbav:"sortKey"`
	ItemType     string `json:"-" dynamodbav:"itemType"`
	ItemID       string `json:"itemId,omitempty" dynamodbav:"itemId,omitempty"`

	GameID         string `json:"gameId" dynamodbav:"gameId"`
	UserID         string `json:"userId" dynamodbav:"userId"`
	Email          string `json:"email" dynamodbav:"email"`
	CollectionID   string `json:"collectionId" dynamodbav:"collectionId"`
	CollectionType string `json:"collectionType,omitempty" dynamodbav:"-"`

	GameName      string `json:"gameName" dynamodbav:"gameName"`
	YearReleased  string `json:"yearReleased,omitempty" dynamodbav:"yearReleased,omitempty"`
	Genre         string `json:"genre,omitempty" dynamodbav:"genre,omitempty"`
	Console       string `json:"console,omitempty" dynamodbav:"console,omitempty"`
	Developer     string `json:"developer,omitempty" dynamodbav:"developer,omitempty"`
	CoverImageURL string `json:"coverImageUrl,omitempty" dynamodbav:"coverImageUrl,omitempty"`

	DesiredCondition string   `json:"desiredCondition,omitempty" dynamodbav:"desiredCondition,omitempty"`
	DesiredPrice     *float64 `json:"desiredPrice,omitempty" dynamodbav:"desiredPrice,omitempty"`

	PriceMonitorIDs []string    `json:"priceMonitorIds,omitempty" dynamodbav:"priceMonitorIds,omitempty"`
	PriceData       *PriceStats `json:"priceData,omitempty" dynamodbav:"priceData,omitempty"`
}

// WithKeys stamps the composite key and discriminator onto the game.
// The discriminator embeds the collection type so the ItemTypeIndex can
// select all wishlist items across every user.
func (g Game) WithKeys() Game {
	g.PartitionKey, g.SortKey, g.ItemType = BuildCollectionItemKey(g.UserID, g.CollectionID, g.GameID, g.CollectionType)
	return g
}

// Tracked reports whether the game carries a price target
func (g Game) Tracked() bool {
	return g.DesiredPrice != nil && g.DesiredCondition != ""
}
