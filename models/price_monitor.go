package models

// PriceMonitor asks the notification sweep to watch one game at one
// condition grade for prices under DesiredPrice. Monitors reference
// their game by id; deleting the game orphans its monitors and the
// sweep skips them.
type PriceMonitor struct {
	PartitionKey string `json:"-" dynamodbav:"partitionKey"`
	SortKey      string `json:"-" dynamodbav:"sortKey"`
	ItemType     string `json:"-" dynamodbav:"itemType"`
	ItemID       string `json:"itemId,omitempty" dynamodbav:"itemId,omitempty"`

	PriceMonitorID string `json:"priceMonitorId" dynamodbav:"priceMonitorId"`
	UserID         string `json:"userId" dynamodbav:"userId"`
	GameID         string `json:"gameId" dynamodbav:"gameId"`
	CollectionID   string `json:"collectionId" dynamodbav:"collectionId"`
	Email          string `json:"email" dynamodbav:"email"`

	DesiredCondition string  `json:"desiredCondition" dynamodbav:"desiredCondition"`
	DesiredPrice     float64 `json:"desiredPrice" dynamodbav:"desiredPrice"`
}

// WithKeys stamps the composite key and discriminator onto the monitor
func (pm PriceMonitor) WithKeys() PriceMonitor {
	pm.PartitionKey, pm.SortKey, pm.ItemType = BuildPriceMonitorKey(pm.UserID, pm.CollectionID, pm.GameID, pm.PriceMonitorID)
	return pm
}
