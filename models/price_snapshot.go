package models

// PriceStats is what one marketplace scrape yields for a game at a
// desired condition grade. Embedded into Game records that carry a
// price target and appended as PriceSnapshot items.
type PriceStats struct {
	DesiredCondition string `json:"desiredCondition" dynamodbav:"desiredCondition"`
	// LastChecked is the scrape timestamp in the reporting timezone,
	// formatted as RFC3339; it doubles as the snapshot identifier
	LastChecked string `json:"lastChecked" dynamodbav:"lastChecked"`

	// DesiredPriceExists is true once some valid listing beat the
	// desired price (strict upper bound)
	DesiredPriceExists bool `json:"desiredPriceExists" dynamodbav:"desiredPriceExists"`

	LowestPrice  float64 `json:"lowestPrice,omitempty" dynamodbav:"lowestPrice,omitempty"`
	AveragePrice float64 `json:"averagePrice,omitempty" dynamodbav:"averagePrice,omitempty"`

	// Locale-formatted display strings; threshold logic never reads these
	LowestPriceDisplay  string `json:"lowestPriceDisplay,omitempty" dynamodbav:"lowestPriceDisplay,omitempty"`
	AveragePriceDisplay string `json:"averagePriceDisplay,omitempty" dynamodbav:"averagePriceDisplay,omitempty"`

	// Best listing seen, set only when DesiredPriceExists
	ListedItemTitle   string `json:"listedItemTitle,omitempty" dynamodbav:"listedItemTitle,omitempty"`
	ListedItemURL     string `json:"listedItemUrl,omitempty" dynamodbav:"listedItemUrl,omitempty"`
	ListedItemConsole string `json:"listedItemConsole,omitempty" dynamodbav:"listedItemConsole,omitempty"`
}

// PriceSnapshot is one appended price observation for a game. Snapshots
// are never modified; the latest is the one with the greatest
// LastChecked, and expired ones age out via the table's TTL attribute.
type PriceSnapshot struct {
	PartitionKey string `json:"-" dynamodbav:"partitionKey"`
	SortKey      string `json:"-" dynamodbav:"sortKey"`
	ItemType     string `json:"-" dynamodbav:"itemType"`
	ItemID       string `json:"itemId,omitempty" dynamodbav:"itemId,omitempty"`

	GameID string `json:"gameId" dynamodbav:"gameId"`

	PriceStats

	// ExpirationTimestamp is the epoch-seconds TTL; retention is
	// best-effort and nothing relies on it for correctness
	ExpirationTimestamp int64 `json:"expirationTimestamp" dynamodbav:"expirationTimestamp"`
}

// WithKeys stamps the composite key and discriminator onto the snapshot
func (ps PriceSnapshot) WithKeys() PriceSnapshot {
	ps.PartitionKey, ps.SortKey, ps.ItemType = BuildPriceSnapshotKey(ps.GameID, ps.DesiredCondition, ps.LastChecked)
	return ps
}
