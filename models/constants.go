package models

// GameCollectionsTable is the single DynamoDB table backing every entity
const GameCollectionsTable = "GameCollections"

// Secondary index names
const (
	// ItemTypeIndex is keyed on itemType + sortKey and supports
	// cross-partition scans by entity kind
	ItemTypeIndex = "ItemTypeIndex"
	// ItemIDIndex is keyed on the surrogate itemId and supports direct
	// fan-out listing by id
	ItemIDIndex = "ItemIdIndex"
)

// Collection types
const (
	CollectionTypeWishlist = "Wishlist"
	CollectionTypeOwned    = "Owned"
)

// Item types (values of the GSI discriminator attribute)
const (
	ItemTypeUser           = "User"
	ItemTypeCollectionMeta = "CollectionMeta"
	ItemTypePriceMonitor   = "GamePriceMonitor"
)

// Physical-condition grades a user can track prices for
const (
	ConditionLoose = "loose"
	ConditionCIB   = "cib"
	ConditionNew   = "new"
)

// ValidCondition reports whether a condition grade is one we can price
func ValidCondition(condition string) bool {
	switch condition {
	case ConditionLoose, ConditionCIB, ConditionNew:
		return true
	}
	return false
}
