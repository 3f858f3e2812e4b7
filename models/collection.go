package models

// Collection is the metadata record for one of a user's collections.
// The logical type ("Wishlist", "Owned") is a tag on the record, not a
// separate entity kind; behavior differences branch on it.
type Collection struct {
	PartitionKey string `json:"-" dynamodbav:"partitionKey"`
	SortKey      string `json:"-" dynamodbav:"sortKey"`
	ItemType     string `json:"-" dynamodbav:"itemType"`
	ItemID       string `json:"itemId,omitempty" dynamodbav:"itemId,omitempty"`

	UserID         string `json:"userId" dynamodbav:"userId"`
	CollectionID   string `json:"collectionId" dynamodbav:"collectionId"`
	CollectionType string `json:"collectionType" dynamodbav:"collectionType"`
}

// WithKeys stamps the composite key and discriminator onto the collection
func (c Collection) WithKeys() Collection {
	c.PartitionKey, c.SortKey = BuildCollectionKey(c.UserID, c.CollectionID)
	c.ItemType = ItemTypeCollectionMeta
	return c
}
