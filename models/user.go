package models

// User is the account record a collection hangs off of
type User struct {
	PartitionKey string `json:"-" dynamodbav:"partitionKey"`
	SortKey      string `json:"-" dynamodbav:"sortKey"`
	ItemType     string `json:"-" dynamodbav:"itemType"`
	ItemID       string `json:"itemId,omitempty" dynamodbav:"itemId,omitempty"`

	UserID string `json:"userId" dynamodbav:"userId"`
	Email  string `json:"email" dynamodbav:"email"`
}

// WithKeys stamps the composite key and discriminator onto the user
func (u User) WithKeys() User {
	u.PartitionKey, u.SortKey = BuildUserKey(u.UserID)
	u.ItemType = ItemTypeUser
	return u
}
