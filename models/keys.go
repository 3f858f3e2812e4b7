package models

import (
	"fmt"
	"strings"

	"gamevault_server/apperrors"
)

// Every entity shares one table, addressed by a composite
// (partitionKey, sortKey) built from bracketed tagged segments:
//
//	[User]#[u123]                                     user partition
//	[Collection]#[c1]                                 collection sort key
//	[Collection]#[c1]#[Game]#[g1]                     game sort key
//	[Collection]#[c1]#[Game]#[g1]#[PriceMonitor]#[m1] monitor sort key
//
// Parent keys are prefixes of child keys, so begins_with on the sort
// key selects a whole subtree. Segment values may not contain '[',
// ']', '#' or '|'.

// Segment tags
const (
	TagUser          = "User"
	TagCollection    = "Collection"
	TagGame          = "Game"
	TagPriceMonitor  = "PriceMonitor"
	TagPriceSnapshot = "PriceSnapshot"
)

// KeySegment is one [Tag]#[Value] pair of a composite key
type KeySegment struct {
	Tag   string
	Value string
}

func validSegmentValue(v string) bool {
	return v != "" && !strings.ContainsAny(v, "[]#|")
}

func segment(tag, value string) string {
	return fmt.Sprintf("[%s]#[%s]", tag, value)
}

// BuildUserKey returns the partition and sort key for a User item
func BuildUserKey(userID string) (string, string) {
	s := segment(TagUser, userID)
	return s, s
}

// BuildCollectionKey returns the partition and sort key for a
// Collection metadata item
func BuildCollectionKey(userID, collectionID string) (string, string) {
	return segment(TagUser, userID), segment(TagCollection, collectionID)
}

// CollectionPrefix returns the sort-key prefix shared by a collection
// and every item inside it
func CollectionPrefix(collectionID string) string {
	return segment(TagCollection, collectionID)
}

// BuildCollectionItemKey returns the partition key, sort key and
// itemType for a Game inside a collection. The itemType embeds the
// collection's logical type so the ItemTypeIndex can select, say, all
// wishlist game items across every user.
func BuildCollectionItemKey(userID, collectionID, gameID, collectionType string) (string, string, string) {
	pk := segment(TagUser, userID)
	sk := segment(TagCollection, collectionID) + "#" + segment(TagGame, gameID)
	return pk, sk, CollectionItemType(collectionType)
}

// BuildPriceMonitorKey returns the partition key, sort key and
// itemType for a PriceMonitor attached to a game
func BuildPriceMonitorKey(userID, collectionID, gameID, priceMonitorID string) (string, string, string) {
	pk := segment(TagUser, userID)
	sk := segment(TagCollection, collectionID) + "#" + segment(TagGame, gameID) + "#" + segment(TagPriceMonitor, priceMonitorID)
	return pk, sk, ItemTypePriceMonitor
}

// BuildPriceSnapshotKey returns the partition key, sort key and
// itemType for an appended price snapshot. Snapshots sort by timestamp
// within (game, condition), so the latest is the greatest sort key.
func BuildPriceSnapshotKey(gameID, condition, lastChecked string) (string, string, string) {
	pk := segment(TagGame, gameID)
	sk := segment(TagPriceSnapshot, gameID) + "#" + segment(TagPriceSnapshot+"Condition", condition) + "#" + segment(TagPriceSnapshot+"Time", lastChecked)
	return pk, sk, PriceSnapshotItemType(condition)
}

// PriceSnapshotPrefix returns the sort-key prefix shared by every
// snapshot of one (game, condition) pair
func PriceSnapshotPrefix(gameID, condition string) string {
	return segment(TagPriceSnapshot, gameID) + "#" + segment(TagPriceSnapshot+"Condition", condition) + "#[" + TagPriceSnapshot + "Time]#"
}

// CollectionItemType builds the itemType discriminator for a game item
// in a collection of the given logical type
func CollectionItemType(collectionType string) string {
	return "CollectionItem#" + collectionType + "#GameItem"
}

// CollectionTypeFromItemType extracts the collection type back out of a
// game item's discriminator
func CollectionTypeFromItemType(itemType string) (string, error) {
	parts := strings.Split(itemType, "#")
	if len(parts) != 3 || parts[0] != "CollectionItem" || parts[2] != "GameItem" || parts[1] == "" {
		return "", apperrors.NewMalformedKey(itemType, "not a CollectionItem discriminator")
	}
	return parts[1], nil
}

// PriceSnapshotItemType builds the itemType discriminator for a price
// snapshot at the given condition grade
func PriceSnapshotItemType(condition string) string {
	return "GamePriceData#" + condition
}

// ParseKey splits a composite key back into its tagged segments.
// Parsing is the strict inverse of building: any deviation from the
// [Tag]#[Value] pair format fails with a MalformedKey error.
func ParseKey(key string) ([]KeySegment, error) {
	if key == "" {
		return nil, apperrors.NewMalformedKey(key, "empty key")
	}
	tokens := strings.Split(key, "#")
	if len(tokens)%2 != 0 {
		return nil, apperrors.NewMalformedKey(key, "odd number of segments")
	}
	segments := make([]KeySegment, 0, len(tokens)/2)
	for i := 0; i < len(tokens); i += 2 {
		tag, err := unbracket(key, tokens[i])
		if err != nil {
			return nil, err
		}
		value, err := unbracket(key, tokens[i+1])
		if err != nil {
			return nil, err
		}
		if !validSegmentValue(value) || !validSegmentValue(tag) {
			return nil, apperrors.NewMalformedKey(key, "empty or invalid segment")
		}
		segments = append(segments, KeySegment{Tag: tag, Value: value})
	}
	return segments, nil
}

func unbracket(key, token string) (string, error) {
	if len(token) < 3 || !strings.HasPrefix(token, "[") || !strings.HasSuffix(token, "]") {
		return "", apperrors.NewMalformedKey(key, fmt.Sprintf("segment %q is not bracketed", token))
	}
	return token[1 : len(token)-1], nil
}

// ParseUserKey extracts the userID from a user-partition key
func ParseUserKey(partitionKey string) (string, error) {
	segments, err := ParseKey(partitionKey)
	if err != nil {
		return "", err
	}
	if len(segments) != 1 || segments[0].Tag != TagUser {
		return "", apperrors.NewMalformedKey(partitionKey, "not a user partition key")
	}
	return segments[0].Value, nil
}

// ParseCollectionItemSortKey extracts (collectionID, gameID) from a
// game item's sort key
func ParseCollectionItemSortKey(sortKey string) (string, string, error) {
	segments, err := ParseKey(sortKey)
	if err != nil {
		return "", "", err
	}
	if len(segments) != 2 || segments[0].Tag != TagCollection || segments[1].Tag != TagGame {
		return "", "", apperrors.NewMalformedKey(sortKey, "not a collection item sort key")
	}
	return segments[0].Value, segments[1].Value, nil
}

// ParsePriceMonitorSortKey extracts (collectionID, gameID,
// priceMonitorID) from a price monitor's sort key
func ParsePriceMonitorSortKey(sortKey string) (string, string, string, error) {
	segments, err := ParseKey(sortKey)
	if err != nil {
		return "", "", "", err
	}
	if len(segments) != 3 || segments[0].Tag != TagCollection || segments[1].Tag != TagGame || segments[2].Tag != TagPriceMonitor {
		return "", "", "", apperrors.NewMalformedKey(sortKey, "not a price monitor sort key")
	}
	return segments[0].Value, segments[1].Value, segments[2].Value, nil
}

// GameSegment returns the [Game]#[id] fragment used to filter price
// monitor sort keys down to one game on the ItemTypeIndex
func GameSegment(gameID string) string {
	return segment(TagGame, gameID)
}
