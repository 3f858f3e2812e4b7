package apperrors

import (
	"errors"
	"fmt"
)

// Sentinel errors for the store layer. Services translate DynamoDB
// conditional-write failures into these so callers never branch on
// SDK error types directly.
var (
	// ErrAlreadyExists means a Create targeted a (partitionKey, sortKey)
	// that is already occupied
	ErrAlreadyExists = errors.New("item already exists")

	// ErrNotFound means a Get/Modify/Delete targeted a missing item
	ErrNotFound = errors.New("item not found")

	// ErrStoreUnavailable wraps transient DynamoDB failures; callers may
	// retry with backoff
	ErrStoreUnavailable = errors.New("store unavailable")
)

// MalformedKeyError reports a partition/sort key that does not follow
// the bracketed segment format. This is a programming-error-class
// fault and is always surfaced.
type MalformedKeyError struct {
	Key    string
	Reason string
}

func (e *MalformedKeyError) Error() string {
	return fmt.Sprintf("malformed key %q: %s", e.Key, e.Reason)
}

// NewMalformedKey builds a MalformedKeyError for the given key
func NewMalformedKey(key, reason string) error {
	return &MalformedKeyError{Key: key, Reason: reason}
}

// IsMalformedKey reports whether err is a MalformedKeyError
func IsMalformedKey(err error) bool {
	var mk *MalformedKeyError
	return errors.As(err, &mk)
}

// MarketplaceUnavailableError reports a transient failure talking to or
// parsing the marketplace listings page. Retryable by the caller.
type MarketplaceUnavailableError struct {
	URL string
	Err error
}

func (e *MarketplaceUnavailableError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("marketplace unavailable (%s): %v", e.URL, e.Err)
	}
	return fmt.Sprintf("marketplace unavailable (%s)", e.URL)
}

func (e *MarketplaceUnavailableError) Unwrap() error { return e.Err }

// NewMarketplaceUnavailable wraps err as a MarketplaceUnavailableError
func NewMarketplaceUnavailable(url string, err error) error {
	return &MarketplaceUnavailableError{URL: url, Err: err}
}

// IsMarketplaceUnavailable reports whether err is a MarketplaceUnavailableError
func IsMarketplaceUnavailable(err error) bool {
	var mu *MarketplaceUnavailableError
	return errors.As(err, &mu)
}
