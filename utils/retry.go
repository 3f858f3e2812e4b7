package utils

import (
	"log"
	"time"
)

// WithRetries runs fn up to 1+retries times, backing off linearly
// between attempts, but only while shouldRetry says the error is
// transient. The last error is returned unwrapped.
func WithRetries(retries int, baseDelay time.Duration, shouldRetry func(error) bool, fn func() error) error {
	var err error
	for attempt := 0; ; attempt++ {
		err = fn()
		if err == nil || attempt >= retries || !shouldRetry(err) {
			return err
		}
		delay := time.Duration(attempt+1) * baseDelay
		log.Printf("Transient failure (attempt %d/%d), retrying in %s: %v", attempt+1, retries+1, delay, err)
		time.Sleep(delay)
	}
}
