// services/errors.go - Error kinds surfaced by the engine
package services

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrContentUnavailable means the content catalog could not be read.
	// Fatal for the call; the engine never retries on its own.
	ErrContentUnavailable = errors.New("content catalog unavailable")

	// ErrStoreUnavailable means the completion/XP/badge store could not
	// be reached.
	ErrStoreUnavailable = errors.New("store unavailable")

	// ErrTimeout means the caller-supplied budget was exceeded. The
	// operation fails closed; nothing partial was committed.
	ErrTimeout = errors.New("operation timed out")

	// ErrLessonNotFound is returned when a completion targets an
	// unknown lesson.
	ErrLessonNotFound = errors.New("lesson not found")

	// ErrLessonNotPublished is returned when a completion targets a
	// lesson that is not currently published.
	ErrLessonNotPublished = errors.New("lesson not published")

	// ErrNegativeXP rejects ledger appends with a negative amount. XP
	// totals are monotonically non-decreasing.
	ErrNegativeXP = errors.New("xp amount must be non-negative")

	// ErrUserNotFound is returned when the target user does not exist.
	ErrUserNotFound = errors.New("user not found")
)

// contentErr wraps a catalog read failure, folding context expiry into
// the timeout kind.
func contentErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	return fmt.Errorf("%w: %v", ErrContentUnavailable, err)
}

// storeErr wraps a completion/XP/badge store failure the same way.
func storeErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
}
