package store

import (
	"context"

	"github.com/robertomlsoares/hiomo-tg-bot/internal/domain"
)

// Repo defines storage operations for daily-menu subscriptions.
// Add and Remove are idempotent: repeating either is a defined outcome
// reported through the boolean, never an error.
type Repo interface {
	// Add inserts a subscription if absent. created is false when the
	// chat was already subscribed.
	Add(ctx context.Context, chatID int64) (created bool, err error)
	// Remove deletes a subscription if present. removed is false when
	// no subscription existed.
	Remove(ctx context.Context, chatID int64) (removed bool, err error)
	// ListActive returns a snapshot of all subscriptions, used to re-arm
	// timers after a restart.
	ListActive(ctx context.Context) ([]domain.Subscription, error)
	Close() error
}
