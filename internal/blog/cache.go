package blog

import (
	"context"
	"time"

	"ob-go/internal/model"
)

// Post list scopes in the read cache.
const (
	ScopeFeed    = "feed"
	ScopeMyPosts = "my-posts"
)

// ReadCache is the durable mirror of the last successful list fetches.
// It exists for display when the backend is unreachable; the backend stays
// the store of record and nothing is ever reconciled from the cache.
type ReadCache interface {
	// SavePosts replaces the cached list for a scope, preserving order.
	SavePosts(ctx context.Context, scope string, posts []model.Post, fetchedAt time.Time) error

	// LoadPosts returns the cached list for a scope. A scope never saved
	// returns an empty list and a zero time.
	LoadPosts(ctx context.Context, scope string) ([]model.Post, time.Time, error)

	// SaveNotifications replaces the cached unread list, preserving order.
	SaveNotifications(ctx context.Context, notifications []model.Notification, fetchedAt time.Time) error

	// LoadNotifications returns the cached unread list.
	LoadNotifications(ctx context.Context) ([]model.Notification, time.Time, error)

	// Clear drops everything. Called on logout.
	Clear(ctx context.Context) error

	// Close releases the underlying storage.
	Close() error
}
