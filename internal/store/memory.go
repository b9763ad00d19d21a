package store

import (
	"context"
	"sync"
	"time"

	"ob-go/internal/model"
)

// MemoryCache keeps cached lists in process memory. It is used in tests and
// when no cache directory is configured.
type MemoryCache struct {
	mu            sync.Mutex
	posts         map[string][]model.Post
	postsAt       map[string]time.Time
	notifications []model.Notification
	notifiedAt    time.Time
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		posts:   make(map[string][]model.Post),
		postsAt: make(map[string]time.Time),
	}
}

func (c *MemoryCache) SavePosts(ctx context.Context, scope string, posts []model.Post, fetchedAt time.Time) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.posts[scope] = append([]model.Post(nil), posts...)
	c.postsAt[scope] = fetchedAt
	return nil
}

func (c *MemoryCache) LoadPosts(ctx context.Context, scope string) ([]model.Post, time.Time, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]model.Post(nil), c.posts[scope]...), c.postsAt[scope], nil
}

func (c *MemoryCache) SaveNotifications(ctx context.Context, notifications []model.Notification, fetchedAt time.Time) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.notifications = append([]model.Notification(nil), notifications...)
	c.notifiedAt = fetchedAt
	return nil
}

func (c *MemoryCache) LoadNotifications(ctx context.Context) ([]model.Notification, time.Time, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]model.Notification(nil), c.notifications...), c.notifiedAt, nil
}

func (c *MemoryCache) Clear(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.posts = make(map[string][]model.Post)
	c.postsAt = make(map[string]time.Time)
	c.notifications = nil
	c.notifiedAt = time.Time{}
	return nil
}

func (c *MemoryCache) Close() error {
	return nil
}
