package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"ob-go/internal/model"
)

var cacheFetchedAt = time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)

func newTestCache(t *testing.T) *SQLiteCache {
	t.Helper()
	cache, err := NewSQLiteCache(filepath.Join(t.TempDir(), "cache.db"))
	if err != nil {
		t.Fatalf("NewSQLiteCache() error = %v", err)
	}
	t.Cleanup(func() { cache.Close() })
	return cache
}

func TestSQLiteCache_Posts(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	posts := []model.Post{
		{ID: 3, Title: "Third"},
		{ID: 1, Title: "First"},
		{ID: 2, Title: "Second"},
	}
	if err := cache.SavePosts(ctx, "feed", posts, cacheFetchedAt); err != nil {
		t.Fatalf("SavePosts() error = %v", err)
	}

	got, fetchedAt, err := cache.LoadPosts(ctx, "feed")
	if err != nil {
		t.Fatalf("LoadPosts() error = %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	// Order is the saved order, not id order.
	for i, want := range []int64{3, 1, 2} {
		if got[i].ID != want {
			t.Errorf("got[%d].ID = %d, want %d", i, got[i].ID, want)
		}
	}
	if got[0].Title != "Third" {
		t.Errorf("Title = %q, want %q", got[0].Title, "Third")
	}
	if !fetchedAt.Equal(cacheFetchedAt) {
		t.Errorf("fetchedAt = %v, want %v", fetchedAt, cacheFetchedAt)
	}
}

func TestSQLiteCache_ScopeIsolation(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	if err := cache.SavePosts(ctx, "feed", []model.Post{{ID: 1}}, cacheFetchedAt); err != nil {
		t.Fatalf("SavePosts(feed) error = %v", err)
	}
	if err := cache.SavePosts(ctx, "my-posts", []model.Post{{ID: 2}, {ID: 3}}, cacheFetchedAt); err != nil {
		t.Fatalf("SavePosts(my-posts) error = %v", err)
	}

	feed, _, err := cache.LoadPosts(ctx, "feed")
	if err != nil {
		t.Fatalf("LoadPosts(feed) error = %v", err)
	}
	if len(feed) != 1 || feed[0].ID != 1 {
		t.Errorf("feed = %v, want only post 1", feed)
	}

	mine, _, err := cache.LoadPosts(ctx, "my-posts")
	if err != nil {
		t.Fatalf("LoadPosts(my-posts) error = %v", err)
	}
	if len(mine) != 2 {
		t.Errorf("my-posts has %d entries, want 2", len(mine))
	}
}

func TestSQLiteCache_SaveReplaces(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	if err := cache.SavePosts(ctx, "feed", []model.Post{{ID: 1}, {ID: 2}}, cacheFetchedAt); err != nil {
		t.Fatalf("first SavePosts() error = %v", err)
	}
	later := cacheFetchedAt.Add(5 * time.Minute)
	if err := cache.SavePosts(ctx, "feed", []model.Post{{ID: 9}}, later); err != nil {
		t.Fatalf("second SavePosts() error = %v", err)
	}

	got, fetchedAt, err := cache.LoadPosts(ctx, "feed")
	if err != nil {
		t.Fatalf("LoadPosts() error = %v", err)
	}
	if len(got) != 1 || got[0].ID != 9 {
		t.Errorf("got = %v, want only post 9", got)
	}
	if !fetchedAt.Equal(later) {
		t.Errorf("fetchedAt = %v, want %v", fetchedAt, later)
	}
}

func TestSQLiteCache_EmptyScope(t *testing.T) {
	cache := newTestCache(t)

	got, fetchedAt, err := cache.LoadPosts(context.Background(), "feed")
	if err != nil {
		t.Fatalf("LoadPosts() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("got %d posts, want none", len(got))
	}
	if !fetchedAt.IsZero() {
		t.Errorf("fetchedAt = %v, want zero", fetchedAt)
	}
}

func TestSQLiteCache_Notifications(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	notifications := []model.Notification{
		{ID: 2, Message: "bob posted"},
		{ID: 1, Message: "alice posted"},
	}
	if err := cache.SaveNotifications(ctx, notifications, cacheFetchedAt); err != nil {
		t.Fatalf("SaveNotifications() error = %v", err)
	}

	got, fetchedAt, err := cache.LoadNotifications(ctx)
	if err != nil {
		t.Fatalf("LoadNotifications() error = %v", err)
	}
	if len(got) != 2 || got[0].ID != 2 || got[1].ID != 1 {
		t.Errorf("got = %v, want saved order [2 1]", got)
	}
	if !fetchedAt.Equal(cacheFetchedAt) {
		t.Errorf("fetchedAt = %v, want %v", fetchedAt, cacheFetchedAt)
	}
}

func TestSQLiteCache_Clear(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	if err := cache.SavePosts(ctx, "feed", []model.Post{{ID: 1}}, cacheFetchedAt); err != nil {
		t.Fatalf("SavePosts() error = %v", err)
	}
	if err := cache.SaveNotifications(ctx, []model.Notification{{ID: 1}}, cacheFetchedAt); err != nil {
		t.Fatalf("SaveNotifications() error = %v", err)
	}

	if err := cache.Clear(ctx); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	posts, _, _ := cache.LoadPosts(ctx, "feed")
	if len(posts) != 0 {
		t.Errorf("posts remain after clear: %v", posts)
	}
	notifications, _, _ := cache.LoadNotifications(ctx)
	if len(notifications) != 0 {
		t.Errorf("notifications remain after clear: %v", notifications)
	}
}

func TestSQLiteCache_Reopen(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cache.db")
	ctx := context.Background()

	first, err := NewSQLiteCache(path)
	if err != nil {
		t.Fatalf("NewSQLiteCache() error = %v", err)
	}
	if err := first.SavePosts(ctx, "feed", []model.Post{{ID: 1, Title: "Kept"}}, cacheFetchedAt); err != nil {
		t.Fatalf("SavePosts() error = %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	second, err := NewSQLiteCache(path)
	if err != nil {
		t.Fatalf("reopening: %v", err)
	}
	defer second.Close()

	got, _, err := second.LoadPosts(ctx, "feed")
	if err != nil {
		t.Fatalf("LoadPosts() error = %v", err)
	}
	if len(got) != 1 || got[0].Title != "Kept" {
		t.Errorf("got = %v, want the post saved before reopen", got)
	}
}

func TestMemoryCache(t *testing.T) {
	cache := NewMemoryCache()
	ctx := context.Background()

	if err := cache.SavePosts(ctx, "feed", []model.Post{{ID: 1}}, cacheFetchedAt); err != nil {
		t.Fatalf("SavePosts() error = %v", err)
	}
	got, fetchedAt, err := cache.LoadPosts(ctx, "feed")
	if err != nil {
		t.Fatalf("LoadPosts() error = %v", err)
	}
	if len(got) != 1 || got[0].ID != 1 {
		t.Errorf("got = %v, want post 1", got)
	}
	if !fetchedAt.Equal(cacheFetchedAt) {
		t.Errorf("fetchedAt = %v, want %v", fetchedAt, cacheFetchedAt)
	}

	// The loaded slice is a copy, not a view of internal state.
	got[0].ID = 99
	again, _, _ := cache.LoadPosts(ctx, "feed")
	if again[0].ID != 1 {
		t.Error("mutating a loaded slice changed the cache")
	}

	if err := cache.Clear(ctx); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if posts, _, _ := cache.LoadPosts(ctx, "feed"); len(posts) != 0 {
		t.Errorf("posts remain after clear: %v", posts)
	}
}
