// Package store provides durable read caches for feed and notification data,
// so previously fetched content can still be shown when the server is
// unreachable.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"ob-go/internal/model"
	"ob-go/internal/store/migrations"
)

// SQLiteCache stores cached posts and notifications in a local sqlite
// database. Rows keep their list position so loads replay the exact order the
// server returned.
type SQLiteCache struct {
	db *sql.DB
}

func NewSQLiteCache(path string) (*SQLiteCache, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening cache database %s: %w", path, err)
	}

	if err := migrations.MigrateUp(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating cache database: %w", err)
	}

	return &SQLiteCache{db: db}, nil
}

func (c *SQLiteCache) SavePosts(ctx context.Context, scope string, posts []model.Post, fetchedAt time.Time) error {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM cached_posts WHERE scope = ?", scope); err != nil {
		return fmt.Errorf("clearing cached posts for %s: %w", scope, err)
	}

	for i, post := range posts {
		payload, err := json.Marshal(post)
		if err != nil {
			return fmt.Errorf("encoding post %d: %w", post.ID, err)
		}
		_, err = tx.ExecContext(ctx,
			"INSERT INTO cached_posts (scope, position, post_id, payload, fetched_at) VALUES (?, ?, ?, ?, ?)",
			scope, i, post.ID, string(payload), fetchedAt)
		if err != nil {
			return fmt.Errorf("inserting cached post %d: %w", post.ID, err)
		}
	}

	return tx.Commit()
}

func (c *SQLiteCache) LoadPosts(ctx context.Context, scope string) ([]model.Post, time.Time, error) {
	rows, err := c.db.QueryContext(ctx,
		"SELECT payload, fetched_at FROM cached_posts WHERE scope = ? ORDER BY position", scope)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("querying cached posts for %s: %w", scope, err)
	}
	defer rows.Close()

	var posts []model.Post
	var fetchedAt time.Time
	for rows.Next() {
		var payload string
		var rowFetchedAt time.Time
		if err := rows.Scan(&payload, &rowFetchedAt); err != nil {
			return nil, time.Time{}, fmt.Errorf("scanning cached post: %w", err)
		}
		var post model.Post
		if err := json.Unmarshal([]byte(payload), &post); err != nil {
			return nil, time.Time{}, fmt.Errorf("decoding cached post: %w", err)
		}
		posts = append(posts, post)
		fetchedAt = rowFetchedAt
	}
	if err := rows.Err(); err != nil {
		return nil, time.Time{}, fmt.Errorf("reading cached posts: %w", err)
	}

	return posts, fetchedAt, nil
}

func (c *SQLiteCache) SaveNotifications(ctx context.Context, notifications []model.Notification, fetchedAt time.Time) error {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM cached_notifications"); err != nil {
		return fmt.Errorf("clearing cached notifications: %w", err)
	}

	for i, n := range notifications {
		payload, err := json.Marshal(n)
		if err != nil {
			return fmt.Errorf("encoding notification %d: %w", n.ID, err)
		}
		_, err = tx.ExecContext(ctx,
			"INSERT INTO cached_notifications (position, notification_id, payload, fetched_at) VALUES (?, ?, ?, ?)",
			i, n.ID, string(payload), fetchedAt)
		if err != nil {
			return fmt.Errorf("inserting cached notification %d: %w", n.ID, err)
		}
	}

	return tx.Commit()
}

func (c *SQLiteCache) LoadNotifications(ctx context.Context) ([]model.Notification, time.Time, error) {
	rows, err := c.db.QueryContext(ctx,
		"SELECT payload, fetched_at FROM cached_notifications ORDER BY position")
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("querying cached notifications: %w", err)
	}
	defer rows.Close()

	var notifications []model.Notification
	var fetchedAt time.Time
	for rows.Next() {
		var payload string
		var rowFetchedAt time.Time
		if err := rows.Scan(&payload, &rowFetchedAt); err != nil {
			return nil, time.Time{}, fmt.Errorf("scanning cached notification: %w", err)
		}
		var n model.Notification
		if err := json.Unmarshal([]byte(payload), &n); err != nil {
			return nil, time.Time{}, fmt.Errorf("decoding cached notification: %w", err)
		}
		notifications = append(notifications, n)
		fetchedAt = rowFetchedAt
	}
	if err := rows.Err(); err != nil {
		return nil, time.Time{}, fmt.Errorf("reading cached notifications: %w", err)
	}

	return notifications, fetchedAt, nil
}

func (c *SQLiteCache) Clear(ctx context.Context) error {
	if _, err := c.db.ExecContext(ctx, "DELETE FROM cached_posts"); err != nil {
		return fmt.Errorf("clearing cached posts: %w", err)
	}
	if _, err := c.db.ExecContext(ctx, "DELETE FROM cached_notifications"); err != nil {
		return fmt.Errorf("clearing cached notifications: %w", err)
	}
	return nil
}

func (c *SQLiteCache) Close() error {
	return c.db.Close()
}
