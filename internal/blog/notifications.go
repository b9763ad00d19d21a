package blog

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"ob-go/internal/model"
	"ob-go/internal/state"
)

// NotificationService wraps the notification endpoints and owns the unread
// list. The badge count is derived from the list, never tracked separately,
// so the two cannot drift. A notification marked read leaves the list and
// is never re-inserted.
type NotificationService struct {
	gw     Gateway
	cache  ReadCache
	clock  Clock
	log    Logger
	unread *state.Cell[[]model.Notification]
}

// NewNotificationService creates a NotificationService with the provided dependencies.
func NewNotificationService(gw Gateway, cache ReadCache, clock Clock, log Logger) *NotificationService {
	return &NotificationService{
		gw:     gw,
		cache:  cache,
		clock:  clock,
		log:    log,
		unread: state.NewCell[[]model.Notification](nil),
	}
}

// UnreadList returns the current unread list in display order.
func (s *NotificationService) UnreadList() []model.Notification {
	return s.unread.Get()
}

// UnreadCount is the badge count, derived from the list.
func (s *NotificationService) UnreadCount() int {
	return len(s.unread.Get())
}

// SubscribeUnread registers fn to observe every unread-list publish.
func (s *NotificationService) SubscribeUnread(fn func([]model.Notification)) (cancel func()) {
	return s.unread.Subscribe(fn)
}

// Unread fetches the unread notifications, publishes them and mirrors them
// to the read cache.
func (s *NotificationService) Unread(ctx context.Context) ([]model.Notification, error) {
	var notifications []model.Notification
	if err := s.gw.Get(ctx, "/notifications", &notifications); err != nil {
		return nil, err
	}
	s.unread.Set(notifications)
	if err := s.cache.SaveNotifications(ctx, notifications, s.clock.Now()); err != nil {
		s.log.Warn("mirroring notifications to read cache failed", "error", err)
	}
	return notifications, nil
}

// CachedUnread returns the last unread list mirrored to the read cache.
func (s *NotificationService) CachedUnread(ctx context.Context) ([]model.Notification, time.Time, error) {
	return s.cache.LoadNotifications(ctx)
}

// Summary fetches the unread count without the list.
func (s *NotificationService) Summary(ctx context.Context) (*model.NotificationSummary, error) {
	var summary model.NotificationSummary
	if err := s.gw.Get(ctx, "/notifications/summary", &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

// MarkRead marks one notification read. The removal from the unread list is
// optimistic; on failure the exact pre-action snapshot is restored.
func (s *NotificationService) MarkRead(ctx context.Context, notificationID int64) error {
	snapshot := slices.Clone(s.unread.Get())
	s.unread.Update(func(cur []model.Notification) []model.Notification {
		return slices.DeleteFunc(slices.Clone(cur), func(n model.Notification) bool {
			return n.ID == notificationID
		})
	})

	var confirmed model.Notification
	if err := s.gw.Put(ctx, fmt.Sprintf("/notifications/%d/read", notificationID), nil, &confirmed); err != nil {
		s.unread.Set(snapshot)
		return err
	}

	s.log.Debug("notification read", "id", notificationID)
	return nil
}

// MarkAllRead marks every currently unread notification read, issuing the
// per-notification requests in parallel. On partial failure only the
// notifications whose requests failed are restored: an entry the backend
// confirmed read never re-enters the unread list.
func (s *NotificationService) MarkAllRead(ctx context.Context) error {
	snapshot := slices.Clone(s.unread.Get())
	if len(snapshot) == 0 {
		return nil
	}

	s.unread.Set(nil)

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		failed   = make(map[int64]bool)
		firstErr error
	)
	for _, n := range snapshot {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			var confirmed model.Notification
			if err := s.gw.Put(ctx, fmt.Sprintf("/notifications/%d/read", id), nil, &confirmed); err != nil {
				mu.Lock()
				failed[id] = true
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
			}
		}(n.ID)
	}
	wg.Wait()

	if firstErr == nil {
		s.log.Info("notifications read", "count", len(snapshot))
		return nil
	}

	restored := make([]model.Notification, 0, len(failed))
	for _, n := range snapshot {
		if failed[n.ID] {
			restored = append(restored, n)
		}
	}
	s.unread.Set(restored)
	return firstErr
}

// ClearNotifications drops the in-memory unread list. Called on logout.
func (s *NotificationService) ClearNotifications() {
	s.unread.Set(nil)
}
