package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"ob-go/internal/blog"
	"ob-go/internal/config"
	"ob-go/internal/gateway"
	"ob-go/internal/guard"
	"ob-go/internal/media"
	"ob-go/internal/model"
	"ob-go/internal/session"
	"ob-go/internal/store"
)

// App is the application layer between the CLI and the services.
// It constructs all dependencies from config, exposes high-level operations
// guarded by auth state, and manages resource lifecycles on Close.
type App struct {
	cfg      *config.Config
	sessions *session.Store
	cache    blog.ReadCache
	uploader media.Uploader

	auth          *blog.AuthService
	posts         *blog.PostService
	comments      *blog.CommentService
	subscriptions *blog.SubscriptionService
	notifications *blog.NotificationService
	reports       *blog.ReportService
	admin         *blog.AdminService

	unsubscribe func()
	logFile     *os.File
}

// NewApp creates a fully wired App from the given config.
// operation identifies the CLI command being run (e.g. "login", "feed").
// The caller must call Close when done.
func NewApp(cfg *config.Config, operation string) (*App, error) {
	persister, err := session.NewPersisterFromConfig(cfg.Session)
	if err != nil {
		return nil, fmt.Errorf("creating session persister: %w", err)
	}
	sessions := session.NewStore(persister)

	cache, err := store.NewReadCacheFromConfig(cfg.Cache, cfg.ClientID)
	if err != nil {
		return nil, fmt.Errorf("creating read cache: %w", err)
	}

	uploader, err := media.NewUploaderFromConfig(context.Background(), cfg.Media)
	if err != nil {
		cache.Close()
		return nil, fmt.Errorf("creating media uploader: %w", err)
	}

	logger, logFile, err := newLogger(cfg.LogDir, operation)
	if err != nil {
		cache.Close()
		return nil, fmt.Errorf("creating logger: %w", err)
	}

	log := &slogAdapter{l: logger}
	gw := gateway.NewClient(cfg.APIURL, sessions, nil)
	posts := blog.NewPostService(gw, cache, blog.RealClock{}, log)
	subscriptions := blog.NewSubscriptionService(gw, log)
	notifications := blog.NewNotificationService(gw, cache, blog.RealClock{}, log)

	a := &App{
		cfg:           cfg,
		sessions:      sessions,
		cache:         cache,
		uploader:      uploader,
		auth:          blog.NewAuthService(gw, sessions, log),
		posts:         posts,
		comments:      blog.NewCommentService(gw, posts, log),
		subscriptions: subscriptions,
		notifications: notifications,
		reports:       blog.NewReportService(gw, log),
		admin:         blog.NewAdminService(gw, log),
		logFile:       logFile,
	}

	// Per-user state does not survive the session it was loaded under.
	a.unsubscribe = sessions.Subscribe(func(s *session.Session) {
		if s == nil {
			posts.ClearFeed()
			notifications.ClearNotifications()
			subscriptions.ClearProfiles()
			if err := cache.Clear(context.Background()); err != nil {
				logger.Warn("clearing read cache on logout failed", "error", err)
			}
		}
	})

	return a, nil
}

// Close releases all resources held by the app.
func (a *App) Close() error {
	if a.unsubscribe != nil {
		a.unsubscribe()
	}

	var firstErr error
	if err := a.cache.Close(); err != nil {
		firstErr = fmt.Errorf("closing read cache: %w", err)
	}

	if a.logFile != nil {
		a.logFile.Close()
	}

	return firstErr
}

func (a *App) requireAuth(requested guard.Route) error {
	d := guard.Auth(a.sessions, requested)
	if d.Allow {
		return nil
	}
	return fmt.Errorf("login required for %s: run 'ob login' first", requested)
}

func (a *App) requireAdmin(requested guard.Route) error {
	d := guard.Admin(a.sessions, requested)
	if d.Allow {
		return nil
	}
	if d.RedirectTo == guard.RouteLogin {
		return fmt.Errorf("login required for %s: run 'ob login' first", requested)
	}
	return fmt.Errorf("admin access required for %s", requested)
}

// Login authenticates with the backend and persists the session.
func (a *App) Login(ctx context.Context, usernameOrEmail, password string) (*session.Session, error) {
	return a.auth.Login(ctx, usernameOrEmail, password)
}

// Register creates a new account and persists the resulting session.
func (a *App) Register(ctx context.Context, username, email, password string) (*session.Session, error) {
	return a.auth.Register(ctx, username, email, password)
}

// Logout clears the persisted session. Already being logged out is not an
// error.
func (a *App) Logout() error {
	return a.auth.Logout()
}

// Whoami returns the current session and what the bearer token discloses
// about itself. The token info is nil when the token is not parseable.
func (a *App) Whoami() (*session.Session, *session.TokenInfo, error) {
	sess := a.sessions.Current()
	if sess == nil {
		return nil, nil, fmt.Errorf("not logged in")
	}
	info, err := session.ParseToken(sess.Token)
	if err != nil {
		// An opaque token is still a valid session.
		return sess, nil, nil
	}
	return sess, info, nil
}

// Feed returns the personalized feed.
func (a *App) Feed(ctx context.Context) ([]model.Post, error) {
	if err := a.requireAuth(guard.RouteFeed); err != nil {
		return nil, err
	}
	return a.posts.Feed(ctx)
}

// CachedFeed returns the last locally cached feed and when it was fetched.
func (a *App) CachedFeed(ctx context.Context) ([]model.Post, time.Time, error) {
	if err := a.requireAuth(guard.RouteFeed); err != nil {
		return nil, time.Time{}, err
	}
	return a.posts.CachedFeed(ctx)
}

// MyPosts returns the current user's posts.
func (a *App) MyPosts(ctx context.Context) ([]model.Post, error) {
	if err := a.requireAuth("/posts/mine"); err != nil {
		return nil, err
	}
	return a.posts.MyPosts(ctx)
}

// CachedMyPosts returns the last locally cached copy of the user's posts.
func (a *App) CachedMyPosts(ctx context.Context) ([]model.Post, time.Time, error) {
	if err := a.requireAuth("/posts/mine"); err != nil {
		return nil, time.Time{}, err
	}
	return a.posts.CachedMyPosts(ctx)
}

// UserPosts returns another user's posts.
func (a *App) UserPosts(ctx context.Context, userID int64) ([]model.Post, error) {
	if err := a.requireAuth("/posts/user"); err != nil {
		return nil, err
	}
	return a.posts.UserPosts(ctx, userID)
}

// ShowPost returns a single post with its comments.
func (a *App) ShowPost(ctx context.Context, postID int64) (*model.Post, []model.Comment, error) {
	if err := a.requireAuth("/posts/show"); err != nil {
		return nil, nil, err
	}
	post, err := a.posts.Get(ctx, postID)
	if err != nil {
		return nil, nil, err
	}
	comments, err := a.comments.List(ctx, postID)
	if err != nil {
		return post, nil, err
	}
	return post, comments, nil
}

// SearchPosts fetches the feed and filters it by the query.
func (a *App) SearchPosts(ctx context.Context, query string) ([]model.Post, error) {
	if err := a.requireAuth(guard.RouteFeed); err != nil {
		return nil, err
	}
	if _, err := a.posts.Feed(ctx); err != nil {
		return nil, err
	}
	return a.posts.Search(query), nil
}

// CreatePost uploads the media file when mediaPath names a local file,
// otherwise uses mediaURL as-is, then creates the post.
func (a *App) CreatePost(ctx context.Context, title, content, mediaPath, mediaURL string) (*model.Post, error) {
	if err := a.requireAuth("/posts/create"); err != nil {
		return nil, err
	}

	var mediaType model.MediaType
	var err error
	switch {
	case mediaPath != "":
		mediaURL, mediaType, err = a.uploadMedia(ctx, mediaPath)
		if err != nil {
			return nil, err
		}
	case mediaURL != "":
		mediaType, err = media.TypeForFile(mediaURL)
		if err != nil {
			return nil, err
		}
	}

	return a.posts.Create(ctx, model.CreatePostRequest{
		Title:     title,
		Content:   content,
		MediaURL:  mediaURL,
		MediaType: mediaType,
	})
}

func (a *App) uploadMedia(ctx context.Context, path string) (string, model.MediaType, error) {
	if a.uploader == nil {
		return "", "", fmt.Errorf("no media uploader configured: set [media] in the config or pass --media-url")
	}
	if err := a.uploader.ValidateSetup(); err != nil {
		return "", "", fmt.Errorf("media uploader not usable: %w", err)
	}

	mediaType, err := media.TypeForFile(path)
	if err != nil {
		return "", "", err
	}

	f, err := os.Open(path)
	if err != nil {
		return "", "", fmt.Errorf("opening media file: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", "", fmt.Errorf("stat media file: %w", err)
	}

	url, err := a.uploader.Upload(ctx, f, filepath.Base(path), info.Size(), media.ContentTypeForFile(path))
	if err != nil {
		return "", "", fmt.Errorf("uploading media: %w", err)
	}
	return url, mediaType, nil
}

// EditPost updates a post's title and/or content. Empty values are left
// unchanged.
func (a *App) EditPost(ctx context.Context, postID int64, title, content string) (*model.Post, error) {
	if err := a.requireAuth("/posts/edit"); err != nil {
		return nil, err
	}
	return a.posts.Update(ctx, postID, model.UpdatePostRequest{Title: title, Content: content})
}

// DeletePost deletes one of the current user's posts.
func (a *App) DeletePost(ctx context.Context, postID int64) error {
	if err := a.requireAuth("/posts/delete"); err != nil {
		return err
	}
	return a.posts.Delete(ctx, postID)
}

// LikePost marks a post as liked.
func (a *App) LikePost(ctx context.Context, postID int64) error {
	if err := a.requireAuth("/posts/like"); err != nil {
		return err
	}
	return a.posts.Like(ctx, postID)
}

// UnlikePost removes a like.
func (a *App) UnlikePost(ctx context.Context, postID int64) error {
	if err := a.requireAuth("/posts/unlike"); err != nil {
		return err
	}
	return a.posts.Unlike(ctx, postID)
}

// Comments returns a post's comments.
func (a *App) Comments(ctx context.Context, postID int64) ([]model.Comment, error) {
	if err := a.requireAuth("/comments"); err != nil {
		return nil, err
	}
	return a.comments.List(ctx, postID)
}

// AddComment adds a comment to a post.
func (a *App) AddComment(ctx context.Context, postID int64, content string) (*model.Comment, error) {
	if err := a.requireAuth("/comments/add"); err != nil {
		return nil, err
	}
	return a.comments.Add(ctx, postID, content)
}

// DeleteComment deletes a comment. postID may be 0 when unknown.
func (a *App) DeleteComment(ctx context.Context, commentID, postID int64) error {
	if err := a.requireAuth("/comments/delete"); err != nil {
		return err
	}
	return a.comments.Delete(ctx, commentID, postID)
}

// Users returns all user profiles.
func (a *App) Users(ctx context.Context) ([]model.UserProfile, error) {
	if err := a.requireAuth("/users"); err != nil {
		return nil, err
	}
	return a.subscriptions.AllUsers(ctx)
}

// Profile returns a user's profile. userID 0 means the current user.
func (a *App) Profile(ctx context.Context, userID int64) (*model.UserProfile, error) {
	if err := a.requireAuth("/profile"); err != nil {
		return nil, err
	}
	if userID == 0 {
		return a.subscriptions.MyProfile(ctx)
	}
	return a.subscriptions.Profile(ctx, userID)
}

// Follow subscribes the current user to another user's posts.
func (a *App) Follow(ctx context.Context, userID int64) (*model.FollowResponse, error) {
	if err := a.requireAuth("/users/follow"); err != nil {
		return nil, err
	}
	return a.subscriptions.Follow(ctx, userID)
}

// Unfollow removes a subscription.
func (a *App) Unfollow(ctx context.Context, userID int64) (*model.FollowResponse, error) {
	if err := a.requireAuth("/users/unfollow"); err != nil {
		return nil, err
	}
	return a.subscriptions.Unfollow(ctx, userID)
}

// Notifications returns the unread notifications.
func (a *App) Notifications(ctx context.Context) ([]model.Notification, error) {
	if err := a.requireAuth("/notifications"); err != nil {
		return nil, err
	}
	return a.notifications.Unread(ctx)
}

// CachedNotifications returns the last locally cached unread notifications.
func (a *App) CachedNotifications(ctx context.Context) ([]model.Notification, time.Time, error) {
	if err := a.requireAuth("/notifications"); err != nil {
		return nil, time.Time{}, err
	}
	return a.notifications.CachedUnread(ctx)
}

// NotificationSummary returns the unread count from the backend.
func (a *App) NotificationSummary(ctx context.Context) (*model.NotificationSummary, error) {
	if err := a.requireAuth("/notifications"); err != nil {
		return nil, err
	}
	return a.notifications.Summary(ctx)
}

// MarkNotificationRead marks one notification as read.
func (a *App) MarkNotificationRead(ctx context.Context, notificationID int64) error {
	if err := a.requireAuth("/notifications"); err != nil {
		return err
	}
	return a.notifications.MarkRead(ctx, notificationID)
}

// MarkAllNotificationsRead marks every unread notification as read.
func (a *App) MarkAllNotificationsRead(ctx context.Context) error {
	if err := a.requireAuth("/notifications"); err != nil {
		return err
	}
	return a.notifications.MarkAllRead(ctx)
}

// ReportUser reports a user for moderation.
func (a *App) ReportUser(ctx context.Context, userID int64, reason string) (*model.ReportSubmitResponse, error) {
	if err := a.requireAuth("/report"); err != nil {
		return nil, err
	}
	return a.reports.Submit(ctx, userID, reason)
}

// AdminUsers returns all users for moderation.
func (a *App) AdminUsers(ctx context.Context) ([]model.AdminUser, error) {
	if err := a.requireAdmin("/admin/users"); err != nil {
		return nil, err
	}
	return a.admin.Users(ctx)
}

// AdminPosts returns all posts for moderation.
func (a *App) AdminPosts(ctx context.Context) ([]model.AdminPost, error) {
	if err := a.requireAdmin("/admin/posts"); err != nil {
		return nil, err
	}
	return a.admin.Posts(ctx)
}

// AdminReports returns all reports.
func (a *App) AdminReports(ctx context.Context) ([]model.Report, error) {
	if err := a.requireAdmin("/admin/reports"); err != nil {
		return nil, err
	}
	return a.admin.Reports(ctx)
}

// AdminStats returns the dashboard statistics.
func (a *App) AdminStats(ctx context.Context) (*model.DashboardStatistics, error) {
	if err := a.requireAdmin("/admin/dashboard"); err != nil {
		return nil, err
	}
	return a.admin.Stats(ctx)
}

// BanUser bans a user with a reason.
func (a *App) BanUser(ctx context.Context, userID int64, reason string) (*model.AdminUser, error) {
	if err := a.requireAdmin("/admin/users/ban"); err != nil {
		return nil, err
	}
	return a.admin.BanUser(ctx, userID, reason)
}

// UnbanUser lifts a user's ban.
func (a *App) UnbanUser(ctx context.Context, userID int64) (*model.AdminUser, error) {
	if err := a.requireAdmin("/admin/users/unban"); err != nil {
		return nil, err
	}
	return a.admin.UnbanUser(ctx, userID)
}

// AdminDeleteUser removes a user account.
func (a *App) AdminDeleteUser(ctx context.Context, userID int64) (*model.MessageResponse, error) {
	if err := a.requireAdmin("/admin/users/delete"); err != nil {
		return nil, err
	}
	return a.admin.DeleteUser(ctx, userID)
}

// HidePost hides a post with a reason.
func (a *App) HidePost(ctx context.Context, postID int64, reason string) (*model.AdminPost, error) {
	if err := a.requireAdmin("/admin/posts/hide"); err != nil {
		return nil, err
	}
	return a.admin.HidePost(ctx, postID, reason)
}

// UnhidePost makes a hidden post visible again.
func (a *App) UnhidePost(ctx context.Context, postID int64) (*model.AdminPost, error) {
	if err := a.requireAdmin("/admin/posts/unhide"); err != nil {
		return nil, err
	}
	return a.admin.UnhidePost(ctx, postID)
}

// AdminDeletePost removes a post.
func (a *App) AdminDeletePost(ctx context.Context, postID int64) (*model.MessageResponse, error) {
	if err := a.requireAdmin("/admin/posts/delete"); err != nil {
		return nil, err
	}
	return a.admin.DeletePost(ctx, postID)
}

// ResolveReport resolves or dismisses a pending report.
func (a *App) ResolveReport(ctx context.Context, reportID int64, action string) (*model.Report, error) {
	if err := a.requireAdmin("/admin/reports/resolve"); err != nil {
		return nil, err
	}
	return a.admin.ResolveReport(ctx, reportID, action)
}
