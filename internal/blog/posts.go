package blog

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"ob-go/internal/model"
	"ob-go/internal/state"
)

// PostService wraps the post endpoints and owns the feed list. All feed
// mutation follows the optimistic discipline: publish the next state
// synchronously, issue the call, reconcile on success, restore the exact
// pre-action snapshot on failure.
type PostService struct {
	gw    Gateway
	cache ReadCache
	clock Clock
	log   Logger
	feed  *state.Cell[[]model.Post]
}

// NewPostService creates a PostService with the provided dependencies.
func NewPostService(gw Gateway, cache ReadCache, clock Clock, log Logger) *PostService {
	return &PostService{
		gw:    gw,
		cache: cache,
		clock: clock,
		log:   log,
		feed:  state.NewCell[[]model.Post](nil),
	}
}

// FeedPosts returns the current feed list in display order.
func (s *PostService) FeedPosts() []model.Post {
	return s.feed.Get()
}

// SubscribeFeed registers fn to observe every feed publish.
func (s *PostService) SubscribeFeed(fn func([]model.Post)) (cancel func()) {
	return s.feed.Subscribe(fn)
}

// Feed fetches the personalized feed, publishes it and mirrors it to the
// read cache. The cache write is best-effort.
func (s *PostService) Feed(ctx context.Context) ([]model.Post, error) {
	var posts []model.Post
	if err := s.gw.Get(ctx, "/posts/feed", &posts); err != nil {
		return nil, err
	}
	s.feed.Set(posts)
	s.mirror(ctx, ScopeFeed, posts)
	s.log.Debug("feed loaded", "count", len(posts))
	return posts, nil
}

// CachedFeed returns the last feed mirrored to the read cache, for display
// when the backend is unreachable.
func (s *PostService) CachedFeed(ctx context.Context) ([]model.Post, time.Time, error) {
	return s.cache.LoadPosts(ctx, ScopeFeed)
}

// MyPosts fetches the caller's own posts and mirrors them to the read cache.
func (s *PostService) MyPosts(ctx context.Context) ([]model.Post, error) {
	var posts []model.Post
	if err := s.gw.Get(ctx, "/posts/my-posts", &posts); err != nil {
		return nil, err
	}
	s.mirror(ctx, ScopeMyPosts, posts)
	return posts, nil
}

// CachedMyPosts returns the last my-posts list mirrored to the read cache.
func (s *PostService) CachedMyPosts(ctx context.Context) ([]model.Post, time.Time, error) {
	return s.cache.LoadPosts(ctx, ScopeMyPosts)
}

// UserPosts fetches another user's posts.
func (s *PostService) UserPosts(ctx context.Context, userID int64) ([]model.Post, error) {
	var posts []model.Post
	if err := s.gw.Get(ctx, fmt.Sprintf("/users/%d/posts", userID), &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// Get fetches a single post.
func (s *PostService) Get(ctx context.Context, postID int64) (*model.Post, error) {
	var post model.Post
	if err := s.gw.Get(ctx, fmt.Sprintf("/posts/%d", postID), &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// Create validates and creates a post. The created post is prepended to the
// feed, matching its display position after a refresh.
func (s *PostService) Create(ctx context.Context, req model.CreatePostRequest) (*model.Post, error) {
	if err := ValidateNewPost(req); err != nil {
		return nil, err
	}

	var post model.Post
	if err := s.gw.Post(ctx, "/posts", req, &post); err != nil {
		return nil, err
	}

	s.feed.Update(func(cur []model.Post) []model.Post {
		return append([]model.Post{post}, cur...)
	})
	s.log.Info("post created", "id", post.ID)
	return &post, nil
}

// Update validates and applies a partial update. The feed entry is patched
// optimistically and replaced by the canonical post from the response.
func (s *PostService) Update(ctx context.Context, postID int64, req model.UpdatePostRequest) (*model.Post, error) {
	if err := ValidatePostUpdate(req); err != nil {
		return nil, err
	}

	snapshot := s.snapshotFeed()
	s.patchFeed(postID, func(p model.Post) model.Post {
		if req.Title != "" {
			p.Title = req.Title
		}
		if req.Content != "" {
			p.Content = req.Content
		}
		if req.MediaURL != "" {
			p.MediaURL = req.MediaURL
		}
		if req.MediaType != "" {
			p.MediaType = req.MediaType
		}
		return p
	})

	var post model.Post
	if err := s.gw.Put(ctx, fmt.Sprintf("/posts/%d", postID), req, &post); err != nil {
		s.feed.Set(snapshot)
		return nil, err
	}

	s.patchFeed(postID, func(model.Post) model.Post { return post })
	s.log.Info("post updated", "id", postID)
	return &post, nil
}

// Delete removes a post. The feed removal is optimistic and final on
// success (the response carries no body to reconcile against).
func (s *PostService) Delete(ctx context.Context, postID int64) error {
	snapshot := s.snapshotFeed()
	s.feed.Update(func(cur []model.Post) []model.Post {
		return slices.DeleteFunc(slices.Clone(cur), func(p model.Post) bool { return p.ID == postID })
	})

	if err := s.gw.Delete(ctx, fmt.Sprintf("/posts/%d", postID), nil); err != nil {
		s.feed.Set(snapshot)
		return err
	}

	s.log.Info("post deleted", "id", postID)
	return nil
}

// Like marks a post liked. IsLiked and LikesCount move together, by exactly
// one, clamped at zero; the optimistic state is final on success.
func (s *PostService) Like(ctx context.Context, postID int64) error {
	return s.setLiked(ctx, postID, true)
}

// Unlike removes a like.
func (s *PostService) Unlike(ctx context.Context, postID int64) error {
	return s.setLiked(ctx, postID, false)
}

// ToggleLike likes or unlikes based on the post's current viewer-relative flag.
func (s *PostService) ToggleLike(ctx context.Context, post model.Post) error {
	return s.setLiked(ctx, post.ID, !post.IsLiked)
}

func (s *PostService) setLiked(ctx context.Context, postID int64, liked bool) error {
	delta := 1
	if !liked {
		delta = -1
	}

	snapshot := s.snapshotFeed()
	s.patchFeed(postID, func(p model.Post) model.Post {
		p.IsLiked = liked
		p.LikesCount = clampCount(p.LikesCount + delta)
		return p
	})

	var err error
	if liked {
		err = s.gw.Post(ctx, fmt.Sprintf("/posts/%d/like", postID), nil, nil)
	} else {
		err = s.gw.Delete(ctx, fmt.Sprintf("/posts/%d/unlike", postID), nil)
	}
	if err != nil {
		s.feed.Set(snapshot)
		return err
	}

	s.log.Debug("like toggled", "post", postID, "liked", liked)
	return nil
}

// Search returns the feed entries matching the query, a derived view
// recomputed from the current list. Matching is case-insensitive over
// title, content and author.
func (s *PostService) Search(query string) []model.Post {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return s.feed.Get()
	}

	var matched []model.Post
	for _, p := range s.feed.Get() {
		if strings.Contains(strings.ToLower(p.Title), query) ||
			strings.Contains(strings.ToLower(p.Content), query) ||
			strings.Contains(strings.ToLower(p.AuthorUsername), query) {
			matched = append(matched, p)
		}
	}
	return matched
}

// ClearFeed drops the in-memory feed. Called on logout.
func (s *PostService) ClearFeed() {
	s.feed.Set(nil)
}

// adjustCommentCount moves a post's comment count in lockstep with comment
// creation and deletion. It returns a restore function that republishes the
// pre-adjustment snapshot.
func (s *PostService) adjustCommentCount(postID int64, delta int) (restore func()) {
	snapshot := s.snapshotFeed()
	s.patchFeed(postID, func(p model.Post) model.Post {
		p.CommentsCount = clampCount(p.CommentsCount + delta)
		return p
	})
	return func() { s.feed.Set(snapshot) }
}

func (s *PostService) snapshotFeed() []model.Post {
	return slices.Clone(s.feed.Get())
}

func (s *PostService) patchFeed(postID int64, patch func(model.Post) model.Post) {
	s.feed.Update(func(cur []model.Post) []model.Post {
		next := slices.Clone(cur)
		for i := range next {
			if next[i].ID == postID {
				next[i] = patch(next[i])
			}
		}
		return next
	})
}

func (s *PostService) mirror(ctx context.Context, scope string, posts []model.Post) {
	if err := s.cache.SavePosts(ctx, scope, posts, s.clock.Now()); err != nil {
		s.log.Warn("mirroring posts to read cache failed", "scope", scope, "error", err)
	}
}

// clampCount keeps aggregate counters non-negative.
func clampCount(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
