package blog_test

import (
	"context"
	"testing"
	"time"

	"ob-go/internal/blog"
	"ob-go/internal/gateway"
	"ob-go/internal/model"
	"ob-go/internal/store"
	"ob-go/internal/testutil"
)

var fixedNow = time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)

func newPostService(t *testing.T) (*blog.PostService, *testutil.StubGateway, *store.MemoryCache) {
	t.Helper()
	gw := testutil.NewStubGateway()
	cache := store.NewMemoryCache()
	svc := blog.NewPostService(gw, cache, testutil.NewStubClock(fixedNow), blog.NewNopLogger())
	return svc, gw, cache
}

func seedFeed(t *testing.T, svc *blog.PostService, gw *testutil.StubGateway, posts []model.Post) {
	t.Helper()
	gw.Respond("GET", "/posts/feed", posts, nil)
	if _, err := svc.Feed(context.Background()); err != nil {
		t.Fatalf("seeding feed: %v", err)
	}
}

func serverErr() *gateway.Error {
	return &gateway.Error{Kind: gateway.KindServer, Status: 500, Message: "Server error: 500"}
}

func TestPostService_Feed(t *testing.T) {
	svc, gw, cache := newPostService(t)
	posts := []model.Post{{ID: 1, Title: "First post"}, {ID: 2, Title: "Second post"}}
	gw.Respond("GET", "/posts/feed", posts, nil)

	got, err := svc.Feed(context.Background())
	if err != nil {
		t.Fatalf("Feed() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len(posts) = %d, want 2", len(got))
	}
	if len(svc.FeedPosts()) != 2 {
		t.Errorf("FeedPosts() has %d entries, want 2", len(svc.FeedPosts()))
	}

	// The feed is mirrored to the read cache with the fetch time.
	cached, fetchedAt, err := cache.LoadPosts(context.Background(), blog.ScopeFeed)
	if err != nil {
		t.Fatalf("LoadPosts() error = %v", err)
	}
	if len(cached) != 2 {
		t.Errorf("cached %d posts, want 2", len(cached))
	}
	if !fetchedAt.Equal(fixedNow) {
		t.Errorf("fetchedAt = %v, want %v", fetchedAt, fixedNow)
	}
}

func TestPostService_CachedFeed(t *testing.T) {
	svc, gw, _ := newPostService(t)
	seedFeed(t, svc, gw, []model.Post{{ID: 1, Title: "Cached post"}})

	posts, fetchedAt, err := svc.CachedFeed(context.Background())
	if err != nil {
		t.Fatalf("CachedFeed() error = %v", err)
	}
	if len(posts) != 1 || posts[0].Title != "Cached post" {
		t.Errorf("posts = %v, want the cached post", posts)
	}
	if !fetchedAt.Equal(fixedNow) {
		t.Errorf("fetchedAt = %v, want %v", fetchedAt, fixedNow)
	}
}

func TestPostService_Create(t *testing.T) {
	req := model.CreatePostRequest{
		Title:     "A new post",
		Content:   "Content long enough to pass validation",
		MediaURL:  "https://media.example.com/pic.png",
		MediaType: model.MediaImage,
	}

	t.Run("created post is prepended to the feed", func(t *testing.T) {
		svc, gw, _ := newPostService(t)
		seedFeed(t, svc, gw, []model.Post{{ID: 1, Title: "Existing"}})
		gw.Respond("POST", "/posts", model.Post{ID: 2, Title: req.Title}, nil)

		post, err := svc.Create(context.Background(), req)
		if err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		if post.ID != 2 {
			t.Errorf("post.ID = %d, want 2", post.ID)
		}

		feed := svc.FeedPosts()
		if len(feed) != 2 || feed[0].ID != 2 {
			t.Errorf("feed = %v, want created post first", feed)
		}
	})

	t.Run("invalid post never reaches the gateway", func(t *testing.T) {
		svc, gw, _ := newPostService(t)

		_, err := svc.Create(context.Background(), model.CreatePostRequest{})
		if !gateway.IsValidation(err) {
			t.Fatalf("Create() = %v, want validation error", err)
		}
		if n := gw.CallCount("POST", "/posts"); n != 0 {
			t.Errorf("gateway calls = %d, want 0", n)
		}
	})
}

func TestPostService_Update(t *testing.T) {
	t.Run("canonical response replaces the optimistic patch", func(t *testing.T) {
		svc, gw, _ := newPostService(t)
		seedFeed(t, svc, gw, []model.Post{{ID: 1, Title: "Old title", Content: "Old content here"}})
		gw.Respond("PUT", "/posts/1", model.Post{ID: 1, Title: "Server title", Content: "Server content"}, nil)

		_, err := svc.Update(context.Background(), 1, model.UpdatePostRequest{Title: "New title"})
		if err != nil {
			t.Fatalf("Update() error = %v", err)
		}

		feed := svc.FeedPosts()
		if feed[0].Title != "Server title" {
			t.Errorf("Title = %q, want canonical %q", feed[0].Title, "Server title")
		}
	})

	t.Run("failure restores the exact snapshot", func(t *testing.T) {
		svc, gw, _ := newPostService(t)
		seedFeed(t, svc, gw, []model.Post{{ID: 1, Title: "Old title", Content: "Old content here"}})
		gw.Respond("PUT", "/posts/1", nil, serverErr())

		var observed []string
		svc.SubscribeFeed(func(posts []model.Post) {
			if len(posts) > 0 {
				observed = append(observed, posts[0].Title)
			}
		})

		_, err := svc.Update(context.Background(), 1, model.UpdatePostRequest{Title: "New title"})
		if err == nil {
			t.Fatal("Update() error = nil, want server error")
		}

		// The optimistic title was published before the rollback.
		if len(observed) != 2 || observed[0] != "New title" || observed[1] != "Old title" {
			t.Errorf("observed = %v, want [New title, Old title]", observed)
		}
		if svc.FeedPosts()[0].Title != "Old title" {
			t.Errorf("Title = %q, want restored %q", svc.FeedPosts()[0].Title, "Old title")
		}
	})
}

func TestPostService_Delete(t *testing.T) {
	t.Run("removal is final on success", func(t *testing.T) {
		svc, gw, _ := newPostService(t)
		seedFeed(t, svc, gw, []model.Post{{ID: 1}, {ID: 2}})

		if err := svc.Delete(context.Background(), 1); err != nil {
			t.Fatalf("Delete() error = %v", err)
		}

		feed := svc.FeedPosts()
		if len(feed) != 1 || feed[0].ID != 2 {
			t.Errorf("feed = %v, want only post 2", feed)
		}
	})

	t.Run("failure restores the removed entry in position", func(t *testing.T) {
		svc, gw, _ := newPostService(t)
		seedFeed(t, svc, gw, []model.Post{{ID: 1}, {ID: 2}, {ID: 3}})
		gw.Respond("DELETE", "/posts/2", nil, serverErr())

		if err := svc.Delete(context.Background(), 2); err == nil {
			t.Fatal("Delete() error = nil, want server error")
		}

		feed := svc.FeedPosts()
		if len(feed) != 3 || feed[1].ID != 2 {
			t.Errorf("feed = %v, want post 2 restored at index 1", feed)
		}
	})
}

func TestPostService_Like(t *testing.T) {
	t.Run("flag and count move together", func(t *testing.T) {
		svc, gw, _ := newPostService(t)
		seedFeed(t, svc, gw, []model.Post{{ID: 1, LikesCount: 3, IsLiked: false}})

		if err := svc.Like(context.Background(), 1); err != nil {
			t.Fatalf("Like() error = %v", err)
		}

		p := svc.FeedPosts()[0]
		if !p.IsLiked || p.LikesCount != 4 {
			t.Errorf("IsLiked = %t, LikesCount = %d, want true, 4", p.IsLiked, p.LikesCount)
		}
	})

	t.Run("failure restores flag and count together", func(t *testing.T) {
		svc, gw, _ := newPostService(t)
		seedFeed(t, svc, gw, []model.Post{{ID: 1, LikesCount: 3, IsLiked: false}})
		gw.Respond("POST", "/posts/1/like", nil, serverErr())

		if err := svc.Like(context.Background(), 1); err == nil {
			t.Fatal("Like() error = nil, want server error")
		}

		p := svc.FeedPosts()[0]
		if p.IsLiked || p.LikesCount != 3 {
			t.Errorf("IsLiked = %t, LikesCount = %d, want false, 3", p.IsLiked, p.LikesCount)
		}
	})

	t.Run("unlike clamps the count at zero", func(t *testing.T) {
		svc, gw, _ := newPostService(t)
		seedFeed(t, svc, gw, []model.Post{{ID: 1, LikesCount: 0, IsLiked: true}})

		if err := svc.Unlike(context.Background(), 1); err != nil {
			t.Fatalf("Unlike() error = %v", err)
		}

		p := svc.FeedPosts()[0]
		if p.IsLiked || p.LikesCount != 0 {
			t.Errorf("IsLiked = %t, LikesCount = %d, want false, 0", p.IsLiked, p.LikesCount)
		}
	})

	t.Run("toggle flips based on the current flag", func(t *testing.T) {
		svc, gw, _ := newPostService(t)
		seedFeed(t, svc, gw, []model.Post{{ID: 1, LikesCount: 1, IsLiked: true}})

		if err := svc.ToggleLike(context.Background(), svc.FeedPosts()[0]); err != nil {
			t.Fatalf("ToggleLike() error = %v", err)
		}
		if n := gw.CallCount("DELETE", "/posts/1/unlike"); n != 1 {
			t.Errorf("unlike calls = %d, want 1", n)
		}

		p := svc.FeedPosts()[0]
		if p.IsLiked || p.LikesCount != 0 {
			t.Errorf("IsLiked = %t, LikesCount = %d, want false, 0", p.IsLiked, p.LikesCount)
		}
	})
}

func TestPostService_Search(t *testing.T) {
	svc, gw, _ := newPostService(t)
	seedFeed(t, svc, gw, []model.Post{
		{ID: 1, Title: "Learning Go", Content: "notes on goroutines", AuthorUsername: "alice"},
		{ID: 2, Title: "Cooking", Content: "pasta recipe", AuthorUsername: "bob"},
		{ID: 3, Title: "Travel", Content: "going north", AuthorUsername: "alice"},
	})

	tests := []struct {
		name    string
		query   string
		wantIDs []int64
	}{
		{"matches title case-insensitively", "learning", []int64{1}},
		{"matches content", "pasta", []int64{2}},
		{"matches author", "ALICE", []int64{1, 3}},
		{"empty query returns the whole feed", "  ", []int64{1, 2, 3}},
		{"no match returns empty", "zzz", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := svc.Search(tt.query)
			if len(got) != len(tt.wantIDs) {
				t.Fatalf("len = %d, want %d", len(got), len(tt.wantIDs))
			}
			for i, id := range tt.wantIDs {
				if got[i].ID != id {
					t.Errorf("got[%d].ID = %d, want %d", i, got[i].ID, id)
				}
			}
		})
	}
}

func TestPostService_ClearFeed(t *testing.T) {
	svc, gw, _ := newPostService(t)
	seedFeed(t, svc, gw, []model.Post{{ID: 1}})

	svc.ClearFeed()
	if got := svc.FeedPosts(); len(got) != 0 {
		t.Errorf("FeedPosts() = %v, want empty", got)
	}
}

func TestPostService_MyPosts(t *testing.T) {
	svc, gw, cache := newPostService(t)
	gw.Respond("GET", "/posts/my-posts", []model.Post{{ID: 7, Title: "Mine"}}, nil)

	got, err := svc.MyPosts(context.Background())
	if err != nil {
		t.Fatalf("MyPosts() error = %v", err)
	}
	if len(got) != 1 || got[0].ID != 7 {
		t.Errorf("posts = %v, want post 7", got)
	}

	cached, _, err := cache.LoadPosts(context.Background(), blog.ScopeMyPosts)
	if err != nil {
		t.Fatalf("LoadPosts() error = %v", err)
	}
	if len(cached) != 1 {
		t.Errorf("cached %d posts, want 1", len(cached))
	}
}
