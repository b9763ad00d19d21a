package blog

import (
	"context"
	"fmt"
	"slices"

	"ob-go/internal/model"
	"ob-go/internal/state"
)

// SubscriptionService wraps the follow endpoints and owns the viewed
// profile and the discovery list. IsFollowing and FollowersCount always
// move together, never one without the other.
type SubscriptionService struct {
	gw      Gateway
	log     Logger
	profile *state.Cell[*model.UserProfile]
	users   *state.Cell[[]model.UserProfile]
}

// NewSubscriptionService creates a SubscriptionService with the provided dependencies.
func NewSubscriptionService(gw Gateway, log Logger) *SubscriptionService {
	return &SubscriptionService{
		gw:      gw,
		log:     log,
		profile: state.NewCell[*model.UserProfile](nil),
		users:   state.NewCell[[]model.UserProfile](nil),
	}
}

// CurrentProfile returns the last loaded profile, or nil.
func (s *SubscriptionService) CurrentProfile() *model.UserProfile {
	return s.profile.Get()
}

// Users returns the current discovery list.
func (s *SubscriptionService) Users() []model.UserProfile {
	return s.users.Get()
}

// SubscribeProfile registers fn to observe profile publishes.
func (s *SubscriptionService) SubscribeProfile(fn func(*model.UserProfile)) (cancel func()) {
	return s.profile.Subscribe(fn)
}

// Profile fetches and publishes a user's profile.
func (s *SubscriptionService) Profile(ctx context.Context, userID int64) (*model.UserProfile, error) {
	var profile model.UserProfile
	if err := s.gw.Get(ctx, fmt.Sprintf("/users/%d/profile", userID), &profile); err != nil {
		return nil, err
	}
	s.profile.Set(&profile)
	return &profile, nil
}

// MyProfile fetches and publishes the caller's own profile.
func (s *SubscriptionService) MyProfile(ctx context.Context) (*model.UserProfile, error) {
	var profile model.UserProfile
	if err := s.gw.Get(ctx, "/users/my-profile", &profile); err != nil {
		return nil, err
	}
	s.profile.Set(&profile)
	return &profile, nil
}

// AllUsers fetches and publishes the discovery list.
func (s *SubscriptionService) AllUsers(ctx context.Context) ([]model.UserProfile, error) {
	var users []model.UserProfile
	if err := s.gw.Get(ctx, "/users", &users); err != nil {
		return nil, err
	}
	s.users.Set(users)
	return users, nil
}

// Follow starts following a user. Both the profile and the discovery list
// are updated optimistically and reconciled from the FollowResponse.
func (s *SubscriptionService) Follow(ctx context.Context, userID int64) (*model.FollowResponse, error) {
	return s.setFollowing(ctx, userID, true)
}

// Unfollow stops following a user.
func (s *SubscriptionService) Unfollow(ctx context.Context, userID int64) (*model.FollowResponse, error) {
	return s.setFollowing(ctx, userID, false)
}

// ToggleFollow follows or unfollows based on the profile's current flag.
func (s *SubscriptionService) ToggleFollow(ctx context.Context, profile model.UserProfile) (*model.FollowResponse, error) {
	return s.setFollowing(ctx, profile.UserID, !profile.IsFollowing)
}

func (s *SubscriptionService) setFollowing(ctx context.Context, userID int64, following bool) (*model.FollowResponse, error) {
	delta := 1
	if !following {
		delta = -1
	}

	profileSnapshot := s.profile.Get()
	usersSnapshot := slices.Clone(s.users.Get())

	s.patchUser(userID, func(p model.UserProfile) model.UserProfile {
		p.IsFollowing = following
		p.FollowersCount = clampCount(p.FollowersCount + delta)
		return p
	})

	var err error
	var resp model.FollowResponse
	if following {
		err = s.gw.Post(ctx, fmt.Sprintf("/users/%d/follow", userID), nil, &resp)
	} else {
		err = s.gw.Delete(ctx, fmt.Sprintf("/users/%d/unfollow", userID), &resp)
	}
	if err != nil {
		s.profile.Set(profileSnapshot)
		s.users.Set(usersSnapshot)
		return nil, err
	}

	// The response is canonical for the relation flag; the count stays at
	// its optimistic value since the backend does not return one.
	s.patchUser(userID, func(p model.UserProfile) model.UserProfile {
		p.IsFollowing = resp.IsFollowing
		return p
	})

	s.log.Debug("follow toggled", "user", userID, "following", resp.IsFollowing)
	return &resp, nil
}

// patchUser applies patch to the user in the profile cell and the discovery
// list, wherever it appears.
func (s *SubscriptionService) patchUser(userID int64, patch func(model.UserProfile) model.UserProfile) {
	s.profile.Update(func(cur *model.UserProfile) *model.UserProfile {
		if cur == nil || cur.UserID != userID {
			return cur
		}
		patched := patch(*cur)
		return &patched
	})
	s.users.Update(func(cur []model.UserProfile) []model.UserProfile {
		next := slices.Clone(cur)
		for i := range next {
			if next[i].UserID == userID {
				next[i] = patch(next[i])
			}
		}
		return next
	})
}

// ClearProfiles drops the cached profile and discovery list. Called on logout.
func (s *SubscriptionService) ClearProfiles() {
	s.profile.Set(nil)
	s.users.Set(nil)
}
