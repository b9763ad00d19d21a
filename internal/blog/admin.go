package blog

import (
	"context"
	"fmt"
	"slices"

	"ob-go/internal/gateway"
	"ob-go/internal/model"
	"ob-go/internal/state"
)

// AdminService wraps the moderation endpoints and owns the admin lists.
// Moderation actions that return the canonical object (ban, unban, hide,
// unhide, resolve) replace the optimistic entry by id; deletes stay final.
type AdminService struct {
	gw      Gateway
	log     Logger
	users   *state.Cell[[]model.AdminUser]
	posts   *state.Cell[[]model.AdminPost]
	reports *state.Cell[[]model.Report]
}

// NewAdminService creates an AdminService with the provided dependencies.
func NewAdminService(gw Gateway, log Logger) *AdminService {
	return &AdminService{
		gw:      gw,
		log:     log,
		users:   state.NewCell[[]model.AdminUser](nil),
		posts:   state.NewCell[[]model.AdminPost](nil),
		reports: state.NewCell[[]model.Report](nil),
	}
}

// UserList returns the current moderation user list.
func (s *AdminService) UserList() []model.AdminUser {
	return s.users.Get()
}

// PostList returns the current moderation post list.
func (s *AdminService) PostList() []model.AdminPost {
	return s.posts.Get()
}

// ReportList returns the current report list.
func (s *AdminService) ReportList() []model.Report {
	return s.reports.Get()
}

// Users fetches and publishes the moderation view of all users.
func (s *AdminService) Users(ctx context.Context) ([]model.AdminUser, error) {
	var users []model.AdminUser
	if err := s.gw.Get(ctx, "/admin/users", &users); err != nil {
		return nil, err
	}
	s.users.Set(users)
	return users, nil
}

// Posts fetches and publishes the moderation view of all posts.
func (s *AdminService) Posts(ctx context.Context) ([]model.AdminPost, error) {
	var posts []model.AdminPost
	if err := s.gw.Get(ctx, "/admin/posts", &posts); err != nil {
		return nil, err
	}
	s.posts.Set(posts)
	return posts, nil
}

// Reports fetches and publishes all abuse reports.
func (s *AdminService) Reports(ctx context.Context) ([]model.Report, error) {
	var reports []model.Report
	if err := s.gw.Get(ctx, "/reports", &reports); err != nil {
		return nil, err
	}
	s.reports.Set(reports)
	return reports, nil
}

// PendingReports is a derived view over the reports list.
func (s *AdminService) PendingReports() []model.Report {
	var pending []model.Report
	for _, r := range s.reports.Get() {
		if r.Status == model.ReportPending {
			pending = append(pending, r)
		}
	}
	return pending
}

// Stats fetches the dashboard statistics.
func (s *AdminService) Stats(ctx context.Context) (*model.DashboardStatistics, error) {
	var stats model.DashboardStatistics
	if err := s.gw.Get(ctx, "/admin/dashboard/statistics", &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// BanUser bans a user with a reason. The banned flag flips optimistically;
// the entry is replaced by the canonical AdminUser on success.
func (s *AdminService) BanUser(ctx context.Context, userID int64, reason string) (*model.AdminUser, error) {
	if err := ValidateModerationReason(reason); err != nil {
		return nil, err
	}
	return s.moderateUser(ctx, userID, fmt.Sprintf("/admin/users/%d/ban", userID),
		model.BanUserRequest{Reason: reason}, true)
}

// UnbanUser lifts a ban.
func (s *AdminService) UnbanUser(ctx context.Context, userID int64) (*model.AdminUser, error) {
	return s.moderateUser(ctx, userID, fmt.Sprintf("/admin/users/%d/unban", userID), nil, false)
}

func (s *AdminService) moderateUser(ctx context.Context, userID int64, path string, body any, banned bool) (*model.AdminUser, error) {
	snapshot := slices.Clone(s.users.Get())
	s.patchUser(userID, func(u model.AdminUser) model.AdminUser {
		u.Banned = banned
		return u
	})

	var user model.AdminUser
	if err := s.gw.Put(ctx, path, body, &user); err != nil {
		s.users.Set(snapshot)
		return nil, err
	}

	s.patchUser(userID, func(model.AdminUser) model.AdminUser { return user })
	s.log.Info("user moderated", "id", userID, "banned", user.Banned)
	return &user, nil
}

// DeleteUser removes a user permanently. The list removal is optimistic and
// final on success.
func (s *AdminService) DeleteUser(ctx context.Context, userID int64) (*model.MessageResponse, error) {
	snapshot := slices.Clone(s.users.Get())
	s.users.Update(func(cur []model.AdminUser) []model.AdminUser {
		return slices.DeleteFunc(slices.Clone(cur), func(u model.AdminUser) bool { return u.UserID == userID })
	})

	var resp model.MessageResponse
	if err := s.gw.Delete(ctx, fmt.Sprintf("/admin/users/%d", userID), &resp); err != nil {
		s.users.Set(snapshot)
		return nil, err
	}

	s.log.Info("user deleted", "id", userID)
	return &resp, nil
}

// HidePost hides a post with a reason, mirroring the ban flow.
func (s *AdminService) HidePost(ctx context.Context, postID int64, reason string) (*model.AdminPost, error) {
	if err := ValidateModerationReason(reason); err != nil {
		return nil, err
	}
	return s.moderatePost(ctx, postID, fmt.Sprintf("/admin/posts/%d/hide", postID),
		model.HidePostRequest{Reason: reason}, true)
}

// UnhidePost makes a hidden post visible again.
func (s *AdminService) UnhidePost(ctx context.Context, postID int64) (*model.AdminPost, error) {
	return s.moderatePost(ctx, postID, fmt.Sprintf("/admin/posts/%d/unhide", postID), nil, false)
}

func (s *AdminService) moderatePost(ctx context.Context, postID int64, path string, body any, hidden bool) (*model.AdminPost, error) {
	snapshot := slices.Clone(s.posts.Get())
	s.patchPost(postID, func(p model.AdminPost) model.AdminPost {
		p.Hidden = hidden
		return p
	})

	var post model.AdminPost
	if err := s.gw.Put(ctx, path, body, &post); err != nil {
		s.posts.Set(snapshot)
		return nil, err
	}

	s.patchPost(postID, func(model.AdminPost) model.AdminPost { return post })
	s.log.Info("post moderated", "id", postID, "hidden", post.Hidden)
	return &post, nil
}

// DeletePost removes a post permanently.
func (s *AdminService) DeletePost(ctx context.Context, postID int64) (*model.MessageResponse, error) {
	snapshot := slices.Clone(s.posts.Get())
	s.posts.Update(func(cur []model.AdminPost) []model.AdminPost {
		return slices.DeleteFunc(slices.Clone(cur), func(p model.AdminPost) bool { return p.ID == postID })
	})

	var resp model.MessageResponse
	if err := s.gw.Delete(ctx, fmt.Sprintf("/admin/posts/%d", postID), &resp); err != nil {
		s.posts.Set(snapshot)
		return nil, err
	}

	s.log.Info("post deleted by admin", "id", postID)
	return &resp, nil
}

// ResolveReport moves a PENDING report to RESOLVED or DISMISSED. A report
// already resolved or dismissed is rejected client-side; the transition is
// one-way and only admins perform it.
func (s *AdminService) ResolveReport(ctx context.Context, reportID int64, action string) (*model.Report, error) {
	if err := ValidateResolveAction(action); err != nil {
		return nil, err
	}
	for _, r := range s.reports.Get() {
		if r.ID == reportID && r.Status != model.ReportPending {
			return nil, gateway.NewValidation(map[string]string{"status": "Only pending reports can be resolved"})
		}
	}

	snapshot := slices.Clone(s.reports.Get())
	s.patchReport(reportID, func(r model.Report) model.Report {
		r.Status = model.ReportStatus(action)
		return r
	})

	var report model.Report
	if err := s.gw.Put(ctx, fmt.Sprintf("/admin/reports/%d/resolve", reportID),
		model.ResolveReportRequest{Action: action}, &report); err != nil {
		s.reports.Set(snapshot)
		return nil, err
	}

	s.patchReport(reportID, func(model.Report) model.Report { return report })
	s.log.Info("report resolved", "id", reportID, "action", action)
	return &report, nil
}

func (s *AdminService) patchUser(userID int64, patch func(model.AdminUser) model.AdminUser) {
	s.users.Update(func(cur []model.AdminUser) []model.AdminUser {
		next := slices.Clone(cur)
		for i := range next {
			if next[i].UserID == userID {
				next[i] = patch(next[i])
			}
		}
		return next
	})
}

func (s *AdminService) patchPost(postID int64, patch func(model.AdminPost) model.AdminPost) {
	s.posts.Update(func(cur []model.AdminPost) []model.AdminPost {
		next := slices.Clone(cur)
		for i := range next {
			if next[i].ID == postID {
				next[i] = patch(next[i])
			}
		}
		return next
	})
}

func (s *AdminService) patchReport(reportID int64, patch func(model.Report) model.Report) {
	s.reports.Update(func(cur []model.Report) []model.Report {
		next := slices.Clone(cur)
		for i := range next {
			if next[i].ID == reportID {
				next[i] = patch(next[i])
			}
		}
		return next
	})
}
