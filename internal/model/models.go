package model

// Role is the authorization level the backend grants a user.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// MediaType distinguishes the two media kinds the backend accepts on a post.
type MediaType string

const (
	MediaImage MediaType = "image"
	MediaVideo MediaType = "video"
)

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	UsernameOrEmail string `json:"usernameOrEmail"`
	Password        string `json:"password"`
}

// RegisterRequest is the body of POST /auth/register.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is returned by both auth endpoints. The token is an opaque
// bearer credential; the client never inspects it beyond display purposes.
type AuthResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     Role   `json:"role"`
}

// Post is a feed entry. LikesCount and IsLiked are viewer-relative and move
// together during optimistic updates.
type Post struct {
	ID             int64     `json:"id"`
	Title          string    `json:"title"`
	Content        string    `json:"content"`
	MediaURL       string    `json:"mediaUrl"`
	MediaType      MediaType `json:"mediaType"`
	AuthorID       int64     `json:"authorId"`
	AuthorUsername string    `json:"authorUsername"`
	LikesCount     int       `json:"likesCount"`
	IsLiked        bool      `json:"isLiked"`
	CommentsCount  int       `json:"commentsCount"`
	CreatedAt      string    `json:"createdAt"`
	UpdatedAt      string    `json:"updatedAt"`
}

// CreatePostRequest is the body of POST /posts.
type CreatePostRequest struct {
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	MediaURL  string    `json:"mediaUrl"`
	MediaType MediaType `json:"mediaType"`
}

// UpdatePostRequest is the body of PUT /posts/{id}. Empty fields are omitted
// and left unchanged by the backend.
type UpdatePostRequest struct {
	Title     string    `json:"title,omitempty"`
	Content   string    `json:"content,omitempty"`
	MediaURL  string    `json:"mediaUrl,omitempty"`
	MediaType MediaType `json:"mediaType,omitempty"`
}

// Comment belongs to a post.
type Comment struct {
	ID             int64  `json:"id"`
	Content        string `json:"content"`
	AuthorID       int64  `json:"authorId"`
	AuthorUsername string `json:"authorUsername"`
	PostID         int64  `json:"postId"`
	CreatedAt      string `json:"createdAt"`
}

// CreateCommentRequest is the body of POST /posts/{id}/comments.
type CreateCommentRequest struct {
	Content string `json:"content"`
}

// Notification is an unread-list entry. Once marked read it leaves the
// unread list and never returns.
type Notification struct {
	ID            int64  `json:"id"`
	Message       string `json:"message"`
	Type          string `json:"type"`
	IsRead        bool   `json:"isRead"`
	ActorID       int64  `json:"actorId"`
	ActorUsername string `json:"actorUsername"`
	PostID        int64  `json:"postId"`
	PostTitle     string `json:"postTitle"`
	CreatedAt     string `json:"createdAt"`
}

// NotificationTypeNewPost is the only notification type the backend emits today.
const NotificationTypeNewPost = "NEW_POST"

// NotificationSummary is returned by GET /notifications/summary.
type NotificationSummary struct {
	UnreadCount int `json:"unreadCount"`
}

// UserProfile is a public profile as seen by the current viewer.
// IsFollowing and FollowersCount move together during optimistic updates.
type UserProfile struct {
	UserID         int64  `json:"userId"`
	Username       string `json:"username"`
	Email          string `json:"email,omitempty"`
	Role           string `json:"role"`
	FollowersCount int    `json:"followersCount"`
	FollowingCount int    `json:"followingCount"`
	PostsCount     int    `json:"postsCount"`
	IsFollowing    bool   `json:"isFollowing"`
	IsOwnProfile   bool   `json:"isOwnProfile"`
	JoinedAt       string `json:"joinedAt"`
}

// FollowResponse is returned by the follow and unfollow endpoints and is the
// canonical record the client reconciles against.
type FollowResponse struct {
	Message           string `json:"message"`
	IsFollowing       bool   `json:"isFollowing"`
	FollowerID        int64  `json:"followerId"`
	FollowerUsername  string `json:"followerUsername"`
	FollowingID       int64  `json:"followingId"`
	FollowingUsername string `json:"followingUsername"`
	Timestamp         string `json:"timestamp"`
}

// ReportStatus is the lifecycle of an abuse report. Only an admin action
// moves a report out of PENDING.
type ReportStatus string

const (
	ReportPending   ReportStatus = "PENDING"
	ReportResolved  ReportStatus = "RESOLVED"
	ReportDismissed ReportStatus = "DISMISSED"
)

// Report is an abuse report against a user.
type Report struct {
	ID                 int64        `json:"id"`
	Reason             string       `json:"reason"`
	Status             ReportStatus `json:"status"`
	ReporterID         int64        `json:"reporterId"`
	ReporterUsername   string       `json:"reporterUsername"`
	ReportedUserID     int64        `json:"reportedUserId"`
	ReportedUsername   string       `json:"reportedUsername"`
	ReportedUserBanned bool         `json:"reportedUserBanned"`
	ResolvedByID       *int64       `json:"resolvedById"`
	ResolvedByUsername *string      `json:"resolvedByUsername"`
	CreatedAt          string       `json:"createdAt"`
	ResolvedAt         *string      `json:"resolvedAt"`
}

// ReportRequest is the body of POST /reports/user/{id}.
type ReportRequest struct {
	Reason string `json:"reason"`
}

// ReportSubmitResponse acknowledges a submitted report.
type ReportSubmitResponse struct {
	Message  string `json:"message"`
	ReportID int64  `json:"reportId"`
}

// ResolveReportRequest is the body of PUT /admin/reports/{id}/resolve.
// Action is RESOLVED or DISMISSED.
type ResolveReportRequest struct {
	Action string `json:"action"`
}

// AdminUser is the moderation view of a user.
type AdminUser struct {
	UserID         int64   `json:"userId"`
	Username       string  `json:"username"`
	Email          string  `json:"email"`
	Role           string  `json:"role"`
	Banned         bool    `json:"banned"`
	BanReason      *string `json:"banReason"`
	BannedAt       *string `json:"bannedAt"`
	PostsCount     int     `json:"postsCount"`
	FollowersCount int     `json:"followersCount"`
	FollowingCount int     `json:"followingCount"`
	ReportsCount   int     `json:"reportsCount"`
	JoinedAt       string  `json:"joinedAt"`
}

// BanUserRequest is the body of PUT /admin/users/{id}/ban.
type BanUserRequest struct {
	Reason string `json:"reason"`
}

// AdminPost is the moderation view of a post.
type AdminPost struct {
	ID             int64   `json:"id"`
	Title          string  `json:"title"`
	Content        string  `json:"content"`
	MediaURL       *string `json:"mediaUrl"`
	MediaType      *string `json:"mediaType"`
	AuthorID       int64   `json:"authorId"`
	AuthorUsername string  `json:"authorUsername"`
	AuthorBanned   bool    `json:"authorBanned"`
	LikesCount     int     `json:"likesCount"`
	CommentsCount  int     `json:"commentsCount"`
	Hidden         bool    `json:"hidden"`
	HiddenReason   *string `json:"hiddenReason"`
	HiddenAt       *string `json:"hiddenAt"`
	CreatedAt      string  `json:"createdAt"`
	UpdatedAt      string  `json:"updatedAt"`
}

// HidePostRequest is the body of PUT /admin/posts/{id}/hide.
type HidePostRequest struct {
	Reason string `json:"reason"`
}

// MessageResponse is the generic acknowledgement body used by admin deletes.
type MessageResponse struct {
	Message string `json:"message"`
}

// DashboardStatistics is returned by GET /admin/dashboard/statistics.
type DashboardStatistics struct {
	TotalUsers      int `json:"totalUsers"`
	ActiveUsers     int `json:"activeUsers"`
	BannedUsers     int `json:"bannedUsers"`
	TotalPosts      int `json:"totalPosts"`
	VisiblePosts    int `json:"visiblePosts"`
	HiddenPosts     int `json:"hiddenPosts"`
	TotalReports    int `json:"totalReports"`
	PendingReports  int `json:"pendingReports"`
	ResolvedReports int `json:"resolvedReports"`
}
