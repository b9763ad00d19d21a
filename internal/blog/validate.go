package blog

import (
	"fmt"
	"regexp"
	"strings"

	"ob-go/internal/gateway"
	"ob-go/internal/model"
)

// Input bounds, matching what the backend enforces.
const (
	TitleMin   = 3
	TitleMax   = 255
	ContentMin = 10
	ContentMax = 10000
	ReasonMin  = 10
	ReasonMax  = 500
	CommentMax = 1000

	UsernameMin = 3
	UsernameMax = 20
	PasswordMin = 6
)

// forbiddenChars are the HTML/script characters rejected in free-text fields.
const forbiddenChars = `<>"'`

var (
	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)
	emailPattern    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	titlePattern    = regexp.MustCompile(`^[a-zA-Z0-9\s.,!?'-]+$`)
	mediaURLPattern = regexp.MustCompile(`(?i)^https?://.*\.(jpg|jpeg|png|gif|mp4|mov|avi)$`)
)

// ValidateReason checks an abuse-report reason. The same rules apply to the
// trimmed text: required, 10-500 characters, no HTML or script characters.
func ValidateReason(reason string) error {
	trimmed := strings.TrimSpace(reason)
	switch {
	case trimmed == "":
		return gateway.NewValidation(map[string]string{"reason": "Reason is required"})
	case len(trimmed) < ReasonMin:
		return gateway.NewValidation(map[string]string{"reason": fmt.Sprintf("Reason must be at least %d characters", ReasonMin)})
	case len(trimmed) > ReasonMax:
		return gateway.NewValidation(map[string]string{"reason": fmt.Sprintf("Reason must be %d characters or less", ReasonMax)})
	case strings.ContainsAny(trimmed, forbiddenChars):
		return gateway.NewValidation(map[string]string{"reason": `Reason cannot contain HTML tags or script characters (< > " ')`})
	}
	return nil
}

// ValidateLogin checks login credentials before any network call.
func ValidateLogin(usernameOrEmail, password string) error {
	details := map[string]string{}
	switch {
	case strings.TrimSpace(usernameOrEmail) == "":
		details["usernameOrEmail"] = "Username or email is required"
	case len(strings.TrimSpace(usernameOrEmail)) < UsernameMin:
		details["usernameOrEmail"] = fmt.Sprintf("Must be at least %d characters", UsernameMin)
	}
	switch {
	case password == "":
		details["password"] = "Password is required"
	case len(password) < PasswordMin:
		details["password"] = fmt.Sprintf("Password must be at least %d characters", PasswordMin)
	}
	if len(details) > 0 {
		return gateway.NewValidation(details)
	}
	return nil
}

// ValidateRegistration checks a new account before any network call.
func ValidateRegistration(username, email, password string) error {
	details := map[string]string{}
	username = strings.TrimSpace(username)
	switch {
	case username == "":
		details["username"] = "Username is required"
	case len(username) < UsernameMin:
		details["username"] = fmt.Sprintf("Username must be at least %d characters", UsernameMin)
	case len(username) > UsernameMax:
		details["username"] = fmt.Sprintf("Username must be %d characters or less", UsernameMax)
	case !usernamePattern.MatchString(username):
		details["username"] = "Username may only contain letters, digits and underscores"
	}
	email = strings.TrimSpace(email)
	switch {
	case email == "":
		details["email"] = "Email is required"
	case !emailPattern.MatchString(email):
		details["email"] = "Email address is not valid"
	}
	switch {
	case password == "":
		details["password"] = "Password is required"
	case len(password) < PasswordMin:
		details["password"] = fmt.Sprintf("Password must be at least %d characters", PasswordMin)
	}
	if len(details) > 0 {
		return gateway.NewValidation(details)
	}
	return nil
}

// validateTitle and validateContent return a field message, or "" when valid.
func validateTitle(title string) string {
	switch {
	case strings.TrimSpace(title) == "":
		return "Title is required"
	case len(title) < TitleMin:
		return fmt.Sprintf("Title must be at least %d characters", TitleMin)
	case len(title) > TitleMax:
		return fmt.Sprintf("Title must be %d characters or less", TitleMax)
	case !titlePattern.MatchString(title):
		return "Title may only contain letters, digits, spaces and basic punctuation"
	}
	return ""
}

func validateContent(content string) string {
	switch {
	case strings.TrimSpace(content) == "":
		return "Content is required"
	case len(content) < ContentMin:
		return fmt.Sprintf("Content must be at least %d characters", ContentMin)
	case len(content) > ContentMax:
		return fmt.Sprintf("Content must be %d characters or less", ContentMax)
	case strings.ContainsAny(content, forbiddenChars):
		return `Content cannot contain HTML tags or script characters (< > " ')`
	}
	return ""
}

func validateMediaURL(url string) string {
	switch {
	case url == "":
		return "Media URL is required"
	case len(url) > 1000:
		return "Media URL must be 1000 characters or less"
	case !mediaURLPattern.MatchString(url):
		return "Media URL must be an http(s) link to an image or video file"
	}
	return ""
}

// ValidateNewPost checks a post before creation.
func ValidateNewPost(req model.CreatePostRequest) error {
	details := map[string]string{}
	if msg := validateTitle(req.Title); msg != "" {
		details["title"] = msg
	}
	if msg := validateContent(req.Content); msg != "" {
		details["content"] = msg
	}
	if msg := validateMediaURL(req.MediaURL); msg != "" {
		details["mediaUrl"] = msg
	}
	if req.MediaType != model.MediaImage && req.MediaType != model.MediaVideo {
		details["mediaType"] = "Media type must be image or video"
	}
	if len(details) > 0 {
		return gateway.NewValidation(details)
	}
	return nil
}

// ValidatePostUpdate checks a partial update; empty fields are left alone.
func ValidatePostUpdate(req model.UpdatePostRequest) error {
	details := map[string]string{}
	if req.Title != "" {
		if msg := validateTitle(req.Title); msg != "" {
			details["title"] = msg
		}
	}
	if req.Content != "" {
		if msg := validateContent(req.Content); msg != "" {
			details["content"] = msg
		}
	}
	if req.MediaURL != "" {
		if msg := validateMediaURL(req.MediaURL); msg != "" {
			details["mediaUrl"] = msg
		}
	}
	if req.MediaType != "" && req.MediaType != model.MediaImage && req.MediaType != model.MediaVideo {
		details["mediaType"] = "Media type must be image or video"
	}
	if len(details) > 0 {
		return gateway.NewValidation(details)
	}
	return nil
}

// ValidateComment checks a comment body.
func ValidateComment(content string) error {
	trimmed := strings.TrimSpace(content)
	switch {
	case trimmed == "":
		return gateway.NewValidation(map[string]string{"content": "Comment is required"})
	case len(trimmed) > CommentMax:
		return gateway.NewValidation(map[string]string{"content": fmt.Sprintf("Comment must be %d characters or less", CommentMax)})
	case strings.ContainsAny(trimmed, forbiddenChars):
		return gateway.NewValidation(map[string]string{"content": `Comment cannot contain HTML tags or script characters (< > " ')`})
	}
	return nil
}

// ValidateModerationReason checks a ban or hide reason.
func ValidateModerationReason(reason string) error {
	if strings.TrimSpace(reason) == "" {
		return gateway.NewValidation(map[string]string{"reason": "Reason is required"})
	}
	if strings.ContainsAny(reason, forbiddenChars) {
		return gateway.NewValidation(map[string]string{"reason": `Reason cannot contain HTML tags or script characters (< > " ')`})
	}
	return nil
}

// ValidateResolveAction checks a report resolution action.
func ValidateResolveAction(action string) error {
	if action != string(model.ReportResolved) && action != string(model.ReportDismissed) {
		return gateway.NewValidation(map[string]string{"action": "Action must be RESOLVED or DISMISSED"})
	}
	return nil
}
