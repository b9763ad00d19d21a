package blog_test

import (
	"strings"
	"testing"

	"ob-go/internal/blog"
	"ob-go/internal/gateway"
	"ob-go/internal/model"
)

func TestValidateReason(t *testing.T) {
	tests := []struct {
		name      string
		reason    string
		wantField string // "" means valid
	}{
		{"valid reason", "spam and harassment", ""},
		{"exactly eleven plain characters", "abcdefghijk", ""},
		{"empty is required", "", "reason"},
		{"whitespace only is required", "   \t  ", "reason"},
		{"nine characters is too short", "abcdefghi", "reason"},
		{"too long", strings.Repeat("a", 501), "reason"},
		{"angle bracket rejected", "contains <script> tag", "reason"},
		{"quote rejected", `contains "quoted" text`, "reason"},
		{"trimmed before length check", "  abcdefghi  ", "reason"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := blog.ValidateReason(tt.reason)
			if tt.wantField == "" {
				if err != nil {
					t.Errorf("ValidateReason(%q) error = %v, want nil", tt.reason, err)
				}
				return
			}
			e := gateway.AsError(err)
			if e == nil || e.Kind != gateway.KindValidation {
				t.Fatalf("ValidateReason(%q) = %v, want validation error", tt.reason, err)
			}
			if _, ok := e.Details[tt.wantField]; !ok {
				t.Errorf("Details = %v, want field %q", e.Details, tt.wantField)
			}
		})
	}
}

func TestValidateLogin(t *testing.T) {
	tests := []struct {
		name            string
		usernameOrEmail string
		password        string
		wantFields      []string
	}{
		{"valid", "alice", "secret1", nil},
		{"missing both", "", "", []string{"usernameOrEmail", "password"}},
		{"short username", "ab", "secret1", []string{"usernameOrEmail"}},
		{"short password", "alice", "12345", []string{"password"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := blog.ValidateLogin(tt.usernameOrEmail, tt.password)
			if len(tt.wantFields) == 0 {
				if err != nil {
					t.Errorf("ValidateLogin() error = %v, want nil", err)
				}
				return
			}
			e := gateway.AsError(err)
			if e == nil {
				t.Fatalf("error is %T, want *gateway.Error", err)
			}
			for _, f := range tt.wantFields {
				if _, ok := e.Details[f]; !ok {
					t.Errorf("Details = %v, missing field %q", e.Details, f)
				}
			}
			if len(e.Details) != len(tt.wantFields) {
				t.Errorf("len(Details) = %d, want %d", len(e.Details), len(tt.wantFields))
			}
		})
	}
}

func TestValidateRegistration(t *testing.T) {
	tests := []struct {
		name      string
		username  string
		email     string
		password  string
		wantField string
	}{
		{"valid", "alice_01", "alice@example.com", "secret1", ""},
		{"username with dash", "alice-01", "alice@example.com", "secret1", "username"},
		{"username too long", strings.Repeat("a", 21), "alice@example.com", "secret1", "username"},
		{"bad email", "alice", "not-an-email", "secret1", "email"},
		{"short password", "alice", "alice@example.com", "12345", "password"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := blog.ValidateRegistration(tt.username, tt.email, tt.password)
			if tt.wantField == "" {
				if err != nil {
					t.Errorf("ValidateRegistration() error = %v, want nil", err)
				}
				return
			}
			e := gateway.AsError(err)
			if e == nil {
				t.Fatalf("error is %T, want *gateway.Error", err)
			}
			if _, ok := e.Details[tt.wantField]; !ok {
				t.Errorf("Details = %v, want field %q", e.Details, tt.wantField)
			}
		})
	}
}

func TestValidateNewPost(t *testing.T) {
	valid := model.CreatePostRequest{
		Title:     "My first post",
		Content:   "Some content long enough to pass",
		MediaURL:  "https://media.example.com/pic.jpg",
		MediaType: model.MediaImage,
	}

	t.Run("valid post passes", func(t *testing.T) {
		if err := blog.ValidateNewPost(valid); err != nil {
			t.Errorf("ValidateNewPost() error = %v, want nil", err)
		}
	})

	tests := []struct {
		name      string
		mutate    func(r *model.CreatePostRequest)
		wantField string
	}{
		{"short title", func(r *model.CreatePostRequest) { r.Title = "ab" }, "title"},
		{"title with angle bracket", func(r *model.CreatePostRequest) { r.Title = "bad <title>" }, "title"},
		{"short content", func(r *model.CreatePostRequest) { r.Content = "too short" }, "content"},
		{"content with quote", func(r *model.CreatePostRequest) { r.Content = `content with "quotes" inside` }, "content"},
		{"missing media url", func(r *model.CreatePostRequest) { r.MediaURL = "" }, "mediaUrl"},
		{"media url wrong extension", func(r *model.CreatePostRequest) { r.MediaURL = "https://x.example/file.pdf" }, "mediaUrl"},
		{"media url not http", func(r *model.CreatePostRequest) { r.MediaURL = "ftp://x.example/file.jpg" }, "mediaUrl"},
		{"bad media type", func(r *model.CreatePostRequest) { r.MediaType = "audio" }, "mediaType"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)
			err := blog.ValidateNewPost(req)
			e := gateway.AsError(err)
			if e == nil || e.Kind != gateway.KindValidation {
				t.Fatalf("ValidateNewPost() = %v, want validation error", err)
			}
			if _, ok := e.Details[tt.wantField]; !ok {
				t.Errorf("Details = %v, want field %q", e.Details, tt.wantField)
			}
		})
	}
}

func TestValidatePostUpdate(t *testing.T) {
	t.Run("empty update passes, fields left alone", func(t *testing.T) {
		if err := blog.ValidatePostUpdate(model.UpdatePostRequest{}); err != nil {
			t.Errorf("ValidatePostUpdate() error = %v, want nil", err)
		}
	})

	t.Run("set fields are checked", func(t *testing.T) {
		err := blog.ValidatePostUpdate(model.UpdatePostRequest{Title: "ab"})
		e := gateway.AsError(err)
		if e == nil || e.Kind != gateway.KindValidation {
			t.Fatalf("ValidatePostUpdate() = %v, want validation error", err)
		}
		if _, ok := e.Details["title"]; !ok {
			t.Errorf("Details = %v, want field title", e.Details)
		}
	})
}

func TestValidateComment(t *testing.T) {
	tests := []struct {
		name    string
		content string
		valid   bool
	}{
		{"valid", "nice post!", true},
		{"empty", "", false},
		{"whitespace only", "   ", false},
		{"too long", strings.Repeat("x", 1001), false},
		{"script characters", "hey <b>there</b>", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := blog.ValidateComment(tt.content)
			if tt.valid && err != nil {
				t.Errorf("ValidateComment(%q) error = %v, want nil", tt.content, err)
			}
			if !tt.valid && !gateway.IsValidation(err) {
				t.Errorf("ValidateComment(%q) = %v, want validation error", tt.content, err)
			}
		})
	}
}

func TestValidateResolveAction(t *testing.T) {
	for _, action := range []string{"RESOLVED", "DISMISSED"} {
		if err := blog.ValidateResolveAction(action); err != nil {
			t.Errorf("ValidateResolveAction(%q) error = %v, want nil", action, err)
		}
	}
	for _, action := range []string{"", "PENDING", "resolved", "CLOSE"} {
		if !gateway.IsValidation(blog.ValidateResolveAction(action)) {
			t.Errorf("ValidateResolveAction(%q) = nil, want validation error", action)
		}
	}
}
