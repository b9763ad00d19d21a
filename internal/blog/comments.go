package blog

import (
	"context"
	"fmt"
	"strings"

	"ob-go/internal/model"
)

// CommentService wraps the comment endpoints. It holds the PostService so a
// post's comment count moves in lockstep with comment creation and deletion.
type CommentService struct {
	gw    Gateway
	posts *PostService
	log   Logger
}

// NewCommentService creates a CommentService with the provided dependencies.
func NewCommentService(gw Gateway, posts *PostService, log Logger) *CommentService {
	return &CommentService{gw: gw, posts: posts, log: log}
}

// List fetches the comments of a post, oldest first.
func (s *CommentService) List(ctx context.Context, postID int64) ([]model.Comment, error) {
	var comments []model.Comment
	if err := s.gw.Get(ctx, fmt.Sprintf("/posts/%d/comments", postID), &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

// Add validates and creates a comment, bumping the post's comment count
// optimistically and rolling it back on failure.
func (s *CommentService) Add(ctx context.Context, postID int64, content string) (*model.Comment, error) {
	if err := ValidateComment(content); err != nil {
		return nil, err
	}

	restore := s.posts.adjustCommentCount(postID, +1)

	req := model.CreateCommentRequest{Content: strings.TrimSpace(content)}
	var comment model.Comment
	if err := s.gw.Post(ctx, fmt.Sprintf("/posts/%d/comments", postID), req, &comment); err != nil {
		restore()
		return nil, err
	}

	s.log.Info("comment created", "id", comment.ID, "post", postID)
	return &comment, nil
}

// Delete removes a comment. postID adjusts the owning post's comment count;
// pass 0 when the post is not in the feed.
func (s *CommentService) Delete(ctx context.Context, commentID, postID int64) error {
	restore := func() {}
	if postID != 0 {
		restore = s.posts.adjustCommentCount(postID, -1)
	}

	if err := s.gw.Delete(ctx, fmt.Sprintf("/comments/%d", commentID), nil); err != nil {
		restore()
		return err
	}

	s.log.Info("comment deleted", "id", commentID)
	return nil
}
