package service

import (
	"context"
	"fmt"

	"gallery-service/internal/models"
)

// CommentService manages comments on images. The author's username is
// denormalized onto each comment.
type CommentService struct {
	users    UserStore
	images   ImageStore
	comments CommentStore
}

func NewCommentService(users UserStore, images ImageStore, comments CommentStore) *CommentService {
	return &CommentService{
		users:    users,
		images:   images,
		comments: comments,
	}
}

// Post adds a comment on the image at the given URL.
func (s *CommentService) Post(ctx context.Context, username string, req *models.PostCommentRequest) (*models.Comment, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user %s: %w", username, err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	image, err := s.images.FindByURL(ctx, req.ImageURL)
	if err != nil {
		return nil, fmt.Errorf("failed to look up image: %w", err)
	}
	if image == nil {
		return nil, ErrImageNotFound
	}

	comment := &models.Comment{
		ImageID:  image.ID,
		UserName: user.Username,
		Comment:  req.Comment,
	}
	if err := s.comments.Insert(ctx, comment); err != nil {
		return nil, fmt.Errorf("failed to post comment: %w", err)
	}

	return comment, nil
}

// List returns the comments on an image joined with each author's profile
// picture.
func (s *CommentService) List(ctx context.Context, imageURL string) ([]models.CommentEntry, error) {
	image, err := s.images.FindByURL(ctx, imageURL)
	if err != nil {
		return nil, fmt.Errorf("failed to look up image: %w", err)
	}
	if image == nil {
		return nil, ErrImageNotFound
	}

	comments, err := s.comments.FindByImageID(ctx, image.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}

	authors := make([]string, 0, len(comments))
	seen := make(map[string]bool, len(comments))
	for _, c := range comments {
		if !seen[c.UserName] {
			seen[c.UserName] = true
			authors = append(authors, c.UserName)
		}
	}

	profiles, err := s.users.FindByUsernames(ctx, authors)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch comment authors: %w", err)
	}
	pics := make(map[string]string, len(profiles))
	for _, p := range profiles {
		pics[p.Username] = p.ProfilePic
	}

	entries := make([]models.CommentEntry, 0, len(comments))
	for _, c := range comments {
		entries = append(entries, models.CommentEntry{
			UserName:   c.UserName,
			Comment:    c.Comment,
			ProfilePic: pics[c.UserName],
		})
	}

	return entries, nil
}

// Edit replaces the text of the user's comment.
func (s *CommentService) Edit(ctx context.Context, username string, req *models.EditCommentRequest) error {
	if err := s.comments.UpdateText(ctx, username, req.OldComment, req.NewComment); err != nil {
		return fmt.Errorf("failed to edit comment: %w", err)
	}
	return nil
}

// Delete removes the user's comment by its text.
func (s *CommentService) Delete(ctx context.Context, username, text string) error {
	if err := s.comments.DeleteOne(ctx, username, text); err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	return nil
}
