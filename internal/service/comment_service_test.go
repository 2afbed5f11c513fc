package service

import (
	"context"
	"testing"

	"gallery-service/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCommentFixture(t *testing.T) (*memUsers, *memImages, *memComments, *CommentService) {
	t.Helper()
	users := &memUsers{}
	images := &memImages{}
	comments := &memComments{}
	return users, images, comments, NewCommentService(users, images, comments)
}

func TestPostComment(t *testing.T) {
	users, images, _, service := newCommentFixture(t)
	ctx := context.Background()

	_, err := users.Insert(ctx, &models.User{Username: "alice", ProfilePic: "a.png"})
	require.NoError(t, err)
	image, err := images.Insert(ctx, &models.Image{ImageURL: "http://blobs/images/cat.png"})
	require.NoError(t, err)

	comment, err := service.Post(ctx, "alice", &models.PostCommentRequest{
		ImageURL: image.ImageURL,
		Comment:  "nice cat",
	})
	require.NoError(t, err)
	assert.Equal(t, image.ID, comment.ImageID)
	assert.Equal(t, "alice", comment.UserName)
}

func TestPostCommentUnknownImage(t *testing.T) {
	users, _, _, service := newCommentFixture(t)
	ctx := context.Background()

	_, err := users.Insert(ctx, &models.User{Username: "alice"})
	require.NoError(t, err)

	_, err = service.Post(ctx, "alice", &models.PostCommentRequest{
		ImageURL: "http://blobs/images/ghost.png",
		Comment:  "hello?",
	})
	assert.ErrorIs(t, err, ErrImageNotFound)
}

func TestPostCommentUnknownUser(t *testing.T) {
	_, images, _, service := newCommentFixture(t)
	ctx := context.Background()

	image, err := images.Insert(ctx, &models.Image{ImageURL: "http://blobs/images/cat.png"})
	require.NoError(t, err)

	_, err = service.Post(ctx, "ghost", &models.PostCommentRequest{ImageURL: image.ImageURL, Comment: "hi"})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestListCommentsJoinsAuthorPics(t *testing.T) {
	users, images, comments, service := newCommentFixture(t)
	ctx := context.Background()

	_, err := users.Insert(ctx, &models.User{Username: "alice", ProfilePic: "a.png"})
	require.NoError(t, err)
	_, err = users.Insert(ctx, &models.User{Username: "bob", ProfilePic: "b.png"})
	require.NoError(t, err)
	image, err := images.Insert(ctx, &models.Image{ImageURL: "http://blobs/images/cat.png"})
	require.NoError(t, err)

	require.NoError(t, comments.Insert(ctx, &models.Comment{ImageID: image.ID, UserName: "alice", Comment: "first"}))
	require.NoError(t, comments.Insert(ctx, &models.Comment{ImageID: image.ID, UserName: "bob", Comment: "second"}))
	require.NoError(t, comments.Insert(ctx, &models.Comment{ImageID: image.ID, UserName: "alice", Comment: "third"}))

	entries, err := service.List(ctx, image.ImageURL)
	require.NoError(t, err)

	assert.Equal(t, []models.CommentEntry{
		{UserName: "alice", Comment: "first", ProfilePic: "a.png"},
		{UserName: "bob", Comment: "second", ProfilePic: "b.png"},
		{UserName: "alice", Comment: "third", ProfilePic: "a.png"},
	}, entries)
}

func TestEditComment(t *testing.T) {
	_, _, comments, service := newCommentFixture(t)
	ctx := context.Background()

	require.NoError(t, comments.Insert(ctx, &models.Comment{UserName: "alice", Comment: "typo"}))

	err := service.Edit(ctx, "alice", &models.EditCommentRequest{OldComment: "typo", NewComment: "fixed"})
	require.NoError(t, err)

	assert.Equal(t, "fixed", comments.comments[0].Comment)
}

func TestDeleteComment(t *testing.T) {
	_, _, comments, service := newCommentFixture(t)
	ctx := context.Background()

	require.NoError(t, comments.Insert(ctx, &models.Comment{UserName: "alice", Comment: "bye"}))
	require.NoError(t, service.Delete(ctx, "alice", "bye"))
	assert.Empty(t, comments.comments)
}
