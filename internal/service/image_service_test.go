package service

import (
	"context"
	"testing"

	"gallery-service/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type imageFixture struct {
	users      *memUsers
	images     *memImages
	comments   *memComments
	likes      *memLikes
	imageBlobs *memBlobs
	service    *ImageService
}

func newImageFixture(t *testing.T) *imageFixture {
	t.Helper()
	f := &imageFixture{
		users:      &memUsers{},
		images:     &memImages{},
		comments:   &memComments{},
		likes:      &memLikes{},
		imageBlobs: newMemBlobs("http://blobs/images"),
	}
	f.service = NewImageService(f.users, f.images, f.comments, f.likes, f.imageBlobs, nil)
	return f
}

func TestListUserImages(t *testing.T) {
	f := newImageFixture(t)
	ctx := context.Background()

	alice, err := f.users.Insert(ctx, &models.User{Username: "alice", ProfilePic: "a.png"})
	require.NoError(t, err)
	bob, err := f.users.Insert(ctx, &models.User{Username: "bob", ProfilePic: "b.png"})
	require.NoError(t, err)

	_, err = f.images.Insert(ctx, &models.Image{UserID: alice.ID, ImageURL: "http://blobs/images/cat.png"})
	require.NoError(t, err)
	_, err = f.images.Insert(ctx, &models.Image{UserID: alice.ID, ImageURL: "http://blobs/images/dog.png"})
	require.NoError(t, err)
	_, err = f.images.Insert(ctx, &models.Image{UserID: bob.ID, ImageURL: "http://blobs/images/bird.png"})
	require.NoError(t, err)

	page, err := f.service.ListUserImages(ctx, "alice")
	require.NoError(t, err)

	assert.Equal(t, "a.png", page.ProfilePic)
	assert.ElementsMatch(t, []string{"http://blobs/images/cat.png", "http://blobs/images/dog.png"}, page.ImageURLs)
}

func TestListUserImagesUnknownUser(t *testing.T) {
	f := newImageFixture(t)

	_, err := f.service.ListUserImages(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestDeleteImageCascades(t *testing.T) {
	f := newImageFixture(t)
	ctx := context.Background()

	alice, err := f.users.Insert(ctx, &models.User{Username: "alice"})
	require.NoError(t, err)

	f.imageBlobs.objects["cat.png"] = []byte("cat")
	image, err := f.images.Insert(ctx, &models.Image{
		UserID:     alice.ID,
		ImageURL:   f.imageBlobs.ObjectURL("cat.png"),
		ImageTitle: "cat.png",
	})
	require.NoError(t, err)

	require.NoError(t, f.comments.Insert(ctx, &models.Comment{ImageID: image.ID, UserName: "bob", Comment: "cute"}))
	require.NoError(t, f.likes.Insert(ctx, &models.Like{ImageID: image.ID, ImageURL: image.ImageURL, Username: "bob"}))

	require.NoError(t, f.service.DeleteImage(ctx, "alice", image.ImageURL))

	assert.Empty(t, f.comments.comments)
	assert.Empty(t, f.likes.likes)
	assert.NotContains(t, f.imageBlobs.objects, "cat.png")

	stored, err := f.images.FindByURL(ctx, image.ImageURL)
	require.NoError(t, err)
	assert.Nil(t, stored)
}

func TestDeleteImageNotOwned(t *testing.T) {
	f := newImageFixture(t)
	ctx := context.Background()

	_, err := f.users.Insert(ctx, &models.User{Username: "alice"})
	require.NoError(t, err)
	bob, err := f.users.Insert(ctx, &models.User{Username: "bob"})
	require.NoError(t, err)

	image, err := f.images.Insert(ctx, &models.Image{
		UserID:     bob.ID,
		ImageURL:   f.imageBlobs.ObjectURL("bird.png"),
		ImageTitle: "bird.png",
	})
	require.NoError(t, err)

	// Ownership is enforced: alice cannot delete bob's image.
	err = f.service.DeleteImage(ctx, "alice", image.ImageURL)
	assert.ErrorIs(t, err, ErrImageNotFound)
}
