package service

import (
	"context"
	"fmt"
	"log"

	"gallery-service/internal/event"
	"gallery-service/internal/models"
)

// ImageService serves the userpage read model and single-image deletion.
type ImageService struct {
	users      UserStore
	images     ImageStore
	comments   CommentStore
	likes      LikeStore
	imageBlobs BlobStore
	publisher  event.Publisher
}

func NewImageService(users UserStore, images ImageStore, comments CommentStore, likes LikeStore, imageBlobs BlobStore, publisher event.Publisher) *ImageService {
	return &ImageService{
		users:      users,
		images:     images,
		comments:   comments,
		likes:      likes,
		imageBlobs: imageBlobs,
		publisher:  publisher,
	}
}

// ListUserImages returns the URLs of every image a user has posted plus
// their profile picture.
func (s *ImageService) ListUserImages(ctx context.Context, username string) (*models.UserpageResponse, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user %s: %w", username, err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	images, err := s.images.FindByOwner(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list images: %w", err)
	}

	imageURLs := make([]string, 0, len(images))
	for _, image := range images {
		imageURLs = append(imageURLs, image.ImageURL)
	}

	return &models.UserpageResponse{
		ImageURLs:  imageURLs,
		ProfilePic: user.ProfilePic,
	}, nil
}

// DeleteImage removes one of the user's images: its comments and likes,
// its blob object, then the image record itself.
func (s *ImageService) DeleteImage(ctx context.Context, username, imageURL string) error {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return fmt.Errorf("failed to look up user %s: %w", username, err)
	}
	if user == nil {
		return ErrUserNotFound
	}

	image, err := s.images.FindByOwnerAndURL(ctx, user.ID, imageURL)
	if err != nil {
		return fmt.Errorf("failed to look up image: %w", err)
	}
	if image == nil {
		return ErrImageNotFound
	}

	if err := s.comments.DeleteByImageID(ctx, image.ID); err != nil {
		return fmt.Errorf("failed to delete image comments: %w", err)
	}

	if err := s.likes.DeleteByImageID(ctx, image.ID); err != nil {
		return fmt.Errorf("failed to delete image likes: %w", err)
	}

	if err := s.imageBlobs.Delete(ctx, image.ImageTitle); err != nil {
		return fmt.Errorf("failed to delete image object %s: %w", image.ImageTitle, err)
	}

	if err := s.images.DeleteByID(ctx, image.ID); err != nil {
		return fmt.Errorf("failed to delete image record: %w", err)
	}
	log.Printf("Deleted image %s and its comments for user %s", image.ImageTitle, username)

	if s.publisher != nil {
		if err := s.publisher.PublishImageDeleted(ctx, username, imageURL); err != nil {
			log.Printf("Error publishing image deleted event: %v", err)
		}
	}

	return nil
}
