package service

import (
	"context"
	"errors"
	"fmt"

	"gallery-service/internal/models"

	"go.mongodb.org/mongo-driver/v2/mongo"
)

// LikeService manages likes; a user may hold at most one like per image.
type LikeService struct {
	images ImageStore
	likes  LikeStore
}

func NewLikeService(images ImageStore, likes LikeStore) *LikeService {
	return &LikeService{
		images: images,
		likes:  likes,
	}
}

// Like records the user's like on an image.
func (s *LikeService) Like(ctx context.Context, username, imageURL string) (*models.Like, error) {
	image, err := s.images.FindByURL(ctx, imageURL)
	if err != nil {
		return nil, fmt.Errorf("failed to look up image: %w", err)
	}
	if image == nil {
		return nil, ErrImageNotFound
	}

	exists, err := s.likes.Exists(ctx, username, imageURL)
	if err != nil {
		return nil, fmt.Errorf("failed to check like: %w", err)
	}
	if exists {
		return nil, ErrAlreadyLiked
	}

	like := &models.Like{
		ImageID:  image.ID,
		ImageURL: image.ImageURL,
		Username: username,
	}
	if err := s.likes.Insert(ctx, like); err != nil {
		return nil, fmt.Errorf("failed to like image: %w", err)
	}

	return like, nil
}

// Unlike removes the user's like on an image.
func (s *LikeService) Unlike(ctx context.Context, username, imageURL string) error {
	err := s.likes.Delete(ctx, username, imageURL)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrLikeNotFound
		}
		return fmt.Errorf("failed to unlike image: %w", err)
	}

	return nil
}
