package repository

import (
	"context"
	"fmt"

	"gallery-service/internal/database/mongo"
	"gallery-service/internal/models"

	"go.mongodb.org/mongo-driver/v2/bson"
	mongodb "go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type LikeRepository struct {
	collection *mongodb.Collection
}

// NewLikeRepository creates a new like repository
func NewLikeRepository() *LikeRepository {
	return &LikeRepository{
		collection: mongo.GetCollection("likes"),
	}
}

// Insert saves a new like
func (r *LikeRepository) Insert(ctx context.Context, like *models.Like) error {
	result, err := r.collection.InsertOne(ctx, like)
	if err != nil {
		return fmt.Errorf("failed to insert like: %w", err)
	}

	like.ID = result.InsertedID.(bson.ObjectID)
	return nil
}

// Exists reports whether the user has already liked the image.
func (r *LikeRepository) Exists(ctx context.Context, username, imageURL string) (bool, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"username": username, "imageUrl": imageURL})
	if err != nil {
		return false, fmt.Errorf("failed to count likes: %w", err)
	}
	return count > 0, nil
}

// Delete removes the user's like on an image. Returns mongo.ErrNoDocuments
// when no such like exists.
func (r *LikeRepository) Delete(ctx context.Context, username, imageURL string) error {
	err := r.collection.FindOneAndDelete(ctx, bson.M{"username": username, "imageUrl": imageURL}).Err()
	if err != nil {
		if err == mongodb.ErrNoDocuments {
			return mongodb.ErrNoDocuments
		}
		return fmt.Errorf("failed to delete like: %w", err)
	}

	return nil
}

// RenameUser rewrites the denormalized username on every like matching the
// old name.
func (r *LikeRepository) RenameUser(ctx context.Context, oldName, newName string) error {
	_, err := r.collection.UpdateMany(ctx,
		bson.M{"username": oldName},
		bson.M{"$set": bson.M{"username": newName}},
	)
	if err != nil {
		return fmt.Errorf("failed to rename like user: %w", err)
	}

	return nil
}

// DeleteByUser removes every like authored by the given user.
func (r *LikeRepository) DeleteByUser(ctx context.Context, username string) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"username": username})
	if err != nil {
		return fmt.Errorf("failed to delete likes: %w", err)
	}

	return nil
}

// DeleteByImageID removes every like on an image.
func (r *LikeRepository) DeleteByImageID(ctx context.Context, imageID bson.ObjectID) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"imageId": imageID})
	if err != nil {
		return fmt.Errorf("failed to delete likes: %w", err)
	}

	return nil
}

// DeleteByImageIDs removes every like on any of the given images.
func (r *LikeRepository) DeleteByImageIDs(ctx context.Context, imageIDs []bson.ObjectID) error {
	if len(imageIDs) == 0 {
		return nil
	}

	_, err := r.collection.DeleteMany(ctx, bson.M{"imageId": bson.M{"$in": imageIDs}})
	if err != nil {
		return fmt.Errorf("failed to delete likes: %w", err)
	}

	return nil
}

func (r *LikeRepository) CreateIndexes(ctx context.Context) error {
	indexes := []mongodb.IndexModel{
		{
			Keys:    bson.D{{Key: "username", Value: 1}, {Key: "imageUrl", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "imageId", Value: 1}},
		},
	}

	_, err := r.collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		return fmt.Errorf("failed to create like indexes: %w", err)
	}

	return nil
}
