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

type FollowRepository struct {
	collection *mongodb.Collection
}

// NewFollowRepository creates a new follow repository
func NewFollowRepository() *FollowRepository {
	return &FollowRepository{
		collection: mongo.GetCollection("followers"),
	}
}

// Insert saves a new follow edge
func (r *FollowRepository) Insert(ctx context.Context, follow *models.Follow) error {
	result, err := r.collection.InsertOne(ctx, follow)
	if err != nil {
		return fmt.Errorf("failed to insert follow edge: %w", err)
	}

	follow.ID = result.InsertedID.(bson.ObjectID)
	return nil
}

// Exists reports whether the (follower, followee) edge is present.
func (r *FollowRepository) Exists(ctx context.Context, follower, followee string) (bool, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"follower": follower, "followee": followee})
	if err != nil {
		return false, fmt.Errorf("failed to count follow edges: %w", err)
	}
	return count > 0, nil
}

// Delete removes the (follower, followee) edge. Returns
// mongo.ErrNoDocuments when the edge is absent.
func (r *FollowRepository) Delete(ctx context.Context, follower, followee string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"follower": follower, "followee": followee})
	if err != nil {
		return fmt.Errorf("failed to delete follow edge: %w", err)
	}

	if result.DeletedCount == 0 {
		return mongodb.ErrNoDocuments
	}

	return nil
}

// FindFollowing retrieves the edges where the given user is the follower.
func (r *FollowRepository) FindFollowing(ctx context.Context, follower string) ([]*models.Follow, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"follower": follower})
	if err != nil {
		return nil, fmt.Errorf("failed to find following: %w", err)
	}
	defer cursor.Close(ctx)

	var follows []*models.Follow
	if err = cursor.All(ctx, &follows); err != nil {
		return nil, fmt.Errorf("failed to decode follow edges: %w", err)
	}

	return follows, nil
}

// FindFollowers retrieves the edges where the given user is the followee.
func (r *FollowRepository) FindFollowers(ctx context.Context, followee string) ([]*models.Follow, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"followee": followee})
	if err != nil {
		return nil, fmt.Errorf("failed to find followers: %w", err)
	}
	defer cursor.Close(ctx)

	var follows []*models.Follow
	if err = cursor.All(ctx, &follows); err != nil {
		return nil, fmt.Errorf("failed to decode follow edges: %w", err)
	}

	return follows, nil
}

// RenameFollower rewrites the denormalized follower username on every edge
// matching the old name.
func (r *FollowRepository) RenameFollower(ctx context.Context, oldName, newName string) error {
	_, err := r.collection.UpdateMany(ctx,
		bson.M{"follower": oldName},
		bson.M{"$set": bson.M{"follower": newName}},
	)
	if err != nil {
		return fmt.Errorf("failed to rename follower: %w", err)
	}

	return nil
}

// RenameFollowee rewrites the denormalized followee username on every edge
// matching the old name.
func (r *FollowRepository) RenameFollowee(ctx context.Context, oldName, newName string) error {
	_, err := r.collection.UpdateMany(ctx,
		bson.M{"followee": oldName},
		bson.M{"$set": bson.M{"followee": newName}},
	)
	if err != nil {
		return fmt.Errorf("failed to rename followee: %w", err)
	}

	return nil
}

// DeleteByUser removes every edge where the given user appears on either
// side.
func (r *FollowRepository) DeleteByUser(ctx context.Context, username string) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"$or": []bson.M{
		{"follower": username},
		{"followee": username},
	}})
	if err != nil {
		return fmt.Errorf("failed to delete follow edges: %w", err)
	}

	return nil
}

func (r *FollowRepository) CreateIndexes(ctx context.Context) error {
	indexes := []mongodb.IndexModel{
		{
			Keys:    bson.D{{Key: "follower", Value: 1}, {Key: "followee", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "followee", Value: 1}},
		},
	}

	_, err := r.collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		return fmt.Errorf("failed to create follow indexes: %w", err)
	}

	return nil
}
