package repository

import (
	"context"
	"fmt"

	"gallery-service/internal/database/mongo"
	"gallery-service/internal/models"

	"go.mongodb.org/mongo-driver/v2/bson"
	mongodb "go.mongodb.org/mongo-driver/v2/mongo"
)

type CommentRepository struct {
	collection *mongodb.Collection
}

// NewCommentRepository creates a new comment repository
func NewCommentRepository() *CommentRepository {
	return &CommentRepository{
		collection: mongo.GetCollection("comments"),
	}
}

// Insert saves a new comment
func (r *CommentRepository) Insert(ctx context.Context, comment *models.Comment) error {
	result, err := r.collection.InsertOne(ctx, comment)
	if err != nil {
		return fmt.Errorf("failed to insert comment: %w", err)
	}

	comment.ID = result.InsertedID.(bson.ObjectID)
	return nil
}

// FindByImageID retrieves all comments on an image.
func (r *CommentRepository) FindByImageID(ctx context.Context, imageID bson.ObjectID) ([]*models.Comment, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"imageId": imageID})
	if err != nil {
		return nil, fmt.Errorf("failed to find comments: %w", err)
	}
	defer cursor.Close(ctx)

	var comments []*models.Comment
	if err = cursor.All(ctx, &comments); err != nil {
		return nil, fmt.Errorf("failed to decode comments: %w", err)
	}

	return comments, nil
}

// RenameAuthor rewrites the denormalized author username on every comment
// matching the old name. Running it again after the rewrite is a no-op.
func (r *CommentRepository) RenameAuthor(ctx context.Context, oldName, newName string) error {
	_, err := r.collection.UpdateMany(ctx,
		bson.M{"userName": oldName},
		bson.M{"$set": bson.M{"userName": newName}},
	)
	if err != nil {
		return fmt.Errorf("failed to rename comment author: %w", err)
	}

	return nil
}

// UpdateText replaces the text of a user's comment.
func (r *CommentRepository) UpdateText(ctx context.Context, userName, oldText, newText string) error {
	_, err := r.collection.UpdateOne(ctx,
		bson.M{"userName": userName, "comment": oldText},
		bson.M{"$set": bson.M{"comment": newText}},
	)
	if err != nil {
		return fmt.Errorf("failed to update comment: %w", err)
	}

	return nil
}

// DeleteOne removes a user's comment by its text.
func (r *CommentRepository) DeleteOne(ctx context.Context, userName, text string) error {
	err := r.collection.FindOneAndDelete(ctx, bson.M{"userName": userName, "comment": text}).Err()
	if err != nil {
		if err == mongodb.ErrNoDocuments {
			return nil
		}
		return fmt.Errorf("failed to delete comment: %w", err)
	}

	return nil
}

// DeleteByImageID removes every comment on an image.
func (r *CommentRepository) DeleteByImageID(ctx context.Context, imageID bson.ObjectID) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"imageId": imageID})
	if err != nil {
		return fmt.Errorf("failed to delete comments: %w", err)
	}

	return nil
}

// DeleteByImageIDs removes every comment on any of the given images.
func (r *CommentRepository) DeleteByImageIDs(ctx context.Context, imageIDs []bson.ObjectID) error {
	if len(imageIDs) == 0 {
		return nil
	}

	_, err := r.collection.DeleteMany(ctx, bson.M{"imageId": bson.M{"$in": imageIDs}})
	if err != nil {
		return fmt.Errorf("failed to delete comments: %w", err)
	}

	return nil
}

// DeleteByAuthor removes every comment authored by the given user.
func (r *CommentRepository) DeleteByAuthor(ctx context.Context, userName string) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"userName": userName})
	if err != nil {
		return fmt.Errorf("failed to delete comments: %w", err)
	}

	return nil
}

func (r *CommentRepository) CreateIndexes(ctx context.Context) error {
	indexes := []mongodb.IndexModel{
		{
			Keys: bson.D{{Key: "imageId", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "userName", Value: 1}},
		},
	}

	_, err := r.collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		return fmt.Errorf("failed to create comment indexes: %w", err)
	}

	return nil
}
