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

type UserRepository struct {
	collection *mongodb.Collection
}

// NewUserRepository creates a new user repository
func NewUserRepository() *UserRepository {
	return &UserRepository{
		collection: mongo.GetCollection("users"),
	}
}

// Insert saves a new user
func (r *UserRepository) Insert(ctx context.Context, user *models.User) (*models.User, error) {
	result, err := r.collection.InsertOne(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}

	user.ID = result.InsertedID.(bson.ObjectID)
	return user, nil
}

// FindByUsername retrieves a user by username. Returns (nil, nil) when no
// user holds the name.
func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := r.collection.FindOne(ctx, bson.M{"username": username}).Decode(&user)
	if err != nil {
		if err == mongodb.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}

	return &user, nil
}

// FindByEmail retrieves a user by email. Returns (nil, nil) when no user
// holds the address.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if err == mongodb.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}

	return &user, nil
}

// FindByUsernames retrieves all users whose username is in the given set.
func (r *UserRepository) FindByUsernames(ctx context.Context, usernames []string) ([]*models.User, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"username": bson.M{"$in": usernames}})
	if err != nil {
		return nil, fmt.Errorf("failed to find users: %w", err)
	}
	defer cursor.Close(ctx)

	var users []*models.User
	if err = cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("failed to decode users: %w", err)
	}

	return users, nil
}

// UpdateIdentity rewrites the canonical username and email of a user.
func (r *UserRepository) UpdateIdentity(ctx context.Context, username, newUsername, newEmail string) error {
	result, err := r.collection.UpdateOne(ctx,
		bson.M{"username": username},
		bson.M{"$set": bson.M{"username": newUsername, "email": newEmail}},
	)
	if err != nil {
		return fmt.Errorf("failed to update user identity: %w", err)
	}

	if result.MatchedCount == 0 {
		return mongodb.ErrNoDocuments
	}

	return nil
}

// UpdateProfilePic points a user's profile picture at a new object URL.
func (r *UserRepository) UpdateProfilePic(ctx context.Context, username, picURL string) error {
	result, err := r.collection.UpdateOne(ctx,
		bson.M{"username": username},
		bson.M{"$set": bson.M{"profilePic": picURL}},
	)
	if err != nil {
		return fmt.Errorf("failed to update profile pic: %w", err)
	}

	if result.MatchedCount == 0 {
		return mongodb.ErrNoDocuments
	}

	return nil
}

// ProfilePicURLExists reports whether any live user references the given
// object URL as their profile picture.
func (r *UserRepository) ProfilePicURLExists(ctx context.Context, picURL string) (bool, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"profilePic": picURL})
	if err != nil {
		return false, fmt.Errorf("failed to count profile pic references: %w", err)
	}
	return count > 0, nil
}

// DeleteByUsername removes a user document.
func (r *UserRepository) DeleteByUsername(ctx context.Context, username string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"username": username})
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	return nil
}

func (r *UserRepository) CreateIndexes(ctx context.Context) error {
	indexes := []mongodb.IndexModel{
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	_, err := r.collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		return fmt.Errorf("failed to create user indexes: %w", err)
	}

	return nil
}
