package repository

import (
	"context"
	"fmt"

	"gallery-service/internal/database/mongo"
	"gallery-service/internal/models"

	"go.mongodb.org/mongo-driver/v2/bson"
	mongodb "go.mongodb.org/mongo-driver/v2/mongo"
)

type ImageRepository struct {
	collection *mongodb.Collection
}

// NewImageRepository creates a new image repository
func NewImageRepository() *ImageRepository {
	return &ImageRepository{
		collection: mongo.GetCollection("images"),
	}
}

// Insert saves a new image record
func (r *ImageRepository) Insert(ctx context.Context, image *models.Image) (*models.Image, error) {
	result, err := r.collection.InsertOne(ctx, image)
	if err != nil {
		return nil, fmt.Errorf("failed to insert image: %w", err)
	}

	image.ID = result.InsertedID.(bson.ObjectID)
	return image, nil
}

// TitleExists reports whether a live image record already holds the given
// stored object name.
func (r *ImageRepository) TitleExists(ctx context.Context, title string) (bool, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"imageTitle": title})
	if err != nil {
		return false, fmt.Errorf("failed to count image titles: %w", err)
	}
	return count > 0, nil
}

// FindByURL retrieves an image by its public object URL. Returns (nil, nil)
// when no record references the URL.
func (r *ImageRepository) FindByURL(ctx context.Context, imageURL string) (*models.Image, error) {
	var image models.Image
	err := r.collection.FindOne(ctx, bson.M{"imageUrl": imageURL}).Decode(&image)
	if err != nil {
		if err == mongodb.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}

	return &image, nil
}

// FindByOwnerAndURL retrieves an image owned by the given user at the given
// URL. Returns (nil, nil) when absent.
func (r *ImageRepository) FindByOwnerAndURL(ctx context.Context, ownerID bson.ObjectID, imageURL string) (*models.Image, error) {
	var image models.Image
	err := r.collection.FindOne(ctx, bson.M{"userId": ownerID, "imageUrl": imageURL}).Decode(&image)
	if err != nil {
		if err == mongodb.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}

	return &image, nil
}

// FindByOwner retrieves all images owned by the given user.
func (r *ImageRepository) FindByOwner(ctx context.Context, ownerID bson.ObjectID) ([]*models.Image, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"userId": ownerID})
	if err != nil {
		return nil, fmt.Errorf("failed to find images: %w", err)
	}
	defer cursor.Close(ctx)

	var images []*models.Image
	if err = cursor.All(ctx, &images); err != nil {
		return nil, fmt.Errorf("failed to decode images: %w", err)
	}

	return images, nil
}

// DeleteByID removes a single image record.
func (r *ImageRepository) DeleteByID(ctx context.Context, id bson.ObjectID) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete image: %w", err)
	}

	return nil
}

// DeleteByOwner removes every image record owned by the given user.
func (r *ImageRepository) DeleteByOwner(ctx context.Context, ownerID bson.ObjectID) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"userId": ownerID})
	if err != nil {
		return fmt.Errorf("failed to delete images: %w", err)
	}

	return nil
}

func (r *ImageRepository) CreateIndexes(ctx context.Context) error {
	indexes := []mongodb.IndexModel{
		{
			Keys: bson.D{{Key: "userId", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "imageTitle", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "imageUrl", Value: 1}},
		},
	}

	_, err := r.collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		return fmt.Errorf("failed to create image indexes: %w", err)
	}

	return nil
}
