package models

import (
	"go.mongodb.org/mongo-driver/v2/bson"
)

type Image struct {
	ID         bson.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID     bson.ObjectID `bson:"userId" json:"userId"`         // Owner's user ID
	ImageURL   string        `bson:"imageUrl" json:"imageUrl"`     // Public URL of the stored object
	ImageTitle string        `bson:"imageTitle" json:"imageTitle"` // Stored object name
}
