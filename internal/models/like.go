package models

import (
	"go.mongodb.org/mongo-driver/v2/bson"
)

// Like references one image and one user, both by denormalized fields.
type Like struct {
	ID       bson.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	ImageID  bson.ObjectID `bson:"imageId" json:"imageId"`
	ImageURL string        `bson:"imageUrl" json:"imageUrl"`
	Username string        `bson:"username" json:"username"`
}
