package models

import (
	"go.mongodb.org/mongo-driver/v2/bson"
)

// Comment denormalizes the author's username; renames must be propagated here.
type Comment struct {
	ID       bson.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	ImageID  bson.ObjectID `bson:"imageId" json:"imageId"`
	UserName string        `bson:"userName" json:"userName"`
	Comment  string        `bson:"comment" json:"comment"`
}
