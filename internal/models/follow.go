package models

import (
	"go.mongodb.org/mongo-driver/v2/bson"
)

// Follow is a directed edge between two users, denormalized by username on
// both sides.
type Follow struct {
	ID       bson.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Follower string        `bson:"follower" json:"follower"`
	Followee string        `bson:"followee" json:"followee"`
}
