package service

import (
	"context"
	"io"
	"time"

	"gallery-service/internal/models"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Storage contracts consumed by the services. The mongo-backed repositories
// and the minio-backed buckets satisfy them; tests substitute in-memory
// fakes.

type UserStore interface {
	Insert(ctx context.Context, user *models.User) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByUsernames(ctx context.Context, usernames []string) ([]*models.User, error)
	UpdateIdentity(ctx context.Context, username, newUsername, newEmail string) error
	UpdateProfilePic(ctx context.Context, username, picURL string) error
	ProfilePicURLExists(ctx context.Context, picURL string) (bool, error)
	DeleteByUsername(ctx context.Context, username string) error
}

type ImageStore interface {
	Insert(ctx context.Context, image *models.Image) (*models.Image, error)
	TitleExists(ctx context.Context, title string) (bool, error)
	FindByURL(ctx context.Context, imageURL string) (*models.Image, error)
	FindByOwnerAndURL(ctx context.Context, ownerID bson.ObjectID, imageURL string) (*models.Image, error)
	FindByOwner(ctx context.Context, ownerID bson.ObjectID) ([]*models.Image, error)
	DeleteByID(ctx context.Context, id bson.ObjectID) error
	DeleteByOwner(ctx context.Context, ownerID bson.ObjectID) error
}

type CommentStore interface {
	Insert(ctx context.Context, comment *models.Comment) error
	FindByImageID(ctx context.Context, imageID bson.ObjectID) ([]*models.Comment, error)
	RenameAuthor(ctx context.Context, oldName, newName string) error
	UpdateText(ctx context.Context, userName, oldText, newText string) error
	DeleteOne(ctx context.Context, userName, text string) error
	DeleteByImageID(ctx context.Context, imageID bson.ObjectID) error
	DeleteByImageIDs(ctx context.Context, imageIDs []bson.ObjectID) error
	DeleteByAuthor(ctx context.Context, userName string) error
}

type FollowStore interface {
	Insert(ctx context.Context, follow *models.Follow) error
	Exists(ctx context.Context, follower, followee string) (bool, error)
	Delete(ctx context.Context, follower, followee string) error
	FindFollowing(ctx context.Context, follower string) ([]*models.Follow, error)
	FindFollowers(ctx context.Context, followee string) ([]*models.Follow, error)
	RenameFollower(ctx context.Context, oldName, newName string) error
	RenameFollowee(ctx context.Context, oldName, newName string) error
	DeleteByUser(ctx context.Context, username string) error
}

type LikeStore interface {
	Insert(ctx context.Context, like *models.Like) error
	Exists(ctx context.Context, username, imageURL string) (bool, error)
	Delete(ctx context.Context, username, imageURL string) error
	RenameUser(ctx context.Context, oldName, newName string) error
	DeleteByUser(ctx context.Context, username string) error
	DeleteByImageID(ctx context.Context, imageID bson.ObjectID) error
	DeleteByImageIDs(ctx context.Context, imageIDs []bson.ObjectID) error
}

// UploadSession is an open transfer against blob storage. The object is
// committed only when Close returns nil.
type UploadSession = io.WriteCloser

type BlobStore interface {
	OpenUpload(ctx context.Context, objectName, contentType string) (UploadSession, error)
	Delete(ctx context.Context, objectName string) error
	ObjectURL(objectName string) string
}

type Cache interface {
	SaveStructCached(ctx context.Context, signature, key string, model any, expired time.Duration) (bool, error)
	GetStructCached(ctx context.Context, key, signature string, model any) error
	DeleteKey(ctx context.Context, key string) error
}
