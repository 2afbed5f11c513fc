package service

import (
	"bytes"
	"context"
	"fmt"
	"sync"

	"gallery-service/internal/models"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

// In-memory stores standing in for the mongo repositories and minio buckets.

type memUsers struct {
	mu    sync.Mutex
	users []*models.User
}

func (m *memUsers) Insert(ctx context.Context, user *models.User) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u := *user
	u.ID = bson.NewObjectID()
	m.users = append(m.users, &u)
	return &u, nil
}

func (m *memUsers) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Username == username {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (m *memUsers) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (m *memUsers) FindByUsernames(ctx context.Context, usernames []string) ([]*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	wanted := make(map[string]bool, len(usernames))
	for _, name := range usernames {
		wanted[name] = true
	}
	var out []*models.User
	for _, u := range m.users {
		if wanted[u.Username] {
			copied := *u
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (m *memUsers) UpdateIdentity(ctx context.Context, username, newUsername, newEmail string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Username == username {
			u.Username = newUsername
			u.Email = newEmail
			return nil
		}
	}
	return mongo.ErrNoDocuments
}

func (m *memUsers) UpdateProfilePic(ctx context.Context, username, picURL string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Username == username {
			u.ProfilePic = picURL
			return nil
		}
	}
	return mongo.ErrNoDocuments
}

func (m *memUsers) ProfilePicURLExists(ctx context.Context, picURL string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.ProfilePic == picURL {
			return true, nil
		}
	}
	return false, nil
}

func (m *memUsers) DeleteByUsername(ctx context.Context, username string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, u := range m.users {
		if u.Username == username {
			m.users = append(m.users[:i], m.users[i+1:]...)
			return nil
		}
	}
	return nil
}

type memImages struct {
	mu        sync.Mutex
	images    []*models.Image
	insertErr error
}

func (m *memImages) Insert(ctx context.Context, image *models.Image) (*models.Image, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.insertErr != nil {
		return nil, m.insertErr
	}
	img := *image
	img.ID = bson.NewObjectID()
	m.images = append(m.images, &img)
	return &img, nil
}

func (m *memImages) TitleExists(ctx context.Context, title string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, img := range m.images {
		if img.ImageTitle == title {
			return true, nil
		}
	}
	return false, nil
}

func (m *memImages) FindByURL(ctx context.Context, imageURL string) (*models.Image, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, img := range m.images {
		if img.ImageURL == imageURL {
			copied := *img
			return &copied, nil
		}
	}
	return nil, nil
}

func (m *memImages) FindByOwnerAndURL(ctx context.Context, ownerID bson.ObjectID, imageURL string) (*models.Image, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, img := range m.images {
		if img.UserID == ownerID && img.ImageURL == imageURL {
			copied := *img
			return &copied, nil
		}
	}
	return nil, nil
}

func (m *memImages) FindByOwner(ctx context.Context, ownerID bson.ObjectID) ([]*models.Image, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*models.Image
	for _, img := range m.images {
		if img.UserID == ownerID {
			copied := *img
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (m *memImages) DeleteByID(ctx context.Context, id bson.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, img := range m.images {
		if img.ID == id {
			m.images = append(m.images[:i], m.images[i+1:]...)
			return nil
		}
	}
	return nil
}

func (m *memImages) DeleteByOwner(ctx context.Context, ownerID bson.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.images[:0]
	for _, img := range m.images {
		if img.UserID != ownerID {
			kept = append(kept, img)
		}
	}
	m.images = kept
	return nil
}

type memComments struct {
	mu        sync.Mutex
	comments  []*models.Comment
	deleteErr error
}

func (m *memComments) Insert(ctx context.Context, comment *models.Comment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := *comment
	c.ID = bson.NewObjectID()
	m.comments = append(m.comments, &c)
	return nil
}

func (m *memComments) FindByImageID(ctx context.Context, imageID bson.ObjectID) ([]*models.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*models.Comment
	for _, c := range m.comments {
		if c.ImageID == imageID {
			copied := *c
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (m *memComments) RenameAuthor(ctx context.Context, oldName, newName string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.comments {
		if c.UserName == oldName {
			c.UserName = newName
		}
	}
	return nil
}

func (m *memComments) UpdateText(ctx context.Context, userName, oldText, newText string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.comments {
		if c.UserName == userName && c.Comment == oldText {
			c.Comment = newText
			return nil
		}
	}
	return mongo.ErrNoDocuments
}

func (m *memComments) DeleteOne(ctx context.Context, userName, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, c := range m.comments {
		if c.UserName == userName && c.Comment == text {
			m.comments = append(m.comments[:i], m.comments[i+1:]...)
			return nil
		}
	}
	return nil
}

func (m *memComments) DeleteByImageID(ctx context.Context, imageID bson.ObjectID) error {
	return m.DeleteByImageIDs(ctx, []bson.ObjectID{imageID})
}

func (m *memComments) DeleteByImageIDs(ctx context.Context, imageIDs []bson.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.deleteErr != nil {
		return m.deleteErr
	}
	doomed := make(map[bson.ObjectID]bool, len(imageIDs))
	for _, id := range imageIDs {
		doomed[id] = true
	}
	kept := m.comments[:0]
	for _, c := range m.comments {
		if !doomed[c.ImageID] {
			kept = append(kept, c)
		}
	}
	m.comments = kept
	return nil
}

func (m *memComments) DeleteByAuthor(ctx context.Context, userName string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.deleteErr != nil {
		return m.deleteErr
	}
	kept := m.comments[:0]
	for _, c := range m.comments {
		if c.UserName != userName {
			kept = append(kept, c)
		}
	}
	m.comments = kept
	return nil
}

type memFollows struct {
	mu              sync.Mutex
	follows         []*models.Follow
	deleteByUserErr error
}

func (m *memFollows) Insert(ctx context.Context, follow *models.Follow) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	f := *follow
	f.ID = bson.NewObjectID()
	m.follows = append(m.follows, &f)
	return nil
}

func (m *memFollows) Exists(ctx context.Context, follower, followee string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, f := range m.follows {
		if f.Follower == follower && f.Followee == followee {
			return true, nil
		}
	}
	return false, nil
}

func (m *memFollows) Delete(ctx context.Context, follower, followee string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, f := range m.follows {
		if f.Follower == follower && f.Followee == followee {
			m.follows = append(m.follows[:i], m.follows[i+1:]...)
			return nil
		}
	}
	return mongo.ErrNoDocuments
}

func (m *memFollows) FindFollowing(ctx context.Context, follower string) ([]*models.Follow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*models.Follow
	for _, f := range m.follows {
		if f.Follower == follower {
			copied := *f
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (m *memFollows) FindFollowers(ctx context.Context, followee string) ([]*models.Follow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*models.Follow
	for _, f := range m.follows {
		if f.Followee == followee {
			copied := *f
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (m *memFollows) RenameFollower(ctx context.Context, oldName, newName string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, f := range m.follows {
		if f.Follower == oldName {
			f.Follower = newName
		}
	}
	return nil
}

func (m *memFollows) RenameFollowee(ctx context.Context, oldName, newName string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, f := range m.follows {
		if f.Followee == oldName {
			f.Followee = newName
		}
	}
	return nil
}

func (m *memFollows) DeleteByUser(ctx context.Context, username string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.deleteByUserErr != nil {
		return m.deleteByUserErr
	}
	kept := m.follows[:0]
	for _, f := range m.follows {
		if f.Follower != username && f.Followee != username {
			kept = append(kept, f)
		}
	}
	m.follows = kept
	return nil
}

type memLikes struct {
	mu        sync.Mutex
	likes     []*models.Like
	renameErr error
}

func (m *memLikes) Insert(ctx context.Context, like *models.Like) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	l := *like
	l.ID = bson.NewObjectID()
	m.likes = append(m.likes, &l)
	return nil
}

func (m *memLikes) Exists(ctx context.Context, username, imageURL string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, l := range m.likes {
		if l.Username == username && l.ImageURL == imageURL {
			return true, nil
		}
	}
	return false, nil
}

func (m *memLikes) Delete(ctx context.Context, username, imageURL string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, l := range m.likes {
		if l.Username == username && l.ImageURL == imageURL {
			m.likes = append(m.likes[:i], m.likes[i+1:]...)
			return nil
		}
	}
	return mongo.ErrNoDocuments
}

func (m *memLikes) RenameUser(ctx context.Context, oldName, newName string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.renameErr != nil {
		return m.renameErr
	}
	for _, l := range m.likes {
		if l.Username == oldName {
			l.Username = newName
		}
	}
	return nil
}

func (m *memLikes) DeleteByUser(ctx context.Context, username string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.likes[:0]
	for _, l := range m.likes {
		if l.Username != username {
			kept = append(kept, l)
		}
	}
	m.likes = kept
	return nil
}

func (m *memLikes) DeleteByImageID(ctx context.Context, imageID bson.ObjectID) error {
	return m.DeleteByImageIDs(ctx, []bson.ObjectID{imageID})
}

func (m *memLikes) DeleteByImageIDs(ctx context.Context, imageIDs []bson.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	doomed := make(map[bson.ObjectID]bool, len(imageIDs))
	for _, id := range imageIDs {
		doomed[id] = true
	}
	kept := m.likes[:0]
	for _, l := range m.likes {
		if !doomed[l.ImageID] {
			kept = append(kept, l)
		}
	}
	m.likes = kept
	return nil
}

// memBlobs is an in-memory blob store. Objects become visible only when the
// upload session is closed, mirroring the commit-on-Close contract.
type memBlobs struct {
	mu        sync.Mutex
	base      string
	objects   map[string][]byte
	deletes   []string
	aborts    []string
	openErr   error
	deleteErr error
}

func newMemBlobs(base string) *memBlobs {
	return &memBlobs{
		base:    base,
		objects: make(map[string][]byte),
	}
}

type memUpload struct {
	buf   bytes.Buffer
	store *memBlobs
	name  string
}

func (u *memUpload) Write(p []byte) (int, error) {
	return u.buf.Write(p)
}

func (u *memUpload) Close() error {
	u.store.mu.Lock()
	defer u.store.mu.Unlock()
	u.store.objects[u.name] = u.buf.Bytes()
	return nil
}

func (u *memUpload) CloseWithError(err error) error {
	u.store.mu.Lock()
	defer u.store.mu.Unlock()
	u.store.aborts = append(u.store.aborts, u.name)
	return nil
}

func (m *memBlobs) OpenUpload(ctx context.Context, objectName, contentType string) (UploadSession, error) {
	if m.openErr != nil {
		return nil, m.openErr
	}
	return &memUpload{store: m, name: objectName}, nil
}

func (m *memBlobs) Delete(ctx context.Context, objectName string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.deleteErr != nil {
		return m.deleteErr
	}
	delete(m.objects, objectName)
	m.deletes = append(m.deletes, objectName)
	return nil
}

func (m *memBlobs) ObjectURL(objectName string) string {
	return fmt.Sprintf("%s/%s", m.base, objectName)
}
