package service

import (
	"context"
	"fmt"
	"log"

	"gallery-service/pkg/utils"

	"github.com/google/uuid"
)

// TitleIndex answers whether a stored object name is already referenced by
// a live metadata record.
type TitleIndex interface {
	TitleExists(ctx context.Context, title string) (bool, error)
}

// ObjectNamer derives a storage-safe object name for an uploaded file. The
// proposed name is kept when no live record references it; otherwise a
// fresh unique name carrying the original extension is generated.
type ObjectNamer struct {
	titles TitleIndex
}

func NewObjectNamer(titles TitleIndex) *ObjectNamer {
	return &ObjectNamer{titles: titles}
}

// Resolve returns a name guaranteed not to collide with any currently
// referenced object. It performs a single existence check and has no side
// effects.
func (n *ObjectNamer) Resolve(ctx context.Context, fileName string) (string, error) {
	exists, err := n.titles.TitleExists(ctx, fileName)
	if err != nil {
		return "", fmt.Errorf("failed to check object name %s: %w", fileName, err)
	}

	if !exists {
		return fileName, nil
	}

	ext, err := utils.FileExtension(fileName)
	if err != nil {
		return "", err
	}

	unique := fmt.Sprintf("%s.%s", uuid.NewString(), ext)
	log.Printf("Object name %s already referenced, generated unique name %s", fileName, unique)
	return unique, nil
}

// profilePicTitles indexes profile-picture object names through the users
// collection: object URLs are deterministic, so a name is live iff some
// user's profilePic field holds its URL.
type profilePicTitles struct {
	users UserStore
	pics  BlobStore
}

func (t *profilePicTitles) TitleExists(ctx context.Context, title string) (bool, error) {
	return t.users.ProfilePicURLExists(ctx, t.pics.ObjectURL(title))
}
