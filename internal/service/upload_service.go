package service

import (
	"context"
	"fmt"
	"io"
	"log"

	"gallery-service/internal/event"
	"gallery-service/internal/models"
	"gallery-service/pkg/utils"
)

// UploadService commits a binary payload and its metadata record as one
// logical unit. The two stores share no transaction, so the steps are
// ordered: the payload is fully committed to blob storage before any
// metadata write, and superseded objects are removed only after the new
// state is in place.
type UploadService struct {
	users           UserStore
	images          ImageStore
	imageBlobs      BlobStore
	profilePicBlobs BlobStore
	imageNamer      *ObjectNamer
	profilePicNamer *ObjectNamer
	cache           Cache
	publisher       event.Publisher
	defaultPicURL   string
}

func NewUploadService(users UserStore, images ImageStore, imageBlobs, profilePicBlobs BlobStore, cache Cache, publisher event.Publisher, defaultPicURL string) *UploadService {
	return &UploadService{
		users:           users,
		images:          images,
		imageBlobs:      imageBlobs,
		profilePicBlobs: profilePicBlobs,
		imageNamer:      NewObjectNamer(images),
		profilePicNamer: NewObjectNamer(&profilePicTitles{users: users, pics: profilePicBlobs}),
		cache:           cache,
		publisher:       publisher,
		defaultPicURL:   defaultPicURL,
	}
}

// PostImage uploads a new image post for the given user and inserts its
// metadata record.
func (s *UploadService) PostImage(ctx context.Context, username, fileName string, payload io.Reader) (*models.Image, error) {
	contentType, err := utils.ImageContentType(fileName)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedMediaType, err)
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user %s: %w", username, err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	objectName, err := s.imageNamer.Resolve(ctx, fileName)
	if err != nil {
		return nil, err
	}

	if err := s.streamObject(ctx, s.imageBlobs, objectName, contentType, payload); err != nil {
		return nil, err
	}

	image := &models.Image{
		UserID:     user.ID,
		ImageURL:   s.imageBlobs.ObjectURL(objectName),
		ImageTitle: objectName,
	}

	// Metadata is written only after the object is fully committed, so a
	// record never points at a missing object. If this write fails the
	// committed object becomes a tolerated orphan.
	created, err := s.images.Insert(ctx, image)
	if err != nil {
		return nil, fmt.Errorf("%w: metadata write: %v", ErrUploadFailed, err)
	}
	log.Printf("Uploaded image %s for user %s", objectName, username)

	if s.publisher != nil {
		if err := s.publisher.PublishImageUploaded(ctx, username, created.ImageURL); err != nil {
			log.Printf("Error publishing image uploaded event: %v", err)
		}
	}

	return created, nil
}

// ReplaceProfilePic uploads a new profile picture for the given user,
// points the user record at it and removes the superseded object. The
// well-known default picture is never deleted.
func (s *UploadService) ReplaceProfilePic(ctx context.Context, username, fileName string, payload io.Reader) (string, error) {
	contentType, err := utils.ImageContentType(fileName)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnsupportedMediaType, err)
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return "", fmt.Errorf("failed to look up user %s: %w", username, err)
	}
	if user == nil {
		return "", ErrUserNotFound
	}

	objectName, err := s.profilePicNamer.Resolve(ctx, fileName)
	if err != nil {
		return "", err
	}

	if err := s.streamObject(ctx, s.profilePicBlobs, objectName, contentType, payload); err != nil {
		return "", err
	}

	newPicURL := s.profilePicBlobs.ObjectURL(objectName)
	if err := s.users.UpdateProfilePic(ctx, username, newPicURL); err != nil {
		return "", fmt.Errorf("%w: metadata write: %v", ErrUploadFailed, err)
	}

	// The superseded object goes last: failing to remove it leaves an
	// orphan, never a dangling reference.
	if user.ProfilePic != "" && user.ProfilePic != s.defaultPicURL {
		superseded := utils.ObjectNameFromURL(user.ProfilePic)
		if err := s.profilePicBlobs.Delete(ctx, superseded); err != nil {
			log.Printf("Warning: failed to delete superseded profile pic %s: %v", superseded, err)
		} else {
			log.Printf("Deleted superseded profile pic %s for user %s", superseded, username)
		}
	}

	if s.cache != nil {
		if err := s.cache.DeleteKey(ctx, profilePicCacheKey+username); err != nil {
			log.Printf("Error invalidating profile pic cache for %s: %v", username, err)
		}
	}

	if s.publisher != nil {
		if err := s.publisher.PublishAvatarUpdated(ctx, username, newPicURL); err != nil {
			log.Printf("Error publishing avatar updated event: %v", err)
		}
	}

	return newPicURL, nil
}

// streamObject opens an upload session, streams the whole payload and
// completes the transfer. Any failure reports ErrUploadFailed and leaves no
// metadata behind.
func (s *UploadService) streamObject(ctx context.Context, blobs BlobStore, objectName, contentType string, payload io.Reader) error {
	session, err := blobs.OpenUpload(ctx, objectName, contentType)
	if err != nil {
		return fmt.Errorf("%w: open session: %v", ErrUploadFailed, err)
	}

	if _, err := io.Copy(session, payload); err != nil {
		abortUpload(session, err)
		return fmt.Errorf("%w: write: %v", ErrUploadFailed, err)
	}

	if err := session.Close(); err != nil {
		return fmt.Errorf("%w: complete session: %v", ErrUploadFailed, err)
	}

	return nil
}

// abortUpload tears a session down after a mid-stream failure. Sessions
// with an abort path fail the transfer outright so no partial object is
// committed under the resolved name.
func abortUpload(session UploadSession, cause error) {
	type closeAborter interface {
		CloseWithError(error) error
	}
	if a, ok := session.(closeAborter); ok {
		a.CloseWithError(cause)
		return
	}
	session.Close()
}
