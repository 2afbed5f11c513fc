package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"gallery-service/internal/event"
	"gallery-service/internal/models"
	"gallery-service/pkg/utils"

	"go.mongodb.org/mongo-driver/v2/bson"
	"golang.org/x/crypto/bcrypt"
)

const profilePicCacheKey = "profile-pic-cached:"

// AccountService owns the user lifecycle: registration, identity changes
// and account deletion. Renames and deletions fan out across every
// collection that denormalizes the username, plus blob storage, without a
// shared transaction; see UpdateIdentity and DeleteAccount for the
// ordering contracts.
type AccountService struct {
	users           UserStore
	images          ImageStore
	comments        CommentStore
	follows         FollowStore
	likes           LikeStore
	imageBlobs      BlobStore
	profilePicBlobs BlobStore
	cache           Cache
	publisher       event.Publisher
	defaultPicURL   string
}

func NewAccountService(users UserStore, images ImageStore, comments CommentStore, follows FollowStore, likes LikeStore, imageBlobs, profilePicBlobs BlobStore, cache Cache, publisher event.Publisher, defaultPicURL string) *AccountService {
	return &AccountService{
		users:           users,
		images:          images,
		comments:        comments,
		follows:         follows,
		likes:           likes,
		imageBlobs:      imageBlobs,
		profilePicBlobs: profilePicBlobs,
		cache:           cache,
		publisher:       publisher,
		defaultPicURL:   defaultPicURL,
	}
}

// Register creates a new user with the well-known default profile picture.
func (s *AccountService) Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error) {
	existing, err := s.users.FindByUsername(ctx, req.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}
	if existing != nil {
		return nil, ErrUsernameTaken
	}

	existing, err = s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if existing != nil {
		return nil, ErrEmailInUse
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), 10)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:   req.Username,
		Email:      req.Email,
		Password:   string(hashed),
		ProfilePic: s.defaultPicURL,
	}

	created, err := s.users.Insert(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	log.Printf("Created user %s", created.Username)

	if s.publisher != nil {
		if err := s.publisher.PublishUserCreated(ctx, created.Username); err != nil {
			log.Printf("Error publishing user created event: %v", err)
		}
	}

	return created, nil
}

// GetProfilePic returns the user's current profile picture URL, served
// from the cache when possible.
func (s *AccountService) GetProfilePic(ctx context.Context, username string) (string, error) {
	if s.cache != nil {
		var cached string
		if err := s.cache.GetStructCached(ctx, profilePicCacheKey, username, &cached); err == nil {
			return cached, nil
		}
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return "", fmt.Errorf("failed to look up user %s: %w", username, err)
	}
	if user == nil {
		return "", ErrUserNotFound
	}

	if s.cache != nil {
		if _, err := s.cache.SaveStructCached(ctx, username, profilePicCacheKey, user.ProfilePic, 24); err != nil {
			log.Printf("Error caching profile pic for %s: %v", username, err)
		}
	}

	return user.ProfilePic, nil
}

// UpdateIdentity changes a user's username and/or email and propagates the
// new username to every denormalized reference. Blank proposals mean "no
// change". The canonical user record is updated first: a crash
// mid-propagation leaves stale denormalized copies, which a re-run of the
// same old->new pair repairs, rather than a wrong canonical record.
func (s *AccountService) UpdateIdentity(ctx context.Context, username, newUsername, newEmail string) (string, string, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return "", "", fmt.Errorf("failed to look up user %s: %w", username, err)
	}
	if user == nil {
		// A prior run may have moved the canonical record and then failed
		// mid-propagation. When the record already holds the proposed name,
		// resume the propagation instead of reporting a missing user.
		if strings.TrimSpace(newUsername) != "" {
			renamed, err := s.users.FindByUsername(ctx, newUsername)
			if err != nil {
				return "", "", fmt.Errorf("failed to check username: %w", err)
			}
			if renamed != nil {
				if err := s.propagateRename(ctx, username, newUsername); err != nil {
					return "", "", err
				}
				return renamed.Username, renamed.Email, nil
			}
		}
		return "", "", ErrUserNotFound
	}

	updatedUsername := user.Username
	if strings.TrimSpace(newUsername) != "" {
		updatedUsername = newUsername
	}
	updatedEmail := user.Email
	if strings.TrimSpace(newEmail) != "" {
		updatedEmail = newEmail
	}

	if updatedUsername != user.Username {
		other, err := s.users.FindByUsername(ctx, updatedUsername)
		if err != nil {
			return "", "", fmt.Errorf("failed to check username: %w", err)
		}
		if other != nil {
			return "", "", ErrUsernameTaken
		}
	}

	if updatedEmail != user.Email {
		other, err := s.users.FindByEmail(ctx, updatedEmail)
		if err != nil {
			return "", "", fmt.Errorf("failed to check email: %w", err)
		}
		if other != nil {
			return "", "", ErrEmailInUse
		}
	}

	if err := s.users.UpdateIdentity(ctx, username, updatedUsername, updatedEmail); err != nil {
		return "", "", fmt.Errorf("failed to update user record: %w", err)
	}

	if updatedUsername != user.Username {
		if err := s.propagateRename(ctx, username, updatedUsername); err != nil {
			return "", "", err
		}
	}

	log.Printf("Updated identity of %s to username=%s email=%s", username, updatedUsername, updatedEmail)
	return updatedUsername, updatedEmail, nil
}

// propagateRename rewrites every denormalized copy of the old username.
// The bulk rewrites key on the old value and are no-ops when nothing
// matches, so the propagation can be re-run after a partial failure.
func (s *AccountService) propagateRename(ctx context.Context, oldName, newName string) error {
	if err := s.comments.RenameAuthor(ctx, oldName, newName); err != nil {
		return fmt.Errorf("failed to propagate rename to comments: %w", err)
	}
	if err := s.follows.RenameFollower(ctx, oldName, newName); err != nil {
		return fmt.Errorf("failed to propagate rename to follower edges: %w", err)
	}
	if err := s.follows.RenameFollowee(ctx, oldName, newName); err != nil {
		return fmt.Errorf("failed to propagate rename to followee edges: %w", err)
	}
	if err := s.likes.RenameUser(ctx, oldName, newName); err != nil {
		return fmt.Errorf("failed to propagate rename to likes: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.DeleteKey(ctx, profilePicCacheKey+oldName); err != nil {
			log.Printf("Error invalidating profile pic cache for %s: %v", oldName, err)
		}
	}

	if s.publisher != nil {
		if err := s.publisher.PublishUserRenamed(ctx, oldName, newName); err != nil {
			log.Printf("Error publishing user renamed event: %v", err)
		}
	}

	return nil
}

// DeleteAccount removes a user and everything they exclusively own, plus
// the follow edges they participate in. Collection records are removed
// before blob objects, so a failed step leaves orphaned files rather than
// dangling metadata; the operation is re-runnable until the terminal state
// (no document mentions the username) is reached.
func (s *AccountService) DeleteAccount(ctx context.Context, username string) error {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return fmt.Errorf("failed to look up user %s: %w", username, err)
	}
	if user == nil {
		return ErrUserNotFound
	}

	images, err := s.images.FindByOwner(ctx, user.ID)
	if err != nil {
		return &CascadeError{Step: "enumerate-images", Err: err}
	}

	imageIDs := make([]bson.ObjectID, 0, len(images))
	for _, image := range images {
		imageIDs = append(imageIDs, image.ID)
	}

	if err := s.comments.DeleteByImageIDs(ctx, imageIDs); err != nil {
		return &CascadeError{Step: "delete-comments", Err: err}
	}
	if err := s.comments.DeleteByAuthor(ctx, username); err != nil {
		return &CascadeError{Step: "delete-comments", Err: err}
	}

	if err := s.follows.DeleteByUser(ctx, username); err != nil {
		return &CascadeError{Step: "delete-follow-edges", Err: err}
	}

	if err := s.likes.DeleteByImageIDs(ctx, imageIDs); err != nil {
		return &CascadeError{Step: "delete-likes", Err: err}
	}
	if err := s.likes.DeleteByUser(ctx, username); err != nil {
		return &CascadeError{Step: "delete-likes", Err: err}
	}

	if err := s.users.DeleteByUsername(ctx, username); err != nil {
		return &CascadeError{Step: "delete-user", Err: err}
	}

	if user.ProfilePic != "" && user.ProfilePic != s.defaultPicURL {
		picName := utils.ObjectNameFromURL(user.ProfilePic)
		if err := s.profilePicBlobs.Delete(ctx, picName); err != nil {
			return &CascadeError{Step: "delete-profile-pic-object", Err: err}
		}
	}

	for _, image := range images {
		if err := s.imageBlobs.Delete(ctx, image.ImageTitle); err != nil {
			return &CascadeError{Step: "delete-image-objects", Err: err}
		}
	}

	// Image records go last so a failed blob deletion above keeps them
	// enumerable for the retry.
	if err := s.images.DeleteByOwner(ctx, user.ID); err != nil {
		return &CascadeError{Step: "delete-image-records", Err: err}
	}

	if s.cache != nil {
		if err := s.cache.DeleteKey(ctx, profilePicCacheKey+username); err != nil {
			log.Printf("Error invalidating profile pic cache for %s: %v", username, err)
		}
	}

	if s.publisher != nil {
		if err := s.publisher.PublishUserDeleted(ctx, username); err != nil {
			log.Printf("Error publishing user deleted event: %v", err)
		}
	}

	log.Printf("Deleted user %s and all associated data", username)
	return nil
}
