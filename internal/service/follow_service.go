package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"gallery-service/internal/models"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"golang.org/x/sync/errgroup"
)

// FollowService manages directed follow edges between users.
type FollowService struct {
	users   UserStore
	follows FollowStore
}

func NewFollowService(users UserStore, follows FollowStore) *FollowService {
	return &FollowService{
		users:   users,
		follows: follows,
	}
}

// Follow adds a (follower, followee) edge. Both users must exist and the
// edge must not already be present.
func (s *FollowService) Follow(ctx context.Context, username, followeeName string) error {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return fmt.Errorf("failed to look up user %s: %w", username, err)
	}
	followee, err := s.users.FindByUsername(ctx, followeeName)
	if err != nil {
		return fmt.Errorf("failed to look up user %s: %w", followeeName, err)
	}
	if user == nil || followee == nil {
		return ErrUserNotFound
	}

	exists, err := s.follows.Exists(ctx, username, followeeName)
	if err != nil {
		return fmt.Errorf("failed to check follow edge: %w", err)
	}
	if exists {
		return ErrAlreadyFollowing
	}

	if err := s.follows.Insert(ctx, &models.Follow{Follower: username, Followee: followeeName}); err != nil {
		return fmt.Errorf("failed to follow %s: %w", followeeName, err)
	}
	log.Printf("%s now follows %s", username, followeeName)

	return nil
}

// Unfollow removes the (follower, followee) edge.
func (s *FollowService) Unfollow(ctx context.Context, username, followeeName string) error {
	err := s.follows.Delete(ctx, username, followeeName)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrFollowNotFound
		}
		return fmt.Errorf("failed to unfollow %s: %w", followeeName, err)
	}

	return nil
}

// ListFollowers returns the user's following and follower lists, each
// entry joined with that user's profile picture. The two profile fan-out
// reads are independent and run concurrently.
func (s *FollowService) ListFollowers(ctx context.Context, username string) (*models.FollowersResponse, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user %s: %w", username, err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	following, err := s.follows.FindFollowing(ctx, user.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to list following: %w", err)
	}
	followers, err := s.follows.FindFollowers(ctx, user.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to list followers: %w", err)
	}

	followeeNames := make([]string, 0, len(following))
	for _, f := range following {
		followeeNames = append(followeeNames, f.Followee)
	}
	followerNames := make([]string, 0, len(followers))
	for _, f := range followers {
		followerNames = append(followerNames, f.Follower)
	}

	var followingProfiles, followerProfiles []*models.User
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		followingProfiles, err = s.users.FindByUsernames(gctx, followeeNames)
		return err
	})
	g.Go(func() error {
		var err error
		followerProfiles, err = s.users.FindByUsernames(gctx, followerNames)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to fetch profiles: %w", err)
	}

	return &models.FollowersResponse{
		Following:      joinProfilePics(followeeNames, followingProfiles),
		FollowingCount: len(following),
		Followers:      joinProfilePics(followerNames, followerProfiles),
		FollowersCount: len(followers),
	}, nil
}

func joinProfilePics(usernames []string, profiles []*models.User) []models.FollowEntry {
	pics := make(map[string]string, len(profiles))
	for _, p := range profiles {
		pics[p.Username] = p.ProfilePic
	}

	entries := make([]models.FollowEntry, 0, len(usernames))
	for _, name := range usernames {
		entries = append(entries, models.FollowEntry{
			Username:   name,
			ProfilePic: pics[name],
		})
	}
	return entries
}
