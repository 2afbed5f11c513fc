package service

import (
	"context"
	"testing"

	"gallery-service/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFollowFixture(t *testing.T) (*memUsers, *memFollows, *FollowService) {
	t.Helper()
	users := &memUsers{}
	follows := &memFollows{}
	return users, follows, NewFollowService(users, follows)
}

func addTestUser(t *testing.T, users *memUsers, username, pic string) {
	t.Helper()
	_, err := users.Insert(context.Background(), &models.User{
		Username:   username,
		Email:      username + "@example.com",
		ProfilePic: pic,
	})
	require.NoError(t, err)
}

func TestFollow(t *testing.T) {
	users, follows, service := newFollowFixture(t)
	addTestUser(t, users, "alice", "a.png")
	addTestUser(t, users, "bob", "b.png")

	ctx := context.Background()
	require.NoError(t, service.Follow(ctx, "alice", "bob"))

	exists, err := follows.Exists(ctx, "alice", "bob")
	require.NoError(t, err)
	assert.True(t, exists)

	// The edge is directed.
	exists, err = follows.Exists(ctx, "bob", "alice")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestFollowDuplicate(t *testing.T) {
	users, _, service := newFollowFixture(t)
	addTestUser(t, users, "alice", "a.png")
	addTestUser(t, users, "bob", "b.png")

	ctx := context.Background()
	require.NoError(t, service.Follow(ctx, "alice", "bob"))

	err := service.Follow(ctx, "alice", "bob")
	assert.ErrorIs(t, err, ErrAlreadyFollowing)
}

func TestFollowUnknownUser(t *testing.T) {
	users, _, service := newFollowFixture(t)
	addTestUser(t, users, "alice", "a.png")

	err := service.Follow(context.Background(), "alice", "ghost")
	assert.ErrorIs(t, err, ErrUserNotFound)

	err = service.Follow(context.Background(), "ghost", "alice")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUnfollow(t *testing.T) {
	users, follows, service := newFollowFixture(t)
	addTestUser(t, users, "alice", "a.png")
	addTestUser(t, users, "bob", "b.png")

	ctx := context.Background()
	require.NoError(t, service.Follow(ctx, "alice", "bob"))
	require.NoError(t, service.Unfollow(ctx, "alice", "bob"))

	exists, err := follows.Exists(ctx, "alice", "bob")
	require.NoError(t, err)
	assert.False(t, exists)

	err = service.Unfollow(ctx, "alice", "bob")
	assert.ErrorIs(t, err, ErrFollowNotFound)
}

func TestListFollowersJoinsProfilePics(t *testing.T) {
	users, _, service := newFollowFixture(t)
	addTestUser(t, users, "alice", "a.png")
	addTestUser(t, users, "bob", "b.png")
	addTestUser(t, users, "carol", "c.png")

	ctx := context.Background()
	require.NoError(t, service.Follow(ctx, "alice", "bob"))
	require.NoError(t, service.Follow(ctx, "alice", "carol"))
	require.NoError(t, service.Follow(ctx, "bob", "alice"))

	resp, err := service.ListFollowers(ctx, "alice")
	require.NoError(t, err)

	assert.Equal(t, 2, resp.FollowingCount)
	assert.Equal(t, 1, resp.FollowersCount)
	assert.ElementsMatch(t, []models.FollowEntry{
		{Username: "bob", ProfilePic: "b.png"},
		{Username: "carol", ProfilePic: "c.png"},
	}, resp.Following)
	assert.Equal(t, []models.FollowEntry{
		{Username: "bob", ProfilePic: "b.png"},
	}, resp.Followers)
}

func TestListFollowersUnknownUser(t *testing.T) {
	_, _, service := newFollowFixture(t)

	_, err := service.ListFollowers(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
