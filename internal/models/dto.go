package models

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UpdateIdentityRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

type FollowRequest struct {
	FolloweeName string `json:"followeeName"`
}

type LikeRequest struct {
	ImageURL string `json:"imageUrl"`
}

type PostCommentRequest struct {
	ImageURL string `json:"imageUrl"`
	Comment  string `json:"comment"`
}

type EditCommentRequest struct {
	OldComment string `json:"oldComment"`
	NewComment string `json:"newComment"`
}

// UserpageResponse is the userpage read model: the user's image URLs plus
// their current profile picture.
type UserpageResponse struct {
	ImageURLs  []string `json:"imageUrls"`
	ProfilePic string   `json:"profilePic"`
}

// FollowEntry pairs a username from a follow edge with that user's profile
// picture.
type FollowEntry struct {
	Username   string `json:"username"`
	ProfilePic string `json:"profilePic"`
}

type FollowersResponse struct {
	Following      []FollowEntry `json:"following"`
	FollowingCount int           `json:"followingCount"`
	Followers      []FollowEntry `json:"followers"`
	FollowersCount int           `json:"followersCount"`
}

// CommentEntry is a comment joined with its author's profile picture.
type CommentEntry struct {
	UserName   string `json:"userName"`
	Comment    string `json:"comment"`
	ProfilePic string `json:"profilePic"`
}
