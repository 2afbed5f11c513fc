package service

import (
	"errors"
	"fmt"
)

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrImageNotFound  = errors.New("image not found")
	ErrFollowNotFound = errors.New("follow relationship not found")
	ErrLikeNotFound   = errors.New("like not found")

	ErrUsernameTaken    = errors.New("username is already taken")
	ErrEmailInUse       = errors.New("email is already in use")
	ErrAlreadyFollowing = errors.New("already following this user")
	ErrAlreadyLiked     = errors.New("image already liked")

	ErrUnsupportedMediaType = errors.New("unsupported media type")
	ErrUploadFailed         = errors.New("upload failed")
)

// CascadeError reports which cascade step failed after prior steps had
// already committed. The orchestrator can be re-invoked safely; completed
// steps become no-ops.
type CascadeError struct {
	Step string
	Err  error
}

func (e *CascadeError) Error() string {
	return fmt.Sprintf("cascade step %q failed: %v", e.Step, e.Err)
}

func (e *CascadeError) Unwrap() error {
	return e.Err
}
