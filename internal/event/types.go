package event

import "time"

type EventType string

const (
	EventTypeUserCreated   EventType = "user.created"
	EventTypeUserRenamed   EventType = "user.renamed"
	EventTypeUserDeleted   EventType = "user.deleted"
	EventTypeImageUploaded EventType = "image.uploaded"
	EventTypeImageDeleted  EventType = "image.deleted"
	EventTypeAvatarUpdated EventType = "avatar.updated"
)

type UserEvent struct {
	EventType EventType `json:"eventType"`
	Username  string    `json:"username"`
	// OldUsername is set on rename events only.
	OldUsername string    `json:"oldUsername,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}

type ImageEvent struct {
	EventType EventType `json:"eventType"`
	Username  string    `json:"username"`
	ImageURL  string    `json:"imageUrl"`
	Timestamp time.Time `json:"timestamp"`
}

func NewUserCreatedEvent(username string) *UserEvent {
	return &UserEvent{EventType: EventTypeUserCreated, Username: username, Timestamp: time.Now()}
}

func NewUserRenamedEvent(oldUsername, newUsername string) *UserEvent {
	return &UserEvent{EventType: EventTypeUserRenamed, Username: newUsername, OldUsername: oldUsername, Timestamp: time.Now()}
}

func NewUserDeletedEvent(username string) *UserEvent {
	return &UserEvent{EventType: EventTypeUserDeleted, Username: username, Timestamp: time.Now()}
}

func NewImageUploadedEvent(username, imageURL string) *ImageEvent {
	return &ImageEvent{EventType: EventTypeImageUploaded, Username: username, ImageURL: imageURL, Timestamp: time.Now()}
}

func NewImageDeletedEvent(username, imageURL string) *ImageEvent {
	return &ImageEvent{EventType: EventTypeImageDeleted, Username: username, ImageURL: imageURL, Timestamp: time.Now()}
}

func NewAvatarUpdatedEvent(username, imageURL string) *ImageEvent {
	return &ImageEvent{EventType: EventTypeAvatarUpdated, Username: username, ImageURL: imageURL, Timestamp: time.Now()}
}
