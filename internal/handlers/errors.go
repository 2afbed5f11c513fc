package handlers

import (
	"errors"

	"gallery-service/internal/service"

	"github.com/gofiber/fiber/v3"
)

// failWith maps a service error to its HTTP status and body.
func failWith(c fiber.Ctx, err error) error {
	var cascadeErr *service.CascadeError
	if errors.As(err, &cascadeErr) {
		// Enough detail to let the caller safely re-invoke the delete.
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": cascadeErr.Error(),
			"step":  cascadeErr.Step,
		})
	}

	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrImageNotFound),
		errors.Is(err, service.ErrFollowNotFound),
		errors.Is(err, service.ErrLikeNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, service.ErrUsernameTaken),
		errors.Is(err, service.ErrEmailInUse),
		errors.Is(err, service.ErrAlreadyFollowing),
		errors.Is(err, service.ErrAlreadyLiked):
		status = fiber.StatusConflict
	case errors.Is(err, service.ErrUnsupportedMediaType):
		status = fiber.StatusUnsupportedMediaType
	case errors.Is(err, service.ErrUploadFailed):
		status = fiber.StatusBadGateway
	}

	return c.Status(status).JSON(fiber.Map{
		"error": err.Error(),
	})
}
