package handlers

import (
	"fmt"
	"log"

	"gallery-service/internal/models"
	"gallery-service/internal/service"

	"github.com/gofiber/fiber/v3"
)

type FollowHandler struct {
	followService *service.FollowService
}

func NewFollowHandler(followService *service.FollowService) *FollowHandler {
	return &FollowHandler{
		followService: followService,
	}
}

func (h *FollowHandler) RegisterRoutes(app *fiber.App) {
	publicGroup := app.Group("/public/users")
	publicGroup.Get("/:username/followers", h.ListFollowers)

	protectedGroup := app.Group("/protected/users")
	protectedGroup.Post("/:username/followers", h.Follow)
	protectedGroup.Delete("/:username/followers", h.Unfollow)
}

func (h *FollowHandler) ListFollowers(c fiber.Ctx) error {
	username := c.Params("username")

	followers, err := h.followService.ListFollowers(c.Context(), username)
	if err != nil {
		log.Printf("Error listing followers of %s: %v", username, err)
		return failWith(c, err)
	}

	return c.JSON(followers)
}

func (h *FollowHandler) Follow(c fiber.Ctx) error {
	username := c.Params("username")

	var req models.FollowRequest
	if err := c.Bind().Body(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if err := h.followService.Follow(c.Context(), username, req.FolloweeName); err != nil {
		log.Printf("Error following %s: %v", req.FolloweeName, err)
		return failWith(c, err)
	}

	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("Successfully followed %s", req.FolloweeName),
	})
}

func (h *FollowHandler) Unfollow(c fiber.Ctx) error {
	username := c.Params("username")
	otherUsername := c.Query("otherUsername")

	if err := h.followService.Unfollow(c.Context(), username, otherUsername); err != nil {
		log.Printf("Error unfollowing %s: %v", otherUsername, err)
		return failWith(c, err)
	}

	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("Successfully unfollowed %s", otherUsername),
	})
}
