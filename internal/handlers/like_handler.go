package handlers

import (
	"log"

	"gallery-service/internal/models"
	"gallery-service/internal/service"

	"github.com/gofiber/fiber/v3"
)

type LikeHandler struct {
	likeService *service.LikeService
}

func NewLikeHandler(likeService *service.LikeService) *LikeHandler {
	return &LikeHandler{
		likeService: likeService,
	}
}

func (h *LikeHandler) RegisterRoutes(app *fiber.App) {
	protectedGroup := app.Group("/protected/users")
	protectedGroup.Post("/:username/likes", h.Like)
	protectedGroup.Delete("/:username/likes", h.Unlike)
}

func (h *LikeHandler) Like(c fiber.Ctx) error {
	username := c.Params("username")

	var req models.LikeRequest
	if err := c.Bind().Body(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	like, err := h.likeService.Like(c.Context(), username, req.ImageURL)
	if err != nil {
		log.Printf("Error liking image: %v", err)
		return failWith(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"data": like,
	})
}

func (h *LikeHandler) Unlike(c fiber.Ctx) error {
	username := c.Params("username")
	imageURL := c.Query("imageUrl")

	if err := h.likeService.Unlike(c.Context(), username, imageURL); err != nil {
		log.Printf("Error unliking image: %v", err)
		return failWith(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Successfully unliked post",
	})
}
