package handlers

import (
	"log"

	"gallery-service/internal/models"
	"gallery-service/internal/service"

	"github.com/gofiber/fiber/v3"
)

type CommentHandler struct {
	commentService *service.CommentService
}

func NewCommentHandler(commentService *service.CommentService) *CommentHandler {
	return &CommentHandler{
		commentService: commentService,
	}
}

func (h *CommentHandler) RegisterRoutes(app *fiber.App) {
	publicGroup := app.Group("/public/users")
	publicGroup.Get("/:username/comments", h.ListComments)

	protectedGroup := app.Group("/protected/users")
	protectedGroup.Post("/:username/comments", h.PostComment)
	protectedGroup.Put("/:username/comments", h.EditComment)
	protectedGroup.Delete("/:username/comments", h.DeleteComment)
}

func (h *CommentHandler) ListComments(c fiber.Ctx) error {
	imageURL := c.Query("imageUrl")

	comments, err := h.commentService.List(c.Context(), imageURL)
	if err != nil {
		return failWith(c, err)
	}

	return c.JSON(comments)
}

func (h *CommentHandler) PostComment(c fiber.Ctx) error {
	username := c.Params("username")

	var req models.PostCommentRequest
	if err := c.Bind().Body(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	comment, err := h.commentService.Post(c.Context(), username, &req)
	if err != nil {
		log.Printf("Error posting comment: %v", err)
		return failWith(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Comment posted successfully",
		"data":    comment,
	})
}

func (h *CommentHandler) EditComment(c fiber.Ctx) error {
	username := c.Params("username")

	var req models.EditCommentRequest
	if err := c.Bind().Body(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if err := h.commentService.Edit(c.Context(), username, &req); err != nil {
		log.Printf("Error editing comment: %v", err)
		return failWith(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Comment edited successfully",
	})
}

func (h *CommentHandler) DeleteComment(c fiber.Ctx) error {
	username := c.Params("username")
	text := c.Query("comment")

	if err := h.commentService.Delete(c.Context(), username, text); err != nil {
		log.Printf("Error deleting comment: %v", err)
		return failWith(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Comment successfully deleted",
	})
}
