package handlers

import (
	"log"

	"gallery-service/internal/service"

	"github.com/gofiber/fiber/v3"
)

type ImageHandler struct {
	imageService  *service.ImageService
	uploadService *service.UploadService
}

func NewImageHandler(imageService *service.ImageService, uploadService *service.UploadService) *ImageHandler {
	return &ImageHandler{
		imageService:  imageService,
		uploadService: uploadService,
	}
}

func (h *ImageHandler) RegisterRoutes(app *fiber.App) {
	publicGroup := app.Group("/public/users")
	publicGroup.Get("/:username/images", h.ListUserImages)

	protectedGroup := app.Group("/protected/users")
	protectedGroup.Post("/:username/images", h.PostImage)
	protectedGroup.Delete("/:username/images", h.DeleteImage)
}

func (h *ImageHandler) ListUserImages(c fiber.Ctx) error {
	username := c.Params("username")

	userpage, err := h.imageService.ListUserImages(c.Context(), username)
	if err != nil {
		return failWith(c, err)
	}

	return c.JSON(userpage)
}

func (h *ImageHandler) PostImage(c fiber.Ctx) error {
	username := c.Params("username")

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No image provided",
		})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to open uploaded file",
		})
	}
	defer file.Close()

	image, err := h.uploadService.PostImage(c.Context(), username, fileHeader.Filename, file)
	if err != nil {
		log.Printf("Error posting image for %s: %v", username, err)
		return failWith(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Image posted successfully",
		"data":    image,
	})
}

func (h *ImageHandler) DeleteImage(c fiber.Ctx) error {
	username := c.Params("username")
	imageURL := c.Query("imageUrl")

	if err := h.imageService.DeleteImage(c.Context(), username, imageURL); err != nil {
		log.Printf("Error deleting image for %s: %v", username, err)
		return failWith(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Image and associated comments successfully deleted",
	})
}
