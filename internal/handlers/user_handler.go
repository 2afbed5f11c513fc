package handlers

import (
	"log"

	"gallery-service/internal/models"
	"gallery-service/internal/service"

	"github.com/gofiber/fiber/v3"
)

type UserHandler struct {
	accountService *service.AccountService
	uploadService  *service.UploadService
}

func NewUserHandler(accountService *service.AccountService, uploadService *service.UploadService) *UserHandler {
	return &UserHandler{
		accountService: accountService,
		uploadService:  uploadService,
	}
}

func (h *UserHandler) RegisterRoutes(app *fiber.App) {
	publicGroup := app.Group("/public/users")
	publicGroup.Post("/", h.Register)
	publicGroup.Get("/:username/settings", h.GetProfilePic)

	protectedGroup := app.Group("/protected/users")
	protectedGroup.Get("/verify", h.VerifySession)
	protectedGroup.Post("/:username/settings", h.UploadProfilePic)
	protectedGroup.Put("/:username/settings", h.UpdateIdentity)
	protectedGroup.Delete("/:username/settings", h.DeleteAccount)
}

func (h *UserHandler) Register(c fiber.Ctx) error {
	var req models.RegisterRequest
	if err := c.Bind().Body(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	user, err := h.accountService.Register(c.Context(), &req)
	if err != nil {
		log.Printf("Error registering user: %v", err)
		return failWith(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User created successfully",
		"data":    user,
	})
}

// VerifySession only runs when the session middleware has already accepted
// the token.
func (h *UserHandler) VerifySession(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"verified": true,
	})
}

func (h *UserHandler) GetProfilePic(c fiber.Ctx) error {
	username := c.Params("username")

	picURL, err := h.accountService.GetProfilePic(c.Context(), username)
	if err != nil {
		return failWith(c, err)
	}

	return c.JSON(fiber.Map{
		"profilePic": picURL,
	})
}

func (h *UserHandler) UploadProfilePic(c fiber.Ctx) error {
	username := c.Params("username")

	fileHeader, err := c.FormFile("profilePic")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No profile pic provided",
		})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to open uploaded file",
		})
	}
	defer file.Close()

	picURL, err := h.uploadService.ReplaceProfilePic(c.Context(), username, fileHeader.Filename, file)
	if err != nil {
		log.Printf("Error replacing profile pic for %s: %v", username, err)
		return failWith(c, err)
	}

	return c.JSON(fiber.Map{
		"message":    "Profile pic updated successfully",
		"profilePic": picURL,
	})
}

func (h *UserHandler) UpdateIdentity(c fiber.Ctx) error {
	username := c.Params("username")

	var req models.UpdateIdentityRequest
	if err := c.Bind().Body(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	updatedUsername, updatedEmail, err := h.accountService.UpdateIdentity(c.Context(), username, req.Username, req.Email)
	if err != nil {
		log.Printf("Error updating identity of %s: %v", username, err)
		return failWith(c, err)
	}

	return c.JSON(fiber.Map{
		"updatedUsername": updatedUsername,
		"updatedEmail":    updatedEmail,
	})
}

func (h *UserHandler) DeleteAccount(c fiber.Ctx) error {
	username := c.Params("username")

	if err := h.accountService.DeleteAccount(c.Context(), username); err != nil {
		log.Printf("Error deleting user %s: %v", username, err)
		return failWith(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "User and associated data successfully deleted",
	})
}
