// Package handlers contains one canonical Fiber handler per endpoint.
// Handlers validate input, call the injected services and map sentinel
// errors to status codes; internal error detail is logged, never returned.
package handlers

import (
	"context"

	"recipe-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

// UserService covers registration and login.
type UserService interface {
	Register(ctx context.Context, req models.RegisterRequest) error
	Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error)
}

// TokenVerifier validates a bearer token and returns the bound identity.
type TokenVerifier interface {
	VerifyToken(token string) (int, string, error)
}

// RecipeService is the persistence interface for recipes.
type RecipeService interface {
	Create(ctx context.Context, ownerID int, title, imageURL, ingredients, steps string) (*models.Recipe, error)
	GetByID(ctx context.Context, id int) (*models.Recipe, error)
	ListAll(ctx context.Context) ([]models.Recipe, error)
	ListByOwner(ctx context.Context, userID int) ([]models.Recipe, error)
	CurrentImageURL(ctx context.Context, id int) (string, error)
	Update(ctx context.Context, id int, title, ingredients, steps string, imageURL *string) (*models.Recipe, error)
	Delete(ctx context.Context, id int) (string, error)
}

// ImageUploader persists an image and returns its public URL.
type ImageUploader interface {
	Upload(ctx context.Context, imageData, baseName string) (string, error)
}

// Publisher pushes recipe change events to feed subscribers.
type Publisher interface {
	Publish(event string, recipeID int, recipe *models.Recipe)
}

// AuthMiddleware verifies the bearer token and stores the caller's identity
// in locals. The token comes from the Authorization header or, for websocket
// dials where browsers cannot set headers, the access_token query parameter.
func AuthMiddleware(verifier TokenVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Query("access_token")
		if token == "" {
			authHeader := c.Get("Authorization")
			if len(authHeader) > 7 && authHeader[:7] == "Bearer " {
				token = authHeader[7:]
			}
		}

		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Missing token"})
		}

		userID, username, err := verifier.VerifyToken(token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Invalid or expired token"})
		}

		c.Locals("user_id", userID)
		c.Locals("username", username)
		return c.Next()
	}
}
