package handlers

import (
	"errors"
	"log"

	"recipe-backend/internal/models"
	"recipe-backend/internal/services"

	"github.com/gofiber/fiber/v2"
)

// RegisterHandler creates a new user account.
func RegisterHandler(svc UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.RegisterRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid request"})
		}

		if req.FullName == "" || req.Email == "" || req.Username == "" || req.Password == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "All fields are required"})
		}

		if err := svc.Register(c.Context(), req); err != nil {
			switch {
			case errors.Is(err, services.ErrUsernameExists):
				return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": "Username already exists."})
			case errors.Is(err, services.ErrEmailExists):
				return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": "Email already exists."})
			default:
				log.Printf("register: %v", err)
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Internal server error"})
			}
		}

		return c.JSON(fiber.Map{"message": "Registration successful! Please login."})
	}
}

// LoginHandler verifies credentials and issues a bearer token. Unknown users
// and wrong passwords get the same response.
func LoginHandler(svc UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.LoginRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid request"})
		}

		if req.Username == "" || req.Password == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Username and password are required"})
		}

		res, err := svc.Login(c.Context(), req)
		if err != nil {
			if errors.Is(err, services.ErrInvalidCredentials) {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Invalid username or password"})
			}
			log.Printf("login: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Internal server error"})
		}

		return c.JSON(res)
	}
}
