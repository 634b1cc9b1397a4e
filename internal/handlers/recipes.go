package handlers

import (
	"errors"
	"fmt"
	"log"
	"strconv"

	"recipe-backend/internal/feed"
	"recipe-backend/internal/models"
	"recipe-backend/internal/services"
	"recipe-backend/internal/storage"

	"github.com/gofiber/fiber/v2"
)

// GetRecipesHandler lists every recipe, newest first.
func GetRecipesHandler(svc RecipeService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		recipes, err := svc.ListAll(c.Context())
		if err != nil {
			log.Printf("getRecipes: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to fetch recipes"})
		}
		return c.JSON(fiber.Map{
			"message": "Recipes fetched successfully",
			"recipes": recipes,
		})
	}
}

// GetRecipeByIDHandler fetches one recipe by its id query parameter.
func GetRecipeByIDHandler(svc RecipeService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, errMsg := parseRecipeID(c)
		if errMsg != "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": errMsg})
		}

		recipe, err := svc.GetByID(c.Context(), id)
		if err != nil {
			if errors.Is(err, services.ErrRecipeNotFound) {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Recipe not found"})
			}
			log.Printf("getRecipeById: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to fetch recipe"})
		}

		return c.JSON(fiber.Map{
			"message": "Recipe fetched successfully",
			"recipe":  recipe,
		})
	}
}

// GetMyRecipesHandler lists one user's recipes, newest first.
func GetMyRecipesHandler(svc RecipeService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userIDStr := c.Query("userId")
		if userIDStr == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "User ID is required"})
		}
		userID, err := strconv.Atoi(userIDStr)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid user ID"})
		}

		recipes, err := svc.ListByOwner(c.Context(), userID)
		if err != nil {
			log.Printf("getMyRecipes: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to fetch recipes"})
		}

		return c.JSON(fiber.Map{
			"message": "Recipes fetched successfully",
			"recipes": recipes,
		})
	}
}

// CreateRecipeHandler inserts a recipe owned by the authenticated user. The
// image is optional; without one the stored image URL is empty.
func CreateRecipeHandler(svc RecipeService, uploader ImageUploader, pub Publisher) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(int)

		var req models.RecipeRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid request"})
		}

		if req.Title == "" || req.Ingredients == "" || req.Steps == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Title, ingredients, and steps are required"})
		}

		imageURL := ""
		if req.ImageBase64 != "" {
			url, err := upload(c, uploader, req.ImageBase64, fmt.Sprintf("user-%d-recipe", userID))
			if err != nil {
				if errors.Is(err, storage.ErrInvalidImage) {
					return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid image data"})
				}
				log.Printf("createRecipe: upload: %v", err)
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to upload image"})
			}
			imageURL = url
		}

		recipe, err := svc.Create(c.Context(), userID, req.Title, imageURL, req.Ingredients, req.Steps)
		if err != nil {
			log.Printf("createRecipe: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to create recipe"})
		}

		if pub != nil {
			pub.Publish(feed.EventRecipeCreated, recipe.ID, recipe)
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"message":  "Recipe added successfully!",
			"recipe":   recipe,
			"imageUrl": imageURL,
		})
	}
}

// UpdateRecipeHandler rewrites a recipe's text fields and, when a new image
// is supplied and its upload succeeds, the image URL. A failed upload leaves
// the stored URL untouched because the database write never happens.
func UpdateRecipeHandler(svc RecipeService, uploader ImageUploader, pub Publisher) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, errMsg := parseRecipeID(c)
		if errMsg != "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": errMsg, "success": false})
		}

		var req models.RecipeRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid request", "success": false})
		}

		if req.Title == "" || req.Ingredients == "" || req.Steps == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Title, ingredients, and steps are required",
				"success": false,
			})
		}

		var imageURL *string
		if req.ImageBase64 != "" {
			// Confirm the recipe exists before spending an upload on it.
			if _, err := svc.CurrentImageURL(c.Context(), id); err != nil {
				if errors.Is(err, services.ErrRecipeNotFound) {
					return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Recipe not found", "success": false})
				}
				log.Printf("updateRecipe: %v", err)
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to update recipe", "success": false})
			}

			url, err := upload(c, uploader, req.ImageBase64, fmt.Sprintf("recipe-%d-updated", id))
			if err != nil {
				if errors.Is(err, storage.ErrInvalidImage) {
					return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid image data", "success": false})
				}
				log.Printf("updateRecipe: upload: %v", err)
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to upload new image", "success": false})
			}
			imageURL = &url
		}

		recipe, err := svc.Update(c.Context(), id, req.Title, req.Ingredients, req.Steps, imageURL)
		if err != nil {
			if errors.Is(err, services.ErrRecipeNotFound) {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Recipe not found", "success": false})
			}
			log.Printf("updateRecipe: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to update recipe", "success": false})
		}

		if pub != nil {
			pub.Publish(feed.EventRecipeUpdated, recipe.ID, recipe)
		}

		return c.JSON(fiber.Map{
			"message": "Recipe updated successfully",
			"success": true,
			"recipe":  recipe,
		})
	}
}

// DeleteRecipeHandler removes a recipe and reports its prior title.
func DeleteRecipeHandler(svc RecipeService, pub Publisher) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, errMsg := parseRecipeID(c)
		if errMsg != "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": errMsg, "success": false})
		}

		title, err := svc.Delete(c.Context(), id)
		if err != nil {
			if errors.Is(err, services.ErrRecipeNotFound) {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Recipe not found", "success": false})
			}
			log.Printf("deleteRecipe: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to delete recipe", "success": false})
		}

		if pub != nil {
			pub.Publish(feed.EventRecipeDeleted, id, nil)
		}

		return c.JSON(fiber.Map{
			"message":    "Recipe deleted successfully",
			"success":    true,
			"recipeId":   id,
			"recipeName": title,
		})
	}
}

// parseRecipeID reads the id query parameter. The second return value is a
// client-facing message, empty when the id is usable.
func parseRecipeID(c *fiber.Ctx) (int, string) {
	idStr := c.Query("id")
	if idStr == "" {
		return 0, "Recipe ID is required"
	}
	id, err := strconv.Atoi(idStr)
	if err != nil {
		return 0, "Invalid recipe ID"
	}
	return id, ""
}

func upload(c *fiber.Ctx, uploader ImageUploader, imageData, baseName string) (string, error) {
	if uploader == nil {
		return "", storage.ErrNotConfigured
	}
	return uploader.Upload(c.Context(), imageData, baseName)
}
