package handlers

import (
	"net/http"
	"testing"

	"recipe-backend/internal/feed"
	"recipe-backend/internal/models"
	"recipe-backend/internal/services"
	"recipe-backend/internal/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetRecipes(t *testing.T) {
	svc := &stubRecipeService{recipes: []models.Recipe{
		{ID: 2, Title: "Soup", CreatedBy: "Demo User"},
		{ID: 1, Title: "Tea", CreatedBy: "Demo User"},
	}}
	app := fiber.New()
	app.Get("/getRecipes", GetRecipesHandler(svc))

	resp, body := doJSON(t, app, http.MethodGet, "/getRecipes", "")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Recipes fetched successfully", body["message"])
	assert.Len(t, body["recipes"], 2)
}

func TestGetRecipeByID(t *testing.T) {
	t.Run("missing id", func(t *testing.T) {
		app := fiber.New()
		app.Get("/getRecipeById", GetRecipeByIDHandler(&stubRecipeService{}))

		resp, body := doJSON(t, app, http.MethodGet, "/getRecipeById", "")
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "Recipe ID is required", body["message"])
	})

	t.Run("bad id", func(t *testing.T) {
		app := fiber.New()
		app.Get("/getRecipeById", GetRecipeByIDHandler(&stubRecipeService{}))

		resp, body := doJSON(t, app, http.MethodGet, "/getRecipeById?id=abc", "")
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "Invalid recipe ID", body["message"])
	})

	t.Run("not found", func(t *testing.T) {
		app := fiber.New()
		app.Get("/getRecipeById", GetRecipeByIDHandler(&stubRecipeService{err: services.ErrRecipeNotFound}))

		resp, body := doJSON(t, app, http.MethodGet, "/getRecipeById?id=9", "")
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "Recipe not found", body["message"])
	})

	t.Run("found", func(t *testing.T) {
		app := fiber.New()
		app.Get("/getRecipeById", GetRecipeByIDHandler(&stubRecipeService{
			recipe: &models.Recipe{ID: 9, Title: "Tea", CreatedBy: "Demo User"},
		}))

		resp, body := doJSON(t, app, http.MethodGet, "/getRecipeById?id=9", "")
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		recipe := body["recipe"].(map[string]any)
		assert.Equal(t, "Tea", recipe["title"])
	})
}

func TestGetMyRecipes(t *testing.T) {
	svc := &stubRecipeService{recipes: []models.Recipe{{ID: 1, UserID: 7, Title: "Tea"}}}
	app := fiber.New()
	app.Get("/getMyRecipes", GetMyRecipesHandler(svc))

	resp, _ := doJSON(t, app, http.MethodGet, "/getMyRecipes", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, body := doJSON(t, app, http.MethodGet, "/getMyRecipes?userId=7", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, body["recipes"], 1)
	assert.Equal(t, 7, svc.listOwnerID)
}

func createApp(svc *stubRecipeService, up *stubUploader, pub *stubPublisher) *fiber.App {
	app := fiber.New()
	app.Post("/createRecipe",
		AuthMiddleware(stubVerifier{userID: 7, username: "demo"}),
		CreateRecipeHandler(svc, up, pub))
	return app
}

func TestCreateRecipeWithoutImage(t *testing.T) {
	svc := &stubRecipeService{}
	up := &stubUploader{}
	pub := &stubPublisher{}
	app := createApp(svc, up, pub)

	req := `{"title":"Tea","ingredients":"water\ntea leaves","steps":"boil\nsteep"}`
	resp, body := doAuthedJSON(t, app, http.MethodPost, "/createRecipe", req)

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "Recipe added successfully!", body["message"])
	assert.Equal(t, "", body["imageUrl"])
	recipe := body["recipe"].(map[string]any)
	assert.Equal(t, "", recipe["image"])
	assert.Equal(t, float64(7), recipe["userId"])
	assert.False(t, up.called)
	assert.Equal(t, []string{feed.EventRecipeCreated}, pub.events)
}

func TestCreateRecipeWithImage(t *testing.T) {
	svc := &stubRecipeService{}
	up := &stubUploader{url: "http://minio:9000/recipe-images/1-2-photo"}
	app := createApp(svc, up, &stubPublisher{})

	req := `{"title":"Tea","ingredients":"water","steps":"boil","imageBase64":"data:image/png;base64,aGk="}`
	resp, body := doAuthedJSON(t, app, http.MethodPost, "/createRecipe", req)

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, up.url, body["imageUrl"])
	assert.Equal(t, up.url, svc.createImage)
}

func TestCreateRecipeValidation(t *testing.T) {
	svc := &stubRecipeService{}
	app := createApp(svc, &stubUploader{}, &stubPublisher{})

	resp, body := doAuthedJSON(t, app, http.MethodPost, "/createRecipe", `{"title":"Tea"}`)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Title, ingredients, and steps are required", body["message"])
	assert.False(t, svc.created)
}

func TestCreateRecipeUploadFailure(t *testing.T) {
	svc := &stubRecipeService{}
	up := &stubUploader{err: storage.ErrUploadFailed}
	app := createApp(svc, up, &stubPublisher{})

	req := `{"title":"Tea","ingredients":"water","steps":"boil","imageBase64":"aGk="}`
	resp, body := doAuthedJSON(t, app, http.MethodPost, "/createRecipe", req)

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "Failed to upload image", body["message"])
	assert.False(t, svc.created)
}

func TestUpdateRecipeWithoutImageKeepsURL(t *testing.T) {
	svc := &stubRecipeService{currentURL: "http://old/img.png"}
	up := &stubUploader{}
	pub := &stubPublisher{}
	app := fiber.New()
	app.Put("/updateRecipe", UpdateRecipeHandler(svc, up, pub))

	req := `{"title":"Tea","ingredients":"water","steps":"boil"}`
	resp, body := doJSON(t, app, http.MethodPut, "/updateRecipe?id=9", req)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"])
	require.True(t, svc.updated)
	assert.Nil(t, svc.updateImage)
	assert.False(t, up.called)
	recipe := body["recipe"].(map[string]any)
	assert.Equal(t, "http://old/img.png", recipe["image"])
	assert.Equal(t, []string{feed.EventRecipeUpdated}, pub.events)
}

func TestUpdateRecipeFailedUploadLeavesRowUntouched(t *testing.T) {
	svc := &stubRecipeService{currentURL: "http://old/img.png"}
	up := &stubUploader{err: storage.ErrUploadFailed}
	app := fiber.New()
	app.Put("/updateRecipe", UpdateRecipeHandler(svc, up, &stubPublisher{}))

	req := `{"title":"Tea","ingredients":"water","steps":"boil","imageBase64":"aGk="}`
	resp, body := doJSON(t, app, http.MethodPut, "/updateRecipe?id=9", req)

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "Failed to upload new image", body["message"])
	assert.Equal(t, false, body["success"])
	assert.False(t, svc.updated)
}

func TestUpdateRecipeReplacesImageAfterUpload(t *testing.T) {
	svc := &stubRecipeService{currentURL: "http://old/img.png"}
	up := &stubUploader{url: "http://new/img.png"}
	app := fiber.New()
	app.Put("/updateRecipe", UpdateRecipeHandler(svc, up, &stubPublisher{}))

	req := `{"title":"Tea","ingredients":"water","steps":"boil","imageBase64":"aGk="}`
	resp, _ := doJSON(t, app, http.MethodPut, "/updateRecipe?id=9", req)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotNil(t, svc.updateImage)
	assert.Equal(t, "http://new/img.png", *svc.updateImage)
	assert.True(t, svc.currentCalled)
}

func TestUpdateRecipeNotFound(t *testing.T) {
	svc := &stubRecipeService{err: services.ErrRecipeNotFound}
	app := fiber.New()
	app.Put("/updateRecipe", UpdateRecipeHandler(svc, &stubUploader{}, &stubPublisher{}))

	req := `{"title":"Tea","ingredients":"water","steps":"boil"}`
	resp, body := doJSON(t, app, http.MethodPut, "/updateRecipe?id=404", req)

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Recipe not found", body["message"])
	assert.Equal(t, false, body["success"])
}

func TestDeleteRecipe(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		app := fiber.New()
		app.Delete("/deleteRecipe", DeleteRecipeHandler(&stubRecipeService{err: services.ErrRecipeNotFound}, &stubPublisher{}))

		resp, body := doJSON(t, app, http.MethodDelete, "/deleteRecipe?id=404", "")
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, false, body["success"])
	})

	t.Run("deleted", func(t *testing.T) {
		pub := &stubPublisher{}
		app := fiber.New()
		app.Delete("/deleteRecipe", DeleteRecipeHandler(&stubRecipeService{deleteTitle: "Tea"}, pub))

		resp, body := doJSON(t, app, http.MethodDelete, "/deleteRecipe?id=9", "")
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "Recipe deleted successfully", body["message"])
		assert.Equal(t, true, body["success"])
		assert.Equal(t, float64(9), body["recipeId"])
		assert.Equal(t, "Tea", body["recipeName"])
		assert.Equal(t, []string{feed.EventRecipeDeleted}, pub.events)
		assert.Equal(t, []int{9}, pub.ids)
	})
}
