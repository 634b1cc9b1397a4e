package handlers

import (
	"context"
	"errors"
	"time"

	"recipe-backend/internal/models"
)

type stubUserService struct {
	registerErr error
	registered  []models.RegisterRequest
	loginRes    *models.AuthResponse
	loginErr    error
}

func (s *stubUserService) Register(ctx context.Context, req models.RegisterRequest) error {
	s.registered = append(s.registered, req)
	return s.registerErr
}

func (s *stubUserService) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	if s.loginErr != nil {
		return nil, s.loginErr
	}
	return s.loginRes, nil
}

type stubVerifier struct {
	userID   int
	username string
	err      error
}

func (s stubVerifier) VerifyToken(token string) (int, string, error) {
	if s.err != nil {
		return 0, "", s.err
	}
	return s.userID, s.username, nil
}

type stubRecipeService struct {
	recipe      *models.Recipe
	recipes     []models.Recipe
	currentURL  string
	deleteTitle string
	err         error

	created       bool
	createOwner   int
	createImage   string
	updated       bool
	updateImage   *string
	deleted       bool
	listOwnerID   int
	currentCalled bool
}

func (s *stubRecipeService) Create(ctx context.Context, ownerID int, title, imageURL, ingredients, steps string) (*models.Recipe, error) {
	s.created = true
	s.createOwner = ownerID
	s.createImage = imageURL
	if s.err != nil {
		return nil, s.err
	}
	r := &models.Recipe{
		ID:          1,
		UserID:      ownerID,
		Title:       title,
		Image:       imageURL,
		Ingredients: ingredients,
		Steps:       steps,
		CreatedAt:   time.Now(),
	}
	return r, nil
}

func (s *stubRecipeService) GetByID(ctx context.Context, id int) (*models.Recipe, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.recipe, nil
}

func (s *stubRecipeService) ListAll(ctx context.Context) ([]models.Recipe, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.recipes, nil
}

func (s *stubRecipeService) ListByOwner(ctx context.Context, userID int) ([]models.Recipe, error) {
	s.listOwnerID = userID
	if s.err != nil {
		return nil, s.err
	}
	return s.recipes, nil
}

func (s *stubRecipeService) CurrentImageURL(ctx context.Context, id int) (string, error) {
	s.currentCalled = true
	if s.err != nil {
		return "", s.err
	}
	return s.currentURL, nil
}

func (s *stubRecipeService) Update(ctx context.Context, id int, title, ingredients, steps string, imageURL *string) (*models.Recipe, error) {
	s.updated = true
	s.updateImage = imageURL
	if s.err != nil {
		return nil, s.err
	}
	image := s.currentURL
	if imageURL != nil {
		image = *imageURL
	}
	now := time.Now()
	return &models.Recipe{
		ID:          id,
		Title:       title,
		Image:       image,
		Ingredients: ingredients,
		Steps:       steps,
		CreatedAt:   now.Add(-time.Hour),
		UpdatedAt:   &now,
	}, nil
}

func (s *stubRecipeService) Delete(ctx context.Context, id int) (string, error) {
	s.deleted = true
	if s.err != nil {
		return "", s.err
	}
	return s.deleteTitle, nil
}

type stubUploader struct {
	url    string
	err    error
	called bool
}

func (s *stubUploader) Upload(ctx context.Context, imageData, baseName string) (string, error) {
	s.called = true
	if s.err != nil {
		return "", s.err
	}
	return s.url, nil
}

type stubPublisher struct {
	events []string
	ids    []int
}

func (s *stubPublisher) Publish(event string, recipeID int, recipe *models.Recipe) {
	s.events = append(s.events, event)
	s.ids = append(s.ids, recipeID)
}

var errBoom = errors.New("boom")
