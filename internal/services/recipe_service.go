package services

import (
	"context"
	"errors"

	"recipe-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type RecipeService struct {
	pool *pgxpool.Pool
}

func NewRecipeService(pool *pgxpool.Pool) *RecipeService {
	return &RecipeService{pool: pool}
}

// Create inserts a recipe and returns it with the generated id and timestamp.
// Titles are stored as given.
func (s *RecipeService) Create(ctx context.Context, ownerID int, title, imageURL, ingredients, steps string) (*models.Recipe, error) {
	recipe := &models.Recipe{
		UserID:      ownerID,
		Title:       title,
		Image:       imageURL,
		Ingredients: ingredients,
		Steps:       steps,
	}
	query := `INSERT INTO recipes (user_id, title, image_url, ingredients, steps)
	          VALUES ($1, $2, $3, $4, $5)
	          RETURNING id, created_at`
	err := s.pool.QueryRow(ctx, query, ownerID, title, imageURL, ingredients, steps).
		Scan(&recipe.ID, &recipe.CreatedAt)
	if err != nil {
		return nil, err
	}
	return recipe, nil
}

// GetByID fetches one recipe with the owner's display name.
func (s *RecipeService) GetByID(ctx context.Context, id int) (*models.Recipe, error) {
	var recipe models.Recipe
	query := `SELECT r.id, r.user_id, r.title, r.image_url, r.ingredients, r.steps,
	                 r.created_at, r.updated_at, COALESCE(u.full_name, '')
	          FROM recipes r
	          LEFT JOIN users u ON r.user_id = u.id
	          WHERE r.id = $1`
	err := s.pool.QueryRow(ctx, query, id).Scan(
		&recipe.ID, &recipe.UserID, &recipe.Title, &recipe.Image, &recipe.Ingredients,
		&recipe.Steps, &recipe.CreatedAt, &recipe.UpdatedAt, &recipe.CreatedBy)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrRecipeNotFound
		}
		return nil, err
	}
	return &recipe, nil
}

// ListAll returns every recipe, newest first.
func (s *RecipeService) ListAll(ctx context.Context) ([]models.Recipe, error) {
	query := `SELECT r.id, r.user_id, r.title, r.image_url, r.ingredients, r.steps,
	                 r.created_at, r.updated_at, COALESCE(u.full_name, '')
	          FROM recipes r
	          LEFT JOIN users u ON r.user_id = u.id
	          ORDER BY r.created_at DESC`
	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRecipes(rows)
}

// ListByOwner returns one user's recipes, newest first.
func (s *RecipeService) ListByOwner(ctx context.Context, userID int) ([]models.Recipe, error) {
	query := `SELECT r.id, r.user_id, r.title, r.image_url, r.ingredients, r.steps,
	                 r.created_at, r.updated_at, COALESCE(u.full_name, '')
	          FROM recipes r
	          LEFT JOIN users u ON r.user_id = u.id
	          WHERE r.user_id = $1
	          ORDER BY r.created_at DESC`
	rows, err := s.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRecipes(rows)
}

// CurrentImageURL returns the stored image URL for a recipe. The update
// handler reads it before replacing an image so a failed upload can never
// clobber the existing reference.
func (s *RecipeService) CurrentImageURL(ctx context.Context, id int) (string, error) {
	var url string
	err := s.pool.QueryRow(ctx, `SELECT image_url FROM recipes WHERE id = $1`, id).Scan(&url)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrRecipeNotFound
		}
		return "", err
	}
	return url, nil
}

// Update rewrites the text fields and optionally the image URL in a single
// statement. A nil imageURL keeps the stored one. The existence check and
// the mutation are the same statement, so there is no window for a
// concurrent delete to resurrect the row.
func (s *RecipeService) Update(ctx context.Context, id int, title, ingredients, steps string, imageURL *string) (*models.Recipe, error) {
	var recipe models.Recipe
	query := `UPDATE recipes
	          SET title = $2,
	              ingredients = $3,
	              steps = $4,
	              image_url = COALESCE($5, image_url),
	              updated_at = now()
	          WHERE id = $1
	          RETURNING id, user_id, title, image_url, ingredients, steps, created_at, updated_at`
	err := s.pool.QueryRow(ctx, query, id, title, ingredients, steps, imageURL).Scan(
		&recipe.ID, &recipe.UserID, &recipe.Title, &recipe.Image, &recipe.Ingredients,
		&recipe.Steps, &recipe.CreatedAt, &recipe.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrRecipeNotFound
		}
		return nil, err
	}
	return &recipe, nil
}

// Delete removes a recipe and returns its title. Hard delete, single
// statement.
func (s *RecipeService) Delete(ctx context.Context, id int) (string, error) {
	var title string
	err := s.pool.QueryRow(ctx, `DELETE FROM recipes WHERE id = $1 RETURNING title`, id).Scan(&title)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrRecipeNotFound
		}
		return "", err
	}
	return title, nil
}

func scanRecipes(rows pgx.Rows) ([]models.Recipe, error) {
	recipes := []models.Recipe{}
	for rows.Next() {
		var recipe models.Recipe
		if err := rows.Scan(
			&recipe.ID, &recipe.UserID, &recipe.Title, &recipe.Image, &recipe.Ingredients,
			&recipe.Steps, &recipe.CreatedAt, &recipe.UpdatedAt, &recipe.CreatedBy); err != nil {
			return nil, err
		}
		recipes = append(recipes, recipe)
	}
	return recipes, rows.Err()
}
