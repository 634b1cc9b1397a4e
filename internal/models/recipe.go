package models

import "time"

type Recipe struct {
	ID          int        `json:"id"`
	UserID      int        `json:"userId"`
	Title       string     `json:"title"`
	Image       string     `json:"image"`
	Ingredients string     `json:"ingredients"`
	Steps       string     `json:"steps"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
	CreatedBy   string     `json:"createdBy,omitempty"`
}

// RecipeRequest is the body of createRecipe and updateRecipe. ImageBase64 is
// optional and carries either a data URI ("data:image/png;base64,...") or a
// bare base64 payload. UserID is accepted for compatibility with older
// clients but ignored; the owner always comes from the bearer token.
type RecipeRequest struct {
	UserID      int    `json:"userId,omitempty"`
	Title       string `json:"title"`
	Ingredients string `json:"ingredients"`
	Steps       string `json:"steps"`
	ImageBase64 string `json:"imageBase64,omitempty"`
}
