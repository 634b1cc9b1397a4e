package app

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"recipe-backend/internal/config"
	"recipe-backend/internal/db"
	"recipe-backend/internal/feed"
	"recipe-backend/internal/handlers"
	"recipe-backend/internal/services"
	"recipe-backend/internal/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

func Run() {
	cfg := config.FromEnv()
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET is not set")
	}

	// Init DB
	pool, err := db.Connect(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	// Object storage
	uploader, err := storage.NewUploader(cfg)
	if err != nil {
		log.Fatalf("Failed to configure object storage: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := uploader.EnsureBucket(ctx); err != nil && !errors.Is(err, storage.ErrNotConfigured) {
		log.Printf("Warning: could not ensure image bucket: %v", err)
	}
	cancel()

	// Services
	mailer := services.NewMailer(cfg)
	userService := services.NewUserService(pool, cfg, mailer)
	recipeService := services.NewRecipeService(pool)

	// Live feed
	hub := feed.NewHub()
	go hub.Run()

	// Fiber App
	app := New(cfg, pool, userService, recipeService, uploader, hub)

	// Start Server
	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Panic(err)
		}
	}()

	// Graceful Shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c // Block until signal
	log.Println("Gracefully shutting down...")
	_ = app.Shutdown()
	log.Println("Server shutdown complete")
}

// New builds the Fiber app with all middleware and routes.
func New(
	cfg *config.Config,
	pinger handlers.Pinger,
	userService handlers.UserService,
	recipeService handlers.RecipeService,
	uploader handlers.ImageUploader,
	hub *feed.Hub,
) *fiber.App {
	app := fiber.New()

	// Middleware
	app.Use(logger.New())
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Content-Type, Authorization",
	}))

	verifier := tokenVerifier{secret: cfg.JWTSecret}

	// Public routes
	app.Post("/register", handlers.RegisterHandler(userService))
	app.Post("/login", handlers.LoginHandler(userService))
	app.Get("/getRecipes", handlers.GetRecipesHandler(recipeService))
	app.Get("/getRecipeById", handlers.GetRecipeByIDHandler(recipeService))
	app.Get("/getMyRecipes", handlers.GetMyRecipesHandler(recipeService))
	app.Put("/updateRecipe", handlers.UpdateRecipeHandler(recipeService, uploader, hub))
	app.Delete("/deleteRecipe", handlers.DeleteRecipeHandler(recipeService, hub))

	// Creating requires a bearer token; the owner comes from the token.
	app.Post("/createRecipe", handlers.AuthMiddleware(verifier), handlers.CreateRecipeHandler(recipeService, uploader, hub))

	// Health Check
	app.Get("/health", handlers.HealthHandler(pinger))

	// Live recipe feed. Subscribing requires a bearer token too; websocket
	// dials pass it as the access_token query parameter.
	app.Use("/ws/feed", feed.UpgradeMiddleware)
	app.Use("/ws/feed", handlers.AuthMiddleware(verifier))
	app.Get("/ws/feed", feed.Handler(hub))

	return app
}

type tokenVerifier struct {
	secret string
}

func (v tokenVerifier) VerifyToken(token string) (int, string, error) {
	return services.VerifyToken(v.secret, token)
}
