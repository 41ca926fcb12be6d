package main

import (
	"net/http"
	"os"

	"github.com/kasundularaam/flash-feather-starter-v6/internal/api"
	"github.com/kasundularaam/flash-feather-starter-v6/internal/auth"
	"github.com/kasundularaam/flash-feather-starter-v6/internal/config"
	"github.com/kasundularaam/flash-feather-starter-v6/internal/database"
	"github.com/kasundularaam/flash-feather-starter-v6/internal/handler"
	"github.com/kasundularaam/flash-feather-starter-v6/internal/logger"
	"github.com/kasundularaam/flash-feather-starter-v6/internal/middleware"
	"github.com/kasundularaam/flash-feather-starter-v6/internal/services"
	"github.com/kasundularaam/flash-feather-starter-v6/internal/storage"
	"github.com/kasundularaam/flash-feather-starter-v6/internal/store"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Could not load config: %v", err)
		os.Exit(1)
	}

	// Connect to PostgreSQL
	db, err := database.ConnectPostgres(cfg)
	if err != nil {
		logger.Error("Database connection failed: %v", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.RunMigrations(cfg); err != nil {
		logger.Error("Migrations failed: %v", err)
		os.Exit(1)
	}

	// Local uploads storage (avatars)
	uploads, err := storage.NewLocalStorage(cfg.UploadsDir)
	if err != nil {
		logger.Error("Could not initialize uploads storage: %v", err)
		os.Exit(1)
	}

	users := store.NewPostgresStore(db)
	tokens := auth.NewService(users, cfg)
	google := services.NewGoogleAuthService(cfg)

	// Cloudinary est optionnel : sans identifiants, les avatars restent locaux
	var cloudinary *services.CloudinaryService
	if cfg.CloudinaryConfigured() {
		cloudinary, err = services.NewCloudinaryService(cfg)
		if err != nil {
			logger.Warning("Cloudinary disabled: %v", err)
		}
	}

	router := api.SetupRouter(api.Deps{
		Tokens:      tokens,
		AuthHandler: handler.NewAuthHandler(users, tokens, google, uploads),
		UserHandler: handler.NewUserHandler(users, cloudinary, uploads),
		UploadsDir:  uploads.Root(),
	})

	// Wrap router with CORS middleware
	h := middleware.CORSMiddleware(router)

	// Start server
	logger.Success("Server starting on port %s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, h); err != nil {
		logger.Error("Server failed: %v", err)
		os.Exit(1)
	}
}
