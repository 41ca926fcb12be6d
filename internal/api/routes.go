package api

import (
	"net/http"

	"github.com/fatih/color"
	"github.com/gorilla/mux"

	"github.com/kasundularaam/flash-feather-starter-v6/internal/auth"
	"github.com/kasundularaam/flash-feather-starter-v6/internal/handler"
	"github.com/kasundularaam/flash-feather-starter-v6/internal/middleware"
	"github.com/kasundularaam/flash-feather-starter-v6/internal/utils"
)

// Deps regroupe tout ce dont le routeur a besoin
type Deps struct {
	Tokens      *auth.Service
	AuthHandler *handler.AuthHandler
	UserHandler *handler.UserHandler
	UploadsDir  string
}

func SetupRouter(deps Deps) http.Handler {
	r := mux.NewRouter()
	r.Use(middleware.AuthMiddleware(deps.Tokens))
	r.Use(middleware.LoggerMiddleware)

	// Root - API documentation
	r.HandleFunc("/", handler.RootHandler).Methods(http.MethodGet)

	// Auth
	r.HandleFunc("/api/auth/me", deps.AuthHandler.Me).Methods(http.MethodGet)
	r.HandleFunc("/api/auth/register", deps.AuthHandler.Register).Methods(http.MethodPost)
	r.HandleFunc("/api/auth/login", deps.AuthHandler.Login).Methods(http.MethodPost)
	r.HandleFunc("/api/auth/google", deps.AuthHandler.GoogleAuth).Methods(http.MethodGet)
	r.HandleFunc("/api/auth/google/callback", deps.AuthHandler.GoogleCallback).Methods(http.MethodGet)
	r.HandleFunc("/api/auth/logout", deps.AuthHandler.Logout).Methods(http.MethodPost)

	// Users
	r.HandleFunc("/api/users/avatar", deps.UserHandler.UploadAvatar).Methods(http.MethodPost)

	// Fichiers uploadés (avatars)
	r.PathPrefix("/uploads/").Handler(
		http.StripPrefix("/uploads/", http.FileServer(http.Dir(deps.UploadsDir))))

	// Health check
	r.HandleFunc("/health", handler.HealthCheck).Methods(http.MethodGet)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		utils.LogError("404 Not Found: %s %s", req.Method, req.URL.Path)
		color.Yellow("[404] %s %s (route non trouvée)", req.Method, req.URL.Path)
		http.Error(w, "Route not found", http.StatusNotFound)
	})

	return r
}
