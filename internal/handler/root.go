package handler

import (
	"net/http"

	"github.com/kasundularaam/flash-feather-starter-v6/internal/utils"
)

// RootHandler affiche toutes les routes disponibles de l'API
func RootHandler(w http.ResponseWriter, r *http.Request) {
	routes := map[string]interface{}{
		"name":    "Flash Feather API",
		"version": "2.1.0",
		"status":  "running",
		"routes": map[string]interface{}{
			"auth": []map[string]string{
				{"method": "GET", "path": "/api/auth/me", "description": "Utilisateur courant"},
				{"method": "POST", "path": "/api/auth/register", "description": "Inscription utilisateur"},
				{"method": "POST", "path": "/api/auth/login", "description": "Connexion utilisateur"},
				{"method": "GET", "path": "/api/auth/google", "description": "Authentification Google OAuth"},
				{"method": "GET", "path": "/api/auth/google/callback", "description": "Callback Google OAuth"},
				{"method": "POST", "path": "/api/auth/logout", "description": "Déconnexion utilisateur"},
			},
			"users": []map[string]string{
				{"method": "POST", "path": "/api/users/avatar", "description": "Upload avatar utilisateur"},
			},
			"files": []map[string]string{
				{"method": "GET", "path": "/uploads/{path}", "description": "Fichiers uploadés"},
			},
			"health": []map[string]string{
				{"method": "GET", "path": "/health", "description": "Health check de l'API"},
			},
		},
	}

	utils.Success(w, routes)
}
