package model

import "time"

// AuthProvider indique comment le compte a été créé
type AuthProvider string

const (
	AuthProviderLocal  AuthProvider = "local"
	AuthProviderGoogle AuthProvider = "google"
)

// Role définit le niveau d'accès d'un utilisateur
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

type User struct {
	ID             string       `json:"id"`
	Name           string       `json:"name"`
	Email          string       `json:"email"`
	HashedPassword string       `json:"-"` // Ne jamais exposer le hash dans l'API
	IsActive       bool         `json:"isActive"`
	AuthProvider   AuthProvider `json:"authProvider"`
	Role           Role         `json:"role"`
	ProfilePicture string       `json:"profilePicture,omitempty"`
	CreatedAt      time.Time    `json:"createdAt,omitempty"`
	UpdatedAt      time.Time    `json:"updatedAt,omitempty"`
}

// AuthResponse représente la réponse complète lors de l'authentification
type AuthResponse struct {
	Message string `json:"message"`
	User    *User  `json:"user"`
}
