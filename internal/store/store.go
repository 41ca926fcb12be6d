// Package store contient le stockage des utilisateurs : une implémentation
// PostgreSQL pour la production et une implémentation en mémoire pour les
// tests et le développement local.
package store

import (
	"context"
	"errors"

	model "github.com/kasundularaam/flash-feather-starter-v6/internal/models"
)

var (
	// ErrNotFound : aucun utilisateur ne correspond
	ErrNotFound = errors.New("user not found")
	// ErrDuplicate : le nom ou l'email est déjà pris
	ErrDuplicate = errors.New("user already exists")
)

type UserStore interface {
	FindByID(ctx context.Context, id string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByName(ctx context.Context, name string) (*model.User, error)
	Create(ctx context.Context, user *model.User) (*model.User, error)
	UpdateProfilePicture(ctx context.Context, id, pictureURL string) error
}
