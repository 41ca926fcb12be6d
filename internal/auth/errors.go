package auth

import "errors"

var (
	// ErrTokenExpired : le token est signé correctement mais a dépassé son expiration
	ErrTokenExpired = errors.New("token expired")
	// ErrTokenInvalid : signature ou structure invalide
	ErrTokenInvalid = errors.New("token invalid")
	// ErrUserNotFound : le token est valide mais le sujet ne correspond plus à aucun utilisateur
	ErrUserNotFound = errors.New("user not found")
)
