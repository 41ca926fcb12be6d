package auth

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/kasundularaam/flash-feather-starter-v6/internal/config"
	model "github.com/kasundularaam/flash-feather-starter-v6/internal/models"
)

// Noms des cookies d'authentification
const (
	AccessTokenCookie  = "access_token"
	RefreshTokenCookie = "refresh_token"
)

// TokenPair : un access token court et un refresh token long, toujours
// émis ensemble pour le même sujet.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// UserStore résout un sujet de token vers un utilisateur
type UserStore interface {
	FindByID(ctx context.Context, id string) (*model.User, error)
}

// Service émet, valide et renouvelle les paires de tokens, et détient
// la politique des cookies. Toute la configuration (secret, durées)
// est injectée à la construction : aucun état global.
type Service struct {
	codec      Codec
	users      UserStore
	accessTTL  time.Duration
	refreshTTL time.Duration
	secure     bool
}

func NewService(users UserStore, cfg *config.Config) *Service {
	return &Service{
		codec:      NewCodec(cfg.JWTSecret),
		users:      users,
		accessTTL:  cfg.AccessTokenExpire,
		refreshTTL: cfg.RefreshTokenExpire,
		secure:     cfg.CookieSecure,
	}
}

// IssuePair émet une nouvelle paire access/refresh pour un utilisateur
func (s *Service) IssuePair(userID string) (TokenPair, error) {
	accessToken, err := s.codec.Issue(userID, s.accessTTL)
	if err != nil {
		return TokenPair{}, err
	}

	refreshToken, err := s.codec.Issue(userID, s.refreshTTL)
	if err != nil {
		return TokenPair{}, err
	}

	return TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// Validate décode un access token et résout l'utilisateur associé.
// Un sujet qui ne résout plus (compte supprimé) est une erreur
// d'authentification, pas une panne : ErrUserNotFound.
func (s *Service) Validate(ctx context.Context, accessToken string) (*model.User, error) {
	userID, err := s.codec.Decode(accessToken)
	if err != nil {
		return nil, err
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	return user, nil
}

// Refresh émet une toute nouvelle paire à partir d'un refresh token valide.
// Les deux tokens tournent : l'ancien refresh token est simplement abandonné
// par le client (aucun stockage côté serveur, donc pas de révocation).
// Un refresh token expiré est traité comme invalide et force une reconnexion.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*model.User, TokenPair, error) {
	userID, err := s.codec.Decode(refreshToken)
	if err != nil {
		if errors.Is(err, ErrTokenExpired) {
			return nil, TokenPair{}, ErrTokenInvalid
		}
		return nil, TokenPair{}, err
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, TokenPair{}, ErrUserNotFound
	}

	pair, err := s.IssuePair(userID)
	if err != nil {
		return nil, TokenPair{}, err
	}

	return user, pair, nil
}

// SetAuthCookies attache les deux cookies d'authentification à la réponse.
// Politique unique : HttpOnly, SameSite=Lax, max-age aligné sur la durée
// de vie du token, Secure selon la configuration.
func (s *Service) SetAuthCookies(w http.ResponseWriter, pair TokenPair) {
	http.SetCookie(w, s.cookie(AccessTokenCookie, pair.AccessToken, int(s.accessTTL.Seconds())))
	http.SetCookie(w, s.cookie(RefreshTokenCookie, pair.RefreshToken, int(s.refreshTTL.Seconds())))
}

// ClearAuthCookies supprime les deux cookies d'authentification
func (s *Service) ClearAuthCookies(w http.ResponseWriter) {
	http.SetCookie(w, s.cookie(AccessTokenCookie, "", -1))
	http.SetCookie(w, s.cookie(RefreshTokenCookie, "", -1))
}

func (s *Service) cookie(name, value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	}
}
