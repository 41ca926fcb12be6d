package services

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/idtoken"

	"github.com/kasundularaam/flash-feather-starter-v6/internal/config"
)

// GoogleProfile holds the fields extracted from a verified Google ID token
type GoogleProfile struct {
	Email   string
	Name    string
	Picture string
}

// GoogleAuthService handles the Google OAuth code flow: building the
// consent-page URL and exchanging the callback code for a verified profile.
type GoogleAuthService struct {
	conf     *oauth2.Config
	clientID string
}

func NewGoogleAuthService(cfg *config.Config) *GoogleAuthService {
	return &GoogleAuthService{
		conf: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.GoogleRedirectURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		},
		clientID: cfg.GoogleClientID,
	}
}

// AuthURL returns the Google consent page URL for the given state token
func (s *GoogleAuthService) AuthURL(state string) string {
	return s.conf.AuthCodeURL(state)
}

// Exchange trades the callback code for tokens, verifies the ID token and
// returns the user's profile.
func (s *GoogleAuthService) Exchange(ctx context.Context, code string) (*GoogleProfile, error) {
	if s.clientID == "" {
		return nil, fmt.Errorf("google client id not configured")
	}

	token, err := s.conf.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("code exchange failed: %w", err)
	}

	rawIDToken, ok := token.Extra("id_token").(string)
	if !ok || rawIDToken == "" {
		return nil, fmt.Errorf("no id_token in token response")
	}

	payload, err := idtoken.Validate(ctx, rawIDToken, s.clientID)
	if err != nil {
		return nil, fmt.Errorf("id token validation failed: %w", err)
	}

	email, _ := payload.Claims["email"].(string)
	if email == "" {
		return nil, fmt.Errorf("email not present in id token")
	}
	name, _ := payload.Claims["name"].(string)
	picture, _ := payload.Claims["picture"].(string)

	return &GoogleProfile{Email: email, Name: name, Picture: picture}, nil
}
