package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/kasundularaam/flash-feather-starter-v6/internal/auth"
	model "github.com/kasundularaam/flash-feather-starter-v6/internal/models"
	"github.com/kasundularaam/flash-feather-starter-v6/internal/utils"
)

// Context keys
type contextKey string

const userContextKey = contextKey("user")

// La route de logout est exemptée de toute inspection de tokens
const logoutPath = "/api/auth/logout"

// resolution : résultat de la machine à états par requête.
// user == nil  -> non authentifié
// renewed != nil -> la paire a été renouvelée et doit être posée en cookies
type resolution struct {
	user    *model.User
	renewed *auth.TokenPair
}

// AuthMiddleware résout l'identité sur chaque requête entrante : extraction
// des tokens (cookies puis header), validation, renouvellement silencieux via
// le refresh token si l'access token a expiré. Aucun échec de token ne remonte
// au client ici, la requête continue simplement non authentifiée.
func AuthMiddleware(svc *auth.Service) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == logoutPath {
				next.ServeHTTP(w, r)
				return
			}

			res := resolve(r.Context(), svc, r)

			if res.renewed != nil {
				// les nouveaux cookies partent avec la réponse du handler
				svc.SetAuthCookies(w, *res.renewed)
			}

			if res.user != nil {
				ctx := context.WithValue(r.Context(), userContextKey, res.user)
				r = r.WithContext(ctx)
			}

			next.ServeHTTP(w, r)
		})
	}
}

// resolve applique les transitions : access token d'abord (cookie puis header
// Bearer), sinon refresh token seul, sinon non authentifié. Le renouvellement
// n'est tenté que si l'access token expiré provenait d'un cookie.
func resolve(ctx context.Context, svc *auth.Service, r *http.Request) resolution {
	accessToken, fromCookie := accessTokenFromRequest(r)
	refreshToken := cookieValue(r, auth.RefreshTokenCookie)

	switch {
	case accessToken != "":
		user, err := svc.Validate(ctx, accessToken)
		if err == nil {
			return resolution{user: user}
		}
		if errors.Is(err, auth.ErrTokenExpired) && fromCookie && refreshToken != "" {
			return tryRefresh(ctx, svc, refreshToken)
		}
	case refreshToken != "":
		return tryRefresh(ctx, svc, refreshToken)
	}

	return resolution{}
}

func tryRefresh(ctx context.Context, svc *auth.Service, refreshToken string) resolution {
	user, pair, err := svc.Refresh(ctx, refreshToken)
	if err != nil {
		return resolution{}
	}
	return resolution{user: user, renewed: &pair}
}

// accessTokenFromRequest extrait l'access token depuis le cookie, avec repli
// sur le header Authorization. Le booléen indique la provenance cookie.
func accessTokenFromRequest(r *http.Request) (string, bool) {
	if value := cookieValue(r, auth.AccessTokenCookie); value != "" {
		return value, true
	}
	return utils.BearerToken(r), false
}

func cookieValue(r *http.Request, name string) string {
	cookie, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// GetUserFromContext récupère l'utilisateur injecté par AuthMiddleware
func GetUserFromContext(r *http.Request) (*model.User, error) {
	user, ok := r.Context().Value(userContextKey).(*model.User)
	if !ok {
		return nil, fmt.Errorf("user not found in context")
	}
	return user, nil
}
