package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/kasundularaam/flash-feather-starter-v6/internal/auth"
	"github.com/kasundularaam/flash-feather-starter-v6/internal/middleware"
	model "github.com/kasundularaam/flash-feather-starter-v6/internal/models"
	"github.com/kasundularaam/flash-feather-starter-v6/internal/services"
	"github.com/kasundularaam/flash-feather-starter-v6/internal/storage"
	"github.com/kasundularaam/flash-feather-starter-v6/internal/store"
	"github.com/kasundularaam/flash-feather-starter-v6/internal/utils"
)

// Cookie éphémère portant le state OAuth entre la redirection et le callback
const oauthStateCookie = "oauth_state"

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// GoogleAuthenticator est le contrat minimal attendu du service OAuth
type GoogleAuthenticator interface {
	AuthURL(state string) string
	Exchange(ctx context.Context, code string) (*services.GoogleProfile, error)
}

type AuthHandler struct {
	users   store.UserStore
	tokens  *auth.Service
	google  GoogleAuthenticator
	uploads *storage.LocalStorage
}

func NewAuthHandler(users store.UserStore, tokens *auth.Service, google GoogleAuthenticator, uploads *storage.LocalStorage) *AuthHandler {
	return &AuthHandler{users: users, tokens: tokens, google: google, uploads: uploads}
}

// Me retourne l'utilisateur courant, injecté par le middleware d'authentification
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.Error(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	utils.Success(w, user)
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if req.Name == "" || req.Email == "" || req.Password == "" {
		utils.Error(w, http.StatusBadRequest, "name, email and password are required")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not hash password")
		return
	}

	user, err := h.users.Create(r.Context(), &model.User{
		Name:           req.Name,
		Email:          req.Email,
		HashedPassword: string(hashed),
		AuthProvider:   model.AuthProviderLocal,
		Role:           model.RoleUser,
	})
	if err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			utils.Error(w, http.StatusConflict, "email or name already registered")
			return
		}
		utils.Error(w, http.StatusInternalServerError, "could not create user: "+err.Error())
		return
	}

	// Avatar par défaut, au mieux : l'inscription n'échoue jamais à cause de lui
	if h.uploads != nil {
		if relPath, err := h.uploads.GenerateDefaultAvatar(user.ID, user.Name); err == nil {
			pictureURL := h.uploads.FileURL(relPath)
			if err := h.users.UpdateProfilePicture(r.Context(), user.ID, pictureURL); err == nil {
				user.ProfilePicture = pictureURL
			}
		} else {
			utils.LogInfo("default avatar generation failed for %s: %v", user.ID, err)
		}
	}

	pair, err := h.tokens.IssuePair(user.ID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not issue tokens")
		return
	}
	h.tokens.SetAuthCookies(w, pair)

	utils.Success(w, model.AuthResponse{Message: "Registration successful", User: user})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	user, err := h.users.FindByEmail(r.Context(), req.Email)
	if err != nil {
		utils.Error(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(req.Password)); err != nil {
		utils.Error(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	pair, err := h.tokens.IssuePair(user.ID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not issue tokens")
		return
	}
	h.tokens.SetAuthCookies(w, pair)

	utils.Success(w, model.AuthResponse{Message: "Login successful", User: user})
}

// GoogleAuth démarre le flow OAuth : pose un cookie de state et redirige
// vers la page de consentement Google.
func (h *AuthHandler) GoogleAuth(w http.ResponseWriter, r *http.Request) {
	state := uuid.NewString()

	http.SetCookie(w, &http.Cookie{
		Name:     oauthStateCookie,
		Value:    state,
		Path:     "/",
		MaxAge:   600,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	http.Redirect(w, r, h.google.AuthURL(state), http.StatusFound)
}

// GoogleCallback vérifie le state, échange le code contre un profil vérifié,
// crée ou met à jour l'utilisateur, puis pose les cookies et redirige vers /.
func (h *AuthHandler) GoogleCallback(w http.ResponseWriter, r *http.Request) {
	stateCookie, err := r.Cookie(oauthStateCookie)
	if err != nil || stateCookie.Value == "" || stateCookie.Value != r.URL.Query().Get("state") {
		utils.Error(w, http.StatusBadRequest, "invalid oauth state")
		return
	}

	profile, err := h.google.Exchange(r.Context(), r.URL.Query().Get("code"))
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "google authentication failed: "+err.Error())
		return
	}

	user, err := h.users.FindByEmail(r.Context(), profile.Email)
	switch {
	case err == nil:
		// compte existant : rafraîchir la photo de profil si elle a changé
		if profile.Picture != "" && user.ProfilePicture != profile.Picture {
			if err := h.users.UpdateProfilePicture(r.Context(), user.ID, profile.Picture); err == nil {
				user.ProfilePicture = profile.Picture
			}
		}
	case errors.Is(err, store.ErrNotFound):
		user, err = h.createGoogleUser(r.Context(), profile)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "could not create user: "+err.Error())
			return
		}
	default:
		utils.Error(w, http.StatusInternalServerError, "could not look up user: "+err.Error())
		return
	}

	pair, err := h.tokens.IssuePair(user.ID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not issue tokens")
		return
	}
	h.tokens.SetAuthCookies(w, pair)

	http.Redirect(w, r, "/", http.StatusFound)
}

func (h *AuthHandler) createGoogleUser(ctx context.Context, profile *services.GoogleProfile) (*model.User, error) {
	name := profile.Name
	// le nom est déjà pris par un autre compte : on suffixe
	if _, err := h.users.FindByName(ctx, name); err == nil {
		name = profile.Name + "-" + uuid.NewString()[:8]
	}

	return h.users.Create(ctx, &model.User{
		Name:           name,
		Email:          profile.Email,
		AuthProvider:   model.AuthProviderGoogle,
		Role:           model.RoleUser,
		ProfilePicture: profile.Picture,
	})
}

// Logout efface inconditionnellement les deux cookies d'authentification
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.tokens.ClearAuthCookies(w)
	utils.Message(w, "Logout successful")
}
