package handler

import (
	"net/http"

	"github.com/kasundularaam/flash-feather-starter-v6/internal/middleware"
	"github.com/kasundularaam/flash-feather-starter-v6/internal/services"
	"github.com/kasundularaam/flash-feather-starter-v6/internal/storage"
	"github.com/kasundularaam/flash-feather-starter-v6/internal/store"
	"github.com/kasundularaam/flash-feather-starter-v6/internal/utils"
)

type UserHandler struct {
	users      store.UserStore
	cloudinary *services.CloudinaryService
	uploads    *storage.LocalStorage
}

// NewUserHandler construit le handler utilisateur. cloudinary peut être nil :
// les avatars sont alors stockés sur le disque local.
func NewUserHandler(users store.UserStore, cloudinary *services.CloudinaryService, uploads *storage.LocalStorage) *UserHandler {
	return &UserHandler{users: users, cloudinary: cloudinary, uploads: uploads}
}

// UploadAvatar remplace la photo de profil de l'utilisateur courant
func (h *UserHandler) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.GetUserFromContext(r)
	if err != nil {
		utils.Error(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	// Limiter la taille du fichier à 10MB
	r.ParseMultipartForm(10 << 20)

	file, fileHeader, err := r.FormFile("avatar")
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "no file uploaded")
		return
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType != "image/jpeg" && contentType != "image/png" && contentType != "image/jpg" {
		utils.Error(w, http.StatusBadRequest, "only JPEG and PNG images are allowed")
		return
	}

	var pictureURL string
	if h.cloudinary != nil {
		pictureURL, err = h.cloudinary.UploadAvatar(r.Context(), file, user.ID)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "could not upload avatar: "+err.Error())
			return
		}
	} else {
		relPath, err := h.uploads.Save(file, fileHeader.Filename, storage.AvatarsFolder)
		if err != nil {
			utils.Error(w, http.StatusInternalServerError, "could not save avatar: "+err.Error())
			return
		}
		pictureURL = h.uploads.FileURL(relPath)
	}

	if err := h.users.UpdateProfilePicture(r.Context(), user.ID, pictureURL); err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not update avatar: "+err.Error())
		return
	}

	updated, err := h.users.FindByID(r.Context(), user.ID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "could not fetch updated user: "+err.Error())
		return
	}

	utils.Success(w, updated)
}
