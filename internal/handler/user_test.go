package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kasundularaam/flash-feather-starter-v6/internal/api"
	"github.com/kasundularaam/flash-feather-starter-v6/internal/auth"
	"github.com/kasundularaam/flash-feather-starter-v6/internal/config"
	"github.com/kasundularaam/flash-feather-starter-v6/internal/handler"
	model "github.com/kasundularaam/flash-feather-starter-v6/internal/models"
	"github.com/kasundularaam/flash-feather-starter-v6/internal/storage"
	"github.com/kasundularaam/flash-feather-starter-v6/internal/store"
)

// newUploadEnv câble un stockage local réel pour le handler utilisateur
func newUploadEnv(t *testing.T) (*testEnv, *storage.LocalStorage) {
	t.Helper()

	cfg := &config.Config{
		JWTSecret:          "test-secret",
		AccessTokenExpire:  900 * time.Second,
		RefreshTokenExpire: 604800 * time.Second,
	}

	users := store.NewMemoryStore()
	tokens := auth.NewService(users, cfg)
	google := &fakeGoogle{}

	uploads, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	router := api.SetupRouter(api.Deps{
		Tokens:      tokens,
		AuthHandler: handler.NewAuthHandler(users, tokens, google, nil),
		UserHandler: handler.NewUserHandler(users, nil, uploads),
		UploadsDir:  uploads.Root(),
	})

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)

	env := &testEnv{
		server: server,
		client: &http.Client{Jar: jar},
		users:  users,
		google: google,
	}
	return env, uploads
}

func avatarForm(t *testing.T, filename, contentType string, payload []byte) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="avatar"; filename="`+filename+`"`)
	header.Set("Content-Type", contentType)

	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(payload)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	return &buf, writer.FormDataContentType()
}

func TestUploadAvatar_Unauthenticated(t *testing.T) {
	env, _ := newUploadEnv(t)

	body, contentType := avatarForm(t, "me.png", "image/png", []byte("fake-png"))
	resp, err := env.client.Post(env.server.URL+"/api/users/avatar", contentType, body)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestUploadAvatar_RejectsNonImage(t *testing.T) {
	env, _ := newUploadEnv(t)

	resp := env.postJSON(t, "/api/auth/register", map[string]string{
		"name": "a", "email": "a@x.com", "password": "p",
	})
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, contentType := avatarForm(t, "notes.txt", "text/plain", []byte("hello"))
	resp, err := env.client.Post(env.server.URL+"/api/users/avatar", contentType, body)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestUploadAvatar_SavesLocallyAndUpdatesProfile(t *testing.T) {
	env, uploads := newUploadEnv(t)

	resp := env.postJSON(t, "/api/auth/register", map[string]string{
		"name": "a", "email": "a@x.com", "password": "p",
	})
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	payload := []byte("fake-png-bytes")
	body, contentType := avatarForm(t, "me.png", "image/png", payload)
	resp, err := env.client.Post(env.server.URL+"/api/users/avatar", contentType, body)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result struct {
		Data model.User `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	require.True(t, strings.HasPrefix(result.Data.ProfilePicture, "/uploads/"))

	// le fichier existe bien sur le disque
	relPath := strings.TrimPrefix(result.Data.ProfilePicture, "/uploads/")
	saved, err := os.ReadFile(filepath.Join(uploads.Root(), relPath))
	require.NoError(t, err)
	assert.Equal(t, payload, saved)

	// et le store reflète la nouvelle photo
	user, err := env.users.FindByEmail(context.Background(), "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, result.Data.ProfilePicture, user.ProfilePicture)

	// l'avatar est servi par la route statique
	fileResp, err := env.client.Get(env.server.URL + result.Data.ProfilePicture)
	require.NoError(t, err)
	defer fileResp.Body.Close()
	assert.Equal(t, http.StatusOK, fileResp.StatusCode)
}
