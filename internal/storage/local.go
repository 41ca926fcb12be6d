// Package storage gère le stockage local des fichiers uploadés
// (avatars et fichiers temporaires) servis sous /uploads/.
package storage

import (
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"

	"github.com/google/uuid"
)

const (
	AvatarsFolder = "avatars"
	TempFolder    = "temp"
)

type LocalStorage struct {
	root string
}

// NewLocalStorage initialise le répertoire d'uploads et ses sous-dossiers
func NewLocalStorage(root string) (*LocalStorage, error) {
	for _, sub := range []string{AvatarsFolder, TempFolder} {
		if err := os.MkdirAll(filepath.Join(root, sub), 0o755); err != nil {
			return nil, fmt.Errorf("could not create uploads directory: %w", err)
		}
	}
	return &LocalStorage{root: root}, nil
}

// Root retourne le répertoire racine des uploads (pour le montage statique)
func (s *LocalStorage) Root() string {
	return s.root
}

// Save écrit le fichier sous un nom unique et retourne son chemin relatif
// ("avatars/<uuid>.jpg"), utilisable avec FileURL.
func (s *LocalStorage) Save(src io.Reader, originalName, subfolder string) (string, error) {
	if subfolder == "" {
		subfolder = TempFolder
	}

	filename := uuid.NewString() + filepath.Ext(originalName)
	fullPath := filepath.Join(s.root, subfolder, filename)

	dst, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("could not create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("could not write file: %w", err)
	}

	return path.Join(subfolder, filename), nil
}

// Delete supprime un fichier par son chemin relatif
func (s *LocalStorage) Delete(relPath string) error {
	fullPath := filepath.Join(s.root, filepath.FromSlash(relPath))
	if err := os.Remove(fullPath); err != nil {
		return fmt.Errorf("could not delete file: %w", err)
	}
	return nil
}

// FileURL retourne l'URL publique d'un fichier uploadé
func (s *LocalStorage) FileURL(relPath string) string {
	return "/uploads/" + relPath
}
