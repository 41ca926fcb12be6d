package storage

import (
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
)

// GenerateDefaultAvatar télécharge un avatar par défaut (initiales) via
// l'API DiceBear et le stocke dans le dossier avatars. Retourne le chemin
// relatif du fichier.
func (s *LocalStorage) GenerateDefaultAvatar(userID, userName string) (string, error) {
	avatarURL := fmt.Sprintf("https://api.dicebear.com/7.x/initials/svg?seed=%s", url.QueryEscape(userName))

	resp, err := http.Get(avatarURL)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to download avatar: status %d", resp.StatusCode)
	}

	filename := userID + ".svg"
	fullPath := filepath.Join(s.root, AvatarsFolder, filename)

	file, err := os.Create(fullPath)
	if err != nil {
		return "", err
	}
	defer file.Close()

	if _, err := file.ReadFrom(resp.Body); err != nil {
		return "", err
	}

	return path.Join(AvatarsFolder, filename), nil
}
