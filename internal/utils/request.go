package utils

import (
	"encoding/json"
	"net/http"
	"strings"
)

func DecodeJSON(r *http.Request, dest interface{}) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(dest)
}

// BearerToken extrait le token du header Authorization ("Bearer <token>"),
// ou retourne une chaîne vide si le header est absent ou mal formé.
func BearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}
