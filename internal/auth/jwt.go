package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Codec signe et vérifie les tokens JWT (HS256). Le même codec sert pour
// les access tokens et les refresh tokens : seule la durée de vie diffère.
type Codec struct {
	secret []byte
}

func NewCodec(secret string) Codec {
	return Codec{secret: []byte(secret)}
}

// Issue crée un token signé portant le sujet et une expiration absolue (now + ttl)
func (c Codec) Issue(subject string, ttl time.Duration) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(c.secret)
}

// Decode vérifie la signature et l'expiration, puis retourne le sujet.
// Retourne ErrTokenExpired si le token a expiré, ErrTokenInvalid pour
// tout autre problème (signature, structure, méthode de signature).
func (c Codec) Decode(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return c.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrTokenExpired
		}
		return "", ErrTokenInvalid
	}

	if !token.Valid || claims.Subject == "" {
		return "", ErrTokenInvalid
	}

	return claims.Subject, nil
}
