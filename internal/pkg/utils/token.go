package utils

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/spf13/viper"

	"github.com/crimewatch/backend/internal/pkg/constants"
)

// AuthTokenWrapper is the claim set issued to admins for the
// management API. The embedded secret is checked against config on
// every parse.
type AuthTokenWrapper struct {
	UserID   int64  `json:"user_id"`
	UserType string `json:"user_type"`
	Secret   string `json:"secret"`
	jwt.StandardClaims
}

const tokenTTL = 24 * time.Hour

func GenerateAuthToken(w *AuthTokenWrapper) (string, error) {
	w.Secret = viper.GetString(constants.ViperSecretKey)
	w.ExpiresAt = time.Now().Add(tokenTTL).Unix()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, w)
	signed, err := token.SignedString([]byte(viper.GetString(constants.ViperSecretKey)))
	if err != nil {
		return "", fmt.Errorf("jwt.SignedString: %w", err)
	}

	return signed, nil
}

func ParseAuthToken(tokenStr string) (*AuthTokenWrapper, error) {
	wrapper := new(AuthTokenWrapper)
	token, err := jwt.ParseWithClaims(tokenStr, wrapper, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(viper.GetString(constants.ViperSecretKey)), nil
	})
	if err != nil {
		return nil, constants.ErrUnauthorized
	}
	if !token.Valid {
		return nil, constants.ErrUnauthorized
	}

	return wrapper, nil
}
