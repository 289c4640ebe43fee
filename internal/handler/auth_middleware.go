package handler

import (
	"net/http"
	"os"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	jwtmanager "github.com/morf1lo/jwt-pair-manager"
)

func (h *Handler) getJWTClaims(r *http.Request) (jwt.MapClaims, error) {
	bearerHeader := r.Header.Get("Authorization")

	if !strings.HasPrefix(bearerHeader, "Bearer ") {
		return nil, errNoToken
	}

	token := strings.TrimPrefix(bearerHeader, "Bearer ")
	if token == "" {
		return nil, errNoToken
	}

	return jwtmanager.DecodeJWT(token, []byte(os.Getenv("ACCESS_SECRET")))
}

func (h *Handler) authMiddleware(r *http.Request) (uuid.UUID, error) {
	claims, err := h.getJWTClaims(r)
	if err != nil {
		return uuid.Nil, err
	}

	userIDString, exists := claims["id"].(string)
	if !exists {
		return uuid.Nil, errInvalidJWT
	}
	userID, err := uuid.Parse(userIDString)
	if err != nil {
		return uuid.Nil, errInvalidUserID
	}

	return userID, nil
}
