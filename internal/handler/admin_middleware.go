package handler

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
)

func (h *Handler) adminMiddleware(r *http.Request) (uuid.UUID, error) {
	claims, err := h.getJWTClaims(r)
	if err != nil {
		return uuid.Nil, err
	}

	role, ok := claims["role"].(string)
	if !ok {
		return uuid.Nil, errInvalidJWT
	}

	if strings.ToLower(role) != "admin" {
		return uuid.Nil, errNotAdmin
	}

	userIDString, ok := claims["id"].(string)
	if !ok {
		return uuid.Nil, errInvalidJWT
	}
	userID, err := uuid.Parse(userIDString)
	if err != nil {
		return uuid.Nil, errInvalidUserID
	}

	return userID, nil
}
