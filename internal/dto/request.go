package dto

import "github.com/google/uuid"

type SendAnnouncement struct {
	UserIDs []uuid.UUID `json:"user_ids"`
	Title   string      `json:"title"`
	Message string      `json:"message"`
}
