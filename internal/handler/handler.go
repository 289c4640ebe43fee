package handler

import (
	"encoding/json"
	"net/http"

	"github.com/CampusDesk/notification-service/internal/service"
)

type Resp map[string]interface{}

type Handler struct {
	services *service.Service
}

func New(services *service.Service) *Handler {
	return &Handler{
		services: services,
	}
}

func (h *Handler) SetupRoutes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/v1/notifications", func(w http.ResponseWriter, r *http.Request) {
		userID, err := h.authMiddleware(r)
		if err != nil {
			h.Respond(w, Resp{"error": err.Error()}, http.StatusUnauthorized)
			return
		}

		h.notificationsGet(userID, w, r)
	})

	mux.HandleFunc("GET /api/v1/notifications/unread-count", func(w http.ResponseWriter, r *http.Request) {
		userID, err := h.authMiddleware(r)
		if err != nil {
			h.Respond(w, Resp{"error": err.Error()}, http.StatusUnauthorized)
			return
		}

		h.notificationsUnreadCount(userID, w, r)
	})

	mux.HandleFunc("PATCH /api/v1/notifications/{nId}/read", func(w http.ResponseWriter, r *http.Request) {
		userID, err := h.authMiddleware(r)
		if err != nil {
			h.Respond(w, Resp{"error": err.Error()}, http.StatusUnauthorized)
			return
		}

		h.notificationsMarkAsRead(userID, w, r)
	})

	mux.HandleFunc("POST /api/v1/notifications/read-all", func(w http.ResponseWriter, r *http.Request) {
		userID, err := h.authMiddleware(r)
		if err != nil {
			h.Respond(w, Resp{"error": err.Error()}, http.StatusUnauthorized)
			return
		}

		h.notificationsMarkAllAsRead(userID, w, r)
	})

	mux.HandleFunc("POST /api/v1/announcements", func(w http.ResponseWriter, r *http.Request) {
		if _, err := h.adminMiddleware(r); err != nil {
			h.Respond(w, Resp{"error": err.Error()}, http.StatusUnauthorized)
			return
		}

		h.announcementsCreate(w, r)
	})

	return mux
}

func (h *Handler) Respond(w http.ResponseWriter, resp any, statusCode int) {
	respJSON, _ := json.Marshal(resp)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	w.Write(respJSON)
}
