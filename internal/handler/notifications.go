package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/CampusDesk/notification-service/internal/dto"
	"github.com/CampusDesk/notification-service/internal/service"
	"github.com/google/uuid"
)

func (h *Handler) notificationsGet(userID uuid.UUID, w http.ResponseWriter, r *http.Request) {
	limit, offset, err := parseLimitOffset(r)
	if err != nil {
		h.Respond(w, Resp{"error": err.Error()}, http.StatusBadRequest)
		return
	}

	notifications, err := h.services.Notification.GetUserNotifications(r.Context(), userID, limit, offset)
	if err != nil {
		h.Respond(w, Resp{"error": err.Error()}, http.StatusInternalServerError)
		return
	}

	h.Respond(w, notifications, http.StatusOK)
}

func (h *Handler) notificationsUnreadCount(userID uuid.UUID, w http.ResponseWriter, r *http.Request) {
	count, err := h.services.Notification.GetUnreadCount(r.Context(), userID)
	if err != nil {
		h.Respond(w, Resp{"error": err.Error()}, http.StatusInternalServerError)
		return
	}

	h.Respond(w, Resp{"count": count}, http.StatusOK)
}

func (h *Handler) notificationsMarkAsRead(userID uuid.UUID, w http.ResponseWriter, r *http.Request) {
	notificationIDString := r.PathValue("nId")
	notificationID, err := strconv.ParseInt(notificationIDString, 10, 64)
	if err != nil {
		h.Respond(w, Resp{"error": err.Error()}, http.StatusBadRequest)
		return
	}

	updated, err := h.services.Notification.MarkAsRead(r.Context(), notificationID, userID)
	if err != nil {
		h.Respond(w, Resp{"error": err.Error()}, http.StatusInternalServerError)
		return
	}

	h.Respond(w, Resp{"updated": updated}, http.StatusOK)
}

func (h *Handler) notificationsMarkAllAsRead(userID uuid.UUID, w http.ResponseWriter, r *http.Request) {
	count, err := h.services.Notification.MarkAllAsRead(r.Context(), userID)
	if err != nil {
		h.Respond(w, Resp{"error": err.Error()}, http.StatusInternalServerError)
		return
	}

	h.Respond(w, Resp{"updated": count}, http.StatusOK)
}

func (h *Handler) announcementsCreate(w http.ResponseWriter, r *http.Request) {
	var input dto.SendAnnouncement
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.Respond(w, Resp{"error": err.Error()}, http.StatusBadRequest)
		return
	}

	if input.Title == "" || len(input.Title) > 255 || len(input.UserIDs) == 0 {
		h.Respond(w, Resp{"error": service.ErrInvalidAnnouncementInput.Error()}, http.StatusBadRequest)
		return
	}

	outcome := h.services.Notifier.SendAnnouncement(r.Context(), input.UserIDs, input.Title, input.Message)
	if outcome == service.OutcomeStoreFailed {
		h.Respond(w, Resp{"error": service.ErrInternal.Error()}, http.StatusInternalServerError)
		return
	}

	h.Respond(w, Resp{"outcome": outcome.String()}, http.StatusCreated)
}

func parseLimitOffset(r *http.Request) (int, int, error) {
	limit := 0
	offset := 0

	if limitString := r.URL.Query().Get("limit"); limitString != "" {
		parsed, err := strconv.Atoi(limitString)
		if err != nil {
			return 0, 0, errInvalidLimitOffset
		}
		limit = parsed
	}

	if offsetString := r.URL.Query().Get("offset"); offsetString != "" {
		parsed, err := strconv.Atoi(offsetString)
		if err != nil {
			return 0, 0, errInvalidLimitOffset
		}
		offset = parsed
	}

	return limit, offset, nil
}
