package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	TypeGradeUpdate     = "grade_update"
	TypeAttendanceAlert = "attendance_alert"
	TypeFeeReminder     = "fee_reminder"
	TypeTimetableUpdate = "timetable_update"
	TypeAnnouncement    = "announcement"
)

type Notification struct {
	ID          int64          `json:"id"`
	RecipientID uuid.UUID      `json:"recipient_id"`
	Type        string         `json:"type"`
	Title       string         `json:"title"`
	Message     string         `json:"message"`
	Data        map[string]any `json:"data,omitempty"`
	IsRead      bool           `json:"is_read"`
	CreatedAt   time.Time      `json:"created_at"`
}
