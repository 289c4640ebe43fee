package dto

import "github.com/google/uuid"

type MQStudentCreated struct {
	ID       uuid.UUID `json:"id"`
	FullName string    `json:"full_name"`
	Email    string    `json:"email"`
}

type MQGradePosted struct {
	StudentID  uuid.UUID `json:"student_id"`
	CourseName string    `json:"course_name"`
	Grade      string    `json:"grade"`
}

type MQAttendanceAlert struct {
	StudentID  uuid.UUID `json:"student_id"`
	Percentage float64   `json:"percentage"`
	Absences   int       `json:"absences"`
}

type MQFeeDue struct {
	StudentID uuid.UUID `json:"student_id"`
	Amount    float64   `json:"amount"`
	DueDate   string    `json:"due_date"`
}

type MQTimetableChanged struct {
	UserID  uuid.UUID `json:"user_id"`
	Message string    `json:"message"`
}

type MQAnnouncement struct {
	UserIDs []uuid.UUID `json:"user_ids"`
	Title   string      `json:"title"`
	Message string      `json:"message"`
}
