package rabbitmq

const (
	GRADE_UPDATES_QUEUE = "notifications.grade-updates"
	ATTENDANCE_ALERTS_QUEUE = "notifications.attendance-alerts"
	FEE_REMINDERS_QUEUE = "notifications.fee-reminders"
	TIMETABLE_UPDATES_QUEUE = "notifications.timetable-updates"
	ANNOUNCEMENTS_QUEUE = "notifications.announcements"
	STUDENTS_CREATED_EXCHANGE = "students-created"
	STUDENTS_UPDATE_EXCHANGE = "students-updates"
)
