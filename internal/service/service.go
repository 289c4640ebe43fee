package service

import (
	"context"

	"github.com/CampusDesk/notification-service/internal/model"
	"github.com/CampusDesk/notification-service/internal/rabbitmq"
	"github.com/CampusDesk/notification-service/internal/repository"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Notification interface {
	CreateNotification(ctx context.Context, recipientID uuid.UUID, notificationType, title, message string, data map[string]any) (int64, error)
	CreateMany(ctx context.Context, recipientIDs []uuid.UUID, notificationType, title, message string) error
	GetUserNotifications(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*model.Notification, error)
	MarkAsRead(ctx context.Context, notificationID int64, userID uuid.UUID) (bool, error)
	MarkAllAsRead(ctx context.Context, userID uuid.UUID) (int64, error)
	GetUnreadCount(ctx context.Context, userID uuid.UUID) (int64, error)
	CleanupOldNotifications(ctx context.Context) (int64, error)
	StartJobs()
}

type Notifier interface {
	NotifyGradeUpdate(ctx context.Context, studentID uuid.UUID, courseName, grade string) Outcome
	NotifyAttendanceAlert(ctx context.Context, studentID uuid.UUID, percentage float64, absences int) Outcome
	NotifyFeeReminder(ctx context.Context, studentID uuid.UUID, amount float64, dueDate string) Outcome
	NotifyTimetableUpdate(ctx context.Context, userID uuid.UUID, message string) Outcome
	SendAnnouncement(ctx context.Context, userIDs []uuid.UUID, title, message string) Outcome
	StartProcessingGradeUpdates(ctx context.Context)
	StartProcessingAttendanceAlerts(ctx context.Context)
	StartProcessingFeeReminders(ctx context.Context)
	StartProcessingTimetableUpdates(ctx context.Context)
	StartProcessingAnnouncements(ctx context.Context)
}

type Student interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.Student, error)
	StartCreating(ctx context.Context)
	StartUpdating(ctx context.Context)
}

// Mailer renders and sends the mail counterpart of a notification.
// Satisfied by mailer.Mailer.
type Mailer interface {
	SendGradeUpdateMail(to, studentName, courseName, grade string) error
	SendAttendanceAlertMail(to, studentName string, percentage float64, absences int) error
	SendFeeReminderMail(to, studentName string, amount float64, dueDate string) error
}

type Service struct {
	Notification Notification
	Notifier     Notifier
	Student      Student
}

func New(logger *zap.Logger, repo *repository.Repository, rdb *redis.Client, mq *rabbitmq.MQConn, mail Mailer) *Service {
	notifications := newNotificationService(logger, repo, rdb)
	students := newStudentService(logger, repo, mq)

	return &Service{
		Notification: notifications,
		Notifier: newNotifierService(logger, students, notifications, mq, mail),
		Student: students,
	}
}
