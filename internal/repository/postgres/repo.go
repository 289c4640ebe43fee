package postgres

import (
	"context"

	"github.com/CampusDesk/notification-service/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Notification interface {
	Create(ctx context.Context, n model.Notification) (int64, error)
	GetUserNotifications(ctx context.Context, recipientID uuid.UUID, limit, offset int) ([]*model.Notification, error)
	MarkAsRead(ctx context.Context, notificationID int64, recipientID uuid.UUID) (bool, error)
	MarkAllAsRead(ctx context.Context, recipientID uuid.UUID) (int64, error)
	GetUnreadCount(ctx context.Context, recipientID uuid.UUID) (int64, error)
	CreateBatch(ctx context.Context, recipientIDs []uuid.UUID, notificationType, title, message string) error
	DeleteOlderThan(ctx context.Context, days int) (int64, error)
}

type Student interface {
	Create(ctx context.Context, student model.Student) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Student, error)
	UpdateByID(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error
}

type PGRepo struct {
	Notification Notification
	Student      Student
}

func New(db *pgxpool.Pool) *PGRepo {
	return &PGRepo{
		Notification: newNotificationRepo(db),
		Student: newStudentRepo(db),
	}
}
