package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/CampusDesk/notification-service/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	GET_NOTIFICATIONS_DEFAULT_LIMIT = 20
	GET_NOTIFICATIONS_MAX_LIMIT = 100
	OLD_NOTIFICATIONS_DAYS = 30
)

type notificationRepo struct {
	db *pgxpool.Pool
}

func newNotificationRepo(db *pgxpool.Pool) Notification {
	return &notificationRepo{
		db: db,
	}
}

func (r *notificationRepo) Create(ctx context.Context, n model.Notification) (int64, error) {
	var data []byte
	if n.Data != nil {
		encoded, err := json.Marshal(n.Data)
		if err != nil {
			return 0, storeErr("encoding notification data", err)
		}
		data = encoded
	}

	var id int64
	if err := r.db.QueryRow(
		ctx,
		"INSERT INTO notifications(recipient_id, type, title, message, data) VALUES($1, $2, $3, $4, $5) RETURNING id",
		n.RecipientID, n.Type, n.Title, n.Message, data,
	).Scan(&id); err != nil {
		return 0, storeErr("creating notification", err)
	}

	return id, nil
}

func (r *notificationRepo) GetUserNotifications(ctx context.Context, recipientID uuid.UUID, limit, offset int) ([]*model.Notification, error) {
	if limit <= 0 {
		limit = GET_NOTIFICATIONS_DEFAULT_LIMIT
	}
	if limit > GET_NOTIFICATIONS_MAX_LIMIT {
		limit = GET_NOTIFICATIONS_MAX_LIMIT
	}
	if offset < 0 {
		offset = 0
	}

	rows, err := r.db.Query(
		ctx,
		`
		SELECT n.id, n.type, n.title, n.message, n.data, n.is_read, n.created_at
		FROM notifications n
		WHERE n.recipient_id = $1
		ORDER BY n.created_at DESC
		LIMIT $2
		OFFSET $3
		`,
		recipientID, limit, offset,
	)
	if err != nil {
		return nil, storeErr("getting notifications", err)
	}
	defer rows.Close()

	var notifications []*model.Notification
	for rows.Next() {
		var n model.Notification
		var data []byte
		if err := rows.Scan(&n.ID, &n.Type, &n.Title, &n.Message, &data, &n.IsRead, &n.CreatedAt); err != nil {
			return nil, storeErr("scanning notification", err)
		}
		n.RecipientID = recipientID

		if len(data) > 0 {
			if err := json.Unmarshal(data, &n.Data); err != nil {
				return nil, storeErr("decoding notification data", err)
			}
		}

		notifications = append(notifications, &n)
	}

	if err := rows.Err(); err != nil {
		return nil, storeErr("getting notifications", err)
	}

	return notifications, nil
}

func (r *notificationRepo) MarkAsRead(ctx context.Context, notificationID int64, recipientID uuid.UUID) (bool, error) {
	tag, err := r.db.Exec(
		ctx,
		"UPDATE notifications SET is_read = TRUE WHERE id = $1 AND recipient_id = $2 AND is_read = FALSE",
		notificationID, recipientID,
	)
	if err != nil {
		return false, storeErr("marking notification as read", err)
	}

	return tag.RowsAffected() > 0, nil
}

func (r *notificationRepo) MarkAllAsRead(ctx context.Context, recipientID uuid.UUID) (int64, error) {
	tag, err := r.db.Exec(
		ctx,
		"UPDATE notifications SET is_read = TRUE WHERE recipient_id = $1 AND is_read = FALSE",
		recipientID,
	)
	if err != nil {
		return 0, storeErr("marking all notifications as read", err)
	}

	return tag.RowsAffected(), nil
}

func (r *notificationRepo) GetUnreadCount(ctx context.Context, recipientID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.QueryRow(
		ctx,
		"SELECT COUNT(*) FROM notifications WHERE recipient_id = $1 AND is_read = FALSE",
		recipientID,
	).Scan(&count); err != nil {
		return 0, storeErr("counting unread notifications", err)
	}

	return count, nil
}

// CreateBatch inserts one notification per recipient as a single
// transactional unit: the broadcast either lands for every recipient
// or for none of them.
func (r *notificationRepo) CreateBatch(ctx context.Context, recipientIDs []uuid.UUID, notificationType, title, message string) error {
	if len(recipientIDs) == 0 {
		return nil
	}

	query := "INSERT INTO notifications(recipient_id, type, title, message) VALUES "
	values := []interface{}{}
	counter := 1

	for _, recipientID := range recipientIDs {
		query += fmt.Sprintf("($%d, $%d, $%d, $%d),", counter, counter+1, counter+2, counter+3)
		values = append(values, recipientID, notificationType, title, message)
		counter += 4
	}
	query = query[:len(query)-1]

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return storeErr("beginning notification batch", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, query, values...); err != nil {
		return storeErr("creating notification batch", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return storeErr("committing notification batch", err)
	}

	return nil
}

func (r *notificationRepo) DeleteOlderThan(ctx context.Context, days int) (int64, error) {
	tag, err := r.db.Exec(
		ctx,
		"DELETE FROM notifications WHERE created_at < NOW() - MAKE_INTERVAL(days => $1)",
		days,
	)
	if err != nil {
		return 0, storeErr("deleting old notifications", err)
	}

	return tag.RowsAffected(), nil
}
