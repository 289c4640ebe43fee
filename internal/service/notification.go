package service

import (
	"context"
	"time"

	"github.com/CampusDesk/notification-service/internal/model"
	"github.com/CampusDesk/notification-service/internal/repository"
	"github.com/CampusDesk/notification-service/internal/repository/postgres"
	"github.com/CampusDesk/notification-service/internal/repository/redisrepo"
	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const notificationsCacheTTL = time.Minute * 2

type notificationService struct {
	logger *zap.Logger
	repo *repository.Repository
	rdb *redis.Client
	scheduler gocron.Scheduler
}

func newNotificationService(logger *zap.Logger, repo *repository.Repository, rdb *redis.Client) Notification {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		panic(err)
	}

	return &notificationService{
		logger: logger,
		repo: repo,
		rdb: rdb,
		scheduler: scheduler,
	}
}

func (s *notificationService) CreateNotification(ctx context.Context, recipientID uuid.UUID, notificationType, title, message string, data map[string]any) (int64, error) {
	id, err := s.repo.Postgres.Notification.Create(ctx, model.Notification{
		RecipientID: recipientID,
		Type: notificationType,
		Title: title,
		Message: message,
		Data: data,
	})
	if err != nil {
		return 0, err
	}

	s.invalidateUserCaches(ctx, recipientID)

	return id, nil
}

func (s *notificationService) CreateMany(ctx context.Context, recipientIDs []uuid.UUID, notificationType, title, message string) error {
	if err := s.repo.Postgres.Notification.CreateBatch(ctx, recipientIDs, notificationType, title, message); err != nil {
		return err
	}

	s.invalidateUserCaches(ctx, recipientIDs...)

	return nil
}

func (s *notificationService) GetUserNotifications(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*model.Notification, error) {
	// Clamp before building the cache key so equivalent requests
	// share one cached page.
	if limit <= 0 {
		limit = postgres.GET_NOTIFICATIONS_DEFAULT_LIMIT
	}
	if limit > postgres.GET_NOTIFICATIONS_MAX_LIMIT {
		limit = postgres.GET_NOTIFICATIONS_MAX_LIMIT
	}
	if offset < 0 {
		offset = 0
	}

	cacheKey := redisrepo.UserNotificationsKey(userID.String(), limit, offset)

	if s.rdb != nil {
		notificationsCache, err := redisrepo.Get[[]*model.Notification](s.rdb, ctx, cacheKey)
		if err == nil {
			return *notificationsCache, nil
		}
		if err != redis.Nil {
			s.logger.Sugar().Errorf("failed to get user(%s)'s notifications from redis: %s", userID.String(), err.Error())
		}
	}

	notifications, err := s.repo.Postgres.Notification.GetUserNotifications(ctx, userID, limit, offset)
	if err != nil {
		s.logger.Sugar().Errorf("failed to get user(%s)'s notifications from postgres: %s", userID.String(), err.Error())
		return nil, err
	}

	if s.rdb != nil {
		if err := redisrepo.SetJSON(s.rdb, ctx, cacheKey, notifications, notificationsCacheTTL); err != nil {
			s.logger.Sugar().Errorf("failed to set user(%s)'s notifications in redis cache: %s", userID.String(), err.Error())
		} else if err := redisrepo.TrackKey(s.rdb, ctx, redisrepo.UserNotificationsKeysKey(userID.String()), cacheKey, notificationsCacheTTL); err != nil {
			s.logger.Sugar().Errorf("failed to track user(%s)'s notifications cache key: %s", userID.String(), err.Error())
		}
	}

	return notifications, nil
}

func (s *notificationService) MarkAsRead(ctx context.Context, notificationID int64, userID uuid.UUID) (bool, error) {
	changed, err := s.repo.Postgres.Notification.MarkAsRead(ctx, notificationID, userID)
	if err != nil {
		return false, err
	}

	if changed {
		s.invalidateUserCaches(ctx, userID)
	}

	return changed, nil
}

func (s *notificationService) MarkAllAsRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	count, err := s.repo.Postgres.Notification.MarkAllAsRead(ctx, userID)
	if err != nil {
		return 0, err
	}

	if count > 0 {
		s.invalidateUserCaches(ctx, userID)
	}

	return count, nil
}

func (s *notificationService) GetUnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	cacheKey := redisrepo.UserUnreadCountKey(userID.String())

	if s.rdb != nil {
		countCache, err := redisrepo.Get[int64](s.rdb, ctx, cacheKey)
		if err == nil {
			return *countCache, nil
		}
		if err != redis.Nil {
			s.logger.Sugar().Errorf("failed to get user(%s)'s unread count from redis: %s", userID.String(), err.Error())
		}
	}

	count, err := s.repo.Postgres.Notification.GetUnreadCount(ctx, userID)
	if err != nil {
		return 0, err
	}

	if s.rdb != nil {
		if err := redisrepo.SetJSON(s.rdb, ctx, cacheKey, count, notificationsCacheTTL); err != nil {
			s.logger.Sugar().Errorf("failed to set user(%s)'s unread count in redis cache: %s", userID.String(), err.Error())
		}
	}

	return count, nil
}

func (s *notificationService) CleanupOldNotifications(ctx context.Context) (int64, error) {
	return s.repo.Postgres.Notification.DeleteOlderThan(ctx, postgres.OLD_NOTIFICATIONS_DAYS)
}

// invalidateUserCaches drops the unread-count key and every tracked
// notification page for the given users, so reads after a write never
// serve a stale cache entry.
func (s *notificationService) invalidateUserCaches(ctx context.Context, userIDs ...uuid.UUID) {
	if s.rdb == nil || len(userIDs) == 0 {
		return
	}

	keys := make([]string, 0, len(userIDs))
	for _, userID := range userIDs {
		keys = append(keys, redisrepo.UserUnreadCountKey(userID.String()))
	}

	if err := redisrepo.Del(s.rdb, ctx, keys...); err != nil {
		s.logger.Sugar().Errorf("failed to invalidate unread count cache: %s", err.Error())
	}

	for _, userID := range userIDs {
		if err := redisrepo.DelTracked(s.rdb, ctx, redisrepo.UserNotificationsKeysKey(userID.String())); err != nil {
			s.logger.Sugar().Errorf("failed to invalidate user(%s)'s notifications cache: %s", userID.String(), err.Error())
		}
	}
}

func (s *notificationService) newCleanupOldNotificationsJob() {
	s.scheduler.NewJob(gocron.DurationJob(time.Hour * 12), gocron.NewTask(func(ctx context.Context) {
		count, err := s.CleanupOldNotifications(ctx)
		if err != nil {
			s.logger.Sugar().Errorf("failed to delete old notifications: %s", err.Error())
			return
		}

		s.logger.Sugar().Infof("deleted %d old notifications", count)
	}))
}

func (s *notificationService) StartJobs() {
	s.newCleanupOldNotificationsJob()

	s.scheduler.Start()
}
