package redisrepo

import "fmt"

const (
	USER_NOTIFICATIONS = "user:%s-notifications:%d:%d" // <userID>:<limit>:<offset>
	USER_NOTIFICATIONS_KEYS = "user:%s-notifications-keys"
	USER_UNREAD_COUNT = "user:%s-unread-count"
)

func UserNotificationsKey(userID string, limit int, offset int) string {
	return fmt.Sprintf(USER_NOTIFICATIONS, userID, limit, offset)
}

func UserNotificationsKeysKey(userID string) string {
	return fmt.Sprintf(USER_NOTIFICATIONS_KEYS, userID)
}

func UserUnreadCountKey(userID string) string {
	return fmt.Sprintf(USER_UNREAD_COUNT, userID)
}
