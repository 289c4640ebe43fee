package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/CampusDesk/notification-service/internal/model"
	"github.com/CampusDesk/notification-service/internal/repository"
	"github.com/CampusDesk/notification-service/internal/repository/postgres"
	"github.com/google/uuid"
)

// fakeNotificationRepo is an in-memory stand-in for the postgres
// notification repo with the same contracts: ownership-checked
// idempotent read marking, all-or-nothing batches, retention by age.
type fakeNotificationRepo struct {
	mu     sync.Mutex
	nextID int64
	rows   []*model.Notification
	now    func() time.Time

	createErr error
	batchErr  error
	deleteErr error
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{now: time.Now}
}

func (f *fakeNotificationRepo) Create(_ context.Context, n model.Notification) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.createErr != nil {
		return 0, f.createErr
	}

	f.nextID++
	n.ID = f.nextID
	n.CreatedAt = f.now()
	f.rows = append(f.rows, &n)

	return n.ID, nil
}

func (f *fakeNotificationRepo) GetUserNotifications(_ context.Context, recipientID uuid.UUID, limit, offset int) ([]*model.Notification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if limit <= 0 {
		limit = postgres.GET_NOTIFICATIONS_DEFAULT_LIMIT
	}
	if offset < 0 {
		offset = 0
	}

	var notifications []*model.Notification
	for _, row := range f.rows {
		if row.RecipientID == recipientID {
			copied := *row
			notifications = append(notifications, &copied)
		}
	}

	sort.SliceStable(notifications, func(i, j int) bool {
		if notifications[i].CreatedAt.Equal(notifications[j].CreatedAt) {
			return notifications[i].ID > notifications[j].ID
		}
		return notifications[i].CreatedAt.After(notifications[j].CreatedAt)
	})

	if offset >= len(notifications) {
		return nil, nil
	}
	notifications = notifications[offset:]
	if len(notifications) > limit {
		notifications = notifications[:limit]
	}

	return notifications, nil
}

func (f *fakeNotificationRepo) MarkAsRead(_ context.Context, notificationID int64, recipientID uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, row := range f.rows {
		if row.ID == notificationID && row.RecipientID == recipientID && !row.IsRead {
			row.IsRead = true
			return true, nil
		}
	}

	return false, nil
}

func (f *fakeNotificationRepo) MarkAllAsRead(_ context.Context, recipientID uuid.UUID) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var count int64
	for _, row := range f.rows {
		if row.RecipientID == recipientID && !row.IsRead {
			row.IsRead = true
			count++
		}
	}

	return count, nil
}

func (f *fakeNotificationRepo) GetUnreadCount(_ context.Context, recipientID uuid.UUID) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var count int64
	for _, row := range f.rows {
		if row.RecipientID == recipientID && !row.IsRead {
			count++
		}
	}

	return count, nil
}

func (f *fakeNotificationRepo) CreateBatch(_ context.Context, recipientIDs []uuid.UUID, notificationType, title, message string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.batchErr != nil {
		return f.batchErr
	}

	for _, recipientID := range recipientIDs {
		f.nextID++
		f.rows = append(f.rows, &model.Notification{
			ID: f.nextID,
			RecipientID: recipientID,
			Type: notificationType,
			Title: title,
			Message: message,
			CreatedAt: f.now(),
		})
	}

	return nil
}

func (f *fakeNotificationRepo) DeleteOlderThan(_ context.Context, days int) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.deleteErr != nil {
		return 0, f.deleteErr
	}

	cutoff := f.now().AddDate(0, 0, -days)

	var kept []*model.Notification
	var deleted int64
	for _, row := range f.rows {
		if row.CreatedAt.Before(cutoff) {
			deleted++
			continue
		}
		kept = append(kept, row)
	}
	f.rows = kept

	return deleted, nil
}

// insert places a row directly, bypassing Create, so tests can control
// the creation timestamp.
func (f *fakeNotificationRepo) insert(n model.Notification) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.nextID++
	n.ID = f.nextID
	f.rows = append(f.rows, &n)
}

func (f *fakeNotificationRepo) rowCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return len(f.rows)
}

type fakeStudentRepo struct {
	students map[uuid.UUID]model.Student
	findErr  error
}

func newFakeStudentRepo(students ...model.Student) *fakeStudentRepo {
	byID := make(map[uuid.UUID]model.Student, len(students))
	for _, student := range students {
		byID[student.ID] = student
	}
	return &fakeStudentRepo{students: byID}
}

func (f *fakeStudentRepo) Create(_ context.Context, student model.Student) error {
	f.students[student.ID] = student
	return nil
}

func (f *fakeStudentRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Student, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}

	student, ok := f.students[id]
	if !ok {
		return nil, nil
	}
	return &student, nil
}

func (f *fakeStudentRepo) UpdateByID(_ context.Context, id uuid.UUID, updates map[string]interface{}) error {
	return nil
}

type sentMail struct {
	to         string
	name       string
	courseName string
	grade      string
	percentage float64
	absences   int
	amount     float64
	dueDate    string
}

type fakeMailer struct {
	sent    []sentMail
	sendErr error
}

func (f *fakeMailer) SendGradeUpdateMail(to, studentName, courseName, grade string) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent = append(f.sent, sentMail{to: to, name: studentName, courseName: courseName, grade: grade})
	return nil
}

func (f *fakeMailer) SendAttendanceAlertMail(to, studentName string, percentage float64, absences int) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent = append(f.sent, sentMail{to: to, name: studentName, percentage: percentage, absences: absences})
	return nil
}

func (f *fakeMailer) SendFeeReminderMail(to, studentName string, amount float64, dueDate string) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent = append(f.sent, sentMail{to: to, name: studentName, amount: amount, dueDate: dueDate})
	return nil
}

func newTestRepository(notifications *fakeNotificationRepo, students *fakeStudentRepo) *repository.Repository {
	return &repository.Repository{
		Postgres: &postgres.PGRepo{
			Notification: notifications,
			Student: students,
		},
	}
}
