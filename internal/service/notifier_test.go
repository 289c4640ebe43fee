package service

import (
	"context"
	"errors"
	"testing"

	"github.com/CampusDesk/notification-service/internal/model"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

func newTestNotifier(notifications *fakeNotificationRepo, students *fakeStudentRepo, mail *fakeMailer) Notifier {
	logger := zap.NewNop()
	repo := newTestRepository(notifications, students)

	return newNotifierService(
		logger,
		newStudentService(logger, repo, nil),
		newNotificationService(logger, repo, nil),
		nil,
		mail,
	)
}

func TestNotifyGradeUpdate_UnknownStudentIsSilentNoOp(t *testing.T) {
	notifications := newFakeNotificationRepo()
	mail := &fakeMailer{}
	notifier := newTestNotifier(notifications, newFakeStudentRepo(), mail)

	outcome := notifier.NotifyGradeUpdate(context.Background(), uuid.New(), "Math", "A")

	if outcome != OutcomeRecipientNotFound {
		t.Errorf("outcome = %s, want %s", outcome, OutcomeRecipientNotFound)
	}
	if notifications.rowCount() != 0 {
		t.Errorf("store writes = %d, want 0", notifications.rowCount())
	}
	if len(mail.sent) != 0 {
		t.Errorf("mail attempts = %d, want 0", len(mail.sent))
	}
}

func TestNotifyGradeUpdate_CreatesNoticeAndSendsMail(t *testing.T) {
	student := model.Student{ID: uuid.New(), FullName: "A B", Email: "s@example.com"}
	notifications := newFakeNotificationRepo()
	mail := &fakeMailer{}
	notifier := newTestNotifier(notifications, newFakeStudentRepo(student), mail)

	outcome := notifier.NotifyGradeUpdate(context.Background(), student.ID, "Math", "A")

	if outcome != OutcomeDelivered {
		t.Fatalf("outcome = %s, want %s", outcome, OutcomeDelivered)
	}

	rows, err := notifications.GetUserNotifications(context.Background(), student.ID, 20, 0)
	if err != nil {
		t.Fatalf("GetUserNotifications: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("notices = %d, want 1", len(rows))
	}
	n := rows[0]
	if n.Type != model.TypeGradeUpdate {
		t.Errorf("type = %q, want %q", n.Type, model.TypeGradeUpdate)
	}
	if n.Title != "Grade Updated" {
		t.Errorf("title = %q, want %q", n.Title, "Grade Updated")
	}
	if n.Data["courseName"] != "Math" || n.Data["grade"] != "A" {
		t.Errorf("data = %v, want courseName=Math grade=A", n.Data)
	}
	if n.IsRead {
		t.Error("new notice must be unread")
	}

	if len(mail.sent) != 1 {
		t.Fatalf("mail attempts = %d, want 1", len(mail.sent))
	}
	sent := mail.sent[0]
	if sent.to != "s@example.com" || sent.name != "A B" || sent.courseName != "Math" || sent.grade != "A" {
		t.Errorf("unexpected mail: %+v", sent)
	}
}

func TestNotifyGradeUpdate_MailFailureKeepsNotice(t *testing.T) {
	student := model.Student{ID: uuid.New(), FullName: "A B", Email: "s@example.com"}
	notifications := newFakeNotificationRepo()
	mail := &fakeMailer{sendErr: errors.New("transport down")}
	notifier := newTestNotifier(notifications, newFakeStudentRepo(student), mail)

	outcome := notifier.NotifyGradeUpdate(context.Background(), student.ID, "Math", "A")

	if outcome != OutcomeEmailFailed {
		t.Errorf("outcome = %s, want %s", outcome, OutcomeEmailFailed)
	}

	rows, err := notifications.GetUserNotifications(context.Background(), student.ID, 20, 0)
	if err != nil {
		t.Fatalf("GetUserNotifications: %v", err)
	}
	if len(rows) != 1 {
		t.Errorf("notices after mail failure = %d, want 1", len(rows))
	}
}

func TestNotifyGradeUpdate_StoreFailureSkipsMail(t *testing.T) {
	student := model.Student{ID: uuid.New(), FullName: "A B", Email: "s@example.com"}
	notifications := newFakeNotificationRepo()
	notifications.createErr = errors.New("db down")
	mail := &fakeMailer{}
	notifier := newTestNotifier(notifications, newFakeStudentRepo(student), mail)

	outcome := notifier.NotifyGradeUpdate(context.Background(), student.ID, "Math", "A")

	if outcome != OutcomeStoreFailed {
		t.Errorf("outcome = %s, want %s", outcome, OutcomeStoreFailed)
	}
	if len(mail.sent) != 0 {
		t.Errorf("mail attempts = %d, want 0", len(mail.sent))
	}
}

func TestNotifyGradeUpdate_LookupFailureIsSwallowed(t *testing.T) {
	students := newFakeStudentRepo()
	students.findErr = errors.New("db down")
	notifications := newFakeNotificationRepo()
	mail := &fakeMailer{}
	notifier := newTestNotifier(notifications, students, mail)

	outcome := notifier.NotifyGradeUpdate(context.Background(), uuid.New(), "Math", "A")

	if outcome != OutcomeStoreFailed {
		t.Errorf("outcome = %s, want %s", outcome, OutcomeStoreFailed)
	}
	if notifications.rowCount() != 0 || len(mail.sent) != 0 {
		t.Error("lookup failure must produce no store writes and no mail attempts")
	}
}

func TestNotifyAttendanceAlert(t *testing.T) {
	student := model.Student{ID: uuid.New(), FullName: "A B", Email: "s@example.com"}
	notifications := newFakeNotificationRepo()
	mail := &fakeMailer{}
	notifier := newTestNotifier(notifications, newFakeStudentRepo(student), mail)

	outcome := notifier.NotifyAttendanceAlert(context.Background(), student.ID, 62.5, 9)

	if outcome != OutcomeDelivered {
		t.Fatalf("outcome = %s, want %s", outcome, OutcomeDelivered)
	}

	rows, _ := notifications.GetUserNotifications(context.Background(), student.ID, 20, 0)
	if len(rows) != 1 {
		t.Fatalf("notices = %d, want 1", len(rows))
	}
	if rows[0].Type != model.TypeAttendanceAlert || rows[0].Title != "Attendance Alert" {
		t.Errorf("unexpected notice: type=%q title=%q", rows[0].Type, rows[0].Title)
	}
	if rows[0].Data["attendancePercentage"] != 62.5 || rows[0].Data["absences"] != 9 {
		t.Errorf("data = %v, want attendancePercentage=62.5 absences=9", rows[0].Data)
	}

	if len(mail.sent) != 1 || mail.sent[0].percentage != 62.5 || mail.sent[0].absences != 9 {
		t.Errorf("unexpected mail: %+v", mail.sent)
	}
}

func TestNotifyFeeReminder(t *testing.T) {
	student := model.Student{ID: uuid.New(), FullName: "A B", Email: "s@example.com"}
	notifications := newFakeNotificationRepo()
	mail := &fakeMailer{}
	notifier := newTestNotifier(notifications, newFakeStudentRepo(student), mail)

	outcome := notifier.NotifyFeeReminder(context.Background(), student.ID, 1500, "2026-09-30")

	if outcome != OutcomeDelivered {
		t.Fatalf("outcome = %s, want %s", outcome, OutcomeDelivered)
	}

	rows, _ := notifications.GetUserNotifications(context.Background(), student.ID, 20, 0)
	if len(rows) != 1 {
		t.Fatalf("notices = %d, want 1", len(rows))
	}
	if rows[0].Type != model.TypeFeeReminder || rows[0].Title != "Fee Payment Reminder" {
		t.Errorf("unexpected notice: type=%q title=%q", rows[0].Type, rows[0].Title)
	}
	if rows[0].Data["amount"] != float64(1500) || rows[0].Data["dueDate"] != "2026-09-30" {
		t.Errorf("data = %v, want amount=1500 dueDate=2026-09-30", rows[0].Data)
	}

	if len(mail.sent) != 1 || mail.sent[0].amount != 1500 || mail.sent[0].dueDate != "2026-09-30" {
		t.Errorf("unexpected mail: %+v", mail.sent)
	}
}

func TestNotifyTimetableUpdate_NoLookupNoMail(t *testing.T) {
	userID := uuid.New()
	notifications := newFakeNotificationRepo()
	mail := &fakeMailer{}
	// The user is deliberately absent from the directory: timetable
	// notices are bare bookkeeping.
	notifier := newTestNotifier(notifications, newFakeStudentRepo(), mail)

	outcome := notifier.NotifyTimetableUpdate(context.Background(), userID, "Room change for CS101")

	if outcome != OutcomeDelivered {
		t.Fatalf("outcome = %s, want %s", outcome, OutcomeDelivered)
	}

	rows, _ := notifications.GetUserNotifications(context.Background(), userID, 20, 0)
	if len(rows) != 1 {
		t.Fatalf("notices = %d, want 1", len(rows))
	}
	if rows[0].Type != model.TypeTimetableUpdate || rows[0].Title != "Timetable Updated" {
		t.Errorf("unexpected notice: type=%q title=%q", rows[0].Type, rows[0].Title)
	}
	if rows[0].Message != "Room change for CS101" {
		t.Errorf("message = %q", rows[0].Message)
	}

	if len(mail.sent) != 0 {
		t.Errorf("mail attempts = %d, want 0", len(mail.sent))
	}
}

func TestNotifyTimetableUpdate_StoreFailureIsSwallowed(t *testing.T) {
	notifications := newFakeNotificationRepo()
	notifications.createErr = errors.New("db down")
	notifier := newTestNotifier(notifications, newFakeStudentRepo(), &fakeMailer{})

	outcome := notifier.NotifyTimetableUpdate(context.Background(), uuid.New(), "Room change")

	if outcome != OutcomeStoreFailed {
		t.Errorf("outcome = %s, want %s", outcome, OutcomeStoreFailed)
	}
}

func TestSendAnnouncement_FanOut(t *testing.T) {
	userIDs := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}
	notifications := newFakeNotificationRepo()
	notifier := newTestNotifier(notifications, newFakeStudentRepo(), &fakeMailer{})

	outcome := notifier.SendAnnouncement(context.Background(), userIDs, "Title", "Msg")

	if outcome != OutcomeDelivered {
		t.Fatalf("outcome = %s, want %s", outcome, OutcomeDelivered)
	}
	if notifications.rowCount() != 3 {
		t.Fatalf("notices = %d, want 3", notifications.rowCount())
	}

	for _, userID := range userIDs {
		rows, _ := notifications.GetUserNotifications(context.Background(), userID, 20, 0)
		if len(rows) != 1 {
			t.Fatalf("notices for %s = %d, want 1", userID, len(rows))
		}
		if rows[0].Type != model.TypeAnnouncement || rows[0].Title != "Title" || rows[0].Message != "Msg" {
			t.Errorf("unexpected notice: %+v", rows[0])
		}
	}
}

func TestSendAnnouncement_BatchFailureLeavesNoRows(t *testing.T) {
	notifications := newFakeNotificationRepo()
	notifications.batchErr = errors.New("db down")
	notifier := newTestNotifier(notifications, newFakeStudentRepo(), &fakeMailer{})

	outcome := notifier.SendAnnouncement(context.Background(), []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}, "Title", "Msg")

	if outcome != OutcomeStoreFailed {
		t.Errorf("outcome = %s, want %s", outcome, OutcomeStoreFailed)
	}
	if notifications.rowCount() != 0 {
		t.Errorf("notices after batch failure = %d, want 0 (no partial fan-out)", notifications.rowCount())
	}
}
