package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/CampusDesk/notification-service/internal/dto"
	"github.com/CampusDesk/notification-service/internal/model"
	"github.com/CampusDesk/notification-service/internal/rabbitmq"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// notifierService ties domain events to persisted notices and
// best-effort mail delivery. Its operations never return an error:
// failures are logged and reported through the Outcome value only, so
// that a notification problem can never abort the primary transaction
// (grade posting, fee billing, ...) that triggered it.
type notifierService struct {
	logger *zap.Logger
	students Student
	notifications Notification
	rabbitmq *rabbitmq.MQConn
	mailer Mailer
}

func newNotifierService(logger *zap.Logger, students Student, notifications Notification, mq *rabbitmq.MQConn, mail Mailer) Notifier {
	return &notifierService{
		logger: logger,
		students: students,
		notifications: notifications,
		rabbitmq: mq,
		mailer: mail,
	}
}

// notifyStudent runs the shared two-phase sequence: resolve the
// student, persist the notice, then attempt the mail counterpart. A
// mail failure leaves the persisted notice untouched.
func (s *notifierService) notifyStudent(ctx context.Context, studentID uuid.UUID, notificationType, title, message string, data map[string]any, sendMail func(student *model.Student) error) Outcome {
	student, err := s.students.FindByID(ctx, studentID)
	if err != nil {
		s.logger.Sugar().Errorf("failed to resolve student(%s): %s", studentID.String(), err.Error())
		return OutcomeStoreFailed
	}
	if student == nil {
		return OutcomeRecipientNotFound
	}

	if _, err := s.notifications.CreateNotification(ctx, student.ID, notificationType, title, message, data); err != nil {
		s.logger.Sugar().Errorf("failed to create %s notification for student(%s): %s", notificationType, studentID.String(), err.Error())
		return OutcomeStoreFailed
	}

	if err := sendMail(student); err != nil {
		s.logger.Sugar().Errorf("failed to send %s mail to(%s): %s", notificationType, student.Email, err.Error())
		return OutcomeEmailFailed
	}

	return OutcomeDelivered
}

func (s *notifierService) NotifyGradeUpdate(ctx context.Context, studentID uuid.UUID, courseName, grade string) Outcome {
	message := fmt.Sprintf("Your grade for %s has been updated to %s", courseName, grade)
	data := map[string]any{"courseName": courseName, "grade": grade}

	return s.notifyStudent(ctx, studentID, model.TypeGradeUpdate, "Grade Updated", message, data, func(student *model.Student) error {
		return s.mailer.SendGradeUpdateMail(student.Email, student.FullName, courseName, grade)
	})
}

func (s *notifierService) NotifyAttendanceAlert(ctx context.Context, studentID uuid.UUID, percentage float64, absences int) Outcome {
	message := fmt.Sprintf("Your attendance has dropped to %.1f%% with %d recorded absences", percentage, absences)
	data := map[string]any{"attendancePercentage": percentage, "absences": absences}

	return s.notifyStudent(ctx, studentID, model.TypeAttendanceAlert, "Attendance Alert", message, data, func(student *model.Student) error {
		return s.mailer.SendAttendanceAlertMail(student.Email, student.FullName, percentage, absences)
	})
}

func (s *notifierService) NotifyFeeReminder(ctx context.Context, studentID uuid.UUID, amount float64, dueDate string) Outcome {
	message := fmt.Sprintf("You have an outstanding fee payment of %.2f due on %s", amount, dueDate)
	data := map[string]any{"amount": amount, "dueDate": dueDate}

	return s.notifyStudent(ctx, studentID, model.TypeFeeReminder, "Fee Payment Reminder", message, data, func(student *model.Student) error {
		return s.mailer.SendFeeReminderMail(student.Email, student.FullName, amount, dueDate)
	})
}

// NotifyTimetableUpdate creates a bare in-app notice with no mail
// counterpart and no directory lookup.
func (s *notifierService) NotifyTimetableUpdate(ctx context.Context, userID uuid.UUID, message string) Outcome {
	if _, err := s.notifications.CreateNotification(ctx, userID, model.TypeTimetableUpdate, "Timetable Updated", message, nil); err != nil {
		s.logger.Sugar().Errorf("failed to create timetable notification for user(%s): %s", userID.String(), err.Error())
		return OutcomeStoreFailed
	}

	return OutcomeDelivered
}

// SendAnnouncement fans one notice out to every given user as a single
// atomic batch. In-app only.
func (s *notifierService) SendAnnouncement(ctx context.Context, userIDs []uuid.UUID, title, message string) Outcome {
	if err := s.notifications.CreateMany(ctx, userIDs, model.TypeAnnouncement, title, message); err != nil {
		s.logger.Sugar().Errorf("failed to create announcement notifications for %d users: %s", len(userIDs), err.Error())
		return OutcomeStoreFailed
	}

	return OutcomeDelivered
}

func (s *notifierService) StartProcessingGradeUpdates(ctx context.Context) {
	msgs, err := s.rabbitmq.Consume(rabbitmq.GRADE_UPDATES_QUEUE)
	if err != nil {
		panic(err)
	}

	for msg := range msgs {
		var gradePosted dto.MQGradePosted
		if err := json.Unmarshal(msg.Body, &gradePosted); err != nil {
			msg.Ack(false)
			continue
		}

		outcome := s.NotifyGradeUpdate(ctx, gradePosted.StudentID, gradePosted.CourseName, gradePosted.Grade)
		if outcome != OutcomeDelivered {
			s.logger.Sugar().Infof("grade update notification for student(%s) finished: %s", gradePosted.StudentID.String(), outcome)
		}

		msg.Ack(false)
	}
}

func (s *notifierService) StartProcessingAttendanceAlerts(ctx context.Context) {
	msgs, err := s.rabbitmq.Consume(rabbitmq.ATTENDANCE_ALERTS_QUEUE)
	if err != nil {
		panic(err)
	}

	for msg := range msgs {
		var alert dto.MQAttendanceAlert
		if err := json.Unmarshal(msg.Body, &alert); err != nil {
			msg.Ack(false)
			continue
		}

		outcome := s.NotifyAttendanceAlert(ctx, alert.StudentID, alert.Percentage, alert.Absences)
		if outcome != OutcomeDelivered {
			s.logger.Sugar().Infof("attendance alert notification for student(%s) finished: %s", alert.StudentID.String(), outcome)
		}

		msg.Ack(false)
	}
}

func (s *notifierService) StartProcessingFeeReminders(ctx context.Context) {
	msgs, err := s.rabbitmq.Consume(rabbitmq.FEE_REMINDERS_QUEUE)
	if err != nil {
		panic(err)
	}

	for msg := range msgs {
		var feeDue dto.MQFeeDue
		if err := json.Unmarshal(msg.Body, &feeDue); err != nil {
			msg.Ack(false)
			continue
		}

		outcome := s.NotifyFeeReminder(ctx, feeDue.StudentID, feeDue.Amount, feeDue.DueDate)
		if outcome != OutcomeDelivered {
			s.logger.Sugar().Infof("fee reminder notification for student(%s) finished: %s", feeDue.StudentID.String(), outcome)
		}

		msg.Ack(false)
	}
}

func (s *notifierService) StartProcessingTimetableUpdates(ctx context.Context) {
	msgs, err := s.rabbitmq.Consume(rabbitmq.TIMETABLE_UPDATES_QUEUE)
	if err != nil {
		panic(err)
	}

	for msg := range msgs {
		var changed dto.MQTimetableChanged
		if err := json.Unmarshal(msg.Body, &changed); err != nil {
			msg.Ack(false)
			continue
		}

		outcome := s.NotifyTimetableUpdate(ctx, changed.UserID, changed.Message)
		if outcome != OutcomeDelivered {
			s.logger.Sugar().Infof("timetable update notification for user(%s) finished: %s", changed.UserID.String(), outcome)
		}

		msg.Ack(false)
	}
}

func (s *notifierService) StartProcessingAnnouncements(ctx context.Context) {
	msgs, err := s.rabbitmq.Consume(rabbitmq.ANNOUNCEMENTS_QUEUE)
	if err != nil {
		panic(err)
	}

	for msg := range msgs {
		var announcement dto.MQAnnouncement
		if err := json.Unmarshal(msg.Body, &announcement); err != nil {
			msg.Ack(false)
			continue
		}

		outcome := s.SendAnnouncement(ctx, announcement.UserIDs, announcement.Title, announcement.Message)
		if outcome != OutcomeDelivered {
			s.logger.Sugar().Infof("announcement for %d users finished: %s", len(announcement.UserIDs), outcome)
		}

		msg.Ack(false)
	}
}
