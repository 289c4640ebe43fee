package mailer

import (
	"fmt"

	"go.uber.org/zap"
)

// EmailError wraps a mail transport failure.
type EmailError struct {
	Err error
}

func (e *EmailError) Error() string {
	return "failed to send mail: " + e.Err.Error()
}

func (e *EmailError) Unwrap() error {
	return e.Err
}

// Envelope is a rendered, transport-neutral mail message.
type Envelope struct {
	To      string
	Subject string
	Body    string
}

// MailTransport delivers an envelope over a concrete mail protocol.
// Implementations make exactly one attempt per call.
type MailTransport interface {
	SendMail(env Envelope) error
}

type Mailer struct {
	logger    *zap.Logger
	transport MailTransport
}

func New(logger *zap.Logger, transport MailTransport) *Mailer {
	return &Mailer{
		logger: logger,
		transport: transport,
	}
}

func (m *Mailer) SendGradeUpdateMail(to, studentName, courseName, grade string) error {
	subject := fmt.Sprintf("Grade Update: %s", courseName)
	body := fmt.Sprintf(
		"Dear %s,\n\nYour grade for %s has been updated to %s.\n\nPlease log in to the dashboard for details.",
		studentName, courseName, grade,
	)

	return m.send(to, subject, body)
}

func (m *Mailer) SendAttendanceAlertMail(to, studentName string, percentage float64, absences int) error {
	subject := "Attendance Alert"
	body := fmt.Sprintf(
		"Dear %s,\n\nYour attendance has dropped to %.1f%% with %d recorded absences.\n\nPlease contact your faculty office if you believe this is incorrect.",
		studentName, percentage, absences,
	)

	return m.send(to, subject, body)
}

func (m *Mailer) SendFeeReminderMail(to, studentName string, amount float64, dueDate string) error {
	subject := "Fee Payment Reminder"
	body := fmt.Sprintf(
		"Dear %s,\n\nYou have an outstanding fee payment of %.2f due on %s.\n\nPlease settle the balance before the due date to avoid penalties.",
		studentName, amount, dueDate,
	)

	return m.send(to, subject, body)
}

// SendMail delivers a freeform message for generic notices.
func (m *Mailer) SendMail(to, subject, body string) error {
	return m.send(to, subject, body)
}

func (m *Mailer) send(to, subject, body string) error {
	if err := m.transport.SendMail(Envelope{To: to, Subject: subject, Body: body}); err != nil {
		return &EmailError{Err: err}
	}

	m.logger.Sugar().Infof("Successfully sent mail to(%s)", to)
	return nil
}
