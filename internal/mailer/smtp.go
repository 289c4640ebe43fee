package mailer

import (
	"github.com/CampusDesk/notification-service/internal/config"
	"gopkg.in/gomail.v2"
)

type smtpTransport struct {
	from   string
	dialer *gomail.Dialer
}

func NewSMTPTransport(cfg config.SMTPConfig) MailTransport {
	return &smtpTransport{
		from: cfg.From,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
	}
}

func (t *smtpTransport) SendMail(env Envelope) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", t.from)
	msg.SetHeader("To", env.To)
	msg.SetHeader("Subject", env.Subject)
	msg.SetBody("text/plain", env.Body)

	return t.dialer.DialAndSend(msg)
}
