package mail

import (
	"sync"

	"tasktracker/internal/config"

	"gopkg.in/gomail.v2"
)

// Sender delivers a single HTML email. Implemented by the SMTP mailer below;
// tests swap in a recording fake.
type Sender interface {
	Send(to, subject, htmlBody string) error
}

type SmtpMailer struct {
	dialer *gomail.Dialer
	from   string
}

var (
	once   sync.Once
	mailer *SmtpMailer
)

func GetMailer() *SmtpMailer {
	once.Do(func() {
		env := config.GetEnv()

		mailer = &SmtpMailer{
			dialer: gomail.NewDialer(env.SmtpHost, env.SmtpPort, env.SmtpEmail, env.SmtpPassword),
			from:   env.SmtpEmail,
		}
	})

	return mailer
}

func (m *SmtpMailer) Send(to, subject, htmlBody string) error {
	message := gomail.NewMessage()
	message.SetAddressHeader("From", m.from, "Task Tracker Bot")
	message.SetHeader("To", to)
	message.SetHeader("Subject", subject)
	message.SetBody("text/html", htmlBody)

	return m.dialer.DialAndSend(message)
}
