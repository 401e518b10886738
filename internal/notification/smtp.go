package notification

import (
	"log"

	"gopkg.in/gomail.v2"

	"github.com/bkalafat/barberly/internal/config"
)

// Sender delivers one email. A false return means the attempt failed;
// the dispatcher turns that into a retry.
type Sender interface {
	SendEmail(to, subject, htmlBody string) bool
}

type SMTPSender struct {
	cfg config.SMTP
}

func NewSMTPSender(cfg config.SMTP) *SMTPSender {
	return &SMTPSender{cfg: cfg}
}

func (s *SMTPSender) SendEmail(to, subject, htmlBody string) bool {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.cfg.From, s.cfg.FromName)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	d := gomail.NewDialer(s.cfg.Host, s.cfg.Port, s.cfg.Username, s.cfg.Password)

	if err := d.DialAndSend(m); err != nil {
		log.Printf("smtp: send to %s failed: %v", to, err)
		return false
	}
	return true
}

var _ Sender = (*SMTPSender)(nil)
