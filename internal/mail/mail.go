// Package mail delivers composed drafts over SMTP.
package mail

import (
	"errors"
	"fmt"

	gomail "gopkg.in/gomail.v2"
)

var ErrNoCredentials = errors.New("email credentials not configured")

type Sender struct {
	from   string
	dialer *gomail.Dialer
}

// NewSender configures an SMTP sender. user doubles as the From address.
// The dialer negotiates STARTTLS on its own for port 587.
func NewSender(host string, port int, user, pass string) *Sender {
	return &Sender{
		from:   user,
		dialer: gomail.NewDialer(host, port, user, pass),
	}
}

func (s *Sender) Send(to, subject, body string) error {
	if s.from == "" || s.dialer.Password == "" {
		return ErrNoCredentials
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}
