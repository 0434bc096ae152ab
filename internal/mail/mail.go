// Package mail is the outbound mail capability used by the contact relay.
package mail

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-gomail/gomail"
)

var ErrNotConfigured = errors.New("SMTP credentials not configured")

type Message struct {
	From     string
	To       string
	ReplyTo  string
	Subject  string
	TextBody string
	HTMLBody string
}

// Sender hands a message to a transport. A nil error means the transport
// accepted it, not that it reached a mailbox.
//
//go:generate mockgen -source=./mail.go -package=mailmocks -destination=mailmocks/mail.mock.go Sender
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

type dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

// SMTPSender relays through an authenticated SMTP server.
type SMTPSender struct {
	d    dialer
	from string
}

func NewSMTPSender(host string, port int, username, password string) *SMTPSender {
	return &SMTPSender{
		d:    gomail.NewDialer(host, port, username, password),
		from: username,
	}
}

func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if msg.From == "" {
		msg.From = s.from
	}
	if err := s.d.DialAndSend(compose(msg)); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}

func compose(msg Message) *gomail.Message {
	m := gomail.NewMessage()
	m.SetHeader("From", msg.From)
	m.SetHeader("To", msg.To)
	if msg.ReplyTo != "" {
		m.SetHeader("Reply-To", msg.ReplyTo)
	}
	m.SetHeader("Subject", msg.Subject)
	switch {
	case msg.TextBody != "" && msg.HTMLBody != "":
		m.SetBody("text/plain", msg.TextBody)
		m.AddAlternative("text/html", msg.HTMLBody)
	case msg.HTMLBody != "":
		m.SetBody("text/html", msg.HTMLBody)
	default:
		m.SetBody("text/plain", msg.TextBody)
	}
	return m
}

// Unconfigured fails every send. It stands in when no SMTP account is set so
// the server still starts and the contact form reports a send failure.
type Unconfigured struct{}

func (Unconfigured) Send(context.Context, Message) error {
	return ErrNotConfigured
}
