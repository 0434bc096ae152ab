// Package contact validates contact form submissions and forwards them to the
// site owner through a mail.Sender.
package contact

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"

	"github.com/samin124/portfolio/internal/mail"
)

var (
	ErrValidation = errors.New("validation failed")
	ErrRelay      = errors.New("send failed")
)

type Submission struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// Missing lists the required fields that are empty after trimming.
func (s Submission) Missing() []string {
	var missing []string
	for _, f := range []struct {
		name, value string
	}{
		{"name", s.Name},
		{"email", s.Email},
		{"subject", s.Subject},
		{"message", s.Message},
	} {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	return missing
}

type Relay struct {
	sender mail.Sender
	to     string
}

// NewRelay forwards every submission to the operator address to.
func NewRelay(sender mail.Sender, to string) *Relay {
	return &Relay{sender: sender, to: to}
}

// Submit sends one message per valid submission. It never retries; a
// transport error of any kind comes back as ErrRelay.
func (r *Relay) Submit(ctx context.Context, sub Submission) error {
	if missing := sub.Missing(); len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrValidation, strings.Join(missing, ", "))
	}
	sub = Submission{
		Name:    strings.TrimSpace(sub.Name),
		Email:   strings.TrimSpace(sub.Email),
		Subject: strings.TrimSpace(sub.Subject),
		Message: strings.TrimSpace(sub.Message),
	}
	if err := r.sender.Send(ctx, r.message(sub)); err != nil {
		return fmt.Errorf("%w: %w", ErrRelay, err)
	}
	return nil
}

func (r *Relay) message(sub Submission) mail.Message {
	return mail.Message{
		To:       r.to,
		ReplyTo:  sub.Email,
		Subject:  "Portfolio Contact: " + oneLine(sub.Subject),
		TextBody: textBody(sub),
		HTMLBody: htmlBody(sub),
	}
}

func textBody(sub Submission) string {
	return fmt.Sprintf(`New contact form submission from your portfolio:

Name: %s
Email: %s
Subject: %s
Message:
%s

---
Sent from your portfolio contact form
`, sub.Name, sub.Email, sub.Subject, sub.Message)
}

func htmlBody(sub Submission) string {
	msg := strings.ReplaceAll(html.EscapeString(sub.Message), "\n", "<br>")
	return fmt.Sprintf(`<h3>New Contact Form Submission</h3>
<p><strong>Name:</strong> %s</p>
<p><strong>Email:</strong> %s</p>
<p><strong>Subject:</strong> %s</p>
<p><strong>Message:</strong></p>
<p>%s</p>
`, html.EscapeString(sub.Name), html.EscapeString(sub.Email), html.EscapeString(sub.Subject), msg)
}

// oneLine keeps header values on a single line.
func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
