package mail

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net"
	"net/smtp"
	"strings"
	"time"
)

type Message struct {
	To      []string
	Subject string
	Body    string
}

type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// SMTPMailer delivers plain-text mail through a single SMTP relay.
type SMTPMailer struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

func NewSMTPMailer(host, port, username, password, from string) *SMTPMailer {
	return &SMTPMailer{
		Host:     host,
		Port:     port,
		Username: username,
		Password: password,
		From:     from,
	}
}

func (m *SMTPMailer) Send(ctx context.Context, msg Message) error {
	if m.Host == "" {
		return errors.New("smtp host is not configured")
	}
	if len(msg.To) == 0 {
		return errors.New("mail has no recipients")
	}

	var auth smtp.Auth
	if m.Username != "" {
		auth = smtp.PlainAuth("", m.Username, m.Password, m.Host)
	}

	data := Format(m.From, msg, time.Now())
	addr := net.JoinHostPort(m.Host, m.Port)

	done := make(chan error, 1)
	go func() {
		done <- smtp.SendMail(addr, auth, m.From, msg.To, data)
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-done:
		if err != nil {
			return fmt.Errorf("send mail to %s: %w", strings.Join(msg.To, ","), err)
		}
		return nil
	}
}

// Format renders msg as an RFC 5322 plain-text message.
func Format(from string, msg Message, date time.Time) []byte {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "From: %s\r\n", from)
	fmt.Fprintf(&buf, "To: %s\r\n", strings.Join(msg.To, ", "))
	fmt.Fprintf(&buf, "Subject: %s\r\n", msg.Subject)
	fmt.Fprintf(&buf, "Date: %s\r\n", date.Format(time.RFC1123Z))
	buf.WriteString("MIME-Version: 1.0\r\n")
	buf.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	buf.WriteString("\r\n")
	buf.WriteString(strings.ReplaceAll(msg.Body, "\n", "\r\n"))

	return buf.Bytes()
}
