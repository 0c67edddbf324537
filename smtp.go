package consolemail

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/gomail.v2"
)

// SMTPConfig holds the SMTP relay settings.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	// SSL uses implicit TLS instead of STARTTLS.
	SSL bool
}

// SMTPSender delivers messages through an SMTP relay.
type SMTPSender struct {
	deliver func(*gomail.Message) error
}

var _ Sender = (*SMTPSender)(nil)

// NewSMTPSender creates a sender dialing the relay once per message.
func NewSMTPSender(cfg SMTPConfig) (*SMTPSender, error) {
	if strings.TrimSpace(cfg.Host) == "" {
		return nil, fmt.Errorf("%w: empty host", ErrInvalidSMTPConfig)
	}
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("%w: port %d", ErrInvalidSMTPConfig, cfg.Port)
	}

	dialer := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	dialer.SSL = cfg.SSL

	return &SMTPSender{deliver: func(m *gomail.Message) error {
		return dialer.DialAndSend(m)
	}}, nil
}

// Send delivers msg. gomail has no context support, so a cancelled ctx
// returns early while the SMTP exchange finishes in the background.
func (s *SMTPSender) Send(ctx context.Context, msg *Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m, err := buildMessage(msg)
	if err != nil {
		return err
	}

	done := make(chan error, 1)
	go func() {
		done <- s.deliver(m)
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-done:
		return err
	}
}

// buildMessage converts msg to a multipart/alternative UTF-8 email.
func buildMessage(msg *Message) (*gomail.Message, error) {
	if msg == nil {
		return nil, errors.New("nil message")
	}
	if msg.From == "" {
		return nil, ErrNoSender
	}
	if len(msg.To) == 0 && len(msg.Cc) == 0 && len(msg.Bcc) == 0 {
		return nil, ErrNoRecipients
	}

	m := gomail.NewMessage(gomail.SetCharset("UTF-8"))
	m.SetHeader("From", msg.From)
	if msg.ReplyTo != "" {
		m.SetHeader("Reply-To", msg.ReplyTo)
	}
	// Receiving servers replace Return-Path with the envelope sender, which
	// gomail takes from From. The header only reaches relays that keep it.
	if msg.ReturnPath != "" {
		m.SetHeader("Return-Path", msg.ReturnPath)
	}
	if len(msg.To) > 0 {
		m.SetHeader("To", msg.To...)
	}
	if len(msg.Cc) > 0 {
		m.SetHeader("Cc", msg.Cc...)
	}
	if len(msg.Bcc) > 0 {
		m.SetHeader("Bcc", msg.Bcc...)
	}
	m.SetHeader("Subject", msg.Subject)

	m.SetBody("text/plain", msg.Plain)
	if msg.HTML != "" {
		m.AddAlternative("text/html", msg.HTML)
	}
	return m, nil
}
