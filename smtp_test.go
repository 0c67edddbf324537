package consolemail

import (
	"bytes"
	"context"
	"errors"
	"mime"
	"strings"
	"testing"
	"time"

	"gopkg.in/gomail.v2"
)

func testMessage() *Message {
	return &Message{
		From:       "no-reply@xtages.com",
		ReplyTo:    "support@xtages.com",
		ReturnPath: "bounces@xtages.com",
		To:         []string{"dev@example.com", "ops@example.com"},
		Cc:         []string{"lead@example.com"},
		Bcc:        []string{"audit@example.com"},
		Subject:    "Build(#13) for démo failed",
		HTML:       "<p>failed</p>",
		Plain:      "failed",
	}
}

func TestNewSMTPSender(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cfg     SMTPConfig
		wantErr bool
	}{
		{name: "valid", cfg: SMTPConfig{Host: "smtp.example.com", Port: 587}},
		{name: "ssl", cfg: SMTPConfig{Host: "smtp.example.com", Port: 465, SSL: true}},
		{name: "missing host", cfg: SMTPConfig{Port: 587}, wantErr: true},
		{name: "zero port", cfg: SMTPConfig{Host: "smtp.example.com"}, wantErr: true},
		{name: "port out of range", cfg: SMTPConfig{Host: "smtp.example.com", Port: 70000}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s, err := NewSMTPSender(tt.cfg)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidSMTPConfig) {
					t.Errorf("NewSMTPSender() error = %v, want ErrInvalidSMTPConfig", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewSMTPSender() error = %v", err)
			}
			if s.deliver == nil {
				t.Error("expected deliver func")
			}
		})
	}
}

func TestBuildMessage_Headers(t *testing.T) {
	t.Parallel()

	m, err := buildMessage(testMessage())
	if err != nil {
		t.Fatalf("buildMessage() error = %v", err)
	}

	tests := []struct {
		header string
		want   []string
	}{
		{header: "From", want: []string{"no-reply@xtages.com"}},
		{header: "Reply-To", want: []string{"support@xtages.com"}},
		{header: "Return-Path", want: []string{"bounces@xtages.com"}},
		{header: "To", want: []string{"dev@example.com", "ops@example.com"}},
		{header: "Cc", want: []string{"lead@example.com"}},
		{header: "Bcc", want: []string{"audit@example.com"}},
		{header: "Subject", want: []string{"Build(#13) for démo failed"}},
	}

	// gomail stores non-ASCII values RFC 2047 encoded.
	var dec mime.WordDecoder
	for _, tt := range tests {
		var got []string
		for _, v := range m.GetHeader(tt.header) {
			decoded, err := dec.DecodeHeader(v)
			if err != nil {
				t.Fatalf("decoding %s: %v", tt.header, err)
			}
			got = append(got, decoded)
		}
		if strings.Join(got, ",") != strings.Join(tt.want, ",") {
			t.Errorf("%s = %v, want %v", tt.header, got, tt.want)
		}
	}
}

func TestBuildMessage_Body(t *testing.T) {
	t.Parallel()

	m, err := buildMessage(testMessage())
	if err != nil {
		t.Fatalf("buildMessage() error = %v", err)
	}

	var buf bytes.Buffer
	if _, err := m.WriteTo(&buf); err != nil {
		t.Fatalf("WriteTo() error = %v", err)
	}
	raw := buf.String()

	for _, want := range []string{
		"multipart/alternative",
		`text/plain; charset=UTF-8`,
		`text/html; charset=UTF-8`,
		"<p>failed</p>",
	} {
		if !strings.Contains(raw, want) {
			t.Errorf("message missing %q", want)
		}
	}
	if strings.Contains(raw, "Bcc:") {
		t.Error("Bcc header must not be written")
	}
	// The plain part comes first so clients prefer HTML.
	if strings.Index(raw, "text/plain") > strings.Index(raw, "text/html") {
		t.Error("text/plain part should precede text/html")
	}
}

func TestBuildMessage_Optional(t *testing.T) {
	t.Parallel()

	msg := &Message{From: "no-reply@xtages.com", Bcc: []string{"a@example.com"}, Subject: "s", Plain: "p"}
	m, err := buildMessage(msg)
	if err != nil {
		t.Fatalf("buildMessage() error = %v", err)
	}
	for _, h := range []string{"Reply-To", "Return-Path", "To", "Cc"} {
		if got := m.GetHeader(h); len(got) != 0 {
			t.Errorf("%s = %v, want unset", h, got)
		}
	}
}

func TestBuildMessage_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		msg     *Message
		wantErr error
	}{
		{name: "no from", msg: &Message{To: []string{"a@example.com"}}, wantErr: ErrNoSender},
		{name: "no recipients", msg: &Message{From: "no-reply@xtages.com"}, wantErr: ErrNoRecipients},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if _, err := buildMessage(tt.msg); !errors.Is(err, tt.wantErr) {
				t.Errorf("buildMessage() error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	if _, err := buildMessage(nil); err == nil {
		t.Error("buildMessage(nil) expected error")
	}
}

func TestSMTPSender_Send(t *testing.T) {
	t.Parallel()

	var delivered *gomail.Message
	s := &SMTPSender{deliver: func(m *gomail.Message) error {
		delivered = m
		return nil
	}}

	if err := s.Send(context.Background(), testMessage()); err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	if delivered == nil {
		t.Fatal("message not delivered")
	}
	if got := delivered.GetHeader("From"); len(got) != 1 || got[0] != "no-reply@xtages.com" {
		t.Errorf("From = %v", got)
	}
}

func TestSMTPSender_Send_DeliveryError(t *testing.T) {
	t.Parallel()

	dialErr := errors.New("dial tcp: connection refused")
	s := &SMTPSender{deliver: func(*gomail.Message) error { return dialErr }}

	if err := s.Send(context.Background(), testMessage()); !errors.Is(err, dialErr) {
		t.Errorf("Send() error = %v, want %v", err, dialErr)
	}
}

func TestSMTPSender_Send_Context(t *testing.T) {
	t.Parallel()

	t.Run("already cancelled", func(t *testing.T) {
		t.Parallel()

		called := false
		s := &SMTPSender{deliver: func(*gomail.Message) error { called = true; return nil }}

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		if err := s.Send(ctx, testMessage()); !errors.Is(err, context.Canceled) {
			t.Errorf("Send() error = %v, want context.Canceled", err)
		}
		if called {
			t.Error("deliver called with cancelled context")
		}
	})

	t.Run("deadline while delivering", func(t *testing.T) {
		t.Parallel()

		release := make(chan struct{})
		defer close(release)
		s := &SMTPSender{deliver: func(*gomail.Message) error {
			<-release
			return nil
		}}

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()

		if err := s.Send(ctx, testMessage()); !errors.Is(err, context.DeadlineExceeded) {
			t.Errorf("Send() error = %v, want context.DeadlineExceeded", err)
		}
	})
}
