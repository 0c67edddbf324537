package main

import (
	"bytes"
	"context"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	consolemail "github.com/xtages/go-consolemail"
)

// ---------------------------------------------------------------------------
// Test Infrastructure - Fake sender and previewer
// ---------------------------------------------------------------------------

// fakeSender records delivered messages instead of talking SMTP.
type fakeSender struct {
	mu   sync.Mutex
	cfg  consolemail.SMTPConfig
	msgs []*consolemail.Message
	err  error
}

func (s *fakeSender) Send(_ context.Context, msg *consolemail.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.msgs = append(s.msgs, msg)
	return nil
}

// fakePreviewer returns canned bytes and records what it was asked to render.
type fakePreviewer struct {
	timeout  time.Duration
	width    int
	pdfCalls int
	pngCalls int
	html     string
	err      error
	closed   bool
}

func (p *fakePreviewer) PDF(_ context.Context, html string) ([]byte, error) {
	p.pdfCalls++
	p.html = html
	if p.err != nil {
		return nil, p.err
	}
	return []byte("%PDF-1.4 fake"), nil
}

func (p *fakePreviewer) Screenshot(_ context.Context, html string) ([]byte, error) {
	p.pngCalls++
	p.html = html
	if p.err != nil {
		return nil, p.err
	}
	return []byte("\x89PNG fake"), nil
}

func (p *fakePreviewer) Close() error {
	p.closed = true
	return nil
}

// testEnv bundles an Environment with its captured output and fakes.
type testEnv struct {
	*Environment
	stdout    *bytes.Buffer
	stderr    *bytes.Buffer
	sender    *fakeSender
	previewer *fakePreviewer
}

// newTestEnv returns an environment with no process variables, no .env file,
// and fake delivery and browser backends. vars are KEY=value pairs.
func newTestEnv(t *testing.T, vars ...string) *testEnv {
	t.Helper()

	te := &testEnv{
		stdout:    &bytes.Buffer{},
		stderr:    &bytes.Buffer{},
		sender:    &fakeSender{},
		previewer: &fakePreviewer{},
	}
	te.Environment = &Environment{
		Now:      func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) },
		Stdout:   te.stdout,
		Stderr:   te.stderr,
		Environ:  func() []string { return vars },
		Registry: prometheus.NewRegistry(),
		NewSender: func(cfg consolemail.SMTPConfig) (consolemail.Sender, error) {
			te.sender.cfg = cfg
			return te.sender, nil
		},
		NewPreviewer: func(timeout time.Duration, width int) Previewer {
			te.previewer.timeout = timeout
			te.previewer.width = width
			return te.previewer
		},
	}
	return te
}
