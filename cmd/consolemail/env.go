package main

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	consolemail "github.com/xtages/go-consolemail"
)

// Previewer renders email HTML in a browser.
type Previewer interface {
	PDF(ctx context.Context, html string) ([]byte, error)
	Screenshot(ctx context.Context, html string) ([]byte, error)
	Close() error
}

// Compile-time interface implementation check.
var _ Previewer = (*consolemail.Previewer)(nil)

// Environment holds injectable dependencies for testability.
// Includes I/O, time, process environment, and the delivery and browser backends.
type Environment struct {
	Now    func() time.Time
	Stdout io.Writer
	Stderr io.Writer

	// Environ returns KEY=value pairs, like os.Environ.
	Environ func() []string
	// DotEnvPath is read for CONSOLEMAIL_* defaults if it exists.
	DotEnvPath string

	Registry     *prometheus.Registry
	NewSender    func(consolemail.SMTPConfig) (consolemail.Sender, error)
	NewPreviewer func(timeout time.Duration, width int) Previewer
}

// DefaultEnv returns the production environment: real SMTP and headless Chrome.
func DefaultEnv() *Environment {
	return &Environment{
		Now:        time.Now,
		Stdout:     os.Stdout,
		Stderr:     os.Stderr,
		Environ:    os.Environ,
		DotEnvPath: ".env",
		Registry:   prometheus.NewRegistry(),
		NewSender: func(cfg consolemail.SMTPConfig) (consolemail.Sender, error) {
			return consolemail.NewSMTPSender(cfg)
		},
		NewPreviewer: func(timeout time.Duration, width int) Previewer {
			return consolemail.NewPreviewer(
				consolemail.WithPreviewTimeout(timeout),
				consolemail.WithPreviewWidth(width),
			)
		},
	}
}
