package main

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	consolemail "github.com/xtages/go-consolemail"
)

// defaultSendTimeout bounds one SMTP exchange when neither --timeout nor
// CONSOLEMAIL_TIMEOUT is set.
const defaultSendTimeout = 30 * time.Second

// runSend renders the build status email and delivers it through the SMTP relay.
func runSend(ctx context.Context, args []string, env *Environment) error {
	f, positional, err := parseSendFlags(args, env.Stderr)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	}
	if len(positional) > 0 {
		return fmt.Errorf("%w: unexpected argument %q", ErrUsage, positional[0])
	}
	recipients := consolemail.EmailRecipients{To: f.to, Cc: f.cc, Bcc: f.bcc}
	if len(f.to)+len(f.cc)+len(f.bcc) == 0 {
		return consolemail.ErrNoRecipients
	}

	rc, err := newRunContext(f.common, env)
	if err != nil {
		return err
	}
	defer rc.Close()

	if rc.cfg.Server.NoReplyAddress == "" {
		return consolemail.ErrNoSender
	}

	fallback := defaultSendTimeout
	if rc.env.Timeout > 0 {
		fallback = rc.env.Timeout
	}
	timeout, err := resolveTimeout(f.timeout, fallback)
	if err != nil {
		return err
	}

	input, err := loadBuildInput(f.input)
	if err != nil {
		return err
	}
	renderer, err := rc.newRenderer(f.assets)
	if err != nil {
		return err
	}

	sender, err := env.NewSender(consolemail.SMTPConfig{
		Host:     rc.cfg.SMTP.Host,
		Port:     rc.cfg.SMTP.Port,
		Username: rc.cfg.SMTP.Username,
		Password: rc.cfg.SMTP.Password,
		SSL:      rc.cfg.SMTP.SSL,
	})
	if err != nil {
		return err
	}

	var reg prometheus.Registerer
	if env.Registry != nil {
		reg = env.Registry
	}
	notifier := consolemail.NewNotifier(renderer, sender,
		consolemail.WithNoReplyAddress(rc.cfg.Server.NoReplyAddress),
		consolemail.WithReturnPath(rc.cfg.Server.EmailReturnPath),
		consolemail.WithLogger(rc.logger.WithField("smtp", rc.cfg.SMTP.Host)),
		consolemail.WithMetrics(consolemail.NewMetrics(reg)),
	)

	sendCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	sendErr := notifier.SendBuildStatusChanged(sendCtx,
		[]consolemail.Recipients{recipients},
		&input.Project, &input.Build, input.CommitDescription)

	if err := writeMetrics(f.metricsFile, rc.env.MetricsFile, env.Registry, rc.logger); err != nil {
		rc.logger.WithError(err).Warn("writing metrics file")
	}
	if sendErr != nil {
		return sendErr
	}

	if !f.common.quiet {
		fmt.Fprintf(env.Stdout, "sent build #%d of %s to %d recipient(s)\n",
			input.Build.BuildNumber, input.Project.Name, len(f.to)+len(f.cc)+len(f.bcc))
	}
	return nil
}

// writeMetrics dumps the registry in the text exposition format, for the
// node_exporter textfile collector. The flag wins over the env var.
func writeMetrics(flagPath, envPath string, reg *prometheus.Registry, logger logrus.FieldLogger) error {
	path := firstNonEmpty(flagPath, envPath)
	if path == "" || reg == nil {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, reg); err != nil {
		return err
	}
	logger.WithField("path", path).Debug("wrote metrics")
	return nil
}
