package consolemail

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

// Recipients is a set of addresses of one delivery kind.
// Implemented by EmailRecipients and WebPushRecipients.
type Recipients interface {
	recipientKind() string
}

// EmailRecipients addresses an email.
type EmailRecipients struct {
	To  []string
	Cc  []string
	Bcc []string
}

func (EmailRecipients) recipientKind() string { return "email" }

// empty reports whether no address is set at all.
func (r EmailRecipients) empty() bool {
	return len(r.To) == 0 && len(r.Cc) == 0 && len(r.Bcc) == 0
}

// WebPushRecipients addresses browser push notifications. Not deliverable yet.
type WebPushRecipients struct {
	Tokens []string
}

func (WebPushRecipients) recipientKind() string { return "web-push" }

// Message is an email ready to hand to a Sender.
type Message struct {
	From       string
	ReplyTo    string
	ReturnPath string
	To         []string
	Cc         []string
	Bcc        []string
	Subject    string
	HTML       string
	Plain      string
}

// Sender delivers email messages.
type Sender interface {
	Send(ctx context.Context, msg *Message) error
}

// BuildStatusRenderer renders build status emails. Implemented by *Renderer.
type BuildStatusRenderer interface {
	BuildStatusChanged(ctx context.Context, project *Project, build *Build, commitDesc string) (*EmailContents, error)
}

var _ BuildStatusRenderer = (*Renderer)(nil)

// Template labels used in logs and metrics.
const templateBuildStatusChanged = "build_status_changed"

// Notifier sends notifications of console events.
// Only email delivery is supported.
type Notifier struct {
	renderer       BuildStatusRenderer
	sender         Sender
	noReplyAddress string
	returnPath     string
	logger         logrus.FieldLogger
	metrics        *Metrics
	now            func() time.Time
}

// NotifierOption configures a Notifier.
type NotifierOption func(*Notifier)

// WithNoReplyAddress sets the From and default Reply-To address.
func WithNoReplyAddress(addr string) NotifierOption {
	return func(n *Notifier) {
		n.noReplyAddress = addr
	}
}

// WithReturnPath sets the Return-Path header. It is not the SMTP envelope
// sender: gomail uses the From address for MAIL FROM, and the receiving server
// overwrites Return-Path with it. Bounces reach this address only through a
// relay that rewrites the envelope from the header.
func WithReturnPath(addr string) NotifierOption {
	return func(n *Notifier) {
		n.returnPath = addr
	}
}

// WithLogger sets the logger. Defaults to the logrus standard logger.
func WithLogger(logger logrus.FieldLogger) NotifierOption {
	return func(n *Notifier) {
		n.logger = logger
	}
}

// WithMetrics records deliveries in m.
func WithMetrics(m *Metrics) NotifierOption {
	return func(n *Notifier) {
		n.metrics = m
	}
}

// NewNotifier creates a Notifier rendering with renderer and delivering with sender.
func NewNotifier(renderer BuildStatusRenderer, sender Sender, opts ...NotifierOption) *Notifier {
	n := &Notifier{
		renderer: renderer,
		sender:   sender,
		logger:   logrus.StandardLogger(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// SendBuildStatusChanged notifies recipients that the status of build changed.
//
// Recipients are grouped by kind. Exactly one EmailRecipients value may be
// given (ErrDuplicateRecipients otherwise); any other kind fails with
// ErrUnsupportedRecipients before anything is rendered or sent.
func (n *Notifier) SendBuildStatusChanged(ctx context.Context, recipients []Recipients, project *Project, build *Build, commitDesc string) error {
	email, err := emailRecipientsOf(recipients)
	if err != nil {
		n.metrics.failure(templateBuildStatusChanged, "recipients")
		return err
	}

	log := n.logger.WithFields(logrus.Fields{
		"template": templateBuildStatusChanged,
		"project":  projectName(project),
		"build":    buildNumber(build),
	})

	start := n.now()
	contents, err := n.renderer.BuildStatusChanged(ctx, project, build, commitDesc)
	if err != nil {
		n.metrics.failure(templateBuildStatusChanged, "render")
		log.WithError(err).Warn("rendering build status email failed")
		return err
	}
	n.metrics.observeRender(templateBuildStatusChanged, n.now().Sub(start))

	if err := n.SendEmail(ctx, email, contents, ""); err != nil {
		n.metrics.failure(templateBuildStatusChanged, "send")
		log.WithError(err).Error("sending build status email failed")
		return err
	}

	n.metrics.sent(templateBuildStatusChanged)
	log.WithField("recipients", len(email.To)+len(email.Cc)+len(email.Bcc)).Info("build status email sent")
	return nil
}

// SendEmail delivers contents to recipients. If replyTo is empty the
// no-reply address is used as Reply-To.
func (n *Notifier) SendEmail(ctx context.Context, recipients EmailRecipients, contents *EmailContents, replyTo string) error {
	if recipients.empty() {
		return ErrNoRecipients
	}
	if n.noReplyAddress == "" {
		return ErrNoSender
	}
	if replyTo == "" {
		replyTo = n.noReplyAddress
	}

	msg := &Message{
		From:       n.noReplyAddress,
		ReplyTo:    replyTo,
		ReturnPath: n.returnPath,
		To:         recipients.To,
		Cc:         recipients.Cc,
		Bcc:        recipients.Bcc,
		Subject:    contents.Subject,
		HTML:       contents.HTML,
		Plain:      contents.Plain,
	}

	if err := n.sender.Send(ctx, msg); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%w: %v", ErrSend, err)
	}
	return nil
}

// emailRecipientsOf groups recipients by kind and returns the single
// email recipient set.
func emailRecipientsOf(recipients []Recipients) (EmailRecipients, error) {
	if len(recipients) == 0 {
		return EmailRecipients{}, ErrNoRecipients
	}

	// Kinds are checked in order of first appearance.
	var kinds []string
	byKind := make(map[string][]Recipients)
	for _, r := range recipients {
		if r == nil {
			continue
		}
		kind := r.recipientKind()
		if _, seen := byKind[kind]; !seen {
			kinds = append(kinds, kind)
		}
		byKind[kind] = append(byKind[kind], r)
	}

	for _, kind := range kinds {
		group := byKind[kind]
		if kind != (EmailRecipients{}).recipientKind() {
			return EmailRecipients{}, fmt.Errorf("%w: %s", ErrUnsupportedRecipients, kind)
		}
		if len(group) > 1 {
			return EmailRecipients{}, ErrDuplicateRecipients
		}
	}

	group, ok := byKind[(EmailRecipients{}).recipientKind()]
	if !ok {
		return EmailRecipients{}, ErrNoRecipients
	}

	switch r := group[0].(type) {
	case EmailRecipients:
		return r, nil
	case *EmailRecipients:
		return *r, nil
	default:
		return EmailRecipients{}, fmt.Errorf("%w: %T", ErrUnsupportedRecipients, r)
	}
}

func projectName(p *Project) string {
	if p == nil {
		return ""
	}
	return p.Name
}

func buildNumber(b *Build) int64 {
	if b == nil {
		return 0
	}
	return b.BuildNumber
}
