package consolemail

import "errors"

// Sentinel errors for library operations.
var (
	ErrUnknownButtonVariant = errors.New("unknown button variant")

	// Build and project validation errors.
	ErrInvalidBuildType = errors.New("only CI builds or failed staging CD builds are expected")
	ErrInvalidBuild     = errors.New("invalid build")
	ErrInvalidProject   = errors.New("invalid project")

	// Rendering errors.
	ErrTemplateRender    = errors.New("template rendering failed")
	ErrMarkdownRender    = errors.New("commit description rendering failed")
	ErrMissingConsoleURL = errors.New("console URL is required")
	ErrInvalidConsoleURL = errors.New("invalid console URL")

	// Delivery errors.
	ErrNoRecipients          = errors.New("no recipients")
	ErrDuplicateRecipients   = errors.New("more than one email recipient object found")
	ErrUnsupportedRecipients = errors.New("unsupported recipient type")
	ErrNoSender              = errors.New("no from address configured")
	ErrSend                  = errors.New("sending email failed")
	ErrInvalidSMTPConfig     = errors.New("invalid SMTP configuration")

	// Preview errors.
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")
	ErrPreview        = errors.New("preview generation failed")

	// Asset loading errors.
	ErrStyleNotFound         = errors.New("style not found")
	ErrTemplateSetNotFound   = errors.New("template set not found")
	ErrIncompleteTemplateSet = errors.New("template set missing required template")
	ErrInvalidAssetPath      = errors.New("invalid asset path")
)
