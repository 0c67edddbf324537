package main

import (
	"errors"
	"os"

	consolemail "github.com/xtages/go-consolemail"
	"github.com/xtages/go-consolemail/internal/config"
	"github.com/xtages/go-consolemail/internal/logging"
)

// Exit codes for the consolemail CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess  = 0 // Command completed
	ExitGeneral  = 1 // General/unexpected error
	ExitUsage    = 2 // Invalid flags, config, build data, or assets
	ExitIO       = 3 // File not found, permission denied
	ExitBrowser  = 4 // Browser/Chrome errors
	ExitDelivery = 5 // SMTP relay errors
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Browser errors (exit 4)
	if errors.Is(err, consolemail.ErrBrowserConnect) ||
		errors.Is(err, consolemail.ErrPageCreate) ||
		errors.Is(err, consolemail.ErrPageLoad) ||
		errors.Is(err, consolemail.ErrPreview) {
		return ExitBrowser
	}

	// Delivery errors (exit 5)
	if errors.Is(err, consolemail.ErrSend) ||
		errors.Is(err, consolemail.ErrInvalidSMTPConfig) {
		return ExitDelivery
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadBuildFile) ||
		errors.Is(err, ErrWriteOutput) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrUnknownCommand) ||
		errors.Is(err, ErrUsage) ||
		errors.Is(err, ErrEnvConfig) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidConfig) ||
		errors.Is(err, logging.ErrInvalidLevel) ||
		errors.Is(err, consolemail.ErrInvalidBuildType) ||
		errors.Is(err, consolemail.ErrInvalidBuild) ||
		errors.Is(err, consolemail.ErrInvalidProject) ||
		errors.Is(err, consolemail.ErrMissingConsoleURL) ||
		errors.Is(err, consolemail.ErrInvalidConsoleURL) ||
		errors.Is(err, consolemail.ErrUnknownButtonVariant) ||
		errors.Is(err, consolemail.ErrNoRecipients) ||
		errors.Is(err, consolemail.ErrNoSender) ||
		errors.Is(err, consolemail.ErrStyleNotFound) ||
		errors.Is(err, consolemail.ErrTemplateSetNotFound) ||
		errors.Is(err, consolemail.ErrIncompleteTemplateSet) ||
		errors.Is(err, consolemail.ErrInvalidAssetPath) {
		return ExitUsage
	}

	return ExitGeneral
}
