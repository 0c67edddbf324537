// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/xtages/go-consolemail/internal/fileutil"
)

// IsInContainer detects if running inside a Docker container or similar.
// Checks for /.dockerenv file which Docker creates automatically.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// ForBrowserConnect returns hints for browser connection errors.
// Detects CI/Docker environment and suggests relevant environment variables.
func ForBrowserConnect() string {
	var hints []string

	inCI := os.Getenv("CI") != "" ||
		os.Getenv("GITHUB_ACTIONS") != "" ||
		os.Getenv("GITLAB_CI") != "" ||
		os.Getenv("JENKINS_URL") != ""

	if (inCI || IsInContainer()) && os.Getenv("ROD_NO_SANDBOX") != "1" {
		hints = append(hints, "set ROD_NO_SANDBOX=1 for Docker/CI")
	}

	if os.Getenv("ROD_BROWSER_BIN") == "" {
		hints = append(hints, "set ROD_BROWSER_BIN to use custom Chrome")
	}

	return formatHints(hints)
}

// ForTimeout returns a hint about increasing timeout for slow operations.
func ForTimeout() string {
	return format("for slow machines or remote relays, use --timeout flag")
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in the user config directory.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range searchedPaths {
		if filepath.Base(filepath.Dir(p)) == "consolemail" {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForStyleNotFound returns hints for style not found errors.
func ForStyleNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", "))
}

// ForTemplateSetNotFound returns hints for missing template sets.
func ForTemplateSetNotFound(available []string) string {
	msg := "a template set is a directory holding email.html and email.txt"
	if len(available) > 0 {
		msg += "; built in: " + strings.Join(available, ", ")
	}
	return format(msg)
}

// ForNoSender returns a hint for a missing no-reply address.
func ForNoSender() string {
	return format("set server.noReplyAddress in the config or CONSOLEMAIL_NO_REPLY_ADDRESS")
}

// ForNoRecipients returns a hint for a send without addresses.
func ForNoRecipients() string {
	return format("pass at least one of --to, --cc or --bcc")
}

// ForSMTP returns hints for relay configuration and delivery errors.
func ForSMTP(host string, port int) string {
	var hints []string
	if host == "" {
		hints = append(hints, "set smtp.host in the config or CONSOLEMAIL_SMTP_HOST")
	}
	switch port {
	case 465:
		hints = append(hints, "port 465 usually needs smtp.ssl: true")
	case 25, 587:
		hints = append(hints, "check the relay accepts STARTTLS and your credentials")
	}
	return formatHints(hints)
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
