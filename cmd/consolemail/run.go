package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	flag "github.com/spf13/pflag"

	consolemail "github.com/xtages/go-consolemail"
	"github.com/xtages/go-consolemail/internal/assets"
	"github.com/xtages/go-consolemail/internal/config"
	"github.com/xtages/go-consolemail/internal/hints"
)

// ErrUnknownCommand is returned for a command name runMain does not know.
var ErrUnknownCommand = errors.New("unknown command")

// runMain dispatches args[1:] and returns the process exit code.
func runMain(ctx context.Context, args []string, env *Environment) int {
	if len(args) < 2 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	cmd, rest := args[1], args[2:]
	var err error
	switch cmd {
	case "render":
		err = runRender(ctx, rest, env)
	case "preview":
		err = runPreview(ctx, rest, env)
	case "send":
		err = runSend(ctx, rest, env)
	case "variants":
		err = runVariants(rest, env)
	case "doctor":
		return runDoctorCmd(rest, env)
	case "version", "--version":
		fmt.Fprintf(env.Stdout, "consolemail %s\n", Version)
	case "help", "-h", "--help":
		err = runHelp(rest, env)
	default:
		printUsage(env.Stderr)
		err = fmt.Errorf("%w: %s", ErrUnknownCommand, cmd)
	}

	if errors.Is(err, flag.ErrHelp) {
		return ExitSuccess
	}
	if err != nil {
		printError(env.Stderr, err)
	}
	return exitCodeFor(err)
}

// printError writes err in red followed by any hint for it.
func printError(w io.Writer, err error) {
	_, _ = color.New(color.FgRed, color.Bold).Fprint(w, "error: ")
	fmt.Fprintf(w, "%v%s\n", err, hintFor(err))
}

// hintFor returns an actionable hint for known errors, or "".
func hintFor(err error) string {
	switch {
	case errors.Is(err, consolemail.ErrBrowserConnect):
		return hints.ForBrowserConnect()
	case errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, consolemail.ErrPageLoad):
		return hints.ForTimeout()
	case errors.Is(err, config.ErrConfigNotFound):
		return hints.ForConfigNotFound(triedPaths(err))
	case errors.Is(err, consolemail.ErrStyleNotFound):
		return hints.ForStyleNotFound(assets.NewEmbeddedLoader().ListStyles())
	case errors.Is(err, consolemail.ErrTemplateSetNotFound),
		errors.Is(err, consolemail.ErrIncompleteTemplateSet):
		return hints.ForTemplateSetNotFound(assets.NewEmbeddedLoader().ListTemplateSets())
	case errors.Is(err, consolemail.ErrNoSender):
		return hints.ForNoSender()
	case errors.Is(err, consolemail.ErrNoRecipients):
		return hints.ForNoRecipients()
	case errors.Is(err, consolemail.ErrInvalidSMTPConfig):
		return hints.ForSMTP("", 0)
	case errors.Is(err, ErrWriteOutput):
		return hints.ForOutputDirectory()
	}
	return ""
}

// triedPaths extracts the searched locations from a config-not-found error.
func triedPaths(err error) []string {
	_, list, ok := strings.Cut(err.Error(), "tried ")
	if !ok {
		return nil
	}
	return strings.Split(list, ", ")
}
