package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: consolemail <command> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  render     Render the build status email to HTML and text files")
	fmt.Fprintln(w, "  preview    Render the build status email to PDF and PNG")
	fmt.Fprintln(w, "  send       Send the build status email through SMTP")
	fmt.Fprintln(w, "  variants   List button variants and CDN assets")
	fmt.Fprintln(w, "  doctor     Check browser and delivery setup")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'consolemail help <command>' for details on a specific command.")
}

// printInputUsage prints the flags selecting the build and the assets.
func printInputUsage(w io.Writer) {
	fmt.Fprintln(w, "Build:")
	fmt.Fprintln(w, "  -b, --build <path>        YAML file with project, build, commitDescription")
	fmt.Fprintln(w, "                            (default: a sample successful CI build)")
	fmt.Fprintln(w, "      --commit-desc <s>     Commit description (Markdown)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Assets:")
	fmt.Fprintln(w, "      --console-url <url>   Console base URL for links")
	fmt.Fprintln(w, "      --style <s>           CSS style name or file path")
	fmt.Fprintln(w, "      --template <s>        Template set name")
	fmt.Fprintln(w, "      --asset-path <dir>    Custom asset directory")
	fmt.Fprintln(w, "      --no-style            Disable CSS styling")
	fmt.Fprintln(w)
}

// printCommonUsage prints flags shared by all commands.
func printCommonUsage(w io.Writer) {
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Log debug details")
	fmt.Fprintln(w, "      --no-color            Disable colored output")
}

// printRenderUsage prints usage for the render command.
func printRenderUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: consolemail render [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render the build status email to <name>.html and <name>.txt.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output:")
	fmt.Fprintln(w, "  -o, --output <dir>        Output directory (default: $TMPDIR/templates)")
	fmt.Fprintf(w, "  -n, --name <s>            Output file base name (default: %s)\n", defaultOutputName)
	fmt.Fprintln(w)
	printInputUsage(w)
	printCommonUsage(w)
}

// printPreviewUsage prints usage for the preview command.
func printPreviewUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: consolemail preview [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render the build status email in headless Chrome.")
	fmt.Fprintln(w, "Writes both formats unless --pdf or --png is given.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output:")
	fmt.Fprintln(w, "  -o, --output <dir>        Output directory (default: $TMPDIR/templates)")
	fmt.Fprintf(w, "  -n, --name <s>            Output file base name (default: %s)\n", defaultOutputName)
	fmt.Fprintln(w, "      --pdf                 Write <name>.pdf")
	fmt.Fprintln(w, "      --png                 Write <name>.png")
	fmt.Fprintln(w, "      --width <n>           Screenshot width in CSS pixels")
	fmt.Fprintln(w, "  -t, --timeout <d>         Page load timeout (e.g., 30s, 2m)")
	fmt.Fprintln(w)
	printInputUsage(w)
	printCommonUsage(w)
}

// printSendUsage prints usage for the send command.
func printSendUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: consolemail send --to <addr> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render the build status email and send it through the SMTP relay.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Recipients:")
	fmt.Fprintln(w, "      --to <addr>           To addresses (repeatable or comma-separated)")
	fmt.Fprintln(w, "      --cc <addr>           Cc addresses")
	fmt.Fprintln(w, "      --bcc <addr>          Bcc addresses")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Delivery:")
	fmt.Fprintln(w, "  -t, --timeout <d>         Delivery timeout (default: 30s)")
	fmt.Fprintln(w, "      --metrics-file <path> Write Prometheus metrics after sending")
	fmt.Fprintln(w)
	printInputUsage(w)
	printCommonUsage(w)
}

// printDoctorUsage prints usage for the doctor command.
func printDoctorUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: consolemail doctor [--json] [--config <name>]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Check Chrome, configuration, and the temp directory.")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) error {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return nil
	}

	switch args[0] {
	case "render":
		printRenderUsage(env.Stdout)
	case "preview":
		printPreviewUsage(env.Stdout)
	case "send":
		printSendUsage(env.Stdout)
	case "doctor":
		printDoctorUsage(env.Stdout)
	case "variants":
		fmt.Fprintln(env.Stdout, "Usage: consolemail variants [name]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "List button variants with their colors, and the CDN image URLs.")
		fmt.Fprintln(env.Stdout, "With a variant name (e.g., success), print only its color.")
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: consolemail version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: consolemail help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		printUsage(env.Stderr)
		return fmt.Errorf("%w: %s", ErrUnknownCommand, args[0])
	}
	return nil
}
