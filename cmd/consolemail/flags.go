package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
	noColor bool
}

// inputFlags selects the build the email is rendered for.
type inputFlags struct {
	buildFile  string // YAML with project, build and commitDescription; empty = sample
	commitDesc string // Overrides the commit description
}

// assetFlags holds asset-related flags (CSS, template set, custom asset path).
type assetFlags struct {
	style       string // Name, path or CSS content
	templateSet string // Template set name
	assetPath   string // Override asset directory
	noStyle     bool   // Disable CSS styling
	consoleURL  string // Override server.basename
}

// renderFlags holds all flags for the render command.
type renderFlags struct {
	common commonFlags
	input  inputFlags
	assets assetFlags
	output string
	name   string
}

// previewFlags holds all flags for the preview command.
type previewFlags struct {
	render  renderFlags
	pdf     bool
	png     bool
	width   int
	timeout string
}

// sendFlags holds all flags for the send command.
type sendFlags struct {
	common      commonFlags
	input       inputFlags
	assets      assetFlags
	to          []string
	cc          []string
	bcc         []string
	timeout     string
	metricsFile string
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "log debug details")
	fs.BoolVar(&f.noColor, "no-color", false, "disable colored output")
}

// addInputFlags adds build input flags to a FlagSet.
func addInputFlags(fs *flag.FlagSet, f *inputFlags) {
	fs.StringVarP(&f.buildFile, "build", "b", "", "YAML file describing the project and build (default: sample build)")
	fs.StringVar(&f.commitDesc, "commit-desc", "", "commit description (Markdown)")
}

// addAssetFlags adds asset-related flags to a FlagSet.
func addAssetFlags(fs *flag.FlagSet, f *assetFlags) {
	fs.StringVar(&f.style, "style", "", "CSS style name or file path")
	fs.StringVar(&f.templateSet, "template", "", "template set name")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom asset directory")
	fs.BoolVar(&f.noStyle, "no-style", false, "disable CSS styling")
	fs.StringVar(&f.consoleURL, "console-url", "", "console base URL for links")
}

// addRenderFlags adds render flags to a FlagSet. Shared with preview.
func addRenderFlags(fs *flag.FlagSet, f *renderFlags) {
	fs.StringVarP(&f.output, "output", "o", "", "output directory (default: $TMPDIR/templates)")
	fs.StringVarP(&f.name, "name", "n", defaultOutputName, "output file base name")
	addCommonFlags(fs, &f.common)
	addInputFlags(fs, &f.input)
	addAssetFlags(fs, &f.assets)
}

// newFlagSet creates a FlagSet that reports parse errors instead of exiting.
func newFlagSet(name string, usage func(io.Writer), stderr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { usage(stderr) }
	return fs
}

// parseRenderFlags parses render command flags and returns positional args.
func parseRenderFlags(args []string, stderr io.Writer) (*renderFlags, []string, error) {
	f := &renderFlags{}
	fs := newFlagSet("render", printRenderUsage, stderr)
	addRenderFlags(fs, f)

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parsePreviewFlags parses preview command flags and returns positional args.
func parsePreviewFlags(args []string, stderr io.Writer) (*previewFlags, []string, error) {
	f := &previewFlags{}
	fs := newFlagSet("preview", printPreviewUsage, stderr)
	addRenderFlags(fs, &f.render)
	fs.BoolVar(&f.pdf, "pdf", false, "write a PDF preview")
	fs.BoolVar(&f.png, "png", false, "write a PNG screenshot")
	fs.IntVar(&f.width, "width", 0, "screenshot width in CSS pixels (0 = config)")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "page load timeout (e.g., 30s, 2m)")

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parseSendFlags parses send command flags and returns positional args.
func parseSendFlags(args []string, stderr io.Writer) (*sendFlags, []string, error) {
	f := &sendFlags{}
	fs := newFlagSet("send", printSendUsage, stderr)
	fs.StringSliceVar(&f.to, "to", nil, "To addresses (repeatable or comma-separated)")
	fs.StringSliceVar(&f.cc, "cc", nil, "Cc addresses")
	fs.StringSliceVar(&f.bcc, "bcc", nil, "Bcc addresses")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "delivery timeout (e.g., 30s, 2m)")
	fs.StringVar(&f.metricsFile, "metrics-file", "", "write Prometheus metrics to this file")
	addCommonFlags(fs, &f.common)
	addInputFlags(fs, &f.input)
	addAssetFlags(fs, &f.assets)

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}
