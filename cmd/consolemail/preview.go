package main

import (
	"context"
	"fmt"

	"github.com/xtages/go-consolemail/internal/fileutil"
)

// runPreview renders the email, then writes a PDF and/or PNG of it from
// headless Chrome. Without --pdf or --png both are written.
func runPreview(ctx context.Context, args []string, env *Environment) error {
	f, positional, err := parsePreviewFlags(args, env.Stderr)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	}
	if len(positional) > 0 {
		return fmt.Errorf("%w: unexpected argument %q", ErrUsage, positional[0])
	}
	if f.width < 0 {
		return fmt.Errorf("%w: width must not be negative, got %d", ErrUsage, f.width)
	}
	if !f.pdf && !f.png {
		f.pdf, f.png = true, true
	}

	rc, err := newRunContext(f.render.common, env)
	if err != nil {
		return err
	}
	defer rc.Close()

	timeout, err := resolveTimeout(f.timeout, rc.cfg.Preview.Timeout)
	if err != nil {
		return err
	}
	width := f.width
	if width == 0 {
		width = rc.cfg.Preview.Width
	}

	contents, err := rc.render(ctx, f.render.input, f.render.assets)
	if err != nil {
		return err
	}

	previewer := env.NewPreviewer(timeout, width)
	defer func() {
		if cerr := previewer.Close(); cerr != nil {
			rc.logger.WithError(cerr).Warn("closing browser")
		}
	}()

	outDir := resolveOutputDir(f.render.output, rc.env)
	outputs := []struct {
		enabled bool
		ext     string
		render  func(context.Context, string) ([]byte, error)
	}{
		{f.pdf, ".pdf", previewer.PDF},
		{f.png, ".png", previewer.Screenshot},
	}
	for _, out := range outputs {
		if !out.enabled {
			continue
		}
		data, err := out.render(ctx, contents.HTML)
		if err != nil {
			return err
		}
		path, err := fileutil.WriteOutput(outDir, f.render.name+out.ext, data)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrWriteOutput, err)
		}
		rc.logger.WithField("path", path).WithField("bytes", len(data)).Debug("wrote preview")
		if !f.render.common.quiet {
			fmt.Fprintf(env.Stdout, "wrote %s\n", path)
		}
	}
	return nil
}
