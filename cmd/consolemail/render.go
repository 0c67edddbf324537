package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	consolemail "github.com/xtages/go-consolemail"
	"github.com/xtages/go-consolemail/internal/fileutil"
)

// ErrWriteOutput is returned when a rendered file cannot be written.
var ErrWriteOutput = errors.New("failed to write output")

// runRender renders the build status email and writes <name>.html and <name>.txt.
func runRender(ctx context.Context, args []string, env *Environment) error {
	f, positional, err := parseRenderFlags(args, env.Stderr)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	}
	if len(positional) > 0 {
		return fmt.Errorf("%w: unexpected argument %q", ErrUsage, positional[0])
	}

	rc, err := newRunContext(f.common, env)
	if err != nil {
		return err
	}
	defer rc.Close()

	contents, err := rc.render(ctx, f.input, f.assets)
	if err != nil {
		return err
	}

	outDir := resolveOutputDir(f.output, rc.env)
	files := []struct {
		name string
		data string
	}{
		{f.name + ".html", contents.HTML},
		{f.name + ".txt", contents.Plain},
	}
	for _, file := range files {
		path, err := fileutil.WriteOutput(outDir, file.name, []byte(file.data))
		if err != nil {
			return fmt.Errorf("%w: %v", ErrWriteOutput, err)
		}
		if !f.common.quiet {
			fmt.Fprintf(env.Stdout, "wrote %s\n", path)
		}
	}

	if !f.common.quiet {
		fmt.Fprintf(env.Stdout, "subject: %s\n", contents.Subject)
	}
	return nil
}

// render loads the build input and renders it.
func (rc *runContext) render(ctx context.Context, in inputFlags, af assetFlags) (*consolemail.EmailContents, error) {
	input, err := loadBuildInput(in)
	if err != nil {
		return nil, err
	}

	renderer, err := rc.newRenderer(af)
	if err != nil {
		return nil, err
	}

	contents, err := renderer.BuildStatusChanged(ctx, &input.Project, &input.Build, input.CommitDescription)
	if err != nil {
		return nil, err
	}

	rc.logger.WithFields(logrus.Fields{
		"project": input.Project.Name,
		"build":   input.Build.BuildNumber,
		"subject": contents.Subject,
	}).Debug("rendered build status email")
	return contents, nil
}
