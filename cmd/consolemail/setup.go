package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"

	consolemail "github.com/xtages/go-consolemail"
	"github.com/xtages/go-consolemail/internal/config"
	"github.com/xtages/go-consolemail/internal/logging"
)

// ErrUsage is returned for invalid flag values and arguments.
var ErrUsage = errors.New("invalid usage")

// defaultOutputName is the base name of rendered files.
const defaultOutputName = "buildStatusChangedTemplate"

// runContext is the configuration and logger shared by one command run.
type runContext struct {
	cfg    *config.Config
	env    *envConfig
	logger *logrus.Logger
	closer io.Closer
}

// Close releases the log file, if any.
func (rc *runContext) Close() error {
	if rc.closer == nil {
		return nil
	}
	return rc.closer.Close()
}

// newRunContext loads configuration in priority order (env vars > config
// file > defaults) and builds the logger. Flags are applied by each command.
func newRunContext(f commonFlags, env *Environment) (*runContext, error) {
	if f.noColor {
		color.NoColor = true
	}

	vars, err := environMap(env.Environ(), env.DotEnvPath)
	if err != nil {
		return nil, err
	}
	if !f.quiet {
		warnUnknownEnvVars(env.Stderr, vars)
	}

	ecfg, err := loadEnvConfig(vars)
	if err != nil {
		return nil, err
	}

	cfg := config.DefaultConfig()
	configName := f.config
	if configName == "" {
		configName = ecfg.ConfigPath
	}
	if configName != "" {
		cfg, err = config.LoadConfig(configName)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
	}

	applyEnvConfig(ecfg, cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("applying environment: %w", err)
	}

	logCfg := cfg.Log
	switch {
	case f.verbose:
		logCfg.Level = "debug"
	case f.quiet:
		logCfg.Level = "error"
	}
	logger, closer, err := logging.New(logCfg, env.Stderr)
	if err != nil {
		return nil, err
	}

	return &runContext{cfg: cfg, env: ecfg, logger: logger, closer: closer}, nil
}

// newRenderer builds the renderer from config, with asset flags taking precedence.
func (rc *runContext) newRenderer(f assetFlags) (*consolemail.Renderer, error) {
	consoleURL := rc.cfg.Server.Basename
	if f.consoleURL != "" {
		consoleURL = f.consoleURL
	}
	assetPath := firstNonEmpty(f.assetPath, rc.cfg.Assets.BasePath)
	style := firstNonEmpty(f.style, rc.cfg.Assets.Style)
	templateSet := firstNonEmpty(f.templateSet, rc.cfg.Assets.TemplateSet)

	loader, err := consolemail.NewAssetLoader(assetPath)
	if err != nil {
		return nil, err
	}

	opts := []consolemail.Option{
		consolemail.WithConsoleURL(consoleURL),
		consolemail.WithAssetLoader(loader),
	}
	if f.noStyle {
		opts = append(opts, consolemail.WithoutStyle())
	} else if style != "" {
		opts = append(opts, consolemail.WithStyle(style))
	}
	if templateSet != "" {
		ts, err := loader.LoadTemplateSet(templateSet)
		if err != nil {
			return nil, fmt.Errorf("loading template set %q: %w", templateSet, err)
		}
		opts = append(opts, consolemail.WithTemplateSet(ts))
	}

	rc.logger.WithFields(logrus.Fields{
		"consoleURL":  consoleURL,
		"assetPath":   assetPath,
		"style":       style,
		"templateSet": templateSet,
	}).Debug("creating renderer")

	return consolemail.NewRenderer(opts...)
}

// resolveTimeout returns the flag timeout if set, otherwise fallback.
func resolveTimeout(flagValue string, fallback time.Duration) (time.Duration, error) {
	if flagValue == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(flagValue)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid timeout %q: %v", ErrUsage, flagValue, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w: timeout must be positive, got %s", ErrUsage, d)
	}
	return d, nil
}

// resolveOutputDir picks --output, then CONSOLEMAIL_OUTPUT_DIR, then $TMPDIR/templates.
func resolveOutputDir(flagValue string, e *envConfig) string {
	if flagValue != "" {
		return flagValue
	}
	if e != nil && e.OutputDir != "" {
		return e.OutputDir
	}
	return filepath.Join(os.TempDir(), "templates")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
