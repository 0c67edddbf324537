package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/xtages/go-consolemail/internal/config"
)

const envPrefix = "CONSOLEMAIL_"

// ErrEnvConfig is returned when a CONSOLEMAIL_* variable cannot be parsed.
var ErrEnvConfig = errors.New("invalid environment variable")

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
// Tags are relative to envPrefix.
type envConfig struct {
	ConfigPath  string        `env:"CONFIG"`
	Timeout     time.Duration `env:"TIMEOUT"`
	OutputDir   string        `env:"OUTPUT_DIR"`
	MetricsFile string        `env:"METRICS_FILE"`

	Basename        string `env:"BASENAME"`
	NoReplyAddress  string `env:"NO_REPLY_ADDRESS"`
	EmailReturnPath string `env:"RETURN_PATH"`

	SMTPHost     string `env:"SMTP_HOST"`
	SMTPPort     int    `env:"SMTP_PORT"`
	SMTPUsername string `env:"SMTP_USERNAME"`
	SMTPPassword string `env:"SMTP_PASSWORD"`
	SMTPSSL      *bool  `env:"SMTP_SSL"`

	AssetsPath  string `env:"ASSETS_PATH"`
	TemplateSet string `env:"TEMPLATE_SET"`
	Style       string `env:"STYLE"`

	LogLevel  string `env:"LOG_LEVEL"`
	LogFormat string `env:"LOG_FORMAT"`
	LogFile   string `env:"LOG_FILE"`
}

// knownEnvVars lists valid CONSOLEMAIL_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"CONSOLEMAIL_CONFIG":           true,
	"CONSOLEMAIL_TIMEOUT":          true,
	"CONSOLEMAIL_OUTPUT_DIR":       true,
	"CONSOLEMAIL_METRICS_FILE":     true,
	"CONSOLEMAIL_BASENAME":         true,
	"CONSOLEMAIL_NO_REPLY_ADDRESS": true,
	"CONSOLEMAIL_RETURN_PATH":      true,
	"CONSOLEMAIL_SMTP_HOST":        true,
	"CONSOLEMAIL_SMTP_PORT":        true,
	"CONSOLEMAIL_SMTP_USERNAME":    true,
	"CONSOLEMAIL_SMTP_PASSWORD":    true,
	"CONSOLEMAIL_SMTP_SSL":         true,
	"CONSOLEMAIL_ASSETS_PATH":      true,
	"CONSOLEMAIL_TEMPLATE_SET":     true,
	"CONSOLEMAIL_STYLE":            true,
	"CONSOLEMAIL_LOG_LEVEL":        true,
	"CONSOLEMAIL_LOG_FORMAT":       true,
	"CONSOLEMAIL_LOG_FILE":         true,
}

// environMap merges the dotenv file under the process environment.
// Process variables win, matching godotenv.Load which never overrides.
func environMap(environ []string, dotEnvPath string) (map[string]string, error) {
	vars := make(map[string]string)

	if dotEnvPath != "" {
		dotVars, err := godotenv.Read(dotEnvPath)
		switch {
		case err == nil:
			for k, v := range dotVars {
				vars[k] = v
			}
		case errors.Is(err, fs.ErrNotExist):
		default:
			return nil, fmt.Errorf("%w: reading %s: %v", ErrEnvConfig, dotEnvPath, err)
		}
	}

	for _, kv := range environ {
		k, v, ok := strings.Cut(kv, "=")
		if ok {
			vars[k] = v
		}
	}
	return vars, nil
}

// loadEnvConfig reads configuration from environment variables.
func loadEnvConfig(vars map[string]string) (*envConfig, error) {
	cfg := &envConfig{}
	err := env.ParseWithOptions(cfg, env.Options{
		Prefix:      envPrefix,
		Environment: vars,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEnvConfig, err)
	}
	if cfg.Timeout < 0 {
		return nil, fmt.Errorf("%w: %sTIMEOUT must be positive", ErrEnvConfig, envPrefix)
	}
	return cfg, nil
}

// warnUnknownEnvVars writes warnings for unrecognized CONSOLEMAIL_* variables.
// Helps catch typos like CONSOLEMAIL_SMTP_HOTS.
func warnUnknownEnvVars(w io.Writer, vars map[string]string) {
	for name := range vars {
		if strings.HasPrefix(name, envPrefix) && !knownEnvVars[name] {
			fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
		}
	}
}

// applyEnvConfig applies environment variable values to config.
// Set variables override the config file: flags > env vars > config file > defaults
// (flags are applied later by each command).
func applyEnvConfig(e *envConfig, cfg *config.Config) {
	setIfSet(&cfg.Server.Basename, e.Basename)
	setIfSet(&cfg.Server.NoReplyAddress, e.NoReplyAddress)
	setIfSet(&cfg.Server.EmailReturnPath, e.EmailReturnPath)

	setIfSet(&cfg.SMTP.Host, e.SMTPHost)
	setIfSet(&cfg.SMTP.Port, e.SMTPPort)
	setIfSet(&cfg.SMTP.Username, e.SMTPUsername)
	setIfSet(&cfg.SMTP.Password, e.SMTPPassword)
	if e.SMTPSSL != nil {
		cfg.SMTP.SSL = *e.SMTPSSL
	}

	setIfSet(&cfg.Assets.BasePath, e.AssetsPath)
	setIfSet(&cfg.Assets.TemplateSet, e.TemplateSet)
	setIfSet(&cfg.Assets.Style, e.Style)

	setIfSet(&cfg.Preview.Timeout, e.Timeout)

	setIfSet(&cfg.Log.Level, e.LogLevel)
	setIfSet(&cfg.Log.Format, e.LogFormat)
	setIfSet(&cfg.Log.File, e.LogFile)
}

// setIfSet overwrites field with value unless value is the zero value.
func setIfSet[T comparable](field *T, value T) {
	var zero T
	if value != zero {
		*field = value
	}
}
