package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/xtages/go-consolemail/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidConfig   = errors.New("invalid config")
)

// Field length limits.
const (
	MaxURLLength      = 2048 // Browser limit
	MaxEmailLength    = 254  // RFC 5321
	MaxHostLength     = 253  // RFC 1035
	MaxUsernameLength = 254
	MaxPasswordLength = 1024
	MaxPathLength     = 4096
	MaxNameLength     = 100 // Style and template set names
)

// DefaultConsoleBasename is the production console URL.
const DefaultConsoleBasename = "https://console.xtages.com"

// Config holds everything needed to render, preview and send emails.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	SMTP    SMTPConfig    `yaml:"smtp"`
	Assets  AssetsConfig  `yaml:"assets"`
	Preview PreviewConfig `yaml:"preview"`
	Log     LogConfig     `yaml:"log"`
}

// ServerConfig describes the console emails link to and send from.
type ServerConfig struct {
	Basename        string `yaml:"basename" validate:"required,http_url"`
	NoReplyAddress  string `yaml:"noReplyAddress" validate:"omitempty,email"`  // From and default Reply-To
	EmailReturnPath string `yaml:"emailReturnPath" validate:"omitempty,email"` // Bounce address
}

// SMTPConfig defines the relay used by the send command.
type SMTPConfig struct {
	Host     string `yaml:"host" validate:"omitempty,hostname_rfc1123|ip"`
	Port     int    `yaml:"port" validate:"omitempty,min=1,max=65535"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	SSL      bool   `yaml:"ssl"` // Implicit TLS (port 465)
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath    string `yaml:"basePath"`    // Empty = use embedded assets
	TemplateSet string `yaml:"templateSet"` // Empty = build-status-changed
	Style       string `yaml:"style"`       // Name, path or CSS; empty = email
}

// PreviewConfig defines headless Chrome previews.
type PreviewConfig struct {
	Timeout time.Duration `yaml:"timeout"`
	Width   int           `yaml:"width" validate:"omitempty,min=320,max=3840"` // CSS pixels
}

// LogConfig defines logging output.
type LogConfig struct {
	Level      string `yaml:"level" validate:"omitempty,oneof=trace debug info warn warning error"`
	Format     string `yaml:"format" validate:"omitempty,oneof=text json"`
	File       string `yaml:"file"` // Empty = stderr
	MaxSizeMB  int    `yaml:"maxSizeMB" validate:"min=0"`
	MaxBackups int    `yaml:"maxBackups" validate:"min=0"`
	MaxAgeDays int    `yaml:"maxAgeDays" validate:"min=0"`
	Compress   bool   `yaml:"compress"`
}

// validate checks struct tags. Field names in errors use YAML keys.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks field lengths, then formats and ranges.
// Called automatically by LoadConfig, but available for configs built in code.
func (c *Config) Validate() error {
	fields := []struct {
		name  string
		value string
		max   int
	}{
		{"server.basename", c.Server.Basename, MaxURLLength},
		{"server.noReplyAddress", c.Server.NoReplyAddress, MaxEmailLength},
		{"server.emailReturnPath", c.Server.EmailReturnPath, MaxEmailLength},
		{"smtp.host", c.SMTP.Host, MaxHostLength},
		{"smtp.username", c.SMTP.Username, MaxUsernameLength},
		{"smtp.password", c.SMTP.Password, MaxPasswordLength},
		{"assets.basePath", c.Assets.BasePath, MaxPathLength},
		{"assets.templateSet", c.Assets.TemplateSet, MaxNameLength},
		{"assets.style", c.Assets.Style, MaxPathLength},
		{"log.file", c.Log.File, MaxPathLength},
	}
	for _, f := range fields {
		if err := validateFieldLength(f.name, f.value, f.max); err != nil {
			return err
		}
	}

	if c.Preview.Timeout < 0 {
		return fmt.Errorf("%w: preview.timeout: must not be negative, got %s", ErrInvalidConfig, c.Preview.Timeout)
	}

	if err := validate.Struct(c); err != nil {
		return formatValidationError(err)
	}
	return nil
}

// formatValidationError reports the first failed rule as "path: rule".
func formatValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	fe := verrs[0]
	// Namespace is "Config.server.basename"; drop the type name.
	path := fe.Namespace()
	if i := strings.IndexByte(path, '.'); i >= 0 {
		path = path[i+1:]
	}

	rule := fe.Tag()
	if fe.Param() != "" {
		rule += "=" + fe.Param()
	}
	return fmt.Errorf("%w: %s: failed %q (got %v)", ErrInvalidConfig, path, rule, fe.Value())
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns a config pointing at the production console with
// embedded assets and logs on stderr. Sending needs the addresses and SMTP
// relay filled in.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{Basename: DefaultConsoleBasename},
		SMTP:   SMTPConfig{Port: 587},
		Preview: PreviewConfig{
			Timeout: 30 * time.Second,
			Width:   640,
		},
		Log: LogConfig{
			Level:      "info",
			Format:     "text",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Unset fields take their DefaultConfig values.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if isFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := yamlutil.DecodeFileStrict(configPath, &cfg); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}
	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// ApplyDefaults fills zero-valued fields from DefaultConfig.
func (c *Config) ApplyDefaults() {
	d := DefaultConfig()
	setDefault(&c.Server.Basename, d.Server.Basename)
	setDefault(&c.SMTP.Port, d.SMTP.Port)
	setDefault(&c.Preview.Timeout, d.Preview.Timeout)
	setDefault(&c.Preview.Width, d.Preview.Width)
	setDefault(&c.Log.Level, d.Log.Level)
	setDefault(&c.Log.Format, d.Log.Format)
	setDefault(&c.Log.MaxSizeMB, d.Log.MaxSizeMB)
	setDefault(&c.Log.MaxBackups, d.Log.MaxBackups)
	setDefault(&c.Log.MaxAgeDays, d.Log.MaxAgeDays)
}

func setDefault[T comparable](field *T, value T) {
	var zero T
	if *field == zero {
		*field = value
	}
}

// isFilePath returns true if the string looks like a file path.
func isFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, ~/.config/consolemail/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2) // 2 locations

	for _, ext := range extensions {
		localPath := name + ext
		if fileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, "consolemail", name+ext)
			if fileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}

// fileExists returns true if the path exists and is a regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
