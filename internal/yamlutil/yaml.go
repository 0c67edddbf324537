// Package yamlutil decodes the YAML documents consolemail reads: config
// files and build descriptions. Decoding is strict and size-limited.
package yamlutil

import (
	"errors"
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

// MaxDocumentSize caps the size of a YAML document (256KB). Config files
// and build descriptions are a few hundred bytes.
const MaxDocumentSize = 256 << 10

var (
	ErrEmptyDocument    = errors.New("yamlutil: empty document")
	ErrNilTarget        = errors.New("yamlutil: nil decode target")
	ErrDocumentTooLarge = errors.New("yamlutil: document too large")
)

// DecodeStrict decodes data into v, rejecting unknown fields.
func DecodeStrict(data []byte, v any) error {
	if len(data) == 0 {
		return ErrEmptyDocument
	}
	if len(data) > MaxDocumentSize {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrDocumentTooLarge, len(data), MaxDocumentSize)
	}
	if v == nil {
		return ErrNilTarget
	}
	if err := yaml.UnmarshalWithOptions(data, v, yaml.Strict()); err != nil {
		return fmt.Errorf("yamlutil: %w", err)
	}
	return nil
}

// DecodeFileStrict reads path and decodes it with DecodeStrict.
// A missing file returns an error matching os.ErrNotExist.
func DecodeFileStrict(path string, v any) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.Size() > MaxDocumentSize {
		return fmt.Errorf("%w: %s is %d bytes (max %d)", ErrDocumentTooLarge, path, info.Size(), MaxDocumentSize)
	}

	data, err := os.ReadFile(path) // #nosec G304 -- path is user-provided
	if err != nil {
		return err
	}
	return DecodeStrict(data, v)
}
