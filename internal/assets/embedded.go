package assets

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
)

//go:embed styles/*
var styles embed.FS

//go:embed templates/*
var templates embed.FS

// EmbeddedLoader loads assets compiled into the binary.
type EmbeddedLoader struct{}

// NewEmbeddedLoader creates an EmbeddedLoader.
func NewEmbeddedLoader() *EmbeddedLoader {
	return &EmbeddedLoader{}
}

// LoadStyle loads a CSS style from embedded assets by name.
func (e *EmbeddedLoader) LoadStyle(name string) (string, error) {
	if err := ValidateAssetName(name); err != nil {
		return "", err
	}

	content, err := styles.ReadFile("styles/" + name + ".css")
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrStyleNotFound, name)
	}

	return string(content), nil
}

// LoadTemplateSet loads both bodies of an embedded template set.
func (e *EmbeddedLoader) LoadTemplateSet(name string) (*TemplateSet, error) {
	if err := ValidateAssetName(name); err != nil {
		return nil, err
	}

	dir := path.Join("templates", name)
	htmlBody, htmlErr := templates.ReadFile(path.Join(dir, HTMLFileName))
	plainBody, plainErr := templates.ReadFile(path.Join(dir, PlainFileName))

	htmlMissing := errors.Is(htmlErr, fs.ErrNotExist)
	plainMissing := errors.Is(plainErr, fs.ErrNotExist)

	switch {
	case htmlMissing && plainMissing:
		return nil, fmt.Errorf("%w: %q", ErrTemplateSetNotFound, name)
	case htmlMissing:
		return nil, fmt.Errorf("%w: %q missing %s", ErrIncompleteTemplateSet, name, HTMLFileName)
	case plainMissing:
		return nil, fmt.Errorf("%w: %q missing %s", ErrIncompleteTemplateSet, name, PlainFileName)
	case htmlErr != nil:
		return nil, fmt.Errorf("%w: %v", ErrAssetRead, htmlErr)
	case plainErr != nil:
		return nil, fmt.Errorf("%w: %v", ErrAssetRead, plainErr)
	}

	return &TemplateSet{
		Name:  name,
		HTML:  string(htmlBody),
		Plain: string(plainBody),
	}, nil
}

// ListStyles returns the names of the embedded styles, sorted.
func (e *EmbeddedLoader) ListStyles() []string {
	entries, err := styles.ReadDir("styles")
	if err != nil {
		return nil
	}
	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".css") {
			continue
		}
		names = append(names, strings.TrimSuffix(entry.Name(), ".css"))
	}
	sort.Strings(names)
	return names
}

// ListTemplateSets returns the names of the embedded template sets, sorted.
func (e *EmbeddedLoader) ListTemplateSets() []string {
	entries, err := templates.ReadDir("templates")
	if err != nil {
		return nil
	}
	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	return names
}

// Compile-time interface check.
var _ AssetLoader = (*EmbeddedLoader)(nil)
