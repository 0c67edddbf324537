package consolemail

import (
	"errors"

	"github.com/xtages/go-consolemail/internal/assets"
)

// Asset name constants for built-in styles and templates.
const (
	// DefaultStyle is the name of the built-in email CSS.
	DefaultStyle = assets.DefaultStyleName

	// BuildStatusChangedTemplateSet is the name of the built-in build status email.
	BuildStatusChangedTemplateSet = assets.BuildStatusChangedTemplateSet
)

// AssetLoader defines the contract for loading CSS styles and email templates.
//
// The library provides NewAssetLoader() for filesystem-based loading with
// fallback to embedded defaults. Implement this interface for custom backends.
type AssetLoader interface {
	// LoadStyle loads a CSS style by name (without .css extension).
	// Returns ErrStyleNotFound if the style doesn't exist.
	LoadStyle(name string) (string, error)

	// LoadTemplateSet loads the HTML and plain-text bodies by name.
	// Returns ErrTemplateSetNotFound if the template set doesn't exist.
	// Returns ErrIncompleteTemplateSet if one body is missing.
	LoadTemplateSet(name string) (*TemplateSet, error)
}

// TemplateSet holds the two bodies of one email.
// HTML is parsed with html/template, Plain with text/template.
type TemplateSet struct {
	Name  string
	HTML  string
	Plain string
}

// NewTemplateSet creates a TemplateSet from template sources.
func NewTemplateSet(name, htmlBody, plainBody string) *TemplateSet {
	return &TemplateSet{
		Name:  name,
		HTML:  htmlBody,
		Plain: plainBody,
	}
}

// NewAssetLoader creates an AssetLoader for the given base path.
// If basePath is empty, returns a loader using only embedded assets.
// If basePath is set, custom assets take precedence with fallback to embedded.
//
// The basePath directory should contain:
//   - styles/{name}.css for CSS styles
//   - templates/{name}/email.html and email.txt for template sets
//
// Returns ErrInvalidAssetPath if basePath is set but not a readable directory.
func NewAssetLoader(basePath string) (AssetLoader, error) {
	resolver, err := assets.NewAssetResolver(basePath)
	if err != nil {
		return nil, convertAssetError(err, ErrInvalidAssetPath)
	}
	return &assetLoaderAdapter{loader: resolver}, nil
}

// assetLoaderAdapter wraps an internal loader to return public types and errors.
type assetLoaderAdapter struct {
	loader assets.AssetLoader
}

func (a *assetLoaderAdapter) LoadStyle(name string) (string, error) {
	content, err := a.loader.LoadStyle(name)
	if err != nil {
		return "", convertAssetError(err, ErrStyleNotFound)
	}
	return content, nil
}

func (a *assetLoaderAdapter) LoadTemplateSet(name string) (*TemplateSet, error) {
	ts, err := a.loader.LoadTemplateSet(name)
	if err != nil {
		return nil, convertAssetError(err, ErrTemplateSetNotFound)
	}
	return &TemplateSet{
		Name:  ts.Name,
		HTML:  ts.HTML,
		Plain: ts.Plain,
	}, nil
}

// convertAssetError maps internal asset errors to public errors.
// An invalid asset name cannot exist, so it maps to notFound.
func convertAssetError(err, notFound error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, assets.ErrStyleNotFound):
		return wrapError(ErrStyleNotFound, err)
	case errors.Is(err, assets.ErrTemplateSetNotFound):
		return wrapError(ErrTemplateSetNotFound, err)
	case errors.Is(err, assets.ErrIncompleteTemplateSet):
		return wrapError(ErrIncompleteTemplateSet, err)
	case errors.Is(err, assets.ErrInvalidBasePath),
		errors.Is(err, assets.ErrPathTraversal):
		return wrapError(ErrInvalidAssetPath, err)
	case errors.Is(err, assets.ErrInvalidAssetName):
		return wrapError(notFound, err)
	default:
		return err
	}
}

// wrapError keeps the original message while matching the public sentinel
// with errors.Is. Internal sentinels are not exposed.
func wrapError(sentinel, original error) error {
	return &wrappedAssetError{sentinel: sentinel, original: original}
}

type wrappedAssetError struct {
	sentinel error
	original error
}

func (e *wrappedAssetError) Error() string {
	return e.original.Error()
}

func (e *wrappedAssetError) Unwrap() error {
	return e.sentinel
}
