package assets

// AssetLoader defines the contract for loading CSS styles and email template sets.
type AssetLoader interface {
	// LoadStyle loads a CSS style by name (without .css extension).
	// Returns ErrStyleNotFound if the style doesn't exist.
	// Returns ErrInvalidAssetName if the name contains invalid characters.
	LoadStyle(name string) (string, error)

	// LoadTemplateSet loads the HTML and plain-text bodies of a template set.
	// Returns ErrTemplateSetNotFound if neither body exists.
	// Returns ErrIncompleteTemplateSet if only one body exists.
	LoadTemplateSet(name string) (*TemplateSet, error)
}
