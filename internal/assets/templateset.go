package assets

// TemplateSet holds both bodies of one email.
type TemplateSet struct {
	Name  string // Identifier (directory name)
	HTML  string // html/template source
	Plain string // text/template source
}

// File names inside a template set directory.
const (
	HTMLFileName  = "email.html"
	PlainFileName = "email.txt"
)

// BuildStatusChangedTemplateSet is the built-in build status notification.
const BuildStatusChangedTemplateSet = "build-status-changed"

// DefaultStyleName is the name of the built-in CSS style.
const DefaultStyleName = "email"
