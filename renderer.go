package consolemail

import (
	"bytes"
	"context"
	"fmt"
	htmltemplate "html/template"
	"net/url"
	"os"
	"strings"
	texttemplate "text/template"

	"github.com/xtages/go-consolemail/internal/fileutil"
	"github.com/xtages/go-consolemail/internal/pipeline"
)

// Compile-time interface implementation checks.
var (
	_ pipeline.CommitMessagePreprocessor = (*pipeline.GitMessagePreprocessor)(nil)
	_ pipeline.HTMLConverter             = (*pipeline.GoldmarkConverter)(nil)
	_ pipeline.CSSInjector               = (*pipeline.HeadStyleInjection)(nil)
)

// Labels shown in the build status email.
const (
	viewProjectLabel    = "View project"
	defaultOrganization = "your organization"
	shortHashLength     = 7
)

// Renderer turns builds into email contents.
// Create with NewRenderer; a Renderer is safe for concurrent use.
type Renderer struct {
	cfg           rendererConfig
	consoleURL    *url.URL
	assetLoader   AssetLoader
	preprocessor  pipeline.CommitMessagePreprocessor
	htmlConverter pipeline.HTMLConverter
	cssInjector   pipeline.CSSInjector
	htmlTmpl      *htmltemplate.Template
	plainTmpl     *texttemplate.Template
	css           string
}

// rendererConfig holds options applied by NewRenderer.
type rendererConfig struct {
	consoleURL  string
	assetPath   string
	styleInput  string
	templateSet *TemplateSet
	noStyle     bool
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithConsoleURL sets the console base URL used to build project links,
// e.g. "https://console.xtages.com". Required.
func WithConsoleURL(rawURL string) Option {
	return func(r *Renderer) {
		r.cfg.consoleURL = rawURL
	}
}

// WithAssetPath loads styles and templates from a directory,
// falling back to the embedded assets.
func WithAssetPath(path string) Option {
	return func(r *Renderer) {
		r.cfg.assetPath = path
	}
}

// WithAssetLoader sets a custom asset loader. Takes precedence over WithAssetPath.
func WithAssetLoader(loader AssetLoader) Option {
	return func(r *Renderer) {
		r.assetLoader = loader
	}
}

// WithTemplateSet uses the given template set instead of loading the built-in one.
func WithTemplateSet(ts *TemplateSet) Option {
	return func(r *Renderer) {
		r.cfg.templateSet = ts
	}
}

// WithStyle sets the CSS injected into the HTML body.
// Accepts a style name, a file path, or raw CSS content.
func WithStyle(style string) Option {
	return func(r *Renderer) {
		r.cfg.styleInput = style
	}
}

// WithoutStyle disables CSS injection.
func WithoutStyle() Option {
	return func(r *Renderer) {
		r.cfg.noStyle = true
	}
}

// NewRenderer creates a Renderer and parses its templates.
// Returns ErrMissingConsoleURL or ErrInvalidConsoleURL for a bad console URL,
// and asset errors (ErrTemplateSetNotFound, ErrStyleNotFound...) if loading fails.
func NewRenderer(opts ...Option) (*Renderer, error) {
	r := &Renderer{
		preprocessor:  &pipeline.GitMessagePreprocessor{},
		htmlConverter: pipeline.NewGoldmarkConverter(),
		cssInjector:   &pipeline.HeadStyleInjection{},
	}

	for _, opt := range opts {
		opt(r)
	}

	consoleURL, err := parseConsoleURL(r.cfg.consoleURL)
	if err != nil {
		return nil, err
	}
	r.consoleURL = consoleURL

	if r.assetLoader == nil {
		loader, err := NewAssetLoader(r.cfg.assetPath)
		if err != nil {
			return nil, err
		}
		r.assetLoader = loader
	}

	if err := r.resolveStyle(); err != nil {
		return nil, err
	}

	ts := r.cfg.templateSet
	if ts == nil {
		ts, err = r.assetLoader.LoadTemplateSet(BuildStatusChangedTemplateSet)
		if err != nil {
			return nil, fmt.Errorf("loading template set: %w", err)
		}
	}

	r.htmlTmpl, err = htmltemplate.New(ts.Name + ".html").Parse(ts.HTML)
	if err != nil {
		return nil, fmt.Errorf("%w: parsing html template: %v", ErrTemplateRender, err)
	}
	r.plainTmpl, err = texttemplate.New(ts.Name + ".txt").Parse(ts.Plain)
	if err != nil {
		return nil, fmt.Errorf("%w: parsing plain template: %v", ErrTemplateRender, err)
	}

	return r, nil
}

// parseConsoleURL requires an absolute http(s) URL.
func parseConsoleURL(raw string) (*url.URL, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, ErrMissingConsoleURL
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConsoleURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidConsoleURL, raw)
	}
	return u, nil
}

// resolveStyle resolves the style input (name, path, or CSS content) to CSS content.
func (r *Renderer) resolveStyle() error {
	if r.cfg.noStyle {
		return nil
	}

	input := r.cfg.styleInput
	switch {
	case input == "":
		css, err := r.assetLoader.LoadStyle(DefaultStyle)
		if err != nil {
			return fmt.Errorf("loading style %q: %w", DefaultStyle, err)
		}
		r.css = css
	case fileutil.IsCSS(input):
		r.css = input
	case fileutil.IsFilePath(input):
		content, err := os.ReadFile(input) // #nosec G304 -- user-provided path
		if err != nil {
			return fmt.Errorf("loading style file %q: %w", input, err)
		}
		r.css = string(content)
	default:
		css, err := r.assetLoader.LoadStyle(input)
		if err != nil {
			return fmt.Errorf("loading style %q: %w", input, err)
		}
		r.css = css
	}
	return nil
}

// ProjectURL returns the console page of a project: {consoleURL}/project/{name}.
func (r *Renderer) ProjectURL(project *Project) string {
	return r.consoleURL.JoinPath("project", url.PathEscape(project.Name)).String()
}

// buttonView is the data of the call-to-action button partial.
type buttonView struct {
	URL   string
	Color string
	Label string
}

// buildStatusView is the data both build status templates are executed with.
type buildStatusView struct {
	Title          string
	StatusLabel    string
	LogoURL        string
	StatusIconURL  string
	ProjectName    string
	ProjectURL     string
	Organization   string
	Button         buttonView
	CommitURL      string
	CommitHash     string
	ShortHash      string
	InitiatorName  string
	InitiatorEmail string
	CommitDesc     string
	CommitDescHTML htmltemplate.HTML
}

// BuildStatusChanged renders the notification sent when a build changes status.
// Only CI builds and failed staging deployments are accepted; anything else
// returns ErrInvalidBuildType. Recovers from template panics.
func (r *Renderer) BuildStatusChanged(ctx context.Context, project *Project, build *Build, commitDesc string) (contents *EmailContents, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("%w: internal error: %v", ErrTemplateRender, rec)
		}
	}()

	if err := project.Validate(); err != nil {
		return nil, err
	}
	if err := build.Validate(); err != nil {
		return nil, err
	}
	if !build.notifiable() {
		return nil, fmt.Errorf("%w: type=%s env=%q status=%s", ErrInvalidBuildType, build.Type, build.Env, build.Status)
	}

	view, err := r.buildStatusView(ctx, project, build, commitDesc)
	if err != nil {
		return nil, err
	}

	htmlBody, err := r.renderHTML(ctx, view)
	if err != nil {
		return nil, err
	}

	var plain bytes.Buffer
	if err := r.plainTmpl.Execute(&plain, view); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTemplateRender, err)
	}

	return &EmailContents{
		Subject: view.Title,
		HTML:    htmlBody,
		Plain:   plain.String(),
	}, nil
}

// buildStatusView gathers everything the templates show.
func (r *Renderer) buildStatusView(ctx context.Context, project *Project, build *Build, commitDesc string) (*buildStatusView, error) {
	desc := r.preprocessor.PreprocessCommitMessage(ctx, commitDesc)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	descHTML, err := r.commitDescHTML(ctx, desc, project.GitHubRepoURL)
	if err != nil {
		return nil, err
	}

	variant := ButtonDanger
	statusLabel := "failed"
	if build.Succeeded() {
		variant = ButtonSuccess
		statusLabel = "succeeded"
	}

	org := project.Organization
	if org == "" {
		org = defaultOrganization
	}

	projectURL := r.ProjectURL(project)

	return &buildStatusView{
		Title:         buildTitle(project, build),
		StatusLabel:   statusLabel,
		LogoURL:       LogoURL,
		StatusIconURL: StatusIconURL(build.Status),
		ProjectName:   project.Name,
		ProjectURL:    projectURL,
		Organization:  org,
		Button: buttonView{
			URL:   projectURL,
			Color: variant.Color(),
			Label: viewProjectLabel,
		},
		CommitURL:      build.CommitURL,
		CommitHash:     build.CommitHash,
		ShortHash:      shortHash(build.CommitHash),
		InitiatorName:  build.InitiatorName,
		InitiatorEmail: build.InitiatorEmail,
		CommitDesc:     commitDesc,
		CommitDescHTML: descHTML,
	}, nil
}

// commitDescHTML converts the commit description from Markdown.
// The fragment comes from goldmark without raw HTML, so it is marked safe.
func (r *Renderer) commitDescHTML(ctx context.Context, desc, repoURL string) (htmltemplate.HTML, error) {
	if desc == "" {
		return "", nil
	}

	fragment, err := r.htmlConverter.ToHTML(ctx, desc)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", fmt.Errorf("%w: %v", ErrMarkdownRender, err)
	}

	fragment, err = pipeline.ResolveRelativeLinks(fragment, repoURL)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMarkdownRender, err)
	}

	return htmltemplate.HTML(fragment), nil // #nosec G203 -- goldmark output without WithUnsafe
}

// renderHTML executes the HTML template and injects the stylesheet.
func (r *Renderer) renderHTML(ctx context.Context, view *buildStatusView) (string, error) {
	var buf bytes.Buffer
	if err := r.htmlTmpl.Execute(&buf, view); err != nil {
		return "", fmt.Errorf("%w: %v", ErrTemplateRender, err)
	}

	if r.css == "" {
		return buf.String(), nil
	}

	out, err := r.cssInjector.InjectCSS(ctx, buf.String(), r.css)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", fmt.Errorf("%w: %v", ErrTemplateRender, err)
	}
	return out, nil
}

// buildTitle returns the subject line of the build status email.
// Callers have already checked the build is notifiable.
func buildTitle(project *Project, build *Build) string {
	if build.Type == BuildTypeCD {
		return fmt.Sprintf("Deployment to %s for %s failed", build.Env, project.Name)
	}
	if build.Succeeded() {
		return fmt.Sprintf("Build(#%d) for %s was fixed", build.BuildNumber, project.Name)
	}
	return fmt.Sprintf("Build(#%d) for %s failed", build.BuildNumber, project.Name)
}

// shortHash abbreviates a commit hash the way git does by default.
func shortHash(hash string) string {
	if len(hash) <= shortHashLength {
		return hash
	}
	return hash[:shortHashLength]
}
