package consolemail

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/xtages/go-consolemail/internal/fileutil"
	"github.com/xtages/go-consolemail/internal/process"
)

// Preview defaults.
const (
	DefaultPreviewTimeout = 30 * time.Second
	// DefaultPreviewWidth matches the width most mail clients render at.
	DefaultPreviewWidth = 640

	previewHeight = 800
)

// PDF page dimensions in inches (US Letter format).
const (
	paperWidthInches  = 8.5
	paperHeightInches = 11
	marginInches      = 0.4
)

// previewRenderer abstracts rendering a local HTML file to enable testing without a browser.
type previewRenderer interface {
	RenderPDF(ctx context.Context, filePath string) ([]byte, error)
	RenderPNG(ctx context.Context, filePath string, width int) ([]byte, error)
	Close() error
}

var _ previewRenderer = (*rodRenderer)(nil)

// Previewer renders email HTML in headless Chrome, for checking
// templates without sending anything.
// Chromium is downloaded on first use if none is installed.
type Previewer struct {
	mu       sync.Mutex
	renderer previewRenderer
	timeout  time.Duration
	width    int
}

// PreviewOption configures a Previewer.
type PreviewOption func(*Previewer)

// WithPreviewTimeout sets how long to wait for a page to load.
func WithPreviewTimeout(d time.Duration) PreviewOption {
	return func(p *Previewer) {
		if d > 0 {
			p.timeout = d
		}
	}
}

// WithPreviewWidth sets the viewport width of screenshots, in CSS pixels.
func WithPreviewWidth(width int) PreviewOption {
	return func(p *Previewer) {
		if width > 0 {
			p.width = width
		}
	}
}

// NewPreviewer creates a Previewer. The browser starts lazily.
// Call Close to release it.
func NewPreviewer(opts ...PreviewOption) *Previewer {
	p := &Previewer{
		timeout: DefaultPreviewTimeout,
		width:   DefaultPreviewWidth,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.renderer = newRodRenderer(p.timeout)
	return p
}

// PDF renders html to a US Letter PDF with backgrounds.
func (p *Previewer) PDF(ctx context.Context, html string) ([]byte, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	tmpPath, cleanup, err := fileutil.WriteTempFile(html, "html")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPreview, err)
	}
	defer cleanup()

	return p.renderer.RenderPDF(ctx, tmpPath)
}

// Screenshot renders html to a full-page PNG at the configured width.
func (p *Previewer) Screenshot(ctx context.Context, html string) ([]byte, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	tmpPath, cleanup, err := fileutil.WriteTempFile(html, "html")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPreview, err)
	}
	defer cleanup()

	return p.renderer.RenderPNG(ctx, tmpPath, p.width)
}

// Close releases browser resources.
func (p *Previewer) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.renderer != nil {
		return p.renderer.Close()
	}
	return nil
}

// rodRenderer implements previewRenderer using go-rod.
type rodRenderer struct {
	launcher *launcher.Launcher
	browser  *rod.Browser
	timeout  time.Duration
}

func newRodRenderer(timeout time.Duration) *rodRenderer {
	return &rodRenderer{timeout: timeout}
}

// ensureBrowser lazily launches and connects to the browser.
func (r *rodRenderer) ensureBrowser() error {
	if r.browser != nil {
		return nil
	}

	l := launcher.New()

	// Use pre-installed browser if specified (Docker/containerized environments)
	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		l = l.Bin(bin)
	}

	// NoSandbox required for CI and containerized environments
	if os.Getenv("ROD_NO_SANDBOX") == "1" || os.Getenv("CI") == "true" || os.Getenv("ROD_BROWSER_BIN") != "" {
		l = l.NoSandbox(true)
	}

	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	r.launcher = l
	r.browser = browser
	return nil
}

// Close closes the browser and kills any Chrome children left behind.
func (r *rodRenderer) Close() error {
	var err error
	if r.browser != nil {
		err = r.browser.Close()
		r.browser = nil
	}
	if r.launcher != nil {
		if pid := r.launcher.PID(); pid > 0 {
			process.KillTree(pid)
		}
		r.launcher.Kill()
		r.launcher = nil
	}
	return err
}

// openPage loads filePath in a new page and waits for it.
// The caller closes the returned page.
func (r *rodRenderer) openPage(ctx context.Context, filePath string) (*rod.Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := r.ensureBrowser(); err != nil {
		return nil, err
	}

	page, err := r.browser.Page(proto.TargetCreateTarget{URL: "file://" + filePath})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}

	timeout := r.timeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
		if timeout <= 0 {
			_ = page.Close()
			return nil, context.DeadlineExceeded
		}
	}

	if err := page.Timeout(timeout).WaitLoad(); err != nil {
		_ = page.Close()
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}

	if err := ctx.Err(); err != nil {
		_ = page.Close()
		return nil, err
	}
	return page, nil
}

// RenderPDF opens a local HTML file and prints it to PDF.
func (r *rodRenderer) RenderPDF(ctx context.Context, filePath string) ([]byte, error) {
	page, err := r.openPage(ctx, filePath)
	if err != nil {
		return nil, err
	}
	defer page.Close()

	reader, err := page.PDF(pdfOptions())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPreview, err)
	}

	buf, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: reading PDF stream: %v", ErrPreview, err)
	}
	return buf, nil
}

// RenderPNG opens a local HTML file and captures the whole page.
func (r *rodRenderer) RenderPNG(ctx context.Context, filePath string, width int) ([]byte, error) {
	if width <= 0 {
		return nil, fmt.Errorf("%w: invalid width %d", ErrPreview, width)
	}

	page, err := r.openPage(ctx, filePath)
	if err != nil {
		return nil, err
	}
	defer page.Close()

	if err := page.SetViewport(viewport(width)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPreview, err)
	}

	img, err := page.Screenshot(true, &proto.PageCaptureScreenshot{
		Format: proto.PageCaptureScreenshotFormatPng,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPreview, err)
	}
	if len(img) == 0 {
		return nil, fmt.Errorf("%w: empty screenshot", ErrPreview)
	}
	return img, nil
}

func pdfOptions() *proto.PagePrintToPDF {
	return &proto.PagePrintToPDF{
		PaperWidth:      floatPtr(paperWidthInches),
		PaperHeight:     floatPtr(paperHeightInches),
		MarginTop:       floatPtr(marginInches),
		MarginBottom:    floatPtr(marginInches),
		MarginLeft:      floatPtr(marginInches),
		MarginRight:     floatPtr(marginInches),
		PrintBackground: true,
	}
}

func viewport(width int) *proto.EmulationSetDeviceMetricsOverride {
	return &proto.EmulationSetDeviceMetricsOverride{
		Width:             width,
		Height:            previewHeight,
		DeviceScaleFactor: 1,
	}
}

// floatPtr returns a pointer to a float64 value.
func floatPtr(v float64) *float64 {
	return &v
}
