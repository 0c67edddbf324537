package consolemail

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"
	"time"
)

// mockPreviewRenderer implements previewRenderer for testing.
type mockPreviewRenderer struct {
	result      []byte
	err         error
	calledWith  string
	fileContent string
	width       int
	closed      bool
}

func (m *mockPreviewRenderer) record(filePath string) {
	m.calledWith = filePath
	if data, err := os.ReadFile(filePath); err == nil { // #nosec G304 -- test temp file
		m.fileContent = string(data)
	}
}

func (m *mockPreviewRenderer) RenderPDF(ctx context.Context, filePath string) ([]byte, error) {
	m.record(filePath)
	return m.result, m.err
}

func (m *mockPreviewRenderer) RenderPNG(ctx context.Context, filePath string, width int) ([]byte, error) {
	m.record(filePath)
	m.width = width
	return m.result, m.err
}

func (m *mockPreviewRenderer) Close() error {
	m.closed = true
	return nil
}

func newMockPreviewer(mock *mockPreviewRenderer, opts ...PreviewOption) *Previewer {
	p := NewPreviewer(opts...)
	p.renderer = mock
	return p
}

func TestNewPreviewer_Options(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		opts        []PreviewOption
		wantTimeout time.Duration
		wantWidth   int
	}{
		{name: "defaults", wantTimeout: DefaultPreviewTimeout, wantWidth: DefaultPreviewWidth},
		{name: "custom", opts: []PreviewOption{WithPreviewTimeout(5 * time.Second), WithPreviewWidth(1024)}, wantTimeout: 5 * time.Second, wantWidth: 1024},
		{name: "non-positive ignored", opts: []PreviewOption{WithPreviewTimeout(0), WithPreviewWidth(-1)}, wantTimeout: DefaultPreviewTimeout, wantWidth: DefaultPreviewWidth},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p := NewPreviewer(tt.opts...)
			if p.timeout != tt.wantTimeout {
				t.Errorf("timeout = %v, want %v", p.timeout, tt.wantTimeout)
			}
			if p.width != tt.wantWidth {
				t.Errorf("width = %d, want %d", p.width, tt.wantWidth)
			}
			rr, ok := p.renderer.(*rodRenderer)
			if !ok {
				t.Fatalf("renderer = %T, want *rodRenderer", p.renderer)
			}
			if rr.timeout != tt.wantTimeout {
				t.Errorf("renderer timeout = %v, want %v", rr.timeout, tt.wantTimeout)
			}
		})
	}
}

func TestPreviewer_PDF(t *testing.T) {
	t.Parallel()

	mock := &mockPreviewRenderer{result: []byte("%PDF-1.4 fake")}
	p := newMockPreviewer(mock)

	got, err := p.PDF(context.Background(), "<html><body>Build failed</body></html>")
	if err != nil {
		t.Fatalf("PDF() error = %v", err)
	}
	if string(got) != "%PDF-1.4 fake" {
		t.Errorf("PDF() = %q", got)
	}
	if !strings.Contains(mock.calledWith, "consolemail-") || !strings.HasSuffix(mock.calledWith, ".html") {
		t.Errorf("renderer called with %q, want consolemail-*.html temp file", mock.calledWith)
	}
	if mock.fileContent != "<html><body>Build failed</body></html>" {
		t.Errorf("temp file content = %q", mock.fileContent)
	}
	if _, err := os.Stat(mock.calledWith); !os.IsNotExist(err) {
		t.Error("temp file not cleaned up")
	}
}

func TestPreviewer_Screenshot(t *testing.T) {
	t.Parallel()

	mock := &mockPreviewRenderer{result: []byte("\x89PNG")}
	p := newMockPreviewer(mock, WithPreviewWidth(800))

	got, err := p.Screenshot(context.Background(), "<p>hi</p>")
	if err != nil {
		t.Fatalf("Screenshot() error = %v", err)
	}
	if string(got) != "\x89PNG" {
		t.Errorf("Screenshot() = %q", got)
	}
	if mock.width != 800 {
		t.Errorf("width = %d, want 800", mock.width)
	}
}

func TestPreviewer_RendererError(t *testing.T) {
	t.Parallel()

	mock := &mockPreviewRenderer{err: ErrPageLoad}
	p := newMockPreviewer(mock)

	if _, err := p.PDF(context.Background(), "<p></p>"); !errors.Is(err, ErrPageLoad) {
		t.Errorf("PDF() error = %v, want ErrPageLoad", err)
	}
	if _, err := p.Screenshot(context.Background(), "<p></p>"); !errors.Is(err, ErrPageLoad) {
		t.Errorf("Screenshot() error = %v, want ErrPageLoad", err)
	}
}

func TestPreviewer_Close(t *testing.T) {
	t.Parallel()

	mock := &mockPreviewRenderer{}
	p := newMockPreviewer(mock)

	if err := p.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if !mock.closed {
		t.Error("renderer not closed")
	}
}

func TestRodRenderer_CloseWithoutBrowser(t *testing.T) {
	t.Parallel()

	r := newRodRenderer(time.Second)
	if err := r.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}

func TestRodRenderer_CancelledContext(t *testing.T) {
	t.Parallel()

	r := newRodRenderer(time.Second)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// Fails before launching a browser.
	if _, err := r.RenderPDF(ctx, "/tmp/none.html"); !errors.Is(err, context.Canceled) {
		t.Errorf("RenderPDF() error = %v, want context.Canceled", err)
	}
	if _, err := r.RenderPNG(ctx, "/tmp/none.html", 640); !errors.Is(err, context.Canceled) {
		t.Errorf("RenderPNG() error = %v, want context.Canceled", err)
	}
	if _, err := r.RenderPNG(context.Background(), "/tmp/none.html", 0); !errors.Is(err, ErrPreview) {
		t.Errorf("RenderPNG(width=0) error = %v, want ErrPreview", err)
	}
}

func TestPDFOptions(t *testing.T) {
	t.Parallel()

	opts := pdfOptions()
	if !opts.PrintBackground {
		t.Error("PrintBackground = false, want true")
	}
	if *opts.PaperWidth != paperWidthInches || *opts.PaperHeight != paperHeightInches {
		t.Errorf("paper = %vx%v", *opts.PaperWidth, *opts.PaperHeight)
	}

	vp := viewport(640)
	if vp.Width != 640 || vp.Height != previewHeight || vp.DeviceScaleFactor != 1 {
		t.Errorf("viewport = %+v", vp)
	}
}
