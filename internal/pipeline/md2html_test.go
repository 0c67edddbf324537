package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestGoldmarkConverter_ToHTML(t *testing.T) {
	t.Parallel()

	conv := NewGoldmarkConverter()

	tests := []struct {
		name         string
		input        string
		wantContains []string
		wantAbsent   []string
	}{
		{
			name:         "hard wraps",
			input:        "fix: correct typos\nsee the issue",
			wantContains: []string{"fix: correct typos<br />"},
		},
		{
			name:         "fenced code is highlighted inline",
			input:        "```go\nfunc main() {}\n```",
			wantContains: []string{"<pre", `style="`},
		},
		{
			name:       "raw html is dropped",
			input:      "<script>alert(1)</script>",
			wantAbsent: []string{"<script>"},
		},
		{
			name:         "gfm autolink",
			input:        "see https://example.com",
			wantContains: []string{`<a href="https://example.com">`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := conv.ToHTML(context.Background(), tt.input)
			if err != nil {
				t.Fatalf("ToHTML() error = %v", err)
			}
			for _, want := range tt.wantContains {
				if !strings.Contains(got, want) {
					t.Errorf("ToHTML() = %q, want to contain %q", got, want)
				}
			}
			for _, absent := range tt.wantAbsent {
				if strings.Contains(got, absent) {
					t.Errorf("ToHTML() = %q, should not contain %q", got, absent)
				}
			}
			if strings.Contains(got, "<html") {
				t.Error("ToHTML() returned a full document, want fragment")
			}
		})
	}
}

func TestGoldmarkConverter_CanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewGoldmarkConverter().ToHTML(ctx, "text")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("ToHTML() error = %v, want context.Canceled", err)
	}
}
