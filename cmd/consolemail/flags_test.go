package main

import (
	"bytes"
	"errors"
	"reflect"
	"testing"

	flag "github.com/spf13/pflag"
)

func TestParseRenderFlags(t *testing.T) {
	t.Parallel()

	var stderr bytes.Buffer
	f, rest, err := parseRenderFlags([]string{
		"-o", "/tmp/out", "-n", "failed",
		"-b", "build.yaml", "--commit-desc", "fix: typo",
		"--style", "brand", "--template", "custom", "--asset-path", "/srv/assets",
		"--no-style", "--console-url", "https://console.example.com",
		"-c", "work", "-q", "-v", "--no-color",
		"extra",
	}, &stderr)
	if err != nil {
		t.Fatalf("parseRenderFlags() error = %v", err)
	}

	want := &renderFlags{
		common: commonFlags{config: "work", quiet: true, verbose: true, noColor: true},
		input:  inputFlags{buildFile: "build.yaml", commitDesc: "fix: typo"},
		assets: assetFlags{
			style: "brand", templateSet: "custom", assetPath: "/srv/assets",
			noStyle: true, consoleURL: "https://console.example.com",
		},
		output: "/tmp/out",
		name:   "failed",
	}
	if !reflect.DeepEqual(f, want) {
		t.Errorf("parseRenderFlags() = %+v, want %+v", f, want)
	}
	if !reflect.DeepEqual(rest, []string{"extra"}) {
		t.Errorf("positional args = %v", rest)
	}
}

func TestParseRenderFlags_Defaults(t *testing.T) {
	t.Parallel()

	f, _, err := parseRenderFlags(nil, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("parseRenderFlags() error = %v", err)
	}
	if f.name != defaultOutputName || f.output != "" {
		t.Errorf("name = %q, output = %q", f.name, f.output)
	}
}

func TestParsePreviewFlags(t *testing.T) {
	t.Parallel()

	f, _, err := parsePreviewFlags([]string{"--png", "--width", "800", "-t", "45s", "-n", "shot"}, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("parsePreviewFlags() error = %v", err)
	}
	if f.pdf || !f.png || f.width != 800 || f.timeout != "45s" || f.render.name != "shot" {
		t.Errorf("parsePreviewFlags() = %+v", f)
	}
}

func TestParseSendFlags(t *testing.T) {
	t.Parallel()

	f, _, err := parseSendFlags([]string{
		"--to", "rick@acme.net,morty@acme.net",
		"--to", "summer@acme.net",
		"--cc", "beth@acme.net",
		"--bcc", "audit@acme.net",
		"--metrics-file", "/tmp/metrics.prom",
	}, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("parseSendFlags() error = %v", err)
	}

	wantTo := []string{"rick@acme.net", "morty@acme.net", "summer@acme.net"}
	if !reflect.DeepEqual(f.to, wantTo) {
		t.Errorf("to = %v, want %v", f.to, wantTo)
	}
	if len(f.cc) != 1 || len(f.bcc) != 1 || f.metricsFile != "/tmp/metrics.prom" {
		t.Errorf("parseSendFlags() = %+v", f)
	}
}

func TestParseFlags_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		parse   func([]string) error
		args    []string
		wantErr error
	}{
		{
			name:  "unknown render flag",
			parse: func(a []string) error { _, _, err := parseRenderFlags(a, &bytes.Buffer{}); return err },
			args:  []string{"--pdf"},
		},
		{
			name:  "preview width not a number",
			parse: func(a []string) error { _, _, err := parsePreviewFlags(a, &bytes.Buffer{}); return err },
			args:  []string{"--width", "wide"},
		},
		{
			name:  "send missing value",
			parse: func(a []string) error { _, _, err := parseSendFlags(a, &bytes.Buffer{}); return err },
			args:  []string{"--to"},
		},
		{
			name:    "help",
			parse:   func(a []string) error { _, _, err := parseSendFlags(a, &bytes.Buffer{}); return err },
			args:    []string{"--help"},
			wantErr: flag.ErrHelp,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.parse(tt.args)
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
