package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	consolemail "github.com/xtages/go-consolemail"
)

// runVariants lists the button variants with a color swatch, then the CDN assets.
// With a variant name, prints only that variant's color.
func runVariants(args []string, env *Environment) error {
	switch len(args) {
	case 0:
	case 1:
		v, err := consolemail.ParseButtonVariant(args[0])
		if err != nil {
			return fmt.Errorf("%w: %w", ErrUsage, err)
		}
		fmt.Fprintln(env.Stdout, v.Color())
		return nil
	default:
		return fmt.Errorf("%w: variants takes at most one variant name", ErrUsage)
	}

	// Renderer bound to Stdout so swatches degrade to plain text when piped.
	r := lipgloss.NewRenderer(env.Stdout)
	header := r.NewStyle().Bold(true)
	name := r.NewStyle().Width(12)

	fmt.Fprintln(env.Stdout, header.Render("Button variants"))
	for _, v := range consolemail.ButtonVariants() {
		swatch := r.NewStyle().
			Background(lipgloss.Color(v.Color())).
			Foreground(lipgloss.Color("#ffffff")).
			Padding(0, 1).
			Render(" ")
		fmt.Fprintf(env.Stdout, "  %s %s %s\n", swatch, name.Render(v.String()), v.Color())
	}

	fmt.Fprintln(env.Stdout)
	fmt.Fprintln(env.Stdout, header.Render("CDN assets"))
	for _, a := range consolemail.CDNAssets() {
		fmt.Fprintf(env.Stdout, "  %s %s\n", name.Render(a.Name), a.URL)
	}
	return nil
}
