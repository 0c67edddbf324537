package consolemail

import (
	"fmt"
	"strings"
)

// ButtonVariant is the style of a call-to-action button in an email.
// The set is closed: every variant has exactly one color.
type ButtonVariant int

// Button variants, in declaration order.
const (
	ButtonPrimary ButtonVariant = iota
	ButtonSuccess
	ButtonDanger
	ButtonWarning
	ButtonDark
)

// buttonVariantCount is the number of declared variants.
const buttonVariantCount = 5

var buttonVariantNames = [buttonVariantCount]string{
	ButtonPrimary: "PRIMARY",
	ButtonSuccess: "SUCCESS",
	ButtonDanger:  "DANGER",
	ButtonWarning: "WARNING",
	ButtonDark:    "DARK",
}

var buttonVariantColors = [buttonVariantCount]string{
	ButtonPrimary: "#008aff",
	ButtonSuccess: "#5cc9a7",
	ButtonDanger:  "#f25767",
	ButtonWarning: "#ffbe3d",
	ButtonDark:    "#171347",
}

// Color returns the hex background color of the variant.
// Returns "" for values outside the declared set.
func (v ButtonVariant) Color() string {
	if !v.valid() {
		return ""
	}
	return buttonVariantColors[v]
}

// String returns the upper-case variant tag, e.g. "PRIMARY".
func (v ButtonVariant) String() string {
	if !v.valid() {
		return fmt.Sprintf("ButtonVariant(%d)", int(v))
	}
	return buttonVariantNames[v]
}

func (v ButtonVariant) valid() bool {
	return v >= 0 && int(v) < buttonVariantCount
}

// ButtonVariants returns all variants in declaration order.
// The returned slice is a copy.
func ButtonVariants() []ButtonVariant {
	variants := make([]ButtonVariant, buttonVariantCount)
	for i := range variants {
		variants[i] = ButtonVariant(i)
	}
	return variants
}

// ParseButtonVariant looks up a variant by tag, ignoring case.
// Returns ErrUnknownButtonVariant if name matches no variant.
func ParseButtonVariant(name string) (ButtonVariant, error) {
	upper := strings.ToUpper(strings.TrimSpace(name))
	for i, n := range buttonVariantNames {
		if n == upper {
			return ButtonVariant(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownButtonVariant, name)
}
