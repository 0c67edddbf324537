// Package pipeline turns commit descriptions into email-safe HTML and
// finishes rendered email documents.
//
// Stages:
//   - commit message normalization (line endings, trailing whitespace, blank lines)
//   - Markdown to HTML fragment via Goldmark, with inline-styled code highlighting
//   - relative link resolution against the repository URL
//   - CSS injection into the document <head>
//
// Template execution and delivery live in the root consolemail package.
package pipeline
