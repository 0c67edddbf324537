package pipeline

import (
	"context"
	"regexp"
	"strings"
)

var (
	crlfOrCR           = regexp.MustCompile(`\r\n?`)
	trailingSpace      = regexp.MustCompile(`[ \t]+\n`)
	multipleBlankLines = regexp.MustCompile(`\n{3,}`)
)

// CommitMessagePreprocessor defines the contract for commit message cleanup.
type CommitMessagePreprocessor interface {
	PreprocessCommitMessage(ctx context.Context, content string) string
}

// GitMessagePreprocessor normalizes git commit messages before rendering.
type GitMessagePreprocessor struct{}

// PreprocessCommitMessage normalizes line endings, strips trailing
// whitespace and compresses runs of blank lines. The result has no leading
// or trailing blank lines.
func (p *GitMessagePreprocessor) PreprocessCommitMessage(ctx context.Context, content string) string {
	if ctx.Err() != nil {
		return content
	}

	content = crlfOrCR.ReplaceAllString(content, "\n")
	content = trailingSpace.ReplaceAllString(content+"\n", "\n")
	content = multipleBlankLines.ReplaceAllString(content, "\n\n")
	return strings.Trim(content, "\n")
}
