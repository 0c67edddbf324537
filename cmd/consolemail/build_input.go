package main

import (
	"errors"
	"fmt"

	consolemail "github.com/xtages/go-consolemail"
	"github.com/xtages/go-consolemail/internal/yamlutil"
)

// ErrReadBuildFile is returned when a --build file cannot be read or decoded.
var ErrReadBuildFile = errors.New("failed to read build file")

// buildInput is the data one build status email is rendered from.
type buildInput struct {
	Project           consolemail.Project `yaml:"project"`
	Build             consolemail.Build   `yaml:"build"`
	CommitDescription string              `yaml:"commitDescription"`
}

// sampleBuildInput returns a successful CI build with a multi-paragraph
// commit message, for eyeballing templates.
func sampleBuildInput() *buildInput {
	return &buildInput{
		Project: consolemail.Project{
			ID:            1,
			Name:          "<TestProject>",
			Organization:  "Acme",
			GitHubRepoURL: "https://github.com/acme/textproject",
		},
		Build: consolemail.Build{
			ID:             70,
			BuildNumber:    13,
			Type:           consolemail.BuildTypeCI,
			Env:            "dev",
			Status:         consolemail.BuildSucceeded,
			InitiatorName:  "Rick James",
			InitiatorEmail: "rjames@acme.net",
			CommitHash:     "abcdef",
			CommitURL:      "https://github.com/acme/testproject/commit/abcdef",
		},
		CommitDescription: "fix: correct minor typos in code\n\n" +
			"see the issue for details\n\n" +
			"on typos fixed.\n\n" +
			"Reviewed-by: Z\n" +
			"Refs #133 ",
	}
}

// loadBuildInput reads the --build file, or returns the sample build.
// A --commit-desc flag overrides the description either way.
func loadBuildInput(f inputFlags) (*buildInput, error) {
	in := sampleBuildInput()
	if f.buildFile != "" {
		in = &buildInput{}
		if err := yamlutil.DecodeFileStrict(f.buildFile, in); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrReadBuildFile, f.buildFile, err)
		}
	}
	if f.commitDesc != "" {
		in.CommitDescription = f.commitDesc
	}
	return in, nil
}
