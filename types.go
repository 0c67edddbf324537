package consolemail

import (
	"fmt"
	"strings"
)

// BuildType distinguishes continuous integration from deployment builds.
type BuildType string

// Build type constants.
const (
	BuildTypeCI BuildType = "CI"
	BuildTypeCD BuildType = "CD"
)

// BuildStatus is the final state of a build.
// Only BuildSucceeded counts as success; every other value is a failure
// as far as notifications are concerned.
type BuildStatus string

// Build status constants.
const (
	BuildSucceeded  BuildStatus = "SUCCEEDED"
	BuildFailed     BuildStatus = "FAILED"
	BuildNotRun     BuildStatus = "NOT_PROVISIONED"
	BuildInProgress BuildStatus = "RUNNING"
	BuildUnknown    BuildStatus = "UNKNOWN"
)

// StagingEnv is the only environment whose failed deployments are notified.
const StagingEnv = "staging"

// Project identifies the project a build belongs to.
type Project struct {
	ID            int64  `yaml:"id"`
	Name          string `yaml:"name"`
	Organization  string `yaml:"organization"`
	GitHubRepoURL string `yaml:"ghRepoUrl"`
}

// Validate checks the fields the email templates depend on.
func (p *Project) Validate() error {
	if p == nil {
		return fmt.Errorf("%w: nil project", ErrInvalidProject)
	}
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidProject)
	}
	// Dot segments would be cleaned out of the project URL.
	if p.Name == "." || p.Name == ".." {
		return fmt.Errorf("%w: name %q", ErrInvalidProject, p.Name)
	}
	return nil
}

// Build describes one run of a project's pipeline.
type Build struct {
	ID             int64       `yaml:"id"`
	BuildNumber    int64       `yaml:"buildNumber"`
	Type           BuildType   `yaml:"type"`
	Env            string      `yaml:"env"`
	Status         BuildStatus `yaml:"status"`
	InitiatorName  string      `yaml:"initiatorName"`
	InitiatorEmail string      `yaml:"initiatorEmail"`
	CommitHash     string      `yaml:"commitHash"`
	CommitURL      string      `yaml:"commitUrl"`
}

// Succeeded reports whether the build finished successfully.
func (b *Build) Succeeded() bool {
	return b.Status == BuildSucceeded
}

// Validate checks the fields the email templates depend on.
func (b *Build) Validate() error {
	if b == nil {
		return fmt.Errorf("%w: nil build", ErrInvalidBuild)
	}
	switch b.Type {
	case BuildTypeCI, BuildTypeCD:
	default:
		return fmt.Errorf("%w: unknown type %q", ErrInvalidBuild, b.Type)
	}
	if strings.TrimSpace(b.CommitHash) == "" {
		return fmt.Errorf("%w: empty commit hash", ErrInvalidBuild)
	}
	return nil
}

// notifiable reports whether a status-changed email may be sent for the build:
// any CI build, or a failed deployment to staging.
func (b *Build) notifiable() bool {
	if b.Type == BuildTypeCI {
		return true
	}
	return b.Env == StagingEnv && b.Status == BuildFailed
}

// EmailContents is a rendered email: subject plus HTML and plain-text bodies.
type EmailContents struct {
	Subject string
	HTML    string
	Plain   string
}
