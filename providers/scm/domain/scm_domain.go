package scm_domain

import "strings"

// ScmBaseDomain is the host (and optional path) of a GitHub API, as given on
// the command line.
type ScmBaseDomain string

const DefaultGitHubDomain string = "github.com"
const DefaultGitHubAPIDomain string = "api.github.com"

var schemePrefixes = []string{"https://", "http://"}

func (d *ScmBaseDomain) Set(value string) error {
	for _, prefix := range schemePrefixes {
		value = strings.TrimPrefix(value, prefix)
	}
	value = strings.TrimRight(value, "/")

	*d = ScmBaseDomain(value)
	return nil
}

func (d *ScmBaseDomain) String() string {
	if d == nil {
		return ""
	}
	return string(*d)
}

func (d *ScmBaseDomain) Type() string {
	return "string"
}

func (d *ScmBaseDomain) IsDefault() bool {
	switch d.String() {
	case "", DefaultGitHubDomain, DefaultGitHubAPIDomain:
		return true
	}
	return false
}

// APIBaseURL returns the https URL of the REST API, or "" for public GitHub.
func (d *ScmBaseDomain) APIBaseURL() string {
	if d.IsDefault() {
		return ""
	}
	return "https://" + d.String() + "/"
}
