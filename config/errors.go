package config

import "fmt"

// ConfigurationError reports a missing or unreadable settings file.
type ConfigurationError struct {
	Path string
	Err  error
}

func (e *ConfigurationError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("configuration error: %v", e.Err)
	}
	return fmt.Sprintf("configuration error in %s: %v", e.Path, e.Err)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

type MissingCredentialError struct {
	Variable string
}

func (e *MissingCredentialError) Error() string {
	return fmt.Sprintf("%s environment variable is missing", e.Variable)
}

// ManifestError reports a manifest that can't be read, can't be parsed or
// lacks a required key.
type ManifestError struct {
	Path string
	Key  string
	Err  error
}

func (e *ManifestError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("manifest %s is missing required key %q", e.Path, e.Key)
	}
	return fmt.Sprintf("failed to load manifest %s: %v", e.Path, e.Err)
}

func (e *ManifestError) Unwrap() error {
	return e.Err
}
