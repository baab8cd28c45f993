package models

// Manifest is the declarative list of repositories to process.
type Manifest struct {
	Owner        string   `yaml:"owner"`
	Repositories []string `yaml:"repositories"`
}

// Config is the resolved configuration of a single run.
type Config struct {
	Owner        string
	Repositories []string
	Token        string
}

func NewConfig(manifest *Manifest, token string) *Config {
	repos := make([]string, len(manifest.Repositories))
	copy(repos, manifest.Repositories)
	return &Config{
		Owner:        manifest.Owner,
		Repositories: repos,
		Token:        token,
	}
}
