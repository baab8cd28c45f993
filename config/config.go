// Package config resolves the settings files, the access token and the
// repository manifest of a run.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/boostsecurityio/dependafetch/models"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	GlobalEnvPathVar = "GLOBAL_ENV_PATH"
	TokenVar         = "GITHUB_TOKEN"

	// TokenKey is the viper key holding the access token. It matches
	// TokenVar under automatic env lookup, so no other variable can supply it.
	TokenKey = "github_token"

	DefaultProjectEnvFile = ".env"
	DefaultManifestFile   = "Repo_List.yml"
)

var errGlobalEnvPath = errors.New("you need to set " + GlobalEnvPathVar + " to an existing file in your project-level .env")

type Loader struct {
	v            *viper.Viper
	ProjectEnv   string
	ManifestPath string
}

// NewLoader binds the token key of v to the token environment variable.
// Values set on v before loading, such as a --token flag, take precedence.
func NewLoader(v *viper.Viper, projectEnv string, manifestPath string) *Loader {
	if projectEnv == "" {
		projectEnv = DefaultProjectEnvFile
	}
	if manifestPath == "" {
		manifestPath = DefaultManifestFile
	}
	_ = v.BindEnv(TokenKey, TokenVar)

	return &Loader{
		v:            v,
		ProjectEnv:   projectEnv,
		ManifestPath: manifestPath,
	}
}

// LoadEnv loads the project settings file, then the global settings file it
// points to. Variables already present in the environment are never overridden.
func (l *Loader) LoadEnv() error {
	log.Debug().Str("path", l.ProjectEnv).Msg("Loading project environment variables")
	if _, err := os.Stat(l.ProjectEnv); err == nil {
		if err := godotenv.Load(l.ProjectEnv); err != nil {
			return &ConfigurationError{Path: l.ProjectEnv, Err: err}
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return &ConfigurationError{Path: l.ProjectEnv, Err: err}
	} else {
		log.Debug().Str("path", l.ProjectEnv).Msg("Project environment file not found, using process environment")
	}

	globalEnvPath := os.Getenv(GlobalEnvPathVar)
	if globalEnvPath == "" {
		return &ConfigurationError{Err: errGlobalEnvPath}
	}

	info, err := os.Stat(globalEnvPath)
	if err != nil {
		return &ConfigurationError{Path: globalEnvPath, Err: errGlobalEnvPath}
	}
	if info.IsDir() {
		return &ConfigurationError{Path: globalEnvPath, Err: fmt.Errorf("%s is a directory", globalEnvPath)}
	}

	log.Debug().Str("path", globalEnvPath).Msg("Loading global environment variables")
	if err := godotenv.Load(globalEnvPath); err != nil {
		return &ConfigurationError{Path: globalEnvPath, Err: err}
	}

	return nil
}

func (l *Loader) Token() (string, error) {
	token := l.v.GetString(TokenKey)
	if token == "" {
		return "", &MissingCredentialError{Variable: TokenVar}
	}
	return token, nil
}

func (l *Loader) LoadManifest() (*models.Manifest, error) {
	data, err := os.ReadFile(l.ManifestPath)
	if err != nil {
		return nil, &ManifestError{Path: l.ManifestPath, Err: err}
	}

	var keys map[string]yaml.Node
	if err := yaml.Unmarshal(data, &keys); err != nil {
		return nil, &ManifestError{Path: l.ManifestPath, Err: err}
	}
	for _, key := range []string{"owner", "repositories"} {
		if _, ok := keys[key]; !ok {
			return nil, &ManifestError{Path: l.ManifestPath, Key: key}
		}
	}

	var manifest models.Manifest
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		return nil, &ManifestError{Path: l.ManifestPath, Err: err}
	}

	return &manifest, nil
}

// Load resolves the full run configuration. It stops at the first error so
// that nothing is fetched with a partial configuration.
func (l *Loader) Load() (*models.Config, error) {
	if err := l.LoadEnv(); err != nil {
		return nil, err
	}

	token, err := l.Token()
	if err != nil {
		return nil, err
	}

	log.Debug().Str("path", l.ManifestPath).Msg("Loading repository list")
	manifest, err := l.LoadManifest()
	if err != nil {
		return nil, err
	}

	return models.NewConfig(manifest, token), nil
}
