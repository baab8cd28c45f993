package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// unsetEnv clears key for the duration of the test and restores it afterwards.
func unsetEnv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	require.NoError(t, os.Unsetenv(key))
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	unsetEnv(t, TokenVar)
	unsetEnv(t, GlobalEnvPathVar)

	global := writeFile(t, dir, "global.env", "GITHUB_TOKEN=from-global\n")
	project := writeFile(t, dir, ".env", "GLOBAL_ENV_PATH="+global+"\n")
	manifest := writeFile(t, dir, "Repo_List.yml", "owner: acme\nrepositories:\n  - alpha\n  - beta\n")

	config, err := NewLoader(viper.New(), project, manifest).Load()
	require.NoError(t, err)

	assert.Equal(t, "acme", config.Owner)
	assert.Equal(t, []string{"alpha", "beta"}, config.Repositories)
	assert.Equal(t, "from-global", config.Token)
}

func TestLoadEnvMissingProjectFileUsesEnvironment(t *testing.T) {
	dir := t.TempDir()
	unsetEnv(t, TokenVar)
	global := writeFile(t, dir, "global.env", "GITHUB_TOKEN=abc\n")
	t.Setenv(GlobalEnvPathVar, global)

	loader := NewLoader(viper.New(), filepath.Join(dir, "missing.env"), "")
	require.NoError(t, loader.LoadEnv())

	token, err := loader.Token()
	require.NoError(t, err)
	assert.Equal(t, "abc", token)
}

func TestLoadEnvGlobalPath(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name  string
		value string
		unset bool
	}{
		{name: "unset", unset: true},
		{name: "empty", value: ""},
		{name: "missing file", value: filepath.Join(dir, "nope.env")},
		{name: "directory", value: dir},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.unset {
				unsetEnv(t, GlobalEnvPathVar)
			} else {
				t.Setenv(GlobalEnvPathVar, tt.value)
			}

			err := NewLoader(viper.New(), filepath.Join(dir, "missing.env"), "").LoadEnv()

			var configErr *ConfigurationError
			require.ErrorAs(t, err, &configErr)
		})
	}
}

func TestLoadMissingToken(t *testing.T) {
	dir := t.TempDir()
	unsetEnv(t, TokenVar)
	global := writeFile(t, dir, "global.env", "OTHER=1\n")
	t.Setenv(GlobalEnvPathVar, global)
	manifest := writeFile(t, dir, "Repo_List.yml", "owner: acme\nrepositories: [alpha]\n")

	_, err := NewLoader(viper.New(), filepath.Join(dir, "missing.env"), manifest).Load()

	var credErr *MissingCredentialError
	require.ErrorAs(t, err, &credErr)
	assert.Equal(t, TokenVar, credErr.Variable)
}

func TestLoadIgnoresOtherTokenVariables(t *testing.T) {
	dir := t.TempDir()
	unsetEnv(t, TokenVar)
	unsetEnv(t, "TOKEN")
	t.Setenv("GH_TOKEN", "from-gh-token")
	global := writeFile(t, dir, "global.env", "TOKEN=from-global-file\n")
	project := writeFile(t, dir, ".env", GlobalEnvPathVar+"="+global+"\n")
	unsetEnv(t, GlobalEnvPathVar)
	manifest := writeFile(t, dir, "Repo_List.yml", "owner: acme\nrepositories: [alpha]\n")

	v := viper.New()
	v.AutomaticEnv()
	_, err := NewLoader(v, project, manifest).Load()

	var credErr *MissingCredentialError
	require.ErrorAs(t, err, &credErr)
	assert.Equal(t, "from-global-file", os.Getenv("TOKEN"))
}

func TestTokenPrefersExplicitValue(t *testing.T) {
	t.Setenv(TokenVar, "from-env")
	v := viper.New()
	loader := NewLoader(v, "", "")
	v.Set(TokenKey, "from-flag")

	token, err := loader.Token()
	require.NoError(t, err)
	assert.Equal(t, "from-flag", token)
}

func TestLoadManifest(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name       string
		content    string
		missingKey string
		parseError bool
		owner      string
		repos      []string
	}{
		{
			name:    "valid",
			content: "owner: acme\nrepositories:\n  - alpha\n",
			owner:   "acme",
			repos:   []string{"alpha"},
		},
		{
			name:    "empty repository list",
			content: "owner: acme\nrepositories: []\n",
			owner:   "acme",
			repos:   []string{},
		},
		{
			name:       "missing owner",
			content:    "repositories: [alpha]\n",
			missingKey: "owner",
		},
		{
			name:       "missing repositories",
			content:    "owner: acme\n",
			missingKey: "repositories",
		},
		{
			name:       "empty file",
			content:    "",
			missingKey: "owner",
		},
		{
			name:       "not a mapping",
			content:    "- alpha\n- beta\n",
			parseError: true,
		},
		{
			name:       "repositories not a list",
			content:    "owner: acme\nrepositories:\n  name: alpha\n",
			parseError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, dir, "manifest.yml", tt.content)
			manifest, err := NewLoader(viper.New(), "", path).LoadManifest()

			if tt.missingKey != "" || tt.parseError {
				var manifestErr *ManifestError
				require.ErrorAs(t, err, &manifestErr)
				assert.Equal(t, tt.missingKey, manifestErr.Key)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.owner, manifest.Owner)
			assert.ElementsMatch(t, tt.repos, manifest.Repositories)
		})
	}
}

func TestLoadManifestMissingFile(t *testing.T) {
	_, err := NewLoader(viper.New(), "", filepath.Join(t.TempDir(), "Repo_List.yml")).LoadManifest()

	var manifestErr *ManifestError
	require.ErrorAs(t, err, &manifestErr)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
