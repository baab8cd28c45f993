package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/boostsecurityio/dependafetch/config"
	"github.com/boostsecurityio/dependafetch/formatters/json"
	"github.com/boostsecurityio/dependafetch/formatters/pretty"
	"github.com/boostsecurityio/dependafetch/formatters/sarif"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unsetEnv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	require.NoError(t, os.Unsetenv(key))
}

func TestFetchAlertsMissingToken(t *testing.T) {
	dir := t.TempDir()
	unsetEnv(t, config.TokenVar)
	t.Setenv("TOKEN", "someone-elses-token")

	global := filepath.Join(dir, "global.env")
	require.NoError(t, os.WriteFile(global, []byte("UNRELATED=1\n"), 0o600))
	t.Setenv(config.GlobalEnvPathVar, global)

	manifest := filepath.Join(dir, "Repo_List.yml")
	require.NoError(t, os.WriteFile(manifest, []byte("owner: acme\nrepositories: [alpha]\n"), 0o600))
	output := filepath.Join(dir, "report.json")

	rootCmd.SetArgs([]string{"fetch_alerts", "--config", filepath.Join(dir, "missing.env"), "--manifest", manifest, "--output", output})
	err := rootCmd.Execute()

	var credErr *config.MissingCredentialError
	require.ErrorAs(t, err, &credErr)

	_, statErr := os.Stat(output)
	assert.True(t, os.IsNotExist(statErr), "no report is written when configuration fails")
}

func TestListReposMissingGlobalEnv(t *testing.T) {
	dir := t.TempDir()
	unsetEnv(t, config.GlobalEnvPathVar)

	rootCmd.SetArgs([]string{"list_repos", "--config", filepath.Join(dir, "missing.env"), "--manifest", filepath.Join(dir, "Repo_List.yml")})
	err := rootCmd.Execute()

	var configErr *config.ConfigurationError
	require.ErrorAs(t, err, &configErr)
}

func TestVersion(t *testing.T) {
	Version, Commit, Date = "1.2.3", "abc", "today"

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	t.Cleanup(func() { rootCmd.SetOut(nil) })
	rootCmd.SetArgs([]string{"version"})
	require.NoError(t, rootCmd.Execute())

	assert.Equal(t, "Version: 1.2.3\nCommit: abc\nBuilt At: today\n", buf.String())
}

func TestGetFormatter(t *testing.T) {
	t.Cleanup(func() { Format = "pretty" })

	tests := []struct {
		format   string
		expected interface{}
	}{
		{format: "pretty", expected: &pretty.Format{}},
		{format: "json", expected: &json.Format{}},
		{format: "sarif", expected: &sarif.Format{}},
		{format: "unknown", expected: &pretty.Format{}},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			Format = tt.format
			assert.IsType(t, tt.expected, GetFormatter())
		})
	}
}
