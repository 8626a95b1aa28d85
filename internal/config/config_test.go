package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cybertier/npm-dependency-guardian/internal/config"
)

func boolPtr(b bool) *bool    { return &b }
func strPtr(s string) *string { return &s }

func TestLoadDefaultsWhenNoConfigFile(t *testing.T) {
	root := t.TempDir()
	resolved, err := config.Load(root, config.Overrides{})
	require.NoError(t, err)
	assert.Equal(t, config.DefaultPolicyPath, resolved.PolicyPath)
	assert.False(t, resolved.FineGrained)
	assert.False(t, resolved.IncludeNonBuiltins)
}

func TestLoadJSONConfigFile(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "policy.config.json"), []byte(`{
		"policyPath": "/tmp/custom.json",
		"fineGrained": true,
		"ignore": ["vendor/**"]
	}`), 0o644))

	resolved, err := config.Load(root, config.Overrides{})
	require.NoError(t, err)
	assert.Equal(t, "/tmp/custom.json", resolved.PolicyPath)
	assert.True(t, resolved.FineGrained)
	assert.Equal(t, []string{"vendor/**"}, resolved.Ignore)
}

func TestLoadYAMLConfigFile(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "policy.config.yaml"), []byte("fineGrained: true\nincludeNonBuiltins: true\n"), 0o644))

	resolved, err := config.Load(root, config.Overrides{})
	require.NoError(t, err)
	assert.True(t, resolved.FineGrained)
	assert.True(t, resolved.IncludeNonBuiltins)
}

func TestCLIOverridesTakePrecedenceOverFile(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "policy.config.json"), []byte(`{"fineGrained": true, "policyPath": "/tmp/from-file.json"}`), 0o644))

	resolved, err := config.Load(root, config.Overrides{
		FineGrained: boolPtr(false),
		PolicyPath:  strPtr("/tmp/from-cli.json"),
	})
	require.NoError(t, err)
	assert.False(t, resolved.FineGrained)
	assert.Equal(t, "/tmp/from-cli.json", resolved.PolicyPath)
}
