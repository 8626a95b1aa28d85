package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, root, rel, contents string) {
	t.Helper()
	full := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
	require.NoError(t, os.WriteFile(full, []byte(contents), 0o644))
}

func TestRunEmitsPolicyToStdout(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "package.json", `{"name": "app"}`)
	writeFile(t, root, "index.js", "const fs = require('fs'); fs.readFileSync('x'); console.log('hi');")
	writeFile(t, root, "package-lock.json", `{"lockfileVersion": 3, "packages": {"": {}}}`)

	var stdout, stderr bytes.Buffer
	err := run(&stdout, &stderr, runOptions{PackageRoot: root, Stdout: true})
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &decoded))
	coarse := decoded["policyCoarse"].(map[string]any)
	require.Contains(t, coarse, filepath.Base(root))
}

func TestRunWritesPolicyFileWithBackup(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "package.json", `{"name": "app"}`)
	writeFile(t, root, "index.js", "require('path');")
	writeFile(t, root, "package-lock.json", `{"lockfileVersion": 3, "packages": {"": {}}}`)

	policyFile := filepath.Join(root, "policy.json")
	require.NoError(t, os.WriteFile(policyFile, []byte(`{"memberAccessTracing":false,"policyCoarse":{},"policyFine":{}}`), 0o644))

	var stdout, stderr bytes.Buffer
	err := run(&stdout, &stderr, runOptions{PackageRoot: root, Write: true, PolicyFile: policyFile})
	require.NoError(t, err)

	_, statErr := os.Stat(policyFile + ".old")
	assert.NoError(t, statErr)

	data, err := os.ReadFile(policyFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "path")
}

func TestRunFailsOnMissingPackageRoot(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := run(&stdout, &stderr, runOptions{PackageRoot: filepath.Join(t.TempDir(), "does-not-exist")})
	assert.Error(t, err)
}
