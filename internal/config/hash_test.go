package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeHashDeterministic(t *testing.T) {
	path := writeConfig(t, "service:\n  listen: \"127.0.0.1:8080\"\n")

	h1, err := ComputeHash(path)
	require.NoError(t, err)
	h2, err := ComputeHash(path)
	require.NoError(t, err)

	assert.Equal(t, h1, h2)
	assert.Len(t, h1, 64) // BLAKE3-256 hex
}

func TestChecksumsRoundTrip(t *testing.T) {
	path := writeConfig(t, "github:\n  webhook_url: https://mattermost.example.com/hooks/abc\n")

	// No manifest yet: verification is a no-op
	found, err := VerifyChecksums(path)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, WriteChecksums(path))

	found, err = VerifyChecksums(path)
	require.NoError(t, err)
	assert.True(t, found)
}

func TestChecksumsDetectTampering(t *testing.T) {
	path := writeConfig(t, "github:\n  webhook_url: https://mattermost.example.com/hooks/abc\n")
	require.NoError(t, WriteChecksums(path))

	// Modify the config after locking
	require.NoError(t, os.WriteFile(path, []byte("github:\n  webhook_url: https://evil.example.com\n"), 0600))

	found, err := VerifyChecksums(path)
	assert.True(t, found)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "hash mismatch")
}

func TestVerifyChecksumsRejectsUnknownVersion(t *testing.T) {
	path := writeConfig(t, "giphy:\n  token: t\n")
	manifest := filepath.Join(filepath.Dir(path), ".checksums")
	require.NoError(t, os.WriteFile(manifest, []byte("version: 2\nhashes: {}\n"), 0600))

	_, err := VerifyChecksums(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported checksums version")
}
