package config

import (
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/zeebo/blake3"
	"gopkg.in/yaml.v3"
)

// ChecksumManifest is the on-disk .checksums file written next to the
// config. It records the expected BLAKE3 hash of the config file so
// tampering is detected before the service starts.
type ChecksumManifest struct {
	Version     int               `yaml:"version"`
	GeneratedAt string            `yaml:"generated_at"`
	Hashes      map[string]string `yaml:"hashes"`
}

// ComputeHash computes the BLAKE3 hash of a file.
func ComputeHash(filePath string) (string, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}

	hash := blake3.Sum256(data)
	return hex.EncodeToString(hash[:]), nil
}

func checksumPath(configPath string) string {
	return filepath.Join(filepath.Dir(configPath), ".checksums")
}

// WriteChecksums computes the config file hash and writes the
// .checksums manifest alongside it.
func WriteChecksums(configPath string) error {
	absPath, err := filepath.Abs(configPath)
	if err != nil {
		return fmt.Errorf("failed to resolve config path: %w", err)
	}

	hash, err := ComputeHash(absPath)
	if err != nil {
		return fmt.Errorf("failed to hash %s: %w", absPath, err)
	}

	manifest := ChecksumManifest{
		Version:     1,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Hashes: map[string]string{
			filepath.Base(absPath): hash,
		},
	}

	data, err := yaml.Marshal(manifest)
	if err != nil {
		return fmt.Errorf("failed to marshal checksums: %w", err)
	}

	// Restrictive permissions, the manifest holds expected hashes.
	if err := os.WriteFile(checksumPath(absPath), data, 0600); err != nil {
		return fmt.Errorf("failed to write checksums: %w", err)
	}

	return nil
}

// VerifyChecksums verifies the config file against the .checksums
// manifest. A missing manifest is not an error: verification is opt-in
// via 'babelfish config lock'. Returns whether a manifest was found.
func VerifyChecksums(configPath string) (bool, error) {
	absPath, err := filepath.Abs(configPath)
	if err != nil {
		return false, fmt.Errorf("failed to resolve config path: %w", err)
	}

	data, err := os.ReadFile(checksumPath(absPath))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to read checksums: %w", err)
	}

	var manifest ChecksumManifest
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		return true, fmt.Errorf("failed to parse checksums: %w", err)
	}
	if manifest.Version != 1 {
		return true, fmt.Errorf("unsupported checksums version: %d", manifest.Version)
	}

	name := filepath.Base(absPath)
	expectedHash, ok := manifest.Hashes[name]
	if !ok {
		return true, fmt.Errorf("config file %s has no hash in checksums (run 'babelfish config lock')", name)
	}

	actualHash, err := ComputeHash(absPath)
	if err != nil {
		return true, fmt.Errorf("failed to compute hash: %w", err)
	}

	if actualHash != expectedHash {
		return true, fmt.Errorf("hash mismatch for %s: expected %s, got %s\n"+
			"This indicates tampering or unauthorized modification.\n"+
			"If you edited this file intentionally, run: babelfish config lock",
			name, expectedHash, actualHash)
	}

	return true, nil
}
