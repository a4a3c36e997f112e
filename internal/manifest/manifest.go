// SPDX-License-Identifier: MPL-2.0

// Package manifest records what a release run produced. The manifest sits
// next to the artifact as <package>.toml so the archive and its provenance
// travel together.
package manifest

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/pelletier/go-toml/v2"

	"github.com/taosdata/taosrelease/internal/release"
)

// Extension is the manifest file suffix.
const Extension = ".toml"

type (
	// Manifest describes one packaged artifact.
	Manifest struct {
		RunID     string   `toml:"run_id"`
		Package   string   `toml:"package"`
		Version   string   `toml:"version"`
		OS        string   `toml:"os"`
		CPUType   string   `toml:"cpu_type"`
		BuildMode string   `toml:"build_mode"`
		Source    Source   `toml:"source"`
		Artifact  Artifact `toml:"artifact"`
	}

	// Source identifies the tree the artifact was built from.
	Source struct {
		Branch    string `toml:"branch"`
		Commit    string `toml:"commit"`
		BuildTime string `toml:"build_time"`
	}

	// Artifact names the output file and its digest.
	Artifact struct {
		File   string `toml:"file"`
		Size   int64  `toml:"size"`
		SHA256 string `toml:"sha256"`
	}
)

// New describes artifactPath as produced by rc. The artifact is hashed here.
func New(rc *release.Context, artifactPath string) (*Manifest, error) {
	sum, size, err := digest(artifactPath)
	if err != nil {
		return nil, err
	}
	return &Manifest{
		RunID:     uuid.New().String(),
		Package:   rc.PackageName(),
		Version:   rc.Version,
		OS:        rc.OS.String(),
		CPUType:   rc.CPUType.String(),
		BuildMode: rc.BuildMode.String(),
		Source: Source{
			Branch:    rc.Branch,
			Commit:    rc.Commit,
			BuildTime: rc.BuildTime,
		},
		Artifact: Artifact{
			File:   filepath.Base(artifactPath),
			Size:   size,
			SHA256: sum,
		},
	}, nil
}

// Write stores m as <dir>/<m.Package>.toml and returns the path.
func (m *Manifest) Write(dir string) (string, error) {
	data, err := toml.Marshal(m)
	if err != nil {
		return "", fmt.Errorf("encode manifest: %w", err)
	}
	path := filepath.Join(dir, m.Package+Extension)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write manifest: %w", err)
	}
	return path, nil
}

// Load reads a manifest written by Write.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest %s: %w", path, err)
	}
	return &m, nil
}

// Verify recomputes the digest of the artifact next to the manifest.
func (m *Manifest) Verify(dir string) error {
	sum, _, err := digest(filepath.Join(dir, m.Artifact.File))
	if err != nil {
		return err
	}
	if sum != m.Artifact.SHA256 {
		return fmt.Errorf("artifact %s: sha256 %s does not match manifest %s", m.Artifact.File, sum, m.Artifact.SHA256)
	}
	return nil
}

func digest(path string) (string, int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", 0, fmt.Errorf("open artifact: %w", err)
	}
	defer f.Close()
	h := sha256.New()
	n, err := io.Copy(h, f)
	if err != nil {
		return "", 0, fmt.Errorf("hash artifact: %w", err)
	}
	return hex.EncodeToString(h.Sum(nil)), n, nil
}
