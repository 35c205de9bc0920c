package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// New creates an empty manifest with defaults.
func New() *Manifest {
	return &Manifest{
		Version:     SupportedManifestVersion,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		BasePath:    "./",
		Images:      make(map[string]Image),
	}
}

// ComputeStats recalculates aggregate statistics from images. Failed is
// carried over since failed sources have no entry.
func (m *Manifest) ComputeStats() {
	s := Stats{Failed: m.Stats.Failed}
	s.TotalImages = len(m.Images)
	for _, img := range m.Images {
		s.TotalInputBytes += img.Source.Size
		s.TotalOutputs += len(img.Outputs)
		for _, o := range img.Outputs {
			s.TotalOutputBytes += o.Size
		}
	}
	m.Stats = s
}

// WriteJSON serializes the manifest to a JSON file with stable ordering.
func WriteJSON(m *Manifest, path string) error {
	m.ComputeStats()

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o644)
}

// ReadJSON loads a manifest written by WriteJSON.
func ReadJSON(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	return &m, nil
}
