package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/openkraft/sourcescan/internal/domain"
	"gopkg.in/yaml.v3"
)

// FileName is the optional per-project config file in the scanned root.
const FileName = ".sourcescan.yaml"

// YAMLLoader implements domain.ConfigLoader by reading .sourcescan.yaml.
type YAMLLoader struct{}

var _ domain.ConfigLoader = (*YAMLLoader)(nil)

// New creates a YAMLLoader.
func New() *YAMLLoader { return &YAMLLoader{} }

// Load reads .sourcescan.yaml from root.
// Returns DefaultConfig if the file does not exist.
func (l *YAMLLoader) Load(root string) (domain.ProjectConfig, error) {
	data, err := os.ReadFile(filepath.Join(root, FileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.DefaultConfig(), nil
		}
		return domain.ProjectConfig{}, fmt.Errorf("reading %s: %w", FileName, err)
	}

	cfg := domain.DefaultConfig()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return domain.ProjectConfig{}, fmt.Errorf("parsing %s: %w", FileName, err)
	}

	if err := cfg.Validate(); err != nil {
		return domain.ProjectConfig{}, fmt.Errorf("invalid %s: %w", FileName, err)
	}
	return cfg, nil
}
