// © 2026 Ryan Chen. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package source

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed sources.yaml
var defaultConfig []byte

// Config is the list of sources the pipeline polls.
type Config struct {
	Sources []Source `yaml:"sources"`
}

// DefaultConfig returns the built-in source list.
func DefaultConfig() (*Config, error) {
	return parseConfig(defaultConfig)
}

// LoadConfig reads a source list from a YAML file.
func LoadConfig(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return parseConfig(b)
}

func parseConfig(b []byte) (*Config, error) {
	cfg := new(Config)
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, err
	}
	for i, src := range cfg.Sources {
		if src.Name == "" || src.URL == "" {
			return nil, fmt.Errorf("source %d: name and url are required", i)
		}
		if _, err := AdapterFor(src.Kind); err != nil {
			return nil, fmt.Errorf("source %q: %w", src.Name, err)
		}
		if src.Kind == KindTable && src.TableMarker == "" {
			return nil, fmt.Errorf("source %q: table_marker is required for table sources", src.Name)
		}
	}
	return cfg, nil
}
