package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadRequest reads a render request from disk. JSON is the wire format
// (what the editing UI posts); YAML snapshots written by SaveRequest are
// accepted too, picked by extension.
func LoadRequest(path string) (Request, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Request{}, fmt.Errorf("read request: %w", err)
	}

	req := Default()
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &req); err != nil {
			return Request{}, fmt.Errorf("parse request yaml: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &req); err != nil {
			return Request{}, fmt.Errorf("parse request json: %w", err)
		}
	}

	if err := req.Validate(); err != nil {
		return Request{}, err
	}
	return req, nil
}

// SaveRequest writes a request snapshot as YAML so a clip can be
// re-rendered deterministically later.
func SaveRequest(req Request, path string) error {
	data, err := yaml.Marshal(req)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
