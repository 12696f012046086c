package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// loadDocument reads a pipeline document from path and, if it has a YAML
// extension, re-encodes it to JSON so every other package only ever
// parses JSON. YAML is CLI-local convenience, not a wire format: HTTP
// callers always send JSON.
func loadDocument(path string) ([]byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		var doc any
		if err := yaml.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("parse %s as YAML: %w", path, err)
		}
		converted, err := json.Marshal(doc)
		if err != nil {
			return nil, fmt.Errorf("convert %s to JSON: %w", path, err)
		}
		return converted, nil
	default:
		return raw, nil
	}
}
