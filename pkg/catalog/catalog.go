// Package catalog is the persistence boundary for record sets: UTF-8
// pretty-printed JSON arrays in the canonical schema, with a YAML export
// for human review. The engine itself never touches the filesystem.
package catalog

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"

	"github.com/tablemap/tablemap/pkg/errors"
	"github.com/tablemap/tablemap/pkg/logging"
	"github.com/tablemap/tablemap/pkg/record"
)

const (
	dirPermissions  = 0o755
	filePermissions = 0o644
)

// Load reads a JSON array of records from path. Order is preserved as
// written.
func Load(path string) ([]record.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}

	var records []record.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, errors.WrapIO("parse", path, err)
	}

	logging.Debug().
		Str("path", path).
		Int("records", len(records)).
		Msg("Loaded catalog")

	return records, nil
}

// Save writes records to path as a pretty-printed JSON array, preserving
// the given order. Parent directories are created as needed.
func Save(path string, records []record.Record) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(records); err != nil {
		return errors.WrapIO("encode", path, err)
	}

	if err := os.MkdirAll(filepath.Dir(path), dirPermissions); err != nil {
		return errors.WrapIO("create", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, buf.Bytes(), filePermissions); err != nil {
		return errors.WrapIO("write", path, err)
	}

	logging.Debug().
		Str("path", path).
		Int("records", len(records)).
		Msg("Saved catalog")

	return nil
}

// SaveYAML writes records to path as YAML, for human review and diffs.
// The document shape mirrors the JSON schema exactly, so the JSON form
// stays the single canonical wire format.
func SaveYAML(path string, records []record.Record) error {
	// Round-trip through the JSON codec so the custom rank flattening
	// applies to the YAML form as well.
	jsonData, err := json.Marshal(records)
	if err != nil {
		return errors.WrapIO("encode", path, err)
	}
	var plain []map[string]any
	if err := json.Unmarshal(jsonData, &plain); err != nil {
		return errors.WrapIO("encode", path, err)
	}

	yamlData, err := yaml.Marshal(plain)
	if err != nil {
		return errors.WrapIO("encode", path, err)
	}

	if err := os.MkdirAll(filepath.Dir(path), dirPermissions); err != nil {
		return errors.WrapIO("create", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, yamlData, filePermissions); err != nil {
		return errors.WrapIO("write", path, err)
	}
	return nil
}
