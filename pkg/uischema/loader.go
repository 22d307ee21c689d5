package uischema

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

type documentFile struct {
	DocumentType string                 `json:"documentType" yaml:"documentType"`
	Fields       map[string]FieldConfig `json:"fields" yaml:"fields"`
}

// LoadFS walks the provided filesystem and parses JSON/YAML UI schema files.
// When fsys is nil or holds no schema files, the returned store is empty.
func LoadFS(fsys fs.FS) (*Store, error) {
	store := &Store{documents: make(map[string]Document)}
	if fsys == nil {
		return store, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isSchemaFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("uischema: read %s: %w", path, err)
		}

		parsed, err := parseDocument(data, path)
		if err != nil {
			return err
		}

		name := strings.TrimSpace(parsed.DocumentType)
		if name == "" {
			return fmt.Errorf("uischema: file %s has no documentType", path)
		}
		if _, exists := store.documents[name]; exists {
			return fmt.Errorf("uischema: duplicate document type %q (file %s)", name, path)
		}

		store.documents[name] = Document{
			DocumentType: name,
			Source:       path,
			Fields:       sanitizeFields(parsed.Fields),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return store, nil
}

func parseDocument(data []byte, path string) (documentFile, error) {
	var parsed documentFile
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		if err := json.Unmarshal(data, &parsed); err != nil {
			return documentFile{}, fmt.Errorf("uischema: parse %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &parsed); err != nil {
			return documentFile{}, fmt.Errorf("uischema: parse %s: %w", path, err)
		}
	}
	return parsed, nil
}

func sanitizeFields(fields map[string]FieldConfig) map[string]FieldConfig {
	if fields == nil {
		return map[string]FieldConfig{}
	}
	out := make(map[string]FieldConfig, len(fields))
	for name, cfg := range fields {
		cfg.HelpText = sanitizeHelpText(cfg.HelpText)
		out[strings.TrimSpace(name)] = cfg
	}
	return out
}

func isSchemaFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
