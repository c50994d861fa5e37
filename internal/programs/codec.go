package programs

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format is a catalog serialization format.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

// ParseFormat parses a format name. "yml" is accepted as YAML.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yaml", "yml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	case "toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("unknown catalog format %q (want yaml, json, or toml)", s)
	}
}

// FormatForPath picks a format from a file extension.
func FormatForPath(path string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "", fmt.Errorf("cannot infer catalog format from %q", path)
	}
	return ParseFormat(ext)
}

// Marshal encodes a catalog file.
func Marshal(f *File, format Format) ([]byte, error) {
	switch format {
	case FormatYAML:
		return yaml.Marshal(f)
	case FormatJSON:
		data, err := json.MarshalIndent(f, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	case FormatTOML:
		return toml.Marshal(f)
	default:
		return nil, fmt.Errorf("unknown catalog format %q", format)
	}
}

// Unmarshal decodes a catalog file. It does not validate.
func Unmarshal(data []byte, format Format) (*File, error) {
	var file File
	var err error
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, &file)
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(&file)
	case FormatTOML:
		err = toml.Unmarshal(data, &file)
	default:
		return nil, fmt.Errorf("unknown catalog format %q", format)
	}
	if err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", strings.ToUpper(string(format)), err)
	}
	return &file, nil
}

// Encode writes a catalog file to w.
func Encode(w io.Writer, f *File, format Format) error {
	data, err := Marshal(f, format)
	if err != nil {
		return fmt.Errorf("marshal catalog: %w", err)
	}
	_, err = w.Write(data)
	return err
}

// Load reads a catalog file, choosing the format from the extension.
func Load(path string) (*File, error) {
	format, err := FormatForPath(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}

	return Unmarshal(data, format)
}

// LoadAndValidate reads a catalog file and validates it.
func LoadAndValidate(path string) (*File, error) {
	file, err := Load(path)
	if err != nil {
		return nil, err
	}

	if err := file.Validate(); err != nil {
		return nil, fmt.Errorf("validate catalog: %w", err)
	}

	return file, nil
}

// LoadCatalog reads, validates and indexes a catalog file.
func LoadCatalog(path string) (*Catalog, error) {
	file, err := LoadAndValidate(path)
	if err != nil {
		return nil, err
	}
	return NewCatalogFromFile(file)
}

// Save writes a catalog file, choosing the format from the extension.
func Save(path string, f *File) error {
	format, err := FormatForPath(path)
	if err != nil {
		return err
	}

	data, err := Marshal(f, format)
	if err != nil {
		return fmt.Errorf("marshal catalog: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write catalog file: %w", err)
	}

	return nil
}
