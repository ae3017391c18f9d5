// Package landmark loads the landmark dataset from a JSON or YAML file.
package landmark

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	domlandmark "github.com/kailas-cloud/stayfinder/internal/domain/landmark"
)

// Format is the encoding of a landmark file.
type Format string

// Supported formats.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// entry mirrors one record of the dataset. JSON keys match case-insensitively,
// so both "Name" and "name" decode.
type entry struct {
	Name      string   `json:"name" yaml:"name"`
	Latitude  *float64 `json:"latitude" yaml:"latitude"`
	Longitude *float64 `json:"longitude" yaml:"longitude"`
}

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported landmark file extension %q", filepath.Ext(path))
	}
}

// LoadFile reads and validates the landmarks in path, preserving file order.
func LoadFile(path string) ([]domlandmark.Landmark, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path) //nolint:gosec // path comes from operator config
	if err != nil {
		return nil, fmt.Errorf("read landmarks: %w", err)
	}
	return Parse(data, format)
}

// LoadIndex reads path into an immutable index. An empty path yields an empty index.
func LoadIndex(path string) (*domlandmark.Index, error) {
	if path == "" {
		return domlandmark.NewIndex(nil), nil
	}
	items, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	return domlandmark.NewIndex(items), nil
}

// Parse decodes a landmark list. Any invalid entry fails the whole load with
// an error naming its position.
func Parse(data []byte, format Format) ([]domlandmark.Landmark, error) {
	var entries []entry
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, &entries); err != nil {
			return nil, fmt.Errorf("decode landmarks json: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &entries); err != nil {
			return nil, fmt.Errorf("decode landmarks yaml: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported landmark format %q", format)
	}

	out := make([]domlandmark.Landmark, 0, len(entries))
	var errs []error
	for i, e := range entries {
		if e.Latitude == nil || e.Longitude == nil {
			errs = append(errs, fmt.Errorf("landmark #%d (%q): latitude and longitude are required", i, e.Name))
			continue
		}
		lm, err := domlandmark.New(e.Name, *e.Latitude, *e.Longitude)
		if err != nil {
			errs = append(errs, fmt.Errorf("landmark #%d: %w", i, err))
			continue
		}
		out = append(out, lm)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return out, nil
}
