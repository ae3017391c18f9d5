package ingest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Record is one listing as it appears in an import file. Alternative keys
// used by older exports (_id, desc, property_type, lat, lon) are accepted.
type Record struct {
	ID           string   `json:"id" yaml:"id"`
	MongoID      string   `json:"_id" yaml:"_id"`
	Name         string   `json:"name" yaml:"name"`
	City         string   `json:"city" yaml:"city"`
	Location     string   `json:"location" yaml:"location"`
	Description  string   `json:"description" yaml:"description"`
	Desc         string   `json:"desc" yaml:"desc"`
	Address      string   `json:"address" yaml:"address"`
	Category     string   `json:"category" yaml:"category"`
	PropertyType string   `json:"property_type" yaml:"property_type"`
	Latitude     *float64 `json:"latitude" yaml:"latitude"`
	Longitude    *float64 `json:"longitude" yaml:"longitude"`
	Lat          *float64 `json:"lat" yaml:"lat"`
	Lon          *float64 `json:"lon" yaml:"lon"`
	Price        float64  `json:"price" yaml:"price"`
	Amenities    []string `json:"amenities" yaml:"amenities"`
}

func (r *Record) id() string {
	return firstNonEmpty(r.ID, r.MongoID)
}

func (r *Record) description() string {
	return firstNonEmpty(r.Description, r.Desc)
}

func (r *Record) category() string {
	return firstNonEmpty(r.Category, r.PropertyType)
}

func (r *Record) coordinates() (lat, lon *float64) {
	lat, lon = r.Latitude, r.Longitude
	if lat == nil {
		lat = r.Lat
	}
	if lon == nil {
		lon = r.Lon
	}
	return lat, lon
}

// ReadFile decodes records from a .json, .yaml or .yml file.
func ReadFile(path string) ([]Record, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from operator flags
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return ParseJSON(data)
	case ".yaml", ".yml":
		return ParseYAML(data)
	default:
		return nil, fmt.Errorf("unsupported file extension %q", filepath.Ext(path))
	}
}

// ParseJSON decodes a JSON array of records.
func ParseJSON(data []byte) ([]Record, error) {
	var rs []Record
	if err := json.Unmarshal(data, &rs); err != nil {
		return nil, fmt.Errorf("decode json: %w", err)
	}
	return rs, nil
}

// ParseYAML decodes a YAML list of records.
func ParseYAML(data []byte) ([]Record, error) {
	var rs []Record
	if err := yaml.Unmarshal(data, &rs); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	return rs, nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
