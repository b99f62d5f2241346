// Package catalog loads the read-only recipe catalogue from local files or S3.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path"
	"strings"

	"quickbite/internal/model"

	"gopkg.in/yaml.v3"
)

// Loader defines the interface for loading a catalogue source.
type Loader interface {
	// Load reads a catalogue document and returns its recipes in document order.
	Load(ctx context.Context, source string) ([]model.Recipe, error)
}

// Supported document formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// detectFormat derives the document format and compression from a file name or
// object key, e.g. "recipes.yaml.gz" is gzipped YAML.
func detectFormat(name string) (format string, gzipped bool, err error) {
	name = strings.ToLower(name)
	if strings.HasSuffix(name, ".gz") {
		gzipped = true
		name = strings.TrimSuffix(name, ".gz")
	}

	switch path.Ext(name) {
	case ".json":
		return FormatJSON, gzipped, nil
	case ".yaml", ".yml":
		return FormatYAML, gzipped, nil
	default:
		return "", false, fmt.Errorf("unsupported catalog format: %s", name)
	}
}

// Decode reads a catalogue document, an array of recipes, in the given format.
func Decode(r io.Reader, format string) ([]model.Recipe, error) {
	var recipes []model.Recipe

	switch format {
	case FormatJSON:
		if err := json.NewDecoder(r).Decode(&recipes); err != nil {
			return nil, fmt.Errorf("failed to decode JSON catalog: %w", err)
		}
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(&recipes); err != nil && err != io.EOF {
			return nil, fmt.Errorf("failed to decode YAML catalog: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported catalog format: %s", format)
	}

	return recipes, nil
}
