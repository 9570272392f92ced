package content

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/igegov/cv-portfolio/internal/schemas"
	"github.com/igegov/cv-portfolio/internal/types"
	"gopkg.in/yaml.v3"
)

// Format is the on-disk encoding of a content file
type Format string

// Supported content formats
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath infers the content format from a file extension; anything that
// is not .yaml or .yml is treated as JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Load reads a content file, checks it against the content schema, and validates the
// decoded structs.
func Load(path string) (*types.CVData, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{
			Message: fmt.Sprintf("failed to read file %s", path),
			Cause:   err,
		}
	}

	return Parse(data, FormatFromPath(path))
}

// Parse decodes content bytes in the given format and validates them
func Parse(data []byte, format Format) (*types.CVData, error) {
	raw, err := toJSON(data, format)
	if err != nil {
		return nil, err
	}

	if err := schemas.ValidateCVData(raw); err != nil {
		return nil, &ValidationError{
			Message: "content does not match schema",
			Cause:   err,
		}
	}

	var cv types.CVData
	if err := json.Unmarshal(raw, &cv); err != nil {
		return nil, &LoadError{
			Message: "failed to unmarshal content",
			Cause:   err,
		}
	}

	if err := cv.Validate(); err != nil {
		return nil, &ValidationError{
			Message: "content failed field validation",
			Cause:   err,
		}
	}

	return &cv, nil
}

// toJSON normalizes content bytes to JSON so both formats share one schema check
func toJSON(data []byte, format Format) ([]byte, error) {
	if format != FormatYAML {
		if !json.Valid(data) {
			return nil, &LoadError{Message: "failed to unmarshal JSON", Cause: fmt.Errorf("invalid JSON syntax")}
		}
		return data, nil
	}

	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &LoadError{
			Message: "failed to unmarshal YAML",
			Cause:   err,
		}
	}

	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, &LoadError{
			Message: "failed to convert YAML to JSON",
			Cause:   err,
		}
	}
	return raw, nil
}

// Save writes content to path in the format implied by its extension
func Save(path string, cv *types.CVData) error {
	var (
		data []byte
		err  error
	)

	switch FormatFromPath(path) {
	case FormatYAML:
		data, err = yaml.Marshal(cv)
	default:
		data, err = json.MarshalIndent(cv, "", "  ")
		data = append(data, '\n')
	}
	if err != nil {
		return fmt.Errorf("failed to encode content: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write content file %s: %w", path, err)
	}
	return nil
}
