package importer

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ImportSchema is the top-level structure of a WBS import file. The same
// shape is accepted as JSON or YAML.
type ImportSchema struct {
	Project      ProjectImport      `json:"project" yaml:"project"`
	Items        []ItemImport       `json:"items" yaml:"items"`
	Dependencies []DependencyImport `json:"dependencies,omitempty" yaml:"dependencies,omitempty"`
}

// ProjectImport defines the project-level fields in the import file.
type ProjectImport struct {
	ShortID      string   `json:"short_id" yaml:"short_id"`
	Name         string   `json:"name" yaml:"name"`
	Description  string   `json:"description,omitempty" yaml:"description,omitempty"`
	PlannedStart *string  `json:"planned_start,omitempty" yaml:"planned_start,omitempty"`
	PlannedEnd   *string  `json:"planned_end,omitempty" yaml:"planned_end,omitempty"`
	BufferRatio  *float64 `json:"buffer_ratio,omitempty" yaml:"buffer_ratio,omitempty"`
}

// ItemImport defines one WBS item. Parents must appear before their
// children. Code is generated from the hierarchy when omitted.
type ItemImport struct {
	Ref             string   `json:"ref" yaml:"ref"`
	ParentRef       *string  `json:"parent_ref,omitempty" yaml:"parent_ref,omitempty"`
	Code            string   `json:"code,omitempty" yaml:"code,omitempty"`
	Title           string   `json:"title" yaml:"title"`
	Type            string   `json:"type,omitempty" yaml:"type,omitempty"`
	Status          string   `json:"status,omitempty" yaml:"status,omitempty"`
	EstimatedHours  *float64 `json:"estimated_hours,omitempty" yaml:"estimated_hours,omitempty"`
	AggressiveHours *float64 `json:"aggressive_hours,omitempty" yaml:"aggressive_hours,omitempty"`
	SafeHours       *float64 `json:"safe_hours,omitempty" yaml:"safe_hours,omitempty"`
	ActualHours     *float64 `json:"actual_hours,omitempty" yaml:"actual_hours,omitempty"`
	Start           *string  `json:"start,omitempty" yaml:"start,omitempty"`
	End             *string  `json:"end,omitempty" yaml:"end,omitempty"`
	Assignee        string   `json:"assignee,omitempty" yaml:"assignee,omitempty"`
}

// DependencyImport defines a finish-to-start edge between two items.
type DependencyImport struct {
	PredecessorRef string `json:"predecessor_ref" yaml:"predecessor_ref"`
	SuccessorRef   string `json:"successor_ref" yaml:"successor_ref"`
	LagDays        int    `json:"lag_days,omitempty" yaml:"lag_days,omitempty"`
}

// Format selects the decoder for ParseImportSchema.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatForPath picks the format from a file extension; anything that is not
// .yaml or .yml is read as JSON.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	}
	return FormatJSON
}

// LoadImportSchema reads and parses an import file.
func LoadImportSchema(path string) (*ImportSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseImportSchema(data, FormatForPath(path))
}

// ParseImportSchema decodes an import document.
func ParseImportSchema(data []byte, format Format) (*ImportSchema, error) {
	var schema ImportSchema
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &schema); err != nil {
			return nil, fmt.Errorf("parsing import file: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &schema); err != nil {
			return nil, fmt.Errorf("parsing import file: %w", err)
		}
	}
	return &schema, nil
}
