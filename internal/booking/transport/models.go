package transport

import (
	_ "embed"
	"fmt"
	"slices"

	"gopkg.in/yaml.v3"
)

//go:embed models.yaml
var modelsYAML []byte

var modelLabels = mustParseModels(modelsYAML)

type modelsFile struct {
	Models []string `yaml:"models"`
}

func parseModels(data []byte) ([]string, error) {
	var f modelsFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse models: %w", err)
	}
	if len(f.Models) == 0 {
		return nil, fmt.Errorf("parse models: no models listed")
	}
	return f.Models, nil
}

func mustParseModels(data []byte) []string {
	models, err := parseModels(data)
	if err != nil {
		panic(err)
	}
	return models
}

// Models returns the selectable model labels in display order.
func Models() []string {
	return slices.Clone(modelLabels)
}

// DefaultModel is the label preselected in a fresh form.
func DefaultModel() string {
	return modelLabels[0]
}

// IsKnownModel reports whether label is one of Models.
func IsKnownModel(label string) bool {
	return slices.Contains(modelLabels, label)
}
