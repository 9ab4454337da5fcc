package config

import (
	"fmt"
	"os"
)

// LoadParams loads and validates a YAML parameter file
func LoadParams(path string) (ScenarioParams, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ScenarioParams{}, fmt.Errorf("failed to read params file %s: %w", path, err)
	}
	params, err := ParseParamsYAML(data)
	if err != nil {
		return ScenarioParams{}, fmt.Errorf("failed to load params file %s: %w", path, err)
	}
	return params, nil
}
