package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// ParseParamsYAML parses ScenarioParams from YAML bytes over the defaults and
// validates the result. Keys missing from the document keep their default.
func ParseParamsYAML(data []byte) (ScenarioParams, error) {
	params := DefaultScenarioParams()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&params); err != nil && !errors.Is(err, io.EOF) {
		return ScenarioParams{}, fmt.Errorf("failed to parse params yaml: %w", err)
	}

	if err := params.Validate(); err != nil {
		return ScenarioParams{}, err
	}
	return params, nil
}

// ParseParamsYAMLString parses ScenarioParams from a YAML string and validates it.
func ParseParamsYAMLString(yamlText string) (ScenarioParams, error) {
	return ParseParamsYAML([]byte(yamlText))
}

// ParseParamsJSON parses ScenarioParams from JSON bytes over the defaults and
// validates the result. Used where params arrive as a request payload.
func ParseParamsJSON(data []byte) (ScenarioParams, error) {
	params := DefaultScenarioParams()
	if len(bytes.TrimSpace(data)) > 0 {
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&params); err != nil {
			return ScenarioParams{}, fmt.Errorf("failed to parse params json: %w", err)
		}
	}

	if err := params.Validate(); err != nil {
		return ScenarioParams{}, err
	}
	return params, nil
}
