package index

import (
	"encoding/json"
	"fmt"
	"os"
)

// ReadEnvironmentSpec reads a JSON environment index.
func ReadEnvironmentSpec(filename string) (*EnvironmentSpec, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	var spec EnvironmentSpec
	if err := json.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("unmarshal %s: %w", filename, err)
	}
	return &spec, nil
}

// WriteJSONFile writes spec as indented JSON.
func WriteJSONFile(filename string, spec interface{}) error {
	data, err := json.MarshalIndent(spec, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filename, data, 0o644)
}
