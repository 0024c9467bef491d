package util

import (
	"encoding/json"
	"fmt"
	"os"
)

// ReadJSONFile loads a JSON document from disk into a T.
func ReadJSONFile[T any](filePath string) (*T, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %q: %w", filePath, err)
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("failed to unmarshal %T from %q: %w", v, filePath, err)
	}
	return &v, nil
}
