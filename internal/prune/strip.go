package prune

import (
	"encoding/json"
	"fmt"
)

// Strip removes absent values from v at every depth and returns a value of the same type.
// It round-trips v through the tagged tree, so it works identically for any output shape.
func Strip[T any](v T) (T, error) {
	var zero T

	n, err := FromValue(v)
	if err != nil {
		return zero, err
	}

	data, err := Prune(n).MarshalJSON()
	if err != nil {
		return zero, fmt.Errorf("failed to encode pruned tree: %w", err)
	}

	var out T
	if err := json.Unmarshal(data, &out); err != nil {
		return zero, fmt.Errorf("failed to decode pruned tree: %w", err)
	}
	return out, nil
}

