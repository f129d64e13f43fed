// Package navstore persists navigation state between process restarts.
//
// A state is the primitive tree produced by the navigator: maps keyed by
// strings, slices, strings, numbers, booleans and nil. Stores keep one state
// per restoration id.
package navstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrNotFound is returned by Load when no state is stored under an id.
var ErrNotFound = errors.New("navstore: state not found")

// Store loads and saves navigation state by restoration id.
// Implementations must be safe for concurrent use.
type Store interface {
	Load(ctx context.Context, id string) (map[string]any, error)
	Save(ctx context.Context, id string, state map[string]any) error
	Delete(ctx context.Context, id string) error
}

func encodeState(state map[string]any) ([]byte, error) {
	data, err := json.Marshal(state)
	if err != nil {
		return nil, fmt.Errorf("navstore: encode state: %w", err)
	}
	return data, nil
}

func decodeState(data []byte) (map[string]any, error) {
	var state map[string]any
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("navstore: decode state: %w", err)
	}
	return state, nil
}

func validID(id string) error {
	if id == "" {
		return errors.New("navstore: empty restoration id")
	}
	return nil
}
