// Package analysis holds the per-entry analysis state the catalog
// persists on behalf of external analysis tooling. The catalog treats
// the state as opaque and only moves it through a Codec.
package analysis

import (
	"encoding/json"
	"fmt"
	"io"
)

// State is the analysis result set associated with one catalog entry.
type State struct {
	Properties map[string]string `json:"properties,omitempty"`
	Objects    []Object          `json:"objects,omitempty"`
}

// Object is one detected or annotated region within an image.
type Object struct {
	ID           string             `json:"id"`
	Kind         string             `json:"kind"`
	Label        string             `json:"label,omitempty"`
	Geometry     []float64          `json:"geometry,omitempty"`
	Measurements map[string]float64 `json:"measurements,omitempty"`
}

// NewState returns an empty state, the value an entry yields before
// anything has been saved for it.
func NewState() *State {
	return &State{Properties: make(map[string]string)}
}

// IsEmpty reports whether the state carries no data.
func (s *State) IsEmpty() bool {
	return len(s.Properties) == 0 && len(s.Objects) == 0
}

// Codec serializes analysis state. The on-disk format belongs to the
// analysis tooling, not to the catalog.
type Codec interface {
	Decode(r io.Reader) (*State, error)
	Encode(w io.Writer, state *State) error
}

// JSONCodec is the default Codec.
type JSONCodec struct{}

func (JSONCodec) Decode(r io.Reader) (*State, error) {
	var state State
	if err := json.NewDecoder(r).Decode(&state); err != nil {
		return nil, fmt.Errorf("failed to decode analysis state: %w", err)
	}
	if state.Properties == nil {
		state.Properties = make(map[string]string)
	}
	return &state, nil
}

func (JSONCodec) Encode(w io.Writer, state *State) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(state); err != nil {
		return fmt.Errorf("failed to encode analysis state: %w", err)
	}
	return nil
}
