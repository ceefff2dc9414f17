package content

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ToNode converts cfg into a tree.
func ToNode(cfg BusinessConfig) (*Node, error) {
	b, err := json.Marshal(cfg)
	if err != nil {
		return nil, err
	}
	return ParseJSON(b)
}

// FromNode decodes a tree into a BusinessConfig. Unknown fields and values of
// the wrong type are reported as ErrTypeMismatch.
func FromNode(n *Node) (BusinessConfig, error) {
	b, err := json.Marshal(n)
	if err != nil {
		return BusinessConfig{}, err
	}
	return decodeStrict(b)
}

func decodeStrict(b []byte) (BusinessConfig, error) {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.DisallowUnknownFields()
	var cfg BusinessConfig
	if err := dec.Decode(&cfg); err != nil {
		return BusinessConfig{}, fmt.Errorf("%w: %v", ErrTypeMismatch, err)
	}
	return cfg, nil
}

// ApplyPath returns a copy of cfg with the leaf at the dotted path set to
// value. Lists are addressed by index ("homepage.features.0.title") or
// replaced whole ("about.values"). The result shares no maps or slices
// with cfg.
func ApplyPath(cfg BusinessConfig, path string, value any) (BusinessConfig, error) {
	p, err := ParsePath(path)
	if err != nil {
		return BusinessConfig{}, err
	}
	if value == nil {
		return BusinessConfig{}, fmt.Errorf("%w: %s cannot be set to null", ErrTypeMismatch, path)
	}

	root, err := ToNode(cfg)
	if err != nil {
		return BusinessConfig{}, err
	}
	leaf, err := NewNode(value)
	if err != nil {
		return BusinessConfig{}, err
	}
	updated, err := root.Set(p, leaf)
	if err != nil {
		return BusinessConfig{}, err
	}
	return FromNode(updated)
}
