package tensor

import (
	"fmt"
	"maps"
	"slices"
)

// Mapping assigns a backend implementation to each contract. Entries for
// contracts an algorithm does not use are ignored when binding it.
type Mapping map[Contract]any

// Mapping returns m itself so a bare Mapping can be bound directly.
func (m Mapping) Mapping() Mapping {
	return m
}

// Profile is one (engine, precision) implementation of the contracts plus the
// machine epsilon of its precision. Profiles are immutable and safe for
// concurrent use.
type Profile struct {
	engine    string
	precision DataType
	epsilon   float64
	mapping   Mapping
}

// NewProfile validates that every registered implementation satisfies its
// contract and returns the profile.
func NewProfile(engine string, precision DataType, epsilon float64, mapping Mapping) (*Profile, error) {
	if engine == "" {
		return nil, &DomainError{Op: "profile", Arg: "engine", Value: `""`, Details: "must not be empty"}
	}
	if !precision.IsFloat() {
		return nil, &DomainError{Op: "profile", Arg: "precision", Value: precision, Details: "must be float32 or float64"}
	}
	if !(epsilon > 0) {
		return nil, &DomainError{Op: "profile", Arg: "epsilon", Value: epsilon, Details: "must be positive"}
	}
	for _, c := range slices.Sorted(maps.Keys(mapping)) {
		if err := Verify(c, mapping[c]); err != nil {
			return nil, fmt.Errorf("profile %s/%s: %w", engine, precision, err)
		}
	}
	return &Profile{
		engine:    engine,
		precision: precision,
		epsilon:   epsilon,
		mapping:   maps.Clone(mapping),
	}, nil
}

// Engine returns the engine name, e.g. "cpu".
func (p *Profile) Engine() string {
	return p.engine
}

// Precision returns the element type of tensors produced by the profile.
func (p *Profile) Precision() DataType {
	return p.precision
}

// Epsilon returns the machine epsilon of the profile's precision.
func (p *Profile) Epsilon() float64 {
	return p.epsilon
}

// Mapping returns a copy of the contract mapping.
func (p *Profile) Mapping() Mapping {
	return maps.Clone(p.mapping)
}

// Supports reports whether the profile registers an implementation for c.
func (p *Profile) Supports(c Contract) bool {
	_, ok := p.mapping[c]
	return ok
}

// String returns "engine/precision".
func (p *Profile) String() string {
	return p.engine + "/" + p.precision.String()
}
