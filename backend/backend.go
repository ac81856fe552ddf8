// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package backend selects backend profiles by (engine, precision) identity.
package backend

import (
	"slices"
	"strings"

	"github.com/born-ml/autofunc/backend/cpu"
	"github.com/born-ml/autofunc/tensor"
)

// Engines lists the engine names known to Lookup.
func Engines() []string {
	return []string{cpu.Engine}
}

// Lookup returns the shared profile for engine and precision.
// Unknown engines and unsupported precisions are *tensor.DomainError.
func Lookup(engine string, precision tensor.DataType) (*tensor.Profile, error) {
	switch strings.ToLower(engine) {
	case cpu.Engine:
		return cpu.Profile(precision)
	default:
		return nil, &tensor.DomainError{
			Op:      "backend",
			Arg:     "engine",
			Value:   engine,
			Details: "known engines: " + strings.Join(slices.Sorted(slices.Values(Engines())), ", "),
		}
	}
}

// Parse resolves a profile from textual engine and precision names.
func Parse(engine, precision string) (*tensor.Profile, error) {
	dt, err := tensor.ParseDataType(precision)
	if err != nil {
		return nil, &tensor.DomainError{Op: "backend", Arg: "precision", Value: precision, Details: err.Error()}
	}
	return Lookup(engine, dt)
}
