// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package cpu

import (
	"fmt"
	"sync"

	internalcpu "github.com/born-ml/autofunc/internal/backend/cpu"
	"github.com/born-ml/autofunc/internal/parallel"
	"github.com/born-ml/autofunc/tensor"
)

// Engine is the engine name of every profile in this package.
const Engine = "cpu"

// Backend represents the CPU backend implementation for one precision.
type Backend = internalcpu.CPUBackend

// Tensor is the tensor type produced by the CPU backend.
type Tensor = internalcpu.Tensor

// Compile-time check that Backend implements every contract.
var (
	_ tensor.Allocator   = (*Backend)(nil)
	_ tensor.Segmenter   = (*Backend)(nil)
	_ tensor.Elementwise = (*Backend)(nil)
	_ tensor.Reducer     = (*Backend)(nil)
)

// New creates a CPU backend for the given precision.
func New(precision tensor.DataType) *Backend {
	return internalcpu.New(precision)
}

// NewProfile creates a profile backed by a fresh CPU backend. workers <= 1
// disables parallel kernels.
func NewProfile(precision tensor.DataType, workers int) (*tensor.Profile, error) {
	if !precision.IsFloat() {
		return nil, &tensor.DomainError{Op: "cpu", Arg: "precision", Value: precision, Details: "must be float32 or float64"}
	}
	cfg := parallel.DefaultConfig()
	if workers <= 1 {
		cfg = parallel.Sequential()
	} else {
		cfg.NumWorkers = workers
	}
	b := internalcpu.New(precision, internalcpu.WithParallel(cfg))
	return tensor.NewProfile(Engine, precision, b.Epsilon(), tensor.Mapping{
		tensor.Allocation:      b,
		tensor.Segmenting:      b,
		tensor.ElementwiseMath: b,
		tensor.Reduction:       b,
	})
}

var (
	float32Profile = sync.OnceValue(func() *tensor.Profile { return mustProfile(tensor.Float32) })
	float64Profile = sync.OnceValue(func() *tensor.Profile { return mustProfile(tensor.Float64) })
)

func mustProfile(precision tensor.DataType) *tensor.Profile {
	p, err := NewProfile(precision, parallel.DefaultConfig().NumWorkers)
	if err != nil {
		panic(fmt.Sprintf("cpu: %v", err))
	}
	return p
}

// Float32 returns the shared single-precision profile.
func Float32() *tensor.Profile {
	return float32Profile()
}

// Float64 returns the shared double-precision profile.
func Float64() *tensor.Profile {
	return float64Profile()
}

// Profile returns the shared profile for precision.
func Profile(precision tensor.DataType) (*tensor.Profile, error) {
	switch precision {
	case tensor.Float32:
		return Float32(), nil
	case tensor.Float64:
		return Float64(), nil
	default:
		return nil, &tensor.DomainError{Op: "cpu", Arg: "precision", Value: precision, Details: "must be float32 or float64"}
	}
}
