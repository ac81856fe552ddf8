// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"reflect"

	"github.com/born-ml/autofunc/internal/tensor"
)

// Allocator creates tensors of a backend's precision.
type Allocator = tensor.Allocator

// Segmenter joins, splits and transposes tensors.
type Segmenter = tensor.Segmenter

// Elementwise holds shape-preserving functions.
type Elementwise = tensor.Elementwise

// Reducer holds reductions.
type Reducer = tensor.Reducer

// Contract names one of the capability contracts.
type Contract = tensor.Contract

// Contract constants.
const (
	Allocation      Contract = tensor.Allocation
	Segmenting      Contract = tensor.Segmenting
	ElementwiseMath Contract = tensor.ElementwiseMath
	Reduction       Contract = tensor.Reduction
)

// Mapping assigns a backend implementation to each contract.
type Mapping = tensor.Mapping

// Profile is one (engine, precision) implementation of the contracts.
//
// Implementations:
//   - backend/cpu: pure Go, float32 and float64
type Profile = tensor.Profile

// NewProfile validates mapping against the contracts and returns a profile.
func NewProfile(engine string, precision DataType, epsilon float64, mapping Mapping) (*Profile, error) {
	return tensor.NewProfile(engine, precision, epsilon, mapping)
}

// Contracts returns every contract in declaration order.
func Contracts() []Contract {
	return tensor.Contracts()
}

// Verify checks that impl satisfies contract c.
func Verify(c Contract, impl any) error {
	return tensor.Verify(c, impl)
}

// Declares returns the contract that declares the operation name, if any.
func Declares(name string) (Contract, reflect.Method, bool) {
	return tensor.Declares(name)
}
