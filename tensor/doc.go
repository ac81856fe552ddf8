// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor defines the capability contracts autofunc algorithms are
// written against.
//
// # Overview
//
// An algorithm never names a concrete numeric engine. It declares the
// operations it needs by embedding one or more contracts in an interface:
//
//   - Allocator: tensor creation (Tensor, Zeros, Ones, Empty, Full, Rand) and
//     the precision's machine Epsilon
//   - Segmenter: Cat, Stack, T, Narrow
//   - Elementwise: Sqrt, Sin, Cos, Atan2, Where, AllClose
//   - Reducer: Norm, NormDim
//
// Tensors themselves implement the Tensor interface, which exposes named
// arithmetic (Add, Mul, MatMul, Lower, ...) instead of operator overloads.
//
// # Profiles
//
// A Profile is one (engine, precision) implementation of the contracts. The
// composer in package compose binds an algorithm to a profile:
//
//	import (
//	    "github.com/born-ml/autofunc/backend/cpu"
//	    "github.com/born-ml/autofunc/compose"
//	    "github.com/born-ml/autofunc/coord"
//	)
//
//	bound, err := compose.Bind(coord.Cart2SphAlgorithm, cpu.Float64())
//	if err != nil {
//	    return err
//	}
//	c2s, _ := bound.New(compose.NoParams{})
//	rtp, err := c2s.Forward(xyz)
//
// # Errors
//
// Failures are typed: *ContractError (ErrContractViolation) at bind time,
// *ShapeError (ErrShape) for inputs of the wrong shape and *DomainError
// (ErrDomain) for invalid arguments. Use errors.Is to classify them.
//
// # Broadcasting
//
// Tensor operations follow NumPy broadcasting rules:
//
//	a := alloc.Zeros(tensor.Shape{3, 1})  // (3, 1)
//	b := alloc.Ones(tensor.Shape{3, 4})   // (3, 4)
//	c := a.Add(b)                         // (3, 4)
package tensor
