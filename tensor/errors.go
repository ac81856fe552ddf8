// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import "github.com/born-ml/autofunc/internal/tensor"

// Error categories.
var (
	ErrContractViolation = tensor.ErrContractViolation
	ErrShape             = tensor.ErrShape
	ErrDomain            = tensor.ErrDomain
)

// ContractError reports a binding failure.
type ContractError = tensor.ContractError

// ShapeError reports an input of the wrong shape.
type ShapeError = tensor.ShapeError

// DomainError reports an argument outside an operation's domain.
type DomainError = tensor.DomainError

// CheckVectors returns a *ShapeError unless x has shape [n, 3].
func CheckVectors(op string, x Tensor) error {
	return tensor.CheckVectors(op, x)
}

// CheckPrecision returns a *DomainError unless x holds elements of type want.
func CheckPrecision(op string, x Tensor, want DataType) error {
	return tensor.CheckPrecision(op, x, want)
}
