// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package coord

import (
	"fmt"
	"math"

	"github.com/born-ml/autofunc/compose"
	"github.com/born-ml/autofunc/tensor"
)

// RotationOps is the capability set of Rotation.
type RotationOps interface {
	tensor.Allocator
	tensor.Segmenter
	tensor.Elementwise
	tensor.Reducer
}

// RotationParams defines a rotation by Angle radians about Axis.
// Axis need not be normalized but must have non-zero length.
type RotationParams struct {
	Axis  [3]float64
	Angle float64
}

// Rotation rotates batches of 3D vectors about a fixed axis.
type Rotation struct {
	rot tensor.Tensor // Transposed rotation matrix, applied as xyz @ rot.
}

// RotationAlgorithm binds Rotation to a backend.
var RotationAlgorithm = compose.Algorithm[RotationOps, RotationParams, *Rotation]{
	Name: "Rotation",
	New:  NewRotation,
}

// NewRotation builds the rotation matrix from the unit quaternion
// (cos(angle/2), -n·sin(angle/2)).
func NewRotation(ops RotationOps, p RotationParams) (*Rotation, error) {
	for i, v := range p.Axis {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, &tensor.DomainError{Op: "rotation", Arg: "axis", Value: p.Axis, Details: fmt.Sprintf("component %d is not finite", i)}
		}
	}
	if p.Axis == [3]float64{} {
		return nil, &tensor.DomainError{Op: "rotation", Arg: "axis", Value: p.Axis, Details: "zero length"}
	}
	if math.IsNaN(p.Angle) || math.IsInf(p.Angle, 0) {
		return nil, &tensor.DomainError{Op: "rotation", Arg: "angle", Value: p.Angle, Details: "not finite"}
	}

	// Scale by the largest component first so the squares in Norm can
	// neither overflow nor underflow.
	var scale float64
	for _, v := range p.Axis {
		scale = max(scale, math.Abs(v))
	}
	axis := p.Axis
	for i := range axis {
		axis[i] /= scale
	}

	n, err := ops.Tensor(axis)
	if err != nil {
		return nil, err
	}
	norm := ops.Norm(n)
	if l := norm.Item(); l <= 0 || math.IsNaN(l) || math.IsInf(l, 0) {
		return nil, &tensor.DomainError{Op: "rotation", Arg: "axis", Value: p.Axis, Details: fmt.Sprintf("norm %g is not positive and finite", l)}
	}
	n = n.Div(norm)
	half, err := ops.Tensor(p.Angle / 2)
	if err != nil {
		return nil, err
	}

	a := ops.Cos(half)
	q := n.Neg().Mul(ops.Sin(half)).Unbind()
	b, c, d := q[0], q[1], q[2]

	aa, bb, cc, dd := a.Mul(a), b.Mul(b), c.Mul(c), d.Mul(d)
	bc, ad, ac, ab, bd, cd := b.Mul(c), a.Mul(d), a.Mul(c), a.Mul(b), b.Mul(d), c.Mul(d)

	row := func(entries ...tensor.Tensor) tensor.Tensor {
		return ops.Stack(entries, 0)
	}
	m := ops.Stack([]tensor.Tensor{
		row(aa.Add(bb).Sub(cc).Sub(dd), bc.Add(ad).MulScalar(2), bd.Sub(ac).MulScalar(2)),
		row(bc.Sub(ad).MulScalar(2), aa.Add(cc).Sub(bb).Sub(dd), cd.Add(ab).MulScalar(2)),
		row(bd.Add(ac).MulScalar(2), cd.Sub(ab).MulScalar(2), aa.Add(dd).Sub(bb).Sub(cc)),
	}, 0)

	return &Rotation{rot: ops.T(m)}, nil
}

// Forward rotates every row of xyz, shape [n, 3].
func (r *Rotation) Forward(xyz tensor.Tensor) (tensor.Tensor, error) {
	if err := tensor.CheckVectors("rotation", xyz); err != nil {
		return nil, err
	}
	if err := tensor.CheckPrecision("rotation", xyz, r.rot.DType()); err != nil {
		return nil, err
	}
	return xyz.MatMul(r.rot), nil
}

// Matrix returns the 3x3 matrix M such that Forward(xyz) = xyz @ M.
func (r *Rotation) Matrix() tensor.Tensor {
	return r.rot
}
