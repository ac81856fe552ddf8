// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package coord

import (
	"github.com/born-ml/autofunc/compose"
	"github.com/born-ml/autofunc/tensor"
)

// SphericalOps is the capability set of the spherical conversions.
type SphericalOps interface {
	tensor.Segmenter
	tensor.Elementwise
}

// Cart2Sph converts Cartesian (x, y, z) rows to spherical (r, theta, phi).
type Cart2Sph struct {
	ops SphericalOps
}

// NewCart2Sph creates the conversion on ops.
func NewCart2Sph(ops SphericalOps, _ compose.NoParams) (*Cart2Sph, error) {
	return &Cart2Sph{ops: ops}, nil
}

// Cart2SphAlgorithm binds Cart2Sph to a backend.
var Cart2SphAlgorithm = compose.Algorithm[SphericalOps, compose.NoParams, *Cart2Sph]{
	Name: "Cart2Sph",
	New:  NewCart2Sph,
}

// Forward converts xyz of shape [n, 3]. At the poles phi is atan2(0, 0).
func (c *Cart2Sph) Forward(xyz tensor.Tensor) (tensor.Tensor, error) {
	if err := tensor.CheckVectors("cart2sph", xyz); err != nil {
		return nil, err
	}
	x, y, z := columns(c.ops, xyz)

	rxy2 := x.Mul(x).Add(y.Mul(y))
	rxy := c.ops.Sqrt(rxy2)
	r := c.ops.Sqrt(rxy2.Add(z.Mul(z)))
	theta := c.ops.Atan2(rxy, z)
	phi := c.ops.Atan2(y, x)
	return c.ops.Stack([]tensor.Tensor{r, theta, phi}, 1), nil
}

// Sph2Cart converts spherical (r, theta, phi) rows to Cartesian (x, y, z).
type Sph2Cart struct {
	ops SphericalOps
}

// NewSph2Cart creates the conversion on ops.
func NewSph2Cart(ops SphericalOps, _ compose.NoParams) (*Sph2Cart, error) {
	return &Sph2Cart{ops: ops}, nil
}

// Sph2CartAlgorithm binds Sph2Cart to a backend.
var Sph2CartAlgorithm = compose.Algorithm[SphericalOps, compose.NoParams, *Sph2Cart]{
	Name: "Sph2Cart",
	New:  NewSph2Cart,
}

// Forward converts rtp of shape [n, 3].
func (s *Sph2Cart) Forward(rtp tensor.Tensor) (tensor.Tensor, error) {
	if err := tensor.CheckVectors("sph2cart", rtp); err != nil {
		return nil, err
	}
	r, theta, phi := columns(s.ops, rtp)

	rsin := r.Mul(s.ops.Sin(theta))
	x := rsin.Mul(s.ops.Cos(phi))
	y := rsin.Mul(s.ops.Sin(phi))
	z := r.Mul(s.ops.Cos(theta))
	return s.ops.Stack([]tensor.Tensor{x, y, z}, 1), nil
}

// columns splits an [n, 3] tensor into its three [n] columns.
func columns(ops tensor.Segmenter, v tensor.Tensor) (tensor.Tensor, tensor.Tensor, tensor.Tensor) {
	cols := ops.T(v).Unbind()
	return cols[0], cols[1], cols[2]
}
