// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package harmonics

import (
	"fmt"
	"math"

	"github.com/born-ml/autofunc/compose"
	"github.com/born-ml/autofunc/tensor"
)

// y00 is the constant harmonic sqrt(1/4π).
var y00 = math.Sqrt(1 / (4 * math.Pi))

// Ops is the capability set of the engine.
type Ops interface {
	tensor.Allocator
	tensor.Segmenter
	tensor.Elementwise
}

// SolidHarmonics evaluates solid harmonics up to a fixed degree.
// It is immutable after construction and safe for concurrent use.
type SolidHarmonics struct {
	ops  Ops
	lmax int
	eps  float64
	rec  recurrence

	l, m, sign tensor.Tensor
	coef       tensor.Tensor
}

// Algorithm binds SolidHarmonics to a backend. Its parameter is lmax.
var Algorithm = compose.Algorithm[Ops, int, *SolidHarmonics]{
	Name: "SolidHarmonics",
	New:  New,
}

// New precomputes the recursion coefficients and index tables for degrees
// 0..lmax.
func New(ops Ops, lmax int) (*SolidHarmonics, error) {
	if lmax < 0 {
		return nil, &tensor.DomainError{Op: "harmonics", Arg: "lmax", Value: lmax, Details: "must be non-negative"}
	}
	h := &SolidHarmonics{
		ops:  ops,
		lmax: lmax,
		eps:  ops.Epsilon(),
		rec:  newRecurrence(lmax),
	}
	if err := h.initGrids(); err != nil {
		return nil, fmt.Errorf("harmonics: %w", err)
	}
	return h, nil
}

func (h *SolidHarmonics) initGrids() error {
	l, m, s := grids(h.lmax)
	var err error
	if h.l, err = h.ops.Tensor(l); err != nil {
		return err
	}
	if h.m, err = h.ops.Tensor(m); err != nil {
		return err
	}
	if h.sign, err = h.ops.Tensor(s); err != nil {
		return err
	}
	if h.lmax == 0 {
		return nil
	}

	// (l²-m²)(2l+1)/(2l-1), restricted to l >= 1.
	twoL := h.l.MulScalar(2)
	c := h.l.Pow(2).Sub(h.m.Pow(2)).Mul(twoL.AddScalar(1)).Div(twoL.SubScalar(1))
	c = h.ops.Narrow(h.ops.Narrow(c, 0, 1, h.lmax), 1, 1, h.lmax)
	h.coef = h.ops.Sqrt(c)
	return nil
}

// Lmax returns the maximum degree.
func (h *SolidHarmonics) Lmax() int {
	return h.lmax
}

// L returns the degree of every entry of the packed output, shape
// [lmax+1, lmax+1, 1].
func (h *SolidHarmonics) L() tensor.Tensor {
	return h.l
}

// M returns the order of every entry of the packed output, shape
// [lmax+1, lmax+1, 1].
func (h *SolidHarmonics) M() tensor.Tensor {
	return h.m
}

// Sign returns -1 for real-part entries below the diagonal and +1 elsewhere,
// shape [lmax+1, lmax+1, 1].
func (h *SolidHarmonics) Sign() tensor.Tensor {
	return h.sign
}

// NormCoef returns sqrt((l²-m²)(2l+1)/(2l-1)) for l, m >= 1 in packed layout,
// shape [lmax, lmax, 1]. It is nil when lmax is 0. The table is not applied by
// Forward.
func (h *SolidHarmonics) NormCoef() tensor.Tensor {
	return h.coef
}

// Forward evaluates the harmonics of xyz, shape [n, 3], and returns the packed
// tensor of shape [lmax+1, lmax+1, n].
func (h *SolidHarmonics) Forward(xyz tensor.Tensor) (tensor.Tensor, error) {
	if err := tensor.CheckVectors("harmonics", xyz); err != nil {
		return nil, err
	}
	if err := tensor.CheckPrecision("harmonics", xyz, h.l.DType()); err != nil {
		return nil, err
	}
	n := xyz.Shape()[0]
	cols := h.ops.T(xyz).Unbind()
	x, y, z := cols[0], cols[1], cols[2]

	rxy2 := x.Mul(x).Add(y.Mul(y))
	r2 := rxy2.Add(z.Mul(z))
	rxy := h.ops.Sqrt(rxy2.AddScalar(h.eps))

	alp := h.legendre(n, z, r2, rxy)
	sin, cos := h.azimuthal(n, x, y, rxy)

	rows := make([]tensor.Tensor, h.lmax+1)
	row := make([]tensor.Tensor, h.lmax+1)
	for i := range rows {
		for j := range row {
			switch {
			case i == j:
				row[j] = alp[tri(i, 0)]
			case i > j:
				row[j] = alp[tri(i, i-j)].Mul(cos[i-j])
			default:
				row[j] = alp[tri(j, j-i)].Mul(sin[j-i])
			}
		}
		rows[i] = h.ops.Stack(row, 0)
	}
	return h.ops.Stack(rows, 0), nil
}

// legendre runs the degree-stepping recursion and returns every term packed
// with tri.
func (h *SolidHarmonics) legendre(n int, z, r2, rxy tensor.Tensor) []tensor.Tensor {
	alp := make([]tensor.Tensor, tri(h.lmax+1, 0))
	alp[0] = h.ops.Full(tensor.Shape{n}, y00)
	for l := 1; l <= h.lmax; l++ {
		for m := 0; m <= l-2; m++ {
			k := tri(l, m)
			prev, prev2 := alp[tri(l-1, m)], alp[tri(l-2, m)]
			alp[k] = z.Mul(prev).Add(r2.MulScalar(h.rec.b[k]).Mul(prev2)).MulScalar(h.rec.a[k])
		}
		top := alp[tri(l-1, l-1)]
		alp[tri(l, l-1)] = z.MulScalar(h.rec.c[l]).Mul(top)
		alp[tri(l, l)] = rxy.MulScalar(h.rec.d[l]).Mul(top)
	}
	return alp
}

// azimuthal returns sin(m·φ) and cos(m·φ) for m = 0..lmax, each scaled by
// (sqrt(x²+y²)/rxy)^m.
func (h *SolidHarmonics) azimuthal(n int, x, y, rxy tensor.Tensor) (sin, cos []tensor.Tensor) {
	sin = make([]tensor.Tensor, h.lmax+1)
	cos = make([]tensor.Tensor, h.lmax+1)
	sin[0] = h.ops.Zeros(tensor.Shape{n})
	cos[0] = h.ops.Ones(tensor.Shape{n})
	if h.lmax == 0 {
		return sin, cos
	}

	// rxy >= sqrt(eps), so the quotients stay finite on the z axis. Near it
	// they are not unit length, but the same rxy scales alp(m, m), and the
	// product is the exact homogeneous polynomial in x and y.
	sinPhi := y.Div(rxy)
	cosPhi := x.Div(rxy)
	sin[1], cos[1] = sinPhi, cosPhi
	for m := 2; m <= h.lmax; m++ {
		sin[m] = sinPhi.Mul(cos[m-1]).Add(cosPhi.Mul(sin[m-1]))
		cos[m] = cosPhi.Mul(cos[m-1]).Sub(sinPhi.Mul(sin[m-1]))
	}
	return sin, cos
}

// Component extracts the real and imaginary parts of the harmonic of degree
// l and order m from y, the output of Forward. Both have shape [n].
func (h *SolidHarmonics) Component(y tensor.Tensor, l, m int) (re, im tensor.Tensor, err error) {
	if y == nil {
		return nil, nil, &tensor.ShapeError{Op: "component", Want: h.packedShape()}
	}
	s := y.Shape()
	if len(s) != 3 || s[0] != h.lmax+1 || s[1] != h.lmax+1 {
		return nil, nil, &tensor.ShapeError{Op: "component", Want: h.packedShape(), Got: s.Clone()}
	}
	if l < 0 || l > h.lmax {
		return nil, nil, rangeError("component", "l", l, 0, h.lmax)
	}
	if m < 0 || m > l {
		return nil, nil, rangeError("component", "m", m, 0, l)
	}

	re = y.Index(l).Index(l - m)
	if m == 0 {
		return re, h.ops.Zeros(re.Shape()), nil
	}
	return re, y.Index(l - m).Index(l), nil
}

func (h *SolidHarmonics) packedShape() string {
	return fmt.Sprintf("[%d, %d, n]", h.lmax+1, h.lmax+1)
}

func rangeError(op, arg string, v, lo, hi int) error {
	return &tensor.DomainError{Op: op, Arg: arg, Value: v, Details: fmt.Sprintf("must be in [%d, %d]", lo, hi)}
}
