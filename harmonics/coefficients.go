// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package harmonics

import (
	"math"
	"slices"
)

// tri returns the packed index of (l, m) in a lower-triangular table.
func tri(l, m int) int {
	return l*(l+1)/2 + m
}

// recurrence holds the coefficients of the associated Legendre recursion
//
//	P[l][m]   = a[l][m]·(z·P[l-1][m] + r²·b[l][m]·P[l-2][m])   m <= l-2
//	P[l][l-1] = c[l]·z·P[l-1][l-1]
//	P[l][l]   = d[l]·rxy·P[l-1][l-1]
//
// a and b are packed with tri; entries with m > l-2 are unused.
type recurrence struct {
	a, b []float64
	c, d []float64
}

func newRecurrence(lmax int) recurrence {
	rec := recurrence{
		a: make([]float64, tri(lmax+1, 0)),
		b: make([]float64, tri(lmax+1, 0)),
		c: make([]float64, lmax+1),
		d: make([]float64, lmax+1),
	}
	rec.c[0], rec.d[0] = 1, math.NaN()
	for l := 1; l <= lmax; l++ {
		fl := float64(l)
		rec.c[l] = math.Sqrt(2*fl + 1)
		rec.d[l] = -math.Sqrt(1 + 1/(2*fl))
		for m := 0; m <= l-2; m++ {
			fm := float64(m)
			rec.a[tri(l, m)] = math.Sqrt((4*fl*fl - 1) / (fl*fl - fm*fm))
			rec.b[tri(l, m)] = -math.Sqrt(((fl-1)*(fl-1) - fm*fm) / (4*(fl-1)*(fl-1) - 1))
		}
	}
	return rec
}

// Recurrence returns the coefficients used to step degree l:
// a[m] and b[m] for m = 0..l-2, and the diagonal steps c and d.
// Degrees below 2 have no a, b columns.
func (h *SolidHarmonics) Recurrence(l int) (a, b []float64, c, d float64, err error) {
	if l < 1 || l > h.lmax {
		return nil, nil, 0, 0, rangeError("recurrence", "l", l, 1, h.lmax)
	}
	lo, hi := tri(l, 0), tri(l, 0)+max(l-1, 0)
	return slices.Clone(h.rec.a[lo:hi]), slices.Clone(h.rec.b[lo:hi]), h.rec.c[l], h.rec.d[l], nil
}

// grids returns the degree, order and sign tables of shape
// [lmax+1, lmax+1, 1]: L[i][j] = max(i, j), M[i][j] = |i-j|, and
// S[i][j] = -1 below the diagonal, +1 on and above it.
func grids(lmax int) (l, m, s [][][]float64) {
	n := lmax + 1
	l = make([][][]float64, n)
	m = make([][][]float64, n)
	s = make([][][]float64, n)
	for i := range n {
		l[i] = make([][]float64, n)
		m[i] = make([][]float64, n)
		s[i] = make([][]float64, n)
		for j := range n {
			l[i][j] = []float64{float64(max(i, j))}
			m[i][j] = []float64{math.Abs(float64(i - j))}
			if j < i {
				s[i][j] = []float64{-1}
			} else {
				s[i][j] = []float64{1}
			}
		}
	}
	return l, m, s
}
