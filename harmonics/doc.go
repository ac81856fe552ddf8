// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package harmonics evaluates solid spherical harmonics r^l·Y_lm(θ, φ) of
// 3D Cartesian vectors up to a maximum degree lmax.
//
// For a batch of n vectors the result is a tensor Y of shape
// [lmax+1, lmax+1, n]. The harmonic of degree l and order m >= 0 is packed as
//
//	m > 0:  Y[l, l-m] + i·Y[l-m, l]
//	m = 0:  Y[l, l]
//
// so the lower triangle holds real parts and the upper triangle imaginary
// parts. For lmax = 3:
//
//	    0 1 2 3       0 1 2 3        r i i i
//	l = 1 1 2 3   m = 1 0 1 2    Y = r r i i
//	    2 2 2 3       2 1 0 1        r r r i
//	    3 3 3 3       3 2 1 0        r r r r
//
// Harmonics follow the Condon-Shortley phase convention. For unit vectors
// they reduce to ordinary spherical harmonics; multiplying by
// sqrt(4π/(2l+1)) gives regular solid harmonics. That factor is not applied.
//
// Example:
//
//	sh, err := compose.Instantiate(harmonics.Algorithm, cpu.Float64(), 6)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	y, err := sh.Forward(xyz)
//	re, im, err := sh.Component(y, 3, 2)
package harmonics
