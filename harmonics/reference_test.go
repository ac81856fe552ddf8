// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package harmonics_test

import (
	"math"
	"math/big"
)

// Independent evaluation of r^l·Y_lm(θ, φ) from the closed-form
// normalization and the textbook associated Legendre recursion, carried out
// in 256-bit floating point.

const refPrec = 256

var refPi, _, _ = big.ParseFloat("3.14159265358979323846264338327950288419716939937510582097494459230781640628620899", 10, refPrec, big.ToNearestEven)

// direction is a point given by its radius, polar angle and azimuth.
type direction struct {
	r                  float64
	cosTheta, sinTheta float64
	cosPhi, sinPhi     float64
}

func directionOf(x, y, z float64) direction {
	rxy := math.Hypot(x, y)
	d := direction{r: math.Sqrt(x*x + y*y + z*z), cosPhi: 1}
	d.cosTheta, d.sinTheta = z/d.r, rxy/d.r
	if rxy > 0 {
		d.cosPhi, d.sinPhi = x/rxy, y/rxy
	}
	return d
}

func bf(v float64) *big.Float {
	return new(big.Float).SetPrec(refPrec).SetFloat64(v)
}

func bmul(a, b *big.Float) *big.Float { return new(big.Float).SetPrec(refPrec).Mul(a, b) }
func bsub(a, b *big.Float) *big.Float { return new(big.Float).SetPrec(refPrec).Sub(a, b) }
func badd(a, b *big.Float) *big.Float { return new(big.Float).SetPrec(refPrec).Add(a, b) }
func bquo(a, b *big.Float) *big.Float { return new(big.Float).SetPrec(refPrec).Quo(a, b) }

// legendre returns P[l][m] with the Condon-Shortley phase.
func legendre(lmax int, c, s *big.Float) [][]*big.Float {
	p := make([][]*big.Float, lmax+1)
	for l := range p {
		p[l] = make([]*big.Float, l+1)
	}
	p[0][0] = bf(1)
	for m := 1; m <= lmax; m++ {
		p[m][m] = bmul(bmul(p[m-1][m-1], s), bf(-float64(2*m-1)))
	}
	for m := 0; m < lmax; m++ {
		p[m+1][m] = bmul(bmul(c, bf(float64(2*m+1))), p[m][m])
		for l := m + 2; l <= lmax; l++ {
			t1 := bmul(bmul(c, bf(float64(2*l-1))), p[l-1][m])
			t2 := bmul(bf(float64(l+m-1)), p[l-2][m])
			p[l][m] = bquo(bsub(t1, t2), bf(float64(l-m)))
		}
	}
	return p
}

// norm returns sqrt((2l+1)/(4π)·(l-m)!/(l+m)!).
func norm(l, m int) *big.Float {
	v := bquo(bf(float64(2*l+1)), bmul(bf(4), refPi))
	for k := l - m + 1; k <= l+m; k++ {
		v = bquo(v, bf(float64(k)))
	}
	return new(big.Float).SetPrec(refPrec).Sqrt(v)
}

// reference returns the packed (lmax+1)x(lmax+1) harmonics matrix of d.
func reference(d direction, lmax int) [][]float64 {
	out := make([][]float64, lmax+1)
	for i := range out {
		out[i] = make([]float64, lmax+1)
	}

	p := legendre(lmax, bf(d.cosTheta), bf(d.sinTheta))
	cosM, sinM := []*big.Float{bf(1)}, []*big.Float{bf(0)}
	cp, sp := bf(d.cosPhi), bf(d.sinPhi)
	for m := 1; m <= lmax; m++ {
		cosM = append(cosM, bsub(bmul(cp, cosM[m-1]), bmul(sp, sinM[m-1])))
		sinM = append(sinM, badd(bmul(sp, cosM[m-1]), bmul(cp, sinM[m-1])))
	}

	rl := bf(1)
	for l := 0; l <= lmax; l++ {
		if l > 0 {
			rl = bmul(rl, bf(d.r))
		}
		for m := 0; m <= l; m++ {
			v := bmul(bmul(rl, norm(l, m)), p[l][m])
			out[l][l-m], _ = bmul(v, cosM[m]).Float64()
			if m > 0 {
				out[l-m][l], _ = bmul(v, sinM[m]).Float64()
			}
		}
	}
	return out
}
