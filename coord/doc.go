// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package coord provides 3D coordinate transforms written against the
// capability contracts: Cartesian to spherical conversion and back, and
// axis-angle rotation.
//
// Spherical coordinates are (r, theta, phi): radial distance, polar angle in
// [0, π] and azimuthal angle in (-π, π]. Inputs are batches of shape [n, 3].
//
// Example:
//
//	c2s, err := compose.Instantiate(coord.Cart2SphAlgorithm, cpu.Float64(), compose.NoParams{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	rtp, err := c2s.Forward(xyz)
package coord
