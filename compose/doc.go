// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package compose binds algorithms to backend profiles.
//
// An algorithm is written against an interface R built only from capability
// contract operations, for example:
//
//	type Ops interface {
//	    tensor.Segmenter
//	    tensor.Elementwise
//	}
//
// Bind inspects R's method set, works out which contracts it draws from and
// resolves each of them to the implementation registered in the profile.
// Contracts R does not use are never looked at, so a profile (or bare
// tensor.Mapping) may omit them. Any requirement that cannot be satisfied is
// reported as a *tensor.ContractError when binding, before the algorithm can
// be constructed or called.
//
// Binding mutates no global state; a Bound value can construct any number of
// algorithm instances.
package compose
