// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu provides the pure Go CPU backend profiles.
//
// # Overview
//
// This package exposes one immutable profile per precision:
//   - Pure Go implementation (no CGO)
//   - Float32 and Float64 support
//   - NumPy-compatible broadcasting
//   - Parallel element-wise kernels for large tensors
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/autofunc/backend/cpu"
//	    "github.com/born-ml/autofunc/compose"
//	    "github.com/born-ml/autofunc/harmonics"
//	)
//
//	func main() {
//	    bound, err := compose.Bind(harmonics.Algorithm, cpu.Float32())
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    sh, err := bound.New(10)
//	    ...
//	}
//
// # Thread Safety
//
// Profiles are shared singletons and safe for concurrent use. Each tensor
// operation allocates its result and never mutates its operands.
package cpu
