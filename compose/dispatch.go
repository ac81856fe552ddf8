// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package compose

import "github.com/born-ml/autofunc/tensor"

// Ops is the dispatch object of algorithms that require every contract.
// Algorithms requiring fewer contracts receive a value embedding only those,
// so asserting an unbound contract on the dispatch object fails.
type Ops struct {
	tensor.Allocator
	tensor.Segmenter
	tensor.Elementwise
	tensor.Reducer
}

type (
	opsA struct{ tensor.Allocator }
	opsS struct{ tensor.Segmenter }
	opsE struct{ tensor.Elementwise }
	opsR struct{ tensor.Reducer }
	opsAS struct {
		tensor.Allocator
		tensor.Segmenter
	}
	opsAE struct {
		tensor.Allocator
		tensor.Elementwise
	}
	opsAR struct {
		tensor.Allocator
		tensor.Reducer
	}
	opsSE struct {
		tensor.Segmenter
		tensor.Elementwise
	}
	opsSR struct {
		tensor.Segmenter
		tensor.Reducer
	}
	opsER struct {
		tensor.Elementwise
		tensor.Reducer
	}
	opsASE struct {
		tensor.Allocator
		tensor.Segmenter
		tensor.Elementwise
	}
	opsASR struct {
		tensor.Allocator
		tensor.Segmenter
		tensor.Reducer
	}
	opsAER struct {
		tensor.Allocator
		tensor.Elementwise
		tensor.Reducer
	}
	opsSER struct {
		tensor.Segmenter
		tensor.Elementwise
		tensor.Reducer
	}
)

// dispatch returns a value embedding exactly the non-nil contracts.
func dispatch(a tensor.Allocator, s tensor.Segmenter, e tensor.Elementwise, r tensor.Reducer) any {
	var mask int
	if a != nil {
		mask |= 1
	}
	if s != nil {
		mask |= 2
	}
	if e != nil {
		mask |= 4
	}
	if r != nil {
		mask |= 8
	}

	switch mask {
	case 1:
		return opsA{a}
	case 2:
		return opsS{s}
	case 4:
		return opsE{e}
	case 8:
		return opsR{r}
	case 1 | 2:
		return opsAS{a, s}
	case 1 | 4:
		return opsAE{a, e}
	case 1 | 8:
		return opsAR{a, r}
	case 2 | 4:
		return opsSE{s, e}
	case 2 | 8:
		return opsSR{s, r}
	case 4 | 8:
		return opsER{e, r}
	case 1 | 2 | 4:
		return opsASE{a, s, e}
	case 1 | 2 | 8:
		return opsASR{a, s, r}
	case 1 | 4 | 8:
		return opsAER{a, e, r}
	case 2 | 4 | 8:
		return opsSER{s, e, r}
	case 1 | 2 | 4 | 8:
		return Ops{a, s, e, r}
	default:
		return struct{}{}
	}
}
