// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package compose

import (
	"errors"
	"fmt"
	"reflect"
	"slices"

	"go.uber.org/zap"

	"github.com/born-ml/autofunc/tensor"
)

// NoParams is the parameter type of algorithms whose constructor takes no
// arguments.
type NoParams struct{}

// Algorithm is an algorithm definition: a constructor written purely against
// the capability interface R. P is the constructor parameter type and A the
// constructed instance.
type Algorithm[R, P, A any] struct {
	Name string
	New  func(ops R, params P) (A, error)
}

// Source supplies the contract mapping to bind against. Both tensor.Mapping
// and *tensor.Profile implement it.
type Source interface {
	Mapping() tensor.Mapping
}

// Bound is an algorithm definition bound to a backend.
type Bound[R, P, A any] struct {
	def      Algorithm[R, P, A]
	ops      R
	requires []tensor.Contract
	profile  *tensor.Profile
	logger   *zap.Logger
}

// Bind resolves the contracts required by def against src.
func Bind[R, P, A any](def Algorithm[R, P, A], src Source, opts ...Option) (*Bound[R, P, A], error) {
	o := newOptions(opts)

	if def.New == nil {
		return nil, &tensor.ContractError{Algorithm: def.Name, Reason: "algorithm has no constructor"}
	}
	profile, isProfile := src.(*tensor.Profile)
	if src == nil || (isProfile && profile == nil) {
		return nil, &tensor.ContractError{Algorithm: def.Name, Reason: "no backend to bind against"}
	}

	requires, err := Requirements[R]()
	if err != nil {
		return nil, withAlgorithm(err, def.Name)
	}

	mapping := src.Mapping()
	var (
		alloc tensor.Allocator
		seg   tensor.Segmenter
		elem  tensor.Elementwise
		red   tensor.Reducer
	)
	for _, c := range requires {
		impl := mapping[c]
		if err := tensor.Verify(c, impl); err != nil {
			return nil, withAlgorithm(err, def.Name)
		}
		switch c {
		case tensor.Allocation:
			alloc = impl.(tensor.Allocator)
		case tensor.Segmenting:
			seg = impl.(tensor.Segmenter)
		case tensor.ElementwiseMath:
			elem = impl.(tensor.Elementwise)
		case tensor.Reduction:
			red = impl.(tensor.Reducer)
		}
	}

	r, ok := dispatch(alloc, seg, elem, red).(R)
	if !ok {
		return nil, &tensor.ContractError{
			Algorithm: def.Name,
			Reason:    fmt.Sprintf("dispatch object does not satisfy %s", reflect.TypeFor[R]()),
		}
	}

	b := &Bound[R, P, A]{
		def:      def,
		ops:      r,
		requires: requires,
		profile:  profile,
		logger:   o.logger,
	}

	target := "mapping"
	if profile != nil {
		target = profile.String()
	}
	o.logger.Debug("bound algorithm",
		zap.String("algorithm", def.Name),
		zap.Stringers("contracts", requires),
		zap.String("backend", target),
	)
	return b, nil
}

// Requirements returns the contracts the capability interface R draws its
// operations from, in contract order. Every method of R must be declared by
// some contract with an identical signature.
func Requirements[R any]() ([]tensor.Contract, error) {
	rt := reflect.TypeFor[R]()
	if rt.Kind() != reflect.Interface {
		return nil, &tensor.ContractError{
			Reason: fmt.Sprintf("requirements must be an interface type, got %s", rt),
		}
	}

	seen := map[tensor.Contract]bool{}
	var undeclared []string
	for i := 0; i < rt.NumMethod(); i++ {
		m := rt.Method(i)
		c, decl, ok := tensor.Declares(m.Name)
		if !ok || decl.Type != m.Type {
			undeclared = append(undeclared, m.Name)
			continue
		}
		seen[c] = true
	}
	if len(undeclared) > 0 {
		return nil, &tensor.ContractError{
			Operations: undeclared,
			Reason:     fmt.Sprintf("operations %v are not exposed by any contract", undeclared),
		}
	}

	var requires []tensor.Contract
	for _, c := range tensor.Contracts() {
		if seen[c] {
			requires = append(requires, c)
		}
	}
	return requires, nil
}

func withAlgorithm(err error, name string) error {
	var ce *tensor.ContractError
	if errors.As(err, &ce) && ce.Algorithm == "" {
		ce.Algorithm = name
	}
	return err
}

// New constructs an algorithm instance, running any precomputation.
func (b *Bound[R, P, A]) New(params P) (A, error) {
	a, err := b.def.New(b.ops, params)
	if err != nil {
		b.logger.Debug("construction failed", zap.String("algorithm", b.def.Name), zap.Error(err))
		return a, err
	}
	return a, nil
}

// Name returns the algorithm name.
func (b *Bound[R, P, A]) Name() string {
	return b.def.Name
}

// Requires returns the contracts the algorithm was bound to.
func (b *Bound[R, P, A]) Requires() []tensor.Contract {
	return slices.Clone(b.requires)
}

// Ops returns the dispatch object passed to the constructor.
func (b *Bound[R, P, A]) Ops() R {
	return b.ops
}

// Profile returns the profile bound against, or nil for a bare mapping.
func (b *Bound[R, P, A]) Profile() *tensor.Profile {
	return b.profile
}

// Instantiate binds def to src and constructs one instance.
func Instantiate[R, P, A any](def Algorithm[R, P, A], src Source, params P, opts ...Option) (A, error) {
	b, err := Bind(def, src, opts...)
	if err != nil {
		var zero A
		return zero, err
	}
	return b.New(params)
}
