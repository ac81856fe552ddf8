package tensor

import (
	"fmt"
	"reflect"
	"strings"
)

// Capability contracts.
//
// A numeric backend is made usable by implementing one or more of the
// contracts below. Contracts are closed: no two contracts declare an operation
// with the same name, and growing the surface means extending a contract.

// Allocator creates tensors of the backend's precision.
type Allocator interface {
	// Tensor builds a tensor from a literal: float32/float64 scalars, nested
	// []float64 / []float32 slices up to rank 3, [3]float64, or an existing
	// Tensor (converted to this precision).
	Tensor(value any) (Tensor, error)
	Zeros(shape Shape) Tensor
	Ones(shape Shape) Tensor
	Empty(shape Shape) Tensor
	Full(shape Shape, value float64) Tensor
	Rand(shape Shape) Tensor // Uniform in [0, 1).
	Epsilon() float64        // Machine epsilon of the precision.
}

// Segmenter joins, splits and transposes tensors.
type Segmenter interface {
	Cat(ts []Tensor, dim int) Tensor
	Stack(ts []Tensor, dim int) Tensor
	T(x Tensor) Tensor // Reverses all axes.
	Narrow(x Tensor, dim, start, length int) Tensor
}

// Elementwise holds shape-preserving functions.
type Elementwise interface {
	Sqrt(x Tensor) Tensor
	Sin(x Tensor) Tensor
	Cos(x Tensor) Tensor
	Atan2(y, x Tensor) Tensor
	Where(condition, x, y Tensor) Tensor
	AllClose(a, b Tensor) bool
	AllCloseTol(a, b Tensor, rtol, atol float64) bool
}

// Reducer holds reductions.
type Reducer interface {
	Norm(x Tensor) Tensor // Frobenius norm over all elements, scalar result.
	NormDim(x Tensor, dim int, keepDim bool) Tensor
}

// Contract names one of the capability contracts.
type Contract int

// Known contracts.
const (
	Allocation Contract = iota
	Segmenting
	ElementwiseMath
	Reduction
)

var contractTypes = [...]reflect.Type{
	Allocation:      reflect.TypeFor[Allocator](),
	Segmenting:      reflect.TypeFor[Segmenter](),
	ElementwiseMath: reflect.TypeFor[Elementwise](),
	Reduction:       reflect.TypeFor[Reducer](),
}

// Contracts returns every contract in declaration order.
func Contracts() []Contract {
	return []Contract{Allocation, Segmenting, ElementwiseMath, Reduction}
}

// String returns the contract name.
func (c Contract) String() string {
	switch c {
	case Allocation:
		return "Allocation"
	case Segmenting:
		return "Segmenting"
	case ElementwiseMath:
		return "Elementwise"
	case Reduction:
		return "Reduction"
	default:
		return fmt.Sprintf("Contract(%d)", int(c))
	}
}

// Type returns the interface type of the contract.
func (c Contract) Type() reflect.Type {
	if c < 0 || int(c) >= len(contractTypes) {
		panic(fmt.Sprintf("unknown contract %d", int(c)))
	}
	return contractTypes[c]
}

// Operations returns the operation names declared by the contract.
func (c Contract) Operations() []string {
	t := c.Type()
	ops := make([]string, t.NumMethod())
	for i := range ops {
		ops[i] = t.Method(i).Name
	}
	return ops
}

// Declares returns the contract that declares operation name, if any.
func Declares(name string) (Contract, reflect.Method, bool) {
	for _, c := range Contracts() {
		if m, ok := c.Type().MethodByName(name); ok {
			return c, m, true
		}
	}
	return 0, reflect.Method{}, false
}

// Verify checks that impl implements contract c and returns a *ContractError
// naming every missing or mismatched operation otherwise.
func Verify(c Contract, impl any) error {
	if impl == nil {
		return &ContractError{Contract: c, Reason: "no implementation registered"}
	}
	ct := c.Type()
	it := reflect.TypeOf(impl)
	if it.Implements(ct) {
		return nil
	}

	var missing []string
	for i := 0; i < ct.NumMethod(); i++ {
		want := ct.Method(i)
		got, ok := it.MethodByName(want.Name)
		if !ok {
			missing = append(missing, want.Name)
			continue
		}
		// Method on a concrete type carries the receiver as first input.
		if !sameSignature(want.Type, got.Type, it.Kind() != reflect.Interface) {
			missing = append(missing, want.Name+" (signature)")
		}
	}
	return &ContractError{
		Contract:   c,
		Operations: missing,
		Reason:     fmt.Sprintf("%s does not implement %s", it, strings.Join(missing, ", ")),
	}
}

func sameSignature(want, got reflect.Type, hasReceiver bool) bool {
	skip := 0
	if hasReceiver {
		skip = 1
	}
	if got.NumIn()-skip != want.NumIn() || got.NumOut() != want.NumOut() || got.IsVariadic() != want.IsVariadic() {
		return false
	}
	for i := 0; i < want.NumIn(); i++ {
		if got.In(i+skip) != want.In(i) {
			return false
		}
	}
	for i := 0; i < want.NumOut(); i++ {
		if got.Out(i) != want.Out(i) {
			return false
		}
	}
	return true
}
