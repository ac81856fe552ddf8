package cpu

import (
	"fmt"

	"github.com/born-ml/autofunc/internal/tensor"
)

// Tensor is the cpu engine's implementation of tensor.Tensor.
type Tensor struct {
	raw     *tensor.RawTensor
	backend *CPUBackend
}

var _ tensor.Tensor = (*Tensor)(nil)

// Raw returns the underlying storage. Callers must not modify it.
func (t *Tensor) Raw() *tensor.RawTensor {
	return t.raw
}

// Shape returns the tensor's shape.
func (t *Tensor) Shape() tensor.Shape {
	return t.raw.Shape()
}

// DType returns the tensor's data type.
func (t *Tensor) DType() tensor.DataType {
	return t.raw.DType()
}

// NumElements returns the total number of elements.
func (t *Tensor) NumElements() int {
	return t.raw.NumElements()
}

// Add returns t + other.
func (t *Tensor) Add(other tensor.Tensor) tensor.Tensor {
	return t.backend.binary("add", t.raw, rawOf("add", other), addOp[float32], addOp[float64])
}

// Sub returns t - other.
func (t *Tensor) Sub(other tensor.Tensor) tensor.Tensor {
	return t.backend.binary("sub", t.raw, rawOf("sub", other), subOp[float32], subOp[float64])
}

// Mul returns t * other.
func (t *Tensor) Mul(other tensor.Tensor) tensor.Tensor {
	return t.backend.binary("mul", t.raw, rawOf("mul", other), mulOp[float32], mulOp[float64])
}

// Div returns t / other.
func (t *Tensor) Div(other tensor.Tensor) tensor.Tensor {
	return t.backend.binary("div", t.raw, rawOf("div", other), divOp[float32], divOp[float64])
}

// MatMul returns the matrix product t @ other.
func (t *Tensor) MatMul(other tensor.Tensor) tensor.Tensor {
	return t.backend.wrap(t.backend.matmul(t.raw, rawOf("matmul", other)))
}

// AddScalar returns t + s.
func (t *Tensor) AddScalar(s float64) tensor.Tensor {
	return t.backend.scalar("add_scalar", t.raw, s, addOp[float32], addOp[float64])
}

// SubScalar returns t - s.
func (t *Tensor) SubScalar(s float64) tensor.Tensor {
	return t.backend.scalar("sub_scalar", t.raw, s, subOp[float32], subOp[float64])
}

// MulScalar returns t * s.
func (t *Tensor) MulScalar(s float64) tensor.Tensor {
	return t.backend.scalar("mul_scalar", t.raw, s, mulOp[float32], mulOp[float64])
}

// DivScalar returns t / s.
func (t *Tensor) DivScalar(s float64) tensor.Tensor {
	return t.backend.scalar("div_scalar", t.raw, s, divOp[float32], divOp[float64])
}

// RSubScalar returns s - t.
func (t *Tensor) RSubScalar(s float64) tensor.Tensor {
	return t.backend.scalar("rsub_scalar", t.raw, s, rsubOp[float32], rsubOp[float64])
}

// RDivScalar returns s / t.
func (t *Tensor) RDivScalar(s float64) tensor.Tensor {
	return t.backend.scalar("rdiv_scalar", t.raw, s, rdivOp[float32], rdivOp[float64])
}

// Pow raises every element to exp.
func (t *Tensor) Pow(exp float64) tensor.Tensor {
	return t.backend.scalar("pow", t.raw, exp, powOp[float32], powOp[float64])
}

// Neg returns -t.
func (t *Tensor) Neg() tensor.Tensor {
	return t.backend.wrap(t.backend.unary("neg", t.raw, negFn))
}

// Abs returns |t|.
func (t *Tensor) Abs() tensor.Tensor {
	return t.backend.wrap(t.backend.unary("abs", t.raw, absFn))
}

// Lower returns the mask t < other.
func (t *Tensor) Lower(other tensor.Tensor) tensor.Tensor {
	return t.backend.wrap(t.backend.compare("lower", t.raw, rawOf("lower", other), lowerFn))
}

// LowerScalar returns the mask t < s.
func (t *Tensor) LowerScalar(s float64) tensor.Tensor {
	return t.backend.wrap(t.backend.compare("lower_scalar", t.raw, t.backend.scalarRaw(t.raw.DType(), s), lowerFn))
}

// Greater returns the mask t > other.
func (t *Tensor) Greater(other tensor.Tensor) tensor.Tensor {
	return t.backend.wrap(t.backend.compare("greater", t.raw, rawOf("greater", other), greaterFn))
}

// GreaterScalar returns the mask t > s.
func (t *Tensor) GreaterScalar(s float64) tensor.Tensor {
	return t.backend.wrap(t.backend.compare("greater_scalar", t.raw, t.backend.scalarRaw(t.raw.DType(), s), greaterFn))
}

// Reshape returns a tensor with the same elements and a new shape.
// One dimension may be -1 and is inferred.
func (t *Tensor) Reshape(shape ...int) tensor.Tensor {
	return t.backend.wrap(reshape(t.raw, shape))
}

// Index selects element i along the first axis, dropping that axis.
func (t *Tensor) Index(i int) tensor.Tensor {
	return t.backend.wrap(index(t.raw, i))
}

// Unbind splits the tensor along its first axis.
func (t *Tensor) Unbind() []tensor.Tensor {
	if len(t.raw.Shape()) == 0 {
		panic("unbind: cannot unbind a scalar")
	}
	out := make([]tensor.Tensor, t.raw.Shape()[0])
	for i := range out {
		out[i] = t.backend.wrap(index(t.raw, i))
	}
	return out
}

// Float64s returns the elements as a row-major float64 slice.
func (t *Tensor) Float64s() []float64 {
	return t.raw.Float64s()
}

// Item returns the value of a single-element tensor.
func (t *Tensor) Item() float64 {
	if t.raw.NumElements() != 1 {
		panic(fmt.Sprintf("item: tensor of shape %v has %d elements", t.raw.Shape(), t.raw.NumElements()))
	}
	return t.raw.Float64s()[0]
}

// String returns a short description, e.g. "cpu.Tensor[float32](3, 4)".
func (t *Tensor) String() string {
	return fmt.Sprintf("cpu.Tensor[%s]%v", t.raw.DType(), []int(t.raw.Shape()))
}
