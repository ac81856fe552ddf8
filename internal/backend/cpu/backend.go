// Package cpu implements the pure Go CPU engine. One CPUBackend exists per
// precision; it satisfies every capability contract and produces *Tensor
// values implementing tensor.Tensor.
package cpu

import (
	"fmt"

	"github.com/born-ml/autofunc/internal/parallel"
	"github.com/born-ml/autofunc/internal/tensor"
)

// Machine epsilon per precision (distance from 1.0 to the next float).
const (
	Float32Epsilon = 0x1p-23
	Float64Epsilon = 0x1p-52
)

// CPUBackend implements the capability contracts on CPU for one precision.
type CPUBackend struct {
	dtype    tensor.DataType
	parallel parallel.Config
}

// Compile-time checks that CPUBackend implements every contract.
var (
	_ tensor.Allocator   = (*CPUBackend)(nil)
	_ tensor.Segmenter   = (*CPUBackend)(nil)
	_ tensor.Elementwise = (*CPUBackend)(nil)
	_ tensor.Reducer     = (*CPUBackend)(nil)
)

// Option configures a CPUBackend.
type Option func(*CPUBackend)

// WithParallel overrides the parallel execution settings.
func WithParallel(cfg parallel.Config) Option {
	return func(cpu *CPUBackend) {
		cpu.parallel = cfg
	}
}

// New creates a CPU backend producing tensors of the given precision.
// Panics if dtype is not a floating-point type.
func New(dtype tensor.DataType, opts ...Option) *CPUBackend {
	if !dtype.IsFloat() {
		panic(fmt.Sprintf("cpu: unsupported precision %s (only float32/float64 supported)", dtype))
	}
	cpu := &CPUBackend{
		dtype:    dtype,
		parallel: parallel.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(cpu)
	}
	return cpu
}

// Name returns the engine name.
func (cpu *CPUBackend) Name() string {
	return "cpu"
}

// Precision returns the element type of allocated tensors.
func (cpu *CPUBackend) Precision() tensor.DataType {
	return cpu.dtype
}

// Epsilon returns the machine epsilon of the backend's precision.
func (cpu *CPUBackend) Epsilon() float64 {
	if cpu.dtype == tensor.Float32 {
		return Float32Epsilon
	}
	return Float64Epsilon
}

// wrap returns a tensor owned by this backend.
func (cpu *CPUBackend) wrap(raw *tensor.RawTensor) *Tensor {
	return &Tensor{raw: raw, backend: cpu}
}

// alloc allocates a zeroed tensor, panicking with an op-prefixed message on
// invalid shapes.
func (cpu *CPUBackend) alloc(op string, shape tensor.Shape, dtype tensor.DataType) *tensor.RawTensor {
	raw, err := tensor.NewRaw(shape, dtype)
	if err != nil {
		panic(fmt.Sprintf("%s: %v", op, err))
	}
	return raw
}

// rawOf unwraps a tensor produced by any CPU backend.
func rawOf(op string, t tensor.Tensor) *tensor.RawTensor {
	switch v := t.(type) {
	case *Tensor:
		return v.raw
	case nil:
		panic(op + ": nil tensor")
	default:
		panic(fmt.Sprintf("%s: tensor of type %T does not belong to the cpu engine", op, t))
	}
}

// checkFloat panics unless raw holds floating-point data.
func checkFloat(op string, raw *tensor.RawTensor) {
	if !raw.DType().IsFloat() {
		panic(fmt.Sprintf("%s: unsupported dtype %s (only float32/float64 supported)", op, raw.DType()))
	}
}

// checkSameDType panics unless all tensors share a dtype.
func checkSameDType(op string, raws ...*tensor.RawTensor) {
	for _, r := range raws[1:] {
		if r.DType() != raws[0].DType() {
			panic(fmt.Sprintf("%s: dtype mismatch %s vs %s", op, raws[0].DType(), r.DType()))
		}
	}
}
