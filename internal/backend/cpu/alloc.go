package cpu

import (
	"fmt"
	"math/rand/v2"

	"github.com/born-ml/autofunc/internal/tensor"
)

// Tensor builds a tensor of the backend's precision from a literal.
//
// Supported literals: float64, float32, int, []float64, []float32,
// [][]float64, [][][]float64, [3]float64, [3][3]float64 and tensor.Tensor
// (converted to this precision). Ragged nested slices yield a
// *tensor.ShapeError.
func (cpu *CPUBackend) Tensor(value any) (tensor.Tensor, error) {
	var (
		data  []float64
		shape tensor.Shape
	)

	switch v := value.(type) {
	case float64:
		data, shape = []float64{v}, tensor.Shape{}
	case float32:
		data, shape = []float64{float64(v)}, tensor.Shape{}
	case int:
		data, shape = []float64{float64(v)}, tensor.Shape{}
	case []float64:
		data, shape = append([]float64(nil), v...), tensor.Shape{len(v)}
	case []float32:
		data = make([]float64, len(v))
		for i, x := range v {
			data[i] = float64(x)
		}
		shape = tensor.Shape{len(v)}
	case [3]float64:
		data, shape = append([]float64(nil), v[:]...), tensor.Shape{3}
	case [3][3]float64:
		for _, row := range v {
			data = append(data, row[:]...)
		}
		shape = tensor.Shape{3, 3}
	case [][]float64:
		var err error
		if data, shape, err = flatten2(v); err != nil {
			return nil, err
		}
	case [][][]float64:
		var err error
		if data, shape, err = flatten3(v); err != nil {
			return nil, err
		}
	case tensor.Tensor:
		data, shape = v.Float64s(), v.Shape().Clone()
	case nil:
		return nil, &tensor.DomainError{Op: "tensor", Arg: "value", Value: nil, Details: "nil literal"}
	default:
		return nil, &tensor.DomainError{Op: "tensor", Arg: "value", Value: fmt.Sprintf("%T", value), Details: "unsupported literal type"}
	}

	if err := shape.Validate(); err != nil {
		return nil, &tensor.ShapeError{Op: "tensor", Want: "non-empty dimensions", Got: shape}
	}
	return cpu.wrap(cpu.fromFloat64s("tensor", data, shape)), nil
}

func flatten2(v [][]float64) ([]float64, tensor.Shape, error) {
	if len(v) == 0 {
		return nil, tensor.Shape{0}, nil
	}
	cols := len(v[0])
	data := make([]float64, 0, len(v)*cols)
	for i, row := range v {
		if len(row) != cols {
			return nil, nil, &tensor.ShapeError{
				Op:   "tensor",
				Want: fmt.Sprintf("rows of length %d", cols),
				Got:  tensor.Shape{i, len(row)},
			}
		}
		data = append(data, row...)
	}
	return data, tensor.Shape{len(v), cols}, nil
}

func flatten3(v [][][]float64) ([]float64, tensor.Shape, error) {
	if len(v) == 0 {
		return nil, tensor.Shape{0}, nil
	}
	var (
		data  []float64
		inner tensor.Shape
	)
	for i, m := range v {
		d, s, err := flatten2(m)
		if err != nil {
			return nil, nil, err
		}
		if i == 0 {
			inner = s
		} else if !s.Equal(inner) {
			return nil, nil, &tensor.ShapeError{Op: "tensor", Want: fmt.Sprintf("blocks of shape %v", inner), Got: s}
		}
		data = append(data, d...)
	}
	return data, append(tensor.Shape{len(v)}, inner...), nil
}

// fromFloat64s copies data into a new tensor of the backend's precision.
func (cpu *CPUBackend) fromFloat64s(op string, data []float64, shape tensor.Shape) *tensor.RawTensor {
	raw := cpu.alloc(op, shape, cpu.dtype)
	switch cpu.dtype {
	case tensor.Float32:
		dst := raw.AsFloat32()
		for i, v := range data {
			dst[i] = float32(v)
		}
	case tensor.Float64:
		copy(raw.AsFloat64(), data)
	}
	return raw
}

// Zeros returns a tensor of the given shape filled with 0.
func (cpu *CPUBackend) Zeros(shape tensor.Shape) tensor.Tensor {
	return cpu.wrap(cpu.alloc("zeros", shape, cpu.dtype))
}

// Ones returns a tensor of the given shape filled with 1.
func (cpu *CPUBackend) Ones(shape tensor.Shape) tensor.Tensor {
	return cpu.Full(shape, 1)
}

// Empty returns a tensor of the given shape. The CPU engine always zeroes
// fresh memory, so Empty is equivalent to Zeros.
func (cpu *CPUBackend) Empty(shape tensor.Shape) tensor.Tensor {
	return cpu.wrap(cpu.alloc("empty", shape, cpu.dtype))
}

// Full returns a tensor of the given shape filled with value.
func (cpu *CPUBackend) Full(shape tensor.Shape, value float64) tensor.Tensor {
	raw := cpu.alloc("full", shape, cpu.dtype)
	switch cpu.dtype {
	case tensor.Float32:
		fill(raw.AsFloat32(), float32(value))
	case tensor.Float64:
		fill(raw.AsFloat64(), value)
	}
	return cpu.wrap(raw)
}

func fill[T tensor.DType](dst []T, v T) {
	for i := range dst {
		dst[i] = v
	}
}

// Rand returns a tensor of the given shape with elements drawn uniformly
// from [0, 1).
func (cpu *CPUBackend) Rand(shape tensor.Shape) tensor.Tensor {
	raw := cpu.alloc("rand", shape, cpu.dtype)
	switch cpu.dtype {
	case tensor.Float32:
		dst := raw.AsFloat32()
		for i := range dst {
			dst[i] = rand.Float32()
		}
	case tensor.Float64:
		dst := raw.AsFloat64()
		for i := range dst {
			dst[i] = rand.Float64()
		}
	}
	return cpu.wrap(raw)
}
