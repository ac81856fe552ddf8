package cpu

import (
	"fmt"
	"math"

	"github.com/born-ml/autofunc/internal/parallel"
	"github.com/born-ml/autofunc/internal/tensor"
)

// Default tolerances of AllClose (NumPy defaults).
const (
	DefaultRTol = 1e-5
	DefaultATol = 1e-8
)

// Sqrt computes element-wise square root. Negative inputs yield NaN.
func (cpu *CPUBackend) Sqrt(x tensor.Tensor) tensor.Tensor {
	return cpu.wrap(cpu.unary("sqrt", rawOf("sqrt", x), math.Sqrt))
}

// Sin computes element-wise sine.
func (cpu *CPUBackend) Sin(x tensor.Tensor) tensor.Tensor {
	return cpu.wrap(cpu.unary("sin", rawOf("sin", x), math.Sin))
}

// Cos computes element-wise cosine.
func (cpu *CPUBackend) Cos(x tensor.Tensor) tensor.Tensor {
	return cpu.wrap(cpu.unary("cos", rawOf("cos", x), math.Cos))
}

// Atan2 computes the element-wise arc tangent of y/x using the signs of both
// arguments to pick the quadrant. Atan2(0, 0) is 0.
func (cpu *CPUBackend) Atan2(y, x tensor.Tensor) tensor.Tensor {
	return cpu.binary("atan2", rawOf("atan2", y), rawOf("atan2", x), atan2Op[float32], atan2Op[float64])
}

// Where selects x where condition is true and y elsewhere, with broadcasting
// over all three operands. condition must be a Bool tensor.
func (cpu *CPUBackend) Where(condition, x, y tensor.Tensor) tensor.Tensor {
	c := rawOf("where", condition)
	a := rawOf("where", x)
	b := rawOf("where", y)
	if c.DType() != tensor.Bool {
		panic(fmt.Sprintf("where: condition must be bool, got %s", c.DType()))
	}
	checkFloat("where", a)
	checkSameDType("where", a, b)

	outShape, _ := broadcastShape("where", c.Shape(), a.Shape(), b.Shape())
	result := cpu.alloc("where", outShape, a.DType())

	switch a.DType() {
	case tensor.Float32:
		whereInto[float32](result, c, a, b, cpu.parallel)
	case tensor.Float64:
		whereInto[float64](result, c, a, b, cpu.parallel)
	}
	return cpu.wrap(result)
}

func whereInto[T tensor.DType](result, c, a, b *tensor.RawTensor, cfg parallel.Config) {
	dst := tensor.Values[T](result)
	cv := c.AsBool()
	av := tensor.Values[T](a)
	bv := tensor.Values[T](b)
	w := newWalker(result.Shape(), c.Shape(), a.Shape(), b.Shape())
	parallel.ForRange(len(dst), func(start, end int) {
		offs := make([]int, 3)
		for i := start; i < end; i++ {
			w.offsets(i, offs)
			if cv[offs[0]] {
				dst[i] = av[offs[1]]
			} else {
				dst[i] = bv[offs[2]]
			}
		}
	}, cfg)
}

// AllClose reports whether |a - b| <= atol + rtol*|b| holds element-wise
// using the NumPy default tolerances.
func (cpu *CPUBackend) AllClose(a, b tensor.Tensor) bool {
	return cpu.AllCloseTol(a, b, DefaultRTol, DefaultATol)
}

// AllCloseTol reports whether |a - b| <= atol + rtol*|b| holds element-wise
// after broadcasting. NaN never compares close; infinities are close only
// when equal.
func (cpu *CPUBackend) AllCloseTol(a, b tensor.Tensor, rtol, atol float64) bool {
	ra := rawOf("allclose", a)
	rb := rawOf("allclose", b)
	checkFloat("allclose", ra)
	checkFloat("allclose", rb)

	outShape, _ := broadcastShape("allclose", ra.Shape(), rb.Shape())
	av := ra.Float64s()
	bv := rb.Float64s()
	w := newWalker(outShape, ra.Shape(), rb.Shape())
	offs := make([]int, 2)
	for i := 0; i < outShape.NumElements(); i++ {
		w.offsets(i, offs)
		x, y := av[offs[0]], bv[offs[1]]
		if x == y {
			continue
		}
		if math.IsNaN(x) || math.IsNaN(y) || math.IsInf(x, 0) || math.IsInf(y, 0) {
			return false
		}
		if math.Abs(x-y) > atol+rtol*math.Abs(y) {
			return false
		}
	}
	return true
}
