package cpu

import (
	"fmt"
	"math"

	"github.com/born-ml/autofunc/internal/tensor"
)

// Norm returns the Frobenius norm of x as a scalar tensor.
// Accumulation is done in float64.
func (cpu *CPUBackend) Norm(x tensor.Tensor) tensor.Tensor {
	raw := rawOf("norm", x)
	checkFloat("norm", raw)

	var sum float64
	for _, v := range raw.Float64s() {
		sum += v * v
	}
	return cpu.wrap(cpu.scalarRaw(raw.DType(), math.Sqrt(sum)))
}

// NormDim returns the Euclidean norm of x along dim.
// With keepDim the reduced dimension is kept with size 1.
func (cpu *CPUBackend) NormDim(x tensor.Tensor, dim int, keepDim bool) tensor.Tensor {
	raw := rawOf("norm_dim", x)
	checkFloat("norm_dim", raw)

	shape := raw.Shape()
	dim, err := tensor.NormalizeDim(dim, len(shape))
	if err != nil {
		panic(fmt.Sprintf("norm_dim: %v", err))
	}

	outer := tensor.Shape(shape[:dim]).NumElements()
	size := shape[dim]
	inner := tensor.Shape(shape[dim+1:]).NumElements()

	sums := make([]float64, outer*inner)
	src := raw.Float64s()
	for o := 0; o < outer; o++ {
		for d := 0; d < size; d++ {
			base := (o*size + d) * inner
			for i := 0; i < inner; i++ {
				v := src[base+i]
				sums[o*inner+i] += v * v
			}
		}
	}
	for i, s := range sums {
		sums[i] = math.Sqrt(s)
	}

	outShape := make(tensor.Shape, 0, len(shape))
	outShape = append(outShape, shape[:dim]...)
	if keepDim {
		outShape = append(outShape, 1)
	}
	outShape = append(outShape, shape[dim+1:]...)

	result := cpu.alloc("norm_dim", outShape, raw.DType())
	switch raw.DType() {
	case tensor.Float32:
		dst := result.AsFloat32()
		for i, v := range sums {
			dst[i] = float32(v)
		}
	case tensor.Float64:
		copy(result.AsFloat64(), sums)
	}
	return cpu.wrap(result)
}
