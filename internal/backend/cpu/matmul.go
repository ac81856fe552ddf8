package cpu

import (
	"fmt"

	"github.com/born-ml/autofunc/internal/parallel"
	"github.com/born-ml/autofunc/internal/tensor"
)

// matmul multiplies 2D matrices: [M, K] @ [K, N] -> [M, N].
func (cpu *CPUBackend) matmul(a, b *tensor.RawTensor) *tensor.RawTensor {
	checkFloat("matmul", a)
	checkSameDType("matmul", a, b)

	as, bs := a.Shape(), b.Shape()
	if len(as) != 2 || len(bs) != 2 {
		panic(fmt.Sprintf("matmul: expected 2D tensors, got %v and %v", as, bs))
	}
	if as[1] != bs[0] {
		panic(fmt.Sprintf("matmul: inner dimensions differ: %v @ %v", as, bs))
	}

	result := cpu.alloc("matmul", tensor.Shape{as[0], bs[1]}, a.DType())
	switch a.DType() {
	case tensor.Float32:
		matmulInto[float32](result, a, b, cpu.parallel)
	case tensor.Float64:
		matmulInto[float64](result, a, b, cpu.parallel)
	}
	return result
}

// matmulInto uses the cache-friendly i-k-j loop order, parallel over rows.
func matmulInto[T tensor.DType](result, a, b *tensor.RawTensor, cfg parallel.Config) {
	m, k := a.Shape()[0], a.Shape()[1]
	n := b.Shape()[1]
	av := tensor.Values[T](a)
	bv := tensor.Values[T](b)
	cv := tensor.Values[T](result)

	rowCfg := cfg
	rowCfg.MinChunkSize = max(1, cfg.MinChunkSize/max(1, k*n))
	parallel.For(m, func(i int) {
		row := cv[i*n : (i+1)*n]
		for p := 0; p < k; p++ {
			aip := av[i*k+p]
			brow := bv[p*n : (p+1)*n]
			for j := range row {
				row[j] += aip * brow[j]
			}
		}
	}, rowCfg)
}
