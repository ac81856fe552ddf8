package cpu

import (
	"fmt"

	"github.com/born-ml/autofunc/internal/tensor"
)

// Cat concatenates tensors along an existing dimension.
// All tensors must share dtype, rank and every dimension except dim.
func (cpu *CPUBackend) Cat(ts []tensor.Tensor, dim int) tensor.Tensor {
	if len(ts) == 0 {
		panic("cat: no tensors")
	}
	raws := make([]*tensor.RawTensor, len(ts))
	for i, t := range ts {
		raws[i] = rawOf("cat", t)
	}
	return cpu.wrap(cat(raws, dim))
}

func cat(raws []*tensor.RawTensor, dim int) *tensor.RawTensor {
	checkSameDType("cat", raws...)
	first := raws[0].Shape()
	rank := len(first)
	if rank == 0 {
		panic("cat: cannot concatenate scalars")
	}
	dim, err := tensor.NormalizeDim(dim, rank)
	if err != nil {
		panic(fmt.Sprintf("cat: %v", err))
	}

	outShape := first.Clone()
	outShape[dim] = 0
	for _, r := range raws {
		s := r.Shape()
		if len(s) != rank {
			panic(fmt.Sprintf("cat: rank mismatch %v vs %v", first, s))
		}
		for d := range s {
			if d != dim && s[d] != first[d] {
				panic(fmt.Sprintf("cat: shape mismatch %v vs %v at dimension %d", first, s, d))
			}
		}
		outShape[dim] += s[dim]
	}

	result, err := tensor.NewRaw(outShape, raws[0].DType())
	if err != nil {
		panic(fmt.Sprintf("cat: %v", err))
	}

	// Every input contributes one contiguous block per outer index.
	elemSize := raws[0].DType().Size()
	outer := tensor.Shape(first[:dim]).NumElements()
	inner := tensor.Shape(first[dim+1:]).NumElements()
	dst := result.Data()
	pos := 0
	for o := 0; o < outer; o++ {
		for _, r := range raws {
			block := r.Shape()[dim] * inner * elemSize
			src := r.Data()[o*block : (o+1)*block]
			pos += copy(dst[pos:], src)
		}
	}
	return result
}

// Stack joins tensors of identical shape along a new dimension.
func (cpu *CPUBackend) Stack(ts []tensor.Tensor, dim int) tensor.Tensor {
	if len(ts) == 0 {
		panic("stack: no tensors")
	}
	first := rawOf("stack", ts[0]).Shape()
	dim, err := tensor.NormalizeDim(dim, len(first)+1)
	if err != nil {
		panic(fmt.Sprintf("stack: %v", err))
	}

	expanded := make(tensor.Shape, 0, len(first)+1)
	expanded = append(expanded, first[:dim]...)
	expanded = append(expanded, 1)
	expanded = append(expanded, first[dim:]...)

	raws := make([]*tensor.RawTensor, len(ts))
	for i, t := range ts {
		r := rawOf("stack", t)
		if !r.Shape().Equal(first) {
			panic(fmt.Sprintf("stack: shape mismatch %v vs %v", first, r.Shape()))
		}
		view, err := r.WithShape(expanded)
		if err != nil {
			panic(fmt.Sprintf("stack: %v", err))
		}
		raws[i] = view
	}
	return cpu.wrap(cat(raws, dim))
}

// T reverses the order of all axes. Tensors of rank < 2 are returned as is.
func (cpu *CPUBackend) T(x tensor.Tensor) tensor.Tensor {
	raw := rawOf("t", x)
	rank := len(raw.Shape())
	if rank < 2 {
		return cpu.wrap(raw)
	}
	axes := make([]int, rank)
	for i := range axes {
		axes[i] = rank - 1 - i
	}
	return cpu.wrap(permute(raw, axes))
}

// permute reorders dimensions: out.shape[i] = in.shape[axes[i]].
func permute(raw *tensor.RawTensor, axes []int) *tensor.RawTensor {
	in := raw.Shape()
	inStrides := raw.Strides()
	outShape := make(tensor.Shape, len(axes))
	srcStrides := make([]int, len(axes))
	for i, a := range axes {
		outShape[i] = in[a]
		srcStrides[i] = inStrides[a]
	}

	result, err := tensor.NewRaw(outShape, raw.DType())
	if err != nil {
		panic(fmt.Sprintf("transpose: %v", err))
	}

	elemSize := raw.DType().Size()
	src := raw.Data()
	dst := result.Data()
	w := walker{shape: outShape, strides: [][]int{srcStrides}}
	offs := make([]int, 1)
	for i := 0; i < result.NumElements(); i++ {
		w.offsets(i, offs)
		copy(dst[i*elemSize:(i+1)*elemSize], src[offs[0]*elemSize:(offs[0]+1)*elemSize])
	}
	return result
}

// Narrow returns the slice [start, start+length) of x along dim.
func (cpu *CPUBackend) Narrow(x tensor.Tensor, dim, start, length int) tensor.Tensor {
	raw := rawOf("narrow", x)
	shape := raw.Shape()
	dim, err := tensor.NormalizeDim(dim, len(shape))
	if err != nil {
		panic(fmt.Sprintf("narrow: %v", err))
	}
	if start < 0 || length <= 0 || start+length > shape[dim] {
		panic(fmt.Sprintf("narrow: range [%d, %d) out of bounds for dimension %d of size %d",
			start, start+length, dim, shape[dim]))
	}

	outShape := shape.Clone()
	outShape[dim] = length
	result, err := tensor.NewRaw(outShape, raw.DType())
	if err != nil {
		panic(fmt.Sprintf("narrow: %v", err))
	}

	elemSize := raw.DType().Size()
	outer := tensor.Shape(shape[:dim]).NumElements()
	inner := tensor.Shape(shape[dim+1:]).NumElements() * elemSize
	src := raw.Data()
	dst := result.Data()
	pos := 0
	for o := 0; o < outer; o++ {
		base := (o*shape[dim] + start) * inner
		pos += copy(dst[pos:], src[base:base+length*inner])
	}
	return cpu.wrap(result)
}

// reshape returns a view of raw with a new shape; one dimension may be -1.
func reshape(raw *tensor.RawTensor, dims []int) *tensor.RawTensor {
	shape := make(tensor.Shape, len(dims))
	copy(shape, dims)

	infer := -1
	known := 1
	for i, d := range shape {
		if d == -1 {
			if infer >= 0 {
				panic(fmt.Sprintf("reshape: more than one inferred dimension in %v", dims))
			}
			infer = i
			continue
		}
		known *= d
	}
	if infer >= 0 {
		if known <= 0 || raw.NumElements()%known != 0 {
			panic(fmt.Sprintf("reshape: cannot infer dimension of %v for %d elements", dims, raw.NumElements()))
		}
		shape[infer] = raw.NumElements() / known
	}

	view, err := raw.WithShape(shape)
	if err != nil {
		panic(fmt.Sprintf("reshape: %v", err))
	}
	return view
}

// index selects element i along the first axis.
func index(raw *tensor.RawTensor, i int) *tensor.RawTensor {
	shape := raw.Shape()
	if len(shape) == 0 {
		panic("index: cannot index a scalar")
	}
	if i < 0 {
		i += shape[0]
	}
	if i < 0 || i >= shape[0] {
		panic(fmt.Sprintf("index: %d out of range for dimension of size %d", i, shape[0]))
	}

	outShape := shape[1:].Clone()
	result, err := tensor.NewRaw(outShape, raw.DType())
	if err != nil {
		panic(fmt.Sprintf("index: %v", err))
	}
	block := len(result.Data())
	copy(result.Data(), raw.Data()[i*block:(i+1)*block])
	return result
}
