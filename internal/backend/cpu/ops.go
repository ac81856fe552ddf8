package cpu

import (
	"fmt"
	"math"

	"github.com/born-ml/autofunc/internal/parallel"
	"github.com/born-ml/autofunc/internal/tensor"
)

func addOp[T tensor.DType](x, y T) T  { return x + y }
func subOp[T tensor.DType](x, y T) T  { return x - y }
func mulOp[T tensor.DType](x, y T) T  { return x * y }
func divOp[T tensor.DType](x, y T) T  { return x / y }
func rsubOp[T tensor.DType](x, y T) T { return y - x }
func rdivOp[T tensor.DType](x, y T) T { return y / x }
func powOp[T tensor.DType](x, y T) T  { return T(math.Pow(float64(x), float64(y))) }

func atan2Op[T tensor.DType](y, x T) T { return T(math.Atan2(float64(y), float64(x))) }

func negFn(x float64) float64 { return -x }
func absFn(x float64) float64 { return math.Abs(x) }

func lowerFn(x, y float64) bool   { return x < y }
func greaterFn(x, y float64) bool { return x > y }

// walker maps flat output indices to offsets into broadcast operands.
type walker struct {
	shape   tensor.Shape
	strides [][]int
}

func newWalker(out tensor.Shape, operands ...tensor.Shape) walker {
	w := walker{shape: out, strides: make([][]int, len(operands))}
	for k, s := range operands {
		w.strides[k] = tensor.BroadcastStrides(s, out)
	}
	return w
}

// offsets fills offs[k] with the offset of flat index i into operand k.
func (w walker) offsets(i int, offs []int) {
	for k := range offs {
		offs[k] = 0
	}
	rem := i
	for d := len(w.shape) - 1; d >= 0; d-- {
		c := rem % w.shape[d]
		rem /= w.shape[d]
		for k := range offs {
			offs[k] += c * w.strides[k][d]
		}
	}
}

// broadcastShape returns the broadcast output shape or panics with an
// op-prefixed message.
func broadcastShape(op string, shapes ...tensor.Shape) (tensor.Shape, bool) {
	out := shapes[0]
	needs := false
	for _, s := range shapes[1:] {
		var b bool
		var err error
		out, b, err = tensor.BroadcastShapes(out, s)
		if err != nil {
			panic(fmt.Sprintf("%s: %v", op, err))
		}
		needs = needs || b
	}
	return out, needs
}

// binary applies an element-wise binary function with broadcasting.
func (cpu *CPUBackend) binary(op string, a, b *tensor.RawTensor,
	f32 func(x, y float32) float32, f64 func(x, y float64) float64,
) *Tensor {
	checkFloat(op, a)
	checkSameDType(op, a, b)

	outShape, needsBroadcast := broadcastShape(op, a.Shape(), b.Shape())
	result := cpu.alloc(op, outShape, a.DType())

	switch a.DType() {
	case tensor.Float32:
		binaryInto(result, a, b, needsBroadcast, f32, cpu.parallel)
	case tensor.Float64:
		binaryInto(result, a, b, needsBroadcast, f64, cpu.parallel)
	}
	return cpu.wrap(result)
}

func binaryInto[T tensor.DType](result, a, b *tensor.RawTensor, needsBroadcast bool, f func(x, y T) T, cfg parallel.Config) {
	dst := tensor.Values[T](result)
	av := tensor.Values[T](a)
	bv := tensor.Values[T](b)

	if !needsBroadcast {
		parallel.ForRange(len(dst), func(start, end int) {
			for i := start; i < end; i++ {
				dst[i] = f(av[i], bv[i])
			}
		}, cfg)
		return
	}

	w := newWalker(result.Shape(), a.Shape(), b.Shape())
	parallel.ForRange(len(dst), func(start, end int) {
		offs := make([]int, 2)
		for i := start; i < end; i++ {
			w.offsets(i, offs)
			dst[i] = f(av[offs[0]], bv[offs[1]])
		}
	}, cfg)
}

// scalar applies f(x, s) element-wise.
func (cpu *CPUBackend) scalar(op string, x *tensor.RawTensor, s float64,
	f32 func(x, y float32) float32, f64 func(x, y float64) float64,
) *Tensor {
	checkFloat(op, x)
	result := cpu.alloc(op, x.Shape(), x.DType())

	switch x.DType() {
	case tensor.Float32:
		scalarInto(result, x, float32(s), f32, cpu.parallel)
	case tensor.Float64:
		scalarInto(result, x, s, f64, cpu.parallel)
	}
	return cpu.wrap(result)
}

func scalarInto[T tensor.DType](result, x *tensor.RawTensor, s T, f func(x, y T) T, cfg parallel.Config) {
	dst := tensor.Values[T](result)
	src := tensor.Values[T](x)
	parallel.ForRange(len(dst), func(start, end int) {
		for i := start; i < end; i++ {
			dst[i] = f(src[i], s)
		}
	}, cfg)
}

// unary applies f element-wise. float32 inputs are evaluated in float64 and
// rounded back.
func (cpu *CPUBackend) unary(op string, x *tensor.RawTensor, f func(float64) float64) *tensor.RawTensor {
	checkFloat(op, x)
	result := cpu.alloc(op, x.Shape(), x.DType())

	switch x.DType() {
	case tensor.Float32:
		unaryInto[float32](result, x, f, cpu.parallel)
	case tensor.Float64:
		unaryInto[float64](result, x, f, cpu.parallel)
	}
	return result
}

func unaryInto[T tensor.DType](result, x *tensor.RawTensor, f func(float64) float64, cfg parallel.Config) {
	dst := tensor.Values[T](result)
	src := tensor.Values[T](x)
	parallel.ForRange(len(dst), func(start, end int) {
		for i := start; i < end; i++ {
			dst[i] = T(f(float64(src[i])))
		}
	}, cfg)
}

// compare evaluates f with broadcasting and returns a Bool tensor.
func (cpu *CPUBackend) compare(op string, a, b *tensor.RawTensor, f func(x, y float64) bool) *tensor.RawTensor {
	checkFloat(op, a)
	checkSameDType(op, a, b)

	outShape, _ := broadcastShape(op, a.Shape(), b.Shape())
	result := cpu.alloc(op, outShape, tensor.Bool)

	switch a.DType() {
	case tensor.Float32:
		compareInto[float32](result, a, b, f, cpu.parallel)
	case tensor.Float64:
		compareInto[float64](result, a, b, f, cpu.parallel)
	}
	return result
}

func compareInto[T tensor.DType](result, a, b *tensor.RawTensor, f func(x, y float64) bool, cfg parallel.Config) {
	dst := result.AsBool()
	av := tensor.Values[T](a)
	bv := tensor.Values[T](b)
	w := newWalker(result.Shape(), a.Shape(), b.Shape())
	parallel.ForRange(len(dst), func(start, end int) {
		offs := make([]int, 2)
		for i := start; i < end; i++ {
			w.offsets(i, offs)
			dst[i] = f(float64(av[offs[0]]), float64(bv[offs[1]]))
		}
	}, cfg)
}

// scalarRaw returns a 0-dimensional tensor holding v.
func (cpu *CPUBackend) scalarRaw(dtype tensor.DataType, v float64) *tensor.RawTensor {
	raw := cpu.alloc("scalar", tensor.Shape{}, dtype)
	switch dtype {
	case tensor.Float32:
		raw.AsFloat32()[0] = float32(v)
	case tensor.Float64:
		raw.AsFloat64()[0] = v
	default:
		panic(fmt.Sprintf("scalar: unsupported dtype %s", dtype))
	}
	return raw
}
