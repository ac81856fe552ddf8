package cpu

import (
	"math"
	"testing"

	"github.com/born-ml/autofunc/internal/tensor"
	"github.com/stretchr/testify/assert"
)

func TestBinaryOps(t *testing.T) {
	b := New(tensor.Float64)
	x := mustTensor(t, b, []float64{1, 2, 3, 4})
	y := mustTensor(t, b, []float64{2, 4, 6, 8})

	tests := []struct {
		name string
		got  tensor.Tensor
		want []float64
	}{
		{"add", x.Add(y), []float64{3, 6, 9, 12}},
		{"sub", x.Sub(y), []float64{-1, -2, -3, -4}},
		{"mul", x.Mul(y), []float64{2, 8, 18, 32}},
		{"div", x.Div(y), []float64{0.5, 0.5, 0.5, 0.5}},
		{"add scalar", x.AddScalar(1), []float64{2, 3, 4, 5}},
		{"sub scalar", x.SubScalar(1), []float64{0, 1, 2, 3}},
		{"mul scalar", x.MulScalar(-2), []float64{-2, -4, -6, -8}},
		{"div scalar", x.DivScalar(2), []float64{0.5, 1, 1.5, 2}},
		{"rsub scalar", x.RSubScalar(1), []float64{0, -1, -2, -3}},
		{"rdiv scalar", x.RDivScalar(12), []float64{12, 6, 4, 3}},
		{"pow", x.Pow(2), []float64{1, 4, 9, 16}},
		{"neg", x.Neg(), []float64{-1, -2, -3, -4}},
		{"abs", x.Neg().Abs(), []float64{1, 2, 3, 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got.Float64s())
		})
	}
}

func TestBinaryOps_DoNotModifyOperands(t *testing.T) {
	b := New(tensor.Float32)
	x := mustTensor(t, b, []float64{1, 2, 3})
	y := mustTensor(t, b, []float64{1, 1, 1})

	_ = x.Add(y)
	_ = x.MulScalar(3)
	_ = x.Neg()

	assert.Equal(t, []float64{1, 2, 3}, x.Float64s())
	assert.Equal(t, []float64{1, 1, 1}, y.Float64s())
}

func TestBroadcasting(t *testing.T) {
	b := New(tensor.Float64)

	tests := []struct {
		name  string
		a, b  any
		shape tensor.Shape
		want  []float64
	}{
		{
			name:  "column plus row",
			a:     [][]float64{{1}, {2}, {3}},
			b:     [][]float64{{10, 20}},
			shape: tensor.Shape{3, 2},
			want:  []float64{11, 21, 12, 22, 13, 23},
		},
		{
			name:  "matrix plus vector",
			a:     [][]float64{{1, 2}, {3, 4}},
			b:     []float64{10, 20},
			shape: tensor.Shape{2, 2},
			want:  []float64{11, 22, 13, 24},
		},
		{
			name:  "scalar plus vector",
			a:     5.0,
			b:     []float64{1, 2, 3},
			shape: tensor.Shape{3},
			want:  []float64{6, 7, 8},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mustTensor(t, b, tt.a).Add(mustTensor(t, b, tt.b))
			assert.True(t, got.Shape().Equal(tt.shape), "shape %v", got.Shape())
			assert.Equal(t, tt.want, got.Float64s())
		})
	}
}

func TestBroadcasting_IncompatiblePanics(t *testing.T) {
	b := New(tensor.Float64)
	x := b.Ones(tensor.Shape{3, 4})
	y := b.Ones(tensor.Shape{3, 5})
	assert.PanicsWithValue(t,
		"add: shapes not compatible for broadcasting: [3 4] vs [3 5] (dimension 1: 4 vs 5)",
		func() { x.Add(y) })
}

func TestDTypeMismatchPanics(t *testing.T) {
	x := New(tensor.Float32).Ones(tensor.Shape{2})
	y := New(tensor.Float64).Ones(tensor.Shape{2})
	assert.Panics(t, func() { x.Mul(y) })
}

func TestFloat32Arithmetic(t *testing.T) {
	b := New(tensor.Float32)
	x := mustTensor(t, b, []float32{0.1, 0.2})
	got := x.Add(x).Float64s()

	want := []float64{float64(float32(0.1) + float32(0.1)), float64(float32(0.2) + float32(0.2))}
	assert.Equal(t, want, got)
	assert.Equal(t, tensor.Float32, x.Add(x).DType())
}

func TestComparison(t *testing.T) {
	b := New(tensor.Float64)
	x := mustTensor(t, b, []float64{1, 2, 3})
	y := mustTensor(t, b, []float64{2, 2, 2})

	lower := x.Lower(y)
	assert.Equal(t, tensor.Bool, lower.DType())
	assert.Equal(t, []float64{1, 0, 0}, lower.Float64s())
	assert.Equal(t, []float64{0, 0, 1}, x.Greater(y).Float64s())
	assert.Equal(t, []float64{1, 1, 0}, x.LowerScalar(2.5).Float64s())
	assert.Equal(t, []float64{0, 1, 1}, x.GreaterScalar(1).Float64s())
}

func TestMatMul(t *testing.T) {
	b := New(tensor.Float64)
	a := mustTensor(t, b, [][]float64{{1, 2, 3}, {4, 5, 6}})
	m := mustTensor(t, b, [][]float64{{7, 8}, {9, 10}, {11, 12}})

	got := a.MatMul(m)
	assert.True(t, got.Shape().Equal(tensor.Shape{2, 2}))
	assert.Equal(t, []float64{58, 64, 139, 154}, got.Float64s())

	assert.Panics(t, func() { a.MatMul(a) })
	assert.Panics(t, func() { a.MatMul(b.Ones(tensor.Shape{3})) })
}

func TestPow_Fractional(t *testing.T) {
	b := New(tensor.Float64)
	got := mustTensor(t, b, []float64{4, 9}).Pow(0.5).Float64s()
	for i, want := range []float64{2, 3} {
		if math.Abs(got[i]-want) > epsilon {
			t.Errorf("pow(%d) = %f, expected %f", i, got[i], want)
		}
	}
}
