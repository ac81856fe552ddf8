package cpu

import (
	"math"
	"testing"

	"github.com/born-ml/autofunc/internal/tensor"
	"github.com/stretchr/testify/assert"
)

func TestNorm(t *testing.T) {
	b := New(tensor.Float64)
	x := mustTensor(t, b, []float64{3, 4})

	n := b.Norm(x)
	assert.Empty(t, n.Shape())
	assert.Equal(t, 5.0, n.Item())

	m := mustTensor(t, b, [][]float64{{1, 2}, {2, 4}})
	assert.Equal(t, 5.0, b.Norm(m).Item())
}

func TestNormDim(t *testing.T) {
	b := New(tensor.Float32)
	x := mustTensor(t, b, [][]float64{{3, 4, 0}, {0, 0, 2}})

	rows := b.NormDim(x, 1, false)
	assert.True(t, rows.Shape().Equal(tensor.Shape{2}))
	assert.Equal(t, []float64{5, 2}, rows.Float64s())

	kept := b.NormDim(x, -1, true)
	assert.True(t, kept.Shape().Equal(tensor.Shape{2, 1}))

	cols := b.NormDim(x, 0, false)
	assert.True(t, cols.Shape().Equal(tensor.Shape{3}))
	assert.InDelta(t, 3.0, cols.Float64s()[0], epsilon)
	assert.InDelta(t, 4.0, cols.Float64s()[1], epsilon)
	assert.InDelta(t, 2.0, cols.Float64s()[2], epsilon)

	assert.Equal(t, tensor.Float32, rows.DType())
	assert.Panics(t, func() { b.NormDim(x, 2, false) })
}

func TestNormDim_NormalizesRows(t *testing.T) {
	b := New(tensor.Float64)
	x := mustTensor(t, b, [][]float64{{1, 1, 1}, {0, 2, 0}})

	unit := x.Div(b.NormDim(x, 1, true))
	for _, v := range b.NormDim(unit, 1, false).Float64s() {
		if math.Abs(v-1) > epsilon {
			t.Errorf("row norm = %f, expected 1", v)
		}
	}
}
