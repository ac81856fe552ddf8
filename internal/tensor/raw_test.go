package tensor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRaw(t *testing.T) {
	raw, err := NewRaw(Shape{2, 3}, Float32)
	require.NoError(t, err)

	assert.True(t, raw.Shape().Equal(Shape{2, 3}))
	assert.Equal(t, Float32, raw.DType())
	assert.Equal(t, 6, raw.NumElements())
	assert.Equal(t, 24, raw.ByteSize())
	assert.Equal(t, []int{3, 1}, raw.Strides())

	_, err = NewRaw(Shape{0}, Float64)
	assert.Error(t, err)
}

func TestRaw_TypedViews(t *testing.T) {
	raw, err := NewRaw(Shape{3}, Float64)
	require.NoError(t, err)

	copy(raw.AsFloat64(), []float64{1, 2, 3})
	assert.Equal(t, []float64{1, 2, 3}, Values[float64](raw))
	assert.Equal(t, []float64{1, 2, 3}, raw.Float64s())
	assert.Panics(t, func() { raw.AsFloat32() })
	assert.Panics(t, func() { Values[float32](raw) })

	mask, err := NewRaw(Shape{2}, Bool)
	require.NoError(t, err)
	mask.AsBool()[1] = true
	assert.Equal(t, []float64{0, 1}, mask.Float64s())
}

func TestRaw_CloneIsDeep(t *testing.T) {
	raw, err := NewRaw(Shape{2}, Float32)
	require.NoError(t, err)
	raw.AsFloat32()[0] = 1

	clone := raw.Clone()
	clone.AsFloat32()[0] = 2
	assert.Equal(t, float32(1), raw.AsFloat32()[0])
}

func TestRaw_WithShape(t *testing.T) {
	raw, err := NewRaw(Shape{2, 3}, Float64)
	require.NoError(t, err)

	view, err := raw.WithShape(Shape{3, 2})
	require.NoError(t, err)
	assert.Equal(t, []int{2, 1}, view.Strides())

	_, err = raw.WithShape(Shape{4})
	assert.Error(t, err)
}

func TestDataType(t *testing.T) {
	assert.Equal(t, 4, Float32.Size())
	assert.Equal(t, 8, Float64.Size())
	assert.Equal(t, 1, Bool.Size())
	assert.Equal(t, "float64", Float64.String())
	assert.Equal(t, Float32, DataTypeOf[float32]())
	assert.True(t, Float32.IsFloat())
	assert.False(t, Bool.IsFloat())
}
