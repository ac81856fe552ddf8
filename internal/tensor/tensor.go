package tensor

// Tensor is the numeric tensor interface algorithms are written against.
// Every operation returns a new tensor; receivers and arguments are never
// modified. Binary operations follow NumPy broadcasting rules and panic when
// shapes are incompatible or the operands come from different backends.
//
// Comparison operations (Lower, Greater, ...) return Bool tensors suitable as
// the condition argument of Elementwise.Where.
type Tensor interface {
	// Metadata.
	Shape() Shape
	DType() DataType
	NumElements() int

	// Element-wise binary operations.
	Add(other Tensor) Tensor
	Sub(other Tensor) Tensor
	Mul(other Tensor) Tensor
	Div(other Tensor) Tensor

	// MatMul multiplies 2D matrices: [M, K] @ [K, N] -> [M, N].
	MatMul(other Tensor) Tensor

	// Scalar operations.
	AddScalar(s float64) Tensor
	SubScalar(s float64) Tensor
	MulScalar(s float64) Tensor
	DivScalar(s float64) Tensor
	RSubScalar(s float64) Tensor // s - x
	RDivScalar(s float64) Tensor // s / x
	Pow(exp float64) Tensor

	// Unary operations.
	Neg() Tensor
	Abs() Tensor

	// Comparison operations.
	Lower(other Tensor) Tensor
	LowerScalar(s float64) Tensor
	Greater(other Tensor) Tensor
	GreaterScalar(s float64) Tensor

	// Shape operations.
	Reshape(shape ...int) Tensor // One dimension may be -1.
	Index(i int) Tensor          // Select along the first axis, dropping it.
	Unbind() []Tensor            // Split along the first axis.

	// Host access.
	Float64s() []float64 // Row-major float64 copy.
	Item() float64       // Value of a single-element tensor.
}
