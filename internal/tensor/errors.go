package tensor

import (
	"errors"
	"fmt"
	"strings"
)

// Error categories. Use errors.Is to classify a returned error.
var (
	ErrContractViolation = errors.New("contract violation")
	ErrShape             = errors.New("shape error")
	ErrDomain            = errors.New("domain error")
)

// ContractError reports a binding failure: a required contract has no
// implementation, its implementation lacks operations, or an algorithm needs
// an operation no contract declares.
type ContractError struct {
	Algorithm  string   // Algorithm being bound, if known
	Contract   Contract // Contract involved (meaningless when Operations name undeclared ops)
	Operations []string // Missing or undeclared operations
	Reason     string   // Additional details
}

// Error implements the error interface.
func (e *ContractError) Error() string {
	var b strings.Builder
	b.WriteString("contract violation")
	if e.Algorithm != "" {
		fmt.Fprintf(&b, ": algorithm %q", e.Algorithm)
	}
	fmt.Fprintf(&b, ": %s: %s", e.Contract, e.Reason)
	return b.String()
}

// Is reports whether target is ErrContractViolation.
func (e *ContractError) Is(target error) bool {
	return target == ErrContractViolation
}

// ShapeError reports an input tensor whose shape does not match what a kernel
// requires.
type ShapeError struct {
	Op   string // Operation that rejected the input
	Want string // Expected shape, e.g. "[n, 3]"
	Got  Shape  // Actual shape
}

// Error implements the error interface.
func (e *ShapeError) Error() string {
	return fmt.Sprintf("%s: expected shape %s, got %v", e.Op, e.Want, e.Got)
}

// Is reports whether target is ErrShape.
func (e *ShapeError) Is(target error) bool {
	return target == ErrShape
}

// DomainError reports an argument outside the domain of an operation.
type DomainError struct {
	Op      string // Operation that rejected the argument
	Arg     string // Argument name
	Value   any    // Offending value
	Details string // Additional details
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: invalid %s %v: %s", e.Op, e.Arg, e.Value, e.Details)
	}
	return fmt.Sprintf("%s: invalid %s %v", e.Op, e.Arg, e.Value)
}

// Is reports whether target is ErrDomain.
func (e *DomainError) Is(target error) bool {
	return target == ErrDomain
}

// CheckVectors returns a *ShapeError unless x has shape [n, 3].
func CheckVectors(op string, x Tensor) error {
	if x == nil {
		return &ShapeError{Op: op, Want: "[n, 3]"}
	}
	s := x.Shape()
	if len(s) != 2 || s[1] != 3 {
		return &ShapeError{Op: op, Want: "[n, 3]", Got: s.Clone()}
	}
	return nil
}

// CheckPrecision returns a *DomainError unless x holds elements of type want.
func CheckPrecision(op string, x Tensor, want DataType) error {
	if got := x.DType(); got != want {
		return &DomainError{Op: op, Arg: "dtype", Value: got, Details: fmt.Sprintf("engine precision is %s", want)}
	}
	return nil
}
