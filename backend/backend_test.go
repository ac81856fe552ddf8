// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package backend_test

import (
	"errors"
	"testing"

	"github.com/born-ml/autofunc/backend"
	"github.com/born-ml/autofunc/backend/cpu"
	"github.com/born-ml/autofunc/tensor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	p, err := backend.Lookup("cpu", tensor.Float32)
	require.NoError(t, err)
	assert.Same(t, cpu.Float32(), p)

	p, err = backend.Parse("CPU", "f64")
	require.NoError(t, err)
	assert.Same(t, cpu.Float64(), p)
}

func TestLookup_Errors(t *testing.T) {
	_, err := backend.Lookup("cuda", tensor.Float32)
	assert.True(t, errors.Is(err, tensor.ErrDomain))
	assert.Contains(t, err.Error(), "known engines: cpu")

	_, err = backend.Parse("cpu", "half")
	assert.True(t, errors.Is(err, tensor.ErrDomain))

	_, err = backend.Lookup("cpu", tensor.Bool)
	assert.True(t, errors.Is(err, tensor.ErrDomain))
}
