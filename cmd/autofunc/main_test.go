package main

import (
	"bytes"
	"encoding/csv"
	"errors"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/born-ml/autofunc/tensor"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd(&app{logger: zap.NewNop()})
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func parseCSV(t *testing.T, s string) [][]float64 {
	t.Helper()
	cr := csv.NewReader(strings.NewReader(s))
	cr.FieldsPerRecord = -1
	recs, err := cr.ReadAll()
	require.NoError(t, err)

	rows := make([][]float64, len(recs))
	for i, rec := range recs {
		for _, f := range rec {
			v, err := strconv.ParseFloat(f, 64)
			require.NoError(t, err)
			rows[i] = append(rows[i], v)
		}
	}
	return rows
}

func TestVersion(t *testing.T) {
	out, err := run(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "autofunc "+version+"\n", out)
}

func TestCart2Sph(t *testing.T) {
	out, err := run(t, "# x,y,z\n1,0,0\n0, 0, 2\n", "cart2sph")
	require.NoError(t, err)

	rows := parseCSV(t, out)
	require.Len(t, rows, 2)
	assert.InDeltaSlice(t, []float64{1, math.Pi / 2, 0}, rows[0], 1e-15)
	assert.InDeltaSlice(t, []float64{2, 0, 0}, rows[1], 1e-15)
}

func TestSph2Cart_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rtp.csv")
	require.NoError(t, os.WriteFile(path, []byte("2,1.5707963267948966,3.141592653589793\n"), 0o600))

	out, err := run(t, "", "sph2cart", "--input", path)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{-2, 0, 0}, parseCSV(t, out)[0], 1e-12)
}

func TestRotate(t *testing.T) {
	out, err := run(t, "1,0,0\n0,1,0\n", "rotate", "--axis", "0,0,1", "--angle", strconv.FormatFloat(math.Pi/2, 'g', -1, 64))
	require.NoError(t, err)

	rows := parseCSV(t, out)
	assert.InDeltaSlice(t, []float64{0, 1, 0}, rows[0], 1e-12)
	assert.InDeltaSlice(t, []float64{-1, 0, 0}, rows[1], 1e-12)
}

func TestRotate_InvalidAxis(t *testing.T) {
	_, err := run(t, "1,0,0\n", "rotate", "--axis", "0,0,0", "--angle", "1")
	assert.True(t, errors.Is(err, tensor.ErrDomain))

	_, err = run(t, "1,0,0\n", "rotate", "--axis", "0,1")
	assert.ErrorContains(t, err, "3 components")
}

func TestRoundTrip(t *testing.T) {
	for _, precision := range []string{"float32", "float64"} {
		out, err := run(t, "0.3,-0.2,0.9\n0,0,1\n-1,0,0\n", "roundtrip", "--precision", precision)
		require.NoError(t, err, precision)
		assert.True(t, strings.HasPrefix(out, "ok: 3 rows"), out)
	}
}

func TestHarmonics(t *testing.T) {
	out, err := run(t, "0,0,1\n1,0,0\n", "harmonics", "--lmax", "1")
	require.NoError(t, err)

	rows := parseCSV(t, out)
	// (l, m) in {(0,0), (1,0), (1,1)}, two points each.
	require.Len(t, rows, 6)

	y10 := math.Sqrt(3 / (4 * math.Pi))
	assert.InDeltaSlice(t, []float64{0, 1, 0, y10, 0}, rows[2], 1e-15)
	assert.InDeltaSlice(t, []float64{1, 1, 1, -math.Sqrt(3 / (8 * math.Pi)), 0}, rows[5], 1e-15)
}

func TestHarmonics_NegativeLmax(t *testing.T) {
	_, err := run(t, "0,0,1\n", "harmonics", "--lmax", "-1")
	assert.True(t, errors.Is(err, tensor.ErrDomain))
}

func TestPlot(t *testing.T) {
	out, err := run(t, "", "plot", "--l", "3", "--m", "1", "--points", "40")
	require.NoError(t, err)
	assert.Contains(t, out, "Re Y(3,1)")

	_, err = run(t, "", "plot", "--l", "2", "--m", "3")
	assert.True(t, errors.Is(err, tensor.ErrDomain))
}

func TestConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "autofunc.yaml")
	require.NoError(t, os.WriteFile(path, []byte("precision: float32\nlmax: 2\nparallel:\n  enabled: false\n"), 0o600))

	out, err := run(t, "0,1,0\n", "cart2sph", "--config", path)
	require.NoError(t, err)
	assert.Equal(t, float64(float32(math.Pi/2)), parseCSV(t, out)[0][1])

	// Flags override the file.
	out, err = run(t, "0,1,0\n", "cart2sph", "--config", path, "--precision", "float64")
	require.NoError(t, err)
	assert.Equal(t, math.Pi/2, parseCSV(t, out)[0][1])

	out, err = run(t, "0,0,1\n", "harmonics", "--config", path)
	require.NoError(t, err)
	assert.Len(t, parseCSV(t, out), 6)
}

func TestErrors(t *testing.T) {
	_, err := run(t, "1,2\n", "cart2sph")
	assert.Error(t, err)

	_, err = run(t, "", "cart2sph")
	assert.ErrorContains(t, err, "no input rows")

	_, err = run(t, "1,x,3\n", "cart2sph")
	assert.ErrorContains(t, err, "line 1")

	_, err = run(t, "1,0,0\n", "cart2sph", "--engine", "tpu")
	assert.ErrorContains(t, err, "known engines: cpu")

	_, err = run(t, "1,0,0\n", "cart2sph", "--precision", "int8")
	assert.True(t, errors.Is(err, tensor.ErrDomain))
}

func TestWriteRows(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeRows(&buf, [][]float64{{1, 0.5, -2e-20}}))
	assert.Equal(t, "1,0.5,-2e-20\n", buf.String())
}
