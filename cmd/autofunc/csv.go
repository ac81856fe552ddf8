package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/born-ml/autofunc/tensor"
)

// readVectors parses CSV rows of three numbers. Blank lines and lines
// starting with # are skipped.
func readVectors(r io.Reader) ([][]float64, error) {
	cr := csv.NewReader(r)
	cr.Comment = '#'
	cr.FieldsPerRecord = 3
	cr.TrimLeadingSpace = true

	var rows [][]float64
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read vectors: %w", err)
		}
		row := make([]float64, len(rec))
		for i, field := range rec {
			v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
			if err != nil {
				line, _ := cr.FieldPos(i)
				return nil, fmt.Errorf("read vectors: line %d: %w", line, err)
			}
			row[i] = v
		}
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("read vectors: no input rows")
	}
	return rows, nil
}

// writeRows writes rows as CSV with the shortest exact float formatting.
func writeRows(w io.Writer, rows [][]float64) error {
	cw := csv.NewWriter(w)
	rec := make([]string, 0, 8)
	for _, row := range rows {
		rec = rec[:0]
		for _, v := range row {
			rec = append(rec, strconv.FormatFloat(v, 'g', -1, 64))
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// matrixRows splits a [n, k] tensor into host rows.
func matrixRows(t tensor.Tensor) [][]float64 {
	s := t.Shape()
	flat := t.Float64s()
	rows := make([][]float64, s[0])
	for i := range rows {
		rows[i] = flat[i*s[1] : (i+1)*s[1]]
	}
	return rows
}

// loadInput reads the --input vectors into a tensor of the active profile.
func (a *app) loadInput(cmd *cobra.Command) (tensor.Tensor, error) {
	var r io.Reader = cmd.InOrStdin()
	if a.input != "-" {
		f, err := os.Open(a.input)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}

	rows, err := readVectors(r)
	if err != nil {
		return nil, err
	}
	return a.allocator().Tensor(rows)
}

func (a *app) allocator() tensor.Allocator {
	return a.profile.Mapping()[tensor.Allocation].(tensor.Allocator)
}

func (a *app) elementwise() tensor.Elementwise {
	return a.profile.Mapping()[tensor.ElementwiseMath].(tensor.Elementwise)
}
