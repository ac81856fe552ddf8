package main

import (
	"fmt"
	"math"
	"strings"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/born-ml/autofunc/compose"
	"github.com/born-ml/autofunc/coord"
	"github.com/born-ml/autofunc/harmonics"
	"github.com/born-ml/autofunc/tensor"
)

// transform is a bound kernel mapping [n, 3] rows to [n, 3] rows.
type transform interface {
	Forward(xyz tensor.Tensor) (tensor.Tensor, error)
}

// runTransform reads the input, applies t and writes the rows.
func (a *app) runTransform(cmd *cobra.Command, name string, t transform) error {
	in, err := a.loadInput(cmd)
	if err != nil {
		return err
	}
	out, err := t.Forward(in)
	if err != nil {
		return err
	}
	a.logger.Debug("transformed", zap.String("kernel", name), zap.Int("rows", in.Shape()[0]))
	return writeRows(cmd.OutOrStdout(), matrixRows(out))
}

func newCart2SphCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "cart2sph",
		Short: "Convert x,y,z rows to r,theta,phi",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c2s, err := compose.Instantiate(coord.Cart2SphAlgorithm, a.profile, compose.NoParams{}, compose.WithLogger(a.logger))
			if err != nil {
				return err
			}
			return a.runTransform(cmd, "cart2sph", c2s)
		},
	}
}

func newSph2CartCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "sph2cart",
		Short: "Convert r,theta,phi rows to x,y,z",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s2c, err := compose.Instantiate(coord.Sph2CartAlgorithm, a.profile, compose.NoParams{}, compose.WithLogger(a.logger))
			if err != nil {
				return err
			}
			return a.runTransform(cmd, "sph2cart", s2c)
		},
	}
}

func newRotateCmd(a *app) *cobra.Command {
	var (
		axis  []float64
		angle float64
	)
	cmd := &cobra.Command{
		Use:   "rotate",
		Short: "Rotate x,y,z rows about an axis",
		Long: `Rotates every input vector by --angle radians about --axis.

Example:
  echo 1,0,0 | autofunc rotate --axis 0,0,1 --angle 1.5707963267948966`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(axis) != 3 {
				return fmt.Errorf("--axis needs 3 components, got %d", len(axis))
			}
			params := coord.RotationParams{Axis: [3]float64(axis), Angle: angle}
			rot, err := compose.Instantiate(coord.RotationAlgorithm, a.profile, params, compose.WithLogger(a.logger))
			if err != nil {
				return err
			}
			return a.runTransform(cmd, "rotation", rot)
		},
	}
	cmd.Flags().Float64SliceVar(&axis, "axis", []float64{0, 0, 1}, "Rotation axis x,y,z")
	cmd.Flags().Float64Var(&angle, "angle", 0, "Rotation angle in radians")
	return cmd
}

func newRoundTripCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "roundtrip",
		Short: "Check that sph2cart(cart2sph(v)) reproduces the input",
		Long: `Converts the input to spherical coordinates and back and compares the
result with the input. The absolute tolerance is the configured tolerance
in units of the backend's machine epsilon.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := a.loadInput(cmd)
			if err != nil {
				return err
			}
			c2s, err := compose.Instantiate(coord.Cart2SphAlgorithm, a.profile, compose.NoParams{}, compose.WithLogger(a.logger))
			if err != nil {
				return err
			}
			s2c, err := compose.Instantiate(coord.Sph2CartAlgorithm, a.profile, compose.NoParams{}, compose.WithLogger(a.logger))
			if err != nil {
				return err
			}
			rtp, err := c2s.Forward(in)
			if err != nil {
				return err
			}
			back, err := s2c.Forward(rtp)
			if err != nil {
				return err
			}

			atol := a.cfg.Tolerance * a.profile.Epsilon()
			var maxErr float64
			want, got := in.Float64s(), back.Float64s()
			for i := range want {
				maxErr = max(maxErr, math.Abs(want[i]-got[i]))
			}
			a.logger.Debug("round trip", zap.Float64("max_error", maxErr), zap.Float64("atol", atol))

			if !a.elementwise().AllCloseTol(in, back, 0, atol) {
				return fmt.Errorf("round trip failed: max error %g exceeds %g", maxErr, atol)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ok: %d rows, max error %g (atol %g)\n", len(want)/3, maxErr, atol)
			return nil
		},
	}
}

// lmaxFlag returns --lmax when set and the configured lmax otherwise.
func (a *app) lmaxFlag(cmd *cobra.Command, lmax int) int {
	if cmd.Flags().Changed("lmax") {
		return lmax
	}
	return a.cfg.Lmax
}

func newHarmonicsCmd(a *app) *cobra.Command {
	var lmax int
	cmd := &cobra.Command{
		Use:   "harmonics",
		Short: "Evaluate solid harmonics of x,y,z rows",
		Long: `Evaluates r^l·Y_lm for every input vector and writes one CSV row
"point,l,m,re,im" per vector, degree and order m >= 0.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sh, err := compose.Instantiate(harmonics.Algorithm, a.profile, a.lmaxFlag(cmd, lmax), compose.WithLogger(a.logger))
			if err != nil {
				return err
			}
			in, err := a.loadInput(cmd)
			if err != nil {
				return err
			}
			y, err := sh.Forward(in)
			if err != nil {
				return err
			}

			n := in.Shape()[0]
			var rows [][]float64
			for l := 0; l <= sh.Lmax(); l++ {
				for m := 0; m <= l; m++ {
					re, im, err := sh.Component(y, l, m)
					if err != nil {
						return err
					}
					rv, iv := re.Float64s(), im.Float64s()
					for k := range n {
						rows = append(rows, []float64{float64(k), float64(l), float64(m), rv[k], iv[k]})
					}
				}
			}
			a.logger.Debug("evaluated harmonics", zap.Int("lmax", sh.Lmax()), zap.Int("points", n))
			return writeRows(cmd.OutOrStdout(), rows)
		},
	}
	cmd.Flags().IntVar(&lmax, "lmax", 0, "Maximum degree (default from config)")
	return cmd
}

func newPlotCmd(a *app) *cobra.Command {
	var (
		lmax, l, m, points int
		phi                float64
		imag               bool
	)
	cmd := &cobra.Command{
		Use:   "plot",
		Short: "Plot one harmonic along a meridian",
		Long: `Plots the real (or, with --imag, imaginary) part of Y_lm on the unit
sphere for theta from 0 to π at fixed --phi.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if points < 2 {
				return fmt.Errorf("--points must be at least 2, got %d", points)
			}
			deg := max(a.lmaxFlag(cmd, lmax), l)
			sh, err := compose.Instantiate(harmonics.Algorithm, a.profile, deg, compose.WithLogger(a.logger))
			if err != nil {
				return err
			}

			xyz := make([][]float64, points)
			for k := range xyz {
				theta := math.Pi * float64(k) / float64(points-1)
				st, ct := math.Sincos(theta)
				sp, cp := math.Sincos(phi)
				xyz[k] = []float64{st * cp, st * sp, ct}
			}
			in, err := a.allocator().Tensor(xyz)
			if err != nil {
				return err
			}
			y, err := sh.Forward(in)
			if err != nil {
				return err
			}
			re, im, err := sh.Component(y, l, m)
			if err != nil {
				return err
			}

			part, data := "Re", re.Float64s()
			if imag {
				part, data = "Im", im.Float64s()
			}
			caption := fmt.Sprintf("%s Y(%d,%d), theta in [0, pi], phi = %g", part, l, m, phi)
			graph := asciigraph.Plot(data,
				asciigraph.Height(15),
				asciigraph.Width(80),
				asciigraph.Caption(caption),
			)
			_, err = fmt.Fprintln(cmd.OutOrStdout(), strings.TrimRight(graph, "\n"))
			return err
		},
	}
	cmd.Flags().IntVar(&lmax, "lmax", 0, "Maximum degree (default from config, at least --l)")
	cmd.Flags().IntVar(&l, "l", 2, "Degree")
	cmd.Flags().IntVar(&m, "m", 0, "Order, 0 <= m <= l")
	cmd.Flags().IntVar(&points, "points", 80, "Number of samples")
	cmd.Flags().Float64Var(&phi, "phi", 0, "Azimuth in radians")
	cmd.Flags().BoolVar(&imag, "imag", false, "Plot the imaginary part")
	return cmd
}
