package main

import (
	"encoding/csv"
	"io"
	"math"
	"os"
	"strconv"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/basin-labs/hazcalc/internal/curve"
	"github.com/basin-labs/hazcalc/internal/exceedance"
)

var exceedCmd = &cobra.Command{
	Use:   "exceed",
	Short: "Evaluate truncated-Gaussian exceedance probabilities",
	Long: `Evaluates the probability of exceeding each intensity level for a
ground-motion distribution with the given natural-log mean and standard
deviation, under the configured (or overridden) truncation policy.

Output is CSV with one (level, probability) row per intensity level.

Examples:
  # Default intensity levels, config truncation
  exceed --mean -1.2 --sigma 0.6

  # Two-sided truncation at 2 sigma, explicit levels
  exceed --mean -1.2 --sigma 0.6 --model UPPER_LOWER --level 2 --imls 0.01,0.1,0.5,1.0`,
	RunE: runExceed,
}

func init() {
	f := exceedCmd.Flags()
	f.Float64("mean", 0, "natural-log mean of the ground-motion distribution (required)")
	f.Float64("sigma", 0, "natural-log standard deviation (required)")
	f.String("model", "", "truncation policy (default: config)")
	f.Float64("level", -1, "truncation level in standard deviations (default: config)")
	f.Float64Slice("imls", nil, "comma-separated intensity levels (default: built-in set)")
	f.String("output", "", "output file path (default: stdout)")
	_ = exceedCmd.MarkFlagRequired("mean")
	_ = exceedCmd.MarkFlagRequired("sigma")

	rootCmd.AddCommand(exceedCmd)
}

func runExceed(cmd *cobra.Command, _ []string) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	mean, _ := cmd.Flags().GetFloat64("mean")
	sigma, _ := cmd.Flags().GetFloat64("sigma")
	modelID, _ := cmd.Flags().GetString("model")
	level, _ := cmd.Flags().GetFloat64("level")
	imls, _ := cmd.Flags().GetFloat64Slice("imls")
	outputPath, _ := cmd.Flags().GetString("output")

	if modelID == "" {
		modelID = cfg.Calc.TruncationModel
	}
	if level < 0 {
		level = cfg.Calc.TruncationLevel
	}
	if len(imls) == 0 {
		imls = cfg.Calc.IMLs
	}
	if len(imls) == 0 {
		imls = curve.DefaultIMLs
	}

	policy, err := exceedance.ParseModel(modelID)
	if err != nil {
		return err
	}
	u, err := exceedance.NewUncertainty(mean, sigma, level)
	if err != nil {
		return err
	}
	c, err := curve.New(imls)
	if err != nil {
		return err
	}
	// Intensity levels are linear; the distribution lives in log space.
	for i := 0; i < c.Len(); i++ {
		c.SetY(i, policy.Exceedance(u, math.Log(c.X(i))))
	}

	out, closeOut, err := openOutput(outputPath)
	if err != nil {
		return err
	}
	defer closeOut()

	return writeCurveCSV(out, "iml", "probability", c)
}

func openOutput(path string) (io.Writer, func(), error) {
	if path == "" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, eris.Wrapf(err, "create %s", path)
	}
	return f, func() { f.Close() }, nil
}

func writeCurveCSV(w io.Writer, xHeader, yHeader string, c *curve.Curve) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{xHeader, yHeader}); err != nil {
		return eris.Wrap(err, "write csv header")
	}
	for i := 0; i < c.Len(); i++ {
		row := []string{
			strconv.FormatFloat(c.X(i), 'g', -1, 64),
			strconv.FormatFloat(c.Y(i), 'g', -1, 64),
		}
		if err := cw.Write(row); err != nil {
			return eris.Wrap(err, "write csv row")
		}
	}
	cw.Flush()
	return eris.Wrap(cw.Error(), "flush csv")
}
