package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"strconv"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/basin-labs/hazcalc/internal/curve"
	"github.com/basin-labs/hazcalc/internal/hazard"
	"github.com/basin-labs/hazcalc/internal/model"
	"github.com/basin-labs/hazcalc/internal/site"
	"github.com/basin-labs/hazcalc/internal/store"
)

var curveCmd = &cobra.Command{
	Use:   "curve",
	Short: "Compute hazard curves for a source model and sites",
	Long: `Computes the annual-exceedance hazard curve at every site in the
GeoJSON site file, against the YAML source model, under the configured
truncation policy.

Output is CSV with one (site, iml, probability) row per curve point.

Examples:
  # Compute and print
  curve --model wasatch.yaml --sites sites.geojson

  # Persist the run to the configured store
  curve --model wasatch.yaml --sites sites.geojson --save`,
	RunE: runCurve,
}

func init() {
	f := curveCmd.Flags()
	f.String("model", "", "source model YAML file (required)")
	f.String("sites", "", "sites GeoJSON file (required)")
	f.String("output", "", "output file path (default: stdout)")
	f.Bool("save", false, "persist the run and its curves to the store")
	_ = curveCmd.MarkFlagRequired("model")
	_ = curveCmd.MarkFlagRequired("sites")

	rootCmd.AddCommand(curveCmd)
}

func runCurve(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := cfg.Validate(); err != nil {
		return err
	}

	modelPath, _ := cmd.Flags().GetString("model")
	sitesPath, _ := cmd.Flags().GetString("sites")
	outputPath, _ := cmd.Flags().GetString("output")
	save, _ := cmd.Flags().GetBool("save")

	log := zap.L().With(zap.String("command", "curve"))

	m, err := model.Load(modelPath)
	if err != nil {
		return err
	}
	sites, err := site.Load(sitesPath)
	if err != nil {
		return err
	}
	log.Info("inputs loaded",
		zap.String("model", m.Name),
		zap.Int("sources", len(m.Sources)),
		zap.Int("sites", len(sites)),
	)

	calc, err := hazard.New(
		cfg.Calc.TruncationModel,
		cfg.Calc.TruncationLevel,
		cfg.Calc.IMLs,
		cfg.Calc.MaxConcurrent,
	)
	if err != nil {
		return err
	}

	results, err := calc.Run(ctx, m, sites)
	if err != nil {
		return err
	}

	if save {
		if err := saveRun(ctx, m.Name, results); err != nil {
			return err
		}
	}

	out, closeOut, err := openOutput(outputPath)
	if err != nil {
		return err
	}
	defer closeOut()

	return writeResultsCSV(out, results)
}

func saveRun(ctx context.Context, modelName string, results map[string]*curve.Curve) error {
	st, err := store.Open(ctx, cfg.Store.Driver, cfg.Store.DatabaseURL)
	if err != nil {
		return err
	}
	defer st.Close()
	if err := st.Migrate(ctx); err != nil {
		return err
	}

	run, err := st.CreateRun(ctx, modelName, cfg.Calc.TruncationModel, cfg.Calc.TruncationLevel)
	if err != nil {
		return err
	}
	for siteName, cv := range results {
		if err := st.SaveCurve(ctx, run.ID, siteName, cv); err != nil {
			return eris.Wrapf(err, "curve: save site %q", siteName)
		}
	}

	fmt.Fprintf(os.Stderr, "Saved run %s (%d curves)\n", run.ID, len(results))
	return nil
}

func writeResultsCSV(w io.Writer, results map[string]*curve.Curve) error {
	names := make([]string, 0, len(results))
	for name := range results {
		names = append(names, name)
	}
	sort.Strings(names)

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"site", "iml", "probability"}); err != nil {
		return eris.Wrap(err, "write csv header")
	}
	for _, name := range names {
		cv := results[name]
		for i := 0; i < cv.Len(); i++ {
			row := []string{
				name,
				strconv.FormatFloat(cv.X(i), 'g', -1, 64),
				strconv.FormatFloat(cv.Y(i), 'g', -1, 64),
			}
			if err := cw.Write(row); err != nil {
				return eris.Wrap(err, "write csv row")
			}
		}
	}
	cw.Flush()
	return eris.Wrap(cw.Error(), "flush csv")
}
