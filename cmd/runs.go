package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/basin-labs/hazcalc/internal/store"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Inspect persisted hazard runs",
	Long:  "Commands for listing runs and exporting their saved curves.",
}

var runsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List persisted runs",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		st, err := store.Open(ctx, cfg.Store.Driver, cfg.Store.DatabaseURL)
		if err != nil {
			return err
		}
		defer st.Close()
		if err := st.Migrate(ctx); err != nil {
			return err
		}

		limit, _ := cmd.Flags().GetInt("limit")
		runs, err := st.ListRuns(ctx, limit)
		if err != nil {
			return eris.Wrap(err, "runs list")
		}

		if len(runs) == 0 {
			fmt.Fprintln(os.Stderr, "No runs found.")
			return nil
		}

		printRunsList(os.Stdout, runs)
		return nil
	},
}

var runsCurvesCmd = &cobra.Command{
	Use:   "curves <run-id>",
	Short: "Export the saved curves of a run as CSV",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := store.Open(ctx, cfg.Store.Driver, cfg.Store.DatabaseURL)
		if err != nil {
			return err
		}
		defer st.Close()
		if err := st.Migrate(ctx); err != nil {
			return err
		}

		curves, err := st.GetCurves(ctx, args[0])
		if err != nil {
			return eris.Wrap(err, "runs curves")
		}
		if len(curves) == 0 {
			return eris.Errorf("runs curves: no curves for run %q", args[0])
		}

		outputPath, _ := cmd.Flags().GetString("output")
		out, closeOut, err := openOutput(outputPath)
		if err != nil {
			return err
		}
		defer closeOut()

		return writeSiteCurvesCSV(out, curves)
	},
}

func init() {
	runsListCmd.Flags().Int("limit", 20, "maximum number of runs to list")
	runsCurvesCmd.Flags().String("output", "", "output file path (default: stdout)")

	runsCmd.AddCommand(runsListCmd)
	runsCmd.AddCommand(runsCurvesCmd)
	rootCmd.AddCommand(runsCmd)
}

func printRunsList(w io.Writer, runs []store.Run) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tMODEL\tPOLICY\tLEVEL\tCREATED")
	for _, r := range runs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%g\t%s\n",
			r.ID, r.Model, r.Policy, r.TruncLevel, r.CreatedAt.Format(time.RFC3339))
	}
	tw.Flush()
}

func writeSiteCurvesCSV(w io.Writer, curves []store.SiteCurve) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"site", "iml", "probability"}); err != nil {
		return eris.Wrap(err, "write csv header")
	}
	for _, sc := range curves {
		for i := range sc.IMLs {
			row := []string{
				sc.Site,
				strconv.FormatFloat(sc.IMLs[i], 'g', -1, 64),
				strconv.FormatFloat(sc.Probs[i], 'g', -1, 64),
			}
			if err := cw.Write(row); err != nil {
				return eris.Wrap(err, "write csv row")
			}
		}
	}
	cw.Flush()
	return eris.Wrap(cw.Error(), "flush csv")
}
