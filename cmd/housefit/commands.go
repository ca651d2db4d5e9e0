package main

import (
	"io"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/YuminosukeSato/housefit/analysis"
	"github.com/YuminosukeSato/housefit/config"
	"github.com/YuminosukeSato/housefit/dataset"
	"github.com/YuminosukeSato/housefit/pkg/log"
	"github.com/YuminosukeSato/housefit/report"
)

// app はコマンド間で共有する実行時の状態
type app struct {
	out   io.Writer
	cfg   *config.Config
	runID string
}

func newRootCmd(out io.Writer) *cobra.Command {
	a := &app{out: out}

	root := &cobra.Command{
		Use:   "housefit",
		Short: "House price regression: simple area fit and model comparison",
		Long: `housefit loads housing data from the first usable CSV candidate
(or synthesises it with a fixed seed), fits price against area with a
closed-form least squares line, and compares multi-feature, ridge, lasso
and random forest models with 5-fold cross-validation.`,
		Args:              cobra.NoArgs,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.runSimple(); err != nil {
				return err
			}
			return a.runCompare()
		},
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "simple",
			Short: "Area-only least squares fit with a point prediction",
			Args:  cobra.NoArgs,
			RunE:  func(*cobra.Command, []string) error { return a.runSimple() },
		},
		&cobra.Command{
			Use:   "compare",
			Short: "Cross-validated comparison of six model configurations",
			Args:  cobra.NoArgs,
			RunE:  func(*cobra.Command, []string) error { return a.runCompare() },
		},
	)
	return root
}

func (a *app) setup(*cobra.Command, []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := log.SetupLogger(cfg.LogLevel); err != nil {
		return err
	}
	a.cfg = cfg
	a.runID = uuid.NewString()
	log.SetBaseFields(log.RunIDKey, a.runID)
	return nil
}

func (a *app) runSimple() error {
	logger := log.GetLoggerWithName("housefit")
	dc := a.cfg.Data

	d, _, err := dataset.NewSimpleProvider(dc.Dir, dc.Candidates, dc.Seed).Load()
	if err != nil {
		logger.Error("Failed to load data", err)
		return err
	}
	res, err := analysis.RunSimple(d, a.cfg.SimpleAnalysis())
	if err != nil {
		logger.Error("Simple analysis failed", err)
		return err
	}
	return report.WriteSimple(a.out, res)
}

func (a *app) runCompare() error {
	logger := log.GetLoggerWithName("housefit")
	dc := a.cfg.Data

	d, _, err := dataset.NewHousingProvider(dc.Dir, dc.Candidates, dc.Seed).Load()
	if err != nil {
		logger.Error("Failed to load data", err)
		return err
	}
	res, err := analysis.Compare(d, a.cfg.CompareAnalysis())
	if err != nil {
		logger.Error("Model comparison failed", err)
		return err
	}
	return report.WriteComparison(a.out, res)
}
