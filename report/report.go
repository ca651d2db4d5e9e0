package report

import (
	"io"
	"text/tabwriter"

	"github.com/YuminosukeSato/housefit/analysis"
)

// WriteSimple renders the single-predictor analysis.
func WriteSimple(w io.Writer, r *analysis.SimpleResult) error {
	p := &printer{w: w}
	slope, intercept := r.Coefficients.Slopes[0], r.Coefficients.Intercept

	p.printf("=== DATASET OVERVIEW ===\n")
	p.printf("Source: %s\n", r.Source)
	p.printf("Number of houses: %d\n", r.Samples)
	p.printf("\nArea Statistics:\n")
	p.printf("  Mean: %s sq ft\n", Currency(r.Feature.Mean))
	p.printf("  Range: %s - %s sq ft\n", Currency(r.Feature.Min), Currency(r.Feature.Max))
	p.printf("\nPrice Statistics:\n")
	p.printf("  Mean: %s KSh\n", Currency(r.Target.Mean))
	p.printf("  Range: %s - %s KSh\n", Currency(r.Target.Min), Currency(r.Target.Max))
	p.printf("\nCorrelation between Area and Price: %s\n", Amount(r.Correlation, 4))

	p.heading("HOUSE PRICE PREDICTION - RESULTS")
	p.printf("\n1. EQUATION OF THE LINE OF BEST FIT:\n")
	p.printf("   Price = %s × Area + %s\n", Amount(slope, 2), Amount(intercept, 2))
	p.printf("   Slope (m): %s KSh per sq ft\n", Currency(slope))
	p.printf("   Intercept (c): %s KSh\n", Currency(intercept))

	p.printf("\n2. HOW WELL DOES THE LINE FIT THE DATA:\n")
	p.printf("   R² Score: %s (%s)\n", Amount(r.Metrics.R2, 4), Percent(r.Metrics.R2, 2))
	p.printf("   RMSE: %s KSh\n", Currency(r.Metrics.RMSE))
	p.printf("   MAE: %s KSh\n", Currency(r.Metrics.MAE))
	p.printf("   Mean Residual: %s KSh\n", Currency(r.Metrics.MeanResidual))

	p.printf("\n3. PREDICTION FOR %s SQ FT HOUSE:\n", Amount(r.PredictAt, 0))
	p.printf("   Predicted Price: %s KSh\n", Currency(r.Prediction))
	p.printf("   Price per sq ft: %s KSh\n", Currency(r.PricePerUnit))

	p.printf("\nSAMPLE DATA POINTS (First %d):\n", len(r.Rows))
	if p.err == nil {
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
		tp := &printer{w: tw}
		tp.printf("Area (sq ft)\tActual Price\tPredicted Price\tResidual\t\n")
		for _, row := range r.Rows {
			tp.printf("%s\t%s\t%s\t%s\t\n", Amount(row.X, 0), Amount(row.Actual, 0), Amount(row.Predicted, 0), Amount(row.Residual, 0))
		}
		if tp.err != nil {
			return tp.err
		}
		p.err = tw.Flush()
	}

	p.printf("\nKEY INSIGHTS:\n")
	p.printf("   • Each additional square foot increases price by %s KSh\n", Currency(slope))
	p.printf("   • The model explains %s of price variation\n", Percent(r.Metrics.R2, 1))
	p.printf("   • Model is %s for predictions\n", r.Verdict)
	return p.err
}

// WriteComparison renders the ranked model comparison and importances.
func WriteComparison(w io.Writer, c *analysis.Comparison) error {
	p := &printer{w: w}

	p.printf("Source: %s\n", c.Source)
	p.printf("Features: %v\n", c.BaseFeatures)
	p.printf("Dataset shape: (%d, %d)\n", c.Samples, len(c.BaseFeatures))
	p.printf("New features created: %v\n", c.Created)
	p.printf("Total features: %d (was %d)\n", len(c.EnhancedFeatures), len(c.BaseFeatures))

	p.heading("MODEL COMPARISON RESULTS")
	if p.err == nil {
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		tp := &printer{w: tw}
		tp.printf("Model\tR² Score\tStd\tFeatures\tAlpha\n")
		for _, r := range c.Results {
			alpha := "-"
			if r.Param != nil {
				alpha = Amount(r.Param.Value, 1)
			}
			tp.printf("%s\t%s\t%s\t%d\t%s\n", r.Name, Amount(r.MeanR2, 4), Amount(r.StdR2, 4), r.Features, alpha)
		}
		if tp.err != nil {
			return tp.err
		}
		p.err = tw.Flush()
	}

	p.printf("\nTop %d Most Important Features:\n", len(c.Importances))
	if p.err == nil {
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		tp := &printer{w: tw}
		tp.printf("Feature\tImportance\n")
		for _, fi := range c.Importances {
			tp.printf("%s\t%s\n", fi.Name, Amount(fi.Score, 4))
		}
		if tp.err != nil {
			return tp.err
		}
		p.err = tw.Flush()
	}
	p.printf("Held-out R² of the importance forest: %s\n", Amount(c.HoldoutR2, 4))

	best := c.Best()
	p.printf("\nSUMMARY AND RECOMMENDATIONS:\n")
	p.printf("\nBest Model: %s\n", best.Name)
	p.printf("   R² Score: %s ± %s\n", Amount(best.MeanR2, 4), Amount(best.StdR2, 4))
	p.printf("   Features Used: %d\n", best.Features)
	if best.Param != nil {
		p.printf("   %s: %s\n", best.Param.Name, Amount(best.Param.Value, 1))
	}

	if imp := c.Improvement; imp != nil {
		p.printf("\nImprovement over simple linear regression: %s\n", Amount(imp.Absolute, 4))
		if imp.PercentDefined {
			p.printf("   (%s%% relative improvement)\n", Amount(imp.Percent, 1))
		} else {
			p.printf("   (relative improvement unavailable: baseline R² is 0)\n")
		}
	}

	if len(c.Importances) > 0 {
		p.printf("\nKey Insights:\n")
		p.printf("   • Most important feature: %s\n", c.Importances[0].Name)
		p.printf("   • Feature engineering added %d new features\n", len(c.Created))
	}
	return p.err
}
