// Package housefit fits house prices against floor area and compares the
// simple fit with richer regression models on the same data.
//
// The library follows a one-way flow: a dataset is loaded (or synthesised
// with a fixed seed), preprocessed, fitted, evaluated and reported.
//
// # Quick Start
//
// Fitting price against area by closed-form least squares:
//
//	package main
//
//	import (
//	    "fmt"
//	    "log"
//
//	    "github.com/YuminosukeSato/housefit/linear"
//	)
//
//	func main() {
//	    area := []float64{1000, 2000, 3000}
//	    price := []float64{1000, 2000, 3000}
//
//	    slope, intercept, err := linear.FitSimple(area, price)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Printf("price = %.2f × area + %.2f\n", slope, intercept)
//	}
//
// Comparing model configurations with 5-fold cross-validation:
//
//	d, _, err := dataset.NewHousingProvider(".", dataset.DefaultCandidates, dataset.DefaultSeed).Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	res, err := analysis.Compare(d, analysis.DefaultCompareConfig())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println("recommended:", res.Best().Name)
//
// # Packages
//
//   - dataset: immutable column-major Dataset, CSV alias table, loader, synthetic data
//   - preprocessing: StandardScaler, LabelEncoder, yes/no parsing
//   - features: derived ratio, polynomial and amenity-count columns
//   - linear: single-predictor OLS and QR-based multiple regression
//   - sklearn/linear_model: Ridge and Lasso
//   - sklearn/ensemble: RandomForestRegressor
//   - sklearn/model_selection: KFold, CrossValScore, TrainTestSplit, GridSearch
//   - pipeline: scaler + estimator fitted per training fold
//   - metrics: R², RMSE, MAE, MSE, mean residual, Pearson correlation
//   - analysis: the simple and comparison analyses
//   - report: console rendering
//   - config: YAML and environment settings
//   - core/model: estimator interfaces and coefficients
//   - pkg/errors, pkg/log: typed errors, warnings and structured logging
//
// The housefit command in cmd/housefit runs both analyses.
package housefit
