package log

// Model and Operation Context
const (
	// ModelNameKey identifies the estimator type.
	// Examples: "LinearRegression", "Ridge", "RandomForestRegressor"
	ModelNameKey = "model.name"

	// OperationKey specifies the operation being performed.
	OperationKey = "ml.operation"

	// ComponentKey identifies the package emitting the record.
	ComponentKey = "ml.component"

	// PhaseKey indicates the pipeline phase.
	PhaseKey = "ml.phase"

	// RunIDKey identifies a single housefit invocation.
	RunIDKey = "run.id"
)

// Data Shape and Characteristics
const (
	// SamplesKey indicates the number of observations.
	SamplesKey = "data.samples"

	// FeaturesKey indicates the number of feature columns.
	FeaturesKey = "data.features"

	// SourceKey names where the dataset came from: a CSV path or "synthetic".
	SourceKey = "data.source"

	// SkippedRowsKey counts malformed rows dropped while loading.
	SkippedRowsKey = "data.skipped_rows"

	// FingerprintKey is the xxhash digest of a dataset.
	FingerprintKey = "data.fingerprint"
)

// Evaluation
const (
	// R2ScoreKey records R² coefficient of determination.
	// Range typically [-∞, 1.0], with 1.0 being perfect prediction.
	R2ScoreKey = "metrics.r2_score"

	// R2StdKey records the standard deviation of per-fold R² scores.
	R2StdKey = "metrics.r2_std"

	// RMSEKey records root-mean-squared error.
	RMSEKey = "metrics.rmse"

	// CVFoldsKey records the number of cross-validation folds.
	CVFoldsKey = "cv.folds"

	// FoldKey records a fold index.
	FoldKey = "cv.fold"

	// IterationKey records the current iteration number during iterative processes.
	IterationKey = "training.iteration"
)

// Hyperparameters and Configuration
const (
	// RegularizationKey records regularization strength (alpha).
	RegularizationKey = "hyperparams.regularization"

	// NEstimatorsKey records the number of trees in an ensemble.
	NEstimatorsKey = "hyperparams.n_estimators"

	// RandomSeedKey records the random seed for reproducibility.
	RandomSeedKey = "config.random_seed"
)

// Error Context
const (
	// ErrorKey holds the error message.
	ErrorKey = "error"

	// StacktraceKey contains stack trace information for debugging.
	StacktraceKey = "error.stacktrace"

	// WarningKey holds a structured warning object.
	WarningKey = "warning"
)

// Standard attribute values.
const (
	OperationFit           = "fit"
	OperationPredict       = "predict"
	OperationTransform     = "transform"
	OperationScore         = "score"
	OperationCrossValidate = "cross_validate"
	OperationGridSearch    = "grid_search"
	OperationLoad          = "load"

	PhaseTraining      = "training"
	PhaseValidation    = "validation"
	PhasePreprocessing = "preprocessing"
)
