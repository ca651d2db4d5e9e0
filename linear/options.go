package linear

// Option is a function that configures LinearRegression
type Option func(*LinearRegression)

// WithFitIntercept sets whether to calculate the intercept
func WithFitIntercept(fit bool) Option {
	return func(lr *LinearRegression) {
		lr.fitIntercept = fit
	}
}

// WithRcond sets the relative singular-value cutoff used to determine the
// rank of a rank-deficient design.
func WithRcond(rcond float64) Option {
	return func(lr *LinearRegression) {
		lr.rcond = rcond
	}
}

// WithFeatureNames attaches column names to the fitted coefficients
func WithFeatureNames(names ...string) Option {
	return func(lr *LinearRegression) {
		lr.features = append([]string(nil), names...)
	}
}
