// Package goadf interprets Augmented Dickey-Fuller (ADF) unit-root test
// statistics.
//
// GoADF does not run the ADF regression. Given a statistic computed
// elsewhere and the number of observations behind it, it approximates the
// p-value from tabulated (statistic, p-value) pairs, selects the critical
// values for the nearest tabulated sample size, and decides whether the
// series is stationary.
//
// # Features
//
//   - Binary-search lookup with linear interpolation and end clamping
//   - Nearest sample-size selection over per-sample-size tables
//   - Per-field fallback to asymptotic critical values
//   - JSON, YAML and CSV table loading that drops malformed rows
//   - A built-in table for callers without their own
//
// # Quick Start
//
// Interpret a statistic against the built-in table:
//
//	res, _ := stats.DecideDefault(-3.21)
//	fmt.Println(res.PValue, res.IsStationary)
//
// Use tables keyed by sample size:
//
//	idx, _, err := tables.Load("adf_tables.json")
//	res, err := stats.Decide(-3.21, 120, idx)
//
// # Packages
//
//   - lookup: p-value tables and interpolation
//   - stats: critical values, sample-size selection and the verdict
//   - tables: decoding of JSON, YAML and CSV table documents
//   - adferrors: categorized errors
//   - logger: zap logger setup
//   - config: YAML configuration for the adfcheck command
//
// # References
//
//   - Dickey, D. A., & Fuller, W. A. (1979). Distribution of the Estimators
//     for Autoregressive Time Series with a Unit Root.
//   - MacKinnon, J. G. (2010). Critical Values for Cointegration Tests.
package goadf
