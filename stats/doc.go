// Package stats interprets Augmented Dickey-Fuller test statistics.
//
// The statistic itself is computed elsewhere. This package turns it into a
// p-value, a set of critical values and a stationarity verdict using tables
// keyed by sample size.
//
// # Deciding
//
//	idx := stats.NewIndex()
//	idx.Add(50, stats.CriticalValues{OnePercent: -3.58, FivePercent: -2.93, TenPercent: -2.60}, table50)
//	idx.Add(100, stats.CriticalValues{OnePercent: -3.51, FivePercent: -2.89, TenPercent: -2.58}, table100)
//
//	res, err := stats.Decide(-3.2, 60, idx) // uses the 50 entry
//	fmt.Printf("ADF: stat=%.4f, p=%.4f, stationary=%v\n",
//	    res.Statistic, res.PValue, res.IsStationary)
//
// The tabulated sample size nearest to the number of observations is used;
// when two are equally near, the larger one is chosen. A series is
// stationary when p <= SignificanceLevel and the statistic is below the 5%
// critical value.
//
// # Without Tables
//
// DecideDefault uses the built-in p-value table from package lookup and
// DefaultCriticalValues:
//
//	res, _ := stats.DecideDefault(-3.5)
//
// # Fallbacks
//
// Missing data never produces an error:
//
//   - an index without critical values uses DefaultCriticalValues
//   - a NaN critical value is replaced by its default individually
//   - a sample size without a p-value table yields p = 1
//
// Only contract violations (negative sample size, NaN statistic, nil index)
// return errors, of kind adferrors.KindInvalidInput.
//
// # Logging
//
// Interpreter wraps an Index with a zap logger and reports each fallback at
// debug level.
package stats
