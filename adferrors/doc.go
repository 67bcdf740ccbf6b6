// Package adferrors provides the categorized errors returned by goadf.
//
// Numeric fallbacks (an empty table, a missing sample size, a degenerate
// interpolation interval) are values, not errors. Errors are reserved for
// contract violations by the caller and for I/O at the table boundary.
//
// # Kinds
//
//   - KindInvalidInput: negative sample size, NaN statistic, unsorted table
//   - KindData: a transfer document that cannot be decoded
//   - KindConfig: an invalid configuration
//   - KindFile: a table or config file that cannot be read
//
// # Usage
//
//	res, err := stats.Decide(stat, nobs, idx)
//	if adferrors.IsInvalidInput(err) {
//	    // caller bug
//	}
package adferrors
