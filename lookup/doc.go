// Package lookup converts ADF test statistics to p-values using tabulated
// (statistic, p-value) pairs.
//
// A Table is sorted ascending by statistic and never modified after
// construction, so a single table may be shared by any number of goroutines.
//
// # Interpolation
//
//	t, err := lookup.NewTable([]lookup.Point{
//	    {Statistic: -4.0, PValue: 0.005},
//	    {Statistic: -3.0, PValue: 0.025},
//	    {Statistic: -2.0, PValue: 0.1},
//	})
//	p := t.PValue(-2.5) // 0.0625
//
// Statistics outside the tabulated range take the p-value of the nearest
// end. An empty (or nil) table always yields EmptyPValue.
//
// # Built-in Table
//
// Default returns a coarse table for the constant-only ADF regression. It is
// used by stats.DecideDefault when the caller has no sample-size specific
// tables.
package lookup
