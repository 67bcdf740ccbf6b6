// Package tables reads ADF critical-value and p-value tables into a
// stats.Index.
//
// This is the only package that handles loosely typed input. Everything it
// returns is validated: tables are sorted and free of NaN, and sample sizes
// are unsigned integers.
//
// # Document Shape
//
// JSON and YAML documents share one shape:
//
//	{
//	  "critical_values": {"50": {"1%": -3.58, "5%": -2.93, "10%": -2.60}},
//	  "p_values":        {"50": [[-4.5, 0.001], [-2.93, 0.05], [-1.0, 0.7]]}
//	}
//
// A bare array of pairs is also accepted and becomes a single table used
// for every sample size.
//
// # Malformed Entries
//
// Decoding fails closed entry by entry instead of rejecting the document:
//
//	idx, rep, err := tables.Load("adf_tables.yaml")
//	if !rep.Clean() {
//	    log.Printf("dropped %d rows", rep.DroppedRows)
//	}
//
// A pair that is not two numbers is dropped. A missing critical value is
// left unset and replaced by its default when deciding. A sample-size key
// that is not an unsigned integer is skipped. A table that is not a
// sequence is ignored, so lookups for that sample size return p = 1.
//
// # CSV
//
// CSV files carry p-value rows, optionally grouped by a sample-size column:
//
//	sample_size,statistic,p_value
//	50,-4.5,0.001
//	50,-2.93,0.05
//
// Critical values can be merged from a second file with DecodeCriticalCSV.
//
// # Inspection
//
// DescribeIndex summarises each sample size (row count, statistic range,
// median p-value and whether p-values rise with the statistic).
package tables
