package tables

import (
	"encoding/csv"
	"io"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/sartorproj/goadf/adferrors"
	"github.com/sartorproj/goadf/lookup"
	"github.com/sartorproj/goadf/stats"
)

// CSVOptions holds options for CSV loading.
type CSVOptions struct {
	SampleSizeColumn string // Column name for sample sizes (optional)
	StatisticColumn  string // Column name for statistics (default: "statistic")
	PValueColumn     string // Column name for p-values (default: "p_value")
	HasHeader        bool   // Whether CSV has header row (default: true)
	Delimiter        rune   // Field delimiter (default: ',')
	SkipRows         int    // Number of rows to skip at start
}

// DefaultCSVOptions returns default options for CSV loading.
func DefaultCSVOptions() *CSVOptions {
	return &CSVOptions{
		SampleSizeColumn: "sample_size",
		StatisticColumn:  "statistic",
		PValueColumn:     "p_value",
		HasHeader:        true,
		Delimiter:        ',',
	}
}

// LoadCSV loads p-value tables from a CSV file.
func LoadCSV(filename string, opts *CSVOptions) (*stats.Index, *Report, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, nil, adferrors.Wrap(err, adferrors.KindFile, "tables.LoadCSV", "open "+filename)
	}
	defer file.Close()

	return NewDecoder(nil).DecodeCSV(file, opts)
}

// DecodeCSV reads p-value tables from r.
//
// With a header, the statistic and p-value columns are found by name and a
// configured name missing from the header is an error. Columns 0 and 1 are
// used when there is no header or the name is left empty.
//
// With a sample-size column, each distinct sample size becomes one table.
// Without one, all rows form a single table under sample size 0. Every
// sample size gets unset critical values, so the defaults apply; use
// DecodeCriticalCSV to supply them. Rows whose statistic or p-value is not
// numeric are dropped.
func (d *Decoder) DecodeCSV(r io.Reader, opts *CSVOptions) (*stats.Index, *Report, error) {
	if opts == nil {
		opts = DefaultCSVOptions()
	}

	reader := newCSVReader(r, opts)
	if err := skipRows(reader, opts.SkipRows); err != nil {
		return nil, nil, err
	}

	nobsIdx, statIdx, pIdx := -1, 0, 1
	if opts.HasHeader {
		header, err := reader.Read()
		if err != nil {
			return nil, nil, adferrors.Wrap(err, adferrors.KindData, "tables.DecodeCSV", "read header")
		}
		cols := columnIndex(header)
		nobsIdx = lookupColumn(cols, opts.SampleSizeColumn, -1)
		if statIdx, err = requireColumn(cols, opts.StatisticColumn, statIdx); err != nil {
			return nil, nil, err
		}
		if pIdx, err = requireColumn(cols, opts.PValueColumn, pIdx); err != nil {
			return nil, nil, err
		}
	}

	rep := &Report{}
	points := make(map[uint64][]lookup.Point)

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, adferrors.Wrap(err, adferrors.KindData, "tables.DecodeCSV", "read row")
		}

		var nobs uint64
		if nobsIdx >= 0 {
			if nobsIdx >= len(record) {
				rep.DroppedRows++
				continue
			}
			key := cell(record[nobsIdx])
			n, ok := parseSampleSize(key)
			if !ok {
				rep.SkippedKeys = append(rep.SkippedKeys, key)
				continue
			}
			nobs = n
		}

		x, okX := parseCell(record, statIdx)
		y, okY := parseCell(record, pIdx)
		if !okX || !okY {
			rep.DroppedRows++
			continue
		}
		points[nobs] = append(points[nobs], lookup.Point{Statistic: x, PValue: y})
	}

	idx := stats.NewIndex()
	unset := stats.CriticalValues{OnePercent: math.NaN(), FivePercent: math.NaN(), TenPercent: math.NaN()}
	for nobs, pts := range points {
		sort.SliceStable(pts, func(i, j int) bool { return pts[i].Statistic < pts[j].Statistic })
		t, err := lookup.NewTable(pts)
		if err != nil {
			return nil, nil, err
		}
		idx.Add(nobs, unset, t)
	}

	d.logReport(rep, idx)
	return idx, rep, nil
}

// DecodeCriticalCSV reads critical values from r into idx. The header must
// name a sample-size column and the "1%", "5%" and "10%" columns; a missing
// or non-numeric value is left unset so the default applies.
func (d *Decoder) DecodeCriticalCSV(r io.Reader, idx *stats.Index, opts *CSVOptions) (*Report, error) {
	if opts == nil {
		opts = DefaultCSVOptions()
	}

	reader := newCSVReader(r, opts)
	if err := skipRows(reader, opts.SkipRows); err != nil {
		return nil, err
	}

	header, err := reader.Read()
	if err != nil {
		return nil, adferrors.Wrap(err, adferrors.KindData, "tables.DecodeCriticalCSV", "read header")
	}
	cols := columnIndex(header)
	nobsIdx := lookupColumn(cols, opts.SampleSizeColumn, -1)
	if nobsIdx < 0 {
		return nil, adferrors.Newf(adferrors.KindData, "tables.DecodeCriticalCSV",
			"missing sample size column %q", opts.SampleSizeColumn)
	}
	oneIdx := lookupColumn(cols, "1%", -1)
	fiveIdx := lookupColumn(cols, "5%", -1)
	tenIdx := lookupColumn(cols, "10%", -1)

	rep := &Report{}
	field := func(record []string, i int) float64 {
		v, ok := parseCell(record, i)
		if !ok {
			rep.DefaultedFields++
			return math.NaN()
		}
		return v
	}

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, adferrors.Wrap(err, adferrors.KindData, "tables.DecodeCriticalCSV", "read row")
		}
		if nobsIdx >= len(record) {
			rep.DroppedRows++
			continue
		}
		key := cell(record[nobsIdx])
		nobs, ok := parseSampleSize(key)
		if !ok {
			rep.SkippedKeys = append(rep.SkippedKeys, key)
			continue
		}
		idx.Critical[nobs] = stats.CriticalValues{
			OnePercent:  field(record, oneIdx),
			FivePercent: field(record, fiveIdx),
			TenPercent:  field(record, tenIdx),
		}
	}

	d.logReport(rep, idx)
	return rep, nil
}

func newCSVReader(r io.Reader, opts *CSVOptions) *csv.Reader {
	reader := csv.NewReader(r)
	if opts.Delimiter != 0 {
		reader.Comma = opts.Delimiter
	}
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1
	return reader
}

func skipRows(reader *csv.Reader, n int) error {
	for i := 0; i < n; i++ {
		if _, err := reader.Read(); err != nil {
			return adferrors.Wrap(err, adferrors.KindData, "tables.DecodeCSV", "skip rows")
		}
	}
	return nil
}

func columnIndex(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[cell(h)] = i
	}
	return cols
}

func lookupColumn(cols map[string]int, name string, fallback int) int {
	if name == "" {
		return fallback
	}
	if i, ok := cols[name]; ok {
		return i
	}
	return fallback
}

// requireColumn is lookupColumn for columns that must be present when named.
func requireColumn(cols map[string]int, name string, fallback int) (int, error) {
	if name == "" {
		return fallback, nil
	}
	i, ok := cols[name]
	if !ok {
		return 0, adferrors.Newf(adferrors.KindData, "tables.DecodeCSV", "missing column %q", name).
			WithDetail("column", name)
	}
	return i, nil
}

func cell(s string) string {
	return strings.TrimSpace(strings.Trim(s, "\""))
}

func parseCell(record []string, i int) (float64, bool) {
	if i < 0 || i >= len(record) {
		return 0, false
	}
	s := cell(record[i])
	if s == "" || s == "NA" || s == "NaN" || s == "null" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}
