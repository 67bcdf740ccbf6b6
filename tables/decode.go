package tables

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"

	gojson "github.com/goccy/go-json"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/sartorproj/goadf/adferrors"
	"github.com/sartorproj/goadf/lookup"
	"github.com/sartorproj/goadf/stats"
)

// Top-level keys of the transfer document.
const (
	CriticalValuesKey = "critical_values"
	PValuesKey        = "p_values"
)

// Report counts the parts of a document that were replaced or discarded
// while decoding.
type Report struct {
	DroppedRows     int      `json:"dropped_rows"`     // Pairs that were not two numbers
	DefaultedFields int      `json:"defaulted_fields"` // Critical values that were missing or not numeric
	SkippedKeys     []string `json:"skipped_keys"`     // Sample-size keys that are not unsigned integers
	MalformedTables []string `json:"malformed_tables"` // Sample sizes whose table was not a sequence
}

// Clean reports whether nothing was discarded or defaulted.
func (r *Report) Clean() bool {
	return r.DroppedRows == 0 && r.DefaultedFields == 0 &&
		len(r.SkippedKeys) == 0 && len(r.MalformedTables) == 0
}

// Decoder converts table documents into a stats.Index.
type Decoder struct {
	logger *zap.Logger
}

// NewDecoder returns a Decoder. A nil logger discards output.
func NewDecoder(l *zap.Logger) *Decoder {
	if l == nil {
		l = zap.NewNop()
	}
	return &Decoder{logger: l}
}

// DecodeJSON reads a JSON document from r.
//
// The document is either an object with "critical_values" and "p_values"
// members keyed by sample size, or a bare array of [statistic, p_value]
// pairs, which becomes a single-entry index with default critical values.
func (d *Decoder) DecodeJSON(r io.Reader) (*stats.Index, *Report, error) {
	var doc interface{}
	dec := gojson.NewDecoder(r)
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return nil, nil, adferrors.Wrap(err, adferrors.KindData, "tables.DecodeJSON", "decode document")
	}
	return d.build(doc)
}

// DecodeYAML reads a YAML document with the same shape as DecodeJSON.
// Sample-size keys may be written as integers or strings.
func (d *Decoder) DecodeYAML(r io.Reader) (*stats.Index, *Report, error) {
	var doc interface{}
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if err == io.EOF {
			doc = nil
		} else {
			return nil, nil, adferrors.Wrap(err, adferrors.KindData, "tables.DecodeYAML", "decode document")
		}
	}
	return d.build(doc)
}

func (d *Decoder) build(doc interface{}) (*stats.Index, *Report, error) {
	idx := stats.NewIndex()
	rep := &Report{}

	if rows, ok := doc.([]interface{}); ok {
		t, err := d.table(rows, rep)
		if err != nil {
			return nil, nil, err
		}
		idx.Add(0, stats.DefaultCriticalValues(), t)
		d.logReport(rep, idx)
		return idx, rep, nil
	}

	root, ok := toStringMap(doc)
	if !ok {
		d.logger.Warn("table document is neither an object nor an array, using an empty index")
		return idx, rep, nil
	}

	if critical, ok := toStringMap(root[CriticalValuesKey]); ok {
		for _, k := range sortedKeys(critical) {
			nobs, ok := parseSampleSize(k)
			if !ok {
				rep.SkippedKeys = append(rep.SkippedKeys, k)
				continue
			}
			idx.Critical[nobs] = criticalValues(critical[k], rep)
		}
	}

	if pvalues, ok := toStringMap(root[PValuesKey]); ok {
		for _, k := range sortedKeys(pvalues) {
			nobs, ok := parseSampleSize(k)
			if !ok {
				rep.SkippedKeys = append(rep.SkippedKeys, k)
				continue
			}
			rows, ok := pvalues[k].([]interface{})
			if !ok {
				rep.MalformedTables = append(rep.MalformedTables, k)
				continue
			}
			t, err := d.table(rows, rep)
			if err != nil {
				return nil, nil, adferrors.Wrap(err, adferrors.KindInvalidInput, "tables.Decode",
					"p-value table "+k)
			}
			idx.PValues[nobs] = t
		}
	}

	d.logReport(rep, idx)
	return idx, rep, nil
}

// table keeps the rows that are numeric pairs, sorted by statistic.
func (d *Decoder) table(rows []interface{}, rep *Report) (*lookup.Table, error) {
	points := make([]lookup.Point, 0, len(rows))
	for _, row := range rows {
		p, ok := toPoint(row)
		if !ok {
			rep.DroppedRows++
			continue
		}
		points = append(points, p)
	}
	sort.SliceStable(points, func(i, j int) bool { return points[i].Statistic < points[j].Statistic })
	return lookup.NewTable(points)
}

func (d *Decoder) logReport(rep *Report, idx *stats.Index) {
	if !rep.Clean() {
		d.logger.Warn("table document had malformed entries",
			zap.Int("dropped_rows", rep.DroppedRows),
			zap.Int("defaulted_fields", rep.DefaultedFields),
			zap.Strings("skipped_keys", rep.SkippedKeys),
			zap.Strings("malformed_tables", rep.MalformedTables))
	}
	for nobs := range idx.PValues {
		if _, ok := idx.Critical[nobs]; !ok {
			d.logger.Debug("p-value table has no critical values and cannot be selected", zap.Uint64("sample_size", nobs))
		}
	}
	d.logger.Debug("decoded tables",
		zap.Int("critical_values", len(idx.Critical)),
		zap.Int("p_value_tables", len(idx.PValues)))
}

func criticalValues(v interface{}, rep *Report) stats.CriticalValues {
	m, _ := toStringMap(v)
	field := func(label string) float64 {
		f, ok := toFloat(m[label])
		if !ok {
			rep.DefaultedFields++
			return math.NaN()
		}
		return f
	}
	return stats.CriticalValues{
		OnePercent:  field("1%"),
		FivePercent: field("5%"),
		TenPercent:  field("10%"),
	}
}

func toPoint(row interface{}) (lookup.Point, bool) {
	pair, ok := row.([]interface{})
	if !ok || len(pair) != 2 {
		return lookup.Point{}, false
	}
	x, ok := toFloat(pair[0])
	if !ok {
		return lookup.Point{}, false
	}
	y, ok := toFloat(pair[1])
	if !ok {
		return lookup.Point{}, false
	}
	return lookup.Point{Statistic: x, PValue: y}, true
}

func toFloat(v interface{}) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case uint64:
		f = float64(n)
	case gojson.Number:
		var err error
		if f, err = n.Float64(); err != nil {
			return 0, false
		}
	case string:
		var err error
		if f, err = strconv.ParseFloat(strings.TrimSpace(n), 64); err != nil {
			return 0, false
		}
	default:
		return 0, false
	}
	if math.IsNaN(f) {
		return 0, false
	}
	return f, true
}

func toStringMap(v interface{}) (map[string]interface{}, bool) {
	switch m := v.(type) {
	case map[string]interface{}:
		return m, true
	case map[interface{}]interface{}:
		out := make(map[string]interface{}, len(m))
		for k, val := range m {
			out[fmt.Sprint(k)] = val
		}
		return out, true
	}
	return nil, false
}

func sortedKeys(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func parseSampleSize(key string) (uint64, bool) {
	n, err := strconv.ParseUint(strings.TrimSpace(key), 10, 64)
	return n, err == nil
}

// DecodeJSON decodes a JSON document with a Decoder that discards logs.
func DecodeJSON(data []byte) (*stats.Index, *Report, error) {
	return NewDecoder(nil).DecodeJSON(bytes.NewReader(data))
}

// DecodeYAML decodes a YAML document with a Decoder that discards logs.
func DecodeYAML(data []byte) (*stats.Index, *Report, error) {
	return NewDecoder(nil).DecodeYAML(bytes.NewReader(data))
}
