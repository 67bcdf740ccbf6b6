package stats

import (
	"math"
	"sort"

	"github.com/sartorproj/goadf/adferrors"
	"github.com/sartorproj/goadf/lookup"
)

// SignificanceLevel is the p-value at or below which the unit-root null is
// rejected.
const SignificanceLevel = 0.05

// CriticalValues holds the ADF critical statistics at the 1%, 5% and 10%
// significance levels. A NaN field means the value was not supplied.
type CriticalValues struct {
	OnePercent  float64 `json:"1%" yaml:"1%"`
	FivePercent float64 `json:"5%" yaml:"5%"`
	TenPercent  float64 `json:"10%" yaml:"10%"`
}

// DefaultCriticalValues returns the asymptotic critical values for the
// constant-only regression. They stand in for any missing critical value.
func DefaultCriticalValues() CriticalValues {
	return CriticalValues{
		OnePercent:  -3.43,
		FivePercent: -2.86,
		TenPercent:  -2.57,
	}
}

// withDefaults replaces NaN fields with the default critical values and
// reports which labels were replaced.
func (c CriticalValues) withDefaults() (CriticalValues, []string) {
	def := DefaultCriticalValues()
	var replaced []string
	if math.IsNaN(c.OnePercent) {
		c.OnePercent = def.OnePercent
		replaced = append(replaced, "1%")
	}
	if math.IsNaN(c.FivePercent) {
		c.FivePercent = def.FivePercent
		replaced = append(replaced, "5%")
	}
	if math.IsNaN(c.TenPercent) {
		c.TenPercent = def.TenPercent
		replaced = append(replaced, "10%")
	}
	return c, replaced
}

// Complete returns c with every unset field replaced by its default.
func (c CriticalValues) Complete() CriticalValues {
	c, _ = c.withDefaults()
	return c
}

// Map returns the critical values keyed by their significance labels.
func (c CriticalValues) Map() map[string]float64 {
	return map[string]float64{
		"1%":  c.OnePercent,
		"5%":  c.FivePercent,
		"10%": c.TenPercent,
	}
}

// ADFResult represents the interpretation of an Augmented Dickey-Fuller
// statistic.
type ADFResult struct {
	Statistic    float64        `json:"statistic"`
	PValue       float64        `json:"p_value"`
	CriticalVals CriticalValues `json:"critical_values"`
	IsStationary bool           `json:"is_stationary"`
	SampleSize   uint64         `json:"sample_size"` // Tabulated sample size used
	Matched      bool           `json:"matched"`     // False when the index had no critical values
}

// Index holds critical values and p-value tables keyed by sample size.
// A sample size may have critical values without a p-value table.
type Index struct {
	Critical map[uint64]CriticalValues
	PValues  map[uint64]*lookup.Table
}

// NewIndex returns an empty index.
func NewIndex() *Index {
	return &Index{
		Critical: make(map[uint64]CriticalValues),
		PValues:  make(map[uint64]*lookup.Table),
	}
}

// Add registers critical values and, if t is non-nil, a p-value table for
// sample size nobs.
func (idx *Index) Add(nobs uint64, cv CriticalValues, t *lookup.Table) {
	idx.Critical[nobs] = cv
	if t != nil {
		idx.PValues[nobs] = t
	}
}

// SampleSizes returns the sample sizes with critical values, ascending.
func (idx *Index) SampleSizes() []uint64 {
	keys := make([]uint64, 0, len(idx.Critical))
	for k := range idx.Critical {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// DefaultIndex returns a single-entry index holding the built-in p-value
// table and the default critical values. Every sample size selects it.
func DefaultIndex() *Index {
	idx := NewIndex()
	idx.Add(0, DefaultCriticalValues(), lookup.Default())
	return idx
}

// NearestSampleSize returns the key of critical closest to nobs. When two
// keys are equally close the larger one wins. It returns false if critical
// is empty.
func NearestSampleSize(critical map[uint64]CriticalValues, nobs uint64) (uint64, bool) {
	var best, bestDist uint64
	found := false
	for k := range critical {
		d := distance(k, nobs)
		if !found || d < bestDist || (d == bestDist && k > best) {
			best, bestDist, found = k, d, true
		}
	}
	return best, found
}

func distance(a, b uint64) uint64 {
	if a > b {
		return a - b
	}
	return b - a
}

// decision records the fallbacks taken while interpreting a statistic.
type decision struct {
	missingTable bool
	defaulted    []string
}

// Decide interprets an ADF statistic computed from nobs observations.
//
// The critical values and p-value table for the tabulated sample size
// nearest to nobs are used. Without any critical values the defaults apply;
// without a p-value table the p-value is lookup.EmptyPValue. The p-value is
// clamped to [0, 1]. The series is stationary when the p-value is at most
// SignificanceLevel and the statistic is below the 5% critical value.
//
// Decide returns an InvalidInput error for a negative nobs, a NaN statistic
// or a nil index.
func Decide(statistic float64, nobs int, idx *Index) (*ADFResult, error) {
	res, _, err := decide(statistic, nobs, idx)
	return res, err
}

// DecideDefault interprets statistic against the built-in table and the
// default critical values.
func DecideDefault(statistic float64) (*ADFResult, error) {
	return Decide(statistic, 0, DefaultIndex())
}

func decide(statistic float64, nobs int, idx *Index) (*ADFResult, decision, error) {
	var d decision
	switch {
	case nobs < 0:
		return nil, d, adferrors.InvalidInput("stats.Decide", "sample size must not be negative").
			WithDetail("nobs", nobs)
	case math.IsNaN(statistic):
		return nil, d, adferrors.InvalidInput("stats.Decide", "statistic is NaN")
	case idx == nil:
		return nil, d, adferrors.InvalidInput("stats.Decide", "index is nil")
	}

	res := &ADFResult{
		Statistic:    statistic,
		CriticalVals: DefaultCriticalValues(),
	}

	var table *lookup.Table
	if key, ok := NearestSampleSize(idx.Critical, uint64(nobs)); ok {
		res.SampleSize = key
		res.Matched = true
		res.CriticalVals, d.defaulted = idx.Critical[key].withDefaults()
		table = idx.PValues[key]
	}
	if table.Len() == 0 {
		d.missingTable = true
	}

	res.PValue = clampProbability(lookup.Interpolate(table, statistic))
	res.IsStationary = res.PValue <= SignificanceLevel && statistic < res.CriticalVals.FivePercent
	return res, d, nil
}

func clampProbability(p float64) float64 {
	return math.Max(0, math.Min(1, p))
}
