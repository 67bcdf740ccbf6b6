package tables

import (
	"sort"

	gojson "github.com/goccy/go-json"
	mstats "github.com/montanaflynn/stats"

	"github.com/sartorproj/goadf/lookup"
	"github.com/sartorproj/goadf/stats"
)

// Summary describes one sample size of an index.
type Summary struct {
	SampleSize     uint64               `json:"sample_size"`
	CriticalValues stats.CriticalValues `json:"critical_values"`
	HasCritical    bool                 `json:"has_critical_values"`
	Rows           int                  `json:"rows"`
	MinStatistic   float64              `json:"min_statistic"`
	MaxStatistic   float64              `json:"max_statistic"`
	MedianPValue   float64              `json:"median_p_value"`
	Monotone       bool                 `json:"monotone"` // p-values non-decreasing in the statistic
}

// MarshalJSON writes the summary with infinite bounds as "+Inf" or "-Inf".
func (s Summary) MarshalJSON() ([]byte, error) {
	return gojson.Marshal(struct {
		SampleSize     uint64               `json:"sample_size"`
		CriticalValues map[string]jsonFloat `json:"critical_values"`
		HasCritical    bool                 `json:"has_critical_values"`
		Rows           int                  `json:"rows"`
		MinStatistic   jsonFloat            `json:"min_statistic"`
		MaxStatistic   jsonFloat            `json:"max_statistic"`
		MedianPValue   jsonFloat            `json:"median_p_value"`
		Monotone       bool                 `json:"monotone"`
	}{
		SampleSize:     s.SampleSize,
		CriticalValues: criticalJSON(s.CriticalValues),
		HasCritical:    s.HasCritical,
		Rows:           s.Rows,
		MinStatistic:   jsonFloat(s.MinStatistic),
		MaxStatistic:   jsonFloat(s.MaxStatistic),
		MedianPValue:   jsonFloat(s.MedianPValue),
		Monotone:       s.Monotone,
	})
}

// Describe summarises a p-value table.
func Describe(t *lookup.Table) Summary {
	s := Summary{Rows: t.Len(), Monotone: true}
	if s.Rows == 0 {
		return s
	}

	pts := t.Points()
	xs := make(mstats.Float64Data, len(pts))
	ys := make(mstats.Float64Data, len(pts))
	for i, p := range pts {
		xs[i] = p.Statistic
		ys[i] = p.PValue
		if i > 0 && p.PValue < pts[i-1].PValue {
			s.Monotone = false
		}
	}

	s.MinStatistic, _ = xs.Min()
	s.MaxStatistic, _ = xs.Max()
	s.MedianPValue, _ = ys.Median()
	return s
}

// DescribeIndex summarises every sample size of idx, ascending.
func DescribeIndex(idx *stats.Index) []Summary {
	seen := make(map[uint64]bool)
	var keys []uint64
	for k := range idx.Critical {
		seen[k] = true
		keys = append(keys, k)
	}
	for k := range idx.PValues {
		if !seen[k] {
			keys = append(keys, k)
		}
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	out := make([]Summary, 0, len(keys))
	for _, k := range keys {
		s := Describe(idx.PValues[k])
		s.SampleSize = k
		if cv, ok := idx.Critical[k]; ok {
			s.CriticalValues = cv.Complete()
			s.HasCritical = true
		} else {
			s.CriticalValues = stats.DefaultCriticalValues()
		}
		out = append(out, s)
	}
	return out
}
