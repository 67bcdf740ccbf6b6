package lookup

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"

	"github.com/sartorproj/goadf/adferrors"
)

// EmptyPValue is returned for lookups against an empty table. It is the most
// conservative answer: the unit-root null cannot be rejected.
const EmptyPValue = 1.0

// Point is one (statistic, p-value) row of a lookup table.
type Point struct {
	Statistic float64
	PValue    float64
}

// Table is an immutable sequence of points sorted ascending by statistic.
// A nil *Table is a valid empty table.
type Table struct {
	points []Point
}

// NewTable validates points and returns a table holding a copy of them.
// Statistics must be non-decreasing and neither field may be NaN.
// Adjacent duplicate statistics are allowed.
func NewTable(points []Point) (*Table, error) {
	xs := make([]float64, len(points))
	ys := make([]float64, len(points))
	for i, p := range points {
		xs[i] = p.Statistic
		ys[i] = p.PValue
	}

	if floats.HasNaN(xs) {
		return nil, adferrors.InvalidInput("lookup.NewTable", "statistic is NaN")
	}
	if floats.HasNaN(ys) {
		return nil, adferrors.InvalidInput("lookup.NewTable", "p-value is NaN")
	}
	if !sort.Float64sAreSorted(xs) {
		return nil, adferrors.InvalidInput("lookup.NewTable", "statistics must be sorted ascending")
	}

	cp := make([]Point, len(points))
	copy(cp, points)
	return &Table{points: cp}, nil
}

// MustTable is like NewTable but panics on invalid input.
// It is intended for package-level tables.
func MustTable(points []Point) *Table {
	t, err := NewTable(points)
	if err != nil {
		panic(err)
	}
	return t
}

// Len returns the number of points in the table.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.points)
}

// Points returns a copy of the table's points.
func (t *Table) Points() []Point {
	if t == nil {
		return nil
	}
	cp := make([]Point, len(t.points))
	copy(cp, t.points)
	return cp
}

// At returns the i-th point.
func (t *Table) At(i int) Point {
	return t.points[i]
}

// PValue returns the interpolated p-value for x. See Interpolate.
func (t *Table) PValue(x float64) float64 {
	return Interpolate(t, x)
}

// Interpolate returns the p-value for statistic x by linear interpolation
// between the two table rows that bracket it.
//
// An empty table yields EmptyPValue. Values at or beyond either end of the
// table are clamped to that end's p-value. An exact match on a tabulated
// statistic returns its p-value without arithmetic. A zero-width interval
// (duplicate statistics) returns the lower row's p-value.
func Interpolate(t *Table, x float64) float64 {
	n := t.Len()
	if n == 0 {
		return EmptyPValue
	}

	pts := t.points
	if x <= pts[0].Statistic {
		return pts[0].PValue
	}
	if x >= pts[n-1].Statistic {
		return pts[n-1].PValue
	}

	low, high := 0, n-1
	idx := 0
	for low <= high {
		mid := low + (high-low)/2
		switch s := pts[mid].Statistic; {
		case s == x:
			return pts[mid].PValue
		case s < x:
			idx = mid
			low = mid + 1
		default:
			high = mid - 1
		}
	}

	x1, y1 := pts[idx].Statistic, pts[idx].PValue
	x2, y2 := pts[idx+1].Statistic, pts[idx+1].PValue

	switch {
	case x1 == x2:
		return y1
	case math.IsInf(x1, -1):
		return y2
	case math.IsInf(x2, 1):
		return y1
	}
	return y1 + (x-x1)*(y2-y1)/(x2-x1)
}
