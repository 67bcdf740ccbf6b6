package lookup

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/interp"

	"github.com/sartorproj/goadf/adferrors"
)

func sampleTable(t *testing.T) *Table {
	t.Helper()
	tbl, err := NewTable([]Point{
		{-4.0, 0.005},
		{-3.5, 0.01},
		{-3.0, 0.025},
		{-2.5, 0.05},
		{-2.0, 0.1},
		{-1.0, 0.5},
	})
	require.NoError(t, err)
	return tbl
}

func TestInterpolateEmpty(t *testing.T) {
	for _, x := range []float64{-100, -3, 0, 42, math.Inf(1)} {
		assert.Equal(t, EmptyPValue, Interpolate(nil, x))
		assert.Equal(t, EmptyPValue, Interpolate(&Table{}, x))
	}
}

func TestInterpolateClamps(t *testing.T) {
	tbl := sampleTable(t)

	for _, x := range []float64{-4.0, -4.0001, -50, math.Inf(-1)} {
		assert.Equal(t, 0.005, tbl.PValue(x), "left clamp at %v", x)
	}
	for _, x := range []float64{-1.0, -0.999, 3, math.Inf(1)} {
		assert.Equal(t, 0.5, tbl.PValue(x), "right clamp at %v", x)
	}
}

func TestInterpolateExactMatch(t *testing.T) {
	tbl := sampleTable(t)
	for _, p := range tbl.Points() {
		assert.Equal(t, p.PValue, tbl.PValue(p.Statistic))
	}
}

func TestInterpolateMidpoints(t *testing.T) {
	tbl := sampleTable(t)
	pts := tbl.Points()
	for i := 0; i < len(pts)-1; i++ {
		x := (pts[i].Statistic + pts[i+1].Statistic) / 2
		want := (pts[i].PValue + pts[i+1].PValue) / 2
		got := tbl.PValue(x)
		assert.True(t, scalar.EqualWithinAbs(want, got, 1e-12),
			"midpoint of [%v,%v]: want %v, got %v", pts[i].Statistic, pts[i+1].Statistic, want, got)
	}
}

func TestInterpolateMatchesPiecewiseLinear(t *testing.T) {
	tbl := sampleTable(t)
	pts := tbl.Points()
	xs := make([]float64, len(pts))
	ys := make([]float64, len(pts))
	for i, p := range pts {
		xs[i] = p.Statistic
		ys[i] = p.PValue
	}

	var pl interp.PiecewiseLinear
	require.NoError(t, pl.Fit(xs, ys))

	for x := -5.0; x <= 0.5; x += 0.037 {
		assert.True(t, scalar.EqualWithinAbs(pl.Predict(x), tbl.PValue(x), 1e-12), "x=%v", x)
	}
}

func TestInterpolateMonotone(t *testing.T) {
	tbl, err := NewTable([]Point{
		{-4.0, 0.9},
		{-3.0, 0.6},
		{-2.5, 0.6},
		{-2.0, 0.2},
		{-1.0, 0.01},
	})
	require.NoError(t, err)

	prev := tbl.PValue(-6)
	for x := -6.0; x <= 1.0; x += 0.01 {
		cur := tbl.PValue(x)
		assert.LessOrEqual(t, cur, prev+1e-15, "not non-increasing at x=%v", x)
		prev = cur
	}
}

func TestInterpolateDuplicateStatistics(t *testing.T) {
	tbl, err := NewTable([]Point{
		{-3.0, 0.02},
		{-2.0, 0.08},
		{-2.0, 0.12},
		{-1.0, 0.4},
	})
	require.NoError(t, err)

	p := tbl.PValue(-2.0)
	assert.Contains(t, []float64{0.08, 0.12}, p)
	assert.False(t, math.IsNaN(tbl.PValue(-1.5)))
	assert.True(t, scalar.EqualWithinAbs(0.26, tbl.PValue(-1.5), 1e-12))
}

func TestInterpolateZeroWidthTable(t *testing.T) {
	tbl, err := NewTable([]Point{{-2, 0.05}, {-2, 0.2}})
	require.NoError(t, err)

	assert.Equal(t, 0.05, tbl.PValue(-2))
	assert.Equal(t, 0.05, tbl.PValue(-3))
	assert.Equal(t, 0.2, tbl.PValue(-1))
}

func TestInterpolateInfiniteBounds(t *testing.T) {
	tbl, err := NewTable([]Point{
		{math.Inf(-1), 0.001},
		{-3.0, 0.02},
		{-2.0, 0.1},
		{math.Inf(1), 1.0},
	})
	require.NoError(t, err)

	assert.Equal(t, 0.02, tbl.PValue(-10))
	assert.Equal(t, 0.1, tbl.PValue(5))
	assert.True(t, scalar.EqualWithinAbs(0.06, tbl.PValue(-2.5), 1e-12))
}

func TestInterpolateSinglePoint(t *testing.T) {
	tbl, err := NewTable([]Point{{-2.86, 0.05}})
	require.NoError(t, err)
	assert.Equal(t, 0.05, tbl.PValue(-10))
	assert.Equal(t, 0.05, tbl.PValue(10))
}

func TestNewTableValidation(t *testing.T) {
	_, err := NewTable([]Point{{-2, 0.1}, {-3, 0.01}})
	assert.True(t, adferrors.IsInvalidInput(err))

	_, err = NewTable([]Point{{math.NaN(), 0.1}})
	assert.True(t, adferrors.IsInvalidInput(err))

	_, err = NewTable([]Point{{-2, math.NaN()}})
	assert.True(t, adferrors.IsInvalidInput(err))

	empty, err := NewTable(nil)
	require.NoError(t, err)
	assert.Equal(t, 0, empty.Len())
	assert.Equal(t, EmptyPValue, empty.PValue(-3))
}

func TestNewTableCopiesInput(t *testing.T) {
	pts := []Point{{-3, 0.01}, {-2, 0.1}}
	tbl, err := NewTable(pts)
	require.NoError(t, err)

	pts[0].PValue = 0.9
	assert.Equal(t, 0.01, tbl.At(0).PValue)

	out := tbl.Points()
	out[1].PValue = 0.7
	assert.Equal(t, 0.1, tbl.At(1).PValue)
}

func TestMustTablePanics(t *testing.T) {
	assert.Panics(t, func() { MustTable([]Point{{0, 1}, {-1, 0}}) })
}

func TestDefaultTable(t *testing.T) {
	tbl := Default()
	require.Equal(t, 14, tbl.Len())
	assert.Equal(t, 0.00001, tbl.PValue(-12))
	assert.Equal(t, 0.99, tbl.PValue(1))
	assert.Equal(t, 0.025, tbl.PValue(-3.0))
	assert.True(t, scalar.EqualWithinAbs(0.0375, tbl.PValue(-2.75), 1e-12))
}
