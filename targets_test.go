package proximity_test

import (
	"math"
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/rotisserie/eris"

	"github.com/twpayne/go-proximity"
)

func mustValueGrid(t testing.TB, rows [][]float64) *proximity.ValueGrid {
	t.Helper()
	values, err := proximity.NewValueGrid(rows)
	assert.NoError(t, err)
	return values
}

func TestNewValueGrid(t *testing.T) {
	values := mustValueGrid(t, [][]float64{
		{1, 2, 3},
		{4, 5, 6},
	})
	assert.Equal(t, 2, values.Height)
	assert.Equal(t, 3, values.Width)
	assert.Equal(t, []float64{1, 2, 3, 4, 5, 6}, values.Values)

	value, err := values.Value(proximity.Cell{Row: 1, Col: 2})
	assert.NoError(t, err)
	assert.Equal(t, 6.0, value)

	_, err = values.Value(proximity.Cell{Row: 2, Col: 0})
	assert.True(t, eris.Is(err, proximity.ErrIndexOutOfRange))

	_, err = proximity.NewValueGrid([][]float64{{1, 2}, {3}})
	assert.True(t, eris.Is(err, proximity.ErrShapeMismatch))

	empty := mustValueGrid(t, nil)
	assert.Equal(t, 0, empty.Height)
	assert.Equal(t, 0, empty.Width)
}

func TestLocate(t *testing.T) {
	values := mustValueGrid(t, [][]float64{
		{0, 1, 0},
		{1, math.NaN(), 1},
		{0, 1, 0.5},
	})
	for _, tc := range []struct {
		name     string
		target   float64
		expected proximity.TargetSet
	}{
		{
			name:   "row_major",
			target: 1,
			expected: proximity.TargetSet{
				{Row: 0, Col: 1},
				{Row: 1, Col: 0},
				{Row: 1, Col: 2},
				{Row: 2, Col: 1},
			},
		},
		{
			name:     "exact",
			target:   0.5,
			expected: proximity.TargetSet{{Row: 2, Col: 2}},
		},
		{
			name:     "no_tolerance",
			target:   0.5000000001,
			expected: nil,
		},
		{
			name:     "missing",
			target:   7,
			expected: nil,
		},
		{
			name:     "nan",
			target:   math.NaN(),
			expected: nil,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, proximity.Locate(values, tc.target))
		})
	}
}

func TestTargetSet_MultiPoint(t *testing.T) {
	grid := proximity.Grid{
		OriginX:    100,
		OriginY:    50,
		PixelSizeX: 2,
		PixelSizeY: 4,
		Height:     2,
		Width:      2,
	}
	coords, err := proximity.NewCoordinateGrid(grid, proximity.AnchorCorner)
	assert.NoError(t, err)

	targets := proximity.TargetSet{{Row: 0, Col: 1}, {Row: 1, Col: 0}}
	mp, err := targets.MultiPoint(coords)
	assert.NoError(t, err)
	assert.Equal(t, 2, mp.NumPoints())
	assert.Equal(t, []float64{102, 50, 100, 46}, mp.FlatCoords())

	_, err = proximity.TargetSet{{Row: 2, Col: 0}}.MultiPoint(coords)
	assert.True(t, eris.Is(err, proximity.ErrIndexOutOfRange))
}

func TestTargetIndex(t *testing.T) {
	values := mustValueGrid(t, [][]float64{
		{1, 2},
		{2, 3},
	})
	index, err := proximity.NewTargetIndex(values, 2)
	assert.NoError(t, err)
	assert.Equal(t, values, index.Values())

	for range 2 {
		assert.Equal(t, proximity.TargetSet{{Row: 0, Col: 1}, {Row: 1, Col: 0}}, index.Locate(2))
		assert.Equal(t, proximity.TargetSet{{Row: 1, Col: 1}}, index.Locate(3))
		assert.Equal(t, proximity.TargetSet{{Row: 0, Col: 0}}, index.Locate(1))
		assert.Equal(t, proximity.TargetSet(nil), index.Locate(math.NaN()))
	}

	_, err = proximity.NewTargetIndex(values, 0)
	assert.Error(t, err)
}
