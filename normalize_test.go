package proximity_test

import (
	"math"
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/rotisserie/eris"

	"github.com/twpayne/go-proximity"
)

func TestScaleFactor(t *testing.T) {
	for _, tc := range []struct {
		name        string
		sx          float64
		sy          float64
		mode        proximity.ScaleMode
		expected    float64
		expectedErr error
	}{
		{
			name:     "unit",
			sx:       1,
			sy:       1,
			expected: 1,
		},
		{
			name:     "geometric_mean",
			sx:       4,
			sy:       9,
			expected: 6,
		},
		{
			name:     "diagonal",
			sx:       3,
			sy:       4,
			mode:     proximity.ScaleDiagonal,
			expected: 5,
		},
		{
			name:        "zero",
			sx:          0,
			sy:          1,
			expectedErr: proximity.ErrDegenerateTransform,
		},
		{
			name:        "negative",
			sx:          -1,
			sy:          -1,
			expectedErr: proximity.ErrDegenerateTransform,
		},
		{
			name:        "nan",
			sx:          math.NaN(),
			sy:          1,
			expectedErr: proximity.ErrDegenerateTransform,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			actual, err := proximity.ScaleFactor(tc.sx, tc.sy, tc.mode)
			if tc.expectedErr != nil {
				assert.True(t, eris.Is(err, tc.expectedErr))
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.expected, actual)
		})
	}

	_, err := proximity.ScaleFactor(1, 1, proximity.ScaleMode(99))
	assert.Error(t, err)
}

func TestNormalize(t *testing.T) {
	field := &proximity.Field{
		Height: 1,
		Width:  4,
		Values: []float64{0, 3, 7.5, math.Inf(1)},
	}
	actual := proximity.Normalize(field, 1.5)
	assert.Equal(t, &proximity.Field{
		Height: 1,
		Width:  4,
		Values: []float64{0, 2, 5, math.Inf(1)},
	}, actual)
	// The input is not modified.
	assert.Equal(t, []float64{0, 3, 7.5, math.Inf(1)}, field.Values)

	empty := proximity.Normalize(&proximity.Field{}, 2)
	assert.Equal(t, 0, len(empty.Values))
}

func TestParseScaleMode(t *testing.T) {
	for _, mode := range []proximity.ScaleMode{proximity.ScaleGeometricMean, proximity.ScaleDiagonal} {
		actual, err := proximity.ParseScaleMode(mode.String())
		assert.NoError(t, err)
		assert.Equal(t, mode, actual)
	}
	_, err := proximity.ParseScaleMode("hypotenuse")
	assert.Error(t, err)
}
