package proximity

import (
	"math"

	"github.com/rotisserie/eris"
)

// A ScaleMode selects how the pixel scale factor is derived from the pixel
// sizes.
type ScaleMode int

const (
	// ScaleGeometricMean divides distances by sqrt(sx*sy). This is the
	// historical behavior and the default.
	ScaleGeometricMean ScaleMode = iota
	// ScaleDiagonal divides distances by the length of the pixel diagonal,
	// sqrt(sx*sx+sy*sy).
	ScaleDiagonal
)

var scaleModeNames = map[ScaleMode]string{
	ScaleGeometricMean: "geometric_mean",
	ScaleDiagonal:      "diagonal",
}

func (m ScaleMode) String() string {
	if name, ok := scaleModeNames[m]; ok {
		return name
	}
	return "unknown"
}

// ParseScaleMode returns the ScaleMode called name.
func ParseScaleMode(name string) (ScaleMode, error) {
	for mode, modeName := range scaleModeNames {
		if modeName == name {
			return mode, nil
		}
	}
	return 0, eris.Errorf("proximity: unknown scale mode %q", name)
}

// ScaleFactor returns the factor that converts map-unit distances into pixel
// units for pixels of size sx by sy.
func ScaleFactor(sx, sy float64, mode ScaleMode) (float64, error) {
	if !(sx > 0) || !(sy > 0) {
		return 0, eris.Wrapf(ErrDegenerateTransform, "pixel size %gx%g", sx, sy)
	}
	switch mode {
	case ScaleGeometricMean:
		return math.Sqrt(sx * sy), nil
	case ScaleDiagonal:
		return math.Hypot(sx, sy), nil
	default:
		return 0, eris.Errorf("proximity: unknown scale mode %d", mode)
	}
}

// Normalize returns a copy of field with every cell divided by scale.
func Normalize(field *Field, scale float64) *Field {
	values := make([]float64, len(field.Values))
	for i, value := range field.Values {
		values[i] = value / scale
	}
	return &Field{
		Height: field.Height,
		Width:  field.Width,
		Values: values,
	}
}
