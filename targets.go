package proximity

import (
	"math"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
)

// A ValueGrid is a raster of cell values in row-major order.
type ValueGrid struct {
	Height int
	Width  int
	Values []float64
}

// NewValueGrid returns a new ValueGrid from rows. All rows must have the same
// length.
func NewValueGrid(rows [][]float64) (*ValueGrid, error) {
	v := &ValueGrid{
		Height: len(rows),
	}
	if len(rows) > 0 {
		v.Width = len(rows[0])
	}
	v.Values = make([]float64, 0, v.Height*v.Width)
	for i, row := range rows {
		if len(row) != v.Width {
			return nil, eris.Wrapf(ErrShapeMismatch, "row %d has %d values, expected %d", i, len(row), v.Width)
		}
		v.Values = append(v.Values, row...)
	}
	return v, nil
}

// Value returns the value at cell.
func (v *ValueGrid) Value(cell Cell) (float64, error) {
	if cell.Row < 0 || v.Height <= cell.Row || cell.Col < 0 || v.Width <= cell.Col {
		return 0, eris.Wrapf(ErrIndexOutOfRange, "cell (%d, %d) in %dx%d value grid", cell.Row, cell.Col, v.Height, v.Width)
	}
	return v.Values[cell.Row*v.Width+cell.Col], nil
}

// checkShape returns an error if v does not match g.
func (v *ValueGrid) checkShape(g Grid) error {
	if v.Height != g.Height || v.Width != g.Width || len(v.Values) != v.Height*v.Width {
		return eris.Wrapf(ErrShapeMismatch, "value grid is %dx%d with %d values, grid is %dx%d",
			v.Height, v.Width, len(v.Values), g.Height, g.Width)
	}
	return nil
}

// A TargetSet is a set of cells in row-major scan order.
type TargetSet []Cell

// Locate returns the cells of values that are exactly equal to target. No
// tolerance is applied, so a NaN target never matches.
func Locate(values *ValueGrid, target float64) TargetSet {
	var targets TargetSet
	for i, value := range values.Values {
		if value == target {
			targets = append(targets, Cell{
				Row: i / values.Width,
				Col: i % values.Width,
			})
		}
	}
	return targets
}

// Points returns the coordinates of s in coords. Cells outside coords are
// reported as ErrIndexOutOfRange.
func (s TargetSet) Points(coords *CoordinateGrid) ([]Point, error) {
	points := make([]Point, len(s))
	for i, cell := range s {
		point, err := coords.At(cell)
		if err != nil {
			return nil, err
		}
		points[i] = point
	}
	return points, nil
}

// MultiPoint returns the coordinates of s in coords as a MultiPoint.
func (s TargetSet) MultiPoint(coords *CoordinateGrid) (*geom.MultiPoint, error) {
	points, err := s.Points(coords)
	if err != nil {
		return nil, err
	}
	flatCoords := make([]float64, 0, 2*len(points))
	for _, point := range points {
		flatCoords = append(flatCoords, point.X, point.Y)
	}
	return geom.NewMultiPointFlat(geom.XY, flatCoords), nil
}

// A TargetIndex memoizes the target sets of a single ValueGrid.
type TargetIndex struct {
	mutex  sync.Mutex
	values *ValueGrid
	cache  *lru.Cache[float64, TargetSet]
}

// NewTargetIndex returns a new TargetIndex over values that remembers the
// target sets of up to size target values.
func NewTargetIndex(values *ValueGrid, size int) (*TargetIndex, error) {
	cache, err := lru.NewWithEvict(size, func(float64, TargetSet) {
		targetCacheEvictions.Inc()
	})
	if err != nil {
		return nil, eris.Wrap(err, "proximity: target cache")
	}
	return &TargetIndex{
		values: values,
		cache:  cache,
	}, nil
}

// Values returns the value grid indexed by x.
func (x *TargetIndex) Values() *ValueGrid {
	return x.values
}

// Locate returns the target set for target, using x's cache if possible.
func (x *TargetIndex) Locate(target float64) TargetSet {
	// NaN keys can never be found again, so they would only leak entries.
	if math.IsNaN(target) {
		return nil
	}

	if targets, ok := x.cache.Get(target); ok {
		targetCacheHits.Inc()
		return targets
	}

	x.mutex.Lock()
	defer x.mutex.Unlock()

	if targets, ok := x.cache.Get(target); ok {
		targetCacheHits.Inc()
		return targets
	}

	targetCacheMisses.Inc()
	targets := Locate(x.values, target)
	x.cache.Add(target, targets)
	return targets
}
