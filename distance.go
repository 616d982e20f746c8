package proximity

import (
	"context"
	"math"
	"runtime"
	"slices"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// A Strategy selects how a distance field is scheduled. All strategies
// produce bit-identical fields.
type Strategy int

const (
	// StrategySequential folds one target at a time into a single
	// accumulator.
	StrategySequential Strategy = iota
	// StrategyTargets splits the targets between workers, each folding into
	// a private accumulator, and reduces the accumulators once at the end.
	StrategyTargets
	// StrategyRows splits the rows between workers, each iterating over all
	// targets.
	StrategyRows
)

var strategyNames = map[Strategy]string{
	StrategySequential: "sequential",
	StrategyTargets:    "targets",
	StrategyRows:       "rows",
}

func (s Strategy) String() string {
	if name, ok := strategyNames[s]; ok {
		return name
	}
	return "unknown"
}

// ParseStrategy returns the Strategy called name.
func ParseStrategy(name string) (Strategy, error) {
	for strategy, strategyName := range strategyNames {
		if strategyName == name {
			return strategy, nil
		}
	}
	return 0, eris.Errorf("proximity: unknown strategy %q", name)
}

// A Field is a raster of distances in row-major order. Cells with no
// reachable target hold +Inf.
type Field struct {
	Height int
	Width  int
	Values []float64
}

func newInfField(height, width int) *Field {
	values := make([]float64, height*width)
	for i := range values {
		values[i] = math.Inf(1)
	}
	return &Field{
		Height: height,
		Width:  width,
		Values: values,
	}
}

// At returns the value at cell.
func (f *Field) At(cell Cell) (float64, error) {
	if cell.Row < 0 || f.Height <= cell.Row || cell.Col < 0 || f.Width <= cell.Col {
		return 0, eris.Wrapf(ErrIndexOutOfRange, "cell (%d, %d) in %dx%d field", cell.Row, cell.Col, f.Height, f.Width)
	}
	return f.Values[cell.Row*f.Width+cell.Col], nil
}

// AllInfinite returns whether every cell of f is +Inf, which is the case when
// there were no targets. An empty field is not all infinite.
func (f *Field) AllInfinite() bool {
	if len(f.Values) == 0 {
		return false
	}
	for _, value := range f.Values {
		if !math.IsInf(value, 1) {
			return false
		}
	}
	return true
}

// Rows returns a copy of f as a slice of rows.
func (f *Field) Rows() [][]float64 {
	rows := make([][]float64, f.Height)
	for row := range f.Height {
		rows[row] = slices.Clone(f.Values[row*f.Width : (row+1)*f.Width])
	}
	return rows
}

// Dense returns a copy of f as a matrix, or nil if f has no cells.
func (f *Field) Dense() *mat.Dense {
	if f.Height == 0 || f.Width == 0 {
		return nil
	}
	return mat.NewDense(f.Height, f.Width, slices.Clone(f.Values))
}

// Range returns the smallest and largest finite values in f. ok is false if f
// has no finite values.
func (f *Field) Range() (lo, hi float64, ok bool) {
	finite := make([]float64, 0, len(f.Values))
	for _, value := range f.Values {
		if !math.IsInf(value, 0) && !math.IsNaN(value) {
			finite = append(finite, value)
		}
	}
	if len(finite) == 0 {
		return 0, 0, false
	}
	return floats.Min(finite), floats.Max(finite), true
}

// A DistanceOption sets an option on a distance computation.
type DistanceOption func(*distanceOptions)

type distanceOptions struct {
	strategy Strategy
	workers  int
}

// WithDistanceStrategy sets the scheduling strategy.
func WithDistanceStrategy(strategy Strategy) DistanceOption {
	return func(o *distanceOptions) {
		o.strategy = strategy
	}
}

// WithDistanceWorkers sets the maximum number of concurrent workers used by
// the parallel strategies. Zero or less means runtime.GOMAXPROCS(0).
func WithDistanceWorkers(workers int) DistanceOption {
	return func(o *distanceOptions) {
		o.workers = workers
	}
}

// ComputeDistanceField returns, for every cell in coords, the Euclidean
// distance in map units to the nearest of targets. If there are no targets
// then every cell is +Inf.
//
// Cancellation of ctx is checked between targets.
func ComputeDistanceField(ctx context.Context, coords *CoordinateGrid, targets []Point, options ...DistanceOption) (*Field, error) {
	o := distanceOptions{
		strategy: StrategySequential,
	}
	for _, option := range options {
		option(&o)
	}
	if o.workers <= 0 {
		o.workers = runtime.GOMAXPROCS(0)
	}

	g := coords.Grid()
	field := newInfField(g.Height, g.Width)
	if len(coords.points) == 0 || len(targets) == 0 {
		return field, nil
	}

	var err error
	switch o.strategy {
	case StrategySequential:
		err = foldTargets(ctx, coords.points, targets, field.Values)
	case StrategyTargets:
		err = foldTargetsParallel(ctx, coords.points, targets, field.Values, o.workers)
	case StrategyRows:
		err = foldRowsParallel(ctx, coords.points, g.Width, targets, field.Values, o.workers)
	default:
		return nil, eris.Errorf("proximity: unknown strategy %d", o.strategy)
	}
	if err != nil {
		return nil, err
	}

	cellsTotal.Add(float64(len(field.Values)))
	targetsTotal.Add(float64(len(targets)))
	return field, nil
}

// DistanceToMultiPoint returns, for every cell in coords, the Euclidean
// distance in map units to the nearest point of mp. Only the X and Y
// ordinates of mp are used.
func DistanceToMultiPoint(ctx context.Context, coords *CoordinateGrid, mp *geom.MultiPoint, options ...DistanceOption) (*Field, error) {
	var targets []Point
	if mp != nil && mp.Stride() >= 2 {
		flatCoords, stride := mp.FlatCoords(), mp.Stride()
		targets = make([]Point, 0, len(flatCoords)/stride)
		for i := 0; i+1 < len(flatCoords); i += stride {
			targets = append(targets, Point{X: flatCoords[i], Y: flatCoords[i+1]})
		}
	}
	return ComputeDistanceField(ctx, coords, targets, options...)
}

// distances sets each element of dst to the distance from target to the
// corresponding element of points.
func distances(dst []float64, points []Point, target Point) {
	for i, point := range points {
		dx := point.X - target.X
		dy := point.Y - target.Y
		dst[i] = math.Sqrt(dx*dx + dy*dy)
	}
}

// minInto sets each element of acc to the minimum of itself and the
// corresponding element of src.
func minInto(acc, src []float64) {
	for i, value := range src {
		if value < acc[i] {
			acc[i] = value
		}
	}
}

// foldTargets folds the distances from each of targets into acc.
func foldTargets(ctx context.Context, points []Point, targets []Point, acc []float64) error {
	scratch := make([]float64, len(points))
	for _, target := range targets {
		if err := ctx.Err(); err != nil {
			return eris.Wrap(err, "proximity: distance field")
		}
		distances(scratch, points, target)
		minInto(acc, scratch)
	}
	return nil
}

// foldTargetsParallel folds targets into private accumulators concurrently
// and then reduces them into acc.
func foldTargetsParallel(ctx context.Context, points []Point, targets []Point, acc []float64, workers int) error {
	chunks := split(len(targets), workers)
	partials := make([][]float64, len(chunks))
	g, gctx := errgroup.WithContext(ctx)
	for i, chunk := range chunks {
		partials[i] = newInfField(1, len(points)).Values
		g.Go(func() error {
			return foldTargets(gctx, points, targets[chunk.start:chunk.end], partials[i])
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	for _, partial := range partials {
		minInto(acc, partial)
	}
	return nil
}

// foldRowsParallel splits acc into bands of whole rows and folds every
// target into each band concurrently.
func foldRowsParallel(ctx context.Context, points []Point, width int, targets []Point, acc []float64, workers int) error {
	height := len(points) / width
	g, gctx := errgroup.WithContext(ctx)
	for _, chunk := range split(height, workers) {
		start, end := chunk.start*width, chunk.end*width
		g.Go(func() error {
			return foldTargets(gctx, points[start:end], targets, acc[start:end])
		})
	}
	return g.Wait()
}

type span struct {
	start int
	end   int
}

// split splits [0, n) into at most parts contiguous spans of nearly equal
// length.
func split(n, parts int) []span {
	parts = max(min(parts, n), 1)
	spans := make([]span, 0, parts)
	for i := range parts {
		spans = append(spans, span{
			start: i * n / parts,
			end:   (i + 1) * n / parts,
		})
	}
	return spans
}
