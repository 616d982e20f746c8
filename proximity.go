// Package proximity computes raster proximity fields: for every cell of a
// grid, the Euclidean distance to the nearest cell holding a target value,
// expressed in pixels.
package proximity

import (
	"context"

	"github.com/maypok86/otter/v2"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

type coordinateGridKey struct {
	grid   Grid
	anchor Anchor
}

// A Proximity computes proximity fields.
type Proximity struct {
	anchor              Anchor
	scaleMode           ScaleMode
	strategy            Strategy
	workers             int
	coordinateCacheSize int
	coordinateCache     *otter.Cache[coordinateGridKey, *CoordinateGrid]
	logger              *zap.Logger
}

// An Option sets an option on a Proximity.
type Option func(*Proximity)

// New returns a new Proximity with the given options.
func New(options ...Option) (*Proximity, error) {
	p := &Proximity{
		anchor:    AnchorCorner,
		scaleMode: ScaleGeometricMean,
		strategy:  StrategySequential,
	}
	for _, option := range options {
		option(p)
	}
	if p.logger == nil {
		p.logger = zap.L()
	}

	if p.coordinateCacheSize > 0 {
		var err error
		p.coordinateCache, err = otter.New(&otter.Options[coordinateGridKey, *CoordinateGrid]{
			MaximumSize: p.coordinateCacheSize,
		})
		if err != nil {
			return nil, eris.Wrap(err, "proximity: coordinate cache")
		}
	}
	return p, nil
}

// WithAnchor sets the point of each pixel that its coordinate refers to.
// Distances do not depend on it.
func WithAnchor(anchor Anchor) Option {
	return func(p *Proximity) {
		p.anchor = anchor
	}
}

// WithScaleMode sets how distances are converted into pixel units.
func WithScaleMode(scaleMode ScaleMode) Option {
	return func(p *Proximity) {
		p.scaleMode = scaleMode
	}
}

// WithStrategy sets how distance fields are scheduled.
func WithStrategy(strategy Strategy) Option {
	return func(p *Proximity) {
		p.strategy = strategy
	}
}

// WithWorkers sets the number of workers used by parallel strategies.
func WithWorkers(workers int) Option {
	return func(p *Proximity) {
		p.workers = workers
	}
}

// WithCoordinateCacheSize sets the number of coordinate grids kept between
// computations. Zero disables the cache.
func WithCoordinateCacheSize(coordinateCacheSize int) Option {
	return func(p *Proximity) {
		p.coordinateCacheSize = coordinateCacheSize
	}
}

// WithLogger sets the logger. The default is zap.L().
func WithLogger(logger *zap.Logger) Option {
	return func(p *Proximity) {
		p.logger = logger
	}
}

// Compute returns the distance in pixels from every cell of grid to the
// nearest cell of values equal to target. If no cell equals target then every
// cell of the result is +Inf.
func Compute(ctx context.Context, grid Grid, values *ValueGrid, target float64) (*Field, error) {
	p, err := New()
	if err != nil {
		return nil, err
	}
	return p.Compute(ctx, grid, values, target)
}

// Compute returns the distance in pixels from every cell of grid to the
// nearest cell of values equal to target.
func (p *Proximity) Compute(ctx context.Context, grid Grid, values *ValueGrid, target float64) (*Field, error) {
	return p.compute(ctx, grid, values, target, func() TargetSet {
		return Locate(values, target)
	})
}

// ComputeTargets returns a proximity field for each of targets over the value
// grid of index.
func (p *Proximity) ComputeTargets(ctx context.Context, grid Grid, index *TargetIndex, targets ...float64) (map[float64]*Field, error) {
	fields := make(map[float64]*Field, len(targets))
	for _, target := range targets {
		field, err := p.compute(ctx, grid, index.Values(), target, func() TargetSet {
			return index.Locate(target)
		})
		if err != nil {
			return nil, err
		}
		fields[target] = field
	}
	return fields, nil
}

func (p *Proximity) compute(ctx context.Context, grid Grid, values *ValueGrid, target float64, locate func() TargetSet) (*Field, error) {
	if err := grid.Validate(); err != nil {
		return nil, err
	}
	scale, err := ScaleFactor(grid.PixelSizeX, grid.PixelSizeY, p.scaleMode)
	if err != nil {
		return nil, err
	}
	if err := values.checkShape(grid); err != nil {
		return nil, err
	}

	coords, err := p.coordinateGrid(ctx, grid)
	if err != nil {
		return nil, err
	}

	targetSet := locate()
	points, err := targetSet.Points(coords)
	if err != nil {
		return nil, err
	}

	p.logger.Debug("proximity: computing distance field",
		zap.Int("height", grid.Height),
		zap.Int("width", grid.Width),
		zap.Float64("target", target),
		zap.Int("targets", len(points)),
		zap.Stringer("strategy", p.strategy),
		zap.Stringer("scale_mode", p.scaleMode),
	)
	if len(points) == 0 && coords.Len() > 0 {
		emptyTargetSetsTotal.Inc()
		p.logger.Warn("proximity: no cells equal target value",
			zap.Float64("target", target),
		)
	}

	field, err := ComputeDistanceField(ctx, coords, points,
		WithDistanceStrategy(p.strategy),
		WithDistanceWorkers(p.workers),
	)
	if err != nil {
		return nil, err
	}
	computationsTotal.Inc()
	return Normalize(field, scale), nil
}

// coordinateGrid returns the coordinate grid for grid, using p's cache if
// possible.
func (p *Proximity) coordinateGrid(ctx context.Context, grid Grid) (*CoordinateGrid, error) {
	if p.coordinateCache == nil {
		return NewCoordinateGrid(grid, p.anchor)
	}
	loaded := false
	coords, err := p.coordinateCache.Get(ctx, coordinateGridKey{grid: grid, anchor: p.anchor}, otter.LoaderFunc[coordinateGridKey, *CoordinateGrid](
		func(ctx context.Context, key coordinateGridKey) (*CoordinateGrid, error) {
			loaded = true
			return NewCoordinateGrid(key.grid, key.anchor)
		},
	))
	if err != nil {
		return nil, err
	}
	if loaded {
		coordinateCacheMisses.Inc()
	} else {
		coordinateCacheHits.Inc()
	}
	return coords, nil
}
