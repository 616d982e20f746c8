package proximity

import (
	"math"

	"github.com/rotisserie/eris"
)

// A Cell is a grid index.
type Cell struct {
	Row int
	Col int
}

// A Point is a coordinate in the grid's map units.
type Point struct {
	X float64
	Y float64
}

// An Anchor selects which point of a pixel a cell's coordinate refers to.
type Anchor int

const (
	// AnchorCorner maps a cell to its upper left corner.
	AnchorCorner Anchor = iota
	// AnchorCenter maps a cell to its center.
	AnchorCenter
)

// A Grid describes the shape and axis-aligned affine transform of a raster.
// Rotation and shear terms are not supported.
type Grid struct {
	OriginX    float64
	OriginY    float64
	PixelSizeX float64
	PixelSizeY float64
	Height     int
	Width      int
}

// Validate returns an error if g cannot be used to compute distances.
func (g Grid) Validate() error {
	if !(g.PixelSizeX > 0) || !(g.PixelSizeY > 0) {
		return eris.Wrapf(ErrDegenerateTransform, "pixel size %gx%g", g.PixelSizeX, g.PixelSizeY)
	}
	if g.Height < 0 || g.Width < 0 {
		return eris.Wrapf(ErrShapeMismatch, "grid is %dx%d", g.Height, g.Width)
	}
	return nil
}

// Contains returns whether cell lies inside g.
func (g Grid) Contains(cell Cell) bool {
	return 0 <= cell.Row && cell.Row < g.Height && 0 <= cell.Col && cell.Col < g.Width
}

// Point returns the map coordinate of cell's upper left corner.
func (g Grid) Point(cell Cell) (Point, error) {
	return g.AnchoredPoint(cell, AnchorCorner)
}

// AnchoredPoint returns the map coordinate of cell at anchor.
func (g Grid) AnchoredPoint(cell Cell, anchor Anchor) (Point, error) {
	if !g.Contains(cell) {
		return Point{}, eris.Wrapf(ErrIndexOutOfRange, "cell (%d, %d) in %dx%d grid", cell.Row, cell.Col, g.Height, g.Width)
	}
	return g.point(cell, anchor), nil
}

func (g Grid) point(cell Cell, anchor Anchor) Point {
	col, row := float64(cell.Col), float64(cell.Row)
	if anchor == AnchorCenter {
		col += 0.5
		row += 0.5
	}
	return Point{
		X: g.OriginX + col*g.PixelSizeX,
		Y: g.OriginY - row*g.PixelSizeY,
	}
}

// CellAt returns the cell containing p.
func (g Grid) CellAt(p Point) (Cell, bool) {
	col := math.Floor((p.X - g.OriginX) / g.PixelSizeX)
	row := math.Floor((g.OriginY - p.Y) / g.PixelSizeY)
	if !(0 <= row && row < float64(g.Height) && 0 <= col && col < float64(g.Width)) {
		return Cell{}, false
	}
	return Cell{Row: int(row), Col: int(col)}, true
}

// A CoordinateGrid holds the map coordinate of every cell of a grid in
// row-major order. It is never modified after construction.
type CoordinateGrid struct {
	grid   Grid
	anchor Anchor
	points []Point
}

// NewCoordinateGrid returns the coordinates of every cell in g.
func NewCoordinateGrid(g Grid, anchor Anchor) (*CoordinateGrid, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	points := make([]Point, g.Height*g.Width)
	for row := range g.Height {
		for col := range g.Width {
			points[row*g.Width+col] = g.point(Cell{Row: row, Col: col}, anchor)
		}
	}
	return &CoordinateGrid{
		grid:   g,
		anchor: anchor,
		points: points,
	}, nil
}

// Grid returns c's grid.
func (c *CoordinateGrid) Grid() Grid {
	return c.grid
}

// Anchor returns the pixel anchor of c's coordinates.
func (c *CoordinateGrid) Anchor() Anchor {
	return c.anchor
}

// Len returns the number of cells in c.
func (c *CoordinateGrid) Len() int {
	return len(c.points)
}

// At returns the coordinate of cell.
func (c *CoordinateGrid) At(cell Cell) (Point, error) {
	if !c.grid.Contains(cell) {
		return Point{}, eris.Wrapf(ErrIndexOutOfRange, "cell (%d, %d) in %dx%d grid", cell.Row, cell.Col, c.grid.Height, c.grid.Width)
	}
	return c.points[cell.Row*c.grid.Width+cell.Col], nil
}
