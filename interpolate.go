package proximity

import (
	"context"
	"math"
)

// A Raster is a grid of samples that can be read by cell.
type Raster interface {
	Samples(ctx context.Context, cells []Cell) ([]float64, error)
	Grid() Grid
}

type fieldRaster struct {
	field *Field
	grid  Grid
}

// Raster returns f as a Raster georeferenced by grid.
func (f *Field) Raster(grid Grid) Raster {
	return &fieldRaster{
		field: f,
		grid:  grid,
	}
}

// Samples returns the values at cells. Cells outside the field are NaN.
func (r *fieldRaster) Samples(ctx context.Context, cells []Cell) ([]float64, error) {
	samples := make([]float64, len(cells))
	for i, cell := range cells {
		value, err := r.field.At(cell)
		if err != nil {
			samples[i] = math.NaN()
			continue
		}
		samples[i] = value
	}
	return samples, nil
}

func (r *fieldRaster) Grid() Grid {
	return r.grid
}

// SampleNearest returns the value of the cell of raster containing each of
// points. Points outside raster are NaN.
func SampleNearest(ctx context.Context, raster Raster, points []Point) ([]float64, error) {
	grid := raster.Grid()
	cells := make([]Cell, 0, len(points))
	indexes := make([]int, 0, len(points))
	result := make([]float64, len(points))
	for i, point := range points {
		cell, ok := grid.CellAt(point)
		if !ok {
			result[i] = math.NaN()
			continue
		}
		cells = append(cells, cell)
		indexes = append(indexes, i)
	}
	samples, err := raster.Samples(ctx, cells)
	if err != nil {
		return nil, err
	}
	for i, index := range indexes {
		result[index] = samples[i]
	}
	return result, nil
}

// InterpolateBilinear returns the values of raster at points, interpolated
// bilinearly between the centers of the four surrounding cells. Points that
// need a cell outside raster are NaN.
func InterpolateBilinear(ctx context.Context, raster Raster, points []Point) ([]float64, error) {
	grid := raster.Grid()
	cells := make([]Cell, 4*len(points))
	weights := make([]float64, 4*len(points))
	for i, point := range points {
		fx := (point.X-grid.OriginX)/grid.PixelSizeX - 0.5
		fy := (grid.OriginY-point.Y)/grid.PixelSizeY - 0.5
		c0, r0 := math.Floor(fx), math.Floor(fy)
		dx, dy := fx-c0, fy-r0
		col, row := int(c0), int(r0)
		cells[4*i+0] = Cell{Row: row, Col: col}
		cells[4*i+1] = Cell{Row: row, Col: col + 1}
		cells[4*i+2] = Cell{Row: row + 1, Col: col}
		cells[4*i+3] = Cell{Row: row + 1, Col: col + 1}
		weights[4*i+0] = (1 - dx) * (1 - dy)
		weights[4*i+1] = dx * (1 - dy)
		weights[4*i+2] = (1 - dx) * dy
		weights[4*i+3] = dx * dy
	}
	samples, err := raster.Samples(ctx, cells)
	if err != nil {
		return nil, err
	}
	result := make([]float64, len(points))
	for i := range points {
		result[i] = 0
		for j := 4 * i; j < 4*i+4; j++ {
			// Zero-weight cells may be outside the raster or infinite.
			if weights[j] == 0 {
				continue
			}
			result[i] += samples[j] * weights[j]
		}
	}
	return result, nil
}
