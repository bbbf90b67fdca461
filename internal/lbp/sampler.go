package lbp

import (
	"math"
	"sync"
)

// offsetTable holds the P circular sample offsets for one (P, R) pair.
// Offsets are rounded to 5 decimals so that points on the axes land exactly
// on pixel centers.
type offsetTable struct {
	dy, dx []float64
}

func newOffsetTable(p int, r float64) *offsetTable {
	t := &offsetTable{
		dy: make([]float64, p),
		dx: make([]float64, p),
	}
	for i := 0; i < p; i++ {
		angle := 2 * math.Pi * float64(i) / float64(p)
		t.dy[i] = round5(r * math.Sin(angle))
		t.dx[i] = round5(r * math.Cos(angle))
	}
	return t
}

func round5(v float64) float64 {
	r := math.Round(v*1e5) / 1e5
	if r == 0 {
		return 0 // drop negative zero
	}
	return r
}

type offsetKey struct {
	p int
	r float64
}

// offsetCache shares tables across calls; tables are read-only once built.
type offsetCache struct {
	tables sync.Map
}

func (c *offsetCache) get(p int, r float64) *offsetTable {
	key := offsetKey{p: p, r: r}
	if t, ok := c.tables.Load(key); ok {
		return t.(*offsetTable)
	}
	t, _ := c.tables.LoadOrStore(key, newOffsetTable(p, r))
	return t.(*offsetTable)
}

// plane is a read-only view of a 2-dimensional image
type plane struct {
	data       []float64
	rows, cols int
}

// at reads a pixel, replicating the nearest edge pixel outside the bounds
func (pl plane) at(y, x int) float64 {
	y = min(max(y, 0), pl.rows-1)
	x = min(max(x, 0), pl.cols-1)
	return pl.data[y*pl.cols+x]
}

// bilinear samples the image at a fractional position. Interpolation is
// written as lerps so that equal neighbors reproduce their value exactly.
func (pl plane) bilinear(y, x float64) float64 {
	y0 := math.Floor(y)
	x0 := math.Floor(x)
	fy := y - y0
	fx := x - x0
	iy, ix := int(y0), int(x0)

	v00 := pl.at(iy, ix)
	v01 := pl.at(iy, ix+1)
	v10 := pl.at(iy+1, ix)
	v11 := pl.at(iy+1, ix+1)

	top := v00 + fx*(v01-v00)
	bottom := v10 + fx*(v11-v10)
	return top + fy*(bottom-top)
}

// sample fills out with the P neighbor values around (y, x)
func (pl plane) sample(t *offsetTable, y, x int, out []float64) {
	fy, fx := float64(y), float64(x)
	for i := range out {
		out[i] = pl.bilinear(fy+t.dy[i], fx+t.dx[i])
	}
}
