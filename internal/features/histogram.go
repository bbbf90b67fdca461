package features

import (
	"fmt"
	"math"
	"sort"
	"sync"

	"gonum.org/v1/gonum/stat"

	apperrors "github.com/anime-shed/texture-inspector-go/internal/errors"
	"github.com/anime-shed/texture-inspector-go/internal/lbp"
	"github.com/anime-shed/texture-inspector-go/pkg/ndarray"
	"github.com/anime-shed/texture-inspector-go/pkg/validation"
)

// MaxHistogramBins bounds the code space a histogram may cover. default and
// ror with more than 16 points exceed it.
const MaxHistogramBins = 1 << 16

var scratchPool = sync.Pool{
	New: func() interface{} {
		s := make([]float64, 0, 1024)
		return &s
	},
}

// UniformHistogram counts the codes of a uniform pattern image. Bin k holds
// the number of pixels with code k, for k in [0, P+2).
func UniformHistogram(codes *ndarray.Array, p int) ([]float64, error) {
	return Histogram(codes, lbp.Uniform, p)
}

// Histogram counts the codes of a pattern image produced with method and p
// sample points. A code outside the method's code space is an error.
func Histogram(codes *ndarray.Array, method lbp.Method, p int) ([]float64, error) {
	if err := validation.CheckND(codes, "lbp", 2); err != nil {
		return nil, err
	}
	bins, err := binsFor(method, p)
	if err != nil {
		return nil, err
	}
	return histogramOf(codes.Data(), bins)
}

// GridHistogram splits the pattern image into gridRows x gridCols cells and
// concatenates the cell histograms in row-major cell order. Cell edges are
// spread as evenly as the image allows.
func GridHistogram(codes *ndarray.Array, method lbp.Method, p, gridRows, gridCols int) ([]float64, error) {
	if err := validation.CheckND(codes, "lbp", 2); err != nil {
		return nil, err
	}
	bins, err := binsFor(method, p)
	if err != nil {
		return nil, err
	}

	rows, cols, _ := codes.Dims2()
	if gridRows < 1 || gridCols < 1 || gridRows > rows || gridCols > cols {
		return nil, apperrors.NewInvalidParameterError(
			fmt.Sprintf("grid %dx%d does not fit a %dx%d image", gridRows, gridCols, rows, cols), nil)
	}

	out := make([]float64, 0, gridRows*gridCols*bins)
	cell := make([]float64, 0, (rows/gridRows+1)*(cols/gridCols+1))
	for gy := 0; gy < gridRows; gy++ {
		y0, y1 := gy*rows/gridRows, (gy+1)*rows/gridRows
		for gx := 0; gx < gridCols; gx++ {
			x0, x1 := gx*cols/gridCols, (gx+1)*cols/gridCols
			cell = cell[:0]
			for y := y0; y < y1; y++ {
				cell = append(cell, codes.Row(y)[x0:x1]...)
			}
			h, err := histogramOf(cell, bins)
			if err != nil {
				return nil, err
			}
			out = append(out, h...)
		}
	}
	return out, nil
}

func binsFor(method lbp.Method, p int) (int, error) {
	if !method.IsInteger() {
		return 0, apperrors.NewInvalidParameterError(
			fmt.Sprintf("method %s has no discrete code space", method), nil)
	}
	if p < 1 || p > lbp.MaxPoints {
		return 0, apperrors.NewInvalidParameterError(
			fmt.Sprintf("P must be in [1, %d], got %d", lbp.MaxPoints, p), nil)
	}
	bins := method.Bins(p)
	if bins > MaxHistogramBins {
		return 0, apperrors.NewInvalidParameterError(
			fmt.Sprintf("%s with P=%d has %d codes, more than the %d a histogram supports",
				method, p, bins, MaxHistogramBins), nil)
	}
	return bins, nil
}

// histogramOf bins values into [k, k+1) intervals for k in [0, bins).
func histogramOf(values []float64, bins int) ([]float64, error) {
	for i, v := range values {
		if v < 0 || v >= float64(bins) || v != math.Trunc(v) {
			return nil, apperrors.NewInvalidParameterError(
				fmt.Sprintf("code %v at index %d is outside [0, %d)", v, i, bins), nil)
		}
	}

	bufp := scratchPool.Get().(*[]float64)
	sorted := append((*bufp)[:0], values...)
	defer func() {
		*bufp = sorted[:0]
		scratchPool.Put(bufp)
	}()
	sort.Float64s(sorted)

	dividers := make([]float64, bins+1)
	for i := range dividers {
		dividers[i] = float64(i)
	}
	return stat.Histogram(nil, dividers, sorted, nil), nil
}
