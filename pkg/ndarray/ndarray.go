// Package ndarray provides a small N-dimensional numeric array used as the
// canonical input and output representation of the texture engine.
//
// Storage is always row-major float64. The element Kind records whether the
// values originated from an integer or a floating-point source, which callers
// use to decide how to interpret or report them.
package ndarray

import (
	"fmt"
	"image"

	"gonum.org/v1/gonum/mat"

	apperrors "github.com/anime-shed/texture-inspector-go/internal/errors"
)

// Kind is the element category of an array.
type Kind int

const (
	// Integer arrays hold whole-number values (grayscale pixels, pattern codes).
	Integer Kind = iota
	// Float arrays hold arbitrary real values.
	Float
)

func (k Kind) String() string {
	switch k {
	case Integer:
		return "integer"
	case Float:
		return "float"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Number is the set of element types accepted by the generic constructors.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Array is an N-dimensional array with row-major float64 storage.
type Array struct {
	shape []int
	data  []float64
	kind  Kind
}

// New allocates a zero-filled array of the given kind and shape.
// Negative dimensions are treated as zero.
func New(kind Kind, shape ...int) *Array {
	s := make([]int, len(shape))
	for i, d := range shape {
		s[i] = max(d, 0)
	}
	return &Array{
		shape: s,
		data:  make([]float64, product(s)),
		kind:  kind,
	}
}

// FromSlice wraps a copy of data with the given shape. The element count must
// match the product of the dimensions.
func FromSlice[T Number](data []T, shape ...int) (*Array, error) {
	for _, d := range shape {
		if d < 0 {
			return nil, apperrors.NewInvalidShapeError(fmt.Sprintf("negative dimension %d in shape %v", d, shape), nil)
		}
	}
	if n := product(shape); n != len(data) {
		return nil, apperrors.NewInvalidShapeError(fmt.Sprintf("shape %v needs %d elements, got %d", shape, n, len(data)), nil)
	}
	a := &Array{
		shape: append([]int(nil), shape...),
		data:  make([]float64, len(data)),
		kind:  kindOf[T](),
	}
	for i, v := range data {
		a.data[i] = float64(v)
	}
	return a, nil
}

// FromRows builds a 2-dimensional array from a slice of equal-length rows.
// No rows yields a (0, 0) array.
func FromRows[T Number](rows [][]T) (*Array, error) {
	cols := 0
	if len(rows) > 0 {
		cols = len(rows[0])
	}
	a := &Array{
		shape: []int{len(rows), cols},
		data:  make([]float64, 0, len(rows)*cols),
		kind:  kindOf[T](),
	}
	for y, row := range rows {
		if len(row) != cols {
			return nil, apperrors.NewInvalidShapeError(fmt.Sprintf("row %d has %d columns, want %d", y, len(row), cols), nil)
		}
		for _, v := range row {
			a.data = append(a.data, float64(v))
		}
	}
	return a, nil
}

// FromGray converts an 8-bit grayscale image into an integer array of shape
// (height, width).
func FromGray(img *image.Gray) *Array {
	b := img.Bounds()
	a := New(Integer, b.Dy(), b.Dx())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := a.data[(y-b.Min.Y)*b.Dx():]
		for x := b.Min.X; x < b.Max.X; x++ {
			row[x-b.Min.X] = float64(img.GrayAt(x, y).Y)
		}
	}
	return a
}

// FromGray16 converts a 16-bit grayscale image into an integer array.
func FromGray16(img *image.Gray16) *Array {
	b := img.Bounds()
	a := New(Integer, b.Dy(), b.Dx())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := a.data[(y-b.Min.Y)*b.Dx():]
		for x := b.Min.X; x < b.Max.X; x++ {
			row[x-b.Min.X] = float64(img.Gray16At(x, y).Y)
		}
	}
	return a
}

// FromDense copies a gonum matrix into a float array of shape (rows, cols).
func FromDense(m mat.Matrix) *Array {
	r, c := m.Dims()
	a := New(Float, r, c)
	for y := 0; y < r; y++ {
		for x := 0; x < c; x++ {
			a.data[y*c+x] = m.At(y, x)
		}
	}
	return a
}

// Shape returns a copy of the dimensions.
func (a *Array) Shape() []int {
	return append([]int(nil), a.shape...)
}

// NDim returns the number of dimensions.
func (a *Array) NDim() int {
	return len(a.shape)
}

// Size returns the total number of elements.
func (a *Array) Size() int {
	return len(a.data)
}

// Kind returns the element kind.
func (a *Array) Kind() Kind {
	return a.kind
}

// Data returns the backing storage. Callers must not retain it across
// mutations they do not own.
func (a *Array) Data() []float64 {
	return a.data
}

// Dims2 returns (rows, cols) of a 2-dimensional array.
func (a *Array) Dims2() (rows, cols int, ok bool) {
	if len(a.shape) != 2 {
		return 0, 0, false
	}
	return a.shape[0], a.shape[1], true
}

// Row returns row y of a 2-dimensional array.
func (a *Array) Row(y int) []float64 {
	rows, cols, ok := a.Dims2()
	if !ok || y < 0 || y >= rows {
		return nil
	}
	return a.data[y*cols : (y+1)*cols]
}

// At returns the element at the given index.
func (a *Array) At(idx ...int) float64 {
	return a.data[a.offset(idx)]
}

// Set stores v at the given index.
func (a *Array) Set(v float64, idx ...int) {
	a.data[a.offset(idx)] = v
}

// Clone returns a deep copy.
func (a *Array) Clone() *Array {
	return &Array{
		shape: append([]int(nil), a.shape...),
		data:  append([]float64(nil), a.data...),
		kind:  a.kind,
	}
}

// Rows returns a 2-dimensional array as nested slices.
func (a *Array) Rows() [][]float64 {
	rows, _, ok := a.Dims2()
	if !ok {
		return nil
	}
	out := make([][]float64, rows)
	for y := range out {
		out[y] = append([]float64(nil), a.Row(y)...)
	}
	return out
}

// Dense returns a 2-dimensional array as a gonum matrix.
func (a *Array) Dense() (*mat.Dense, error) {
	rows, cols, ok := a.Dims2()
	if !ok {
		return nil, apperrors.NewInvalidShapeError(fmt.Sprintf("array has %d dimensions, want 2", a.NDim()), nil)
	}
	if rows == 0 || cols == 0 {
		return nil, apperrors.NewInvalidShapeError(fmt.Sprintf("array of shape %v cannot form a matrix", a.shape), nil)
	}
	return mat.NewDense(rows, cols, append([]float64(nil), a.data...)), nil
}

func (a *Array) offset(idx []int) int {
	if len(idx) != len(a.shape) {
		panic(fmt.Sprintf("ndarray: index %v has %d dimensions, array has %d", idx, len(idx), len(a.shape)))
	}
	off := 0
	for i, v := range idx {
		if v < 0 || v >= a.shape[i] {
			panic(fmt.Sprintf("ndarray: index %v out of range for shape %v", idx, a.shape))
		}
		off = off*a.shape[i] + v
	}
	return off
}

func product(shape []int) int {
	n := 1
	for _, d := range shape {
		n *= d
	}
	return n
}

func kindOf[T Number]() Kind {
	// Integer types truncate a half to zero, float types (named or not) keep it.
	half := 0.5
	if T(half) != 0 {
		return Float
	}
	return Integer
}
