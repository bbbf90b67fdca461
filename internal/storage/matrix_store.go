package storage

import (
	"bufio"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	apperrors "github.com/anime-shed/texture-inspector-go/internal/errors"
	"github.com/anime-shed/texture-inspector-go/pkg/ndarray"
)

// Format is the text layout of a matrix file
type Format int

const (
	// Whitespace separates values by spaces or tabs, one row per line
	Whitespace Format = iota
	// CSV separates values by commas
	CSV
)

// FormatFor picks the format from the file extension
func FormatFor(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		return CSV
	}
	return Whitespace
}

// MatrixLoader loads a 2-dimensional numeric matrix
type MatrixLoader interface {
	LoadMatrix(ctx context.Context, source string) (*ndarray.Array, error)
}

// FileMatrixLoader reads matrices from files; the source "-" reads Stdin
type FileMatrixLoader struct {
	Stdin io.Reader
}

// NewFileMatrixLoader creates a loader reading "-" from os.Stdin
func NewFileMatrixLoader() MatrixLoader {
	return &FileMatrixLoader{Stdin: os.Stdin}
}

func (l *FileMatrixLoader) LoadMatrix(ctx context.Context, source string) (*ndarray.Array, error) {
	if source == "-" {
		return ParseMatrix(ctx, l.Stdin, Whitespace)
	}

	f, err := os.Open(source)
	if err != nil {
		return nil, apperrors.NewIOError(fmt.Sprintf("open %s", source), err)
	}
	defer f.Close()

	return ParseMatrix(ctx, f, FormatFor(source))
}

// ParseMatrix reads one matrix row per line. Blank lines and lines starting
// with '#' are skipped. The result is an integer array when every value is a
// whole-number literal and a floating-point array otherwise.
func ParseMatrix(ctx context.Context, r io.Reader, format Format) (*ndarray.Array, error) {
	var records [][]string
	var err error
	switch format {
	case CSV:
		records, err = readCSV(ctx, r)
	default:
		records, err = readFields(ctx, r)
	}
	if err != nil {
		return nil, err
	}

	if ints, ok := parseInts(records); ok {
		return ndarray.FromRows(ints)
	}

	rows := make([][]float64, len(records))
	for y, rec := range records {
		rows[y] = make([]float64, len(rec))
		for x, field := range rec {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, apperrors.NewInvalidParameterError(
					fmt.Sprintf("row %d column %d: %q is not a number", y+1, x+1, field), err)
			}
			rows[y][x] = v
		}
	}
	return ndarray.FromRows(rows)
}

func readCSV(ctx context.Context, r io.Reader) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.Comment = '#'
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	var records [][]string
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rec, err := cr.Read()
		if err == io.EOF {
			return records, nil
		}
		if err != nil {
			return nil, apperrors.NewIOError("read csv", err)
		}
		if len(rec) == 1 && strings.TrimSpace(rec[0]) == "" {
			continue
		}
		for i := range rec {
			rec[i] = strings.TrimSpace(rec[i])
		}
		records = append(records, rec)
	}
}

func readFields(ctx context.Context, r io.Reader) ([][]string, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	var records [][]string
	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		records = append(records, strings.Fields(line))
	}
	if err := sc.Err(); err != nil {
		return nil, apperrors.NewIOError("read matrix", err)
	}
	return records, nil
}

func parseInts(records [][]string) ([][]int64, bool) {
	rows := make([][]int64, len(records))
	for y, rec := range records {
		rows[y] = make([]int64, len(rec))
		for x, field := range rec {
			v, err := strconv.ParseInt(field, 10, 64)
			if err != nil {
				return nil, false
			}
			rows[y][x] = v
		}
	}
	return rows, true
}

// SaveMatrixCSV writes a 2-dimensional array as CSV. Integer arrays are
// written without a fractional part.
func SaveMatrixCSV(path string, a *ndarray.Array) error {
	rows, cols, ok := a.Dims2()
	if !ok {
		return apperrors.NewInvalidShapeError(fmt.Sprintf("cannot write shape %v as csv", a.Shape()), nil)
	}

	f, err := os.Create(path)
	if err != nil {
		return apperrors.NewIOError(fmt.Sprintf("create %s", path), err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	record := make([]string, cols)
	for y := 0; y < rows; y++ {
		for x, v := range a.Row(y) {
			if a.Kind() == ndarray.Integer {
				record[x] = strconv.FormatInt(int64(v), 10)
			} else {
				record[x] = strconv.FormatFloat(v, 'g', -1, 64)
			}
		}
		if err := w.Write(record); err != nil {
			return apperrors.NewIOError(fmt.Sprintf("write %s", path), err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return apperrors.NewIOError(fmt.Sprintf("write %s", path), err)
	}
	return f.Close()
}
