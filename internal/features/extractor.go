package features

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/anime-shed/texture-inspector-go/internal/errors"
	"github.com/anime-shed/texture-inspector-go/internal/lbp"
	"github.com/anime-shed/texture-inspector-go/pkg/ndarray"
)

// FloatingPointWarning is attached to feature vectors computed from
// floating-point images.
const FloatingPointWarning = "floating-point input: integer images are recommended for local binary patterns"

// Config selects the pattern and the histogram layout of a feature vector
type Config struct {
	Points        int
	Radius        float64
	Method        lbp.Method
	GridRows      int
	GridCols      int
	Normalization Normalization
}

// DefaultConfig returns the uniform P=8, R=1 descriptor over a 2x2 grid
func DefaultConfig() Config {
	return Config{
		Points:        8,
		Radius:        1,
		Method:        lbp.Uniform,
		GridRows:      2,
		GridCols:      2,
		Normalization: NormalizeNone,
	}
}

// Validate checks the configuration without touching an image
func (c Config) Validate() error {
	if _, err := binsFor(c.Method, c.Points); err != nil {
		return err
	}
	if !(c.Radius > 0) || math.IsInf(c.Radius, 0) {
		return apperrors.NewInvalidParameterError(
			fmt.Sprintf("R must be a positive finite radius, got %v", c.Radius), nil)
	}
	if c.GridRows < 1 || c.GridCols < 1 {
		return apperrors.NewInvalidParameterError(
			fmt.Sprintf("grid must be at least 1x1, got %dx%d", c.GridRows, c.GridCols), nil)
	}
	if _, err := ParseNormalization(string(c.Normalization)); err != nil {
		return err
	}
	return nil
}

// FeatureVector is the texture descriptor of one image
type FeatureVector struct {
	ID            string        `json:"id"`
	Method        lbp.Method    `json:"method"`
	Points        int           `json:"points"`
	Radius        float64       `json:"radius"`
	GridRows      int           `json:"grid_rows"`
	GridCols      int           `json:"grid_cols"`
	BinsPerCell   int           `json:"bins_per_cell"`
	Normalization Normalization `json:"normalization"`
	Shape         []int         `json:"shape"`
	Values        []float64     `json:"values"`
	Warnings      []string      `json:"warnings,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
}

// Extractor turns images into feature vectors
type Extractor struct {
	computer lbp.PatternComputer
	config   Config
}

// NewExtractor creates an extractor. The configuration is validated up front.
func NewExtractor(computer lbp.PatternComputer, config Config) (*Extractor, error) {
	if computer == nil {
		return nil, apperrors.NewInternalError("extractor needs a pattern computer", nil)
	}
	if config.Normalization == "" {
		config.Normalization = NormalizeNone
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Extractor{computer: computer, config: config}, nil
}

// Config returns the extractor configuration
func (x *Extractor) Config() Config {
	return x.config
}

// Extract computes the pattern image of img and reduces it to a grid histogram
func (x *Extractor) Extract(img *ndarray.Array) (*FeatureVector, error) {
	c := x.config
	codes, err := x.computer.Compute(img, c.Points, c.Radius, c.Method)
	if err != nil {
		return nil, err
	}

	hist, err := GridHistogram(codes, c.Method, c.Points, c.GridRows, c.GridCols)
	if err != nil {
		return nil, err
	}

	fv := &FeatureVector{
		ID:            uuid.New().String(),
		Method:        c.Method,
		Points:        c.Points,
		Radius:        c.Radius,
		GridRows:      c.GridRows,
		GridCols:      c.GridCols,
		BinsPerCell:   c.Method.Bins(c.Points),
		Normalization: c.Normalization,
		Shape:         img.Shape(),
		Values:        Normalize(hist, c.Normalization),
		CreatedAt:     time.Now(),
	}
	if img.Kind() == ndarray.Float {
		fv.Warnings = append(fv.Warnings, FloatingPointWarning)
	}
	return fv, nil
}
