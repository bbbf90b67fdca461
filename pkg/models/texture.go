package models

import (
	"time"

	"github.com/anime-shed/texture-inspector-go/pkg/ndarray"
)

// TextureRequest describes one texture computation over a matrix source
type TextureRequest struct {
	Source    string  `json:"source" validate:"required"`
	Mode      string  `json:"mode" validate:"oneof=codes histogram features"`
	Points    int     `json:"points" validate:"min=1,max=32"`
	Radius    float64 `json:"radius" validate:"gt=0"`
	Method    string  `json:"method" validate:"required"`
	GridRows  int     `json:"grid_rows,omitempty" validate:"min=0"`
	GridCols  int     `json:"grid_cols,omitempty" validate:"min=0"`
	Normalize string  `json:"normalize,omitempty"`
}

// TextureResponse is the result of a texture computation. Which of Codes,
// Histogram and Features is set depends on the mode.
type TextureResponse struct {
	Source            string    `json:"source"`
	Mode              string    `json:"mode"`
	Method            string    `json:"method"`
	Points            int       `json:"points"`
	Radius            float64   `json:"radius"`
	Shape             []int     `json:"shape"`
	Timestamp         time.Time `json:"timestamp"`
	ProcessingTimeSec float64   `json:"processing_time_sec"`

	Kind      string          `json:"kind,omitempty"`
	Codes     [][]float64     `json:"codes,omitempty"`
	Histogram []float64       `json:"histogram,omitempty"`
	Features  *FeatureSummary `json:"features,omitempty"`

	Warnings []string `json:"warnings,omitempty"`

	// Pattern is the computed pattern image in codes mode
	Pattern *ndarray.Array `json:"-"`
}

// FeatureSummary is the grid histogram descriptor of an image
type FeatureSummary struct {
	ID            string    `json:"id"`
	GridRows      int       `json:"grid_rows"`
	GridCols      int       `json:"grid_cols"`
	BinsPerCell   int       `json:"bins_per_cell"`
	Normalization string    `json:"normalization"`
	Values        []float64 `json:"values"`
}

// ErrorResponse reports a failed computation
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
