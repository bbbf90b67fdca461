package strategy

import (
	"github.com/anime-shed/texture-inspector-go/internal/features"
	"github.com/anime-shed/texture-inspector-go/internal/lbp"
	"github.com/anime-shed/texture-inspector-go/pkg/models"
	"github.com/anime-shed/texture-inspector-go/pkg/ndarray"
)

// OutputStrategy reduces an image to one kind of texture result
type OutputStrategy interface {
	Apply(img *ndarray.Array, req models.TextureRequest, resp *models.TextureResponse) error
	GetStrategyName() string
}

// CodesStrategy returns the full pattern image
type CodesStrategy struct {
	engine lbp.NamedPatternComputer
}

// NewCodesStrategy creates a new codes strategy
func NewCodesStrategy(engine lbp.NamedPatternComputer) OutputStrategy {
	return &CodesStrategy{engine: engine}
}

func (s *CodesStrategy) Apply(img *ndarray.Array, req models.TextureRequest, resp *models.TextureResponse) error {
	codes, err := s.engine.ComputeNamed(img, req.Points, req.Radius, req.Method)
	if err != nil {
		return err
	}
	resp.Kind = codes.Kind().String()
	resp.Codes = codes.Rows()
	resp.Pattern = codes
	return nil
}

// GetStrategyName returns the strategy name
func (s *CodesStrategy) GetStrategyName() string {
	return "codes"
}

// HistogramStrategy counts the pattern codes of the whole image
type HistogramStrategy struct {
	engine lbp.NamedPatternComputer
}

// NewHistogramStrategy creates a new histogram strategy
func NewHistogramStrategy(engine lbp.NamedPatternComputer) OutputStrategy {
	return &HistogramStrategy{engine: engine}
}

func (s *HistogramStrategy) Apply(img *ndarray.Array, req models.TextureRequest, resp *models.TextureResponse) error {
	codes, err := s.engine.ComputeNamed(img, req.Points, req.Radius, req.Method)
	if err != nil {
		return err
	}
	method, err := lbp.ParseMethod(req.Method)
	if err != nil {
		return err
	}
	hist, err := features.Histogram(codes, method, req.Points)
	if err != nil {
		return err
	}
	n, err := features.ParseNormalization(req.Normalize)
	if err != nil {
		return err
	}
	resp.Histogram = features.Normalize(hist, n)
	return nil
}

// GetStrategyName returns the strategy name
func (s *HistogramStrategy) GetStrategyName() string {
	return "histogram"
}

// FeaturesStrategy builds the grid histogram feature vector
type FeaturesStrategy struct {
	engine lbp.PatternComputer
}

// NewFeaturesStrategy creates a new features strategy
func NewFeaturesStrategy(engine lbp.PatternComputer) OutputStrategy {
	return &FeaturesStrategy{engine: engine}
}

func (s *FeaturesStrategy) Apply(img *ndarray.Array, req models.TextureRequest, resp *models.TextureResponse) error {
	method, err := lbp.ParseMethod(req.Method)
	if err != nil {
		return err
	}
	n, err := features.ParseNormalization(req.Normalize)
	if err != nil {
		return err
	}

	cfg := features.DefaultConfig()
	cfg.Points = req.Points
	cfg.Radius = req.Radius
	cfg.Method = method
	cfg.Normalization = n
	if req.GridRows > 0 {
		cfg.GridRows = req.GridRows
	}
	if req.GridCols > 0 {
		cfg.GridCols = req.GridCols
	}

	x, err := features.NewExtractor(s.engine, cfg)
	if err != nil {
		return err
	}
	fv, err := x.Extract(img)
	if err != nil {
		return err
	}

	resp.Features = &models.FeatureSummary{
		ID:            fv.ID,
		GridRows:      fv.GridRows,
		GridCols:      fv.GridCols,
		BinsPerCell:   fv.BinsPerCell,
		Normalization: string(fv.Normalization),
		Values:        fv.Values,
	}
	return nil
}

// GetStrategyName returns the strategy name
func (s *FeaturesStrategy) GetStrategyName() string {
	return "features"
}
