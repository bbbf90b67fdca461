package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	apperrors "github.com/anime-shed/texture-inspector-go/internal/errors"
	"github.com/anime-shed/texture-inspector-go/internal/factory"
	"github.com/anime-shed/texture-inspector-go/internal/features"
	"github.com/anime-shed/texture-inspector-go/internal/logger"
	"github.com/anime-shed/texture-inspector-go/internal/storage"
	"github.com/anime-shed/texture-inspector-go/pkg/models"
	"github.com/anime-shed/texture-inspector-go/pkg/ndarray"
)

// TextureService loads matrices and reduces them to texture results
type TextureService interface {
	Analyze(ctx context.Context, req models.TextureRequest) (*models.TextureResponse, error)
	AnalyzeArray(ctx context.Context, img *ndarray.Array, req models.TextureRequest) (*models.TextureResponse, error)
}

type textureService struct {
	loader     storage.MatrixLoader
	strategies factory.StrategyFactory
	validate   *validator.Validate
}

// NewTextureService creates a new texture service
func NewTextureService(loader storage.MatrixLoader, strategies factory.StrategyFactory) TextureService {
	return &textureService{
		loader:     loader,
		strategies: strategies,
		validate:   validator.New(),
	}
}

// Analyze loads req.Source and runs the requested mode on it
func (s *textureService) Analyze(ctx context.Context, req models.TextureRequest) (*models.TextureResponse, error) {
	if err := s.check(req); err != nil {
		return nil, err
	}
	img, err := s.loader.LoadMatrix(ctx, req.Source)
	if err != nil {
		return nil, err
	}
	return s.AnalyzeArray(ctx, img, req)
}

// AnalyzeArray runs the requested mode on an image already in memory
func (s *textureService) AnalyzeArray(ctx context.Context, img *ndarray.Array, req models.TextureRequest) (*models.TextureResponse, error) {
	if req.Source == "" {
		req.Source = "memory"
	}
	if err := s.check(req); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	mode, err := factory.ParseMode(req.Mode)
	if err != nil {
		return nil, err
	}
	strat, err := s.strategies.CreateStrategy(mode)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	resp := &models.TextureResponse{
		Source:    req.Source,
		Mode:      strat.GetStrategyName(),
		Method:    req.Method,
		Points:    req.Points,
		Radius:    req.Radius,
		Timestamp: start.UTC(),
	}
	if img != nil {
		resp.Shape = img.Shape()
	}

	if err := strat.Apply(img, req, resp); err != nil {
		logger.WithFields(logrus.Fields{
			"source":     req.Source,
			"mode":       resp.Mode,
			"error_type": apperrors.GetType(err),
		}).WithError(err).Debug("texture request failed")
		return nil, err
	}

	if img.Kind() == ndarray.Float {
		resp.Warnings = append(resp.Warnings, features.FloatingPointWarning)
	}
	resp.ProcessingTimeSec = time.Since(start).Seconds()
	return resp, nil
}

func (s *textureService) check(req models.TextureRequest) error {
	if err := s.validate.Struct(req); err != nil {
		return apperrors.NewInvalidParameterError("invalid texture request", err)
	}
	return nil
}
