package factory

import (
	"strings"

	apperrors "github.com/anime-shed/texture-inspector-go/internal/errors"
	"github.com/anime-shed/texture-inspector-go/internal/lbp"
	"github.com/anime-shed/texture-inspector-go/internal/storage"
	"github.com/anime-shed/texture-inspector-go/internal/strategy"
)

// Mode selects what a texture request produces
type Mode string

const (
	// CodesMode returns the pattern image
	CodesMode Mode = "codes"
	// HistogramMode returns the code histogram of the whole image
	HistogramMode Mode = "histogram"
	// FeaturesMode returns the grid histogram feature vector
	FeaturesMode Mode = "features"
)

// ParseMode resolves a mode name case-insensitively
func ParseMode(name string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(name))); m {
	case CodesMode, HistogramMode, FeaturesMode:
		return m, nil
	}
	return "", apperrors.NewInvalidParameterError("unsupported mode: "+name, nil)
}

// StrategyFactory creates output strategies
type StrategyFactory interface {
	CreateStrategy(mode Mode) (strategy.OutputStrategy, error)
}

// strategyFactory implements StrategyFactory
type strategyFactory struct {
	engine lbp.NamedPatternComputer
}

// NewStrategyFactory creates a factory whose strategies share one engine
func NewStrategyFactory(engine lbp.NamedPatternComputer) StrategyFactory {
	return &strategyFactory{engine: engine}
}

// CreateStrategy creates the strategy for mode
func (f *strategyFactory) CreateStrategy(mode Mode) (strategy.OutputStrategy, error) {
	switch mode {
	case CodesMode:
		return strategy.NewCodesStrategy(f.engine), nil
	case HistogramMode:
		return strategy.NewHistogramStrategy(f.engine), nil
	case FeaturesMode:
		return strategy.NewFeaturesStrategy(f.engine), nil
	default:
		return nil, apperrors.NewInvalidParameterError("unsupported mode: "+string(mode), nil)
	}
}

// StorageType represents the matrix sources a loader can read
type StorageType string

const (
	// LocalStorage reads files from the local file system or stdin
	LocalStorage StorageType = "local"
)

// StorageFactory creates matrix loaders
type StorageFactory interface {
	CreateLoader(storageType StorageType) (storage.MatrixLoader, error)
}

type storageFactory struct{}

// NewStorageFactory creates a new storage factory
func NewStorageFactory() StorageFactory {
	return &storageFactory{}
}

// CreateLoader creates a loader for storageType
func (f *storageFactory) CreateLoader(storageType StorageType) (storage.MatrixLoader, error) {
	switch storageType {
	case LocalStorage, "":
		return storage.NewFileMatrixLoader(), nil
	default:
		return nil, apperrors.NewInvalidParameterError("unsupported storage type: "+string(storageType), nil)
	}
}
