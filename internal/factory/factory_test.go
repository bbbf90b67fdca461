package factory

import (
	"errors"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/anime-shed/texture-inspector-go/internal/errors"
	"github.com/anime-shed/texture-inspector-go/internal/lbp"
	"github.com/anime-shed/texture-inspector-go/internal/storage"
)

func TestParseMode(t *testing.T) {
	for in, want := range map[string]Mode{
		"codes":       CodesMode,
		" Histogram ": HistogramMode,
		"FEATURES":    FeaturesMode,
	} {
		got, err := ParseMode(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}

	_, err := ParseMode("pixels")
	assert.True(t, errors.Is(err, apperrors.ErrInvalidParameter))
}

func TestStrategyFactory_CreateStrategy(t *testing.T) {
	l := logrus.New()
	l.SetOutput(io.Discard)
	engine := lbp.NewEngine(lbp.SequentialOptions().WithLogger(l))
	defer engine.Close()

	f := NewStrategyFactory(engine)
	for _, mode := range []Mode{CodesMode, HistogramMode, FeaturesMode} {
		s, err := f.CreateStrategy(mode)
		require.NoError(t, err)
		assert.Equal(t, string(mode), s.GetStrategyName())
	}

	_, err := f.CreateStrategy("pixels")
	assert.Error(t, err)
}

func TestStorageFactory_CreateLoader(t *testing.T) {
	f := NewStorageFactory()

	loader, err := f.CreateLoader(LocalStorage)
	require.NoError(t, err)
	assert.IsType(t, &storage.FileMatrixLoader{}, loader)

	_, err = f.CreateLoader("azure")
	assert.True(t, errors.Is(err, apperrors.ErrInvalidParameter))
}
