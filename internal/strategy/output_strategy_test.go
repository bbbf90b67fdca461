package strategy

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/anime-shed/texture-inspector-go/internal/errors"
	"github.com/anime-shed/texture-inspector-go/internal/lbp"
	"github.com/anime-shed/texture-inspector-go/pkg/models"
	"github.com/anime-shed/texture-inspector-go/pkg/ndarray"
)

// fixedEngine returns the same pattern image for every call
type fixedEngine struct {
	codes  *ndarray.Array
	method string
}

func (e *fixedEngine) Compute(img *ndarray.Array, p int, r float64, method lbp.Method) (*ndarray.Array, error) {
	e.method = method.String()
	return e.codes, nil
}

func (e *fixedEngine) ComputeNamed(img *ndarray.Array, p int, r float64, method string) (*ndarray.Array, error) {
	m, err := lbp.ParseMethod(method)
	if err != nil {
		return nil, err
	}
	return e.Compute(img, p, r, m)
}

func fixture(t *testing.T) (*fixedEngine, *ndarray.Array) {
	t.Helper()
	codes, err := ndarray.FromRows([][]int{{0, 1, 9, 9}, {8, 8, 9, 2}})
	require.NoError(t, err)
	return &fixedEngine{codes: codes}, ndarray.New(ndarray.Integer, 2, 4)
}

func request() models.TextureRequest {
	return models.TextureRequest{Points: 8, Radius: 1, Method: "uniform"}
}

func TestCodesStrategy(t *testing.T) {
	engine, img := fixture(t)
	var resp models.TextureResponse

	require.NoError(t, NewCodesStrategy(engine).Apply(img, request(), &resp))
	assert.Equal(t, "integer", resp.Kind)
	assert.Equal(t, engine.codes.Rows(), resp.Codes)
	assert.Same(t, engine.codes, resp.Pattern)
}

func TestHistogramStrategy(t *testing.T) {
	engine, img := fixture(t)
	var resp models.TextureResponse

	require.NoError(t, NewHistogramStrategy(engine).Apply(img, request(), &resp))
	assert.Equal(t, []float64{1, 1, 1, 0, 0, 0, 0, 0, 2, 3}, resp.Histogram)

	req := request()
	req.Normalize = "l1"
	require.NoError(t, NewHistogramStrategy(engine).Apply(img, req, &resp))
	assert.InDelta(t, 3.0/8, resp.Histogram[9], 1e-12)

	req.Normalize = "softmax"
	err := NewHistogramStrategy(engine).Apply(img, req, &resp)
	assert.True(t, errors.Is(err, apperrors.ErrInvalidParameter))
}

func TestFeaturesStrategy(t *testing.T) {
	engine, img := fixture(t)
	var resp models.TextureResponse

	req := request()
	req.GridRows, req.GridCols = 1, 2
	require.NoError(t, NewFeaturesStrategy(engine).Apply(img, req, &resp))

	require.NotNil(t, resp.Features)
	assert.NotEmpty(t, resp.Features.ID)
	assert.Equal(t, 1, resp.Features.GridRows)
	assert.Equal(t, 2, resp.Features.GridCols)
	assert.Equal(t, "uniform", engine.method)
	assert.Equal(t, []float64{
		1, 1, 0, 0, 0, 0, 0, 0, 2, 0,
		0, 0, 1, 0, 0, 0, 0, 0, 0, 3,
	}, resp.Features.Values)
}

func TestFeaturesStrategy_DefaultGrid(t *testing.T) {
	engine, img := fixture(t)
	var resp models.TextureResponse

	require.NoError(t, NewFeaturesStrategy(engine).Apply(img, request(), &resp))
	assert.Equal(t, 2, resp.Features.GridRows)
	assert.Equal(t, 2, resp.Features.GridCols)
	assert.Len(t, resp.Features.Values, 40)
}

func TestStrategies_UnknownMethod(t *testing.T) {
	engine, img := fixture(t)
	req := request()
	req.Method = "bogus"

	for _, s := range []OutputStrategy{
		NewCodesStrategy(engine), NewHistogramStrategy(engine), NewFeaturesStrategy(engine),
	} {
		err := s.Apply(img, req, &models.TextureResponse{})
		assert.True(t, errors.Is(err, apperrors.ErrUnknownMethod), s.GetStrategyName())
	}
}
