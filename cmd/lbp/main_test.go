package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anime-shed/texture-inspector-go/internal/logger"
	"github.com/anime-shed/texture-inspector-go/pkg/models"
)

const edgeMatrix = "0 0 0 255 255 255\n" +
	"0 0 0 255 255 255\n" +
	"0 0 0 255 255 255\n" +
	"0 0 0 255 255 255\n"

func setup(t *testing.T) string {
	t.Helper()
	for _, k := range []string{
		"LBP_POINTS", "LBP_RADIUS", "LBP_METHOD", "LBP_GRID_ROWS", "LBP_GRID_COLS",
		"LBP_NORMALIZE", "LBP_WORKERS", "LOG_LEVEL", "LOG_FILE",
	} {
		t.Setenv(k, "")
	}
	prev := logger.Logger
	t.Cleanup(func() { logger.Logger = prev })

	path := filepath.Join(t.TempDir(), "edge.txt")
	require.NoError(t, os.WriteFile(path, []byte(edgeMatrix), 0o600))
	return path
}

func TestRun_Codes(t *testing.T) {
	input := setup(t)
	var stdout, stderr bytes.Buffer

	code := run(context.Background(), []string{"-input", input}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())

	var resp models.TextureResponse
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &resp))
	assert.Equal(t, "codes", resp.Mode)
	assert.Equal(t, "uniform", resp.Method)
	assert.Equal(t, []int{4, 6}, resp.Shape)
	assert.Equal(t, []float64{8, 8, 8, 5, 8, 8}, resp.Codes[0])
}

func TestRun_HistogramWithChart(t *testing.T) {
	input := setup(t)
	dir := t.TempDir()
	chart := filepath.Join(dir, "hist.png")
	out := filepath.Join(dir, "hist.json")
	var stdout, stderr bytes.Buffer

	code := run(context.Background(), []string{
		"-input", input, "-mode", "histogram", "-method", "UNIFORM", "-chart", chart, "-output", out,
	}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())
	assert.Empty(t, stdout.String())

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	var resp models.TextureResponse
	require.NoError(t, json.Unmarshal(data, &resp))
	assert.Equal(t, []float64{0, 0, 0, 0, 0, 4, 0, 0, 20, 0}, resp.Histogram)

	_, err = os.Stat(chart)
	assert.NoError(t, err)
}

func TestRun_FeaturesFromEnv(t *testing.T) {
	input := setup(t)
	t.Setenv("LBP_GRID_ROWS", "1")
	t.Setenv("LBP_GRID_COLS", "1")
	t.Setenv("LBP_NORMALIZE", "l1")
	var stdout, stderr bytes.Buffer

	code := run(context.Background(), []string{"-input", input, "-mode", "features"}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())

	var resp models.TextureResponse
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &resp))
	require.NotNil(t, resp.Features)
	assert.Equal(t, "l1", resp.Features.Normalization)
	assert.InDelta(t, 20.0/24, resp.Features.Values[8], 1e-12)
}

func TestRun_CodesCSV(t *testing.T) {
	input := setup(t)
	out := filepath.Join(t.TempDir(), "codes.csv")
	var stdout, stderr bytes.Buffer

	code := run(context.Background(), []string{"-input", input, "-method", "default", "-output", out}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "255,255,255,199,255,255\n", string(data[:len("255,255,255,199,255,255\n")]))
}

func TestRun_Errors(t *testing.T) {
	input := setup(t)

	tests := []struct {
		name string
		args []string
		want int
	}{
		{"missing input flag", nil, 2},
		{"unknown flag", []string{"-input", input, "-colour"}, 2},
		{"unknown method", []string{"-input", input, "-method", "bogus"}, 1},
		{"missing file", []string{"-input", filepath.Join(t.TempDir(), "nope.txt")}, 1},
		{"too many points", []string{"-input", input, "-points", "40"}, 1},
		{"chart in codes mode", []string{"-input", input, "-chart", filepath.Join(t.TempDir(), "c.png")}, 1},
		{"csv outside codes mode", []string{"-input", input, "-mode", "histogram", "-output", filepath.Join(t.TempDir(), "h.csv")}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			assert.Equal(t, tt.want, run(context.Background(), tt.args, &stdout, &stderr))
			assert.NotEmpty(t, stderr.String())
		})
	}
}
