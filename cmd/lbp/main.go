package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/anime-shed/texture-inspector-go/internal/config"
	"github.com/anime-shed/texture-inspector-go/internal/container"
	apperrors "github.com/anime-shed/texture-inspector-go/internal/errors"
	"github.com/anime-shed/texture-inspector-go/internal/features"
	"github.com/anime-shed/texture-inspector-go/internal/logger"
	"github.com/anime-shed/texture-inspector-go/internal/storage"
	"github.com/anime-shed/texture-inspector-go/pkg/models"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes the CLI and returns the process exit code
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		return fail(logger.New(logger.Options{Output: stderr}), err)
	}

	fs := flag.NewFlagSet("lbp", flag.ContinueOnError)
	fs.SetOutput(stderr)
	input := fs.String("input", "", "Matrix file to read (.csv or whitespace separated, - for stdin)")
	points := fs.Int("points", cfg.Points, "Number of circular sample points P")
	radius := fs.Float64("radius", cfg.Radius, "Sampling radius R")
	method := fs.String("method", cfg.Method, "Pattern method: default, ror, uniform, nri_uniform or var")
	mode := fs.String("mode", "codes", "Output: codes, histogram or features")
	gridRows := fs.Int("grid-rows", cfg.GridRows, "Grid rows for features mode")
	gridCols := fs.Int("grid-cols", cfg.GridCols, "Grid columns for features mode")
	normalize := fs.String("normalize", cfg.Normalize, "Histogram normalization: none, l1 or l2")
	workers := fs.Int("workers", cfg.Workers, "Worker goroutines (0 uses every CPU)")
	chart := fs.String("chart", "", "Write a bar chart of the histogram to this image file")
	output := fs.String("output", "", "Write the result to this file (.csv writes the codes matrix; default stdout)")
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if *input == "" {
		fmt.Fprintln(stderr, "lbp: -input is required")
		fs.Usage()
		return 2
	}

	cfg.Points = *points
	cfg.Radius = *radius
	cfg.Method = strings.ToLower(strings.TrimSpace(*method))
	cfg.GridRows = *gridRows
	cfg.GridCols = *gridCols
	cfg.Normalize = strings.ToLower(strings.TrimSpace(*normalize))
	cfg.Workers = *workers

	c, err := container.NewContainer(cfg, stderr)
	if err != nil {
		return fail(logger.New(logger.Options{Output: stderr}), err)
	}
	defer c.Close()
	log := c.Logger()

	resp, err := c.TextureService().Analyze(ctx, models.TextureRequest{
		Source:    *input,
		Mode:      *mode,
		Points:    cfg.Points,
		Radius:    cfg.Radius,
		Method:    cfg.Method,
		GridRows:  cfg.GridRows,
		GridCols:  cfg.GridCols,
		Normalize: cfg.Normalize,
	})
	if err != nil {
		return fail(log, err)
	}

	if *chart != "" {
		if err := writeChart(*chart, resp); err != nil {
			return fail(log, err)
		}
	}

	if strings.EqualFold(filepath.Ext(*output), ".csv") {
		if resp.Pattern == nil {
			return fail(log, apperrors.NewInvalidParameterError("csv output needs codes mode", nil))
		}
		err = storage.SaveMatrixCSV(*output, resp.Pattern)
	} else {
		err = storage.NewJSONResultWriter(*output, stdout).WriteResult(resp)
	}
	if err != nil {
		return fail(log, err)
	}

	m := c.Metrics()
	log.WithFields(logrus.Fields{
		"computations":     m.TotalComputations,
		"pixels_processed": m.PixelsProcessed,
		"avg_time":         m.AvgProcessingTime,
	}).Debug("done")
	return 0
}

func writeChart(path string, resp *models.TextureResponse) error {
	title := fmt.Sprintf("%s P=%d R=%g", resp.Method, resp.Points, resp.Radius)
	switch {
	case resp.Histogram != nil:
		return features.WriteHistogramChart(path, title, resp.Histogram)
	case resp.Features != nil:
		return features.WriteHistogramChart(path, title, resp.Features.Values)
	default:
		return apperrors.NewInvalidParameterError("a chart needs histogram or features mode", nil)
	}
}

func fail(log *logrus.Logger, err error) int {
	log.WithFields(logrus.Fields{
		"error_type": apperrors.GetType(err),
	}).WithError(err).Error("lbp failed")
	return 1
}
