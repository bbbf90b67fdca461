package lbp

import (
	"testing"

	"github.com/sirupsen/logrus"
)

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()

	if !opts.UseWorkerPool {
		t.Error("Expected UseWorkerPool to be true by default")
	}
	if opts.MaxWorkers != 0 {
		t.Errorf("Expected MaxWorkers to be 0, got %d", opts.MaxWorkers)
	}
	if opts.MinRowsPerBand != 16 {
		t.Errorf("Expected MinRowsPerBand to be 16, got %d", opts.MinRowsPerBand)
	}
	if opts.Logger != nil {
		t.Error("Expected no logger by default")
	}
}

func TestSequentialOptions(t *testing.T) {
	opts := SequentialOptions()

	if opts.UseWorkerPool {
		t.Error("Expected UseWorkerPool to be false for sequential options")
	}
	if opts.MaxWorkers != 1 {
		t.Errorf("Expected MaxWorkers to be 1, got %d", opts.MaxWorkers)
	}
}

func TestOptionsBuilders(t *testing.T) {
	l := logrus.New()
	opts := SequentialOptions().WithWorkers(3).WithMinRowsPerBand(4).WithLogger(l)

	if !opts.UseWorkerPool {
		t.Error("Expected WithWorkers to enable the worker pool")
	}
	if opts.MaxWorkers != 3 {
		t.Errorf("Expected MaxWorkers to be 3, got %d", opts.MaxWorkers)
	}
	if opts.MinRowsPerBand != 4 {
		t.Errorf("Expected MinRowsPerBand to be 4, got %d", opts.MinRowsPerBand)
	}
	if opts.Logger != l {
		t.Error("Expected WithLogger to set the logger")
	}
}
