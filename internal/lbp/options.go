package lbp

import "github.com/sirupsen/logrus"

// MaxPoints is the largest supported number of sample points
const MaxPoints = 32

// Options configures an Engine
type Options struct {
	// Performance options
	UseWorkerPool  bool
	MaxWorkers     int // 0 means runtime.NumCPU()
	MinRowsPerBand int // rows below this are never split across workers

	// Logger receives engine events; nil uses the package logger
	Logger *logrus.Logger
}

// DefaultOptions returns default engine options
func DefaultOptions() Options {
	return Options{
		UseWorkerPool:  true,
		MaxWorkers:     0,
		MinRowsPerBand: 16,
	}
}

// SequentialOptions returns options that compute every row on the caller's goroutine
func SequentialOptions() Options {
	opts := DefaultOptions()
	opts.UseWorkerPool = false
	opts.MaxWorkers = 1
	return opts
}

// WithWorkers enables the worker pool with n workers
func (opts Options) WithWorkers(n int) Options {
	opts.UseWorkerPool = true
	opts.MaxWorkers = n
	return opts
}

// WithMinRowsPerBand sets the smallest row band handed to a worker
func (opts Options) WithMinRowsPerBand(rows int) Options {
	opts.MinRowsPerBand = rows
	return opts
}

// WithLogger sets the logger used for engine events
func (opts Options) WithLogger(l *logrus.Logger) Options {
	opts.Logger = l
	return opts
}
