package lbp

import (
	"fmt"
	"math"
	"sync"
	"time"

	apperrors "github.com/anime-shed/texture-inspector-go/internal/errors"
	"github.com/anime-shed/texture-inspector-go/internal/logger"
	"github.com/anime-shed/texture-inspector-go/internal/observer"
	"github.com/anime-shed/texture-inspector-go/pkg/ndarray"
	"github.com/anime-shed/texture-inspector-go/pkg/validation"
)

// Engine computes local binary patterns. It holds no per-image state and is
// safe for concurrent use.
type Engine struct {
	options   Options
	pool      *WorkerPool
	publisher observer.Subject
	offsets   offsetCache
}

// NewEngine creates an engine. Every engine logs its events; extra observers
// receive the same events.
func NewEngine(options Options, observers ...observer.Observer) *Engine {
	l := options.Logger
	if l == nil {
		l = logger.Logger
	}

	publisher := observer.NewEventPublisher()
	publisher.Subscribe(observer.NewLoggingObserver(l))
	for _, o := range observers {
		publisher.Subscribe(o)
	}

	e := &Engine{
		options:   options,
		publisher: publisher,
	}
	if options.UseWorkerPool {
		e.pool = NewWorkerPool(options.MaxWorkers)
		e.pool.Start()
	}
	return e
}

// Subscribe adds an observer for engine events
func (e *Engine) Subscribe(o observer.Observer) {
	e.publisher.Subscribe(o)
}

// Close releases the worker pool. Compute keeps working sequentially afterwards.
func (e *Engine) Close() error {
	if e.pool != nil {
		e.pool.Close()
	}
	return nil
}

// ComputeNamed resolves the method name and calls Compute. The image is
// validated before the name so a bad image is reported first.
func (e *Engine) ComputeNamed(img *ndarray.Array, p int, r float64, method string) (*ndarray.Array, error) {
	if err := validation.CheckND(img, "image", 2); err != nil {
		return nil, e.fail(err, method, p, r, img)
	}
	m, err := ParseMethod(method)
	if err != nil {
		return nil, e.fail(err, method, p, r, img)
	}
	return e.Compute(img, p, r, m)
}

// Compute returns the pattern image of img: a fresh array of the same shape
// holding integer codes, or local variances for Var.
//
// Sample point p of pixel (y, x) is at (y + R·sin(2πp/P), x + R·cos(2πp/P)),
// i.e. it starts at the right-hand neighbor and turns clockwise on screen.
// Samples are bilinearly interpolated, pixels outside the image repeat the
// nearest edge pixel, and a sample equal to the center sets its bit.
func (e *Engine) Compute(img *ndarray.Array, p int, r float64, method Method) (*ndarray.Array, error) {
	if err := e.validate(img, p, r, method); err != nil {
		return nil, e.fail(err, method.String(), p, r, img)
	}

	rows, cols, _ := img.Dims2()
	start := time.Now()

	if img.Kind() == ndarray.Float {
		e.publisher.NotifyObservers(e.event(observer.FloatingPointInput, method.String(), p, r, img))
	}
	e.publisher.NotifyObservers(e.event(observer.ComputeStarted, method.String(), p, r, img))

	kind := ndarray.Integer
	if method == Var {
		kind = ndarray.Float
	}
	out := ndarray.New(kind, rows, cols)

	src := plane{data: img.Data(), rows: rows, cols: cols}
	dst := out.Data()
	table := e.offsets.get(p, r)

	band := func(y0, y1 int) {
		samples := make([]float64, p)
		for y := y0; y < y1; y++ {
			for x := 0; x < cols; x++ {
				src.sample(table, y, x, samples)
				dst[y*cols+x] = encode(method, samples, src.data[y*cols+x])
			}
		}
	}

	if e.pool != nil {
		e.pool.ParallelFor(rows, e.options.MinRowsPerBand, band)
	} else {
		band(0, rows)
	}

	completed := e.event(observer.ComputeCompleted, method.String(), p, r, img)
	completed.Success = true
	completed.ProcessingTime = time.Since(start)
	e.publisher.NotifyObservers(completed)

	return out, nil
}

func (e *Engine) validate(img *ndarray.Array, p int, r float64, method Method) error {
	if err := validation.CheckND(img, "image", 2); err != nil {
		return err
	}
	if !method.valid() {
		return apperrors.NewUnknownMethodError(method.String())
	}
	if p <= 0 || p > MaxPoints {
		return apperrors.NewInvalidParameterError(
			fmt.Sprintf("P must be in [1, %d], got %d", MaxPoints, p), nil)
	}
	if !(r > 0) || math.IsInf(r, 0) {
		return apperrors.NewInvalidParameterError(
			fmt.Sprintf("R must be a positive finite radius, got %v", r), nil)
	}
	return nil
}

func (e *Engine) fail(err error, method string, p int, r float64, img *ndarray.Array) error {
	event := e.event(observer.ComputeFailed, method, p, r, img)
	event.ErrorMessage = err.Error()
	e.publisher.NotifyObservers(event)
	return err
}

func (e *Engine) event(t observer.EventType, method string, p int, r float64, img *ndarray.Array) observer.ComputeEvent {
	event := observer.NewEvent(t)
	event.Method = method
	event.Points = p
	event.Radius = r
	if img != nil {
		event.Shape = img.Shape()
	}
	return event
}

var (
	defaultEngine     *Engine
	defaultEngineOnce sync.Once
)

// Compute runs the shared default engine with a method name such as
// "uniform" or "NRI_UNIFORM".
func Compute(img *ndarray.Array, p int, r float64, method string) (*ndarray.Array, error) {
	defaultEngineOnce.Do(func() {
		defaultEngine = NewEngine(DefaultOptions())
	})
	return defaultEngine.ComputeNamed(img, p, r, method)
}
