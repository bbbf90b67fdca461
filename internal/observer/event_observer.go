package observer

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// ComputeEvent is published by the engine around each Compute call
type ComputeEvent struct {
	ID             string                 `json:"id"`
	EventType      EventType              `json:"event_type"`
	Timestamp      time.Time              `json:"timestamp"`
	Method         string                 `json:"method"`
	Points         int                    `json:"points"`
	Radius         float64                `json:"radius"`
	Shape          []int                  `json:"shape,omitempty"`
	ProcessingTime time.Duration          `json:"processing_time"`
	Success        bool                   `json:"success"`
	ErrorMessage   string                 `json:"error_message,omitempty"`
	Metadata       map[string]interface{} `json:"metadata,omitempty"`
}

// EventType names a ComputeEvent
type EventType string

const (
	// ComputeStarted when validation passed and per-pixel work begins
	ComputeStarted EventType = "compute_started"
	// ComputeCompleted when the output array is ready
	ComputeCompleted EventType = "compute_completed"
	// ComputeFailed when the request was rejected
	ComputeFailed EventType = "compute_failed"
	// FloatingPointInput is advisory: float pixels near a threshold can flip bits
	FloatingPointInput EventType = "floating_point_input"
)

// NewEvent stamps an event with a fresh id and the current time
func NewEvent(eventType EventType) ComputeEvent {
	return ComputeEvent{
		ID:        uuid.NewString(),
		EventType: eventType,
		Timestamp: time.Now(),
	}
}

// Observer receives engine events. Names identify observers for Unsubscribe.
type Observer interface {
	OnEvent(event ComputeEvent)
	GetObserverName() string
}

// Subject fans events out to observers
type Subject interface {
	Subscribe(observer Observer)
	Unsubscribe(observer Observer)
	NotifyObservers(event ComputeEvent)
}

// LoggingObserver writes one log entry per event
type LoggingObserver struct {
	logger *logrus.Logger
}

// NewLoggingObserver logs to l
func NewLoggingObserver(l *logrus.Logger) Observer {
	return &LoggingObserver{logger: l}
}

// OnEvent logs the event at a level chosen by its type
func (o *LoggingObserver) OnEvent(event ComputeEvent) {
	fields := logrus.Fields{
		"event_id":        event.ID,
		"event_type":      event.EventType,
		"method":          event.Method,
		"points":          event.Points,
		"radius":          event.Radius,
		"shape":           event.Shape,
		"processing_time": event.ProcessingTime,
		"success":         event.Success,
	}

	if event.ErrorMessage != "" {
		fields["error"] = event.ErrorMessage
	}

	for k, v := range event.Metadata {
		fields[k] = v
	}

	switch event.EventType {
	case ComputeStarted:
		o.logger.WithFields(fields).Debug("LBP computation started")
	case ComputeCompleted:
		o.logger.WithFields(fields).Info("LBP computation completed")
	case ComputeFailed:
		o.logger.WithFields(fields).Error("LBP computation failed")
	case FloatingPointInput:
		o.logger.WithFields(fields).Warn("Applying local binary pattern to floating-point images may give " +
			"unexpected results when small numerical differences between adjacent pixels are present; " +
			"integer images are recommended")
	default:
		o.logger.WithFields(fields).Info("LBP engine event")
	}
}

func (o *LoggingObserver) GetObserverName() string {
	return "logging_observer"
}

// MetricsObserver counts computations and accumulates their timings
type MetricsObserver struct {
	mu                  sync.RWMutex
	totalComputations   int64
	successful          int64
	failed              int64
	advisories          int64
	pixelsProcessed     int64
	totalProcessingTime time.Duration
}

// NewMetricsObserver returns an observer with zeroed counters
func NewMetricsObserver() *MetricsObserver {
	return &MetricsObserver{}
}

// OnEvent updates the counters
func (o *MetricsObserver) OnEvent(event ComputeEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()

	switch event.EventType {
	case ComputeStarted:
		o.totalComputations++
	case ComputeCompleted:
		o.successful++
		o.totalProcessingTime += event.ProcessingTime
		if len(event.Shape) > 0 {
			n := int64(1)
			for _, d := range event.Shape {
				n *= int64(d)
			}
			o.pixelsProcessed += n
		}
	case ComputeFailed:
		o.failed++
	case FloatingPointInput:
		o.advisories++
	}
}

func (o *MetricsObserver) GetObserverName() string {
	return "metrics_observer"
}

// Snapshot is a point-in-time copy of the collected metrics
type Snapshot struct {
	TotalComputations   int64         `json:"total_computations"`
	Successful          int64         `json:"successful_computations"`
	Failed              int64         `json:"failed_computations"`
	Advisories          int64         `json:"floating_point_advisories"`
	PixelsProcessed     int64         `json:"pixels_processed"`
	TotalProcessingTime time.Duration `json:"total_processing_time"`
	AvgProcessingTime   time.Duration `json:"avg_processing_time"`
}

// GetMetrics returns a consistent copy of the counters
func (o *MetricsObserver) GetMetrics() Snapshot {
	o.mu.RLock()
	defer o.mu.RUnlock()

	var avg time.Duration
	if o.successful > 0 {
		avg = o.totalProcessingTime / time.Duration(o.successful)
	}

	return Snapshot{
		TotalComputations:   o.totalComputations,
		Successful:          o.successful,
		Failed:              o.failed,
		Advisories:          o.advisories,
		PixelsProcessed:     o.pixelsProcessed,
		TotalProcessingTime: o.totalProcessingTime,
		AvgProcessingTime:   avg,
	}
}

// EventPublisher is the Subject used by the engine
type EventPublisher struct {
	mu        sync.RWMutex
	observers []Observer
}

func NewEventPublisher() *EventPublisher {
	return &EventPublisher{}
}

// Subscribe appends o; it sees events in subscription order
func (p *EventPublisher) Subscribe(o Observer) {
	p.mu.Lock()
	p.observers = append(p.observers, o)
	p.mu.Unlock()
}

// Unsubscribe drops the first observer with the same name as o
func (p *EventPublisher) Unsubscribe(o Observer) {
	name := o.GetObserverName()

	p.mu.Lock()
	defer p.mu.Unlock()
	for i := range p.observers {
		if p.observers[i].GetObserverName() != name {
			continue
		}
		kept := make([]Observer, 0, len(p.observers)-1)
		kept = append(kept, p.observers[:i]...)
		p.observers = append(kept, p.observers[i+1:]...)
		return
	}
}

// NotifyObservers delivers the event to every observer in subscription order.
// Delivery is synchronous so the event is observed before the engine returns.
func (p *EventPublisher) NotifyObservers(event ComputeEvent) {
	p.mu.RLock()
	observers := p.observers
	p.mu.RUnlock()

	for _, obs := range observers {
		notify(obs, event)
	}
}

func notify(obs Observer, event ComputeEvent) {
	defer func() {
		if r := recover(); r != nil {
			logrus.WithFields(logrus.Fields{
				"observer": obs.GetObserverName(),
				"event_id": event.ID,
				"panic":    r,
			}).Error("observer panicked")
		}
	}()
	obs.OnEvent(event)
}
