package container

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/anime-shed/texture-inspector-go/internal/config"
	"github.com/anime-shed/texture-inspector-go/internal/factory"
	"github.com/anime-shed/texture-inspector-go/internal/lbp"
	"github.com/anime-shed/texture-inspector-go/internal/logger"
	"github.com/anime-shed/texture-inspector-go/internal/observer"
	"github.com/anime-shed/texture-inspector-go/internal/service"
	"github.com/anime-shed/texture-inspector-go/internal/storage"
)

// Container holds all application dependencies
type Container struct {
	config         *config.Config
	logger         *logrus.Logger
	metrics        *observer.MetricsObserver
	engine         *lbp.Engine
	loader         storage.MatrixLoader
	textureService service.TextureService
}

// NewContainer builds the dependency graph for cfg. Logs go to logOutput,
// or stderr when it is nil.
func NewContainer(cfg *config.Config, logOutput io.Writer) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logOutput == nil {
		logOutput = os.Stderr
	}

	log := logger.Configure(logger.Options{
		Level:  cfg.LogLevel,
		File:   cfg.LogFile,
		Output: logOutput,
	})

	metrics := observer.NewMetricsObserver()
	engine := lbp.NewEngine(lbp.DefaultOptions().WithWorkers(cfg.Workers).WithLogger(log), metrics)

	loader, err := factory.NewStorageFactory().CreateLoader(factory.LocalStorage)
	if err != nil {
		_ = engine.Close()
		return nil, err
	}
	textureService := service.NewTextureService(loader, factory.NewStrategyFactory(engine))

	return &Container{
		config:         cfg,
		logger:         log,
		metrics:        metrics,
		engine:         engine,
		loader:         loader,
		textureService: textureService,
	}, nil
}

// TextureService returns the texture service
func (c *Container) TextureService() service.TextureService {
	return c.textureService
}

// Engine returns the shared pattern engine
func (c *Container) Engine() *lbp.Engine {
	return c.engine
}

// Metrics returns the engine metrics
func (c *Container) Metrics() observer.Snapshot {
	return c.metrics.GetMetrics()
}

// Logger returns the configured logger
func (c *Container) Logger() *logrus.Logger {
	return c.logger
}

// Config returns the configuration
func (c *Container) Config() *config.Config {
	return c.config
}

// Close releases the engine workers
func (c *Container) Close() error {
	return c.engine.Close()
}
