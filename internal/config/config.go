package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	apperrors "github.com/anime-shed/texture-inspector-go/internal/errors"
)

// Config holds the texture extraction settings
type Config struct {
	Points    int     `validate:"min=1,max=32"`
	Radius    float64 `validate:"gt=0"`
	Method    string  `validate:"oneof=default ror uniform nri_uniform var"`
	GridRows  int     `validate:"min=1,max=64"`
	GridCols  int     `validate:"min=1,max=64"`
	Normalize string  `validate:"oneof=none l1 l2"`
	Workers   int     `validate:"min=0"`

	LogLevel string `validate:"oneof=debug info warn warning error"`
	LogFile  string
}

var validate = validator.New()

// Default returns the built-in settings
func Default() *Config {
	return &Config{
		Points:    8,
		Radius:    1,
		Method:    "uniform",
		GridRows:  2,
		GridCols:  2,
		Normalize: "none",
		Workers:   0,
		LogLevel:  "info",
	}
}

// LoadFromEnv reads settings from the environment. Variables from the given
// dotenv files (".env" when none are named) fill in what the environment
// does not set; missing files are ignored.
func LoadFromEnv(files ...string) (*Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, apperrors.NewIOError(fmt.Sprintf("load %s", f), err)
		}
	}

	def := Default()
	cfg := &Config{
		Method:    lower(getEnvOrDefault("LBP_METHOD", def.Method)),
		Normalize: lower(getEnvOrDefault("LBP_NORMALIZE", def.Normalize)),
		LogLevel:  lower(getEnvOrDefault("LOG_LEVEL", def.LogLevel)),
		LogFile:   strings.TrimSpace(os.Getenv("LOG_FILE")),
	}

	var err error
	if cfg.Points, err = parseIntOrDefault("LBP_POINTS", def.Points); err != nil {
		return nil, err
	}
	if cfg.Radius, err = parseFloatOrDefault("LBP_RADIUS", def.Radius); err != nil {
		return nil, err
	}
	if cfg.GridRows, err = parseIntOrDefault("LBP_GRID_ROWS", def.GridRows); err != nil {
		return nil, err
	}
	if cfg.GridCols, err = parseIntOrDefault("LBP_GRID_COLS", def.GridCols); err != nil {
		return nil, err
	}
	if cfg.Workers, err = parseIntOrDefault("LBP_WORKERS", def.Workers); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every field against its rule
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperrors.NewInternalError("validate config", err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s=%v violates %s", fe.Field(), fe.Value(), ruleOf(fe)))
	}
	return apperrors.NewInvalidParameterError("invalid configuration: "+strings.Join(msgs, "; "), err)
}

func ruleOf(fe validator.FieldError) string {
	if fe.Param() == "" {
		return fe.Tag()
	}
	return fe.Tag() + "=" + fe.Param()
}

func lower(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseIntOrDefault(key string, defaultValue int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue, nil
	}
	v, err := strconv.Atoi(value)
	if err != nil {
		return 0, apperrors.NewInvalidParameterError(fmt.Sprintf("invalid %s: %q", key, value), err)
	}
	return v, nil
}

func parseFloatOrDefault(key string, defaultValue float64) (float64, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue, nil
	}
	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, apperrors.NewInvalidParameterError(fmt.Sprintf("invalid %s: %q", key, value), err)
	}
	return v, nil
}
