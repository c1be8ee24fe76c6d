// Package config assembles runtime configuration from defaults, the
// environment and command line flags.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"cubescan/internal/logger"
	"cubescan/internal/models"
	"cubescan/internal/settings"

	"github.com/rs/zerolog"
)

const (
	DefaultCamera      = 0
	DefaultSolver      = "kociemba"
	DefaultWindowWidth = 800
)

// ParameterRange bounds a numeric parameter
type ParameterRange struct {
	Min int
	Max int
}

var edgeRanges = map[string]ParameterRange{
	models.ParamBlurKernel:   {Min: 1, Max: 15},
	models.ParamCannyLow:     {Min: 0, Max: 255},
	models.ParamCannyHigh:    {Min: 1, Max: 255},
	models.ParamDilateKernel: {Min: 1, Max: 9},
}

type Config struct {
	CameraDevice int
	SettingsPath string
	SolverPath   string
	Normalize    bool
	LogLevel     zerolog.Level
	WindowWidth  int

	edge map[string]int
}

// Default returns the configuration used when nothing is overridden
func Default() *Config {
	c := &Config{
		CameraDevice: DefaultCamera,
		SettingsPath: settings.DefaultPath(),
		SolverPath:   DefaultSolver,
		LogLevel:     zerolog.InfoLevel,
		WindowWidth:  DefaultWindowWidth,
		edge:         make(map[string]int, len(models.EdgeDefaults)),
	}
	for k, v := range models.EdgeDefaults {
		c.edge[k] = v
	}
	return c
}

// Load applies the environment and then args on top of Default.
// flag.ErrHelp is returned unchanged when -h is given.
func Load(args []string, output io.Writer) (*Config, error) {
	c := Default()
	c.LogLevel = logger.LevelFromEnv()
	if solver := os.Getenv("CUBESCAN_SOLVER"); solver != "" {
		c.SolverPath = solver
	}

	fs := flag.NewFlagSet("cubescan", flag.ContinueOnError)
	fs.SetOutput(output)

	fs.IntVar(&c.CameraDevice, "camera", c.CameraDevice, "camera device index")
	fs.StringVar(&c.SettingsPath, "settings", c.SettingsPath, "settings file holding the calibrated palette")
	fs.StringVar(&c.SolverPath, "solver", c.SolverPath, "solver program invoked with the cube state")
	fs.BoolVar(&c.Normalize, "normalize", false, "print the solution as human readable sentences")
	fs.IntVar(&c.WindowWidth, "width", c.WindowWidth, "preview window width in pixels")
	level := fs.String("log-level", "", "log level: debug, info, warn, error")
	cannyLow := fs.Int("canny-low", models.EdgeDefaults[models.ParamCannyLow], "lower Canny hysteresis threshold")
	cannyHigh := fs.Int("canny-high", models.EdgeDefaults[models.ParamCannyHigh], "upper Canny hysteresis threshold")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if *level != "" {
		parsed, err := logger.ParseLevel(*level)
		if err != nil {
			return nil, err
		}
		c.LogLevel = parsed
	}

	if err := c.SetEdgeParameter(models.ParamCannyLow, *cannyLow); err != nil {
		return nil, err
	}
	if err := c.SetEdgeParameter(models.ParamCannyHigh, *cannyHigh); err != nil {
		return nil, err
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate rejects settings the scanner cannot run with
func (c *Config) Validate() error {
	if c.CameraDevice < 0 {
		return NewValidationError("camera", c.CameraDevice, "device index must not be negative")
	}
	if c.SolverPath == "" {
		return NewValidationError("solver", c.SolverPath, "solver path must not be empty")
	}
	if c.WindowWidth < 320 {
		c.WindowWidth = 320
	}
	if c.edge[models.ParamCannyLow] >= c.edge[models.ParamCannyHigh] {
		return NewValidationError(models.ParamCannyLow, c.edge[models.ParamCannyLow], "must be below canny_high")
	}
	return nil
}

// SetEdgeParameter changes one preprocessing parameter after range checking
func (c *Config) SetEdgeParameter(name string, value int) error {
	r, ok := edgeRanges[name]
	if !ok {
		return NewValidationError(name, value, "unknown parameter")
	}
	if value < r.Min {
		return NewValidationError(name, value, "value below minimum")
	}
	if value > r.Max {
		return NewValidationError(name, value, "value above maximum")
	}
	c.edge[name] = value
	return nil
}

// EdgeParameters returns a copy in the form the processing chain consumes
func (c *Config) EdgeParameters() map[string]interface{} {
	return models.EdgeParameters(c.edge)
}

type ValidationError struct {
	Parameter string
	Value     interface{}
	Message   string
}

func NewValidationError(parameter string, value interface{}, message string) *ValidationError {
	return &ValidationError{
		Parameter: parameter,
		Value:     value,
		Message:   message,
	}
}

func (ve *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %v: %s", ve.Parameter, ve.Value, ve.Message)
}

// IsValidationError reports whether err carries a ValidationError
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
