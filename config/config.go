package config

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Thresholds classify cells on normalized [0,1] values.
type Thresholds struct {
	// Source marks supply cells (normalized supply ≥ Source).
	Source float64 `yaml:"source" validate:"gte=0,lte=1"`
	// Sink marks impassable cells (normalized resistance > Sink).
	Sink float64 `yaml:"sink" validate:"gte=0,lte=1"`
	// Use marks demand cells (normalized demand ≥ Use).
	Use float64 `yaml:"use" validate:"gte=0,lte=1"`
	// Trans is the minimum normalized flow intensity of a transmission cell.
	Trans float64 `yaml:"trans" validate:"gte=0,lte=1"`
}

// Flow configures quantification.
type Flow struct {
	Decay   float64 `yaml:"decay" validate:"gte=0"`
	Benefit string  `yaml:"benefit" validate:"oneof=rival non-rival"`
	Model   string  `yaml:"model" validate:"required"`
}

// Routing configures path search.
type Routing struct {
	// Backend is "astar" or "ch". Queries against one contraction hierarchy
	// are serialized, so Workers only parallelizes the astar backend.
	Backend      string `yaml:"backend" validate:"oneof=astar ch"`
	Connectivity int    `yaml:"connectivity" validate:"oneof=4 8"`
	Workers      int    `yaml:"workers" validate:"gte=0"`
	Cache        bool   `yaml:"cache"`
}

// Network configures the overlap test.
type Network struct {
	Radius int `yaml:"radius" validate:"gte=0"`
}

// Metrics configures graph descriptors.
type Metrics struct {
	WeightPolicy          string  `yaml:"weight_policy" validate:"oneof=inverted distance"`
	Seed                  int64   `yaml:"seed"`
	MaxIterations         int     `yaml:"max_iterations" validate:"gte=1"`
	Tolerance             float64 `yaml:"tolerance" validate:"gt=0"`
	MaxNodes              int     `yaml:"max_nodes" validate:"gte=0"`
	MaxVulnerabilityNodes int     `yaml:"max_vulnerability_nodes" validate:"gte=0"`
}

// Spatial configures autocorrelation statistics.
type Spatial struct {
	// Field names the flow raster analyzed.
	Field     string  `yaml:"field" validate:"oneof=theoretical actual efficiency"`
	Radius    int     `yaml:"radius" validate:"gte=0"`
	ZCritical float64 `yaml:"z_critical" validate:"gt=0"`
}

// Config is one run's configuration.
type Config struct {
	Thresholds Thresholds `yaml:"thresholds"`
	Flow       Flow       `yaml:"flow"`
	Routing    Routing    `yaml:"routing"`
	Network    Network    `yaml:"network"`
	Metrics    Metrics    `yaml:"metrics"`
	Spatial    Spatial    `yaml:"spatial"`
	// Timeout bounds routing and iterative refinement; zero means none.
	Timeout time.Duration `yaml:"timeout" validate:"gte=0"`
}

// Default returns the baseline configuration.
func Default() Config {
	return Config{
		Thresholds: Thresholds{Source: 0.5, Sink: 1, Use: 0.5, Trans: 0},
		Flow:       Flow{Decay: 0.1, Benefit: "rival", Model: "reachable"},
		Routing:    Routing{Backend: "astar", Connectivity: 8, Cache: true},
		Network:    Network{Radius: 1},
		Metrics: Metrics{
			WeightPolicy:          "inverted",
			Seed:                  1,
			MaxIterations:         100,
			Tolerance:             1e-9,
			MaxNodes:              2000,
			MaxVulnerabilityNodes: 150,
		},
		Spatial: Spatial{Field: "actual", Radius: 2, ZCritical: 1.96},
	}
}

var validate = validator.New()

// Validate checks every field tag and joins the failures.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return formatValidationError(err)
	}
	return nil
}

func formatValidationError(err error) error {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, e := range verrs {
		msgs = append(msgs, formatFieldError(e))
	}
	return errors.Errorf("config: %s", strings.Join(msgs, "; "))
}

func formatFieldError(e validator.FieldError) string {
	field := e.Namespace()
	if i := strings.IndexByte(field, '.'); i >= 0 {
		field = field[i+1:]
	}
	field = strings.ToLower(field)
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, e.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, e.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s", field, e.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, e.Param())
	}
	return fmt.Sprintf("%s is invalid", field)
}

// Parse decodes YAML from in over Default and validates the result.
func Parse(in io.Reader) (Config, error) {
	cfg := Default()
	if err := decode(in, &cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Load reads and parses the configuration file at path.
func Load(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, errors.Wrap(err, "config: open")
	}
	defer f.Close()
	return Parse(f)
}

func decode(in io.Reader, out interface{}) error {
	dec := yaml.NewDecoder(in)
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil && err != io.EOF {
		return errors.Wrap(err, "config: decode")
	}
	return nil
}
