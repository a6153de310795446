package oneline

import (
	"bytes"
	"io"
	"math"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config is the complete planner configuration, as read from YAML.
type Config struct {
	// Cutoff is the proximity graph distance cutoff.
	Cutoff float64 `yaml:"cutoff"`
	// MaxLength is the path length at which search stops extending.
	MaxLength float64 `yaml:"max_length"`
	// MaxAttempts bounds how many start candidates a plan tries.
	MaxAttempts int           `yaml:"max_attempts"`
	Strategy    Strategy      `yaml:"strategy"`
	StartEdge   Edge          `yaml:"start_edge"`
	Search      SearchOptions `yaml:"search"`
	Tracer      TracerOptions `yaml:"tracer"`
}

// DefaultConfig returns the configuration used when a file leaves a key out.
func DefaultConfig() Config {
	return Config{
		Cutoff:      120,
		MaxLength:   1500,
		MaxAttempts: 4,
		Strategy:    Backtrack,
		StartEdge:   Left,
		Search:      DefaultSearchOptions(),
		Tracer:      DefaultTracerOptions(),
	}
}

// ParseConfig decodes YAML over [DefaultConfig] and validates the result.
// Unknown keys are an error.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && err != io.EOF {
		return Config{}, errors.Wrap(err, "failed to parse config")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfig reads and parses the config file at path.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrap(err, "failed to read config file")
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return Config{}, errors.Wrapf(err, "%s", path)
	}
	return cfg, nil
}

// Validate reports the first setting out of range. All errors wrap
// [ErrInvalidConfig].
func (c Config) Validate() error {
	switch {
	case !(c.Cutoff > 0) || math.IsInf(c.Cutoff, 0):
		return errors.Wrapf(ErrInvalidConfig, "cutoff %g", c.Cutoff)
	case !(c.MaxLength > 0) || math.IsInf(c.MaxLength, 0):
		return errors.Wrapf(ErrInvalidConfig, "max length %g", c.MaxLength)
	case c.MaxAttempts < 1:
		return errors.Wrapf(ErrInvalidConfig, "max attempts %d", c.MaxAttempts)
	case c.Strategy > Deepen:
		return errors.Wrapf(ErrInvalidConfig, "strategy %s", c.Strategy)
	case c.StartEdge > Bottom:
		return errors.Wrapf(ErrInvalidConfig, "start edge %s", c.StartEdge)
	}
	if err := c.Search.Validate(); err != nil {
		return err
	}
	return c.Tracer.Validate()
}

// Validate reports the first search setting out of range.
func (o SearchOptions) Validate() error {
	switch {
	case !(o.PruneBias >= 0) || math.IsInf(o.PruneBias, 0):
		return errors.Wrapf(ErrInvalidConfig, "prune bias %g", o.PruneBias)
	case o.MaxExpansions < 0:
		return errors.Wrapf(ErrInvalidConfig, "max expansions %d", o.MaxExpansions)
	case o.DepthStep < 1:
		return errors.Wrapf(ErrInvalidConfig, "depth step %d", o.DepthStep)
	case o.CommitStep < 1 || o.CommitStep > o.DepthStep:
		return errors.Wrapf(ErrInvalidConfig, "commit step %d not in [1, %d]", o.CommitStep, o.DepthStep)
	}
	return o.Score.Validate()
}

// Validate reports the first score setting out of range. Mix factors lie in
// [0, 1]; the rest are non-negative.
func (o ScoreOptions) Validate() error {
	for _, f := range []struct {
		name   string
		v, max float64
	}{
		{"importance mix", o.ImportanceMix, 1},
		{"angle weight", o.AngleWeight, 1},
		{"bias", o.Bias, math.MaxFloat64},
		{"cross penalty", o.CrossPenalty, math.MaxFloat64},
		{"visited cross weight", o.VisitedCrossWeight, math.MaxFloat64},
		{"connector cross weight", o.ConnectorCrossWeight, math.MaxFloat64},
	} {
		if !(f.v >= 0 && f.v <= f.max) {
			return errors.Wrapf(ErrInvalidConfig, "%s %g", f.name, f.v)
		}
	}
	return nil
}

func (s Strategy) MarshalYAML() (any, error) {
	return s.String(), nil
}

func (s *Strategy) UnmarshalYAML(value *yaml.Node) error {
	v, err := ParseStrategy(value.Value)
	if err != nil {
		return errors.Wrapf(err, "line %d", value.Line)
	}
	*s = v
	return nil
}

func (e Edge) MarshalYAML() (any, error) {
	return e.String(), nil
}

func (e *Edge) UnmarshalYAML(value *yaml.Node) error {
	v, err := ParseEdge(value.Value)
	if err != nil {
		return errors.Wrapf(err, "line %d", value.Line)
	}
	*e = v
	return nil
}
