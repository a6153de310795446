package oneline

import (
	"iter"
	"math"
	"math/rand/v2"

	"github.com/pkg/errors"
)

// TracerOptions configure the pen simulation of a [Tracer].
type TracerOptions struct {
	// Step is the distance under which the pen counts as having caught up
	// with its target.
	Step float64 `yaml:"step"`
	// Acceleration is the pull toward the target per step.
	Acceleration float64 `yaml:"acceleration"`
	// Friction scales the velocity after every step.
	Friction float64 `yaml:"friction"`
	// Lookahead is how many steps of current velocity the pen anticipates
	// when aiming at its target.
	Lookahead float64 `yaml:"lookahead"`
	// Dt is the curve parameter increment of the target.
	Dt float64 `yaml:"dt"`
	// Rewind is the fraction of Dt the target moves back while the pen
	// trails it by more than twice Step. It must be below 1.
	Rewind float64 `yaml:"rewind"`
	// Tremor adds a slow sinusoidal wobble; its sign picks the direction.
	Tremor float64 `yaml:"tremor"`
	// Style shapes the width response to speed, in [0, 1].
	Style float64 `yaml:"style"`
	// Noise is the standard deviation of the Gaussian jitter added to
	// the pen width.
	Noise float64 `yaml:"noise"`
	// Seed seeds the jitter. Equal seeds give equal samples.
	Seed uint64 `yaml:"seed"`
	// MaxLength stops the pen after it has travelled that far. Zero means no
	// limit.
	MaxLength float64 `yaml:"max_length"`
	// MaxSteps stops the pen after that many samples. Zero means no limit.
	MaxSteps int `yaml:"max_steps"`
}

// DefaultTracerOptions returns a steady pen without tremor or jitter.
func DefaultTracerOptions() TracerOptions {
	return TracerOptions{
		Step:         4,
		Acceleration: 0.12,
		Friction:     0.94,
		Lookahead:    8,
		Dt:           0.001,
		Rewind:       0.1,
		Style:        0.5,
		MaxLength:    2000,
	}
}

// Validate reports options under which the simulation would not terminate
// or would not move.
func (o TracerOptions) Validate() error {
	switch {
	case !(o.Step > 0) || math.IsInf(o.Step, 0):
		return errors.Wrapf(ErrInvalidConfig, "tracer step %g", o.Step)
	case !(o.Acceleration > 0) || math.IsInf(o.Acceleration, 0):
		return errors.Wrapf(ErrInvalidConfig, "tracer acceleration %g", o.Acceleration)
	case !(o.Friction >= 0 && o.Friction <= 1):
		return errors.Wrapf(ErrInvalidConfig, "tracer friction %g not in [0, 1]", o.Friction)
	case !(o.Lookahead >= 0) || math.IsInf(o.Lookahead, 0):
		return errors.Wrapf(ErrInvalidConfig, "tracer lookahead %g", o.Lookahead)
	case !(o.Dt > 0 && o.Dt <= 1):
		return errors.Wrapf(ErrInvalidConfig, "tracer dt %g not in (0, 1]", o.Dt)
	case !(o.Rewind >= 0 && o.Rewind < 1):
		return errors.Wrapf(ErrInvalidConfig, "tracer rewind %g not in [0, 1)", o.Rewind)
	case !isFinite(o.Tremor):
		return errors.Wrapf(ErrInvalidConfig, "tracer tremor %g", o.Tremor)
	case !(o.Style >= 0 && o.Style <= 1):
		return errors.Wrapf(ErrInvalidConfig, "tracer style %g not in [0, 1]", o.Style)
	case !(o.Noise >= 0) || math.IsInf(o.Noise, 0):
		return errors.Wrapf(ErrInvalidConfig, "tracer noise %g", o.Noise)
	case !(o.MaxLength >= 0):
		return errors.Wrapf(ErrInvalidConfig, "tracer max length %g", o.MaxLength)
	case o.MaxSteps < 0:
		return errors.Wrapf(ErrInvalidConfig, "tracer max steps %d", o.MaxSteps)
	}
	return nil
}

// Sample is one pen step.
type Sample struct {
	// Pos is the pen position after the step.
	Pos Point
	// Vel is the displacement of the step.
	Vel Vec2
	// Distance is the total distance travelled, including this step.
	Distance float64
	// Width is the pen width for the segment from Pos-Vel to Pos.
	Width float64
}

// Tracer turns resolved strokes into a hand-drawn pen trajectory: a damped
// point mass chases a target that slides along each curve, so the pen cuts
// corners, overshoots and bridges the connector gaps between strokes.
type Tracer struct {
	opts TracerOptions
}

// NewTracer returns a Tracer with the given options.
func NewTracer(opts TracerOptions) (*Tracer, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &Tracer{opts: opts}, nil
}

// Samples iterates over the pen steps along strokes, which are drawn in order
// from A to B as returned by [Resolve]. Every iteration replays the same
// sequence.
func (tr *Tracer) Samples(strokes []Stroke) iter.Seq[Sample] {
	return func(yield func(Sample) bool) {
		if len(strokes) == 0 {
			return
		}
		o := tr.opts
		rng := rand.New(rand.NewPCG(o.Seed, o.Seed^0x9e3779b97f4a7c15))
		tremorAcc := min(o.Tremor*0.6, o.Acceleration*0.8)
		tremorDir := sign(o.Tremor)

		pos := strokes[0].A
		var vel Vec2
		var dist float64
		steps := 0

		for _, s := range strokes {
			c := s.Curve()
			for t := 0.0; t < 1; t += o.Dt {
				d := c.Eval(t).Sub(pos.Translate(vel.Mul(o.Lookahead)))
				n := d.Hypot()
				if n < o.Step {
					continue
				}
				if n > 2*o.Step {
					t -= o.Dt * o.Rewind
				}

				vel = vel.Add(d.Mul(o.Acceleration / n))
				phase := dist * tremorDir * 0.02
				vel = vel.Add(Vec(math.Sin(phase), math.Cos(phase)).Mul(tremorAcc))
				vel = vel.Mul(o.Friction)

				speed := vel.Hypot()
				pos = pos.Translate(vel)
				dist += speed
				steps++

				smp := Sample{
					Pos:      pos,
					Vel:      vel,
					Distance: dist,
					Width:    penWidth(speed, o.Style),
				}
				if o.Noise > 0 {
					smp.Width = max(smp.Width+rng.NormFloat64()*o.Noise, 0)
				}
				if !yield(smp) {
					return
				}
				if o.MaxLength > 0 && dist > o.MaxLength {
					return
				}
				if o.MaxSteps > 0 && steps >= o.MaxSteps {
					return
				}
			}
		}
	}
}

// Trace collects the samples of a [Tracer] with the given options.
func Trace(strokes []Stroke, opts TracerOptions) ([]Sample, error) {
	tr, err := NewTracer(opts)
	if err != nil {
		return nil, err
	}
	var out []Sample
	for s := range tr.Samples(strokes) {
		out = append(out, s)
	}
	return out, nil
}

// penWidth maps pen speed to stroke width: slow pens draw thin lines and
// fast ones saturate. style blends between a concave and a convex response.
func penWidth(speed, style float64) float64 {
	return 60 * math.Pow(speed/2, style) / (3 + math.Pow(speed, 1-style))
}

func sign(f float64) float64 {
	switch {
	case f > 0:
		return 1
	case f < 0:
		return -1
	default:
		return 0
	}
}
