package oneline

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/penplot/oneline"

// Plan is the outcome of [Planner.Plan].
type Plan struct {
	// RunID identifies the planning run in logs and traces.
	RunID uuid.UUID
	// Start is the entry endpoint of the chosen path.
	Start EndpointRef
	// Attempts is the number of starts tried.
	Attempts int
	Path     Path
	// Strokes is Path resolved into drawing order.
	Strokes []Stroke
}

// Empty reports whether no path was found.
func (p Plan) Empty() bool {
	return len(p.Path) == 0
}

// Planner runs the search from a sequence of start candidates until one
// yields a path. A Planner is safe for concurrent use.
type Planner struct {
	st     *Store
	cfg    Config
	g      *Graph
	search PathSearch

	logger *slog.Logger
	tp     trace.TracerProvider
	mp     metric.MeterProvider

	tracer    trace.Tracer
	attempts  metric.Int64Counter
	plans     metric.Int64Counter
	pathScore metric.Float64Histogram
}

// PlannerOption configures a [Planner].
type PlannerOption func(*Planner)

// WithLogger sets the logger of the planner. Without it, the package-wide
// logger of [Logger] is used.
func WithLogger(l *slog.Logger) PlannerOption {
	return func(p *Planner) {
		p.logger = l
	}
}

// WithTracerProvider sets the source of planner spans. It defaults to the
// global provider.
func WithTracerProvider(tp trace.TracerProvider) PlannerOption {
	return func(p *Planner) {
		p.tp = tp
	}
}

// WithMeterProvider sets the source of planner metrics. It defaults to the
// global provider.
func WithMeterProvider(mp metric.MeterProvider) PlannerOption {
	return func(p *Planner) {
		p.mp = mp
	}
}

// NewPlanner validates cfg, builds the proximity graph of st and returns a
// planner using the configured search strategy.
func NewPlanner(st *Store, cfg Config, opts ...PlannerOption) (*Planner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	p := &Planner{st: st, cfg: cfg}
	for _, opt := range opts {
		opt(p)
	}
	if p.tp == nil {
		p.tp = otel.GetTracerProvider()
	}
	if p.mp == nil {
		p.mp = otel.GetMeterProvider()
	}
	p.tracer = p.tp.Tracer(instrumentationName)

	meter := p.mp.Meter(instrumentationName)
	var err error
	p.attempts, err = meter.Int64Counter(
		"oneline.plan.attempts",
		metric.WithDescription("Number of start candidates searched"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, errors.Wrap(err, "create attempts counter")
	}
	p.plans, err = meter.Int64Counter(
		"oneline.plans",
		metric.WithDescription("Number of planning runs"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, errors.Wrap(err, "create plans counter")
	}
	p.pathScore, err = meter.Float64Histogram(
		"oneline.path.score",
		metric.WithDescription("Score of planned paths"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, errors.Wrap(err, "create score histogram")
	}

	p.g = BuildGraph(st, cfg.Cutoff)
	p.search, err = NewSearch(cfg.Strategy, st, p.g, cfg.Search)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Graph returns the proximity graph the planner searches.
func (p *Planner) Graph() *Graph {
	return p.g
}

// Config returns the planner configuration.
func (p *Planner) Config() Config {
	return p.cfg
}

func (p *Planner) log() *slog.Logger {
	if p.logger != nil {
		return p.logger
	}
	return Logger()
}

// Plan searches from starts in order, at most MaxAttempts of them, and
// returns the first path with at least two strokes. A nil starts uses
// [RankStarts] with the configured edge.
//
// A start from which nothing is reachable is not an error; the next one is
// tried. If every attempt fails, Plan returns an empty plan and a nil error.
// The error is non-nil only if ctx is done, in which case the plan holds
// whatever the interrupted attempt found.
func (p *Planner) Plan(ctx context.Context, starts []EndpointRef) (Plan, error) {
	if starts == nil {
		starts = RankStarts(p.st, p.cfg.StartEdge)
	}
	plan := Plan{RunID: uuid.New()}
	log := p.log().With("run_id", plan.RunID.String())

	ctx, span := p.tracer.Start(ctx, "oneline.plan", trace.WithAttributes(
		attribute.String("oneline.run_id", plan.RunID.String()),
		attribute.String("oneline.strategy", p.cfg.Strategy.String()),
		attribute.Int("oneline.strokes", p.st.Len()),
		attribute.Int("oneline.graph.edges", p.g.Edges()),
	))
	defer span.End()

	n := min(len(starts), p.cfg.MaxAttempts)
	for i := range n {
		if err := ctx.Err(); err != nil {
			return p.cancelled(ctx, span, plan, err)
		}
		plan.Attempts = i + 1
		path, err := p.attempt(ctx, starts[i], plan.Attempts)
		if ctx.Err() != nil {
			if len(path) > 1 {
				plan.Start, plan.Path, plan.Strokes = starts[i], path, Resolve(p.st, path)
			}
			return p.cancelled(ctx, span, plan, ctx.Err())
		}
		if err != nil {
			log.Warn("no reachable path", "start", starts[i].String(), "attempt", plan.Attempts)
			continue
		}

		plan.Start, plan.Path, plan.Strokes = starts[i], path, Resolve(p.st, path)
		span.SetAttributes(
			attribute.Int("oneline.attempts", plan.Attempts),
			attribute.Int("oneline.path.nodes", len(path)),
			attribute.Float64("oneline.path.score", path.Score()),
			attribute.Float64("oneline.path.length", path.Length()),
		)
		span.SetStatus(codes.Ok, "path found")
		p.plans.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", "found")))
		p.pathScore.Record(ctx, path.Score())
		log.Info("plan complete",
			"start", plan.Start.String(),
			"attempts", plan.Attempts,
			"nodes", len(path),
			"score", path.Score(),
			"length", path.Length(),
		)
		return plan, nil
	}

	log.Warn("no start reached", "attempts", plan.Attempts, "candidates", len(starts))
	span.SetAttributes(attribute.Int("oneline.attempts", plan.Attempts))
	span.SetStatus(codes.Ok, "no reachable path")
	p.plans.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", "empty")))
	return plan, nil
}

func (p *Planner) cancelled(ctx context.Context, span trace.Span, plan Plan, err error) (Plan, error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	p.plans.Add(context.WithoutCancel(ctx), 1, metric.WithAttributes(attribute.String("outcome", "cancelled")))
	return plan, errors.Wrap(err, "planning interrupted")
}

// attempt runs one search. It fails with ErrNoReachablePath unless the path
// covers at least two strokes.
func (p *Planner) attempt(ctx context.Context, start EndpointRef, n int) (Path, error) {
	ctx, span := p.tracer.Start(ctx, "oneline.attempt", trace.WithAttributes(
		attribute.String("oneline.start", start.String()),
		attribute.Int("oneline.attempt", n),
	))
	defer span.End()

	path := p.search.FindPath(ctx, start, p.cfg.MaxLength)
	outcome := "found"
	var err error
	if len(path) < 2 {
		outcome = "unreachable"
		err = errors.Wrapf(ErrNoReachablePath, "start %s", start)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetAttributes(
			attribute.Int("oneline.path.nodes", len(path)),
			attribute.Float64("oneline.path.score", path.Score()),
		)
	}
	p.attempts.Add(context.WithoutCancel(ctx), 1, metric.WithAttributes(attribute.String("outcome", outcome)))
	p.log().Debug("attempt finished",
		"start", start.String(),
		"attempt", n,
		"nodes", len(path),
		"score", path.Score(),
	)
	return path, err
}

// Trace runs the pen simulation over the strokes of plan with the configured
// tracer options.
func (p *Planner) Trace(plan Plan) ([]Sample, error) {
	return Trace(plan.Strokes, p.cfg.Tracer)
}
