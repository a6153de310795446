// Package oneline plans single continuous pen paths through a drawing made of
// Bézier strokes. It is meant for plotters and generative sketches that want
// to render a figure as one unbroken line, jumping between nearby stroke ends
// instead of lifting the pen.
//
// # Strokes and stores
//
// A [Stroke] is a quadratic or cubic Bézier segment with an importance
// weight. A [Store] holds the strokes of one drawing and hands out a stable
// identity for every point of every stroke, which the scoring memo tables are
// keyed on. Stores are immutable and can be shared freely.
//
// # Planning
//
// Planning runs in four stages:
//
//  1. [BuildGraph] links every pair of stroke endpoints closer than a cutoff
//     distance. A pen may only jump along these links.
//  2. [Metrics] scores each jump by tangent continuity, gap length and the
//     weight of the stroke jumped to, and penalises jumps that cut across
//     other strokes or earlier jumps.
//  3. A [PathSearch] looks for the highest-scoring path that never draws a
//     stroke twice. [Backtracking] is an exhaustive search with pruning;
//     [Deepening] commits a few strokes at a time after a bounded lookahead.
//  4. [Resolve] orients every stroke of the path in drawing order.
//
// [Planner] wraps these stages with retries over ranked start candidates
// (see [RankStarts]), logging, and OpenTelemetry spans and metrics.
//
// # Tracing
//
// A resolved path is still a sequence of separate curves. [Tracer] turns it
// into a hand-drawn trajectory: a damped point mass chases a target sliding
// along each curve, which smooths corners, bridges the gaps between strokes
// and yields a speed-dependent pen width.
//
// # Geometry
//
// The package carries the small amount of 2D geometry it needs: [Point],
// [Vec2], [Line], [QuadBez], [CubicBez], [Rect] and [Affine]. Functions that
// operate on curves accept any [ParametricCurve].
package oneline
