// Package parametric evaluates and edits parametric curves and
// surfaces: Bézier, cubic Hermite, and B-spline, in one or two
// parameter directions. It provides the basis functions, a sampler
// with per-geometry caching, a continuity analyzer for adjoining
// geometries, and the mutation operations an interactive editor
// needs. Rendering and windowing are left to the caller; the package
// hands out sampled point sets and consumes edit requests.
package parametric
