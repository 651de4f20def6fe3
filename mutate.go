package parametric

import (
	"fmt"

	"github.com/ungerik/go3d/float64/mat4"
	"github.com/ungerik/go3d/float64/vec3"

	"github.com/mlee-0/parametric/internal"
)

// Structural and positional edits. Every operation validates before it
// writes, so a failed edit leaves the geometry untouched, and every
// successful edit invalidates the sample cache.

// SetControlPointCount grows or shrinks the control net in one
// direction. New points continue the net by linear extrapolation from
// the last two entries; removal truncates from the end. B-spline knot
// vectors are regenerated and the order clamped down when the new
// count no longer supports it.
func (g *Geometry) SetControlPointCount(dir Direction, count int) error {
	if g.kind.IsHermite() {
		return fmt.Errorf("%s has a fixed control point count: %w", g.kind, ErrIncompatibleGeometry)
	}
	if dir == DirV && !g.kind.IsSurface() {
		return fmt.Errorf("%s has no v direction: %w", g.kind, ErrIncompatibleGeometry)
	}
	if count < 2 {
		return fmt.Errorf("control point count %d < 2: %w", count, ErrDegenerateGeometry)
	}
	if count == g.count(dir) {
		return nil
	}

	if dir == DirU {
		for len(g.points) > count {
			g.points = g.points[:len(g.points)-1]
		}
		for len(g.points) < count {
			g.points = append(g.points, extrapolateRow(g.points))
		}
	} else {
		for i := range g.points {
			row := g.points[i]
			for len(row) > count {
				row = row[:len(row)-1]
			}
			for len(row) < count {
				row = append(row, extrapolatePoint(row))
			}
			g.points[i] = row
		}
	}

	if g.kind.IsBSpline() {
		g.clampOrderAndRegenKnots(dir)
	}

	g.invalidate()
	return nil
}

// SetOrder changes a B-spline direction's order and regenerates its
// knot vector. Other kinds derive their order and reject the edit.
func (g *Geometry) SetOrder(dir Direction, order int) error {
	if !g.kind.IsBSpline() {
		return fmt.Errorf("%s order is derived, not settable: %w", g.kind, ErrIncompatibleGeometry)
	}
	if dir == DirV && !g.kind.IsSurface() {
		return fmt.Errorf("%s has no v direction: %w", g.kind, ErrIncompatibleGeometry)
	}
	if order < MinOrder || order > g.count(dir) {
		return fmt.Errorf("order %d outside [%d, %d]: %w", order, MinOrder, g.count(dir), ErrInvalidOrder)
	}

	if dir == DirV {
		g.orderV = order
		g.knotsV = internal.ClampedUniform(g.CountV(), order)
	} else {
		g.orderU = order
		g.knotsU = internal.ClampedUniform(g.CountU(), order)
	}

	g.invalidate()
	return nil
}

// SetSampleCount changes how many points the render cache holds in one
// direction.
func (g *Geometry) SetSampleCount(dir Direction, count int) error {
	if dir == DirV && !g.kind.IsSurface() {
		return fmt.Errorf("%s has no v direction: %w", g.kind, ErrIncompatibleGeometry)
	}
	if count < 2 {
		return fmt.Errorf("sample count %d < 2: %w", count, ErrDegenerateGeometry)
	}

	if dir == DirV {
		g.nodesV = count
	} else {
		g.nodesU = count
	}

	g.invalidate()
	return nil
}

// SetTangentScale scales Hermite tangent vectors during evaluation.
func (g *Geometry) SetTangentScale(scale float64) error {
	if !g.kind.IsHermite() {
		return fmt.Errorf("%s has no tangent entries: %w", g.kind, ErrIncompatibleGeometry)
	}
	if scale <= 0 {
		return fmt.Errorf("tangent scale %v must be positive: %w", scale, ErrInvalidParameter)
	}

	g.tangentScale = scale
	g.invalidate()
	return nil
}

// MoveControlPoint replaces the control point at net position (i, j).
// Curves use j == 0.
func (g *Geometry) MoveControlPoint(i, j int, p vec3.T) error {
	if i < 0 || i >= g.CountU() || j < 0 || j >= g.CountV() {
		return fmt.Errorf("control point (%d, %d) out of range %dx%d: %w", i, j, g.CountU(), g.CountV(), ErrInvalidParameter)
	}

	g.points[i][j] = p
	g.invalidate()
	return nil
}

// Translate shifts the whole geometry by delta. Hermite tangent
// entries are direction vectors, not positions, and stay put.
func (g *Geometry) Translate(delta vec3.T) {
	for i := range g.points {
		for j := range g.points[i] {
			if g.isTangentEntry(i, j) {
				continue
			}
			g.points[i][j].Add(&delta)
		}
	}
	g.invalidate()
}

// Transform applies an affine transform to the geometry. Positions
// transform fully; Hermite tangent entries see only the linear part.
func (g *Geometry) Transform(m *mat4.T) {
	var zero vec3.T
	origin := m.MulVec3(&zero)

	for i := range g.points {
		for j := range g.points[i] {
			p := m.MulVec3(&g.points[i][j])
			if g.isTangentEntry(i, j) {
				p.Sub(&origin)
			}
			g.points[i][j] = p
		}
	}
	g.invalidate()
}

// isTangentEntry reports whether net position (i, j) holds a tangent
// vector rather than a position. Hermite curves interleave tangents at
// odd indices; Hermite patch matrices hold positions only in the top
// left 2x2 block.
func (g *Geometry) isTangentEntry(i, j int) bool {
	switch g.kind {
	case HermiteCurve:
		return i%2 == 1
	case HermiteSurface:
		return i > 1 || j > 1
	}
	return false
}

// clampOrderAndRegenKnots lowers a B-spline direction's order to the
// control point count if needed and rebuilds its knot vector for the
// current count.
func (g *Geometry) clampOrderAndRegenKnots(dir Direction) {
	if dir == DirV {
		if g.orderV > g.CountV() {
			g.orderV = g.CountV()
		}
		g.knotsV = internal.ClampedUniform(g.CountV(), g.orderV)
		return
	}
	if g.orderU > g.CountU() {
		g.orderU = g.CountU()
	}
	g.knotsU = internal.ClampedUniform(g.CountU(), g.orderU)
}

// extrapolateRow continues the net with a row placed on the line
// through the last two rows, or at the origin when the net is shorter
// than two.
func extrapolateRow(rows [][]vec3.T) []vec3.T {
	if len(rows) < 2 {
		return make([]vec3.T, len(rows[0]))
	}

	prev, last := rows[len(rows)-2], rows[len(rows)-1]
	row := make([]vec3.T, len(last))
	for j := range row {
		step := vec3.Sub(&last[j], &prev[j])
		row[j] = vec3.Add(&last[j], &step)
	}
	return row
}

func extrapolatePoint(row []vec3.T) vec3.T {
	if len(row) < 2 {
		return vec3.T{}
	}
	prev, last := row[len(row)-2], row[len(row)-1]
	step := vec3.Sub(&last, &prev)
	return vec3.Add(&last, &step)
}

// Batch edits apply one logical operation to a whole selection.
// Members whose kind cannot take the edit are skipped, and members
// that can are validated up front so the batch either applies to all
// of them or none.

// BatchSetOrder sets the order of every B-spline in the selection,
// skipping other kinds.
func BatchSetOrder(geometries []*Geometry, dir Direction, order int) error {
	applicable := filterBatch(geometries, func(g *Geometry) bool {
		return g.kind.IsBSpline() && (dir == DirU || g.kind.IsSurface())
	})

	for _, g := range applicable {
		if order < MinOrder || order > g.count(dir) {
			return fmt.Errorf("order %d outside [%d, %d]: %w", order, MinOrder, g.count(dir), ErrInvalidOrder)
		}
	}
	for _, g := range applicable {
		if err := g.SetOrder(dir, order); err != nil {
			return err
		}
	}
	return nil
}

// BatchSetControlPointCount resizes every non-Hermite geometry in the
// selection, skipping Hermite kinds and curves for DirV.
func BatchSetControlPointCount(geometries []*Geometry, dir Direction, count int) error {
	applicable := filterBatch(geometries, func(g *Geometry) bool {
		return !g.kind.IsHermite() && (dir == DirU || g.kind.IsSurface())
	})

	if count < 2 {
		return fmt.Errorf("control point count %d < 2: %w", count, ErrDegenerateGeometry)
	}
	for _, g := range applicable {
		if err := g.SetControlPointCount(dir, count); err != nil {
			return err
		}
	}
	return nil
}

// BatchSetSampleCount sets the sample count of every member, skipping
// curves for DirV.
func BatchSetSampleCount(geometries []*Geometry, dir Direction, count int) error {
	applicable := filterBatch(geometries, func(g *Geometry) bool {
		return dir == DirU || g.kind.IsSurface()
	})

	if count < 2 {
		return fmt.Errorf("sample count %d < 2: %w", count, ErrDegenerateGeometry)
	}
	for _, g := range applicable {
		if err := g.SetSampleCount(dir, count); err != nil {
			return err
		}
	}
	return nil
}

// BatchTranslate shifts every member by the same delta.
func BatchTranslate(geometries []*Geometry, delta vec3.T) {
	for _, g := range geometries {
		g.Translate(delta)
	}
}

func filterBatch(geometries []*Geometry, keep func(*Geometry) bool) []*Geometry {
	var out []*Geometry
	for _, g := range geometries {
		if keep(g) {
			out = append(out, g)
		}
	}
	return out
}
