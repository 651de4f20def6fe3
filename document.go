package parametric

import (
	"fmt"
	"log/slog"

	"github.com/ungerik/go3d/float64/vec3"

	"github.com/mlee-0/parametric/internal"
)

// Document is the collection of geometries a UI edits: the owning list,
// the current selection, and the settings new geometries and analysis
// runs draw from. A Document is driven synchronously by one event loop
// and is not safe for concurrent use.
type Document struct {
	settings   Settings
	logger     *slog.Logger
	geometries []*Geometry
	selection  []int
}

// NewDocument returns an empty document. A nil logger falls back to
// slog.Default.
func NewDocument(settings Settings, logger *slog.Logger) *Document {
	if logger == nil {
		logger = slog.Default()
	}
	s := settings
	s.normalize()
	return &Document{settings: s, logger: logger}
}

// Settings returns the document's settings.
func (d *Document) Settings() Settings { return d.settings }

// Len returns the number of geometries in the document.
func (d *Document) Len() int { return len(d.geometries) }

// Geometry returns the geometry at index i.
func (d *Document) Geometry(i int) (*Geometry, error) {
	if i < 0 || i >= len(d.geometries) {
		return nil, fmt.Errorf("geometry index %d out of range %d: %w", i, len(d.geometries), ErrInvalidParameter)
	}
	return d.geometries[i], nil
}

// Add appends a geometry to the document and returns its index.
func (d *Document) Add(g *Geometry) int {
	d.geometries = append(d.geometries, g)
	idx := len(d.geometries) - 1
	d.logger.Info("geometry added", "index", idx, "kind", g.Kind().String())
	return idx
}

// Remove deletes the geometry at index i, dropping it from the
// selection and shifting later selection indices down.
func (d *Document) Remove(i int) error {
	if i < 0 || i >= len(d.geometries) {
		return fmt.Errorf("geometry index %d out of range %d: %w", i, len(d.geometries), ErrInvalidParameter)
	}

	kind := d.geometries[i].Kind()
	d.geometries = append(d.geometries[:i], d.geometries[i+1:]...)

	kept := d.selection[:0]
	for _, s := range d.selection {
		switch {
		case s < i:
			kept = append(kept, s)
		case s > i:
			kept = append(kept, s-1)
		}
	}
	d.selection = kept

	d.logger.Info("geometry removed", "index", i, "kind", kind.String())
	return nil
}

// Select replaces the selection. Indices keep their given order, which
// defines adjacency for continuity analysis.
func (d *Document) Select(indices ...int) error {
	for _, i := range indices {
		if i < 0 || i >= len(d.geometries) {
			return fmt.Errorf("geometry index %d out of range %d: %w", i, len(d.geometries), ErrInvalidParameter)
		}
	}
	d.selection = append(d.selection[:0], indices...)
	return nil
}

// Selection returns the selected geometries in selection order.
func (d *Document) Selection() []*Geometry {
	out := make([]*Geometry, len(d.selection))
	for i, s := range d.selection {
		out[i] = d.geometries[s]
	}
	return out
}

// SelectedIndices returns a copy of the selected indices.
func (d *Document) SelectedIndices() []int {
	return append([]int(nil), d.selection...)
}

// AnalyzeSelection reports continuity for every adjacent pair of the
// selection, using the document's tolerances.
func (d *Document) AnalyzeSelection() []PairResult {
	results := d.settings.Analyzer().AnalyzeSelection(d.Selection())
	for _, r := range results {
		if r.Err != nil {
			d.logger.Warn("continuity analysis failed",
				"a", d.selection[r.A], "b", d.selection[r.B], "err", r.Err)
		}
	}
	return results
}

// Pick identifies the control point nearest to a pick ray across the
// whole document, for drag editing.
type Pick struct {
	Geometry int
	I, J     int
	Point    vec3.T
}

// PickControlPoint returns the control point within radius of the ray
// that lies closest to it, or false when nothing is hit.
func (d *Document) PickControlPoint(ray internal.Ray, radius float64) (Pick, bool) {
	var best Pick
	bestDist := radius
	hit := false

	for gi, g := range d.geometries {
		for i := range g.points {
			for j := range g.points[i] {
				pt := g.points[i][j]
				if dist := ray.DistToPoint(pt); dist <= bestDist {
					bestDist = dist
					best = Pick{Geometry: gi, I: i, J: j, Point: pt}
					hit = true
				}
			}
		}
	}

	return best, hit
}

// FieldState tells a UI which sidebar fields to enable for the current
// selection and what values to show. Enabled is the intersection of
// every selected kind's applicable fields; values come from the last
// selected geometry.
type FieldState struct {
	Enabled Field

	CountU, CountV int
	NodesU, NodesV int
	OrderU, OrderV int
	TangentScale   float64
}

// SelectionFieldState derives the sidebar state for the current
// selection. An empty selection enables nothing.
func (d *Document) SelectionFieldState() FieldState {
	if len(d.selection) == 0 {
		return FieldState{}
	}

	enabled := ApplicableFields(d.geometries[d.selection[0]].Kind())
	for _, s := range d.selection[1:] {
		enabled &= ApplicableFields(d.geometries[s].Kind())
	}

	last := d.geometries[d.selection[len(d.selection)-1]]
	return FieldState{
		Enabled:      enabled,
		CountU:       last.CountU(),
		CountV:       last.CountV(),
		NodesU:       last.Nodes(DirU),
		NodesV:       last.Nodes(DirV),
		OrderU:       last.Order(DirU),
		OrderV:       last.Order(DirV),
		TangentScale: last.TangentScale(),
	}
}
