package parametric

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ungerik/go3d/float64/vec3"

	"github.com/mlee-0/parametric/internal"
)

func testDocument(t *testing.T) *Document {
	t.Helper()
	return NewDocument(DefaultSettings(), slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestDocumentAddRemove(t *testing.T) {
	d := testDocument(t)

	g1, err := NewBezierCurve(line(3), 10)
	require.NoError(t, err)
	g2, err := NewBezierCurve(line(4), 10)
	require.NoError(t, err)

	assert.Equal(t, 0, d.Add(g1))
	assert.Equal(t, 1, d.Add(g2))
	assert.Equal(t, 2, d.Len())

	got, err := d.Geometry(1)
	require.NoError(t, err)
	assert.Same(t, g2, got)

	require.NoError(t, d.Remove(0))
	assert.Equal(t, 1, d.Len())
	got, err = d.Geometry(0)
	require.NoError(t, err)
	assert.Same(t, g2, got)

	assert.ErrorIs(t, d.Remove(5), ErrInvalidParameter)
}

func TestDocumentSelection(t *testing.T) {
	d := testDocument(t)
	for i := 0; i < 3; i++ {
		g, err := NewBezierCurve(line(3), 10)
		require.NoError(t, err)
		d.Add(g)
	}

	assert.ErrorIs(t, d.Select(0, 7), ErrInvalidParameter)
	require.NoError(t, d.Select(2, 0))
	assert.Equal(t, []int{2, 0}, d.SelectedIndices())
	assert.Len(t, d.Selection(), 2)
}

func TestDocumentRemoveShiftsSelection(t *testing.T) {
	d := testDocument(t)
	for i := 0; i < 3; i++ {
		g, err := NewBezierCurve(line(3), 10)
		require.NoError(t, err)
		d.Add(g)
	}
	require.NoError(t, d.Select(0, 1, 2))

	require.NoError(t, d.Remove(1))
	assert.Equal(t, []int{0, 1}, d.SelectedIndices())
}

func TestDocumentAnalyzeSelection(t *testing.T) {
	d := testDocument(t)

	g1, err := NewBezierCurve([]vec3.T{{0, 0, 0}, {1, 1, 0}}, 10)
	require.NoError(t, err)
	g2, err := NewBezierCurve([]vec3.T{{1, 1, 0}, {2, 2, 0}}, 10)
	require.NoError(t, err)
	d.Add(g1)
	d.Add(g2)
	require.NoError(t, d.Select(0, 1))

	results := d.AnalyzeSelection()
	require.Len(t, results, 1)
	require.NoError(t, results[0].Err)
	assert.Equal(t, C2, results[0].Report.Class)
}

func TestDocumentPickControlPoint(t *testing.T) {
	d := testDocument(t)

	g, err := NewBezierCurve([]vec3.T{{0, 0, 0}, {5, 0, 0}, {10, 0, 0}}, 10)
	require.NoError(t, err)
	d.Add(g)

	// ray along -z passing just beside the middle control point
	ray := internal.Ray{Origin: vec3.T{5.1, 0, 10}, Dir: vec3.T{0, 0, -1}}

	pick, ok := d.PickControlPoint(ray, 0.5)
	require.True(t, ok)
	assert.Equal(t, 0, pick.Geometry)
	assert.Equal(t, 1, pick.I)
	assert.Equal(t, vec3.T{5, 0, 0}, pick.Point)

	_, ok = d.PickControlPoint(ray, 0.01)
	assert.False(t, ok)
}

func TestSelectionFieldState(t *testing.T) {
	d := testDocument(t)

	bez, err := NewBezierCurve(line(4), 10)
	require.NoError(t, err)
	bsp, err := NewBSplineCurve(line(5), 3, 20)
	require.NoError(t, err)
	d.Add(bez)
	d.Add(bsp)

	assert.Equal(t, FieldState{}, d.SelectionFieldState())

	require.NoError(t, d.Select(1))
	state := d.SelectionFieldState()
	assert.True(t, state.Enabled.Has(FieldOrderU))
	assert.Equal(t, 5, state.CountU)
	assert.Equal(t, 20, state.NodesU)
	assert.Equal(t, 3, state.OrderU)

	// mixed selection enables only the common fields, values follow
	// the last selected geometry
	require.NoError(t, d.Select(1, 0))
	state = d.SelectionFieldState()
	assert.False(t, state.Enabled.Has(FieldOrderU))
	assert.True(t, state.Enabled.Has(FieldControlPointsU|FieldNodesU))
	assert.Equal(t, 4, state.CountU)
}
