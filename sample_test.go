package parametric

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ungerik/go3d/float64/vec3"
)

func TestSampleIsDeterministic(t *testing.T) {
	g, err := NewBezierCurve(line(4), 15)
	require.NoError(t, err)

	first, err := g.Sample()
	require.NoError(t, err)
	second, err := g.Sample()
	require.NoError(t, err)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("samples differ between reads:\n%s", diff)
	}
}

func TestSampleCountAndEndpoints(t *testing.T) {
	g, err := NewBezierCurve([]vec3.T{{1, 1, 0}, {3, 5, 0}, {7, 2, 0}}, 15)
	require.NoError(t, err)

	pts, err := g.Sample()
	require.NoError(t, err)
	require.Len(t, pts, 15)
	assert.Equal(t, vec3.T{1, 1, 0}, pts[0])
	assert.Equal(t, vec3.T{7, 2, 0}, pts[len(pts)-1])
}

func TestSampleRecomputedAfterMutation(t *testing.T) {
	g, err := NewBezierCurve(line(3), 10)
	require.NoError(t, err)

	before, err := g.Sample()
	require.NoError(t, err)
	mid := before[5]

	require.NoError(t, g.MoveControlPoint(1, 0, vec3.T{0, 10, 0}))

	after, err := g.Sample()
	require.NoError(t, err)
	assert.NotEqual(t, mid, after[5])
}

func TestSampleRejectsSurface(t *testing.T) {
	g, err := NewBezierSurface(flatNet(3, 3), 10, 10)
	require.NoError(t, err)

	_, err = g.Sample()
	assert.ErrorIs(t, err, ErrIncompatibleGeometry)

	_, err = g.SampleGrid()
	assert.NoError(t, err)
}

func TestSampleGridShape(t *testing.T) {
	g, err := NewBezierSurface(flatNet(3, 3), 7, 9)
	require.NoError(t, err)

	grid, err := g.SampleGrid()
	require.NoError(t, err)
	require.Len(t, grid, 7)
	for _, row := range grid {
		assert.Len(t, row, 9)
	}

	// flat net samples stay in its plane
	for _, row := range grid {
		for _, p := range row {
			assert.Zero(t, p[2])
		}
	}
}

func TestSampleGridMatchesPointwiseEval(t *testing.T) {
	net := flatNet(3, 3)
	net[1][1][2] = 5
	g, err := NewBSplineSurface(net, 3, 3, 5, 5)
	require.NoError(t, err)

	grid, err := g.SampleGrid()
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		for j := 0; j < 5; j++ {
			uv := UV{float64(i) / 4, float64(j) / 4}
			want, err := g.PointUV(uv)
			require.NoError(t, err)
			if diff := cmp.Diff(want, grid[i][j], cmpopts.EquateApprox(0, 1e-12)); diff != "" {
				t.Errorf("grid[%d][%d] differs:\n%s", i, j, diff)
			}
		}
	}
}

func TestTessellateLineIsControlPolygon(t *testing.T) {
	g, err := NewBezierCurve(line(2), 10)
	require.NoError(t, err)

	pts, err := g.Tessellate(0)
	require.NoError(t, err)
	require.Len(t, pts, 2)
	assert.Equal(t, vec3.T{0, 0, 0}, pts[0].Pt)
	assert.Equal(t, vec3.T{1, 1, 0}, pts[1].Pt)
}

func TestTessellateCoversDomain(t *testing.T) {
	g, err := NewBezierCurve([]vec3.T{{0, 0, 0}, {3, 8, 0}, {7, -4, 0}, {10, 2, 0}}, 10)
	require.NoError(t, err)

	pts, err := g.Tessellate(1e-4)
	require.NoError(t, err)
	require.Greater(t, len(pts), 3)

	assert.Zero(t, pts[0].U)
	assert.Equal(t, 1.0, pts[len(pts)-1].U)
	for i := 1; i < len(pts); i++ {
		assert.Greater(t, pts[i].U, pts[i-1].U)
	}
}

func TestClosestParamOnCurve(t *testing.T) {
	g, err := NewBezierCurve([]vec3.T{{0, 0, 0}, {5, 10, 0}, {10, 0, 0}}, 10)
	require.NoError(t, err)

	// the curve is symmetric about x = 5
	target, err := g.Point(0.5)
	require.NoError(t, err)

	u, err := g.ClosestParam(target)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, u, 1e-3)

	p, err := g.ClosestPoint(target)
	require.NoError(t, err)
	assert.InDelta(t, 0, vec3.Distance(&p, &target), 1e-3)
}

func TestClosestParamClampsToEnds(t *testing.T) {
	g, err := NewBezierCurve(line(3), 10)
	require.NoError(t, err)

	u, err := g.ClosestParam(vec3.T{-5, -5, 0})
	require.NoError(t, err)
	assert.InDelta(t, 0, u, 1e-3)

	u, err = g.ClosestParam(vec3.T{20, 20, 0})
	require.NoError(t, err)
	assert.InDelta(t, 1, u, 1e-3)
}

func TestClosestParamRejectsSurface(t *testing.T) {
	g, err := NewBezierSurface(flatNet(3, 3), 10, 10)
	require.NoError(t, err)

	_, err = g.ClosestParam(vec3.T{1, 1, 1})
	assert.ErrorIs(t, err, ErrIncompatibleGeometry)
}
