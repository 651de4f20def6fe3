package shape

import (
	"github.com/ungerik/go3d/float64/vec3"

	"github.com/mlee-0/parametric"
)

// Preset arrangements of adjacent geometries with known continuity,
// useful for demonstrating and exercising the analyzer.

// PresetBezierChain returns three Bézier curves joined end to end. The
// first joint is G1 and the second is C1.
func PresetBezierChain(s parametric.Settings) ([]*parametric.Geometry, error) {
	nets := [][]vec3.T{
		{{3, 10, 0}, {4, 7, 0}, {6, 6, 0}, {7.5, 7.5, 0}},
		{{7.5, 7.5, 0}, {8.2, 8.2, 0}, {11, 7, 0}, {14, 6, 0}},
		{{14, 6, 0}, {17, 5, 0}, {20, 10, 0}, {23, 15, 0}},
	}

	curves := make([]*parametric.Geometry, 0, len(nets))
	for _, net := range nets {
		g, err := parametric.NewBezierCurve(net, s.DefaultNodes)
		if err != nil {
			return nil, err
		}
		curves = append(curves, g)
	}
	return curves, nil
}

// PresetBezierSurfaces returns two Bézier surfaces sharing an edge
// with C1 continuity across it.
func PresetBezierSurfaces(s parametric.Settings) ([]*parametric.Geometry, error) {
	net1 := [][]vec3.T{
		{{0, 20, 0}, {8, 21, 5}, {18, 23, 0}},
		{{0, 17, 0}, {8, 17, 6}, {18, 17, 3}},
		{{0, 14, 0}, {8, 14, 6}, {18, 14, 4}},
	}
	net2 := [][]vec3.T{
		{{0, 14, 0}, {8, 14, 6}, {18, 14, 4}},
		{{0, 11, 0}, {8, 11, 6}, {18, 11, 5}},
		{{0, 0, 0}, {8, 0, 0}, {18, 0, 0}},
	}

	return makeSurfaces(s, parametric.NewBezierSurface, net1, net2)
}

// PresetHermiteChain returns two Hermite curves joined end to end with
// matching tangents at the joint.
func PresetHermiteChain(s parametric.Settings) ([]*parametric.Geometry, error) {
	nets := [][]vec3.T{
		{{1, 5, 0}, {3, 3, 0}, {3, 8, 0}, {1.9286, -1.2321, 0}},
		{{3, 8, 0}, {1.9286, -1.2321, 0}, {6, 4, 0}, {4.2857, -1.0714, 0}},
	}

	curves := make([]*parametric.Geometry, 0, len(nets))
	for _, net := range nets {
		g, err := parametric.NewHermiteCurve(net, s.DefaultNodes)
		if err != nil {
			return nil, err
		}
		if err := g.SetTangentScale(s.HermiteTangentScale); err != nil {
			return nil, err
		}
		curves = append(curves, g)
	}
	return curves, nil
}

// PresetHermiteSurfaces returns two Hermite patches sharing an edge
// with matching transverse tangents across it.
func PresetHermiteSurfaces(s parametric.Settings) ([]*parametric.Geometry, error) {
	net1 := [][]vec3.T{
		{{0, 0, 0}, {0, 10, 0}, {0, 1, 0}, {0, 11, 0}},
		{{10, 0, 0}, {10, 10, 0}, {10, 1, 0}, {10, 11, 0}},
		{{1, 0, 0}, {1, 10, 0}, {0, 0, 1}, {0, 10, 1}},
		{{11, 0, 0}, {11, 10, 0}, {10, 0, 1}, {10, 10, 1}},
	}
	net2 := [][]vec3.T{
		{{10, 0, 0}, {10, 10, 0}, {10, 1, 0}, {10, 11, 0}},
		{{20, 0, 0}, {20, 10, 0}, {20, 1, 0}, {20, 11, 0}},
		{{11, 0, 0}, {11, 10, 0}, {10, 0, 1}, {10, 10, 1}},
		{{21, 0, 0}, {21, 10, 0}, {20, 0, 1}, {20, 10, 1}},
	}

	surfaces, err := makeSurfaces(s, parametric.NewHermiteSurface, net1, net2)
	if err != nil {
		return nil, err
	}
	for _, g := range surfaces {
		if err := g.SetTangentScale(s.HermiteTangentScale); err != nil {
			return nil, err
		}
	}
	return surfaces, nil
}

func makeSurfaces(s parametric.Settings, build func([][]vec3.T, int, int) (*parametric.Geometry, error), nets ...[][]vec3.T) ([]*parametric.Geometry, error) {
	surfaces := make([]*parametric.Geometry, 0, len(nets))
	for _, net := range nets {
		g, err := build(net, s.DefaultNodes, s.DefaultNodes)
		if err != nil {
			return nil, err
		}
		surfaces = append(surfaces, g)
	}
	return surfaces, nil
}
