package parametric

// GeometryKind identifies the curve or surface family of a Geometry.
type GeometryKind int

const (
	BezierCurve GeometryKind = iota
	HermiteCurve
	BSplineCurve
	BezierSurface
	HermiteSurface
	BSplineSurface
)

func (k GeometryKind) String() string {
	switch k {
	case BezierCurve:
		return "Bézier curve"
	case HermiteCurve:
		return "Hermite curve"
	case BSplineCurve:
		return "B-spline curve"
	case BezierSurface:
		return "Bézier surface"
	case HermiteSurface:
		return "Hermite surface"
	case BSplineSurface:
		return "B-spline surface"
	}
	return "unknown"
}

// IsSurface reports whether the kind has two parameter directions.
func (k GeometryKind) IsSurface() bool {
	switch k {
	case BezierSurface, HermiteSurface, BSplineSurface:
		return true
	}
	return false
}

// IsBezier reports whether the kind is a Bézier curve or surface.
func (k GeometryKind) IsBezier() bool {
	return k == BezierCurve || k == BezierSurface
}

// IsHermite reports whether the kind is a Hermite curve or surface.
func (k GeometryKind) IsHermite() bool {
	return k == HermiteCurve || k == HermiteSurface
}

// IsBSpline reports whether the kind is a B-spline curve or surface.
func (k GeometryKind) IsBSpline() bool {
	return k == BSplineCurve || k == BSplineSurface
}

// Direction selects one of the two parameter directions of a surface.
// Curves only have DirU.
type Direction int

const (
	DirU Direction = iota
	DirV
)

func (d Direction) String() string {
	if d == DirV {
		return "v"
	}
	return "u"
}
