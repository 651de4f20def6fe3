package parametric

// Field identifies one editable field of the geometry sidebar. A UI
// enables or disables its widgets from ApplicableFields rather than
// inspecting geometry types itself.
type Field uint

const (
	FieldPointCoords Field = 1 << iota
	FieldControlPointsU
	FieldControlPointsV
	FieldNodesU
	FieldNodesV
	FieldOrderU
	FieldOrderV
	FieldTangentScale
)

// Has reports whether every field in want is present.
func (f Field) Has(want Field) bool {
	return f&want == want
}

// ApplicableFields returns the set of fields that can be edited for a
// geometry of the given kind. Control point counts are fixed for
// Hermite geometries, order is editable only for B-splines, v-direction
// fields exist only on surfaces, and tangent scaling only applies to
// Hermite geometries.
func ApplicableFields(kind GeometryKind) Field {
	fields := FieldPointCoords | FieldNodesU

	if kind.IsSurface() {
		fields |= FieldNodesV
	}

	if !kind.IsHermite() {
		fields |= FieldControlPointsU
		if kind.IsSurface() {
			fields |= FieldControlPointsV
		}
	} else {
		fields |= FieldTangentScale
	}

	if kind.IsBSpline() {
		fields |= FieldOrderU
		if kind.IsSurface() {
			fields |= FieldOrderV
		}
	}

	return fields
}
