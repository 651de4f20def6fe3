package parametric

import (
	"fmt"
	"io"

	"github.com/pelletier/go-toml/v2"
)

// Settings holds the defaults applied to newly created geometries and
// the tolerances used by continuity analysis.
type Settings struct {
	// control points per direction for new Bézier and B-spline
	// geometries
	DefaultControlPoints int `toml:"default-control-points"`

	// sample points per direction for new geometries
	DefaultNodes int `toml:"default-nodes"`

	// tangent scale applied to new Hermite geometries
	HermiteTangentScale float64 `toml:"hermite-tangent-scale"`

	// continuity tolerances
	PositionTolerance float64 `toml:"position-tolerance"`
	AngleTolerance    float64 `toml:"angle-tolerance"`
}

// DefaultSettings returns the settings applied before any
// configuration is loaded.
func DefaultSettings() Settings {
	return Settings{
		DefaultControlPoints: 3,
		DefaultNodes:         10,
		HermiteTangentScale:  1,
		PositionTolerance:    1e-6,
		AngleTolerance:       1e-6,
	}
}

// LoadSettings reads TOML settings from r. Keys absent from the input
// keep their default values, and out-of-range values are normalized.
func LoadSettings(r io.Reader) (Settings, error) {
	s := DefaultSettings()
	if err := toml.NewDecoder(r).Decode(&s); err != nil {
		return Settings{}, fmt.Errorf("decoding settings: %w", err)
	}
	s.normalize()
	return s, nil
}

// Save writes the settings as TOML to w.
func (s Settings) Save(w io.Writer) error {
	if err := toml.NewEncoder(w).Encode(s); err != nil {
		return fmt.Errorf("encoding settings: %w", err)
	}
	return nil
}

// Analyzer returns a continuity analyzer using the configured
// tolerances.
func (s Settings) Analyzer() *Analyzer {
	return &Analyzer{
		PositionTolerance: s.PositionTolerance,
		AngleTolerance:    s.AngleTolerance,
	}
}

func (s *Settings) normalize() {
	def := DefaultSettings()
	if s.DefaultControlPoints < 2 {
		s.DefaultControlPoints = def.DefaultControlPoints
	}
	if s.DefaultNodes < 2 {
		s.DefaultNodes = def.DefaultNodes
	}
	if s.HermiteTangentScale <= 0 {
		s.HermiteTangentScale = def.HermiteTangentScale
	}
	if s.PositionTolerance <= 0 {
		s.PositionTolerance = def.PositionTolerance
	}
	if s.AngleTolerance <= 0 {
		s.AngleTolerance = def.AngleTolerance
	}
}
