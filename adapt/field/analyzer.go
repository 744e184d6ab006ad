package field

import (
	"fmt"
	"math"

	"github.com/adapt-sim/adapt-sim/adapt"
)

// FieldConfig groups the manufactured error field parameters. The field
// models a localized stress concentration: a smooth background plus a
// Gaussian hot spot, with per-element error scaling as h^Order times the
// element area.
type FieldConfig struct {
	Coefficient float64      // overall error scale C (default 1.0)
	Order       float64      // convergence order p in err ~ C * h^p (default 2.0)
	Background  float64      // baseline field intensity away from the hot spot (default 0.1)
	PeakHeight  float64      // hot spot intensity above background (default 10.0)
	PeakCenter  adapt.Point3 // hot spot location
	PeakWidth   float64      // hot spot Gaussian width (must be > 0)
	NoiseSigma  float64      // lognormal noise sigma; 0 disables noise
}

// DefaultFieldConfig returns a field with a single hot spot at the given
// location.
func DefaultFieldConfig(center adapt.Point3, width float64) FieldConfig {
	return FieldConfig{
		Coefficient: 1.0,
		Order:       2.0,
		Background:  0.1,
		PeakHeight:  10.0,
		PeakCenter:  center,
		PeakWidth:   width,
	}
}

// SyntheticAnalyzer manufactures per-element error estimates for the current
// state of a GridMesh. It implements adapt.Analyzer: each Analyze call reads
// the mesh's current elements, so refining the mesh between calls yields
// smaller errors where the mesh got finer, which is exactly the feedback the
// study loop needs.
type SyntheticAnalyzer struct {
	cfg  FieldConfig
	mesh *GridMesh
	rng  *adapt.PartitionedRNG
}

// NewSyntheticAnalyzer creates an analyzer over the given mesh. The RNG
// drives the optional lognormal noise; deterministic for a fixed StudyKey.
func NewSyntheticAnalyzer(cfg FieldConfig, mesh *GridMesh, rng *adapt.PartitionedRNG) (*SyntheticAnalyzer, error) {
	if mesh == nil {
		return nil, fmt.Errorf("mesh is required")
	}
	if rng == nil {
		return nil, fmt.Errorf("rng is required")
	}
	if cfg.Coefficient <= 0 || cfg.Order <= 0 {
		return nil, fmt.Errorf("coefficient %v and order %v must be > 0", cfg.Coefficient, cfg.Order)
	}
	if cfg.Background <= 0 {
		return nil, fmt.Errorf("background intensity %v must be > 0", cfg.Background)
	}
	if cfg.PeakWidth <= 0 {
		return nil, fmt.Errorf("peak width %v must be > 0", cfg.PeakWidth)
	}
	return &SyntheticAnalyzer{cfg: cfg, mesh: mesh, rng: rng}, nil
}

// Intensity evaluates the manufactured field at a point: background plus the
// Gaussian hot spot. Always strictly positive.
func (s *SyntheticAnalyzer) Intensity(p adapt.Point3) float64 {
	d2 := p.DistSquared(s.cfg.PeakCenter)
	w2 := s.cfg.PeakWidth * s.cfg.PeakWidth
	return s.cfg.Background + s.cfg.PeakHeight*math.Exp(-d2/(2*w2))
}

// Analyze produces the error snapshot for the mesh's current elements:
// err = C * h^order * area * intensity(centroid), with optional lognormal
// noise. The element area factor makes the summed estimate contract under
// uniform refinement at the assumed convergence order, the way a real
// adjoint indicator does. The snapshot's Estimate is the sum of the local
// errors.
func (s *SyntheticAnalyzer) Analyze(cycle int) (*adapt.Analysis, error) {
	elems := s.mesh.Elements()
	if len(elems) == 0 {
		return nil, fmt.Errorf("cycle %d: mesh has no elements", cycle)
	}

	noise := s.rng.ForSubsystem(adapt.SubsystemField)
	a := &adapt.Analysis{
		Errors:    make([]float64, len(elems)),
		Centroids: make([]adapt.Point3, len(elems)),
	}
	for i, e := range elems {
		c := s.mesh.Centroid(e)
		h := s.mesh.Size(e)
		err := s.cfg.Coefficient * math.Pow(h, s.cfg.Order) * h * h * s.Intensity(c)
		if s.cfg.NoiseSigma > 0 {
			err *= math.Exp(s.cfg.NoiseSigma * noise.NormFloat64())
		}
		a.Errors[i] = err
		a.Centroids[i] = c
		a.Estimate += err
	}
	return a, nil
}
