package adapt

import "fmt"

// FeatureSizer answers "what element size does the mesh want near this
// point". The continuous policy threads one of these between remesh cycles:
// each cycle's output sizes become the next cycle's local lookup.
type FeatureSizer interface {
	FeatureSize(p Point3) float64
}

// ConstFeatureSize is a FeatureSizer returning the same size everywhere.
type ConstFeatureSize float64

func (c ConstFeatureSize) FeatureSize(Point3) float64 {
	return float64(c)
}

// PointFeatureSize interpolates a target-size field from scattered samples:
// the size at a query point is the size of the nearest sample, clamped to
// [hmin, hmax]. Lookup is a linear scan over the samples, which is adequate
// at study scale (one sample per coarse-mesh element).
type PointFeatureSize struct {
	points []Point3
	sizes  []float64
	hmin   float64
	hmax   float64
}

// NewPointFeatureSize builds a PointFeatureSize from parallel point/size
// samples and global size limits.
func NewPointFeatureSize(points []Point3, sizes []float64, hmin, hmax float64) (*PointFeatureSize, error) {
	if len(points) == 0 || len(points) != len(sizes) {
		return nil, fmt.Errorf("%w: %d points with %d sizes", ErrInvalidInput, len(points), len(sizes))
	}
	if hmin <= 0 || hmax < hmin {
		return nil, fmt.Errorf("%w: size limits [%v, %v] must satisfy 0 < hmin <= hmax", ErrInvalidInput, hmin, hmax)
	}
	return &PointFeatureSize{
		points: append([]Point3(nil), points...),
		sizes:  append([]float64(nil), sizes...),
		hmin:   hmin,
		hmax:   hmax,
	}, nil
}

// FeatureSize returns the nearest sample's size, clamped to [hmin, hmax].
func (f *PointFeatureSize) FeatureSize(p Point3) float64 {
	best := 0
	bestDist := f.points[0].DistSquared(p)
	for i := 1; i < len(f.points); i++ {
		if d := f.points[i].DistSquared(p); d < bestDist {
			best, bestDist = i, d
		}
	}
	return clamp(f.sizes[best], f.hmin, f.hmax)
}

// Len returns the number of samples in the field.
func (f *PointFeatureSize) Len() int {
	return len(f.points)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
