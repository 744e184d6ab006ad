package adapt

// Point3 is a point in 3D space. Element centroids and feature-size sample
// locations are Point3 values; the planner never sees full mesh geometry.
type Point3 struct {
	X, Y, Z float64
}

// Dot returns the dot product of p and q.
func (p Point3) Dot(q Point3) float64 {
	return p.X*q.X + p.Y*q.Y + p.Z*q.Z
}

// Sub returns p - q.
func (p Point3) Sub(q Point3) Point3 {
	return Point3{p.X - q.X, p.Y - q.Y, p.Z - q.Z}
}

// DistSquared returns the squared Euclidean distance between p and q.
func (p Point3) DistSquared(q Point3) float64 {
	d := p.Sub(q)
	return d.Dot(d)
}
