package bsp

// BoundingBox is an axis-aligned box given by its maximum (supremum) and
// minimum (infimum) corners, stored in that order.
type BoundingBox struct {
	Supremum Vector3
	Infimum  Vector3
}

// Center returns the midpoint of the box.
func (b BoundingBox) Center() Vector3 {
	return b.Supremum.Add(b.Infimum).Scale(0.5)
}

// Size returns the extent of the box along each axis.
func (b BoundingBox) Size() Vector3 {
	return b.Supremum.Sub(b.Infimum)
}

// Contains reports whether p lies inside the box, borders included.
func (b BoundingBox) Contains(p Vector3) bool {
	return p.X >= b.Infimum.X && p.X <= b.Supremum.X &&
		p.Y >= b.Infimum.Y && p.Y <= b.Supremum.Y &&
		p.Z >= b.Infimum.Z && p.Z <= b.Supremum.Z
}

// Union returns the smallest box containing both b and o.
func (b BoundingBox) Union(o BoundingBox) BoundingBox {
	return BoundingBox{
		Supremum: b.Supremum.Max(o.Supremum),
		Infimum:  b.Infimum.Min(o.Infimum),
	}
}

// OrientedBoundingBox is a box with arbitrary axes. Each axis is paired with
// its half extent.
type OrientedBoundingBox struct {
	Center  Vector3
	Axes    [3]Vector3
	Extents [3]float32
}

// ReadBoundingBox decodes the supremum and infimum corners.
func ReadBoundingBox(r *Reader) (BoundingBox, error) {
	f := newFieldReader(r)
	b := BoundingBox{Supremum: f.vec3(), Infimum: f.vec3()}
	return b, f.err
}

// ReadOrientedBoundingBox decodes the center followed by three interleaved
// (axis, extent) pairs.
func ReadOrientedBoundingBox(r *Reader) (OrientedBoundingBox, error) {
	f := newFieldReader(r)
	var b OrientedBoundingBox
	b.Center = f.vec3()
	for i := range b.Axes {
		b.Axes[i] = f.vec3()
		b.Extents[i] = f.f32()
	}
	return b, f.err
}
