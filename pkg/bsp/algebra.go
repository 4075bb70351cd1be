package bsp

import (
	"github.com/chewxy/math32"
)

// Vector3 is a 3D vector.
type Vector3 struct {
	X, Y, Z float32
}

// Add returns v + o.
func (v Vector3) Add(o Vector3) Vector3 {
	return Vector3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// Sub returns v - o.
func (v Vector3) Sub(o Vector3) Vector3 {
	return Vector3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

// Scale returns v * s.
func (v Vector3) Scale(s float32) Vector3 {
	return Vector3{v.X * s, v.Y * s, v.Z * s}
}

// Dot returns the dot product.
func (v Vector3) Dot(o Vector3) float32 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

// Length returns the magnitude.
func (v Vector3) Length() float32 {
	return math32.Sqrt(v.Dot(v))
}

// Min returns the component-wise minimum.
func (v Vector3) Min(o Vector3) Vector3 {
	return Vector3{math32.Min(v.X, o.X), math32.Min(v.Y, o.Y), math32.Min(v.Z, o.Z)}
}

// Max returns the component-wise maximum.
func (v Vector3) Max(o Vector3) Vector3 {
	return Vector3{math32.Max(v.X, o.X), math32.Max(v.Y, o.Y), math32.Max(v.Z, o.Z)}
}

// Vector4 is a 4D vector.
type Vector4 struct {
	X, Y, Z, W float32
}

// Vector3 drops the W component.
func (v Vector4) Vector3() Vector3 {
	return Vector3{v.X, v.Y, v.Z}
}

// Matrix is an affine transform. On the wire the three basis vectors and the
// position are stored as Vector3; the basis is widened with W=0 and the
// position with W=1.
type Matrix struct {
	Right    Vector4
	Up       Vector4
	At       Vector4
	Position Vector4
	Flags    uint64
}

// Plane is the plane A*x + B*y + C*z + D = 0.
type Plane struct {
	A, B, C, D float32
}

// Distance returns the signed distance of p from the plane, assuming a unit
// normal.
func (p Plane) Distance(v Vector3) float32 {
	return p.A*v.X + p.B*v.Y + p.C*v.Z + p.D
}

// QuantizedPlane stores the plane normal as three bytes.
type QuantizedPlane struct {
	A, B, C uint8
	Flags   uint8
	D       float32
}

// Rectangle is an integer rectangle.
type Rectangle struct {
	X, Y          int32
	Width, Height int32
}

// Area returns Width*Height, or 0 for degenerate rectangles.
func (r Rectangle) Area() int {
	if r.Width <= 0 || r.Height <= 0 {
		return 0
	}
	return int(r.Width) * int(r.Height)
}

// QuantizedQuaternion is a rotation stored as fixed-point integer components.
type QuantizedQuaternion[T int16 | int32] struct {
	X, Y, Z, W T
}

// ReadVector3 decodes three float32 components.
func ReadVector3(r *Reader) (Vector3, error) {
	f := newFieldReader(r)
	v := Vector3{X: f.f32(), Y: f.f32(), Z: f.f32()}
	return v, f.err
}

// ReadVector4 decodes four float32 components.
func ReadVector4(r *Reader) (Vector4, error) {
	f := newFieldReader(r)
	v := Vector4{X: f.f32(), Y: f.f32(), Z: f.f32(), W: f.f32()}
	return v, f.err
}

// ReadMatrix decodes a 56-byte matrix: four Vector3 and a uint64 flag word.
func ReadMatrix(r *Reader) (Matrix, error) {
	f := newFieldReader(r)
	right, up, at, pos := f.vec3(), f.vec3(), f.vec3(), f.vec3()
	m := Matrix{
		Right:    Vector4{right.X, right.Y, right.Z, 0},
		Up:       Vector4{up.X, up.Y, up.Z, 0},
		At:       Vector4{at.X, at.Y, at.Z, 0},
		Position: Vector4{pos.X, pos.Y, pos.Z, 1},
		Flags:    f.u64(),
	}
	return m, f.err
}

// ReadPlane decodes four float32 coefficients.
func ReadPlane(r *Reader) (Plane, error) {
	f := newFieldReader(r)
	p := Plane{A: f.f32(), B: f.f32(), C: f.f32(), D: f.f32()}
	return p, f.err
}

// ReadQuantizedPlane decodes four bytes followed by a float32 distance.
func ReadQuantizedPlane(r *Reader) (QuantizedPlane, error) {
	f := newFieldReader(r)
	p := QuantizedPlane{A: f.u8(), B: f.u8(), C: f.u8(), Flags: f.u8(), D: f.f32()}
	return p, f.err
}

// ReadRectangle decodes four int32 values.
func ReadRectangle(r *Reader) (Rectangle, error) {
	f := newFieldReader(r)
	rect := Rectangle{X: f.i32(), Y: f.i32(), Width: f.i32(), Height: f.i32()}
	return rect, f.err
}

// ReadQuantizedQuaternion returns a decoder for quaternions with components
// of type T.
func ReadQuantizedQuaternion[T int16 | int32](component DecodeFunc[T]) DecodeFunc[QuantizedQuaternion[T]] {
	return func(r *Reader) (QuantizedQuaternion[T], error) {
		f := newFieldReader(r)
		q := QuantizedQuaternion[T]{
			X: field(f, component),
			Y: field(f, component),
			Z: field(f, component),
			W: field(f, component),
		}
		return q, f.err
	}
}
