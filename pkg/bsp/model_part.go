package bsp

import (
	"github.com/pkg/errors"
)

// VertexFormat is the vertex flag word of a model part. Bits 8-13 select the
// optional attributes and the low byte holds the number of UV pairs.
type VertexFormat uint32

const (
	VertexPosition VertexFormat = 1 << 8
	VertexRHW      VertexFormat = 1 << 9
	VertexNormal   VertexFormat = 1 << 10
	VertexDiffuse  VertexFormat = 1 << 11
	VertexWeight   VertexFormat = 1 << 12
	VertexIndices  VertexFormat = 1 << 13

	vertexUVCountMask VertexFormat = 0xFF
)

// Has reports whether all attribute bits in attr are set.
func (f VertexFormat) Has(attr VertexFormat) bool {
	return f&attr == attr
}

// UVCount returns the number of UV pairs per vertex.
func (f VertexFormat) UVCount() int {
	return int(f & vertexUVCountMask)
}

// Stride returns the encoded size of one vertex in bytes.
func (f VertexFormat) Stride() int {
	n := 8 * f.UVCount()
	if f.Has(VertexPosition) {
		n += 12
	}
	if f.Has(VertexNormal) {
		n += 12
	}
	if f.Has(VertexRHW) {
		n += 4
	}
	if f.Has(VertexDiffuse) {
		n += 4
	}
	if f.Has(VertexWeight) {
		n += 4
	}
	if f.Has(VertexIndices) {
		n += 4
	}
	return n
}

// UV is a texture coordinate pair.
type UV struct {
	U, V float32
}

// Vertex is one vertex of a model part. Every attribute is optional: one
// absent from the part's VertexFormat keeps its zero value, so test
// ModelPart.VertexFormat.Has to tell an absent attribute from a zero one.
type Vertex struct {
	Position Vector3
	Normal   Vector3
	RHW      float32 // reciprocal homogeneous w
	Diffuse  RGBA[uint8]
	Weight   float32
	Bones    [2]uint16
	UVs      []UV
}

// Index is one triangle of a model part.
type Index [3]uint32

// ModelPart is the payload of an SPMesh chunk: a vertex buffer and its
// triangle list.
type ModelPart struct {
	ReadAccessFlags  uint32
	VertexReadFlags  uint32
	WriteAccessFlags uint32
	VertexWriteFlags uint32
	HintFlags        uint32
	ConstantFlags    uint32
	VertexFormat     VertexFormat
	RenderFlags      uint32
	Triangles        uint16
	Strips           uint16
	StripTriangles   uint16
	MaterialHash     uint32
	TriangleIndex0   int32
	TriangleIndex1   int32
	VertexIndex0     int32
	VertexIndex1     int32
	LayerZ           uint32
	FloorFlags       uint32
	Flags            uint32
	LightingSID      uint32
	Vertices         []Vertex
	Indices          []Index
}

// vertexDecoder returns a decoder for vertices laid out according to format.
func vertexDecoder(format VertexFormat) DecodeFunc[Vertex] {
	return func(r *Reader) (Vertex, error) {
		f := newFieldReader(r)
		var v Vertex
		if format.Has(VertexPosition) {
			v.Position = f.vec3()
		}
		if format.Has(VertexNormal) {
			v.Normal = f.vec3()
		}
		if format.Has(VertexRHW) {
			v.RHW = f.f32()
		}
		if format.Has(VertexDiffuse) {
			v.Diffuse = f.rgba8()
		}
		if format.Has(VertexWeight) {
			v.Weight = f.f32()
		}
		if format.Has(VertexIndices) {
			v.Bones = [2]uint16{f.u16(), f.u16()}
		}
		if n := format.UVCount(); n > 0 {
			v.UVs = make([]UV, n)
			for i := range v.UVs {
				v.UVs[i] = UV{U: f.f32(), V: f.f32()}
			}
		}
		return v, f.err
	}
}

func decodeIndex(r *Reader) (Index, error) {
	f := newFieldReader(r)
	return Index{f.u32(), f.u32(), f.u32()}, f.err
}

func decodeModelPart(r *Reader) (*ModelPart, error) {
	f := newFieldReader(r)
	p := &ModelPart{
		ReadAccessFlags:  f.u32(),
		VertexReadFlags:  f.u32(),
		WriteAccessFlags: f.u32(),
		VertexWriteFlags: f.u32(),
		HintFlags:        f.u32(),
		ConstantFlags:    f.u32(),
		VertexFormat:     VertexFormat(f.u32()),
		RenderFlags:      f.u32(),
	}
	vertexCount := f.u32()
	p.Triangles = f.u16()
	p.Strips = f.u16()
	p.StripTriangles = f.u16()
	p.MaterialHash = f.u32()
	p.TriangleIndex0 = f.i32()
	p.TriangleIndex1 = f.i32()
	p.VertexIndex0 = f.i32()
	p.VertexIndex1 = f.i32()
	p.LayerZ = f.u32()
	p.FloorFlags = f.u32()
	p.Flags = f.u32()
	p.LightingSID = f.u32()
	if !f.ok() {
		return nil, f.wrap("model part")
	}

	vertices, err := ReadArray(r, int(vertexCount), vertexDecoder(p.VertexFormat))
	if err != nil {
		return nil, errors.Wrap(err, "model part vertices")
	}
	p.Vertices = vertices

	indices, err := ReadArray(r, int(p.Triangles), decodeIndex)
	if err != nil {
		return nil, errors.Wrap(err, "model part indices")
	}
	p.Indices = indices
	return p, nil
}
