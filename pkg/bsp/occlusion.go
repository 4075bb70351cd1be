package bsp

// Occlusion is the payload of an Occlusion chunk.
type Occlusion struct {
	PlaneBSP           bool
	Branches           []OcclusionBranch
	Leaves             []uint32 // face count per leaf
	HasOcclusionMeshes bool
}

// OcclusionBranch is an inner node of the occlusion tree. Negative and
// Positive are only stored when the tree is not a plane BSP and are zero
// otherwise.
type OcclusionBranch struct {
	Plane        Plane
	NegativeLeaf uint32
	Negative     uint32
	PositiveLeaf uint32
	Positive     uint32
}

// NGonList is the payload of an OcclusionMesh chunk.
type NGonList struct {
	Vertices []NGonVertex
	Faces    []NGonFace
}

// NGonVertex is an occluder vertex and the plane of the edge starting at it.
type NGonVertex struct {
	Position Vector3
	Edge     Plane
}

// NGonFace is a convex occluder polygon.
type NGonFace struct {
	Plane       Plane
	VertexIndex uint32
	VertexCount uint32
	Flags       uint32
}

func occlusionBranchDecoder(planeBSP bool) DecodeFunc[OcclusionBranch] {
	return func(r *Reader) (OcclusionBranch, error) {
		f := newFieldReader(r)
		var b OcclusionBranch
		b.Plane = f.plane()
		b.NegativeLeaf = f.u32()
		if !planeBSP {
			b.Negative = f.u32()
		}
		b.PositiveLeaf = f.u32()
		if !planeBSP {
			b.Positive = f.u32()
		}
		return b, f.err
	}
}

func decodeOcclusion(r *Reader) (*Occlusion, error) {
	f := newFieldReader(r)
	o := &Occlusion{PlaneBSP: f.boolean()}
	branches := f.u32()
	o.Branches = array(f, int(branches), occlusionBranchDecoder(o.PlaneBSP))
	o.Leaves = sequence(f, (*Reader).ReadUint32)
	o.HasOcclusionMeshes = f.boolean()
	return o, f.wrap("occlusion")
}

func decodeNGonVertex(r *Reader) (NGonVertex, error) {
	f := newFieldReader(r)
	return NGonVertex{Position: f.vec3(), Edge: f.plane()}, f.err
}

func decodeNGonFace(r *Reader) (NGonFace, error) {
	f := newFieldReader(r)
	face := NGonFace{Plane: f.plane(), VertexIndex: f.u32(), VertexCount: f.u32(), Flags: f.u32()}
	return face, f.err
}

func decodeNGonList(r *Reader) (*NGonList, error) {
	f := newFieldReader(r)
	vertices, faces := f.u32(), f.i32()
	l := &NGonList{
		Vertices: array(f, int(vertices), decodeNGonVertex),
		Faces:    array(f, int(faces), decodeNGonFace),
	}
	return l, f.wrap("ngon list")
}
