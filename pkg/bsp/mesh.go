package bsp

// Mesh is the payload of a ModelGroup chunk.
type Mesh struct {
	Flags          uint32
	MaterialBlocks uint16
	Bounds         BoundingBox
	Center         Vector3
	Radius         float32
	HaveBSP        bool
}

// AtomicMesh is the payload of an AtomicMesh chunk.
type AtomicMesh struct {
	BaseFlags uint32
	Flags     uint32
	NameHash  uint32
	HasMesh   bool
}

func decodeMesh(r *Reader) (*Mesh, error) {
	f := newFieldReader(r)
	m := &Mesh{
		Flags:          f.u32(),
		MaterialBlocks: f.u16(),
		Bounds:         f.bbox(),
		Center:         f.vec3(),
		Radius:         f.f32(),
		HaveBSP:        f.boolean(),
	}
	return m, f.wrap("mesh")
}

func decodeAtomicMesh(r *Reader) (*AtomicMesh, error) {
	f := newFieldReader(r)
	m := &AtomicMesh{
		BaseFlags: f.u32(),
		Flags:     f.u32(),
		NameHash:  f.u32(),
		HasMesh:   f.boolean(),
	}
	return m, f.wrap("atomic mesh")
}
