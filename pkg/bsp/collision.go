package bsp

// Collision is the payload of a Collision chunk: a BSP tree of quantized
// planes over the collision faces.
type Collision struct {
	Faces    []CollisionFace
	Leaves   []uint32
	Branches []CollisionBranch
}

// CollisionFace is a collision face and the material block it belongs to.
type CollisionFace struct {
	Plane         QuantizedPlane
	MaterialBlock uint16
	Face          uint16
}

// CollisionBranch is an inner node of the collision tree.
type CollisionBranch struct {
	Plane QuantizedPlane
	Index uint32
}

func decodeCollisionFace(r *Reader) (CollisionFace, error) {
	f := newFieldReader(r)
	return CollisionFace{Plane: f.qplane(), MaterialBlock: f.u16(), Face: f.u16()}, f.err
}

func decodeCollisionBranch(r *Reader) (CollisionBranch, error) {
	f := newFieldReader(r)
	return CollisionBranch{Plane: f.qplane(), Index: f.u32()}, f.err
}

func decodeCollision(r *Reader) (*Collision, error) {
	f := newFieldReader(r)
	faces, leaves, branches := f.u32(), f.u32(), f.u32()
	c := &Collision{
		Faces:    array(f, int(faces), decodeCollisionFace),
		Leaves:   array(f, int(leaves), (*Reader).ReadUint32),
		Branches: array(f, int(branches), decodeCollisionBranch),
	}
	return c, f.wrap("collision")
}
