package bsp

// SectorOctree is the payload of a SectorOctree chunk.
type SectorOctree struct {
	MaterialBlocks []uint32
	Leaves         []OctreeLeaf
	Octants        []Octant
}

// OctreeLeaf is a leaf sector of the octree.
type OctreeLeaf struct {
	FloorFlag   uint32
	WorldBlocks int32
	BlockIndex  *uint32 // present only when WorldBlocks > 0
	ZoneCount   uint32
	Zone        uint32
}

// Octant is a node of the octree. Index refers to Leaves when IsLeaf is set
// and to Octants otherwise.
type Octant struct {
	Bounds BoundingBox
	Flags  uint32
	IsLeaf bool
	Index  uint32
}

func decodeOctreeLeaf(r *Reader) (OctreeLeaf, error) {
	f := newFieldReader(r)
	l := OctreeLeaf{FloorFlag: f.u32(), WorldBlocks: f.i32()}
	if f.ok() && l.WorldBlocks > 0 {
		idx := f.u32()
		l.BlockIndex = &idx
	}
	l.ZoneCount = f.u32()
	l.Zone = f.u32()
	return l, f.err
}

func decodeOctant(r *Reader) (Octant, error) {
	f := newFieldReader(r)
	o := Octant{Bounds: f.bbox(), Flags: f.u32(), IsLeaf: f.boolean(), Index: f.u32()}
	return o, f.err
}

func decodeSectorOctree(r *Reader) (*SectorOctree, error) {
	f := newFieldReader(r)
	o := &SectorOctree{
		MaterialBlocks: sequence(f, (*Reader).ReadUint32),
		Leaves:         sequence(f, decodeOctreeLeaf),
		Octants:        sequence(f, decodeOctant),
	}
	return o, f.wrap("sector octree")
}
