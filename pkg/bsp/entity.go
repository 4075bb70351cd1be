package bsp

// EntityCount is the payload of an Entities chunk.
type EntityCount struct {
	Count uint32
}

// Entity is the payload of an Entity chunk.
type Entity struct {
	Type         uint32
	Matrix       Matrix
	ActionPoints int32
	Name         string
}

// Frame is the payload of a BoneObj chunk: one node of a transform hierarchy.
type Frame struct {
	Local     Matrix
	Global    Matrix
	BoneIndex int32
	Flags     uint32
	ID        uint32
	Name      string
}

// FrameChild is the payload of a LevelObj chunk.
type FrameChild struct {
	StreamDepth uint32
}

// Clump is the payload of a SkinObj chunk: a skinned model and its skeleton.
type Clump struct {
	BaseFlags            uint32
	NameHash             uint32
	Flags                uint64
	FloorFlags           uint32
	Bones                []Bone
	HasHierarchy         bool
	DefaultAnimationHash uint32
	Mirror               *MirrorData
}

// Bone is one bone of a clump.
type Bone struct {
	ID               uint32
	InvertedBasePose Matrix
}

// MirrorData describes a planar reflection.
type MirrorData struct {
	Contents BoundingBox
	Normal   Vector3
	Point    Vector3
}

// CameraProjection is the payload of GLProject and GLCamera chunks.
type CameraProjection struct {
	Type     int32
	Near     float32
	Far      float32
	AngleY   float32
	Viewport Rectangle
}

func decodeEntityCount(r *Reader) (*EntityCount, error) {
	n, err := r.ReadUint32()
	if err != nil {
		return nil, err
	}
	return &EntityCount{Count: n}, nil
}

func decodeEntity(r *Reader) (*Entity, error) {
	f := newFieldReader(r)
	e := &Entity{
		Type:         f.u32(),
		Matrix:       f.matrix(),
		ActionPoints: f.i32(),
		Name:         f.str(),
	}
	return e, f.wrap("entity")
}

func decodeFrame(r *Reader) (*Frame, error) {
	f := newFieldReader(r)
	fr := &Frame{
		Local:     f.matrix(),
		Global:    f.matrix(),
		BoneIndex: f.i32(),
		Flags:     f.u32(),
		ID:        f.u32(),
		Name:      f.str(),
	}
	return fr, f.wrap("frame")
}

func decodeFrameChild(r *Reader) (*FrameChild, error) {
	depth, err := r.ReadUint32()
	if err != nil {
		return nil, err
	}
	return &FrameChild{StreamDepth: depth}, nil
}

func decodeBone(r *Reader) (Bone, error) {
	f := newFieldReader(r)
	return Bone{ID: f.u32(), InvertedBasePose: f.matrix()}, f.err
}

func decodeMirrorData(r *Reader) (MirrorData, error) {
	f := newFieldReader(r)
	return MirrorData{Contents: f.bbox(), Normal: f.vec3(), Point: f.vec3()}, f.err
}

func decodeClump(r *Reader) (*Clump, error) {
	f := newFieldReader(r)
	c := &Clump{
		BaseFlags:            f.u32(),
		NameHash:             f.u32(),
		Flags:                f.u64(),
		FloorFlags:           f.u32(),
		Bones:                sequence(f, decodeBone),
		HasHierarchy:         f.boolean(),
		DefaultAnimationHash: f.u32(),
		Mirror:               optional(f, decodeMirrorData),
	}
	return c, f.wrap("clump")
}

func decodeCameraProjection(r *Reader) (*CameraProjection, error) {
	f := newFieldReader(r)
	c := &CameraProjection{
		Type:     f.i32(),
		Near:     f.f32(),
		Far:      f.f32(),
		AngleY:   f.f32(),
		Viewport: f.rect(),
	}
	return c, f.wrap("camera projection")
}
