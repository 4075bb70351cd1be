package bsp

// AnimationDictionary is the payload of an AnimLib chunk.
type AnimationDictionary struct {
	BasePoses []BasePose
	ClipCount int32
}

// BasePose is the rest transform of one bone.
type BasePose struct {
	Rotation QuantizedQuaternion[int16]
	Position Vector3
}

// Clips is the payload of an Animation chunk.
type Clips struct {
	NameHash      uint32
	MinTime       float32
	MaxTime       float32
	Scaffolds     []Scaffold
	SequenceCount int32
	Name          string
}

// Scaffold pairs two bone hashes.
type Scaffold struct {
	Hash1 uint32
	Hash2 uint32
}

// Duration returns MaxTime - MinTime.
func (c *Clips) Duration() float32 {
	return c.MaxTime - c.MinTime
}

var readRotation16 = ReadQuantizedQuaternion((*Reader).ReadInt16)

func decodeBasePose(r *Reader) (BasePose, error) {
	f := newFieldReader(r)
	return BasePose{Rotation: field(f, readRotation16), Position: f.vec3()}, f.err
}

func decodeScaffold(r *Reader) (Scaffold, error) {
	f := newFieldReader(r)
	return Scaffold{Hash1: f.u32(), Hash2: f.u32()}, f.err
}

func decodeAnimationDictionary(r *Reader) (*AnimationDictionary, error) {
	f := newFieldReader(r)
	d := &AnimationDictionary{
		BasePoses: sequence(f, decodeBasePose),
		ClipCount: f.i32(),
	}
	return d, f.wrap("animation dictionary")
}

func decodeClips(r *Reader) (*Clips, error) {
	f := newFieldReader(r)
	c := &Clips{
		NameHash:      f.u32(),
		MinTime:       f.f32(),
		MaxTime:       f.f32(),
		Scaffolds:     sequence(f, decodeScaffold),
		SequenceCount: f.i32(),
		Name:          f.str(),
	}
	return c, f.wrap("clips")
}
