package bsp

// MaterialSlots is the number of texture slots of a material.
const MaterialSlots = 5

// Material is the payload of a MaterialObj chunk.
type Material struct {
	Flags                     uint32
	NameHash                  uint32
	AdditiveLighting          bool
	Colour                    RGBA[int32]
	Specular                  RGBA[int32]
	Power                     float32
	ShadingMode               int32
	Blend                     bool
	BlendModes                BlendModes
	AlphaTest                 bool
	AlphaTestMode             AlphaTestMode
	DepthWrite                bool
	DepthCompare              int32
	MaterialHash              uint32
	Owner                     uint32
	ColourWrite               uint32
	Textures                  [MaterialSlots]MaterialTexture
	Matrices                  [MaterialSlots]*Matrix // nil when the slot has no transform
	Generators                [MaterialSlots]int32
	EnvMapType                int32
	PlanarSheerEnvMapDistance float32
}

// BlendModes holds the source and destination blend functions.
type BlendModes struct {
	Source      int32
	Destination int32
}

// AlphaTestMode holds the alpha comparison function and reference value.
type AlphaTestMode struct {
	Function  int32
	Reference float32
}

// MaterialTexture is one texture slot of a material. A slot with an empty
// name carries no further data on the wire and keeps zero values.
type MaterialTexture struct {
	UVSet    uint32
	Name     string
	Format   int32
	Filter   int32
	Address  int32
	MaskName string
	Border   RGBA[int32]
	Hash     uint32
}

// Empty reports whether the slot is unused.
func (t MaterialTexture) Empty() bool {
	return t.Name == ""
}

// MaterialCount is the payload of a Materials chunk: the number of material
// chunks the document is expected to contain.
type MaterialCount struct {
	Count int32
}

func decodeMaterialTexture(r *Reader) (MaterialTexture, error) {
	f := newFieldReader(r)
	t := MaterialTexture{UVSet: f.u32(), Name: f.wideStrZ()}
	if f.ok() && t.Name != "" {
		t.Format = f.i32()
		t.Filter = f.i32()
		t.Address = f.i32()
		t.MaskName = f.wideStrZ()
		t.Border = f.rgba32()
		t.Hash = f.u32()
	}
	return t, f.err
}

func decodeOptionalMatrix(r *Reader) (*Matrix, error) {
	return ReadOptional(r, ReadMatrix)
}

func decodeMaterial(r *Reader) (*Material, error) {
	f := newFieldReader(r)
	m := &Material{
		Flags:            f.u32(),
		NameHash:         f.u32(),
		AdditiveLighting: f.boolean(),
		Colour:           f.rgba32(),
		Specular:         f.rgba32(),
		Power:            f.f32(),
		ShadingMode:      f.i32(),
		Blend:            f.boolean(),
		BlendModes:       BlendModes{Source: f.i32(), Destination: f.i32()},
		AlphaTest:        f.boolean(),
		AlphaTestMode:    AlphaTestMode{Function: f.i32(), Reference: f.f32()},
		DepthWrite:       f.boolean(),
		DepthCompare:     f.i32(),
		MaterialHash:     f.u32(),
		Owner:            f.u32(),
		ColourWrite:      f.u32(),
	}
	fixed(f, m.Textures[:], decodeMaterialTexture)
	fixed(f, m.Matrices[:], decodeOptionalMatrix)
	fixed(f, m.Generators[:], (*Reader).ReadInt32)
	m.EnvMapType = f.i32()
	m.PlanarSheerEnvMapDistance = f.f32()
	return m, f.wrap("material")
}

func decodeMaterialCount(r *Reader) (*MaterialCount, error) {
	n, err := r.ReadInt32()
	if err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, negativeCount("material count", int64(n))
	}
	return &MaterialCount{Count: n}, nil
}
