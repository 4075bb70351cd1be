package bsp

// Switchable light format revisions, stored in the magic word.
const (
	lightsGamma       = 1 // gamma ramp power is stored
	lightsSubrects    = 2 // update blocks carry their own rectangle
	lightsLayerRemap  = 3 // layer remap table is stored
	lightsMaxRevision = 3

	defaultGammaRampPower = 4.0
	lightMapNameLength    = 12
)

// SwitchableLights is the payload of an SpLights chunk.
type SwitchableLights struct {
	Revision       uint32
	GammaRampPower float32
	LayerRemap     []uint32 // nil before revision 3
	LightMaps      []LightMap
	LightData      []LightData
	MaterialBlocks []MaterialBlockSwitch
}

// LightMap is a light map texture with per-layer additive updates.
type LightMap struct {
	TextureHash uint32
	Name        string
	Region      Rectangle
	Blocks      []UpdateBlock
}

// UpdateBlock is the additive data of one light layer. SubRegion is nil when
// the block covers the whole light map region.
type UpdateBlock struct {
	Layer     uint32
	SubRegion *Rectangle
	Pixels    []RGBA[uint8]
}

// LightData lists the light maps and vertex colours switched by one light.
type LightData struct {
	DependentMaps []uint32
	VertexBlocks  []VertexSwitchBlock
}

// VertexSwitchBlock holds vertex colour updates for one material block.
type VertexSwitchBlock struct {
	MaterialBlock uint32
	Updates       []VertexColour
}

// VertexColour is the new colour of one vertex.
type VertexColour struct {
	Vertex uint32
	Colour RGBA[uint8]
}

// MaterialBlockSwitch describes a material block affected by switching.
type MaterialBlockSwitch struct {
	LightingID uint32
	IsWorld    bool
	Vertices   uint32
}

func updateBlockDecoder(revision uint32, region Rectangle) DecodeFunc[UpdateBlock] {
	return func(r *Reader) (UpdateBlock, error) {
		f := newFieldReader(r)
		b := UpdateBlock{Layer: f.u32()}
		area := region
		if revision >= lightsSubrects || int64(region.Width)*int64(region.Height) == 0 {
			sub := f.rect()
			b.SubRegion = &sub
			area = sub
		}
		if f.ok() && (area.Width < 0 || area.Height < 0) {
			f.fail(negativeCount("update region dimension", int64(min(area.Width, area.Height))))
		}
		b.Pixels = array(f, int(area.Width)*int(area.Height), ReadRGBA8)
		return b, f.err
	}
}

func lightMapDecoder(revision uint32) DecodeFunc[LightMap] {
	return func(r *Reader) (LightMap, error) {
		f := newFieldReader(r)
		m := LightMap{
			TextureHash: f.u32(),
			Name:        field(f, func(r *Reader) (string, error) { return r.ReadFixedString(lightMapNameLength) }),
			Region:      f.rect(),
		}
		blocks := f.u32()
		m.Blocks = array(f, int(blocks), updateBlockDecoder(revision, m.Region))
		return m, f.err
	}
}

func decodeVertexColour(r *Reader) (VertexColour, error) {
	f := newFieldReader(r)
	return VertexColour{Vertex: f.u32(), Colour: f.rgba8()}, f.err
}

func decodeVertexSwitchBlock(r *Reader) (VertexSwitchBlock, error) {
	f := newFieldReader(r)
	b := VertexSwitchBlock{
		MaterialBlock: f.u32(),
		Updates:       sequence(f, decodeVertexColour),
	}
	return b, f.err
}

func decodeLightData(r *Reader) (LightData, error) {
	f := newFieldReader(r)
	d := LightData{
		DependentMaps: sequence(f, (*Reader).ReadUint32),
		VertexBlocks:  sequence(f, decodeVertexSwitchBlock),
	}
	return d, f.err
}

func decodeMaterialBlockSwitch(r *Reader) (MaterialBlockSwitch, error) {
	f := newFieldReader(r)
	return MaterialBlockSwitch{LightingID: f.u32(), IsWorld: f.boolean(), Vertices: f.u32()}, f.err
}

func decodeSwitchableLights(r *Reader) (*SwitchableLights, error) {
	f := newFieldReader(r)
	l := &SwitchableLights{Revision: f.u32(), GammaRampPower: defaultGammaRampPower}
	if f.ok() && l.Revision > lightsMaxRevision {
		f.fail(invalidValue("switchable lights revision", int64(l.Revision)))
	}
	if l.Revision >= lightsGamma {
		l.GammaRampPower = f.f32()
	}
	if l.Revision >= lightsLayerRemap {
		l.LayerRemap = sequence(f, (*Reader).ReadUint32)
	}
	l.LightMaps = sequence(f, lightMapDecoder(l.Revision))
	l.LightData = sequence(f, decodeLightData)
	l.MaterialBlocks = sequence(f, decodeMaterialBlockSwitch)
	return l, f.wrap("switchable lights")
}
