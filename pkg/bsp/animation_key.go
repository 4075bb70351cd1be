package bsp

import (
	"fmt"

	"github.com/pkg/errors"
)

// KeyType selects the payload of an animation key chunk.
type KeyType int32

const (
	KeyRotate     KeyType = 0
	KeyTranslate  KeyType = 1
	KeyShape      KeyType = 2
	KeyUV         KeyType = 3
	KeyVisibility KeyType = 4
)

// String returns a human-readable key type name.
func (k KeyType) String() string {
	switch k {
	case KeyRotate:
		return "Rotate"
	case KeyTranslate:
		return "Translate"
	case KeyShape:
		return "Shape"
	case KeyUV:
		return "UV"
	case KeyVisibility:
		return "Visibility"
	default:
		return fmt.Sprintf("Unknown(%d)", int32(k))
	}
}

// Interpolation is the interpolation applied between keys.
type Interpolation int32

const (
	InterpolationLinear      Interpolation = 0
	InterpolationCubicSpline Interpolation = 1
)

// String returns a human-readable interpolation name.
func (i Interpolation) String() string {
	switch i {
	case InterpolationLinear:
		return "Linear"
	case InterpolationCubicSpline:
		return "CubicSpline"
	default:
		return fmt.Sprintf("Unknown(%d)", int32(i))
	}
}

// VisibilityState is the value of a visibility key.
type VisibilityState uint8

const (
	VisibilityOff VisibilityState = 0
	VisibilityOn  VisibilityState = 1
)

// ADPCMType is the compression curve of ADPCM-encoded shape keys.
type ADPCMType int32

const (
	ADPCMNone        ADPCMType = 0
	ADPCMLinear      ADPCMType = 1
	ADPCMExponential ADPCMType = 2
)

// ADPCM describes the quantization of shape key deltas.
type ADPCM struct {
	VertexType  ADPCMType
	NormalType  ADPCMType
	VertexRange Vector3
	NormalRange Vector3
}

// AnimationKey is the payload of an AnimationKey chunk. Exactly one of the key
// slices is populated, selected by Type.
type AnimationKey struct {
	Type          KeyType
	TargetHash    uint32
	TimeStep      float32
	KeyCount      int32
	MaterialBlock uint16
	Bounds        *BoundingBox
	Interpolation Interpolation
	Times         []float32 // nil when the chunk stores no explicit times

	Rotations    []QuantizedQuaternion[int32]
	Translations []Vector3
	Shapes       []ShapeKey
	UVs          []UVKey // two runs per key, flattened
	Visibility   []VisibilityState

	ADPCM *ADPCM
}

// ShapeKey is a morph target. Key frames store absolute vertices and normals.
// Other keys store quantized deltas for a subset of indices.
type ShapeKey struct {
	KeyFrame bool

	Vertices []Vector3
	Normals  []Vector3

	VertexIndices []uint16
	VertexDeltas  []uint16
	NormalIndices []uint16
	NormalDeltas  []uint16
}

// UVKey is a quantized texture coordinate.
type UVKey struct {
	U, V uint16
}

func readKeyType(r *Reader) (KeyType, error) {
	v, err := r.ReadInt32()
	if err != nil {
		return 0, err
	}
	if v < int32(KeyRotate) || v > int32(KeyVisibility) {
		return 0, invalidValue("animation key type", int64(v))
	}
	return KeyType(v), nil
}

func readInterpolation(r *Reader) (Interpolation, error) {
	v, err := r.ReadInt32()
	if err != nil {
		return 0, err
	}
	if v != int32(InterpolationLinear) && v != int32(InterpolationCubicSpline) {
		return 0, invalidValue("interpolation", int64(v))
	}
	return Interpolation(v), nil
}

func readVisibility(r *Reader) (VisibilityState, error) {
	v, err := r.ReadUint8()
	if err != nil {
		return 0, err
	}
	if v > uint8(VisibilityOn) {
		return 0, invalidValue("visibility state", int64(v))
	}
	return VisibilityState(v), nil
}

func readADPCMType(r *Reader) (ADPCMType, error) {
	v, err := r.ReadInt32()
	if err != nil {
		return 0, err
	}
	if v < int32(ADPCMNone) || v > int32(ADPCMExponential) {
		return 0, invalidValue("ADPCM type", int64(v))
	}
	return ADPCMType(v), nil
}

func decodeADPCM(r *Reader) (ADPCM, error) {
	f := newFieldReader(r)
	a := ADPCM{
		VertexType:  field(f, readADPCMType),
		NormalType:  field(f, readADPCMType),
		VertexRange: f.vec3(),
		NormalRange: f.vec3(),
	}
	return a, f.err
}

// u16Array reads a 16-bit count followed by that many values.
func u16Array[T any](f *fieldReader, decode DecodeFunc[T]) []T {
	n := f.u16()
	return array(f, int(n), decode)
}

func decodeShapeKey(r *Reader) (ShapeKey, error) {
	f := newFieldReader(r)
	s := ShapeKey{KeyFrame: f.boolean()}
	if s.KeyFrame {
		s.Vertices = u16Array(f, ReadVector3)
		s.Normals = u16Array(f, ReadVector3)
		return s, f.err
	}

	n := int(f.u16())
	s.VertexIndices = array(f, n, (*Reader).ReadUint16)
	s.VertexDeltas = array(f, n, (*Reader).ReadUint16)
	m := int(f.u16())
	s.NormalIndices = array(f, m, (*Reader).ReadUint16)
	s.NormalDeltas = array(f, m, (*Reader).ReadUint16)
	return s, f.err
}

// decodeUVRun reads one run of quantized UVs: a count, then all U values,
// then all V values.
func decodeUVRun(r *Reader) ([]UVKey, error) {
	n, err := r.ReadUint16()
	if err != nil {
		return nil, err
	}
	us, err := ReadArray(r, int(n), (*Reader).ReadUint16)
	if err != nil {
		return nil, err
	}
	vs, err := ReadArray(r, int(n), (*Reader).ReadUint16)
	if err != nil {
		return nil, err
	}
	run := make([]UVKey, n)
	for i := range run {
		run[i] = UVKey{U: us[i], V: vs[i]}
	}
	return run, nil
}

func decodeAnimationKey(r *Reader) (*AnimationKey, error) {
	f := newFieldReader(r)
	k := &AnimationKey{
		Type:          field(f, readKeyType),
		TargetHash:    f.u32(),
		TimeStep:      f.f32(),
		KeyCount:      f.i32(),
		MaterialBlock: f.u16(),
		Bounds:        optional(f, ReadBoundingBox),
		Interpolation: field(f, readInterpolation),
	}
	if f.ok() && k.KeyCount < 0 {
		f.fail(negativeCount("key count", int64(k.KeyCount)))
	}
	if f.boolean() {
		k.Times = array(f, int(k.KeyCount), (*Reader).ReadFloat32)
	}
	if !f.ok() {
		return nil, f.wrap("animation key")
	}

	n := int(k.KeyCount)
	switch k.Type {
	case KeyRotate:
		k.Rotations = array(f, n, ReadQuantizedQuaternion((*Reader).ReadInt32))
	case KeyTranslate:
		k.Translations = array(f, n, ReadVector3)
	case KeyShape:
		k.Shapes = array(f, n, decodeShapeKey)
	case KeyUV:
		k.UVs = make([]UVKey, 0, min(2*n, maxPrealloc))
		for i := 0; i < 2*n && f.ok(); i++ {
			k.UVs = append(k.UVs, field(f, decodeUVRun)...)
		}
	case KeyVisibility:
		k.Visibility = array(f, n, readVisibility)
	}
	if f.err != nil {
		return nil, errors.Wrapf(f.err, "animation key %s", k.Type)
	}

	k.ADPCM = optional(f, decodeADPCM)
	return k, f.wrap("animation key")
}
