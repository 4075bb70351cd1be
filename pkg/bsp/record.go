package bsp

import (
	"fmt"
)

// Record is the decoded payload of a chunk. The set of implementations is
// closed; switch on the concrete type to inspect one.
type Record interface {
	isRecord()
}

func (*TextureList) isRecord()         {}
func (*MaterialCount) isRecord()       {}
func (*Material) isRecord()            {}
func (*Mesh) isRecord()                {}
func (*ModelPart) isRecord()           {}
func (*Collision) isRecord()           {}
func (*AtomicMesh) isRecord()          {}
func (*Clump) isRecord()               {}
func (*CameraProjection) isRecord()    {}
func (*Light) isRecord()               {}
func (*FrameChild) isRecord()          {}
func (*Frame) isRecord()               {}
func (*SectorOctree) isRecord()        {}
func (*World) isRecord()               {}
func (*AnimationKey) isRecord()        {}
func (*AnimationDictionary) isRecord() {}
func (*NGonList) isRecord()            {}
func (*Occlusion) isRecord()           {}
func (*NullList) isRecord()            {}
func (*NavigationMesh) isRecord()      {}
func (*Zones) isRecord()               {}
func (*Spline) isRecord()              {}
func (*NullBox) isRecord()             {}
func (*Clips) isRecord()               {}
func (*SwitchableLights) isRecord()    {}
func (*EntityCount) isRecord()         {}
func (*Entity) isRecord()              {}

// record converts a typed decoder result into a Record, keeping a failed
// decode from producing a non-nil interface around a nil pointer.
func record[T Record](v T, err error) (Record, error) {
	if err != nil {
		return nil, err
	}
	return v, nil
}

// decodeRecord decodes the payload that follows h. world is the last World
// decoded from the same stream, or nil.
func decodeRecord(r *Reader, h ChunkHeader, world *World) (Record, error) {
	switch h.Type {
	case ChunkTextures:
		return record(decodeTextureList(r))
	case ChunkMaterials:
		return record(decodeMaterialCount(r))
	case ChunkMaterialObj:
		return record(decodeMaterial(r))
	case ChunkModelGroup:
		return record(decodeMesh(r))
	case ChunkSPMesh:
		return record(decodeModelPart(r))
	case ChunkCollision:
		return record(decodeCollision(r))
	case ChunkAtomicMesh:
		return record(decodeAtomicMesh(r))
	case ChunkSkinObj:
		return record(decodeClump(r))
	case ChunkGLProject, ChunkGLCamera:
		return record(decodeCameraProjection(r))
	case ChunkLightObj:
		return record(decodeLight(r, h))
	case ChunkLevelObj:
		return record(decodeFrameChild(r))
	case ChunkBoneObj:
		return record(decodeFrame(r))
	case ChunkSectorOctree:
		return record(decodeSectorOctree(r))
	case ChunkWorld:
		return record(decodeWorld(r))
	case ChunkAnimationKey:
		return record(decodeAnimationKey(r))
	case ChunkAnimLib:
		return record(decodeAnimationDictionary(r))
	case ChunkOcclusionMesh:
		return record(decodeNGonList(r))
	case ChunkOcclusion:
		return record(decodeOcclusion(r))
	case ChunkWpPoints:
		return record(decodeNullList(r))
	case ChunkNavigationMesh:
		return record(decodeNavigationMesh(r))
	case ChunkZones:
		return record(decodeZones(r, h, world))
	case ChunkArea:
		return record(decodeSpline(r))
	case ChunkLinkEmm:
		return record(decodeNullBox(r))
	case ChunkAnimation:
		return record(decodeClips(r))
	case ChunkSpLights:
		return record(decodeSwitchableLights(r))
	case ChunkEntities:
		return record(decodeEntityCount(r))
	case ChunkEntity:
		return record(decodeEntity(r))
	default:
		return nil, fmt.Errorf("%w %d", ErrUnknownChunkType, int32(h.Type))
	}
}
