package bsp

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/klauspost/compress/gzip"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func singleMaterialDocument(declared int32) []byte {
	var count builder
	count.i32(declared)

	var doc builder
	doc.chunk(ChunkMaterials, 1, count.Bytes())
	doc.chunk(ChunkMaterialObj, 1, materialPayload())
	return doc.Bytes()
}

func gzipBytes(t *testing.T, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write(data); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestDecode_SingleMaterial(t *testing.T) {
	data := singleMaterialDocument(1)
	doc, err := Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(doc.Materials) != 1 || doc.MaterialCount != 1 {
		t.Errorf("got %d materials, count %d", len(doc.Materials), doc.MaterialCount)
	}
	if doc.Compressed {
		t.Error("raw input reported as compressed")
	}
	if doc.Size != int64(len(data)) {
		t.Errorf("Size = %d, want %d", doc.Size, len(data))
	}
	want := []TypeCount{{ChunkMaterialObj, 1}, {ChunkMaterials, 1}}
	if diff := cmp.Diff(want, doc.Counts()); diff != "" {
		t.Errorf("counts mismatch (-want +got):\n%s", diff)
	}
}

func TestDecode_MaterialCountMismatch(t *testing.T) {
	_, err := Decode(bytes.NewReader(singleMaterialDocument(2)))
	if !errors.Is(err, ErrMaterialCount) {
		t.Fatalf("got %v, want ErrMaterialCount", err)
	}
	var mce *MaterialCountError
	if !errors.As(err, &mce) {
		t.Fatalf("error %T is not a MaterialCountError", err)
	}
	if mce.Declared != 2 || mce.Decoded != 1 {
		t.Errorf("got %+v", mce)
	}
}

func TestDecode_MaterialsWithoutCount(t *testing.T) {
	var doc builder
	doc.chunk(ChunkMaterialObj, 1, materialPayload())
	if _, err := Decode(bytes.NewReader(doc.Bytes())); !errors.Is(err, ErrMaterialCount) {
		t.Errorf("got %v, want ErrMaterialCount", err)
	}
}

func TestDecode_Empty(t *testing.T) {
	doc, err := Decode(bytes.NewReader(nil))
	if err != nil {
		t.Fatalf("Decode(empty): %v", err)
	}
	if doc.Chunks() != 0 {
		t.Errorf("got %d chunks", doc.Chunks())
	}
}

func TestDecode_SizeMismatch(t *testing.T) {
	payload := materialPayload()
	tests := []struct {
		name     string
		declared int32
		trailing int
	}{
		{"declared one byte more", int32(len(payload)) + 1, 1},
		{"declared one byte less", int32(len(payload)) - 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var count builder
			count.i32(1)
			var doc builder
			doc.chunk(ChunkMaterials, 1, count.Bytes())
			doc.sizedChunk(ChunkMaterialObj, tt.declared, 1, payload)
			doc.Write(make([]byte, tt.trailing))

			_, err := Decode(bytes.NewReader(doc.Bytes()))
			var sme *SizeMismatchError
			if !errors.As(err, &sme) {
				t.Fatalf("got %v, want SizeMismatchError", err)
			}
			if !errors.Is(err, ErrSizeMismatch) {
				t.Error("SizeMismatchError does not match ErrSizeMismatch")
			}
			if sme.Expected != int64(tt.declared) || sme.Actual != int64(len(payload)) {
				t.Errorf("got expected=%d actual=%d", sme.Expected, sme.Actual)
			}
			if sme.Type != ChunkMaterialObj || sme.Offset != 28 {
				t.Errorf("got type=%s offset=%d", sme.Type, sme.Offset)
			}
		})
	}
}

func TestDecode_UnknownChunkType(t *testing.T) {
	var doc builder
	doc.chunk(ChunkLevelObj, 1, []byte{1, 0, 0, 0})
	doc.chunk(ChunkType(999), 1, []byte{1, 2, 3, 4})

	_, err := Decode(bytes.NewReader(doc.Bytes()))
	if !errors.Is(err, ErrUnknownChunkType) {
		t.Fatalf("got %v, want ErrUnknownChunkType", err)
	}
	if !errors.Is(err, ErrConversion) {
		t.Error("unknown chunk type is not a conversion failure")
	}
}

func TestDecode_NegativeChunkSize(t *testing.T) {
	var doc builder
	doc.sizedChunk(ChunkLevelObj, -4, 1, nil)
	if _, err := Decode(bytes.NewReader(doc.Bytes())); !errors.Is(err, ErrNegativeCount) {
		t.Errorf("got %v, want ErrNegativeCount", err)
	}
}

func TestDecode_PartialHeader(t *testing.T) {
	for n := 1; n < ChunkHeaderSize; n++ {
		var doc builder
		doc.chunk(ChunkLevelObj, 1, []byte{1, 0, 0, 0})
		doc.Write(make([]byte, n))
		_, err := Decode(bytes.NewReader(doc.Bytes()))
		if !errors.Is(err, ErrTruncated) {
			t.Errorf("%d trailing bytes: got %v, want ErrTruncated", n, err)
		}
	}
}

func TestDecode_TruncatedPayload(t *testing.T) {
	var doc builder
	doc.i32(int32(ChunkLevelObj)).i32(4).i32(1).u16(1)
	if _, err := Decode(bytes.NewReader(doc.Bytes())); !errors.Is(err, ErrTruncated) {
		t.Errorf("got %v, want ErrTruncated", err)
	}
}

func TestDecode_WorldThenZones(t *testing.T) {
	var zones builder
	zones.i32(0)
	zones.bbox().u32(1).u32(2).u32(3).u32(4).u32(5)
	zones.bbox().u32(6).u32(7).u32(8).u32(9).u32(10)

	var doc builder
	doc.chunk(ChunkWorld, 1, worldPayload(2))
	doc.chunk(ChunkZones, 1, zones.Bytes())

	d, err := Decode(bytes.NewReader(doc.Bytes()))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if d.World == nil || len(d.Zones) != 1 || len(d.Zones[0].Zones) != 2 {
		t.Fatalf("world %v, zones %v", d.World, d.Zones)
	}
	if d.Zones[0].Zones[1].Hash != 6 {
		t.Errorf("zone = %+v", d.Zones[0].Zones[1])
	}
}

func TestDecode_ZonesWithoutWorld(t *testing.T) {
	var doc builder
	doc.chunk(ChunkZones, 1, []byte{0, 0, 0, 0})
	if _, err := Decode(bytes.NewReader(doc.Bytes())); !errors.Is(err, ErrMissingWorld) {
		t.Errorf("got %v, want ErrMissingWorld", err)
	}
}

func TestDecode_LastWorldWins(t *testing.T) {
	var zones builder
	zones.i32(0)
	zones.bbox().u32(1).u32(2).u32(3).u32(4).u32(5)

	var doc builder
	doc.chunk(ChunkWorld, 1, worldPayload(3))
	doc.chunk(ChunkWorld, 1, worldPayload(1))
	doc.chunk(ChunkZones, 1, zones.Bytes())

	d, err := Decode(bytes.NewReader(doc.Bytes()))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if d.World.ZoneCount != 1 {
		t.Errorf("World.ZoneCount = %d, want 1", d.World.ZoneCount)
	}
}

func TestDecode_Gzip(t *testing.T) {
	raw := singleMaterialDocument(1)
	doc, err := Decode(bytes.NewReader(gzipBytes(t, raw)))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !doc.Compressed {
		t.Error("gzip input not reported as compressed")
	}
	if doc.Size != int64(len(raw)) {
		t.Errorf("Size = %d, want %d", doc.Size, len(raw))
	}
	if len(doc.Materials) != 1 {
		t.Errorf("got %d materials", len(doc.Materials))
	}
}

func TestOpenStream(t *testing.T) {
	t.Run("raw bytes stay visible", func(t *testing.T) {
		in := []byte{0x1F, 0x00, 0xAA, 0xBB}
		r, compressed, err := OpenStream(bytes.NewReader(in))
		if err != nil {
			t.Fatal(err)
		}
		if compressed {
			t.Error("raw input reported as compressed")
		}
		got, err := io.ReadAll(r)
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(got, in) {
			t.Errorf("got %x, want %x", got, in)
		}
	})

	t.Run("short input is raw", func(t *testing.T) {
		for _, in := range [][]byte{nil, {0x1F}} {
			r, compressed, err := OpenStream(bytes.NewReader(in))
			if err != nil || compressed {
				t.Fatalf("OpenStream(%x) = %v, %v", in, compressed, err)
			}
			got, _ := io.ReadAll(r)
			if !bytes.Equal(got, in) {
				t.Errorf("got %x, want %x", got, in)
			}
		}
	})

	t.Run("magic means compressed", func(t *testing.T) {
		_, compressed, err := OpenStream(bytes.NewReader([]byte{0x1F, 0x8B, 0, 0}))
		if !compressed {
			t.Error("gzip magic not detected")
		}
		if err == nil {
			t.Error("corrupt gzip header accepted")
		}
	})
}

func TestChunkReader(t *testing.T) {
	var doc builder
	doc.chunk(ChunkLevelObj, 7, []byte{2, 0, 0, 0})
	doc.chunk(ChunkEntities, 1, []byte{3, 0, 0, 0})

	core, logs := observer.New(zap.DebugLevel)
	cr := NewChunkReader(bytes.NewReader(doc.Bytes()), WithLogger(zap.New(core)))

	first, err := cr.Next()
	if err != nil {
		t.Fatal(err)
	}
	if first.Header != (ChunkHeader{Type: ChunkLevelObj, Size: 4, Version: 7}) || first.Offset != 12 {
		t.Errorf("first chunk = %+v", first)
	}
	if fc, ok := first.Record.(*FrameChild); !ok || fc.StreamDepth != 2 {
		t.Errorf("first record = %#v", first.Record)
	}

	second, err := cr.Next()
	if err != nil {
		t.Fatal(err)
	}
	if ec, ok := second.Record.(*EntityCount); !ok || ec.Count != 3 {
		t.Errorf("second record = %#v", second.Record)
	}

	if _, err := cr.Next(); err != io.EOF {
		t.Errorf("got %v, want io.EOF", err)
	}
	if _, err := cr.Next(); err != io.EOF {
		t.Errorf("second call after end: got %v, want io.EOF", err)
	}

	if n := logs.FilterMessage("chunk").Len(); n != 2 {
		t.Errorf("logged %d chunk entries, want 2", n)
	}
}

func TestChunkReader_ErrorIsSticky(t *testing.T) {
	var doc builder
	doc.chunk(ChunkType(3), 1, nil)
	doc.chunk(ChunkLevelObj, 1, []byte{1, 0, 0, 0})

	cr := NewChunkReader(bytes.NewReader(doc.Bytes()))
	_, first := cr.Next()
	_, second := cr.Next()
	if first == nil || first != second {
		t.Errorf("errors = %v, %v; want the same terminal error", first, second)
	}
}

func TestDocument_Totals(t *testing.T) {
	d := &Document{ModelParts: []*ModelPart{
		{Vertices: make([]Vertex, 3), Indices: make([]Index, 1)},
		{Vertices: make([]Vertex, 4), Indices: make([]Index, 2)},
	}}
	if d.TotalVertices() != 7 || d.TotalTriangles() != 3 {
		t.Errorf("totals = %d, %d", d.TotalVertices(), d.TotalTriangles())
	}
}

func TestDecodeFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "level.bsp")
	if err := os.WriteFile(path, gzipBytes(t, singleMaterialDocument(1)), 0o644); err != nil {
		t.Fatal(err)
	}
	doc, err := DecodeFile(path)
	if err != nil {
		t.Fatalf("DecodeFile: %v", err)
	}
	if len(doc.Materials) != 1 {
		t.Errorf("got %d materials", len(doc.Materials))
	}

	if _, err := DecodeFile(filepath.Join(t.TempDir(), "missing.bsp")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("got %v, want os.ErrNotExist", err)
	}
}

func TestChunkType_String(t *testing.T) {
	if got := ChunkWorld.String(); got != "World" {
		t.Errorf("got %q, want %q", got, "World")
	}
	if got := ChunkType(2).String(); got != "Unknown(2)" {
		t.Errorf("got %q, want %q", got, "Unknown(2)")
	}
	for _, ct := range ChunkTypes {
		if !ct.Valid() {
			t.Errorf("%s not valid", ct)
		}
	}
	if len(ChunkTypes) != len(chunkNames) {
		t.Errorf("ChunkTypes has %d entries, names %d", len(ChunkTypes), len(chunkNames))
	}
}
