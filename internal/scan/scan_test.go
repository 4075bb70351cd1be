package scan

import (
	"context"
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Faultbox/spooky-bsp/internal/config"
	"github.com/Faultbox/spooky-bsp/pkg/bsp"
)

// frameChildDoc returns a document with a single LevelObj chunk.
func frameChildDoc(depth uint32) []byte {
	var b []byte
	b = binary.LittleEndian.AppendUint32(b, uint32(bsp.ChunkLevelObj))
	b = binary.LittleEndian.AppendUint32(b, 4)
	b = binary.LittleEndian.AppendUint32(b, 1)
	b = binary.LittleEndian.AppendUint32(b, depth)
	return b
}

func writeFiles(t *testing.T, files map[string][]byte) string {
	t.Helper()
	root := t.TempDir()
	for name, data := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, data, 0644); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

func testConfig() config.ScanConfig {
	return config.ScanConfig{Workers: 4, Pattern: "**/*.bsp", SkipDuplicates: true}
}

func TestFind(t *testing.T) {
	root := writeFiles(t, map[string][]byte{
		"a.bsp":         frameChildDoc(1),
		"maps/b.bsp":    frameChildDoc(2),
		"maps/notes.md": []byte("# notes"),
	})

	got, err := New(testConfig(), nil).Find(root)
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	want := []string{"a.bsp", "maps/b.bsp"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestFind_BadPattern(t *testing.T) {
	cfg := testConfig()
	cfg.Pattern = "[unterminated"
	_, err := New(cfg, nil).Find(t.TempDir())
	if !errors.Is(err, ErrBadPattern) {
		t.Errorf("got %v, want ErrBadPattern", err)
	}
}

func TestRun(t *testing.T) {
	root := writeFiles(t, map[string][]byte{
		"a.bsp":      frameChildDoc(1),
		"copy/a.bsp": frameChildDoc(1),
		"b.bsp":      frameChildDoc(2),
		"broken.bsp": frameChildDoc(3)[:14],
	})

	results, err := New(testConfig(), nil).Run(context.Background(), root)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	sum := Summarize(results)
	want := Summary{Files: 4, OK: 2, Failed: 1, Duplicates: 1, Bytes: 16*3 + 14}
	if sum != want {
		t.Errorf("summary = %+v, want %+v", sum, want)
	}

	for _, r := range results {
		switch r.Path {
		case "broken.bsp":
			if !errors.Is(r.Err, bsp.ErrTruncated) {
				t.Errorf("broken.bsp error = %v, want ErrTruncated", r.Err)
			}
		case "b.bsp":
			if r.Err != nil || r.Chunks != 1 {
				t.Errorf("b.bsp = %+v", r)
			}
		case "copy/a.bsp":
			if r.DupOf != "a.bsp" || r.Chunks != 0 {
				t.Errorf("copy/a.bsp = %+v, want duplicate of a.bsp", r)
			}
		}
	}
}

func TestRun_DuplicateOriginalIsLowestPath(t *testing.T) {
	files := map[string][]byte{}
	names := []string{"a/0.bsp", "a/1.bsp", "b/0.bsp", "b/1.bsp", "c.bsp", "d/e/f.bsp", "z.bsp"}
	for _, name := range names {
		files[name] = frameChildDoc(9)
	}
	root := writeFiles(t, files)

	cfg := testConfig()
	cfg.Workers = len(names)
	for i := 0; i < 20; i++ {
		results, err := New(cfg, nil).Run(context.Background(), root)
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
		if results[0].Path != "a/0.bsp" || results[0].DupOf != "" || results[0].Chunks != 1 {
			t.Fatalf("first result = %+v, want decoded a/0.bsp", results[0])
		}
		for _, r := range results[1:] {
			if r.DupOf != "a/0.bsp" {
				t.Fatalf("%s: DupOf = %q, want a/0.bsp", r.Path, r.DupOf)
			}
		}
	}
}

func TestRun_KeepDuplicates(t *testing.T) {
	root := writeFiles(t, map[string][]byte{
		"a.bsp":      frameChildDoc(1),
		"copy/a.bsp": frameChildDoc(1),
	})

	cfg := testConfig()
	cfg.SkipDuplicates = false
	results, err := New(cfg, nil).Run(context.Background(), root)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if sum := Summarize(results); sum.OK != 2 || sum.Duplicates != 0 {
		t.Errorf("summary = %+v", sum)
	}
	if results[0].Digest != results[1].Digest {
		t.Error("identical files hashed differently")
	}
}

func TestRun_Cancelled(t *testing.T) {
	root := writeFiles(t, map[string][]byte{"a.bsp": frameChildDoc(1)})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := New(testConfig(), nil).Run(ctx, root); !errors.Is(err, context.Canceled) {
		t.Errorf("got %v, want context.Canceled", err)
	}
}
