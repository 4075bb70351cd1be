// Package scan decodes every BSP file under a directory tree in parallel.
package scan

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/cespare/xxhash/v2"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Faultbox/spooky-bsp/internal/config"
	"github.com/Faultbox/spooky-bsp/pkg/bsp"
)

// ErrBadPattern is returned for a malformed file pattern.
var ErrBadPattern = errors.New("invalid scan pattern")

// Result is the outcome for one file.
type Result struct {
	Path      string // relative to the scan root, slash separated
	Size      int64  // file size in bytes
	Digest    uint64 // xxhash of the file content
	DupOf     string // set when the file was skipped as a copy of DupOf
	Chunks    int
	Materials int
	Err       error
}

// Scanner decodes files matching a pattern with a bounded worker pool.
type Scanner struct {
	cfg config.ScanConfig
	log *zap.Logger
}

// New returns a Scanner. A nil log discards all entries.
func New(cfg config.ScanConfig, log *zap.Logger) *Scanner {
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	return &Scanner{cfg: cfg, log: log}
}

// Find lists the files under root matching the configured pattern, sorted.
func (s *Scanner) Find(root string) ([]string, error) {
	if !doublestar.ValidatePattern(s.cfg.Pattern) {
		return nil, errors.Wrapf(ErrBadPattern, "%q", s.cfg.Pattern)
	}
	matches, err := doublestar.Glob(os.DirFS(root), s.cfg.Pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, errors.Wrap(err, "listing files")
	}
	sort.Strings(matches)
	return matches, nil
}

// Run decodes every matching file under root. Decode failures are reported
// per file in the results; the returned error is only set when the scan
// itself could not run or ctx was cancelled.
//
// Files are hashed before any is decoded. Among byte-identical files the one
// with the lowest path is decoded and the rest point at it through DupOf.
func (s *Scanner) Run(ctx context.Context, root string) ([]Result, error) {
	paths, err := s.Find(root)
	if err != nil {
		return nil, err
	}

	results := make([]Result, len(paths))
	for i, p := range paths {
		results[i].Path = p
	}

	if err := s.each(ctx, results, func(r *Result) { s.hashFile(root, r) }); err != nil {
		return results, err
	}
	if s.cfg.SkipDuplicates {
		s.markDuplicates(results)
	}
	if err := s.each(ctx, results, func(r *Result) { s.decodeFile(root, r) }); err != nil {
		return results, err
	}
	return results, nil
}

// each runs fn on every result that has neither failed nor been skipped.
func (s *Scanner) each(ctx context.Context, results []Result, fn func(*Result)) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.Workers)
	for i := range results {
		r := &results[i]
		if r.Err != nil || r.DupOf != "" {
			continue
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			fn(r)
			return nil
		})
	}
	return g.Wait()
}

func (s *Scanner) hashFile(root string, r *Result) {
	f, err := os.Open(filepath.Join(root, filepath.FromSlash(r.Path)))
	if err != nil {
		r.Err = err
		return
	}
	defer f.Close()

	h := xxhash.New()
	n, err := io.Copy(h, f)
	if err != nil {
		r.Err = errors.Wrap(err, "hashing")
		return
	}
	r.Size = n
	r.Digest = h.Sum64()
}

// markDuplicates sets DupOf on every result whose digest matches an earlier
// result. results must be sorted by path.
func (s *Scanner) markDuplicates(results []Result) {
	seen := make(map[uint64]string, len(results))
	for i := range results {
		r := &results[i]
		if r.Err != nil {
			continue
		}
		if first, ok := seen[r.Digest]; ok {
			r.DupOf = first
			s.log.Debug("skipping duplicate", zap.String("file", r.Path), zap.String("original", first))
			continue
		}
		seen[r.Digest] = r.Path
	}
}

func (s *Scanner) decodeFile(root string, r *Result) {
	f, err := os.Open(filepath.Join(root, filepath.FromSlash(r.Path)))
	if err != nil {
		r.Err = err
		return
	}
	defer f.Close()

	doc, err := bsp.Decode(f, bsp.WithLogger(s.log.With(zap.String("file", r.Path))))
	if err != nil {
		r.Err = err
		s.log.Debug("decode failed", zap.String("file", r.Path), zap.Error(err))
		return
	}
	r.Chunks = doc.Chunks()
	r.Materials = len(doc.Materials)
}

// Summary aggregates scan results.
type Summary struct {
	Files      int
	OK         int
	Failed     int
	Duplicates int
	Bytes      int64
}

// Summarize counts results by outcome.
func Summarize(results []Result) Summary {
	var sum Summary
	for _, r := range results {
		sum.Files++
		sum.Bytes += r.Size
		switch {
		case r.Err != nil:
			sum.Failed++
		case r.DupOf != "":
			sum.Duplicates++
		default:
			sum.OK++
		}
	}
	return sum
}
