package bsp

import (
	"io"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Chunk is one decoded chunk.
type Chunk struct {
	Header ChunkHeader
	Offset int64 // offset of the payload in the decompressed stream
	Record Record
}

// ChunkReader decodes chunks one at a time from an uncompressed stream.
//
// Every chunk is checked against its declared size. The first failure is
// terminal: later calls to Next return the same error.
type ChunkReader struct {
	r     *Reader
	log   *zap.Logger
	world *World
	index int
	err   error
}

// NewChunkReader returns a ChunkReader reading from r. Use OpenStream first if
// r may be gzip-compressed.
func NewChunkReader(r io.Reader, opts ...Option) *ChunkReader {
	o := newOptions(opts)
	return &ChunkReader{r: NewReader(r), log: o.log}
}

// Offset returns the number of bytes consumed so far.
func (c *ChunkReader) Offset() int64 {
	return c.r.Offset()
}

// World returns the most recently decoded World, or nil.
func (c *ChunkReader) World() *World {
	return c.world
}

// Next decodes the next chunk. It returns io.EOF when the stream ends cleanly
// on a chunk boundary.
func (c *ChunkReader) Next() (*Chunk, error) {
	if c.err != nil {
		return nil, c.err
	}
	chunk, err := c.next()
	if err != nil {
		c.err = err
		return nil, err
	}
	c.index++
	return chunk, nil
}

func (c *ChunkReader) next() (*Chunk, error) {
	headerOffset := c.r.Offset()
	h, err := readChunkHeader(c.r)
	if err == io.EOF {
		return nil, io.EOF
	}
	if err != nil {
		return nil, errors.Wrapf(err, "chunk #%d header at offset %d", c.index, headerOffset)
	}

	start := c.r.Offset()
	rec, err := decodeRecord(c.r, h, c.world)
	if err != nil {
		return nil, errors.Wrapf(err, "chunk #%d (%s) at offset %d", c.index, h.Type, start)
	}

	consumed := c.r.Offset() - start
	if consumed != int64(h.Size) {
		return nil, &SizeMismatchError{
			Type:     h.Type,
			Offset:   start,
			Expected: int64(h.Size),
			Actual:   consumed,
		}
	}

	if w, ok := rec.(*World); ok {
		c.world = w
	}

	c.log.Debug("chunk",
		zap.Int("index", c.index),
		zap.Stringer("type", h.Type),
		zap.Int32("size", h.Size),
		zap.Int32("version", h.Version),
		zap.Int64("offset", start),
	)
	return &Chunk{Header: h, Offset: start, Record: rec}, nil
}
