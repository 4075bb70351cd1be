package bsp

import (
	"fmt"

	"github.com/pkg/errors"
)

// BSP decode errors. Every failure returned by this package matches one of
// these with errors.Is, or wraps an error of the underlying byte source.
var (
	ErrTruncated     = errors.New("truncated BSP data")
	ErrConversion    = errors.New("conversion failure")
	ErrSizeMismatch  = errors.New("chunk size mismatch")
	ErrMaterialCount = errors.New("material count mismatch")
	ErrNegativeCount = errors.New("negative count")
	ErrMissingWorld  = errors.New("zones chunk without a preceding world chunk")
)

// Conversion failures with a more specific cause.
var (
	ErrUnknownChunkType = fmt.Errorf("%w: unknown chunk type", ErrConversion)
	ErrBadTerminator    = fmt.Errorf("%w: non-zero string terminator", ErrConversion)
)

// SizeMismatchError reports a chunk whose decoder consumed a different number
// of bytes than its header declared.
type SizeMismatchError struct {
	Type     ChunkType
	Offset   int64 // payload offset in the decompressed stream
	Expected int64
	Actual   int64
}

func (e *SizeMismatchError) Error() string {
	return fmt.Sprintf("%s chunk at offset %d: declared %d bytes, decoded %d",
		e.Type, e.Offset, e.Expected, e.Actual)
}

func (e *SizeMismatchError) Unwrap() error { return ErrSizeMismatch }

// MaterialCountError reports a Materials chunk whose count disagrees with the
// number of material chunks in the document.
type MaterialCountError struct {
	Declared int32
	Decoded  int
}

func (e *MaterialCountError) Error() string {
	return fmt.Sprintf("materials chunk declared %d materials, document has %d", e.Declared, e.Decoded)
}

func (e *MaterialCountError) Unwrap() error { return ErrMaterialCount }

func negativeCount(what string, n int64) error {
	return fmt.Errorf("%w: %s %d", ErrNegativeCount, what, n)
}

func invalidValue(what string, v int64) error {
	return fmt.Errorf("%w: invalid %s %d", ErrConversion, what, v)
}
