// Package encoding provides text encoding utilities for BSP string fields.
//
// Characters in BSP files are single bytes (or the low byte of a 32-bit
// slot). They are interpreted as ISO-8859-1 so every byte maps to exactly one
// rune and decoding can never fail.
package encoding

import (
	"bytes"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// Latin1ToUTF8 converts ISO-8859-1 encoded bytes to a UTF-8 string.
// Returns the bytes as-is if conversion fails.
func Latin1ToUTF8(data []byte) string {
	if isASCII(data) {
		return string(data)
	}
	result, _, err := transform.Bytes(charmap.ISO8859_1.NewDecoder(), data)
	if err != nil {
		return string(data)
	}
	return string(result)
}

// FixedStringToUTF8 converts a fixed-size Latin-1 character array to UTF-8.
// Everything from the first null byte on is dropped.
func FixedStringToUTF8(data []byte) string {
	if i := bytes.IndexByte(data, 0); i >= 0 {
		data = data[:i]
	}
	return Latin1ToUTF8(data)
}

func isASCII(data []byte) bool {
	for _, b := range data {
		if b >= 0x80 {
			return false
		}
	}
	return true
}
