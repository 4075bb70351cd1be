package encoding

import "testing"

func TestLatin1ToUTF8(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want string
	}{
		{"ascii", []byte("spooky.bsp"), "spooky.bsp"},
		{"empty", []byte{}, ""},
		{"e acute", []byte{'c', 'a', 'f', 0xE9}, "café"},
		{"upper half", []byte{0xA9, 0xFF}, "©ÿ"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Latin1ToUTF8(tt.data); got != tt.want {
				t.Errorf("Latin1ToUTF8(%v) = %q, want %q", tt.data, got, tt.want)
			}
		})
	}
}

func TestFixedStringToUTF8(t *testing.T) {
	data := []byte{'l', 'm', '_', '0', '1', 0, 'x', 'x', 0, 0, 0, 0}
	if got := FixedStringToUTF8(data); got != "lm_01" {
		t.Errorf("got %q, want %q", got, "lm_01")
	}

	full := []byte("abcdefghijkl")
	if got := FixedStringToUTF8(full); got != "abcdefghijkl" {
		t.Errorf("got %q, want %q", got, "abcdefghijkl")
	}
}
