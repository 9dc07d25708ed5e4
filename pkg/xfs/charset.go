package xfs

import (
	"fmt"
	"strings"

	"golang.org/x/text/encoding/charmap"
)

// Charset selects how single-byte C strings are turned into Go strings.
type Charset string

const (
	CharsetWindows1252 Charset = "windows-1252"
	CharsetISO8859_1   Charset = "iso-8859-1"
	// CharsetRaw copies bytes through unchanged.
	CharsetRaw Charset = "raw"
)

// DefaultCharset is used when no charset is configured.
const DefaultCharset = CharsetWindows1252

// ParseCharset accepts the canonical names plus a few common aliases.
func ParseCharset(s string) (Charset, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "windows-1252", "cp1252", "win1252":
		return CharsetWindows1252, nil
	case "iso-8859-1", "latin1", "latin-1":
		return CharsetISO8859_1, nil
	case "raw", "bytes", "none":
		return CharsetRaw, nil
	default:
		return "", fmt.Errorf("unknown charset %q", s)
	}
}

func (cs Charset) decode(b []byte) (string, error) {
	var cm *charmap.Charmap
	switch cs {
	case CharsetRaw:
		return string(b), nil
	case CharsetISO8859_1:
		cm = charmap.ISO8859_1
	default:
		cm = charmap.Windows1252
	}
	if isASCII(b) {
		return string(b), nil
	}
	out, err := cm.NewDecoder().Bytes(b)
	if err != nil {
		return "", fmt.Errorf("decode %s string: %w", cs, err)
	}
	return string(out), nil
}

func isASCII(b []byte) bool {
	for _, c := range b {
		if c >= 0x80 {
			return false
		}
	}
	return true
}
