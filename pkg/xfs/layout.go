package xfs

import (
	"encoding/binary"
	"fmt"
)

// Header is the fixed file header. The magic is read but never validated.
type Header struct {
	Magic   [4]byte
	Version int16
	Unk1    int16
	Unk2    int32
	Unk3    int32
}

// MagicString returns the magic tag with trailing NULs removed.
func (h Header) MagicString() string {
	n := len(h.Magic)
	for n > 0 && h.Magic[n-1] == 0 {
		n--
	}
	return string(h.Magic[:n])
}

// InfoHeader precedes each of the two stream blocks.
type InfoHeader struct {
	Count int32 `json:"count" yaml:"count"`
	Size  int32 `json:"size" yaml:"size"`
}

// structHeader starts every structure in the structure stream.
type structHeader struct {
	Hash      uint32
	DataCount int32
}

// dataEntry is one field descriptor. The trailing 32 reserved bytes are skipped.
type dataEntry struct {
	RelNameOffset int32
	Type          uint16
	ValueLength   int16
}

// nestedHeader precedes each nested structure element in the parameter stream.
// The low bit of StructRef is the integrity flag; StructRef>>1 indexes the
// offset table.
type nestedHeader struct {
	StructRef int16
	ID        int16
	Size      int32
}

func (h nestedHeader) tableIndex() int {
	return int(h.StructRef >> 1)
}

func readHeader(c *Cursor) (Header, error) {
	b, err := c.ReadBytes(HeaderSize)
	if err != nil {
		return Header{}, fmt.Errorf("read header: %w", err)
	}
	var h Header
	copy(h.Magic[:], b[0:4])
	h.Version = int16(binary.LittleEndian.Uint16(b[4:6]))
	h.Unk1 = int16(binary.LittleEndian.Uint16(b[6:8]))
	h.Unk2 = int32(binary.LittleEndian.Uint32(b[8:12]))
	h.Unk3 = int32(binary.LittleEndian.Uint32(b[12:16]))
	return h, nil
}

func readInfoHeader(c *Cursor) (InfoHeader, error) {
	b, err := c.ReadBytes(InfoHeaderSize)
	if err != nil {
		return InfoHeader{}, err
	}
	return InfoHeader{
		Count: int32(binary.LittleEndian.Uint32(b[0:4])),
		Size:  int32(binary.LittleEndian.Uint32(b[4:8])),
	}, nil
}

func readStructHeader(c *Cursor) (structHeader, error) {
	b, err := c.ReadBytes(StructHeaderSize)
	if err != nil {
		return structHeader{}, err
	}
	return structHeader{
		Hash:      binary.LittleEndian.Uint32(b[0:4]),
		DataCount: int32(binary.LittleEndian.Uint32(b[4:8])),
	}, nil
}

func readDataEntries(c *Cursor, count int) ([]dataEntry, error) {
	if count <= 0 {
		return nil, nil
	}
	if int64(count) > c.Remaining()/DataEntrySize {
		return nil, fmt.Errorf("%w: %d field descriptors at offset %d exceed buffer",
			ErrTruncatedInput, count, c.Pos())
	}
	b, err := c.ReadBytes(count * DataEntrySize)
	if err != nil {
		return nil, err
	}
	entries := make([]dataEntry, count)
	for i := range entries {
		rec := b[i*DataEntrySize : (i+1)*DataEntrySize]
		entries[i] = dataEntry{
			RelNameOffset: int32(binary.LittleEndian.Uint32(rec[0:4])),
			Type:          binary.LittleEndian.Uint16(rec[4:6]),
			ValueLength:   int16(binary.LittleEndian.Uint16(rec[6:8])),
		}
	}
	return entries, nil
}

func readNestedHeader(c *Cursor) (nestedHeader, error) {
	b, err := c.ReadBytes(NestedHeaderSize)
	if err != nil {
		return nestedHeader{}, err
	}
	return nestedHeader{
		StructRef: int16(binary.LittleEndian.Uint16(b[0:2])),
		ID:        int16(binary.LittleEndian.Uint16(b[2:4])),
		Size:      int32(binary.LittleEndian.Uint32(b[4:8])),
	}, nil
}
