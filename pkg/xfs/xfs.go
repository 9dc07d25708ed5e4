// Package xfs decodes XFS containers.
//
// An XFS container holds a forest of structures. Each structure is an ordered
// list of typed, named fields, and a field may itself carry a list of nested
// structures. The container is split into two streams: the structure stream
// (offset table, structure headers, field descriptors, names) and the
// parameter stream (field payloads, in decode order). Decoding walks both
// streams with independent cursors.
package xfs

// Field type tags. The low byte of a field's type selects the scalar kind.
const (
	TagInt32     uint8 = 0x01
	TagInt32Alt  uint8 = 0x02
	TagBool      uint8 = 0x03
	TagByte      uint8 = 0x04
	TagInt32Enum uint8 = 0x06
	TagInt32Ref  uint8 = 0x0a
	TagFloat32   uint8 = 0x0c
	TagString    uint8 = 0x0e
	TagVector    uint8 = 0x14
	TagColor     uint8 = 0x15
)

// TypeTypePath is the full 16-bit type of a type path field.
const TypeTypePath uint16 = 0x8080

// On-disk record sizes, all little-endian and byte-packed.
const (
	HeaderSize       = 16
	InfoHeaderSize   = 8
	StructHeaderSize = 8
	DataEntrySize    = 8 + dataEntryReserved
	NestedHeaderSize = 8

	dataEntryReserved = 32
)

// DefaultMaxDepth bounds structure nesting during decode.
const DefaultMaxDepth = 256
