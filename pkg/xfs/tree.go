package xfs

import (
	"math"
	"strconv"
)

// PayloadKind names the payload variant a Field carries.
type PayloadKind uint8

const (
	KindNone PayloadKind = iota
	KindStructures
	KindTypePaths
	KindValues
	KindVector
	KindColor
)

func (k PayloadKind) String() string {
	switch k {
	case KindStructures:
		return "structures"
	case KindTypePaths:
		return "type_paths"
	case KindValues:
		return "values"
	case KindVector:
		return "vector"
	case KindColor:
		return "color"
	default:
		return "none"
	}
}

// Container is a fully decoded XFS file.
type Container struct {
	Header      Header       `json:"-" yaml:"-"`
	Structures  []*Structure `json:"structures" yaml:"structures"`
	Diagnostics []Diagnostic `json:"diagnostics,omitempty" yaml:"diagnostics,omitempty"`
}

// Structure is an ordered group of fields. Hash is carried through from the
// structure header as an opaque value.
type Structure struct {
	Hash   uint32   `json:"hash" yaml:"hash"`
	Fields []*Field `json:"fields" yaml:"fields"`
}

// Field is a named, typed entry of a Structure. Only the payload named by Kind
// is set.
type Field struct {
	Name   string      `json:"name" yaml:"name"`
	Type   uint16      `json:"type" yaml:"type"`
	Length int16       `json:"dataLength" yaml:"dataLength"`
	Kind   PayloadKind `json:"-" yaml:"-"`

	Structures []*Structure `json:"structures,omitempty" yaml:"structures,omitempty"`
	TypePaths  []TypePath   `json:"typePaths,omitempty" yaml:"typePaths,omitempty"`
	Values     []string     `json:"values,omitempty" yaml:"values,omitempty"`
	Vector     *Vector      `json:"vector,omitempty" yaml:"vector,omitempty"`
	Color      *Color       `json:"color,omitempty" yaml:"color,omitempty"`
}

// Tag returns the scalar kind selector (the low byte of Type).
func (f *Field) Tag() uint8 { return uint8(f.Type & 0xFF) }

// TypePath is a type name with its hierarchical path strings.
type TypePath struct {
	TypeName string   `json:"typeName" yaml:"typeName"`
	Paths    []string `json:"paths" yaml:"paths"`
}

type Vector struct {
	A float32 `json:"a" yaml:"a"`
	B float32 `json:"b" yaml:"b"`
	C float32 `json:"c" yaml:"c"`
	D float32 `json:"d" yaml:"d"`
}

// MarshalJSON writes non-finite components as strings, since JSON numbers
// cannot hold them.
func (v Vector) MarshalJSON() ([]byte, error) {
	b := make([]byte, 0, 64)
	for i, x := range [4]float32{v.A, v.B, v.C, v.D} {
		if i == 0 {
			b = append(b, '{')
		} else {
			b = append(b, ',')
		}
		b = append(b, '"', "abcd"[i], '"', ':')
		f := float64(x)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			b = strconv.AppendQuote(b, FormatFloat(x))
			continue
		}
		b = strconv.AppendFloat(b, f, 'g', -1, 32)
	}
	return append(b, '}'), nil
}

type Color struct {
	A uint32 `json:"a" yaml:"a"`
	B uint32 `json:"b" yaml:"b"`
	C uint32 `json:"c" yaml:"c"`
	D uint32 `json:"d" yaml:"d"`
}

// OffsetTable lists absolute structure-stream offsets of structures. Nested
// references index into it.
type OffsetTable []int32

// Last returns the final entry. ok is false for an empty table.
func (t OffsetTable) Last() (int32, bool) {
	if len(t) == 0 {
		return 0, false
	}
	return t[len(t)-1], true
}

// DiagnosticKind classifies a non-fatal decode observation.
type DiagnosticKind string

const (
	// DiagMisaligned: a top-level structure ended at a position that is not an
	// offset table entry.
	DiagMisaligned DiagnosticKind = "misaligned"
	// DiagUnvisited: an offset table entry was never decoded.
	DiagUnvisited DiagnosticKind = "unvisited"
)

type Diagnostic struct {
	Kind    DiagnosticKind `json:"kind" yaml:"kind"`
	Offset  int64          `json:"offset" yaml:"offset"`
	Message string         `json:"message" yaml:"message"`
}
