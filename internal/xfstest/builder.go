// Package xfstest builds XFS container bytes for tests.
//
// Structures are laid out depth-first: each structure's header and field
// descriptors are followed by its field names and then by its nested
// structures. Every structure gets an offset table entry in that order, and
// the parameter stream is written in the order the decoder consumes it.
package xfstest

import (
	"bytes"
	"encoding/binary"
	"math"
)

// Magic is written into every built header.
var Magic = [4]byte{'X', 'F', 'S', 0}

// Struct describes one structure.
type Struct struct {
	Hash   uint32
	Fields []Field
}

// Field describes one field. When Children is non-nil the field is written
// as a nested structure list and Count and Payload are ignored.
type Field struct {
	Name     string
	Type     uint16
	Length   int16
	Count    int32
	Payload  []byte
	Children []*Struct
}

// Layout is the result of laying out a forest of structures.
type Layout struct {
	Offsets []int32
	Structs []byte
	Params  []byte
	// Index maps each structure to its offset table entry.
	Index map[*Struct]int
}

// Build lays out top and wraps both streams in a container.
func Build(top ...*Struct) []byte {
	l := Lay(top...)
	return Container(int32(len(l.Offsets)), l.Structs, 1, l.Params)
}

// Lay computes the structure and parameter streams for top.
func Lay(top ...*Struct) *Layout {
	l := &Layout{Index: make(map[*Struct]int)}
	var order []*Struct
	var visit func(s *Struct)
	visit = func(s *Struct) {
		l.Index[s] = len(order)
		order = append(order, s)
		for _, f := range s.Fields {
			for _, c := range f.Children {
				visit(c)
			}
		}
	}
	for _, s := range top {
		visit(s)
	}

	l.Offsets = make([]int32, len(order))
	var body bytes.Buffer
	pos := int32(4 * len(order))
	for i, s := range order {
		l.Offsets[i] = pos
		nameOff := pos + 8 + 40*int32(len(s.Fields))
		body.Write(U32(s.Hash))
		body.Write(I32(int32(len(s.Fields))))
		for _, f := range s.Fields {
			body.Write(I32(nameOff))
			body.Write(U16(f.Type))
			body.Write(U16(uint16(f.Length)))
			body.Write(make([]byte, 32))
			nameOff += int32(len(f.Name)) + 1
		}
		for _, f := range s.Fields {
			body.Write(CStr(f.Name))
		}
		pos = nameOff
	}

	var structs bytes.Buffer
	for _, off := range l.Offsets {
		structs.Write(I32(off))
	}
	structs.Write(body.Bytes())
	l.Structs = structs.Bytes()

	var params bytes.Buffer
	var emit func(s *Struct)
	emit = func(s *Struct) {
		for _, f := range s.Fields {
			if f.Children == nil {
				params.Write(I32(f.Count))
				params.Write(f.Payload)
				continue
			}
			params.Write(I32(int32(len(f.Children))))
			for i, c := range f.Children {
				ref := int16(l.Index[c]<<1 | 1)
				params.Write(U16(uint16(ref)))
				params.Write(U16(uint16(i)))
				params.Write(I32(0))
				emit(c)
			}
		}
	}
	for _, s := range top {
		emit(s)
	}
	l.Params = params.Bytes()
	return l
}

// Container wraps raw stream blocks in a file header and two info headers.
func Container(structCount int32, structs []byte, paramCount int32, params []byte) []byte {
	var b bytes.Buffer
	b.Write(Magic[:])
	b.Write(U16(0x10)) // version
	b.Write(U16(0))
	b.Write(I32(0))
	b.Write(I32(0))
	b.Write(I32(structCount))
	b.Write(I32(int32(len(structs))))
	b.Write(structs)
	b.Write(I32(paramCount))
	b.Write(I32(int32(len(params))))
	b.Write(params)
	return b.Bytes()
}

// Field constructors.

func Int32s(name string, vals ...int32) Field {
	return Field{Name: name, Type: 0x01, Length: 4, Count: int32(len(vals)), Payload: I32(vals...)}
}

func Floats(name string, vals ...float32) Field {
	return Field{Name: name, Type: 0x0c, Length: 4, Count: int32(len(vals)), Payload: F32(vals...)}
}

func Strings(name string, vals ...string) Field {
	return Field{Name: name, Type: 0x0e, Length: 1, Count: int32(len(vals)), Payload: CStr(vals...)}
}

func Bools(name string, vals ...bool) Field {
	p := make([]byte, len(vals))
	for i, v := range vals {
		if v {
			p[i] = 1
		}
	}
	return Field{Name: name, Type: 0x03, Length: 1, Count: int32(len(vals)), Payload: p}
}

func Bytes(name string, vals ...byte) Field {
	return Field{Name: name, Type: 0x04, Length: 1, Count: int32(len(vals)), Payload: append([]byte(nil), vals...)}
}

func Vector(name string, a, b, c, d float32) Field {
	return Field{Name: name, Type: 0x14, Length: 16, Count: 1, Payload: F32(a, b, c, d)}
}

func Color(name string, a, b, c, d uint32) Field {
	return Field{Name: name, Type: 0x15, Length: 16, Count: 1, Payload: U32(a, b, c, d)}
}

// TypePath is one type path element: pathCount is written as len(Paths)+1.
type TypePath struct {
	TypeName string
	Paths    []string
}

func TypePaths(name string, tps ...TypePath) Field {
	var p bytes.Buffer
	for _, tp := range tps {
		p.WriteByte(byte(len(tp.Paths) + 1))
		p.Write(CStr(tp.TypeName))
		p.Write(CStr(tp.Paths...))
	}
	return Field{Name: name, Type: 0x8080, Count: int32(len(tps)), Payload: p.Bytes()}
}

func Nested(name string, children ...*Struct) Field {
	if children == nil {
		children = []*Struct{}
	}
	return Field{Name: name, Type: 0x01, Length: 8, Children: children}
}

// Encoding helpers.

func I32(vals ...int32) []byte {
	b := make([]byte, 4*len(vals))
	for i, v := range vals {
		binary.LittleEndian.PutUint32(b[4*i:], uint32(v))
	}
	return b
}

func U32(vals ...uint32) []byte {
	b := make([]byte, 4*len(vals))
	for i, v := range vals {
		binary.LittleEndian.PutUint32(b[4*i:], v)
	}
	return b
}

func U16(vals ...uint16) []byte {
	b := make([]byte, 2*len(vals))
	for i, v := range vals {
		binary.LittleEndian.PutUint16(b[2*i:], v)
	}
	return b
}

func F32(vals ...float32) []byte {
	b := make([]byte, 4*len(vals))
	for i, v := range vals {
		binary.LittleEndian.PutUint32(b[4*i:], math.Float32bits(v))
	}
	return b
}

// CStr encodes each string followed by a 0x00 terminator.
func CStr(vals ...string) []byte {
	var b []byte
	for _, v := range vals {
		b = append(b, v...)
		b = append(b, 0)
	}
	return b
}

// Cat concatenates byte slices.
func Cat(parts ...[]byte) []byte {
	return bytes.Join(parts, nil)
}
