package xfs

import (
	"fmt"
	"strconv"
)

// decodeField reads f's payload from the parameter stream and returns the
// structure-stream offset just past any nested content.
func (d *Decoder) decodeField(f *Field, depth int) (int64, error) {
	count, err := d.params.ReadI32()
	if err != nil {
		return 0, fmt.Errorf("read element count: %w", err)
	}

	nested, err := d.peekNested(f)
	if err != nil {
		return 0, err
	}
	switch {
	case nested:
		return d.decodeNested(f, count, depth)
	case f.Type == TypeTypePath:
		if err := d.decodeTypePaths(f, count); err != nil {
			return 0, err
		}
	default:
		if err := d.decodeScalars(f, count); err != nil {
			return 0, err
		}
	}
	// Only nested payloads touch the structure stream.
	return d.structs.Pos(), nil
}

// peekNested peeks the parameter stream for integer-tagged fields. A set low
// bit marks a list of nested structures.
func (d *Decoder) peekNested(f *Field) (bool, error) {
	switch f.Tag() {
	case TagInt32, TagInt32Alt:
	default:
		return false, nil
	}
	v, err := d.params.PeekU16()
	if err != nil {
		return false, fmt.Errorf("nested check: %w", err)
	}
	return v&1 == 1, nil
}

func (d *Decoder) decodeNested(f *Field, count int32, depth int) (int64, error) {
	f.Kind = KindStructures
	f.Structures = make([]*Structure, 0, capHint(count, d.params, NestedHeaderSize))

	var end int64
	for i := int32(0); i < count; i++ {
		h, err := readNestedHeader(d.params)
		if err != nil {
			return 0, fmt.Errorf("read nested header %d: %w", i, err)
		}
		idx := h.tableIndex()
		if idx < 0 || idx >= len(d.offsets) {
			return 0, fmt.Errorf("%w: nested structure %d references offset table entry %d of %d",
				ErrTruncatedInput, i, idx, len(d.offsets))
		}
		d.structs.Seek(int64(d.offsets[idx]))
		child, next, err := d.decodeStructure(depth + 1)
		if err != nil {
			return 0, fmt.Errorf("nested structure %d: %w", i, err)
		}
		f.Structures = append(f.Structures, child)
		end = max(end, next)
	}
	return end, nil
}

func (d *Decoder) decodeTypePaths(f *Field, count int32) error {
	f.Kind = KindTypePaths
	f.TypePaths = make([]TypePath, 0, capHint(count, d.params, 2))

	for i := int32(0); i < count; i++ {
		n, err := d.params.ReadU8()
		if err != nil {
			return fmt.Errorf("read type path %d count: %w", i, err)
		}
		typeName, err := d.params.ReadCString()
		if err != nil {
			return fmt.Errorf("read type path %d name: %w", i, err)
		}
		paths := make([]string, 0, max(int(n)-1, 0))
		for j := 1; j < int(n); j++ {
			p, err := d.params.ReadCString()
			if err != nil {
				return fmt.Errorf("read type path %d entry %d: %w", i, j-1, err)
			}
			paths = append(paths, p)
		}
		f.TypePaths = append(f.TypePaths, TypePath{TypeName: typeName, Paths: paths})
	}
	return nil
}

func (d *Decoder) decodeScalars(f *Field, count int32) error {
	tag := f.Tag()
	switch tag {
	case TagVector:
		return d.decodeVector(f, count)
	case TagColor:
		return d.decodeColor(f, count)
	case TagInt32, TagInt32Alt, TagInt32Enum, TagInt32Ref, TagBool, TagByte, TagFloat32, TagString:
	default:
		// Unknown tags are skipped without consuming payload bytes.
		d.log.Debug("skipping unknown field tag", "field", f.Name, "type", f.Type, "count", count)
		return nil
	}

	f.Kind = KindValues
	f.Values = make([]string, 0, capHint(count, d.params, 1))
	for i := int32(0); i < count; i++ {
		v, err := d.readScalar(tag)
		if err != nil {
			return fmt.Errorf("read value %d: %w", i, err)
		}
		f.Values = append(f.Values, v)
	}
	return nil
}

func (d *Decoder) readScalar(tag uint8) (string, error) {
	p := d.params
	switch tag {
	case TagBool:
		v, err := p.ReadBool()
		return FormatBool(v), err
	case TagByte:
		v, err := p.ReadU8()
		return strconv.FormatUint(uint64(v), 10), err
	case TagFloat32:
		v, err := p.ReadF32()
		return FormatFloat(v), err
	case TagString:
		return p.ReadCString()
	default:
		v, err := p.ReadI32()
		return strconv.FormatInt(int64(v), 10), err
	}
}

// decodeVector and decodeColor keep a single slot: with count > 1 only the
// last element survives.
func (d *Decoder) decodeVector(f *Field, count int32) error {
	for i := int32(0); i < count; i++ {
		var v [4]float32
		for j := range v {
			x, err := d.params.ReadF32()
			if err != nil {
				return fmt.Errorf("read vector %d: %w", i, err)
			}
			v[j] = x
		}
		f.Kind = KindVector
		f.Vector = &Vector{A: v[0], B: v[1], C: v[2], D: v[3]}
	}
	return nil
}

func (d *Decoder) decodeColor(f *Field, count int32) error {
	for i := int32(0); i < count; i++ {
		var v [4]uint32
		for j := range v {
			x, err := d.params.ReadU32()
			if err != nil {
				return fmt.Errorf("read color %d: %w", i, err)
			}
			v[j] = x
		}
		f.Kind = KindColor
		f.Color = &Color{A: v[0], B: v[1], C: v[2], D: v[3]}
	}
	return nil
}

// capHint bounds a preallocation by what the stream could possibly hold.
func capHint(count int32, c *Cursor, minElem int64) int {
	if count <= 0 {
		return 0
	}
	limit := c.Remaining() / minElem
	if int64(count) < limit {
		return int(count)
	}
	return int(limit)
}
