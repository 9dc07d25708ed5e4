package xfs

import (
	"fmt"

	"github.com/samcharles93/xfsconv/internal/logger"
)

// Decoder turns loaded Streams into a Container. A Decoder owns both cursors
// and is not safe for concurrent use; independent decoders are.
type Decoder struct {
	header  Header
	structs *Cursor
	params  *Cursor
	offsets OffsetTable
	entries map[int64]struct{}
	visited map[int64]struct{}
	opts    options
	log     logger.Logger
	diags   []Diagnostic
}

// NewDecoder prepares a decoder over s. The decoder advances s's cursors.
func NewDecoder(s *Streams, opts ...Option) *Decoder {
	o := buildOptions(opts)
	entries := make(map[int64]struct{}, len(s.Offsets))
	for _, off := range s.Offsets {
		entries[int64(off)] = struct{}{}
	}
	return &Decoder{
		header:  s.Header,
		structs: s.Structs,
		params:  s.Params,
		offsets: s.Offsets,
		entries: entries,
		visited: make(map[int64]struct{}, len(s.Offsets)),
		opts:    o,
		log:     o.log,
	}
}

// Decode loads and decodes a whole container held in memory.
func Decode(data []byte, opts ...Option) (*Container, error) {
	s, err := Load(data, opts...)
	if err != nil {
		return nil, err
	}
	return NewDecoder(s, opts...).Decode()
}

// Decode walks the offset table and decodes every top-level structure.
//
// Decoding starts at the first table entry and continues while the structure
// cursor is at or before the last entry; after each structure the cursor moves
// to the end of that structure including all nested content.
func (d *Decoder) Decode() (*Container, error) {
	c := &Container{Header: d.header}

	last, ok := d.offsets.Last()
	if !ok {
		d.log.Debug("empty offset table")
		return c, nil
	}
	d.log.Debug("offset table loaded",
		"entries", len(d.offsets),
		"structure_bytes", d.structs.Len(),
		"parameter_bytes", d.params.Len(),
	)

	d.structs.Seek(int64(d.offsets[0]))
	for d.structs.Pos() <= int64(last) {
		start := d.structs.Pos()
		s, next, err := d.decodeStructure(0)
		if err != nil {
			return nil, fmt.Errorf("structure at offset %d: %w", start, err)
		}
		c.Structures = append(c.Structures, s)
		d.log.Debug("decoded structure", "offset", start, "fields", len(s.Fields), "next", next)

		d.structs.Seek(next)
		if next <= int64(last) && !d.isEntry(next) {
			if d.opts.strict {
				return nil, fmt.Errorf("%w: structure at offset %d ended at %d", ErrMisaligned, start, next)
			}
			d.report(DiagMisaligned, next,
				fmt.Sprintf("structure at offset %d ended at %d, which is not an offset table entry", start, next))
		}
	}

	d.reportUnvisited()
	c.Diagnostics = d.diags
	return c, nil
}

func (d *Decoder) isEntry(off int64) bool {
	_, ok := d.entries[off]
	return ok
}

func (d *Decoder) report(kind DiagnosticKind, off int64, msg string) {
	d.diags = append(d.diags, Diagnostic{Kind: kind, Offset: off, Message: msg})
	d.log.Warn(msg, "kind", string(kind), "offset", off)
}

func (d *Decoder) reportUnvisited() {
	seen := make(map[int64]struct{}, len(d.offsets))
	for i, off := range d.offsets {
		o := int64(off)
		if _, dup := seen[o]; dup {
			continue
		}
		seen[o] = struct{}{}
		if _, ok := d.visited[o]; ok {
			continue
		}
		d.report(DiagUnvisited, o, fmt.Sprintf("offset table entry %d (offset %d) was never decoded", i, o))
	}
}

// decodeStructure decodes the structure at the structure cursor. It returns
// the offset just past everything the structure occupies: its descriptor
// list, its names and any nested structures.
func (d *Decoder) decodeStructure(depth int) (*Structure, int64, error) {
	start := d.structs.Pos()
	if depth >= d.opts.maxDepth {
		return nil, 0, fmt.Errorf("%w: depth %d at offset %d", ErrDepthExceeded, depth, start)
	}

	hdr, err := readStructHeader(d.structs)
	if err != nil {
		return nil, 0, fmt.Errorf("read structure header: %w", err)
	}
	entries, err := readDataEntries(d.structs, int(hdr.DataCount))
	if err != nil {
		return nil, 0, fmt.Errorf("read field descriptors: %w", err)
	}
	d.visited[start] = struct{}{}

	next := d.structs.Pos()
	s := &Structure{Hash: hdr.Hash, Fields: make([]*Field, 0, len(entries))}
	for i, e := range entries {
		d.structs.Seek(int64(e.RelNameOffset))
		name, err := d.structs.ReadCString()
		if err != nil {
			return nil, 0, fmt.Errorf("read name of field %d: %w", i, err)
		}
		f := &Field{Name: name, Type: e.Type, Length: e.ValueLength}
		end, err := d.decodeField(f, depth)
		if err != nil {
			return nil, 0, fmt.Errorf("field %q: %w", name, err)
		}
		s.Fields = append(s.Fields, f)
		next = max(next, end)
	}
	return s, next, nil
}
