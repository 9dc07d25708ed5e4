package xfs

import "fmt"

// Streams is a loaded container ready for decoding: the header, both info
// headers, a cursor per stream and the offset table.
//
// After Load the structure cursor sits just past the offset table and the
// parameter cursor at the start of the parameter block.
type Streams struct {
	Header     Header
	StructInfo InfoHeader
	ParamInfo  InfoHeader
	Structs    *Cursor
	Params     *Cursor
	Offsets    OffsetTable
}

// Load splits raw container bytes into the structure and parameter streams and
// reads the offset table. Any short read fails the whole load.
func Load(data []byte, opts ...Option) (*Streams, error) {
	o := buildOptions(opts)
	file := NewCursor(data)

	hdr, err := readHeader(file)
	if err != nil {
		return nil, err
	}

	structInfo, structBlock, err := readBlock(file, "structure")
	if err != nil {
		return nil, err
	}
	paramInfo, paramBlock, err := readBlock(file, "parameter")
	if err != nil {
		return nil, err
	}

	structs := NewCursor(structBlock)
	structs.SetCharset(o.charset)
	params := NewCursor(paramBlock)
	params.SetCharset(o.charset)

	offsets, err := readOffsetTable(structs, structInfo.Count)
	if err != nil {
		return nil, err
	}

	return &Streams{
		Header:     hdr,
		StructInfo: structInfo,
		ParamInfo:  paramInfo,
		Structs:    structs,
		Params:     params,
		Offsets:    offsets,
	}, nil
}

func readBlock(c *Cursor, name string) (InfoHeader, []byte, error) {
	info, err := readInfoHeader(c)
	if err != nil {
		return InfoHeader{}, nil, fmt.Errorf("read %s info header: %w", name, err)
	}
	if info.Size < 0 {
		return InfoHeader{}, nil, fmt.Errorf("read %s block: %w: negative size %d", name, ErrTruncatedInput, info.Size)
	}
	block, err := c.ReadBytes(int(info.Size))
	if err != nil {
		return InfoHeader{}, nil, fmt.Errorf("read %s block: %w", name, err)
	}
	return info, block, nil
}

func readOffsetTable(c *Cursor, count int32) (OffsetTable, error) {
	if count < 0 || int64(count) > c.Remaining()/4 {
		return nil, fmt.Errorf("read offset table: %w: %d entries, structure block is %d bytes",
			ErrTruncatedInput, count, c.Len())
	}
	table := make(OffsetTable, count)
	for i := range table {
		v, err := c.ReadI32()
		if err != nil {
			return nil, fmt.Errorf("read offset table entry %d: %w", i, err)
		}
		table[i] = v
	}
	return table, nil
}
