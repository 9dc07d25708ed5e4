package xfs

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"golang.org/x/sys/unix"
)

// File is a container file held in memory, either mapped or read.
type File struct {
	Path    string
	Data    []byte
	mmapped bool
}

// Open maps path read-only. If mmap is unavailable the file is read instead.
// The returned file must be closed to release any mapping.
func Open(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	stat, err := f.Stat()
	if err != nil {
		return nil, err
	}
	size64 := stat.Size()
	if size64 < 0 || size64 > int64(int(^uint(0)>>1)) {
		return nil, fmt.Errorf("%s: unsupported file size %d", path, size64)
	}
	size := int(size64)
	if size == 0 {
		return &File{Path: path, Data: []byte{}}, nil
	}

	data, err := unix.Mmap(int(f.Fd()), 0, size, unix.PROT_READ, unix.MAP_SHARED)
	if err == nil {
		return &File{Path: path, Data: data, mmapped: true}, nil
	}

	data = make([]byte, size)
	if _, err := io.ReadFull(f, data); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return &File{Path: path, Data: data}, nil
}

// Close releases the mapping. It is safe to call more than once.
func (f *File) Close() error {
	if f == nil || f.Data == nil {
		return nil
	}
	var err error
	if f.mmapped {
		err = unix.Munmap(f.Data)
	}
	f.Data = nil
	f.mmapped = false
	return err
}

// Decode decodes the file contents. The returned tree holds no references to
// the file's memory, so the file may be closed afterwards.
func (f *File) Decode(opts ...Option) (*Container, error) {
	if f == nil || f.Data == nil {
		return nil, fmt.Errorf("xfs: decode of closed file")
	}
	return Decode(f.Data, opts...)
}

// DecodeFile opens, decodes and closes path.
func DecodeFile(path string, opts ...Option) (c *Container, err error) {
	f, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	c, err = f.Decode(opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// DecodeReader reads r to the end and decodes the result.
func DecodeReader(r io.Reader, opts ...Option) (*Container, error) {
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("read container: %w", err)
	}
	return Decode(buf.Bytes(), opts...)
}
