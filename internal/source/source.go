// Package source opens output files for decoding without copying them into
// the heap.
package source

import (
	"errors"
	"fmt"
	"os"

	"github.com/tysonmote/gommap"
)

// File is an output file mapped read-only into memory.
type File struct {
	file *os.File
	mmap gommap.MMap
	data []byte
}

// Open maps the file at path. Empty files are read normally since they
// cannot be mapped.
func Open(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open output file: %w", err)
	}
	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("stat output file: %w", err)
	}
	if fi.Size() == 0 {
		f.Close()
		return &File{data: []byte{}}, nil
	}

	// Read-only private mapping: a stray write faults instead of reaching disk.
	m, err := gommap.Map(f.Fd(), gommap.PROT_READ, gommap.MAP_PRIVATE)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("map output file: %w", err)
	}
	return &File{file: f, mmap: m, data: m}, nil
}

// Bytes returns the file content. It is only valid until Close.
func (f *File) Bytes() []byte { return f.data }

// Size returns the file size in bytes.
func (f *File) Size() int { return len(f.data) }

// Close unmaps and closes the file. The file is closed even when unmapping
// fails; both errors are returned.
func (f *File) Close() error {
	var unmapErr, closeErr error
	if f.mmap != nil {
		if err := f.mmap.UnsafeUnmap(); err != nil {
			unmapErr = fmt.Errorf("unmap output file: %w", err)
		}
		f.mmap = nil
	}
	f.data = nil
	if f.file != nil {
		if err := f.file.Close(); err != nil {
			closeErr = fmt.Errorf("close output file: %w", err)
		}
		f.file = nil
	}
	return errors.Join(unmapErr, closeErr)
}
