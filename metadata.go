// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/wad

package wad

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// ReadHeader opens a WAD and returns only the parsed 12-byte header without
// reading the directory or payload.
func ReadHeader(path string) (Header, error) {
	f, _, err := openFileWithSize(path)
	if err != nil {
		return Header{}, err
	}
	defer func() { _ = f.Close() }()

	return ReadHeaderFromReaderAt(f)
}

// ReadHeaderFromReaderAt reads only the WAD header from a random-access source.
func ReadHeaderFromReaderAt(ra io.ReaderAt) (Header, error) {
	if ra == nil {
		return Header{}, ErrNilReader
	}

	var buf [headerSize]byte
	if _, err := ra.ReadAt(buf[:], 0); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return Header{}, fmt.Errorf("%w: short header", ErrTruncated)
		}

		return Header{}, fmt.Errorf("read header: %w", err)
	}

	return parseHeader(buf[:])
}

// ListLumps opens a WAD and returns directory metadata without loading the
// payload region into memory. The file handle is closed before return.
func ListLumps(path string) ([]Lump, error) {
	f, size, err := openFileWithSize(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	return ListLumpsFromReaderAt(f, size)
}

// ListLumpsFromReaderAt parses directory metadata from a random-access
// source of known size. Only the header and directory block are read.
func ListLumpsFromReaderAt(ra io.ReaderAt, size int64) ([]Lump, error) {
	header, err := ReadHeaderFromReaderAt(ra)
	if err != nil {
		return nil, err
	}

	dirOffset := int64(header.DirOffset)
	dirSize := int64(header.LumpCount) * dirEntrySize
	if dirOffset+dirSize > size {
		return nil, fmt.Errorf("%w: directory [%d, %d) in %d byte file",
			ErrMalformed, dirOffset, dirOffset+dirSize, size)
	}

	if dirSize == 0 {
		return []Lump{}, nil
	}

	block := make([]byte, dirSize)
	if _, err := ra.ReadAt(block, dirOffset); err != nil {
		return nil, fmt.Errorf("read directory: %w", err)
	}

	return parseDirectory(block, int(header.LumpCount)), nil
}

// openFileWithSize opens a file and returns a handle plus current size.
func openFileWithSize(path string) (*os.File, int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("open WAD: %w", err)
	}

	fi, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, 0, fmt.Errorf("stat: %w", err)
	}

	return f, fi.Size(), nil
}
