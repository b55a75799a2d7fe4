// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/wad

package wad

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
)

// writeBufferSize is the buffered writer size used by WriteFile.
const writeBufferSize = 64 * 1024

// LumpInput describes one lump to be written into an archive.
type LumpInput struct {
	// Name is the normalized lump name, at most 8 bytes. It is stored
	// right-padded with zero bytes. May be empty.
	Name string `json:"name" yaml:"name"`
	// Data is the lump payload; nil or empty writes a marker entry.
	Data []byte `json:"-" yaml:"-"`
}

// Marker returns a zero-size marker lump input such as F_START or F_END.
func Marker(name string) LumpInput {
	return LumpInput{Name: name}
}

// Write writes a complete archive to w: the 12-byte header, the payload
// region in input order, then the directory. Duplicate names are written
// as-is; readers resolve them last-entry-wins.
func Write(w io.Writer, inputs []LumpInput, opts WriteOptions) (WriteResult, error) {
	var res WriteResult
	if w == nil {
		return res, ErrNilWriter
	}

	opts.applyDefaults()
	if len(opts.Kind) != 4 {
		return res, fmt.Errorf("%w: magic tag %q is not 4 bytes", ErrMalformed, opts.Kind)
	}

	if uint64(len(inputs)) > uint64(math.MaxUint32) {
		return res, fmt.Errorf("%w: %d lumps", ErrSizeOverflow, len(inputs))
	}

	// Reject bad names before any byte is written.
	for i := range inputs {
		if _, err := padLumpName(inputs[i].Name); err != nil {
			return res, err
		}
	}

	offsets, dirOffset, err := planLayout(inputs)
	if err != nil {
		return res, err
	}

	var header [headerSize]byte
	copy(header[0:4], opts.Kind)
	binary.LittleEndian.PutUint32(header[4:8], uint32(len(inputs)))
	binary.LittleEndian.PutUint32(header[8:12], dirOffset)
	if _, err := w.Write(header[:]); err != nil {
		return res, fmt.Errorf("write header: %w", err)
	}

	var dataSize int64
	for i := range inputs {
		n, err := w.Write(inputs[i].Data)
		dataSize += int64(n)
		if err != nil {
			return res, fmt.Errorf("write lump %q: %w", inputs[i].Name, err)
		}
	}

	for i := range inputs {
		record, err := encodeDirEntry(inputs[i], offsets[i])
		if err != nil {
			return res, err
		}

		if _, err := w.Write(record[:]); err != nil {
			return res, fmt.Errorf("write directory entry %q: %w", inputs[i].Name, err)
		}
	}

	res.LumpCount = len(inputs)
	res.DataSize = dataSize
	res.DirOffset = dirOffset
	return res, nil
}

// WriteFile writes a complete archive to path, replacing any existing file.
func WriteFile(path string, inputs []LumpInput, opts WriteOptions) (WriteResult, error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return WriteResult{}, fmt.Errorf("create WAD file: %w", err)
	}
	defer func() {
		if f != nil {
			_ = f.Close()
		}
	}()

	bw := bufio.NewWriterSize(f, writeBufferSize)
	res, err := Write(bw, inputs, opts)
	if err != nil {
		return WriteResult{}, err
	}

	if err := bw.Flush(); err != nil {
		return WriteResult{}, fmt.Errorf("flush WAD file: %w", err)
	}

	if err := f.Sync(); err != nil {
		return WriteResult{}, fmt.Errorf("sync WAD file: %w", err)
	}

	if err := f.Close(); err != nil {
		return WriteResult{}, fmt.Errorf("close WAD file: %w", err)
	}
	f = nil

	return res, nil
}

// planLayout assigns sequential payload offsets and returns the directory
// offset that follows the payload region.
func planLayout(inputs []LumpInput) ([]uint32, uint32, error) {
	offsets := make([]uint32, len(inputs))
	current := int64(headerSize)

	for i := range inputs {
		offsets[i] = uint32(current) //nolint:gosec // bounded by maxWADData check below

		size := int64(len(inputs[i].Data))
		if size > int64(math.MaxUint32) {
			return nil, 0, fmt.Errorf("%w: lump %q payload", ErrSizeOverflow, inputs[i].Name)
		}

		current += size
		if current >= maxWADData {
			return nil, 0, fmt.Errorf("%w: payload region ends at %d", ErrSizeOverflow, current)
		}
	}

	dirEnd := current + int64(len(inputs))*dirEntrySize
	if dirEnd >= maxWADData {
		return nil, 0, fmt.Errorf("%w: directory ends at %d", ErrSizeOverflow, dirEnd)
	}

	return offsets, uint32(current), nil //nolint:gosec // bounded by maxWADData check above
}

// encodeDirEntry encodes one fixed 16-byte directory record.
func encodeDirEntry(input LumpInput, offset uint32) ([dirEntrySize]byte, error) {
	var record [dirEntrySize]byte

	name, err := padLumpName(input.Name)
	if err != nil {
		return record, err
	}

	binary.LittleEndian.PutUint32(record[0:4], offset)
	binary.LittleEndian.PutUint32(record[4:8], uint32(len(input.Data))) //nolint:gosec // bounded in planLayout
	copy(record[8:dirEntrySize], name[:])

	return record, nil
}
