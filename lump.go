// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/wad

package wad

import (
	"bytes"
	"fmt"
	"io"
)

// nopCloser wraps a reader and provides a no-op close.
type nopCloser struct {
	io.Reader
}

// Close closes nopCloser (no-op).
func (nopCloser) Close() error {
	return nil
}

// Lump resolves a directory entry by exact, case-sensitive normalized name.
// When several entries share one name the last directory entry wins; use
// LumpAt to reach the shadowed ones.
func (a *Archive) Lump(name string) (Lump, error) {
	if a == nil {
		return Lump{}, ErrNilArchive
	}

	i, ok := a.byName[name]
	if !ok {
		return Lump{}, fmt.Errorf("%w: %q", ErrLumpNotFound, name)
	}

	return a.lumps[i], nil
}

// LumpAt resolves a directory entry by its original directory index.
// Positional access is independent of the name map and reaches entries
// that a duplicate name has shadowed.
func (a *Archive) LumpAt(index int) (Lump, error) {
	if a == nil {
		return Lump{}, ErrNilArchive
	}

	if index < 0 || index >= len(a.lumps) {
		return Lump{}, fmt.Errorf("%w: %d of %d", ErrIndexOutOfRange, index, len(a.lumps))
	}

	return a.lumps[index], nil
}

// Has reports whether a lump with the given normalized name exists.
func (a *Archive) Has(name string) bool {
	if a == nil {
		return false
	}

	_, ok := a.byName[name]
	return ok
}

// ReadLump returns the payload bytes for a resolved directory entry.
//
// The stored range is validated here, not at parse time: archives may carry
// unused entries with garbage offsets that are never dereferenced. The
// returned slice is an independent copy and stays valid after the archive
// is released.
func (a *Archive) ReadLump(lump Lump) ([]byte, error) {
	if a == nil {
		return nil, ErrNilArchive
	}

	end := uint64(lump.Offset) + uint64(lump.Size)
	if end > uint64(len(a.image)) {
		return nil, fmt.Errorf("%w: lump %q [%d, %d) in %d byte image",
			ErrLumpOutOfBounds, lump.Name, lump.Offset, end, len(a.image))
	}

	out := make([]byte, lump.Size)
	copy(out, a.image[lump.Offset:end])
	return out, nil
}

// ReadLumpName reads the payload of the named lump in one call.
func (a *Archive) ReadLumpName(name string) ([]byte, error) {
	lump, err := a.Lump(name)
	if err != nil {
		return nil, err
	}

	return a.ReadLump(lump)
}

// OpenLump opens the named lump as a stream. The stream reads from an
// independent copy of the payload.
func (a *Archive) OpenLump(name string) (io.ReadCloser, error) {
	data, err := a.ReadLumpName(name)
	if err != nil {
		return nil, err
	}

	return nopCloser{Reader: bytes.NewReader(data)}, nil
}
