// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/wad

package wad

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
)

// Archive provides read-only access to a fully loaded WAD file.
//
// The whole file image is held in memory: lump reads are pure slicing with
// no further I/O, at the cost of keeping the archive resident. An Archive is
// immutable after Load returns and is safe for concurrent readers without
// locking. It never retains an open file handle.
type Archive struct {
	// byName maps normalized lump name to directory index; on duplicate
	// names the later entry wins, matching how patch archives shadow lumps.
	byName map[string]int
	// image is the owned byte image of the whole source file.
	image []byte
	// lumps are directory entries in original parse order.
	lumps []Lump
	// header is the parsed fixed 12-byte header.
	header Header
}

// Load reads the WAD file at path and parses its header and directory.
// The underlying file handle is closed before Load returns.
func Load(path string) (*Archive, error) {
	image, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read WAD: %w", err)
	}

	return newArchive(image)
}

// LoadReader reads the whole stream into memory and parses it as a WAD.
func LoadReader(r io.Reader) (*Archive, error) {
	image, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read WAD stream: %w", err)
	}

	return newArchive(image)
}

// LoadBytes parses an in-memory WAD image. The data is copied, so the
// caller's buffer may be reused or mutated after LoadBytes returns.
func LoadBytes(data []byte) (*Archive, error) {
	image := make([]byte, len(data))
	copy(image, data)

	return newArchive(image)
}

// newArchive takes ownership of image and parses it. Any parse failure
// discards all partial work; a half-built archive is never observable.
func newArchive(image []byte) (*Archive, error) {
	header, err := parseHeader(image)
	if err != nil {
		return nil, err
	}

	dirOffset := int64(header.DirOffset)
	dirSize := int64(header.LumpCount) * dirEntrySize
	if dirOffset+dirSize > int64(len(image)) {
		return nil, fmt.Errorf("%w: directory [%d, %d) in %d byte file",
			ErrMalformed, dirOffset, dirOffset+dirSize, len(image))
	}

	lumps := parseDirectory(image[dirOffset:dirOffset+dirSize], int(header.LumpCount))

	byName := make(map[string]int, len(lumps))
	for i := range lumps {
		byName[lumps[i].Name] = i
	}

	return &Archive{
		header: header,
		image:  image,
		lumps:  lumps,
		byName: byName,
	}, nil
}

// parseHeader decodes the fixed 12-byte header at the start of the image.
func parseHeader(image []byte) (Header, error) {
	var header Header
	if len(image) < headerSize {
		return header, fmt.Errorf("%w: %d bytes", ErrTruncated, len(image))
	}

	copy(header.Magic[:], image[0:4])
	header.LumpCount = binary.LittleEndian.Uint32(image[4:8])
	header.DirOffset = binary.LittleEndian.Uint32(image[8:12])

	return header, nil
}

// parseDirectory decodes count fixed 16-byte entries from the directory block.
// The block length is validated by the caller.
func parseDirectory(block []byte, count int) []Lump {
	lumps := make([]Lump, count)
	for i := 0; i < count; i++ {
		record := block[i*dirEntrySize : (i+1)*dirEntrySize]
		lumps[i] = Lump{
			Offset: binary.LittleEndian.Uint32(record[0:4]),
			Size:   binary.LittleEndian.Uint32(record[4:8]),
			Name:   NormalizeLumpName(record[8:dirEntrySize]),
			Index:  i,
		}
	}

	return lumps
}

// Header returns the parsed archive header.
func (a *Archive) Header() Header {
	if a == nil {
		return Header{}
	}

	return a.header
}

// Kind returns the recognized archive kind for the header magic tag.
func (a *Archive) Kind() Kind {
	return a.Header().Kind()
}

// Len returns the number of directory entries.
func (a *Archive) Len() int {
	if a == nil {
		return 0
	}

	return len(a.lumps)
}

// Size returns total loaded image size in bytes.
func (a *Archive) Size() int64 {
	if a == nil {
		return 0
	}

	return int64(len(a.image))
}

// Lumps returns a copy of parsed directory entries in original order.
func (a *Archive) Lumps() []Lump {
	if a == nil {
		return nil
	}

	lumps := make([]Lump, len(a.lumps))
	copy(lumps, a.lumps)
	return lumps
}
