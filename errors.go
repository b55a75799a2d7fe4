// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/wad

package wad

import "errors"

// Sentinel errors for WAD operations. Use errors.Is in callers.
var (
	// ErrTruncated means the source is shorter than the fixed 12-byte WAD header.
	ErrTruncated = errors.New("invalid WAD file: truncated header")
	// ErrMalformed means the header implies a directory outside the file bounds.
	ErrMalformed = errors.New("malformed WAD: directory out of file bounds")
	// ErrLumpNotFound means no lump with the requested name exists.
	ErrLumpNotFound = errors.New("lump not found")
	// ErrIndexOutOfRange means the requested directory index does not exist.
	ErrIndexOutOfRange = errors.New("lump index out of range")
	// ErrLumpOutOfBounds means a lump's stored range exceeds the loaded image.
	ErrLumpOutOfBounds = errors.New("lump data out of file bounds")
	// ErrNilArchive means the archive is nil.
	ErrNilArchive = errors.New("archive is nil")
	// ErrNilReader means the source reader is nil.
	ErrNilReader = errors.New("reader is nil")
	// ErrNilWriter means the writer is nil.
	ErrNilWriter = errors.New("writer is nil")
	// ErrNameTooLong means a lump name exceeds the fixed 8-byte name field.
	ErrNameTooLong = errors.New("lump name exceeds 8 bytes")
	// ErrSizeOverflow means the archive would exceed uint32 offset addressing.
	ErrSizeOverflow = errors.New("size exceeds uint32 WAD limit")
	// ErrInvalidFilterPattern means one or more lump filter rules are invalid.
	ErrInvalidFilterPattern = errors.New("invalid lump filter rules")
	// ErrInvalidExtractPath means a lump name cannot be mapped to an output file.
	ErrInvalidExtractPath = errors.New("invalid extract path")
)
