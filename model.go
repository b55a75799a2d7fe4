// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/wad

package wad

import "github.com/woozymasta/pathrules"

// Internal binary layout and format limits.
const (
	headerSize   = 12      // fixed WAD header size in bytes
	dirEntrySize = 16      // fixed directory entry size in bytes
	lumpNameSize = 8       // fixed lump name field size in bytes
	maxWADData   = 1 << 32 // max addressable file size (uint32 offsets)
)

// Kind is the archive flavor derived from the 4-byte magic tag.
type Kind string

// Recognized archive kinds.
const (
	// KindIWAD marks a complete, self-contained archive ("IWAD").
	KindIWAD Kind = "IWAD"
	// KindPWAD marks a patch archive meant to be merged onto a base ("PWAD").
	KindPWAD Kind = "PWAD"
	// KindUnknown marks any unrecognized magic tag.
	KindUnknown Kind = ""
)

// Header is the parsed fixed 12-byte record at the start of a WAD file.
type Header struct {
	// Magic is the raw 4-byte tag exactly as stored on disk.
	Magic [4]byte `json:"magic" yaml:"magic"`
	// LumpCount is the number of directory entries.
	LumpCount uint32 `json:"lump_count" yaml:"lump_count"`
	// DirOffset is the byte offset of the directory from the start of the file.
	DirOffset uint32 `json:"dir_offset" yaml:"dir_offset"`
}

// Kind maps the magic tag to a recognized archive kind.
// Unrecognized tags yield KindUnknown; rejecting them is caller policy,
// the loader itself accepts any tag.
func (h Header) Kind() Kind {
	switch string(h.Magic[:]) {
	case string(KindIWAD):
		return KindIWAD
	case string(KindPWAD):
		return KindPWAD
	default:
		return KindUnknown
	}
}

// Lump describes a single parsed directory entry.
type Lump struct {
	// Name is the normalized lump name: the stored 8-byte field with only
	// the trailing run of zero bytes stripped. May be empty.
	Name string `json:"name" yaml:"name"`
	// Offset is the byte offset of the lump payload within the file.
	Offset uint32 `json:"offset" yaml:"offset"`
	// Size is the payload size in bytes.
	Size uint32 `json:"size" yaml:"size"`
	// Index is the position of this entry in original directory order.
	Index int `json:"index" yaml:"index"`
}

// IsMarker reports whether the lump is a zero-size marker entry
// (section delimiters like F_START/F_END carry no payload).
func (l *Lump) IsMarker() bool {
	return l.Size == 0
}

// ExtractFileMode controls output file open behavior during extraction.
type ExtractFileMode string

// Output file creation policies for extraction.
const (
	// ExtractFileModeAuto first tries create-only, then falls back to truncate for existing files.
	ExtractFileModeAuto ExtractFileMode = "auto"
	// ExtractFileModeOverwriteSmart rewrites files in place and truncates only when existing file is larger.
	ExtractFileModeOverwriteSmart ExtractFileMode = "overwrite_smart"
	// ExtractFileModeTruncate opens existing files with truncate and creates missing files.
	ExtractFileModeTruncate ExtractFileMode = "truncate"
	// ExtractFileModeCreateOnly creates files only when absent and fails on existing files.
	ExtractFileModeCreateOnly ExtractFileMode = "create_only"
)

// ExtractOptions configures Extract behavior.
type ExtractOptions struct {
	// OnLumpDone is called after one lump is fully written to disk.
	OnLumpDone func(lump Lump, written int64, outputPath string) `json:"-" yaml:"-"`
	// Rules select which lumps are extracted; empty means all lumps.
	Rules []pathrules.Rule `json:"rules,omitempty" yaml:"rules,omitempty"`
	// MatcherOptions control rule matching for Rules.
	MatcherOptions pathrules.MatcherOptions `json:"matcher_options,omitzero" yaml:"matcher_options,omitzero"`
	// Lumps limits extraction to a selected metadata list; nil means all parsed lumps.
	Lumps []Lump `json:"-" yaml:"-"`
	// FileMode controls output file creation policy.
	FileMode ExtractFileMode `json:"file_mode,omitempty" yaml:"file_mode,omitempty"`
	// MaxWorkers is number of extraction workers (zero means GOMAXPROCS).
	MaxWorkers int `json:"max_workers,omitempty" yaml:"max_workers,omitempty"`
	// IncludeEmpty also extracts zero-size marker lumps and lumps with empty
	// names as empty files. Skipped by default.
	IncludeEmpty bool `json:"include_empty,omitempty" yaml:"include_empty,omitempty"`
}

// WriteOptions configures archive writing.
type WriteOptions struct {
	// Kind selects the magic tag for the written archive.
	// Default is KindPWAD.
	Kind Kind `json:"kind,omitempty" yaml:"kind,omitempty"`
}

// WriteResult contains write output statistics.
type WriteResult struct {
	// LumpCount is number of directory entries written.
	LumpCount int `json:"lump_count" yaml:"lump_count"`
	// DataSize is total payload bytes written.
	DataSize int64 `json:"data_size" yaml:"data_size"`
	// DirOffset is the directory offset recorded in the header.
	DirOffset uint32 `json:"dir_offset" yaml:"dir_offset"`
}

// applyDefaults fills zero-valued extract options with defaults.
func (opts *ExtractOptions) applyDefaults() {
	if opts.FileMode == "" {
		opts.FileMode = ExtractFileModeAuto
	}

	if opts.MatcherOptions == (pathrules.MatcherOptions{}) {
		opts.MatcherOptions = pathrules.MatcherOptions{
			CaseInsensitive: true,
			DefaultAction:   pathrules.ActionExclude,
		}
	}

	if opts.MatcherOptions.DefaultAction == pathrules.ActionUnknown {
		opts.MatcherOptions.DefaultAction = pathrules.ActionExclude
	}
}

// applyDefaults fills zero-valued write options with defaults.
func (opts *WriteOptions) applyDefaults() {
	if opts.Kind == "" {
		opts.Kind = KindPWAD
	}
}
