// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/wad

package wad

import "fmt"

// NormalizeLumpName converts a fixed 8-byte name field to its normalized
// string form: only the trailing run of zero padding bytes is stripped.
// Leading and interior zero bytes are payload and stay in place, so a name
// like "\x00BC" never collapses to the empty string. An all-zero field
// normalizes to "".
func NormalizeLumpName(raw []byte) string {
	end := len(raw)
	for end > 0 && raw[end-1] == 0 {
		end--
	}

	return string(raw[:end])
}

// padLumpName converts a normalized name back to the fixed on-disk field,
// right-padded with zero bytes.
func padLumpName(name string) ([lumpNameSize]byte, error) {
	var field [lumpNameSize]byte
	if len(name) > lumpNameSize {
		return field, fmt.Errorf("%w: %q", ErrNameTooLong, name)
	}

	copy(field[:], name)
	return field, nil
}
