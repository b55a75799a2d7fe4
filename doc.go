// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/wad

/*
Package wad provides load, lookup, extract, and write operations for WAD
(Where's All the Data) archives: a 12-byte header, a payload region, and a
directory of fixed 16-byte entries naming byte ranges ("lumps"). Loading
reads the whole file into one owned buffer, so every lump read afterwards is
pure slicing with no further I/O and no retained file handle.

Lump names are at most 8 bytes, right-padded with zeros on disk. Only the
trailing padding run is stripped on parse; leading and interior zero bytes
stay part of the name. Duplicate names are legal in the format and resolve
last-entry-wins on lookup, with positional access for shadowed entries.

# Reading

Load a WAD and read lumps by name or directory index:

	a, err := wad.Load("doom.wad")
	if err != nil {
	    return err
	}
	playpal, err := a.ReadLumpName("PLAYPAL")
	if err != nil {
	    return err
	}
	first, err := a.LumpAt(0)
	if err != nil {
	    return err
	}
	_, _ = playpal, first

Unrecognized magic tags are not rejected by the loader; check the kind when
your caller cares:

	if a.Kind() == wad.KindUnknown {
	    return fmt.Errorf("unexpected magic %q", a.Header().Magic)
	}

For metadata-only scans, use fast helpers that never load the payload:

	header, err := wad.ReadHeader("doom.wad")
	if err != nil {
	    return err
	}
	lumps, err := wad.ListLumps("doom.wad")
	if err != nil {
	    return err
	}
	_, _ = header, lumps

# Extracting

Extract selected lumps to a flat directory (parallel workers); rules use
github.com/woozymasta/pathrules patterns over lump names:

	err := a.Extract(ctx, "out/", wad.ExtractOptions{
	    MaxWorkers: 4,
	    Rules: []pathrules.Rule{
	        {Action: pathrules.ActionInclude, Pattern: "D_*"},
	        {Action: pathrules.ActionInclude, Pattern: "E?M?"},
	    },
	})

# Writing

Write a patch archive from in-memory lumps:

	res, err := wad.WriteFile("patch.wad", []wad.LumpInput{
	    wad.Marker("F_START"),
	    {Name: "FLOOR4_8", Data: flat},
	    wad.Marker("F_END"),
	}, wad.WriteOptions{Kind: wad.KindPWAD})
	_ = res.DirOffset
*/
package wad
