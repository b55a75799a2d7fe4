// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/wad

package wad

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
)

// extractWorkItem stores one selected lump with its prepared output file name.
type extractWorkItem struct {
	fileName string
	lump     Lump
}

// reservedDeviceNames contains case-insensitive reserved DOS/Windows device
// names that cannot be used as plain output file names.
var reservedDeviceNames = map[string]struct{}{
	"aux": {}, "con": {}, "nul": {}, "prn": {},
	"com1": {}, "com2": {}, "com3": {}, "com4": {}, "com5": {},
	"com6": {}, "com7": {}, "com8": {}, "com9": {},
	"lpt1": {}, "lpt2": {}, "lpt3": {}, "lpt4": {}, "lpt5": {},
	"lpt6": {}, "lpt7": {}, "lpt8": {}, "lpt9": {},
}

// Extract writes selected lumps from the archive to dstDir, one flat file per
// lump. Extraction is parallelized by MaxWorkers; on failure it returns the
// first encountered error.
//
// Lumps sharing one output file name collapse to the highest directory index,
// matching by-name lookup semantics. Zero-size marker lumps and lumps with
// empty names are skipped unless IncludeEmpty is set.
func (a *Archive) Extract(ctx context.Context, dstDir string, opts ExtractOptions) error {
	if a == nil {
		return ErrNilArchive
	}

	opts.applyDefaults()

	workers := opts.MaxWorkers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers < 1 {
		workers = 1
	}

	lumps := a.lumps
	if opts.Lumps != nil {
		lumps = opts.Lumps
	}

	lumps, err := FilterLumps(lumps, opts.Rules, opts.MatcherOptions)
	if err != nil {
		return err
	}

	workItems, err := prepareExtractWorkItems(lumps, opts.IncludeEmpty)
	if err != nil {
		return err
	}

	if len(workItems) == 0 {
		return nil
	}

	dstRootAbs, err := filepath.Abs(dstDir)
	if err != nil {
		return fmt.Errorf("resolve output dir: %w", err)
	}

	if err := os.MkdirAll(dstRootAbs, 0o750); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	taskCh := make(chan extractWorkItem, len(workItems))
	errCh := make(chan error, len(workItems))
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Go(func() {
			for task := range taskCh {
				err := a.extractPreparedLump(ctx, dstRootAbs, task, opts.FileMode, opts.OnLumpDone)
				select {
				case errCh <- err:
				case <-ctx.Done():
					return
				}
			}
		})
	}

	for _, task := range workItems {
		select {
		case <-ctx.Done():
			close(taskCh)
			wg.Wait()
			return ctx.Err()
		case taskCh <- task:
		}
	}

	close(taskCh)
	wg.Wait()
	close(errCh)

	var first error
	for err := range errCh {
		if err != nil && first == nil {
			first = err
		}
	}

	return first
}

// prepareExtractWorkItems maps selected lumps to unique output file names.
// A repeated output name keeps only the entry with the highest directory
// index, so two workers never race on one path.
func prepareExtractWorkItems(lumps []Lump, includeEmpty bool) ([]extractWorkItem, error) {
	workItems := make([]extractWorkItem, 0, len(lumps))
	slotByName := make(map[string]int, len(lumps))

	for _, lump := range lumps {
		if !includeEmpty && (lump.Name == "" || lump.IsMarker()) {
			continue
		}

		fileName, err := sanitizeLumpFileName(lump.Name, lump.Index)
		if err != nil {
			return nil, err
		}

		if slot, exists := slotByName[fileName]; exists {
			if lump.Index > workItems[slot].lump.Index {
				workItems[slot].lump = lump
			}

			continue
		}

		slotByName[fileName] = len(workItems)
		workItems = append(workItems, extractWorkItem{fileName: fileName, lump: lump})
	}

	return workItems, nil
}

// sanitizeLumpFileName converts a lump name to a filesystem-safe flat file
// name. Bytes outside the portable set are rewritten to '_', reserved device
// names get a '_' prefix, and nameless lumps fall back to LUMP<index>.
func sanitizeLumpFileName(name string, index int) (string, error) {
	if index < 0 {
		return "", fmt.Errorf("%w: negative lump index %d", ErrInvalidExtractPath, index)
	}

	if name == "" {
		return fmt.Sprintf("LUMP%05d", index), nil
	}

	out := make([]byte, len(name))
	for i := 0; i < len(name); i++ {
		out[i] = sanitizeFileNameByte(name[i])
	}

	fileName := string(out)
	if _, reserved := reservedDeviceNames[strings.ToLower(fileName)]; reserved {
		fileName = "_" + fileName
	}

	return fileName, nil
}

// sanitizeFileNameByte maps one name byte to its filesystem-safe form.
func sanitizeFileNameByte(b byte) byte {
	switch {
	case b >= 'A' && b <= 'Z', b >= 'a' && b <= 'z', b >= '0' && b <= '9':
		return b
	case b == '_' || b == '-' || b == '[' || b == ']':
		return b
	default:
		return '_'
	}
}

// extractPreparedLump writes one prepared work item to destination root.
func (a *Archive) extractPreparedLump(
	ctx context.Context,
	dstRootAbs string,
	task extractWorkItem,
	fileMode ExtractFileMode,
	onLumpDone func(lump Lump, written int64, outputPath string),
) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	data, err := a.ReadLump(task.lump)
	if err != nil {
		return err
	}

	outPath := filepath.Join(dstRootAbs, task.fileName)
	file, needsTruncate, err := openExtractFile(outPath, fileMode, int64(len(data)))
	if err != nil {
		return fmt.Errorf("open %s: %w", task.fileName, err)
	}

	written, writeErr := file.Write(data)
	if writeErr == nil && needsTruncate {
		if truncErr := file.Truncate(int64(written)); truncErr != nil {
			_ = file.Close()
			return fmt.Errorf("truncate %s: %w", task.fileName, truncErr)
		}
	}

	closeErr := file.Close()
	if writeErr != nil {
		return fmt.Errorf("write %s: %w", task.fileName, writeErr)
	}

	if closeErr != nil {
		return fmt.Errorf("close %s: %w", task.fileName, closeErr)
	}

	if onLumpDone != nil {
		onLumpDone(task.lump, int64(written), outPath)
	}

	return nil
}

// openExtractFile opens output path according to selected extract file mode.
func openExtractFile(path string, mode ExtractFileMode, expectedSize int64) (*os.File, bool, error) {
	switch mode {
	case ExtractFileModeAuto:
		file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
		if err == nil {
			return file, false, nil
		}

		if !os.IsExist(err) {
			return nil, false, err
		}

		file, truncErr := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
		return file, false, truncErr
	case ExtractFileModeOverwriteSmart:
		file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE, 0o600)
		if err != nil {
			return nil, false, err
		}

		info, err := file.Stat()
		if err != nil {
			_ = file.Close()
			return nil, false, err
		}

		needsTruncate := info.Size() > expectedSize
		return file, needsTruncate, nil
	case ExtractFileModeTruncate:
		file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
		return file, false, err
	case ExtractFileModeCreateOnly:
		file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
		return file, false, err
	default:
		return nil, false, fmt.Errorf("unknown extract file mode %q", mode)
	}
}
