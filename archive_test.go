package wad

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"sync"
	"testing"
)

func TestLump_LastDuplicateWins(t *testing.T) {
	image := buildWAD(t, "PWAD", []manualLump{
		{rawName: []byte("DEMO1"), data: []byte("first")},
		{rawName: []byte("OTHER"), data: []byte("other")},
		{rawName: []byte("DEMO1"), data: []byte("second")},
	})

	a, err := LoadBytes(image)
	if err != nil {
		t.Fatalf("LoadBytes: %v", err)
	}

	lump, err := a.Lump("DEMO1")
	if err != nil {
		t.Fatalf("Lump: %v", err)
	}
	if lump.Index != 2 {
		t.Errorf("Index = %d, want 2 (last duplicate)", lump.Index)
	}

	data, err := a.ReadLump(lump)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "second" {
		t.Errorf("data = %q, want second", data)
	}

	// The shadowed entry stays reachable positionally.
	shadowed, err := a.LumpAt(0)
	if err != nil {
		t.Fatalf("LumpAt: %v", err)
	}
	if shadowed.Name != "DEMO1" || shadowed.Index != 0 {
		t.Errorf("shadowed = %+v", shadowed)
	}

	data, err = a.ReadLump(shadowed)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "first" {
		t.Errorf("shadowed data = %q, want first", data)
	}
}

func TestLump_EmptyNameLookup(t *testing.T) {
	image := buildWAD(t, "IWAD", []manualLump{
		{rawName: nil, data: []byte("nameless")},
	})

	a, err := LoadBytes(image)
	if err != nil {
		t.Fatalf("LoadBytes: %v", err)
	}

	lump, err := a.Lump("")
	if err != nil {
		t.Fatalf("Lump(\"\"): %v", err)
	}

	data, err := a.ReadLump(lump)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "nameless" {
		t.Errorf("data = %q", data)
	}
}

func TestLump_CaseSensitive(t *testing.T) {
	image := buildWAD(t, "IWAD", []manualLump{
		{rawName: []byte("E1M1"), data: []byte("map")},
	})

	a, err := LoadBytes(image)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := a.Lump("e1m1"); !errors.Is(err, ErrLumpNotFound) {
		t.Errorf("lowercase lookup err = %v, want ErrLumpNotFound", err)
	}
	if !a.Has("E1M1") || a.Has("e1m1") {
		t.Error("Has must match exact case only")
	}
}

func TestLump_NotFound(t *testing.T) {
	a, err := LoadBytes(buildWAD(t, "IWAD", nil))
	if err != nil {
		t.Fatal(err)
	}

	if _, err := a.Lump("MISSING"); !errors.Is(err, ErrLumpNotFound) {
		t.Errorf("err = %v, want ErrLumpNotFound", err)
	}
}

func TestLumpAt_OutOfRange(t *testing.T) {
	a, err := LoadBytes(buildWAD(t, "IWAD", []manualLump{
		{rawName: []byte("A"), data: []byte("x")},
	}))
	if err != nil {
		t.Fatal(err)
	}

	for _, index := range []int{-1, 1, 100} {
		if _, err := a.LumpAt(index); !errors.Is(err, ErrIndexOutOfRange) {
			t.Errorf("LumpAt(%d) err = %v, want ErrIndexOutOfRange", index, err)
		}
	}
}

func TestReadLump_ExactSlice(t *testing.T) {
	payloadA := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	payloadB := []byte{9, 10, 11, 12}
	image := buildWAD(t, "TEST", []manualLump{
		{rawName: []byte("A"), data: payloadA},
		{rawName: []byte("B"), data: payloadB},
	})

	a, err := LoadBytes(image)
	if err != nil {
		t.Fatalf("LoadBytes: %v", err)
	}

	gotA, err := a.ReadLumpName("A")
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(gotA, payloadA) {
		t.Errorf("A = % x, want % x", gotA, payloadA)
	}

	gotB, err := a.ReadLumpName("B")
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(gotB, payloadB) {
		t.Errorf("B = % x, want % x", gotB, payloadB)
	}

	// Matches a manual slice of the original image.
	lumpA, _ := a.Lump("A")
	manual := image[lumpA.Offset : lumpA.Offset+lumpA.Size]
	if !bytes.Equal(gotA, manual) {
		t.Errorf("A = % x, manual slice = % x", gotA, manual)
	}
}

func TestReadLump_OutOfBounds(t *testing.T) {
	image := buildWAD(t, "PWAD", []manualLump{
		{rawName: []byte("BAD"), data: []byte("abc")},
	})

	// Corrupt the stored size so the range runs past the image. The archive
	// still loads; only dereferencing the entry fails.
	dirOffset := binary.LittleEndian.Uint32(image[8:12])
	binary.LittleEndian.PutUint32(image[dirOffset+4:dirOffset+8], 0xFFFFFFF0)

	a, err := LoadBytes(image)
	if err != nil {
		t.Fatalf("LoadBytes: %v", err)
	}

	lump, err := a.Lump("BAD")
	if err != nil {
		t.Fatal(err)
	}

	if _, err := a.ReadLump(lump); !errors.Is(err, ErrLumpOutOfBounds) {
		t.Errorf("err = %v, want ErrLumpOutOfBounds", err)
	}
}

func TestReadLump_IndependentCopy(t *testing.T) {
	a, err := LoadBytes(buildWAD(t, "IWAD", []manualLump{
		{rawName: []byte("A"), data: []byte("stable")},
	}))
	if err != nil {
		t.Fatal(err)
	}

	first, err := a.ReadLumpName("A")
	if err != nil {
		t.Fatal(err)
	}
	for i := range first {
		first[i] = '!'
	}

	second, err := a.ReadLumpName("A")
	if err != nil {
		t.Fatal(err)
	}
	if string(second) != "stable" {
		t.Errorf("second read = %q, want stable", second)
	}
}

func TestOpenLump(t *testing.T) {
	a, err := LoadBytes(buildWAD(t, "IWAD", []manualLump{
		{rawName: []byte("A"), data: []byte("stream")},
	}))
	if err != nil {
		t.Fatal(err)
	}

	rc, err := a.OpenLump("A")
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = rc.Close() }()

	data, err := io.ReadAll(rc)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "stream" {
		t.Errorf("data = %q", data)
	}
}

func TestArchive_NilGuards(t *testing.T) {
	var a *Archive

	if _, err := a.Lump("X"); !errors.Is(err, ErrNilArchive) {
		t.Errorf("Lump err = %v, want ErrNilArchive", err)
	}
	if _, err := a.LumpAt(0); !errors.Is(err, ErrNilArchive) {
		t.Errorf("LumpAt err = %v, want ErrNilArchive", err)
	}
	if _, err := a.ReadLump(Lump{}); !errors.Is(err, ErrNilArchive) {
		t.Errorf("ReadLump err = %v, want ErrNilArchive", err)
	}
	if a.Lumps() != nil || a.Len() != 0 || a.Size() != 0 || a.Has("X") {
		t.Error("nil archive accessors must return zero values")
	}
}

func TestArchive_ConcurrentReaders(t *testing.T) {
	t.Parallel()

	a, err := LoadBytes(buildWAD(t, "IWAD", []manualLump{
		{rawName: []byte("A"), data: []byte("aaaa")},
		{rawName: []byte("B"), data: []byte("bbbb")},
	}))
	if err != nil {
		t.Fatal(err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Go(func() {
			for j := 0; j < 100; j++ {
				if _, err := a.ReadLumpName("A"); err != nil {
					t.Errorf("ReadLumpName: %v", err)
					return
				}
				if _, err := a.LumpAt(1); err != nil {
					t.Errorf("LumpAt: %v", err)
					return
				}
			}
		})
	}
	wg.Wait()
}
