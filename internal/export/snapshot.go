// Package export writes generated maps to disk: PNG previews and the zstd
// snapshot consumed by the terrain builder.
package export

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"

	"toromap/internal/worldgen"
)

// SnapshotVersion is written into every header.
const SnapshotVersion = 1

// ErrBadSnapshot is wrapped when a snapshot cannot be decoded.
var ErrBadSnapshot = errors.New("bad snapshot")

// Header is the JSON line in front of the pixel payload.
type Header struct {
	Version int             `json:"version"`
	Width   int             `json:"width"`
	Height  int             `json:"height"`
	Seed    int64           `json:"seed"`
	Config  worldgen.Config `json:"config"`
}

// HeaderFor describes a generated map.
func HeaderFor(m *worldgen.Map) Header {
	return Header{
		Version: SnapshotVersion,
		Width:   m.Terrain.W,
		Height:  m.Terrain.H,
		Seed:    m.Seed,
		Config:  m.Config,
	}
}

// WriteSnapshot writes a zstd stream holding one JSON header line followed
// by the raw RGBA pixels.
func WriteSnapshot(path string, h Header, pix []byte) (err error) {
	if len(pix) != h.Width*h.Height*4 {
		return fmt.Errorf("snapshot: %d bytes for %dx%d pixels", len(pix), h.Width, h.Height)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return err
	}
	bw := bufio.NewWriterSize(enc, 256*1024)

	hb, err := json.Marshal(h)
	if err != nil {
		enc.Close()
		return fmt.Errorf("snapshot header: %w", err)
	}
	if _, err := bw.Write(hb); err != nil {
		enc.Close()
		return err
	}
	if err := bw.WriteByte('\n'); err != nil {
		enc.Close()
		return err
	}
	if _, err := bw.Write(pix); err != nil {
		enc.Close()
		return err
	}
	if err := bw.Flush(); err != nil {
		enc.Close()
		return err
	}
	return enc.Close()
}

// ReadSnapshot reverses WriteSnapshot.
func ReadSnapshot(path string) (Header, []byte, error) {
	var h Header
	f, err := os.Open(path)
	if err != nil {
		return h, nil, err
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return h, nil, fmt.Errorf("%w: %v", ErrBadSnapshot, err)
	}
	defer dec.Close()

	br := bufio.NewReaderSize(dec, 256*1024)
	line, err := br.ReadBytes('\n')
	if err != nil {
		return h, nil, fmt.Errorf("%w: header: %v", ErrBadSnapshot, err)
	}
	if err := json.Unmarshal(line, &h); err != nil {
		return h, nil, fmt.Errorf("%w: header: %v", ErrBadSnapshot, err)
	}
	if h.Version != SnapshotVersion {
		return h, nil, fmt.Errorf("%w: version %d", ErrBadSnapshot, h.Version)
	}
	if h.Width <= 0 || h.Height <= 0 {
		return h, nil, fmt.Errorf("%w: size %dx%d", ErrBadSnapshot, h.Width, h.Height)
	}

	pix := make([]byte, h.Width*h.Height*4)
	if _, err := io.ReadFull(br, pix); err != nil {
		return h, nil, fmt.Errorf("%w: pixels: %v", ErrBadSnapshot, err)
	}
	if _, err := br.ReadByte(); err != io.EOF {
		return h, nil, fmt.Errorf("%w: trailing data", ErrBadSnapshot)
	}
	return h, pix, nil
}
