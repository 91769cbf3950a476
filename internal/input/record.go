package input

// Input recording and replay: one little-endian word per joypad per frame,
// behind a small magic header so stale files fail loudly.

import (
	"encoding/binary"
	"fmt"
	"io"
)

var recordMagic = [4]byte{'Z', 'R', 'E', 'C'}

const recordVersion uint16 = 1

// Recorder appends joypad frames to a stream.
type Recorder struct {
	w io.Writer
}

// NewRecorder writes the header and returns a recorder.
func NewRecorder(w io.Writer) (*Recorder, error) {
	if _, err := w.Write(recordMagic[:]); err != nil {
		return nil, fmt.Errorf("input: writing recording header: %w", err)
	}
	if err := binary.Write(w, binary.LittleEndian, recordVersion); err != nil {
		return nil, fmt.Errorf("input: writing recording header: %w", err)
	}
	return &Recorder{w: w}, nil
}

// WriteFrame appends one frame of input.
func (r *Recorder) WriteFrame(p1, p2 uint16) error {
	if err := binary.Write(r.w, binary.LittleEndian, [2]uint16{p1, p2}); err != nil {
		return fmt.Errorf("input: writing recording frame: %w", err)
	}
	return nil
}

// Replayer reads joypad frames from a stream.
type Replayer struct {
	r io.Reader
}

// NewReplayer validates the header and returns a replayer.
func NewReplayer(r io.Reader) (*Replayer, error) {
	var magic [4]byte
	if _, err := io.ReadFull(r, magic[:]); err != nil {
		return nil, fmt.Errorf("input: reading recording header: %w", err)
	}
	if magic != recordMagic {
		return nil, fmt.Errorf("input: not a recording file (magic %q)", magic)
	}
	var version uint16
	if err := binary.Read(r, binary.LittleEndian, &version); err != nil {
		return nil, fmt.Errorf("input: reading recording header: %w", err)
	}
	if version != recordVersion {
		return nil, fmt.Errorf("input: unsupported recording version %d", version)
	}
	return &Replayer{r: r}, nil
}

// ReadFrame returns the next frame; io.EOF ends the replay.
func (r *Replayer) ReadFrame() (p1, p2 uint16, err error) {
	var frame [2]uint16
	if err := binary.Read(r.r, binary.LittleEndian, &frame); err != nil {
		return 0, 0, err
	}
	return frame[0], frame[1], nil
}
