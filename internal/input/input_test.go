package input

import (
	"bytes"
	"testing"
)

// TestSerialRead checks the strobe/shift protocol: B comes out first,
// exhausted pads read 1.
func TestSerialRead(t *testing.T) {
	in := NewInputSystem()
	in.SetButton(0, ButtonB, true)
	in.SetButton(0, ButtonRight, true)

	in.Write8(0x4016, 1)
	in.Write8(0x4016, 0)

	expected := []uint8{
		1,          // B
		0, 0, 0,    // Y, Select, Start
		0, 0, 0, 1, // Up, Down, Left, Right
		0, 0, 0, 0, // A, X, L, R
		0, 0, 0, 0, // always-zero bits
	}
	for i, want := range expected {
		if got := in.Read8(0x4016); got != want {
			t.Fatalf("bit %d = %d, expected %d", i, got, want)
		}
	}
	if got := in.Read8(0x4016); got != 1 {
		t.Errorf("exhausted pad read %d, expected 1", got)
	}
}

// TestLatchSnapshot checks that the shift register holds the state from
// the strobe, not the live buttons.
func TestLatchSnapshot(t *testing.T) {
	in := NewInputSystem()
	in.SetButton(0, ButtonA, true)
	in.Write8(0x4016, 1)
	in.Write8(0x4016, 0)

	in.SetButton(0, ButtonA, false) // released after the latch

	// A is bit 7, so skip 8 bits to reach it
	for i := 0; i < 8; i++ {
		in.Read8(0x4016)
	}
	if got := in.Read8(0x4016); got != 1 {
		t.Errorf("latched A = %d, expected the pre-release state", got)
	}
}

// TestAutoRead checks the $4218-$421B words.
func TestAutoRead(t *testing.T) {
	in := NewInputSystem()
	in.SetButton(0, ButtonStart, true)
	in.SetButton(1, ButtonL, true)

	if err := in.AutoRead(); err != nil {
		t.Fatalf("AutoRead: %v", err)
	}

	p1 := uint16(in.Read8(0x4218)) | uint16(in.Read8(0x4219))<<8
	p2 := uint16(in.Read8(0x421a)) | uint16(in.Read8(0x421b))<<8
	if p1 != ButtonStart {
		t.Errorf("pad 1 auto-read = $%04X, expected $%04X", p1, ButtonStart)
	}
	if p2 != ButtonL {
		t.Errorf("pad 2 auto-read = $%04X, expected $%04X", p2, ButtonL)
	}
}

// TestRecordReplayRoundTrip records a few frames and replays them into a
// fresh input system.
func TestRecordReplayRoundTrip(t *testing.T) {
	var buf bytes.Buffer

	in := NewInputSystem()
	rec, err := NewRecorder(&buf)
	if err != nil {
		t.Fatalf("NewRecorder: %v", err)
	}
	in.StartRecording(rec)

	frames := []uint16{ButtonB, ButtonB | ButtonRight, 0}
	for _, f := range frames {
		in.Joypads[0].Buttons = f
		if err := in.AutoRead(); err != nil {
			t.Fatalf("AutoRead: %v", err)
		}
	}

	replay, err := NewReplayer(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("NewReplayer: %v", err)
	}
	out := NewInputSystem()
	out.StartReplay(replay)

	for i, expected := range frames {
		if err := out.AutoRead(); err != nil {
			t.Fatalf("AutoRead: %v", err)
		}
		if out.Joypads[0].Buttons != expected {
			t.Errorf("frame %d = $%04X, expected $%04X", i, out.Joypads[0].Buttons, expected)
		}
	}

	// Past the end, the replayer detaches and live input resumes
	if err := out.AutoRead(); err != nil {
		t.Fatalf("AutoRead: %v", err)
	}
	if out.Replaying() {
		t.Error("replayer should detach at end of stream")
	}
}

// TestReplayerRejectsGarbage checks the header validation.
func TestReplayerRejectsGarbage(t *testing.T) {
	if _, err := NewReplayer(bytes.NewReader([]byte("not a recording"))); err == nil {
		t.Error("expected an error for a bad header")
	}
}
