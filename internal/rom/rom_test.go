package rom

import (
	"testing"

	"zephyr-snes/internal/debug"
)

// buildLoROM assembles a 64 KiB LoROM image. The checksum is left invalid;
// detection relies on the title and map mode outscoring the garbage HiROM
// candidate.
func buildLoROM(t *testing.T, title string) []uint8 {
	t.Helper()
	data := make([]uint8, 0x10000)

	h := data[0x7fc0:]
	for i := 0; i < 21; i++ {
		h[i] = ' '
	}
	copy(h, title)
	h[21] = 0x20 // LoROM, SlowROM
	h[23] = 6    // 0x400 << 6 = 64 KiB ROM
	h[24] = 1    // 2 KiB RAM

	return data
}

func testLogger() *debug.Logger {
	return debug.NewLogger(100)
}

// TestLoROMDetection checks that a LoROM header at $7FC0 wins the scoring.
func TestLoROMDetection(t *testing.T) {
	data := buildLoROM(t, "TESTCART")
	r, err := FromBytes(data, testLogger())
	if err != nil {
		t.Fatalf("FromBytes: %v", err)
	}
	if r.Header.Type != LoROM {
		t.Errorf("type = %v, expected LoROM", r.Header.Type)
	}
	if r.Header.Title != "TESTCART" {
		t.Errorf("title = %q, expected TESTCART", r.Header.Title)
	}
	if r.Header.ROMSize != 0x10000 {
		t.Errorf("ROM size = %d, expected 64 KiB", r.Header.ROMSize)
	}
}

// TestHiROMDetection checks that a plausible header at $FFC0 beats a
// garbage one at $7FC0.
func TestHiROMDetection(t *testing.T) {
	data := make([]uint8, 0x10000)
	h := data[0xffc0:]
	for i := 0; i < 21; i++ {
		h[i] = ' '
	}
	copy(h, "HIGH CART")
	h[21] = 0x21 // HiROM
	h[23] = 6

	r, err := FromBytes(data, testLogger())
	if err != nil {
		t.Fatalf("FromBytes: %v", err)
	}
	if r.Header.Type != HiROM {
		t.Errorf("type = %v, expected HiROM", r.Header.Type)
	}
}

// TestSMCHeaderStripped checks that a 512-byte copier header is removed.
func TestSMCHeaderStripped(t *testing.T) {
	data := buildLoROM(t, "SMC")
	withSMC := append(make([]uint8, 512), data...)

	r, err := FromBytes(withSMC, testLogger())
	if err != nil {
		t.Fatalf("FromBytes: %v", err)
	}
	if r.Header.Title != "SMC" {
		t.Errorf("title = %q, expected SMC", r.Header.Title)
	}
}

// TestBadSizeRejected checks that images with a bogus length error out.
func TestBadSizeRejected(t *testing.T) {
	if _, err := FromBytes(make([]uint8, 0x10000+100), testLogger()); err == nil {
		t.Error("expected an error for a misaligned image")
	}
	if _, err := FromBytes(make([]uint8, 1024), testLogger()); err == nil {
		t.Error("expected an error for a tiny image")
	}
}

// TestLoROMMapping checks the bank/address resolution for ROM reads and
// cartridge RAM.
func TestLoROMMapping(t *testing.T) {
	data := buildLoROM(t, "MAP")
	data[0] = 0xaa
	data[0x8000] = 0xbb

	r, err := FromBytes(data, testLogger())
	if err != nil {
		t.Fatalf("FromBytes: %v", err)
	}

	if got := r.Load(0x00, 0x8000); got != 0xaa {
		t.Errorf("$00:8000 = %02X, expected AA", got)
	}
	if got := r.Load(0x01, 0x8000); got != 0xbb {
		t.Errorf("$01:8000 = %02X, expected BB", got)
	}
	// $80+ mirrors the low banks
	if got := r.Load(0x80, 0x8000); got != 0xaa {
		t.Errorf("$80:8000 = %02X, expected AA (mirror)", got)
	}

	// Cartridge RAM in bank $70
	r.Store(0x70, 0x0123, 0x42)
	if got := r.Load(0x70, 0x0123); got != 0x42 {
		t.Errorf("cartridge RAM readback = %02X, expected 42", got)
	}

	// ROM writes are ignored
	r.Store(0x00, 0x8000, 0x99)
	if got := r.Load(0x00, 0x8000); got != 0xaa {
		t.Errorf("ROM modified by a write: %02X", got)
	}
}

// TestUnmappedReadsZero checks the open-bus substitute for unmapped
// addresses.
func TestUnmappedReadsZero(t *testing.T) {
	data := buildLoROM(t, "UNMAPPED")
	r, err := FromBytes(data, testLogger())
	if err != nil {
		t.Fatalf("FromBytes: %v", err)
	}
	if got := r.Load(0x40, 0x0000); got != 0 {
		t.Errorf("unmapped read = %02X, expected 0", got)
	}
}
