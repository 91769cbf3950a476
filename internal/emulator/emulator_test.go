package emulator

import (
	"testing"

	"zephyr-snes/internal/debug"
	"zephyr-snes/internal/rom"
)

// buildTestROM assembles a LoROM image whose code runs at $00:8000.
func buildTestROM(t *testing.T, code []uint8) *rom.ROM {
	t.Helper()
	image := make([]uint8, 0x10000)

	h := image[0x7fc0:]
	for i := 0; i < 21; i++ {
		h[i] = ' '
	}
	copy(h, "EMUTEST")
	h[21] = 0x20
	h[23] = 6

	copy(image, code)
	// Emulation-mode RESET and NMI vectors
	image[0x7ffc] = 0x00
	image[0x7ffd] = 0x80
	image[0x7ffa] = 0x00
	image[0x7ffb] = 0x90

	cart, err := rom.FromBytes(image, debug.NewLogger(100))
	if err != nil {
		t.Fatalf("rom.FromBytes: %v", err)
	}
	return cart
}

func newTestEmulator(t *testing.T, code []uint8) *Emulator {
	t.Helper()
	e := New(buildTestROM(t, code), debug.NewLogger(100))
	e.SetFrameLimit(false)
	e.Start()
	return e
}

// backdropProgram sets full brightness and a red backdrop, then spins.
var backdropProgram = []uint8{
	0x78,             // SEI
	0xa9, 0x0f,       // LDA #$0F
	0x8d, 0x00, 0x21, // STA $2100 (brightness 15)
	0xa9, 0x00,       // LDA #$00
	0x8d, 0x21, 0x21, // STA $2121 (CGADD 0)
	0xa9, 0x1f,       // LDA #$1F
	0x8d, 0x22, 0x21, // STA $2122 (red, low byte)
	0xa9, 0x00,       // LDA #$00
	0x8d, 0x22, 0x21, // STA $2122 (high byte)
	0x4c, 0x15, 0x80, // loop: JMP loop
}

// TestBackdropFrame boots a ROM that paints the backdrop red and checks
// the rendered frame. The first frame races the setup code, so the second
// one is checked.
func TestBackdropFrame(t *testing.T) {
	e := newTestEmulator(t, backdropProgram)

	for i := 0; i < 2; i++ {
		if err := e.RunFrame(); err != nil {
			t.Fatalf("RunFrame: %v", err)
		}
	}

	fb := e.Framebuffer()
	for _, i := range []int{0, len(fb) / 2, len(fb) - 3} {
		if fb[i] != 255 || fb[i+1] != 0 || fb[i+2] != 0 {
			t.Fatalf("pixel at %d = (%d,%d,%d), expected red",
				i, fb[i], fb[i+1], fb[i+2])
		}
	}
}

// TestFrameDeterminism runs two fresh machines on the same ROM and
// compares their frames.
func TestFrameDeterminism(t *testing.T) {
	a := newTestEmulator(t, backdropProgram)
	b := newTestEmulator(t, backdropProgram)

	for i := 0; i < 2; i++ {
		if err := a.RunFrame(); err != nil {
			t.Fatalf("RunFrame: %v", err)
		}
		if err := b.RunFrame(); err != nil {
			t.Fatalf("RunFrame: %v", err)
		}
	}

	fa, fb := a.Framebuffer(), b.Framebuffer()
	for i := range fa {
		if fa[i] != fb[i] {
			t.Fatalf("frames diverge at byte %d: %d vs %d", i, fa[i], fb[i])
		}
	}
}

// nmiCounterProgram enables the VBlank NMI; the handler counts into WRAM
// $0010.
var nmiCounterProgram = []uint8{
	0x78,             // SEI
	0xa9, 0x80,       // LDA #$80
	0x8d, 0x00, 0x42, // STA $4200 (enable NMI)
	0x4c, 0x06, 0x80, // loop: JMP loop
}

// nmiHandler lives at $00:9000 (file offset $1000).
var nmiHandler = []uint8{
	0xe6, 0x10, // INC $10
	0x40,       // RTI
}

// TestNMIDelivery checks that the VBlank NMI reaches the handler once per
// frame. The NMI raised at the end of frame N executes during frame N+1,
// so four frames run the handler three times.
func TestNMIDelivery(t *testing.T) {
	code := make([]uint8, 0x1000+len(nmiHandler))
	copy(code, nmiCounterProgram)
	copy(code[0x1000:], nmiHandler)

	e := newTestEmulator(t, code)

	for i := 0; i < 4; i++ {
		if err := e.RunFrame(); err != nil {
			t.Fatalf("RunFrame: %v", err)
		}
	}

	if got := e.Bus.WRAM[0x10]; got != 3 {
		t.Errorf("NMI handler ran %d times over 4 frames, expected 3", got)
	}
}

// TestSaveStateRoundTrip captures a state, diverges, restores and checks
// the machine renders the original frame again.
func TestSaveStateRoundTrip(t *testing.T) {
	e := newTestEmulator(t, backdropProgram)
	if err := e.RunFrame(); err != nil {
		t.Fatalf("RunFrame: %v", err)
	}

	snapshot, err := e.SaveStateBytes()
	if err != nil {
		t.Fatalf("SaveStateBytes: %v", err)
	}

	// Diverge: repaint the backdrop green through the ports
	e.PPU.Write8(0x2121, 0x00)
	e.PPU.Write8(0x2122, 0xe0)
	e.PPU.Write8(0x2122, 0x03)
	e.PPU.RenderFrame()
	if fb := e.Framebuffer(); fb[0] == 255 {
		t.Fatal("divergence did not take")
	}

	if err := e.LoadStateBytes(snapshot); err != nil {
		t.Fatalf("LoadStateBytes: %v", err)
	}
	e.PPU.RenderFrame()
	fb := e.Framebuffer()
	if fb[0] != 255 || fb[1] != 0 {
		t.Errorf("restored frame starts (%d,%d,%d), expected red", fb[0], fb[1], fb[2])
	}
}

// TestPauseStopsEmulation checks RunFrame is a no-op while paused.
func TestPauseStopsEmulation(t *testing.T) {
	e := newTestEmulator(t, backdropProgram)
	e.Pause()
	cycle := e.Clock.Cycle
	if err := e.RunFrame(); err != nil {
		t.Fatalf("RunFrame: %v", err)
	}
	if e.Clock.Cycle != cycle {
		t.Error("paused emulator advanced the clock")
	}
}
