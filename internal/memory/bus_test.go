package memory

import (
	"testing"

	"zephyr-snes/internal/debug"
	"zephyr-snes/internal/rom"
)

// stubIO records the last register access.
type stubIO struct {
	lastAddr  uint16
	lastValue uint8
	readValue uint8
}

func (s *stubIO) Read8(addr uint16) uint8 {
	s.lastAddr = addr
	return s.readValue
}

func (s *stubIO) Write8(addr uint16, value uint8) {
	s.lastAddr = addr
	s.lastValue = value
}

type stubStatus struct {
	vblank, hblank, nmi bool
}

func (s *stubStatus) InVBlank() bool { return s.vblank }
func (s *stubStatus) InHBlank() bool { return s.hblank }
func (s *stubStatus) TakeNMI() bool {
	v := s.nmi
	s.nmi = false
	return v
}

func newTestBus(t *testing.T) (*Bus, *stubIO, *stubIO, *stubIO, *stubIO, *stubStatus) {
	t.Helper()
	logger := debug.NewLogger(100)

	image := make([]uint8, 0x10000)
	h := image[0x7fc0:]
	for i := 0; i < 21; i++ {
		h[i] = ' '
	}
	copy(h, "BUSTEST")
	h[21] = 0x20
	h[23] = 6
	image[0x100] = 0xc7 // ROM byte visible at $00:8100

	cart, err := rom.FromBytes(image, logger)
	if err != nil {
		t.Fatalf("rom.FromBytes: %v", err)
	}

	ppu := &stubIO{}
	apu := &stubIO{}
	input := &stubIO{}
	dma := &stubIO{}
	status := &stubStatus{}

	b := NewBus(cart, logger)
	b.PPU = ppu
	b.APU = apu
	b.Input = input
	b.DMA = dma
	b.Status = status
	return b, ppu, apu, input, dma, status
}

// TestWRAMAndMirror checks the 128 KiB WRAM banks and the low mirror in
// the system banks.
func TestWRAMAndMirror(t *testing.T) {
	b, _, _, _, _, _ := newTestBus(t)

	b.Write8(0x7e, 0x1234, 0x99)
	if got := b.Read8(0x7e, 0x1234); got != 0x99 {
		t.Errorf("WRAM readback = $%02X, expected $99", got)
	}

	// Low 8 KiB mirrors into every system bank
	b.Write8(0x00, 0x0042, 0x55)
	if got := b.Read8(0x7e, 0x0042); got != 0x55 {
		t.Errorf("mirror readback via $7E = $%02X, expected $55", got)
	}
	if got := b.Read8(0x80, 0x0042); got != 0x55 {
		t.Errorf("mirror readback via $80 = $%02X, expected $55", got)
	}

	b.Write8(0x7f, 0x0000, 0x77)
	if got := b.Read8(0x7f, 0x0000); got != 0x77 {
		t.Errorf("second WRAM bank = $%02X, expected $77", got)
	}
}

// TestWRAMPort checks the $2180 data port with its 17-bit address.
func TestWRAMPort(t *testing.T) {
	b, _, _, _, _, _ := newTestBus(t)

	b.Write8(0x00, 0x2181, 0x10)
	b.Write8(0x00, 0x2182, 0x00)
	b.Write8(0x00, 0x2183, 0x01) // address $10010
	b.Write8(0x00, 0x2180, 0xab)
	b.Write8(0x00, 0x2180, 0xcd)

	if b.WRAM[0x10010] != 0xab || b.WRAM[0x10011] != 0xcd {
		t.Errorf("WRAM port wrote %02X %02X, expected AB CD",
			b.WRAM[0x10010], b.WRAM[0x10011])
	}

	b.Write8(0x00, 0x2181, 0x10)
	b.Write8(0x00, 0x2182, 0x00)
	b.Write8(0x00, 0x2183, 0x01)
	if got := b.Read8(0x00, 0x2180); got != 0xab {
		t.Errorf("WRAM port read = $%02X, expected $AB", got)
	}
}

// TestIORouting checks that the register blocks reach their handlers.
func TestIORouting(t *testing.T) {
	b, ppu, apu, input, dma, _ := newTestBus(t)

	b.Write8(0x00, 0x2100, 0x0f)
	if ppu.lastAddr != 0x2100 || ppu.lastValue != 0x0f {
		t.Errorf("PPU write went to $%04X=$%02X", ppu.lastAddr, ppu.lastValue)
	}

	// APU ports mirror every 4 bytes
	b.Write8(0x00, 0x2144, 0x22)
	if apu.lastAddr != 0x2140 {
		t.Errorf("APU mirror write went to $%04X, expected $2140", apu.lastAddr)
	}

	b.Write8(0x00, 0x4016, 0x01)
	if input.lastAddr != 0x4016 {
		t.Errorf("joypad latch went to $%04X", input.lastAddr)
	}
	b.Read8(0x00, 0x4218)
	if input.lastAddr != 0x4218 {
		t.Errorf("auto-read access went to $%04X", input.lastAddr)
	}

	b.Write8(0x00, 0x4300, 0x01)
	if dma.lastAddr != 0x4300 {
		t.Errorf("DMA register write went to $%04X", dma.lastAddr)
	}
	b.Write8(0x00, 0x420b, 0xff)
	if dma.lastAddr != 0x420b {
		t.Errorf("MDMAEN write went to $%04X", dma.lastAddr)
	}
}

// TestROMAccess checks the cartridge path through the bus.
func TestROMAccess(t *testing.T) {
	b, _, _, _, _, _ := newTestBus(t)
	if got := b.Read8(0x00, 0x8100); got != 0xc7 {
		t.Errorf("$00:8100 = $%02X, expected $C7", got)
	}
}

// TestInternalStatus checks RDNMI and HVBJOY.
func TestInternalStatus(t *testing.T) {
	b, _, _, _, _, status := newTestBus(t)

	status.vblank = true
	status.hblank = true
	if got := b.Read8(0x00, 0x4212); got&0xc0 != 0xc0 {
		t.Errorf("HVBJOY = $%02X, expected blanking bits", got)
	}

	status.nmi = true
	if got := b.Read8(0x00, 0x4210); got&0x80 == 0 {
		t.Error("RDNMI should report the pending NMI")
	}
	if got := b.Read8(0x00, 0x4210); got&0x80 != 0 {
		t.Error("RDNMI flag should clear on read")
	}
}

// TestMulDiv checks the multiplication/division unit.
func TestMulDiv(t *testing.T) {
	b, _, _, _, _, _ := newTestBus(t)

	b.Write8(0x00, 0x4202, 12)
	b.Write8(0x00, 0x4203, 11)
	product := uint16(b.Read8(0x00, 0x4216)) | uint16(b.Read8(0x00, 0x4217))<<8
	if product != 132 {
		t.Errorf("12*11 = %d, expected 132", product)
	}

	b.Write8(0x00, 0x4204, 0x2c)
	b.Write8(0x00, 0x4205, 0x01) // 300
	b.Write8(0x00, 0x4206, 7)
	quot := uint16(b.Read8(0x00, 0x4214)) | uint16(b.Read8(0x00, 0x4215))<<8
	rem := uint16(b.Read8(0x00, 0x4216)) | uint16(b.Read8(0x00, 0x4217))<<8
	if quot != 42 || rem != 6 {
		t.Errorf("300/7 = %d rem %d, expected 42 rem 6", quot, rem)
	}

	// Division by zero
	b.Write8(0x00, 0x4206, 0)
	if got := uint16(b.Read8(0x00, 0x4214)) | uint16(b.Read8(0x00, 0x4215))<<8; got != 0xffff {
		t.Errorf("div by zero = $%04X, expected $FFFF", got)
	}

	// $4200 NMITIMEN decoding
	b.Write8(0x00, 0x4200, 0x81)
	if !b.NMIEnabled() || !b.AutoJoypadEnabled() {
		t.Error("NMITIMEN bits not decoded")
	}
}
