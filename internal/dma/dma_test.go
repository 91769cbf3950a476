package dma

import (
	"testing"

	"zephyr-snes/internal/debug"
)

// fakeMemory records B-bus writes and serves A-bus reads from a flat map.
type fakeMemory struct {
	mem    map[uint32]uint8
	writes []write
}

type write struct {
	addr  uint16
	value uint8
}

func newFakeMemory() *fakeMemory {
	return &fakeMemory{mem: make(map[uint32]uint8)}
}

func (m *fakeMemory) Read8(bank uint8, addr uint16) uint8 {
	return m.mem[uint32(bank)<<16|uint32(addr)]
}

func (m *fakeMemory) Write8(bank uint8, addr uint16, value uint8) {
	if bank == 0 && addr >= 0x2100 && addr <= 0x21ff {
		m.writes = append(m.writes, write{addr, value})
	}
	m.mem[uint32(bank)<<16|uint32(addr)] = value
}

func newTestDMA() (*DMA, *fakeMemory) {
	d := NewDMA(debug.NewLogger(100))
	mem := newFakeMemory()
	d.SetMemory(mem)
	return d, mem
}

// TestGPDMAMode0 checks a plain byte stream to a single register.
func TestGPDMAMode0(t *testing.T) {
	d, mem := newTestDMA()

	for i := uint16(0); i < 4; i++ {
		mem.mem[0x7e0000|uint32(0x1000+i)] = uint8(0x10 + i)
	}

	d.Write8(0x4300, 0x00) // mode 0, A to B, increment
	d.Write8(0x4301, 0x18) // target $2118
	d.Write8(0x4302, 0x00)
	d.Write8(0x4303, 0x10) // A addr $1000
	d.Write8(0x4304, 0x7e) // bank $7E
	d.Write8(0x4305, 0x04) // 4 bytes
	d.Write8(0x4306, 0x00)
	d.Write8(0x420b, 0x01)

	if len(mem.writes) != 4 {
		t.Fatalf("%d B-bus writes, expected 4", len(mem.writes))
	}
	for i, w := range mem.writes {
		if w.addr != 0x2118 || w.value != uint8(0x10+i) {
			t.Errorf("write %d = $%02X to $%04X, expected $%02X to $2118",
				i, w.value, w.addr, 0x10+i)
		}
	}
	if d.Channels[0].Size != 0 {
		t.Errorf("size = %d after transfer, expected 0", d.Channels[0].Size)
	}
}

// TestGPDMAMode1 checks the two-register alternating pattern (the VRAM
// word port shape).
func TestGPDMAMode1(t *testing.T) {
	d, mem := newTestDMA()

	for i := uint16(0); i < 4; i++ {
		mem.mem[uint32(0x3000+i)] = uint8(i + 1)
	}

	d.Write8(0x4300, 0x01) // mode 1
	d.Write8(0x4301, 0x18)
	d.Write8(0x4302, 0x00)
	d.Write8(0x4303, 0x30)
	d.Write8(0x4304, 0x00)
	d.Write8(0x4305, 0x04)
	d.Write8(0x420b, 0x01)

	expected := []write{
		{0x2118, 1}, {0x2119, 2}, {0x2118, 3}, {0x2119, 4},
	}
	if len(mem.writes) != len(expected) {
		t.Fatalf("%d writes, expected %d", len(mem.writes), len(expected))
	}
	for i := range expected {
		if mem.writes[i] != expected[i] {
			t.Errorf("write %d = %+v, expected %+v", i, mem.writes[i], expected[i])
		}
	}
}

// TestGPDMAFixedSource checks the fixed A-bus address step used for fills.
func TestGPDMAFixedSource(t *testing.T) {
	d, mem := newTestDMA()
	mem.mem[0x4000] = 0xaa

	d.Write8(0x4300, 0x08) // mode 0, fixed address
	d.Write8(0x4301, 0x22) // CGDATA
	d.Write8(0x4302, 0x00)
	d.Write8(0x4303, 0x40)
	d.Write8(0x4305, 0x03)
	d.Write8(0x420b, 0x01)

	if len(mem.writes) != 3 {
		t.Fatalf("%d writes, expected 3", len(mem.writes))
	}
	for _, w := range mem.writes {
		if w.value != 0xaa {
			t.Errorf("fill wrote $%02X, expected $AA", w.value)
		}
	}
	if d.Channels[0].AAddr != 0x4000 {
		t.Errorf("A addr moved to $%04X with a fixed step", d.Channels[0].AAddr)
	}
}

// TestHDMADirect checks direct-table HDMA: one transfer on the entry line,
// then a terminated table.
func TestHDMADirect(t *testing.T) {
	d, mem := newTestDMA()

	// Table at $00:5000: 1 line, data $42, then terminator
	mem.mem[0x5000] = 0x01
	mem.mem[0x5001] = 0x42
	mem.mem[0x5002] = 0x00

	d.Write8(0x4300, 0x00) // mode 0, direct
	d.Write8(0x4301, 0x00) // $2100
	d.Write8(0x4302, 0x00)
	d.Write8(0x4303, 0x50)
	d.Write8(0x4304, 0x00)
	d.Write8(0x420c, 0x01)

	d.HDMAInit()
	d.HDMAStep() // line 0: entry + transfer
	d.HDMAStep() // line 1: terminator

	if len(mem.writes) != 1 {
		t.Fatalf("%d writes, expected 1", len(mem.writes))
	}
	if mem.writes[0] != (write{0x2100, 0x42}) {
		t.Errorf("write = %+v, expected $42 to $2100", mem.writes[0])
	}
	if !d.Channels[0].hdmaDone {
		t.Error("channel should be done after the terminator")
	}
}

// TestHDMARepeat checks that a repeat entry transfers on every line.
func TestHDMARepeat(t *testing.T) {
	d, mem := newTestDMA()

	// Repeat entry for 3 lines in mode 0 direct: data follows per line
	mem.mem[0x5000] = 0x83
	mem.mem[0x5001] = 0x11
	mem.mem[0x5002] = 0x22
	mem.mem[0x5003] = 0x33
	mem.mem[0x5004] = 0x00

	d.Write8(0x4300, 0x00)
	d.Write8(0x4301, 0x00)
	d.Write8(0x4302, 0x00)
	d.Write8(0x4303, 0x50)
	d.Write8(0x420c, 0x01)

	d.HDMAInit()
	for i := 0; i < 3; i++ {
		d.HDMAStep()
	}

	if len(mem.writes) != 3 {
		t.Fatalf("%d writes, expected 3 (one per line)", len(mem.writes))
	}
	for i, expected := range []uint8{0x11, 0x22, 0x33} {
		if mem.writes[i].value != expected {
			t.Errorf("line %d wrote $%02X, expected $%02X", i, mem.writes[i].value, expected)
		}
	}
}

// TestHDMAIndirect checks indirect tables: the entry points at the data.
func TestHDMAIndirect(t *testing.T) {
	d, mem := newTestDMA()

	mem.mem[0x5000] = 0x01 // 1 line
	mem.mem[0x5001] = 0x00 // pointer $6000
	mem.mem[0x5002] = 0x60
	mem.mem[0x7f6000] = 0x99

	d.Write8(0x4300, 0x40) // mode 0, indirect
	d.Write8(0x4301, 0x21) // CGADD
	d.Write8(0x4302, 0x00)
	d.Write8(0x4303, 0x50)
	d.Write8(0x4307, 0x7f) // indirect bank
	d.Write8(0x420c, 0x01)

	d.HDMAInit()
	d.HDMAStep()

	if len(mem.writes) != 1 || mem.writes[0] != (write{0x2121, 0x99}) {
		t.Fatalf("writes = %+v, expected $99 to $2121", mem.writes)
	}
}
