package memory

// The system bus: routes 24-bit CPU addresses to WRAM, the PPU and APU
// registers, the joypad and internal CPU registers, the DMA controller and
// the cartridge. The bus is the single owner of the address map; every
// component hangs off it (a star, not a cycle).

import (
	"zephyr-snes/internal/debug"
	"zephyr-snes/internal/rom"
)

// IOHandler is a memory-mapped register block addressed with the full
// 16-bit bus offset.
type IOHandler interface {
	Read8(addr uint16) uint8
	Write8(addr uint16, value uint8)
}

// StatusSource is the PPU-side state the internal CPU registers expose.
type StatusSource interface {
	InVBlank() bool
	InHBlank() bool
	TakeNMI() bool
}

// Bus is the memory bus.
type Bus struct {
	// WRAM: 128 KiB at $7E/$7F, low 8 KiB mirrored into every system bank
	WRAM [0x20000]uint8

	Cart *rom.ROM

	PPU    IOHandler
	APU    IOHandler
	Input  IOHandler
	DMA    IOHandler
	Status StatusSource

	// $2181-$2183: WRAM data port address
	wmadd uint32

	// $4200 NMITIMEN
	nmitimen uint8

	// $4202-$4206 / $4214-$4217: multiplication and division unit
	wrmpya, wrmpyb uint8
	wrdiv          uint16
	wrdivb         uint8
	rddiv, rdmpy   uint16

	logger *debug.Logger
}

// NewBus creates a bus around a loaded cartridge. The component handlers
// are attached by the emulator before the first access.
func NewBus(cart *rom.ROM, logger *debug.Logger) *Bus {
	return &Bus{Cart: cart, logger: logger}
}

// NMIEnabled reports whether the ROM asked for VBlank NMIs ($4200 bit 7).
func (b *Bus) NMIEnabled() bool { return b.nmitimen&0x80 != 0 }

// AutoJoypadEnabled reports whether joypad auto-read is on ($4200 bit 0).
func (b *Bus) AutoJoypadEnabled() bool { return b.nmitimen&0x01 != 0 }

// Read8 reads one byte from the 24-bit address space.
func (b *Bus) Read8(bank uint8, addr uint16) uint8 {
	switch {
	case bank == 0x7e || bank == 0x7f:
		return b.WRAM[uint32(bank-0x7e)<<16|uint32(addr)]
	case bank&0x7f < 0x40:
		if addr < 0x8000 {
			return b.readSystem(addr, bank)
		}
		return b.Cart.Load(bank, addr)
	default:
		return b.Cart.Load(bank, addr)
	}
}

// Write8 writes one byte to the 24-bit address space.
func (b *Bus) Write8(bank uint8, addr uint16, value uint8) {
	switch {
	case bank == 0x7e || bank == 0x7f:
		b.WRAM[uint32(bank-0x7e)<<16|uint32(addr)] = value
	case bank&0x7f < 0x40:
		if addr < 0x8000 {
			b.writeSystem(addr, bank, value)
			return
		}
		b.Cart.Store(bank, addr, value)
	default:
		b.Cart.Store(bank, addr, value)
	}
}

// readSystem handles the low half of the system banks.
func (b *Bus) readSystem(addr uint16, bank uint8) uint8 {
	switch {
	case addr < 0x2000:
		// Low WRAM mirror
		return b.WRAM[addr]
	case addr >= 0x2100 && addr <= 0x213f:
		return b.PPU.Read8(addr)
	case addr >= 0x2140 && addr <= 0x217f:
		// The four APU ports repeat through the range
		return b.APU.Read8(0x2140 + addr&0x03)
	case addr == 0x2180:
		v := b.WRAM[b.wmadd]
		b.wmadd = (b.wmadd + 1) % uint32(len(b.WRAM))
		return v
	case addr == 0x4016 || addr == 0x4017:
		return b.Input.Read8(addr)
	case addr >= 0x4210 && addr <= 0x4212:
		return b.readInternalStatus(addr)
	case addr == 0x4214:
		return uint8(b.rddiv)
	case addr == 0x4215:
		return uint8(b.rddiv >> 8)
	case addr == 0x4216:
		return uint8(b.rdmpy)
	case addr == 0x4217:
		return uint8(b.rdmpy >> 8)
	case addr >= 0x4218 && addr <= 0x421f:
		return b.Input.Read8(addr)
	case addr >= 0x4300 && addr <= 0x437f, addr == 0x420b, addr == 0x420c:
		return b.DMA.Read8(addr)
	case addr >= 0x6000:
		// HiROM cartridge RAM window
		return b.Cart.Load(bank, addr)
	default:
		b.logger.Logf(debug.ComponentMemory, debug.LogLevelDebug,
			"read from unmapped system address $%02X:%04X", bank, addr)
		return 0
	}
}

// writeSystem handles the low half of the system banks.
func (b *Bus) writeSystem(addr uint16, bank uint8, value uint8) {
	switch {
	case addr < 0x2000:
		b.WRAM[addr] = value
	case addr >= 0x2100 && addr <= 0x213f:
		b.PPU.Write8(addr, value)
	case addr >= 0x2140 && addr <= 0x217f:
		b.APU.Write8(0x2140+addr&0x03, value)
	case addr == 0x2180:
		b.WRAM[b.wmadd] = value
		b.wmadd = (b.wmadd + 1) % uint32(len(b.WRAM))
	case addr == 0x2181:
		b.wmadd = b.wmadd&0x1ff00 | uint32(value)
	case addr == 0x2182:
		b.wmadd = b.wmadd&0x100ff | uint32(value)<<8
	case addr == 0x2183:
		b.wmadd = b.wmadd&0x0ffff | uint32(value&0x01)<<16
	case addr == 0x4016:
		b.Input.Write8(addr, value)
	case addr == 0x4200:
		b.nmitimen = value
	case addr == 0x4202:
		b.wrmpya = value
	case addr == 0x4203:
		b.wrmpyb = value
		b.rdmpy = uint16(b.wrmpya) * uint16(b.wrmpyb)
	case addr == 0x4204:
		b.wrdiv = b.wrdiv&0xff00 | uint16(value)
	case addr == 0x4205:
		b.wrdiv = uint16(value)<<8 | b.wrdiv&0x00ff
	case addr == 0x4206:
		b.wrdivb = value
		if b.wrdivb == 0 {
			b.rddiv = 0xffff
			b.rdmpy = b.wrdiv
		} else {
			b.rddiv = b.wrdiv / uint16(b.wrdivb)
			b.rdmpy = b.wrdiv % uint16(b.wrdivb)
		}
	case addr == 0x420b, addr == 0x420c, addr >= 0x4300 && addr <= 0x437f:
		b.DMA.Write8(addr, value)
	case addr >= 0x4201 && addr <= 0x420d:
		// Remaining internal registers (IRQ timers, memory speed): accepted
		// and ignored
	case addr >= 0x6000:
		b.Cart.Store(bank, addr, value)
	default:
		b.logger.Logf(debug.ComponentMemory, debug.LogLevelDebug,
			"write of $%02X to unmapped system address $%02X:%04X", value, bank, addr)
	}
}

// readInternalStatus serves $4210-$4212.
func (b *Bus) readInternalStatus(addr uint16) uint8 {
	switch addr {
	case 0x4210: // RDNMI: NMI flag + CPU version
		v := uint8(0x02)
		if b.Status.TakeNMI() {
			v |= 0x80
		}
		return v
	case 0x4211: // TIMEUP: IRQ timers are not modeled
		return 0
	default: // $4212 HVBJOY
		var v uint8
		if b.Status.InVBlank() {
			v |= 0x80
		}
		if b.Status.InHBlank() {
			v |= 0x40
		}
		return v
	}
}
