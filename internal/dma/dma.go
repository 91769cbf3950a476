package dma

// The 8-channel DMA controller: general-purpose transfers between the
// A bus (CPU memory map) and the B bus (PPU registers at $21xx), plus
// per-scanline HDMA table processing.

import (
	"zephyr-snes/internal/debug"
)

// Memory is the DMA engine's view of the system: A-bus accesses route
// through the full memory map, B-bus accesses hit $21xx directly.
type Memory interface {
	Read8(bank uint8, addr uint16) uint8
	Write8(bank uint8, addr uint16, value uint8)
}

// transferPatterns maps the DMAP mode (bits 0-2) to the B-bus address
// offsets of one transfer unit.
var transferPatterns = [8][]uint16{
	{0},
	{0, 1},
	{0, 0},
	{0, 0, 1, 1},
	{0, 1, 2, 3},
	{0, 1, 0, 1},
	{0, 0},
	{0, 0, 1, 1},
}

// Channel is one DMA channel's register file ($43x0-$43xA).
type Channel struct {
	// DMAP: transfer control. Bit 7 = direction (1: B to A), bit 6 =
	// HDMA indirect addressing, bits 3-4 = A-bus step, bits 0-2 = mode.
	Control uint8
	// BBAD: B-bus target ($21xx low byte)
	BTarget uint8
	// A1T: A-bus address and bank
	AAddr uint16
	ABank uint8
	// DAS: byte count for DMA, indirect address for HDMA
	Size uint16
	// DASB: indirect HDMA data bank
	IndirectBank uint8
	// A2A: current HDMA table address
	TableAddr uint16
	// NLTR: HDMA line counter and repeat flag
	LineCounter uint8

	// hdmaDone marks a channel whose table hit the $00 terminator
	hdmaDone bool
	// hdmaDoTransfer mirrors the hardware's per-line transfer latch
	hdmaDoTransfer bool
}

// DMA is the DMA/HDMA controller. It implements the memory.IOHandler
// subset for $420B/$420C and $43xx.
type DMA struct {
	Channels [8]Channel

	// HDMAEN: channels with active HDMA
	hdmaEnabled uint8

	mem    Memory
	logger *debug.Logger
}

// NewDMA creates the controller; attach the bus with SetMemory before use.
func NewDMA(logger *debug.Logger) *DMA {
	return &DMA{logger: logger}
}

// SetMemory attaches the system bus. Split from the constructor because
// the bus and the DMA engine reference each other.
func (d *DMA) SetMemory(mem Memory) { d.mem = mem }

// aStep returns the A-bus address delta per byte: increment, fixed or
// decrement per DMAP bits 3-4.
func (ch *Channel) aStep() uint16 {
	switch ch.Control >> 3 & 0b11 {
	case 0:
		return 1
	case 2:
		return 0xffff
	default:
		return 0
	}
}

// Write8 handles $420B (MDMAEN), $420C (HDMAEN) and the $43xx channel
// registers.
func (d *DMA) Write8(addr uint16, value uint8) {
	switch addr {
	case 0x420b:
		d.runGPDMA(value)
		return
	case 0x420c:
		d.hdmaEnabled = value
		return
	}

	ch := &d.Channels[addr>>4&0x7]
	switch addr & 0x0f {
	case 0x0:
		ch.Control = value
	case 0x1:
		ch.BTarget = value
	case 0x2:
		ch.AAddr = ch.AAddr&0xff00 | uint16(value)
	case 0x3:
		ch.AAddr = uint16(value)<<8 | ch.AAddr&0x00ff
	case 0x4:
		ch.ABank = value
	case 0x5:
		ch.Size = ch.Size&0xff00 | uint16(value)
	case 0x6:
		ch.Size = uint16(value)<<8 | ch.Size&0x00ff
	case 0x7:
		ch.IndirectBank = value
	case 0x8:
		ch.TableAddr = ch.TableAddr&0xff00 | uint16(value)
	case 0x9:
		ch.TableAddr = uint16(value)<<8 | ch.TableAddr&0x00ff
	case 0xa:
		ch.LineCounter = value
	default:
		d.logger.Logf(debug.ComponentDMA, debug.LogLevelDebug,
			"write to unhandled DMA register $%04X", addr)
	}
}

// Read8 reads back the channel registers.
func (d *DMA) Read8(addr uint16) uint8 {
	if addr == 0x420c {
		return d.hdmaEnabled
	}
	ch := &d.Channels[addr>>4&0x7]
	switch addr & 0x0f {
	case 0x0:
		return ch.Control
	case 0x1:
		return ch.BTarget
	case 0x2:
		return uint8(ch.AAddr)
	case 0x3:
		return uint8(ch.AAddr >> 8)
	case 0x4:
		return ch.ABank
	case 0x5:
		return uint8(ch.Size)
	case 0x6:
		return uint8(ch.Size >> 8)
	case 0x7:
		return ch.IndirectBank
	case 0x8:
		return uint8(ch.TableAddr)
	case 0x9:
		return uint8(ch.TableAddr >> 8)
	case 0xa:
		return ch.LineCounter
	}
	return 0
}

// runGPDMA performs the general-purpose transfers for every channel set in
// MDMAEN, lowest channel first.
func (d *DMA) runGPDMA(mask uint8) {
	for i := 0; i < 8; i++ {
		if mask&(1<<i) == 0 {
			continue
		}
		ch := &d.Channels[i]
		pattern := transferPatterns[ch.Control&0x7]
		step := ch.aStep()
		bToA := ch.Control&0x80 != 0

		// A size of 0 means 65536 bytes
		count := int(ch.Size)
		if count == 0 {
			count = 0x10000
		}

		d.logger.Logf(debug.ComponentDMA, debug.LogLevelDebug,
			"DMA%d: %d bytes %s $21%02X, A bus $%02X:%04X",
			i, count, direction(bToA), ch.BTarget, ch.ABank, ch.AAddr)

		unit := 0
		for count > 0 {
			bAddr := 0x2100 + uint16(ch.BTarget) + pattern[unit]
			if bToA {
				d.mem.Write8(ch.ABank, ch.AAddr, d.mem.Read8(0, bAddr))
			} else {
				d.mem.Write8(0, bAddr, d.mem.Read8(ch.ABank, ch.AAddr))
			}
			ch.AAddr += step
			unit = (unit + 1) % len(pattern)
			count--
		}
		ch.Size = 0
	}
}

func direction(bToA bool) string {
	if bToA {
		return "from"
	}
	return "to"
}

// HDMAInit latches the table addresses at the start of a frame.
func (d *DMA) HDMAInit() {
	for i := 0; i < 8; i++ {
		ch := &d.Channels[i]
		ch.hdmaDone = false
		ch.hdmaDoTransfer = false
		if d.hdmaEnabled&(1<<i) == 0 {
			continue
		}
		ch.TableAddr = ch.AAddr
		ch.LineCounter = 0
	}
}

// HDMAStep processes every active channel's table for one scanline. Called
// at the start of each visible line.
func (d *DMA) HDMAStep() {
	for i := 0; i < 8; i++ {
		if d.hdmaEnabled&(1<<i) == 0 {
			continue
		}
		ch := &d.Channels[i]
		if ch.hdmaDone {
			continue
		}

		if ch.LineCounter&0x7f == 0 {
			// Fetch the next table entry; $00 terminates the table
			entry := d.mem.Read8(ch.ABank, ch.TableAddr)
			ch.TableAddr++
			if entry == 0 {
				ch.hdmaDone = true
				continue
			}
			ch.LineCounter = entry
			ch.hdmaDoTransfer = true

			if ch.Control&0x40 != 0 {
				// Indirect: the entry is followed by a pointer to the data
				lo := d.mem.Read8(ch.ABank, ch.TableAddr)
				hi := d.mem.Read8(ch.ABank, ch.TableAddr+1)
				ch.TableAddr += 2
				ch.Size = uint16(lo) | uint16(hi)<<8
			}
		}

		if ch.hdmaDoTransfer {
			d.hdmaTransferUnit(ch)
		}

		ch.LineCounter--
		// With the repeat bit clear, only the first line of the entry
		// transfers; with it set, every line does.
		ch.hdmaDoTransfer = ch.LineCounter&0x80 != 0
		if ch.LineCounter&0x7f == 0 {
			ch.hdmaDoTransfer = false
			ch.LineCounter = 0
		}
	}
}

// State is the serializable controller state. The per-frame HDMA latches
// are rebuilt at the next frame start and are not part of it.
type State struct {
	Channels    [8]Channel
	HDMAEnabled uint8
}

// CaptureState snapshots the channel registers.
func (d *DMA) CaptureState() State {
	return State{Channels: d.Channels, HDMAEnabled: d.hdmaEnabled}
}

// RestoreState applies a snapshot.
func (d *DMA) RestoreState(s State) {
	d.Channels = s.Channels
	d.hdmaEnabled = s.HDMAEnabled
}

// hdmaTransferUnit writes one transfer unit to the B bus.
func (d *DMA) hdmaTransferUnit(ch *Channel) {
	pattern := transferPatterns[ch.Control&0x7]
	for _, off := range pattern {
		var v uint8
		if ch.Control&0x40 != 0 {
			v = d.mem.Read8(ch.IndirectBank, ch.Size)
			ch.Size++
		} else {
			v = d.mem.Read8(ch.ABank, ch.TableAddr)
			ch.TableAddr++
		}
		d.mem.Write8(0, 0x2100+uint16(ch.BTarget)+off, v)
	}
}
