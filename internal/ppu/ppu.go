package ppu

// PPU is the Picture Processing Unit: it composites up to four tiled
// backgrounds and a sprite layer into one pixel per dot, applies window
// masking, color math and brightness, and fills the RGB framebuffer.
//
// It implements the memory.IOHandler interface for the $21xx register
// range.

import (
	"fmt"

	"zephyr-snes/internal/debug"
)

// Display resolution and frame timing (NTSC)
const (
	ScreenWidth  = 256
	ScreenHeight = 224

	DotsPerLine   = 341
	LinesPerFrame = 262

	// VBlank begins on the line after the last visible one
	VBlankStartLine = ScreenHeight
)

// PPU holds the video memories, the register file and the per-scanline
// sprite cache. VRAM, CGRAM and OAM are mutated by the CPU and DMA between
// pixels; within a single rendered pixel they are treated as immutable.
type PPU struct {
	// VRAM (64 KiB): tilemaps and character data
	VRAM [65536]uint8

	// CGRAM (512 bytes): 256 colors x 15-bit little-endian word
	CGRAM [512]uint8

	// OAM (544 bytes): 128 sprite records of 4 bytes, then the 32-byte
	// table with the 9th X bit and size toggle for each sprite
	OAM [544]uint8

	// $2100 INIDISP: forced blank (bit 7) + brightness (bits 0-3)
	inidisp uint8
	// $2101 OBSEL: sprite size pair and name table base
	obsel uint8
	// $2105 BGMODE: mode, BG3 priority, per-BG tile size
	bgmode uint8
	// $2106 MOSAIC
	mosaic uint8
	// $2107-$210A BGnSC: tilemap base and mirroring
	bgsc [4]uint8
	// $210B/$210C: character data base, one nibble per BG
	bg12nba, bg34nba uint8
	// $210D-$2114: 10-bit scroll offsets
	bghofs, bgvofs [4]uint16
	ofsLatch       uint8

	// $2115-$2117: VRAM port
	vmain        uint8
	vmaddr       uint16
	vramPrefetch uint16

	// $2102-$2104: OAM port
	oamaddr     uint16
	oamReload   uint16
	oamWriteLow uint8

	// $2121/$2122: CGRAM port
	cgadd      uint8
	cgLatch    bool
	cgLatchVal uint8

	// $2123-$212B: window configuration
	w12sel, w34sel, wobjsel uint8
	wh                      [4]uint8
	wbglog, wobjlog         uint8

	// $212C-$212F: layer enables and window-mask enables
	tm, ts, tmw, tsw uint8

	// $2130-$2132: color math
	cgwsel, cgadsub              uint8
	coldataR, coldataG, coldataB uint8

	// $2133 SETINI: EXTBG and interlace settings
	setini uint8

	// Current pixel position within the visible area
	x        uint16
	scanline uint16

	// Raw dot/line counters covering blanking periods as well
	dot  int
	line int

	// Latched H/V counters ($2137, $213C/$213D)
	hLatch, vLatch     uint16
	hLatchHi, vLatchHi bool

	// Sprite overflow flags (STAT77)
	rangeOver bool
	timeOver  bool
	// When true, the flags reset at the end of VBlank instead of at the
	// first pixel of the frame
	overflowResetAtVBlankEnd bool

	// Per-scanline sprite cache, rebuilt at x=0
	spriteCache [maxSpritesPerLine]spriteEntry
	spriteCount int

	// Framebuf is the finished frame: 256x224 RGB24, row-major.
	Framebuf [ScreenWidth * ScreenHeight * 3]uint8

	// FrameComplete is set for one Step when the visible frame finishes
	// and VBlank begins.
	FrameComplete bool
	// VBlankFlag mirrors the vertical blanking period.
	VBlankFlag bool
	// NMIPending is raised at VBlank start and cleared by the reader.
	NMIPending bool

	logger *debug.Logger

	warnedColorCount bool
}

// NewPPU creates a PPU. The logger must not be nil.
func NewPPU(logger *debug.Logger) *PPU {
	return &PPU{logger: logger}
}

// Brightness returns the master brightness (0-15).
func (p *PPU) Brightness() uint8 { return p.inidisp & 0x0f }

// ForcedBlank reports whether video output is suppressed entirely.
func (p *PPU) ForcedBlank() bool { return p.inidisp&0x80 != 0 }

// bgMode returns the active BG mode (0-7).
func (p *PPU) bgMode() uint8 { return p.bgmode & 0b111 }

// extbg reports whether the mode 7 EXTBG layer is enabled.
func (p *PPU) extbg() bool { return p.setini&0x40 != 0 }

// SetOverflowReset selects when the sprite overflow flags reset. The
// hardware resets them "at the end of VBlank"; frame start is the simpler
// default and indistinguishable for well-behaved ROMs.
func (p *PPU) SetOverflowReset(atVBlankEnd bool) {
	p.overflowResetAtVBlankEnd = atVBlankEnd
}

func (p *PPU) resetOverflowFlags() {
	p.rangeOver = false
	p.timeOver = false
}

// warnOnce logs the formatted message the first time `flag` trips.
func (p *PPU) warnOnce(flag *bool, c debug.Component, format string, args ...interface{}) {
	if *flag {
		return
	}
	*flag = true
	p.logger.Logf(c, debug.LogLevelWarning, format, args...)
}

// Step advances the PPU by one dot. Visible dots render one pixel into the
// framebuffer; the remaining dots only advance the counters through
// horizontal and vertical blanking.
func (p *PPU) Step() {
	p.FrameComplete = false

	if p.line < int(ScreenHeight) && p.dot < int(ScreenWidth) {
		p.x = uint16(p.dot)
		p.scanline = uint16(p.line)
		rgb := p.RenderPixel()
		i := (p.line*ScreenWidth + p.dot) * 3
		p.Framebuf[i] = rgb.R
		p.Framebuf[i+1] = rgb.G
		p.Framebuf[i+2] = rgb.B
	}

	p.dot++
	if p.dot == DotsPerLine {
		p.dot = 0
		p.line++

		switch p.line {
		case VBlankStartLine:
			p.VBlankFlag = true
			p.NMIPending = true
			p.FrameComplete = true
		case LinesPerFrame:
			p.line = 0
			p.VBlankFlag = false
			if p.overflowResetAtVBlankEnd {
				p.resetOverflowFlags()
			}
		}
	}
}

// RenderFrame renders a full frame into Framebuf without advancing the dot
// clock. Useful for headless rendering and tests; register state is read
// as-is for every pixel.
func (p *PPU) RenderFrame() {
	for y := 0; y < ScreenHeight; y++ {
		for x := 0; x < ScreenWidth; x++ {
			p.x = uint16(x)
			p.scanline = uint16(y)
			rgb := p.RenderPixel()
			i := (y*ScreenWidth + x) * 3
			p.Framebuf[i] = rgb.R
			p.Framebuf[i+1] = rgb.G
			p.Framebuf[i+2] = rgb.B
		}
	}
}

// HCounter returns the current dot position within the scanline.
func (p *PPU) HCounter() uint16 { return uint16(p.dot) }

// VCounter returns the current scanline including blanking lines.
func (p *PPU) VCounter() uint16 { return uint16(p.line) }

// InVBlank reports whether the PPU is in the vertical blanking period.
func (p *PPU) InVBlank() bool { return p.line >= VBlankStartLine }

// InHBlank reports whether the PPU is in the horizontal blanking period.
func (p *PPU) InHBlank() bool { return p.dot >= int(ScreenWidth) }

// TakeNMI consumes a pending VBlank NMI.
func (p *PPU) TakeNMI() bool {
	pending := p.NMIPending
	p.NMIPending = false
	return pending
}

// vramStep returns the word-address increment selected by VMAIN bits 0-1.
func (p *PPU) vramStep() uint16 {
	switch p.vmain & 0b11 {
	case 0:
		return 1
	case 1:
		return 32
	default:
		return 128
	}
}

// vramRemap applies the VMAIN address translation (bits 2-3) to a word
// address.
func (p *PPU) vramRemap(addr uint16) uint16 {
	switch p.vmain >> 2 & 0b11 {
	case 0b01:
		return addr&0xff00 | addr&0x001f<<3 | addr>>5&0x07
	case 0b10:
		return addr&0xfe00 | addr&0x003f<<3 | addr>>6&0x07
	case 0b11:
		return addr&0xfc00 | addr&0x007f<<3 | addr>>7&0x07
	default:
		return addr
	}
}

func (p *PPU) vramPrefetchAt(wordAddr uint16) uint16 {
	byteAddr := wordAddr << 1
	return uint16(p.VRAM[byteAddr&0xffff]) | uint16(p.VRAM[(byteAddr+1)&0xffff])<<8
}

// Write8 handles a write to a PPU register ($2100-$2133).
func (p *PPU) Write8(addr uint16, value uint8) {
	switch addr {
	case 0x2100: // INIDISP
		p.inidisp = value
	case 0x2101: // OBSEL
		p.obsel = value
	case 0x2102: // OAMADDL
		p.oamReload = p.oamReload&0x0100 | uint16(value)
		p.oamaddr = p.oamReload << 1
	case 0x2103: // OAMADDH
		p.oamReload = uint16(value&0x01)<<8 | p.oamReload&0x00ff
		p.oamaddr = p.oamReload << 1
	case 0x2104: // OAMDATA
		p.writeOAMData(value)
	case 0x2105: // BGMODE
		p.bgmode = value
	case 0x2106: // MOSAIC
		p.mosaic = value
	case 0x2107, 0x2108, 0x2109, 0x210a: // BG1SC-BG4SC
		p.bgsc[addr-0x2107] = value
	case 0x210b: // BG12NBA
		p.bg12nba = value
	case 0x210c: // BG34NBA
		p.bg34nba = value
	case 0x210d, 0x210f, 0x2111, 0x2113: // BGnHOFS
		bg := (addr - 0x210d) / 2
		p.bghofs[bg] = (uint16(value)<<8 | uint16(p.ofsLatch)) & 0x3ff
		p.ofsLatch = value
	case 0x210e, 0x2110, 0x2112, 0x2114: // BGnVOFS
		bg := (addr - 0x210e) / 2
		p.bgvofs[bg] = (uint16(value)<<8 | uint16(p.ofsLatch)) & 0x3ff
		p.ofsLatch = value
	case 0x2115: // VMAIN
		p.vmain = value
	case 0x2116: // VMADDL
		p.vmaddr = p.vmaddr&0xff00 | uint16(value)
		p.vramPrefetch = p.vramPrefetchAt(p.vramRemap(p.vmaddr))
	case 0x2117: // VMADDH
		p.vmaddr = uint16(value)<<8 | p.vmaddr&0x00ff
		p.vramPrefetch = p.vramPrefetchAt(p.vramRemap(p.vmaddr))
	case 0x2118: // VMDATAL
		p.VRAM[p.vramRemap(p.vmaddr)<<1&0xffff] = value
		if p.vmain&0x80 == 0 {
			p.vmaddr += p.vramStep()
		}
	case 0x2119: // VMDATAH
		p.VRAM[(p.vramRemap(p.vmaddr)<<1|1)&0xffff] = value
		if p.vmain&0x80 != 0 {
			p.vmaddr += p.vramStep()
		}
	case 0x2121: // CGADD
		p.cgadd = value
		p.cgLatch = false
	case 0x2122: // CGDATA
		if !p.cgLatch {
			p.cgLatchVal = value
			p.cgLatch = true
		} else {
			i := uint16(p.cgadd) << 1
			p.CGRAM[i] = p.cgLatchVal
			p.CGRAM[i+1] = value & 0x7f
			p.cgadd++
			p.cgLatch = false
		}
	case 0x2123: // W12SEL
		p.w12sel = value
	case 0x2124: // W34SEL
		p.w34sel = value
	case 0x2125: // WOBJSEL
		p.wobjsel = value
	case 0x2126, 0x2127, 0x2128, 0x2129: // WH0-WH3
		p.wh[addr-0x2126] = value
	case 0x212a: // WBGLOG
		p.wbglog = value
	case 0x212b: // WOBJLOG
		p.wobjlog = value
	case 0x212c: // TM
		p.tm = value
	case 0x212d: // TS
		p.ts = value
	case 0x212e: // TMW
		p.tmw = value
	case 0x212f: // TSW
		p.tsw = value
	case 0x2130: // CGWSEL
		p.cgwsel = value
	case 0x2131: // CGADSUB
		p.cgadsub = value
	case 0x2132: // COLDATA
		if value&0x20 != 0 {
			p.coldataR = value & 0x1f
		}
		if value&0x40 != 0 {
			p.coldataG = value & 0x1f
		}
		if value&0x80 != 0 {
			p.coldataB = value & 0x1f
		}
	case 0x2133: // SETINI
		p.setini = value
	default:
		p.logger.Logf(debug.ComponentPPU, debug.LogLevelDebug,
			"write to unhandled PPU register $%04X = $%02X", addr, value)
	}
}

// writeOAMData handles the $2104 data port. Writes to the low 512 bytes
// are buffered and committed in pairs; the high table is written directly.
func (p *PPU) writeOAMData(value uint8) {
	addr := p.oamaddr % 544

	if addr < 512 {
		if addr&1 == 0 {
			p.oamWriteLow = value
		} else {
			p.OAM[addr-1] = p.oamWriteLow
			p.OAM[addr] = value
		}
	} else {
		p.OAM[addr] = value
	}

	p.oamaddr = (p.oamaddr + 1) % 1024
}

// Read8 handles a read from a PPU register ($2134-$213F; the write-only
// range reads back as 0).
func (p *PPU) Read8(addr uint16) uint8 {
	switch addr {
	case 0x2137: // SLHV: latch the H/V counters
		p.hLatch = uint16(p.dot)
		p.vLatch = uint16(p.line)
		return 0
	case 0x2138: // OAMDATAREAD
		value := p.OAM[p.oamaddr%544]
		p.oamaddr = (p.oamaddr + 1) % 1024
		return value
	case 0x2139: // VMDATALREAD
		value := uint8(p.vramPrefetch)
		if p.vmain&0x80 == 0 {
			p.vramPrefetch = p.vramPrefetchAt(p.vramRemap(p.vmaddr))
			p.vmaddr += p.vramStep()
		}
		return value
	case 0x213a: // VMDATAHREAD
		value := uint8(p.vramPrefetch >> 8)
		if p.vmain&0x80 != 0 {
			p.vramPrefetch = p.vramPrefetchAt(p.vramRemap(p.vmaddr))
			p.vmaddr += p.vramStep()
		}
		return value
	case 0x213b: // CGDATAREAD
		i := uint16(p.cgadd) << 1
		var value uint8
		if !p.cgLatch {
			value = p.CGRAM[i]
		} else {
			value = p.CGRAM[i+1]
			p.cgadd++
		}
		p.cgLatch = !p.cgLatch
		return value
	case 0x213c: // OPHCT
		if p.hLatchHi {
			p.hLatchHi = false
			return uint8(p.hLatch >> 8 & 1)
		}
		p.hLatchHi = true
		return uint8(p.hLatch)
	case 0x213d: // OPVCT
		if p.vLatchHi {
			p.vLatchHi = false
			return uint8(p.vLatch >> 8 & 1)
		}
		p.vLatchHi = true
		return uint8(p.vLatch)
	case 0x213e: // STAT77: sprite overflow flags + PPU1 version
		var value uint8 = 1
		if p.rangeOver {
			value |= 0x40
		}
		if p.timeOver {
			value |= 0x80
		}
		return value
	case 0x213f: // STAT78: field/version, NTSC
		p.hLatchHi = false
		p.vLatchHi = false
		return 1
	default:
		p.logger.Logf(debug.ComponentPPU, debug.LogLevelDebug,
			"read from unhandled PPU register $%04X", addr)
		return 0
	}
}

// String summarizes the PPU state for the debug panels.
func (p *PPU) String() string {
	return fmt.Sprintf("mode %d, TM %05b, TS %05b, brightness %d, line %d",
		p.bgMode(), p.tm&0x1f, p.ts&0x1f, p.Brightness(), p.line)
}
