package ppu

// Background layer rendering: tilemap lookup, scrolling, mirroring and
// palette resolution for BG1-BG4.

import (
	"fmt"

	"zephyr-snes/internal/debug"
)

// bgSettings collects the per-layer register state needed to render one
// pixel of a background.
type bgSettings struct {
	// Mosaic pixel size (1-16). 1 = normal pixels. Decoded but the filter
	// itself is not applied yet.
	mosaic uint8
	// Tilemap word address in VRAM. Starting there, the first $800 bytes
	// are tilemap A, then B, then C, then D.
	tilemapWordAddr uint16
	// When true, this BG's tilemaps are mirrored sideways / downwards.
	tilemapMirrorH bool
	tilemapMirrorV bool
	// Either 8 or 16.
	tileSize uint8
	// Character data start address in VRAM (byte address).
	chrAddr uint16
	hscroll uint16
	vscroll uint16
}

// tilemapEntry is an unpacked tilemap word:
//
//	vhopppcc cccccccc (high, low)
//	v/h        = vertical/horizontal flip
//	o          = tile priority
//	ppp        = tile palette base
//	cccccccccc = tile number
type tilemapEntry struct {
	vflip      bool
	hflip      bool
	priority   uint8
	palette    uint8
	tileNumber uint16
}

// bgEnabled reports whether the BG layer (1-4) is enabled on the main or
// sub screen.
func (p *PPU) bgEnabled(bg uint8, subscreen bool) bool {
	reg := p.tm
	if subscreen {
		reg = p.ts
	}
	return reg&(1<<(bg-1)) != 0
}

// tilemapEntryAt reads the tilemap entry at the given VRAM word address.
func (p *PPU) tilemapEntryAt(wordAddr uint16) tilemapEntry {
	byteAddr := wordAddr << 1
	lo := p.VRAM[byteAddr&0xffff]
	hi := p.VRAM[(byteAddr+1)&0xffff]

	return tilemapEntry{
		vflip:      hi&0x80 != 0,
		hflip:      hi&0x40 != 0,
		priority:   hi >> 5 & 1,
		palette:    hi >> 2 & 0x07,
		tileNumber: uint16(hi&0x03)<<8 | uint16(lo),
	}
}

// bgSettingsFor collects the register state of a background layer.
func (p *PPU) bgSettingsFor(bg uint8) bgSettings {
	if bg < 1 || bg > 4 {
		panic(fmt.Sprintf("ppu: BG index %d out of range", bg))
	}

	bgsc := p.bgsc[bg-1]

	var chr uint8
	switch bg {
	case 1:
		chr = p.bg12nba & 0x0f
	case 2:
		chr = p.bg12nba >> 4
	case 3:
		chr = p.bg34nba & 0x0f
	case 4:
		chr = p.bg34nba >> 4
	}

	mosaic := uint8(1)
	if p.mosaic&(1<<(bg-1)) != 0 {
		mosaic = p.mosaic>>4 + 1
	}

	var tileSize uint8
	switch p.bgMode() {
	case 5, 6:
		// Modes 5 and 6 always use 16-pixel wide tiles; mode 7 always
		// uses 8x8 tiles.
		tileSize = 16
	case 7:
		tileSize = 8
	default:
		// BGMODE: 4321---- selects 16x16 tiles per layer
		if p.bgmode&(1<<(bg+3)) == 0 {
			tileSize = 8
		} else {
			tileSize = 16
		}
	}

	return bgSettings{
		mosaic:          mosaic,
		tilemapWordAddr: uint16(bgsc&0xfc) >> 2 << 10,
		// The size bits are stored inverted relative to mirroring: a
		// cleared bit folds that axis back onto screen A.
		tilemapMirrorH: bgsc&0b01 == 0,
		tilemapMirrorV: bgsc&0b10 == 0,
		tileSize:       tileSize,
		chrAddr:        uint16(chr) << 13,
		hscroll:        p.bghofs[bg-1],
		vscroll:        p.bgvofs[bg-1],
	}
}

// colorCountForBG returns the number of colors of the given BG layer in the
// current BG mode (4, 16 or 256).
//
//	Mode    # Colors for BG
//	         1   2   3   4
//	======---=---=---=---=
//	0        4   4   4   4
//	1       16  16   4   -
//	2       16  16   -   -
//	3      256  16   -   -
//	4      256   4   -   -
//	5       16   4   -   -
//	6       16   -   -   -
//	7      256 128*  -   -   (* EXTBG)
func (p *PPU) colorCountForBG(bg uint8) uint16 {
	// Layers each mode has (mode 7's BG2 exists only with EXTBG). Any other
	// mode/layer combination logs once and falls back to 4 colors.
	layers := [8]uint8{4, 3, 2, 2, 2, 2, 1, 2}
	if bg < 1 || bg > layers[p.bgMode()] {
		p.warnOnce(&p.warnedColorCount, debug.ComponentPPU,
			"unknown mode/BG combination (mode %d, BG%d), assuming 4 colors", p.bgMode(), bg)
		return 4
	}

	switch p.bgMode() {
	case 0:
		return 4
	case 1:
		if bg == 3 {
			return 4
		}
		return 16
	case 2:
		return 16
	case 3:
		if bg == 1 {
			return 256
		}
		return 16
	case 4:
		if bg == 1 {
			return 256
		}
		return 4
	case 5:
		if bg == 1 {
			return 16
		}
		return 4
	case 6:
		return 16
	default:
		panic("ppu: mode 7 BG rendering not implemented")
	}
}

// paletteBaseForBGTile calculates the CGRAM base index for a tile in the
// given background layer. `paletteNum` is the 3-bit palette from the
// tilemap entry.
func (p *PPU) paletteBaseForBGTile(bg uint8, paletteNum uint8) uint16 {
	switch p.bgMode() {
	case 0:
		return uint16(paletteNum)*4 + uint16(bg-1)*32
	case 1, 5:
		// These modes never have a 256-color BG
		return uint16(paletteNum) * p.colorCountForBG(bg)
	case 2, 6:
		return uint16(paletteNum) * 16
	case 3:
		if bg == 1 {
			return 0
		}
		return uint16(paletteNum) * 16
	case 4:
		if bg == 1 {
			return 0
		}
		return uint16(paletteNum) * 4
	case 7:
		panic("ppu: mode 7 BG rendering not implemented")
	}
	return uint16(paletteNum) * 4
}

// lookupBGColor looks up the color of the given background layer (1-4) at
// the current pixel, considering only tiles with the given priority (0-1).
// Scrolling and tilemap mirroring are applied here.
//
// Returns ok=false if the layer is disabled, the tile priority doesn't
// match, or the pixel is transparent.
func (p *PPU) lookupBGColor(bg uint8, prio uint8, subscreen bool) (SnesRgb, bool) {
	if !p.bgEnabled(bg, subscreen) {
		return SnesRgb{}, false
	}

	x := p.x
	y := p.scanline
	settings := p.bgSettingsFor(bg)
	ts := uint16(settings.tileSize)

	tileX := (x + settings.hscroll) / ts
	tileY := (y + settings.vscroll) / ts
	offX := uint8((x + settings.hscroll) % ts)
	offY := uint8((y + settings.vscroll) % ts)

	// Fold mirrored axes back onto screen A; otherwise bit 5 of the tile
	// coordinate selects screen B (sideways) / C or D (downwards).
	sx := !settings.tilemapMirrorH
	sy := !settings.tilemapMirrorV

	wordAddr := settings.tilemapWordAddr |
		(tileY&0x1f)<<5 |
		(tileX & 0x1f)
	if sy {
		if sx {
			wordAddr |= (tileY & 0x20) << 6
		} else {
			wordAddr |= (tileY & 0x20) << 5
		}
	}
	if sx {
		wordAddr |= (tileX & 0x20) << 5
	}

	entry := p.tilemapEntryAt(wordAddr)
	if entry.priority != prio {
		return SnesRgb{}, false
	}

	colorCount := p.colorCountForBG(bg)
	if colorCount == 256 && p.cgwsel&0x01 != 0 {
		panic("ppu: direct color mode not implemented")
	}

	// log2(colorCount) bitplanes store one color
	var bitplaneCount uint8
	for c := colorCount - 1; c != 0; c >>= 1 {
		bitplaneCount++
	}

	paletteIndex := p.readChrEntry(bitplaneCount, settings.chrAddr,
		entry.tileNumber, settings.tileSize, offX, offY, entry.vflip, entry.hflip)
	if paletteIndex == 0 {
		return SnesRgb{}, false
	}

	base := p.paletteBaseForBGTile(bg, entry.palette)
	return p.lookupColor(base + uint16(paletteIndex)), true
}
