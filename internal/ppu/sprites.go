package ppu

// Sprite (OBJ) rendering. OAM holds 128 sprite records of 4 bytes each,
// plus a 32-byte table packing the 9th X bit and the size-toggle bit for
// every sprite (2 bits per sprite). Sprites always use 8x8 tiles and 16
// colors.

import "zephyr-snes/internal/debug"

// maxSpritesPerLine is the hardware limit on sprites sharing a scanline.
const maxSpritesPerLine = 32

// maxSpriteTilesPerLine is the hardware limit on 8x8 tile fetches per line.
const maxSpriteTilesPerLine = 34

// spriteEntry is one decoded OAM record, cached for the current scanline.
type spriteEntry struct {
	x          int16 // -256..255
	y          uint8
	tile       uint8
	nameSelect bool
	palette    uint8
	priority   uint8
	hflip      bool
	vflip      bool
	width      uint8
	height     uint8
}

// objSize returns the configured sprite size in pixels. If sizeToggle is
// false this is the small size, otherwise the large one (OAM size bit set).
func (p *PPU) objSize(sizeToggle bool) (w, h uint8) {
	switch p.obsel >> 5 & 0b111 {
	case 0b000:
		if !sizeToggle {
			return 8, 8
		}
		return 16, 16
	case 0b001:
		if !sizeToggle {
			return 8, 8
		}
		return 32, 32
	case 0b010:
		if !sizeToggle {
			return 8, 8
		}
		return 64, 64
	case 0b011:
		if !sizeToggle {
			return 16, 16
		}
		return 32, 32
	case 0b100:
		if !sizeToggle {
			return 16, 16
		}
		return 64, 64
	case 0b101:
		if !sizeToggle {
			return 32, 32
		}
		return 64, 64
	case 0b110:
		if !sizeToggle {
			return 16, 32
		}
		return 32, 64
	default: // 0b111
		if !sizeToggle {
			return 16, 32
		}
		return 32, 32
	}
}

// collectSpriteData scans all 128 OAM entries and caches those overlapping
// the current scanline, up to the hardware limit of 32. More than 32 sets
// the range-over flag; more than 34 tiles worth of pixels sets the
// time-over flag. Both are sticky until the next overflow reset.
func (p *PPU) collectSpriteData() {
	p.spriteCount = 0
	tiles := 0

	for i := 0; i < 128; i++ {
		base := i * 4
		// 2 bits per sprite in the high OAM table: bit 0 = 9th X bit,
		// bit 1 = size toggle
		aux := p.OAM[512+i/4] >> (uint(i%4) * 2)
		sizeToggle := aux&0b10 != 0
		w, h := p.objSize(sizeToggle)

		y := p.OAM[base+1]
		// Y wraps mod 256
		dy := uint8(p.scanline) - y
		if dy >= h {
			continue
		}

		if p.spriteCount == maxSpritesPerLine {
			p.rangeOver = true
			break
		}

		x := int16(p.OAM[base])
		if aux&0b01 != 0 {
			x -= 256
		}

		flags := p.OAM[base+3]
		p.spriteCache[p.spriteCount] = spriteEntry{
			x:          x,
			y:          y,
			tile:       p.OAM[base+2],
			nameSelect: flags&0x01 != 0,
			palette:    flags >> 1 & 0x07,
			priority:   flags >> 4 & 0x03,
			hflip:      flags&0x40 != 0,
			vflip:      flags&0x80 != 0,
			width:      w,
			height:     h,
		}
		p.spriteCount++
		tiles += int(w / 8)
	}

	if tiles > maxSpriteTilesPerLine {
		p.timeOver = true
		p.logger.Logf(debug.ComponentPPU, debug.LogLevelDebug,
			"sprite time overflow on line %d (%d tiles)", p.scanline, tiles)
	}
}

// objChrAddr returns the VRAM byte address of the 8x8 character `tile` in
// the sprite name tables selected by OBSEL.
func (p *PPU) objChrAddr(tile uint8, nameSelect bool) uint16 {
	// OBSEL: sssnnbbb - bbb selects the name base in 16 KiB steps, nn the
	// gap to the second tile page (name select), sss the size pair.
	addr := uint16(p.obsel&0b111) << 14
	if nameSelect {
		addr += (uint16(p.obsel>>3&0b11) + 1) << 13
	}
	return addr + uint16(tile)*32
}

// maybeDrawSpritePixel looks up the sprite pixel at the current position,
// considering only sprites with the given priority (0-3). Within the line
// cache, sprites later in OAM take precedence over earlier ones, matching
// the hardware's back-to-front line fill.
//
// Returns the color, whether the sprite is opaque for color math purposes
// (palettes 0-3 never participate), and whether a pixel was found.
func (p *PPU) maybeDrawSpritePixel(prio uint8, subscreen bool) (rgb SnesRgb, opaque bool, ok bool) {
	enableReg := p.tm
	if subscreen {
		enableReg = p.ts
	}
	if enableReg&0x10 == 0 {
		return SnesRgb{}, false, false
	}

	for i := p.spriteCount - 1; i >= 0; i-- {
		entry := &p.spriteCache[i]
		if entry.priority != prio {
			continue
		}

		dx := int16(p.x) - entry.x
		if dx < 0 || dx >= int16(entry.width) {
			continue
		}
		dy := uint8(p.scanline) - entry.y

		fx := uint8(dx)
		fy := dy
		if entry.hflip {
			fx = entry.width - 1 - fx
		}
		if entry.vflip {
			fy = entry.height - 1 - fy
		}

		// Resolve the 8x8 tile within the sprite. Tile numbers live in a
		// 16x16 grid where each nibble wraps independently.
		tileCol := (entry.tile + fx>>3) & 0x0f
		tileRow := (entry.tile>>4 + fy>>3) & 0x0f
		tile := tileRow<<4 | tileCol

		// Sprites are always 4bpp
		index := p.readTilePixel(4, p.objChrAddr(tile, entry.nameSelect), fx&7, fy&7)
		if index == 0 {
			continue
		}

		base := 128 + uint16(entry.palette)*16
		return p.lookupColor(base + uint16(index)), entry.palette < 4, true
	}

	return SnesRgb{}, false, false
}
