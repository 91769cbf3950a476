package ppu

// Character (tile) data decoding.
//
// Tiles store color indices in bitplanes: each bitplane holds 1 bit per
// pixel, and two bitplanes are interleaved byte-per-row (bitplane 0 in the
// even bytes, bitplane 1 in the odd bytes). A 4bpp tile is two such pairs,
// 16 bytes apart; an 8bpp tile is four.

import "fmt"

// readTwoBitplanes reads 2 bits of the given coordinate from a pair of
// interleaved bitplanes starting at `start` (byte address in VRAM).
// Bit 7 of each byte is the left-most pixel (x = 0).
func (p *PPU) readTwoBitplanes(start uint16, x, y uint8) uint8 {
	lo := p.VRAM[(start+uint16(y)*2)&0xffff]
	hi := p.VRAM[(start+uint16(y)*2+1)&0xffff]
	b0 := lo >> (7 - x) & 1
	b1 := hi >> (7 - x) & 1
	return b1<<1 | b0
}

// readTilePixel decodes the palette index of one pixel of an 8x8 tile whose
// character data starts at `start` (byte address). `(x, y)` must already be
// flip-adjusted and in 0-7.
func (p *PPU) readTilePixel(bitplaneCount uint8, start uint16, x, y uint8) uint8 {
	var index uint8
	for i := uint8(0); i < bitplaneCount>>1; i++ {
		// 16 bytes per pair of bitplanes
		bits := p.readTwoBitplanes(start+uint16(i)*16, x, y)
		index |= bits << (2 * i)
	}
	return index
}

// readChrEntry decodes the palette index for one pixel of a tile.
//
// `tileNumber` indexes 8x8 tiles of `bitplaneCount*8` bytes each, starting
// at byte address `chrBase`. `(x, y)` is the offset inside the tile before
// flipping. 16x16 tiles are composed of the four 8x8 tiles at offsets
// {0, 1, 16, 17} from the base tile number; the sub-tile is selected after
// the flip is applied, so a flipped 16x16 tile mirrors as a whole.
func (p *PPU) readChrEntry(bitplaneCount uint8, chrBase uint16, tileNumber uint16, tileSize uint8, x, y uint8, vflip, hflip bool) uint8 {
	if bitplaneCount&1 != 0 || bitplaneCount == 0 || bitplaneCount > 8 {
		panic(fmt.Sprintf("ppu: invalid bitplane count %d", bitplaneCount))
	}
	if tileSize != 8 && tileSize != 16 {
		panic(fmt.Sprintf("ppu: invalid tile size %d", tileSize))
	}

	if hflip {
		x = tileSize - 1 - x
	}
	if vflip {
		y = tileSize - 1 - y
	}

	if tileSize == 16 {
		tileNumber = (tileNumber + uint16(x>>3) + uint16(y>>3)*16) & 0x3ff
		x &= 7
		y &= 7
	}

	start := chrBase + tileNumber*8*uint16(bitplaneCount)
	return p.readTilePixel(bitplaneCount, start, x, y)
}
