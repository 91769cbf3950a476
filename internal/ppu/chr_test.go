package ppu

import (
	"testing"

	"zephyr-snes/internal/debug"
)

func newTestPPU() *PPU {
	return NewPPU(debug.NewLogger(100))
}

// encodeTile writes an 8x8 tile of palette indices into VRAM at `base` in
// the interleaved bitplane format the PPU decodes.
func encodeTile(p *PPU, base uint16, bitplaneCount uint8, pixels *[8][8]uint8) {
	for pair := uint8(0); pair < bitplaneCount/2; pair++ {
		for y := 0; y < 8; y++ {
			var lo, hi uint8
			for x := 0; x < 8; x++ {
				index := pixels[y][x]
				lo |= (index >> (2 * pair) & 1) << (7 - uint(x))
				hi |= (index >> (2*pair + 1) & 1) << (7 - uint(x))
			}
			p.VRAM[base+uint16(pair)*16+uint16(y)*2] = lo
			p.VRAM[base+uint16(pair)*16+uint16(y)*2+1] = hi
		}
	}
}

// TestBitplaneRoundTrip encodes a tile from known pixel values and checks
// that decoding yields the original pixels, for 2, 4 and 8 bitplanes.
func TestBitplaneRoundTrip(t *testing.T) {
	for _, bpp := range []uint8{2, 4, 8} {
		p := newTestPPU()

		var pixels [8][8]uint8
		for y := 0; y < 8; y++ {
			for x := 0; x < 8; x++ {
				pixels[y][x] = uint8((x*3 + y*5 + x*y) % (1 << bpp))
			}
		}
		encodeTile(p, 0x1000, bpp, &pixels)

		for y := uint8(0); y < 8; y++ {
			for x := uint8(0); x < 8; x++ {
				got := p.readTilePixel(bpp, 0x1000, x, y)
				if got != pixels[y][x] {
					t.Fatalf("%dbpp: pixel (%d,%d) = %d, expected %d",
						bpp, x, y, got, pixels[y][x])
				}
			}
		}
	}
}

// TestTileFlip checks horizontal and vertical flipping of an 8x8 tile.
func TestTileFlip(t *testing.T) {
	p := newTestPPU()

	var pixels [8][8]uint8
	pixels[0][0] = 1
	pixels[7][2] = 3
	encodeTile(p, 0, 2, &pixels)

	if got := p.readChrEntry(2, 0, 0, 8, 0, 0, false, false); got != 1 {
		t.Errorf("unflipped (0,0) = %d, expected 1", got)
	}
	if got := p.readChrEntry(2, 0, 0, 8, 7, 0, false, true); got != 1 {
		t.Errorf("hflip (7,0) = %d, expected 1", got)
	}
	if got := p.readChrEntry(2, 0, 0, 8, 0, 7, true, false); got != 1 {
		t.Errorf("vflip (0,7) = %d, expected 1", got)
	}
	if got := p.readChrEntry(2, 0, 0, 8, 5, 0, true, true); got != 3 {
		t.Errorf("hvflip (5,0) = %d, expected 3", got)
	}
}

// TestLargeTileSubtiles checks that a 16x16 tile is composed of the four
// 8x8 tiles at offsets {0, 1, 16, 17} from the base tile number, selected
// after flipping.
func TestLargeTileSubtiles(t *testing.T) {
	p := newTestPPU()

	solid := func(index uint8) *[8][8]uint8 {
		var pixels [8][8]uint8
		for y := range pixels {
			for x := range pixels[y] {
				pixels[y][x] = index
			}
		}
		return &pixels
	}

	// 4bpp tiles are 32 bytes; base tile number 4
	const chrBase = 0x2000
	encodeTile(p, chrBase+4*32, 4, solid(1))  // top-left
	encodeTile(p, chrBase+5*32, 4, solid(2))  // top-right
	encodeTile(p, chrBase+20*32, 4, solid(3)) // bottom-left
	encodeTile(p, chrBase+21*32, 4, solid(4)) // bottom-right

	quadrants := []struct {
		x, y     uint8
		expected uint8
	}{
		{0, 0, 1}, {15, 0, 2}, {0, 15, 3}, {15, 15, 4},
	}
	for _, q := range quadrants {
		if got := p.readChrEntry(4, chrBase, 4, 16, q.x, q.y, false, false); got != q.expected {
			t.Errorf("16x16 pixel (%d,%d) = %d, expected %d", q.x, q.y, got, q.expected)
		}
	}

	// A horizontal flip mirrors the whole 16x16 tile
	if got := p.readChrEntry(4, chrBase, 4, 16, 0, 0, false, true); got != 2 {
		t.Errorf("hflip 16x16 pixel (0,0) = %d, expected 2", got)
	}
	if got := p.readChrEntry(4, chrBase, 4, 16, 0, 0, true, true); got != 4 {
		t.Errorf("hvflip 16x16 pixel (0,0) = %d, expected 4", got)
	}
}

// TestChrEntryPanics checks the programming-error assertions.
func TestChrEntryPanics(t *testing.T) {
	p := newTestPPU()

	expectPanic := func(name string, f func()) {
		defer func() {
			if recover() == nil {
				t.Errorf("%s: expected panic", name)
			}
		}()
		f()
	}

	expectPanic("odd bitplane count", func() {
		p.readChrEntry(3, 0, 0, 8, 0, 0, false, false)
	})
	expectPanic("invalid tile size", func() {
		p.readChrEntry(2, 0, 0, 12, 0, 0, false, false)
	})
}
