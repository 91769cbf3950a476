package ppu

// SnesRgb is a color as the hardware stores it: 5 bits per channel.
type SnesRgb struct {
	R, G, B uint8
}

// Rgb24 is a display color, 8 bits per channel.
type Rgb24 struct {
	R, G, B uint8
}

// SaturatingAdd adds two colors channel-wise, clamping each channel to 31.
func (c SnesRgb) SaturatingAdd(o SnesRgb) SnesRgb {
	return SnesRgb{
		R: satAdd5(c.R, o.R),
		G: satAdd5(c.G, o.G),
		B: satAdd5(c.B, o.B),
	}
}

// SaturatingSub subtracts o channel-wise, clamping each channel to 0.
func (c SnesRgb) SaturatingSub(o SnesRgb) SnesRgb {
	return SnesRgb{
		R: satSub5(c.R, o.R),
		G: satSub5(c.G, o.G),
		B: satSub5(c.B, o.B),
	}
}

// Half divides each channel by two, rounding toward zero.
func (c SnesRgb) Half() SnesRgb {
	return SnesRgb{R: c.R >> 1, G: c.G >> 1, B: c.B >> 1}
}

// ToRgb24 expands each 5-bit channel to 8 bits by repeating the top bits
// into the low bits, so that 31 maps to 255 and 0 maps to 0.
func (c SnesRgb) ToRgb24() Rgb24 {
	return Rgb24{
		R: c.R<<3 | c.R>>2,
		G: c.G<<3 | c.G>>2,
		B: c.B<<3 | c.B>>2,
	}
}

func satAdd5(a, b uint8) uint8 {
	s := a + b
	if s > 31 {
		return 31
	}
	return s
}

func satSub5(a, b uint8) uint8 {
	if b > a {
		return 0
	}
	return a - b
}

// lookupColor reads CGRAM entry `index` and unpacks the little-endian
// 0bbbbbgggggrrrrr word into an SnesRgb.
func (p *PPU) lookupColor(index uint16) SnesRgb {
	addr := (index & 0xff) << 1
	word := uint16(p.CGRAM[addr]) | uint16(p.CGRAM[addr+1])<<8
	return SnesRgb{
		R: uint8(word & 0x1f),
		G: uint8(word >> 5 & 0x1f),
		B: uint8(word >> 10 & 0x1f),
	}
}

// backdropColor returns CGRAM[0], the only guaranteed-opaque source.
func (p *PPU) backdropColor() SnesRgb {
	return p.lookupColor(0)
}
