package ppu

// Color math: per-pixel 5-bit saturating add/subtract between the main
// screen pixel and either the subscreen pixel or the fixed color, gated by
// the layer the main pixel came from and by the color window.

// layer identifies where a composited pixel came from.
type layer uint8

const (
	layerBG1 layer = iota
	layerBG2
	layerBG3
	layerBG4
	layerOBJ
	layerBackdrop
)

// colorMathEnabled reports whether color math applies to a main-screen
// pixel from the given layer. Sprite pixels with palette 0-3 are opaque
// and never participate (objOpaque).
func (p *PPU) colorMathEnabled(l layer, objOpaque bool) bool {
	var bit uint8
	switch l {
	case layerBG1:
		bit = 0
	case layerBG2:
		bit = 1
	case layerBG3:
		bit = 2
	case layerBG4:
		bit = 3
	case layerOBJ:
		if objOpaque {
			return false
		}
		bit = 4
	case layerBackdrop:
		bit = 5
	}

	if p.cgadsub&(1<<bit) == 0 {
		return false
	}

	// CGWSEL bits 5-4 gate math through the color window:
	// 00=always, 01=only outside, 10=only inside, 11=never
	inW1, inW2 := p.inWindows()
	inColorWindow := p.colorWindowMask().check(inW1, inW2)
	switch p.cgwsel >> 4 & 0b11 {
	case 0b11:
		return false
	case 0b01:
		return !inColorWindow
	case 0b10:
		return inColorWindow
	default:
		return true
	}
}

// clipColor reports whether the main pixel must be replaced with CGRAM[0]
// before math, per CGWSEL bits 7-6: 00=never, 01=clip outside the color
// window, 10=clip inside, 11=always.
func (p *PPU) clipColor() bool {
	inW1, inW2 := p.inWindows()
	inColorWindow := p.colorWindowMask().check(inW1, inW2)
	switch p.cgwsel >> 6 {
	case 0b11:
		return true
	case 0b01:
		return !inColorWindow
	case 0b10:
		return inColorWindow
	default:
		return false
	}
}

// fixedColor returns the COLDATA color, which doubles as the subscreen's
// backdrop for math purposes.
func (p *PPU) fixedColor() SnesRgb {
	return SnesRgb{R: p.coldataR, G: p.coldataG, B: p.coldataB}
}

// mathOperand fetches the second operand for color math: the fixed color,
// or the subscreen pixel with the fixed color standing in for the
// subscreen's backdrop.
func (p *PPU) mathOperand() SnesRgb {
	if p.cgwsel&0x02 == 0 {
		return p.fixedColor()
	}
	subColor, subLayer, _ := p.getRawPixel(true)
	if subLayer == layerBackdrop {
		return p.fixedColor()
	}
	return subColor
}

// applyColorMath performs the add/subtract selected by CGADSUB. Half math
// (CGADSUB bit 6) divides the result by two, rounding toward zero; it is
// suppressed while the pixel is color-clipped.
func (p *PPU) applyColorMath(main, operand SnesRgb, clipped bool) SnesRgb {
	half := p.cgadsub&0x40 != 0 && !clipped

	var out SnesRgb
	if p.cgadsub&0x80 == 0 {
		if half {
			// The halved sum cannot exceed 31, so no clamping is needed
			out = SnesRgb{
				R: (main.R + operand.R) >> 1,
				G: (main.G + operand.G) >> 1,
				B: (main.B + operand.B) >> 1,
			}
		} else {
			out = main.SaturatingAdd(operand)
		}
	} else {
		out = main.SaturatingSub(operand)
		if half {
			out = out.Half()
		}
	}
	return out
}
