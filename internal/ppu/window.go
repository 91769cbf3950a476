package ppu

// The window system: two horizontal x-ranges (W1 = [wh0, wh1), W2 =
// [wh2, wh3)) that every layer, plus the color math unit, can combine into
// a per-pixel mask. Each of the six masks unpacks 4 bits
// {W2-enable, W2-invert, W1-enable, W1-invert} from a W??SEL register and
// a 2-bit combinator from a W??LOG register.

type windowOp uint8

const (
	windowOr windowOp = iota
	windowAnd
	windowXor
	windowXnor
)

// windowMask is the masking configuration for one layer.
type windowMask struct {
	w1En, w2En   bool
	w1Inv, w2Inv bool
	op           windowOp
}

func newWindowMask(maskReg uint8, maskShift uint, opReg uint8, opShift uint) windowMask {
	bits := maskReg >> maskShift & 0b1111
	return windowMask{
		w1Inv: bits&0b0001 != 0,
		w1En:  bits&0b0010 != 0,
		w2Inv: bits&0b0100 != 0,
		w2En:  bits&0b1000 != 0,
		op:    windowOp(opReg >> opShift & 0b11),
	}
}

// check determines the masking result given whether the pixel lies inside
// W1 and W2. With both windows disabled the mask never triggers.
func (m windowMask) check(inW1, inW2 bool) bool {
	a := inW1 != m.w1Inv
	b := inW2 != m.w2Inv

	switch {
	case !m.w1En && !m.w2En:
		return false
	case m.w1En && !m.w2En:
		return a
	case !m.w1En && m.w2En:
		return b
	}

	switch m.op {
	case windowOr:
		return a || b
	case windowAnd:
		return a && b
	case windowXor:
		return a != b
	default: // windowXnor
		return a == b
	}
}

// inWindows reports whether the current pixel is inside W1 and W2. Both
// ranges are half-open, so a window with wh0 == wh1 is empty.
func (p *PPU) inWindows() (inW1, inW2 bool) {
	x := uint8(p.x)
	inW1 = p.wh[0] <= x && x < p.wh[1]
	inW2 = p.wh[2] <= x && x < p.wh[3]
	return
}

// layerMasks builds the six per-pixel masks from the current registers.
// Order: BG1-BG4, sprites, color.
func (p *PPU) layerMasks() [6]windowMask {
	return [6]windowMask{
		newWindowMask(p.w12sel, 0, p.wbglog, 0),
		newWindowMask(p.w12sel, 4, p.wbglog, 2),
		newWindowMask(p.w34sel, 0, p.wbglog, 4),
		newWindowMask(p.w34sel, 4, p.wbglog, 6),
		newWindowMask(p.wobjsel, 0, p.wobjlog, 0),
		newWindowMask(p.wobjsel, 4, p.wobjlog, 2),
	}
}

// colorWindowMask is the mask the color math unit uses for clipping and
// math gating.
func (p *PPU) colorWindowMask() windowMask {
	return newWindowMask(p.wobjsel, 4, p.wobjlog, 2)
}
