package ppu

// Per-pixel compositing. The layers a BG mode uses, and the order they are
// consulted in, come from a static priority table per mode; the first
// non-transparent, non-masked hit wins. If nothing hits, the backdrop
// (CGRAM[0]) is used.

import "fmt"

// layerRef is one slot in a mode's priority list.
type layerRef struct {
	kind layer
	prio uint8
}

var (
	mode0Layers = []layerRef{
		{layerOBJ, 3},
		{layerBG1, 1}, {layerBG2, 1},
		{layerOBJ, 2},
		{layerBG1, 0}, {layerBG2, 0},
		{layerOBJ, 1},
		{layerBG3, 1}, {layerBG4, 1},
		{layerOBJ, 0},
		{layerBG3, 0}, {layerBG4, 0},
	}
	mode1Layers = []layerRef{
		{layerOBJ, 3},
		{layerBG1, 1}, {layerBG2, 1},
		{layerOBJ, 2},
		{layerBG1, 0}, {layerBG2, 0},
		{layerOBJ, 1},
		{layerBG3, 1},
		{layerOBJ, 0},
		{layerBG3, 0},
	}
	// Mode 1 with the BG3-priority flag set hoists BG3.1 above everything
	mode1HiLayers = []layerRef{
		{layerBG3, 1},
		{layerOBJ, 3},
		{layerBG1, 1}, {layerBG2, 1},
		{layerOBJ, 2},
		{layerBG1, 0}, {layerBG2, 0},
		{layerOBJ, 1},
		{layerOBJ, 0},
		{layerBG3, 0},
	}
	mode2to5Layers = []layerRef{
		{layerOBJ, 3},
		{layerBG1, 1},
		{layerOBJ, 2},
		{layerBG2, 1},
		{layerOBJ, 1},
		{layerBG1, 0},
		{layerOBJ, 0},
		{layerBG2, 0},
	}
	mode6Layers = []layerRef{
		{layerOBJ, 3},
		{layerBG1, 1},
		{layerOBJ, 2},
		{layerOBJ, 1},
		{layerBG1, 0},
		{layerOBJ, 0},
	}
	// In mode 7, BG1's priority bit is ignored
	mode7Layers = []layerRef{
		{layerOBJ, 3},
		{layerOBJ, 2},
		{layerOBJ, 1},
		{layerBG1, 0},
		{layerOBJ, 0},
	}
	mode7ExtbgLayers = []layerRef{
		{layerOBJ, 3},
		{layerOBJ, 2},
		{layerBG2, 1},
		{layerOBJ, 1},
		{layerBG1, 0},
		{layerOBJ, 0},
		{layerBG2, 0},
	}
)

// layerOrder selects the priority list for the current BG mode.
func (p *PPU) layerOrder() []layerRef {
	switch mode := p.bgMode(); mode {
	case 0:
		return mode0Layers
	case 1:
		if p.bgmode&0x08 != 0 {
			return mode1HiLayers
		}
		return mode1Layers
	case 2, 3, 4, 5:
		return mode2to5Layers
	case 6:
		return mode6Layers
	case 7:
		if p.extbg() {
			return mode7ExtbgLayers
		}
		return mode7Layers
	default:
		panic(fmt.Sprintf("ppu: BG mode %d out of range", mode))
	}
}

// getRawPixel composites the current pixel without color math and returns
// its color, the layer it came from and (for sprites) whether the sprite is
// opaque. If subscreen is true, the subscreen's layer enables are used.
//
// Color clipping per CGWSEL bits 7-6 applies to the main screen only; the
// clip target is CGRAM[0] rather than pure black.
func (p *PPU) getRawPixel(subscreen bool) (SnesRgb, layer, bool) {
	enableMaskReg := p.tmw
	if subscreen {
		enableMaskReg = p.tsw
	}

	masks := p.layerMasks()
	inW1, inW2 := p.inWindows()

	clip := !subscreen && p.clipColor()
	clipTo := p.backdropColor()

	for _, ref := range p.layerOrder() {
		var (
			rgb    SnesRgb
			opaque bool
			ok     bool
		)
		var maskIndex uint8

		switch ref.kind {
		case layerOBJ:
			rgb, opaque, ok = p.maybeDrawSpritePixel(ref.prio, subscreen)
			maskIndex = 4
		default:
			bg := uint8(ref.kind-layerBG1) + 1
			rgb, ok = p.lookupBGColor(bg, ref.prio, subscreen)
			maskIndex = uint8(ref.kind)
		}
		if !ok {
			continue
		}

		masked := enableMaskReg&(1<<maskIndex) != 0 && masks[maskIndex].check(inW1, inW2)
		if masked {
			continue
		}

		if clip {
			rgb = clipTo
		}
		return rgb, ref.kind, opaque
	}

	return p.backdropColor(), layerBackdrop, false
}

// RenderPixel is the main rendering entry point. It renders the pixel at
// the current (x, scanline) position and returns its display color. The
// position must be within the visible area.
func (p *PPU) RenderPixel() Rgb24 {
	if p.x >= ScreenWidth || p.scanline >= ScreenHeight {
		panic(fmt.Sprintf("ppu: pixel (%d, %d) outside the visible area", p.x, p.scanline))
	}

	if p.ForcedBlank() {
		return Rgb24{}
	}

	if p.x == 0 && p.scanline == 0 && !p.overflowResetAtVBlankEnd {
		p.resetOverflowFlags()
	}

	if p.x == 0 {
		// Entered a new scanline
		p.collectSpriteData()
	}

	mainColor, mainLayer, objOpaque := p.getRawPixel(false)

	out := mainColor
	if p.colorMathEnabled(mainLayer, objOpaque) {
		out = p.applyColorMath(mainColor, p.mathOperand(), p.clipColor())
	}

	brightness := uint16(p.Brightness())
	if brightness == 0 {
		// Real hardware still emits a barely visible image; approximating
		// it as black is indistinguishable in practice.
		return Rgb24{}
	}
	out = SnesRgb{
		R: uint8(uint16(out.R) * (brightness + 1) / 16),
		G: uint8(uint16(out.G) * (brightness + 1) / 16),
		B: uint8(uint16(out.B) * (brightness + 1) / 16),
	}

	return out.ToRgb24()
}
