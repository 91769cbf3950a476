package cpu

// Effective address computation. Every mode resolves to a 24-bit address;
// the data bank register participates where the hardware says so, direct
// page and stack addressing always target bank 0.

// amAbs: absolute
func (c *CPU) amAbs() uint32 {
	return uint32(c.State.DBR)<<16 | uint32(c.fetch16())
}

// amAbsX: absolute indexed by X (may cross into the next bank)
func (c *CPU) amAbsX() uint32 {
	return (uint32(c.State.DBR)<<16 + uint32(c.fetch16()) + uint32(c.State.X)) & 0xffffff
}

// amAbsY: absolute indexed by Y
func (c *CPU) amAbsY() uint32 {
	return (uint32(c.State.DBR)<<16 + uint32(c.fetch16()) + uint32(c.State.Y)) & 0xffffff
}

// amLong: absolute long
func (c *CPU) amLong() uint32 {
	return c.fetch24()
}

// amLongX: absolute long indexed by X
func (c *CPU) amLongX() uint32 {
	return (c.fetch24() + uint32(c.State.X)) & 0xffffff
}

// amDP: direct page
func (c *CPU) amDP() uint32 {
	return uint32(c.State.D + uint16(c.fetch8()))
}

// amDPX: direct page indexed by X
func (c *CPU) amDPX() uint32 {
	return uint32(c.State.D + uint16(c.fetch8()) + c.State.X)
}

// amDPY: direct page indexed by Y
func (c *CPU) amDPY() uint32 {
	return uint32(c.State.D + uint16(c.fetch8()) + c.State.Y)
}

// amIndDP: (dp)
func (c *CPU) amIndDP() uint32 {
	ptr := c.State.D + uint16(c.fetch8())
	return uint32(c.State.DBR)<<16 | uint32(c.read16(0, ptr))
}

// amIndDPX: (dp,X)
func (c *CPU) amIndDPX() uint32 {
	ptr := c.State.D + uint16(c.fetch8()) + c.State.X
	return uint32(c.State.DBR)<<16 | uint32(c.read16(0, ptr))
}

// amIndDPY: (dp),Y
func (c *CPU) amIndDPY() uint32 {
	ptr := c.State.D + uint16(c.fetch8())
	base := uint32(c.State.DBR)<<16 | uint32(c.read16(0, ptr))
	return (base + uint32(c.State.Y)) & 0xffffff
}

// amIndLongDP: [dp]
func (c *CPU) amIndLongDP() uint32 {
	ptr := c.State.D + uint16(c.fetch8())
	lo := uint32(c.read16(0, ptr))
	bank := uint32(c.read8(0, ptr+2))
	return bank<<16 | lo
}

// amIndLongDPY: [dp],Y
func (c *CPU) amIndLongDPY() uint32 {
	ptr := c.State.D + uint16(c.fetch8())
	lo := uint32(c.read16(0, ptr))
	bank := uint32(c.read8(0, ptr+2))
	return ((bank<<16 | lo) + uint32(c.State.Y)) & 0xffffff
}

// amSR: stack relative
func (c *CPU) amSR() uint32 {
	return uint32(c.State.SP + uint16(c.fetch8()))
}

// amSRY: (sr),Y
func (c *CPU) amSRY() uint32 {
	ptr := c.State.SP + uint16(c.fetch8())
	base := uint32(c.State.DBR)<<16 | uint32(c.read16(0, ptr))
	return (base + uint32(c.State.Y)) & 0xffffff
}

// immA fetches an immediate operand sized by the accumulator width.
func (c *CPU) immA() uint16 {
	if c.m8() {
		return uint16(c.fetch8())
	}
	return c.fetch16()
}

// immX fetches an immediate operand sized by the index width.
func (c *CPU) immX() uint16 {
	if c.x8() {
		return uint16(c.fetch8())
	}
	return c.fetch16()
}

// loadA reads an accumulator-sized value at ea.
func (c *CPU) loadA(ea uint32) uint16 {
	if c.m8() {
		return uint16(c.load(ea))
	}
	return c.load16(ea)
}

// storeA writes an accumulator-sized value at ea.
func (c *CPU) storeA(ea uint32, v uint16) {
	if c.m8() {
		c.store(ea, uint8(v))
	} else {
		c.store16(ea, v)
	}
}

// loadX reads an index-sized value at ea.
func (c *CPU) loadX(ea uint32) uint16 {
	if c.x8() {
		return uint16(c.load(ea))
	}
	return c.load16(ea)
}

// storeX writes an index-sized value at ea.
func (c *CPU) storeX(ea uint32, v uint16) {
	if c.x8() {
		c.store(ea, uint8(v))
	} else {
		c.store16(ea, v)
	}
}
