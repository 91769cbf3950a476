package cpu

// Opcode dispatch. Base cycle counts come from the 65c816 data sheet; the
// per-access penalties (extra cycle for 16-bit memory, page crossings,
// direct page misalignment) are not modeled.

var opCycles = [256]uint8{
	0x00: 7, 0x01: 6, 0x02: 7, 0x03: 4, 0x04: 5, 0x05: 3, 0x06: 5, 0x07: 6,
	0x08: 3, 0x09: 2, 0x0a: 2, 0x0b: 4, 0x0c: 6, 0x0d: 4, 0x0e: 6, 0x0f: 5,
	0x10: 2, 0x11: 5, 0x12: 5, 0x13: 7, 0x14: 5, 0x15: 4, 0x16: 6, 0x17: 6,
	0x18: 2, 0x19: 4, 0x1a: 2, 0x1b: 2, 0x1c: 6, 0x1d: 4, 0x1e: 7, 0x1f: 5,
	0x20: 6, 0x21: 6, 0x22: 8, 0x23: 4, 0x24: 3, 0x25: 3, 0x26: 5, 0x27: 6,
	0x28: 4, 0x29: 2, 0x2a: 2, 0x2b: 5, 0x2c: 4, 0x2d: 4, 0x2e: 6, 0x2f: 5,
	0x30: 2, 0x31: 5, 0x32: 5, 0x33: 7, 0x34: 4, 0x35: 4, 0x36: 6, 0x37: 6,
	0x38: 2, 0x39: 4, 0x3a: 2, 0x3b: 2, 0x3c: 4, 0x3d: 4, 0x3e: 7, 0x3f: 5,
	0x40: 6, 0x41: 6, 0x42: 2, 0x43: 4, 0x44: 7, 0x45: 3, 0x46: 5, 0x47: 6,
	0x48: 3, 0x49: 2, 0x4a: 2, 0x4b: 3, 0x4c: 3, 0x4d: 4, 0x4e: 6, 0x4f: 5,
	0x50: 2, 0x51: 5, 0x52: 5, 0x53: 7, 0x54: 7, 0x55: 4, 0x56: 6, 0x57: 6,
	0x58: 2, 0x59: 4, 0x5a: 3, 0x5b: 2, 0x5c: 4, 0x5d: 4, 0x5e: 7, 0x5f: 5,
	0x60: 6, 0x61: 6, 0x62: 6, 0x63: 4, 0x64: 3, 0x65: 3, 0x66: 5, 0x67: 6,
	0x68: 4, 0x69: 2, 0x6a: 2, 0x6b: 6, 0x6c: 5, 0x6d: 4, 0x6e: 6, 0x6f: 5,
	0x70: 2, 0x71: 5, 0x72: 5, 0x73: 7, 0x74: 4, 0x75: 4, 0x76: 6, 0x77: 6,
	0x78: 2, 0x79: 4, 0x7a: 4, 0x7b: 2, 0x7c: 6, 0x7d: 4, 0x7e: 7, 0x7f: 5,
	0x80: 3, 0x81: 6, 0x82: 4, 0x83: 4, 0x84: 3, 0x85: 3, 0x86: 3, 0x87: 6,
	0x88: 2, 0x89: 2, 0x8a: 2, 0x8b: 3, 0x8c: 4, 0x8d: 4, 0x8e: 4, 0x8f: 5,
	0x90: 2, 0x91: 6, 0x92: 5, 0x93: 7, 0x94: 4, 0x95: 4, 0x96: 4, 0x97: 6,
	0x98: 2, 0x99: 5, 0x9a: 2, 0x9b: 2, 0x9c: 4, 0x9d: 5, 0x9e: 5, 0x9f: 5,
	0xa0: 2, 0xa1: 6, 0xa2: 2, 0xa3: 4, 0xa4: 3, 0xa5: 3, 0xa6: 3, 0xa7: 6,
	0xa8: 2, 0xa9: 2, 0xaa: 2, 0xab: 4, 0xac: 4, 0xad: 4, 0xae: 4, 0xaf: 5,
	0xb0: 2, 0xb1: 5, 0xb2: 5, 0xb3: 7, 0xb4: 4, 0xb5: 4, 0xb6: 4, 0xb7: 6,
	0xb8: 2, 0xb9: 4, 0xba: 2, 0xbb: 2, 0xbc: 4, 0xbd: 4, 0xbe: 4, 0xbf: 5,
	0xc0: 2, 0xc1: 6, 0xc2: 3, 0xc3: 4, 0xc4: 3, 0xc5: 3, 0xc6: 5, 0xc7: 6,
	0xc8: 2, 0xc9: 2, 0xca: 2, 0xcb: 3, 0xcc: 4, 0xcd: 4, 0xce: 6, 0xcf: 5,
	0xd0: 2, 0xd1: 5, 0xd2: 5, 0xd3: 7, 0xd4: 6, 0xd5: 4, 0xd6: 6, 0xd7: 6,
	0xd8: 2, 0xd9: 4, 0xda: 3, 0xdb: 3, 0xdc: 6, 0xdd: 4, 0xde: 7, 0xdf: 5,
	0xe0: 2, 0xe1: 6, 0xe2: 3, 0xe3: 4, 0xe4: 3, 0xe5: 3, 0xe6: 5, 0xe7: 6,
	0xe8: 2, 0xe9: 2, 0xea: 2, 0xeb: 3, 0xec: 4, 0xed: 4, 0xee: 6, 0xef: 5,
	0xf0: 2, 0xf1: 5, 0xf2: 5, 0xf3: 7, 0xf4: 5, 0xf5: 4, 0xf6: 6, 0xf7: 6,
	0xf8: 2, 0xf9: 4, 0xfa: 4, 0xfb: 2, 0xfc: 8, 0xfd: 4, 0xfe: 7, 0xff: 5,
}

func (c *CPU) execute(op uint8) {
	s := &c.State
	s.Cycles += uint64(opCycles[op])

	switch op {
	// --- interrupts and control ---
	case 0x00: // BRK
		s.PC++ // signature byte
		c.swInterrupt(vecBRKNative, vecIRQEmu)
	case 0x02: // COP
		s.PC++
		c.swInterrupt(vecCOPNative, vecCOPEmu)
	case 0x42: // WDM (reserved, consumes its operand)
		s.PC++
	case 0xcb: // WAI
		s.Waiting = true
	case 0xdb: // STP
		s.Stopped = true
	case 0xea: // NOP

	// --- flag ops ---
	case 0x18: // CLC
		c.setFlag(FlagC, false)
	case 0x38: // SEC
		c.setFlag(FlagC, true)
	case 0x58: // CLI
		c.setFlag(FlagI, false)
	case 0x78: // SEI
		c.setFlag(FlagI, true)
	case 0xb8: // CLV
		c.setFlag(FlagV, false)
	case 0xd8: // CLD
		c.setFlag(FlagD, false)
	case 0xf8: // SED
		c.setFlag(FlagD, true)
	case 0xc2: // REP
		c.rep()
	case 0xe2: // SEP
		c.sep()
	case 0xfb: // XCE
		c.xce()

	// --- ORA ---
	case 0x01:
		c.ora(c.loadA(c.amIndDPX()))
	case 0x03:
		c.ora(c.loadA(c.amSR()))
	case 0x05:
		c.ora(c.loadA(c.amDP()))
	case 0x07:
		c.ora(c.loadA(c.amIndLongDP()))
	case 0x09:
		c.ora(c.immA())
	case 0x0d:
		c.ora(c.loadA(c.amAbs()))
	case 0x0f:
		c.ora(c.loadA(c.amLong()))
	case 0x11:
		c.ora(c.loadA(c.amIndDPY()))
	case 0x12:
		c.ora(c.loadA(c.amIndDP()))
	case 0x13:
		c.ora(c.loadA(c.amSRY()))
	case 0x15:
		c.ora(c.loadA(c.amDPX()))
	case 0x17:
		c.ora(c.loadA(c.amIndLongDPY()))
	case 0x19:
		c.ora(c.loadA(c.amAbsY()))
	case 0x1d:
		c.ora(c.loadA(c.amAbsX()))
	case 0x1f:
		c.ora(c.loadA(c.amLongX()))

	// --- AND ---
	case 0x21:
		c.and(c.loadA(c.amIndDPX()))
	case 0x23:
		c.and(c.loadA(c.amSR()))
	case 0x25:
		c.and(c.loadA(c.amDP()))
	case 0x27:
		c.and(c.loadA(c.amIndLongDP()))
	case 0x29:
		c.and(c.immA())
	case 0x2d:
		c.and(c.loadA(c.amAbs()))
	case 0x2f:
		c.and(c.loadA(c.amLong()))
	case 0x31:
		c.and(c.loadA(c.amIndDPY()))
	case 0x32:
		c.and(c.loadA(c.amIndDP()))
	case 0x33:
		c.and(c.loadA(c.amSRY()))
	case 0x35:
		c.and(c.loadA(c.amDPX()))
	case 0x37:
		c.and(c.loadA(c.amIndLongDPY()))
	case 0x39:
		c.and(c.loadA(c.amAbsY()))
	case 0x3d:
		c.and(c.loadA(c.amAbsX()))
	case 0x3f:
		c.and(c.loadA(c.amLongX()))

	// --- EOR ---
	case 0x41:
		c.eor(c.loadA(c.amIndDPX()))
	case 0x43:
		c.eor(c.loadA(c.amSR()))
	case 0x45:
		c.eor(c.loadA(c.amDP()))
	case 0x47:
		c.eor(c.loadA(c.amIndLongDP()))
	case 0x49:
		c.eor(c.immA())
	case 0x4d:
		c.eor(c.loadA(c.amAbs()))
	case 0x4f:
		c.eor(c.loadA(c.amLong()))
	case 0x51:
		c.eor(c.loadA(c.amIndDPY()))
	case 0x52:
		c.eor(c.loadA(c.amIndDP()))
	case 0x53:
		c.eor(c.loadA(c.amSRY()))
	case 0x55:
		c.eor(c.loadA(c.amDPX()))
	case 0x57:
		c.eor(c.loadA(c.amIndLongDPY()))
	case 0x59:
		c.eor(c.loadA(c.amAbsY()))
	case 0x5d:
		c.eor(c.loadA(c.amAbsX()))
	case 0x5f:
		c.eor(c.loadA(c.amLongX()))

	// --- ADC ---
	case 0x61:
		c.adc(c.loadA(c.amIndDPX()))
	case 0x63:
		c.adc(c.loadA(c.amSR()))
	case 0x65:
		c.adc(c.loadA(c.amDP()))
	case 0x67:
		c.adc(c.loadA(c.amIndLongDP()))
	case 0x69:
		c.adc(c.immA())
	case 0x6d:
		c.adc(c.loadA(c.amAbs()))
	case 0x6f:
		c.adc(c.loadA(c.amLong()))
	case 0x71:
		c.adc(c.loadA(c.amIndDPY()))
	case 0x72:
		c.adc(c.loadA(c.amIndDP()))
	case 0x73:
		c.adc(c.loadA(c.amSRY()))
	case 0x75:
		c.adc(c.loadA(c.amDPX()))
	case 0x77:
		c.adc(c.loadA(c.amIndLongDPY()))
	case 0x79:
		c.adc(c.loadA(c.amAbsY()))
	case 0x7d:
		c.adc(c.loadA(c.amAbsX()))
	case 0x7f:
		c.adc(c.loadA(c.amLongX()))

	// --- SBC ---
	case 0xe1:
		c.sbc(c.loadA(c.amIndDPX()))
	case 0xe3:
		c.sbc(c.loadA(c.amSR()))
	case 0xe5:
		c.sbc(c.loadA(c.amDP()))
	case 0xe7:
		c.sbc(c.loadA(c.amIndLongDP()))
	case 0xe9:
		c.sbc(c.immA())
	case 0xed:
		c.sbc(c.loadA(c.amAbs()))
	case 0xef:
		c.sbc(c.loadA(c.amLong()))
	case 0xf1:
		c.sbc(c.loadA(c.amIndDPY()))
	case 0xf2:
		c.sbc(c.loadA(c.amIndDP()))
	case 0xf3:
		c.sbc(c.loadA(c.amSRY()))
	case 0xf5:
		c.sbc(c.loadA(c.amDPX()))
	case 0xf7:
		c.sbc(c.loadA(c.amIndLongDPY()))
	case 0xf9:
		c.sbc(c.loadA(c.amAbsY()))
	case 0xfd:
		c.sbc(c.loadA(c.amAbsX()))
	case 0xff:
		c.sbc(c.loadA(c.amLongX()))

	// --- CMP / CPX / CPY ---
	case 0xc1:
		c.cmp(c.loadA(c.amIndDPX()))
	case 0xc3:
		c.cmp(c.loadA(c.amSR()))
	case 0xc5:
		c.cmp(c.loadA(c.amDP()))
	case 0xc7:
		c.cmp(c.loadA(c.amIndLongDP()))
	case 0xc9:
		c.cmp(c.immA())
	case 0xcd:
		c.cmp(c.loadA(c.amAbs()))
	case 0xcf:
		c.cmp(c.loadA(c.amLong()))
	case 0xd1:
		c.cmp(c.loadA(c.amIndDPY()))
	case 0xd2:
		c.cmp(c.loadA(c.amIndDP()))
	case 0xd3:
		c.cmp(c.loadA(c.amSRY()))
	case 0xd5:
		c.cmp(c.loadA(c.amDPX()))
	case 0xd7:
		c.cmp(c.loadA(c.amIndLongDPY()))
	case 0xd9:
		c.cmp(c.loadA(c.amAbsY()))
	case 0xdd:
		c.cmp(c.loadA(c.amAbsX()))
	case 0xdf:
		c.cmp(c.loadA(c.amLongX()))
	case 0xe0:
		c.cpx(c.immX())
	case 0xe4:
		c.cpx(c.loadX(c.amDP()))
	case 0xec:
		c.cpx(c.loadX(c.amAbs()))
	case 0xc0:
		c.cpy(c.immX())
	case 0xc4:
		c.cpy(c.loadX(c.amDP()))
	case 0xcc:
		c.cpy(c.loadX(c.amAbs()))

	// --- BIT / TRB / TSB ---
	case 0x24:
		c.bit(c.loadA(c.amDP()), false)
	case 0x2c:
		c.bit(c.loadA(c.amAbs()), false)
	case 0x34:
		c.bit(c.loadA(c.amDPX()), false)
	case 0x3c:
		c.bit(c.loadA(c.amAbsX()), false)
	case 0x89:
		c.bit(c.immA(), true)
	case 0x04:
		c.tsb(c.amDP())
	case 0x0c:
		c.tsb(c.amAbs())
	case 0x14:
		c.trb(c.amDP())
	case 0x1c:
		c.trb(c.amAbs())

	// --- shifts / rotates ---
	case 0x06:
		c.rmw(c.amDP(), c.aslValue)
	case 0x0a:
		c.rmwA(c.aslValue)
	case 0x0e:
		c.rmw(c.amAbs(), c.aslValue)
	case 0x16:
		c.rmw(c.amDPX(), c.aslValue)
	case 0x1e:
		c.rmw(c.amAbsX(), c.aslValue)
	case 0x46:
		c.rmw(c.amDP(), c.lsrValue)
	case 0x4a:
		c.rmwA(c.lsrValue)
	case 0x4e:
		c.rmw(c.amAbs(), c.lsrValue)
	case 0x56:
		c.rmw(c.amDPX(), c.lsrValue)
	case 0x5e:
		c.rmw(c.amAbsX(), c.lsrValue)
	case 0x26:
		c.rmw(c.amDP(), c.rolValue)
	case 0x2a:
		c.rmwA(c.rolValue)
	case 0x2e:
		c.rmw(c.amAbs(), c.rolValue)
	case 0x36:
		c.rmw(c.amDPX(), c.rolValue)
	case 0x3e:
		c.rmw(c.amAbsX(), c.rolValue)
	case 0x66:
		c.rmw(c.amDP(), c.rorValue)
	case 0x6a:
		c.rmwA(c.rorValue)
	case 0x6e:
		c.rmw(c.amAbs(), c.rorValue)
	case 0x76:
		c.rmw(c.amDPX(), c.rorValue)
	case 0x7e:
		c.rmw(c.amAbsX(), c.rorValue)

	// --- INC / DEC ---
	case 0x1a:
		c.rmwA(c.incValue)
	case 0x3a:
		c.rmwA(c.decValue)
	case 0xe6:
		c.rmw(c.amDP(), c.incValue)
	case 0xee:
		c.rmw(c.amAbs(), c.incValue)
	case 0xf6:
		c.rmw(c.amDPX(), c.incValue)
	case 0xfe:
		c.rmw(c.amAbsX(), c.incValue)
	case 0xc6:
		c.rmw(c.amDP(), c.decValue)
	case 0xce:
		c.rmw(c.amAbs(), c.decValue)
	case 0xd6:
		c.rmw(c.amDPX(), c.decValue)
	case 0xde:
		c.rmw(c.amAbsX(), c.decValue)
	case 0xe8: // INX
		s.X = c.incIndex(s.X, 1)
	case 0xc8: // INY
		s.Y = c.incIndex(s.Y, 1)
	case 0xca: // DEX
		s.X = c.incIndex(s.X, 0xffff)
	case 0x88: // DEY
		s.Y = c.incIndex(s.Y, 0xffff)

	// --- LDA / LDX / LDY ---
	case 0xa1:
		c.lda(c.loadA(c.amIndDPX()))
	case 0xa3:
		c.lda(c.loadA(c.amSR()))
	case 0xa5:
		c.lda(c.loadA(c.amDP()))
	case 0xa7:
		c.lda(c.loadA(c.amIndLongDP()))
	case 0xa9:
		c.lda(c.immA())
	case 0xad:
		c.lda(c.loadA(c.amAbs()))
	case 0xaf:
		c.lda(c.loadA(c.amLong()))
	case 0xb1:
		c.lda(c.loadA(c.amIndDPY()))
	case 0xb2:
		c.lda(c.loadA(c.amIndDP()))
	case 0xb3:
		c.lda(c.loadA(c.amSRY()))
	case 0xb5:
		c.lda(c.loadA(c.amDPX()))
	case 0xb7:
		c.lda(c.loadA(c.amIndLongDPY()))
	case 0xb9:
		c.lda(c.loadA(c.amAbsY()))
	case 0xbd:
		c.lda(c.loadA(c.amAbsX()))
	case 0xbf:
		c.lda(c.loadA(c.amLongX()))
	case 0xa2:
		c.ldx(c.immX())
	case 0xa6:
		c.ldx(c.loadX(c.amDP()))
	case 0xae:
		c.ldx(c.loadX(c.amAbs()))
	case 0xb6:
		c.ldx(c.loadX(c.amDPY()))
	case 0xbe:
		c.ldx(c.loadX(c.amAbsY()))
	case 0xa0:
		c.ldy(c.immX())
	case 0xa4:
		c.ldy(c.loadX(c.amDP()))
	case 0xac:
		c.ldy(c.loadX(c.amAbs()))
	case 0xb4:
		c.ldy(c.loadX(c.amDPX()))
	case 0xbc:
		c.ldy(c.loadX(c.amAbsX()))

	// --- STA / STX / STY / STZ ---
	case 0x81:
		c.sta(c.amIndDPX())
	case 0x83:
		c.sta(c.amSR())
	case 0x85:
		c.sta(c.amDP())
	case 0x87:
		c.sta(c.amIndLongDP())
	case 0x8d:
		c.sta(c.amAbs())
	case 0x8f:
		c.sta(c.amLong())
	case 0x91:
		c.sta(c.amIndDPY())
	case 0x92:
		c.sta(c.amIndDP())
	case 0x93:
		c.sta(c.amSRY())
	case 0x95:
		c.sta(c.amDPX())
	case 0x97:
		c.sta(c.amIndLongDPY())
	case 0x99:
		c.sta(c.amAbsY())
	case 0x9d:
		c.sta(c.amAbsX())
	case 0x9f:
		c.sta(c.amLongX())
	case 0x86:
		c.stx(c.amDP())
	case 0x8e:
		c.stx(c.amAbs())
	case 0x96:
		c.stx(c.amDPY())
	case 0x84:
		c.sty(c.amDP())
	case 0x8c:
		c.sty(c.amAbs())
	case 0x94:
		c.sty(c.amDPX())
	case 0x64:
		c.stz(c.amDP())
	case 0x74:
		c.stz(c.amDPX())
	case 0x9c:
		c.stz(c.amAbs())
	case 0x9e:
		c.stz(c.amAbsX())

	// --- branches ---
	case 0x10: // BPL
		c.branch(!c.flag(FlagN))
	case 0x30: // BMI
		c.branch(c.flag(FlagN))
	case 0x50: // BVC
		c.branch(!c.flag(FlagV))
	case 0x70: // BVS
		c.branch(c.flag(FlagV))
	case 0x90: // BCC
		c.branch(!c.flag(FlagC))
	case 0xb0: // BCS
		c.branch(c.flag(FlagC))
	case 0xd0: // BNE
		c.branch(!c.flag(FlagZ))
	case 0xf0: // BEQ
		c.branch(c.flag(FlagZ))
	case 0x80: // BRA
		c.branch(true)
	case 0x82: // BRL
		offset := int16(c.fetch16())
		s.PC += uint16(offset)

	// --- jumps and returns ---
	case 0x4c: // JMP abs
		s.PC = c.fetch16()
	case 0x5c: // JMP long
		target := c.fetch24()
		s.PBR = uint8(target >> 16)
		s.PC = uint16(target)
	case 0x6c: // JMP (abs)
		s.PC = c.read16(0, c.fetch16())
	case 0x7c: // JMP (abs,X)
		ptr := c.fetch16() + s.X
		s.PC = c.read16(s.PBR, ptr)
	case 0xdc: // JML [abs]
		ptr := c.fetch16()
		s.PC = c.read16(0, ptr)
		s.PBR = c.read8(0, ptr+2)
	case 0x20: // JSR abs
		c.jsr(c.fetch16())
	case 0xfc: // JSR (abs,X)
		ptr := c.fetch16() + s.X
		c.jsr(c.read16(s.PBR, ptr))
	case 0x22: // JSL long
		c.jsl(c.fetch24())
	case 0x60: // RTS
		s.PC = c.pop16() + 1
	case 0x6b: // RTL
		s.PC = c.pop16() + 1
		s.PBR = c.pop8()
	case 0x40: // RTI
		s.P = c.pop8()
		s.PC = c.pop16()
		if !s.E {
			s.PBR = c.pop8()
		}
		c.updateRegisterWidths()

	// --- stack ---
	case 0x48: // PHA
		if c.m8() {
			c.push8(uint8(s.A))
		} else {
			c.push16(s.A)
		}
	case 0x68: // PLA
		if c.m8() {
			c.lda(uint16(c.pop8()))
		} else {
			c.lda(c.pop16())
		}
	case 0xda: // PHX
		if c.x8() {
			c.push8(uint8(s.X))
		} else {
			c.push16(s.X)
		}
	case 0xfa: // PLX
		if c.x8() {
			c.ldx(uint16(c.pop8()))
		} else {
			c.ldx(c.pop16())
		}
	case 0x5a: // PHY
		if c.x8() {
			c.push8(uint8(s.Y))
		} else {
			c.push16(s.Y)
		}
	case 0x7a: // PLY
		if c.x8() {
			c.ldy(uint16(c.pop8()))
		} else {
			c.ldy(c.pop16())
		}
	case 0x08: // PHP
		c.push8(s.P)
	case 0x28: // PLP
		s.P = c.pop8()
		c.updateRegisterWidths()
	case 0x0b: // PHD
		c.push16(s.D)
	case 0x2b: // PLD
		s.D = c.pop16()
		c.setZN16(s.D)
	case 0x8b: // PHB
		c.push8(s.DBR)
	case 0xab: // PLB
		s.DBR = c.pop8()
		c.setZN8(s.DBR)
	case 0x4b: // PHK
		c.push8(s.PBR)
	case 0xf4: // PEA
		c.push16(c.fetch16())
	case 0xd4: // PEI
		ptr := s.D + uint16(c.fetch8())
		c.push16(c.read16(0, ptr))
	case 0x62: // PER
		offset := c.fetch16()
		c.push16(s.PC + offset)

	// --- transfers ---
	case 0xaa: // TAX
		c.ldx(s.A)
	case 0xa8: // TAY
		c.ldy(s.A)
	case 0x8a: // TXA
		c.lda(s.X)
	case 0x98: // TYA
		c.lda(s.Y)
	case 0x9b: // TXY
		c.ldy(s.X)
	case 0xbb: // TYX
		c.ldx(s.Y)
	case 0xba: // TSX
		c.ldx(s.SP)
	case 0x9a: // TXS
		if s.E {
			s.SP = 0x0100 | s.X&0x00ff
		} else {
			s.SP = s.X
		}
	case 0x5b: // TCD
		s.D = s.A
		c.setZN16(s.D)
	case 0x7b: // TDC
		s.A = s.D
		c.setZN16(s.A)
	case 0x1b: // TCS
		if s.E {
			s.SP = 0x0100 | s.A&0x00ff
		} else {
			s.SP = s.A
		}
	case 0x3b: // TSC
		s.A = s.SP
		c.setZN16(s.A)
	case 0xeb: // XBA
		c.xba()

	// --- block moves ---
	case 0x44: // MVP
		c.blockMove(0xffff)
	case 0x54: // MVN
		c.blockMove(1)
	}
}

// swInterrupt services BRK/COP: like a hardware interrupt, but the pushed
// PC already points past the signature byte.
func (c *CPU) swInterrupt(vecNative, vecEmu uint16) {
	s := &c.State
	if !s.E {
		c.push8(s.PBR)
	}
	c.push16(s.PC)
	c.push8(s.P)
	c.setFlag(FlagI, true)
	c.setFlag(FlagD, false)
	s.PBR = 0
	if s.E {
		s.PC = c.read16(0, vecEmu)
	} else {
		s.PC = c.read16(0, vecNative)
	}
}
