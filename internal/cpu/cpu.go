package cpu

// 65c816 interpreter. The CPU talks to the system through the Bus
// interface; all 24-bit addresses are split into bank and offset the way
// the memory package routes them.

import (
	"zephyr-snes/internal/debug"
)

// Bus is the CPU's view of the system bus.
type Bus interface {
	Read8(bank uint8, addr uint16) uint8
	Write8(bank uint8, addr uint16, value uint8)
}

// Status flag bits in P.
const (
	FlagC uint8 = 1 << iota // carry
	FlagZ                   // zero
	FlagI                   // IRQ disable
	FlagD                   // decimal
	FlagX                   // 8-bit index registers (break in emulation mode)
	FlagM                   // 8-bit accumulator
	FlagV                   // overflow
	FlagN                   // negative
)

// Interrupt vectors.
const (
	vecCOPNative = 0xffe4
	vecBRKNative = 0xffe6
	vecNMINative = 0xffea
	vecIRQNative = 0xffee
	vecCOPEmu    = 0xfff4
	vecNMIEmu    = 0xfffa
	vecRESET     = 0xfffc
	vecIRQEmu    = 0xfffe
)

// State is the complete, serializable register state.
type State struct {
	A  uint16 // accumulator (C = B:A)
	X  uint16
	Y  uint16
	SP uint16 // stack pointer
	D  uint16 // direct page register
	PC uint16
	P  uint8 // processor status
	E  bool  // emulation mode

	DBR uint8 // data bank
	PBR uint8 // program bank

	Cycles uint64

	Waiting bool // WAI executed, waiting for an interrupt
	Stopped bool // STP executed
}

// CPU is a 65c816 core.
type CPU struct {
	State State

	bus    Bus
	logger *debug.Logger
}

// NewCPU creates a CPU attached to the given bus.
func NewCPU(bus Bus, logger *debug.Logger) *CPU {
	c := &CPU{bus: bus, logger: logger}
	c.Reset()
	return c
}

// Reset puts the CPU into the power-on state and loads PC from the RESET
// vector.
func (c *CPU) Reset() {
	s := &c.State
	s.E = true
	s.P = FlagM | FlagX | FlagI
	s.D = 0
	s.DBR = 0
	s.PBR = 0
	s.SP = 0x01ff
	s.X &= 0x00ff
	s.Y &= 0x00ff
	s.Waiting = false
	s.Stopped = false
	s.PC = c.read16(0, vecRESET)
	c.logger.Logf(debug.ComponentCPU, debug.LogLevelInfo,
		"reset, entry point $00:%04X", s.PC)
}

// flag returns whether a status bit is set.
func (c *CPU) flag(mask uint8) bool { return c.State.P&mask != 0 }

func (c *CPU) setFlag(mask uint8, set bool) {
	if set {
		c.State.P |= mask
	} else {
		c.State.P &^= mask
	}
}

// m8 reports whether the accumulator is 8 bits wide.
func (c *CPU) m8() bool { return c.State.E || c.flag(FlagM) }

// x8 reports whether the index registers are 8 bits wide.
func (c *CPU) x8() bool { return c.State.E || c.flag(FlagX) }

func (c *CPU) setZN8(v uint8) {
	c.setFlag(FlagZ, v == 0)
	c.setFlag(FlagN, v&0x80 != 0)
}

func (c *CPU) setZN16(v uint16) {
	c.setFlag(FlagZ, v == 0)
	c.setFlag(FlagN, v&0x8000 != 0)
}

// --- memory access ---

func (c *CPU) read8(bank uint8, addr uint16) uint8 {
	return c.bus.Read8(bank, addr)
}

func (c *CPU) write8(bank uint8, addr uint16, value uint8) {
	c.bus.Write8(bank, addr, value)
}

// read16 reads a little-endian word, wrapping within the bank.
func (c *CPU) read16(bank uint8, addr uint16) uint16 {
	lo := c.read8(bank, addr)
	hi := c.read8(bank, addr+1)
	return uint16(lo) | uint16(hi)<<8
}

// load reads one byte at a 24-bit address.
func (c *CPU) load(ea uint32) uint8 {
	return c.read8(uint8(ea>>16), uint16(ea))
}

func (c *CPU) store(ea uint32, value uint8) {
	c.write8(uint8(ea>>16), uint16(ea), value)
}

// load16 reads a data word; the address increments across bank boundaries.
func (c *CPU) load16(ea uint32) uint16 {
	lo := c.load(ea)
	hi := c.load((ea + 1) & 0xffffff)
	return uint16(lo) | uint16(hi)<<8
}

func (c *CPU) store16(ea uint32, value uint16) {
	c.store(ea, uint8(value))
	c.store((ea+1)&0xffffff, uint8(value>>8))
}

// fetch8 reads the next program byte.
func (c *CPU) fetch8() uint8 {
	v := c.read8(c.State.PBR, c.State.PC)
	c.State.PC++
	return v
}

func (c *CPU) fetch16() uint16 {
	lo := c.fetch8()
	hi := c.fetch8()
	return uint16(lo) | uint16(hi)<<8
}

func (c *CPU) fetch24() uint32 {
	lo := c.fetch16()
	bank := c.fetch8()
	return uint32(bank)<<16 | uint32(lo)
}

// --- stack ---

func (c *CPU) push8(v uint8) {
	c.write8(0, c.State.SP, v)
	c.State.SP--
	if c.State.E {
		c.State.SP = 0x0100 | c.State.SP&0x00ff
	}
}

func (c *CPU) push16(v uint16) {
	c.push8(uint8(v >> 8))
	c.push8(uint8(v))
}

func (c *CPU) pop8() uint8 {
	c.State.SP++
	if c.State.E {
		c.State.SP = 0x0100 | c.State.SP&0x00ff
	}
	return c.read8(0, c.State.SP)
}

func (c *CPU) pop16() uint16 {
	lo := c.pop8()
	hi := c.pop8()
	return uint16(lo) | uint16(hi)<<8
}

// --- interrupts ---

// NMI requests a non-maskable interrupt. It is serviced before the next
// instruction.
func (c *CPU) NMI() {
	c.State.Waiting = false
	c.interrupt(vecNMINative, vecNMIEmu)
}

// IRQ requests a maskable interrupt.
func (c *CPU) IRQ() {
	c.State.Waiting = false
	if c.flag(FlagI) {
		return
	}
	c.interrupt(vecIRQNative, vecIRQEmu)
}

func (c *CPU) interrupt(vecNative, vecEmu uint16) {
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
	s.Cycles += 7
}

// updateRegisterWidths truncates the index registers when they switch to 8
// bits, and forces M/X in emulation mode.
func (c *CPU) updateRegisterWidths() {
	if c.State.E {
		c.State.P |= FlagM | FlagX
		c.State.SP = 0x0100 | c.State.SP&0x00ff
	}
	if c.flag(FlagX) {
		c.State.X &= 0x00ff
		c.State.Y &= 0x00ff
	}
}

// Step executes one instruction (or one byte of a block move) and returns
// the number of cycles it took. A stopped or waiting CPU just burns idle
// cycles until an interrupt arrives.
func (c *CPU) Step() uint64 {
	s := &c.State
	if s.Stopped || s.Waiting {
		return 2
	}

	before := s.Cycles
	c.execute(c.fetch8())
	return s.Cycles - before
}
