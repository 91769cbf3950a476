package emulator

// Save states: a gob snapshot of every component plus WRAM and cartridge
// RAM. The framebuffer is not saved; the next rendered frame recreates it.

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"io"

	"zephyr-snes/internal/apu"
	"zephyr-snes/internal/cpu"
	"zephyr-snes/internal/debug"
	"zephyr-snes/internal/dma"
	"zephyr-snes/internal/input"
	"zephyr-snes/internal/ppu"
)

// saveStateVersion guards against loading snapshots from incompatible
// builds.
const saveStateVersion uint16 = 1

// SaveState is a complete machine snapshot.
type SaveState struct {
	Version uint16

	CPU   cpu.State
	PPU   ppu.State
	APU   apu.State
	DMA   dma.State
	Input input.State

	WRAM    [0x20000]uint8
	CartRAM []uint8
}

// CaptureState snapshots the machine.
func (e *Emulator) CaptureState() SaveState {
	return SaveState{
		Version: saveStateVersion,
		CPU:     e.CPU.State,
		PPU:     e.PPU.CaptureState(),
		APU:     e.APU.CaptureState(),
		DMA:     e.DMA.CaptureState(),
		Input:   e.Input.CaptureState(),
		WRAM:    e.Bus.WRAM,
		CartRAM: append([]uint8(nil), e.Cart.RAM()...),
	}
}

// RestoreState applies a snapshot.
func (e *Emulator) RestoreState(s SaveState) error {
	if s.Version != saveStateVersion {
		return fmt.Errorf("emulator: save state version %d, expected %d",
			s.Version, saveStateVersion)
	}
	e.CPU.State = s.CPU
	e.PPU.RestoreState(s.PPU)
	e.APU.RestoreState(s.APU)
	e.DMA.RestoreState(s.DMA)
	e.Input.RestoreState(s.Input)
	e.Bus.WRAM = s.WRAM
	e.Cart.SetRAM(s.CartRAM)
	return nil
}

// SaveStateTo serializes a snapshot to the writer.
func (e *Emulator) SaveStateTo(w io.Writer) error {
	if err := gob.NewEncoder(w).Encode(e.CaptureState()); err != nil {
		return fmt.Errorf("emulator: encoding save state: %w", err)
	}
	e.Logger.Log(debug.ComponentSystem, debug.LogLevelInfo, "state saved")
	return nil
}

// LoadStateFrom deserializes and applies a snapshot.
func (e *Emulator) LoadStateFrom(r io.Reader) error {
	var s SaveState
	if err := gob.NewDecoder(r).Decode(&s); err != nil {
		return fmt.Errorf("emulator: decoding save state: %w", err)
	}
	if err := e.RestoreState(s); err != nil {
		return err
	}
	e.Logger.Log(debug.ComponentSystem, debug.LogLevelInfo, "state loaded")
	return nil
}

// SaveStateBytes is a convenience wrapper for in-memory snapshots.
func (e *Emulator) SaveStateBytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := e.SaveStateTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// LoadStateBytes applies an in-memory snapshot.
func (e *Emulator) LoadStateBytes(data []byte) error {
	return e.LoadStateFrom(bytes.NewReader(data))
}
