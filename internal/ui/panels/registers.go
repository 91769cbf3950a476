package panels

// Fyne debug panels. Each builder returns the panel plus an update
// function the debug window calls on its refresh tick (on the Fyne
// thread).

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"zephyr-snes/internal/emulator"
)

// RegisterViewer creates a panel showing the CPU and PPU state.
func RegisterViewer(emu *emulator.Emulator, window fyne.Window) (*fyne.Container, func()) {
	text := widget.NewMultiLineEntry()
	text.Wrapping = fyne.TextWrapOff
	text.Disable() // read-only, but selectable for copy/paste
	scroll := container.NewScroll(text)
	scroll.SetMinSize(fyne.NewSize(300, 300))

	format := func() string {
		s := emu.CPU.State

		width := func(eightBit bool) int {
			if eightBit {
				return 8
			}
			return 16
		}
		mode := "native"
		if s.E {
			mode = "emulation"
		}

		out := "CPU\n"
		out += fmt.Sprintf("  A:  $%04X   X: $%04X   Y: $%04X\n", s.A, s.X, s.Y)
		out += fmt.Sprintf("  PC: $%02X:%04X   SP: $%04X   D: $%04X   DBR: $%02X\n",
			s.PBR, s.PC, s.SP, s.D, s.DBR)
		out += fmt.Sprintf("  P:  $%02X (%s, A %d-bit, X/Y %d-bit)\n",
			s.P, mode, width(s.E || s.P&0x20 != 0), width(s.E || s.P&0x10 != 0))
		out += fmt.Sprintf("  cycles: %d\n", s.Cycles)

		out += "\nPPU\n"
		out += "  " + emu.PPU.String() + "\n"

		out += "\nEmulator\n"
		out += fmt.Sprintf("  running: %v   paused: %v   %.1f FPS\n",
			emu.Running, emu.Paused, emu.FPS())
		return out
	}

	update := func() {
		text.SetText(format())
	}

	copyBtn := widget.NewButton("Copy", func() {
		if window != nil {
			window.Clipboard().SetContent(text.Text)
		}
	})

	return container.NewBorder(
		widget.NewLabel("Registers"), copyBtn, nil, nil, scroll,
	), update
}
