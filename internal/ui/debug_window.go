package ui

// Optional Fyne debug window. Fyne insists on owning the main thread, so
// the SDL emulator loop moves to a goroutine while the debug window runs
// the app; closing either side shuts both down.

import (
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"

	"zephyr-snes/internal/ui/panels"
)

// debugTickHz is the panel refresh rate.
const debugTickHz = 10

// RunWithDebug runs the emulator UI with the debug window attached.
func RunWithDebug(u *UI) error {
	a := app.NewWithID("com.zephyr-snes.debug")
	w := a.NewWindow("Zephyr Debug")

	registers, updateRegisters := panels.RegisterViewer(u.emulator, w)
	logs, updateLogs := panels.LogViewer(u.emulator.Logger, w)

	split := container.NewHSplit(registers, logs)
	split.SetOffset(0.35)
	w.SetContent(split)
	w.Resize(fyne.NewSize(900, 400))

	done := make(chan struct{})
	ticker := time.NewTicker(time.Second / debugTickHz)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				fyne.Do(func() {
					updateRegisters()
					updateLogs()
				})
			case <-done:
				return
			}
		}
	}()

	var runErr error
	go func() {
		runErr = u.Run()
		close(done)
		fyne.Do(a.Quit)
	}()

	w.SetCloseIntercept(func() {
		// Closing the debug window closes the emulator too
		u.running = false
		w.Close()
	})

	w.ShowAndRun()
	<-done
	return runErr
}
