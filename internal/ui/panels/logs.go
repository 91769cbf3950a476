package panels

import (
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"zephyr-snes/internal/debug"
)

// logViewerLines caps how much of the ring the panel shows.
const logViewerLines = 200

// LogViewer creates a panel tailing the component log.
func LogViewer(logger *debug.Logger, window fyne.Window) (*fyne.Container, func()) {
	text := widget.NewMultiLineEntry()
	text.Wrapping = fyne.TextWrapOff
	text.Disable()
	scroll := container.NewScroll(text)
	scroll.SetMinSize(fyne.NewSize(500, 300))

	update := func() {
		entries := logger.GetRecentEntries(logViewerLines)
		lines := make([]string, len(entries))
		for i := range entries {
			lines[i] = entries[i].Format()
		}
		text.SetText(strings.Join(lines, "\n"))
		scroll.ScrollToBottom()
	}

	clearBtn := widget.NewButton("Clear", func() {
		logger.Clear()
		text.SetText("")
	})
	copyBtn := widget.NewButton("Copy", func() {
		if window != nil {
			window.Clipboard().SetContent(text.Text)
		}
	})

	return container.NewBorder(
		widget.NewLabel("Log"),
		container.NewHBox(clearBtn, copyBtn),
		nil, nil, scroll,
	), update
}
