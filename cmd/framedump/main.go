package main

// framedump runs a ROM headless for a number of frames and writes the
// final framebuffer as a PNG. Handy for comparing rendering changes
// without a display.

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"os"

	"zephyr-snes/internal/debug"
	"zephyr-snes/internal/emulator"
	"zephyr-snes/internal/ppu"
	"zephyr-snes/internal/rom"
)

func main() {
	romPath := flag.String("rom", "", "Path to ROM file")
	frames := flag.Int("frames", 60, "Frames to emulate before dumping")
	outPath := flag.String("out", "frame.png", "Output PNG path")
	flag.Parse()

	if *romPath == "" {
		fmt.Println("Usage: framedump -rom <path> [-frames N] [-out frame.png]")
		os.Exit(1)
	}

	logger := debug.NewLogger(1000)

	data, err := os.ReadFile(*romPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading ROM file: %v\n", err)
		os.Exit(1)
	}
	cart, err := rom.FromBytes(data, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading ROM: %v\n", err)
		os.Exit(1)
	}

	emu := emulator.New(cart, logger)
	emu.SetFrameLimit(false)
	emu.Start()

	for i := 0; i < *frames; i++ {
		if err := emu.RunFrame(); err != nil {
			fmt.Fprintf(os.Stderr, "Emulation error on frame %d: %v\n", i, err)
			os.Exit(1)
		}
	}

	img := image.NewNRGBA(image.Rect(0, 0, ppu.ScreenWidth, ppu.ScreenHeight))
	fb := emu.Framebuffer()
	for i := 0; i < ppu.ScreenWidth*ppu.ScreenHeight; i++ {
		img.Pix[i*4] = fb[i*3]
		img.Pix[i*4+1] = fb[i*3+1]
		img.Pix[i*4+2] = fb[i*3+2]
		img.Pix[i*4+3] = 0xff
	}

	out, err := os.Create(*outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	if err := png.Encode(out, img); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding PNG: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %s after %d frames\n", *outPath, *frames)
}
