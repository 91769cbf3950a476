package main

// rominfo prints the decoded cartridge header of a ROM image.

import (
	"flag"
	"fmt"
	"os"

	"zephyr-snes/internal/debug"
	"zephyr-snes/internal/rom"
)

func main() {
	verbose := flag.Bool("v", false, "Show the loader's log output")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Println("Usage: rominfo [-v] <path-to-rom>")
		os.Exit(1)
	}

	logger := debug.NewLogger(1000)
	if *verbose {
		logger.EnableAll()
		logger.SetMinLevel(debug.LogLevelDebug)
		logger.SetEcho(os.Stderr)
	}

	data, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading ROM file: %v\n", err)
		os.Exit(1)
	}

	cart, err := rom.FromBytes(data, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	h := cart.Header
	fmt.Printf("Title:     %s\n", h.Title)
	fmt.Printf("Mapping:   %s\n", h.Type)
	fmt.Printf("Speed:     %s\n", speed(h.FastROM))
	fmt.Printf("ROM size:  %d KB\n", h.ROMSize/1024)
	fmt.Printf("RAM size:  %d KB\n", h.RAMSize/1024)
	fmt.Printf("Checksum:  $%04X\n", h.Checksum)
}

func speed(fast bool) string {
	if fast {
		return "FastROM"
	}
	return "SlowROM"
}
