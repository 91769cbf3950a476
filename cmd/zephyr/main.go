package main

import (
	"flag"
	"fmt"
	"os"

	"zephyr-snes/internal/config"
	"zephyr-snes/internal/debug"
	"zephyr-snes/internal/emulator"
	"zephyr-snes/internal/input"
	"zephyr-snes/internal/rom"
	"zephyr-snes/internal/ui"
)

func main() {
	romPath := flag.String("rom", "", "Path to ROM file (.sfc/.smc)")
	configPath := flag.String("config", "zephyr.toml", "Path to config file")
	scale := flag.Int("scale", 0, "Display scale 1-6 (overrides config)")
	unlimited := flag.Bool("unlimited", false, "Run at unlimited speed (no frame limit)")
	enableLogging := flag.Bool("log", false, "Mirror the component log to stderr")
	debugUI := flag.Bool("debug", false, "Open the debug window")
	recordPath := flag.String("record", "", "Record input to a file")
	replayPath := flag.String("replay", "", "Replay input from a file")
	statePath := flag.String("savestate", "", "Save state file to load at startup")
	flag.Parse()

	if *romPath == "" && flag.NArg() == 1 {
		*romPath = flag.Arg(0)
	}
	if *romPath == "" {
		fmt.Println("Usage: zephyr -rom <path-to-rom>")
		fmt.Println("  -rom <path>       Path to ROM file (.sfc/.smc)")
		fmt.Println("  -config <path>    Config file (default: zephyr.toml)")
		fmt.Println("  -scale <1-6>      Display scale")
		fmt.Println("  -unlimited        Run at unlimited speed")
		fmt.Println("  -log              Mirror the component log to stderr")
		fmt.Println("  -debug            Open the debug window")
		fmt.Println("  -record <path>    Record input")
		fmt.Println("  -replay <path>    Replay recorded input")
		fmt.Println("  -savestate <path> Load a save state at startup")
		os.Exit(1)
	}
	if *recordPath != "" && *replayPath != "" {
		fmt.Fprintln(os.Stderr, "Error: -record and -replay may not be combined")
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *scale != 0 {
		cfg.Scale = *scale
	}
	if *unlimited {
		cfg.FrameLimit = false
	}
	if *enableLogging {
		cfg.LogEnabled = true
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger := debug.NewLogger(10000)
	if cfg.LogEnabled {
		logger.EnableAll()
		logger.SetMinLevel(logLevel(cfg.LogLevel))
		logger.SetEcho(os.Stderr)
	}

	romData, err := os.ReadFile(*romPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading ROM file: %v\n", err)
		os.Exit(1)
	}
	cart, err := rom.FromBytes(romData, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading ROM: %v\n", err)
		os.Exit(1)
	}

	emu := emulator.New(cart, logger)
	emu.SetFrameLimit(cfg.FrameLimit)
	emu.PPU.SetOverflowReset(cfg.OverflowResetAtVBlankEnd)

	if *recordPath != "" {
		f, err := os.Create(*recordPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating recording: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		rec, err := input.NewRecorder(f)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		emu.Input.StartRecording(rec)
	}
	if *replayPath != "" {
		f, err := os.Open(*replayPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening recording: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		rep, err := input.NewReplayer(f)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		emu.Input.StartReplay(rep)
	}
	if *statePath != "" {
		f, err := os.Open(*statePath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening save state: %v\n", err)
			os.Exit(1)
		}
		if err := emu.LoadStateFrom(f); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		f.Close()
	}

	fmt.Printf("Zephyr - %s (%s, %d KB)\n",
		cart.Header.Title, cart.Header.Type, cart.Header.ROMSize/1024)
	fmt.Println("Controls: F5 save state, F9 load state, Space pause,")
	fmt.Println("          Ctrl+R reset, Alt+F fullscreen, Esc quit")

	uiInstance, err := ui.NewUI(emu, cfg, *romPath+".state")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating UI: %v\n", err)
		os.Exit(1)
	}

	if *debugUI {
		err = ui.RunWithDebug(uiInstance)
	} else {
		err = uiInstance.Run()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "UI error: %v\n", err)
		os.Exit(1)
	}
}

func logLevel(name string) debug.LogLevel {
	switch name {
	case "error":
		return debug.LogLevelError
	case "warning":
		return debug.LogLevelWarning
	case "debug":
		return debug.LogLevelDebug
	case "trace":
		return debug.LogLevelTrace
	default:
		return debug.LogLevelInfo
	}
}
