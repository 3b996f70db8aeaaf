// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/memview/main.go
// Summary: memview entry point: maps a file and views a slice of it as an RGBA8 image.
// Usage: memview [flags] <file>

package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"

	"golang.org/x/term"

	"github.com/framegrace/memview/internal/mmap"
	"github.com/framegrace/memview/internal/viewer"
)

// errUsage marks command-line mistakes; main exits with status 2 for them.
var errUsage = errors.New("usage")

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, errUsage) {
			os.Exit(2)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type config struct {
	path    string
	opts    viewer.Options
	info    bool
	logPath string
	verbose bool
}

func parseArgs(args []string, stderr io.Writer) (config, error) {
	fs := flag.NewFlagSet("memview", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: memview [flags] <file>\n\nView a byte range of any file as a raw RGBA8 image.\n\nFlags:\n")
		fs.PrintDefaults()
	}

	defaults := viewer.DefaultOptions()
	width := fs.Uint("width", uint(defaults.Width), "initial image width in pixels")
	height := fs.Uint("height", uint(defaults.Height), "initial image height in pixels")
	offset := fs.String("offset", "0", "initial byte offset (decimal, 0x hex or 0o octal)")
	fit := fs.Bool("fit", false, "scale the image down to fit the terminal")
	alpha := fs.Bool("alpha", false, "blend pixels over a checkerboard using their alpha byte")
	info := fs.Bool("info", false, "print the clamped view state and exit without starting the UI")
	logPath := fs.String("log", "", "append diagnostics to this file")
	verbose := fs.Bool("verbose", false, "log every parameter change and clamp (requires -log)")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return config{}, errUsage
		}
		return config{}, fmt.Errorf("%w: %v", errUsage, err)
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return config{}, errUsage
	}

	if *verbose && *logPath == "" {
		fmt.Fprintln(stderr, "-verbose requires -log <file>")
		return config{}, errUsage
	}

	off, err := strconv.ParseUint(*offset, 0, 64)
	if err != nil {
		fmt.Fprintf(stderr, "invalid -offset %q: %v\n", *offset, err)
		return config{}, errUsage
	}

	opts := viewer.Options{
		Offset: off,
		Width:  clampDimension(*width),
		Height: clampDimension(*height),
		Fit:    *fit,
		Alpha:  *alpha,
	}
	return config{
		path:    fs.Arg(0),
		opts:    opts,
		info:    *info,
		logPath: *logPath,
		verbose: *verbose,
	}, nil
}

func run(args []string, stdout, stderr io.Writer) error {
	cfg, err := parseArgs(args, stderr)
	if err != nil {
		return err
	}

	closeLog, err := setupLogging(cfg.logPath)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer closeLog()
	viewer.SetVerboseLogging(cfg.verbose)
	defer viewer.SetVerboseLogging(false)

	buf, err := mmap.MapFile(cfg.path)
	if err != nil {
		return err
	}
	log.Printf("mapped %s (%d bytes)", buf.Path(), buf.Len())

	app := viewer.New(buf, cfg.opts)
	if cfg.info {
		return app.Summary(stdout)
	}

	if f, ok := stdout.(*os.File); !ok || !term.IsTerminal(int(f.Fd())) {
		return errors.New("stdout is not a terminal (use -info for a text summary)")
	}
	if err := viewer.Run(app); err != nil {
		return err
	}
	log.Printf("session ended at %s", app.Model().State())
	return nil
}

// setupLogging sends the standard logger to path, or discards it: the
// terminal belongs to the UI while it runs.
func setupLogging(path string) (func(), error) {
	if path == "" {
		log.SetOutput(io.Discard)
		return func() {}, nil
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o640)
	if err != nil {
		return nil, err
	}
	log.SetOutput(file)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	return func() {
		log.SetOutput(io.Discard)
		file.Close()
	}, nil
}

func clampDimension(v uint) uint32 {
	if uint64(v) > 1<<32-1 {
		return 1<<32 - 1
	}
	return uint32(v)
}
