// Package shell implements the interactive img2ascii command loop.
//
// The shell reads one command per line and keeps a symbol set, a
// resolution, and an output target between renders:
//
//	>>> add a-z
//	>>> res up
//	Width set to 128
//	>>> console
//	>>> render
package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/wbrown/img2ascii"
)

const (
	prompt = ">>> "

	msgInvalidCommand = "ERROR!: Invalid command"
	msgInvalidArity   = "ERROR!: Incorrect amount of params for this action"
	msgInvalidRange   = "ERROR!: Invalid input to %s chars command"
	msgWidthSet       = "Width set to %d"
	msgMaxResolution  = "ERROR!: You've reached the maximal resolution"
	msgMinResolution  = "ERROR!: You've reached the minimal resolution"
	msgInvalidRes     = "ERROR!: Invalid input to resolution change command"

	// resolutionFactor scales the width on every res command.
	resolutionFactor = 2
)

// Options configures a Shell.
type Options struct {
	// Symbols is the initial symbol set. Nil means 0-9.
	Symbols *img2ascii.SymbolSet
	// Width is the initial number of symbols per row, clamped to the
	// resolution bounds.
	Width int
	// MinWidth and MaxWidth override the bounds derived from the image
	// when positive.
	MinWidth int
	MaxWidth int
	// Output is the file renders are written to until the console
	// command is given.
	Output string
	// Console starts the shell rendering to its writer.
	Console bool
	// Cell is the pixel size of a symbol in PNG output.
	Cell int
	Logger *log.Logger
}

// Shell is a line-oriented command interpreter around a Converter.
type Shell struct {
	conv    *img2ascii.Converter
	symbols *img2ascii.SymbolSet
	width   int
	min     int
	max     int
	output  string
	console bool
	cell    int
	logger  *log.Logger
}

// New creates a shell converting img with conv. The resolution bounds
// come from img2ascii.WidthBounds unless overridden.
func New(conv *img2ascii.Converter, img img2ascii.Image, opts Options) *Shell {
	lo, hi := img2ascii.WidthBounds(img)
	s := &Shell{
		conv:    conv,
		symbols: opts.Symbols,
		min:     lo,
		max:     hi,
		output:  opts.Output,
		console: opts.Console,
		cell:    opts.Cell,
		logger:  opts.Logger,
	}
	if s.symbols == nil {
		s.symbols = img2ascii.NewSymbolSet()
		s.symbols.AddRange('0', '9')
	}
	if opts.MinWidth > 0 {
		s.min = opts.MinWidth
	}
	if opts.MaxWidth > 0 {
		s.max = opts.MaxWidth
	}
	if s.cell <= 0 {
		s.cell = img2ascii.DefaultGlyphSize
	}
	if s.logger == nil {
		s.logger = log.New(io.Discard)
	}
	s.width = img2ascii.ClampWidth(opts.Width, s.min, s.max)
	return s
}

// Width returns the current number of symbols per row.
func (s *Shell) Width() int {
	return s.width
}

// Symbols returns the current symbol set.
func (s *Shell) Symbols() *img2ascii.SymbolSet {
	return s.symbols
}

// Run reads commands from in until "exit", end of input, or ctx is done,
// and writes responses to out. It returns ctx.Err() on cancellation and
// read errors from in; command errors are reported on out.
//
// Lines are read on a separate goroutine, so cancellation is noticed even
// while waiting for input. That goroutine stays blocked in a pending read
// of in until the read returns; callers that need it gone should close in.
func (s *Shell) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	st := newStyles(out)
	lines, readErr := readLines(ctx, in)

	for {
		fmt.Fprint(out, st.prompt.Render(prompt))

		var line string
		select {
		case <-ctx.Done():
			return ctx.Err()
		case l, ok := <-lines:
			if !ok {
				return <-readErr
			}
			line = l
		}

		words := strings.Fields(line)
		if len(words) == 0 {
			continue
		}
		if words[0] == "exit" {
			return nil
		}
		s.dispatch(words[0], words[1:], out, st)

		if err := ctx.Err(); err != nil {
			return err
		}
	}
}

// readLines scans in on its own goroutine. The lines channel is closed at
// end of input or when ctx is done, after the scan error (or ctx.Err())
// has been sent on the buffered error channel.
func readLines(ctx context.Context, in io.Reader) (<-chan string, <-chan error) {
	lines := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				errc <- ctx.Err()
				return
			}
		}
		errc <- scanner.Err()
	}()
	return lines, errc
}

// arity is the parameter count of each command.
var arity = map[string]int{
	"chars":   0,
	"add":     1,
	"remove":  1,
	"res":     1,
	"console": 0,
	"render":  0,
}

func (s *Shell) dispatch(cmd string, params []string, out io.Writer, st styles) {
	want, known := arity[cmd]
	if !known {
		st.printError(out, msgInvalidCommand)
		return
	}
	if len(params) != want {
		st.printError(out, msgInvalidArity)
		return
	}

	switch cmd {
	case "chars":
		fmt.Fprintln(out, s.symbols.String())
	case "add":
		s.changeSymbols(params[0], true, out, st)
	case "remove":
		s.changeSymbols(params[0], false, out, st)
	case "res":
		s.changeResolution(params[0], out, st)
	case "console":
		s.console = true
	case "render":
		s.render(out, st)
	}
}

func (s *Shell) changeSymbols(expr string, add bool, out io.Writer, st styles) {
	lo, hi, ok := img2ascii.ParseRange(expr)
	if !ok {
		action := "remove"
		if add {
			action = "add"
		}
		st.printError(out, fmt.Sprintf(msgInvalidRange, action))
		return
	}
	if add {
		s.symbols.AddRange(lo, hi)
	} else {
		s.symbols.RemoveRange(lo, hi)
	}
}

func (s *Shell) changeResolution(param string, out io.Writer, st styles) {
	switch param {
	case "up":
		if s.width*resolutionFactor > s.max {
			st.printError(out, msgMaxResolution)
			return
		}
		s.width *= resolutionFactor
	case "down":
		if s.width/resolutionFactor < s.min {
			st.printError(out, msgMinResolution)
			return
		}
		s.width /= resolutionFactor
	default:
		st.printError(out, msgInvalidRes)
		return
	}
	fmt.Fprintln(out, st.info.Render(fmt.Sprintf(msgWidthSet, s.width)))
}

// render converts at the current width. Requests the converter rejects
// and empty grids produce no output.
func (s *Shell) render(out io.Writer, st styles) {
	grid, err := s.conv.Convert(s.width, s.symbols)
	if errors.Is(err, img2ascii.ErrInvalidRequest) {
		s.logger.Debug("render skipped", "err", err)
		return
	}
	if err != nil {
		st.printError(out, "ERROR!: "+err.Error())
		return
	}
	if grid.Rows() == 0 {
		return
	}

	if s.console {
		if err := img2ascii.WriteText(out, grid); err != nil {
			s.logger.Error("failed to write render", "err", err)
		}
		return
	}

	renderer, err := s.conv.GlyphRenderer()
	if err != nil {
		st.printError(out, "ERROR!: "+err.Error())
		return
	}
	if err := img2ascii.WriteFile(s.output, grid, renderer, s.cell); err != nil {
		st.printError(out, "ERROR!: "+err.Error())
		return
	}
	s.logger.Info("rendered", "path", s.output, "rows", grid.Rows(), "cols", grid.Cols())
}
