// Package cli implements the img2ascii command-line interface.
//
// A single root command converts one image. Settings come from an
// optional TOML file (see the config package) with flags applied on top.
// With --interactive the image is loaded once and handed to the shell,
// which keeps its tile cache across renders.
package cli

import (
	"context"
	"fmt"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/wbrown/img2ascii"
	"github.com/wbrown/img2ascii/imageutil"
	"github.com/wbrown/img2ascii/internal/config"
	"github.com/wbrown/img2ascii/internal/shell"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// SetVersion sets the version information displayed by --version.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the img2ascii CLI with the process arguments and streams.
func Execute(ctx context.Context) error {
	return newRootCmd().ExecuteContext(ctx)
}

type rootOptions struct {
	configPath    string
	font          string
	glyphSize     int
	chars         []string
	width         int
	minWidth      int
	maxWidth      int
	output        string
	console       bool
	interactive   bool
	maxImageWidth int
	verbose       bool
}

func newRootCmd() *cobra.Command {
	var opts rootOptions

	root := &cobra.Command{
		Use:   "img2ascii [flags] <image>",
		Short: "Convert images to text art by brightness matching",
		Long: `img2ascii cuts an image into square tiles and replaces each tile with the
symbol whose rendered ink density best matches the tile's brightness.

Output goes to an HTML, PNG or text file chosen by extension, or to the
console. With --interactive the symbol set and resolution can be changed
between renders.`,
		Version:      version,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if opts.verbose {
				level = charmlog.DebugLevel
			}
			cmd.SetContext(withLogger(cmd.Context(), newLogger(cmd.ErrOrStderr(), level)))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.resolve(cmd)
			if err != nil {
				return err
			}
			return run(cmd, args[0], cfg, runMode{
				interactive:   opts.interactive,
				explicitWidth: cmd.Flags().Changed("width"),
			})
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("img2ascii %s\ncommit: %s\nbuilt: %s\n", version, commit, date))

	f := root.Flags()
	f.StringVar(&opts.configPath, "config", "", "path to a TOML config file")
	f.StringVar(&opts.font, "font", img2ascii.DefaultFont, "font: gomono, goregular, inconsolata, basic, or a .ttf path")
	f.IntVar(&opts.glyphSize, "glyph-size", img2ascii.DefaultGlyphSize, "glyph bitmap size used to profile symbols")
	f.StringArrayVar(&opts.chars, "chars", []string{"0-9"}, "symbol range, repeatable: a single symbol, a-b, all, or space")
	f.IntVar(&opts.width, "width", 64, "symbols per row")
	f.IntVar(&opts.minWidth, "min-width", 0, "lowest symbols per row when the width is clamped (0 derives it from the image)")
	f.IntVar(&opts.maxWidth, "max-width", 0, "highest symbols per row when the width is clamped (0 derives it from the image)")
	f.StringVarP(&opts.output, "output", "o", "out.html", "output file (.html, .png, or text)")
	f.BoolVar(&opts.console, "console", false, "print to stdout instead of writing a file")
	f.BoolVarP(&opts.interactive, "interactive", "i", false, "start the interactive shell")
	f.IntVar(&opts.maxImageWidth, "max-image-width", 0, "downscale wider images first (0 disables)")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable verbose logging")

	return root
}

// resolve loads the config file and applies the flags that were set.
func (o *rootOptions) resolve(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return config.Config{}, err
	}

	f := cmd.Flags()
	if f.Changed("font") {
		cfg.Font = o.font
	}
	if f.Changed("glyph-size") {
		cfg.GlyphSize = o.glyphSize
	}
	if f.Changed("chars") {
		cfg.Chars = o.chars
	}
	if f.Changed("width") {
		cfg.Width = o.width
	}
	if f.Changed("min-width") {
		cfg.MinWidth = o.minWidth
	}
	if f.Changed("max-width") {
		cfg.MaxWidth = o.maxWidth
	}
	if f.Changed("output") {
		cfg.Output = o.output
	}
	if f.Changed("console") {
		cfg.Console = o.console
	}
	if f.Changed("max-image-width") {
		cfg.MaxImageWidth = o.maxImageWidth
	}

	return cfg, cfg.Validate()
}

// runMode carries the flags that change how run uses the config.
type runMode struct {
	interactive bool
	// explicitWidth is set when --width was given. An explicit width is
	// used as is, so one too large for the image is an error; otherwise
	// the width is clamped to the image like the shell does.
	explicitWidth bool
}

// renderWidth returns the symbols per row for a one-shot render.
func renderWidth(img img2ascii.Image, cfg config.Config, explicit bool) int {
	if explicit {
		return cfg.Width
	}
	lo, hi := img2ascii.WidthBounds(img)
	if cfg.MinWidth > 0 {
		lo = cfg.MinWidth
	}
	if cfg.MaxWidth > 0 {
		hi = cfg.MaxWidth
	}
	return img2ascii.ClampWidth(cfg.Width, lo, hi)
}

func run(cmd *cobra.Command, path string, cfg config.Config, mode runMode) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	img, err := imageutil.LoadImage(path)
	if err != nil {
		return err
	}
	if fitted := imageutil.FitWidth(img, cfg.MaxImageWidth); fitted != img {
		logger.Debug("downscaled image",
			"from", fmt.Sprintf("%dx%d", img.Width(), img.Height()),
			"to", fmt.Sprintf("%dx%d", fitted.Width(), fitted.Height()))
		img = fitted
	}

	renderer, err := img2ascii.NewGlyphRenderer(cfg.Font)
	if err != nil {
		return err
	}
	conv := img2ascii.NewConverter(img,
		img2ascii.WithGlyphRenderer(renderer),
		img2ascii.WithGlyphSize(cfg.GlyphSize),
		img2ascii.WithLogger(logger))
	logger.Debug("loaded image", "path", path, "width", img.Width(), "height", img.Height(), "font", renderer.Name())

	if mode.interactive {
		sh := shell.New(conv, img, shell.Options{
			Symbols:  cfg.Symbols(),
			Width:    cfg.Width,
			MinWidth: cfg.MinWidth,
			MaxWidth: cfg.MaxWidth,
			Output:   cfg.Output,
			Console:  cfg.Console,
			Cell:     cfg.GlyphSize,
			Logger:   logger,
		})
		return sh.Run(ctx, cmd.InOrStdin(), cmd.OutOrStdout())
	}

	width := renderWidth(img, cfg, mode.explicitWidth)
	if width != cfg.Width {
		logger.Debug("clamped width", "from", cfg.Width, "to", width)
	}

	prog := newProgress(logger)
	grid, err := conv.Convert(width, cfg.Symbols())
	if err != nil {
		return err
	}
	if grid.Rows() == 0 {
		logger.Warn("nothing to render", "symbols", len(cfg.Chars), "width", width)
		return nil
	}

	if cfg.Console {
		return img2ascii.WriteText(cmd.OutOrStdout(), grid)
	}
	if err := img2ascii.WriteFile(cfg.Output, grid, renderer, cfg.GlyphSize); err != nil {
		return err
	}
	prog.done("wrote "+cfg.Output, "rows", grid.Rows(), "cols", grid.Cols())
	return nil
}
