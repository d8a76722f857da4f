package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/flakesim/internal/anim"
	"github.com/san-kum/flakesim/internal/config"
	"github.com/san-kum/flakesim/internal/export"
	"github.com/san-kum/flakesim/internal/flake"
	"github.com/san-kum/flakesim/internal/gui"
	"github.com/san-kum/flakesim/internal/viz"
	"github.com/san-kum/flakesim/internal/web"
	"github.com/spf13/cobra"
)

var (
	// Fractal parameters
	layers    int
	branches  int
	size      float64
	baseAngle float64
	speed     float64
	direction bool
	// Share query, e.g. "layers=4&branches=6"
	query string
	// Config file
	configFile string
	// Preset name
	preset string
	// Hosts
	themeName string
	baseURL   string
	logFile   string
	addr      string
	width     float64
	height    float64
	// render
	outFile string
	format  string
	force   bool
	// serve
	maxSegments int
	// link
	showQR bool
	qrFile string
)

// main is the entry point for the flakesim CLI; it registers commands and flags, starts the live terminal view when no subcommand is provided, and executes the root command.
// It exits the process with status 1 if command execution returns an error.
func main() {
	rootCmd := &cobra.Command{
		Use:   "flakesim",
		Short: "animated recursive snowflake fractals",
		RunE:  runLive,
	}

	pf := rootCmd.PersistentFlags()
	pf.IntVar(&layers, config.KeyLayers, config.DefaultDepth, "recursion depth")
	pf.IntVar(&branches, config.KeyBranches, config.DefaultBranches, "branches per node")
	pf.Float64Var(&size, config.KeySize, config.DefaultSize, "length of the first branches")
	pf.Float64Var(&baseAngle, config.KeyBaseAngle, config.DefaultBaseAngle, "starting angle in degrees")
	pf.Float64Var(&speed, config.KeySpeed, config.DefaultSpeed, "rotation speed")
	pf.BoolVar(&direction, config.KeyDirection, config.DefaultDirection, "rotate with increasing angle")
	pf.StringVar(&query, "query", "", "share query to start from (overrides config and preset)")
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset parameters")
	pf.StringVar(&baseURL, "base-url", "http://localhost:8080/", "base of the share link")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "animate the flake in the terminal",
		RunE:  runLive,
	}
	for _, cmd := range []*cobra.Command{rootCmd, liveCmd} {
		cmd.Flags().StringVar(&themeName, "theme", config.DefaultTheme, "color theme "+fmt.Sprint(viz.ThemeNames()))
		cmd.Flags().StringVar(&logFile, "log", "", "write log output to this file")
	}

	renderCmd := &cobra.Command{
		Use:   "render",
		Short: "render a single frame",
		RunE:  runRender,
	}
	renderCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")
	renderCmd.Flags().StringVar(&format, "format", "svg", "output format: svg, text or dots")

	windowCmd := &cobra.Command{
		Use:   "window",
		Short: "animate the flake in a native window",
		RunE:  runWindow,
	}

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "serve the animation to browsers",
		RunE:  runServe,
	}
	serveCmd.Flags().StringVar(&addr, "addr", "localhost:8080", "listen address")
	serveCmd.Flags().IntVar(&maxSegments, "max-segments", web.DefaultMaxSegments, "segment budget per frame of each browser session (0 disables)")

	for _, cmd := range []*cobra.Command{renderCmd, serveCmd} {
		cmd.Flags().Float64Var(&width, "width", 800, "surface width")
		cmd.Flags().Float64Var(&height, "height", 800, "surface height")
	}

	linkCmd := &cobra.Command{
		Use:   "link",
		Short: "print the share link for the given parameters",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, _, err := resolveParams(cmd)
			if err != nil {
				return err
			}
			link, err := viz.NewShareLink(baseURL, p.Encode())
			if err != nil {
				return err
			}
			fmt.Println(link)
			return writeQR(link.String())
		},
	}
	linkCmd.Flags().BoolVar(&showQR, "qr", false, "print the link as a QR code")
	linkCmd.Flags().StringVar(&qrFile, "qr-png", "", "write the link as a QR code PNG")

	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "segment counts per recursion level",
		RunE:  runStats,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tSEGMENTS\tQUERY")
			for _, name := range config.ListPresets() {
				p, _ := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%d\t%s\n", name, flake.Count(p.Branches, p.Depth), p.Encode())
			}
			return w.Flush()
		},
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "manage config files",
	}
	configInitCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write the default config",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "flakesim.yaml"
			if len(args) > 0 {
				path = args[0]
			}
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s exists (use --force to overwrite)", path)
			}
			if err := config.Save(path, config.DefaultFile()); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", path)
			return nil
		},
	}
	configInitCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	configCmd.AddCommand(configInitCmd)

	rootCmd.AddCommand(liveCmd, renderCmd, windowCmd, serveCmd, linkCmd, statsCmd, presetsCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// resolveParams layers the parameter sources: config file, then preset, then
// the share query, then any flag set on the command line.
func resolveParams(cmd *cobra.Command) (config.Params, *config.File, error) {
	file := config.DefaultFile()
	if configFile != "" {
		cfg, err := config.Load(configFile)
		if err != nil {
			return config.Params{}, nil, fmt.Errorf("failed to load config: %w", err)
		}
		file = cfg
	}
	p := file.Params

	if preset != "" {
		pp, ok := config.GetPreset(preset)
		if !ok {
			return config.Params{}, nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		p = pp
	}

	if query != "" {
		qp, err := config.ParseQuery(query)
		if err != nil {
			return config.Params{}, nil, fmt.Errorf("bad query: %w", err)
		}
		p = qp
	}

	flags := cmd.Flags()
	if flags.Changed(config.KeyLayers) {
		p.Depth = layers
	}
	if flags.Changed(config.KeyBranches) {
		p.Branches = branches
	}
	if flags.Changed(config.KeySize) {
		p.Size = size
	}
	if flags.Changed(config.KeyBaseAngle) {
		p.BaseAngle = baseAngle
	}
	if flags.Changed(config.KeySpeed) {
		p.Speed = speed
	}
	if flags.Changed(config.KeyDirection) {
		p.Direction = direction
	}
	return p, file, nil
}

// fittedOptions sizes the surface so the clear region covers the largest
// flake the ranges allow. Hosts that scale to fit use it.
func fittedOptions(file *config.File) anim.Options {
	side := 2 * flake.Extent(file.Ranges.Size.Max, file.Ranges.Depth.ClampInt(config.MaxDepth))
	return anim.OptionsFromFile(file, side, side)
}

func writeQR(link string) error {
	if showQR {
		code, err := export.QRText(link)
		if err != nil {
			return err
		}
		fmt.Print(code)
	}
	if qrFile != "" {
		f, err := os.Create(qrFile)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := export.WriteQRPNG(f, link, 512); err != nil {
			return err
		}
		return f.Close()
	}
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	p, file, err := resolveParams(cmd)
	if err != nil {
		return err
	}
	if !cmd.Flags().Changed("theme") {
		themeName = file.Theme
	}

	// the terminal belongs to bubbletea
	if logFile != "" {
		f, err := tea.LogToFile(logFile, "flakesim")
		if err != nil {
			return err
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	link, err := viz.NewShareLink(baseURL, p.Encode())
	if err != nil {
		return err
	}
	opts := fittedOptions(file)
	build := func(loc anim.Location, s *viz.Surface) (*anim.Controller, error) {
		return anim.New(s, loc, p, opts, log.Default())
	}
	m, err := viz.NewModel(build, link, themeName)
	if err != nil {
		return err
	}

	prog := tea.NewProgram(m, tea.WithAltScreen())
	final, err := prog.Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(viz.Model); ok && fm.Err() != nil {
		return fm.Err()
	}
	fmt.Println(link)
	return nil
}

func runRender(cmd *cobra.Command, args []string) error {
	p, file, err := resolveParams(cmd)
	if err != nil {
		return err
	}

	var (
		surface flake.Surface
		emit    func(io.Writer) error
		opts    anim.Options
	)
	switch format {
	case "svg":
		svg := export.NewSVG(width, height)
		surface, opts = svg, anim.OptionsFromFile(file, width, height)
		emit = func(w io.Writer) error {
			_, err := svg.WriteTo(w)
			return err
		}
	case "text", "dots":
		canvas := viz.NewCanvas(int(width/10), int(height/20))
		s := viz.NewSurface(canvas)
		clamped := file.Ranges.Apply(p)
		s.Fit(flake.Extent(clamped.Size, clamped.Depth))
		surface, opts = s, fittedOptions(file)
		emit = func(w io.Writer) error {
			out := canvas.String()
			if format == "dots" {
				out = export.CanvasToSVG(canvas, 4)
			}
			_, err := io.WriteString(w, out)
			return err
		}
	default:
		return fmt.Errorf("unknown format: %s (available: svg, text, dots)", format)
	}

	if err := renderFrame(surface, p, opts); err != nil {
		return err
	}

	if outFile == "" {
		return emit(os.Stdout)
	}
	f, err := os.Create(outFile)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := emit(f); err != nil {
		return err
	}
	return f.Close()
}

// renderFrame drives a controller through its baseline and one rendered frame.
func renderFrame(surface flake.Surface, p config.Params, opts anim.Options) error {
	noop := anim.LocationFunc(func(string) error { return nil })
	ctrl, err := anim.New(surface, noop, p, opts, log.Default())
	if err != nil {
		return err
	}
	ctrl.Frame(0)
	if !ctrl.Frame(opts.Interval) {
		return ctrl.Err()
	}
	return nil
}

func runWindow(cmd *cobra.Command, args []string) error {
	p, file, err := resolveParams(cmd)
	if err != nil {
		return err
	}
	link, err := viz.NewShareLink(baseURL, p.Encode())
	if err != nil {
		return err
	}
	opts := fittedOptions(file)
	err = gui.Run(func(s flake.Surface, loc anim.Location) (*anim.Controller, error) {
		return anim.New(s, loc, p, opts, log.Default())
	}, link)
	if err != nil {
		return err
	}
	fmt.Println(link)
	return nil
}

func runServe(cmd *cobra.Command, args []string) error {
	_, file, err := resolveParams(cmd)
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	srv := web.New(anim.OptionsFromFile(file, width, height), log.Default())
	srv.MaxSegments = maxSegments
	return srv.ListenAndServe(ctx, addr)
}

func runStats(cmd *cobra.Command, args []string) error {
	p, file, err := resolveParams(cmd)
	if err != nil {
		return err
	}
	clamped := file.Ranges.Apply(p)
	if clamped != p {
		fmt.Printf("clamped to %s\n\n", clamped.Encode())
	}

	counts := flake.LevelCounts(clamped.Branches, clamped.Depth)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "LEVEL\tSIZE\tWIDTH\tSEGMENTS")
	sz, lw := clamped.Size, file.LineWidth
	for i, n := range counts {
		fmt.Fprintf(w, "%d\t%.2f\t%.3f\t%d\n", i+1, sz, lw, n)
		sz, lw = sz/2, lw/2
	}
	fmt.Fprintf(w, "total\t\t\t%d\n", flake.Count(clamped.Branches, clamped.Depth))
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Printf("\nextent: %.2f\n", flake.Extent(clamped.Size, clamped.Depth))
	fmt.Printf("hue: %s, step %.2f°/frame\n", flake.HueColor(clamped.BaseAngle).CSS(),
		anim.Step(clamped.Speed, file.RotationFactor, clamped.Direction))

	if len(counts) > 1 {
		data := make([]float64, len(counts))
		for i, n := range counts {
			data[i] = float64(n)
		}
		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(60),
			asciigraph.Caption("segments per level"),
		)
		fmt.Printf("\n%s\n", graph)
	}
	return nil
}
