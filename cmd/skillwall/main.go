package main

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/skillwall/internal/config"
	"github.com/san-kum/skillwall/internal/export"
	"github.com/san-kum/skillwall/internal/gui"
	"github.com/san-kum/skillwall/internal/pointfield"
	"github.com/san-kum/skillwall/internal/show"
	"github.com/san-kum/skillwall/internal/sim"
	"github.com/san-kum/skillwall/internal/survey"
	"github.com/san-kum/skillwall/internal/viz"
)

var (
	configFile string
	preset     string
	sourceURL  string
	qrPath     string
	seed       int64
	offline    bool
	width      int
	height     int
	logFile    string
	verbose    bool
	theme      string
	// record
	seconds    float64
	fps        int
	recordFrom float64
	recordOut  string
	// snapshot
	snapshotAt  float64
	snapshotOut string
)

var background = color.RGBA{R: 10, G: 10, B: 10, A: 255}

const qrRenderSize = 512

// main registers the commands and runs the window kiosk when no subcommand
// is given.
func main() {
	rootCmd := &cobra.Command{
		Use:          "skillwall",
		Short:        "kiosk display of who can teach and who wants to learn",
		SilenceUsage: true,
		RunE:         runGUI,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.StringVar(&sourceURL, "source", "", "survey TSV export URL")
	pf.StringVar(&qrPath, "qr", "", "QR code image path")
	pf.Int64Var(&seed, "seed", 0, "random seed")
	pf.BoolVar(&offline, "offline", false, "use demo data instead of fetching the survey")
	pf.IntVar(&width, "width", 0, "canvas width")
	pf.IntVar(&height, "height", 0, "canvas height")
	pf.StringVar(&logFile, "log-file", "", "write logs to this file")
	pf.BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "run the kiosk in the terminal",
		RunE:  runTUI,
	}
	tuiCmd.Flags().StringVar(&theme, "theme", "ceid", "stats panel theme ("+strings.Join(viz.ThemeNames(), ", ")+")")

	recordCmd := &cobra.Command{
		Use:   "record",
		Short: "record the display to a GIF",
		RunE:  runRecord,
	}
	recordCmd.Flags().Float64Var(&seconds, "seconds", 10, "recording length")
	recordCmd.Flags().IntVar(&fps, "fps", 20, "frame rate")
	recordCmd.Flags().StringVarP(&recordOut, "out", "o", "skillwall.gif", "output file")
	recordCmd.Flags().Float64Var(&recordFrom, "at", 0, "start recording this many seconds in")

	snapshotCmd := &cobra.Command{
		Use:   "snapshot",
		Short: "write one frame as SVG or PNG",
		RunE:  runSnapshot,
	}
	snapshotCmd.Flags().Float64Var(&snapshotAt, "at", 2, "seconds into the show")
	snapshotCmd.Flags().StringVarP(&snapshotOut, "out", "o", "skillwall.png", "output file (.svg or .png)")

	bucketsCmd := &cobra.Command{
		Use:   "buckets",
		Short: "fetch the survey and print counts per phase",
		RunE:  printBuckets,
	}

	phasesCmd := &cobra.Command{
		Use:   "phases",
		Short: "list the configured phases",
		RunE:  printPhases,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Run: func(cmd *cobra.Command, args []string) {
			for _, p := range config.ListPresets() {
				fmt.Printf("  %s\n", p)
			}
		},
	}

	configCmd := &cobra.Command{
		Use:   "config [path]",
		Short: "write the resolved configuration as yaml",
		Args:  cobra.MaximumNArgs(1),
		RunE:  writeConfig,
	}

	rootCmd.AddCommand(tuiCmd, recordCmd, snapshotCmd, bucketsCmd, phasesCmd, presetsCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig layers preset, config file and flags, in that order.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		p, err := config.Resolve(preset)
		if err != nil {
			return nil, err
		}
		cfg = p
	}
	if configFile != "" {
		c, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = c
	}

	flags := cmd.Flags()
	if flags.Changed("source") {
		cfg.Source.URL = sourceURL
	}
	if flags.Changed("qr") {
		cfg.QR.Image = qrPath
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("offline") {
		cfg.Source.Offline = offline
	}
	if flags.Changed("width") {
		cfg.Canvas.Width = width
	}
	if flags.Changed("height") {
		cfg.Canvas.Height = height
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// newLogger writes to --log-file when given. Otherwise it writes to stderr,
// or nowhere when quiet so a full-screen terminal UI is not corrupted.
func newLogger(quiet bool) (*slog.Logger, func(), error) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}

	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		return slog.New(slog.NewTextHandler(f, opts)), func() { f.Close() }, nil
	}
	if quiet {
		return slog.New(slog.DiscardHandler), func() {}, nil
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts)), func() {}, nil
}

// loadQR prefers the configured image, then a code generated from the URL.
// A nil image makes the QR phase show its label.
func loadQR(cfg *config.Config, logger *slog.Logger) image.Image {
	if cfg.QR.Image != "" {
		img, err := pointfield.LoadQRImage(cfg.QR.Image)
		if err == nil {
			return img
		}
		logger.Warn("qr image unavailable", "path", cfg.QR.Image, "error", err)
	}
	if cfg.QR.URL != "" {
		img, err := pointfield.EncodeQR(cfg.QR.URL, qrRenderSize)
		if err == nil {
			return img
		}
		logger.Warn("qr encode failed", "url", cfg.QR.URL, "error", err)
	}
	return nil
}

func newLoader(cfg *config.Config, logger *slog.Logger) *survey.Loader {
	var f survey.Fetcher
	if !cfg.Source.Offline && cfg.Source.URL != "" {
		f = survey.NewClient(cfg.Source.URL, cfg.FetchTimeout())
	}
	cols := survey.Columns{Teach: cfg.Source.TeachColumn, Learn: cfg.Source.LearnColumn}
	return survey.NewLoader(f, cfg.PhaseList(), cols, cfg.RefreshInterval(), logger)
}

type app struct {
	cfg     *config.Config
	logger  *slog.Logger
	session *sim.Session
	loader  *survey.Loader
	close   func()
}

func setup(cmd *cobra.Command, quiet bool) (*app, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	logger, closeLog, err := newLogger(quiet)
	if err != nil {
		return nil, err
	}
	logger.Info("starting", "phases", len(cfg.Phases), "canvas", fmt.Sprintf("%dx%d", cfg.Canvas.Width, cfg.Canvas.Height), "seed", cfg.Seed)

	session, err := sim.Build(cfg, loadQR(cfg, logger), logger)
	if err != nil {
		closeLog()
		return nil, err
	}
	return &app{
		cfg:     cfg,
		logger:  logger,
		session: session,
		loader:  newLoader(cfg, logger),
		close:   closeLog,
	}, nil
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func runGUI(cmd *cobra.Command, args []string) error {
	a, err := setup(cmd, false)
	if err != nil {
		return err
	}
	defer a.close()

	ctx, cancel := signalContext()
	defer cancel()
	gui.Run(ctx, a.session, a.loader, a.logger)
	return nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	a, err := setup(cmd, true)
	if err != nil {
		return err
	}
	defer a.close()

	ctx, cancel := signalContext()
	defer cancel()

	refresh := a.cfg.RefreshInterval()
	if a.cfg.Source.Offline {
		refresh = 0
	}
	viz.SetTheme(theme)
	return viz.Run(ctx, a.session, a.loader, refresh)
}

// prime loads the survey once so offline renders have bubbles.
func (a *app) prime(ctx context.Context) {
	a.session.ApplyUpdate(a.loader.Initial(ctx))
}

func runRecord(cmd *cobra.Command, args []string) error {
	a, err := setup(cmd, false)
	if err != nil {
		return err
	}
	defer a.close()

	ctx, cancel := signalContext()
	defer cancel()
	a.prime(ctx)

	export.Advance(a.session, seconds2dur(recordFrom), fps)
	anim, err := export.RecordGIF(a.session, seconds2dur(seconds), fps, background)
	if err != nil {
		return err
	}

	f, err := os.Create(recordOut)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := export.WriteGIF(f, anim); err != nil {
		return fmt.Errorf("write gif: %w", err)
	}
	fmt.Printf("recorded %d frames to %s\n", len(anim.Image), recordOut)
	return nil
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	a, err := setup(cmd, false)
	if err != nil {
		return err
	}
	defer a.close()

	ctx, cancel := signalContext()
	defer cancel()
	a.prime(ctx)
	export.Advance(a.session, seconds2dur(snapshotAt), 60)

	var write func(io.Writer, export.Scene, color.RGBA) error
	switch strings.ToLower(filepath.Ext(snapshotOut)) {
	case ".svg":
		write = export.WriteSVG
	case ".png":
		write = export.WritePNG
	default:
		return fmt.Errorf("unsupported snapshot format %q (use .svg or .png)", filepath.Ext(snapshotOut))
	}

	f, err := os.Create(snapshotOut)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := write(f, a.session, background); err != nil {
		return err
	}
	snap := a.session.Snapshot()
	fmt.Printf("wrote %s (phase %q, morph %.2f, %d teach, %d learn)\n", snapshotOut, snap.Phase.Key, snap.MorphT, snap.Teach, snap.Learn)
	fmt.Printf("energy %.3f  peak %.3f  overlap %.1f%%\n", snap.Energy, snap.PeakEnergy, snap.Overlap*100)
	return nil
}

func printBuckets(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger, closeLog, err := newLogger(false)
	if err != nil {
		return err
	}
	defer closeLog()

	ctx, cancel := signalContext()
	defer cancel()
	u := newLoader(cfg, logger).Initial(ctx)

	fmt.Println(u.Status)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PHASE\tTEACH\tLEARN")
	for _, p := range cfg.PhaseList() {
		if p.Reserved() {
			continue
		}
		b := u.Buckets[p.Key]
		fmt.Fprintf(w, "%s\t%d\t%d\n", p.Key, b.Teach, b.Learn)
	}
	return w.Flush()
}

func printPhases(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "#\tKEY\tLABEL\tDURATION\tBUBBLES")
	for i, p := range cfg.PhaseList() {
		bubbles := "yes"
		if p.Reserved() {
			bubbles = "-"
		}
		label := p.Label
		if p.Key == show.KeyQR && cfg.QR.Image != "" {
			label = cfg.QR.Image
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", i, p.Key, label, p.Duration, bubbles)
	}
	return w.Flush()
}

func writeConfig(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	path := "skillwall.yaml"
	if len(args) > 0 {
		path = args[0]
	}
	if err := config.Save(path, cfg); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}

func seconds2dur(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
