// Package main provides the CLI entrypoint for folio.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/tnesh/folio/internal/config"
	"github.com/tnesh/folio/internal/content"
	"github.com/tnesh/folio/internal/model"
	"github.com/tnesh/folio/internal/scroll"
	"github.com/tnesh/folio/internal/shuffle"
	"github.com/tnesh/folio/internal/store"
	"github.com/tnesh/folio/internal/tui"
	"github.com/tnesh/folio/internal/visits"
)

const (
	defaultFPS            = 60
	maxFPS                = 240
	defaultSnapshotWidth  = 80
	defaultSnapshotHeight = 24
	defaultContentRef     = "default"
)

var (
	runContent   string
	runAlphabet  string
	runDuration  time.Duration
	runDirection string
	runFPS       int
	runNoRecord  bool

	configContent bool

	visitsSince string
	visitsLast  int

	snapshotAt     int
	snapshotWidth  int
	snapshotHeight int
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "folio",
		Short:         "Animated terminal portfolio",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runPortfolioCmd,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&runContent, "content", "", "portfolio TOML file (default: built-in)")
	flags.StringVar(&runAlphabet, "alphabet", shuffle.DefaultAlphabet, "shuffle glyph alphabet")
	flags.DurationVar(&runDuration, "duration", shuffle.DefaultDuration, "shuffle reveal duration")
	flags.StringVar(&runDirection, "direction", shuffle.LeftToRight.String(), "shuffle direction (ltr or rtl)")
	flags.IntVar(&runFPS, "fps", defaultFPS, "frames per second")
	rootCmd.Flags().BoolVar(&runNoRecord, "no-record", false, "do not record this visit")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newVisitsCmd())
	rootCmd.AddCommand(newSnapshotCmd())
	rootCmd.AddCommand(newShuffleCmd())

	return rootCmd
}

// resolveConfig merges the config file under the command line flags and validates the result.
func resolveConfig(cmd *cobra.Command) (model.Config, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return model.Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "content", &runContent, fileCfg.Content.Path)
	applyStringConfig(cmd, "alphabet", &runAlphabet, fileCfg.Shuffle.Alphabet)
	applyDurationConfig(cmd, "duration", &runDuration, fileCfg.Shuffle.DurationMs)
	applyStringConfig(cmd, "direction", &runDirection, fileCfg.Shuffle.Direction)
	applyIntConfig(cmd, "fps", &runFPS, fileCfg.Display.FPS)
	if fileCfg.Visits.Record != nil && !flagChanged(cmd, "no-record") {
		runNoRecord = !*fileCfg.Visits.Record
	}

	cfg := model.Config{
		ContentPath:  runContent,
		Alphabet:     runAlphabet,
		Duration:     runDuration,
		Direction:    runDirection,
		FPS:          runFPS,
		GlidePerRow:  scroll.DefaultGlidePerUnit,
		GlideMax:     scroll.DefaultGlideMax,
		RecordVisits: !runNoRecord,
	}
	if v := fileCfg.Display.GlideMsPerRow; v != nil {
		cfg.GlidePerRow = time.Duration(*v) * time.Millisecond
	}
	if v := fileCfg.Display.GlideMaxMs; v != nil {
		cfg.GlideMax = time.Duration(*v) * time.Millisecond
	}
	if cfg.ContentPath == "" {
		if _, err := os.Stat(config.DefaultContentPath()); err == nil {
			cfg.ContentPath = config.DefaultContentPath()
		}
	}

	if err := validateConfig(cfg); err != nil {
		return model.Config{}, err
	}
	return cfg, nil
}

// buildOptions loads the portfolio and turns a validated config into UI options.
func buildOptions(cfg model.Config) (tui.Options, error) {
	portfolio, err := content.Load(cfg.ContentPath)
	if err != nil {
		return tui.Options{}, err
	}
	shuffleOpts, err := shuffleOptions(cfg)
	if err != nil {
		return tui.Options{}, err
	}
	ref := cfg.ContentPath
	if ref == "" {
		ref = defaultContentRef
	}
	return tui.Options{
		Portfolio:   portfolio,
		ContentRef:  ref,
		Shuffle:     shuffleOpts,
		FPS:         cfg.FPS,
		GlidePerRow: cfg.GlidePerRow,
		GlideMax:    cfg.GlideMax,
	}, nil
}

func shuffleOptions(cfg model.Config) (shuffle.Options, error) {
	dir, err := shuffle.ParseDirection(cfg.Direction)
	if err != nil {
		return shuffle.Options{}, err
	}
	return shuffle.Options{
		Alphabet:  cfg.Alphabet,
		Direction: dir,
		Duration:  cfg.Duration,
	}, nil
}

func runPortfolioCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	opts, err := buildOptions(cfg)
	if err != nil {
		return err
	}

	if cfg.RecordVisits {
		st, err := store.Open(config.DefaultDBPath())
		if err != nil {
			logErrf("failed to open db, visit will not be recorded: %v\n", err)
		} else {
			defer func() {
				if cerr := st.Close(); cerr != nil {
					logErrf("failed to close db: %v\n", cerr)
				}
			}()
			opts.Sink = st
		}
	}

	m, err := tui.NewModel(opts)
	if err != nil {
		return err
	}
	program := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
	cmd.Flags().BoolVar(&configContent, "portfolio", false, "create/open an editable copy of the portfolio content instead")
	return cmd
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	template := defaultConfigTemplate()
	if configContent {
		path = config.DefaultContentPath()
		template = content.DefaultDocument()
	}
	if err := ensureFile(path, template); err != nil {
		return err
	}
	return openEditor(path)
}

func ensureFile(path, template string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat %s: %w", path, err)
		}
		if err := os.WriteFile(path, []byte(template), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
	}
	return nil
}

func openEditor(path string) error {
	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func newVisitsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "visits",
		Short: "Show recorded visits",
		Args:  cobra.NoArgs,
		RunE:  runVisitsCmd,
	}
	cmd.Flags().StringVar(&visitsSince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&visitsLast, "last", 0, "limit to last N visits")
	return cmd
}

func runVisitsCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := parseVisitsConfig(visitsSince, visitsLast)
	if err != nil {
		return err
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	report, err := visits.BuildReport(context.Background(), st, cfg)
	if err != nil {
		return err
	}
	return writeReport(cmd.OutOrStdout(), report)
}

func parseVisitsConfig(since string, last int) (model.VisitsConfig, error) {
	if last < 0 {
		return model.VisitsConfig{}, fmt.Errorf("--last must be >= 0")
	}
	cfg := model.VisitsConfig{Last: last}
	if since != "" {
		parsed, err := time.ParseInLocation("2006-01-02", since, time.Local)
		if err != nil {
			return model.VisitsConfig{}, fmt.Errorf("invalid --since value: %w", err)
		}
		cfg.Since = &parsed
	}
	return cfg, nil
}

func writeReport(w io.Writer, report visits.Report) error {
	if err := visits.RenderSummary(w, report.Visits); err != nil {
		return err
	}
	if len(report.Sections) == 0 {
		return nil
	}
	return visits.RenderSectionTable(w, report.Sections)
}

func newSnapshotCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Print one settled frame of the portfolio",
		Args:  cobra.NoArgs,
		RunE:  runSnapshotCmd,
	}
	cmd.Flags().IntVar(&snapshotAt, "at", 0, "scroll row to render")
	cmd.Flags().IntVar(&snapshotWidth, "width", 0, "frame width (default: terminal width)")
	cmd.Flags().IntVar(&snapshotHeight, "height", defaultSnapshotHeight, "frame height")
	return cmd
}

func runSnapshotCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	opts, err := buildOptions(cfg)
	if err != nil {
		return err
	}
	width := snapshotWidth
	if width <= 0 {
		width = terminalWidth()
	}
	if snapshotHeight <= 0 {
		return fmt.Errorf("--height must be > 0")
	}
	frame, err := tui.RenderFrame(opts, width, snapshotHeight, max(snapshotAt, 0))
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintln(cmd.OutOrStdout(), frame); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newShuffleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "shuffle TEXT...",
		Short: "Play the shuffle reveal on a line of text",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runShuffleCmd,
	}
}

func runShuffleCmd(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	opts, err := shuffleOptions(cfg)
	if err != nil {
		return err
	}
	effect, err := shuffle.New(opts)
	if err != nil {
		return err
	}
	text := strings.Join(args, " ")
	out := cmd.OutOrStdout()
	ctx, stop := interruptContext(cmd.Context())
	defer stop()
	return playShuffle(ctx, out, effect, text, cfg.FPS, isTerminal(out))
}

// interruptContext returns a context cancelled on SIGINT so an interrupted
// shuffle restores the original line.
func interruptContext(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return signal.NotifyContext(parent, os.Interrupt)
}

// playShuffle runs effect over text, redrawing one line per frame. When animate
// is false only the settled text is written.
func playShuffle(ctx context.Context, w io.Writer, effect *shuffle.Effect, text string, fps int, animate bool) error {
	if err := effect.Start(text, time.Now()); err != nil {
		return err
	}
	if !animate {
		effect.Cancel()
		if _, err := fmt.Fprintln(w, text); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}

	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			effect.Cancel()
			if _, err := fmt.Fprintf(w, "\r%s\n", text); err != nil {
				return fmt.Errorf("failed to write output: %w", err)
			}
			return ctx.Err()
		case now := <-ticker.C:
			display, done := effect.Tick(now)
			if done {
				if _, err := fmt.Fprintf(w, "\r%s\n", display); err != nil {
					return fmt.Errorf("failed to write output: %w", err)
				}
				return nil
			}
			if _, err := fmt.Fprintf(w, "\r%s", display); err != nil {
				return fmt.Errorf("failed to write output: %w", err)
			}
		}
	}
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return defaultSnapshotWidth
	}
	return width
}

func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}

func flagChanged(cmd *cobra.Command, name string) bool {
	flag := cmd.Flags().Lookup(name)
	return flag != nil && flag.Changed
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if flagChanged(cmd, name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if flagChanged(cmd, name) {
		return
	}
	*target = *value
}

func applyDurationConfig(cmd *cobra.Command, name string, target *time.Duration, ms *int) {
	if ms == nil {
		return
	}
	if flagChanged(cmd, name) {
		return
	}
	*target = time.Duration(*ms) * time.Millisecond
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# folio configuration
# Uncomment a value to enable it. CLI flags override config values.

[shuffle]
# alphabet = %q   # Glyphs used while a heading shuffles
# duration-ms = %d          # Length of one reveal
# direction = %q            # "ltr" or "rtl"

[display]
# fps = %d                  # Frames per second
# glide-ms-per-row = %d     # Jump animation time per row scrolled
# glide-max-ms = %d       # Upper bound on a jump animation

[content]
# path = %q

[visits]
# record = true             # Record section dwell time and shuffles
`,
		shuffle.DefaultAlphabet,
		shuffle.DefaultDuration.Milliseconds(),
		"ltr",
		defaultFPS,
		scroll.DefaultGlidePerUnit.Milliseconds(),
		scroll.DefaultGlideMax.Milliseconds(),
		config.DefaultContentPath(),
	)
}

func validateConfig(cfg model.Config) error {
	if cfg.FPS <= 0 || cfg.FPS > maxFPS {
		return fmt.Errorf("--fps must be between 1 and %d", maxFPS)
	}
	if cfg.GlidePerRow < 0 {
		return fmt.Errorf("glide-ms-per-row must be >= 0")
	}
	if cfg.GlideMax <= 0 {
		return fmt.Errorf("glide-max-ms must be > 0")
	}
	opts, err := shuffleOptions(cfg)
	if err != nil {
		return err
	}
	return opts.Validate()
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
