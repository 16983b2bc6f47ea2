// Package main provides the CLI entrypoint for fqview.
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/fqview/internal/config"
	"github.com/verte-zerg/fqview/internal/layout"
	"github.com/verte-zerg/fqview/internal/model"
	"github.com/verte-zerg/fqview/internal/quality"
	"github.com/verte-zerg/fqview/internal/viewer"
)

const defaultWidth = 80

var (
	viewWidth     int
	viewDelay     time.Duration
	viewThreshold float64
	viewNoFollow  bool
	viewDebugLog  string
)

// termGetSize is swapped in tests.
var termGetSize = term.GetSize

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "fqview <input>",
		Short:         "Pretty print a FASTQ file",
		SilenceUsage:  true,
		SilenceErrors: false,
		Args:          inputArgs,
		RunE:          runViewCmd,
	}

	rootCmd.Flags().IntVar(&viewWidth, "width", 0, "display width (default: terminal width)")
	rootCmd.Flags().DurationVar(&viewDelay, "delay", viewer.DefaultDelay, "pause between records")
	rootCmd.Flags().Float64Var(&viewThreshold, "threshold", float64(quality.DefaultThreshold), "average quality below which a read is highlighted")
	rootCmd.Flags().BoolVar(&viewNoFollow, "no-follow", false, "do not keep the view at the newest record")
	rootCmd.Flags().StringVar(&viewDebugLog, "debug-log", "", "write a debug log to this file")

	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func inputArgs(cmd *cobra.Command, args []string) error {
	if err := cobra.ExactArgs(1)(cmd, args); err != nil {
		return err
	}
	return viewer.CheckInput(args[0])
}

func runViewCmd(cmd *cobra.Command, args []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := applyFileConfig(cmd, fileCfg.View); err != nil {
		return err
	}

	cfg := model.Config{
		InputPath:    args[0],
		DisplayWidth: resolveWidth(viewWidth),
		Delay:        viewDelay,
		Threshold:    float32(viewThreshold),
		Follow:       !viewNoFollow,
	}
	if err := validateConfig(cfg); err != nil {
		return err
	}

	logger := log.New(io.Discard, "", 0)
	if viewDebugLog != "" {
		f, err := tea.LogToFile(viewDebugLog, "fqview")
		if err != nil {
			return fmt.Errorf("failed to open debug log: %w", err)
		}
		defer func() {
			if cerr := f.Close(); cerr != nil {
				logErrf("failed to close debug log: %v\n", cerr)
			}
		}()
		logger = log.Default()
	}

	opts := viewer.Options{
		Logger:         logger,
		Warnf:          logErrf,
		ProgramOptions: []tea.ProgramOption{tea.WithAltScreen()},
	}
	if err := viewer.Run(context.Background(), cfg, opts); err != nil {
		return fmt.Errorf("failed to view %s: %w", cfg.InputPath, err)
	}
	return nil
}

// resolveWidth returns the sequence wrap width. An explicit width is used as
// is; otherwise the terminal is measured once and the gutter is left out so
// rows fit on screen.
func resolveWidth(flagWidth int) int {
	if flagWidth > 0 {
		return flagWidth
	}
	width, _, err := termGetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		width = defaultWidth
	}
	return layout.ContentWidth(width)
}

func applyFileConfig(cmd *cobra.Command, view config.ViewConfig) error {
	applyIntConfig(cmd, "width", &viewWidth, view.Width)
	applyFloatConfig(cmd, "threshold", &viewThreshold, view.Threshold)
	if view.Follow != nil && !cmd.Flags().Changed("no-follow") {
		viewNoFollow = !*view.Follow
	}
	if view.Delay != nil && !cmd.Flags().Changed("delay") {
		parsed, err := time.ParseDuration(*view.Delay)
		if err != nil {
			return fmt.Errorf("invalid delay in config: %w", err)
		}
		viewDelay = parsed
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

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

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyFloatConfig(cmd *cobra.Command, name string, target, value *float64) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# fqview configuration
# Uncomment a value to enable it. CLI flags override config values.

[view]
# width = 120             # Display width (default: terminal width)
# delay = %q           # Pause between records
# threshold = %.1f        # Average quality below which a read is highlighted
# follow = true           # Keep the view at the newest record
`,
		viewer.DefaultDelay.String(),
		quality.DefaultThreshold,
	)
}

func validateConfig(cfg model.Config) error {
	if cfg.DisplayWidth <= 0 {
		return fmt.Errorf("--width must be > 0")
	}
	if cfg.Delay < 0 {
		return fmt.Errorf("--delay must be >= 0")
	}
	if cfg.Threshold < 0 {
		return fmt.Errorf("--threshold must be >= 0")
	}
	return nil
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
