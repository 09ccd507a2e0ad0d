// Package main provides the CLI entrypoint for signdata.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/mdobak/go-xerrors"
	"github.com/spf13/cobra"

	"github.com/ayusman/signdata/internal/capture"
	"github.com/ayusman/signdata/internal/config"
	"github.com/ayusman/signdata/internal/dataset"
	"github.com/ayusman/signdata/internal/detector"
	"github.com/ayusman/signdata/internal/session"
)

const (
	defaultDevice = "0"
	defaultPolicy = "zero-count"
	defaultAddr   = ":8080"
)

// logLevelEnv selects the slog level (debug, info, warn, error).
const logLevelEnv = "SIGNDATA_LOG_LEVEL"

func main() {
	_ = godotenv.Load()

	logger := newLogger(os.Getenv(logLevelEnv))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	rootCmd := newRootCmd()
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		err := xerrors.New(err)
		logger.ErrorContext(ctx, "signdata failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "signdata",
		Short:         "Capture and merge hand-landmark datasets for sign language letters",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(newCaptureCmd())
	rootCmd.AddCommand(newMergeCmd())
	rootCmd.AddCommand(newSessionsCmd())
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func loadFileConfig() (config.FileConfig, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return config.FileConfig{}, fmt.Errorf("failed to load config: %w", err)
	}
	return fileCfg, nil
}

var configPrint bool

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
	cmd.Flags().BoolVar(&configPrint, "print", false, "print the default template instead of opening an editor")
	return cmd
}

func runConfigCmd(cmd *cobra.Command, _ []string) error {
	if configPrint {
		_, err := fmt.Fprint(cmd.OutOrStdout(), defaultConfigTemplate())
		return err
	}

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
	editCmd := exec.Command(parts[0], append(parts[1:], path)...)
	editCmd.Stdin = os.Stdin
	editCmd.Stdout = os.Stdout
	editCmd.Stderr = os.Stderr
	if err := editCmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
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

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyDurationConfig(cmd *cobra.Command, name string, target *time.Duration, value *config.Duration) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = value.Duration
}

func defaultConfigTemplate() string {
	det := detector.DefaultConfig()
	return fmt.Sprintf(`# signdata configuration
# Uncomment a value to enable it. CLI flags override config values.

[capture]
# device = %q              # Camera index or video file path
# fps = %d                  # Frames per second requested from the camera
# target = %d               # Samples per session
# interval = %q           # Minimum time between captures
# max-hands = %d             # Hands tracked per frame (1-2)
# min-confidence = %.1f      # Hand detection confidence (0-1)
# mirror = true             # Flip frames horizontally before detection
# policy = %q     # Sample validity: zero-count or hand-present
# data-dir = %q
# window = true             # Show the preview window
# serve = ""                # Serve live feedback on this address during capture

[merge]
# input = %q
# output = %q
# sort-by-label = false     # Concatenate files in label order

[server]
# addr = %q
# static-dir = ""
`,
		defaultDevice,
		capture.DefaultFPS,
		session.DefaultTarget,
		session.DefaultInterval.String(),
		det.MaxHands,
		det.MinConfidence,
		defaultPolicy,
		config.DefaultDataDir(),
		config.DefaultDataDir(),
		filepath.Join(config.DefaultDataDir(), dataset.MergedFileName),
		defaultAddr,
	)
}

func logErrf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format, args...)
}
