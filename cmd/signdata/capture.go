package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/ayusman/signdata/internal/app"
	"github.com/ayusman/signdata/internal/capture"
	"github.com/ayusman/signdata/internal/config"
	"github.com/ayusman/signdata/internal/detector"
	"github.com/ayusman/signdata/internal/feedback"
	"github.com/ayusman/signdata/internal/features"
	"github.com/ayusman/signdata/internal/server"
	"github.com/ayusman/signdata/internal/session"
	"github.com/ayusman/signdata/internal/store"
)

const labelPrompt = "Enter the letter you're signing (A-Z): "

var (
	captureLabel         string
	captureDevice        string
	captureFPS           int
	captureTarget        int
	captureInterval      time.Duration
	captureMaxHands      int
	captureMinConfidence float64
	captureMirror        bool
	capturePolicy        string
	captureDataDir       string
	captureWindow        bool
	captureServe         string
)

func newCaptureCmd() *cobra.Command {
	det := detector.DefaultConfig()

	cmd := &cobra.Command{
		Use:   "capture",
		Short: "Record landmark samples for one letter",
		Args:  cobra.NoArgs,
		RunE:  runCaptureCmd,
	}
	cmd.Flags().StringVar(&captureLabel, "label", "", "letter being signed (prompted when empty)")
	cmd.Flags().StringVar(&captureDevice, "device", defaultDevice, "camera index or video file path")
	cmd.Flags().IntVar(&captureFPS, "fps", capture.DefaultFPS, "frames per second requested from the camera")
	cmd.Flags().IntVar(&captureTarget, "target", session.DefaultTarget, "samples to capture")
	cmd.Flags().DurationVar(&captureInterval, "interval", session.DefaultInterval, "minimum time between captures")
	cmd.Flags().IntVar(&captureMaxHands, "max-hands", det.MaxHands, "hands tracked per frame (1-2)")
	cmd.Flags().Float64Var(&captureMinConfidence, "min-confidence", det.MinConfidence, "hand detection confidence (0-1)")
	cmd.Flags().BoolVar(&captureMirror, "mirror", true, "flip frames horizontally before detection")
	cmd.Flags().StringVar(&capturePolicy, "policy", defaultPolicy, "sample validity policy: zero-count or hand-present")
	cmd.Flags().StringVar(&captureDataDir, "data-dir", config.DefaultDataDir(), "directory for per-label csv files")
	cmd.Flags().BoolVar(&captureWindow, "window", true, "show the preview window")
	cmd.Flags().StringVar(&captureServe, "serve", "", "serve live feedback on this address while capturing")
	return cmd
}

func runCaptureCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := loadFileConfig()
	if err != nil {
		return err
	}
	c := fileCfg.Capture
	applyStringConfig(cmd, "device", &captureDevice, c.Device)
	applyIntConfig(cmd, "fps", &captureFPS, c.FPS)
	applyIntConfig(cmd, "target", &captureTarget, c.Target)
	applyDurationConfig(cmd, "interval", &captureInterval, c.Interval)
	applyIntConfig(cmd, "max-hands", &captureMaxHands, c.MaxHands)
	applyFloatConfig(cmd, "min-confidence", &captureMinConfidence, c.MinConfidence)
	applyBoolConfig(cmd, "mirror", &captureMirror, c.Mirror)
	applyStringConfig(cmd, "policy", &capturePolicy, c.Policy)
	applyStringConfig(cmd, "data-dir", &captureDataDir, c.DataDir)
	applyBoolConfig(cmd, "window", &captureWindow, c.Window)
	applyStringConfig(cmd, "serve", &captureServe, c.Serve)

	if captureFPS <= 0 {
		return fmt.Errorf("%w: fps must be positive, got %d", session.ErrInvalidConfig, captureFPS)
	}

	policy, err := features.ParsePolicy(capturePolicy)
	if err != nil {
		return err
	}

	label := session.NormalizeLabel(captureLabel)
	if label == "" {
		label, err = promptLabel(os.Stdin, cmd.OutOrStdout())
		if err != nil {
			return err
		}
	}

	sessCfg := session.Config{
		Label:    label,
		Target:   captureTarget,
		Interval: captureInterval,
		MaxHands: captureMaxHands,
		Policy:   policy,
	}
	if err := sessCfg.Validate(); err != nil {
		return err
	}

	det := detector.DefaultConfig()
	det.MaxHands = captureMaxHands
	det.MinConfidence = captureMinConfidence
	if err := det.Validate(); err != nil {
		return err
	}

	st, err := store.New(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	var sinks []feedback.Sink
	var keys *keyListener
	if !captureWindow {
		keys, err = startKeyListener(os.Stdin)
		if err != nil {
			slog.Warn("keyboard cancellation unavailable", slog.Any("error", err))
		}
		log.SetOutput(keys.Writer(os.Stderr))
		defer log.SetOutput(os.Stderr)
		sinks = append(sinks, feedback.NewTerminal(keys.Writer(os.Stderr)))
	}

	ctx := cmd.Context()
	if captureServe != "" {
		hub := server.NewHub()
		sinks = append(sinks, hub)

		serveCtx, cancel := context.WithCancel(ctx)
		defer cancel()
		srv := server.New(server.Config{StaticDir: findWebDir(), Store: st, Hub: hub})
		go func() {
			if err := srv.ListenAndServe(serveCtx, captureServe); err != nil {
				slog.ErrorContext(ctx, "feedback server failed", slog.Any("error", err))
			}
		}()
		slog.Info("serving live feedback", slog.String("addr", captureServe))
	}

	a, err := app.New(app.Config{
		Session:  sessCfg,
		Detector: det,
		Device:   captureDevice,
		FPS:      captureFPS,
		Mirror:   captureMirror,
		DataDir:  captureDataDir,
		Store:    st,
		Window:   captureWindow,
		Sinks:    sinks,
	})
	if err != nil {
		keys.Stop()
		return err
	}
	keys.OnQuit(a.Cancel)

	result, err := a.Run(ctx)
	keys.Stop()
	if err != nil {
		return err
	}

	return printResult(cmd.OutOrStdout(), result)
}

// promptLabel asks for a letter until a valid one is entered.
func promptLabel(in io.Reader, out io.Writer) (string, error) {
	scanner := bufio.NewScanner(in)
	for {
		if _, err := fmt.Fprint(out, labelPrompt); err != nil {
			return "", err
		}
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return "", fmt.Errorf("failed to read label: %w", err)
			}
			return "", fmt.Errorf("%w: no label entered", session.ErrInvalidLabel)
		}
		label := session.NormalizeLabel(scanner.Text())
		if err := session.ValidateLabel(label); err != nil {
			if _, werr := fmt.Fprintln(out, "Please enter a single letter."); werr != nil {
				return "", werr
			}
			continue
		}
		return label, nil
	}
}

func printResult(out io.Writer, result *app.Result) error {
	sess := result.Session
	if sess.State == session.Aborted {
		reason := "stopped"
		if errors.Is(sess.Err, session.ErrCancelled) {
			reason = "cancelled"
		}
		if _, err := fmt.Fprintf(out, "Session %s after %d of %d samples\n", reason, sess.Captured(), sess.Target); err != nil {
			return err
		}
	}
	if result.DataFile == "" {
		_, err := fmt.Fprintf(out, "No samples saved for letter '%s'\n", sess.Label)
		return err
	}
	_, err := fmt.Fprintf(out, "Saved %d samples for letter '%s' to %s\n", sess.Captured(), sess.Label, result.DataFile)
	return err
}

// findWebDir searches for the web directory in common locations.
// It checks: "web", "../web", "../../web", and the data home.
// Returns the first existing directory or empty string if none found.
func findWebDir() string {
	candidates := []string{"web", "../web", "../../web", filepath.Join(filepath.Dir(config.DefaultDataDir()), "web")}
	for _, p := range candidates {
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			return p
		}
	}
	return ""
}
