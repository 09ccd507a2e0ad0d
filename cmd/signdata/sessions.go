package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/ayusman/signdata/internal/config"
	"github.com/ayusman/signdata/internal/session"
	"github.com/ayusman/signdata/internal/store"
)

var (
	sessionsLabel  string
	sessionsTotals bool
)

func newSessionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "List recorded capture sessions",
		Args:  cobra.NoArgs,
		RunE:  runSessionsCmd,
	}
	cmd.Flags().StringVar(&sessionsLabel, "label", "", "only sessions for this letter")
	cmd.Flags().BoolVar(&sessionsTotals, "totals", false, "show per-letter totals instead")
	return cmd
}

func runSessionsCmd(cmd *cobra.Command, _ []string) error {
	st, err := store.New(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	out := cmd.OutOrStdout()

	if sessionsTotals {
		totals, err := st.Sessions().Totals()
		if err != nil {
			return fmt.Errorf("failed to load totals: %w", err)
		}
		t := newTable("LABEL", "SESSIONS", "SAMPLES")
		for _, lt := range totals {
			t.add(lt.Label, strconv.Itoa(lt.Sessions), strconv.Itoa(lt.Samples))
		}
		return t.render(out)
	}

	var sessions []*store.Session
	if sessionsLabel != "" {
		label := session.NormalizeLabel(sessionsLabel)
		if err := session.ValidateLabel(label); err != nil {
			return err
		}
		sessions, err = st.Sessions().ListByLabel(label)
	} else {
		sessions, err = st.Sessions().List()
	}
	if err != nil {
		return fmt.Errorf("failed to list sessions: %w", err)
	}

	if len(sessions) == 0 {
		_, err := fmt.Fprintln(out, "No sessions recorded yet. Start one with: signdata capture")
		return err
	}

	t := newTable("STARTED", "LABEL", "STATE", "CAPTURED", "DURATION", "ID")
	for _, s := range sessions {
		t.add(
			s.StartedAt.Local().Format("2006-01-02 15:04"),
			s.Label,
			string(s.State),
			fmt.Sprintf("%d/%d", s.Captured, s.Target),
			s.EndedAt.Sub(s.StartedAt).Round(time.Second).String(),
			s.ID,
		)
	}
	t.styleColumn(2, func(row []string) lipgloss.Style {
		if row[2] == string(store.SessionComplete) {
			return okStyle
		}
		return warnStyle
	})
	t.styleColumn(5, func([]string) lipgloss.Style { return mutedStyle })
	return t.render(out)
}
