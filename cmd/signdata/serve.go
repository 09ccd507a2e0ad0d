package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/ayusman/signdata/internal/config"
	"github.com/ayusman/signdata/internal/server"
	"github.com/ayusman/signdata/internal/store"
)

var (
	serveAddr      string
	serveStaticDir string
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the session ledger over HTTP",
		Args:  cobra.NoArgs,
		RunE:  runServeCmd,
	}
	cmd.Flags().StringVar(&serveAddr, "addr", defaultAddr, "listen address")
	cmd.Flags().StringVar(&serveStaticDir, "static-dir", "", "directory of static files (searched for when empty)")
	return cmd
}

func runServeCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := loadFileConfig()
	if err != nil {
		return err
	}
	applyStringConfig(cmd, "addr", &serveAddr, fileCfg.Server.Addr)
	applyStringConfig(cmd, "static-dir", &serveStaticDir, fileCfg.Server.StaticDir)

	st, err := store.New(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	staticDir := serveStaticDir
	if staticDir == "" {
		staticDir = findWebDir()
	}
	if staticDir != "" {
		slog.Info("serving static files", slog.String("dir", staticDir))
	}

	srv := server.New(server.Config{StaticDir: staticDir, Store: st})
	slog.Info("starting server", slog.String("addr", serveAddr))
	return srv.ListenAndServe(cmd.Context(), serveAddr)
}
