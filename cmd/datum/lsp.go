package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"datum/internal/lsp"
)

var lspCmd = &cobra.Command{
	Use:          "lsp",
	Short:        "Run the Datum language server over stdio",
	SilenceUsage: true,
	RunE:         runLSP,
}

func init() {
	lspCmd.Flags().Duration("debounce", 200*time.Millisecond, "delay before diagnostics are published after an edit")
}

func runLSP(cmd *cobra.Command, _ []string) error {
	debounce, err := cmd.Flags().GetDuration("debounce")
	if err != nil {
		return err
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return err
	}
	opts := lsp.ServerOptions{
		Debounce:       debounce,
		MaxDiagnostics: maxDiagnostics,
		Log:            cmd.ErrOrStderr(),
	}
	// явный --config важнее datum.toml из workspace
	if path, _ := cmd.Root().PersistentFlags().GetString("config"); path != "" {
		manifest, err := loadManifest(cmd)
		if err != nil {
			return err
		}
		opts.Config = &manifest.Config
	}
	server := lsp.NewServer(cmd.InOrStdin(), cmd.OutOrStdout(), opts)
	if err := server.Run(cmd.Context()); err != nil {
		if errors.Is(err, lsp.ErrExit) {
			return nil
		}
		if errors.Is(err, lsp.ErrExitWithoutShutdown) {
			return fmt.Errorf("lsp exit without shutdown")
		}
		return err
	}
	return nil
}
