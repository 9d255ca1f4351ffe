// Package cli implements the recap CLI commands.
package cli

import (
	"fmt"
	"os"

	"github.com/avolkov/recap/internal/config"
	"github.com/avolkov/recap/internal/recap"
	"github.com/avolkov/recap/internal/store"
	"github.com/spf13/cobra"
)

var (
	configPath string
	vaultDir   string
	dbPath     string
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "recap",
	Short: "Cumulative recap reports from daily notes",
	Long:  "Aggregates dated daily notes from a vault directory into one cumulative recap report, tracking run history so regenerating never loses coverage.",
}

func init() {
	RootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: ~/.recap/config.yaml)")
	RootCmd.PersistentFlags().StringVar(&vaultDir, "vault", "", "Vault directory with daily notes (default: $RECAP_VAULT or config file)")
	RootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "", "Settings database path (default: $RECAP_DB or ~/.recap/recap.db)")
}

// loadConfig merges the config file with flags and environment.
// Precedence: flag, then environment, then file, then defaults.
func loadConfig() config.Config {
	path := configPath
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		exitErr("load config", err)
	}

	switch {
	case vaultDir != "":
		cfg.Vault = vaultDir
	case os.Getenv("RECAP_VAULT") != "":
		cfg.Vault = os.Getenv("RECAP_VAULT")
	}
	switch {
	case dbPath != "":
		cfg.DB = dbPath
	case os.Getenv("RECAP_DB") != "":
		cfg.DB = os.Getenv("RECAP_DB")
	}

	return cfg
}

func openSettings() *store.SQLiteSettings {
	cfg := loadConfig()
	s, err := store.NewSQLiteSettings(cfg.DB)
	if err != nil {
		exitErr("open settings db", err)
	}
	return s
}

func newRunner() (*recap.Runner, func()) {
	cfg := loadConfig()
	vault := store.NewVault(cfg.Vault)
	settings, err := store.NewSQLiteSettings(cfg.DB)
	if err != nil {
		exitErr("open settings db", err)
	}
	r := &recap.Runner{Notes: vault, Reports: vault, Settings: settings}
	return r, func() { settings.Close() }
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}
