package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/philipparndt/protedit/internal/config"
	"github.com/philipparndt/protedit/version"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "protedit-tool",
	Short: "Headless tools for protedit scenes",
	Long: `protedit-tool runs editor command scripts without a window, inspects
exported scene documents and serves the save endpoint the editor posts to.`,
	Version: version.GetFullVersion(),
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "TOML config file (default $"+config.EnvPath+")")
}

func loadConfig() config.Config {
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
