// Package cmd holds the cobra commands of the protedit editor binary
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/philipparndt/protedit/internal/app"
	"github.com/philipparndt/protedit/internal/config"
	"github.com/philipparndt/protedit/internal/molecule"
	"github.com/philipparndt/protedit/version"
)

var (
	configPath  string
	seed        uint64
	saveURL     string
	noStructure bool
)

var rootCmd = &cobra.Command{
	Use:   "protedit [structure]",
	Short: "3D protein secondary-structure editor",
	Long: `protedit is a 3D editor for protein secondary-structure sketches.
Alpha helices and beta sheets can be added, moved, rotated, recoloured and
connected, and the scene exported as JSON.

A PDB structure (local file or http(s) URL) is shown alongside the sketch.
Without an argument the default helix bundle is downloaded.`,
	Version: version.GetFullVersion(),
	Args:    cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("seed") {
			cfg.Scene.Seed = seed
		}
		if saveURL != "" {
			cfg.Editor.SaveURL = saveURL
		}

		source := molecule.DefaultSource
		switch {
		case len(args) == 1:
			source = args[0]
		case noStructure:
			source = ""
		}
		return app.Run(cmd.Context(), cfg, source)
	},
}

func init() {
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "TOML config file (default $"+config.EnvPath+")")
	rootCmd.Flags().Uint64Var(&seed, "seed", 0, "seed for spawn positions, bows and random colours")
	rootCmd.Flags().StringVar(&saveURL, "save-url", "", "base URL of the save server")
	rootCmd.Flags().BoolVar(&noStructure, "no-structure", false, "start without loading a structure")
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
