package main

import (
	"fmt"
	"math"
	"os"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/philipparndt/protedit/internal/export"
)

var infoCmd = &cobra.Command{
	Use:   "info [scene.json]",
	Short: "Display information about an exported scene",
	Long:  "Validate an exported scene document and list its elements with position, rotation, scale and colour.",
	Args:  cobra.ExactArgs(1),
	Run:   runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) {
	filename := args[0]

	data, err := os.ReadFile(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading scene: %v\n", err)
		os.Exit(1)
	}
	records, err := export.Parse(data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing scene: %v\n", err)
		os.Exit(1)
	}

	out := termenv.NewOutput(os.Stdout)
	heading := func(s string) termenv.Style {
		return out.String(s).Bold().Foreground(out.Color("#ffcc00"))
	}

	fmt.Fprintln(out, heading("Scene Information"))
	fmt.Fprintln(out, "=================")
	fmt.Fprintf(out, "File: %s\n", filename)
	fmt.Fprintf(out, "%s\n\n", export.Summary(records))

	if len(records) == 0 {
		return
	}

	fmt.Fprintln(out, heading("Elements:"))
	for i, r := range records {
		// Show each element in its own colour
		swatch := out.String("■").Foreground(out.Color(r.Color.Hex()))
		fmt.Fprintf(out, "  %s %d. %s\n", swatch, i+1, r.Type)
		fmt.Fprintf(out, "       Position: (%.3f, %.3f, %.3f)\n", r.Position.X, r.Position.Y, r.Position.Z)
		fmt.Fprintf(out, "       Rotation: (%.1f°, %.1f°, %.1f°) %s\n",
			degrees(r.Rotation.X), degrees(r.Rotation.Y), degrees(r.Rotation.Z), r.Rotation.Order)
		fmt.Fprintf(out, "       Scale:    (%.3f, %.3f, %.3f)\n", r.Scale.X, r.Scale.Y, r.Scale.Z)
		fmt.Fprintf(out, "       Color:    %s\n", r.Color.Hex())
	}
}

func degrees(rad float64) float64 {
	return rad * 180 / math.Pi
}
