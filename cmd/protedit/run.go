package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/philipparndt/protedit/internal/command"
	"github.com/philipparndt/protedit/internal/config"
	"github.com/philipparndt/protedit/internal/render"
	"github.com/philipparndt/protedit/internal/scene"
	"github.com/philipparndt/protedit/internal/selection"
	"github.com/philipparndt/protedit/pkg/viewer"
)

var (
	runSeed      uint64
	snapshotPath string
	snapshotSize [2]int
	keepGoing    bool
)

var runCmd = &cobra.Command{
	Use:   "run [script]",
	Short: "Run an editor command script without a window",
	Long: `Run reads one editor command per line ("-" for stdin):

  add-helix [length]          add-sheet [length] [width]
  select <id>...              toggle <id>          clear
  remove  rotate  scale  connect  recolor [#rrggbb]
  export <file|http(s)://server>

Blank lines and lines starting with // or ; are ignored.`,
	Args: cobra.ExactArgs(1),
	Run:  runScript,
}

func init() {
	runCmd.Flags().Uint64Var(&runSeed, "seed", 0, "seed for spawn positions, bows and random colours")
	runCmd.Flags().StringVar(&snapshotPath, "snapshot", "", "write a PNG snapshot of the final scene")
	runCmd.Flags().IntVar(&snapshotSize[0], "width", 800, "snapshot width")
	runCmd.Flags().IntVar(&snapshotSize[1], "height", 600, "snapshot height")
	runCmd.Flags().BoolVarP(&keepGoing, "keep-going", "k", false, "continue after a failed command")
	rootCmd.AddCommand(runCmd)
}

func openScript(name string) (io.ReadCloser, error) {
	if name == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	return os.Open(name)
}

func runScript(cmd *cobra.Command, args []string) {
	cfg := loadConfig()
	if cmd.Flags().Changed("seed") {
		cfg.Scene.Seed = runSeed
	}

	in, err := openScript(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening script: %v\n", err)
		os.Exit(1)
	}
	cmds, err := command.ParseScript(in)
	in.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing script: %v\n", err)
		os.Exit(1)
	}

	editor, err := newEditor(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	failed := execute(cmd.Context(), editor, cmds, cmd.OutOrStdout(), cmd.ErrOrStderr())

	if snapshotPath != "" {
		if err := writeSnapshot(editor, snapshotPath, snapshotSize[0], snapshotSize[1]); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing snapshot: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Snapshot written to %s\n", snapshotPath)
	}

	fmt.Println(editor.Scene().Counts())
	if failed > 0 {
		os.Exit(1)
	}
}

func newEditor(cfg config.Config) (*command.Editor, error) {
	opts, err := cfg.SceneOptions()
	if err != nil {
		return nil, err
	}
	return command.NewEditor(scene.New(opts...), selection.New(cfg.Highlight())), nil
}

// execute dispatches cmds in order and returns the number of failures.
// Without --keep-going it stops at the first one.
func execute(ctx context.Context, editor *command.Editor, cmds []command.Command, stdout, stderr io.Writer) int {
	failed := 0
	for i, c := range cmds {
		res, err := editor.Dispatch(ctx, c)
		if err != nil {
			failed++
			var pre *command.PreconditionError
			if errors.As(err, &pre) {
				fmt.Fprintf(stderr, "%d %s: %s\n", i+1, c.Name(), pre.Message)
			} else {
				fmt.Fprintf(stderr, "%d %s: %v\n", i+1, c.Name(), err)
			}
			if !keepGoing {
				return failed
			}
			continue
		}
		if res.Message != "" {
			fmt.Fprintf(stdout, "%d %s: %s\n", i+1, c.Name(), res.Message)
		}
	}
	return failed
}

func writeSnapshot(editor *command.Editor, path string, width, height int) error {
	r := viewer.NewRaster(width, height)
	p := render.NewPresenter(r)
	p.Sync(editor.Scene(), editor.Selection())
	r.Label = editor.Scene().Counts().String()
	r.Edges = true
	r.FrameAll()
	r.Render()

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := r.WritePNG(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
