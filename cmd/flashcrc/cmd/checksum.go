package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/moffa90/go-flashcrc/crc"
)

func newChecksumCmd(a *app) *cobra.Command {
	var (
		text      string
		justified bool
	)

	cmd := &cobra.Command{
		Use:   "checksum [file...]",
		Short: "Compute the configured CRC of files, a string or stdin",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			cfg := a.engine.Config()
			format := func(sum uint32) string {
				if justified {
					return fmt.Sprintf("0x%08X", sum)
				}
				return fmt.Sprintf("0x%0*X", cfg.Width/4, sum>>(32-cfg.Width))
			}

			if cmd.Flags().Changed("string") {
				fmt.Fprintf(out, "%s  %q\n", format(a.engine.Checksum([]byte(text))), text)
				return nil
			}

			if len(args) == 0 {
				sum, err := a.sum(cmd.InOrStdin())
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%s  -\n", format(sum))
				return nil
			}

			for _, path := range args {
				f, err := os.Open(path)
				if err != nil {
					return err
				}
				sum, err := a.sum(f)
				_ = f.Close()
				if err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
				fmt.Fprintf(out, "%s  %s\n", format(sum), path)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&text, "string", "", "checksum this string instead of files")
	cmd.Flags().BoolVar(&justified, "justified", false, "print the value left-justified to 32 bits")
	return cmd
}

// sum streams r through the engine and returns the left-justified CRC.
func (a *app) sum(r io.Reader) (uint32, error) {
	h := a.engine.New()
	if _, err := io.Copy(h, r); err != nil {
		return 0, err
	}
	return h.Sum32(), nil
}

func newPresetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List the built-in CRC presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, name := range crc.PresetNames() {
				cfg, _ := crc.Preset(name)
				fmt.Fprintf(out, "%-18s %s\n", name, cfg)
			}
			return nil
		},
	}
}
