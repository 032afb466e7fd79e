package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/moffa90/go-flashcrc/crc"
)

func newTableCmd(a *app) *cobra.Command {
	var perLine int

	cmd := &cobra.Command{
		Use:   "table",
		Short: "Print the 256-entry lookup table of the configured CRC",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if perLine <= 0 {
				return fmt.Errorf("--per-line must be positive, got %d", perLine)
			}

			t := a.engine.Table()
			digits := t.Width() / 4
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "# width %d polynomial 0x%0*X\n", t.Width(), digits, t.Polynomial())
			for i := 0; i < crc.TableSize; i++ {
				fmt.Fprintf(out, "0x%0*X", digits, t.Entry(byte(i)))
				if (i+1)%perLine == 0 || i == crc.TableSize-1 {
					fmt.Fprintln(out)
				} else {
					fmt.Fprint(out, " ")
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&perLine, "per-line", 8, "entries per output line")
	return cmd
}
