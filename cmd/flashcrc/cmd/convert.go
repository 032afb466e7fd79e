package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/marcinbor85/gohex"
	"github.com/spf13/cobra"
)

// maxLineWidth is the largest data length an Intel HEX record can carry.
const maxLineWidth = 255

func newConvertCmd(a *app) *cobra.Command {
	var lineWidth int

	cmd := &cobra.Command{
		Use:   "convert <image> [output.hex]",
		Short: "Rewrite an image as Intel HEX",
		Long: `convert parses an Intel HEX or S-record image and writes its segments
back out as Intel HEX, to stdout or to the named file. Malformed records
dropped by the parser are not carried over.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if lineWidth < 1 || lineWidth > maxLineWidth {
				return fmt.Errorf("--line-width must be between 1 and %d, got %d", maxLineWidth, lineWidth)
			}

			img, err := a.parse(args[0])
			if err != nil {
				return err
			}
			defer func() { _ = img.Close() }()

			mem := gohex.NewMemory()
			if img.HasEntryPoint {
				mem.SetStartAddress(img.EntryPoint)
			}
			for i, seg := range img.Segments {
				data, err := img.ReadSegment(i)
				if err != nil {
					return err
				}
				if err := mem.AddBinary(seg.Address, data); err != nil {
					return fmt.Errorf("segment %d: %w", i, err)
				}
			}

			var w io.Writer = cmd.OutOrStdout()
			if len(args) == 2 {
				f, err := os.Create(args[1])
				if err != nil {
					return fmt.Errorf("create output: %w", err)
				}
				defer func() { _ = f.Close() }()
				w = f
			}

			if err := mem.DumpIntelHex(w, byte(lineWidth)); err != nil {
				return fmt.Errorf("write intel hex: %w", err)
			}
			a.log.Debug("converted image", "segments", img.Len(), "bytes", img.TotalSize())
			return nil
		},
	}

	cmd.Flags().IntVar(&lineWidth, "line-width", 16, "data bytes per output record")
	return cmd
}
