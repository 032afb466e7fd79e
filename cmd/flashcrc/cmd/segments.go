package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"
)

func newSegmentsCmd(a *app) *cobra.Command {
	var (
		dump       bool
		rawOut     string
		extractDir string
	)

	cmd := &cobra.Command{
		Use:   "segments <image>",
		Short: "List the segments of an image with their checksums",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("strict") {
				a.cfg.Parse.Strict, _ = cmd.Flags().GetBool("strict")
			}

			img, err := a.parse(args[0])
			if err != nil {
				return err
			}
			defer func() { _ = img.Close() }()

			out := cmd.OutOrStdout()
			if dump {
				spew.Fdump(out, img.Segments)
				return nil
			}

			fmt.Fprintf(out, "format: %s  crc: %s\n", img.Format, a.engine.Config())
			if img.HasEntryPoint {
				fmt.Fprintf(out, "entry point: 0x%08X\n", img.EntryPoint)
			}
			if len(img.Header) > 0 {
				fmt.Fprintf(out, "header: %q\n", img.Header)
			}
			if img.Skipped > 0 {
				fmt.Fprintf(out, "skipped records: %d\n", img.Skipped)
			}
			if img.BadChecksums > 0 {
				fmt.Fprintf(out, "bad record checksums: %d\n", img.BadChecksums)
			}

			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "INDEX\tSTART\tEND\tSIZE\tCRC")
			for _, seg := range img.Segments {
				fmt.Fprintf(tw, "%d\t0x%08X\t0x%08X\t%d\t0x%08X\n",
					seg.Index, seg.Address, seg.End(), seg.Size, seg.Checksum)
			}
			if err := tw.Flush(); err != nil {
				return err
			}

			if rawOut != "" {
				data, err := img.MarshalBinary()
				if err != nil {
					return err
				}
				if err := os.WriteFile(rawOut, data, 0644); err != nil {
					return fmt.Errorf("write segment records: %w", err)
				}
			}

			if extractDir != "" {
				if err := os.MkdirAll(extractDir, 0755); err != nil {
					return fmt.Errorf("create extract directory: %w", err)
				}
				for i, seg := range img.Segments {
					data, err := img.ReadSegment(i)
					if err != nil {
						return err
					}
					name := filepath.Join(extractDir, fmt.Sprintf("segment_%02d_%08X.bin", seg.Index, seg.Address))
					if err := os.WriteFile(name, data, 0644); err != nil {
						return fmt.Errorf("write segment %d: %w", i, err)
					}
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&dump, "dump", false, "dump the segment structures")
	cmd.Flags().StringVar(&rawOut, "raw", "", "write 12-byte address/size/crc records to this file")
	cmd.Flags().StringVar(&extractDir, "extract", "", "write each segment's bytes to this directory")
	cmd.Flags().Bool("strict", false, "fail on malformed records instead of skipping them")
	return cmd
}
