package cmd

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/moffa90/go-flashcrc/protocol"
	"github.com/moffa90/go-flashcrc/transfer"
)

func newChunksCmd(a *app) *cobra.Command {
	var (
		segment int
		outPath string
		summary bool
	)

	cmd := &cobra.Command{
		Use:   "chunks <image>",
		Short: "Replay segments as UDS download records",
		Long: `chunks prints, for every segment, the RequestDownload record, the
TransferData chunks carrying the payload, RequestTransferExit and the
check-memory RoutineControl record, one hex record per line.

With --out the TransferData chunks of the selected segment are written back
to back to a file instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			if flags.Changed("chunk-size") {
				a.cfg.Transfer.ChunkSize, _ = flags.GetInt("chunk-size")
			}
			if flags.Changed("corrupt") {
				a.cfg.Transfer.Corrupt, _ = flags.GetBool("corrupt")
			}
			if err := a.cfg.Validate(); err != nil {
				return err
			}

			img, err := a.parse(args[0])
			if err != nil {
				return err
			}
			defer func() { _ = img.Close() }()

			r := transfer.New(img.Image,
				transfer.WithLogger(a.log),
				transfer.WithCorruptedPayload(a.cfg.Transfer.Corrupt),
				transfer.WithProgressCallback(func(p transfer.Progress) {
					a.metrics.RecordChunk(payloadLen(p, a.cfg.Transfer.ChunkSize))
				}),
			)
			defer func() { _ = r.Close() }()

			if outPath != "" {
				return writeChunks(cmd, r, outPath, segment, a.cfg.Transfer.ChunkSize)
			}

			first, last := 0, img.Len()-1
			if segment >= 0 {
				first, last = segment, segment
			}
			out := cmd.OutOrStdout()
			for i := first; i <= last; i++ {
				if i >= img.Len() {
					return &transfer.NoSegmentError{Index: i, Count: img.Len()}
				}
				seg := img.Segments[i]
				records := protocol.BuildSegmentRecords(seg.Address, seg.Size, seg.Checksum)

				fmt.Fprintf(out, "# %s\n", seg)
				printRecord(out, "download", records.RequestDownload)
				chunks, err := printChunks(out, r, i, a.cfg.Transfer.ChunkSize, summary)
				if err != nil {
					return err
				}
				if summary {
					fmt.Fprintf(out, "%-9s %d chunks\n", "transfer", chunks)
				}
				printRecord(out, "exit", records.TransferExit)
				printRecord(out, "check", records.CheckMemory)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&segment, "segment", "s", -1, "only replay this segment index")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "write raw TransferData chunks to this file")
	cmd.Flags().BoolVar(&summary, "summary", false, "print chunk counts instead of chunk records")
	cmd.Flags().Int("chunk-size", 0, "maximum TransferData record size (overrides transfer.chunk_size)")
	cmd.Flags().Bool("corrupt", false, "add one to every payload byte for negative testing")
	return cmd
}

func printRecord(w io.Writer, label string, rec []byte) {
	fmt.Fprintf(w, "%-9s %s\n", label, hex.EncodeToString(rec))
}

func printChunks(w io.Writer, r *transfer.Reader, index, chunkSize int, summary bool) (int, error) {
	count := 0
	for {
		chunk, last, err := r.NextChunk(index, chunkSize)
		if err != nil {
			return count, err
		}
		count++
		if !summary {
			printRecord(w, "transfer", chunk)
		}
		if last {
			return count, nil
		}
	}
}

func writeChunks(cmd *cobra.Command, r *transfer.Reader, path string, index, chunkSize int) error {
	if index < 0 {
		index = 0
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	if err := r.WriteSegment(cmd.Context(), f, index, chunkSize); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// payloadLen derives the payload carried by the chunk a progress report
// describes.
func payloadLen(p transfer.Progress, chunkSize int) int {
	if !p.Last {
		return chunkSize - protocol.TransferDataHeaderSize
	}
	full := int64(chunkSize - protocol.TransferDataHeaderSize)
	rest := p.Offset - int64(p.Chunk-1)*full
	return int(rest)
}
