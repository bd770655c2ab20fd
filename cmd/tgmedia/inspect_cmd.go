// cmd/tgmedia/inspect_cmd.go
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/creativeyann17/tgmedia/pkg/deserialize"
	"github.com/creativeyann17/tgmedia/pkg/tgmedia"
)

func inspectCmd() *cobra.Command {
	var maxSlices int
	var tempDir string
	var showGaps bool
	var verbose bool

	cmd := &cobra.Command{
		Use:   "inspect <serialized_file>",
		Short: "Show the slices, parts and contiguity of a cache file",
		Long: `Parse a serialized cache file and report its layout without writing anything.

The contiguous prefix is the part of the deserialized stream that can be
played linearly; parts past the first gap are usually a trailing container
index fetched ahead of time.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			opts := deserialize.DefaultOptions()
			opts.InputPath = args[0]
			opts.DryRun = true
			opts.MaxSlices = maxSlices
			opts.Verbose = verbose
			if tempDir != "" {
				opts.TempDir = tempDir
			}

			if err := opts.Validate(); err != nil {
				return err
			}

			out := cmd.OutOrStdout()

			var progressCb deserialize.ProgressCallback
			if verbose {
				progressCb = func(event deserialize.ProgressEvent) {
					if line := event.String(); line != "" {
						fmt.Fprintln(cmd.ErrOrStderr(), line)
					}
				}
			}

			result, err := deserialize.Deserialize(opts, progressCb)
			if err != nil {
				return err
			}

			if !verbose {
				fmt.Fprint(out, result.Report.String())
			}
			if showGaps && len(result.Gaps) > 0 {
				fmt.Fprintf(out, "\nGaps (%d):\n", len(result.Gaps))
				for _, g := range result.Gaps {
					fmt.Fprintf(out, "  [%d, %d) %s\n", g.Start, g.End, tgmedia.FormatSize(g.Len()))
				}
			}

			fmt.Fprintln(out)
			fmt.Fprint(out, deserialize.FormatSummary(result))
			return nil
		},
	}

	cmd.Flags().IntVar(&maxSlices, "max-slices", 0, "Stop parsing after N slices (0 = unlimited)")
	cmd.Flags().StringVar(&tempDir, "temp-dir", "", "Directory for decompressed copies of zstd/xz inputs")
	cmd.Flags().BoolVar(&showGaps, "gaps", false, "List every destination gap")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "Print every slice and part")

	return cmd
}
