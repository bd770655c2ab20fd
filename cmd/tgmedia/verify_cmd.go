// cmd/tgmedia/verify_cmd.go
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/creativeyann17/tgmedia/pkg/verify"
)

func verifyCmd() *cobra.Command {
	var allowTrimmed bool
	var maxSlices int
	var tempDir string
	var verbose bool
	var quiet bool

	cmd := &cobra.Command{
		Use:   "verify <serialized_file> <deserialized_file>",
		Short: "Check a deserialized file against its cache file",
		Long: `Compare every part of a serialized cache file with the bytes found at its
destination offset in a deserialized file.

Use --allow-trimmed for outputs produced with --trim-tail.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			opts := &verify.Options{
				InputPath:    args[0],
				OutputPath:   args[1],
				AllowTrimmed: allowTrimmed,
				MaxSlices:    maxSlices,
				TempDir:      tempDir,
				Verbose:      verbose,
				Quiet:        quiet,
			}

			if err := opts.Validate(); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			stderr := cmd.ErrOrStderr()

			// Logging helper
			log := func(format string, args ...interface{}) {
				if !opts.Quiet {
					fmt.Fprintf(stderr, format+"\n", args...)
				}
			}

			log("Verifying: %s", opts.OutputPath)
			log("Against:   %s", opts.InputPath)

			var progressCb verify.ProgressCallback
			if opts.Verbose {
				progressCb = func(event verify.ProgressEvent) {
					switch event.Type {
					case verify.EventStart:
						fmt.Fprintf(stderr, "Checking %d parts...\n", event.Total)
					case verify.EventPartVerify:
						fmt.Fprintf(stderr, "  [%d/%d] %s\n", event.Current, event.Total, event.Part)
					case verify.EventError:
						fmt.Fprintf(stderr, "  [%d/%d] %s: %v\n", event.Current, event.Total, event.Part, event.Err)
					}
				}
			} else if !opts.Quiet {
				progressCb = func(event verify.ProgressEvent) {
					switch event.Type {
					case verify.EventPartVerify:
						if event.Current%100 == 0 {
							fmt.Fprintf(stderr, "\r  Progress: %d/%d parts", event.Current, event.Total)
						}
					case verify.EventComplete:
						fmt.Fprintf(stderr, "\r  Progress: %d/%d parts\n", event.Current, event.Total)
					}
				}
			}

			result, err := verify.Verify(opts, progressCb)
			if err != nil && result == nil {
				return err
			}

			if !opts.Quiet {
				fmt.Fprintln(out)
				fmt.Fprint(out, result.Summary())
			}

			if err != nil {
				return err
			}
			if !result.IsValid() {
				return fmt.Errorf("verification failed")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&allowTrimmed, "allow-trimmed", false, "Accept parts past the end of a trimmed output")
	cmd.Flags().IntVar(&maxSlices, "max-slices", 0, "Stop parsing after N slices (0 = unlimited)")
	cmd.Flags().StringVar(&tempDir, "temp-dir", "", "Directory for decompressed copies of zstd/xz inputs")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "Show every checked part")
	cmd.Flags().BoolVar(&quiet, "quiet", false, "Minimal output (overrides verbose)")

	return cmd
}
