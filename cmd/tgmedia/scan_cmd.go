// cmd/tgmedia/scan_cmd.go
package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vbauerster/mpb/v8"

	"github.com/creativeyann17/tgmedia/pkg/scan"
)

func scanCmd() *cobra.Command {
	var exclude []string
	var maxSlices int
	var tempDir string
	var verbose bool
	var quiet bool

	cmd := &cobra.Command{
		Use:   "scan <media_cache_dir>",
		Short: "Find serialized cache files in a directory",
		Long: `Walk a decrypted media_cache directory and report which files parse as
serialized caches, with their stream size and contiguous prefix.

Files matching --exclude patterns or patterns listed in a .tgmediaignore file
at the directory root (.gitignore syntax) are skipped.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			opts := &scan.Options{
				Dir:       args[0],
				Exclude:   exclude,
				MaxSlices: maxSlices,
				TempDir:   tempDir,
				Verbose:   verbose,
				Quiet:     quiet,
			}

			if err := opts.Validate(); err != nil {
				return err
			}

			stderr := cmd.ErrOrStderr()

			var progressCb scan.ProgressCallback
			var progress *mpb.Progress

			if !opts.Quiet && !opts.Verbose {
				progressCb, progress = scan.ProgressBarCallback()
			} else if opts.Verbose {
				progressCb = func(event scan.ProgressEvent) {
					switch event.Type {
					case scan.EventStart:
						fmt.Fprintf(stderr, "Scanning %d files...\n", event.Total)
					case scan.EventFileComplete:
						f := event.File
						if f.Serialized() {
							fmt.Fprintf(stderr, "  [%d/%d] %s: %d slices, %d parts, %d contiguous bytes\n",
								event.Current, event.Total, f.Path, f.Slices, f.Parts, f.Trusted)
						} else {
							fmt.Fprintf(stderr, "  [%d/%d] %s: not serialized (%s)\n",
								event.Current, event.Total, f.Path, f.Stop)
						}
					case scan.EventError:
						fmt.Fprintf(stderr, "  [%d/%d] %s: %v\n", event.Current, event.Total, event.FilePath, event.File.Error)
					}
				}
			}

			result, err := scan.Scan(opts, progressCb)

			if progress != nil {
				progress.Wait()
			}

			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout())
			fmt.Fprint(cmd.OutOrStdout(), scan.FormatSummary(result))

			if !result.Success() {
				return fmt.Errorf("finished with %d errors", len(result.Errors))
			}
			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&exclude, "exclude", "e", nil, "Skip files matching a .gitignore-style pattern (repeatable)")
	cmd.Flags().IntVar(&maxSlices, "max-slices", 0, "Stop parsing each file after N slices (0 = unlimited)")
	cmd.Flags().StringVar(&tempDir, "temp-dir", "", "Directory for decompressed copies of zstd/xz inputs")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "Show one line per file")
	cmd.Flags().BoolVar(&quiet, "quiet", false, "Minimal output (overrides verbose)")

	return cmd
}
