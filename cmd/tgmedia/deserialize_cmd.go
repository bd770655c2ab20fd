// cmd/tgmedia/deserialize_cmd.go

package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/vbauerster/mpb/v8"

	"github.com/creativeyann17/tgmedia/pkg/deserialize"
)

type deserializeFlags struct {
	appendPaths []string
	trimTail    bool
	checksum    bool
	maxSlices   int
	tempDir     string
	verbose     bool
	quiet       bool
}

func (f *deserializeFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringArrayVarP(&f.appendPaths, "append", "a", nil, "Continuation cache file appended raw after the stream (repeatable)")
	fs.BoolVar(&f.trimTail, "trim-tail", false, "Drop parts after the first gap before appending")
	fs.BoolVar(&f.checksum, "checksum", false, "Print the BLAKE3 digest of the output")
	fs.IntVar(&f.maxSlices, "max-slices", 0, "Stop parsing after N slices (0 = unlimited)")
	fs.StringVar(&f.tempDir, "temp-dir", "", "Directory for decompressed copies of zstd/xz inputs")
	fs.BoolVar(&f.verbose, "verbose", false, "Print every slice and part")
	fs.BoolVar(&f.quiet, "quiet", false, "Minimal output (overrides verbose)")
}

func deserializeCmd() *cobra.Command {
	var flags deserializeFlags

	cmd := &cobra.Command{
		Use:   "deserialize <serialized_file> <deserialized_file>",
		Short: "Rebuild a media stream from a serialized cache file",
		Long: `Rebuild a media stream from a serialized cache file.

The output file must not exist. Parsing stops at the first slice or part
header that is out of range; everything parsed before it is written.
Inputs wrapped in zstd or xz are decompressed transparently.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDeserialize(cmd, args, &flags)
		},
	}
	flags.register(cmd)

	return cmd
}

func runDeserialize(cmd *cobra.Command, args []string, flags *deserializeFlags) error {
	cmd.SilenceUsage = true

	opts := deserialize.DefaultOptions()
	opts.InputPath = args[0]
	opts.OutputPath = args[1]
	opts.Append = flags.appendPaths
	opts.TrimTail = flags.trimTail
	opts.Checksum = flags.checksum
	opts.MaxSlices = flags.maxSlices
	opts.Verbose = flags.verbose
	opts.Quiet = flags.quiet
	if flags.tempDir != "" {
		opts.TempDir = flags.tempDir
	}

	// Validate and set defaults
	if err := opts.Validate(); err != nil {
		return err
	}

	stderr := cmd.ErrOrStderr()

	// Logging helper
	log := func(format string, args ...interface{}) {
		if !opts.Quiet {
			fmt.Fprintf(stderr, format+"\n", args...)
		}
	}

	log("Starting deserialization...")
	log("  Input:       %s", opts.InputPath)
	log("  Output:      %s", opts.OutputPath)
	if opts.TrimTail {
		log("  Mode:        TRIM TAIL (output cut after the trusted prefix)")
	}
	for _, p := range opts.Append {
		log("  Append:      %s", p)
	}
	log("")

	progressCb, progress := deserializeCallback(stderr, opts)

	result, err := deserialize.Deserialize(opts, progressCb)

	// Wait for progress bars to finish rendering
	if progress != nil {
		progress.Wait()
	}

	if err != nil {
		if result != nil && !opts.Quiet {
			fmt.Fprintln(stderr)
			fmt.Fprint(stderr, deserialize.FormatSummary(result))
		}
		return err
	}

	// Final report
	fmt.Fprintln(cmd.OutOrStdout())
	fmt.Fprint(cmd.OutOrStdout(), deserialize.FormatSummary(result))

	return nil
}

// deserializeCallback builds the diagnostic side channel: per-event lines in
// verbose mode, progress bars otherwise, and the ordering report unless quiet
func deserializeCallback(w io.Writer, opts *deserialize.Options) (deserialize.ProgressCallback, *mpb.Progress) {
	if opts.Quiet {
		return nil, nil
	}

	if opts.Verbose {
		return func(event deserialize.ProgressEvent) {
			if line := event.String(); line != "" {
				fmt.Fprintln(w, line)
			}
		}, nil
	}

	barCb, progress := deserialize.ProgressBarCallback()
	return func(event deserialize.ProgressEvent) {
		switch event.Type {
		case deserialize.EventScanStop, deserialize.EventAnalyzed, deserialize.EventTrim, deserialize.EventAppend:
			fmt.Fprintln(w, event.String())
		}
		barCb(event)
	}, progress
}
