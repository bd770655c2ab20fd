package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func newRootCmd() *cobra.Command {
	var flags deserializeFlags

	cmd := &cobra.Command{
		Use:   "tgmedia <serialized_file> <deserialized_file>",
		Short: "tgmedia - rebuild media streams from Telegram Desktop cache files",
		Long: `tgmedia deserializes decrypted Telegram Desktop media_cache files.

A serialized cache file stores a media stream as slices of parts written out
of order. tgmedia orders the parts by their destination offset and copies
them into a new file, reporting the contiguous (linearly playable) prefix.`,
		Version:       fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
		Args:          cobra.ExactArgs(2),
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDeserialize(cmd, args, &flags)
		},
	}
	flags.register(cmd)

	cmd.AddCommand(
		deserializeCmd(),
		inspectCmd(),
		scanCmd(),
		verifyCmd(),
		versionCmd(),
	)
	return cmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
