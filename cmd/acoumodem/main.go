// Command acoumodem is the CLI front-end: encode/decode/serve
// subcommands over the acoumodem package, per SPEC_FULL.md §4.16.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCodeFor(err))
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "acoumodem",
		Short: "Acoustic MFSK modem: encode bytes to sound, decode sound back to bytes.",
	}

	viper.SetEnvPrefix("ACOUMODEM")
	viper.AutomaticEnv()
	viper.SetDefault("sample_rate", 48000)
	viper.SetDefault("log_level", "info")
	viper.SetDefault("listen_addr", ":8080")

	root.AddCommand(newEncodeCmd())
	root.AddCommand(newDecodeCmd())
	root.AddCommand(newServeCmd())
	return root
}

// exitCodeFor maps a returned error to spec.md §6's exit codes: 0
// success (handled by cobra before returning), 1 user error, 2
// transmission irrecoverable.
func exitCodeFor(err error) int {
	if ue, ok := err.(userError); ok {
		_ = ue
		return 1
	}
	return 2
}

type userError struct{ error }
