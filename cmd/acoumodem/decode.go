package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"acoumodem"
	"acoumodem/internal/wavio"
)

const decodeBlockSize = 4096

func newDecodeCmd() *cobra.Command {
	var (
		inputPath  string
		outputPath string
		password   string
	)

	cmd := &cobra.Command{
		Use:   "decode",
		Short: "Decode a WAV file back to bytes.",
		RunE: func(cmd *cobra.Command, args []string) error {
			samples, sampleRate, err := wavio.ReadWAV(inputPath)
			if err != nil {
				return userError{err}
			}

			dec := acoumodem.NewDecoder(acoumodem.DecoderOptions{SampleRate: sampleRate})
			dec.Start()

			for i := 0; i < len(samples); i += decodeBlockSize {
				end := i + decodeBlockSize
				if end > len(samples) {
					end = len(samples)
				}
				if err := dec.ProcessSamples(samples[i:end]); err != nil {
					return err
				}
				if dec.State().String() == "complete" {
					break
				}
			}

			if dec.NeedsPassword() {
				pw := password
				if pw == "" {
					pw = promptPassword()
				}
				if err := dec.RetryWithPassword([]byte(pw)); err != nil {
					return userError{fmt.Errorf("decode: %w", err)}
				}
			}

			result := dec.Result()
			if result == nil {
				return fmt.Errorf("decode: transmission irrecoverable: %w", dec.LastError())
			}

			if outputPath == "" || outputPath == "-" {
				_, err := os.Stdout.Write(result.Bytes)
				return err
			}
			return os.WriteFile(outputPath, result.Bytes, 0o644)
		},
	}

	cmd.Flags().StringVarP(&inputPath, "input", "i", "", "input WAV path")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "output file path, or stdout if omitted")
	cmd.Flags().StringVar(&password, "password", "", "password, if the transmission reports needsPassword")
	cmd.MarkFlagRequired("input")
	_ = viper.BindPFlag("input", cmd.Flags().Lookup("input"))
	return cmd
}

func promptPassword() string {
	fmt.Fprint(os.Stderr, "password: ")
	scanner := bufio.NewScanner(os.Stdin)
	scanner.Scan()
	return scanner.Text()
}
