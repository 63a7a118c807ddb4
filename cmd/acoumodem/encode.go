package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"acoumodem"
	"acoumodem/internal/wavio"
)

func newEncodeCmd() *cobra.Command {
	var (
		inputPath  string
		outputPath string
		password   string
		modeName   string
		compress   bool
	)

	cmd := &cobra.Command{
		Use:   "encode",
		Short: "Encode bytes (file or stdin) to a WAV file.",
		RunE: func(cmd *cobra.Command, args []string) error {
			var data []byte
			var err error
			if inputPath == "" || inputPath == "-" {
				data, err = io.ReadAll(os.Stdin)
			} else {
				data, err = os.ReadFile(inputPath)
			}
			if err != nil {
				return userError{err}
			}

			mode := acoumodem.Phone
			if modeName == "wideband" {
				mode = acoumodem.Wideband
			}

			result, err := acoumodem.Encode(data, acoumodem.EncodeOptions{
				SampleRate: viper.GetInt("sample_rate"),
				Mode:       mode,
				Compress:   compress,
				Password:   []byte(password),
			})
			if err != nil {
				return userError{err}
			}

			if outputPath == "" {
				outputPath = "out.wav"
			}
			return wavio.WriteWAV(outputPath, result.PCM, result.SampleRate)
		},
	}

	cmd.Flags().StringVarP(&inputPath, "input", "i", "", "input file path, or stdin if omitted")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "out.wav", "output WAV path")
	cmd.Flags().StringVar(&password, "password", "", "encrypt with this password")
	cmd.Flags().StringVar(&modeName, "mode", "phone", "audio mode: phone|wideband")
	cmd.Flags().BoolVar(&compress, "compress", false, "try zstd compression before transmission")
	return cmd
}
