package cmd

import (
	"github.com/spf13/cobra"

	"github.com/deploymenttheory/go-winkey/pkg/app/findkey"
)

var (
	decodeHex     string
	decodeEdition string
)

var decodeCmd = &cobra.Command{
	Use:   "decode [blob-file]",
	Short: "Decode a DigitalProductId value for a known edition",
	Long: `Decode the product key from a DigitalProductId value. The value is read
from a file (raw bytes or a hex dump) or given inline with --hex.

Examples:
  go-winkey decode DigitalProductId.bin --edition WindowsXPProfessional
  go-winkey decode --edition "Windows 7 Ultimate" --hex "a4,00,00,00,03,00,..."`,

	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := ""
		if len(args) == 1 {
			path = args[0]
		}
		return runDecode(cmd, path)
	},
}

func init() {
	rootCmd.AddCommand(decodeCmd)

	decodeCmd.Flags().StringVar(&decodeHex, "hex", "", "DigitalProductId bytes as hex")
	decodeCmd.Flags().StringVarP(&decodeEdition, "edition", "e", "", "edition the value belongs to (required)")
	_ = decodeCmd.MarkFlagRequired("edition")
}

func runDecode(cmd *cobra.Command, path string) error {
	ctx := newAppContext(cmd)

	request := &findkey.Request{
		Source:      findkey.SourceBlob,
		Path:        path,
		EditionName: decodeEdition,
	}
	if decodeHex != "" {
		request.Source = findkey.SourceHex
		request.Hex = decodeHex
	}

	response, err := findkey.Handle(ctx, request)
	if err != nil {
		return err
	}
	return findkey.FormatOutput(ctx.Out, response, ctx.OutputFormat)
}
