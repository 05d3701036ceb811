package cmd

import (
	"encoding/hex"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/deploymenttheory/go-winkey/internal/productkey"
	"github.com/deploymenttheory/go-winkey/internal/types"
	"github.com/deploymenttheory/go-winkey/pkg/app"
)

var (
	encodeOut    string
	encodeLength int
	encodeAsHex  bool
)

// encodeResult is the output of the encode command.
type encodeResult struct {
	ProductKey types.ProductKey `json:"product_key" yaml:"product_key"`
	Window     string           `json:"window" yaml:"window"`
	BlobFile   string           `json:"blob_file,omitempty" yaml:"blob_file,omitempty"`
	BlobLength int              `json:"blob_length,omitempty" yaml:"blob_length,omitempty"`
}

var encodeCmd = &cobra.Command{
	Use:   "encode KEY",
	Short: "Build the encoded window for a product key",
	Long: `Convert a product key back into the 15 bytes stored at offset 52 of a
DigitalProductId value. With --out a synthetic value is written that
decode and find --blob-file accept. Only the key layout is checked.

Examples:
  go-winkey encode BBBBB-BBBBB-BBBBB-BBBBB-BBBBC
  go-winkey encode QYKYC-2CTCY-282HV-3YCXT-J9DRD --out DigitalProductId.bin`,

	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runEncode(cmd, args[0])
	},
}

func init() {
	rootCmd.AddCommand(encodeCmd)

	encodeCmd.Flags().StringVar(&encodeOut, "out", "", "write a synthetic DigitalProductId value to this file")
	encodeCmd.Flags().IntVar(&encodeLength, "length", types.DigitalProductIDLength, "length of the written value")
	encodeCmd.Flags().BoolVar(&encodeAsHex, "hex", false, "write the value as a hex dump instead of raw bytes")
}

func runEncode(cmd *cobra.Command, key string) error {
	ctx := newAppContext(cmd)

	pk := types.ProductKey(strings.ToUpper(strings.TrimSpace(key)))
	window, err := productkey.Encode(pk)
	if err != nil {
		return app.NewError(app.ErrCodeInvalidInput, "invalid product key", err)
	}

	result := encodeResult{ProductKey: pk, Window: hex.EncodeToString(window[:])}
	if encodeOut != "" {
		blob, err := productkey.EncodeBlob(pk, encodeLength)
		if err != nil {
			return app.NewError(app.ErrCodeInvalidInput, "invalid product key", err)
		}
		data := blob
		if encodeAsHex {
			data = []byte(hex.EncodeToString(blob) + "\n")
		}
		if err := os.WriteFile(encodeOut, data, 0o644); err != nil {
			return fmt.Errorf("failed to write blob file: %w", err)
		}
		result.BlobFile = encodeOut
		result.BlobLength = len(blob)
		ctx.Log(fmt.Sprintf("Wrote %d byte value to %s", len(blob), encodeOut))
	}

	return writeOutput(ctx.Out, ctx.OutputFormat, result, func(tw *tabwriter.Writer) {
		fmt.Fprintf(tw, "Product Key\t%s\n", result.ProductKey)
		fmt.Fprintf(tw, "Window\t%s\n", result.Window)
		if result.BlobFile != "" {
			fmt.Fprintf(tw, "Blob File\t%s (%d bytes)\n", result.BlobFile, result.BlobLength)
		}
	})
}
