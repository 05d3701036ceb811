package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/deploymenttheory/go-winkey/internal/types"
)

var editionsCmd = &cobra.Command{
	Use:   "editions",
	Short: "List supported editions and the values holding their keys",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := newAppContext(cmd)

		editions := types.SupportedEditions()
		infos := make([]editionInfo, 0, len(editions))
		for _, ed := range editions {
			infos = append(infos, describeEdition(ed))
		}

		return writeOutput(ctx.Out, ctx.OutputFormat, infos, func(tw *tabwriter.Writer) {
			fmt.Fprintln(tw, "EDITION\tNAME\tVALUE")
			for _, info := range infos {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", info.Edition.Identifier(), info.Name, info.ValueName)
			}
		})
	},
}

func init() {
	rootCmd.AddCommand(editionsCmd)
}
