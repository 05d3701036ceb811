package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/deploymenttheory/go-winkey/internal/edition"
	"github.com/deploymenttheory/go-winkey/internal/productkey"
	"github.com/deploymenttheory/go-winkey/internal/services"
	"github.com/deploymenttheory/go-winkey/internal/types"
)

// editionInfo is one row of resolve and editions output.
type editionInfo struct {
	Edition   types.Edition `json:"edition" yaml:"edition"`
	Name      string        `json:"name" yaml:"name"`
	Supported bool          `json:"supported" yaml:"supported"`
	ValueName string        `json:"value_name,omitempty" yaml:"value_name,omitempty"`
}

var resolveCmd = &cobra.Command{
	Use:   "resolve RELEASE [EDITION...]",
	Short: "Show which edition a release and edition text map to",
	Long: `Classify a release and edition text the way detected OS captions are
classified, and show the registry value holding that edition's key.

Examples:
  go-winkey resolve 7 Professional
  go-winkey resolve XP Home
  go-winkey resolve 7`,

	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runResolve(cmd, args[0], strings.Join(args[1:], " "))
	},
}

func init() {
	rootCmd.AddCommand(resolveCmd)
}

func runResolve(cmd *cobra.Command, release, editionText string) error {
	ctx := newAppContext(cmd)

	ed := edition.NewResolver().Resolve(release, editionText)
	info := describeEdition(ed)
	ctx.Log(fmt.Sprintf("Resolved %q %q to %s", release, editionText, ed.Identifier()))

	return writeOutput(ctx.Out, ctx.OutputFormat, info, func(tw *tabwriter.Writer) {
		fmt.Fprintf(tw, "Edition\t%s\n", info.Edition.Identifier())
		fmt.Fprintf(tw, "Name\t%s\n", info.Name)
		if info.Supported {
			fmt.Fprintf(tw, "Value\t%s\n", info.ValueName)
		} else {
			fmt.Fprintf(tw, "Status\t%s\n", services.MessageNotSupported)
		}
	})
}

// describeEdition fills an editionInfo using the configured value names.
func describeEdition(ed types.Edition) editionInfo {
	info := editionInfo{Edition: ed, Name: ed.String(), Supported: ed.IsSupported()}
	name, err := productkey.ValueName(ed)
	if err != nil {
		return info
	}
	switch name {
	case types.DigitalProductIDAlternateValue:
		info.ValueName = firstNonEmpty(cfg.Registry.AlternateValue, name)
	default:
		info.ValueName = firstNonEmpty(cfg.Registry.DefaultValue, name)
	}
	return info
}
