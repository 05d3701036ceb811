package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/deploymenttheory/go-winkey/pkg/app/findkey"
)

var (
	// Input selection (find command only)
	findRegFile  string
	findBlobFile string

	// Detection overrides
	findRelease     string
	findEditionText string
	findEdition     string
	findNoWMI       bool

	// Registry layout
	findKeyPath        string
	findValue          string
	findAlternateValue string
	findNoWOW64        bool

	findTimeout time.Duration
)

var findCmd = &cobra.Command{
	Use:   "find",
	Short: "Detect the Windows edition and recover its product key",
	Long: `Detect the Windows release and edition, then decode the product key held
in the registry value that edition uses.

Examples:
  # Read the live registry (Windows only)
  go-winkey find

  # Work offline from an export of the CurrentVersion key
  go-winkey find --reg-file currentversion.reg

  # Override detection
  go-winkey find --reg-file currentversion.reg --release 7 --edition-text Professional

  # Decode a saved DigitalProductId value for a known edition
  go-winkey find --blob-file DigitalProductId.bin --edition "Windows XP Professional"`,

	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runFind(cmd)
	},
}

func init() {
	rootCmd.AddCommand(findCmd)

	// Input selection
	findCmd.Flags().StringVar(&findRegFile, "reg-file", "", "registry export (.reg) of the CurrentVersion key")
	findCmd.Flags().StringVar(&findBlobFile, "blob-file", "", "raw or hex DigitalProductId value")

	// Detection
	findCmd.Flags().StringVar(&findRelease, "release", "", "release to use instead of detection (7, XP)")
	findCmd.Flags().StringVar(&findEditionText, "edition-text", "", "edition text to combine with --release (Professional)")
	findCmd.Flags().StringVarP(&findEdition, "edition", "e", "", "edition name, skips detection (Windows7Professional)")
	findCmd.Flags().BoolVar(&findNoWMI, "no-wmi", false, "do not query WMI for the OS caption")

	// Registry layout
	findCmd.Flags().StringVar(&findKeyPath, "key-path", "", "registry key holding the product id values")
	findCmd.Flags().StringVar(&findValue, "value", "", "value name used by most editions")
	findCmd.Flags().StringVar(&findAlternateValue, "alternate-value", "", "value name used by Windows 7 Professional")
	findCmd.Flags().BoolVar(&findNoWOW64, "no-wow64", false, "do not retry 64-bit and 32-bit registry views")

	findCmd.Flags().DurationVar(&findTimeout, "timeout", 30*time.Second, "maximum time to spend reading the key")

	// Mutual exclusions
	findCmd.MarkFlagsMutuallyExclusive("reg-file", "blob-file")
	findCmd.MarkFlagsMutuallyExclusive("edition", "release")
	findCmd.MarkFlagsMutuallyExclusive("edition", "edition-text")
}

func runFind(cmd *cobra.Command) error {
	// Create application context
	ctx := newAppContext(cmd)
	ctx.DefaultTimeout = findTimeout

	request := &findkey.Request{
		Source:         findSource(),
		EditionName:    findEdition,
		Release:        firstNonEmpty(findRelease, cfg.Detect.Release),
		EditionText:    firstNonEmpty(findEditionText, cfg.Detect.Edition),
		KeyPath:        firstNonEmpty(findKeyPath, cfg.Registry.KeyPath),
		DefaultValue:   firstNonEmpty(findValue, cfg.Registry.DefaultValue),
		AlternateValue: firstNonEmpty(findAlternateValue, cfg.Registry.AlternateValue),
		WOW64Fallback:  cfg.Registry.WOW64Fallback && !findNoWOW64,
		UseWMI:         cfg.Detect.UseWMI && !findNoWMI,
	}
	if findEdition != "" {
		// An explicit edition replaces configured detection text.
		request.Release, request.EditionText = "", ""
	}

	switch {
	case findRegFile != "":
		request.Path = findRegFile
	case findBlobFile != "":
		request.Path = findBlobFile
	}

	// Handle the request through application layer
	response, err := findkey.Handle(ctx, request)
	if err != nil {
		return err
	}

	// Format and display results
	return findkey.FormatOutput(ctx.Out, response, ctx.OutputFormat)
}

// findSource picks the source from flags, then configuration. Configured
// source names match the request's.
func findSource() string {
	switch {
	case findRegFile != "":
		return findkey.SourceRegFile
	case findBlobFile != "":
		return findkey.SourceBlob
	default:
		return cfg.Source
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
