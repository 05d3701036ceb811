package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/deploymenttheory/go-winkey/internal/config"
	"github.com/deploymenttheory/go-winkey/internal/logging"
	"github.com/deploymenttheory/go-winkey/pkg/app"
)

var (
	// Global output flags only
	verbose      bool
	quiet        bool
	outputFormat string
	configPath   string

	// Loaded before any subcommand runs
	cfg = config.Default()
)

var rootCmd = &cobra.Command{
	Use:   "go-winkey",
	Short: "Recover Windows product keys from the registry",
	Long: `go-winkey identifies a Windows installation and recovers its product key
from the encoded DigitalProductId value under
HKLM\SOFTWARE\Microsoft\Windows NT\CurrentVersion.

It reads the live registry on Windows, or works offline from a registry
export (.reg) or a raw DigitalProductId blob on any platform.

Commands:
  find        Detect the edition and recover its product key
  decode      Decode a DigitalProductId blob for a given edition
  resolve     Show which edition a release and edition text map to
  editions    List supported editions and the values holding their keys
  encode      Build a DigitalProductId window from a product key`,
	Version:       "0.1.0-dev",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
		if !cmd.Flags().Changed("output") {
			outputFormat = cfg.Output
		}
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if code := app.ErrorCode(err); code != "" {
			fmt.Fprintf(os.Stderr, "Error [%s]: %v\n", code, err)
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress output except errors")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "table", "output format (table, json, yaml)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default: winkey-config.yaml in ., ./config, $HOME/.winkey, /etc/winkey)")

	rootCmd.MarkFlagsMutuallyExclusive("verbose", "quiet")
}

// newAppContext builds the application context for a command from the global
// flags and loaded configuration.
func newAppContext(cmd *cobra.Command) *app.Context {
	ctx := app.NewContext()
	if cmd.Context() != nil {
		ctx.Context = cmd.Context()
	}
	ctx.OutputFormat = GetOutputFormat()
	ctx.Verbose = GetVerbose()
	ctx.Quiet = GetQuiet()
	ctx.Out = cmd.OutOrStdout()
	ctx.ErrOut = cmd.ErrOrStderr()

	level := cfg.LogLevel
	switch {
	case verbose:
		level = "debug"
	case quiet:
		level = "error"
	}
	ctx.Logger = logging.New(ctx.ErrOut, logging.Options{Level: level, Format: cfg.LogFormat})
	return ctx
}

// GetVerbose returns the verbose flag value
func GetVerbose() bool {
	return verbose
}

// GetQuiet returns the quiet flag value
func GetQuiet() bool {
	return quiet
}

// GetOutputFormat returns the output format
func GetOutputFormat() string {
	return outputFormat
}
