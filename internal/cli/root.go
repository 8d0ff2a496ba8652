package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/toxicwind/ComfyUI-Manager/internal/branding"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var (
	flagVerbose bool
	flagQuiet   bool
	flagTrace   bool
)

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Only log errors")
	rootCmd.PersistentFlags().BoolVar(&flagTrace, "trace", false, "Write trace spans to stderr")
}

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` installs, updates, enables and disables ` + branding.HostName() + ` custom nodes.

Nodes are looked up in the registry of the selected channel and live under
the custom_nodes directory of the ` + branding.HostName() + ` installation named by $` + branding.HostPathEnv() + `
(or the current directory). A disabled node keeps its files under a
".disabled" suffix.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintln(rootCmd.ErrOrStderr(), "Error:", err)
	}
	return err
}
