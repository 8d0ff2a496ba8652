package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/toxicwind/ComfyUI-Manager/internal/config"
	"github.com/toxicwind/ComfyUI-Manager/internal/userdata"
)

var doctorFix bool

func init() {
	doctorCmd.Flags().BoolVar(&doctorFix, "fix", false, "Create missing manager directories")
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the installation for problems",
	Long: `Check that git and the configured Python interpreter are on PATH, that the
manager and custom_nodes directories exist, and that no node has both an
enabled and a disabled copy. Inconsistent nodes are reported, never repaired.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		config.Load()
		problems, err := userdata.CheckInstallation(cmd.OutOrStdout(), config.Python(), doctorFix)
		if err != nil {
			return err
		}
		if problems > 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "\n%d problem(s) found.\n", problems)
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), "\nNo problems found.")
		}
		return nil
	},
}
