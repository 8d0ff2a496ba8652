package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/toxicwind/ComfyUI-Manager/internal/branding"
	"github.com/toxicwind/ComfyUI-Manager/internal/startup"
	"github.com/toxicwind/ComfyUI-Manager/internal/userdata"
)

func init() {
	rootCmd.AddCommand(clearCmd)
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Cancel pending startup work",
	Long: `Remove the queued install scripts and any pending restore snapshot, so the
next ` + branding.HostName() + ` start does not run them. Nothing to remove is not an error.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		removed, err := startup.Clear(userdata.GetInstallScriptsPath(), userdata.GetRestoreSnapshotPath())
		for _, p := range removed {
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", p)
		}
		return err
	},
}
