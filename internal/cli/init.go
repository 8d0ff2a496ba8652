package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/toxicwind/ComfyUI-Manager/internal/branding"
	"github.com/toxicwind/ComfyUI-Manager/internal/userdata"
)

var initNodes bool

func init() {
	initCmd.Flags().BoolVar(&initNodes, "custom-nodes", false, "Also create the custom_nodes directory of the "+branding.HostName()+" installation")
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the manager directory",
	Long: `Create the manager directory (~/` + branding.HomeDir() + `, or $` + branding.EnvVar("MANAGER_PATH") + ` when set)
with its startup-scripts and cache directories and a commented channels.list.
Existing files are left alone.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Initializing %s...\n", userdata.GetManagerRoot())
		if err := userdata.InitManager(out); err != nil {
			return err
		}
		if initNodes {
			if err := userdata.InitCustomNodes(out); err != nil {
				return err
			}
		}
		fmt.Fprintln(out, "Done.")
		return nil
	},
}
