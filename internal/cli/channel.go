package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/toxicwind/ComfyUI-Manager/internal/channel"
	"github.com/toxicwind/ComfyUI-Manager/internal/userdata"
)

func init() {
	channelCmd.AddCommand(channelListCmd)
	rootCmd.AddCommand(channelCmd)
}

var channelCmd = &cobra.Command{
	Use:   "channel",
	Short: "Inspect registry channels",
	Long: `Registry channels name the locations node registries are fetched from.

Built-in channels can be overridden and new ones added in channels.list in
the manager directory, one "name::location" per line.`,
}

var channelListCmd = &cobra.Command{
	Use:   "list",
	Short: "List known channels and their locations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession(cmd)
		if err != nil {
			return err
		}
		defer s.close(cmd.Context())

		dir := &channel.FileDirectory{Path: userdata.GetChannelsListPath(), Logger: s.logger}
		known, err := dir.Known()
		if err != nil {
			return fmt.Errorf("loading channels: %w", err)
		}

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		for _, name := range channel.Names(known) {
			fmt.Fprintf(tw, "%s\t%s\n", name, known[name])
		}
		return tw.Flush()
	},
}
