package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/toxicwind/ComfyUI-Manager/internal/listing"
)

func init() {
	rootCmd.AddCommand(newShowCmd("show", false))
	rootCmd.AddCommand(newShowCmd("simple-show", true))
}

func newShowCmd(name string, simple bool) *cobra.Command {
	var reg registryFlags
	short := "List registry nodes with their state and author"
	if simple {
		short = "List registry node names only"
	}
	cmd := &cobra.Command{
		Use:       name + " <" + strings.Join(listing.Filters(), "|") + ">",
		Short:     short,
		Args:      cobra.ExactArgs(1),
		ValidArgs: listing.Filters(),
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := listing.ParseFilter(args[0])
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			defer s.close(ctx)

			mapping, err := s.resolve(ctx, reg.channel, reg.mode)
			if err != nil {
				return err
			}
			nodesDir, err := s.nodesDir(cmd)
			if err != nil {
				return err
			}

			l := &listing.Lister{Mapping: mapping, NodesDir: nodesDir, Logger: s.logger}
			if simple {
				err = listing.WriteSimple(cmd.OutOrStdout(), l.List(filter))
			} else {
				err = listing.WriteVerbose(cmd.OutOrStdout(), l.List(filter))
			}
			if err != nil {
				return fmt.Errorf("writing listing: %w", err)
			}
			return nil
		},
	}
	reg.register(cmd)
	return cmd
}
