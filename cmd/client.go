package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sajjad-MoBe/slotstore/client"
	"github.com/sajjad-MoBe/slotstore/internal/config"
	"github.com/sajjad-MoBe/slotstore/internal/deployment"
)

func newClient(cfg *config.Config) (*client.Client, error) {
	kind, err := deployment.ParseKind(cfg.Deployment)
	if err != nil {
		return nil, err
	}
	return client.NewClient(cfg.Server, kind, client.DefaultRetryConfig()), nil
}

func newSaveCmd(cfg *config.Config) *cobra.Command {
	saveCmd := &cobra.Command{
		Use:   "save <text>",
		Short: "Save a value on a running server",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient(cfg)
			if err != nil {
				return err
			}
			message, err := c.Save(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), message)
			return nil
		},
	}
	config.AddClientFlags(saveCmd.Flags(), cfg)
	return saveCmd
}

func newReadCmd(cfg *config.Config) *cobra.Command {
	readCmd := &cobra.Command{
		Use:   "read",
		Short: "Read the value saved on a running server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient(cfg)
			if err != nil {
				return err
			}
			value, err := c.Read(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), value)
			return nil
		},
	}
	config.AddClientFlags(readCmd.Flags(), cfg)
	return readCmd
}
