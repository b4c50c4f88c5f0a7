package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/sajjad-MoBe/slotstore/internal/config"
	"github.com/sajjad-MoBe/slotstore/internal/logging"
)

// Version is set at build time
var Version = "dev"

func newRootCmd(cfg *config.Config) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "slotstore",
		Short: "A single-slot in-memory value store",
		Long: `A single-slot in-memory value store served over HTTP, with
a message deployment (/save, /read) and a name deployment (/post, /get).`,
		SilenceUsage: true,
	}

	logging.AddFlags(rootCmd.PersistentFlags(), &cfg.Logging)

	rootCmd.AddCommand(newServeCmd(cfg))
	rootCmd.AddCommand(newSaveCmd(cfg))
	rootCmd.AddCommand(newReadCmd(cfg))
	rootCmd.AddCommand(newVersionCmd())
	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), Version)
		},
	}
}

// run executes the root command with args, writing to out
func run(args []string, out io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	rootCmd := newRootCmd(&cfg)
	rootCmd.SetArgs(args)
	rootCmd.SetOut(out)
	return rootCmd.Execute()
}

func ExecuteServer() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "couldn't execute app,", err)
		os.Exit(1)
	}
}
