package main

import (
	"fmt"
	"os"

	"github.com/architeacher/gadgets/internal/config"
	"github.com/architeacher/gadgets/internal/runtime"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "gadgets",
	Short:         "Personal device catalog API",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the REST API server",
	Long: `Run the REST API server.

Configuration is read from the environment. With VAULT_ENABLED=true the
database credentials are overlaid from Vault and reloaded on SIGHUP.`,
	RunE: func(*cobra.Command, []string) error {
		return runtime.New().Run()
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations",
	RunE: func(cmd *cobra.Command, _ []string) error {
		applied, err := runtime.Migrate(cmd.Context())
		if err != nil {
			return err
		}

		if len(applied) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "schema is up to date")

			return nil
		}

		for _, version := range applied {
			fmt.Fprintf(cmd.OutOrStdout(), "applied %s\n", version)
		}

		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the build version",
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "gadgets %s (%s)\n", orUnknown(config.ServiceVersion), orUnknown(config.CommitSHA))
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}

	return s
}
