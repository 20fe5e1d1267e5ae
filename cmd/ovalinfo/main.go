// Command ovalinfo prints the result directives and the system information
// stored in OVAL results and system characteristics documents.
package main

import (
	"os"

	"github.com/Honny1/openscap/server/config"
	"github.com/spf13/cobra"
)

func createRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "ovalinfo",
		Short: "Inspect OVAL results and system characteristics documents",
		Long: `ovalinfo reads OVAL XML documents and prints the sections it knows about.

Configurable by env variables, a yaml config file or flags:
  --output_format  text, xml or json
  --parser_strict  fail when the document produced parse warnings
  --logging_file   also write logs to a rotated file`,
		SilenceUsage: true,
		// errors are logged by the subcommands
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringP("config", "c", "", "Path to a configuration file")

	configManager := config.NewManager(rootCmd)
	rootCmd.AddCommand(
		createDirectivesCmd(configManager),
		createInterfacesCmd(configManager),
		createConfigDumpCmd(configManager),
	)
	return rootCmd
}

func main() {
	if err := createRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
