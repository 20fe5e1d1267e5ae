package main

import (
	"fmt"

	"github.com/Honny1/openscap/server/config"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"
)

func createConfigDumpCmd(configManager config.Manager) *cobra.Command {
	var configDumpCmd = &cobra.Command{
		Use:   "config_dump",
		Short: "Dump the parsed configuration in yaml format",
		Long: `
Dump the parsed configuration in yaml format.

The following precedence is used when reading configs:
1. CLI flags
2. Environment Variables
3. Config File
4. Default Values
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := configManager.LoadConfig()
			if err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), "Error:", err)
				return err
			}
			buf, err := yaml.Marshal(cfg)
			if err != nil {
				return fmt.Errorf("marshalling config to yaml: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(buf))
			return nil
		},
	}

	return configDumpCmd
}
