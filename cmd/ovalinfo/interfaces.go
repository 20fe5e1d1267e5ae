package main

import (
	"fmt"
	"io"

	"github.com/Honny1/openscap/server/config"
	"github.com/Honny1/openscap/server/oval"
	"github.com/spf13/cobra"
)

func createInterfacesCmd(configManager config.Manager) *cobra.Command {
	var prefix string
	interfacesCmd := &cobra.Command{
		Use:     "interfaces FILE",
		Aliases: []string{"system_info"},
		Short:   "Print the system information and network interfaces of an OVAL document",
		Long: `Print the <system_info> section of an OVAL system characteristics document,
or of the system characteristics embedded in an OVAL results document. FILE may
be "-" to read the standard input.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newCommand(cmd, configManager)
			if err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), "Error:", err)
				return err
			}
			defer c.Close()
			return c.handle(c.runInterfaces(cmd, args[0], prefix))
		},
	}
	interfacesCmd.Flags().StringVar(&prefix, "prefix", "", "Prefix for every line of the text output")
	return interfacesCmd
}

func (c *command) runInterfaces(cmd *cobra.Command, path, prefix string) error {
	r, err := openInput(cmd, path)
	if err != nil {
		return err
	}
	defer r.Close()

	si, warnings, err := c.parser().ParseSystemInfo(c.ctx, r)
	if err != nil {
		return err
	}
	if err := c.checkWarnings(path, warnings); err != nil {
		return err
	}

	if c.cfg.Output.Format == config.OutputFormatText {
		si.Print(c.out, prefix)
		return nil
	}
	return c.writeOutput(func(w io.Writer, indent int) error {
		return oval.WriteSystemInfo(w, si, indent)
	})
}
