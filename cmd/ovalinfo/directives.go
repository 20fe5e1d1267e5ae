package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/Honny1/openscap/server/config"
	"github.com/Honny1/openscap/server/oval"
	"github.com/Honny1/openscap/server/oval/results"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

func createDirectivesCmd(configManager config.Manager) *cobra.Command {
	directivesCmd := &cobra.Command{
		Use:   "directives FILE",
		Short: "Print the result directives of an OVAL results document",
		Long: `Print, for every definition result, whether it is reported and with which
content level. FILE may be "-" to read the standard input.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newCommand(cmd, configManager)
			if err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), "Error:", err)
				return err
			}
			defer c.Close()
			return c.handle(c.runDirectives(cmd, args[0]))
		},
	}
	return directivesCmd
}

func (c *command) runDirectives(cmd *cobra.Command, path string) error {
	r, err := openInput(cmd, path)
	if err != nil {
		return err
	}
	defer r.Close()

	d, warnings, err := c.parser().ParseDirectives(c.ctx, r)
	if err != nil {
		return err
	}
	if err := c.checkWarnings(path, warnings); err != nil {
		return err
	}

	if c.cfg.Output.Format == config.OutputFormatText {
		printDirectivesTable(c.out, d)
		return nil
	}
	return c.writeOutput(func(w io.Writer, indent int) error {
		return oval.WriteDirectives(w, d, indent)
	})
}

func printDirectivesTable(w io.Writer, d *results.Directives) {
	table := tablewriter.NewWriter(w)
	table.SetRowLine(true)
	table.SetHeader([]string{"Result", "Reported", "Content"})
	d.Each(func(rt results.ResultType, dir results.Directive) {
		table.Append([]string{rt.String(), strconv.FormatBool(dir.Reported), dir.Content.String()})
	})
	table.Render()
}
