package main

import (
	"fmt"
	"io"

	schemafiles "github.com/igegov/cv-portfolio/schemas"
	"github.com/spf13/cobra"
)

var schemaCmd = &cobra.Command{
	Use:   "schema [name]",
	Short: "List or print the bundled JSON Schemas",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := ""
		if len(args) == 1 {
			name = args[0]
		}
		return printSchema(name, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(schemaCmd)
}

// printSchema lists bundled schema names, or prints one schema when name is set
func printSchema(name string, out io.Writer) error {
	if name == "" {
		for _, n := range schemafiles.Names() {
			fmt.Fprintln(out, n)
		}
		return nil
	}
	if !isBundledSchema(name) {
		return fmt.Errorf("unknown schema %q", name)
	}
	data, err := schemafiles.Read(name)
	if err != nil {
		return err
	}
	_, err = out.Write(data)
	return err
}
