/*
Copyright © 2024 paul <paul@denknerd.org>
*/
package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Output current config",
	Long: `
Is something not working for you?  Have a look whether your config is as you expect.
`,
	Args: cobra.ExactArgs(0),
	Run: func(cmd *cobra.Command, args []string) {
		showConfig(cmd.OutOrStdout())
	},
}

func init() {
	configCmd.AddCommand(showCmd)
}

// Only persistent flags are known here, download's own flags show up in the parsed YAML.
func showConfig(w io.Writer) {
	fmt.Fprintf(w, "Dump current config state:\n\n")

	fmt.Fprintf(w, "  Config file: %s\n", Config)
	fmt.Fprintf(w, "  Debug: %v\n", Debug)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  Parsed YAML:\n%#v\n", ParsedConfig)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  BaseURL: %s\n", BaseURL)
	fmt.Fprintf(w, "  CredentialsFile: %s\n", CredentialsFile)
	fmt.Fprintf(w, "  LocalStore: %s\n", LocalStore)
	fmt.Fprintf(w, "  RequestTimeout: %v\n", RequestTimeout)
}
