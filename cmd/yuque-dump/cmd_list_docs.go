/*
Copyright © 2024 paul <paul@denknerd.org>
*/
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/toothbrush/yuque-dump/yuque"
	"golang.org/x/exp/maps"
)

var listDocsUsage = strings.TrimSpace(`
Print the documents of one knowledge base, by slug and title.  Handy to predict the filenames a
download will produce.
`)

var listDocsCmd = &cobra.Command{
	Use:   "docs <repo name>",
	Short: "Print list of documents in a knowledge base",
	Long:  listDocsUsage,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		prompter := &linePrompter{}
		defer prompter.Close()

		api, stop, err := newAPI(prompter, false)
		if err != nil {
			return err
		}
		defer stop()
		prompter.Close()

		repos, err := api.ListRepos(ctx, yuque.ReposQuery{})
		if err != nil {
			return fmt.Errorf("yuque-dump: couldn't list knowledge bases: %w", err)
		}

		repo, ok := repos[args[0]]
		if !ok {
			return fmt.Errorf("yuque-dump: no knowledge base named '%s', see `yuque-dump list repos`", args[0])
		}

		docs, err := api.ListDocs(ctx, repo.ID)
		if err != nil {
			return fmt.Errorf("yuque-dump: couldn't list documents: %w", err)
		}
		log.Printf("Found %d documents in '%s'.\n", len(docs), repo.Name)

		printDocs(cmd.OutOrStdout(), docs)
		return nil
	},
}

func init() {
	listCmd.AddCommand(listDocsCmd)
}

func printDocs(w io.Writer, docs map[string]string) {
	slugs := maps.Keys(docs)
	sort.Strings(slugs)

	fmt.Fprintf(w, "docs:\n")
	for _, slug := range slugs {
		fmt.Fprintf(w, "  - %s: %s\n", slug, docs[slug])
	}
}
