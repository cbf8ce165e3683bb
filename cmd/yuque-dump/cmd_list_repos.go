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

var listReposUsage = strings.TrimSpace(`
If you want to find out what knowledge bases your Yuque account has, use this command.  The names
printed here are what --repos expects.
`)

var RepoType string

var listReposCmd = &cobra.Command{
	Use:   "repos",
	Short: "Print list of knowledge bases",
	Long:  listReposUsage,
	Args:  cobra.ExactArgs(0),
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

		log.Printf("Listing knowledge bases of %s...\n", api.Namespace)
		repos, err := api.ListRepos(ctx, yuque.ReposQuery{Type: RepoType})
		if err != nil {
			return fmt.Errorf("yuque-dump: couldn't list knowledge bases: %w", err)
		}
		log.Printf("Found %d knowledge bases.\n", len(repos))

		printRepos(cmd.OutOrStdout(), repos)
		return nil
	},
}

func init() {
	listCmd.AddCommand(listReposCmd)

	listReposCmd.Flags().StringVar(&RepoType, "repo-type", "", "only list knowledge bases of this type (Book, Design)")
}

func printRepos(w io.Writer, repos map[string]yuque.Repo) {
	names := maps.Keys(repos)
	sort.Strings(names)

	fmt.Fprintf(w, "repos:\n")
	for _, name := range names {
		repo := repos[name]
		fmt.Fprintf(w, "  - %s: %d documents (id %d)\n", name, repo.ItemsCount, repo.ID)
	}
}
