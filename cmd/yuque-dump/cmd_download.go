/*
Copyright © 2024 paul <paul@denknerd.org>
*/
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/toothbrush/yuque-dump/internal/termfmt"
	"github.com/toothbrush/yuque-dump/localdump"
	"github.com/toothbrush/yuque-dump/yuque"
)

var downloadUsage = strings.TrimSpace(`
Export knowledge bases to the local store, one directory per knowledge base and one Markdown file
per document.  Images hosted on the Yuque CDN are downloaded into an assets/ directory next to the
documents, and the links pointing at them are rewritten.

Pick knowledge bases with --repos (repeatable) or --all-repos; otherwise you'll be asked.
`)

var downloadCmd = &cobra.Command{
	Use:   "download",
	Short: "Export Yuque knowledge bases to Markdown",
	Long:  downloadUsage,
	Args:  cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		debugLog("  Repos: %v\n", ReposToExport)
		debugLog("  AllRepos: %v\n", AllRepos)
		debugLog("  Workers: %d\n", Workers)
		return runDownload(cmd.Context())
	},
}

var (
	ReposToExport []string
	AllRepos      bool
	Workers       int
	FrontMatter   bool
	Prune         bool
	Progress      bool
	WithVCR       bool
)

func init() {
	rootCmd.AddCommand(downloadCmd)

	downloadCmd.Flags().StringArrayVar(&ReposToExport, "repos", []string{}, "knowledge base to export, by name (repeatable)")
	downloadCmd.Flags().BoolVar(&AllRepos, "all-repos", false, "export every knowledge base without asking")
	downloadCmd.Flags().StringVar(&RepoType, "repo-type", "", "only consider knowledge bases of this type (Book, Design)")
	downloadCmd.Flags().IntVar(&Workers, "workers", 0, "maximum documents downloaded at once per knowledge base (0: no limit)")
	downloadCmd.Flags().BoolVar(&FrontMatter, "front-matter", false, "prepend YAML front matter with document metadata")
	downloadCmd.Flags().BoolVar(&Prune, "prune", false, "delete local documents that no longer exist remotely")
	downloadCmd.Flags().BoolVar(&Progress, "progress", false, "show a progress bar per knowledge base")
	downloadCmd.Flags().BoolVar(&WithVCR, "with-vcr", false, "use go-vcr to cache responses")
}

func runDownload(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if LocalStore == "" {
		return fmt.Errorf("yuque-dump: no location set for local store.  Use --store or set it in your config file")
	}
	if Workers < 0 {
		return fmt.Errorf("yuque-dump: --workers must not be negative, got %d", Workers)
	}

	storePath, err := expandPath(LocalStore)
	if err != nil {
		return err
	}

	prompter := &linePrompter{}
	defer prompter.Close()

	api, stop, err := newAPI(prompter, WithVCR)
	if err != nil {
		return err
	}
	defer func() {
		if err := stop(); err != nil {
			log.Printf("yuque-dump: couldn't save VCR recording: %v\n", err)
		}
	}()

	repos, err := api.ListRepos(ctx, yuque.ReposQuery{Type: RepoType})
	if err != nil {
		return fmt.Errorf("yuque-dump: couldn't list knowledge bases: %w", err)
	}
	debugLog("Found %d knowledge bases for %s.\n", len(repos), api.Namespace)

	selected, err := selectRepos(os.Stdout, prompter, repos, ReposToExport, AllRepos)
	if err != nil {
		return err
	}
	// the prompt is done with; give the terminal back before the notices start.
	if err := prompter.Close(); err != nil {
		return fmt.Errorf("yuque-dump: couldn't release terminal: %w", err)
	}

	if len(selected) == 0 {
		fmt.Printf("Nothing selected, nothing to do.\n")
		return nil
	}

	exporter := &localdump.Exporter{
		StorePath:   storePath,
		API:         api,
		ImageClient: api.Client,
		Workers:     Workers,
		FrontMatter: FrontMatter,
		Prune:       Prune,
		Progress:    Progress,
		Logger:      log.New(os.Stderr, "", 0),
		Out:         os.Stdout,
	}

	summary, err := exporter.ExportRepos(ctx, selected)
	if err != nil {
		return fmt.Errorf("yuque-dump: export failed after %d documents: %w", summary.Docs, err)
	}

	absStore, err := filepath.Abs(storePath)
	if err != nil {
		absStore = storePath
	}

	fmt.Printf("%s %d knowledge bases, %d documents, %d images saved to %s\n",
		termfmt.Bold().Fg(termfmt.Green).V("🎉 Export complete!"),
		summary.Repos, summary.Docs, summary.Images,
		termfmt.Bold().V(absStore))

	return nil
}
