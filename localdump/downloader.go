package localdump

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"path/filepath"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/toothbrush/yuque-dump/internal/termfmt"
	"github.com/toothbrush/yuque-dump/yuque"
	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
	"golang.org/x/exp/maps"
	"golang.org/x/sync/errgroup"
)

// DocSource is the slice of the Yuque API the exporter needs.
type DocSource interface {
	ListDocs(ctx context.Context, repoID int) (map[string]string, error)
	FetchDoc(ctx context.Context, repoID int, slug string) (*yuque.Doc, error)
}

var _ DocSource = (*yuque.API)(nil)

type Exporter struct {
	StorePath string
	API       DocSource

	// Used for images, which are fetched without credentials.  Defaults to http.DefaultClient.
	ImageClient *http.Client

	// Maximum documents in flight per repo.  0 means one goroutine per document.
	Workers int

	FrontMatter bool
	Prune       bool
	Progress    bool

	// Phase messages and warnings.
	Logger *log.Logger

	// Per-document success notices.
	Out   io.Writer
	outMu sync.Mutex

	docsWritten   atomic.Int64
	imagesWritten atomic.Int64
}

// ExportRepos exports each repo in turn.  All documents of one repo are finished before the next
// repo is started.  The Summary counts only what this call wrote.
func (exporter *Exporter) ExportRepos(ctx context.Context, repos []yuque.Repo) (Summary, error) {
	if exporter.Logger == nil {
		exporter.Logger = log.New(io.Discard, "", 0)
	}
	if exporter.Out == nil {
		exporter.Out = io.Discard
	}

	// counts are per call, an Exporter may be reused.
	exporter.docsWritten.Store(0)
	exporter.imagesWritten.Store(0)

	if err := ensureDir(exporter.StorePath); err != nil {
		return Summary{}, fmt.Errorf("localdump: couldn't prepare store: %w", err)
	}

	summary := Summary{}
	for _, repo := range repos {
		if err := exporter.ExportRepo(ctx, repo); err != nil {
			return exporter.summarise(summary.Repos), fmt.Errorf("localdump: failed to export %s: %w", repo.Name, err)
		}
		summary.Repos++
	}

	return exporter.summarise(summary.Repos), nil
}

func (exporter *Exporter) summarise(repos int) Summary {
	return Summary{
		Repos:  repos,
		Docs:   int(exporter.docsWritten.Load()),
		Images: int(exporter.imagesWritten.Load()),
	}
}

func (exporter *Exporter) ExportRepo(ctx context.Context, repo yuque.Repo) error {
	if exporter.Logger == nil {
		exporter.Logger = log.New(io.Discard, "", 0)
	}
	if exporter.Out == nil {
		exporter.Out = io.Discard
	}

	repoDir := filepath.Join(exporter.StorePath, string(RepoPath(repo.Name)))
	if err := ensureDir(repoDir); err != nil {
		return err
	}

	docs, err := exporter.API.ListDocs(ctx, repo.ID)
	if err != nil {
		return fmt.Errorf("localdump: couldn't list documents: %w", err)
	}
	exporter.Logger.Printf("Found %d documents in '%s'.\n", len(docs), repo.Name)

	// dispatch in a stable order; completion order is whatever the network makes it.
	slugs := maps.Keys(docs)
	sort.Strings(slugs)
	exporter.warnOnCollidingTitles(repo, slugs, docs)

	bar := exporter.newProgress(repo.Name, len(slugs))

	var freshMu sync.Mutex
	fresh := make(map[RelativePath]bool, len(slugs))

	grp, gctx := errgroup.WithContext(ctx)
	if exporter.Workers > 0 {
		grp.SetLimit(exporter.Workers)
	}

	for _, slug := range slugs {
		slug := slug
		title := docs[slug]

		grp.Go(func() error {
			markdown, err := exporter.exportDoc(gctx, repo, repoDir, slug, title)
			if err != nil {
				return fmt.Errorf("localdump: couldn't export '%s': %w", title, err)
			}

			freshMu.Lock()
			fresh[markdown.RelativePath] = true
			freshMu.Unlock()

			exporter.notify(markdown)
			bar.increment()
			return nil
		})
	}

	if err := grp.Wait(); err != nil {
		bar.finish(true)
		return err
	}
	bar.finish(false)

	if exporter.Prune {
		pruned, err := exporter.pruneRepo(repoDir, fresh)
		if err != nil {
			return fmt.Errorf("localdump: failed to prune: %w", err)
		}
		exporter.Logger.Printf("...pruned %d stale documents from '%s'.\n", pruned, repo.Name)
	}

	return nil
}

// exportDoc fetches one document, pulls its images into assets/ and writes the Markdown.
func (exporter *Exporter) exportDoc(ctx context.Context, repo yuque.Repo, repoDir string, slug string, title string) (LocalMarkdown, error) {
	doc, err := exporter.API.FetchDoc(ctx, repo.ID, slug)
	if err != nil {
		return LocalMarkdown{}, fmt.Errorf("localdump: failed getting document: %w", err)
	}

	body, err := Body(doc)
	if err != nil {
		return LocalMarkdown{}, err
	}

	rewritten, images := Rewrite(body)

	// only documents that actually reference images get an assets directory.
	if len(images) > 0 {
		assetsDir := filepath.Join(repoDir, AssetsDir)
		if err := ensureDir(assetsDir); err != nil {
			return LocalMarkdown{}, err
		}

		exporter.warnOnDuplicateImages(title, images)

		if err := exporter.downloadImages(ctx, images, assetsDir); err != nil {
			return LocalMarkdown{}, fmt.Errorf("localdump: failed downloading images: %w", err)
		}
		exporter.imagesWritten.Add(int64(len(images)))
	}

	content := rewritten
	if exporter.FrontMatter {
		content, err = WithFrontMatter(repo, doc, title, rewritten)
		if err != nil {
			return LocalMarkdown{}, err
		}
	}

	markdown := LocalMarkdown{
		Repo:         repo.Name,
		Slug:         slug,
		Title:        title,
		Content:      content,
		Images:       images,
		RelativePath: DocPath(repo.Name, title),
	}

	if err := exporter.WriteMarkdownIntoLocal(markdown); err != nil {
		return LocalMarkdown{}, fmt.Errorf("localdump: failed writing file: %w", err)
	}
	exporter.docsWritten.Add(1)

	return markdown, nil
}

func (exporter *Exporter) notify(markdown LocalMarkdown) {
	exporter.outMu.Lock()
	defer exporter.outMu.Unlock()

	fmt.Fprintf(exporter.Out, "📑 %s exported\n", termfmt.Bold().Fg(termfmt.Green).V(markdown.Title))
}

// Two titles that sanitise to the same filename overwrite each other; last write wins.
func (exporter *Exporter) warnOnCollidingTitles(repo yuque.Repo, slugs []string, docs map[string]string) {
	seen := make(map[RelativePath]string, len(slugs))
	for _, slug := range slugs {
		p := DocPath(repo.Name, docs[slug])
		if other, ok := seen[p]; ok {
			exporter.Logger.Printf("🚨 WARNING: documents %s and %s both map to %s, only one will survive.\n", other, slug, p)
			continue
		}
		seen[p] = slug
	}
}

// Images sharing a filename share a file in assets/; last write wins.
func (exporter *Exporter) warnOnDuplicateImages(title string, images []Image) {
	seen := make(map[string]string, len(images))
	for _, img := range images {
		if other, ok := seen[img.Filename]; ok && other != img.URL {
			exporter.Logger.Printf("🚨 WARNING: '%s' has several images named %s, only one will survive.\n", title, img.Filename)
		}
		seen[img.Filename] = img.URL
	}
}

type repoProgress struct {
	p   *mpb.Progress
	bar *mpb.Bar
}

// newProgress returns nil when progress is off; the nil value is safe to use.
func (exporter *Exporter) newProgress(name string, total int) *repoProgress {
	// a bar with nothing to count never completes, and p.Wait() would hang.
	if !exporter.Progress || total == 0 {
		return nil
	}

	p := mpb.New(mpb.WithWidth(64), mpb.WithOutput(exporter.Logger.Writer()))

	bar := p.AddBar(int64(total),
		mpb.PrependDecorators(
			// display our name with one space on the right
			decor.Name(fmt.Sprintf("%s:", name),
				decor.WC{C: decor.DindentRight | decor.DextraSpace}),
		),
		mpb.AppendDecorators(
			decor.CountersNoUnit("(%d/%d) "),
			decor.NewPercentage("%d"),
		),
	)

	return &repoProgress{p: p, bar: bar}
}

func (rp *repoProgress) increment() {
	if rp == nil {
		return
	}
	rp.bar.Increment()
}

// finish waits for the bar to flush.  A failed run never reaches its total, so abort first.
func (rp *repoProgress) finish(failed bool) {
	if rp == nil {
		return
	}
	if failed {
		rp.bar.Abort(false)
	}
	rp.p.Wait()
}
