package yuque

import (
	"context"
	"fmt"
)

// ListRepos returns the repos owned by the configured namespace, keyed by name.  Only the first
// page the service hands back is considered.
func (api *API) ListRepos(ctx context.Context, opts ReposQuery) (map[string]Repo, error) {
	repos, err := api.GetRepos(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("yuque: couldn't list repos of %s: %w", api.Namespace, err)
	}

	result := make(map[string]Repo, len(repos))
	for _, repo := range repos {
		result[repo.Name] = repo
	}

	return result, nil
}

// ListDocs returns slug -> title for every document in a repo.
func (api *API) ListDocs(ctx context.Context, repoID int) (map[string]string, error) {
	docs, err := api.GetDocs(ctx, repoID)
	if err != nil {
		return nil, fmt.Errorf("yuque: couldn't list docs of repo %d: %w", repoID, err)
	}

	result := make(map[string]string, len(docs))
	for _, doc := range docs {
		result[doc.Slug] = doc.Title
	}

	return result, nil
}

// FetchDoc retrieves one document with its raw Markdown body.
func (api *API) FetchDoc(ctx context.Context, repoID int, slug string) (*Doc, error) {
	doc, err := api.GetDoc(ctx, GetDocQuery{
		RepoID: repoID,
		Slug:   slug,
		Raw:    1,
	})
	if err != nil {
		return nil, fmt.Errorf("yuque: couldn't fetch doc %s: %w", slug, err)
	}

	return doc, nil
}
