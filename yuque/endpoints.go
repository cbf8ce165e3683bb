package yuque

import (
	"fmt"
	"net/url"

	"github.com/google/go-querystring/query"
)

// getReposEndpoint returns the API endpoint to list a user's repos:
// https://www.yuque.com/yuque/developer/repo
func (a *API) getReposEndpoint(opts ReposQuery) (*url.URL, error) {
	if a.Namespace == "" {
		return nil, fmt.Errorf("yuque: please provide namespace to list repos")
	}

	ep, err := a.resolveEndpoint(fmt.Sprintf("users/%s/repos", url.PathEscape(a.Namespace)))
	if err != nil {
		return nil, fmt.Errorf("yuque: couldn't resolve endpoint: %w", err)
	}

	v, err := query.Values(opts)
	if err != nil {
		return nil, fmt.Errorf("yuque: couldn't encode query params: %w", err)
	}
	ep.RawQuery = v.Encode()

	return ep, nil
}

// getDocsEndpoint returns the API endpoint to list the documents of one repo.
func (a *API) getDocsEndpoint(repoID int) (*url.URL, error) {
	if repoID < 1 {
		return nil, fmt.Errorf("yuque: please provide repo ID to list docs")
	}

	return a.resolveEndpoint(fmt.Sprintf("repos/%d/docs", repoID))
}

// getDocEndpoint returns the API endpoint to fetch a single document, body included.
func (a *API) getDocEndpoint(opts GetDocQuery) (*url.URL, error) {
	if opts.RepoID < 1 {
		return nil, fmt.Errorf("yuque: please provide repo ID to get doc")
	}
	if opts.Slug == "" {
		return nil, fmt.Errorf("yuque: please provide slug to get doc")
	}

	ep, err := a.resolveEndpoint(fmt.Sprintf("repos/%d/docs/%s", opts.RepoID, url.PathEscape(opts.Slug)))
	if err != nil {
		return nil, fmt.Errorf("yuque: couldn't resolve endpoint: %w", err)
	}

	v, err := query.Values(opts)
	if err != nil {
		return nil, fmt.Errorf("yuque: couldn't encode query params: %w", err)
	}
	ep.RawQuery = v.Encode()

	return ep, nil
}

// Do a bit of error checking on endpoint format, and return it relative to the base URI.
func (a *API) resolveEndpoint(endpoint string) (*url.URL, error) {
	ref, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("yuque: failed to parse endpoint ref: %w", err)
	}

	return a.BaseURI.ResolveReference(ref), nil
}
