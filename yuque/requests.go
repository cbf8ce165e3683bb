package yuque

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

func (api *API) GetRepos(ctx context.Context, opts ReposQuery) ([]Repo, error) {
	ep, err := api.getReposEndpoint(opts)
	if err != nil {
		return nil, fmt.Errorf("yuque: couldn't get repos endpoint: %w", err)
	}

	body, err := api.request(ctx, ep)
	if err != nil {
		return nil, fmt.Errorf("yuque: couldn't perform request: %w", err)
	}

	var repos reposResponse

	if err := json.Unmarshal(body, &repos); err != nil {
		return nil, fmt.Errorf("yuque: couldn't parse json response: %w", err)
	}

	return repos.Data, nil
}

func (api *API) GetDocs(ctx context.Context, repoID int) ([]DocSummary, error) {
	ep, err := api.getDocsEndpoint(repoID)
	if err != nil {
		return nil, fmt.Errorf("yuque: couldn't get docs endpoint: %w", err)
	}

	body, err := api.request(ctx, ep)
	if err != nil {
		return nil, fmt.Errorf("yuque: couldn't perform request: %w", err)
	}

	var docs docsResponse

	if err := json.Unmarshal(body, &docs); err != nil {
		return nil, fmt.Errorf("yuque: couldn't parse json response: %w", err)
	}

	return docs.Data, nil
}

func (api *API) GetDoc(ctx context.Context, opts GetDocQuery) (*Doc, error) {
	ep, err := api.getDocEndpoint(opts)
	if err != nil {
		return nil, fmt.Errorf("yuque: couldn't get single doc endpoint: %w", err)
	}

	body, err := api.request(ctx, ep)
	if err != nil {
		return nil, fmt.Errorf("yuque: couldn't perform request: %w", err)
	}

	var doc docResponse

	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("yuque: couldn't parse json response: %w", err)
	}
	if doc.Data == nil {
		return nil, fmt.Errorf("yuque: response for doc %s has no data", opts.Slug)
	}

	return doc.Data, nil
}

// request performs an authenticated GET and hands back the raw response body.
func (api *API) request(ctx context.Context, url *url.URL) ([]byte, error) {
	if api.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, api.Timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("yuque: couldn't instantiate http request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set("X-Auth-Token", api.token)

	response, err := api.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("yuque: couldn't perform http request: %w", err)
	}

	body, err := io.ReadAll(response.Body)
	if err != nil {
		response.Body.Close()
		return nil, fmt.Errorf("yuque: couldn't read http response body: %w", err)
	}

	if err := response.Body.Close(); err != nil {
		return nil, fmt.Errorf("yuque: couldn't close response body: %w", err)
	}

	switch response.StatusCode {
	case http.StatusOK:
		return body, nil
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, fmt.Errorf("%w: %s", ErrUnauthorized, response.Status)
	case http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", ErrNotFound, url.String())
	case http.StatusTooManyRequests:
		return nil, fmt.Errorf("yuque: rate limited: %s", response.Status)
	case http.StatusInternalServerError, http.StatusServiceUnavailable:
		return nil, fmt.Errorf("yuque: service is not available: %s", response.Status)
	}

	return nil, fmt.Errorf("yuque: unknown HTTP response status: %s: %s", response.Status, url.String())
}
