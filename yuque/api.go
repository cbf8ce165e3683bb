package yuque

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	// DefaultBaseURL is the v2 REST API of the public Yuque service.
	DefaultBaseURL = "https://www.yuque.com/api/v2"

	// UserAgent is sent with every API request.  Yuque rejects requests without one.
	UserAgent = "yuque-dump"
)

var (
	ErrUnauthorized = errors.New("yuque: authentication failed")
	ErrNotFound     = errors.New("yuque: not found")
)

func NewAPI(baseURL string, namespace string, token string) (*API, error) {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if namespace == "" {
		return nil, fmt.Errorf("yuque: namespace is empty, please check your credentials file")
	}
	if token == "" {
		return nil, fmt.Errorf("yuque: auth token is empty, please check your credentials file")
	}

	// ResolveReference drops the last path element unless the base ends in a slash.
	u, err := url.ParseRequestURI(strings.TrimSuffix(baseURL, "/") + "/")
	if err != nil {
		return nil, fmt.Errorf("yuque: couldn't parse REST API URL: %w", err)
	}

	a := &API{
		BaseURI:   u,
		Namespace: namespace,
		token:     token,
	}
	a.Client = &http.Client{}

	return a, nil
}

type API struct {
	// Root of the REST API, e.g. https://www.yuque.com/api/v2/
	BaseURI *url.URL

	// An HTTP client - you can substitute VCR or whatnot.
	Client *http.Client

	// If non-zero, every request gets its own deadline.
	Timeout time.Duration

	// The user or group whose repos we list.
	Namespace string

	token string
}
