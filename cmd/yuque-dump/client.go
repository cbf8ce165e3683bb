package main

import (
	"fmt"
	"net/http"

	"github.com/mitchellh/go-homedir"
	"github.com/toothbrush/yuque-dump/credentials"
	"github.com/toothbrush/yuque-dump/yuque"
	"gopkg.in/dnaeon/go-vcr.v3/cassette"
	"gopkg.in/dnaeon/go-vcr.v3/recorder"
)

// newAPI loads (or asks for) credentials and sets up an API client.  The returned func must be
// called when you're done, it flushes any VCR recording.
func newAPI(prompter credentials.Prompter, withVCR bool) (*yuque.API, func() error, error) {
	noop := func() error { return nil }

	credentialsPath, err := expandPath(CredentialsFile)
	if err != nil {
		return nil, noop, err
	}

	creds, err := credentials.LoadOrPrompt(credentialsPath, prompter)
	if err != nil {
		return nil, noop, fmt.Errorf("yuque-dump: couldn't get credentials: %w", err)
	}
	debugLog("Using credentials for namespace '%s' from %s\n", creds.Namespace, credentialsPath)

	api, err := yuque.NewAPI(BaseURL, creds.Namespace, creds.Token)
	if err != nil {
		return nil, noop, fmt.Errorf("yuque-dump: couldn't instantiate Yuque API: %w", err)
	}
	api.Timeout = RequestTimeout

	if !withVCR {
		return api, noop, nil
	}

	// set up VCR recordings.
	opts := &recorder.Options{
		CassetteName:       "fixtures/yuque",
		Mode:               recorder.ModeReplayWithNewEpisodes,
		SkipRequestLatency: true,
		RealTransport:      http.DefaultTransport,
	}
	r, err := recorder.NewWithOptions(opts)
	if err != nil {
		return nil, noop, fmt.Errorf("yuque-dump: couldn't set up go-vcr recording: %w", err)
	}

	// Keep the token out of the cassette.
	hook := func(i *cassette.Interaction) error {
		delete(i.Request.Headers, "X-Auth-Token")
		return nil
	}
	r.AddHook(hook, recorder.AfterCaptureHook)
	r.SetReplayableInteractions(true)

	api.Client = r.GetDefaultClient()

	return api, r.Stop, nil
}

func expandPath(p string) (string, error) {
	expanded, err := homedir.Expand(p)
	if err != nil {
		return "", fmt.Errorf("yuque-dump: couldn't expand homedir in '%s': %w", p, err)
	}
	return expanded, nil
}
