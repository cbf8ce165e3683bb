package main

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/toothbrush/yuque-dump/yuque"
)

type fakePrompter struct {
	answer string
	err    error
	asked  int
}

func (f *fakePrompter) Prompt(label string) (string, error) {
	f.asked++
	return f.answer, f.err
}

func (f *fakePrompter) PromptSecret(label string) (string, error) {
	return f.Prompt(label)
}

func testRepos() map[string]yuque.Repo {
	return map[string]yuque.Repo{
		"Handbook":  {ID: 1, Name: "Handbook"},
		"Notes":     {ID: 2, Name: "Notes"},
		"Team/Docs": {ID: 3, Name: "Team/Docs"},
		"Archive":   {ID: 4, Name: "Archive"},
	}
}

func repoNames(repos []yuque.Repo) []string {
	names := []string{}
	for _, repo := range repos {
		names = append(names, repo.Name)
	}
	return names
}

func TestParseSelection(t *testing.T) {
	t.Parallel()

	names := []string{"a", "b", "c", "d"}

	tests := []struct {
		name    string
		answer  string
		want    []string
		wantErr string
	}{
		{name: "empty", answer: "  ", want: nil},
		{name: "all", answer: "all", want: names},
		{name: "ALL", answer: "ALL", want: names},
		{name: "star", answer: "*", want: names},
		{name: "single", answer: "2", want: []string{"b"}},
		{name: "list", answer: "1,3", want: []string{"a", "c"}},
		{name: "spaces", answer: "4 1", want: []string{"d", "a"}},
		{name: "range", answer: "2-4", want: []string{"b", "c", "d"}},
		{name: "repeats dropped", answer: "1,1-2,2", want: []string{"a", "b"}},
		{name: "zero", answer: "0", wantErr: "out of range"},
		{name: "too big", answer: "5", wantErr: "out of range"},
		{name: "backwards range", answer: "3-1", wantErr: "out of range"},
		{name: "not a number", answer: "b", wantErr: "isn't a number"},
		{name: "half a range", answer: "2-", wantErr: "isn't a number"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := parseSelection(tt.answer, names)
			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSelectReposAll(t *testing.T) {
	t.Parallel()

	prompter := &fakePrompter{}
	selected, err := selectRepos(&bytes.Buffer{}, prompter, testRepos(), nil, true)
	require.NoError(t, err)

	assert.Equal(t, []string{"Archive", "Handbook", "Notes", "Team/Docs"}, repoNames(selected))
	assert.Zero(t, prompter.asked)
}

func TestSelectReposByName(t *testing.T) {
	t.Parallel()

	prompter := &fakePrompter{}
	selected, err := selectRepos(&bytes.Buffer{}, prompter, testRepos(), []string{"Team/Docs", "Notes", "Team/Docs"}, false)
	require.NoError(t, err)

	assert.Equal(t, []string{"Team/Docs", "Notes"}, repoNames(selected))
	assert.Equal(t, 3, selected[0].ID)
	assert.Zero(t, prompter.asked)
}

func TestSelectReposUnknownName(t *testing.T) {
	t.Parallel()

	_, err := selectRepos(&bytes.Buffer{}, &fakePrompter{}, testRepos(), []string{"Nope"}, false)
	assert.ErrorContains(t, err, "no knowledge base named 'Nope'")
}

func TestSelectReposInteractive(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	prompter := &fakePrompter{answer: "2,4"}
	selected, err := selectRepos(out, prompter, testRepos(), nil, false)
	require.NoError(t, err)

	assert.Equal(t, []string{"Handbook", "Team/Docs"}, repoNames(selected))
	assert.Equal(t, 1, prompter.asked)
	assert.Contains(t, out.String(), " 1) Archive\n")
	assert.Contains(t, out.String(), " 4) Team/Docs\n")
}

func TestSelectReposNothingChosen(t *testing.T) {
	t.Parallel()

	selected, err := selectRepos(&bytes.Buffer{}, &fakePrompter{answer: ""}, testRepos(), nil, false)
	require.NoError(t, err)
	assert.Empty(t, selected)
}

func TestSelectReposNoRepos(t *testing.T) {
	t.Parallel()

	prompter := &fakePrompter{}
	selected, err := selectRepos(&bytes.Buffer{}, prompter, map[string]yuque.Repo{}, nil, false)
	require.NoError(t, err)
	assert.Empty(t, selected)
	assert.Zero(t, prompter.asked)
}

func TestSelectReposPromptFails(t *testing.T) {
	t.Parallel()

	_, err := selectRepos(&bytes.Buffer{}, &fakePrompter{err: errAborted}, testRepos(), nil, false)
	assert.True(t, errors.Is(err, errAborted))
}

func TestPrintListings(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	printRepos(out, map[string]yuque.Repo{
		"b": {ID: 2, Name: "b", ItemsCount: 5},
		"a": {ID: 1, Name: "a", ItemsCount: 0},
	})
	assert.Equal(t, "repos:\n  - a: 0 documents (id 1)\n  - b: 5 documents (id 2)\n", out.String())

	out.Reset()
	printDocs(out, map[string]string{"zeta": "Last", "alpha": "First"})
	assert.Equal(t, "docs:\n  - alpha: First\n  - zeta: Last\n", out.String())
}
