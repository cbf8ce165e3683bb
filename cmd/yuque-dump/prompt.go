package main

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/peterh/liner"
	"github.com/toothbrush/yuque-dump/credentials"
	"github.com/toothbrush/yuque-dump/yuque"
	"golang.org/x/exp/maps"
)

var errAborted = errors.New("yuque-dump: aborted")

var _ credentials.Prompter = (*linePrompter)(nil)

// linePrompter reads answers with liner.  The terminal is only touched on first use, so commands
// that never prompt leave it alone.
type linePrompter struct {
	line *liner.State
}

func (p *linePrompter) state() *liner.State {
	if p.line == nil {
		p.line = liner.NewLiner()
		p.line.SetCtrlCAborts(true)
	}
	return p.line
}

func (p *linePrompter) Prompt(label string) (string, error) {
	answer, err := p.state().Prompt(label)
	if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
		return "", errAborted
	}
	return answer, err
}

func (p *linePrompter) PromptSecret(label string) (string, error) {
	answer, err := p.state().PasswordPrompt(label)
	if errors.Is(err, liner.ErrNotTerminalOutput) {
		// piped input, no echo to hide.
		return p.Prompt(label)
	}
	if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
		return "", errAborted
	}
	return answer, err
}

// Close hands the terminal back.  Safe to call more than once.
func (p *linePrompter) Close() error {
	if p.line == nil {
		return nil
	}
	err := p.line.Close()
	p.line = nil
	return err
}

// selectRepos decides which repos to export: all of them, the ones named on the command line, or
// whichever the user picks from a numbered list.
func selectRepos(out io.Writer, prompter credentials.Prompter, repos map[string]yuque.Repo, wanted []string, all bool) ([]yuque.Repo, error) {
	names := maps.Keys(repos)
	sort.Strings(names)

	if all {
		return pick(repos, names), nil
	}

	if len(wanted) > 0 {
		for _, name := range wanted {
			if _, ok := repos[name]; !ok {
				return nil, fmt.Errorf("yuque-dump: no knowledge base named '%s', see `yuque-dump list repos`", name)
			}
		}
		return pick(repos, dedupe(wanted)), nil
	}

	if len(names) == 0 {
		return nil, nil
	}

	fmt.Fprintf(out, "=== Knowledge bases ===\n")
	for i, name := range names {
		fmt.Fprintf(out, "  %2d) %s\n", i+1, name)
	}

	answer, err := prompter.Prompt("Export which? (e.g. 1,3-5 or all): ")
	if err != nil {
		return nil, fmt.Errorf("yuque-dump: couldn't read selection: %w", err)
	}

	chosen, err := parseSelection(answer, names)
	if err != nil {
		return nil, err
	}

	return pick(repos, chosen), nil
}

// parseSelection turns "1, 3-4" into names[0], names[2], names[3].  Numbers are 1-based, "all" or
// "*" means everything, and repeats are dropped.
func parseSelection(answer string, names []string) ([]string, error) {
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return nil, nil
	}
	if strings.EqualFold(answer, "all") || answer == "*" {
		return names, nil
	}

	chosen := []string{}
	fields := strings.FieldsFunc(answer, func(r rune) bool {
		return r == ',' || r == ' '
	})
	for _, field := range fields {
		lo, hi := field, field
		if before, after, ok := strings.Cut(field, "-"); ok {
			lo, hi = before, after
		}

		from, err := strconv.Atoi(lo)
		if err != nil {
			return nil, fmt.Errorf("yuque-dump: '%s' isn't a number or range", field)
		}
		to, err := strconv.Atoi(hi)
		if err != nil {
			return nil, fmt.Errorf("yuque-dump: '%s' isn't a number or range", field)
		}
		if from < 1 || to > len(names) || from > to {
			return nil, fmt.Errorf("yuque-dump: '%s' is out of range 1-%d", field, len(names))
		}

		for i := from; i <= to; i++ {
			chosen = append(chosen, names[i-1])
		}
	}

	return dedupe(chosen), nil
}

func dedupe(names []string) []string {
	seen := make(map[string]bool, len(names))
	result := []string{}
	for _, name := range names {
		if seen[name] {
			continue
		}
		seen[name] = true
		result = append(result, name)
	}
	return result
}

func pick(repos map[string]yuque.Repo, names []string) []yuque.Repo {
	result := make([]yuque.Repo, 0, len(names))
	for _, name := range names {
		result = append(result, repos[name])
	}
	return result
}
