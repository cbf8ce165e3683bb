package localdump_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/toothbrush/yuque-dump/localdump"
)

func TestSanitiseName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"Intro", "Intro"},
		{"Team/Docs", "Team%2FDocs"},
		{`a\b`, "a%5Cb"},
		{"<tag>", "%3Ctag%3E"},
		{"why?", "why%3F"},
		{"FAQ: all", "FAQ%3A all"},
		{`"quoted"`, "%22quoted%22"},
		{"a|b*c", "a%7Cb%2Ac"},
		{"tab\there", "tab%09here"},
		{"中文 标题", "中文 标题"},
		{"100%", "100%"},
		{".", "%2E"},
		{"..", "%2E%2E"},
		{".hidden", ".hidden"},
		{"", "untitled"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, localdump.SanitiseName(tt.in))
		})
	}
}

func TestSanitiseName_NoReservedCharacters(t *testing.T) {
	t.Parallel()

	nasty := `/\<>?:"|*`
	inputs := []string{
		nasty,
		"Team/Docs",
		"../../etc/passwd",
		`C:\Windows\System32`,
		"what? <really> | maybe * \"yes\"",
	}

	for _, in := range inputs {
		got := localdump.SanitiseName(in)
		assert.False(t, strings.ContainsAny(got, nasty), "%q -> %q", in, got)
	}
}

func TestDocPath(t *testing.T) {
	t.Parallel()

	assert.Equal(t, localdump.RelativePath("Team%2FDocs/Intro.md"), localdump.DocPath("Team/Docs", "Intro"))
	assert.Equal(t, localdump.RelativePath("Notes/a%2Fb.md"), localdump.DocPath("Notes", "a/b"))
}
