package localdump

import (
	"fmt"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	mdplugin "github.com/JohannesKaufmann/html-to-markdown/plugin"
	"github.com/toothbrush/yuque-dump/yuque"
	"gopkg.in/yaml.v3"
)

type MarkdownHeader struct {
	Title     string `yaml:"title"`
	Slug      string `yaml:"slug"`
	Repo      string `yaml:"repo"`
	ObjectID  int    `yaml:"object_id,omitempty"`
	Format    string `yaml:"format,omitempty"`
	WordCount int    `yaml:"word_count,omitempty"`
	CreatedAt string `yaml:"created_at,omitempty"`
	UpdatedAt string `yaml:"updated_at,omitempty"`
}

// Body returns the Markdown source of a document.  Some documents (lake format, mostly) come back
// with an empty body; for those we fall back to converting the rendered HTML.
func Body(doc *yuque.Doc) (string, error) {
	if doc == nil {
		return "", fmt.Errorf("localdump: got nil document")
	}
	if doc.Body != "" || doc.BodyHTML == "" {
		return doc.Body, nil
	}

	converter := md.NewConverter("", true, nil)
	// Github flavoured Markdown knows about tables 👍
	converter.Use(mdplugin.GitHubFlavored())

	markdown, err := converter.ConvertString(doc.BodyHTML)
	if err != nil {
		return "", fmt.Errorf("localdump: failed to convert %s to Markdown: %w", doc.Slug, err)
	}

	return markdown, nil
}

// WithFrontMatter prepends a YAML header describing where the document came from.
func WithFrontMatter(repo yuque.Repo, doc *yuque.Doc, title string, body string) (string, error) {
	header := MarkdownHeader{
		Title:     title,
		Slug:      doc.Slug,
		Repo:      repo.Name,
		ObjectID:  doc.ID,
		Format:    doc.Format,
		WordCount: doc.WordCount,
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
	}

	yamlHeader, err := yaml.Marshal(header)
	if err != nil {
		return "", fmt.Errorf("localdump: couldn't marshal header YAML: %w", err)
	}

	return fmt.Sprintf(`---
%s
---
%s`,
		strings.TrimSpace(string(yamlHeader)),
		body), nil
}
