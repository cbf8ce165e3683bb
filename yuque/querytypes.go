package yuque

// ReposQuery defines the query parameters for:
// https://www.yuque.com/yuque/developer/api#repos
type ReposQuery struct {
	// Filter the results to repos of a given type: Book, Design, or all (the default).
	Type string `url:"type,omitempty"`
}

// GetDocQuery defines the path and query parameters for:
// https://www.yuque.com/yuque/developer/doc
type GetDocQuery struct {
	RepoID int    `url:"-"` // ID of the repo; required
	Slug   string `url:"-"` // slug of the document; required

	// Raw asks for the Markdown source as written, rather than the rendered version.
	Raw int `url:"raw,omitempty"`
}
