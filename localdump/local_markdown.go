package localdump

type LocalMarkdown struct {
	Repo  string
	Slug  string
	Title string

	// contents of the file
	Content string

	// images rewritten to point into AssetsDir
	Images []Image

	// path relative to the store (e.g., ./yuque)
	RelativePath RelativePath
}

// Summary counts what an export run produced.
type Summary struct {
	Repos  int
	Docs   int
	Images int
}

type RelativePath string
