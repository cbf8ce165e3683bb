package yuque

// See https://www.yuque.com/yuque/developer/bookserializer.  Only the fields we have a use for
// are decoded.
type Repo struct {
	ID          int    `json:"id"`
	Type        string `json:"type,omitempty"` // Book, Design
	Slug        string `json:"slug,omitempty"`
	Name        string `json:"name"`
	Namespace   string `json:"namespace,omitempty"` // e.g. "someone/handbook"
	Description string `json:"description,omitempty"`
	ItemsCount  int    `json:"items_count,omitempty"`
	UpdatedAt   string `json:"updated_at,omitempty"`
}

// DocSummary is one entry of the document list of a repo:
// https://www.yuque.com/yuque/developer/docserializer
type DocSummary struct {
	ID        int    `json:"id"`
	Slug      string `json:"slug"`
	Title     string `json:"title"`
	UpdatedAt string `json:"updated_at,omitempty"`
}

// Doc is the detailed form of a document, including its body:
// https://www.yuque.com/yuque/developer/docdetailserializer
type Doc struct {
	ID        int    `json:"id"`
	Slug      string `json:"slug"`
	Title     string `json:"title"`
	BookID    int    `json:"book_id,omitempty"`
	Format    string `json:"format,omitempty"` // markdown, lake, ...
	Body      string `json:"body"`
	BodyHTML  string `json:"body_html,omitempty"`
	WordCount int    `json:"word_count,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
	UpdatedAt string `json:"updated_at,omitempty"`
}
