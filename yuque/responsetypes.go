package yuque

// Every Yuque response wraps its payload in a "data" field.

type reposResponse struct {
	Data []Repo `json:"data"`
}

type docsResponse struct {
	Data []DocSummary `json:"data"`
}

type docResponse struct {
	Data *Doc `json:"data"`
}
