package domain

// Repository is a hosted source repository visible to the user.
type Repository struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	FullName      string `json:"full_name"`
	Description   string `json:"description"`
	URL           string `json:"url"`
	Language      string `json:"language"`
	Stars         int    `json:"stars"`
	Private       bool   `json:"private"`
	DefaultBranch string `json:"default_branch"`
}

// Tree entry types.
const (
	EntryBlob = "blob"
	EntryTree = "tree"
)

// TreeEntry is one path in a recursive repository tree.
type TreeEntry struct {
	Path string `json:"path"`
	Type string `json:"type"`
	SHA  string `json:"sha"`
	Size int    `json:"size,omitempty"`
}

// IsBlob reports whether the entry is a file.
func (e TreeEntry) IsBlob() bool {
	return e.Type == EntryBlob
}

// RepositoryTree is a recursive listing resolved against a branch.
type RepositoryTree struct {
	Branch  string      `json:"branch"`
	Entries []TreeEntry `json:"entries"`
}

// RepositoryAnalysis is the result of parsing a repository's code files.
type RepositoryAnalysis struct {
	Owner     string           `json:"owner"`
	Repo      string           `json:"repo"`
	Branch    string           `json:"branch"`
	Files     []string         `json:"files"`
	Functions []CodeFunction   `json:"functions"`
	Graph     DependencyGraph  `json:"graph"`
	Features  []FeatureMapping `json:"features"`
}
