package models

// VaultInfo describes one discovered vault.
type VaultInfo struct {
	Name      string `json:"name" yaml:"name"`
	Path      string `json:"path" yaml:"path"`
	NoteCount int    `json:"note_count" yaml:"note_count"`
}

// VaultsResult is returned by the vaults command.
type VaultsResult struct {
	VaultsPath   string      `json:"vaults_path" yaml:"vaults_path"`
	DefaultVault *string     `json:"default_vault" yaml:"default_vault"`
	Vaults       []VaultInfo `json:"vaults" yaml:"vaults"`
}

// FolderEntry is a folder in the vault map.
type FolderEntry struct {
	Path      string `json:"path" yaml:"path"`
	FileCount int    `json:"file_count" yaml:"file_count"`
}

// FileEntry is a note in the vault map.
type FileEntry struct {
	Path      string  `json:"path" yaml:"path"`
	Title     *string `json:"title" yaml:"title"`
	Type      *string `json:"type" yaml:"type"`
	WordCount int     `json:"word_count" yaml:"word_count"`
	SizeBytes int     `json:"size_bytes" yaml:"size_bytes"`
}

// MapResult is returned by the map command.
type MapResult struct {
	Vault   string        `json:"vault" yaml:"vault"`
	Folders []FolderEntry `json:"folders" yaml:"folders"`
	Files   []FileEntry   `json:"files" yaml:"files"`
}

// ReadResult is returned by the read command.
type ReadResult struct {
	Path          string         `json:"path" yaml:"path"`
	Vault         string         `json:"vault" yaml:"vault"`
	Frontmatter   map[string]any `json:"frontmatter" yaml:"frontmatter"`
	Body          string         `json:"body" yaml:"body"`
	OutgoingLinks []string       `json:"outgoing_links" yaml:"outgoing_links"`
	IncomingLinks []string       `json:"incoming_links" yaml:"incoming_links"`
}

// TocResult is returned by the toc command.
type TocResult struct {
	Path     string    `json:"path" yaml:"path"`
	Vault    string    `json:"vault" yaml:"vault"`
	Headings []Heading `json:"headings" yaml:"headings"`
}

// LinksResult is returned by the links command.
type LinksResult struct {
	Links `yaml:",inline"`
	Vault string `json:"vault" yaml:"vault"`
}

// ListEntry is a single note in a folder listing.
type ListEntry struct {
	Path      string   `json:"path" yaml:"path"`
	Title     *string  `json:"title" yaml:"title"`
	Type      *string  `json:"type" yaml:"type"`
	Tags      []string `json:"tags" yaml:"tags"`
	WordCount int      `json:"word_count" yaml:"word_count"`
	SizeBytes int      `json:"size_bytes" yaml:"size_bytes"`
}

// ListResult is returned by the list command.
type ListResult struct {
	Vault   string      `json:"vault" yaml:"vault"`
	Folder  string      `json:"folder" yaml:"folder"`
	Entries []ListEntry `json:"entries" yaml:"entries"`
}

// QueryEntry is a note whose frontmatter matched a query.
type QueryEntry struct {
	Path        string         `json:"path" yaml:"path"`
	Frontmatter map[string]any `json:"frontmatter" yaml:"frontmatter"`
}

// QueryResult is returned by the query command.
type QueryResult struct {
	Vault   string            `json:"vault" yaml:"vault"`
	Filters map[string]string `json:"filters" yaml:"filters"`
	Results []QueryEntry      `json:"results" yaml:"results"`
}

// SearchMatch is a single matching line.
type SearchMatch struct {
	Path string `json:"path" yaml:"path"`
	Line int    `json:"line" yaml:"line"`
	Text string `json:"text" yaml:"text"`
}

// SearchResult is returned by the search command.
type SearchResult struct {
	Vault   string        `json:"vault" yaml:"vault"`
	Term    string        `json:"term" yaml:"term"`
	Matches []SearchMatch `json:"matches" yaml:"matches"`
}

// RecentEntry is a note ordered by its updated_at frontmatter field.
type RecentEntry struct {
	Path      string  `json:"path" yaml:"path"`
	Title     *string `json:"title" yaml:"title"`
	UpdatedAt *string `json:"updated_at" yaml:"updated_at"`
}

// RecentResult is returned by the recent command.
type RecentResult struct {
	Vault   string        `json:"vault" yaml:"vault"`
	Entries []RecentEntry `json:"entries" yaml:"entries"`
}

// UnreadResult is returned by the unread command.
type UnreadResult struct {
	Vault   string       `json:"vault" yaml:"vault"`
	Entries []QueryEntry `json:"entries" yaml:"entries"`
}

// PropertyDef is a property type declared in .obsidian/types.json.
type PropertyDef struct {
	Name string `json:"name" yaml:"name"`
	Type string `json:"type" yaml:"type"`
}

// SchemaResult is returned by the schema command.
type SchemaResult struct {
	Vault      string        `json:"vault" yaml:"vault"`
	Properties []PropertyDef `json:"properties" yaml:"properties"`
	TypesInUse []string      `json:"types_in_use" yaml:"types_in_use"`
	TagsInUse  []string      `json:"tags_in_use" yaml:"tags_in_use"`
}

// ContextResult is returned by the context command: Obsidian's workspace
// state as saved in .obsidian/workspace.json.
type ContextResult struct {
	Vault       string   `json:"vault" yaml:"vault"`
	ActiveFile  *string  `json:"active_file" yaml:"active_file"`
	RecentFiles []string `json:"recent_files" yaml:"recent_files"`
	LastSearch  *string  `json:"last_search" yaml:"last_search"`
	OpenTabs    []string `json:"open_tabs" yaml:"open_tabs"`
}
