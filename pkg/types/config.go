package types

// ConversionBackend identifies the document-to-lines extraction tool.
type ConversionBackend string

const (
	// BackendDocx reads word/document.xml straight out of the .docx archive.
	BackendDocx ConversionBackend = "docx"
	// BackendMarkitdown pipes the document through the markitdown container.
	BackendMarkitdown ConversionBackend = "markitdown"
)

// DefaultExcludeFolders lists source folders that never hold recipes.
var DefaultExcludeFolders = []string{
	"Book Covers",
	"Advice and Information",
	"Cookbooks",
	"Not Converted",
	"desktop",
}

// UncategorizedCategory is assigned to documents sitting directly in the
// conversion source root.
const UncategorizedCategory = "Uncategorized"

// ContentConfig locates the content tree: one directory per category, one
// JSON file per recipe.
type ContentConfig struct {
	// Root is the content root directory (e.g. "content").
	Root string `json:"root" yaml:"root"`
}

// ConvertConfig holds settings for the document conversion stage.
type ConvertConfig struct {
	// SourceDir is the root of the tree of source documents.
	SourceDir string `json:"source_dir" yaml:"source_dir"`

	// OutputDir is where category directories of JSON recipes are written.
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// ExcludeFolders names folders skipped anywhere below SourceDir.
	ExcludeFolders []string `json:"exclude_folders" yaml:"exclude_folders"`

	// Backend selects the extractor: docx or markitdown.
	Backend ConversionBackend `json:"backend" yaml:"backend"`
}

// EditorConfig holds settings for the local web form editor.
type EditorConfig struct {
	ContentConfig `yaml:",inline"`

	// Addr is the listen address. Local only; defaults to 127.0.0.1:5000.
	Addr string `json:"addr" yaml:"addr"`

	// UploadDir receives uploaded images, stored under their original name.
	UploadDir string `json:"upload_dir" yaml:"upload_dir"`
}

// IndexConfig holds settings for the recipe search index.
type IndexConfig struct {
	// Dir holds cookbook.db and export files.
	Dir string `json:"dir" yaml:"dir"`

	// MaxResults is the default maximum number of search results (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// Config groups all component configurations.
type Config struct {
	Content ContentConfig `json:"content" yaml:"content"`
	Convert ConvertConfig `json:"convert" yaml:"convert"`
	Editor  EditorConfig  `json:"editor" yaml:"editor"`
	Index   IndexConfig   `json:"index" yaml:"index"`
}
