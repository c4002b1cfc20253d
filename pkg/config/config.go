// Package config defines the configuration types for gomdedit.
// These are plain data structures; discovery and merging live in
// internal/configloader.
package config

// Flavor is the Markdown flavor accepted when normalizing input.
type Flavor string

const (
	FlavorCommonMark Flavor = "commonmark"
	FlavorGFM        Flavor = "gfm"
)

// IsValid returns true if the flavor is known.
func (f Flavor) IsValid() bool {
	switch f {
	case FlavorCommonMark, FlavorGFM:
		return true
	default:
		return false
	}
}

// OutputFormat specifies how commands print structured results.
type OutputFormat string

const (
	FormatText  OutputFormat = "text"
	FormatTable OutputFormat = "table"
	FormatJSON  OutputFormat = "json"
	FormatYAML  OutputFormat = "yaml"
)

// IsValid returns true if the format is known.
func (f OutputFormat) IsValid() bool {
	switch f {
	case FormatText, FormatTable, FormatJSON, FormatYAML:
		return true
	default:
		return false
	}
}

// Editor defaults.
const (
	DefaultTab      = "  "
	DefaultSaveName = "document.md"
)

// RenderConfig controls the markup produced for blocks.
type RenderConfig struct {
	// LanguageClass adds a language-<info> class to code blocks that carry
	// a fence info string.
	LanguageClass bool `mapstructure:"language_class" yaml:"language_class"`

	// DetectLanguage guesses a language for code blocks without one.
	// It only has an effect together with LanguageClass.
	DetectLanguage bool `mapstructure:"detect_language" yaml:"detect_language"`
}

// EditorConfig controls interactive editing sessions.
type EditorConfig struct {
	// Tab is the text inserted by the Tab key.
	Tab string `mapstructure:"tab" yaml:"tab"`

	// SaveName is the file name used when saving into a directory.
	SaveName string `mapstructure:"save_name" yaml:"save_name"`
}

// BackupsConfig controls sidecar backups of files that get overwritten.
type BackupsConfig struct {
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`
}

// Config is the root configuration structure for gomdedit.
type Config struct {
	// Flavor is used when normalizing arbitrary markdown.
	Flavor Flavor `mapstructure:"flavor" yaml:"flavor"`

	Render  RenderConfig  `mapstructure:"render" yaml:"render"`
	Editor  EditorConfig  `mapstructure:"editor" yaml:"editor"`
	Backups BackupsConfig `mapstructure:"backups" yaml:"backups"`

	// Ignore contains glob patterns for files to skip during conversion.
	Ignore []string `mapstructure:"ignore" yaml:"ignore"`

	// Extensions are the file extensions treated as markdown.
	Extensions []string `mapstructure:"extensions" yaml:"extensions"`

	// CLI-level options (not persisted to config files).

	// Format specifies the output format.
	Format OutputFormat `mapstructure:"-" yaml:"-"`

	// Jobs specifies the number of parallel workers.
	Jobs int `mapstructure:"-" yaml:"-"`

	// OutputDir receives converted files instead of their source directory.
	OutputDir string `mapstructure:"-" yaml:"-"`

	// DryRun renders without writing.
	DryRun bool `mapstructure:"-" yaml:"-"`
}

// DefaultExtensions returns the default set of Markdown file extensions.
func DefaultExtensions() []string {
	return []string{".md", ".markdown"}
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Flavor: FlavorCommonMark,
		Editor: EditorConfig{
			Tab:      DefaultTab,
			SaveName: DefaultSaveName,
		},
		Extensions: DefaultExtensions(),
		Format:     FormatText,
		Jobs:       0, // 0 means use runtime.NumCPU
	}
}
