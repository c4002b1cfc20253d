package config

import (
	"encoding/json"
	"fmt"
)

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full writes every setting with its default value. If false, the
	// template is a commented-out sketch.
	Full bool

	// Format is the output format: "yaml" or "json".
	Format string
}

// GenerateTemplate creates a configuration file template.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	if opts.Format == "json" {
		return templateToJSON()
	}
	if opts.Full {
		return generateFullTemplate()
	}
	return []byte(minimalTemplate), nil
}

const minimalTemplate = `# gomdedit configuration
# See: https://github.com/yaklabco/gomdedit

# Markdown flavor used by "gomdedit normalize": commonmark or gfm
flavor: commonmark

# Code block markup
# render:
#   language_class: false
#   detect_language: false

# Interactive editing
# editor:
#   tab: "  "
#   save_name: document.md

# Keep a .gomdedit.bak copy of files before overwriting them
# backups:
#   enabled: false

# File patterns skipped by "gomdedit convert" (glob patterns)
# ignore:
#   - "vendor/**"
#   - "node_modules/**"

# Extensions treated as markdown
# extensions:
#   - .md
#   - .markdown
`

// generateFullTemplate writes the defaults with every key present.
func generateFullTemplate() ([]byte, error) {
	cfg := NewConfig()
	cfg.Ignore = []string{"vendor/**", "node_modules/**"}

	return cfg.ToYAMLWithHeader(DefaultTemplateHeader() + "\n#\n# Every setting is listed with its default value.")
}

// templateToJSON writes the defaults as JSON.
func templateToJSON() ([]byte, error) {
	cfg := NewConfig()

	doc := map[string]any{
		"flavor": string(cfg.Flavor),
		"render": map[string]any{
			"language_class":  cfg.Render.LanguageClass,
			"detect_language": cfg.Render.DetectLanguage,
		},
		"editor": map[string]any{
			"tab":       cfg.Editor.Tab,
			"save_name": cfg.Editor.SaveName,
		},
		"backups": map[string]any{
			"enabled": cfg.Backups.Enabled,
		},
		"ignore":     []string{"vendor/**", "node_modules/**"},
		"extensions": cfg.Extensions,
	}

	jsonBytes, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal JSON: %w", err)
	}
	return jsonBytes, nil
}

// DefaultTemplateHeader returns the default header for generated configs.
func DefaultTemplateHeader() string {
	return `# gomdedit configuration
# See: https://github.com/yaklabco/gomdedit`
}
