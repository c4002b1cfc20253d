package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomdedit/pkg/config"
)

func TestNewConfig(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	assert.Equal(t, config.FlavorCommonMark, cfg.Flavor)
	assert.Equal(t, "  ", cfg.Editor.Tab)
	assert.Equal(t, "document.md", cfg.Editor.SaveName)
	assert.Equal(t, []string{".md", ".markdown"}, cfg.Extensions)
	assert.Equal(t, config.FormatText, cfg.Format)
	assert.False(t, cfg.Render.LanguageClass)
	assert.False(t, cfg.Backups.Enabled)
}

func TestConfigClone(t *testing.T) {
	t.Parallel()

	t.Run("nil config returns nil", func(t *testing.T) {
		t.Parallel()

		var c *config.Config
		assert.Nil(t, c.Clone())
	})

	t.Run("deep copies slices", func(t *testing.T) {
		t.Parallel()

		original := &config.Config{
			Ignore:     []string{"drafts/**"},
			Extensions: []string{".md"},
		}

		clone := original.Clone()
		require.NotNil(t, clone)
		assert.NotSame(t, original, clone)

		clone.Ignore[0] = "changed"
		clone.Extensions[0] = ".txt"
		assert.Equal(t, "drafts/**", original.Ignore[0])
		assert.Equal(t, ".md", original.Extensions[0])
	})

	t.Run("preserves all fields", func(t *testing.T) {
		t.Parallel()

		original := &config.Config{
			Flavor:    config.FlavorGFM,
			Render:    config.RenderConfig{LanguageClass: true, DetectLanguage: true},
			Editor:    config.EditorConfig{Tab: "\t", SaveName: "notes.md"},
			Backups:   config.BackupsConfig{Enabled: true},
			Format:    config.FormatJSON,
			Jobs:      4,
			OutputDir: "site",
			DryRun:    true,
		}

		assert.Equal(t, original, original.Clone())
	})
}

func TestConfigToYAML(t *testing.T) {
	t.Parallel()

	t.Run("nil config returns nil", func(t *testing.T) {
		t.Parallel()

		var cfg *config.Config
		data, err := cfg.ToYAML()
		require.NoError(t, err)
		assert.Nil(t, data)
	})

	t.Run("nested sections", func(t *testing.T) {
		t.Parallel()

		cfg := config.NewConfig()
		cfg.Render.LanguageClass = true
		cfg.Jobs = 8

		data, err := cfg.ToYAML()
		require.NoError(t, err)
		assert.Contains(t, string(data), "flavor: commonmark")
		assert.Contains(t, string(data), "language_class: true")
		assert.Contains(t, string(data), "save_name: document.md")
		assert.NotContains(t, string(data), "jobs")
	})

	t.Run("header", func(t *testing.T) {
		t.Parallel()

		data, err := config.NewConfig().ToYAMLWithHeader("# top")
		require.NoError(t, err)
		assert.Regexp(t, `^# top\n\nflavor:`, string(data))
	})
}

func TestFromYAML(t *testing.T) {
	t.Parallel()

	t.Run("parses valid YAML", func(t *testing.T) {
		t.Parallel()

		cfg, err := config.FromYAML([]byte(`
flavor: gfm
render:
  language_class: true
editor:
  tab: "    "
ignore:
  - "drafts/**"
`))
		require.NoError(t, err)
		assert.Equal(t, config.FlavorGFM, cfg.Flavor)
		assert.True(t, cfg.Render.LanguageClass)
		assert.Equal(t, "    ", cfg.Editor.Tab)
		assert.Equal(t, []string{"drafts/**"}, cfg.Ignore)
	})

	t.Run("empty document", func(t *testing.T) {
		t.Parallel()

		cfg, err := config.FromYAML(nil)
		require.NoError(t, err)
		assert.Equal(t, &config.Config{}, cfg)
	})

	t.Run("unknown key", func(t *testing.T) {
		t.Parallel()

		_, err := config.FromYAML([]byte("rules:\n  MD001: {}\n"))
		require.Error(t, err)
	})

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()

		cfg := config.NewConfig()
		cfg.Ignore = []string{"vendor/**"}

		data, err := cfg.ToYAML()
		require.NoError(t, err)

		back, err := config.FromYAML(data)
		require.NoError(t, err)
		assert.Equal(t, cfg.Editor, back.Editor)
		assert.Equal(t, cfg.Ignore, back.Ignore)
		assert.Equal(t, cfg.Extensions, back.Extensions)
	})
}

func TestValidity(t *testing.T) {
	t.Parallel()

	assert.True(t, config.FlavorGFM.IsValid())
	assert.False(t, config.Flavor("markdown").IsValid())
	assert.True(t, config.FormatYAML.IsValid())
	assert.True(t, config.FormatTable.IsValid())
	assert.False(t, config.OutputFormat("sarif").IsValid())
}

func TestGenerateTemplate(t *testing.T) {
	t.Parallel()

	t.Run("minimal parses", func(t *testing.T) {
		t.Parallel()

		data, err := config.GenerateTemplate(config.TemplateOptions{})
		require.NoError(t, err)

		cfg, err := config.FromYAML(data)
		require.NoError(t, err)
		assert.Equal(t, config.FlavorCommonMark, cfg.Flavor)
	})

	t.Run("full parses", func(t *testing.T) {
		t.Parallel()

		data, err := config.GenerateTemplate(config.TemplateOptions{Full: true})
		require.NoError(t, err)

		cfg, err := config.FromYAML(data)
		require.NoError(t, err)
		assert.Equal(t, "document.md", cfg.Editor.SaveName)
		assert.Contains(t, cfg.Ignore, "vendor/**")
	})

	t.Run("json", func(t *testing.T) {
		t.Parallel()

		data, err := config.GenerateTemplate(config.TemplateOptions{Format: "json"})
		require.NoError(t, err)
		assert.Contains(t, string(data), `"save_name": "document.md"`)
	})
}
