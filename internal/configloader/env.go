package configloader

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/yaklabco/gomdedit/pkg/config"
)

// envVarPrefix is the prefix for all gomdedit environment variables.
const envVarPrefix = "GOMDEDIT_"

// envFieldType represents the type of a configuration field.
type envFieldType int

const (
	envTypeString envFieldType = iota
	envTypeBool
	envTypeInt
	envTypeSlice
)

// envMapping binds an environment variable to a config field.
type envMapping struct {
	field       string
	typ         envFieldType
	description string
}

// envMappings maps environment variable names (without prefix) to config fields.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = map[string]envMapping{
	"FLAVOR":                 {"flavor", envTypeString, "Markdown flavor for normalize: commonmark or gfm"},
	"FORMAT":                 {"format", envTypeString, "Output format: text, table, json, or yaml"},
	"JOBS":                   {"jobs", envTypeInt, "Number of parallel workers (0 = auto)"},
	"OUTPUT_DIR":             {"output_dir", envTypeString, "Directory receiving converted files"},
	"RENDER_LANGUAGE_CLASS":  {"render.language_class", envTypeBool, "Add language-* classes to code blocks"},
	"RENDER_DETECT_LANGUAGE": {"render.detect_language", envTypeBool, "Guess code block languages"},
	"EDITOR_TAB":             {"editor.tab", envTypeString, "Text inserted by the Tab key"},
	"EDITOR_SAVE_NAME":       {"editor.save_name", envTypeString, "File name used when saving into a directory"},
	"BACKUPS_ENABLED":        {"backups.enabled", envTypeBool, "Keep .gomdedit.bak copies of overwritten files"},
	"IGNORE":                 {"ignore", envTypeSlice, "Comma-separated list of ignore patterns"},
	"EXTENSIONS":             {"extensions", envTypeSlice, "Comma-separated list of markdown extensions"},
}

// LoadFromEnv applies GOMDEDIT_* environment variable overrides to cfg.
func LoadFromEnv(cfg *config.Config) error {
	return loadFromEnv(cfg, os.Getenv)
}

func loadFromEnv(cfg *config.Config, getenv func(string) string) error {
	if cfg == nil {
		return nil
	}

	for suffix, mapping := range envMappings {
		envVar := envVarPrefix + suffix
		value := getenv(envVar)
		if value == "" {
			continue
		}

		if err := applyEnvValue(cfg, mapping, value, envVar); err != nil {
			return err
		}
	}

	return nil
}

// applyEnvValue applies a single environment variable value to the config.
func applyEnvValue(cfg *config.Config, mapping envMapping, value, envVar string) error {
	switch mapping.typ {
	case envTypeString:
		return setStringField(cfg, mapping.field, value)
	case envTypeBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for %s: %q (expected true/false/1/0)", envVar, value)
		}
		return setBoolField(cfg, mapping.field, b)
	case envTypeInt:
		i, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer for %s: %q", envVar, value)
		}
		return setIntField(cfg, mapping.field, i)
	case envTypeSlice:
		return setSliceField(cfg, mapping.field, parseSliceValue(value))
	default:
		return fmt.Errorf("unknown field type for %s", envVar)
	}
}

// parseSliceValue parses a comma-separated string into a trimmed slice.
func parseSliceValue(value string) []string {
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func setStringField(cfg *config.Config, field, value string) error {
	switch field {
	case "flavor":
		cfg.Flavor = config.Flavor(value)
	case "format":
		cfg.Format = config.OutputFormat(value)
	case "output_dir":
		cfg.OutputDir = value
	case "editor.tab":
		cfg.Editor.Tab = value
	case "editor.save_name":
		cfg.Editor.SaveName = value
	default:
		return fmt.Errorf("unknown string field: %s", field)
	}
	return nil
}

func setBoolField(cfg *config.Config, field string, value bool) error {
	switch field {
	case "render.language_class":
		cfg.Render.LanguageClass = value
	case "render.detect_language":
		cfg.Render.DetectLanguage = value
	case "backups.enabled":
		cfg.Backups.Enabled = value
	default:
		return fmt.Errorf("unknown boolean field: %s", field)
	}
	return nil
}

func setIntField(cfg *config.Config, field string, value int) error {
	switch field {
	case "jobs":
		cfg.Jobs = value
	default:
		return fmt.Errorf("unknown integer field: %s", field)
	}
	return nil
}

func setSliceField(cfg *config.Config, field string, value []string) error {
	switch field {
	case "ignore":
		cfg.Ignore = value
	case "extensions":
		cfg.Extensions = value
	default:
		return fmt.Errorf("unknown slice field: %s", field)
	}
	return nil
}

// GetEnvVarName returns the full environment variable name for a config field.
func GetEnvVarName(field string) string {
	for suffix, mapping := range envMappings {
		if mapping.field == field {
			return envVarPrefix + suffix
		}
	}
	return ""
}

// ListEnvVars returns every supported environment variable with its description.
func ListEnvVars() map[string]string {
	vars := make(map[string]string, len(envMappings))
	for suffix, mapping := range envMappings {
		vars[envVarPrefix+suffix] = mapping.description
	}
	return vars
}
