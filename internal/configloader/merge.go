package configloader

import (
	"slices"

	"github.com/yaklabco/gomdedit/pkg/config"
)

// merge combines two configurations, with override taking precedence over base.
// The merge follows these rules:
//   - Scalar values: override overwrites base if override is non-zero
//   - Booleans: only true in override is visible, so a later source can
//     switch a setting on but not off
//   - Slices: override replaces base entirely if override is non-nil
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := *base

	if override.Flavor != "" {
		result.Flavor = override.Flavor
	}
	if override.Format != "" {
		result.Format = override.Format
	}
	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}
	if override.OutputDir != "" {
		result.OutputDir = override.OutputDir
	}
	if override.DryRun {
		result.DryRun = true
	}

	if override.Render.LanguageClass {
		result.Render.LanguageClass = true
	}
	if override.Render.DetectLanguage {
		result.Render.DetectLanguage = true
	}
	if override.Editor.Tab != "" {
		result.Editor.Tab = override.Editor.Tab
	}
	if override.Editor.SaveName != "" {
		result.Editor.SaveName = override.Editor.SaveName
	}
	if override.Backups.Enabled {
		result.Backups.Enabled = true
	}

	result.Ignore = slices.Clone(base.Ignore)
	if override.Ignore != nil {
		result.Ignore = slices.Clone(override.Ignore)
	}
	result.Extensions = slices.Clone(base.Extensions)
	if override.Extensions != nil {
		result.Extensions = slices.Clone(override.Extensions)
	}

	return &result
}

// MergeAll merges multiple configurations in order, with later configs taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for _, next := range configs[1:] {
		result = merge(result, next)
	}
	return result
}
