package logging

// Field name constants for structured logging.
const (
	// Common fields.
	FieldError   = "error"
	FieldPath    = "path"
	FieldPaths   = "paths"
	FieldInput   = "input"
	FieldOutput  = "output"
	FieldFormat  = "format"
	FieldBytes   = "bytes"
	FieldCommand = "command"

	// Pipeline fields.
	FieldBlocks   = "blocks"
	FieldOffset   = "offset"
	FieldKey      = "key"
	FieldLanguage = "language"
	FieldExact    = "exact"
	FieldChanged  = "changed_lines"

	// Batch fields.
	FieldJobs           = "jobs"
	FieldFilesFound     = "files_found"
	FieldFilesRendered  = "files_rendered"
	FieldFilesSkipped   = "files_skipped"
	FieldFilesFailed    = "files_failed"
	FieldOutputDir      = "output_dir"
	FieldConfigSource   = "config_source"
	FieldConfigWarnings = "config_warnings"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
