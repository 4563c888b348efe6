package logging

// Field name constants for structured logging.
// Using constants prevents typos and enables IDE autocomplete.
const (
	// Common fields.
	FieldError = "error"
	FieldPath  = "path"

	// Codec fields.
	FieldLine    = "line"
	FieldRaw     = "raw"
	FieldReason  = "reason"
	FieldSkipped = "skipped"

	// Document fields.
	FieldDocument = "document"
	FieldChars    = "chars"
	FieldLines    = "lines"
	FieldRuns     = "runs"

	// Watcher fields.
	FieldOp       = "op"
	FieldDebounce = "debounce"

	// Search fields.
	FieldNeedle  = "needle"
	FieldMatches = "matches"
)
