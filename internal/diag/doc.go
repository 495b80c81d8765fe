// Package diag defines the diagnostic model shared by every stage of the
// configuration pipeline: structured findings with severity, a stable
// numeric code, a primary source span, optional notes, and optional
// suggested text edits. Diagnostics are accumulated in a Bag and emitted
// through the Reporter contract so producers never depend on how findings
// are rendered.
package diag
