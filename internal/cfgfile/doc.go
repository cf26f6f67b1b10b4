// Package cfgfile reads the sectioned key/value documents used for tracked
// and local configuration files.
//
// # File Format
//
//	[LOGGING]
//	log_level = INFO
//	log_path =
//	log_file = ${log_dir}/app.log     # same-section reference
//	webhook = ${ALERTS:discord_url}   # cross-section reference
//	# full-line comment
//
// Rules:
//
//   - Section names are case-sensitive and unique within a document.
//   - Keys are folded to lower case. Duplicate keys in a section are an error.
//   - The only delimiter is "=". A line with no "=" that is not a section
//     header or comment is an error.
//   - "#" and ";" start full-line comments. "#" preceded by whitespace starts an
//     inline comment.
//   - "key =" is legal and yields an empty value.
//   - Indented lines directly below a key continue its value.
//
// # Interpolation
//
// Values may reference other keys with ${key} (same section) or
// ${section:key}. References are expanded recursively before [Load] returns.
// "$$" produces a literal "$". Unknown references and reference cycles are
// reported as [*ParseError]; cycles additionally match [ErrInterpolationCycle].
//
// # Errors
//
// [Load] distinguishes a missing file ([ErrNotFound]) from a malformed one
// ([ErrParse]). [Classify] exposes the same distinction as an [Outcome] so callers
// that treat a missing file as normal can switch on it directly.
package cfgfile
